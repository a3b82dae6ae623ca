// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Package datatest runs table tests whose cases live in YAML files under a
// package's testdata directory.
//
// Case files are read with gopkg.in/yaml.v3 rather than with the code under
// test, so a bug in this module cannot hide itself by misreading its own
// test data.
package datatest

import (
	"bytes"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	yamlv3 "gopkg.in/yaml.v3"
)

// Load decodes testdata/<name> into a list of cases.
// Unknown keys in a case are an error, which catches misspelled fields.
func Load[T any](tb testing.TB, name string) []T {
	tb.Helper()
	data, err := os.ReadFile(filepath.Join("testdata", name))
	if err != nil {
		tb.Fatalf("reading test cases: %v", err)
	}
	dec := yamlv3.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	var cases []T
	if err := dec.Decode(&cases); err != nil {
		tb.Fatalf("decoding %s: %v", name, err)
	}
	if len(cases) == 0 {
		tb.Fatalf("%s holds no test cases", name)
	}
	return cases
}

// Named is implemented by cases that carry their own subtest name.
type Named interface {
	CaseName() string
}

// Run runs fn as a subtest for every case. Cases that do not implement
// Named are numbered.
func Run[T any](t *testing.T, cases []T, fn func(t *testing.T, tc T)) {
	t.Helper()
	for i, tc := range cases {
		name := fmt.Sprintf("case%03d", i)
		if n, ok := any(tc).(Named); ok && n.CaseName() != "" {
			name = n.CaseName()
		}
		t.Run(name, func(t *testing.T) {
			fn(t, tc)
		})
	}
}

// HexToBytes converts a hex string, which may contain spaces, to bytes.
func HexToBytes(tb testing.TB, s string) []byte {
	tb.Helper()
	b, err := hex.DecodeString(strings.ReplaceAll(s, " ", ""))
	if err != nil {
		tb.Fatalf("invalid hex string: %s: %v", s, err)
	}
	return b
}

// Data is test input that is either written out or generated.
//
// In a case file it is a plain string, or a mapping of the form
//
//	{loop: [text, count]}
//	{join: [part, ...], loop: count}
//
// where every part is itself a Data.
type Data struct {
	Text  string
	Loop  int
	Join  []Data
	plain bool
}

// UnmarshalYAML accepts both the string and the generator forms.
func (d *Data) UnmarshalYAML(n *yamlv3.Node) error {
	if n.Kind == yamlv3.ScalarNode {
		d.plain = true
		return n.Decode(&d.Text)
	}
	var raw struct {
		Loop yamlv3.Node `yaml:"loop"`
		Join []Data      `yaml:"join"`
	}
	if err := n.Decode(&raw); err != nil {
		return err
	}
	d.Join = raw.Join
	switch raw.Loop.Kind {
	case 0:
		d.Loop = 1
	case yamlv3.SequenceNode:
		var pair []yamlv3.Node
		if err := raw.Loop.Decode(&pair); err != nil {
			return err
		}
		if len(pair) != 2 {
			return fmt.Errorf("line %d: loop must be [text, count]", raw.Loop.Line)
		}
		var text string
		if err := pair[0].Decode(&text); err != nil {
			return err
		}
		if err := pair[1].Decode(&d.Loop); err != nil {
			return err
		}
		d.Join = append([]Data{{Text: text, plain: true}}, d.Join...)
	default:
		if err := raw.Loop.Decode(&d.Loop); err != nil {
			return err
		}
	}
	return nil
}

// Bytes returns the text the Data stands for.
func (d Data) Bytes() []byte {
	return []byte(d.String())
}

func (d Data) String() string {
	if d.plain || d.Join == nil {
		return d.Text
	}
	var b strings.Builder
	for _, part := range d.Join {
		b.WriteString(part.String())
	}
	return strings.Repeat(b.String(), d.Loop)
}
