// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package libyaml

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/yaml/go-yaml/internal/testutil/assert"
)

type config struct {
	Name string   `yaml:"name"`
	Port int      `yaml:"port"`
	Tags []string `yaml:"tags,flow"`
	Note string   `yaml:"note,omitempty"`
}

func TestMarshal(t *testing.T) {
	tests := []struct {
		name  string
		value any
		want  string
	}{
		{"string", "hello", "hello\n"},
		{"int", 42, "42\n"},
		{"float", 1.0, "1.0\n"},
		{"nil", nil, "null\n"},
		{"bool-like string", "yes", "yes\n"},
		{"int-like string", "42", "'42'\n"},
		{"empty string", "", "''\n"},
		{"struct", config{Name: "web", Port: 80, Tags: []string{"a", "b"}},
			"name: web\nport: 80\ntags: [a, b]\n"},
		{"flow tag on a long list", config{Name: "web", Port: 80, Tags: []string{"a", "b", "c", "d", "e", "f"}},
			"name: web\nport: 80\ntags: [a, b, c, d, e, f]\n"},
		{"small map", map[string]int{"b": 2, "a": 1}, "{a: 1, b: 2}\n"},
		{"nested", map[string]any{"list": []int{1, 2, 3, 4, 5, 6}},
			"list:\n  - 1\n  - 2\n  - 3\n  - 4\n  - 5\n  - 6\n"},
		{"empty collections", []any{[]int{}, map[string]int{}}, "- []\n- {}\n"},
		{"binary", []byte("hi"), "!!binary aGk=\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, err := Marshal(tt.value)
			assert.NoError(t, err)
			assert.Equal(t, tt.want, string(out))
		})
	}
}

func TestMarshalCycle(t *testing.T) {
	l := &loop{Name: "a"}
	l.Next = l
	out, err := Marshal(l)
	assert.NoError(t, err)
	assert.Equal(t, "&id001\nname: a\nnext: *id001\n", string(out))
}

func TestMarshalShared(t *testing.T) {
	p := &point{1, 2}
	out, err := Marshal(map[string]any{"a": p, "b": p})
	assert.NoError(t, err)
	assert.Equal(t, "a: &id001 {x: 1, y: 2}\nb: *id001\n", string(out))

	// Anchored values load back as copies.
	v, err := Load(out)
	assert.NoError(t, err)
	want := map[string]any{"x": 1, "y": 2}
	assert.DeepEqual(t, map[string]any{"a": want, "b": want}, v)
}

func TestDump(t *testing.T) {
	out, err := Dump(map[string]int{"a": 1})
	assert.NoError(t, err)
	assert.Equal(t, "{'a': !!int 1}\n", string(out))

	out, err = Dump("x", WithExplicitStart(), WithExplicitEnd())
	assert.NoError(t, err)
	assert.Equal(t, "--- x\n...\n", string(out))

	_, err = Dump("x", WithIndent(-1))
	assert.ErrorMatches(t, "negative", err)

	_, err = Dump(broken{})
	assert.ErrorIs(t, err, errBroken)
}

func TestDumpAll(t *testing.T) {
	out, err := DumpAll([]any{"a", 2, nil}, WithImplicitTags())
	assert.NoError(t, err)
	assert.Equal(t, "a\n--- 2\n--- null\n", string(out))

	docs, err := LoadAll(out)
	assert.NoError(t, err)
	assert.DeepEqual(t, []any{"a", 2, nil}, docs)

	out, err = DumpAll(nil)
	assert.NoError(t, err)
	assert.Equal(t, "", string(out))
}

func TestDumper(t *testing.T) {
	var buf bytes.Buffer
	var logs bytes.Buffer
	logger := level.NewFilter(log.NewLogfmtLogger(&logs), level.AllowDebug())
	d, err := NewDumper(&buf, WithPlainKeys(), WithImplicitTags(), WithLogger(logger))
	assert.NoError(t, err)

	assert.NoError(t, d.Dump(map[string]int{"n": 1}))
	// Every document is written through as soon as it is dumped.
	assert.Equal(t, "{n: 1}\n", buf.String())

	tree, err := Compose("[x]")
	assert.NoError(t, err)
	assert.NoError(t, d.DumpTree(tree))
	assert.NoError(t, d.Close())
	assert.Equal(t, "{n: 1}\n--- [x]\n", buf.String())

	assert.Contains(t, logs.String(), `level=debug msg="dumping document" nodes=3`)
}

func TestDumperWriterError(t *testing.T) {
	d, err := NewDumper(failingWriter{})
	assert.NoError(t, err)
	err = d.Dump("x")
	assert.ErrorIs(t, err, errDiskFull)
	var we WriterError
	assert.ErrorAs(t, err, &we)
}

// TestMarshalReadsBackWithYAMLv3 checks the output against an independent
// YAML implementation.
func TestMarshalReadsBackWithYAMLv3(t *testing.T) {
	values := []any{
		map[string]any{
			"name":   "x",
			"n":      1,
			"f":      1.5,
			"list":   []any{"a", true, nil},
			"nested": map[string]any{"k": "v"},
			"str":    "true",
			"empty":  "",
			"quote":  "it's",
			"colon":  "a: b",
			"multi":  "line one\nline two\n",
			"tab":    "a\tb",
			"lead":   " x",
		},
		[]any{-3, 2.25, "- x", "#", "[a]", "{b}", "é"},
		[]any{math.MaxInt64, "1e3", "null", "~"},
	}
	for i, v := range values {
		out, err := Marshal(v)
		assert.NoError(t, err)

		var got any
		err = yamlv3.Unmarshal(out, &got)
		assert.NoErrorf(t, err, "value %d:\n%s", i, out)
		assert.DeepEqualf(t, v, got, "value %d:\n%s", i, out)

		ours, err := Load(out)
		assert.NoError(t, err)
		assert.DeepEqualf(t, v, ours, "value %d:\n%s", i, out)
	}
}

func TestDumpCanonicalReadsBack(t *testing.T) {
	v := map[string]any{"a": []any{1, "two", 3.5, false, nil}}
	out, err := Dump(v, WithCanonical())
	assert.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(out), "%YAML 1.2\n---"))

	back, err := Load(out)
	assert.NoError(t, err)
	assert.DeepEqual(t, v, back)
}
