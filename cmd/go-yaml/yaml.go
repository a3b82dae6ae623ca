// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/sergi/go-diff/diffmatchpatch"

	"github.com/yaml/go-yaml"
)

// reEmit composes every document of in and writes them back with opts.
func reEmit(in []byte, opts []yaml.Option) ([]byte, error) {
	trees, err := yaml.ComposeAll(in)
	if err != nil {
		return nil, errors.Wrap(err, "compose")
	}
	out, err := yaml.EmitAll(trees, opts...)
	if err != nil {
		return nil, errors.Wrap(err, "emit")
	}
	return out, nil
}

// writeDiff writes a line diff from the input text to its re-emitted form.
func writeDiff(w io.Writer, in []byte, opts []yaml.Option, p *palette) error {
	out, err := reEmit(in, opts)
	if err != nil {
		return err
	}

	dmp := diffmatchpatch.New()
	a, b, lines := dmp.DiffLinesToChars(string(in), string(out))
	diffs := dmp.DiffCharsToLines(dmp.DiffMain(a, b, false), lines)

	var sb strings.Builder
	sb.WriteString(p.del.Sprint("--- input") + "\n")
	sb.WriteString(p.ins.Sprint("+++ output") + "\n")
	for _, d := range diffs {
		for _, line := range splitLines(d.Text) {
			switch d.Type {
			case diffmatchpatch.DiffDelete:
				sb.WriteString(p.del.Sprint("-"+line) + "\n")
			case diffmatchpatch.DiffInsert:
				sb.WriteString(p.ins.Sprint("+"+line) + "\n")
			default:
				sb.WriteString(" " + line + "\n")
			}
		}
	}
	_, err = io.WriteString(w, sb.String())
	return err
}

func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(text, "\n"), "\n")
}
