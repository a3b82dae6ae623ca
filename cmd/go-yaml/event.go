// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"io"
	"strings"

	"github.com/yaml/go-yaml"
)

// writeEvents writes one line per event in the yaml-test-suite notation.
// With profuse set every line starts with the event's source range.
func writeEvents(w io.Writer, events []yaml.Event, profuse bool, p *palette) error {
	for _, ev := range events {
		var b strings.Builder
		if profuse {
			b.WriteString(p.mark.Sprint(span(ev.StartMark, ev.EndMark)))
			b.WriteByte(' ')
		}
		name, rest, _ := strings.Cut(ev.String(), " ")
		b.WriteString(p.kind.Sprint(name))
		if rest != "" {
			b.WriteByte(' ')
			b.WriteString(rest)
		}
		b.WriteByte('\n')
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}
