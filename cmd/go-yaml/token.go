// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/yaml/go-yaml"
	"github.com/yaml/go-yaml/internal/libyaml"
)

// span formats a source range as "line:column-line:column", both 1-based.
func span(start, end yaml.Mark) string {
	return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Column+1, end.Line, end.Column+1)
}

// tokenName turns SCALAR_TOKEN into SCALAR and FLOW_ENTRY_TOKEN into
// FLOW-ENTRY.
func tokenName(t yaml.TokenType) string {
	return strings.ReplaceAll(strings.TrimSuffix(t.String(), "_TOKEN"), "_", "-")
}

// writeTokens writes one line per token. With profuse set every line
// starts with the token's source range.
func writeTokens(w io.Writer, tokens []yaml.Token, profuse bool, p *palette) error {
	for _, tok := range tokens {
		var b strings.Builder
		if profuse {
			b.WriteString(p.mark.Sprint(span(tok.StartMark, tok.EndMark)))
			b.WriteByte(' ')
		}
		b.WriteString(p.kind.Sprint(tokenName(tok.Type)))
		switch tok.Type {
		case libyaml.SCALAR_TOKEN:
			b.WriteString(" " + strings.ToLower(tok.Style.String()))
			b.WriteString(" " + p.value.Sprint(strconv.Quote(tok.Value)))
		case libyaml.TAG_TOKEN:
			b.WriteString(" " + p.tag.Sprint(strconv.Quote(tok.Value)))
		case libyaml.ANCHOR_TOKEN, libyaml.ALIAS_TOKEN:
			b.WriteString(" " + p.anchor.Sprint(strconv.Quote(tok.Value)))
		}
		b.WriteByte('\n')
		if _, err := io.WriteString(w, b.String()); err != nil {
			return err
		}
	}
	return nil
}
