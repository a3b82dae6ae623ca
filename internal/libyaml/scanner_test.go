// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package libyaml

import (
	"testing"

	"github.com/yaml/go-yaml/internal/testutil/assert"
)

type tokenSummary struct {
	Type  TokenType
	Value string
	Style ScalarStyle
}

func summarize(tokens []Token) []tokenSummary {
	out := make([]tokenSummary, len(tokens))
	for i, t := range tokens {
		out[i] = tokenSummary{t.Type, t.Value, t.Style}
	}
	return out
}

func TestScanTokens(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []tokenSummary
	}{{
		name: "empty",
		in:   "",
		want: []tokenSummary{{Type: STREAM_START_TOKEN}, {Type: STREAM_END_TOKEN}},
	}, {
		name: "flow sequence value",
		in:   "a: [1, 'b']",
		want: []tokenSummary{
			{Type: STREAM_START_TOKEN},
			{SCALAR_TOKEN, "a", PLAIN_SCALAR_STYLE},
			{Type: VALUE_TOKEN},
			{Type: FLOW_SEQUENCE_START_TOKEN},
			{SCALAR_TOKEN, "1", PLAIN_SCALAR_STYLE},
			{Type: FLOW_ENTRY_TOKEN},
			{SCALAR_TOKEN, "b", SINGLE_QUOTED_SCALAR_STYLE},
			{Type: FLOW_SEQUENCE_END_TOKEN},
			{Type: STREAM_END_TOKEN},
		},
	}, {
		name: "document markers",
		in:   "---\n- x\n...\n",
		want: []tokenSummary{
			{Type: STREAM_START_TOKEN},
			{Type: DOCUMENT_START_TOKEN},
			{Type: BLOCK_ENTRY_TOKEN},
			{SCALAR_TOKEN, "x", PLAIN_SCALAR_STYLE},
			{Type: DOCUMENT_END_TOKEN},
			{Type: STREAM_END_TOKEN},
		},
	}, {
		name: "properties",
		in:   "&a !!str *b",
		want: []tokenSummary{
			{Type: STREAM_START_TOKEN},
			{ANCHOR_TOKEN, "a", 0},
			{TAG_TOKEN, "!!str", 0},
			{ALIAS_TOKEN, "b", 0},
			{Type: STREAM_END_TOKEN},
		},
	}, {
		name: "comment",
		in:   "{k: v} # note",
		want: []tokenSummary{
			{Type: STREAM_START_TOKEN},
			{Type: FLOW_MAPPING_START_TOKEN},
			{SCALAR_TOKEN, "k", PLAIN_SCALAR_STYLE},
			{Type: VALUE_TOKEN},
			{SCALAR_TOKEN, "v", PLAIN_SCALAR_STYLE},
			{Type: FLOW_MAPPING_END_TOKEN},
			{Type: STREAM_END_TOKEN},
		},
	}, {
		name: "double quoted keeps escapes",
		in:   `"a\"b"`,
		want: []tokenSummary{
			{Type: STREAM_START_TOKEN},
			{SCALAR_TOKEN, `a\"b`, DOUBLE_QUOTED_SCALAR_STYLE},
			{Type: STREAM_END_TOKEN},
		},
	}, {
		name: "explicit key",
		in:   "? k",
		want: []tokenSummary{
			{Type: STREAM_START_TOKEN},
			{Type: KEY_TOKEN},
			{SCALAR_TOKEN, "k", PLAIN_SCALAR_STYLE},
			{Type: STREAM_END_TOKEN},
		},
	}, {
		name: "verbatim tag",
		in:   "!<tag:x> v",
		want: []tokenSummary{
			{Type: STREAM_START_TOKEN},
			{TAG_TOKEN, "!<tag:x>", 0},
			{SCALAR_TOKEN, "v", PLAIN_SCALAR_STYLE},
			{Type: STREAM_END_TOKEN},
		},
	}}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.DeepEqual(t, tt.want, summarize(Scan(tt.in)))
		})
	}
}

func TestScanMarks(t *testing.T) {
	tokens := Scan("a\n  b")
	assert.Equal(t, 4, len(tokens))
	b := tokens[2]
	assert.Equal(t, "b", b.Value)
	assert.Equal(t, 4, b.Start)
	assert.Equal(t, 5, b.End)
	assert.Equal(t, Mark{Index: 4, Line: 2, Column: 2}, b.StartMark)
}

func TestScanUnterminatedQuote(t *testing.T) {
	tokens := Scan("'abc")
	assert.Equal(t, 3, len(tokens))
	assert.Equal(t, "abc", tokens[1].Value)
	assert.Equal(t, SINGLE_QUOTED_SCALAR_STYLE, tokens[1].Style)
}

func TestScanEmptyAnchorIsSkipped(t *testing.T) {
	tokens := Scan("& x")
	assert.DeepEqual(t, []tokenSummary{
		{Type: STREAM_START_TOKEN},
		{SCALAR_TOKEN, "x", PLAIN_SCALAR_STYLE},
		{Type: STREAM_END_TOKEN},
	}, summarize(tokens))
}
