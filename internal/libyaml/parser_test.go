// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package libyaml

import (
	"testing"

	"github.com/yaml/go-yaml/internal/testutil/assert"
	"github.com/yaml/go-yaml/internal/testutil/datatest"
)

type eventCase struct {
	Name   string   `yaml:"name"`
	YAML   string   `yaml:"yaml"`
	Events []string `yaml:"events"`
}

func (c eventCase) CaseName() string { return c.Name }

func eventStrings(events []Event) []string {
	out := make([]string, len(events))
	for i, e := range events {
		out[i] = e.String()
	}
	return out
}

func TestParseEvents(t *testing.T) {
	cases := datatest.Load[eventCase](t, "events.yaml")
	datatest.Run(t, cases, func(t *testing.T, tc eventCase) {
		want := tc.Events
		if len(want) == 0 || want[0] != "+STR" {
			want = append(append([]string{"+STR"}, want...), "-STR")
		}
		assert.DeepEqual(t, want, eventStrings(Parse(tc.YAML)))
	})
}

// The parser never fails: whatever the input, the stream is balanced.
func TestParseBalanced(t *testing.T) {
	inputs := []string{
		"[a, b",
		"{a: [1, {b: 2",
		"a: 'unterminated\n",
		"]]]\n}}",
		"- a\n  b: c\n - d\n",
		": : :\n",
		"&a *b !c\n",
		"---\n---\n...\n...\n",
		"a:\n  - b\n c: d\n",
	}
	for _, in := range inputs {
		events := Parse(in)
		depth := 0
		for _, e := range events {
			switch e.Type {
			case STREAM_START_EVENT, DOCUMENT_START_EVENT, SEQUENCE_START_EVENT, MAPPING_START_EVENT:
				depth++
			case STREAM_END_EVENT, DOCUMENT_END_EVENT, SEQUENCE_END_EVENT, MAPPING_END_EVENT:
				depth--
			}
			assert.Truef(t, depth >= 0, "negative depth in %q", in)
		}
		assert.Equalf(t, 0, depth, "unbalanced events for %q", in)
		assert.Equal(t, STREAM_START_EVENT, events[0].Type)
		assert.Equal(t, STREAM_END_EVENT, events[len(events)-1].Type)
	}
}

func TestParseMarks(t *testing.T) {
	events := Parse("a: 1\nbb: [x]\n")
	var scalars []Event
	for _, e := range events {
		if e.Type == SCALAR_EVENT {
			scalars = append(scalars, e)
		}
	}
	assert.Equal(t, 4, len(scalars))
	assert.Equal(t, Mark{Index: 0, Line: 1, Column: 0}, scalars[0].StartMark)
	assert.Equal(t, Mark{Index: 3, Line: 1, Column: 3}, scalars[1].StartMark)
	assert.Equal(t, Mark{Index: 5, Line: 2, Column: 0}, scalars[2].StartMark)
	assert.Equal(t, Mark{Index: 10, Line: 2, Column: 5}, scalars[3].StartMark)
}

func TestParseTagDirective(t *testing.T) {
	events := Parse("%TAG !e! tag:example.com,2000:\n---\n!e!point 1\n")
	var tags []string
	for _, e := range events {
		if e.Type == SCALAR_EVENT {
			tags = append(tags, e.Tag)
		}
	}
	assert.DeepEqual(t, []string{"tag:example.com,2000:point"}, tags)
}

func TestParseShortTags(t *testing.T) {
	tests := []struct {
		tag  string
		want string
	}{
		{"!!str", STR_TAG},
		{"!!binary", BINARY_TAG},
		{"!!custom", "tag:yaml.org,2002:custom"},
		{"!local", "!local"},
		{"!<tag:example.com:x>", "tag:example.com:x"},
	}
	for _, tt := range tests {
		t.Run(tt.tag, func(t *testing.T) {
			events := Parse(tt.tag + " v")
			assert.Equal(t, "=VAL <"+tt.want+"> :v", events[2].String())
		})
	}
}

func TestUnescapeDoubleQuoted(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`plain`, "plain"},
		{`a\"b`, `a"b`},
		{`back\\slash`, `back\slash`},
		{`\n\r\t\0`, "\n\r\t\x00"},
		{`\x41\u00e9\U0001F600`, "A\u00e9\U0001F600"},
		{`\N\_\L\P`, "\u0085\u00a0\u2028\u2029"},
		{`\q`, `\q`},
		{`\u12`, `\u12`},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, unescapeDoubleQuoted(tt.in))
	}
}

func TestFoldLines(t *testing.T) {
	assert.Equal(t, "a b", foldLines([]string{"a", "b"}))
	assert.Equal(t, "a\nb", foldLines([]string{"a", "", "b"}))
	assert.Equal(t, "a\n  b\nc", foldLines([]string{"a", "  b", "c"}))
}
