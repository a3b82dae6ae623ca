// Copyright 2006-2010 Kirill Simonov
// Copyright 2011-2019 Canonical Ltd
// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0 AND MIT

// Core types shared by every stage of the pipeline.
// Defines Mark, Token, Event and the related enumerations and tag constants.

package libyaml

import (
	"fmt"
	"sort"
	"strings"
)

// VersionDirective holds the YAML version directive data.
type VersionDirective struct {
	Major int
	Minor int
}

// TagDirective holds the YAML tag directive data.
type TagDirective struct {
	Handle string
	Prefix string
}

type Encoding int

// The stream encoding.
const (
	// Let the reader choose the encoding.
	ANY_ENCODING Encoding = iota

	UTF8_ENCODING    // The default UTF-8 encoding.
	UTF16LE_ENCODING // The UTF-16-LE encoding with BOM.
	UTF16BE_ENCODING // The UTF-16-BE encoding with BOM.
)

func (e Encoding) String() string {
	switch e {
	case UTF8_ENCODING:
		return "utf-8"
	case UTF16LE_ENCODING:
		return "utf-16le"
	case UTF16BE_ENCODING:
		return "utf-16be"
	}
	return "any"
}

type LineBreak int

// Line break types.
const (
	// Let the emitter choose the break type.
	ANY_BREAK LineBreak = iota

	CR_BREAK   // Use CR for line breaks (Mac style).
	LN_BREAK   // Use LN for line breaks (Unix style).
	CRLN_BREAK // Use CR LN for line breaks (DOS style).
)

// Mark holds a position in the source text.
type Mark struct {
	Index  int // The position index.
	Line   int // The position line (1-indexed).
	Column int // The position column (0-indexed internally, displayed as 1-indexed).
}

func (m Mark) String() string {
	var builder strings.Builder
	if m.Line == 0 {
		return "<unknown position>"
	}

	fmt.Fprintf(&builder, "line %d", m.Line)
	if m.Column != 0 {
		fmt.Fprintf(&builder, ", column %d", m.Column+1)
	}

	return builder.String()
}

// lineIndex maps byte offsets of a text to marks.
// It holds the offset at which every line starts.
type lineIndex []int

func newLineIndex(text string) lineIndex {
	idx := lineIndex{0}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			idx = append(idx, i+1)
		}
	}
	return idx
}

func (idx lineIndex) mark(offset int) Mark {
	line := sort.Search(len(idx), func(i int) bool { return idx[i] > offset }) - 1
	if line < 0 {
		line = 0
	}
	return Mark{Index: offset, Line: line + 1, Column: offset - idx[line]}
}

// Scalar styles

type ScalarStyle int8

// Scalar styles.
const (
	// Let the emitter choose the style.
	ANY_SCALAR_STYLE ScalarStyle = 0

	PLAIN_SCALAR_STYLE         ScalarStyle = 1 << iota // The plain scalar style.
	SINGLE_QUOTED_SCALAR_STYLE                         // The single-quoted scalar style.
	DOUBLE_QUOTED_SCALAR_STYLE                         // The double-quoted scalar style.
	LITERAL_SCALAR_STYLE                               // The literal scalar style.
	FOLDED_SCALAR_STYLE                                // The folded scalar style.
)

// String returns a string representation of a [ScalarStyle].
func (style ScalarStyle) String() string {
	switch style {
	case PLAIN_SCALAR_STYLE:
		return "Plain"
	case SINGLE_QUOTED_SCALAR_STYLE:
		return "Single"
	case DOUBLE_QUOTED_SCALAR_STYLE:
		return "Double"
	case LITERAL_SCALAR_STYLE:
		return "Literal"
	case FOLDED_SCALAR_STYLE:
		return "Folded"
	default:
		return ""
	}
}

// Indicator returns the character that introduces the style in YAML text,
// or 0 for plain scalars.
func (style ScalarStyle) Indicator() byte {
	switch style {
	case SINGLE_QUOTED_SCALAR_STYLE:
		return '\''
	case DOUBLE_QUOTED_SCALAR_STYLE:
		return '"'
	case LITERAL_SCALAR_STYLE:
		return '|'
	case FOLDED_SCALAR_STYLE:
		return '>'
	}
	return 0
}

// Tokens

type TokenType int

// Token types.
const (
	// An empty token.
	NO_TOKEN TokenType = iota

	STREAM_START_TOKEN // A STREAM-START token.
	STREAM_END_TOKEN   // A STREAM-END token.

	DOCUMENT_START_TOKEN // A DOCUMENT-START token.
	DOCUMENT_END_TOKEN   // A DOCUMENT-END token.

	FLOW_SEQUENCE_START_TOKEN // A FLOW-SEQUENCE-START token.
	FLOW_SEQUENCE_END_TOKEN   // A FLOW-SEQUENCE-END token.
	FLOW_MAPPING_START_TOKEN  // A FLOW-MAPPING-START token.
	FLOW_MAPPING_END_TOKEN    // A FLOW-MAPPING-END token.

	BLOCK_ENTRY_TOKEN // A BLOCK-ENTRY token.
	FLOW_ENTRY_TOKEN  // A FLOW-ENTRY token.
	KEY_TOKEN         // A KEY token.
	VALUE_TOKEN       // A VALUE token.

	ALIAS_TOKEN  // An ALIAS token.
	ANCHOR_TOKEN // An ANCHOR token.
	TAG_TOKEN    // A TAG token.
	SCALAR_TOKEN // A SCALAR token.
)

var tokenStrings = []string{
	NO_TOKEN:                  "NO_TOKEN",
	STREAM_START_TOKEN:        "STREAM_START_TOKEN",
	STREAM_END_TOKEN:          "STREAM_END_TOKEN",
	DOCUMENT_START_TOKEN:      "DOCUMENT_START_TOKEN",
	DOCUMENT_END_TOKEN:        "DOCUMENT_END_TOKEN",
	FLOW_SEQUENCE_START_TOKEN: "FLOW_SEQUENCE_START_TOKEN",
	FLOW_SEQUENCE_END_TOKEN:   "FLOW_SEQUENCE_END_TOKEN",
	FLOW_MAPPING_START_TOKEN:  "FLOW_MAPPING_START_TOKEN",
	FLOW_MAPPING_END_TOKEN:    "FLOW_MAPPING_END_TOKEN",
	BLOCK_ENTRY_TOKEN:         "BLOCK_ENTRY_TOKEN",
	FLOW_ENTRY_TOKEN:          "FLOW_ENTRY_TOKEN",
	KEY_TOKEN:                 "KEY_TOKEN",
	VALUE_TOKEN:               "VALUE_TOKEN",
	ALIAS_TOKEN:               "ALIAS_TOKEN",
	ANCHOR_TOKEN:              "ANCHOR_TOKEN",
	TAG_TOKEN:                 "TAG_TOKEN",
	SCALAR_TOKEN:              "SCALAR_TOKEN",
}

func (tt TokenType) String() string {
	if tt < 0 || int(tt) >= len(tokenStrings) {
		return "<unknown token>"
	}
	return tokenStrings[tt]
}

// Token holds information about a scanning token.
type Token struct {
	// The token type.
	Type TokenType

	// The [Start, End) byte span of the token in the source.
	Start, End int

	// The start/end of the token.
	StartMark, EndMark Mark

	// The alias/anchor name, the raw scalar text or the tag text
	// (for ALIAS_TOKEN, ANCHOR_TOKEN, SCALAR_TOKEN, TAG_TOKEN).
	Value string

	// The scalar Style (for SCALAR_TOKEN).
	Style ScalarStyle
}

// Events

type EventType int8

// Event types.
const (
	// An empty event.
	NO_EVENT EventType = iota

	STREAM_START_EVENT   // A STREAM-START event.
	STREAM_END_EVENT     // A STREAM-END event.
	DOCUMENT_START_EVENT // A DOCUMENT-START event.
	DOCUMENT_END_EVENT   // A DOCUMENT-END event.
	ALIAS_EVENT          // An ALIAS event.
	SCALAR_EVENT         // A SCALAR event.
	SEQUENCE_START_EVENT // A SEQUENCE-START event.
	SEQUENCE_END_EVENT   // A SEQUENCE-END event.
	MAPPING_START_EVENT  // A MAPPING-START event.
	MAPPING_END_EVENT    // A MAPPING-END event.
)

var eventTypeStrings = []string{
	NO_EVENT:             "none",
	STREAM_START_EVENT:   "stream start",
	STREAM_END_EVENT:     "stream end",
	DOCUMENT_START_EVENT: "document start",
	DOCUMENT_END_EVENT:   "document end",
	ALIAS_EVENT:          "alias",
	SCALAR_EVENT:         "scalar",
	SEQUENCE_START_EVENT: "sequence start",
	SEQUENCE_END_EVENT:   "sequence end",
	MAPPING_START_EVENT:  "mapping start",
	MAPPING_END_EVENT:    "mapping end",
}

func (e EventType) String() string {
	if e < 0 || int(e) >= len(eventTypeStrings) {
		return fmt.Sprintf("unknown event %d", e)
	}
	return eventTypeStrings[e]
}

// Event holds information about a parsing or emitting event.
type Event struct {
	// The event type.
	Type EventType

	// The start and end of the event.
	StartMark, EndMark Mark

	// The document encoding (for STREAM_START_EVENT).
	Encoding Encoding

	// The version directive (for DOCUMENT_START_EVENT).
	Version *VersionDirective

	// The list of tag directives (for DOCUMENT_START_EVENT).
	TagDirectives []TagDirective

	// The Anchor (for SCALAR_EVENT, SEQUENCE_START_EVENT, MAPPING_START_EVENT, ALIAS_EVENT).
	Anchor string

	// The Tag (for SCALAR_EVENT, SEQUENCE_START_EVENT, MAPPING_START_EVENT).
	Tag string

	// The scalar Value (for SCALAR_EVENT).
	Value string

	// Is the document start/end indicator Implicit, or the tag optional?
	// (for DOCUMENT_START_EVENT, DOCUMENT_END_EVENT, SEQUENCE_START_EVENT, MAPPING_START_EVENT, SCALAR_EVENT).
	Implicit bool

	// Is the tag optional for any non-plain style? (for SCALAR_EVENT).
	QuotedImplicit bool

	// The scalar Style (for SCALAR_EVENT).
	Style ScalarStyle

	// Is the collection written in flow style? (for SEQUENCE_START_EVENT, MAPPING_START_EVENT).
	Flow bool
}

// Explicit reports whether a document boundary was written out in the
// source (for DOCUMENT_START_EVENT and DOCUMENT_END_EVENT).
func (e *Event) Explicit() bool { return !e.Implicit }

// Tags

const (
	NULL_TAG      = "tag:yaml.org,2002:null"      // The tag !!null with the only possible value: null.
	BOOL_TAG      = "tag:yaml.org,2002:bool"      // The tag !!bool with the values: true and false.
	STR_TAG       = "tag:yaml.org,2002:str"       // The tag !!str for string values.
	INT_TAG       = "tag:yaml.org,2002:int"       // The tag !!int for integer values.
	FLOAT_TAG     = "tag:yaml.org,2002:float"     // The tag !!float for float values.
	TIMESTAMP_TAG = "tag:yaml.org,2002:timestamp" // The tag !!timestamp for date and time values.

	SEQ_TAG = "tag:yaml.org,2002:seq" // The tag !!seq is used to denote sequences.
	MAP_TAG = "tag:yaml.org,2002:map" // The tag !!map is used to denote mapping.

	BINARY_TAG = "tag:yaml.org,2002:binary"
	MERGE_TAG  = "tag:yaml.org,2002:merge"

	DEFAULT_SCALAR_TAG   = STR_TAG // The default scalar tag is !!str.
	DEFAULT_SEQUENCE_TAG = SEQ_TAG // The default sequence tag is !!seq.
	DEFAULT_MAPPING_TAG  = MAP_TAG // The default mapping tag is !!map.

	coreTagPrefix = "tag:yaml.org,2002:"
)
