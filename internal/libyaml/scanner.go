// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Scanner stage: Splits source text into tokens in a single forward pass.
// The scanner never fails; unterminated quotes and empty names are
// tolerated and left for the later stages to interpret.

package libyaml

// Scanner produces the token sequence of one input text.
type Scanner struct {
	input     string
	pos       int
	index     lineIndex
	base      Mark
	flowLevel int
	tokens    []Token
}

// NewScanner returns a scanner over input.
func NewScanner(input string) *Scanner {
	return &Scanner{input: input, index: newLineIndex(input)}
}

// newScannerAt returns a scanner whose marks are reported relative to
// base, for text cut out of a larger document.
func newScannerAt(input string, base Mark) *Scanner {
	s := NewScanner(input)
	s.base = base
	return s
}

// Scan tokenizes input.
// The result always starts with STREAM_START_TOKEN and ends with
// STREAM_END_TOKEN.
func Scan(input string) []Token {
	return NewScanner(input).Scan()
}

// Scan runs the scanner to the end of the input and returns every token.
func (s *Scanner) Scan() []Token {
	s.pos = 0
	s.flowLevel = 0
	s.tokens = nil
	s.add(STREAM_START_TOKEN, 0, 0, "", 0)
	for s.pos < len(s.input) {
		s.next()
	}
	s.add(STREAM_END_TOKEN, len(s.input), len(s.input), "", 0)
	return s.tokens
}

func (s *Scanner) mark(offset int) Mark {
	m := s.index.mark(offset)
	if s.base.Line == 0 {
		return m
	}
	if m.Line == 1 {
		m.Column += s.base.Column
	}
	m.Line += s.base.Line - 1
	m.Index += s.base.Index
	return m
}

func (s *Scanner) add(typ TokenType, start, end int, value string, style ScalarStyle) {
	s.tokens = append(s.tokens, Token{
		Type:      typ,
		Start:     start,
		End:       end,
		StartMark: s.mark(start),
		EndMark:   s.mark(end),
		Value:     value,
		Style:     style,
	})
}

// single emits a one-character token at the current position.
func (s *Scanner) single(typ TokenType) {
	s.add(typ, s.pos, s.pos+1, "", 0)
	s.pos++
}

func (s *Scanner) atLineStart() bool {
	return s.pos == 0 || isBreak(s.input[s.pos-1])
}

func (s *Scanner) hasPrefix(prefix string) bool {
	return len(s.input)-s.pos >= len(prefix) && s.input[s.pos:s.pos+len(prefix)] == prefix
}

func (s *Scanner) next() {
	for s.pos < len(s.input) && isBlank(s.input[s.pos]) {
		s.pos++
	}
	if s.pos >= len(s.input) {
		return
	}

	switch c := s.input[s.pos]; c {
	case '\r', '\n':
		s.pos++
	case '#':
		for s.pos < len(s.input) && !isBreak(s.input[s.pos]) {
			s.pos++
		}
	case ':':
		s.single(VALUE_TOKEN)
	case ',':
		s.single(FLOW_ENTRY_TOKEN)
	case '[':
		s.flowLevel++
		s.single(FLOW_SEQUENCE_START_TOKEN)
	case ']':
		if s.flowLevel > 0 {
			s.flowLevel--
		}
		s.single(FLOW_SEQUENCE_END_TOKEN)
	case '{':
		s.flowLevel++
		s.single(FLOW_MAPPING_START_TOKEN)
	case '}':
		if s.flowLevel > 0 {
			s.flowLevel--
		}
		s.single(FLOW_MAPPING_END_TOKEN)
	case '-':
		switch {
		case s.atLineStart() && s.hasPrefix("---"):
			s.add(DOCUMENT_START_TOKEN, s.pos, s.pos+3, "", 0)
			s.pos += 3
		case isBlankOrEnd(s.input, s.pos+1):
			s.single(BLOCK_ENTRY_TOKEN)
		default:
			s.plain()
		}
	case '.':
		if s.atLineStart() && s.hasPrefix("...") && isBlankOrEnd(s.input, s.pos+3) {
			s.add(DOCUMENT_END_TOKEN, s.pos, s.pos+3, "", 0)
			s.pos += 3
			return
		}
		s.plain()
	case '?':
		if isBlankOrEnd(s.input, s.pos+1) {
			s.single(KEY_TOKEN)
			return
		}
		s.plain()
	case '"':
		s.quoted('"', DOUBLE_QUOTED_SCALAR_STYLE)
	case '\'':
		s.quoted('\'', SINGLE_QUOTED_SCALAR_STYLE)
	case '&':
		s.name(ANCHOR_TOKEN)
	case '*':
		s.name(ALIAS_TOKEN)
	case '!':
		s.tag()
	default:
		s.plain()
	}
}

// quoted scans a quoted scalar. The token value is the raw text between
// the quotes; escapes are decoded by the parser.
func (s *Scanner) quoted(quote byte, style ScalarStyle) {
	start := s.pos
	s.pos++
	end := len(s.input)
	for s.pos < len(s.input) {
		c := s.input[s.pos]
		if quote == '"' && c == '\\' {
			s.pos += 2
			continue
		}
		if c == quote {
			if quote == '\'' && s.pos+1 < len(s.input) && s.input[s.pos+1] == '\'' {
				s.pos += 2
				continue
			}
			end = s.pos
			s.pos++
			break
		}
		s.pos++
	}
	if s.pos > len(s.input) {
		s.pos = len(s.input)
	}
	if end > len(s.input) {
		end = len(s.input)
	}
	s.add(SCALAR_TOKEN, start, s.pos, s.input[start+1:end], style)
}

// name scans an anchor or alias name.
// A sigil with no name is skipped without producing a token.
func (s *Scanner) name(typ TokenType) {
	start := s.pos
	s.pos++
	for s.pos < len(s.input) && isAnchorChar(s.input[s.pos]) {
		s.pos++
	}
	if s.pos == start+1 {
		return
	}
	s.add(typ, start, s.pos, s.input[start+1:s.pos], 0)
}

// tag scans "!", "!!name", "!name" and the verbatim "!<uri>" form.
// The token value is the tag as written.
func (s *Scanner) tag() {
	start := s.pos
	s.pos++
	if s.pos < len(s.input) && s.input[s.pos] == '<' {
		for s.pos < len(s.input) && s.input[s.pos] != '>' && !isBreak(s.input[s.pos]) {
			s.pos++
		}
		if s.pos < len(s.input) && s.input[s.pos] == '>' {
			s.pos++
		}
		s.add(TAG_TOKEN, start, s.pos, s.input[start:s.pos], 0)
		return
	}
	if s.pos < len(s.input) && s.input[s.pos] == '!' {
		s.pos++
	}
	for s.pos < len(s.input) && (isTagChar(s.input[s.pos]) || s.input[s.pos] == '!') {
		s.pos++
	}
	s.add(TAG_TOKEN, start, s.pos, s.input[start:s.pos], 0)
}

func (s *Scanner) plain() {
	start := s.pos
	for s.pos < len(s.input) && !isPlainTerminator(s.input[s.pos]) {
		s.pos++
	}
	if s.pos == start {
		// A terminator that no other rule claimed.
		s.pos++
	}
	s.add(SCALAR_TOKEN, start, s.pos, s.input[start:s.pos], PLAIN_SCALAR_STYLE)
}
