// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Parser stage: Builds the event stream of a text.
// Block structure is recovered from the indentation of each line; inline
// values, flow collections and node properties are read with the Scanner.
//
// The parser never fails. Text it cannot make sense of is read as plain
// scalars or skipped, and every stream it returns is balanced.

package libyaml

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// Parser produces the event stream of one input text.
type Parser struct {
	input  string
	index  lineIndex
	lines  []line
	events []Event

	// Current document.
	doc  []line
	pos  int
	tags []TagDirective
}

type line struct {
	num    int    // 0-based line number
	start  int    // offset of the first byte of the line
	indent int    // column where text starts
	raw    string // the line without its break
	text   string // content with comments and trailing blanks removed
}

func (l *line) mark(col int) Mark {
	return Mark{Index: l.start + col, Line: l.num + 1, Column: col}
}

type segment struct {
	lines    []line
	explicit bool
	ended    bool
	version  *VersionDirective
	tags     []TagDirective
	start    Mark
	end      Mark
}

func (s *segment) hasContent() bool {
	for i := range s.lines {
		if s.lines[i].text != "" {
			return true
		}
	}
	return false
}

// props are the anchor and tag written in front of a node.
type props struct {
	anchor string
	tag    string
}

func (a props) merge(b props) props {
	if b.anchor != "" {
		a.anchor = b.anchor
	}
	if b.tag != "" {
		a.tag = b.tag
	}
	return a
}

// NewParser returns a parser over input.
func NewParser(input string) *Parser {
	return &Parser{input: input, index: newLineIndex(input)}
}

// Parse returns the event stream of input.
func Parse(input string) []Event {
	return NewParser(input).Parse()
}

// Parse builds the complete event stream.
// The result starts with STREAM_START_EVENT, ends with STREAM_END_EVENT and
// holds at least one document.
func (p *Parser) Parse() []Event {
	p.events = nil
	p.lines = splitLines(p.input)
	p.emit(Event{Type: STREAM_START_EVENT, Encoding: UTF8_ENCODING})
	for _, seg := range p.segments() {
		p.document(seg)
	}
	end := p.index.mark(len(p.input))
	p.emit(Event{Type: STREAM_END_EVENT, StartMark: end, EndMark: end})
	return p.events
}

func splitLines(input string) []line {
	var lines []line
	for start, num := 0, 0; start < len(input) || num == 0; num++ {
		end := strings.IndexByte(input[start:], '\n')
		next := len(input)
		raw := input[start:]
		if end >= 0 {
			raw = input[start : start+end]
			next = start + end + 1
		}
		raw = strings.TrimSuffix(raw, "\r")
		indent := 0
		for indent < len(raw) && raw[indent] == ' ' {
			indent++
		}
		lines = append(lines, line{
			num:    num,
			start:  start,
			indent: indent,
			raw:    raw,
			text:   strings.TrimRight(stripComment(raw[indent:]), " \t"),
		})
		start = next
	}
	return lines
}

// stripComment removes a trailing "#" comment that is not inside quotes.
func stripComment(s string) string {
	inSingle, inDouble := false, false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case inDouble:
			if c == '\\' {
				i++
			} else if c == '"' {
				inDouble = false
			}
		case inSingle:
			if c == '\'' {
				if i+1 < len(s) && s[i+1] == '\'' {
					i++
				} else {
					inSingle = false
				}
			}
		case c == '#' && (i == 0 || isBlank(s[i-1])):
			return s[:i]
		case c == '"' && (i == 0 || strings.IndexByte(" \t[{,", s[i-1]) >= 0):
			inDouble = true
		case c == '\'' && (i == 0 || strings.IndexByte(" \t[{,", s[i-1]) >= 0):
			inSingle = true
		}
	}
	return s
}

func isDocumentStart(l *line) bool {
	return strings.TrimRight(l.raw, " \t") == "---" ||
		strings.HasPrefix(l.raw, "--- ") || strings.HasPrefix(l.raw, "---\t")
}

func isDocumentEnd(l *line) bool {
	return strings.TrimRight(l.raw, " \t") == "..." ||
		strings.HasPrefix(l.raw, "... ") || strings.HasPrefix(l.raw, "...\t")
}

// segments splits the lines into documents.
func (p *Parser) segments() []segment {
	var docs []segment
	var version *VersionDirective
	var tags []TagDirective
	cur := segment{start: p.index.mark(0)}
	closeSegment := func(end Mark) {
		if cur.explicit || cur.hasContent() {
			cur.end = end
			docs = append(docs, cur)
		}
	}
	for i := range p.lines {
		l := p.lines[i]
		switch {
		case strings.HasPrefix(l.raw, "%") && !cur.explicit && !cur.hasContent():
			version, tags = parseDirective(l.text, version, tags)
		case isDocumentStart(&l):
			closeSegment(l.mark(0))
			cur = segment{explicit: true, version: version, tags: tags, start: l.mark(0)}
			version, tags = nil, nil
			rest := l.raw[3:]
			text := strings.TrimRight(stripComment(strings.TrimLeft(rest, " \t")), " \t")
			if text != "" {
				l.indent = 3 + len(rest) - len(strings.TrimLeft(rest, " \t"))
				l.text = text
				cur.lines = append(cur.lines, l)
			}
		case isDocumentEnd(&l):
			cur.ended = true
			closeSegment(l.mark(3))
			cur = segment{start: l.mark(0)}
		default:
			cur.lines = append(cur.lines, l)
		}
	}
	closeSegment(p.index.mark(len(p.input)))
	if len(docs) == 0 {
		docs = append(docs, segment{start: p.index.mark(0), end: p.index.mark(len(p.input))})
	}
	return docs
}

func parseDirective(text string, version *VersionDirective, tags []TagDirective) (*VersionDirective, []TagDirective) {
	fields := strings.Fields(text)
	switch {
	case len(fields) == 2 && fields[0] == "%YAML":
		major, minor, ok := strings.Cut(fields[1], ".")
		if !ok {
			break
		}
		ma, err1 := strconv.Atoi(major)
		mi, err2 := strconv.Atoi(minor)
		if err1 == nil && err2 == nil {
			version = &VersionDirective{Major: ma, Minor: mi}
		}
	case len(fields) == 3 && fields[0] == "%TAG":
		tags = append(tags, TagDirective{Handle: fields[1], Prefix: fields[2]})
	}
	return version, tags
}

func (p *Parser) document(seg segment) {
	p.doc = seg.lines
	p.pos = 0
	p.tags = seg.tags
	p.emit(Event{
		Type:          DOCUMENT_START_EVENT,
		Implicit:      !seg.explicit,
		Version:       seg.version,
		TagDirectives: seg.tags,
		StartMark:     seg.start,
		EndMark:       seg.start,
	})
	if p.nextContent() != nil {
		p.blockNode(-1, props{})
	}
	p.emit(Event{Type: DOCUMENT_END_EVENT, Implicit: !seg.ended, StartMark: seg.end, EndMark: seg.end})
}

func (p *Parser) emit(e Event) {
	p.events = append(p.events, e)
}

// nextContent skips blank and comment lines and returns the next line
// holding content, or nil at the end of the document.
func (p *Parser) nextContent() *line {
	for p.pos < len(p.doc) && p.doc[p.pos].text == "" {
		p.pos++
	}
	if p.pos >= len(p.doc) {
		return nil
	}
	return &p.doc[p.pos]
}

// here is the mark of the first line not consumed yet.
func (p *Parser) here() Mark {
	if p.pos < len(p.doc) {
		return p.doc[p.pos].mark(0)
	}
	if n := len(p.doc); n > 0 {
		l := &p.doc[n-1]
		return l.mark(len(l.raw))
	}
	return p.index.mark(len(p.input))
}

func isSeqEntry(text string) bool {
	return text == "-" || strings.HasPrefix(text, "- ") || strings.HasPrefix(text, "-\t")
}

func isExplicitKey(text string) bool {
	return text == "?" || strings.HasPrefix(text, "? ") || strings.HasPrefix(text, "?\t")
}

func isBlockScalarHeader(text string) bool {
	if text == "" || (text[0] != '|' && text[0] != '>') {
		return false
	}
	for i := 1; i < len(text); i++ {
		c := text[i]
		if c != '-' && c != '+' && !(c >= '1' && c <= '9') {
			return false
		}
	}
	return true
}

// mapColon returns the offset of the ':' that separates an implicit key
// from its value, or -1 when text is not a mapping entry.
func mapColon(text string) int {
	i := 0
	// Node properties in front of the key.
	for i < len(text) && (text[i] == '!' || text[i] == '&') {
		for i < len(text) && !isBlank(text[i]) {
			i++
		}
		for i < len(text) && isBlank(text[i]) {
			i++
		}
	}
	if i < len(text) {
		switch text[i] {
		case '"', '\'':
			i = skipQuoted(text, i)
		case '[', '{':
			i = skipFlow(text, i)
		case '|', '>':
			if isBlockScalarHeader(text[i:]) {
				return -1
			}
		}
	}
	for ; i < len(text); i++ {
		if text[i] == ':' && isBlankOrEnd(text, i+1) {
			return i
		}
	}
	return -1
}

// skipQuoted returns the offset just past the quoted scalar starting at i.
func skipQuoted(s string, i int) int {
	quote := s[i]
	for i++; i < len(s); i++ {
		switch {
		case quote == '"' && s[i] == '\\':
			i++
		case s[i] == quote:
			if quote == '\'' && i+1 < len(s) && s[i+1] == '\'' {
				i++
				continue
			}
			return i + 1
		}
	}
	return len(s)
}

// skipFlow returns the offset just past the flow collection starting at i.
func skipFlow(s string, i int) int {
	depth := 0
	for i < len(s) {
		switch s[i] {
		case '"', '\'':
			if i == 0 || strings.IndexByte(" \t[{,:", s[i-1]) >= 0 {
				i = skipQuoted(s, i)
				continue
			}
		case '[', '{':
			depth++
		case ']', '}':
			depth--
			if depth == 0 {
				return i + 1
			}
		}
		i++
	}
	return len(s)
}

// blockNode parses the node that starts on the next content line.
// The node must be indented deeper than parent; otherwise it is empty.
func (p *Parser) blockNode(parent int, pr props) {
	l := p.nextContent()
	if l == nil || l.indent <= parent {
		p.emptyScalar(pr, p.here())
		return
	}
	switch {
	case isSeqEntry(l.text):
		p.blockSequence(l.indent, parent, false, pr)
	case isExplicitKey(l.text) || mapColon(l.text) >= 0:
		p.blockMapping(l.indent, parent, pr)
	default:
		cur := *l
		p.pos++
		p.value(cur.text, cur.mark(cur.indent), parent, pr, false)
	}
}

// blockSequence parses the entries at indent. Lines indented less than
// indent but deeper than parent are read as if they were at indent. A line
// at indent that is not an entry is skipped, unless the sequence is an
// indentless mapping value, where it ends the sequence.
func (p *Parser) blockSequence(indent, parent int, indentless bool, pr props) {
	first := p.nextContent()
	p.emit(Event{
		Type:      SEQUENCE_START_EVENT,
		Anchor:    pr.anchor,
		Tag:       p.resolveTag(pr.tag),
		Implicit:  pr.tag == "",
		StartMark: first.mark(indent),
		EndMark:   first.mark(indent),
	})
	for {
		l := p.nextContent()
		if l == nil || l.indent <= parent {
			break
		}
		if l.indent > indent {
			p.pos++
			continue
		}
		if !isSeqEntry(l.text) {
			if indentless {
				break
			}
			p.pos++
			continue
		}
		cur := *l
		p.pos++
		p.entry(cur, 1, cur.indent)
	}
	end := p.here()
	p.emit(Event{Type: SEQUENCE_END_EVENT, StartMark: end, EndMark: end})
}

// blockMapping parses the pairs at indent. Lines indented less than indent
// but deeper than parent are read as if they were at indent, and lines at
// indent that hold no key are skipped.
func (p *Parser) blockMapping(indent, parent int, pr props) {
	first := p.nextContent()
	p.emit(Event{
		Type:      MAPPING_START_EVENT,
		Anchor:    pr.anchor,
		Tag:       p.resolveTag(pr.tag),
		Implicit:  pr.tag == "",
		StartMark: first.mark(indent),
		EndMark:   first.mark(indent),
	})
	for {
		l := p.nextContent()
		if l == nil || l.indent <= parent {
			break
		}
		if l.indent > indent {
			p.pos++
			continue
		}
		cur := *l
		if isExplicitKey(cur.text) {
			p.pos++
			p.entry(cur, 1, cur.indent)
			if v := p.nextContent(); v != nil && v.indent <= indent && v.indent > parent && (v.text == ":" || strings.HasPrefix(v.text, ": ")) {
				val := *v
				p.pos++
				p.entry(val, 1, val.indent)
			} else {
				p.emptyScalar(props{}, p.here())
			}
			continue
		}
		colon := mapColon(cur.text)
		if colon < 0 || isSeqEntry(cur.text) {
			p.pos++
			continue
		}
		p.pos++
		p.inline(strings.TrimRight(cur.text[:colon], " \t"), cur.mark(cur.indent), props{})
		after := cur.text[colon+1:]
		rest := strings.TrimLeft(after, " \t")
		col := cur.indent + colon + 1 + len(after) - len(rest)
		p.value(rest, cur.mark(col), cur.indent, props{}, true)
	}
	end := p.here()
	p.emit(Event{Type: MAPPING_END_EVENT, StartMark: end, EndMark: end})
}

// entry parses the node that follows a "-", "?" or ":" indicator at offset
// off of l. A nested sequence or mapping that starts on the same line is
// re-read as if it started a line of its own at that column.
func (p *Parser) entry(l line, off int, parent int) {
	after := l.text[off:]
	rest := strings.TrimLeft(after, " \t")
	col := l.indent + off + len(after) - len(rest)
	if rest != "" && (isSeqEntry(rest) || isExplicitKey(rest) || mapColon(rest) >= 0) {
		l.indent = col
		l.text = rest
		p.pos--
		p.doc[p.pos] = l
		p.blockNode(parent, props{})
		return
	}
	p.value(rest, l.mark(col), parent, props{}, false)
}

// value parses the node whose text starts on a line that has already been
// consumed. Continuation lines must be indented deeper than parent.
// An indentless sequence is accepted when the node is a mapping value.
func (p *Parser) value(text string, mark Mark, parent int, pr props, indentless bool) {
	own, rest, off := p.props(text, mark)
	pr = pr.merge(own)
	restMark := Mark{Index: mark.Index + off, Line: mark.Line, Column: mark.Column + off}
	switch {
	case rest == "":
		l := p.nextContent()
		switch {
		case l != nil && l.indent > parent:
			p.blockNode(parent, pr)
		case l != nil && indentless && l.indent == parent && isSeqEntry(l.text):
			p.blockSequence(parent, parent-1, true, pr)
		default:
			p.emptyScalar(pr, restMark)
		}
	case isBlockScalarHeader(rest):
		p.blockScalar(rest, parent, pr, restMark)
	default:
		p.inline(p.continuation(rest, parent), restMark, pr)
	}
}

// props reads the anchor and tag in front of text and returns them with
// the remaining text and its offset.
func (p *Parser) props(text string, mark Mark) (props, string, int) {
	var pr props
	toks := newScannerAt(text, mark).Scan()
	for _, t := range toks[1:] {
		switch t.Type {
		case ANCHOR_TOKEN:
			pr.anchor = t.Value
			continue
		case TAG_TOKEN:
			pr.tag = t.Value
			continue
		case STREAM_END_TOKEN:
			return pr, "", len(text)
		}
		return pr, text[t.Start:], t.Start
	}
	return pr, "", len(text)
}

// continuation joins the lines that continue a multi-line value.
// A single line break folds into a space and each blank line into "\n".
func (p *Parser) continuation(first string, parent int) string {
	var b strings.Builder
	b.WriteString(first)
	blank := 0
	for p.pos < len(p.doc) {
		l := &p.doc[p.pos]
		if l.text == "" {
			blank++
			p.pos++
			continue
		}
		if l.indent <= parent {
			break
		}
		if blank > 0 {
			b.WriteString(strings.Repeat("\n", blank))
		} else {
			b.WriteByte(' ')
		}
		blank = 0
		b.WriteString(l.text)
		p.pos++
	}
	return b.String()
}

func (p *Parser) emptyScalar(pr props, mark Mark) {
	p.scalar("", PLAIN_SCALAR_STYLE, pr, mark, mark)
}

func (p *Parser) scalar(value string, style ScalarStyle, pr props, start, end Mark) {
	p.emit(Event{
		Type:           SCALAR_EVENT,
		Anchor:         pr.anchor,
		Tag:            p.resolveTag(pr.tag),
		Value:          value,
		Style:          style,
		Implicit:       pr.tag == "" && style == PLAIN_SCALAR_STYLE,
		QuotedImplicit: pr.tag == "" && style != PLAIN_SCALAR_STYLE,
		StartMark:      start,
		EndMark:        end,
	})
}

func (p *Parser) alias(name string, start, end Mark) {
	p.emit(Event{Type: ALIAS_EVENT, Anchor: name, StartMark: start, EndMark: end})
}

var shortTags = map[string]string{
	"bool":      BOOL_TAG,
	"int":       INT_TAG,
	"float":     FLOAT_TAG,
	"str":       STR_TAG,
	"null":      NULL_TAG,
	"seq":       SEQ_TAG,
	"map":       MAP_TAG,
	"binary":    BINARY_TAG,
	"timestamp": TIMESTAMP_TAG,
	"merge":     MERGE_TAG,
}

// resolveTag expands a tag as written into its full form.
func (p *Parser) resolveTag(tag string) string {
	switch {
	case tag == "" || tag == "!":
		return tag
	case strings.HasPrefix(tag, "!<"):
		return strings.TrimSuffix(tag[2:], ">")
	}
	for _, d := range p.tags {
		if d.Handle != "!" && strings.HasPrefix(tag, d.Handle) {
			return d.Prefix + tag[len(d.Handle):]
		}
	}
	if strings.HasPrefix(tag, "!!") {
		if full, ok := shortTags[tag[2:]]; ok {
			return full
		}
		return coreTagPrefix + tag[2:]
	}
	return tag
}

// inline parses a complete node written on one logical line.
func (p *Parser) inline(text string, mark Mark, pr props) {
	f := &flowParser{p: p, text: text, toks: newScannerAt(text, mark).Scan()[1:]}
	pr = f.props(pr)
	t := f.peek()
	switch t.Type {
	case STREAM_END_TOKEN:
		p.emptyScalar(pr, t.StartMark)
	case ALIAS_TOKEN:
		p.alias(t.Value, t.StartMark, t.EndMark)
	case FLOW_SEQUENCE_START_TOKEN, FLOW_MAPPING_START_TOKEN:
		f.node(pr)
	case SCALAR_TOKEN:
		if t.Style != PLAIN_SCALAR_STYLE {
			f.node(pr)
			return
		}
		fallthrough
	default:
		value := strings.TrimRight(text[t.Start:], " \t")
		end := t.StartMark
		end.Index += len(value)
		end.Column += len(value)
		p.scalar(value, PLAIN_SCALAR_STYLE, pr, t.StartMark, end)
	}
}

type flowParser struct {
	p    *Parser
	text string
	toks []Token // ends with STREAM_END_TOKEN
	pos  int
}

func (f *flowParser) peek() Token {
	return f.toks[f.pos]
}

func (f *flowParser) next() {
	if f.toks[f.pos].Type != STREAM_END_TOKEN {
		f.pos++
	}
}

func (f *flowParser) props(pr props) props {
	for {
		switch t := f.peek(); t.Type {
		case ANCHOR_TOKEN:
			pr.anchor = t.Value
		case TAG_TOKEN:
			pr.tag = t.Value
		default:
			return pr
		}
		f.next()
	}
}

func (f *flowParser) node(pr props) {
	pr = f.props(pr)
	t := f.peek()
	switch t.Type {
	case ALIAS_TOKEN:
		f.next()
		f.p.alias(t.Value, t.StartMark, t.EndMark)
	case FLOW_SEQUENCE_START_TOKEN:
		f.sequence(pr)
	case FLOW_MAPPING_START_TOKEN:
		f.mapping(pr)
	case SCALAR_TOKEN:
		if t.Style == PLAIN_SCALAR_STYLE {
			f.plain(pr)
			return
		}
		f.next()
		value := t.Value
		if t.Style == DOUBLE_QUOTED_SCALAR_STYLE {
			value = unescapeDoubleQuoted(value)
		} else {
			value = strings.ReplaceAll(value, "''", "'")
		}
		f.p.scalar(value, t.Style, pr, t.StartMark, t.EndMark)
	default:
		f.p.emptyScalar(pr, t.StartMark)
	}
}

// valueIndicator reports whether the ':' token at i separates a key from
// its value rather than being part of a plain scalar.
func (f *flowParser) valueIndicator(i int) bool {
	t := f.toks[i]
	if t.End >= len(f.text) || strings.IndexByte(" \t\r\n,[]{}", f.text[t.End]) >= 0 {
		return true
	}
	if i > 0 {
		prev := f.toks[i-1]
		if prev.End == t.Start && (prev.Type == SCALAR_TOKEN && prev.Style != PLAIN_SCALAR_STYLE ||
			prev.Type == FLOW_SEQUENCE_END_TOKEN || prev.Type == FLOW_MAPPING_END_TOKEN) {
			return true
		}
	}
	return false
}

// plain reads a plain scalar, which may span several tokens.
func (f *flowParser) plain(pr props) {
	first := f.peek()
	last := first
	f.next()
	for {
		t := f.peek()
		switch {
		case t.Type == SCALAR_TOKEN && t.Style == PLAIN_SCALAR_STYLE,
			t.Type == BLOCK_ENTRY_TOKEN, t.Type == KEY_TOKEN,
			t.Type == VALUE_TOKEN && !f.valueIndicator(f.pos):
			last = t
			f.next()
			continue
		}
		break
	}
	f.p.scalar(f.text[first.Start:last.End], PLAIN_SCALAR_STYLE, pr, first.StartMark, last.EndMark)
}

func (f *flowParser) sequence(pr props) {
	start := f.peek()
	f.next()
	f.p.emit(Event{
		Type:      SEQUENCE_START_EVENT,
		Anchor:    pr.anchor,
		Tag:       f.p.resolveTag(pr.tag),
		Implicit:  pr.tag == "",
		Flow:      true,
		StartMark: start.StartMark,
		EndMark:   start.EndMark,
	})
	for {
		t := f.peek()
		switch t.Type {
		case FLOW_SEQUENCE_END_TOKEN, STREAM_END_TOKEN:
			f.next()
			f.p.emit(Event{Type: SEQUENCE_END_EVENT, StartMark: t.StartMark, EndMark: t.EndMark})
			return
		case FLOW_ENTRY_TOKEN:
			f.next()
			continue
		case KEY_TOKEN:
			f.next()
		}
		before := f.pos
		at := len(f.p.events)
		f.node(props{})
		if v := f.peek(); v.Type == VALUE_TOKEN {
			// A single pair written inside a sequence: [key: value].
			f.next()
			f.p.events = append(f.p.events, Event{})
			copy(f.p.events[at+1:], f.p.events[at:])
			f.p.events[at] = Event{
				Type:      MAPPING_START_EVENT,
				Implicit:  true,
				Flow:      true,
				StartMark: f.p.events[at+1].StartMark,
				EndMark:   f.p.events[at+1].StartMark,
			}
			f.pairValue(FLOW_SEQUENCE_END_TOKEN)
			f.p.emit(Event{Type: MAPPING_END_EVENT, StartMark: v.EndMark, EndMark: v.EndMark})
		}
		if f.pos == before {
			f.next()
		}
	}
}

func (f *flowParser) mapping(pr props) {
	start := f.peek()
	f.next()
	f.p.emit(Event{
		Type:      MAPPING_START_EVENT,
		Anchor:    pr.anchor,
		Tag:       f.p.resolveTag(pr.tag),
		Implicit:  pr.tag == "",
		Flow:      true,
		StartMark: start.StartMark,
		EndMark:   start.EndMark,
	})
	for {
		t := f.peek()
		switch t.Type {
		case FLOW_MAPPING_END_TOKEN, STREAM_END_TOKEN:
			f.next()
			f.p.emit(Event{Type: MAPPING_END_EVENT, StartMark: t.StartMark, EndMark: t.EndMark})
			return
		case FLOW_ENTRY_TOKEN:
			f.next()
			continue
		case KEY_TOKEN:
			f.next()
		}
		before := f.pos
		f.node(props{})
		if f.peek().Type == VALUE_TOKEN {
			f.next()
			f.pairValue(FLOW_MAPPING_END_TOKEN)
		} else {
			f.p.emptyScalar(props{}, f.peek().StartMark)
		}
		if f.pos == before {
			f.next()
		}
	}
}

// pairValue reads the value after a ':' in a flow collection closed by end.
func (f *flowParser) pairValue(end TokenType) {
	switch t := f.peek(); t.Type {
	case FLOW_ENTRY_TOKEN, STREAM_END_TOKEN, end:
		f.p.emptyScalar(props{}, t.StartMark)
	default:
		f.node(props{})
	}
}

func (p *Parser) blockScalar(header string, parent int, pr props, mark Mark) {
	style := LITERAL_SCALAR_STYLE
	if header[0] == '>' {
		style = FOLDED_SCALAR_STYLE
	}
	var chomp byte
	hint := 0
	for i := 1; i < len(header); i++ {
		switch c := header[i]; {
		case c == '-' || c == '+':
			chomp = c
		case c >= '1' && c <= '9':
			hint = int(c - '0')
		}
	}

	var raws []line
	for p.pos < len(p.doc) {
		l := p.doc[p.pos]
		if strings.TrimSpace(l.raw) != "" && l.indent <= parent {
			break
		}
		raws = append(raws, l)
		p.pos++
	}

	indent := 0
	switch {
	case hint > 0 && parent < 0:
		indent = hint
	case hint > 0:
		indent = parent + hint
	default:
		for _, l := range raws {
			if strings.TrimSpace(l.raw) != "" {
				indent = l.indent
				break
			}
		}
	}

	content := make([]string, 0, len(raws))
	for _, l := range raws {
		switch {
		case strings.TrimSpace(l.raw) == "":
			content = append(content, "")
		case l.indent < indent:
			content = append(content, l.raw[l.indent:])
		default:
			content = append(content, l.raw[indent:])
		}
	}
	trailing := 0
	for trailing < len(content) && content[len(content)-1-trailing] == "" {
		trailing++
	}
	body := content[:len(content)-trailing]

	var value string
	if style == LITERAL_SCALAR_STYLE {
		value = strings.Join(body, "\n")
	} else {
		value = foldLines(body)
	}
	switch {
	case len(body) == 0 && chomp == '+':
		value = strings.Repeat("\n", trailing)
	case len(body) == 0:
		value = ""
	case chomp == '-':
	case chomp == '+':
		value += "\n" + strings.Repeat("\n", trailing)
	default:
		value += "\n"
	}
	p.scalar(value, style, pr, mark, p.here())
}

// foldLines joins the lines of a folded scalar. Adjacent lines fold into
// a space unless either is more indented; each empty line is kept as a
// line break.
func foldLines(lines []string) string {
	var b strings.Builder
	prevMore := false
	empty := 0
	first := true
	for _, ln := range lines {
		if ln == "" {
			empty++
			continue
		}
		more := ln[0] == ' ' || ln[0] == '\t'
		switch {
		case first:
			b.WriteString(strings.Repeat("\n", empty))
		case empty > 0 && (more || prevMore):
			b.WriteString(strings.Repeat("\n", empty+1))
		case empty > 0:
			b.WriteString(strings.Repeat("\n", empty))
		case more || prevMore:
			b.WriteByte('\n')
		default:
			b.WriteByte(' ')
		}
		b.WriteString(ln)
		first = false
		empty = 0
		prevMore = more
	}
	return b.String()
}

// unescapeDoubleQuoted decodes the escape sequences of a double-quoted
// scalar. Unknown escapes are kept as written.
func unescapeDoubleQuoted(s string) string {
	if strings.IndexByte(s, '\\') < 0 {
		return s
	}
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}
		i++
		switch e := s[i]; e {
		case '0':
			b.WriteByte(0)
		case 'a':
			b.WriteByte('\a')
		case 'b':
			b.WriteByte('\b')
		case 't', '\t':
			b.WriteByte('\t')
		case 'n':
			b.WriteByte('\n')
		case 'v':
			b.WriteByte('\v')
		case 'f':
			b.WriteByte('\f')
		case 'r':
			b.WriteByte('\r')
		case 'e':
			b.WriteByte(0x1B)
		case ' ', '"', '/', '\\':
			b.WriteByte(e)
		case 'N':
			b.WriteRune('\u0085')
		case '_':
			b.WriteRune('\u00A0')
		case 'L':
			b.WriteRune('\u2028')
		case 'P':
			b.WriteRune('\u2029')
		case '\n':
			for i+1 < len(s) && isBlank(s[i+1]) {
				i++
			}
		case 'x', 'u', 'U':
			n := 2
			if e == 'u' {
				n = 4
			} else if e == 'U' {
				n = 8
			}
			if r, ok := hexRune(s[i+1:], n); ok {
				b.WriteRune(r)
				i += n
				break
			}
			b.WriteByte('\\')
			b.WriteByte(e)
		default:
			b.WriteByte('\\')
			b.WriteByte(e)
		}
	}
	return b.String()
}

func hexRune(s string, n int) (rune, bool) {
	if len(s) < n {
		return 0, false
	}
	var r rune
	for i := 0; i < n; i++ {
		if !isHex(s[i]) {
			return 0, false
		}
		r = r<<4 | asHex(s[i])
	}
	if !utf8.ValidRune(r) {
		return utf8.RuneError, true
	}
	return r, true
}
