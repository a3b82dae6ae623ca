//
// Copyright (c) 2011-2019 Canonical Ltd
// Copyright (c) 2006-2010 Kirill Simonov
//
// Permission is hereby granted, free of charge, to any person obtaining a copy of
// this software and associated documentation files (the "Software"), to deal in
// the Software without restriction, including without limitation the rights to
// use, copy, modify, merge, publish, distribute, sublicense, and/or sell copies
// of the Software, and to permit persons to whom the Software is furnished to do
// so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Emitter stage: Writes node trees as YAML text.
// Chooses collection and scalar styles, tracks indentation and writes
// anchors, aliases and tags.

package libyaml

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"
)

const (
	flowIndent      = 2
	simpleLimit     = 64
	autoFlowItems   = 5
	autoFlowPairs   = 3
	flushThreshold  = 4096
	minIndent       = 2
	maxIndent       = 9
	fallbackWidth   = 80
	canonicalMajor  = 1
	canonicalMinor  = 2
	documentStart   = "---"
	documentEnd     = "..."
	verbatimTagOpen = "!<"
)

// Emitter writes documents to an io.Writer.
type Emitter struct {
	w      io.Writer
	buffer []byte

	bestIndent    int
	bestWidth     int
	canonical     bool
	flowStyle     FlowPreference
	unicode       bool
	lineBreak     LineBreak
	prefixes      []TagPrefix
	explicitStart bool
	explicitEnd   bool
	plainKeys     bool
	sortKeys      bool
	desolver      *Desolver

	tree    *Tree
	anchors map[NodeID]string
	emitted map[NodeID]bool

	indents    []int
	indent     int
	flowLevel  int
	line       int
	column     int
	whitespace bool
	indention  bool
	documents  int
}

// NewEmitter returns an emitter writing to w.
func NewEmitter(w io.Writer, opts *Options) *Emitter {
	if opts == nil {
		opts = DefaultOptions()
	}
	indent := opts.Indent
	if indent < minIndent {
		indent = minIndent
	}
	if indent > maxIndent {
		indent = maxIndent
	}
	width := opts.LineWidth
	if width <= 2*indent {
		width = fallbackWidth
	}
	lineBreak := opts.LineBreak
	if lineBreak == ANY_BREAK {
		lineBreak = LN_BREAK
	}
	prefixes := append([]TagPrefix(nil), opts.TagPrefixes...)
	if len(prefixes) == 0 {
		prefixes = DefaultTagPrefixes
	}
	return &Emitter{
		w:             w,
		bestIndent:    indent,
		bestWidth:     width,
		canonical:     opts.Canonical,
		flowStyle:     opts.FlowStyle,
		unicode:       opts.Unicode,
		lineBreak:     lineBreak,
		prefixes:      prefixes,
		explicitStart: opts.ExplicitStart || opts.Canonical,
		explicitEnd:   opts.ExplicitEnd || opts.Canonical,
		plainKeys:     opts.PlainKeys,
		sortKeys:      opts.SortKeys,
		desolver:      NewDesolver(opts),
		indent:        -1,
		whitespace:    true,
		indention:     true,
	}
}

// Emit writes t as a single document.
func Emit(t *Tree, opts *Options) (string, error) {
	return EmitAll([]*Tree{t}, opts)
}

// EmitAll writes every tree as a document of one stream.
func EmitAll(trees []*Tree, opts *Options) (string, error) {
	var b strings.Builder
	e := NewEmitter(&b, opts)
	for _, t := range trees {
		if err := e.Emit(t); err != nil {
			return b.String(), err
		}
	}
	return b.String(), nil
}

// Emit writes t as the next document of the stream and flushes it.
func (e *Emitter) Emit(t *Tree) (err error) {
	defer handleErr(&err)
	if t == nil {
		Fail(EmitterError{Message: "cannot emit a nil tree"})
	}
	if !t.Empty() && (t.Root < 0 || int(t.Root) >= t.Len()) {
		Fail(EmitterError{Message: fmt.Sprintf("node %d is not part of the tree", t.Root)})
	}
	e.tree = t
	e.anchors = assignAnchors(t)
	e.emitted = make(map[NodeID]bool)
	e.indents = e.indents[:0]
	e.indent = -1
	e.flowLevel = 0
	for _, name := range e.anchors {
		e.checkAnchor(name)
	}

	if e.canonical {
		e.writeIndicator(fmt.Sprintf("%%YAML %d.%d", canonicalMajor, canonicalMinor), true, false, false)
		e.putLineBreak()
	}
	if t.Empty() || e.explicitStart || e.documents > 0 {
		e.writeIndicator(documentStart, true, false, false)
	}
	if !t.Empty() {
		e.node(t.Root, false)
	}
	if e.column > 0 || !e.indention {
		e.putLineBreak()
	}
	if e.explicitEnd {
		e.writeIndicator(documentEnd, true, false, false)
		e.putLineBreak()
	}
	e.documents++
	e.tree, e.anchors, e.emitted = nil, nil, nil
	e.flush()
	return nil
}

// Flush writes any buffered output.
func (e *Emitter) Flush() (err error) {
	defer handleErr(&err)
	e.flush()
	return nil
}

func (e *Emitter) flush() {
	if len(e.buffer) == 0 {
		return
	}
	if _, err := e.w.Write(e.buffer); err != nil {
		Fail(WriterError{Err: err})
	}
	e.buffer = e.buffer[:0]
}

func (e *Emitter) checkAnchor(name string) {
	if name == "" {
		Fail(EmitterError{Message: "anchor value must not be empty"})
	}
	for i := 0; i < len(name); i++ {
		if !isAnchorChar(name[i]) {
			Fail(EmitterError{Message: fmt.Sprintf("anchor %q must contain alphanumerical characters only", name)})
		}
	}
}

// Output primitives

// Put a character to the output buffer.
func (e *Emitter) put(value byte) {
	e.buffer = append(e.buffer, value)
	e.column++
}

// Write a string to the output buffer, counting columns in runes.
func (e *Emitter) writeString(s string) {
	e.buffer = append(e.buffer, s...)
	e.column += utf8.RuneCountInString(s)
	if len(e.buffer) >= flushThreshold {
		e.flush()
	}
}

// Put a line break to the output buffer.
func (e *Emitter) putLineBreak() {
	switch e.lineBreak {
	case CR_BREAK:
		e.buffer = append(e.buffer, '\r')
	case CRLN_BREAK:
		e.buffer = append(e.buffer, '\r', '\n')
	default:
		e.buffer = append(e.buffer, '\n')
	}
	e.column = 0
	e.line++
	e.indention = true
	e.whitespace = true
}

func (e *Emitter) increaseIndent(flow bool) {
	e.indents = append(e.indents, e.indent)
	switch {
	case e.indent < 0 && flow:
		e.indent = flowIndent
	case e.indent < 0:
		e.indent = 0
	case flow:
		e.indent += flowIndent
	default:
		e.indent += e.bestIndent
	}
}

func (e *Emitter) decreaseIndent() {
	e.indent = e.indents[len(e.indents)-1]
	e.indents = e.indents[:len(e.indents)-1]
}

func (e *Emitter) writeIndent() {
	indent := e.indent
	if indent < 0 {
		indent = 0
	}
	if !e.indention || e.column > indent || (e.column == indent && !e.whitespace) {
		e.putLineBreak()
	}
	for e.column < indent {
		e.put(' ')
	}
	e.whitespace = true
	e.indention = true
}

func (e *Emitter) writeIndicator(indicator string, needWhitespace, isWhitespace, isIndention bool) {
	if needWhitespace && !e.whitespace {
		e.put(' ')
	}
	e.writeString(indicator)
	e.whitespace = isWhitespace
	e.indention = e.indention && isIndention
}

// Nodes

func (e *Emitter) node(id NodeID, key bool) {
	if id < 0 || int(id) >= e.tree.Len() {
		Fail(EmitterError{Message: fmt.Sprintf("node %d is not part of the tree", id)})
	}
	anchor := e.anchors[id]
	if anchor != "" && e.emitted[id] {
		e.writeIndicator("*"+anchor, true, false, false)
		return
	}
	e.emitted[id] = true
	n := e.tree.Node(id)
	if anchor == "" && n.Anchor != "" {
		anchor = n.Anchor
		e.checkAnchor(anchor)
	}
	if anchor != "" {
		e.writeIndicator("&"+anchor, true, false, false)
	}

	switch n.Kind {
	case ScalarNode:
		e.scalar(n, key)
	case SequenceNode:
		e.collectionTag(n)
		if e.flow(n) {
			e.flowSequence(n.Items)
		} else {
			e.blockSequence(n.Items)
		}
	case MappingNode:
		e.collectionTag(n)
		pairs := e.orderedPairs(n)
		if e.flow(n) {
			e.flowMapping(pairs)
		} else {
			e.blockMapping(pairs)
		}
	default:
		Fail(EmitterError{Message: fmt.Sprintf("cannot emit node with unknown kind %d", n.Kind)})
	}
}

// flow reports whether the collection n is written in flow style.
func (e *Emitter) flow(n *Node) bool {
	empty := len(n.Items) == 0 && len(n.Pairs) == 0
	switch {
	case e.flowLevel > 0 || empty:
		return true
	case e.canonical || e.flowStyle == FlowNever:
		return false
	case e.flowStyle == FlowAlways || n.Style&ForceFlowStyle != 0:
		return true
	}
	if n.Kind == SequenceNode {
		return len(n.Items) <= autoFlowItems && e.allScalars(n.Items)
	}
	if len(n.Pairs) > autoFlowPairs {
		return false
	}
	for _, p := range n.Pairs {
		if !e.allScalars([]NodeID{p.Key, p.Value}) {
			return false
		}
	}
	return true
}

func (e *Emitter) allScalars(ids []NodeID) bool {
	for _, id := range ids {
		if e.tree.Node(id).Kind != ScalarNode {
			return false
		}
	}
	return true
}

func (e *Emitter) orderedPairs(n *Node) []Pair {
	if !e.sortKeys {
		return n.Pairs
	}
	pairs := append([]Pair(nil), n.Pairs...)
	sort.SliceStable(pairs, func(i, j int) bool {
		a, b := e.tree.Node(pairs[i].Key), e.tree.Node(pairs[j].Key)
		if a.Kind != ScalarNode || b.Kind != ScalarNode {
			return a.Kind == ScalarNode && b.Kind != ScalarNode
		}
		return a.Value < b.Value
	})
	return pairs
}

// simple reports whether the node can follow "key:" or "-" on the same line.
func (e *Emitter) simple(id NodeID) bool {
	if e.anchors[id] != "" && e.emitted[id] {
		return true
	}
	n := e.tree.Node(id)
	switch n.Kind {
	case ScalarNode:
		if e.blockStyleTag(n.Tag) != 0 {
			return false
		}
		return utf8.RuneCountInString(n.Value) < simpleLimit && !strings.ContainsAny(n.Value, "\n\r")
	case SequenceNode:
		return len(n.Items) == 0
	case MappingNode:
		return len(n.Pairs) == 0
	}
	return false
}

// value writes the node that follows a "key:", "-", "?" or ":" indicator.
// Long or multi-line flow scalars start on the next line, one level deeper.
func (e *Emitter) value(id NodeID) {
	if e.simple(id) {
		e.node(id, false)
		return
	}
	n := e.tree.Node(id)
	if n.Kind != ScalarNode {
		// Block collections break the line themselves; flow ones stay
		// on the indicator's line.
		e.node(id, false)
		return
	}
	if _, style := e.scalarStyle(n, false); style == LITERAL_SCALAR_STYLE || style == FOLDED_SCALAR_STYLE {
		e.node(id, false)
		return
	}
	e.increaseIndent(false)
	e.writeIndent()
	e.node(id, false)
	e.decreaseIndent()
}

func (e *Emitter) blockSequence(items []NodeID) {
	e.increaseIndent(false)
	for _, item := range items {
		e.writeIndent()
		e.writeIndicator("-", true, false, true)
		e.value(item)
	}
	e.decreaseIndent()
}

func (e *Emitter) blockMapping(pairs []Pair) {
	e.increaseIndent(false)
	for _, p := range pairs {
		e.writeIndent()
		if e.simple(p.Key) {
			e.node(p.Key, true)
			e.writeIndicator(":", false, false, false)
		} else {
			e.writeIndicator("?", true, false, true)
			e.value(p.Key)
			e.writeIndent()
			e.writeIndicator(":", true, false, true)
		}
		e.value(p.Value)
	}
	e.decreaseIndent()
}

func (e *Emitter) flowSequence(items []NodeID) {
	e.writeIndicator("[", true, true, false)
	e.increaseIndent(true)
	e.flowLevel++
	for i, item := range items {
		if i > 0 {
			e.writeIndicator(",", false, false, false)
		}
		if e.canonical || e.column > e.bestWidth {
			e.writeIndent()
		}
		e.node(item, false)
	}
	e.flowLevel--
	e.decreaseIndent()
	e.writeIndicator("]", false, false, false)
}

func (e *Emitter) flowMapping(pairs []Pair) {
	e.writeIndicator("{", true, true, false)
	e.increaseIndent(true)
	e.flowLevel++
	for i, p := range pairs {
		if i > 0 {
			e.writeIndicator(",", false, false, false)
		}
		if e.canonical || e.column > e.bestWidth {
			e.writeIndent()
		}
		if e.simple(p.Key) {
			e.node(p.Key, true)
			e.writeIndicator(":", false, false, false)
		} else {
			e.writeIndicator("?", true, false, false)
			e.node(p.Key, true)
			e.writeIndicator(":", true, false, false)
		}
		e.node(p.Value, false)
	}
	e.flowLevel--
	e.decreaseIndent()
	e.writeIndicator("}", false, false, false)
}

// Tags

func (e *Emitter) collectionTag(n *Node) {
	if tag := e.desolver.CollectionTag(n); tag != "" {
		e.writeTag(tag)
	}
}

// writeTag writes tag through the longest matching prefix, or verbatim.
func (e *Emitter) writeTag(tag string) {
	best := -1
	for i, p := range e.prefixes {
		if strings.HasPrefix(tag, p.Prefix) && len(tag) > len(p.Prefix) &&
			(best < 0 || len(p.Prefix) > len(e.prefixes[best].Prefix)) {
			best = i
		}
	}
	if best >= 0 {
		suffix := tag[len(e.prefixes[best].Prefix):]
		if validTagSuffix(suffix) {
			e.writeIndicator(e.prefixes[best].Handle+suffix, true, false, false)
			return
		}
	}
	e.writeIndicator(verbatimTagOpen+tag+">", true, false, false)
}

func validTagSuffix(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isTagChar(s[i]) {
			return false
		}
	}
	return true
}

// blockStyleTag returns the block style a tag asks for, if any.
func (e *Emitter) blockStyleTag(tag string) ScalarStyle {
	switch {
	case e.canonical:
		return 0
	case strings.Contains(tag, "literal"):
		return LITERAL_SCALAR_STYLE
	case strings.Contains(tag, "folded"):
		return FOLDED_SCALAR_STYLE
	}
	return 0
}

// Scalars

type scalarAnalysis struct {
	multiline    bool
	flowPlain    bool
	blockPlain   bool
	singleQuoted bool
	block        bool
}

// startIndicators may not begin a plain scalar.
const startIndicators = "-?:,#[]{}&*!|>'\"%@`"

// analyzeScalar decides which styles can represent value faithfully.
func (e *Emitter) analyzeScalar(value string) scalarAnalysis {
	if value == "" {
		return scalarAnalysis{blockPlain: true, singleQuoted: true}
	}
	var (
		flowIndicators, blockIndicators bool
		lineBreaks, special, tabs        bool
		leadingSpace, trailingSpace      bool
		leadingBreak, spaceBreak         bool
		previousSpace, singleQuote       bool
	)
	if strings.HasPrefix(value, "---") || strings.HasPrefix(value, "...") {
		flowIndicators, blockIndicators = true, true
	}
	for i, r := range value {
		next := i + utf8.RuneLen(r)
		followedByWhitespace := next >= len(value) || isBlank(value[next]) || isBreak(value[next])
		if i == 0 && strings.ContainsRune(startIndicators, r) {
			flowIndicators, blockIndicators = true, true
		}
		switch r {
		case '#', '[', ']', '{', '}', '&', '*', '!', '|', '>', '"', '%', '@', '`':
			flowIndicators, blockIndicators = true, true
		case '\'':
			flowIndicators, blockIndicators = true, true
			singleQuote = true
		case ',', '?':
			flowIndicators = true
		case ':':
			flowIndicators = true
			if followedByWhitespace {
				blockIndicators = true
			}
		}

		switch {
		case r == '\t':
			tabs = true
		case r == '\r' || isUnicodeBreak(r) || r == utf8.RuneError:
			special = true
		case r != '\n' && (!isPrintable(r) || r > 0x7F && !e.unicode):
			special = true
		}
		switch {
		case r == ' ':
			if i == 0 {
				leadingSpace = true
			}
			if next == len(value) {
				trailingSpace = true
			}
			previousSpace = true
		case r == '\n':
			lineBreaks = true
			if i == 0 {
				leadingBreak = true
			}
			if previousSpace {
				spaceBreak = true
			}
			previousSpace = false
		default:
			previousSpace = false
		}
	}

	a := scalarAnalysis{
		multiline:    lineBreaks,
		flowPlain:    true,
		blockPlain:   true,
		singleQuoted: true,
		block:        lineBreaks,
	}
	if leadingSpace || trailingSpace {
		a.flowPlain, a.blockPlain, a.singleQuoted, a.block = false, false, false, false
	}
	if lineBreaks || tabs || special || leadingBreak || spaceBreak {
		a.flowPlain, a.blockPlain = false, false
	}
	if special || tabs || singleQuote {
		a.singleQuoted = false
	}
	if special || spaceBreak {
		a.block = false
	}
	if flowIndicators {
		a.flowPlain = false
	}
	if blockIndicators {
		a.blockPlain = false
	}
	return a
}

// scalarStyle picks the style of the scalar n and the tag written with it.
func (e *Emitter) scalarStyle(n *Node, key bool) (string, ScalarStyle) {
	tag, mustQuote := e.desolver.ScalarTag(n)
	a := e.analyzeScalar(n.Value)

	plain := a.blockPlain
	if e.flowLevel > 0 {
		plain = a.flowPlain
	}
	if n.Tag != STR_TAG && n.Value != "" && Resolve(n.Value) == n.Tag {
		// A leading '-' here is a sign.
		plain = true
	}
	if key && (!e.plainKeys || n.Value == "") {
		plain = false
	}
	if tag == "" && n.Tag != STR_TAG && n.Tag != "" && !plain {
		// Quoting would turn an inferred type into a string.
		tag = n.Tag
	}

	switch {
	case e.canonical:
		return tag, DOUBLE_QUOTED_SCALAR_STYLE
	case e.blockStyleTag(n.Tag) != 0 && e.flowLevel == 0 && !key:
		return tag, e.blockStyleTag(n.Tag)
	case plain && !mustQuote:
		return tag, PLAIN_SCALAR_STYLE
	case a.multiline && a.block && e.flowLevel == 0 && !key:
		return tag, LITERAL_SCALAR_STYLE
	case a.singleQuoted && !a.multiline:
		return tag, SINGLE_QUOTED_SCALAR_STYLE
	}
	return tag, DOUBLE_QUOTED_SCALAR_STYLE
}

func (e *Emitter) scalar(n *Node, key bool) {
	tag, style := e.scalarStyle(n, key)
	if tag != "" {
		e.writeTag(tag)
	}
	switch style {
	case PLAIN_SCALAR_STYLE:
		e.writePlain(n.Value)
	case SINGLE_QUOTED_SCALAR_STYLE:
		e.writeSingleQuoted(n.Value)
	case DOUBLE_QUOTED_SCALAR_STYLE:
		e.writeDoubleQuoted(n.Value)
	case LITERAL_SCALAR_STYLE:
		e.writeLiteral(n.Value)
	case FOLDED_SCALAR_STYLE:
		e.writeFolded(n.Value)
	}
}

func (e *Emitter) writePlain(value string) {
	if len(value) > 0 && !e.whitespace {
		e.put(' ')
	}
	e.writeString(value)
	e.whitespace = false
	e.indention = false
}

func (e *Emitter) writeSingleQuoted(value string) {
	e.writeIndicator("'", true, false, false)
	e.writeString(strings.ReplaceAll(value, "'", "''"))
	e.writeIndicator("'", false, false, false)
	e.whitespace = false
	e.indention = false
}

func (e *Emitter) writeDoubleQuoted(value string) {
	e.writeIndicator("\"", true, false, false)
	var b strings.Builder
	for _, r := range value {
		switch {
		case r == '"':
			b.WriteString(`\"`)
		case r == '\\':
			b.WriteString(`\\`)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\r':
			b.WriteString(`\r`)
		case r == '\t':
			b.WriteString(`\t`)
		case !isPrintable(r) || r == 0x85 || isUnicodeBreak(r) || r > 0x7F && !e.unicode:
			if r > 0xFFFF {
				fmt.Fprintf(&b, `\U%08X`, r)
			} else {
				fmt.Fprintf(&b, `\u%04X`, r)
			}
		default:
			b.WriteRune(r)
		}
	}
	e.writeString(b.String())
	e.writeIndicator("\"", false, false, false)
	e.whitespace = false
	e.indention = false
}

// writeBlockScalarHints writes the indentation and chomping indicators.
func (e *Emitter) writeBlockScalarHints(value string) {
	if value != "" && (value[0] == ' ' || value[0] == '\n') {
		e.writeIndicator(string(rune('0'+e.bestIndent)), false, false, false)
	}
	switch {
	case !strings.HasSuffix(value, "\n"):
		e.writeIndicator("-", false, false, false)
	case value == "\n" || strings.HasSuffix(value, "\n\n"):
		e.writeIndicator("+", false, false, false)
	}
}

// blockIndent is the column of the content lines of a block scalar: one
// level deeper than the collection holding it.
func (e *Emitter) blockIndent() int {
	if e.indent < 0 {
		return e.bestIndent
	}
	return e.indent + e.bestIndent
}

func (e *Emitter) writeLiteral(value string) {
	e.writeIndicator("|", true, false, false)
	e.writeBlockScalarHints(value)
	e.increaseIndentTo(e.blockIndent())
	e.putLineBreak()
	e.writeBlockLines(value, false)
	e.decreaseIndent()
}

// writeFolded writes value so that folding it back yields value again: a
// break between two lines that are not more indented is written as an
// empty line, and long lines are wrapped at spaces.
func (e *Emitter) writeFolded(value string) {
	e.writeIndicator(">", true, false, false)
	e.writeBlockScalarHints(value)
	e.increaseIndentTo(e.blockIndent())
	e.putLineBreak()
	e.writeBlockLines(value, true)
	e.decreaseIndent()
}

func (e *Emitter) increaseIndentTo(indent int) {
	e.indents = append(e.indents, e.indent)
	e.indent = indent
}

// writeBlockLines writes the content lines of a block scalar. The final
// line break of value is written by the header's chomping indicator.
func (e *Emitter) writeBlockLines(value string, folded bool) {
	body := strings.TrimSuffix(value, "\n")
	if body == "" {
		if value != "" {
			e.putLineBreak()
		}
		return
	}
	lines := strings.Split(body, "\n")
	prevText := -1
	for i, ln := range lines {
		if ln != "" && folded && prevText >= 0 && i > 0 {
			more := ln[0] == ' ' || ln[0] == '\t'
			prev := lines[prevText]
			prevMore := prev[0] == ' ' || prev[0] == '\t'
			if !more && !prevMore {
				e.putLineBreak()
			}
		}
		if i > 0 {
			e.putLineBreak()
		}
		if ln == "" {
			continue
		}
		e.writeIndent()
		if folded && ln[0] != ' ' && ln[0] != '\t' {
			e.writeWrapped(ln)
		} else {
			e.writeString(ln)
		}
		e.whitespace = false
		e.indention = false
		prevText = i
	}
	e.putLineBreak()
}

// writeWrapped writes a folded line, breaking at single spaces once the
// line is wider than the preferred width.
func (e *Emitter) writeWrapped(ln string) {
	for i := 0; i < len(ln); i++ {
		c := ln[i]
		if c == ' ' && e.column > e.bestWidth && i > 0 && ln[i-1] != ' ' && i+1 < len(ln) && ln[i+1] != ' ' {
			e.putLineBreak()
			e.writeIndent()
			continue
		}
		e.buffer = append(e.buffer, c)
		if c < 0x80 || c >= 0xC0 {
			e.column++
		}
	}
}
