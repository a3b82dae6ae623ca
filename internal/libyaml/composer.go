//
// Copyright (c) 2011-2019 Canonical Ltd
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Composer stage: Builds one node tree per document from an event stream.
// Handles document boundaries, anchors, aliases and tag resolution.

package libyaml

import "fmt"

// Composer produces node trees out of an event stream.
type Composer struct {
	events  []Event
	pos     int
	tree    *Tree
	anchors map[string]NodeID
	aliased int // nodes created by alias copies in the current document
}

const (
	// 400,000 nodes is ~500kb of dense object declarations, or ~5kb of
	// dense object declarations with 10000% alias expansion
	aliasRatioRangeLow = 400000

	// 4,000,000 nodes is ~5MB of dense object declarations, or ~4.5MB of
	// dense object declarations with 10% alias expansion
	aliasRatioRangeHigh = 4000000

	aliasRatioRange = float64(aliasRatioRangeHigh - aliasRatioRangeLow)
)

// allowedAliasRatio returns the share of a document's nodes that may come
// from alias expansion.
func allowedAliasRatio(nodes int) float64 {
	switch {
	case nodes <= aliasRatioRangeLow:
		return 0.99
	case nodes >= aliasRatioRangeHigh:
		return 0.10
	default:
		return 0.99 - 0.89*(float64(nodes-aliasRatioRangeLow)/aliasRatioRange)
	}
}

// NewComposer returns a composer reading events.
func NewComposer(events []Event) *Composer {
	return &Composer{events: events}
}

// Compose parses text and composes its first document.
func Compose(text string) (*Tree, error) {
	tree, err := NewComposer(Parse(text)).ComposeDocument()
	if tree == nil && err == nil {
		tree = NewTree()
	}
	return tree, err
}

// ComposeAll parses text and composes every document in it.
func ComposeAll(text string) ([]*Tree, error) {
	c := NewComposer(Parse(text))
	var trees []*Tree
	for {
		tree, err := c.ComposeDocument()
		if err != nil {
			return trees, err
		}
		if tree == nil {
			return trees, nil
		}
		trees = append(trees, tree)
	}
}

// ComposeDocument composes the next document.
// It returns a nil tree at the end of the stream and a tree with no root
// for an empty document.
//
// On error the rest of the failed document is skipped, so the next call
// continues with the following document.
func (c *Composer) ComposeDocument() (tree *Tree, err error) {
	defer func() {
		if err != nil {
			tree = nil
			c.skipDocument()
		}
	}()
	defer handleErr(&err)

	if c.peek() == STREAM_START_EVENT {
		c.pos++
	}
	switch c.peek() {
	case NO_EVENT, STREAM_END_EVENT:
		return nil, nil
	case DOCUMENT_START_EVENT:
		c.pos++
	}

	c.tree = NewTree()
	c.anchors = make(map[string]NodeID)
	c.aliased = 0
	c.tree.Root = c.node()
	if c.peek() == DOCUMENT_END_EVENT {
		c.pos++
	}
	tree, c.tree, c.anchors = c.tree, nil, nil
	return tree, nil
}

// skipDocument moves past the end of the current document.
func (c *Composer) skipDocument() {
	for c.pos < len(c.events) {
		switch c.events[c.pos].Type {
		case DOCUMENT_END_EVENT:
			c.pos++
			return
		case DOCUMENT_START_EVENT, STREAM_END_EVENT:
			return
		}
		c.pos++
	}
}

// peek returns the type of the next event, or NO_EVENT when the events
// are exhausted.
func (c *Composer) peek() EventType {
	if c.pos >= len(c.events) {
		return NO_EVENT
	}
	return c.events[c.pos].Type
}

// mark returns the start of the next event.
func (c *Composer) mark() Mark {
	if c.pos >= len(c.events) {
		if n := len(c.events); n > 0 {
			return c.events[n-1].EndMark
		}
		return Mark{}
	}
	return c.events[c.pos].StartMark
}

func (c *Composer) fail(context string, contextMark Mark, format string, args ...any) {
	Fail(ComposerError{
		ContextMessage: context,
		ContextMark:    contextMark,
		Mark:           c.mark(),
		Message:        fmt.Sprintf(format, args...),
	})
}

// expect consumes the closing event of a collection that started at start.
func (c *Composer) expect(e EventType, context string, start Mark) {
	if c.peek() != e {
		c.fail(context, start, "expected %s event", eventName(e))
	}
	c.pos++
}

func eventName(e EventType) string {
	switch e {
	case SEQUENCE_END_EVENT:
		return "SequenceEnd"
	case MAPPING_END_EVENT:
		return "MappingEnd"
	}
	return e.String()
}

// ended reports whether the next event cannot continue a collection.
func (c *Composer) ended() bool {
	switch c.peek() {
	case NO_EVENT, STREAM_END_EVENT, DOCUMENT_START_EVENT, DOCUMENT_END_EVENT:
		return true
	}
	return false
}

func (c *Composer) anchor(id NodeID, name string) {
	if name != "" {
		c.tree.Node(id).Anchor = name
		c.anchors[name] = id
	}
}

func (c *Composer) node() NodeID {
	switch c.peek() {
	case SCALAR_EVENT:
		return c.scalar()
	case ALIAS_EVENT:
		return c.alias()
	case SEQUENCE_START_EVENT:
		return c.sequence()
	case MAPPING_START_EVENT:
		return c.mapping()
	}
	return NoNode
}

func (c *Composer) scalar() NodeID {
	ev := &c.events[c.pos]
	c.pos++
	var style Style
	tag := ev.Tag
	switch {
	case tag != "" && tag != "!":
		style |= TaggedStyle
	case tag == "" && (ev.Style == PLAIN_SCALAR_STYLE || ev.Style == ANY_SCALAR_STYLE):
		tag = Resolve(ev.Value)
	default:
		tag = STR_TAG
	}
	style |= styleOf(ev.Style)
	id := c.tree.Add(Node{
		Kind:      ScalarNode,
		Tag:       tag,
		Value:     ev.Value,
		Style:     style,
		StartMark: ev.StartMark,
		EndMark:   ev.EndMark,
	})
	c.anchor(id, ev.Anchor)
	return id
}

// alias composes a copy of the node registered under the alias name.
func (c *Composer) alias() NodeID {
	ev := &c.events[c.pos]
	src, ok := c.anchors[ev.Anchor]
	if !ok {
		Fail(ComposerError{Mark: ev.StartMark, Message: fmt.Sprintf("unknown alias '%s'", ev.Anchor)})
	}
	c.pos++
	before := c.tree.Len()
	id := c.tree.Copy(src)
	c.aliased += c.tree.Len() - before
	if total := c.tree.Len(); c.aliased > 100 && total > 1000 && float64(c.aliased)/float64(total) > allowedAliasRatio(total) {
		Fail(ComposerError{Mark: ev.StartMark, Message: "document contains excessive aliasing"})
	}
	n := c.tree.Node(id)
	n.StartMark = ev.StartMark
	n.EndMark = ev.EndMark
	return id
}

func collectionTag(tag, def string) (string, Style) {
	if tag == "" || tag == "!" {
		return def, 0
	}
	return tag, TaggedStyle
}

func (c *Composer) sequence() NodeID {
	ev := &c.events[c.pos]
	c.pos++
	tag, style := collectionTag(ev.Tag, SEQ_TAG)
	if ev.Flow {
		style |= FlowStyle
	}
	start := ev.StartMark
	anchor := ev.Anchor
	id := c.tree.Add(Node{Kind: SequenceNode, Tag: tag, Style: style, StartMark: start})
	for c.peek() != SEQUENCE_END_EVENT {
		if c.ended() {
			c.fail("while composing a sequence", start, "expected %s event", eventName(SEQUENCE_END_EVENT))
		}
		c.tree.Append(id, c.node())
	}
	c.tree.Node(id).EndMark = c.events[c.pos].EndMark
	c.expect(SEQUENCE_END_EVENT, "while composing a sequence", start)
	// Registered after completion: a node cannot refer to itself.
	c.anchor(id, anchor)
	return id
}

func (c *Composer) mapping() NodeID {
	ev := &c.events[c.pos]
	c.pos++
	tag, style := collectionTag(ev.Tag, MAP_TAG)
	if ev.Flow {
		style |= FlowStyle
	}
	start := ev.StartMark
	anchor := ev.Anchor
	id := c.tree.Add(Node{Kind: MappingNode, Tag: tag, Style: style, StartMark: start})
	for c.peek() != MAPPING_END_EVENT {
		if c.ended() {
			c.fail("while composing a mapping", start, "expected %s event", eventName(MAPPING_END_EVENT))
		}
		k := c.node()
		if c.ended() {
			c.fail("while composing a mapping", start, "expected %s event", eventName(MAPPING_END_EVENT))
		}
		v := c.node()
		c.tree.AddPair(id, k, v)
	}
	c.tree.Node(id).EndMark = c.events[c.pos].EndMark
	c.expect(MAPPING_END_EVENT, "while composing a mapping", start)
	c.anchor(id, anchor)
	return id
}
