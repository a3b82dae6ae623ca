// Copyright 2011-2019 Canonical Ltd
// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Serializer stage: Converts node trees to an event stream.
// Walks each tree and produces the events of one document, turning shared
// nodes into anchors and aliases.

package libyaml

import "fmt"

// Serializer turns node trees into events.
type Serializer struct {
	opts     *Options
	desolver *Desolver
	events   []Event
	doneInit bool

	tree     *Tree
	anchors  map[NodeID]string
	serialed map[NodeID]bool
}

// NewSerializer creates a new Serializer with the given options.
func NewSerializer(opts *Options) *Serializer {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Serializer{opts: opts, desolver: NewDesolver(opts)}
}

// Serialize returns the complete event stream of a single document.
func Serialize(t *Tree, opts *Options) []Event {
	s := NewSerializer(opts)
	s.Serialize(t)
	return s.Finish()
}

// SerializeAll returns the event stream of several documents.
func SerializeAll(trees []*Tree, opts *Options) []Event {
	s := NewSerializer(opts)
	for _, t := range trees {
		s.Serialize(t)
	}
	return s.Finish()
}

func (s *Serializer) init() {
	if s.doneInit {
		return
	}
	s.emit(NewStreamStartEvent(UTF8_ENCODING))
	s.doneInit = true
}

// Finish closes the stream and returns every event produced so far.
func (s *Serializer) Finish() []Event {
	s.init()
	s.emit(NewStreamEndEvent())
	events := s.events
	s.events = nil
	s.doneInit = false
	return events
}

func (s *Serializer) emit(event Event) {
	s.events = append(s.events, event)
}

// Serialize appends the events of the document t.
func (s *Serializer) Serialize(t *Tree) {
	s.init()
	s.emit(NewDocumentStartEvent(&VersionDirective{Major: 1, Minor: 2}, nil, !s.opts.ExplicitStart))
	if !t.Empty() {
		s.tree = t
		s.anchors = assignAnchors(t)
		s.serialed = make(map[NodeID]bool)
		s.node(t.Root)
		s.tree, s.anchors, s.serialed = nil, nil, nil
	}
	s.emit(NewDocumentEndEvent(!s.opts.ExplicitEnd))
}

// assignAnchors finds the nodes reachable more than once from the root and
// names them. A node keeps its own anchor when it has one; every other
// shared node is named id001, id002, ... in document order.
func assignAnchors(t *Tree) map[NodeID]string {
	anchors := make(map[NodeID]string)
	if t.Empty() {
		return anchors
	}
	seen := make(map[NodeID]bool)
	var order []NodeID
	var walk func(id NodeID)
	walk = func(id NodeID) {
		if seen[id] {
			if _, ok := anchors[id]; !ok {
				anchors[id] = ""
				order = append(order, id)
			}
			return
		}
		seen[id] = true
		for _, c := range t.Children(id) {
			walk(c)
		}
	}
	walk(t.Root)

	next := 0
	for _, id := range order {
		if name := t.Node(id).Anchor; name != "" {
			anchors[id] = name
			continue
		}
		next++
		anchors[id] = fmt.Sprintf("id%03d", next)
	}
	return anchors
}

// node serializes the subgraph at id.
// A node that was already serialized is referred to by alias.
func (s *Serializer) node(id NodeID) {
	anchor := s.anchors[id]
	if s.serialed[id] && anchor != "" {
		s.emit(NewAliasEvent(anchor))
		return
	}
	s.serialed[id] = true
	n := s.tree.Node(id)
	if anchor == "" {
		anchor = n.Anchor
	}

	switch n.Kind {
	case ScalarNode:
		tag := n.Tag
		if tag == STR_TAG && !s.opts.Canonical && (n.Style.ScalarStyle() != PLAIN_SCALAR_STYLE || Resolve(n.Value) == STR_TAG) {
			tag = ""
		}
		ev := NewScalarEvent(anchor, tag, n.Value,
			tag == "" || Resolve(n.Value) == tag, tag == "" || tag == STR_TAG,
			n.Style.ScalarStyle())
		s.emit(ev.withMarks(n.StartMark, n.EndMark))

	case SequenceNode:
		tag := s.desolver.CollectionTag(n)
		ev := NewSequenceStartEvent(anchor, tag, tag == "", n.Style&FlowStyle != 0)
		s.emit(ev.withMarks(n.StartMark, n.StartMark))
		for _, item := range n.Items {
			s.node(item)
		}
		s.emit(NewSequenceEndEvent().withMarks(n.EndMark, n.EndMark))

	case MappingNode:
		tag := s.desolver.CollectionTag(n)
		ev := NewMappingStartEvent(anchor, tag, tag == "", n.Style&FlowStyle != 0)
		s.emit(ev.withMarks(n.StartMark, n.StartMark))
		for _, p := range n.Pairs {
			s.node(p.Key)
			s.node(p.Value)
		}
		s.emit(NewMappingEndEvent().withMarks(n.EndMark, n.EndMark))
	}
}
