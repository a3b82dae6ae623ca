// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Node graph.
// A Tree owns every node of one document; nodes refer to each other by
// NodeID so that shared and cyclic structure needs no reference counting.

package libyaml

import (
	"fmt"
	"strings"
)

// Kind identifies the shape of a node.
type Kind uint8

const (
	ScalarNode Kind = iota + 1
	SequenceNode
	MappingNode
)

func (k Kind) String() string {
	switch k {
	case ScalarNode:
		return "Scalar"
	case SequenceNode:
		return "Sequence"
	case MappingNode:
		return "Mapping"
	}
	return fmt.Sprintf("Kind(%d)", uint8(k))
}

// Style is a set of presentation hints recorded on a node.
type Style uint8

const (
	TaggedStyle Style = 1 << iota
	DoubleQuotedStyle
	SingleQuotedStyle
	LiteralStyle
	FoldedStyle
	FlowStyle

	// ForceFlowStyle makes the emitter write a collection in flow style
	// whatever its shape. FlowStyle alone only records the source form.
	ForceFlowStyle
)

// ScalarStyle converts the quoting bits of s to a scalar style.
func (s Style) ScalarStyle() ScalarStyle {
	switch {
	case s&DoubleQuotedStyle != 0:
		return DOUBLE_QUOTED_SCALAR_STYLE
	case s&SingleQuotedStyle != 0:
		return SINGLE_QUOTED_SCALAR_STYLE
	case s&LiteralStyle != 0:
		return LITERAL_SCALAR_STYLE
	case s&FoldedStyle != 0:
		return FOLDED_SCALAR_STYLE
	}
	return PLAIN_SCALAR_STYLE
}

// styleOf converts a scalar style to its node style bit.
func styleOf(s ScalarStyle) Style {
	switch s {
	case DOUBLE_QUOTED_SCALAR_STYLE:
		return DoubleQuotedStyle
	case SINGLE_QUOTED_SCALAR_STYLE:
		return SingleQuotedStyle
	case LITERAL_SCALAR_STYLE:
		return LiteralStyle
	case FOLDED_SCALAR_STYLE:
		return FoldedStyle
	}
	return 0
}

// NodeID addresses a node inside its Tree.
type NodeID int

// NoNode is the NodeID of an absent node.
const NoNode NodeID = -1

// Pair is one key/value entry of a mapping.
type Pair struct {
	Key   NodeID
	Value NodeID
}

// Node is a scalar, sequence or mapping.
//
// Items is only used by sequences and Pairs only by mappings.
// The same NodeID may appear as a child of several nodes, and a node may be
// its own descendant.
type Node struct {
	Kind   Kind
	Tag    string
	Value  string
	Items  []NodeID
	Pairs  []Pair
	Style  Style
	Anchor string

	StartMark Mark
	EndMark   Mark
}

// ShortTag returns the tag with the core schema prefix replaced by "!!".
func (n *Node) ShortTag() string {
	return shortTag(n.Tag)
}

func shortTag(tag string) string {
	if strings.HasPrefix(tag, coreTagPrefix) {
		return "!!" + tag[len(coreTagPrefix):]
	}
	return tag
}

// Tree is the node graph of one document.
type Tree struct {
	Root  NodeID
	nodes []Node
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{Root: NoNode}
}

// Len returns the number of nodes owned by the tree.
func (t *Tree) Len() int { return len(t.nodes) }

// Empty reports whether the document has no root node.
func (t *Tree) Empty() bool { return t.Root == NoNode }

// Node returns the node with the given id.
// The pointer is only valid until the next node is added to the tree.
func (t *Tree) Node(id NodeID) *Node {
	if id < 0 || int(id) >= len(t.nodes) {
		panic(fmt.Sprintf("yaml: node %d out of range [0, %d)", id, len(t.nodes)))
	}
	return &t.nodes[id]
}

// Add stores n in the tree and returns its id.
func (t *Tree) Add(n Node) NodeID {
	t.nodes = append(t.nodes, n)
	return NodeID(len(t.nodes) - 1)
}

// NewScalar adds a scalar node.
func (t *Tree) NewScalar(tag, value string, style Style) NodeID {
	return t.Add(Node{Kind: ScalarNode, Tag: tag, Value: value, Style: style})
}

// NewSequence adds an empty sequence node.
func (t *Tree) NewSequence(tag string, style Style) NodeID {
	return t.Add(Node{Kind: SequenceNode, Tag: tag, Style: style})
}

// NewMapping adds an empty mapping node.
func (t *Tree) NewMapping(tag string, style Style) NodeID {
	return t.Add(Node{Kind: MappingNode, Tag: tag, Style: style})
}

// Append adds item to the end of the sequence seq.
func (t *Tree) Append(seq, item NodeID) {
	n := t.Node(seq)
	n.Items = append(n.Items, item)
}

// AddPair adds a key/value pair to the end of the mapping m.
func (t *Tree) AddPair(m, key, value NodeID) {
	n := t.Node(m)
	n.Pairs = append(n.Pairs, Pair{Key: key, Value: value})
}

// Children returns the direct children of id in document order.
// Mapping children alternate between keys and values.
func (t *Tree) Children(id NodeID) []NodeID {
	n := t.Node(id)
	switch n.Kind {
	case SequenceNode:
		return n.Items
	case MappingNode:
		ids := make([]NodeID, 0, 2*len(n.Pairs))
		for _, p := range n.Pairs {
			ids = append(ids, p.Key, p.Value)
		}
		return ids
	}
	return nil
}

// Copy duplicates the subgraph reachable from id under fresh ids and
// returns the id of the copy.
// Sharing and cycles inside the subgraph are preserved in the copy.
// The copy carries no anchor.
func (t *Tree) Copy(id NodeID) NodeID {
	return t.copyNode(id, make(map[NodeID]NodeID))
}

func (t *Tree) copyNode(id NodeID, done map[NodeID]NodeID) NodeID {
	if c, ok := done[id]; ok {
		return c
	}
	n := *t.Node(id)
	n.Anchor = ""
	n.Items = nil
	n.Pairs = nil
	c := t.Add(n)
	done[id] = c

	src := t.Node(id)
	switch src.Kind {
	case SequenceNode:
		items := append([]NodeID(nil), src.Items...)
		copied := make([]NodeID, len(items))
		for i, item := range items {
			copied[i] = t.copyNode(item, done)
		}
		t.Node(c).Items = copied
	case MappingNode:
		pairs := append([]Pair(nil), src.Pairs...)
		copied := make([]Pair, len(pairs))
		for i, p := range pairs {
			copied[i] = Pair{Key: t.copyNode(p.Key, done), Value: t.copyNode(p.Value, done)}
		}
		t.Node(c).Pairs = copied
	}
	return c
}

// Import copies the subgraph reachable from id in src into t and returns
// the id of the copy.
func (t *Tree) Import(src *Tree, id NodeID) NodeID {
	return t.importNode(src, id, make(map[NodeID]NodeID))
}

func (t *Tree) importNode(src *Tree, id NodeID, done map[NodeID]NodeID) NodeID {
	if c, ok := done[id]; ok {
		return c
	}
	n := *src.Node(id)
	n.Items = nil
	n.Pairs = nil
	c := t.Add(n)
	done[id] = c

	orig := src.Node(id)
	switch orig.Kind {
	case SequenceNode:
		items := make([]NodeID, len(orig.Items))
		for i, item := range orig.Items {
			items[i] = t.importNode(src, item, done)
		}
		t.Node(c).Items = items
	case MappingNode:
		pairs := make([]Pair, len(orig.Pairs))
		for i, p := range orig.Pairs {
			pairs[i] = Pair{Key: t.importNode(src, p.Key, done), Value: t.importNode(src, p.Value, done)}
		}
		t.Node(c).Pairs = pairs
	}
	return c
}

// Walk calls fn for every node reachable from the root, in document order.
// Each node is visited once even when it is shared.
// Walking stops when fn returns false.
func (t *Tree) Walk(fn func(id NodeID, n *Node) bool) {
	if t.Root == NoNode {
		return
	}
	seen := make(map[NodeID]bool)
	var walk func(id NodeID) bool
	walk = func(id NodeID) bool {
		if seen[id] {
			return true
		}
		seen[id] = true
		if !fn(id, t.Node(id)) {
			return false
		}
		for _, c := range t.Children(id) {
			if !walk(c) {
				return false
			}
		}
		return true
	}
	walk(t.Root)
}

// Equal reports whether the documents rooted at a.Root and b.Root have the
// same shape, tags and values.
// Styles, anchors and marks are ignored.
func Equal(a, b *Tree) bool {
	if a.Root == NoNode || b.Root == NoNode {
		return a.Root == b.Root
	}
	return equalNodes(a, a.Root, b, b.Root, make(map[[2]NodeID]bool))
}

func equalNodes(a *Tree, x NodeID, b *Tree, y NodeID, assumed map[[2]NodeID]bool) bool {
	key := [2]NodeID{x, y}
	if assumed[key] {
		return true
	}
	assumed[key] = true
	n, m := a.Node(x), b.Node(y)
	if n.Kind != m.Kind || n.Tag != m.Tag {
		return false
	}
	switch n.Kind {
	case ScalarNode:
		return n.Value == m.Value
	case SequenceNode:
		if len(n.Items) != len(m.Items) {
			return false
		}
		for i := range n.Items {
			if !equalNodes(a, n.Items[i], b, m.Items[i], assumed) {
				return false
			}
		}
	case MappingNode:
		if len(n.Pairs) != len(m.Pairs) {
			return false
		}
		for i := range n.Pairs {
			if !equalNodes(a, n.Pairs[i].Key, b, m.Pairs[i].Key, assumed) ||
				!equalNodes(a, n.Pairs[i].Value, b, m.Pairs[i].Value, assumed) {
				return false
			}
		}
	}
	return true
}
