// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package yaml

import "github.com/yaml/go-yaml/internal/libyaml"

//-----------------------------------------------------------------------------
// Node-related type aliases and constants
//-----------------------------------------------------------------------------

type (
	// Tree is the node graph of one document.
	// See internal/libyaml.Tree.
	Tree = libyaml.Tree
	// Node represents a scalar, sequence or mapping of a Tree.
	// See internal/libyaml.Node.
	Node = libyaml.Node
	// NodeID addresses a node inside its Tree.
	NodeID = libyaml.NodeID
	// Pair is one key/value entry of a mapping node.
	Pair = libyaml.Pair
	// Kind identifies the type of a YAML node.
	// See internal/libyaml.Kind.
	Kind = libyaml.Kind
	// Style controls the presentation of a YAML node.
	// See internal/libyaml.Style.
	Style = libyaml.Style
)

// NoNode is the NodeID of an absent node, such as the root of an empty
// document.
const NoNode = libyaml.NoNode

// Re-export Kind constants
const (
	SequenceNode = libyaml.SequenceNode
	MappingNode  = libyaml.MappingNode
	ScalarNode   = libyaml.ScalarNode
)

// Re-export Style constants
const (
	TaggedStyle       = libyaml.TaggedStyle
	DoubleQuotedStyle = libyaml.DoubleQuotedStyle
	SingleQuotedStyle = libyaml.SingleQuotedStyle
	LiteralStyle      = libyaml.LiteralStyle
	FoldedStyle       = libyaml.FoldedStyle
	FlowStyle         = libyaml.FlowStyle
	ForceFlowStyle    = libyaml.ForceFlowStyle
)

// NewTree returns a tree with no nodes.
// Build it with the NewScalar, NewSequence, NewMapping, Append and AddPair
// methods, then set Root.
func NewTree() *Tree {
	return libyaml.NewTree()
}

// Equal reports whether two documents have the same shape, tags and values.
// Styles, anchors and positions are ignored, and shared or cyclic nodes
// compare by structure.
func Equal(a, b *Tree) bool {
	return libyaml.Equal(a, b)
}

// Resolve returns the tag a plain scalar with the given text has when no
// tag is written: null, bool, int, float or str.
func Resolve(value string) string {
	return libyaml.Resolve(value)
}
