// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package libyaml

import (
	"testing"

	"github.com/yaml/go-yaml/internal/testutil/assert"
)

func TestTreeBuild(t *testing.T) {
	tree := NewTree()
	assert.True(t, tree.Empty())
	assert.Equal(t, 0, tree.Len())

	tree.Root = tree.NewMapping(MAP_TAG, 0)
	k := tree.NewScalar(STR_TAG, "k", 0)
	seq := tree.NewSequence(SEQ_TAG, FlowStyle)
	tree.AddPair(tree.Root, k, seq)
	tree.Append(seq, tree.NewScalar(INT_TAG, "1", 0))

	assert.False(t, tree.Empty())
	assert.Equal(t, 4, tree.Len())
	assert.DeepEqual(t, []NodeID{k, seq}, tree.Children(tree.Root))
	assert.Equal(t, 1, len(tree.Children(seq)))
	assert.IsNil(t, tree.Children(k))
	assert.Equal(t, "!!int", tree.Node(3).ShortTag())
	assert.Equal(t, "!local", (&Node{Tag: "!local"}).ShortTag())
}

func TestTreeNodeOutOfRange(t *testing.T) {
	tree := stringSeq("a")
	assert.PanicMatches(t, `^yaml: node 5 out of range \[0, 2\)$`, func() { tree.Node(5) })
	assert.PanicMatches(t, `out of range`, func() { tree.Node(NoNode) })
}

func TestKindAndStyle(t *testing.T) {
	assert.Equal(t, "Mapping", MappingNode.String())
	assert.Equal(t, "Kind(0)", Kind(0).String())
	assert.Equal(t, SINGLE_QUOTED_SCALAR_STYLE, (TaggedStyle | SingleQuotedStyle).ScalarStyle())
	assert.Equal(t, PLAIN_SCALAR_STYLE, FlowStyle.ScalarStyle())
	for _, s := range []ScalarStyle{DOUBLE_QUOTED_SCALAR_STYLE, SINGLE_QUOTED_SCALAR_STYLE, LITERAL_SCALAR_STYLE, FOLDED_SCALAR_STYLE} {
		assert.Equal(t, s, styleOf(s).ScalarStyle())
	}
}

func TestTreeCopy(t *testing.T) {
	tree, err := Compose("a: &x {b: [1, 2]}\n")
	assert.NoError(t, err)
	src := tree.Node(tree.Root).Pairs[0].Value
	assert.Equal(t, "x", tree.Node(src).Anchor)

	c := tree.Copy(src)
	assert.True(t, c != src)
	assert.Equal(t, "", tree.Node(c).Anchor)
	assert.True(t, Equal(&Tree{Root: src, nodes: tree.nodes}, &Tree{Root: c, nodes: tree.nodes}))

	// The copy is independent of the original.
	tree.Node(tree.Node(tree.Node(c).Pairs[0].Value).Items[0]).Value = "9"
	assert.Equal(t, "1", tree.Node(tree.Node(tree.Node(src).Pairs[0].Value).Items[0]).Value)
}

func TestTreeCopyKeepsSharing(t *testing.T) {
	tree := NewTree()
	tree.Root = tree.NewSequence(SEQ_TAG, 0)
	shared := tree.NewScalar(STR_TAG, "s", 0)
	tree.Append(tree.Root, shared)
	tree.Append(tree.Root, shared)
	tree.Append(tree.Root, tree.Root)

	c := tree.Copy(tree.Root)
	items := tree.Node(c).Items
	assert.Equal(t, items[0], items[1])
	assert.True(t, items[0] != shared)
	assert.Equal(t, c, items[2])
}

func TestTreeImport(t *testing.T) {
	src := stringMap("a", "b")
	dst := stringSeq("x")
	id := dst.Import(src, src.Root)
	dst.Append(dst.Root, id)

	assert.Equal(t, 5, dst.Len())
	assert.True(t, Equal(src, &Tree{Root: id, nodes: dst.nodes}))

	loop := NewTree()
	loop.Root = loop.NewSequence(SEQ_TAG, 0)
	loop.Append(loop.Root, loop.Root)
	id = dst.Import(loop, loop.Root)
	assert.Equal(t, id, dst.Node(id).Items[0])
}

func TestTreeWalk(t *testing.T) {
	tree := NewTree()
	tree.Root = tree.NewMapping(MAP_TAG, 0)
	shared := tree.NewScalar(STR_TAG, "v", 0)
	tree.AddPair(tree.Root, tree.NewScalar(STR_TAG, "a", 0), shared)
	tree.AddPair(tree.Root, tree.NewScalar(STR_TAG, "b", 0), shared)
	tree.AddPair(tree.Root, tree.NewScalar(STR_TAG, "c", 0), tree.Root)

	var seen []string
	tree.Walk(func(id NodeID, n *Node) bool {
		seen = append(seen, n.Kind.String()+":"+n.Value)
		return true
	})
	assert.DeepEqual(t, []string{"Mapping:", "Scalar:a", "Scalar:v", "Scalar:b", "Scalar:c"}, seen)

	count := 0
	tree.Walk(func(NodeID, *Node) bool {
		count++
		return count < 2
	})
	assert.Equal(t, 2, count)

	NewTree().Walk(func(NodeID, *Node) bool {
		t.Fatal("walked an empty tree")
		return false
	})
}

func TestEqual(t *testing.T) {
	compose := func(s string) *Tree {
		tree, err := Compose(s)
		assert.NoError(t, err)
		return tree
	}
	assert.True(t, Equal(compose("a: [1, 'x']\n"), compose("{'a': [1, \"x\"]}\n")))
	assert.False(t, Equal(compose("a: 1\n"), compose("a: '1'\n")))
	assert.False(t, Equal(compose("[1, 2]\n"), compose("[1]\n")))
	assert.False(t, Equal(compose("{a: 1}\n"), compose("{b: 1}\n")))
	assert.False(t, Equal(compose("[]\n"), compose("{}\n")))
	assert.True(t, Equal(NewTree(), NewTree()))
	assert.False(t, Equal(NewTree(), compose("a\n")))

	x, y := NewTree(), NewTree()
	for _, tree := range []*Tree{x, y} {
		tree.Root = tree.NewSequence(SEQ_TAG, 0)
		tree.Append(tree.Root, tree.Root)
	}
	assert.True(t, Equal(x, y))
}
