// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package libyaml

import (
	"errors"
	"testing"

	"github.com/yaml/go-yaml/internal/testutil/assert"
	"github.com/yaml/go-yaml/internal/testutil/datatest"
)

type aliasCase struct {
	Name  string        `yaml:"name"`
	YAML  datatest.Data `yaml:"yaml"`
	Error string        `yaml:"error"`
}

func (c aliasCase) CaseName() string { return c.Name }

func TestComposeAliases(t *testing.T) {
	cases := datatest.Load[aliasCase](t, "aliases.yaml")
	datatest.Run(t, cases, func(t *testing.T, tc aliasCase) {
		tree, err := Compose(tc.YAML.String())
		if tc.Error == "" {
			assert.NoError(t, err)
			assert.NotNil(t, tree)
			return
		}
		assert.ErrorMatches(t, tc.Error, err)
		assert.IsNil(t, tree)
		var ce ComposerError
		assert.ErrorAs(t, err, &ce)
	})
}

func TestComposeAliasIsCopy(t *testing.T) {
	tree, err := Compose("a: &x 1\nb: *x\n")
	assert.NoError(t, err)
	root := tree.Node(tree.Root)
	assert.Equal(t, MappingNode, root.Kind)
	assert.Equal(t, 2, len(root.Pairs))

	first, second := root.Pairs[0].Value, root.Pairs[1].Value
	assert.True(t, first != second)
	a, b := tree.Node(first), tree.Node(second)
	assert.Equal(t, INT_TAG, b.Tag)
	assert.Equal(t, "1", b.Value)
	assert.Equal(t, "x", a.Anchor)
	assert.Equal(t, "", b.Anchor)
	assert.Equal(t, 2, b.StartMark.Line)

	a.Value = "2"
	assert.Equal(t, "1", tree.Node(second).Value)
}

func TestComposeAliasOfCollection(t *testing.T) {
	tree, err := Compose("base: &b {x: 1, y: [2]}\ncopy: *b\n")
	assert.NoError(t, err)
	root := tree.Node(tree.Root)
	orig, copied := root.Pairs[0].Value, root.Pairs[1].Value
	assert.True(t, orig != copied)
	assert.Equal(t, MappingNode, tree.Node(copied).Kind)

	sub := &Tree{Root: orig, nodes: tree.nodes}
	dup := &Tree{Root: copied, nodes: tree.nodes}
	assert.True(t, Equal(sub, dup))

	// No node of the copy is shared with the original.
	ids := map[NodeID]bool{}
	sub.Walk(func(id NodeID, n *Node) bool { ids[id] = true; return true })
	dup.Walk(func(id NodeID, n *Node) bool {
		assert.Falsef(t, ids[id], "node %d is shared", id)
		return true
	})
}

func TestComposeDuplicateAnchorLastWins(t *testing.T) {
	tree, err := Compose("a: &x 1\nb: &x 2\nc: *x\n")
	assert.NoError(t, err)
	root := tree.Node(tree.Root)
	assert.Equal(t, "2", tree.Node(root.Pairs[2].Value).Value)
}

func TestComposeAliasAcrossDocuments(t *testing.T) {
	trees, err := ComposeAll("a: &x 1\n---\nb: *x\n")
	assert.ErrorMatches(t, `unknown alias 'x'`, err)
	assert.Equal(t, 1, len(trees))
}

func TestComposeAllDocuments(t *testing.T) {
	trees, err := ComposeAll("a: 1\n---\nb: 2\n")
	assert.NoError(t, err)
	assert.Equal(t, 2, len(trees))
	for i, key := range []string{"a", "b"} {
		root := trees[i].Node(trees[i].Root)
		assert.Equal(t, key, trees[i].Node(root.Pairs[0].Key).Value)
	}
}

func TestComposerContinuesAfterFailedDocument(t *testing.T) {
	c := NewComposer(Parse("a: *nope\n---\nb: 2\n"))
	tree, err := c.ComposeDocument()
	assert.NotNil(t, err)
	assert.IsNil(t, tree)

	tree, err = c.ComposeDocument()
	assert.NoError(t, err)
	root := tree.Node(tree.Root)
	assert.Equal(t, "b", tree.Node(root.Pairs[0].Key).Value)

	tree, err = c.ComposeDocument()
	assert.NoError(t, err)
	assert.IsNil(t, tree)
}

func TestComposeEmptyDocument(t *testing.T) {
	for _, in := range []string{"", "# only a comment\n", "---\n"} {
		tree, err := Compose(in)
		assert.NoError(t, err)
		assert.Truef(t, tree.Empty(), "input %q", in)
	}
}

func TestComposeTags(t *testing.T) {
	tree, err := Compose("- 1\n- '1'\n- !!str 1\n- 1.5\n- true\n- ~\n- hello\n- [a]\n")
	assert.NoError(t, err)
	var got []string
	for _, id := range tree.Node(tree.Root).Items {
		got = append(got, tree.Node(id).ShortTag())
	}
	assert.DeepEqual(t, []string{"!!int", "!!str", "!!str", "!!float", "!!bool", "!!null", "!!str", "!!seq"}, got)

	tagged := tree.Node(tree.Node(tree.Root).Items[2])
	assert.True(t, tagged.Style&TaggedStyle != 0)
	quoted := tree.Node(tree.Node(tree.Root).Items[1])
	assert.Equal(t, SINGLE_QUOTED_SCALAR_STYLE, quoted.Style.ScalarStyle())
	flow := tree.Node(tree.Node(tree.Root).Items[7])
	assert.True(t, flow.Style&FlowStyle != 0)
}

// Only plain scalars are inferred; quoted and block scalars stay strings.
func TestComposeQuotedIsString(t *testing.T) {
	tree, err := Compose("- '42'\n- \"true\"\n- |\n  1.5\n- >-\n  ~\n")
	assert.NoError(t, err)
	for _, id := range tree.Node(tree.Root).Items {
		n := tree.Node(id)
		assert.Equalf(t, STR_TAG, n.Tag, "value %q", n.Value)
		assert.Equal(t, Style(0), n.Style&TaggedStyle)
	}
}

func TestComposeTruncatedStream(t *testing.T) {
	events := []Event{
		NewStreamStartEvent(UTF8_ENCODING),
		NewDocumentStartEvent(nil, nil, true),
		NewSequenceStartEvent("", "", true, false),
		NewScalarEvent("", "", "a", true, false, PLAIN_SCALAR_STYLE),
		NewDocumentEndEvent(true),
		NewStreamEndEvent(),
	}
	_, err := NewComposer(events).ComposeDocument()
	assert.ErrorMatches(t, `while composing a sequence.*expected SequenceEnd event`, err)
	var ce ComposerError
	assert.True(t, errors.As(err, &ce))
}

func TestComposeExcessiveAliasing(t *testing.T) {
	laughs := `a: &a [x, x, x, x, x, x, x, x, x]
b: &b [*a, *a, *a, *a, *a, *a, *a, *a, *a]
c: &c [*b, *b, *b, *b, *b, *b, *b, *b, *b]
d: &d [*c, *c, *c, *c, *c, *c, *c, *c, *c]
e: &e [*d, *d, *d, *d, *d, *d, *d, *d, *d]
`
	tree, err := Compose(laughs)
	assert.ErrorMatches(t, `excessive aliasing`, err)
	assert.IsNil(t, tree)
}

func TestAllowedAliasRatio(t *testing.T) {
	assert.Equal(t, 0.99, allowedAliasRatio(100))
	assert.Equal(t, 0.99, allowedAliasRatio(aliasRatioRangeLow))
	assert.Equal(t, 0.10, allowedAliasRatio(aliasRatioRangeHigh))
	assert.Equal(t, 0.10, allowedAliasRatio(10*aliasRatioRangeHigh))
	mid := allowedAliasRatio((aliasRatioRangeLow + aliasRatioRangeHigh) / 2)
	assert.True(t, mid < 0.99 && mid > 0.10)
}

func TestResolve(t *testing.T) {
	tests := []struct {
		value string
		tag   string
	}{
		{"", NULL_TAG},
		{"~", NULL_TAG},
		{"null", NULL_TAG},
		{"Null", NULL_TAG},
		{"NULL", NULL_TAG},
		{"nULL", STR_TAG},
		{"true", BOOL_TAG},
		{"True", BOOL_TAG},
		{"FALSE", BOOL_TAG},
		{"yes", STR_TAG},
		{"0", INT_TAG},
		{"42", INT_TAG},
		{"-12", INT_TAG},
		{"007", INT_TAG},
		{"+1", STR_TAG},
		{"0x1F", STR_TAG},
		{"1_000", STR_TAG},
		{"1.5", FLOAT_TAG},
		{"-1.5e3", FLOAT_TAG},
		{"1e3", FLOAT_TAG},
		{".inf", FLOAT_TAG},
		{"-.Inf", FLOAT_TAG},
		{".NaN", FLOAT_TAG},
		{"1.2.3", STR_TAG},
		{"e", STR_TAG},
		{"hello", STR_TAG},
		{"-", STR_TAG},
	}
	for _, tt := range tests {
		assert.Equalf(t, tt.tag, Resolve(tt.value), "value %q", tt.value)
	}
}
