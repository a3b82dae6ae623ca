// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package libyaml

import (
	"errors"
	"math"
	"net"
	"testing"
	"time"

	"github.com/yaml/go-yaml/internal/testutil/assert"
)

func represent(t *testing.T, v any) *Tree {
	t.Helper()
	tree, err := NewRepresenter(nil).Represent(v)
	assert.NoError(t, err)
	return tree
}

// scalarOf returns the tag and value of the root scalar of v.
func scalarOf(t *testing.T, v any) (string, string) {
	t.Helper()
	tree := represent(t, v)
	n := tree.Node(tree.Root)
	assert.Equal(t, ScalarNode, n.Kind)
	return n.Tag, n.Value
}

func TestRepresentScalars(t *testing.T) {
	tests := []struct {
		name  string
		value any
		tag   string
		text  string
	}{
		{"nil", nil, NULL_TAG, "null"},
		{"nil pointer", (*int)(nil), NULL_TAG, "null"},
		{"string", "hello", STR_TAG, "hello"},
		{"bool", true, BOOL_TAG, "true"},
		{"int", -42, INT_TAG, "-42"},
		{"uint64", uint64(math.MaxUint64), INT_TAG, "18446744073709551615"},
		{"integral float", 1.0, FLOAT_TAG, "1.0"},
		{"float", 2.5, FLOAT_TAG, "2.5"},
		{"float32", float32(0.1), FLOAT_TAG, "0.1"},
		{"large float", 1e21, FLOAT_TAG, "1e+21"},
		{"inf", math.Inf(1), FLOAT_TAG, ".inf"},
		{"negative inf", math.Inf(-1), FLOAT_TAG, "-.inf"},
		{"nan", math.NaN(), FLOAT_TAG, ".nan"},
		{"bytes", []byte("hello"), BINARY_TAG, "aGVsbG8="},
		{"invalid utf-8", "\xff", BINARY_TAG, "/w=="},
		{"duration", 90 * time.Second, STR_TAG, "1m30s"},
		{"time", time.Date(2001, 12, 14, 21, 59, 43, 0, time.UTC), TIMESTAMP_TAG, "2001-12-14T21:59:43Z"},
		{"text marshaler", net.IPv4(127, 0, 0, 1), STR_TAG, "127.0.0.1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tag, text := scalarOf(t, tt.value)
			assert.Equal(t, tt.tag, tag)
			assert.Equal(t, tt.text, text)
		})
	}
}

func TestRepresentLongBinary(t *testing.T) {
	data := make([]byte, 60)
	_, text := scalarOf(t, data)
	// 80 base64 characters are split after 70.
	assert.Equal(t, 80+2, len(text))
	assert.Equal(t, byte('\n'), text[70])
}

func TestRepresentMapKeyOrder(t *testing.T) {
	tree := represent(t, map[string]int{"b": 1, "a10": 2, "a9": 3})
	var keys []string
	for _, p := range tree.Node(tree.Root).Pairs {
		keys = append(keys, tree.Node(p.Key).Value)
	}
	assert.DeepEqual(t, []string{"a9", "a10", "b"}, keys)

	tree = represent(t, map[any]int{"a": 1, 2.5: 2, 1: 3})
	keys = nil
	for _, p := range tree.Node(tree.Root).Pairs {
		keys = append(keys, tree.Node(p.Key).Value)
	}
	assert.DeepEqual(t, []string{"1", "2.5", "a"}, keys)
}

func TestRepresentMapSlice(t *testing.T) {
	tree := represent(t, MapSlice{{Key: "z", Value: 1}, {Key: "a", Value: []int{2}}})
	root := tree.Node(tree.Root)
	assert.Equal(t, 2, len(root.Pairs))
	assert.Equal(t, "z", tree.Node(root.Pairs[0].Key).Value)
	assert.Equal(t, SequenceNode, tree.Node(root.Pairs[1].Value).Kind)
}

type Inner struct {
	X int `yaml:"x"`
}

type outer struct {
	Inner `yaml:",inline"`
	Name  string         `yaml:"name,omitempty"`
	List  []int          `yaml:"list,flow"`
	Empty []int          `yaml:",omitempty"`
	Skip  string         `yaml:"-"`
	Rest  map[string]int `yaml:",inline"`
	priv  int
}

func TestRepresentStruct(t *testing.T) {
	tree := represent(t, outer{
		Inner: Inner{X: 1},
		List:  []int{1, 2},
		Skip:  "no",
		Rest:  map[string]int{"z": 3},
		priv:  4,
	})
	root := tree.Node(tree.Root)
	var keys []string
	for _, p := range root.Pairs {
		keys = append(keys, tree.Node(p.Key).Value)
	}
	assert.DeepEqual(t, []string{"x", "list", "z"}, keys)

	list := tree.Node(root.Pairs[1].Value)
	assert.Equal(t, SequenceNode, list.Kind)
	assert.True(t, list.Style&FlowStyle != 0)
	assert.True(t, list.Style&ForceFlowStyle != 0)
	assert.Equal(t, Style(0), root.Style&FlowStyle)
}

func TestRepresentStructErrors(t *testing.T) {
	type dup struct {
		A int `yaml:"a"`
		B int `yaml:"a"`
	}
	_, err := NewRepresenter(nil).Represent(dup{})
	assert.ErrorMatches(t, "^duplicated key 'a' in struct libyaml.dup$", err)

	type conflict struct {
		X    int            `yaml:"x"`
		Rest map[string]int `yaml:",inline"`
	}
	_, err = NewRepresenter(nil).Represent(conflict{Rest: map[string]int{"x": 1}})
	assert.ErrorMatches(t, `^yaml: cannot have key "x" in inlined map: conflicts with struct field$`, err)

	type badFlag struct {
		A int `yaml:"a,bogus"`
	}
	_, err = NewRepresenter(nil).Represent(badFlag{})
	assert.ErrorMatches(t, `unsupported flag "bogus"`, err)
}

type point struct{ X, Y int }

func TestRepresentSharedPointer(t *testing.T) {
	p := &point{1, 2}
	tree := represent(t, []any{p, p, &point{1, 2}})
	items := tree.Node(tree.Root).Items
	assert.Equal(t, items[0], items[1])
	assert.True(t, items[0] != items[2])

	m := map[string]int{"a": 1}
	tree = represent(t, map[string]any{"x": m, "y": m})
	pairs := tree.Node(tree.Root).Pairs
	assert.Equal(t, pairs[0].Value, pairs[1].Value)
}

type loop struct {
	Name string
	Next *loop
}

func TestRepresentCycle(t *testing.T) {
	l := &loop{Name: "a"}
	l.Next = l
	tree := represent(t, l)
	root := tree.Node(tree.Root)
	assert.Equal(t, MappingNode, root.Kind)
	assert.Equal(t, tree.Root, root.Pairs[1].Value)

	a := &loop{Name: "a"}
	b := &loop{Name: "b", Next: a}
	a.Next = b
	tree = represent(t, []*loop{a, b})
	items := tree.Node(tree.Root).Items
	first := tree.Node(items[0])
	assert.Equal(t, items[1], first.Pairs[1].Value)
	assert.Equal(t, items[0], tree.Node(items[1]).Pairs[1].Value)
}

type redacted string

func (redacted) MarshalYAML() (any, error) { return "***", nil }

type broken struct{}

var errBroken = errors.New("broken value")

func (broken) MarshalYAML() (any, error) { return nil, errBroken }

func TestRepresentMarshaler(t *testing.T) {
	_, text := scalarOf(t, redacted("secret"))
	assert.Equal(t, "***", text)

	_, err := NewRepresenter(nil).Represent([]any{1, broken{}})
	assert.ErrorIs(t, err, errBroken)
}

func TestRepresentTree(t *testing.T) {
	src, err := Compose("a: [1, 2]\n")
	assert.NoError(t, err)
	tree := represent(t, []any{src, "b"})
	items := tree.Node(tree.Root).Items
	sub := &Tree{Root: items[0], nodes: tree.nodes}
	assert.True(t, Equal(src, sub))

	tag, _ := scalarOf(t, NewTree())
	assert.Equal(t, NULL_TAG, tag)
}
