// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package libyaml

import (
	"errors"
	"math"
	"net"
	"strings"
	"testing"
	"time"

	"github.com/yaml/go-yaml/internal/testutil/assert"
)

func construct(t *testing.T, text string, opts ...Option) (any, error) {
	t.Helper()
	tree, err := Compose(text)
	assert.NoError(t, err)
	return NewConstructor(mustOptions(t, opts...)).Construct(tree)
}

func decode(t *testing.T, text string, out any, opts ...Option) error {
	t.Helper()
	tree, err := Compose(text)
	assert.NoError(t, err)
	return NewConstructor(mustOptions(t, opts...)).Decode(tree, out)
}

func TestConstructTiers(t *testing.T) {
	const doc = "[~, true, 42, 1.5, abc, '7', !!int '8']"
	tests := []struct {
		tier Tier
		want []any
	}{
		{StringsTier, []any{"~", "true", "42", "1.5", "abc", "7", "8"}},
		{SafeTier, []any{nil, true, 42, 1.5, "abc", "7", 8}},
		{ExtendedTier, []any{nil, true, 42, 1.5, "abc", "7", 8}},
		{UnrestrictedTier, []any{nil, true, 42, 1.5, "abc", "7", 8}},
	}
	for _, tt := range tests {
		t.Run(tt.tier.String(), func(t *testing.T) {
			v, err := construct(t, doc, WithTier(tt.tier))
			assert.NoError(t, err)
			assert.DeepEqual(t, tt.want, v)
		})
	}
}

func TestConstructExtendedTags(t *testing.T) {
	const doc = "when: !!timestamp 2001-12-14\ndata: !!binary aGVsbG8=\nok: !!bool yes\n"

	v, err := construct(t, doc, WithTier(ExtendedTier))
	assert.NoError(t, err)
	m := v.(map[string]any)
	when, ok := m["when"].(time.Time)
	assert.True(t, ok)
	assert.True(t, when.Equal(time.Date(2001, 12, 14, 0, 0, 0, 0, time.UTC)))
	assert.DeepEqual(t, []byte("hello"), m["data"])
	assert.Equal(t, true, m["ok"])

	// The safe tier keeps the text of tags it does not construct, and
	// only accepts the core boolean words.
	v, err = construct(t, doc, WithTier(SafeTier))
	assert.ErrorMatches(t, "^yaml: construct errors:\n  line 3: cannot construct !!bool `yes`: not a boolean$", err)
	m = v.(map[string]any)
	assert.Equal(t, "2001-12-14", m["when"])
	assert.Equal(t, "aGVsbG8=", m["data"])
	_, found := m["ok"]
	assert.False(t, found)
}

func TestConstructInts(t *testing.T) {
	tests := []struct {
		text string
		want any
	}{
		{"0", 0},
		{"-12", -12},
		{"017", 15},
		{"09", 9},
		{"!!int 0b101", 5},
		{"!!int 0x1F", 31},
		{"!!int 0o17", 15},
		{"!!int +3", 3},
		{"!!int 1_000", 1000},
		{"18446744073709551615", uint64(math.MaxUint64)},
		{"0x1F", "0x1F"},
		{"1_000", "1_000"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			v, err := construct(t, tt.text)
			assert.NoError(t, err)
			assert.DeepEqual(t, tt.want, v)
		})
	}
}

func TestConstructFloats(t *testing.T) {
	tests := []struct {
		text string
		want float64
	}{
		{"1.5", 1.5},
		{".5", 0.5},
		{"1e3", 1000},
		{"-2.5e-1", -0.25},
		{".inf", math.Inf(1)},
		{"+.Inf", math.Inf(1)},
		{"-.INF", math.Inf(-1)},
		{".nan", math.NaN()},
		{"!!float 3", 3},
		{"!!float 1_000.5", 1000.5},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			v, err := construct(t, tt.text)
			assert.NoError(t, err)
			assert.DeepEqual(t, tt.want, v)
		})
	}
}

func TestConstructBadScalar(t *testing.T) {
	v, err := construct(t, "- !!int abc\n- !!float x\n- 3\n")
	assert.ErrorMatches(t, "line 1: cannot construct !!int `abc`", err)
	assert.ErrorMatches(t, "line 2: cannot construct !!float `x`", err)
	assert.DeepEqual(t, []any{3}, v)

	var le *LoadErrors
	assert.ErrorAs(t, err, &le)
	assert.Equal(t, 2, len(le.Errors))
	assert.Equal(t, 8, le.Errors[0].Column)

	var ce *ConstructError
	assert.ErrorAs(t, err, &ce)
	assert.Equal(t, 1, ce.Line)
}

func TestConstructMaps(t *testing.T) {
	v, err := construct(t, "a: 1\nb: [x, y]\n")
	assert.NoError(t, err)
	assert.DeepEqual(t, map[string]any{"a": 1, "b": []any{"x", "y"}}, v)

	v, err = construct(t, "1: a\n2: b\n")
	assert.NoError(t, err)
	assert.DeepEqual(t, map[any]any{1: "a", 2: "b"}, v)

	v, err = construct(t, "b: 1\na: 2\n", WithOrderedMaps())
	assert.NoError(t, err)
	assert.DeepEqual(t, MapSlice{{Key: "b", Value: 1}, {Key: "a", Value: 2}}, v)

	v, err = construct(t, "a: ~\n")
	assert.NoError(t, err)
	assert.DeepEqual(t, map[string]any{"a": nil}, v)
}

func TestConstructUnhashableKey(t *testing.T) {
	v, err := construct(t, "? [a]\n: 1\nb: 2\n")
	assert.ErrorMatches(t, `line 1: cannot use .* as a map key`, err)
	assert.DeepEqual(t, map[any]any{"b": 2}, v)
}

func TestConstructMerge(t *testing.T) {
	const doc = "base: &b {x: 1, y: 2}\nobj:\n  <<: *b\n  y: 3\n"

	v, err := construct(t, doc, WithTier(UnrestrictedTier))
	assert.NoError(t, err)
	assert.DeepEqual(t, map[string]any{"x": 1, "y": 3}, v.(map[string]any)["obj"])

	// Below the unrestricted tier "<<" is an ordinary key.
	v, err = construct(t, doc)
	assert.NoError(t, err)
	assert.DeepEqual(t, map[string]any{
		"<<": map[string]any{"x": 1, "y": 2},
		"y":  3,
	}, v.(map[string]any)["obj"])
}

func TestConstructMergeSequence(t *testing.T) {
	const doc = "a: &a {k: 1}\nb: &b {k: 2, j: 2}\nc:\n  <<: [*a, *b]\n"
	v, err := construct(t, doc, WithTier(UnrestrictedTier))
	assert.NoError(t, err)
	assert.DeepEqual(t, map[string]any{"k": 1, "j": 2}, v.(map[string]any)["c"])

	_, err = construct(t, "c:\n  <<: 1\n", WithTier(UnrestrictedTier))
	assert.ErrorMatches(t, "^yaml: map merge requires map or sequence of maps as the value$", err)
}

func TestConstructRegisteredTag(t *testing.T) {
	point := func(t *Tree, id NodeID) (any, error) {
		x, y, ok := strings.Cut(t.Node(id).Value, ",")
		if !ok {
			return nil, errors.New("point needs two coordinates")
		}
		return [2]string{x, y}, nil
	}
	opts := []Option{WithConstructor("!point", point)}

	v, err := construct(t, "!point 1,2", append(opts, WithTier(UnrestrictedTier))...)
	assert.NoError(t, err)
	assert.DeepEqual(t, [2]string{"1", "2"}, v)

	_, err = construct(t, "- !point 12", append(opts, WithTier(UnrestrictedTier))...)
	assert.ErrorMatches(t, "line 1: point needs two coordinates", err)

	v, err = construct(t, "!point 1,2", append(opts, WithTier(ExtendedTier))...)
	assert.NoError(t, err)
	assert.Equal(t, "1,2", v)
}

type Base struct {
	ID int `yaml:"id"`
}

type person struct {
	Base    `yaml:",inline"`
	Name    string
	Age     int
	Tags    []string `yaml:"tags,flow"`
	Next    *person
	Timeout time.Duration
	Born    time.Time
	Addr    net.IP
	Extra   map[string]any `yaml:",inline"`
}

func TestDecodeStruct(t *testing.T) {
	const doc = `
id: 9
name: Ann
age: 7
tags: [a, b]
next: {name: Bob}
timeout: 1m30s
born: 2001-12-14
addr: 127.0.0.1
home: x
`
	var p person
	assert.NoError(t, decode(t, doc, &p))
	assert.Equal(t, 9, p.ID)
	assert.Equal(t, "Ann", p.Name)
	assert.Equal(t, 7, p.Age)
	assert.DeepEqual(t, []string{"a", "b"}, p.Tags)
	assert.NotNil(t, p.Next)
	assert.Equal(t, "Bob", p.Next.Name)
	assert.Equal(t, 90*time.Second, p.Timeout)
	assert.True(t, p.Born.Equal(time.Date(2001, 12, 14, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, "127.0.0.1", p.Addr.String())
	assert.DeepEqual(t, map[string]any{"home": "x"}, p.Extra)
}

func TestDecodeTypeErrorsContinue(t *testing.T) {
	p := person{Age: 5}
	err := decode(t, "name: Ann\nage: old\ntags: x\n", &p)
	assert.ErrorMatches(t, "^yaml: construct errors:\n"+
		"  line 2: cannot construct !!str `old` into int\n"+
		"  line 3: cannot construct !!str `x` into \\[\\]string$", err)
	assert.Equal(t, "Ann", p.Name)
	assert.Equal(t, 5, p.Age)
}

func TestDecodeNullKeepsValue(t *testing.T) {
	p := person{Age: 5, Name: "Ann"}
	assert.NoError(t, decode(t, "age: ~\nname: null\n", &p))
	assert.Equal(t, 5, p.Age)
	assert.Equal(t, "Ann", p.Name)

	n := new(int)
	assert.NoError(t, decode(t, "~", &n))
	assert.IsNil(t, n)
}

func TestDecodeKnownFields(t *testing.T) {
	var p person
	assert.NoError(t, decode(t, "name: a\nbogus: 1\n", &p))

	type strict struct{ Name string }
	var s strict
	err := decode(t, "name: a\nbogus: 1\n", &s, WithKnownFields())
	assert.ErrorMatches(t, "line 2: field bogus not found in type libyaml.strict", err)
	assert.Equal(t, "a", s.Name)
}

func TestDecodeConversions(t *testing.T) {
	var b bool
	assert.NoError(t, decode(t, "yes", &b))
	assert.True(t, b)

	var f float32
	assert.NoError(t, decode(t, "3", &f))
	assert.Equal(t, float32(3), f)

	var u uint8
	assert.ErrorMatches(t, "cannot construct !!int `300` into uint8", decode(t, "300", &u))
	assert.ErrorMatches(t, "cannot construct !!int `-1` into uint8", decode(t, "-1", &u))

	var i int
	assert.NoError(t, decode(t, "2.0", &i))
	assert.Equal(t, 2, i)

	var data []byte
	assert.NoError(t, decode(t, "!!binary aGVsbG8=", &data, WithTier(ExtendedTier)))
	assert.Equal(t, "hello", string(data))

	var arr [3]int
	assert.ErrorMatches(t, "invalid array: want 3 elements but got 2", decode(t, "[1, 2]", &arr))

	var s string
	assert.ErrorMatches(t, `cannot construct !!seq into string`, decode(t, "[1]", &s))
}

func TestDecodeNonPointer(t *testing.T) {
	var i int
	assert.ErrorMatches(t, "^yaml: cannot decode into non-pointer int$", decode(t, "1", i))
}

type upper string

func (u *upper) UnmarshalYAML(t *Tree, id NodeID) error {
	n := t.Node(id)
	if n.Kind != ScalarNode {
		return errors.New("want a scalar")
	}
	*u = upper(strings.ToUpper(n.Value))
	return nil
}

func TestDecodeUnmarshaler(t *testing.T) {
	var words []upper
	assert.NoError(t, decode(t, "[a, b]", &words))
	assert.DeepEqual(t, []upper{"A", "B"}, words)

	err := decode(t, "- [x]\n- y\n", &words)
	assert.ErrorMatches(t, "line 1: want a scalar", err)
	assert.DeepEqual(t, []upper{"Y"}, words)
}

func TestConstructEmptyTree(t *testing.T) {
	v, err := NewConstructor(nil).Construct(NewTree())
	assert.NoError(t, err)
	assert.IsNil(t, v)

	var s any = "x"
	assert.NoError(t, NewConstructor(nil).Decode(NewTree(), &s))
	assert.IsNil(t, s)
}

func TestConstructCycle(t *testing.T) {
	tree := NewTree()
	seq := tree.NewSequence(SEQ_TAG, 0)
	tree.Append(seq, seq)
	tree.Root = seq

	_, err := NewConstructor(nil).Construct(tree)
	assert.ErrorMatches(t, "contains itself", err)
}
