// Copyright 2011-2019 Canonical Ltd
// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Representer stage: Converts Go values to node trees.
// Pointers, maps and slices reached twice become the same node, so shared
// and cyclic values come out as anchors and aliases.

package libyaml

import (
	"encoding"
	"encoding/base64"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

// keyList is a sortable slice of reflect.Values used for sorting map keys
// in a natural order (numeric, then lexicographic).
type keyList []reflect.Value

// Representer converts Go values to node trees.
type Representer struct {
	tree    *Tree
	seen    map[identity]NodeID
	pending []identity
	flow    bool
}

// identity names a pointer, map or slice by what it points at.
type identity struct {
	typ reflect.Type
	ptr uintptr
	len int
}

// NewRepresenter creates a new representer. opts is accepted for symmetry
// with the other stages.
func NewRepresenter(opts *Options) *Representer {
	return &Representer{}
}

// Represent converts v to a tree whose root is the representation of v.
func (r *Representer) Represent(v any) (t *Tree, err error) {
	defer handleErr(&err)
	r.tree = NewTree()
	r.seen = make(map[identity]NodeID)
	r.pending = nil
	r.flow = false
	r.tree.Root = r.represent(reflect.ValueOf(v))
	t, r.tree, r.seen = r.tree, nil, nil
	return t, nil
}

// add appends n to the tree. Identities waiting for a node are bound to
// it before any child is represented, which lets cycles close.
func (r *Representer) add(n Node) NodeID {
	id := r.tree.Add(n)
	for _, k := range r.pending {
		r.seen[k] = id
	}
	r.pending = r.pending[:0]
	return id
}

func (r *Representer) takeFlow() Style {
	if r.flow {
		r.flow = false
		return FlowStyle | ForceFlowStyle
	}
	return 0
}

func identityOf(in reflect.Value) (identity, bool) {
	switch in.Kind() {
	case reflect.Pointer, reflect.Map:
		if in.IsNil() {
			return identity{}, false
		}
		return identity{typ: in.Type(), ptr: in.Pointer()}, true
	case reflect.Slice:
		if in.Len() == 0 {
			return identity{}, false
		}
		return identity{typ: in.Type(), ptr: in.Pointer(), len: in.Len()}, true
	}
	return identity{}, false
}

// represent is the core conversion method that handles the actual
// type-specific conversion from Go values to nodes.
func (r *Representer) represent(in reflect.Value) NodeID {
	if !in.IsValid() || (in.Kind() == reflect.Pointer || in.Kind() == reflect.Interface) && in.IsNil() {
		return r.nilv()
	}
	if k, ok := identityOf(in); ok {
		if id, done := r.seen[k]; done {
			r.pending = r.pending[:0]
			return id
		}
		r.pending = append(r.pending, k)
	}

	switch value := in.Interface().(type) {
	case *Tree:
		r.pending = r.pending[:0]
		if value.Empty() {
			return r.nilv()
		}
		return r.tree.Import(value, value.Root)
	case time.Time:
		return r.timev(value)
	case *time.Time:
		return r.timev(*value)
	case time.Duration:
		return r.scalar(STR_TAG, value.String())
	case MapSlice:
		return r.mapSlice(value)
	case Marshaler:
		v, err := value.MarshalYAML()
		if err != nil {
			Fail(err)
		}
		if v == nil {
			return r.nilv()
		}
		return r.represent(reflect.ValueOf(v))
	case encoding.TextMarshaler:
		text, err := value.MarshalText()
		if err != nil {
			Fail(err)
		}
		return r.stringv(string(text))
	case []byte:
		return r.scalar(BINARY_TAG, encodeBase64(string(value)))
	}

	switch in.Kind() {
	case reflect.Interface, reflect.Pointer:
		return r.represent(in.Elem())
	case reflect.Map:
		return r.mapv(in)
	case reflect.Struct:
		return r.structv(in)
	case reflect.Slice, reflect.Array:
		return r.slicev(in)
	case reflect.String:
		return r.stringv(in.String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return r.scalar(INT_TAG, strconv.FormatInt(in.Int(), 10))
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return r.scalar(INT_TAG, strconv.FormatUint(in.Uint(), 10))
	case reflect.Float32, reflect.Float64:
		return r.floatv(in)
	case reflect.Bool:
		return r.scalar(BOOL_TAG, strconv.FormatBool(in.Bool()))
	}
	return r.stringv(fmt.Sprint(in.Interface()))
}

func (r *Representer) scalar(tag, value string) NodeID {
	return r.add(Node{Kind: ScalarNode, Tag: tag, Value: value})
}

// nilv creates a null node.
func (r *Representer) nilv() NodeID {
	return r.scalar(NULL_TAG, "null")
}

// mapv converts a Go map to a mapping node with sorted keys.
func (r *Representer) mapv(in reflect.Value) NodeID {
	id := r.add(Node{Kind: MappingNode, Tag: MAP_TAG, Style: r.takeFlow()})
	keys := keyList(in.MapKeys())
	sort.Sort(keys)
	for _, k := range keys {
		key := r.represent(k)
		r.tree.AddPair(id, key, r.represent(in.MapIndex(k)))
	}
	return id
}

func (r *Representer) mapSlice(items MapSlice) NodeID {
	id := r.add(Node{Kind: MappingNode, Tag: MAP_TAG, Style: r.takeFlow()})
	for _, item := range items {
		key := r.represent(reflect.ValueOf(item.Key))
		r.tree.AddPair(id, key, r.represent(reflect.ValueOf(item.Value)))
	}
	return id
}

// structv converts a Go struct to a mapping node, handling field tags,
// omitempty, inline fields, and inline maps.
func (r *Representer) structv(in reflect.Value) NodeID {
	sinfo, err := getStructInfo(in.Type())
	if err != nil {
		Fail(err)
	}
	id := r.add(Node{Kind: MappingNode, Tag: MAP_TAG, Style: r.takeFlow()})
	for _, info := range sinfo.FieldsList {
		var value reflect.Value
		if info.Inline == nil {
			value = in.Field(info.Num)
		} else {
			value = r.fieldByIndex(in, info.Inline)
			if !value.IsValid() {
				continue
			}
		}
		if info.OmitEmpty && isZero(value) {
			continue
		}
		key := r.stringv(info.Key)
		r.flow = info.Flow
		r.tree.AddPair(id, key, r.represent(value))
		r.flow = false
	}
	if sinfo.InlineMap >= 0 {
		m := in.Field(sinfo.InlineMap)
		keys := keyList(m.MapKeys())
		sort.Sort(keys)
		for _, k := range keys {
			if _, found := sinfo.FieldsMap[k.String()]; found {
				failf("cannot have key %q in inlined map: conflicts with struct field", k.String())
			}
			key := r.represent(k)
			r.tree.AddPair(id, key, r.represent(m.MapIndex(k)))
		}
	}
	return id
}

// slicev converts a Go slice or array to a sequence node.
func (r *Representer) slicev(in reflect.Value) NodeID {
	id := r.add(Node{Kind: SequenceNode, Tag: SEQ_TAG, Style: r.takeFlow()})
	for i := 0; i < in.Len(); i++ {
		r.tree.Append(id, r.represent(in.Index(i)))
	}
	return id
}

// stringv converts a Go string to a str node. Text that is not valid
// UTF-8 is kept as base64 binary data.
func (r *Representer) stringv(s string) NodeID {
	if !utf8.ValidString(s) {
		return r.scalar(BINARY_TAG, encodeBase64(s))
	}
	return r.scalar(STR_TAG, s)
}

// timev converts a Go [time.Time] to a timestamp node in RFC3339Nano format.
func (r *Representer) timev(t time.Time) NodeID {
	return r.scalar(TIMESTAMP_TAG, t.Format(time.RFC3339Nano))
}

// floatv converts a Go float to a float node. Special values use the YAML
// spellings, and integral values keep a ".0" so they read back as floats.
func (r *Representer) floatv(in reflect.Value) NodeID {
	precision := 64
	if in.Kind() == reflect.Float32 {
		precision = 32
	}
	s := strconv.FormatFloat(in.Float(), 'g', -1, precision)
	switch s {
	case "+Inf":
		s = ".inf"
	case "-Inf":
		s = "-.inf"
	case "NaN":
		s = ".nan"
	default:
		if !strings.ContainsAny(s, ".e") {
			s += ".0"
		}
	}
	return r.scalar(FLOAT_TAG, s)
}

// encodeBase64 encodes s as base64 that is broken up into multiple lines
// as appropriate for the resulting length.
func encodeBase64(s string) string {
	const lineLen = 70
	encLen := base64.StdEncoding.EncodedLen(len(s))
	lines := encLen/lineLen + 1
	buf := make([]byte, encLen*2+lines)
	in := buf[0:encLen]
	out := buf[encLen:]
	base64.StdEncoding.Encode(in, []byte(s))
	k := 0
	for i := 0; i < len(in); i += lineLen {
		j := i + lineLen
		if j > len(in) {
			j = len(in)
		}
		k += copy(out[k:], in[i:j])
		if lines > 1 {
			out[k] = '\n'
			k++
		}
	}
	return string(out[:k])
}

// fieldByIndex navigates through struct fields using the given index path,
// dereferencing pointers as needed. A nil pointer on the way gives an
// invalid value.
func (r *Representer) fieldByIndex(v reflect.Value, index []int) (field reflect.Value) {
	for _, num := range index {
		for v.Kind() == reflect.Pointer {
			if v.IsNil() {
				return reflect.Value{}
			}
			v = v.Elem()
		}
		v = v.Field(num)
	}
	return v
}

// Len returns the number of keys in the list.
func (l keyList) Len() int { return len(l) }

// Swap exchanges the positions of two keys in the list.
func (l keyList) Swap(i, j int) { l[i], l[j] = l[j], l[i] }

// Less implements a natural sort order for map keys: numeric values sort
// numerically, strings sort with natural number ordering, and mixed types
// sort by kind.
func (l keyList) Less(i, j int) bool {
	a := l[i]
	b := l[j]
	ak := a.Kind()
	bk := b.Kind()
	for (ak == reflect.Interface || ak == reflect.Pointer) && !a.IsNil() {
		a = a.Elem()
		ak = a.Kind()
	}
	for (bk == reflect.Interface || bk == reflect.Pointer) && !b.IsNil() {
		b = b.Elem()
		bk = b.Kind()
	}
	af, aok := keyFloat(a)
	bf, bok := keyFloat(b)
	if aok && bok {
		if af != bf {
			return af < bf
		}
		if ak != bk {
			return ak < bk
		}
		return numLess(a, b)
	}
	if ak != reflect.String || bk != reflect.String {
		return ak < bk
	}
	ar, br := []rune(a.String()), []rune(b.String())
	digits := false
	for i := 0; i < len(ar) && i < len(br); i++ {
		if ar[i] == br[i] {
			digits = unicode.IsDigit(ar[i])
			continue
		}
		al := unicode.IsLetter(ar[i])
		bl := unicode.IsLetter(br[i])
		if al && bl {
			return ar[i] < br[i]
		}
		if al || bl {
			if digits {
				return al
			} else {
				return bl
			}
		}
		var ai, bi int
		var an, bn int64
		if ar[i] == '0' || br[i] == '0' {
			for j := i - 1; j >= 0 && unicode.IsDigit(ar[j]); j-- {
				if ar[j] != '0' {
					an = 1
					bn = 1
					break
				}
			}
		}
		for ai = i; ai < len(ar) && unicode.IsDigit(ar[ai]); ai++ {
			an = an*10 + int64(ar[ai]-'0')
		}
		for bi = i; bi < len(br) && unicode.IsDigit(br[bi]); bi++ {
			bn = bn*10 + int64(br[bi]-'0')
		}
		if an != bn {
			return an < bn
		}
		if ai != bi {
			return ai < bi
		}
		return ar[i] < br[i]
	}
	return len(ar) < len(br)
}

// keyFloat returns a float value for v if it is a number/bool
// and whether it is a number/bool or not.
func keyFloat(v reflect.Value) (f float64, ok bool) {
	switch v.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(v.Int()), true
	case reflect.Float32, reflect.Float64:
		return v.Float(), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(v.Uint()), true
	case reflect.Bool:
		if v.Bool() {
			return 1, true
		}
		return 0, true
	}
	return 0, false
}

// numLess returns whether a < b.
// a and b must necessarily have the same kind.
func numLess(a, b reflect.Value) bool {
	switch a.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return a.Int() < b.Int()
	case reflect.Float32, reflect.Float64:
		return a.Float() < b.Float()
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return a.Uint() < b.Uint()
	case reflect.Bool:
		return !a.Bool() && b.Bool()
	}
	panic("not a number")
}

