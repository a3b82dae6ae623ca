// Copyright 2011-2019 Canonical Ltd
// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Constructor stage: Converts node trees to Go values.
// The tier decides which tags become native values; every other scalar
// is constructed as its string value.

package libyaml

import (
	"encoding/base64"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// ConstructorFunc builds the value of a node with a registered tag.
type ConstructorFunc func(t *Tree, id NodeID) (any, error)

// MapItem is one key/value pair of a MapSlice.
type MapItem struct {
	Key, Value any
}

// MapSlice is a mapping that keeps its keys in document order.
type MapSlice []MapItem

// Constructor state
type Constructor struct {
	tier         Tier
	orderedMaps  bool
	knownFields  bool
	constructors map[string]ConstructorFunc

	tree       *Tree
	building   map[NodeID]bool
	TypeErrors []*ConstructError
}

var (
	stringMapType  = reflect.TypeOf(map[string]any{})
	generalMapType = reflect.TypeOf(map[any]any{})
	mapSliceType   = reflect.TypeOf(MapSlice{})
	durationType   = reflect.TypeOf(time.Duration(0))
	timeType       = reflect.TypeOf(time.Time{})
)

// NewConstructor creates a new Constructor initialized with the provided
// options.
func NewConstructor(opts *Options) *Constructor {
	if opts == nil {
		opts = DefaultOptions()
	}
	return &Constructor{
		tier:         opts.Tier,
		orderedMaps:  opts.OrderedMaps,
		knownFields:  opts.KnownFields,
		constructors: opts.Constructors,
	}
}

// Construct returns the native value of the root of t.
// An empty tree constructs to nil.
func (c *Constructor) Construct(t *Tree) (v any, err error) {
	err = c.Decode(t, &v)
	return v, err
}

// Decode stores the value of the root of t in the value pointed to by out.
// Values that cannot be stored are reported together in a *LoadErrors; the
// rest of the document is still decoded.
func (c *Constructor) Decode(t *Tree, out any) (err error) {
	defer handleErr(&err)
	v := reflect.ValueOf(out)
	if v.Kind() != reflect.Pointer || v.IsNil() {
		failf("cannot decode into non-pointer %T", out)
	}
	c.tree = t
	c.building = make(map[NodeID]bool)
	c.TypeErrors = nil
	defer func() { c.tree, c.building = nil, nil }()
	if t == nil || t.Empty() {
		c.null(v.Elem())
		return nil
	}
	c.construct(t.Root, v.Elem())
	if len(c.TypeErrors) > 0 {
		return &LoadErrors{Errors: c.TypeErrors}
	}
	return nil
}

// construct converts the node id into out and reports whether it did.
func (c *Constructor) construct(id NodeID, out reflect.Value) (good bool) {
	n := c.tree.Node(id)
	if n.Kind != ScalarNode {
		if c.building[id] {
			failf("node at line %d contains itself", n.StartMark.Line)
		}
		c.building[id] = true
		defer delete(c.building, id)
	}

	out, done, good := c.prepare(id, n, out)
	if done {
		return good
	}
	if n.Kind != ScalarNode && isTextUnmarshaler(out) {
		c.addError(n, fmt.Errorf("cannot construct %s into %s (TextUnmarshaler)", n.ShortTag(), out.Type()))
		return false
	}

	switch n.Kind {
	case ScalarNode:
		return c.scalar(id, n, out)
	case SequenceNode:
		return c.sequence(n, out)
	case MappingNode:
		return c.mapping(n, out)
	}
	failf("cannot construct node with unknown kind %d", n.Kind)
	return false
}

// --------------------------------------------------------------------------
// Scalar resolution

// nativeTag returns the tag whose native value the scalar n constructs to
// under the constructor's tier. Tags the tier does not allow give str.
func (c *Constructor) nativeTag(n *Node) string {
	if c.tier == StringsTier {
		return STR_TAG
	}
	tag := n.Tag
	if tag == "" {
		tag = STR_TAG
		if s := n.Style.ScalarStyle(); s == PLAIN_SCALAR_STYLE || s == ANY_SCALAR_STYLE {
			tag = Resolve(n.Value)
		}
	}
	if _, found := c.constructors[tag]; found && c.tier >= UnrestrictedTier {
		return tag
	}
	switch tag {
	case NULL_TAG, BOOL_TAG, INT_TAG, FLOAT_TAG:
		return tag
	case TIMESTAMP_TAG, BINARY_TAG:
		if c.tier >= ExtendedTier {
			return tag
		}
	}
	return STR_TAG
}

// resolve returns the tag and native value of the scalar n. ok is false
// when an explicitly tagged value does not parse; the error is recorded.
func (c *Constructor) resolve(id NodeID, n *Node) (tag string, value any, ok bool) {
	tag = c.nativeTag(n)
	if fn, found := c.constructors[tag]; found && c.tier >= UnrestrictedTier {
		v, err := fn(c.tree, id)
		if err != nil {
			c.addError(n, err)
			return tag, nil, false
		}
		return tag, v, true
	}

	var err error
	switch tag {
	case NULL_TAG:
		return tag, nil, true
	case BOOL_TAG:
		value, err = parseBool(n.Value, c.tier >= ExtendedTier && n.Style&TaggedStyle != 0)
	case INT_TAG:
		value, err = parseInt(n.Value)
	case FLOAT_TAG:
		value, err = parseFloat(n.Value)
	case TIMESTAMP_TAG:
		value, err = parseTimestamp(n.Value)
	case BINARY_TAG:
		value, err = parseBinary(n.Value)
	default:
		return STR_TAG, n.Value, true
	}
	if err != nil {
		c.addError(n, fmt.Errorf("cannot construct %s `%s`: %w", shortTag(tag), abbreviate(n.Value), err))
		return tag, nil, false
	}
	return tag, value, true
}

// parseBool accepts the core boolean words; the YAML 1.1 forms are added
// when extended is set.
func parseBool(s string, extended bool) (bool, error) {
	switch s {
	case "true", "True", "TRUE":
		return true, nil
	case "false", "False", "FALSE":
		return false, nil
	}
	if extended {
		switch s {
		case "y", "Y", "yes", "Yes", "YES", "on", "On", "ON":
			return true, nil
		case "n", "N", "no", "No", "NO", "off", "Off", "OFF":
			return false, nil
		}
	}
	return false, fmt.Errorf("not a boolean")
}

// parseInt reads an integer with an optional sign and '_' separators in
// binary (0b), hexadecimal (0x), octal (0o or a leading 0) or decimal.
// The result is an int when it fits, otherwise int64 or uint64.
func parseInt(s string) (any, error) {
	text := strings.ReplaceAll(s, "_", "")
	neg := false
	if text != "" && (text[0] == '-' || text[0] == '+') {
		neg = text[0] == '-'
		text = text[1:]
	}
	base := 10
	digits := text
	switch {
	case strings.HasPrefix(text, "0b"), strings.HasPrefix(text, "0B"):
		base, digits = 2, text[2:]
	case strings.HasPrefix(text, "0x"), strings.HasPrefix(text, "0X"):
		base, digits = 16, text[2:]
	case strings.HasPrefix(text, "0o"), strings.HasPrefix(text, "0O"):
		base, digits = 8, text[2:]
	case len(text) > 1 && text[0] == '0':
		base, digits = 8, text[1:]
	}
	if digits == "" {
		return nil, fmt.Errorf("no digits")
	}
	u, err := strconv.ParseUint(digits, base, 64)
	if err != nil && base == 8 && text[0] == '0' && isDecimal(text) {
		// 08 and 09 are not octal.
		u, err = strconv.ParseUint(text, 10, 64)
	}
	if err != nil {
		return nil, err
	}
	if neg {
		if u > 1<<63 {
			return nil, fmt.Errorf("integer overflow")
		}
		i := -int64(u)
		if i >= math.MinInt {
			return int(i), nil
		}
		return i, nil
	}
	if u <= math.MaxInt {
		return int(u), nil
	}
	return u, nil
}

func isDecimal(s string) bool {
	for i := 0; i < len(s); i++ {
		if !isDigit(s[i]) {
			return false
		}
	}
	return s != ""
}

// parseFloat accepts the special values .inf, +.inf, -.inf and .nan in any
// case, and decimal text with '_' separators.
func parseFloat(s string) (float64, error) {
	switch strings.ToLower(s) {
	case ".inf", "+.inf":
		return math.Inf(1), nil
	case "-.inf":
		return math.Inf(-1), nil
	case ".nan":
		return math.NaN(), nil
	}
	return strconv.ParseFloat(strings.ReplaceAll(s, "_", ""), 64)
}

// This is a subset of the formats allowed by the regular expression
// defined at http://yaml.org/type/timestamp.html.
var allowedTimestampFormats = []string{
	"2006-1-2T15:4:5.999999999Z07:00", // RCF3339Nano with short date fields.
	"2006-1-2t15:4:5.999999999Z07:00", // RFC3339Nano with short date fields and lower-case "t".
	"2006-1-2 15:4:5.999999999",       // space separated with no time zone
	"2006-1-2",                        // date only
}

func parseTimestamp(s string) (time.Time, error) {
	for _, format := range allowedTimestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("not a timestamp")
}

func parseBinary(s string) ([]byte, error) {
	clean := strings.Map(func(r rune) rune {
		if r == ' ' || r == '\t' || r == '\n' || r == '\r' {
			return -1
		}
		return r
	}, s)
	return base64.StdEncoding.DecodeString(clean)
}

func abbreviate(s string) string {
	if len(s) > 10 {
		return s[:7] + "..."
	}
	return s
}

// --------------------------------------------------------------------------
// Node Kind Handlers

// sequence constructs a SequenceNode into a Go slice, array, or interface.
func (c *Constructor) sequence(n *Node, out reflect.Value) (good bool) {
	l := len(n.Items)

	var iface reflect.Value
	switch out.Kind() {
	case reflect.Slice:
		out.Set(reflect.MakeSlice(out.Type(), l, l))
	case reflect.Array:
		if l != out.Len() {
			c.addError(n, fmt.Errorf("invalid array: want %d elements but got %d", out.Len(), l))
			return false
		}
	case reflect.Interface:
		iface = out
		out = settableValueOf(make([]any, l))
	default:
		c.tagError(n, SEQ_TAG, out)
		return false
	}
	et := out.Type().Elem()

	j := 0
	for _, item := range n.Items {
		e := reflect.New(et).Elem()
		if ok := c.construct(item, e); ok || c.tree.Node(item).Tag == NULL_TAG {
			out.Index(j).Set(e)
			j++
		}
	}
	if out.Kind() != reflect.Array {
		out.Set(out.Slice(0, j))
	}
	if iface.IsValid() {
		iface.Set(out)
	}
	return true
}

// mapping constructs a MappingNode into a Go map, MapSlice, struct, or
// interface.
func (c *Constructor) mapping(n *Node, out reflect.Value) (good bool) {
	pairs := c.mergedPairs(n)
	switch {
	case out.Kind() == reflect.Struct:
		return c.mappingStruct(n, pairs, out)
	case out.Type() == mapSliceType:
		return c.mappingSlice(pairs, out)
	case out.Kind() == reflect.Map:
		// okay
	case out.Kind() == reflect.Interface:
		iface := out
		switch {
		case c.orderedMaps:
			out = settableValueOf(MapSlice{})
			good = c.mappingSlice(pairs, out)
			iface.Set(out)
			return good
		case c.isStringMap(pairs):
			out = reflect.MakeMap(stringMapType)
		default:
			out = reflect.MakeMap(generalMapType)
		}
		iface.Set(out)
	default:
		c.tagError(n, MAP_TAG, out)
		return false
	}

	outt := out.Type()
	if out.IsNil() {
		out.Set(reflect.MakeMap(outt))
	}
	for _, p := range pairs {
		k := reflect.New(outt.Key()).Elem()
		if !c.construct(p.Key, k) {
			continue
		}
		kkind := k.Kind()
		if kkind == reflect.Interface && !k.IsNil() {
			kkind = k.Elem().Kind()
		}
		if kkind == reflect.Map || kkind == reflect.Slice {
			c.addError(c.tree.Node(p.Key), fmt.Errorf("cannot use '%#v' as a map key", k.Interface()))
			continue
		}
		e := reflect.New(outt.Elem()).Elem()
		if c.construct(p.Value, e) || c.tree.Node(p.Value).Tag == NULL_TAG {
			out.SetMapIndex(k, e)
		}
	}
	return true
}

func (c *Constructor) mappingSlice(pairs []Pair, out reflect.Value) bool {
	items := make(MapSlice, 0, len(pairs))
	for _, p := range pairs {
		var item MapItem
		if !c.construct(p.Key, reflect.ValueOf(&item.Key).Elem()) {
			continue
		}
		if c.construct(p.Value, reflect.ValueOf(&item.Value).Elem()) || c.tree.Node(p.Value).Tag == NULL_TAG {
			items = append(items, item)
		}
	}
	out.Set(reflect.ValueOf(items))
	return true
}

// isStringMap reports whether every key is constructed as a string.
func (c *Constructor) isStringMap(pairs []Pair) bool {
	for _, p := range pairs {
		k := c.tree.Node(p.Key)
		if k.Kind != ScalarNode || c.nativeTag(k) != STR_TAG {
			return false
		}
	}
	return true
}

// --------------------------------------------------------------------------
// Merge keys

// isMerge reports whether the scalar n is a merge key.
func (c *Constructor) isMerge(n *Node) bool {
	if c.tier < UnrestrictedTier || n.Kind != ScalarNode {
		return false
	}
	return n.Tag == MERGE_TAG || n.Value == "<<" && n.Style&TaggedStyle == 0 &&
		n.Style.ScalarStyle() == PLAIN_SCALAR_STYLE
}

// mergedPairs returns the pairs of n with merge keys expanded.
// Keys written in n win over merged keys, and earlier merge sources win
// over later ones.
func (c *Constructor) mergedPairs(n *Node) []Pair {
	var own, merged []Pair
	hasMerge := false
	for _, p := range n.Pairs {
		if c.isMerge(c.tree.Node(p.Key)) {
			hasMerge = true
			merged = append(merged, c.mergeSources(p.Value)...)
			continue
		}
		own = append(own, p)
	}
	if !hasMerge {
		return n.Pairs
	}
	seen := make(map[string]bool, len(own))
	for _, p := range own {
		if key, ok := c.scalarKey(p.Key); ok {
			seen[key] = true
		}
	}
	out := own
	for _, p := range merged {
		key, ok := c.scalarKey(p.Key)
		if ok && seen[key] {
			continue
		}
		if ok {
			seen[key] = true
		}
		out = append(out, p)
	}
	return out
}

func (c *Constructor) scalarKey(id NodeID) (string, bool) {
	k := c.tree.Node(id)
	if k.Kind != ScalarNode {
		return "", false
	}
	return k.Tag + "\x00" + k.Value, true
}

func (c *Constructor) mergeSources(id NodeID) []Pair {
	n := c.tree.Node(id)
	switch n.Kind {
	case MappingNode:
		return c.mergedPairs(n)
	case SequenceNode:
		var pairs []Pair
		for _, item := range n.Items {
			m := c.tree.Node(item)
			if m.Kind != MappingNode {
				failWantMap()
			}
			pairs = append(pairs, c.mergedPairs(m)...)
		}
		return pairs
	}
	failWantMap()
	return nil
}

// failWantMap panics with an error message for invalid merge key values.
func failWantMap() {
	failf("map merge requires map or sequence of maps as the value")
}

// --------------------------------------------------------------------------
// Utility Methods

func (c *Constructor) addError(n *Node, err error) {
	c.TypeErrors = append(c.TypeErrors, &ConstructError{
		Err:    err,
		Line:   n.StartMark.Line,
		Column: n.StartMark.Column,
	})
}

// tagError records a type construction error indicating that a node with a
// given tag cannot be constructed into the target type.
func (c *Constructor) tagError(n *Node, tag string, out reflect.Value) {
	if n.Tag != "" {
		tag = n.Tag
	}
	value := ""
	if n.Kind == ScalarNode {
		value = " `" + abbreviate(n.Value) + "`"
	}
	c.addError(n, fmt.Errorf("cannot construct %s%s into %s", shortTag(tag), value, out.Type()))
}

// null constructs a null value by setting the target to its zero value.
// Only works for nillable types (interface, pointer, map, slice).
func (c *Constructor) null(out reflect.Value) bool {
	if out.CanSet() {
		switch out.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice:
			out.Set(reflect.Zero(out.Type()))
			return true
		}
	}
	return false
}

// settableValueOf returns a settable [reflect.Value] for the given value.
func settableValueOf(i any) reflect.Value {
	v := reflect.ValueOf(i)
	sv := reflect.New(v.Type()).Elem()
	sv.Set(v)
	return sv
}
