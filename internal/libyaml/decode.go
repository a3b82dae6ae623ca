// Copyright 2011-2019 Canonical Ltd
// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Decoding into typed Go targets: scalar conversions, struct fields and
// the Unmarshaler and TextUnmarshaler hooks.

package libyaml

import (
	"encoding"
	"fmt"
	"math"
	"reflect"
	"time"
)

// prepare initializes and dereferences pointers and calls UnmarshalYAML
// if a value is found to implement it.
// It returns the initialized and dereferenced out value, whether
// construction was already done by UnmarshalYAML, and if so whether
// it succeeded.
//
// If n holds a null value, prepare returns before doing anything.
func (c *Constructor) prepare(id NodeID, n *Node, out reflect.Value) (newout reflect.Value, done, good bool) {
	if n.Kind == ScalarNode && c.nativeTag(n) == NULL_TAG {
		return out, false, false
	}
	for {
		if out.Kind() == reflect.Pointer {
			if out.IsNil() {
				out.Set(reflect.New(out.Type().Elem()))
			}
			out = out.Elem()
			continue
		}
		break
	}
	if out.CanAddr() {
		if u, ok := out.Addr().Interface().(Unmarshaler); ok {
			if err := u.UnmarshalYAML(c.tree, id); err != nil {
				if le, ok := err.(*LoadErrors); ok {
					c.TypeErrors = append(c.TypeErrors, le.Errors...)
				} else {
					c.addError(n, err)
				}
				return out, true, false
			}
			return out, true, true
		}
	}
	return out, false, false
}

// scalar constructs a ScalarNode into out, converting the resolved value
// to the kind of out where that loses nothing.
func (c *Constructor) scalar(id NodeID, n *Node, out reflect.Value) bool {
	tag, resolved, ok := c.resolve(id, n)
	if !ok {
		return false
	}
	if resolved == nil {
		return c.null(out)
	}
	rv := reflect.ValueOf(resolved)
	if out.Type() == rv.Type() || out.Kind() == reflect.Interface && rv.Type().AssignableTo(out.Type()) {
		out.Set(rv)
		return true
	}

	if out.Type() == timeType {
		// time.Time is a TextUnmarshaler, but only for RFC 3339 text.
		if t, err := parseTimestamp(n.Value); err == nil {
			out.Set(reflect.ValueOf(t))
			return true
		}
		c.tagError(n, tag, out)
		return false
	}

	if out.CanAddr() {
		if u, ok := out.Addr().Interface().(encoding.TextUnmarshaler); ok {
			text := []byte(n.Value)
			if b, isBytes := resolved.([]byte); isBytes {
				text = b
			}
			if err := u.UnmarshalText(text); err != nil {
				c.addError(n, err)
				return false
			}
			return true
		}
	}

	switch out.Kind() {
	case reflect.String:
		if b, isBytes := resolved.([]byte); isBytes {
			out.SetString(string(b))
		} else {
			out.SetString(n.Value)
		}
		return true
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if out.Type() == durationType {
			if d, err := time.ParseDuration(n.Value); err == nil {
				out.SetInt(int64(d))
				return true
			}
			if i, isInt := resolved.(int); isInt && i == 0 {
				out.SetInt(0)
				return true
			}
			break
		}
		if i, ok := toInt64(resolved); ok && !out.OverflowInt(i) {
			out.SetInt(i)
			return true
		}
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		if u, ok := toUint64(resolved); ok && !out.OverflowUint(u) {
			out.SetUint(u)
			return true
		}
	case reflect.Float32, reflect.Float64:
		switch v := resolved.(type) {
		case int:
			out.SetFloat(float64(v))
			return true
		case int64:
			out.SetFloat(float64(v))
			return true
		case uint64:
			out.SetFloat(float64(v))
			return true
		case float64:
			out.SetFloat(v)
			return true
		}
	case reflect.Bool:
		if tag == STR_TAG {
			// YAML 1.1 words, only when a bool is asked for.
			if b, err := parseBool(n.Value, true); err == nil {
				out.SetBool(b)
				return true
			}
		}
	case reflect.Slice:
		if out.Type().Elem().Kind() == reflect.Uint8 {
			switch v := resolved.(type) {
			case []byte:
				out.SetBytes(v)
				return true
			case string:
				out.SetBytes([]byte(v))
				return true
			}
		}
	}
	c.tagError(n, tag, out)
	return false
}

func toInt64(v any) (int64, bool) {
	switch v := v.(type) {
	case int:
		return int64(v), true
	case int64:
		return v, true
	case uint64:
		if v <= math.MaxInt64 {
			return int64(v), true
		}
	case float64:
		if v >= math.MinInt64 && v < math.MaxInt64 && float64(int64(v)) == v {
			return int64(v), true
		}
	}
	return 0, false
}

func toUint64(v any) (uint64, bool) {
	switch v := v.(type) {
	case int:
		if v >= 0 {
			return uint64(v), true
		}
	case int64:
		if v >= 0 {
			return uint64(v), true
		}
	case uint64:
		return v, true
	case float64:
		if v >= 0 && v < math.MaxUint64 && float64(uint64(v)) == v {
			return uint64(v), true
		}
	}
	return 0, false
}

// mappingStruct constructs a MappingNode into a struct value.
// It handles field matching by name, inline fields, inline maps, and
// enforces known fields when configured.
func (c *Constructor) mappingStruct(n *Node, pairs []Pair, out reflect.Value) (good bool) {
	sinfo, err := getStructInfo(out.Type())
	if err != nil {
		Fail(err)
	}

	var inlineMap reflect.Value
	var elemType reflect.Type
	if sinfo.InlineMap != -1 {
		inlineMap = out.Field(sinfo.InlineMap)
		elemType = inlineMap.Type().Elem()
	}

	name := settableValueOf("")
	for _, p := range pairs {
		k := c.tree.Node(p.Key)
		if k.Kind != ScalarNode {
			c.tagError(k, STR_TAG, name)
			continue
		}
		key := k.Value
		if info, ok := sinfo.FieldsMap[key]; ok {
			var field reflect.Value
			if info.Inline == nil {
				field = out.Field(info.Num)
			} else {
				field = fieldByIndex(out, info.Inline)
			}
			c.construct(p.Value, field)
		} else if sinfo.InlineMap != -1 {
			if inlineMap.IsNil() {
				inlineMap.Set(reflect.MakeMap(inlineMap.Type()))
			}
			value := reflect.New(elemType).Elem()
			c.construct(p.Value, value)
			inlineMap.SetMapIndex(reflect.ValueOf(key), value)
		} else if c.knownFields {
			c.addError(k, fmt.Errorf("field %s not found in type %s", key, out.Type()))
		}
	}
	return true
}

// fieldByIndex returns the struct field at the given index path, initializing
// any nil pointers along the way.
func fieldByIndex(v reflect.Value, index []int) (field reflect.Value) {
	for _, num := range index {
		for v.Kind() == reflect.Pointer {
			if v.IsNil() {
				v.Set(reflect.New(v.Type().Elem()))
			}
			v = v.Elem()
		}
		v = v.Field(num)
	}
	return v
}

// isTextUnmarshaler checks if a value implements [encoding.TextUnmarshaler].
// It dereferences pointers to check the underlying type.
func isTextUnmarshaler(out reflect.Value) bool {
	for out.Kind() == reflect.Pointer {
		if out.IsNil() {
			out = reflect.New(out.Type().Elem()).Elem()
		} else {
			out = out.Elem()
		}
	}
	if out.CanAddr() {
		_, ok := out.Addr().Interface().(encoding.TextUnmarshaler)
		return ok
	}
	return false
}
