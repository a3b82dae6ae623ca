// Copyright 2011-2019 Canonical Ltd
// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Hooks that let types choose how they are dumped and loaded.

package libyaml

import "reflect"

// Marshaler interface may be implemented by types to customize their
// behavior when being represented in a YAML document. The returned value
// is represented in place of the original one.
type Marshaler interface {
	MarshalYAML() (any, error)
}

// Unmarshaler is implemented by types that decode themselves from the
// node id of t.
type Unmarshaler interface {
	UnmarshalYAML(t *Tree, id NodeID) error
}

// IsZeroer is used to check whether an object is zero to determine whether
// it should be omitted when marshaling with the ,omitempty flag. One notable
// implementation is time.Time.
type IsZeroer interface {
	IsZero() bool
}

// isZero reports whether v is omitted by the ,omitempty flag.
// Empty slices and maps count as zero, as do structs whose exported
// fields are all zero.
func isZero(v reflect.Value) bool {
	kind := v.Kind()
	if z, ok := v.Interface().(IsZeroer); ok {
		if (kind == reflect.Pointer || kind == reflect.Interface) && v.IsNil() {
			return true
		}
		return z.IsZero()
	}
	switch kind {
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	case reflect.Struct:
		vt := v.Type()
		for i := 0; i < v.NumField(); i++ {
			if vt.Field(i).PkgPath == "" && !isZero(v.Field(i)) {
				return false
			}
		}
		return true
	}
	return v.IsZero()
}
