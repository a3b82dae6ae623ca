// Copyright 2011-2019 Canonical Ltd
// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Struct metadata for the representer and the constructor.
//
// Fields are keyed by their `yaml:"name,omitempty,flow,inline"` tag, or by
// the lower-cased field name. Results are cached per type.

package libyaml

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"
)

// structInfo holds cached information about a struct's YAML-relevant fields.
type structInfo struct {
	FieldsMap  map[string]fieldInfo
	FieldsList []fieldInfo

	// InlineMap is the number of the field in the struct that
	// contains an ,inline map, or -1 if there's none.
	InlineMap int
}

// fieldInfo holds information about a single struct field.
type fieldInfo struct {
	Key       string
	Num       int
	OmitEmpty bool
	Flow      bool

	// Inline holds the field index if the field is part of an inlined struct.
	Inline []int
}

var (
	structMap     = make(map[reflect.Type]*structInfo)
	fieldMapMutex sync.RWMutex
)

// getStructInfo returns cached information about a struct type's fields.
func getStructInfo(st reflect.Type) (*structInfo, error) {
	fieldMapMutex.RLock()
	sinfo, found := structMap[st]
	fieldMapMutex.RUnlock()
	if found {
		return sinfo, nil
	}

	n := st.NumField()
	fieldsMap := make(map[string]fieldInfo)
	fieldsList := make([]fieldInfo, 0, n)
	inlineMap := -1
	add := func(info fieldInfo) error {
		if _, dup := fieldsMap[info.Key]; dup {
			return errors.New("duplicated key '" + info.Key + "' in struct " + st.String())
		}
		fieldsMap[info.Key] = info
		fieldsList = append(fieldsList, info)
		return nil
	}

	for i := 0; i != n; i++ {
		field := st.Field(i)
		if field.PkgPath != "" && !field.Anonymous {
			continue // Private field
		}

		tag := field.Tag.Get("yaml")
		if tag == "-" {
			continue
		}
		info := fieldInfo{Num: i}
		inline := false
		name, flags, _ := strings.Cut(tag, ",")
		if flags != "" {
			for _, flag := range strings.Split(flags, ",") {
				switch flag {
				case "omitempty":
					info.OmitEmpty = true
				case "flow":
					info.Flow = true
				case "inline":
					inline = true
				default:
					return nil, fmt.Errorf("unsupported flag %q in tag %q of type %s", flag, tag, st)
				}
			}
		}

		if !inline {
			info.Key = name
			if info.Key == "" {
				info.Key = strings.ToLower(field.Name)
			}
			if err := add(info); err != nil {
				return nil, err
			}
			continue
		}

		ftype := field.Type
		switch ftype.Kind() {
		case reflect.Map:
			if inlineMap >= 0 {
				return nil, errors.New("multiple ,inline maps in struct " + st.String())
			}
			if ftype.Key().Kind() != reflect.String {
				return nil, errors.New("option ,inline needs a map with string keys in struct " + st.String())
			}
			inlineMap = i
			continue
		case reflect.Pointer:
			ftype = ftype.Elem()
		}
		if ftype.Kind() != reflect.Struct {
			return nil, errors.New("option ,inline may only be used on a struct or map field")
		}
		inner, err := getStructInfo(ftype)
		if err != nil {
			return nil, err
		}
		for _, finfo := range inner.FieldsList {
			if finfo.Inline == nil {
				finfo.Inline = []int{i, finfo.Num}
			} else {
				finfo.Inline = append([]int{i}, finfo.Inline...)
			}
			if err := add(finfo); err != nil {
				return nil, err
			}
		}
	}

	sinfo = &structInfo{
		FieldsMap:  fieldsMap,
		FieldsList: fieldsList,
		InlineMap:  inlineMap,
	}

	fieldMapMutex.Lock()
	structMap[st] = sinfo
	fieldMapMutex.Unlock()
	return sinfo, nil
}
