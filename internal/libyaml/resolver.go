// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Resolver: infers the tag of untagged plain scalars.

package libyaml

import (
	"strconv"
	"strings"
)

// resolveTable classifies the first byte of a plain scalar:
// 'M' may be a bool or null keyword, 'D' may be a number, '.' may be a
// special float.
var resolveTable = make([]byte, 256)

var resolveMap = map[string]string{
	"true": BOOL_TAG, "True": BOOL_TAG, "TRUE": BOOL_TAG,
	"false": BOOL_TAG, "False": BOOL_TAG, "FALSE": BOOL_TAG,
	"null": NULL_TAG, "Null": NULL_TAG, "NULL": NULL_TAG, "~": NULL_TAG,
	".inf": FLOAT_TAG, ".Inf": FLOAT_TAG, ".INF": FLOAT_TAG,
	"+.inf": FLOAT_TAG, "+.Inf": FLOAT_TAG, "+.INF": FLOAT_TAG,
	"-.inf": FLOAT_TAG, "-.Inf": FLOAT_TAG, "-.INF": FLOAT_TAG,
	".nan": FLOAT_TAG, ".NaN": FLOAT_TAG, ".NAN": FLOAT_TAG,
}

func init() {
	t := resolveTable
	t[int('+')] = 'S' // Sign
	t[int('-')] = 'S'
	for _, c := range "0123456789" {
		t[int(c)] = 'D' // Digit
	}
	for _, c := range "tTfFnN~" {
		t[int(c)] = 'M' // In map
	}
	t[int('.')] = '.' // Float (potentially in map)
}

// Resolve returns the tag an untagged plain scalar with the given value
// is read as.
func Resolve(value string) string {
	if value == "" {
		return NULL_TAG
	}
	switch resolveTable[value[0]] {
	case 'M', '.', 'S':
		if tag, ok := resolveMap[value]; ok {
			return tag
		}
	}
	switch resolveTable[value[0]] {
	case 'D', 'S', '.':
		if isIntText(value) {
			return INT_TAG
		}
		if strings.ContainsAny(value, ".eE") {
			if _, err := strconv.ParseFloat(value, 64); err == nil {
				return FLOAT_TAG
			}
		}
	}
	return STR_TAG
}

// isIntText matches an optional '-' followed by decimal digits.
func isIntText(value string) bool {
	digits := value
	if digits != "" && digits[0] == '-' {
		digits = digits[1:]
	}
	if digits == "" {
		return false
	}
	for i := 0; i < len(digits); i++ {
		if !isDigit(digits[i]) {
			return false
		}
	}
	return true
}
