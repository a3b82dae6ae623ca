// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Package assert provides the assertion helpers used by the package tests.
//
// Deep comparisons go through go-cmp so that a failure prints a diff of the
// two values instead of both values in full.
package assert

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

type miniTB interface {
	Helper()
	Fatalf(string, ...any)
}

// formatSuffix builds an optional suffix from a printf-style format and args.
// If msgFormat is empty, an empty string is returned.
func formatSuffix(msgFormat string, args ...any) string {
	if msgFormat == "" {
		return ""
	}
	return " - " + fmt.Sprintf(msgFormat, args...)
}

// cmpOptions are applied to every deep comparison. NaN equals NaN so that
// float round trips can be checked, and unexported fields are compared.
var cmpOptions = []cmp.Option{
	cmpopts.EquateNaNs(),
	cmp.Exporter(func(reflect.Type) bool { return true }),
}

// Equal asserts that two comparable values are equal.
//
// For slices, maps and structs holding them, use [DeepEqual].
func Equal(tb miniTB, want, got any) {
	tb.Helper()
	Equalf(tb, want, got, "")
}

// Equalf asserts that two values are equal, and reports a message if they are not.
func Equalf(tb miniTB, want, got any, msgFormat string, args ...any) {
	tb.Helper()
	if got != want {
		suffix := formatSuffix(msgFormat, args...)
		tb.Fatalf("got %v; want %v%s", got, want, suffix)
	}
}

// DeepEqual asserts that two values are deeply equal.
func DeepEqual(tb miniTB, want, got any) {
	tb.Helper()
	DeepEqualf(tb, want, got, "")
}

// DeepEqualf asserts that two values are deeply equal, and reports the
// difference with a message if they are not.
func DeepEqualf(tb miniTB, want, got any, msgFormat string, args ...any) {
	tb.Helper()
	if diff := cmp.Diff(want, got, cmpOptions...); diff != "" {
		suffix := formatSuffix(msgFormat, args...)
		tb.Fatalf("mismatch (-want +got):\n%s%s", diff, suffix)
	}
}

// Contains asserts that s contains substr.
func Contains(tb miniTB, s, substr string) {
	tb.Helper()
	Containsf(tb, s, substr, "")
}

// Containsf asserts that s contains substr, and reports a message if it does not.
func Containsf(tb miniTB, s, substr string, msgFormat string, args ...any) {
	tb.Helper()
	if !strings.Contains(s, substr) {
		suffix := formatSuffix(msgFormat, args...)
		tb.Fatalf("%q does not contain %q%s", s, substr, suffix)
	}
}

// ErrorMatches asserts that an error matches a regular expression.
func ErrorMatches(tb miniTB, pattern string, err error) {
	tb.Helper()
	ErrorMatchesf(tb, pattern, err, "")
}

// ErrorMatchesf asserts that an error matches a regular expression, and reports a message if it does not.
func ErrorMatchesf(tb miniTB, pattern string, err error, msgFormat string, args ...any) {
	tb.Helper()
	suffix := formatSuffix(msgFormat, args...)
	if err == nil {
		tb.Fatalf("got nil; want error matching %q%s", pattern, suffix)
		return
	}
	re, reErr := regexp.Compile(pattern)
	if reErr != nil {
		tb.Fatalf("invalid regexp %q: %v%s", pattern, reErr, suffix)
		return
	}
	if !re.MatchString(err.Error()) {
		tb.Fatalf("error %q does not match %q%s", err.Error(), pattern, suffix)
	}
}

// ErrorIs asserts that errors.Is(got, want) holds.
func ErrorIs(tb miniTB, got, want error) {
	tb.Helper()
	if !errors.Is(got, want) {
		tb.Fatalf("got %#v; want %#v", got, want)
	}
}

// ErrorAs asserts that err can be assigned to target by [errors.As].
func ErrorAs(tb miniTB, err error, target any) {
	tb.Helper()
	ok, panicErr := errorAs(err, target)
	if panicErr != nil {
		tb.Fatalf("%s", panicErr)
		return
	}
	if !ok {
		tb.Fatalf("got %#v; want %s", err, reflect.TypeOf(target).Elem())
	}
}

// errorAs calls [errors.As] and returns a panic it raises as an error.
func errorAs(err error, target any) (ok bool, panicErr error) {
	defer func() {
		if r := recover(); r != nil {
			ok, panicErr = false, fmt.Errorf("panic: %v", r)
		}
	}()
	return errors.As(err, target), nil
}

// NoError asserts that an error is nil.
func NoError(tb miniTB, err error) {
	tb.Helper()
	NoErrorf(tb, err, "")
}

// NoErrorf asserts that an error is nil, and reports a message if it is not.
func NoErrorf(tb miniTB, err error, msgFormat string, args ...any) {
	tb.Helper()
	if err != nil {
		suffix := formatSuffix(msgFormat, args...)
		tb.Fatalf("unexpected error: %v%s", err, suffix)
	}
}

// IsNil asserts that a value is nil.
func IsNil(tb miniTB, v any) {
	tb.Helper()
	if !isNil(v) {
		tb.Fatalf("got non-nil (type %T): %#v", v, v)
	}
}

// NotNil asserts that a value is not nil.
func NotNil(tb miniTB, v any) {
	tb.Helper()
	NotNilf(tb, v, "")
}

// NotNilf asserts that a value is not nil, and reports a message if it is.
func NotNilf(tb miniTB, v any, msgFormat string, args ...any) {
	tb.Helper()
	if isNil(v) {
		suffix := formatSuffix(msgFormat, args...)
		tb.Fatalf("got nil; want non-nil%s", suffix)
	}
}

// True asserts that a value is true.
func True(tb miniTB, got bool) {
	tb.Helper()
	Truef(tb, got, "")
}

// Truef asserts that a value is true, and reports a message if it is not.
func Truef(tb miniTB, got bool, msgFormat string, args ...any) {
	tb.Helper()
	if !got {
		suffix := formatSuffix(msgFormat, args...)
		tb.Fatalf("got false; want true%s", suffix)
	}
}

// False asserts that a value is false.
func False(tb miniTB, got bool) {
	tb.Helper()
	Falsef(tb, got, "")
}

// Falsef asserts that a value is false, and reports a message if it is not.
func Falsef(tb miniTB, got bool, msgFormat string, args ...any) {
	tb.Helper()
	if got {
		suffix := formatSuffix(msgFormat, args...)
		tb.Fatalf("got true; want false%s", suffix)
	}
}

// PanicMatches asserts that f panics with a message matching pattern.
func PanicMatches(tb miniTB, pattern string, f func()) {
	tb.Helper()
	var pan any
	func() {
		defer func() { pan = recover() }()
		f()
	}()
	if pan == nil {
		tb.Fatalf("function did not panic; want panic matching %q", pattern)
		return
	}
	msg := fmt.Sprint(pan)
	if err, ok := pan.(error); ok {
		msg = err.Error()
	}
	if !regexp.MustCompile(pattern).MatchString(msg) {
		tb.Fatalf("panic %q does not match %q", msg, pattern)
	}
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Map, reflect.Pointer, reflect.Slice, reflect.Interface, reflect.UnsafePointer:
		return rv.IsNil()
	}
	return false
}
