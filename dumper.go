// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// This file contains the Dumper API for writing YAML documents.
//
// Primary functions:
// - Dump: Encode a value to YAML
// - DumpAll: Encode multiple values as multi-document YAML
// - Marshal: Dump as people write YAML by hand
// - NewDumper: Create a streaming dumper to io.Writer

package yaml

import (
	"io"

	"github.com/yaml/go-yaml/internal/libyaml"
)

// Dump encodes a value to YAML with the given options.
//
// Without options the output is explicit: mapping keys are quoted and every
// scalar that is not a string carries its tag. See [Marshal] for the format
// people usually write, and for the conversion of Go values to YAML.
func Dump(in any, opts ...Option) (out []byte, err error) {
	return libyaml.Dump(in, opts...)
}

// DumpAll encodes multiple values as a multi-document YAML stream.
//
// Each value becomes a separate YAML document, separated by "---".
func DumpAll(in []any, opts ...Option) (out []byte, err error) {
	return libyaml.DumpAll(in, opts...)
}

// Marshal serializes the value provided into a YAML document. Keys are
// written plain and tags are left out wherever reading the text back
// infers them.
//
// Maps and pointers (to struct, string, int, etc) are accepted as the in
// value. Maps are written with their keys sorted, struct fields in
// declaration order. A pointer, map or slice reached more than once is
// written once with an anchor and then by alias, so cyclic values work.
//
// Struct fields are only marshaled if they are exported (have an upper case
// first letter), and are marshaled using the field name lowercased as the
// default key. Custom keys may be defined via the "yaml" name in the field
// tag: the content preceding the first comma is used as the key, and the
// following comma-separated options are used to tweak the marshaling
// process. Conflicting names result in an error.
//
// The field tag format accepted is:
//
//	`(...) yaml:"[<key>][,<flag1>[,<flag2>]]" (...)`
//
// The following flags are currently supported:
//
//	omitempty    Only include the field if it's not set to the zero
//	             value for the type or to empty slices or maps.
//	             Zero valued structs will be omitted if all their public
//	             fields are zero, unless they implement an IsZero
//	             method (see the IsZeroer interface type), in which
//	             case the field will be excluded if IsZero returns true.
//
//	flow         Marshal using a flow style (useful for structs,
//	             sequences and maps).
//
//	inline       Inline the field, which must be a struct or a map,
//	             causing all of its fields or keys to be processed as if
//	             they were part of the outer struct. For maps, keys must
//	             not conflict with the yaml keys of other struct fields.
//
// In addition, if the key is "-", the field is ignored.
//
// For example:
//
//	type T struct {
//		F int `yaml:"a,omitempty"`
//		B int
//	}
//	yaml.Marshal(&T{B: 2}) // Returns "b: 2\n"
//	yaml.Marshal(&T{F: 1}) // Returns "a: 1\nb: 0\n"
func Marshal(in any) (out []byte, err error) {
	return libyaml.Marshal(in)
}

// A Dumper writes YAML values to an output stream with configurable options.
type Dumper struct {
	d *libyaml.Dumper
}

// NewDumper returns a new Dumper that writes to w with the given options.
//
// The Dumper should be closed after use to flush all data to w.
func NewDumper(w io.Writer, opts ...Option) (*Dumper, error) {
	d, err := libyaml.NewDumper(w, opts...)
	if err != nil {
		return nil, err
	}
	return &Dumper{d: d}, nil
}

// Dump writes the YAML encoding of v to the stream.
//
// If multiple values are dumped to the stream, the second and subsequent
// documents will be preceded with a "---" document separator.
//
// See the documentation for [Marshal] for details about the conversion of Go
// values to YAML.
func (d *Dumper) Dump(v any) (err error) {
	return d.d.Dump(v)
}

// DumpTree writes an already built node tree as the next document.
func (d *Dumper) DumpTree(t *Tree) error {
	return d.d.DumpTree(t)
}

// Close closes the Dumper by writing any remaining data.
// It does not write a stream terminating string "...".
func (d *Dumper) Close() (err error) {
	return d.d.Close()
}
