// Copyright 2011-2019 Canonical Ltd
// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Package yaml reads and writes YAML documents.
//
// Source code and other details for the project are available at GitHub:
//
//	https://github.com/yaml/go-yaml
//
// Text goes through a pipeline of small stages, each of which is exported
// on its own:
//
//	bytes -> Scan -> tokens
//	bytes -> Parse -> events -> Compose -> node tree -> Load -> Go values
//	Go values -> Dump -> node tree -> Emit -> bytes
//	node tree -> Serialize -> events
//
// A node tree owns every node of one document. Nodes refer to each other by
// NodeID, so an alias or a Go pointer reached twice becomes a node that is
// shared, and possibly cyclic.
//
// This file contains:
// - Type and constant re-exports from internal/libyaml
// - The pipeline functions (Scan, Parse, Compose, Emit, Serialize)
// - The Load API (Load, LoadAll, Unmarshal, Loader)

package yaml

import (
	"bytes"
	"io"

	"github.com/yaml/go-yaml/internal/libyaml"
)

//-----------------------------------------------------------------------------
// Tokens, events and marks
//-----------------------------------------------------------------------------

type (
	// Mark is a position in the input.
	// Line is 1-based and Column is 0-based.
	Mark = libyaml.Mark
	// Token is one lexical unit found by Scan.
	Token = libyaml.Token
	// TokenType identifies the kind of a Token.
	TokenType = libyaml.TokenType
	// Event is one step of the event stream built by Parse.
	Event = libyaml.Event
	// EventType identifies the kind of an Event.
	EventType = libyaml.EventType
	// ScalarStyle is the written form of a scalar in tokens and events.
	ScalarStyle = libyaml.ScalarStyle
	// Encoding is the character encoding detected on input.
	Encoding = libyaml.Encoding
)

// Re-export the core schema tags.
const (
	NullTag      = libyaml.NULL_TAG
	BoolTag      = libyaml.BOOL_TAG
	StrTag       = libyaml.STR_TAG
	IntTag       = libyaml.INT_TAG
	FloatTag     = libyaml.FLOAT_TAG
	TimestampTag = libyaml.TIMESTAMP_TAG
	SeqTag       = libyaml.SEQ_TAG
	MapTag       = libyaml.MAP_TAG
	BinaryTag    = libyaml.BINARY_TAG
	MergeTag     = libyaml.MERGE_TAG
)

//-----------------------------------------------------------------------------
// Errors
//-----------------------------------------------------------------------------

type (
	// MarkedYAMLError is an error that points at a place in the input.
	MarkedYAMLError = libyaml.MarkedYAMLError
	// ComposerError is returned for an unknown alias or a truncated
	// collection.
	ComposerError = libyaml.ComposerError
	// ReaderError is returned for input that is not valid UTF-8 or UTF-16,
	// or that holds characters YAML does not allow.
	ReaderError = libyaml.ReaderError
	// EmitterError is returned for trees that cannot be written.
	EmitterError = libyaml.EmitterError
	// WriterError wraps an error returned by the output io.Writer.
	WriterError = libyaml.WriterError
	// ConstructError is one value that could not be loaded.
	ConstructError = libyaml.ConstructError
	// LoadErrors collects the ConstructErrors of one document.
	LoadErrors = libyaml.LoadErrors
	// DocumentError names the document of a stream that failed.
	DocumentError = libyaml.DocumentError
)

//-----------------------------------------------------------------------------
// Pipeline
//-----------------------------------------------------------------------------

// Scan returns the tokens of in.
//
// Scanning never fails on YAML syntax; the only error is a ReaderError for
// input that cannot be decoded.
func Scan(in []byte) ([]Token, error) {
	text, _, err := libyaml.DecodeInput(in)
	if err != nil {
		return nil, err
	}
	return libyaml.Scan(text), nil
}

// Parse returns the event stream of in.
//
// The stream always holds at least one document; empty input parses as a
// single empty document.
func Parse(in []byte) ([]Event, error) {
	text, _, err := libyaml.DecodeInput(in)
	if err != nil {
		return nil, err
	}
	return libyaml.Parse(text), nil
}

// Compose returns the node tree of the first document of in.
//
// An alias becomes a copy of the node its anchor names. An empty document
// composes to a tree whose Root is NoNode.
func Compose(in []byte) (*Tree, error) {
	text, _, err := libyaml.DecodeInput(in)
	if err != nil {
		return nil, err
	}
	return libyaml.Compose(text)
}

// ComposeAll returns the node trees of every document of in.
// Anchors do not carry over from one document to the next.
func ComposeAll(in []byte) ([]*Tree, error) {
	text, _, err := libyaml.DecodeInput(in)
	if err != nil {
		return nil, err
	}
	return libyaml.ComposeAll(text)
}

// Emit writes t as a single YAML document.
//
// Nodes reached more than once are written once with an anchor and then
// by alias.
func Emit(t *Tree, opts ...Option) ([]byte, error) {
	return EmitAll([]*Tree{t}, opts...)
}

// EmitAll writes every tree as one document of a single stream.
func EmitAll(ts []*Tree, opts ...Option) ([]byte, error) {
	o, err := libyaml.ApplyOptions(opts...)
	if err != nil {
		return nil, err
	}
	out, err := libyaml.EmitAll(ts, o)
	if err != nil {
		return nil, err
	}
	return []byte(out), nil
}

// Serialize returns the event stream that writes t.
//
// Invalid options are ignored and the defaults used instead.
func Serialize(t *Tree, opts ...Option) []Event {
	o, err := libyaml.ApplyOptions(opts...)
	if err != nil {
		o = libyaml.DefaultOptions()
	}
	return libyaml.Serialize(t, o)
}

//-----------------------------------------------------------------------------
// Load API
//-----------------------------------------------------------------------------

type (
	// MapSlice is a mapping that keeps the order of its keys.
	// Mappings are loaded as MapSlice values under WithOrderedMaps.
	MapSlice = libyaml.MapSlice
	// MapItem is one key/value pair of a MapSlice.
	MapItem = libyaml.MapItem
	// ConstructorFunc builds the value of a node with a registered tag.
	ConstructorFunc = libyaml.ConstructorFunc
	// Marshaler is implemented by types that choose the value dumped in
	// their place.
	Marshaler = libyaml.Marshaler
	// Unmarshaler is implemented by types that decode themselves from a
	// node.
	Unmarshaler = libyaml.Unmarshaler
	// IsZeroer is used by the ",omitempty" flag to decide whether a value
	// is empty.
	IsZeroer = libyaml.IsZeroer
)

// Load constructs the first document of in.
//
// Under the default SafeTier scalars become nil, bool, int, uint64,
// float64 or string values, sequences []any and mappings map[string]any,
// or map[any]any when a key is not a string. An empty stream loads as nil.
func Load(in []byte, opts ...Option) (any, error) {
	return libyaml.Load(in, opts...)
}

// LoadAll constructs every document of in.
//
// The result has one entry per document. A document that fails to load is
// nil in the result, and its error, a *DocumentError, is joined into the
// returned error. The other documents are still loaded.
func LoadAll(in []byte, opts ...Option) ([]any, error) {
	return libyaml.LoadAll(in, opts...)
}

// Unmarshal decodes the first document of in into the value pointed to by
// out.
//
// Maps and pointers (to a struct, string, int, etc) are accepted as out
// values. If an internal pointer within a struct is not initialized, it is
// allocated as needed. Values that cannot be decoded into their target are
// skipped, and every such problem is reported together in a *LoadErrors
// once the rest of the document is decoded.
//
// Struct fields are only decoded if they are exported, and are matched by
// the field name lowercased unless a "yaml" field tag names the key:
//
//	type T struct {
//		F int `yaml:"a,omitempty"`
//		B int
//	}
//	var t T
//	yaml.Unmarshal([]byte("a: 1\nb: 2"), &t)
//
// See the documentation of Marshal for the format of field tags.
func Unmarshal(in []byte, out any, opts ...Option) error {
	return libyaml.Unmarshal(in, out, opts...)
}

// A Loader reads the documents of one stream, one at a time.
//
// A document that fails does not stop the Loader: the next call continues
// with the following document.
type Loader struct {
	l *libyaml.Loader
}

// NewLoader returns a Loader that reads from r with the given options.
//
// The input is read and decoded up front, so an encoding error is returned
// here rather than by Load.
func NewLoader(r io.Reader, opts ...Option) (*Loader, error) {
	l, err := libyaml.NewLoader(r, opts...)
	if err != nil {
		return nil, err
	}
	return &Loader{l: l}, nil
}

// Load constructs the next document.
// It returns io.EOF when there are no more documents.
func (l *Loader) Load() (any, error) {
	var v any
	if err := l.l.Load(&v); err != nil {
		return nil, err
	}
	return v, nil
}

// Decode decodes the next document into the value pointed to by out, as
// Unmarshal does. It returns io.EOF when there are no more documents.
func (l *Loader) Decode(out any) error {
	return l.l.Load(out)
}

// Compose returns the node tree of the next document.
// It returns io.EOF when there are no more documents.
func (l *Loader) Compose() (*Tree, error) {
	return l.l.Compose()
}

// Valid reports whether in decodes, and every document of it composes.
func Valid(in []byte) bool {
	l, err := NewLoader(bytes.NewReader(in))
	if err != nil {
		return false
	}
	for {
		_, err := l.Compose()
		if err == io.EOF {
			return true
		}
		if err != nil {
			return false
		}
	}
}
