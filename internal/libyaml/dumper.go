// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// This file contains the Dumper API for writing YAML documents.
//
// Primary functions:
// - Dump: Encode one value as a single document
// - DumpAll: Encode a list of values as a multi-document stream
// - Marshal: Dump with plain keys and implicit tags
// - NewDumper: Create a streaming dumper to io.Writer

package libyaml

import (
	"bytes"
	"io"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// A Dumper writes YAML values to an output stream with configurable options.
// It runs two stages for every value:
//  1. Representer: Go values → node tree
//  2. Emitter: node tree → YAML text
type Dumper struct {
	representer *Representer
	emitter     *Emitter
	logger      log.Logger
}

// NewDumper returns a new Dumper that writes to w with the given options.
//
// Every document is flushed to w as soon as it is written; Close only
// flushes what is left.
func NewDumper(w io.Writer, opts ...Option) (*Dumper, error) {
	o, err := ApplyOptions(opts...)
	if err != nil {
		return nil, err
	}
	logger := o.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Dumper{
		representer: NewRepresenter(o),
		emitter:     NewEmitter(w, o),
		logger:      logger,
	}, nil
}

// Dump writes v to the stream as the next document.
//
// The second and subsequent documents are preceded by a "---" separator.
func (d *Dumper) Dump(v any) error {
	tree, err := d.representer.Represent(v)
	if err != nil {
		return err
	}
	level.Debug(d.logger).Log("msg", "dumping document", "nodes", tree.Len())
	return d.emitter.Emit(tree)
}

// DumpTree writes an already built tree as the next document.
func (d *Dumper) DumpTree(t *Tree) error {
	return d.emitter.Emit(t)
}

// Close flushes anything left in the buffer.
// It does not write a stream terminating "...".
func (d *Dumper) Close() error {
	return d.emitter.Flush()
}

// Dump encodes v as a single YAML document.
//
// Maps are written with their keys sorted, struct fields in declaration
// order. Pointers, maps and slices that are reached more than once are
// written once with an anchor and then referred to by alias.
func Dump(v any, opts ...Option) ([]byte, error) {
	return DumpAll([]any{v}, opts...)
}

// DumpAll encodes every value of vs as one document of a single stream.
func DumpAll(vs []any, opts ...Option) ([]byte, error) {
	var buf bytes.Buffer
	d, err := NewDumper(&buf, opts...)
	if err != nil {
		return nil, err
	}
	for _, v := range vs {
		if err := d.Dump(v); err != nil {
			return nil, err
		}
	}
	if err := d.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Marshal encodes v the way people write YAML by hand: keys are plain
// and tags are left out wherever reading the text back infers them.
func Marshal(v any) ([]byte, error) {
	return Dump(v, WithPlainKeys(), WithImplicitTags())
}
