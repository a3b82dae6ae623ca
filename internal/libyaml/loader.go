// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// This file contains the Loader API for reading YAML documents.
//
// Primary functions:
// - Load: Construct the first document of a stream
// - LoadAll: Construct every document, isolating failed ones
// - Unmarshal: Decode the first document into a typed value
// - NewLoader: Create a document-at-a-time loader from an io.Reader

package libyaml

import (
	"bytes"
	"errors"
	"io"

	"github.com/go-kit/log"
	"github.com/go-kit/log/level"
)

// A Loader reads the documents of one stream, one at a time.
//
// A document that fails to compose or construct does not stop the
// Loader: the next call continues with the following document.
type Loader struct {
	composer    *Composer
	constructor *Constructor
	logger      log.Logger
	docCount    int
}

// NewLoader returns a new Loader that reads from r with the given options.
//
// The whole input is read and checked up front, so an encoding error is
// returned here rather than by Load.
func NewLoader(r io.Reader, opts ...Option) (*Loader, error) {
	o, err := ApplyOptions(opts...)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	text, _, err := DecodeInput(data)
	if err != nil {
		return nil, err
	}
	logger := o.Logger
	if logger == nil {
		logger = log.NewNopLogger()
	}
	return &Loader{
		composer:    NewComposer(Parse(text)),
		constructor: NewConstructor(o),
		logger:      logger,
	}, nil
}

// Compose returns the tree of the next document, or io.EOF when there are
// no more documents.
func (l *Loader) Compose() (*Tree, error) {
	tree, err := l.composer.ComposeDocument()
	if err != nil {
		l.docCount++
		return nil, &DocumentError{Index: l.docCount - 1, Err: err}
	}
	if tree == nil {
		return nil, io.EOF
	}
	l.docCount++
	return tree, nil
}

// Load reads the next document and stores its value in the value pointed
// to by v.
//
// Returns io.EOF when there are no more documents to read. Errors are
// wrapped in a *DocumentError naming the failed document.
func (l *Loader) Load(v any) error {
	tree, err := l.Compose()
	if err != nil {
		if err != io.EOF {
			l.warn(err)
		}
		return err
	}
	if err := l.constructor.Decode(tree, v); err != nil {
		err = &DocumentError{Index: l.docCount - 1, Err: err}
		l.warn(err)
		return err
	}
	return nil
}

func (l *Loader) warn(err error) {
	level.Warn(l.logger).Log("msg", "document failed to load", "doc", l.docCount-1, "err", err, "line", errorLine(err))
}

// errorLine returns the 1-based line an error points at, or 0.
func errorLine(err error) int {
	var ce ComposerError
	if errors.As(err, &ce) {
		return ce.Mark.Line
	}
	var le *LoadErrors
	if errors.As(err, &le) && len(le.Errors) > 0 {
		return le.Errors[0].Line
	}
	return 0
}

// Load constructs the first document of in.
// An empty stream loads as nil.
func Load(in []byte, opts ...Option) (any, error) {
	var v any
	if err := Unmarshal(in, &v, opts...); err != nil {
		return v, err
	}
	return v, nil
}

// LoadAll constructs every document of in.
//
// The result has one entry per document. A document that fails is nil in
// the result and its error is joined into the returned error; the other
// documents are still loaded.
func LoadAll(in []byte, opts ...Option) ([]any, error) {
	l, err := NewLoader(bytes.NewReader(in), opts...)
	if err != nil {
		return nil, err
	}
	var (
		docs []any
		errs []error
	)
	for {
		var v any
		err := l.Load(&v)
		if err == io.EOF {
			break
		}
		if err != nil {
			v = nil
			errs = append(errs, err)
		}
		docs = append(docs, v)
	}
	return docs, errors.Join(errs...)
}

// Unmarshal decodes the first document of in into the value pointed to by
// out.
//
// Struct fields are only loaded if they are exported, and are matched by
// the lowercased field name unless a "yaml" field tag names the key.
// Values of the wrong type are skipped and reported together in a
// *LoadErrors once the rest of the document is decoded.
func Unmarshal(in []byte, out any, opts ...Option) error {
	l, err := NewLoader(bytes.NewReader(in), opts...)
	if err != nil {
		return err
	}
	err = l.Load(out)
	if err == io.EOF {
		return nil
	}
	var de *DocumentError
	if errors.As(err, &de) {
		return de.Err
	}
	return err
}
