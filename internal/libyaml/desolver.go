// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Desolver: Decides which tags can be left out of the output.
// This is the inverse of the Resolver - a tag may be elided when reading
// the written value back would infer the same tag.

package libyaml

// Desolver decides which node tags the emitter has to write.
type Desolver struct {
	opts *Options
}

// NewDesolver creates a new Desolver with the given options.
func NewDesolver(opts *Options) *Desolver {
	return &Desolver{opts: opts}
}

// ScalarTag returns the tag that must be written for the scalar n, or ""
// when no tag is needed.
// mustQuote is set when a str value would be read back as another type if
// written plain.
//
// Without ImplicitTags every tag other than str is kept.
func (d *Desolver) ScalarTag(n *Node) (tag string, mustQuote bool) {
	if n.Tag == "" {
		return "", false
	}
	if n.Tag == STR_TAG {
		if d.opts != nil && d.opts.Canonical {
			return n.Tag, false
		}
		return "", Resolve(n.Value) != STR_TAG
	}
	if d.opts == nil || !d.opts.ImplicitTags || d.opts.Canonical {
		return n.Tag, false
	}
	// If explicitly tagged by the author, keep it
	if n.Style&TaggedStyle != 0 {
		return n.Tag, false
	}
	switch n.Tag {
	case NULL_TAG, BOOL_TAG, INT_TAG, FLOAT_TAG:
		if Resolve(n.Value) == n.Tag {
			return "", false
		}
	}
	return n.Tag, false
}

// CollectionTag returns the tag that must be written for the sequence or
// mapping n, or "" for the default tags.
func (d *Desolver) CollectionTag(n *Node) string {
	switch {
	case n.Kind == MappingNode && n.Tag == MAP_TAG,
		n.Kind == SequenceNode && n.Tag == SEQ_TAG,
		n.Tag == "":
		return ""
	}
	return n.Tag
}
