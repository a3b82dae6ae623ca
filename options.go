// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// This file contains:
// - Options API (WithIndent, WithTier, etc.)
// - Presets (Canonical, Compact)
// - OptsYAML, which reads options from a YAML document

package yaml

import (
	"errors"
	"fmt"
	"sort"

	"github.com/yaml/go-yaml/internal/libyaml"
)

// Option allows configuring YAML loading and dumping operations.
type Option = libyaml.Option

type (
	// Tier limits which tags are loaded as native Go values.
	Tier = libyaml.Tier
	// FlowPreference selects when collections are written in flow style.
	FlowPreference = libyaml.FlowPreference
	// LineBreak selects the line break written between lines.
	LineBreak = libyaml.LineBreak
)

// Construction tiers, from most to least restricted.
const (
	// StringsTier loads every scalar as its string value.
	StringsTier = libyaml.StringsTier
	// SafeTier loads null, bool, int, float and str. It is the default.
	SafeTier = libyaml.SafeTier
	// ExtendedTier adds timestamps and binary data.
	ExtendedTier = libyaml.ExtendedTier
	// UnrestrictedTier adds "<<" merge keys and tags registered with
	// WithConstructor.
	UnrestrictedTier = libyaml.UnrestrictedTier
)

const (
	FlowAuto   = libyaml.FlowAuto
	FlowAlways = libyaml.FlowAlways
	FlowNever  = libyaml.FlowNever
)

const (
	LineBreakLN   = libyaml.LN_BREAK
	LineBreakCR   = libyaml.CR_BREAK
	LineBreakCRLN = libyaml.CRLN_BREAK
)

// ParseTier converts "strings", "safe", "extended" or "unrestricted" to a
// Tier.
func ParseTier(name string) (Tier, error) {
	return libyaml.ParseTier(name)
}

// Option configuration functions
var (
	// WithIndent sets the number of spaces of each block indentation level
	// when emitting. Values outside 2..9 fall back to 2; negative values are
	// an error.
	WithIndent = libyaml.WithIndent

	// WithLineWidth sets the preferred line width for emitted YAML.
	//
	// Long plain and quoted scalars are folded at spaces to stay within the
	// width. Widths not larger than twice the indent fall back to 80.
	WithLineWidth = libyaml.WithLineWidth

	// WithCanonical writes every document in the canonical form: a %YAML
	// directive, explicit tags on every node and flow collections only.
	WithCanonical = libyaml.WithCanonical

	// WithDefaultFlowStyle picks when collections are written in flow
	// style. FlowAuto, the default, uses flow style for small collections
	// of scalars only.
	WithDefaultFlowStyle = libyaml.WithDefaultFlowStyle

	// WithUnicode allows non-ASCII characters to be written unescaped.
	// The default is true.
	WithUnicode = libyaml.WithUnicode

	// WithLineBreak selects the line break written between lines.
	WithLineBreak = libyaml.WithLineBreak

	// WithTagPrefix adds a tag shorthand: tags starting with prefix are
	// written as the handle followed by the rest of the tag. The handle
	// must start and end with '!'.
	WithTagPrefix = libyaml.WithTagPrefix

	// WithExplicitStart writes a "---" marker before every document.
	WithExplicitStart = libyaml.WithExplicitStart

	// WithExplicitEnd writes a "..." marker after every document.
	WithExplicitEnd = libyaml.WithExplicitEnd

	// WithImplicitTags leaves out scalar tags that reading the value back
	// would infer anyway.
	WithImplicitTags = libyaml.WithImplicitTags

	// WithPlainKeys allows mapping keys to be written without quotes.
	WithPlainKeys = libyaml.WithPlainKeys

	// WithSortKeys writes the pairs of every mapping ordered by key.
	WithSortKeys = libyaml.WithSortKeys

	// WithTier sets how far scalars are loaded into native values.
	WithTier = libyaml.WithTier

	// WithOrderedMaps loads mappings as MapSlice values that keep their
	// key order.
	WithOrderedMaps = libyaml.WithOrderedMaps

	// WithKnownFields makes decoding into a struct fail on mapping keys
	// that match no field.
	WithKnownFields = libyaml.WithKnownFields

	// WithConstructor registers a constructor for nodes with the given
	// tag. Registered constructors only run under UnrestrictedTier.
	WithConstructor = libyaml.WithConstructor

	// WithLogger sets the go-kit logger that reports failed documents and
	// dumped documents. The default discards everything.
	WithLogger = libyaml.WithLogger
)

// Options combines multiple options into a single Option.
// This is useful for creating option presets or combining presets with
// custom options.
//
// Example:
//
//	opts := yaml.Options(yaml.Compact, yaml.WithIndent(4))
//	yaml.Dump(&data, opts)
func Options(opts ...Option) Option {
	return libyaml.CombineOptions(opts...)
}

// Canonical writes documents in canonical form between explicit markers,
// as used by the YAML specification examples.
var Canonical = Options(
	WithCanonical(),
	WithExplicitStart(),
	WithExplicitEnd(),
)

// Compact writes YAML the way people write it by hand: plain keys, no
// inferable tags, and flow style for small collections.
var Compact = Options(
	WithPlainKeys(),
	WithImplicitTags(),
	WithDefaultFlowStyle(FlowAuto),
)

// OptsYAML parses a YAML document of option settings and returns an
// Option that can be combined with other options using Options().
//
// The document can set any of these keys:
//   - indent (int)
//   - line-width (int)
//   - canonical (bool)
//   - flow (auto, always or never)
//   - unicode (bool)
//   - line-break (ln, cr or crln)
//   - explicit-start (bool)
//   - explicit-end (bool)
//   - implicit-tags (bool)
//   - plain-keys (bool)
//   - sort-keys (bool)
//   - tier (strings, safe, extended or unrestricted)
//   - ordered-maps (bool)
//   - known-fields (bool)
//   - tag-prefixes (mapping of handle to prefix)
//
// Only the keys that are present produce options, and unknown keys are an
// error.
//
// Example:
//
//	opts, err := yaml.OptsYAML(`
//	  indent: 4
//	  tier: extended
//	`)
//	yaml.Dump(&data, opts)
func OptsYAML(yamlStr string) (Option, error) {
	var cfg struct {
		Indent        *int              `yaml:"indent"`
		LineWidth     *int              `yaml:"line-width"`
		Canonical     *bool             `yaml:"canonical"`
		Flow          *string           `yaml:"flow"`
		Unicode       *bool             `yaml:"unicode"`
		LineBreak     *string           `yaml:"line-break"`
		ExplicitStart *bool             `yaml:"explicit-start"`
		ExplicitEnd   *bool             `yaml:"explicit-end"`
		ImplicitTags  *bool             `yaml:"implicit-tags"`
		PlainKeys     *bool             `yaml:"plain-keys"`
		SortKeys      *bool             `yaml:"sort-keys"`
		Tier          *string           `yaml:"tier"`
		OrderedMaps   *bool             `yaml:"ordered-maps"`
		KnownFields   *bool             `yaml:"known-fields"`
		TagPrefixes   map[string]string `yaml:"tag-prefixes"`
	}
	if err := Unmarshal([]byte(yamlStr), &cfg, WithKnownFields()); err != nil {
		return nil, err
	}

	// Build options only for fields that were set
	var optList []Option
	if cfg.Indent != nil {
		optList = append(optList, WithIndent(*cfg.Indent))
	}
	if cfg.LineWidth != nil {
		optList = append(optList, WithLineWidth(*cfg.LineWidth))
	}
	if cfg.Canonical != nil {
		optList = append(optList, WithCanonical(*cfg.Canonical))
	}
	if cfg.Flow != nil {
		switch *cfg.Flow {
		case "auto":
			optList = append(optList, WithDefaultFlowStyle(FlowAuto))
		case "always":
			optList = append(optList, WithDefaultFlowStyle(FlowAlways))
		case "never":
			optList = append(optList, WithDefaultFlowStyle(FlowNever))
		default:
			return nil, errors.New("yaml: invalid flow value: " + *cfg.Flow + " (use auto, always or never)")
		}
	}
	if cfg.Unicode != nil {
		optList = append(optList, WithUnicode(*cfg.Unicode))
	}
	if cfg.LineBreak != nil {
		switch *cfg.LineBreak {
		case "ln":
			optList = append(optList, WithLineBreak(LineBreakLN))
		case "cr":
			optList = append(optList, WithLineBreak(LineBreakCR))
		case "crln":
			optList = append(optList, WithLineBreak(LineBreakCRLN))
		default:
			return nil, errors.New("yaml: invalid line-break value: " + *cfg.LineBreak + " (use ln, cr or crln)")
		}
	}
	if cfg.ExplicitStart != nil {
		optList = append(optList, WithExplicitStart(*cfg.ExplicitStart))
	}
	if cfg.ExplicitEnd != nil {
		optList = append(optList, WithExplicitEnd(*cfg.ExplicitEnd))
	}
	if cfg.ImplicitTags != nil {
		optList = append(optList, WithImplicitTags(*cfg.ImplicitTags))
	}
	if cfg.PlainKeys != nil {
		optList = append(optList, WithPlainKeys(*cfg.PlainKeys))
	}
	if cfg.SortKeys != nil {
		optList = append(optList, WithSortKeys(*cfg.SortKeys))
	}
	if cfg.Tier != nil {
		tier, err := ParseTier(*cfg.Tier)
		if err != nil {
			return nil, err
		}
		optList = append(optList, WithTier(tier))
	}
	if cfg.OrderedMaps != nil {
		optList = append(optList, WithOrderedMaps(*cfg.OrderedMaps))
	}
	if cfg.KnownFields != nil {
		optList = append(optList, WithKnownFields(*cfg.KnownFields))
	}
	handles := make([]string, 0, len(cfg.TagPrefixes))
	for handle := range cfg.TagPrefixes {
		handles = append(handles, handle)
	}
	sort.Strings(handles)
	for _, handle := range handles {
		optList = append(optList, WithTagPrefix(cfg.TagPrefixes[handle], handle))
	}

	// Check the values now so a bad document fails here rather than on
	// first use.
	if _, err := libyaml.ApplyOptions(optList...); err != nil {
		return nil, fmt.Errorf("yaml: invalid options: %w", err)
	}
	return Options(optList...), nil
}
