// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Functional options shared by the loader, the dumper and the emitter.

package libyaml

import (
	"errors"
	"strings"

	"github.com/go-kit/log"
)

// FlowPreference selects when collections are written in flow style.
type FlowPreference int8

const (
	// FlowAuto writes small all-scalar collections in flow style.
	FlowAuto FlowPreference = iota
	// FlowAlways writes every collection in flow style.
	FlowAlways
	// FlowNever writes every collection in block style.
	FlowNever
)

func (f FlowPreference) String() string {
	switch f {
	case FlowAlways:
		return "always"
	case FlowNever:
		return "never"
	}
	return "auto"
}

// Tier limits which tags the constructor turns into native values.
type Tier int8

const (
	// StringsTier constructs every scalar as its string value.
	StringsTier Tier = iota
	// SafeTier constructs null, bool, int, float and str.
	SafeTier
	// ExtendedTier adds timestamps and binary data to SafeTier.
	ExtendedTier
	// UnrestrictedTier adds merge keys and registered tag constructors.
	UnrestrictedTier
)

func (t Tier) String() string {
	switch t {
	case StringsTier:
		return "strings"
	case SafeTier:
		return "safe"
	case ExtendedTier:
		return "extended"
	case UnrestrictedTier:
		return "unrestricted"
	}
	return "unknown"
}

// ParseTier converts the name printed by Tier.String back to a Tier.
func ParseTier(name string) (Tier, error) {
	switch strings.ToLower(name) {
	case "strings":
		return StringsTier, nil
	case "safe":
		return SafeTier, nil
	case "extended":
		return ExtendedTier, nil
	case "unrestricted":
		return UnrestrictedTier, nil
	}
	return 0, errors.New("yaml: unknown tier " + name + " (use strings, safe, extended or unrestricted)")
}

// TagPrefix maps a tag URI prefix to the handle written in its place.
type TagPrefix struct {
	Prefix string
	Handle string
}

// DefaultTagPrefixes is the shorthand table used when no other is set.
var DefaultTagPrefixes = []TagPrefix{
	{Prefix: "!", Handle: "!"},
	{Prefix: coreTagPrefix, Handle: "!!"},
}

// Options holds the settings of every stage.
type Options struct {
	// Emitter
	Indent        int
	LineWidth     int
	Canonical     bool
	FlowStyle     FlowPreference
	Unicode       bool
	LineBreak     LineBreak
	TagPrefixes   []TagPrefix
	ExplicitStart bool
	ExplicitEnd   bool
	ImplicitTags  bool
	PlainKeys     bool
	SortKeys      bool

	// Constructor
	Tier         Tier
	OrderedMaps  bool
	KnownFields  bool
	Constructors map[string]ConstructorFunc

	Logger log.Logger
}

// Option allows configuring the loader, the dumper and the emitter.
type Option func(*Options) error

const (
	defaultIndent    = 2
	defaultLineWidth = 80
)

// DefaultOptions returns the settings used when no option is given.
func DefaultOptions() *Options {
	return &Options{
		Indent:      defaultIndent,
		LineWidth:   defaultLineWidth,
		Unicode:     true,
		LineBreak:   LN_BREAK,
		TagPrefixes: DefaultTagPrefixes,
		Tier:        SafeTier,
		Logger:      log.NewNopLogger(),
	}
}

// ApplyOptions applies opts on top of DefaultOptions.
func ApplyOptions(opts ...Option) (*Options, error) {
	o := DefaultOptions()
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(o); err != nil {
			return nil, err
		}
	}
	return o, nil
}

// CombineOptions folds several options into one.
func CombineOptions(opts ...Option) Option {
	return func(o *Options) error {
		for _, opt := range opts {
			if opt == nil {
				continue
			}
			if err := opt(o); err != nil {
				return err
			}
		}
		return nil
	}
}

func optBool(v []bool) bool {
	return len(v) == 0 || v[0]
}

// WithIndent sets the number of spaces of each block indentation level.
// Values outside 2..9 are clamped by the emitter.
func WithIndent(indent int) Option {
	return func(o *Options) error {
		if indent < 0 {
			return errors.New("yaml: cannot indent to a negative number of spaces")
		}
		o.Indent = indent
		return nil
	}
}

// WithLineWidth sets the preferred line width.
// Widths not larger than twice the indent fall back to 80.
func WithLineWidth(width int) Option {
	return func(o *Options) error {
		o.LineWidth = width
		return nil
	}
}

func WithCanonical(canonical ...bool) Option {
	return func(o *Options) error {
		o.Canonical = optBool(canonical)
		return nil
	}
}

func WithDefaultFlowStyle(style FlowPreference) Option {
	return func(o *Options) error {
		o.FlowStyle = style
		return nil
	}
}

func WithUnicode(unicode ...bool) Option {
	return func(o *Options) error {
		o.Unicode = optBool(unicode)
		return nil
	}
}

func WithLineBreak(lb LineBreak) Option {
	return func(o *Options) error {
		o.LineBreak = lb
		return nil
	}
}

// WithTagPrefix adds a tag shorthand. Tags starting with prefix are written
// as handle followed by the rest of the tag.
func WithTagPrefix(prefix, handle string) Option {
	return func(o *Options) error {
		if !strings.HasPrefix(handle, "!") || !strings.HasSuffix(handle, "!") {
			return errors.New("yaml: tag handle must start and end with '!'")
		}
		prefixes := make([]TagPrefix, 0, len(o.TagPrefixes)+1)
		prefixes = append(prefixes, TagPrefix{Prefix: prefix, Handle: handle})
		for _, p := range o.TagPrefixes {
			if p.Prefix != prefix {
				prefixes = append(prefixes, p)
			}
		}
		o.TagPrefixes = prefixes
		return nil
	}
}

func WithExplicitStart(explicit ...bool) Option {
	return func(o *Options) error {
		o.ExplicitStart = optBool(explicit)
		return nil
	}
}

func WithExplicitEnd(explicit ...bool) Option {
	return func(o *Options) error {
		o.ExplicitEnd = optBool(explicit)
		return nil
	}
}

// WithImplicitTags leaves out scalar tags that reading the value back would
// infer anyway.
func WithImplicitTags(implicit ...bool) Option {
	return func(o *Options) error {
		o.ImplicitTags = optBool(implicit)
		return nil
	}
}

// WithPlainKeys allows mapping keys to be written without quotes.
func WithPlainKeys(plain ...bool) Option {
	return func(o *Options) error {
		o.PlainKeys = optBool(plain)
		return nil
	}
}

// WithSortKeys writes mapping pairs ordered by key.
func WithSortKeys(sortKeys ...bool) Option {
	return func(o *Options) error {
		o.SortKeys = optBool(sortKeys)
		return nil
	}
}

func WithTier(tier Tier) Option {
	return func(o *Options) error {
		if tier < StringsTier || tier > UnrestrictedTier {
			return errors.New("yaml: invalid construction tier")
		}
		o.Tier = tier
		return nil
	}
}

// WithOrderedMaps constructs mappings as MapSlice values.
func WithOrderedMaps(ordered ...bool) Option {
	return func(o *Options) error {
		o.OrderedMaps = optBool(ordered)
		return nil
	}
}

func WithKnownFields(known ...bool) Option {
	return func(o *Options) error {
		o.KnownFields = optBool(known)
		return nil
	}
}

// WithConstructor registers fn for nodes tagged tag.
// Registered constructors only run under UnrestrictedTier.
func WithConstructor(tag string, fn ConstructorFunc) Option {
	return func(o *Options) error {
		if fn == nil {
			return errors.New("yaml: nil constructor for " + tag)
		}
		m := make(map[string]ConstructorFunc, len(o.Constructors)+1)
		for k, v := range o.Constructors {
			m[k] = v
		}
		m[tag] = fn
		o.Constructors = m
		return nil
	}
}

func WithLogger(logger log.Logger) Option {
	return func(o *Options) error {
		if logger == nil {
			logger = log.NewNopLogger()
		}
		o.Logger = logger
		return nil
	}
}
