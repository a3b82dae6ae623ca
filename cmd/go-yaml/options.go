// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"

	"github.com/yaml/go-yaml"
)

// errOptionHelp is returned when "-o help" asks for the option list.
var errOptionHelp = errors.New("option help requested")

// optionSpec defines metadata for an option
type optionSpec struct {
	typ     string // "bool", "int", "string", "multi", "preset"
	handler func(value string) ([]yaml.Option, error)
}

func boolOption(with func(...bool) yaml.Option) optionSpec {
	return optionSpec{typ: "bool", handler: func(value string) ([]yaml.Option, error) {
		return []yaml.Option{with(value == "true")}, nil
	}}
}

func intOption(name string, with func(int) yaml.Option) optionSpec {
	return optionSpec{typ: "int", handler: func(value string) ([]yaml.Option, error) {
		n, err := strconv.Atoi(value)
		if err != nil {
			return nil, errors.Errorf("%s requires an integer value", name)
		}
		return []yaml.Option{with(n)}, nil
	}}
}

// optionRegistry maps option names (including short aliases) to their specs
var optionRegistry = map[string]optionSpec{
	// Presets
	"canonical-preset": {typ: "preset", handler: func(string) ([]yaml.Option, error) {
		return []yaml.Option{yaml.Canonical}, nil
	}},
	"compact": {typ: "preset", handler: func(string) ([]yaml.Option, error) {
		return []yaml.Option{yaml.Compact}, nil
	}},
	"explicit-tags": {typ: "preset", handler: func(string) ([]yaml.Option, error) {
		return []yaml.Option{yaml.WithImplicitTags(false), yaml.WithPlainKeys(false)}, nil
	}},

	// Formatting options
	"indent":     intOption("indent", yaml.WithIndent),
	"line-width": intOption("line-width", yaml.WithLineWidth),
	"width":      intOption("width", yaml.WithLineWidth),
	"unicode":    boolOption(yaml.WithUnicode),
	"canonical":  boolOption(yaml.WithCanonical),
	"line-break": {typ: "string", handler: func(value string) ([]yaml.Option, error) {
		var lb yaml.LineBreak
		switch value {
		case "ln":
			lb = yaml.LineBreakLN
		case "cr":
			lb = yaml.LineBreakCR
		case "crln":
			lb = yaml.LineBreakCRLN
		default:
			return nil, errors.New("line-break must be ln, cr or crln")
		}
		return []yaml.Option{yaml.WithLineBreak(lb)}, nil
	}},
	"flow": {typ: "string", handler: func(value string) ([]yaml.Option, error) {
		var fp yaml.FlowPreference
		switch value {
		case "auto":
			fp = yaml.FlowAuto
		case "always":
			fp = yaml.FlowAlways
		case "never":
			fp = yaml.FlowNever
		default:
			return nil, errors.New("flow must be auto, always or never")
		}
		return []yaml.Option{yaml.WithDefaultFlowStyle(fp)}, nil
	}},
	"explicit-start": boolOption(yaml.WithExplicitStart),
	"explicit-end":   boolOption(yaml.WithExplicitEnd),
	"explicit": {typ: "multi", handler: func(value string) ([]yaml.Option, error) {
		val := value == "true"
		return []yaml.Option{yaml.WithExplicitStart(val), yaml.WithExplicitEnd(val)}, nil
	}},
	"implicit-tags": boolOption(yaml.WithImplicitTags),
	"plain-keys":    boolOption(yaml.WithPlainKeys),
	"sort-keys":     boolOption(yaml.WithSortKeys),
	"sort":          boolOption(yaml.WithSortKeys),
	"tag-prefix": {typ: "string", handler: func(value string) ([]yaml.Option, error) {
		handle, prefix, ok := strings.Cut(value, ":")
		if !ok {
			return nil, errors.New("tag-prefix requires HANDLE:PREFIX")
		}
		return []yaml.Option{yaml.WithTagPrefix(prefix, handle)}, nil
	}},

	// Loading options
	"tier": {typ: "string", handler: func(value string) ([]yaml.Option, error) {
		tier, err := yaml.ParseTier(value)
		if err != nil {
			return nil, err
		}
		return []yaml.Option{yaml.WithTier(tier)}, nil
	}},
	"known-fields": boolOption(yaml.WithKnownFields),
}

// parseOneOption parses a single option (name=value, name or no-name).
func parseOneOption(s string) ([]yaml.Option, error) {
	if s == "help" || s == "?" {
		return nil, errOptionHelp
	}

	// Check for "no-" prefix for boolean false
	if name, ok := strings.CutPrefix(s, "no-"); ok {
		if spec, ok := optionRegistry[name]; ok {
			if spec.typ != "bool" && spec.typ != "multi" {
				return nil, errors.Errorf("option %s is not boolean, cannot use no- prefix", name)
			}
			return spec.handler("false")
		}
	}

	// Check for "name=value" format
	if name, value, found := strings.Cut(s, "="); found {
		spec, ok := optionRegistry[name]
		if !ok {
			return nil, errors.Errorf("unknown option: %s", name)
		}
		if spec.typ == "bool" || spec.typ == "multi" {
			if value != "true" && value != "false" {
				return nil, errors.Errorf("option %s requires true or false value", name)
			}
		}
		if spec.typ == "preset" {
			return nil, errors.Errorf("preset %s takes no value", name)
		}
		return spec.handler(value)
	}

	// Must be "name" alone (boolean true)
	spec, ok := optionRegistry[s]
	if !ok {
		return nil, errors.Errorf("unknown option: %s", s)
	}
	if spec.typ != "bool" && spec.typ != "multi" && spec.typ != "preset" {
		return nil, errors.Errorf("option %s requires a value (use %s=value)", s, s)
	}
	return spec.handler("true")
}

// parseOptionFlags parses a comma-separated options string.
func parseOptionFlags(s string) ([]yaml.Option, error) {
	var opts []yaml.Option
	for _, part := range strings.Split(s, ",") {
		trimmed := strings.TrimSpace(part)
		if trimmed == "" {
			continue
		}
		opt, err := parseOneOption(trimmed)
		if err != nil {
			return nil, err
		}
		opts = append(opts, opt...)
	}
	return opts, nil
}

// printAvailableOptions prints the list of available options for -o.
func printAvailableOptions(w io.Writer) {
	fmt.Fprint(w, `Available options for -o/--option:

Presets:
  compact               Plain keys, implicit tags, auto flow [default]
  canonical-preset      Canonical form between explicit markers
  explicit-tags         Quoted keys and a tag on every non-string scalar

Formatting options:
  indent=NUM            Indentation spaces (2-9)
  line-width=NUM        Preferred line width (short: width)
  unicode               Allow non-ASCII in output
  canonical             Canonical YAML output format
  line-break=TYPE       Line ending: ln, cr or crln
  flow=WHEN             Flow collections: auto, always or never
  explicit-start        Always emit '---' marker
  explicit-end          Always emit '...' marker
  explicit              Both explicit-start and explicit-end
  implicit-tags         Leave out tags the reader infers anyway
  plain-keys            Write mapping keys without quotes
  sort-keys             Write mapping pairs ordered by key (short: sort)
  tag-prefix=H:PREFIX   Shorten tags starting with PREFIX to handle H

Loading options:
  tier=NAME             strings, safe, extended or unrestricted
  known-fields          Strict field checking

Boolean options: use 'name' for true, 'no-name' for false
Multiple options: comma-separated or repeat -o flag

Examples:
  go-yaml -y -o indent=4,sort
  go-yaml -y -o canonical-preset
  go-yaml -j -o tier=extended
`)
}

// buildOptions creates the option list from the config file and -o flags.
// Later options override earlier ones, so -o wins over the config file and
// both win over the compact default.
func buildOptions(configFile string, optionFlags []string) ([]yaml.Option, error) {
	opts := []yaml.Option{yaml.Compact}

	if configFile != "" {
		configData, err := os.ReadFile(configFile)
		if err != nil {
			return nil, errors.Wrap(err, "read config file")
		}
		configOpts, err := yaml.OptsYAML(string(configData))
		if err != nil {
			return nil, errors.Wrapf(err, "parse config file %s", configFile)
		}
		opts = append(opts, configOpts)
	}

	for _, optStr := range optionFlags {
		parsedOpts, err := parseOptionFlags(optStr)
		if err != nil {
			return nil, err
		}
		opts = append(opts, parsedOpts...)
	}
	return opts, nil
}
