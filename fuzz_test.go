// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package yaml_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/yaml/go-yaml"
)

// setupSeedCorpus adds the inputs of the parser's event tests.
func setupSeedCorpus(f *testing.F) {
	path := filepath.Join("internal", "libyaml", "testdata", "events.yaml")
	data, err := os.ReadFile(path)
	if err != nil {
		f.Fatalf("could not read test cases %q: %s", path, err)
	}
	var cases []struct {
		YAML string `yaml:"yaml"`
	}
	if err := yaml.Unmarshal(data, &cases); err != nil {
		f.Fatalf("could not load test cases %q: %s", path, err)
	}
	for _, c := range cases {
		f.Add([]byte(c.YAML))
	}
}

func FuzzMarshalUnmarshal(f *testing.F) {
	setupSeedCorpus(f)
	f.Fuzz(func(t *testing.T, in []byte) {
		var v any
		if err := yaml.Unmarshal(in, &v); err != nil {
			return
		}
		if _, err := yaml.Marshal(&v); err != nil {
			t.Fatalf("could not marshal unmarshaled tree: %q: %s", in, err)
		}
	})
}

func FuzzComposeEmit(f *testing.F) {
	setupSeedCorpus(f)
	f.Fuzz(func(t *testing.T, in []byte) {
		tree, err := yaml.Compose(in)
		if err != nil {
			return
		}
		out, err := yaml.Emit(tree)
		if err != nil {
			t.Fatalf("could not emit composed tree: %q: %s", in, err)
		}
		again, err := yaml.Compose(out)
		if err != nil {
			t.Fatalf("could not compose emitted text %q of %q: %s", out, in, err)
		}
		if !yaml.Equal(tree, again) {
			t.Fatalf("tree of %q changed after emitting it as %q", in, out)
		}
	})
}
