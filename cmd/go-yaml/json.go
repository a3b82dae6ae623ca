// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/pkg/errors"

	"github.com/yaml/go-yaml"
)

// writeJSON loads every document of in and writes each one as a line of
// JSON. Mappings keep their key order.
func writeJSON(w io.Writer, in []byte, pretty bool, opts []yaml.Option) error {
	docs, err := yaml.LoadAll(in, append(opts, yaml.WithOrderedMaps())...)
	if err != nil {
		return errors.Wrap(err, "load")
	}
	for i, doc := range docs {
		var buf bytes.Buffer
		if err := encodeJSON(&buf, doc); err != nil {
			return errors.Wrapf(err, "document %d", i)
		}
		out := buf.Bytes()
		if pretty {
			var indented bytes.Buffer
			if err := json.Indent(&indented, out, "", "  "); err != nil {
				return errors.Wrapf(err, "document %d", i)
			}
			out = indented.Bytes()
		}
		out = append(out, '\n')
		if _, err := w.Write(out); err != nil {
			return err
		}
	}
	return nil
}

// encodeJSON writes v as compact JSON. MapSlice becomes an object with its
// keys in order; YAML's special floats, which JSON cannot hold, become
// strings.
func encodeJSON(b *bytes.Buffer, v any) error {
	switch v := v.(type) {
	case yaml.MapSlice:
		b.WriteByte('{')
		for i, item := range v {
			if i > 0 {
				b.WriteByte(',')
			}
			key, err := json.Marshal(jsonKey(item.Key))
			if err != nil {
				return err
			}
			b.Write(key)
			b.WriteByte(':')
			if err := encodeJSON(b, item.Value); err != nil {
				return err
			}
		}
		b.WriteByte('}')
		return nil
	case []any:
		b.WriteByte('[')
		for i, item := range v {
			if i > 0 {
				b.WriteByte(',')
			}
			if err := encodeJSON(b, item); err != nil {
				return err
			}
		}
		b.WriteByte(']')
		return nil
	case float64:
		switch {
		case math.IsNaN(v):
			b.WriteString(`".nan"`)
			return nil
		case math.IsInf(v, 1):
			b.WriteString(`".inf"`)
			return nil
		case math.IsInf(v, -1):
			b.WriteString(`"-.inf"`)
			return nil
		}
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	b.Write(data)
	return nil
}

// jsonKey converts a mapping key to the string JSON requires.
func jsonKey(k any) string {
	switch k := k.(type) {
	case string:
		return k
	case nil:
		return "null"
	}
	var b bytes.Buffer
	if err := encodeJSON(&b, k); err == nil {
		if s := b.String(); s != "" && s[0] != '"' {
			return s
		}
	}
	return fmt.Sprint(k)
}
