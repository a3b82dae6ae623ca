// Copyright 2011-2019 Canonical Ltd
// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Reader stage: Turns raw input bytes into UTF-8 text.
// The encoding is taken from the byte order mark; input without one is
// UTF-8.

package libyaml

import (
	"bytes"
	"errors"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}

	errInvalidUTF8  = errors.New("invalid UTF-8 sequence")
	errInvalidUTF16 = errors.New("invalid UTF-16 sequence")
	errControlChar  = errors.New("control characters are not allowed")
)

// DecodeInput returns input as UTF-8 text together with the encoding it
// was written in. A UTF-8 byte order mark is dropped and UTF-16 input is
// converted.
func DecodeInput(input []byte) (string, Encoding, error) {
	var (
		enc  = UTF8_ENCODING
		text = input
	)
	switch {
	case bytes.HasPrefix(input, bomUTF8):
		text = input[len(bomUTF8):]
	case bytes.HasPrefix(input, bomUTF16LE):
		enc = UTF16LE_ENCODING
	case bytes.HasPrefix(input, bomUTF16BE):
		enc = UTF16BE_ENCODING
	}
	if enc != UTF8_ENCODING {
		endian := unicode.LittleEndian
		if enc == UTF16BE_ENCODING {
			endian = unicode.BigEndian
		}
		if len(input)%2 != 0 {
			return "", enc, ReaderError{Offset: len(input) - 1, Value: int(input[len(input)-1]), Err: errInvalidUTF16}
		}
		decoded, err := unicode.UTF16(endian, unicode.ExpectBOM).NewDecoder().Bytes(input)
		if err != nil {
			return "", enc, ReaderError{Err: err}
		}
		text = decoded
	}
	if err := checkText(text); err != nil {
		return "", enc, err
	}
	return string(text), enc, nil
}

// checkText reports the first byte that is not printable UTF-8 text.
func checkText(text []byte) error {
	for i := 0; i < len(text); {
		r, size := utf8.DecodeRune(text[i:])
		switch {
		case r == utf8.RuneError && size <= 1:
			return ReaderError{Offset: i, Value: int(text[i]), Err: errInvalidUTF8}
		case !isPrintable(r) && r != '\t' && r != '\n' && r != '\r':
			return ReaderError{Offset: i, Value: int(r), Err: errControlChar}
		}
		i += size
	}
	return nil
}
