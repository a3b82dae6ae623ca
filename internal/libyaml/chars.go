// Copyright 2025 The go-yaml Project Contributors
// SPDX-License-Identifier: Apache-2.0

// Character classification helpers used by the scanner, parser and emitter.

package libyaml

// Check if the byte is a space or a tab.
func isBlank(b byte) bool {
	return b == ' ' || b == '\t'
}

// Check if the byte is a line break.
func isBreak(b byte) bool {
	return b == '\r' || b == '\n'
}

// Check if the byte at i is blank, a line break or past the end of s.
func isBlankOrEnd(s string, i int) bool {
	return i >= len(s) || isBlank(s[i]) || isBreak(s[i])
}

// Check if the byte may appear in an anchor or alias name.
func isAnchorChar(b byte) bool {
	return b >= '0' && b <= '9' || b >= 'A' && b <= 'Z' || b >= 'a' && b <= 'z' ||
		b == '_' || b == '-'
}

// Check if the byte may appear in a tag suffix.
func isTagChar(b byte) bool {
	if isAnchorChar(b) {
		return true
	}
	switch b {
	case ';', '/', '?', ':', '@', '&', '=', '+', '$', '.', '~', '*', '\'', '(', ')', '%', '#':
		return true
	}
	return false
}

// Check if the byte ends a plain scalar token.
func isPlainTerminator(b byte) bool {
	switch b {
	case ' ', '\t', '\r', '\n', ':', '[', ']', '{', '}', ',':
		return true
	}
	return false
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}

func isHex(b byte) bool {
	return b >= '0' && b <= '9' || b >= 'A' && b <= 'F' || b >= 'a' && b <= 'f'
}

func asHex(b byte) rune {
	switch {
	case b >= 'A' && b <= 'F':
		return rune(b) - 'A' + 10
	case b >= 'a' && b <= 'f':
		return rune(b) - 'a' + 10
	}
	return rune(b) - '0'
}

// Check if the rune can be written without escaping.
func isPrintable(r rune) bool {
	switch {
	case r == 0x0A:
		return true
	case r >= 0x20 && r <= 0x7E:
		return true
	case r == 0x85:
		return true
	case r >= 0xA0 && r <= 0xD7FF:
		return true
	case r >= 0xE000 && r <= 0xFFFD && r != 0xFEFF:
		return true
	case r >= 0x10000 && r <= 0x10FFFF:
		return true
	}
	return false
}

// Check if the rune is a unicode line or paragraph separator, or NEL.
func isUnicodeBreak(r rune) bool {
	return r == 0x85 || r == 0x2028 || r == 0x2029
}
