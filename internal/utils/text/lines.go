package text

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// IsLineBoundary reports whether r ends a line. Besides \n and \r this
// includes \v, \f, the file/group/record separators U+001C..U+001E, NEL
// (U+0085) and the Unicode line and paragraph separators.
func IsLineBoundary(r rune) bool {
	switch r {
	case '\n', '\r', '\v', '\f', '\x1c', '\x1d', '\x1e', '\u0085', '\u2028', '\u2029':
		return true
	}
	return false
}

// IsSpace reports whether r is whitespace. It extends unicode.IsSpace with
// the separators U+001C..U+001F.
func IsSpace(r rune) bool {
	return unicode.IsSpace(r) || (r >= '\x1c' && r <= '\x1f')
}

// TrimSpace removes leading and trailing whitespace as defined by IsSpace.
func TrimSpace(s string) string {
	return strings.TrimFunc(s, IsSpace)
}

// SplitLines splits s at every line boundary. "\r\n" counts as a single
// boundary, empty lines between boundaries are kept and a trailing boundary
// does not produce a final empty line. An empty string has no lines.
//
// Examples:
//
//	SplitLines("a\r\nb\u2028c")  // ["a", "b", "c"]
//	SplitLines("a\n\nb\n")       // ["a", "", "b"]
//	SplitLines("")               // []
func SplitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); {
		r, size := utf8.DecodeRuneInString(s[i:])
		if !IsLineBoundary(r) {
			i += size
			continue
		}
		lines = append(lines, s[start:i])
		i += size
		if r == '\r' && i < len(s) && s[i] == '\n' {
			i++
		}
		start = i
	}
	if start < len(s) {
		lines = append(lines, s[start:])
	}
	return lines
}
