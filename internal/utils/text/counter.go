// Package text provides small text utilities shared by the classifier:
// rune counting, rune-safe truncation and HTML-to-text conversion.
package text

// CountRunes counts the number of Unicode characters (runes) in the given text.
// Multi-byte characters count once, so limits expressed in characters hold for
// any script.
//
// Examples:
//
//	CountRunes("hello")     // returns 5
//	CountRunes("こんにちは") // returns 5
//	CountRunes("")          // returns 0
func CountRunes(text string) int {
	return len([]rune(text))
}

// Truncate returns the first max characters of text.
// Text that is already within the limit is returned unchanged. A limit of
// zero or less yields an empty string.
func Truncate(text string, max int) string {
	if max <= 0 {
		return ""
	}
	count := 0
	for i := range text {
		if count == max {
			return text[:i]
		}
		count++
	}
	return text
}
