package extensions

import "unicode/utf8"

// TruncateString cuts on rune boundaries, Kannada text is multi-byte.
func TruncateString(s string, maxLen int) string {
	if utf8.RuneCountInString(s) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string([]rune(s)[:maxLen])
	}

	return string([]rune(s)[:maxLen-3]) + "..."
}
