package utils

import "unicode/utf8"

// TruncatePreview cuts s to at most max characters and appends "..."
// when anything was dropped. The cut always lands on a rune boundary,
// so multi-byte text is never corrupted.
func TruncatePreview(s string, max int) string {
	if max <= 0 || utf8.RuneCountInString(s) <= max {
		return s
	}
	n := 0
	for i := range s {
		if n == max {
			return s[:i] + "..."
		}
		n++
	}
	return s
}
