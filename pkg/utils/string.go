package utils

// Truncate shortens s to at most maxLen runes, appending an ellipsis when the
// string is cut. Answers are user text and can contain multibyte characters,
// so the cut is rune-based.
func Truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	return string(runes[:maxLen]) + "..."
}
