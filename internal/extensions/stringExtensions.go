package extensions

// TruncateString cuts s to at most maxLen runes, ending in "...".
func TruncateString(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}

	return string(runes[:maxLen-3]) + "..."
}

// TruncateStringStart keeps the end of s, which is the useful part of a long path.
func TruncateStringStart(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}

	return "..." + string(runes[len(runes)-(maxLen-3):])
}
