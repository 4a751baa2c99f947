package utils

import (
	"regexp"
	"strings"
)

var wsRegex = regexp.MustCompile(`\s+`)

// NormalizeWhitespace reduces consecutive whitespace to a single space and trims the result.
// Rendered pages spread one logical value over several text nodes and line breaks.
func NormalizeWhitespace(s string) string {
	return strings.TrimSpace(wsRegex.ReplaceAllString(s, " "))
}

// IsBlank reports whether s is empty or whitespace-only
func IsBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

// Truncate shortens s to at most maxLen runes, marking the cut with "..."
func Truncate(s string, maxLen int) string {
	runes := []rune(s)
	if len(runes) <= maxLen {
		return s
	}
	if maxLen <= 3 {
		return string(runes[:maxLen])
	}
	return string(runes[:maxLen-3]) + "..."
}
