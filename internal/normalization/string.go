package normalization

import (
	"strings"
)

// ParseEmail lowercases and trims an email address.
func ParseEmail(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}

// ParseInputString trims surrounding whitespace without touching case.
// Hebrew free-text fields (track names, notes, journal content) are
// case-preserving.
func ParseInputString(input string) string {
	return strings.TrimSpace(input)
}
