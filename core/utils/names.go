package utils

import (
	"strings"
	"unicode"
)

// NormalizeName prepares a display name for duplicate comparison:
// lowercase with all whitespace removed. "Dry  Martini" and "drymartini"
// normalize to the same value.
func NormalizeName(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		if unicode.IsSpace(r) {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}
