// Package matcher decides whether user-supplied tokens denote command names
// or declared argument names. Both matchers accept abbreviations of the
// canonical name and ignore case and a single leading modifier prefix.
package matcher

import (
	"strings"

	"golang.org/x/text/cases"
)

// modifierPrefixes are checked in order, longest first.
var modifierPrefixes = []string{"--", "-", "/"}

// HasModifierPrefix reports whether token starts with "--", "-" or "/".
// Surrounding whitespace is ignored.
func HasModifierPrefix(token string) bool {
	token = strings.TrimSpace(token)
	for _, prefix := range modifierPrefixes {
		if strings.HasPrefix(token, prefix) {
			return true
		}
	}
	return false
}

// Normalize trims token and strips a single leading modifier prefix.
func Normalize(token string) string {
	token = strings.TrimSpace(token)
	for _, prefix := range modifierPrefixes {
		if strings.HasPrefix(token, prefix) {
			return token[len(prefix):]
		}
	}
	return token
}

// Fold returns the case-folded form of s used for all name comparisons.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// matchesName compares an already normalized token against a canonical name:
// equal, or a leading abbreviation of it. An empty token matches nothing.
func matchesName(canonical string, normalized string) bool {
	if normalized == "" {
		return false
	}
	return strings.HasPrefix(Fold(canonical), Fold(normalized))
}
