package textutil

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// stripAccents decomposes to NFD and removes combining marks,
// so "Calças" and "calcas" compare equal after normalization.
var stripAccents = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Normalize canonicalizes user and catalog text before any comparison:
// lowercase, accents stripped, punctuation removed, whitespace collapsed.
// It is a pure, total function and is idempotent.
func Normalize(text string) string {
	lowered := strings.ToLower(text)

	stripped, _, err := transform.String(stripAccents, lowered)
	if err != nil {
		// transform only fails on malformed UTF-8; fall back to the lowered input
		stripped = lowered
	}

	var b strings.Builder
	b.Grow(len(stripped))
	for _, r := range stripped {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || unicode.IsSpace(r) {
			b.WriteRune(r)
		}
	}

	return strings.Join(strings.Fields(b.String()), " ")
}

// NormalizedEquals reports whether two strings are equal after normalization.
func NormalizedEquals(a, b string) bool {
	return Normalize(a) == Normalize(b)
}

// FindNormalizedMatch returns the first item whose normalized form equals
// the normalized query, or "" when none does.
func FindNormalizedMatch(query string, items []string) string {
	normalized := Normalize(query)
	for _, item := range items {
		if Normalize(item) == normalized {
			return item
		}
	}
	return ""
}
