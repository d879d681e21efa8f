package services

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// NormalizeText canonicalizes free-form location and table-name text:
// diacritics stripped, uppercased, whitespace collapsed to single spaces.
// The function is idempotent, so normalized text can be re-normalized safely
// when it round-trips through persistence.
func NormalizeText(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	stripped, _, err := transform.String(t, s)
	if err != nil {
		// Transform only fails on malformed UTF-8; fall back to the raw text
		// so a bad byte in one reference row cannot poison resolution.
		stripped = s
	}

	return strings.Join(strings.Fields(strings.ToUpper(stripped)), " ")
}

// NormalizeState canonicalizes a two-letter state code.
func NormalizeState(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}
