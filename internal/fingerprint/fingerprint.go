// Stable content fingerprints for dedup and AI-cache keys.
// Scraped text arrives with inconsistent accents/composition, so
// everything is unicode-normalized before hashing.

package fingerprint

import (
	"crypto/md5"
	"encoding/hex"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// jdPrefixLen bounds how much of the JD participates in the AI-cache
// key, counted in runes so a multibyte JD never splits mid-character.
// Identical title + first 500 chars share one verdict.
const jdPrefixLen = 500

func normalizeText(str string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	result, _, _ := transform.String(t, str)
	return strings.ToLower(result)
}

func md5Hex(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])
}

// JobHash derives the AI-cache key from the title plus the first 500
// characters of the description, both lowercased and trimmed.
func JobHash(title, description string) string {
	desc := description
	if runes := []rune(desc); len(runes) > jdPrefixLen {
		desc = string(runes[:jdPrefixLen])
	}
	raw := strings.TrimSpace(normalizeText(title)) + "|" + strings.TrimSpace(normalizeText(desc))
	return md5Hex(raw)
}

// IdentityHash collapses the same opening reported under different
// tracking URLs: (company, title, country) is the in-batch identity.
func IdentityHash(company, title, country string) string {
	raw := normalizeText(company) + "|" + normalizeText(title) + "|" + normalizeText(country)
	return md5Hex(raw)
}
