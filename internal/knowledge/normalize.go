package knowledge

import (
	"strings"
	"unicode"
)

// Normalize lowercases a term and strips everything that is not a
// letter or digit from its edges. Keywords and query tokens go through
// the same function so index lookups stay symmetric.
func Normalize(term string) string {
	term = strings.ToLower(strings.TrimSpace(term))
	return strings.TrimFunc(term, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// Tokenize splits raw query text into the deduplicated set of
// normalized tokens. Punctuation (including ¿ and ¡) acts as a
// separator. Order of first appearance is preserved so callers
// iterating the result stay deterministic.
func Tokenize(text string) []string {
	fields := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	seen := make(map[string]bool, len(fields))
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if f == "" || seen[f] {
			continue
		}
		seen[f] = true
		tokens = append(tokens, f)
	}
	return tokens
}
