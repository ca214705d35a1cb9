package diag

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// Suggest returns the candidate closest to word: a case-insensitive exact
// match first, then the best fuzzy subsequence match.
func Suggest(word string, candidates []string) (string, bool) {
	if word == "" {
		return "", false
	}

	for _, c := range candidates {
		if c != word && strings.EqualFold(c, word) {
			return c, true
		}
	}

	matches := fuzzy.Find(word, candidates)
	if len(matches) == 0 {
		return "", false
	}
	return matches[0].Str, true
}
