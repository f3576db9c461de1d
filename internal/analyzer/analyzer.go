// Package analyzer tokenizes free text and classifies it against the keyword
// taxonomy. Everything here is plain substring and set membership matching.
package analyzer

import (
	"strings"
	"unicode"

	"github.com/felixgeelhaar/specflow/internal/domain"
	"github.com/felixgeelhaar/specflow/internal/taxonomy"
)

// minTokenLength is the shortest token Normalize keeps.
const minTokenLength = 3

// TokenSet is an unordered set of normalized tokens.
type TokenSet map[string]struct{}

// Has reports whether word is in the set.
func (s TokenSet) Has(word string) bool {
	_, ok := s[word]
	return ok
}

// HasAny reports whether any of words is in the set.
func (s TokenSet) HasAny(words ...string) bool {
	for _, w := range words {
		if s.Has(w) {
			return true
		}
	}
	return false
}

// Normalize lowercases text, turns everything outside [a-z0-9] and whitespace
// into a space, splits on whitespace, and drops tokens shorter than three
// characters.
func Normalize(text string) TokenSet {
	cleaned := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			return r
		case unicode.IsSpace(r):
			return r
		default:
			return ' '
		}
	}, strings.ToLower(text))

	tokens := make(TokenSet)
	for _, word := range strings.Fields(cleaned) {
		if len(word) >= minTokenLength {
			tokens[word] = struct{}{}
		}
	}
	return tokens
}

// DetectComponent returns the first taxonomy category with a keyword that is a
// substring of the lowercased text. Substring matching over-matches on
// purpose ("ui" hits "build"), so there is always a classification.
func DetectComponent(text string) domain.Component {
	lower := strings.ToLower(text)
	for _, category := range taxonomy.Components {
		for _, kw := range category.Keywords {
			if strings.Contains(lower, kw) {
				return category.Component
			}
		}
	}
	return taxonomy.DefaultComponent
}

// DetectUserTypes returns every user type mentioned in text, in vocabulary
// order. The result is never empty.
func DetectUserTypes(text string) []string {
	lower := strings.ToLower(text)
	var found []string
	for _, userType := range taxonomy.UserTypes {
		if strings.Contains(lower, userType) {
			found = append(found, userType)
		}
	}
	if len(found) == 0 {
		return []string{taxonomy.DefaultUserType}
	}
	return found
}
