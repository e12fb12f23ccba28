// Package search provides fuzzy matching for incremental filters.
package search

import (
	"strings"

	"github.com/sahilm/fuzzy"
)

// Matches reports whether query fuzzy-matches text. Matching is
// case-insensitive; an empty query matches everything.
func Matches(text, query string) bool {
	if query == "" {
		return true
	}
	found := fuzzy.Find(strings.ToLower(query), []string{strings.ToLower(text)})
	return len(found) > 0
}

// MatchesAny reports whether query fuzzy-matches any of the given texts.
func MatchesAny(texts []string, query string) bool {
	for _, text := range texts {
		if Matches(text, query) {
			return true
		}
	}
	return false
}
