// file: internal/matcher/matcher.go
// version: 2.1.0
// guid: 1f2a3b4c-5d6e-7f8a-9b0c-1d2e3f4a5b6c

package matcher

import (
	"strings"

	"github.com/mediatheque/explorer/internal/models"
)

// TitleMatches evaluates query against the work's title corpus (title,
// alternate titles and ID). An empty or whitespace query always matches.
// Semantics: every quoted phrase must be a substring, no exclusion term may
// be a substring, and every remaining word must be present as an exact
// token or as a substring of the normalized title.
func TitleMatches(w *models.Work, query string) bool {
	if strings.TrimSpace(query) == "" {
		return true
	}
	q := parseQuery(query)
	if q.empty() {
		return true
	}
	c := Prepare(w)

	for _, neg := range q.excluded {
		if strings.Contains(c.TitleNorm, neg) {
			return false
		}
	}
	for _, p := range q.phrases {
		if !strings.Contains(c.TitleNorm, p) {
			return false
		}
	}
	for _, word := range q.words {
		if _, ok := c.TitleTokens[word]; ok {
			continue
		}
		if strings.Contains(c.TitleNorm, word) {
			continue
		}
		return false
	}
	return true
}

// DescriptionMatches evaluates query against the work's description with a
// light fuzzy net: a required word matches if it is a substring of the
// description, or contained in some token longer than two characters, or
// (for words of four characters and up) within edit-distance similarity
// 0.88 of some token of four characters and up.
func DescriptionMatches(w *models.Work, query string) bool {
	if strings.TrimSpace(query) == "" {
		return true
	}
	q := parseQuery(query)
	if q.empty() {
		return true
	}
	c := Prepare(w)

	for _, neg := range q.excluded {
		if strings.Contains(c.DescNorm, neg) {
			return false
		}
	}
	for _, p := range q.phrases {
		if !strings.Contains(c.DescNorm, p) {
			return false
		}
	}
	for _, word := range q.words {
		if strings.Contains(c.DescNorm, word) {
			continue
		}
		if !descTokenMatch(c.DescTokens, word) {
			return false
		}
	}
	return true
}

func descTokenMatch(tokens map[string]struct{}, word string) bool {
	for tok := range tokens {
		if len(tok) <= 2 {
			continue
		}
		if strings.Contains(tok, word) {
			return true
		}
		if len(word) >= 4 && len(tok) >= 4 && Similarity(word, tok) >= 0.88 {
			return true
		}
	}
	return false
}
