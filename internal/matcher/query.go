// file: internal/matcher/query.go
// version: 1.0.0
// guid: 6b3e9a1d-4f7c-4d2e-a8b0-1c5f8e3a7d92

package matcher

import (
	"regexp"
	"strings"

	"github.com/mediatheque/explorer/internal/textnorm"
)

var (
	phraseRe  = regexp.MustCompile(`"([^"]+)"`)
	excludeRe = regexp.MustCompile(`(^|\s)-(\S+)`)
)

// parsedQuery is the decomposed form of a free-text query: quoted phrases
// that must all appear, -prefixed terms that must not appear, and plain
// words that are ANDed.
type parsedQuery struct {
	phrases  []string
	excluded []string
	words    []string
}

func (q parsedQuery) empty() bool {
	return len(q.phrases) == 0 && len(q.excluded) == 0 && len(q.words) == 0
}

// parseQuery extracts quoted phrases first, then exclusion terms from the
// remainder, then treats leftover tokens longer than one character as
// required words. All parts are normalized.
func parseQuery(raw string) parsedQuery {
	var q parsedQuery

	for _, m := range phraseRe.FindAllStringSubmatch(raw, -1) {
		if p := textnorm.Normalize(m[1]); p != "" {
			q.phrases = append(q.phrases, p)
		}
	}
	rest := phraseRe.ReplaceAllString(raw, " ")

	rest = excludeRe.ReplaceAllStringFunc(rest, func(m string) string {
		word := strings.TrimPrefix(strings.TrimSpace(m), "-")
		if n := textnorm.Normalize(word); n != "" {
			q.excluded = append(q.excluded, n)
		}
		return " "
	})

	for _, w := range textnorm.Tokenize(rest) {
		if len(w) > 1 {
			q.words = append(q.words, w)
		}
	}
	return q
}
