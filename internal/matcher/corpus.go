// file: internal/matcher/corpus.go
// version: 1.0.0
// guid: 2d8f4b6a-9c1e-4f3a-8b5d-7e0c2a4f6d18

package matcher

import (
	"strings"
	"sync"

	"github.com/mediatheque/explorer/internal/models"
	"github.com/mediatheque/explorer/internal/textnorm"
)

// Corpus holds the normalized searchable text of one work, computed once
// and reused across filter passes.
type Corpus struct {
	TitleNorm   string
	TitleTokens map[string]struct{}
	DescNorm    string
	DescTokens  map[string]struct{}
}

// corpusCache memoizes corpora by category-qualified record ID. Entries are
// never evicted during a session; replacing a record requires an explicit
// Invalidate (record IDs are stable, unlike the object identities the cache
// would otherwise have to track).
var corpusCache = struct {
	sync.RWMutex
	entries map[string]*Corpus
}{entries: make(map[string]*Corpus)}

func cacheKey(w *models.Work) string {
	if w.ID == "" {
		return ""
	}
	return string(w.Category) + "|" + w.ID
}

// Prepare returns the normalized search corpus for w, building and caching
// it on first use. Works without an ID are computed fresh each call.
func Prepare(w *models.Work) *Corpus {
	key := cacheKey(w)
	if key != "" {
		corpusCache.RLock()
		c, ok := corpusCache.entries[key]
		corpusCache.RUnlock()
		if ok {
			return c
		}
	}

	c := buildCorpus(w)

	if key != "" {
		corpusCache.Lock()
		corpusCache.entries[key] = c
		corpusCache.Unlock()
	}
	return c
}

func buildCorpus(w *models.Work) *Corpus {
	parts := make([]string, 0, len(w.OtherTitles)+2)
	if w.Title != "" {
		parts = append(parts, w.Title)
	}
	parts = append(parts, w.OtherTitles...)
	if w.ID != "" {
		parts = append(parts, w.ID)
	}

	titleNorm := textnorm.Normalize(strings.Join(parts, " | "))
	descNorm := textnorm.Normalize(w.Description)

	return &Corpus{
		TitleNorm:   titleNorm,
		TitleTokens: textnorm.TokenSet(titleNorm),
		DescNorm:    descNorm,
		DescTokens:  textnorm.TokenSet(descNorm),
	}
}

// Warm precomputes corpora for a record set, typically right after loading
// a category from the store.
func Warm(works []models.Work) {
	for i := range works {
		Prepare(&works[i])
	}
}

// Invalidate drops the cached corpus for one record, for callers replacing
// a record in place.
func Invalidate(category models.Category, id string) {
	if id == "" {
		return
	}
	corpusCache.Lock()
	delete(corpusCache.entries, string(category)+"|"+id)
	corpusCache.Unlock()
}

// ResetCache drops every cached corpus. Used by tests and full reloads.
func ResetCache() {
	corpusCache.Lock()
	corpusCache.entries = make(map[string]*Corpus)
	corpusCache.Unlock()
}
