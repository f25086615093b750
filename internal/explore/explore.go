// file: internal/explore/explore.go
// version: 1.2.0
// guid: 7c3e9a1d-5f28-4b64-a0d9-8e4b2c6f1a35

// Package explore implements the catalog exploration pipeline: boolean
// text filtering, genre and status narrowing, chapter-range limits, and a
// stackable multi-key sort including a genre-profile similarity order.
package explore

import (
	"sort"
	"strings"

	"github.com/mediatheque/explorer/internal/genres"
	"github.com/mediatheque/explorer/internal/matcher"
	"github.com/mediatheque/explorer/internal/models"
	"github.com/mediatheque/explorer/internal/textnorm"
)

// SortKey names one sortable dimension of the result grid.
type SortKey string

const (
	SortTitle      SortKey = "title"
	SortModified   SortKey = "modif"
	SortProgress   SortKey = "progress"
	SortChapters   SortKey = "chapters"
	SortDate       SortKey = "date"
	SortLastRead   SortKey = "lastRead"
	SortSimilarity SortKey = "similarity"
)

// KnownSortKey reports whether k is one of the supported sort keys.
func KnownSortKey(k SortKey) bool {
	switch k {
	case SortTitle, SortModified, SortProgress, SortChapters, SortDate, SortLastRead, SortSimilarity:
		return true
	}
	return false
}

// Query captures one pass over the catalog. Zero values mean "no
// constraint" throughout: an empty title matches everything, a zero
// chapter bound is ignored, an empty sort stack leaves pool order.
type Query struct {
	Title       string
	Description string
	GenresIn    []string
	GenresOut   []string
	Status      Status

	// ChapterMin/ChapterMax bound the chapter total; only applied for
	// chapter-counted categories and only when positive.
	ChapterMin int
	ChapterMax int

	// SortBy is the primary sort, applied after the stack. Empty means
	// title order.
	SortBy SortKey
	// SortStack is the secondary sort stack, applied from last to first
	// so the first stack entry is the strongest tiebreak under SortBy.
	SortStack []SortKey
	// Descending flips the direction of every sort key in the pass.
	Descending bool
}

// Explorer runs queries for one category and viewer against a genre table.
type Explorer struct {
	category models.Category
	viewer   models.ViewerKey
	table    *genres.Table
}

// New builds an Explorer. The table drives the similarity sort order and
// must belong to the same category.
func New(category models.Category, viewer models.ViewerKey, table *genres.Table) *Explorer {
	return &Explorer{category: category, viewer: viewer, table: table}
}

// Apply filters and sorts a copy of pool according to q. The input slice
// is never mutated.
func (e *Explorer) Apply(pool []models.Work, q Query) []models.Work {
	out := make([]models.Work, len(pool))
	copy(out, pool)

	if title := strings.TrimSpace(q.Title); title != "" {
		out = filterWorks(out, func(w *models.Work) bool {
			return matcher.TitleMatches(w, title)
		})
		// Alphabetical baseline so narrowing a title search never
		// shuffles the survivors.
		sort.SliceStable(out, func(i, j int) bool {
			return textnorm.Normalize(out[i].Title) < textnorm.Normalize(out[j].Title)
		})
	}

	if desc := strings.TrimSpace(q.Description); desc != "" {
		out = filterWorks(out, func(w *models.Work) bool {
			return matcher.DescriptionMatches(w, desc)
		})
	}

	if len(q.GenresIn) > 0 || len(q.GenresOut) > 0 {
		in := normalizeAll(q.GenresIn)
		ex := normalizeAll(q.GenresOut)
		out = filterWorks(out, func(w *models.Work) bool {
			return hasAllGenres(w, in) && hasNoExcludedGenre(w, ex)
		})
	}

	if q.Status != "" {
		out = filterWorks(out, func(w *models.Work) bool {
			return StatusOf(w, e.category, e.viewer) == q.Status
		})
	}

	if e.category.ChapterCounted() && (q.ChapterMin > 0 || q.ChapterMax > 0) {
		out = filterWorks(out, func(w *models.Work) bool {
			ch := int(w.ChTotal)
			if q.ChapterMin > 0 && ch < q.ChapterMin {
				return false
			}
			if q.ChapterMax > 0 && ch > q.ChapterMax {
				return false
			}
			return true
		})
	}

	e.sortAll(out, q)
	return out
}

// sortAll applies the secondary stack in reverse order, then the primary
// key last, so each successive stable sort preserves the previous order
// as its tiebreak.
func (e *Explorer) sortAll(out []models.Work, q Query) {
	dir := 1
	if q.Descending {
		dir = -1
	}
	primary := q.SortBy
	if primary == "" {
		primary = SortTitle
	}
	for i := len(q.SortStack) - 1; i >= 0; i-- {
		if q.SortStack[i] == "" || q.SortStack[i] == primary {
			continue
		}
		e.applySort(out, q.SortStack[i], dir)
	}
	e.applySort(out, primary, dir)
}

func (e *Explorer) applySort(out []models.Work, key SortKey, dir int) {
	switch key {
	case SortTitle:
		sortStable(out, dir, func(a, b *models.Work) int {
			return strings.Compare(textnorm.Normalize(a.Title), textnorm.Normalize(b.Title))
		})
	case SortModified:
		// Newest first in the ascending direction.
		sortStable(out, dir, func(a, b *models.Work) int {
			return compareInt64(b.ModifieLe.Millis(), a.ModifieLe.Millis())
		})
	case SortProgress:
		sortStable(out, dir, func(a, b *models.Work) int {
			return ProgressPercent(a, e.viewer) - ProgressPercent(b, e.viewer)
		})
	case SortChapters:
		if !e.category.ChapterCounted() {
			return
		}
		sortStable(out, dir, func(a, b *models.Work) int {
			return compareFloat(a.ChTotal, b.ChTotal)
		})
	case SortDate:
		sortStable(out, dir, func(a, b *models.Work) int {
			return compareInt64(a.Date.Millis(), b.Date.Millis())
		})
	case SortLastRead:
		sortStable(out, dir, func(a, b *models.Work) int {
			return compareInt64(a.DerniereLecture.Millis(), b.DerniereLecture.Millis())
		})
	case SortSimilarity:
		sortStable(out, dir, e.compareSimilarity)
	}
}

// compareSimilarity orders works by genre profile: lead classification,
// then primary and secondary dominant genre (rank, then key), then
// shared-genre volume between the two works, then signature prefix, then
// title.
func (e *Explorer) compareSimilarity(a, b *models.Work) int {
	if la, lb := genres.LeadOf(a), genres.LeadOf(b); la != lb {
		return int(la) - int(lb)
	}

	a1, a2 := e.table.BestPrimaryPair(a)
	b1, b2 := e.table.BestPrimaryPair(b)

	if c := compareFloat(e.table.KeyRank(a1.Key), e.table.KeyRank(b1.Key)); c != 0 {
		return c
	}
	if c := strings.Compare(a1.Key, b1.Key); c != 0 {
		return c
	}
	if c := compareFloat(e.table.KeyRank(a2.Key), e.table.KeyRank(b2.Key)); c != 0 {
		return c
	}
	if c := strings.Compare(a2.Key, b2.Key); c != 0 {
		return c
	}

	if common := e.table.SharedGenreCount(a, b); common != 0 {
		return -common
	}

	if c := strings.Compare(signaturePrefix(e.table, a), signaturePrefix(e.table, b)); c != 0 {
		return c
	}
	return strings.Compare(textnorm.Normalize(a.Title), textnorm.Normalize(b.Title))
}

func signaturePrefix(tbl *genres.Table, w *models.Work) string {
	sig := tbl.Signature(w)
	if len(sig) > 8 {
		sig = sig[:8]
	}
	return strings.Join(sig, "|")
}

func filterWorks(in []models.Work, keep func(*models.Work) bool) []models.Work {
	out := in[:0]
	for i := range in {
		if keep(&in[i]) {
			out = append(out, in[i])
		}
	}
	return out
}

func normalizeAll(labels []string) []string {
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		if n := textnorm.Normalize(l); strings.TrimSpace(n) != "" {
			out = append(out, n)
		}
	}
	return out
}

// hasAllGenres requires every wanted label to appear among the work's
// genres, compared on normalized text.
func hasAllGenres(w *models.Work, wanted []string) bool {
	if len(wanted) == 0 {
		return true
	}
	have := make(map[string]bool, len(w.Genres))
	for _, g := range w.Genres {
		have[textnorm.Normalize(g)] = true
	}
	for _, want := range wanted {
		if !have[want] {
			return false
		}
	}
	return true
}

func hasNoExcludedGenre(w *models.Work, excluded []string) bool {
	if len(excluded) == 0 {
		return true
	}
	for _, g := range w.Genres {
		n := textnorm.Normalize(g)
		for _, ex := range excluded {
			if n == ex {
				return false
			}
		}
	}
	return true
}

// sortStable sorts by a three-way comparator with a direction multiplier,
// keeping ties in their prior order so stacked sorts compose.
func sortStable(out []models.Work, dir int, cmp func(a, b *models.Work) int) {
	sort.SliceStable(out, func(i, j int) bool {
		return cmp(&out[i], &out[j])*dir < 0
	})
}

func compareInt64(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
