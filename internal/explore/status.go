// file: internal/explore/status.go
// version: 1.1.0
// guid: 2f6b0d8c-4a91-4e37-8c5d-1b9e6f3a7d02

package explore

import (
	"strings"

	"github.com/mediatheque/explorer/internal/models"
	"github.com/mediatheque/explorer/internal/textnorm"
)

// Status is a viewer-relative consumption state.
type Status string

const (
	StatusNotStarted Status = "nonCommence"
	StatusInProgress Status = "enCours"
	StatusFinished   Status = "termine"
)

// closedStatusTerms mark catalog statuses under which full progress counts
// as finished. Matched on folded text so accents never matter.
var closedStatusTerms = []string{"termine", "complet", "abandonne"}

func statusClosed(statut string) bool {
	s := textnorm.Normalize(statut)
	for _, term := range closedStatusTerms {
		if strings.Contains(s, term) {
			return true
		}
	}
	return false
}

// StatusOf classifies a work for one viewer. Chapter-counted categories
// compare chapters read to the chapter total, episodic categories compare
// episode and season counters, and films are finished once a watch date is
// recorded.
func StatusOf(w *models.Work, category models.Category, viewer models.ViewerKey) Status {
	switch {
	case category.ChapterCounted():
		read := w.ChaptersReadFor(viewer).Max()
		if read == 0 {
			return StatusNotStarted
		}
		total := int(w.ChTotal)
		if statusClosed(w.Statut) && total > 0 && read >= total {
			return StatusFinished
		}
		return StatusInProgress

	case category.Episodic():
		ep := w.EpisodeFor(viewer)
		sa := w.SaisonFor(viewer)
		if ep == 0 && sa == 0 {
			return StatusNotStarted
		}
		if statusClosed(w.Statut) && ep >= w.EpisodeTotal && sa >= w.SaisonTotal {
			return StatusFinished
		}
		return StatusInProgress

	case category == models.CategoryFilms:
		if strings.TrimSpace(w.DerniereEcoute) != "" {
			return StatusFinished
		}
		return StatusNotStarted
	}
	return StatusNotStarted
}

// ProgressPercent returns the viewer's reading progress as a clamped,
// rounded percentage. Works without a chapter total always report 0.
func ProgressPercent(w *models.Work, viewer models.ViewerKey) int {
	total := w.ChTotal
	if total <= 0 {
		return 0
	}
	read := w.ChaptersReadFor(viewer).Max()
	pct := int(100*float64(read)/total + 0.5)
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
