// file: internal/server/genre_service.go
// version: 1.0.0
// guid: e9f0a1b2-c3d4-5e6f-7a8b-9c0d1e2f3a4b

package server

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/mediatheque/explorer/internal/genres"
	"github.com/mediatheque/explorer/internal/models"
)

// GenreService exposes the per-category genre vocabulary and a
// typo-tolerant suggester for tagging forms.
type GenreService struct {
	registry *genres.Registry
}

func NewGenreService(registry *genres.Registry) *GenreService {
	return &GenreService{registry: registry}
}

// GenreInfo is one vocabulary entry with its dominance rank.
type GenreInfo struct {
	Label string  `json:"label"`
	Rank  float64 `json:"rank"`
}

// List returns the category vocabulary ordered by rank, then label.
func (gs *GenreService) List(category models.Category) []GenreInfo {
	tbl := gs.registry.TableFor(category)
	vocab := tbl.Vocabulary()
	out := make([]GenreInfo, 0, len(vocab))
	for _, label := range vocab {
		out = append(out, GenreInfo{Label: label, Rank: tbl.WeightFor(label)})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Rank != out[j].Rank {
			return out[i].Rank < out[j].Rank
		}
		return out[i].Label < out[j].Label
	})
	return out
}

// Suggest fuzzy-matches the query against the category vocabulary,
// folding case and diacritics so "drame" finds "Dramé".
func (gs *GenreService) Suggest(category models.Category, query string, limit int) []string {
	if query == "" {
		return []string{}
	}
	if limit <= 0 {
		limit = 10
	}
	vocab := gs.registry.TableFor(category).Vocabulary()
	ranks := fuzzy.RankFindNormalizedFold(query, vocab)
	sort.Sort(ranks)
	out := make([]string, 0, limit)
	for _, r := range ranks {
		out = append(out, r.Target)
		if len(out) == limit {
			break
		}
	}
	return out
}
