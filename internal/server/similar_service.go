// file: internal/server/similar_service.go
// version: 1.0.0
// guid: c7d8e9f0-a1b2-3c4d-5e6f-7a8b9c0d1e2f

package server

import (
	"fmt"
	"strconv"

	"github.com/mediatheque/explorer/internal/cache"
	"github.com/mediatheque/explorer/internal/database"
	"github.com/mediatheque/explorer/internal/genres"
	"github.com/mediatheque/explorer/internal/metrics"
	"github.com/mediatheque/explorer/internal/models"
	"github.com/mediatheque/explorer/internal/similar"
)

// DefaultSimilarLimit bounds "more like this" lists when no limit is given.
const DefaultSimilarLimit = 12

// SimilarService ranks works against reference sets: a single work for
// "more like this", or a viewer's favorites for the recommendation feed.
type SimilarService struct {
	db        database.Store
	registry  *genres.Registry
	responses *cache.Cache[any]
}

func NewSimilarService(db database.Store, registry *genres.Registry, responses *cache.Cache[any]) *SimilarService {
	return &SimilarService{db: db, registry: registry, responses: responses}
}

// Similar returns works ranked by closeness to the given work.
func (ss *SimilarService) Similar(category models.Category, id string, limit int) ([]models.Work, error) {
	if limit <= 0 {
		limit = DefaultSimilarLimit
	}
	key := cache.Key(string(category), "similar", id, strconv.Itoa(limit))
	if cached, ok := ss.responses.Get(key); ok {
		metrics.IncCacheHit(string(category))
		return cached.([]models.Work), nil
	}
	metrics.IncCacheMiss(string(category))

	item, err := ss.db.GetWorkByID(category, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, fmt.Errorf("work not found: %s", id)
	}
	pool, err := ss.db.GetWorks(category)
	if err != nil {
		return nil, err
	}

	tbl := ss.registry.TableFor(category)
	ranked := similar.AutoSimilarFor(tbl, item, pool, limit)
	if ranked == nil {
		ranked = []models.Work{}
	}

	metrics.IncSimilarQuery(string(category), "similar")
	ss.responses.Set(key, any(ranked))
	return ranked, nil
}

// Recommended ranks the category pool against the viewer's favorites.
// Without favorites there is no reference set and the feed is empty.
func (ss *SimilarService) Recommended(category models.Category, viewer models.ViewerKey, limit int) ([]models.Work, error) {
	if limit <= 0 {
		limit = DefaultSimilarLimit
	}
	key := cache.Key(string(category), "recommended", string(viewer), strconv.Itoa(limit))
	if cached, ok := ss.responses.Get(key); ok {
		metrics.IncCacheHit(string(category))
		return cached.([]models.Work), nil
	}
	metrics.IncCacheMiss(string(category))

	favIDs, err := ss.db.GetFavorites(viewer, category)
	if err != nil {
		return nil, err
	}
	pool, err := ss.db.GetWorks(category)
	if err != nil {
		return nil, err
	}

	favSet := make(map[string]bool, len(favIDs))
	for _, id := range favIDs {
		favSet[id] = true
	}
	var refs []models.Work
	candidates := make([]models.Work, 0, len(pool))
	for i := range pool {
		if favSet[pool[i].ID] {
			refs = append(refs, pool[i])
		} else {
			candidates = append(candidates, pool[i])
		}
	}

	ranked := []models.Work{}
	if len(refs) > 0 {
		tbl := ss.registry.TableFor(category)
		ranked = similar.RankBySimilarity(tbl, candidates, refs, limit, similar.DefaultOptions(limit))
		if ranked == nil {
			ranked = []models.Work{}
		}
	}

	metrics.IncSimilarQuery(string(category), "recommended")
	ss.responses.Set(key, any(ranked))
	return ranked, nil
}
