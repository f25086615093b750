// file: internal/server/explore_service.go
// version: 1.0.0
// guid: b6c7d8e9-f0a1-2b3c-4d5e-6f7a8b9c0d1e

package server

import (
	"time"

	"github.com/mediatheque/explorer/internal/database"
	"github.com/mediatheque/explorer/internal/explore"
	"github.com/mediatheque/explorer/internal/genres"
	"github.com/mediatheque/explorer/internal/matcher"
	"github.com/mediatheque/explorer/internal/metrics"
	"github.com/mediatheque/explorer/internal/models"
)

// ExploreService runs filter/sort passes over a category's works.
type ExploreService struct {
	db       database.Store
	registry *genres.Registry
}

func NewExploreService(db database.Store, registry *genres.Registry) *ExploreService {
	return &ExploreService{db: db, registry: registry}
}

// ExploreRequest mirrors the query surface of the exploration grid.
type ExploreRequest struct {
	Title       string
	Description string
	GenresIn    []string
	GenresOut   []string
	Status      string
	ChapterMin  int
	ChapterMax  int
	SortBy      string
	SortStack   []string
	Descending  bool
}

func (r ExploreRequest) toQuery() explore.Query {
	q := explore.Query{
		Title:       r.Title,
		Description: r.Description,
		GenresIn:    r.GenresIn,
		GenresOut:   r.GenresOut,
		Status:      explore.Status(r.Status),
		ChapterMin:  r.ChapterMin,
		ChapterMax:  r.ChapterMax,
		SortBy:      explore.SortKey(r.SortBy),
		Descending:  r.Descending,
	}
	for _, k := range r.SortStack {
		q.SortStack = append(q.SortStack, explore.SortKey(k))
	}
	return q
}

// ExploredWork is a catalog work annotated with the viewer-relative state
// the exploration grid renders.
type ExploredWork struct {
	models.Work
	Status   explore.Status `json:"viewStatus"`
	Progress int            `json:"viewProgress"`
}

// Explore loads the category pool, applies the pass, and annotates each
// result for the requesting viewer.
func (es *ExploreService) Explore(category models.Category, viewer models.ViewerKey, req ExploreRequest) ([]ExploredWork, error) {
	start := time.Now()

	pool, err := es.db.GetWorks(category)
	if err != nil {
		return nil, err
	}
	matcher.Warm(pool)

	exp := explore.New(category, viewer, es.registry.TableFor(category))
	out := exp.Apply(pool, req.toQuery())

	annotated := make([]ExploredWork, len(out))
	for i := range out {
		annotated[i] = ExploredWork{
			Work:     out[i],
			Status:   explore.StatusOf(&out[i], category, viewer),
			Progress: explore.ProgressPercent(&out[i], viewer),
		}
	}

	metrics.IncExplorePass(string(category))
	metrics.ObserveExploreDuration(string(category), time.Since(start))
	return annotated, nil
}
