// file: internal/server/works_service.go
// version: 1.0.0
// guid: d8e9f0a1-b2c3-4d5e-6f7a-8b9c0d1e2f3a

package server

import (
	"fmt"
	"strings"

	"github.com/mediatheque/explorer/internal/cache"
	"github.com/mediatheque/explorer/internal/database"
	"github.com/mediatheque/explorer/internal/matcher"
	"github.com/mediatheque/explorer/internal/models"
)

// WorkService handles CRUD and bulk import for catalog entries.
type WorkService struct {
	db        database.Store
	responses *cache.Cache[any]
}

func NewWorkService(db database.Store, responses *cache.Cache[any]) *WorkService {
	return &WorkService{db: db, responses: responses}
}

// List returns every work in the category.
func (ws *WorkService) List(category models.Category) ([]models.Work, error) {
	return ws.db.GetWorks(category)
}

// Get returns the work with the given id, or nil when absent.
func (ws *WorkService) Get(category models.Category, id string) (*models.Work, error) {
	return ws.db.GetWorkByID(category, id)
}

// Create stores a new work and returns it with its minted ID.
func (ws *WorkService) Create(category models.Category, work *models.Work) (*models.Work, error) {
	if strings.TrimSpace(work.Title) == "" {
		return nil, fmt.Errorf("title is required")
	}
	stored, err := ws.db.UpsertWork(category, work)
	if err != nil {
		return nil, err
	}
	ws.invalidate(category, stored.ID)
	return stored, nil
}

// Update replaces an existing work and returns the stored record.
func (ws *WorkService) Update(category models.Category, id string, work *models.Work) (*models.Work, error) {
	if strings.TrimSpace(work.Title) == "" {
		return nil, fmt.Errorf("title is required")
	}
	existing, err := ws.db.GetWorkByID(category, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, fmt.Errorf("work not found: %s", id)
	}
	work.ID = id
	stored, err := ws.db.UpsertWork(category, work)
	if err != nil {
		return nil, err
	}
	ws.invalidate(category, id)
	return stored, nil
}

// Delete removes a work and its favorite marks.
func (ws *WorkService) Delete(category models.Category, id string) error {
	existing, err := ws.db.GetWorkByID(category, id)
	if err != nil {
		return err
	}
	if existing == nil {
		return fmt.Errorf("work not found: %s", id)
	}
	if err := ws.db.DeleteWork(category, id); err != nil {
		return err
	}
	ws.invalidate(category, id)
	return nil
}

// Import upserts a batch of works, skipping entries without a title.
// One bad entry does not abort the batch.
func (ws *WorkService) Import(category models.Category, works []models.Work) ImportResponse {
	resp := ImportResponse{Errors: []string{}}
	for i := range works {
		w := works[i]
		if strings.TrimSpace(w.Title) == "" {
			resp.Skipped++
			continue
		}
		if _, err := ws.db.UpsertWork(category, &w); err != nil {
			resp.Errors = append(resp.Errors, fmt.Sprintf("%s: %v", w.Title, err))
			continue
		}
		resp.Imported++
	}
	if resp.Imported > 0 {
		ws.responses.InvalidatePrefix(string(category) + ":")
		matcher.ResetCache()
	}
	return resp
}

func (ws *WorkService) invalidate(category models.Category, id string) {
	matcher.Invalidate(category, id)
	ws.responses.InvalidatePrefix(string(category) + ":")
}
