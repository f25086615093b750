// file: internal/server/favorite_service.go
// version: 1.0.0
// guid: f0a1b2c3-d4e5-6f7a-8b9c-0d1e2f3a4b5c

package server

import (
	"fmt"

	"github.com/mediatheque/explorer/internal/cache"
	"github.com/mediatheque/explorer/internal/database"
	"github.com/mediatheque/explorer/internal/models"
)

// FavoriteService manages per-viewer favorite marks. Favorites feed the
// recommendation ranking, so mutations drop cached responses.
type FavoriteService struct {
	db        database.Store
	responses *cache.Cache[any]
}

func NewFavoriteService(db database.Store, responses *cache.Cache[any]) *FavoriteService {
	return &FavoriteService{db: db, responses: responses}
}

// List returns the viewer's favorite works in the category.
func (fs *FavoriteService) List(viewer models.ViewerKey, category models.Category) ([]models.Work, error) {
	ids, err := fs.db.GetFavorites(viewer, category)
	if err != nil {
		return nil, err
	}
	out := make([]models.Work, 0, len(ids))
	for _, id := range ids {
		w, err := fs.db.GetWorkByID(category, id)
		if err != nil {
			return nil, err
		}
		if w == nil {
			// Stale mark for a deleted work; skip it.
			continue
		}
		out = append(out, *w)
	}
	return out, nil
}

// Add marks a work as a favorite. The work must exist.
func (fs *FavoriteService) Add(viewer models.ViewerKey, category models.Category, id string) error {
	w, err := fs.db.GetWorkByID(category, id)
	if err != nil {
		return err
	}
	if w == nil {
		return fmt.Errorf("work not found: %s", id)
	}
	if err := fs.db.AddFavorite(viewer, category, id); err != nil {
		return err
	}
	fs.responses.InvalidatePrefix(string(category) + ":")
	return nil
}

// Remove drops a favorite mark. Removing an absent mark is not an error.
func (fs *FavoriteService) Remove(viewer models.ViewerKey, category models.Category, id string) error {
	if err := fs.db.RemoveFavorite(viewer, category, id); err != nil {
		return err
	}
	fs.responses.InvalidatePrefix(string(category) + ":")
	return nil
}
