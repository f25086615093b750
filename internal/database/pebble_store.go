// file: internal/database/pebble_store.go
// version: 2.0.0
// guid: 0c1d2e3f-4a5b-6c7d-8e9f-0a1b2c3d4e5f

package database

import (
	"crypto/rand"
	"encoding/json"
	"fmt"
	"time"

	"github.com/cockroachdb/pebble/v2"
	ulid "github.com/oklog/ulid/v2"

	"github.com/mediatheque/explorer/internal/models"
)

// PebbleStore implements the Store interface using PebbleDB (LSM key-value store)
//
// Key Schema:
// - work:<category>:<id>              -> Work JSON
// - favorite:<viewer>:<category>:<id> -> "1"
// - setting:<key>                     -> Setting JSON

type PebbleStore struct {
	db *pebble.DB
}

// NewPebbleStore creates a new PebbleDB store
func NewPebbleStore(path string) (*PebbleStore, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("failed to open PebbleDB: %w", err)
	}
	return &PebbleStore{db: db}, nil
}

// Close closes the database
func (p *PebbleStore) Close() error {
	return p.db.Close()
}

// Reset removes every key. Used by import --replace and tests.
func (p *PebbleStore) Reset() error {
	return p.db.DeleteRange(nil, []byte{0xff}, pebble.Sync)
}

// Helper functions

func workKey(category models.Category, id string) []byte {
	return []byte(fmt.Sprintf("work:%s:%s", category, id))
}

func favoriteKey(viewer models.ViewerKey, category models.Category, id string) []byte {
	return []byte(fmt.Sprintf("favorite:%s:%s:%s", viewer, category, id))
}

func settingKey(key string) []byte {
	return []byte(fmt.Sprintf("setting:%s", key))
}

// prefixUpperBound returns the smallest key greater than every key with the
// given prefix.
func prefixUpperBound(prefix []byte) []byte {
	end := make([]byte, len(prefix))
	copy(end, prefix)
	for i := len(end) - 1; i >= 0; i-- {
		end[i]++
		if end[i] != 0 {
			return end[:i+1]
		}
	}
	return nil
}

func newULID() (string, error) {
	entropy := ulid.Monotonic(rand.Reader, 0)
	id, err := ulid.New(ulid.Timestamp(time.Now()), entropy)
	if err != nil {
		return "", err
	}
	return id.String(), nil
}

// Work operations

func (p *PebbleStore) GetWorks(category models.Category) ([]models.Work, error) {
	prefix := []byte(fmt.Sprintf("work:%s:", category))
	iter, err := p.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: prefixUpperBound(prefix),
	})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var works []models.Work
	for iter.First(); iter.Valid(); iter.Next() {
		var w models.Work
		if err := json.Unmarshal(iter.Value(), &w); err != nil {
			return nil, err
		}
		works = append(works, w)
	}
	return works, nil
}

func (p *PebbleStore) GetWorkByID(category models.Category, id string) (*models.Work, error) {
	value, closer, err := p.db.Get(workKey(category, id))
	if err == pebble.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	var w models.Work
	if err := json.Unmarshal(value, &w); err != nil {
		return nil, err
	}
	return &w, nil
}

func (p *PebbleStore) UpsertWork(category models.Category, work *models.Work) (*models.Work, error) {
	stored := *work
	if stored.ID == "" {
		id, err := newULID()
		if err != nil {
			return nil, fmt.Errorf("failed to generate work ID: %w", err)
		}
		stored.ID = id
	}
	stored.Category = category
	if stored.ModifieLe.IsZero() {
		stored.ModifieLe = models.NewFlexTime(time.Now())
	}

	data, err := json.Marshal(&stored)
	if err != nil {
		return nil, err
	}
	if err := p.db.Set(workKey(category, stored.ID), data, pebble.Sync); err != nil {
		return nil, err
	}
	return &stored, nil
}

func (p *PebbleStore) DeleteWork(category models.Category, id string) error {
	if err := p.db.Delete(workKey(category, id), pebble.Sync); err != nil {
		return err
	}
	// Drop dangling favorites for this work across both viewers.
	for _, viewer := range []models.ViewerKey{models.ViewerJ, models.ViewerM} {
		if err := p.db.Delete(favoriteKey(viewer, category, id), pebble.Sync); err != nil {
			return err
		}
	}
	return nil
}

func (p *PebbleStore) CountWorks(category models.Category) (int, error) {
	prefix := []byte(fmt.Sprintf("work:%s:", category))
	iter, err := p.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: prefixUpperBound(prefix),
	})
	if err != nil {
		return 0, err
	}
	defer iter.Close()

	count := 0
	for iter.First(); iter.Valid(); iter.Next() {
		count++
	}
	return count, nil
}

// Favorite operations

func (p *PebbleStore) GetFavorites(viewer models.ViewerKey, category models.Category) ([]string, error) {
	prefix := []byte(fmt.Sprintf("favorite:%s:%s:", viewer, category))
	iter, err := p.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: prefixUpperBound(prefix),
	})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var ids []string
	for iter.First(); iter.Valid(); iter.Next() {
		ids = append(ids, string(iter.Key()[len(prefix):]))
	}
	return ids, nil
}

func (p *PebbleStore) AddFavorite(viewer models.ViewerKey, category models.Category, workID string) error {
	return p.db.Set(favoriteKey(viewer, category, workID), []byte("1"), pebble.Sync)
}

func (p *PebbleStore) RemoveFavorite(viewer models.ViewerKey, category models.Category, workID string) error {
	return p.db.Delete(favoriteKey(viewer, category, workID), pebble.Sync)
}

func (p *PebbleStore) IsFavorite(viewer models.ViewerKey, category models.Category, workID string) (bool, error) {
	_, closer, err := p.db.Get(favoriteKey(viewer, category, workID))
	if err == pebble.ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	closer.Close()
	return true, nil
}

// Setting operations

func (p *PebbleStore) GetSetting(key string) (*Setting, error) {
	value, closer, err := p.db.Get(settingKey(key))
	if err == pebble.ErrNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	defer closer.Close()

	var s Setting
	if err := json.Unmarshal(value, &s); err != nil {
		return nil, err
	}
	return &s, nil
}

func (p *PebbleStore) SetSetting(key, value string) error {
	s := Setting{Key: key, Value: value, UpdatedAt: time.Now().UTC()}
	data, err := json.Marshal(&s)
	if err != nil {
		return err
	}
	return p.db.Set(settingKey(key), data, pebble.Sync)
}

func (p *PebbleStore) GetAllSettings() ([]Setting, error) {
	prefix := []byte("setting:")
	iter, err := p.db.NewIter(&pebble.IterOptions{
		LowerBound: prefix,
		UpperBound: prefixUpperBound(prefix),
	})
	if err != nil {
		return nil, err
	}
	defer iter.Close()

	var settings []Setting
	for iter.First(); iter.Valid(); iter.Next() {
		var s Setting
		if err := json.Unmarshal(iter.Value(), &s); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}
	return settings, nil
}

func (p *PebbleStore) DeleteSetting(key string) error {
	return p.db.Delete(settingKey(key), pebble.Sync)
}
