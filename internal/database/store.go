// file: internal/database/store.go
// version: 2.1.0
// guid: 8a9b0c1d-2e3f-4a5b-6c7d-8e9f0a1b2c3d

package database

import (
	"fmt"
	"time"

	"github.com/mediatheque/explorer/internal/models"
)

// Store defines the interface for catalog persistence.
// This abstraction allows us to support both PebbleDB (default) and SQLite3 (opt-in).
type Store interface {
	// Lifecycle
	Close() error
	Reset() error

	// Works, keyed per category
	GetWorks(category models.Category) ([]models.Work, error)
	GetWorkByID(category models.Category, id string) (*models.Work, error)
	UpsertWork(category models.Category, work *models.Work) (*models.Work, error) // Generates ULID if ID is empty
	DeleteWork(category models.Category, id string) error
	CountWorks(category models.Category) (int, error)

	// Per-viewer favorites, the reference sets recommendation feeds rank against
	GetFavorites(viewer models.ViewerKey, category models.Category) ([]string, error)
	AddFavorite(viewer models.ViewerKey, category models.Category, workID string) error
	RemoveFavorite(viewer models.ViewerKey, category models.Category, workID string) error
	IsFavorite(viewer models.ViewerKey, category models.Category, workID string) (bool, error)

	// Settings (persistent key/value configuration)
	GetSetting(key string) (*Setting, error)
	SetSetting(key, value string) error
	GetAllSettings() ([]Setting, error)
	DeleteSetting(key string) error
}

// Setting represents a stored configuration setting
type Setting struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Global store instance
var GlobalStore Store

// InitializeStore initializes the database store based on configuration
func InitializeStore(dbType, path string, enableSQLite bool) error {
	var err error

	switch dbType {
	case "sqlite", "sqlite3":
		if !enableSQLite {
			return fmt.Errorf("SQLite3 is not enabled. To use SQLite3, you must explicitly enable it with --enable-sqlite3-i-know-the-risks or set 'enable_sqlite3_i_know_the_risks: true' in your config file. PebbleDB is the recommended database for production use")
		}
		GlobalStore, err = NewSQLiteStore(path)
		if err != nil {
			return fmt.Errorf("failed to initialize SQLite store: %w", err)
		}
	case "pebble", "":
		// PebbleDB is the default
		GlobalStore, err = NewPebbleStore(path)
		if err != nil {
			return fmt.Errorf("failed to initialize PebbleDB store: %w", err)
		}
	default:
		return fmt.Errorf("unsupported database type: %s (supported: pebble, sqlite)", dbType)
	}

	return nil
}

// CloseStore closes the global store
func CloseStore() error {
	if GlobalStore != nil {
		return GlobalStore.Close()
	}
	return nil
}
