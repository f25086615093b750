// file: internal/database/sqlite_store.go
// version: 2.0.0
// guid: 8b9c0d1e-2f3a-4b5c-6d7e-8f9a0b1c2d3e

package database

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/mediatheque/explorer/internal/models"
)

// SQLiteStore implements the Store interface using SQLite3. Works keep
// their flexible wire shape by storing the full JSON document; columns
// exist only for keys and ordering.
type SQLiteStore struct {
	db *sql.DB
}

// NewSQLiteStore creates a new SQLite store
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	// Test connection
	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping SQLite database: %w", err)
	}

	store := &SQLiteStore{db: db}
	if err := store.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return store, nil
}

// createTables creates all required tables
func (s *SQLiteStore) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS works (
		category TEXT NOT NULL,
		id TEXT NOT NULL,
		title TEXT NOT NULL,
		doc TEXT NOT NULL,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (category, id)
	);

	CREATE INDEX IF NOT EXISTS idx_works_title ON works(category, title);

	CREATE TABLE IF NOT EXISTS favorites (
		viewer TEXT NOT NULL,
		category TEXT NOT NULL,
		work_id TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (viewer, category, work_id)
	);

	CREATE TABLE IF NOT EXISTS settings (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// Reset removes all rows from every table
func (s *SQLiteStore) Reset() error {
	for _, table := range []string{"works", "favorites", "settings"} {
		if _, err := s.db.Exec("DELETE FROM " + table); err != nil {
			return err
		}
	}
	return nil
}

// Work operations

func (s *SQLiteStore) GetWorks(category models.Category) ([]models.Work, error) {
	rows, err := s.db.Query(
		"SELECT doc FROM works WHERE category = ? ORDER BY id", category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var works []models.Work
	for rows.Next() {
		var doc string
		if err := rows.Scan(&doc); err != nil {
			return nil, err
		}
		var w models.Work
		if err := json.Unmarshal([]byte(doc), &w); err != nil {
			return nil, err
		}
		works = append(works, w)
	}
	return works, rows.Err()
}

func (s *SQLiteStore) GetWorkByID(category models.Category, id string) (*models.Work, error) {
	var doc string
	err := s.db.QueryRow(
		"SELECT doc FROM works WHERE category = ? AND id = ?", category, id).Scan(&doc)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var w models.Work
	if err := json.Unmarshal([]byte(doc), &w); err != nil {
		return nil, err
	}
	return &w, nil
}

func (s *SQLiteStore) UpsertWork(category models.Category, work *models.Work) (*models.Work, error) {
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

	doc, err := json.Marshal(&stored)
	if err != nil {
		return nil, err
	}
	_, err = s.db.Exec(`
		INSERT INTO works (category, id, title, doc, updated_at)
		VALUES (?, ?, ?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(category, id) DO UPDATE SET
			title = excluded.title,
			doc = excluded.doc,
			updated_at = CURRENT_TIMESTAMP`,
		category, stored.ID, stored.Title, string(doc))
	if err != nil {
		return nil, err
	}
	return &stored, nil
}

func (s *SQLiteStore) DeleteWork(category models.Category, id string) error {
	if _, err := s.db.Exec(
		"DELETE FROM works WHERE category = ? AND id = ?", category, id); err != nil {
		return err
	}
	_, err := s.db.Exec(
		"DELETE FROM favorites WHERE category = ? AND work_id = ?", category, id)
	return err
}

func (s *SQLiteStore) CountWorks(category models.Category) (int, error) {
	var count int
	err := s.db.QueryRow(
		"SELECT COUNT(*) FROM works WHERE category = ?", category).Scan(&count)
	return count, err
}

// Favorite operations

func (s *SQLiteStore) GetFavorites(viewer models.ViewerKey, category models.Category) ([]string, error) {
	rows, err := s.db.Query(
		"SELECT work_id FROM favorites WHERE viewer = ? AND category = ? ORDER BY work_id",
		viewer, category)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}

func (s *SQLiteStore) AddFavorite(viewer models.ViewerKey, category models.Category, workID string) error {
	_, err := s.db.Exec(`
		INSERT INTO favorites (viewer, category, work_id) VALUES (?, ?, ?)
		ON CONFLICT(viewer, category, work_id) DO NOTHING`,
		viewer, category, workID)
	return err
}

func (s *SQLiteStore) RemoveFavorite(viewer models.ViewerKey, category models.Category, workID string) error {
	_, err := s.db.Exec(
		"DELETE FROM favorites WHERE viewer = ? AND category = ? AND work_id = ?",
		viewer, category, workID)
	return err
}

func (s *SQLiteStore) IsFavorite(viewer models.ViewerKey, category models.Category, workID string) (bool, error) {
	var one int
	err := s.db.QueryRow(
		"SELECT 1 FROM favorites WHERE viewer = ? AND category = ? AND work_id = ?",
		viewer, category, workID).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

// Setting operations

func (s *SQLiteStore) GetSetting(key string) (*Setting, error) {
	var setting Setting
	err := s.db.QueryRow(
		"SELECT key, value, updated_at FROM settings WHERE key = ?", key).
		Scan(&setting.Key, &setting.Value, &setting.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &setting, nil
}

func (s *SQLiteStore) SetSetting(key, value string) error {
	_, err := s.db.Exec(`
		INSERT INTO settings (key, value, updated_at) VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value)
	return err
}

func (s *SQLiteStore) GetAllSettings() ([]Setting, error) {
	rows, err := s.db.Query("SELECT key, value, updated_at FROM settings ORDER BY key")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var settings []Setting
	for rows.Next() {
		var setting Setting
		if err := rows.Scan(&setting.Key, &setting.Value, &setting.UpdatedAt); err != nil {
			return nil, err
		}
		settings = append(settings, setting)
	}
	return settings, rows.Err()
}

func (s *SQLiteStore) DeleteSetting(key string) error {
	_, err := s.db.Exec("DELETE FROM settings WHERE key = ?", key)
	return err
}
