// file: cmd/commands_test.go
// version: 2.0.0
// guid: 6f5b7d78-11d8-4c1a-a150-96d2c4a1a885

package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mediatheque/explorer/internal/config"
	"github.com/mediatheque/explorer/internal/database"
	"github.com/mediatheque/explorer/internal/models"
)

func useTempDatabase(t *testing.T) {
	t.Helper()
	origConfig := config.AppConfig
	t.Cleanup(func() { config.AppConfig = origConfig })

	config.AppConfig.DatabaseType = "pebble"
	config.AppConfig.DatabasePath = filepath.Join(t.TempDir(), "catalog.pebble")
	config.AppConfig.EnableSQLite = false
}

func TestDecodeImportFileKeyed(t *testing.T) {
	data := []byte(`{"mangas": [{"title": "Berserk"}], "animes": [{"title": "Monster"}]}`)

	batches, err := decodeImportFile(data, "")
	if err != nil {
		t.Fatalf("decodeImportFile failed: %v", err)
	}
	if len(batches[models.CategoryMangas]) != 1 {
		t.Fatalf("expected 1 manga, got %d", len(batches[models.CategoryMangas]))
	}
	if batches[models.CategoryAnimes][0].Title != "Monster" {
		t.Fatalf("unexpected anime title: %q", batches[models.CategoryAnimes][0].Title)
	}
}

func TestDecodeImportFileFlat(t *testing.T) {
	data := []byte(`[{"title": "Berserk"}]`)

	if _, err := decodeImportFile(data, ""); err == nil {
		t.Fatal("expected error for flat array without category")
	}
	if _, err := decodeImportFile(data, "podcasts"); err == nil {
		t.Fatal("expected error for unknown category")
	}

	batches, err := decodeImportFile(data, "mangas")
	if err != nil {
		t.Fatalf("decodeImportFile failed: %v", err)
	}
	if len(batches[models.CategoryMangas]) != 1 {
		t.Fatalf("expected 1 manga, got %d", len(batches[models.CategoryMangas]))
	}
}

func TestDecodeImportFileUnknownKeyedCategory(t *testing.T) {
	data := []byte(`{"podcasts": [{"title": "Nope"}]}`)
	if _, err := decodeImportFile(data, ""); err == nil {
		t.Fatal("expected error for unknown keyed category")
	}
}

func TestImportExportRoundTrip(t *testing.T) {
	useTempDatabase(t)

	importPath := filepath.Join(t.TempDir(), "export.json")
	payload := map[string][]models.Work{
		"mangas": {
			{Title: "Berserk", Genres: []string{"Action", "Drame"}},
			{Title: ""}, // skipped
		},
		"films": {
			{Title: "Alien"},
		},
	}
	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal payload: %v", err)
	}
	if err := os.WriteFile(importPath, data, 0644); err != nil {
		t.Fatalf("failed to write import file: %v", err)
	}

	if err := runImport(importPath, ""); err != nil {
		t.Fatalf("runImport failed: %v", err)
	}

	exportPath := filepath.Join(t.TempDir(), "roundtrip.json")
	if err := runExport(exportPath); err != nil {
		t.Fatalf("runExport failed: %v", err)
	}

	out, err := os.ReadFile(exportPath)
	if err != nil {
		t.Fatalf("failed to read export: %v", err)
	}
	var exported map[models.Category][]models.Work
	if err := json.Unmarshal(out, &exported); err != nil {
		t.Fatalf("failed to parse export: %v", err)
	}
	if len(exported[models.CategoryMangas]) != 1 {
		t.Fatalf("expected 1 manga exported, got %d", len(exported[models.CategoryMangas]))
	}
	if exported[models.CategoryMangas][0].ID == "" {
		t.Fatal("expected generated id on imported work")
	}
	if len(exported[models.CategoryFilms]) != 1 {
		t.Fatalf("expected 1 film exported, got %d", len(exported[models.CategoryFilms]))
	}
}

func TestRunImportMissingFile(t *testing.T) {
	useTempDatabase(t)

	if err := runImport(filepath.Join(t.TempDir(), "absent.json"), ""); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestRunSimilarValidation(t *testing.T) {
	useTempDatabase(t)

	if err := runSimilar("podcasts", "x", 5); err == nil {
		t.Fatal("expected error for unknown category")
	}
	if err := runSimilar(models.CategoryMangas, "missing", 5); err == nil {
		t.Fatal("expected error for unknown work")
	}
}

func TestRunSimilarRanksPool(t *testing.T) {
	useTempDatabase(t)

	if err := database.InitializeStore(config.AppConfig.DatabaseType, config.AppConfig.DatabasePath, false); err != nil {
		t.Fatalf("failed to initialize store: %v", err)
	}
	anchor := models.Work{Title: "Anchor", Genres: []string{"Action", "Aventure"}}
	stored, err := database.GlobalStore.UpsertWork(models.CategoryMangas, &anchor)
	if err != nil {
		t.Fatalf("failed to seed anchor: %v", err)
	}
	other := models.Work{Title: "Other", Genres: []string{"Action"}}
	if _, err := database.GlobalStore.UpsertWork(models.CategoryMangas, &other); err != nil {
		t.Fatalf("failed to seed other: %v", err)
	}
	database.CloseStore()

	if err := runSimilar(models.CategoryMangas, stored.ID, 5); err != nil {
		t.Fatalf("runSimilar failed: %v", err)
	}
}
