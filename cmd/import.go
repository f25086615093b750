// file: cmd/import.go
// version: 1.0.0
// guid: 2b3c4d5e-6f7a-8b9c-0d1e-2f3a4b5c6d7e

package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/mediatheque/explorer/internal/config"
	"github.com/mediatheque/explorer/internal/database"
	"github.com/mediatheque/explorer/internal/models"
	"github.com/mediatheque/explorer/internal/textnorm"
)

// importCmd loads a catalog export file into the database.
var importCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a catalog export file",
	Long: `Import works from a JSON export. The file is either an object keyed
by category ({"mangas": [...], "animes": [...]}) or a flat array combined
with the --category flag.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		category, _ := cmd.Flags().GetString("category")
		return runImport(args[0], category)
	},
}

// exportCmd writes the full catalog back out as a category-keyed JSON file.
var exportCmd = &cobra.Command{
	Use:   "export <file>",
	Short: "Export the catalog to a JSON file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runExport(args[0])
	},
}

func init() {
	importCmd.Flags().String("category", "", "category for flat-array imports (mangas, animes, films, series, novels)")
}

func runImport(path, categoryFlag string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}

	batches, err := decodeImportFile(data, categoryFlag)
	if err != nil {
		return err
	}

	if err := database.InitializeStore(config.AppConfig.DatabaseType, config.AppConfig.DatabasePath, config.AppConfig.EnableSQLite); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.CloseStore()

	total := 0
	for _, works := range batches {
		total += len(works)
	}
	fmt.Printf("Importing %d works into %s (%s)\n", total, config.AppConfig.DatabasePath, config.AppConfig.DatabaseType)

	bar := progressbar.Default(int64(total), "importing")
	imported, skipped := 0, 0
	for category, works := range batches {
		for i := range works {
			bar.Add(1)
			if works[i].Title == "" {
				skipped++
				continue
			}
			if works[i].ID == "" {
				works[i].ID = textnorm.Slugify(works[i].Title)
			}
			if _, err := database.GlobalStore.UpsertWork(category, &works[i]); err != nil {
				fmt.Printf("\nFailed to import %q: %v\n", works[i].Title, err)
				skipped++
				continue
			}
			imported++
		}
	}

	fmt.Printf("\nImported %d works (%d skipped)\n", imported, skipped)
	return nil
}

// decodeImportFile accepts both export shapes.
func decodeImportFile(data []byte, categoryFlag string) (map[models.Category][]models.Work, error) {
	var keyed map[models.Category][]models.Work
	if err := json.Unmarshal(data, &keyed); err == nil {
		for category := range keyed {
			if !category.Valid() {
				return nil, fmt.Errorf("unknown category in export: %s", category)
			}
		}
		return keyed, nil
	}

	var flat []models.Work
	if err := json.Unmarshal(data, &flat); err != nil {
		return nil, fmt.Errorf("file is neither a category-keyed object nor an array of works")
	}
	category := models.Category(categoryFlag)
	if !category.Valid() {
		return nil, fmt.Errorf("flat-array imports need --category (mangas, animes, films, series, novels)")
	}
	return map[models.Category][]models.Work{category: flat}, nil
}

func runExport(path string) error {
	if err := database.InitializeStore(config.AppConfig.DatabaseType, config.AppConfig.DatabasePath, config.AppConfig.EnableSQLite); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.CloseStore()

	out := make(map[models.Category][]models.Work, len(models.Categories))
	total := 0
	for _, category := range models.Categories {
		works, err := database.GlobalStore.GetWorks(category)
		if err != nil {
			return fmt.Errorf("failed to load %s: %w", category, err)
		}
		out[category] = works
		total += len(works)
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode export: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}

	fmt.Printf("Exported %d works to %s\n", total, path)
	return nil
}
