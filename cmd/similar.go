// file: cmd/similar.go
// version: 1.0.0
// guid: 3c4d5e6f-7a8b-9c0d-1e2f-3a4b5c6d7e8f

package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mediatheque/explorer/internal/config"
	"github.com/mediatheque/explorer/internal/database"
	"github.com/mediatheque/explorer/internal/genres"
	"github.com/mediatheque/explorer/internal/models"
	"github.com/mediatheque/explorer/internal/similar"
)

// similarCmd ranks the catalog against one work from the command line.
var similarCmd = &cobra.Command{
	Use:   "similar <category> <id>",
	Short: "Rank works similar to a given one",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")
		return runSimilar(models.Category(args[0]), args[1], limit)
	},
}

func init() {
	similarCmd.Flags().Int("limit", 10, "number of results to show")
}

func runSimilar(category models.Category, id string, limit int) error {
	if !category.Valid() {
		return fmt.Errorf("unknown category: %s", category)
	}
	if limit <= 0 {
		limit = 10
	}

	if err := database.InitializeStore(config.AppConfig.DatabaseType, config.AppConfig.DatabasePath, config.AppConfig.EnableSQLite); err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer database.CloseStore()

	item, err := database.GlobalStore.GetWorkByID(category, id)
	if err != nil {
		return fmt.Errorf("failed to load work: %w", err)
	}
	if item == nil {
		return fmt.Errorf("work not found: %s", id)
	}
	pool, err := database.GlobalStore.GetWorks(category)
	if err != nil {
		return fmt.Errorf("failed to load %s: %w", category, err)
	}

	registry := genres.NewRegistry()
	if config.AppConfig.WeightsPath != "" {
		if err := registry.Reload(config.AppConfig.WeightsPath); err != nil {
			fmt.Printf("Warning: could not load genre weights: %v\n", err)
		}
	}

	ranked := similar.AutoSimilarFor(registry.TableFor(category), item, pool, limit)
	if len(ranked) == 0 {
		fmt.Printf("No similar works found for %q\n", item.Title)
		return nil
	}

	fmt.Printf("Works similar to %q:\n", item.Title)
	for i, w := range ranked {
		fmt.Printf("%2d. %s", i+1, w.Title)
		if len(w.Genres) > 0 {
			fmt.Printf("  (%v)", w.Genres)
		}
		fmt.Println()
	}
	return nil
}
