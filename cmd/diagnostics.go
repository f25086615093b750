// file: cmd/diagnostics.go
// version: 2.0.0
// guid: c8f6a0d4-2a8b-48cf-9d08-02cc9915d9fc

package cmd

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/cockroachdb/pebble/v2"
	"github.com/spf13/cobra"

	"github.com/mediatheque/explorer/internal/config"
	"github.com/mediatheque/explorer/internal/database"
	"github.com/mediatheque/explorer/internal/models"
)

var (
	diagnosticsCmd = &cobra.Command{
		Use:   "diagnostics",
		Short: "Debugging and cleanup helpers",
		Long:  "Diagnostic utilities for inspecting and repairing the catalog database.",
	}

	cleanupCmd = &cobra.Command{
		Use:   "cleanup-invalid",
		Short: "Remove untitled catalog records",
		RunE: func(cmd *cobra.Command, args []string) error {
			force, _ := cmd.Flags().GetBool("yes")
			dryRun, _ := cmd.Flags().GetBool("dry-run")
			return runCleanupInvalidWorks(force, dryRun)
		},
	}

	queryCmd = &cobra.Command{
		Use:   "query",
		Short: "Inspect stored catalog records",
		RunE: func(cmd *cobra.Command, args []string) error {
			limit, _ := cmd.Flags().GetInt("limit")
			prefix, _ := cmd.Flags().GetString("prefix")
			raw, _ := cmd.Flags().GetBool("raw")
			category, _ := cmd.Flags().GetString("category")
			return runDiagnosticsQuery(models.Category(category), limit, prefix, raw)
		},
	}
)

func init() {
	cleanupCmd.Flags().Bool("yes", false, "Skip confirmation prompt")
	cleanupCmd.Flags().Bool("dry-run", false, "List invalid records without deleting")

	queryCmd.Flags().Int("limit", 5, "Number of records to display")
	queryCmd.Flags().String("category", "mangas", "Category to inspect")
	queryCmd.Flags().String("prefix", "work:", "Key prefix to inspect when --raw is set")
	queryCmd.Flags().Bool("raw", false, "Show raw Pebble key/value data (Pebble only)")

	diagnosticsCmd.AddCommand(cleanupCmd)
	diagnosticsCmd.AddCommand(queryCmd)
}

func ensureDiagnosticsStore() (func(), error) {
	if err := database.InitializeStore(
		config.AppConfig.DatabaseType,
		config.AppConfig.DatabasePath,
		config.AppConfig.EnableSQLite,
	); err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	cleanup := func() {
		database.CloseStore()
	}
	return cleanup, nil
}

type invalidWork struct {
	category models.Category
	work     models.Work
}

func runCleanupInvalidWorks(force, dryRun bool) error {
	closer, err := ensureDiagnosticsStore()
	if err != nil {
		return err
	}
	defer closer()

	fmt.Printf("Inspecting works in %s (%s)\n", config.AppConfig.DatabasePath, config.AppConfig.DatabaseType)

	invalid := make([]invalidWork, 0)
	for _, category := range models.Categories {
		works, err := database.GlobalStore.GetWorks(category)
		if err != nil {
			return fmt.Errorf("failed to fetch %s: %w", category, err)
		}
		for _, w := range works {
			if strings.TrimSpace(w.Title) == "" {
				invalid = append(invalid, invalidWork{category: category, work: w})
			}
		}
	}

	if len(invalid) == 0 {
		fmt.Println("No invalid records detected.")
		return nil
	}

	fmt.Printf("Found %d invalid records:\n", len(invalid))
	for i, entry := range invalid {
		fmt.Printf("%2d. ID: %s\n", i+1, entry.work.ID)
		fmt.Printf("    Category: %s\n", entry.category)
		fmt.Printf("    Genres: %v\n", entry.work.Genres)
	}

	if dryRun {
		fmt.Println("Dry run enabled; no deletions were performed.")
		return nil
	}

	if !force {
		confirmed, err := promptYesNo(fmt.Sprintf("Delete %d records", len(invalid)))
		if err != nil {
			return err
		}
		if !confirmed {
			fmt.Println("Aborted. No records deleted.")
			return nil
		}
	}

	deleted := 0
	for _, entry := range invalid {
		if err := database.GlobalStore.DeleteWork(entry.category, entry.work.ID); err != nil {
			fmt.Printf("Failed to delete %s: %v\n", entry.work.ID, err)
			continue
		}
		deleted++
	}

	fmt.Printf("Deleted %d invalid records. Re-import to repopulate clean entries.\n", deleted)
	return nil
}

func runDiagnosticsQuery(category models.Category, limit int, prefix string, raw bool) error {
	if limit <= 0 {
		return errors.New("limit must be positive")
	}

	if raw {
		if config.AppConfig.DatabaseType != "pebble" {
			return fmt.Errorf("raw inspection is only available for Pebble databases")
		}
		return runRawPebbleQuery(limit, prefix)
	}

	if !category.Valid() {
		return fmt.Errorf("unknown category: %s", category)
	}

	closer, err := ensureDiagnosticsStore()
	if err != nil {
		return err
	}
	defer closer()

	works, err := database.GlobalStore.GetWorks(category)
	if err != nil {
		return fmt.Errorf("failed to fetch works: %w", err)
	}
	if len(works) == 0 {
		fmt.Println("No works found.")
		return nil
	}

	for i, w := range works {
		if i >= limit {
			break
		}
		fmt.Printf("%2d. ID: %s\n", i+1, w.ID)
		fmt.Printf("    Title: %s\n", w.Title)
		fmt.Printf("    Statut: %s\n", w.Statut)
		if len(w.Genres) > 0 {
			fmt.Printf("    Genres: %v\n", w.Genres)
		}
		if !w.ModifieLe.IsZero() {
			fmt.Printf("    ModifieLe: %d\n", w.ModifieLe.Millis())
		}
		fmt.Println("---")
	}

	return nil
}

func runRawPebbleQuery(limit int, prefix string) error {
	db, err := pebble.Open(config.AppConfig.DatabasePath, &pebble.Options{
		FormatMajorVersion: pebble.FormatNewest,
	})
	if err != nil {
		return fmt.Errorf("failed to open Pebble database: %w", err)
	}
	defer db.Close()

	iterOpts := &pebble.IterOptions{}
	if prefix != "" {
		iterOpts.LowerBound = []byte(prefix)
		iterOpts.UpperBound = append([]byte(prefix), 0xFF)
	}

	iter, err := db.NewIter(iterOpts)
	if err != nil {
		return fmt.Errorf("failed to create iterator: %w", err)
	}
	defer iter.Close()

	count := 0
	ok := iter.First()
	if prefix != "" {
		ok = iter.SeekGE([]byte(prefix))
	}

	for ; ok && iter.Valid(); ok = iter.Next() {
		fmt.Printf("Key: %s\n", string(iter.Key()))
		val := iter.Value()
		fmt.Printf("Value length: %d bytes\n", len(val))
		preview := truncateString(string(val), 500)
		fmt.Printf("Value preview: %s\n", preview)
		fmt.Println("---")

		count++
		if count >= limit {
			break
		}
	}

	if err := iter.Error(); err != nil {
		return fmt.Errorf("iterator error: %w", err)
	}

	if count == 0 {
		fmt.Println("No keys matched the requested prefix.")
	}

	return nil
}

func promptYesNo(action string) (bool, error) {
	fmt.Printf("%s? Type 'yes' to confirm: ", action)
	reader := bufio.NewReader(os.Stdin)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false, err
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "yes", nil
}

func truncateString(in string, max int) string {
	if len(in) <= max {
		return in
	}
	return in[:max] + "..."
}
