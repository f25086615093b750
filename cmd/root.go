// file: cmd/root.go
// version: 2.0.0
// guid: 6a7b8c9d-0e1f-2a3b-4c5d-6e7f8a9b0c1d

package cmd

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mediatheque/explorer/internal/config"
	"github.com/mediatheque/explorer/internal/database"
	"github.com/mediatheque/explorer/internal/genres"
	"github.com/mediatheque/explorer/internal/metrics"
	"github.com/mediatheque/explorer/internal/server"
	"github.com/mediatheque/explorer/internal/watcher"
)

var cfgFile string
var dataDir string
var databasePath string
var databaseType string
var enableSQLite bool
var weightsPath string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "mediatheque-explorer",
	Short: "Explore and rank a shared media catalog",
	Long: `Mediatheque Explorer serves a household media catalog (mangas, animes,
films, series, novels) with filtered exploration, per-viewer reading status,
and genre-based similarity ranking.`,
}

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the catalog API server",
	Long:  `Start the HTTP server exposing exploration, similarity and favorites endpoints.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := database.InitializeStore(config.AppConfig.DatabaseType, config.AppConfig.DatabasePath, config.AppConfig.EnableSQLite); err != nil {
			return fmt.Errorf("failed to initialize database: %w", err)
		}
		defer database.CloseStore()

		fmt.Printf("Using database: %s (%s)\n", config.AppConfig.DatabasePath, config.AppConfig.DatabaseType)

		// Persisted settings override defaults; flags still win below.
		if err := config.LoadConfigFromDatabase(database.GlobalStore); err != nil {
			fmt.Printf("Warning: could not load config from database: %v\n", err)
		}
		if err := config.LoadConfigFromFile(); err != nil {
			fmt.Printf("Warning: could not load config file: %v\n", err)
		}

		registry := genres.NewRegistry()
		if config.AppConfig.WeightsPath != "" {
			if err := registry.Reload(config.AppConfig.WeightsPath); err != nil {
				fmt.Printf("Warning: could not load genre weights: %v\n", err)
			}
			w := watcher.New(func(path string) {
				if err := registry.Reload(path); err != nil {
					log.Printf("[WARN] weights reload failed: %v", err)
					return
				}
				metrics.IncWeightsReload()
				log.Printf("[INFO] reloaded genre weights from %s", path)
			}, watcher.DefaultDebounce)
			if err := w.Start(config.AppConfig.WeightsPath); err != nil {
				fmt.Printf("Warning: could not watch weights file: %v\n", err)
			} else {
				defer w.Stop()
			}
		}

		srv := server.NewServer(database.GlobalStore, registry)
		cfg := server.ServerConfig{
			Host:         config.AppConfig.Host,
			Port:         strconv.Itoa(config.AppConfig.Port),
			ReadTimeout:  15 * time.Second,
			WriteTimeout: 15 * time.Second,
			IdleTimeout:  60 * time.Second,
		}

		// Override with command line flags if provided
		if port := cmd.Flag("port").Value.String(); cmd.Flag("port").Changed {
			cfg.Port = port
		}
		if host := cmd.Flag("host").Value.String(); cmd.Flag("host").Changed {
			cfg.Host = host
		}
		if rt := cmd.Flag("read-timeout").Value.String(); rt != "" {
			if d, err := time.ParseDuration(rt); err == nil {
				cfg.ReadTimeout = d
			}
		}
		if wt := cmd.Flag("write-timeout").Value.String(); wt != "" {
			if d, err := time.ParseDuration(wt); err == nil {
				cfg.WriteTimeout = d
			}
		}
		if it := cmd.Flag("idle-timeout").Value.String(); it != "" {
			if d, err := time.ParseDuration(it); err == nil {
				cfg.IdleTimeout = d
			}
		}

		fmt.Println("Starting mediatheque explorer server...")
		return srv.Start(cfg)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.mediatheque-explorer.yaml)")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "directory for catalog data files")
	rootCmd.PersistentFlags().StringVar(&databasePath, "db", "catalog.pebble", "path to database (default: catalog.pebble for PebbleDB)")
	rootCmd.PersistentFlags().StringVar(&databaseType, "db-type", "pebble", "database type: pebble (default) or sqlite")
	rootCmd.PersistentFlags().BoolVar(&enableSQLite, "enable-sqlite3-i-know-the-risks", false, "enable SQLite3 database (WARNING: cross-compilation issues, PebbleDB recommended)")
	rootCmd.PersistentFlags().StringVar(&weightsPath, "weights", "", "path to YAML genre weight overrides")

	viper.BindPFlag("data_dir", rootCmd.PersistentFlags().Lookup("data-dir"))
	viper.BindPFlag("database_path", rootCmd.PersistentFlags().Lookup("db"))
	viper.BindPFlag("database_type", rootCmd.PersistentFlags().Lookup("db-type"))
	viper.BindPFlag("enable_sqlite3_i_know_the_risks", rootCmd.PersistentFlags().Lookup("enable-sqlite3-i-know-the-risks"))
	viper.BindPFlag("weights_path", rootCmd.PersistentFlags().Lookup("weights"))

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(similarCmd)
	rootCmd.AddCommand(diagnosticsCmd)

	// Add serve command specific flags
	serveCmd.Flags().String("port", "8486", "port to run the web server on")
	serveCmd.Flags().String("host", "127.0.0.1", "host to bind the web server to")
	serveCmd.Flags().String("read-timeout", "15s", "read timeout (e.g. 15s, 1m)")
	serveCmd.Flags().String("write-timeout", "15s", "write timeout (e.g. 15s, 1m)")
	serveCmd.Flags().String("idle-timeout", "60s", "idle timeout (e.g. 60s, 2m)")
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".mediatheque-explorer")
	}

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Println("Using config file:", viper.ConfigFileUsed())
	}

	// Ensure database directory exists
	if databasePath != "" {
		dbDir := filepath.Dir(databasePath)
		if dbDir != "." {
			if err := os.MkdirAll(dbDir, 0755); err != nil {
				fmt.Printf("Error creating database directory: %v\n", err)
			}
		}
	}

	config.InitConfig()
}
