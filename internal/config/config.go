// file: internal/config/config.go
// version: 2.0.0
// guid: 7b8c9d0e-1f2a-3b4c-5d6e-7f8a9b0c1d2e

package config

import (
	"time"

	"github.com/spf13/viper"
)

// Config holds application configuration
type Config struct {
	Host string
	Port int

	DataDir      string
	DatabasePath string
	DatabaseType string // "pebble" (default) or "sqlite"
	EnableSQLite bool   // Must be true to use SQLite (safety flag)

	// DefaultViewer selects whose progress fields apply when a request
	// does not name a viewer ("J" or "M").
	DefaultViewer string

	// WeightsPath points at the optional YAML genre weight overrides,
	// reloaded live when the file changes.
	WeightsPath string

	// CacheTTL bounds how long memoized recommendation responses live.
	CacheTTL time.Duration

	// Rate limiting for the HTTP API.
	RateLimitRPS   float64
	RateLimitBurst int
}

var AppConfig Config

// InitConfig initializes the application configuration
func InitConfig() {
	// Set defaults
	viper.SetDefault("host", "127.0.0.1")
	viper.SetDefault("port", 8486)
	viper.SetDefault("database_type", "pebble")
	viper.SetDefault("enable_sqlite3_i_know_the_risks", false)
	viper.SetDefault("default_viewer", "M")
	viper.SetDefault("cache_ttl", "5m")
	viper.SetDefault("rate_limit_rps", 25.0)
	viper.SetDefault("rate_limit_burst", 50)

	AppConfig = Config{
		Host:           viper.GetString("host"),
		Port:           viper.GetInt("port"),
		DataDir:        viper.GetString("data_dir"),
		DatabasePath:   viper.GetString("database_path"),
		DatabaseType:   viper.GetString("database_type"),
		EnableSQLite:   viper.GetBool("enable_sqlite3_i_know_the_risks"),
		DefaultViewer:  viper.GetString("default_viewer"),
		WeightsPath:    viper.GetString("weights_path"),
		CacheTTL:       viper.GetDuration("cache_ttl"),
		RateLimitRPS:   viper.GetFloat64("rate_limit_rps"),
		RateLimitBurst: viper.GetInt("rate_limit_burst"),
	}

	// Normalize database type
	if AppConfig.DatabaseType == "sqlite3" {
		AppConfig.DatabaseType = "sqlite"
	}
	if AppConfig.DatabaseType == "" {
		AppConfig.DatabaseType = "pebble"
	}
	if AppConfig.DefaultViewer != "J" && AppConfig.DefaultViewer != "M" {
		AppConfig.DefaultViewer = "M"
	}
	if AppConfig.CacheTTL <= 0 {
		AppConfig.CacheTTL = 5 * time.Minute
	}
}
