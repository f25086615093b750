// file: internal/config/persistence.go
// version: 2.0.0
// guid: 9c8d7e6f-5a4b-3c2d-1e0f-9a8b7c6d5e4f

package config

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/mediatheque/explorer/internal/database"
)

// ConfigFilePath returns the path to the YAML config file next to the database.
func ConfigFilePath() string {
	if AppConfig.DatabasePath != "" {
		return filepath.Join(filepath.Dir(AppConfig.DatabasePath), "config.yaml")
	}
	if AppConfig.DataDir != "" {
		return filepath.Join(AppConfig.DataDir, "config.yaml")
	}
	return ""
}

// LoadConfigFromFile loads settings from the YAML config file as a fallback.
// Called after LoadConfigFromDatabase so file values only fill in gaps.
func LoadConfigFromFile() error {
	path := ConfigFilePath()
	if path == "" {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var fileConfig map[string]any
	if err := yaml.Unmarshal(data, &fileConfig); err != nil {
		log.Printf("[WARN] Failed to parse config file %s: %v", path, err)
		return nil
	}

	applied := 0
	stringFallbacks := map[string]*string{
		"data_dir":     &AppConfig.DataDir,
		"weights_path": &AppConfig.WeightsPath,
	}
	for key, ptr := range stringFallbacks {
		if *ptr == "" {
			if val, ok := fileConfig[key].(string); ok && val != "" {
				*ptr = val
				applied++
				log.Printf("[INFO] Loaded %s from config file", key)
			}
		}
	}
	if val, ok := fileConfig["default_viewer"].(string); ok && (val == "J" || val == "M") {
		AppConfig.DefaultViewer = val
		applied++
	}

	if applied > 0 {
		log.Printf("[INFO] Applied %d settings from config file %s", applied, path)
	}
	return nil
}

// SaveConfigToFile writes key settings to a YAML config file next to the database.
func SaveConfigToFile() error {
	path := ConfigFilePath()
	if path == "" {
		return fmt.Errorf("cannot determine config file path")
	}

	fileConfig := map[string]any{
		"data_dir":       AppConfig.DataDir,
		"database_path":  AppConfig.DatabasePath,
		"database_type":  AppConfig.DatabaseType,
		"default_viewer": AppConfig.DefaultViewer,
		"weights_path":   AppConfig.WeightsPath,
	}
	data, err := yaml.Marshal(fileConfig)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// Setting keys persisted in the store. Stored settings beat file values
// but lose to explicit flags, which is why LoadConfigFromDatabase runs
// before LoadConfigFromFile.
const (
	settingDefaultViewer = "default_viewer"
	settingWeightsPath   = "weights_path"
	settingCacheTTL      = "cache_ttl_seconds"
)

// LoadConfigFromDatabase overlays persisted settings onto AppConfig.
func LoadConfigFromDatabase(store database.Store) error {
	if store == nil {
		return nil
	}

	if s, err := store.GetSetting(settingDefaultViewer); err != nil {
		return fmt.Errorf("failed to load %s: %w", settingDefaultViewer, err)
	} else if s != nil && (s.Value == "J" || s.Value == "M") {
		AppConfig.DefaultViewer = s.Value
	}

	if s, err := store.GetSetting(settingWeightsPath); err != nil {
		return fmt.Errorf("failed to load %s: %w", settingWeightsPath, err)
	} else if s != nil && s.Value != "" {
		AppConfig.WeightsPath = s.Value
	}

	if s, err := store.GetSetting(settingCacheTTL); err != nil {
		return fmt.Errorf("failed to load %s: %w", settingCacheTTL, err)
	} else if s != nil {
		if secs, err := strconv.Atoi(s.Value); err == nil && secs > 0 {
			AppConfig.CacheTTL = time.Duration(secs) * time.Second
		}
	}

	return nil
}

// SaveConfigToDatabase persists the tunable settings to the store.
func SaveConfigToDatabase(store database.Store) error {
	if store == nil {
		return fmt.Errorf("no store available")
	}
	if err := store.SetSetting(settingDefaultViewer, AppConfig.DefaultViewer); err != nil {
		return err
	}
	if err := store.SetSetting(settingWeightsPath, AppConfig.WeightsPath); err != nil {
		return err
	}
	return store.SetSetting(settingCacheTTL,
		strconv.Itoa(int(AppConfig.CacheTTL/time.Second)))
}
