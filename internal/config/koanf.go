// Steamsheet - Steam Library Sync to Google Sheets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steamsheet

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
)

// DefaultConfigPaths lists the paths where config files are searched in order of priority.
// The first file found will be used.
var DefaultConfigPaths = []string{
	"steamsheet.yaml",
	"steamsheet.yml",
	"config.yaml",
	"config.yml",
}

// ConfigPathEnvVar is the environment variable that can override the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// defaultConfig returns a Config struct with all default values.
// These defaults are applied first, then overridden by config file and env vars.
func defaultConfig() *Config {
	return &Config{
		Steam: SteamConfig{
			APIKey:            "",
			SteamID:           "",
			BaseURL:           "https://api.steampowered.com",
			StoreURL:          "https://store.steampowered.com",
			RequestsPerSecond: 4,
			Timeout:           30 * time.Second,
			MaxRetries:        5,
			RetryBaseDelay:    time.Second,
		},
		HLTB: HLTBConfig{
			BaseURL:          "https://howlongtobeat.com",
			SearchPath:       "/api/search",
			DiscoverEndpoint: true,
			UserAgent:        "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/124.0.0.0 Safari/537.36",
			ResultsPerPage:   20,
			Timeout:          30 * time.Second,
		},
		Sheets: SheetsConfig{
			SpreadsheetID:   "",
			Range:           "",
			CredentialsFile: "Google_Credentials.json",
			WriteAttempts:   10,
			WriteRetryDelay: 5 * time.Second,
		},
		Cache: CacheConfig{
			Path: "SGL_Cache.json",
		},
		Sync: SyncConfig{
			GameDelay: time.Second,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
			Caller: false,
			File:   "SGL_Logs.log",
		},
		Metrics: MetricsConfig{
			TextfilePath: "",
		},
	}
}

// LoadWithKoanf loads configuration using Koanf v2 with layered sources:
//  1. Defaults: Built-in defaults
//  2. Config File: Optional YAML config file (if exists)
//  3. Environment Variables: Override any setting
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	// Layer 1: Load defaults from struct
	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	// Layer 2: Load config file (optional)
	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// Layer 3: Load environment variables (highest priority)
	// STEAM_API_KEY -> steam.api_key
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// findConfigFile searches for a config file in the default paths.
// Returns the path to the first file found, or empty string if none found.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// envMappings maps environment variable names (lowercased) to koanf paths.
// Unmapped variables are ignored so unrelated environment does not leak
// into the configuration.
var envMappings = map[string]string{
	// Steam
	"steam_api_key":             "steam.api_key",
	"steam_id":                  "steam.steam_id",
	"steam_base_url":            "steam.base_url",
	"steam_store_url":           "steam.store_url",
	"steam_requests_per_second": "steam.requests_per_second",
	"steam_timeout":             "steam.timeout",
	"steam_max_retries":         "steam.max_retries",
	"steam_retry_base_delay":    "steam.retry_base_delay",

	// HowLongToBeat
	"hltb_base_url":          "hltb.base_url",
	"hltb_search_path":       "hltb.search_path",
	"hltb_discover_endpoint": "hltb.discover_endpoint",
	"hltb_user_agent":        "hltb.user_agent",
	"hltb_results_per_page":  "hltb.results_per_page",
	"hltb_timeout":           "hltb.timeout",

	// Google Sheets
	"spreadsheet_id":           "sheets.spreadsheet_id",
	"sheet_range":              "sheets.range",
	"google_credentials":       "sheets.credentials_file",
	"sheets_write_attempts":    "sheets.write_attempts",
	"sheets_write_retry_delay": "sheets.write_retry_delay",

	// Cache
	"cache_path": "cache.path",

	// Sync
	"sync_game_delay": "sync.game_delay",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
	"log_file":   "logging.file",

	// Metrics
	"metrics_textfile": "metrics.textfile_path",
}

// envTransformFunc transforms environment variable names to koanf config paths.
//
// Examples:
//   - STEAM_API_KEY -> steam.api_key
//   - SPREADSHEET_ID -> sheets.spreadsheet_id
//   - SYNC_GAME_DELAY -> sync.game_delay
func envTransformFunc(key string) string {
	if mapped, ok := envMappings[strings.ToLower(key)]; ok {
		return mapped
	}
	return ""
}
