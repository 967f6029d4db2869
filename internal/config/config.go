// Steamsheet - Steam Library Sync to Google Sheets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steamsheet

package config

import (
	"time"
)

// Config holds all application configuration.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in defaults for every optional setting
//  2. Config File: Optional YAML file (steamsheet.yaml / config.yaml)
//  3. Environment Variables: Override any setting
//
// Config is built once in main and passed by pointer to every component.
// Nothing reads configuration from package-level state.
//
// Example:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    logging.Fatal().Err(err).Msg("Failed to load configuration")
//	}
//	steam := sync.NewSteamClient(&cfg.Steam)
type Config struct {
	Steam   SteamConfig   `koanf:"steam"`
	HLTB    HLTBConfig    `koanf:"hltb"`
	Sheets  SheetsConfig  `koanf:"sheets"`
	Cache   CacheConfig   `koanf:"cache"`
	Sync    SyncConfig    `koanf:"sync"`
	Logging LoggingConfig `koanf:"logging"`
	Metrics MetricsConfig `koanf:"metrics"`
}

// SteamConfig holds Steam Web API connection settings.
//
// Environment Variables:
//   - STEAM_API_KEY: Web API key from https://steamcommunity.com/dev/apikey
//   - STEAM_ID: SteamID64 of the library owner
//   - STEAM_REQUESTS_PER_SECOND: Client-side request pacing (default: 4)
type SteamConfig struct {
	APIKey            string        `koanf:"api_key" validate:"required"`
	SteamID           string        `koanf:"steam_id" validate:"required,steamid64"`
	BaseURL           string        `koanf:"base_url" validate:"required,url"`
	StoreURL          string        `koanf:"store_url" validate:"required,url"`
	RequestsPerSecond float64       `koanf:"requests_per_second" validate:"gt=0"`
	Timeout           time.Duration `koanf:"timeout"`
	MaxRetries        int           `koanf:"max_retries" validate:"gte=0,lte=10"` // HTTP 429 retries
	RetryBaseDelay    time.Duration `koanf:"retry_base_delay"`
}

// HLTBConfig holds HowLongToBeat lookup settings.
//
// The search endpoint path and key rotate with HLTB site deploys. When
// DiscoverEndpoint is true the client reads them from the site's JavaScript
// bundle; SearchPath is the fallback.
type HLTBConfig struct {
	BaseURL          string        `koanf:"base_url" validate:"required,url"`
	SearchPath       string        `koanf:"search_path" validate:"required"`
	DiscoverEndpoint bool          `koanf:"discover_endpoint"`
	UserAgent        string        `koanf:"user_agent" validate:"required"`
	ResultsPerPage   int           `koanf:"results_per_page" validate:"min=1,max=100"`
	Timeout          time.Duration `koanf:"timeout"`
}

// SheetsConfig holds Google Sheets settings.
//
// Range is the sheet (tab) name, e.g. "Games". Row writes address
// "Games!A5:G5"; the header rewrite addresses the bare sheet name.
type SheetsConfig struct {
	SpreadsheetID   string        `koanf:"spreadsheet_id" validate:"required"`
	Range           string        `koanf:"range" validate:"required"`
	CredentialsFile string        `koanf:"credentials_file" validate:"required"`
	WriteAttempts   int           `koanf:"write_attempts" validate:"min=1,max=100"`
	WriteRetryDelay time.Duration `koanf:"write_retry_delay"`
}

// CacheConfig holds the local completion-time cache settings.
type CacheConfig struct {
	Path string `koanf:"path" validate:"required"`
}

// SyncConfig holds reconciliation pacing.
type SyncConfig struct {
	GameDelay time.Duration `koanf:"game_delay"` // fixed pause after every game
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn warning error"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
	File   string `koanf:"file"` // truncated on start; empty disables the file
}

// MetricsConfig holds metrics export settings.
type MetricsConfig struct {
	// TextfilePath, when set, receives the Prometheus text exposition of
	// every collector at process exit (node_exporter textfile collector).
	TextfilePath string `koanf:"textfile_path"`
}

// Load reads configuration from defaults, an optional config file and the
// environment, then validates it.
//
// See LoadWithKoanf() for the underlying implementation.
func Load() (*Config, error) {
	return LoadWithKoanf()
}
