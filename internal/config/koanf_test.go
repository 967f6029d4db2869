// Steamsheet - Steam Library Sync to Google Sheets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steamsheet

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

const (
	testAPIKey  = "0123456789ABCDEF0123456789ABCDEF"
	testSteamID = "76561198000000000"
)

// clearEnv unsets every mapped variable for the duration of the test.
func clearEnv(t *testing.T) {
	t.Helper()
	for key := range envMappings {
		name := strings.ToUpper(key)
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
	t.Setenv(ConfigPathEnvVar, "")
	os.Unsetenv(ConfigPathEnvVar)
}

// setRequiredEnv sets the four values that have no default.
func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("STEAM_API_KEY", testAPIKey)
	t.Setenv("STEAM_ID", testSteamID)
	t.Setenv("SPREADSHEET_ID", "1AbCdEfGhIjKlMnOp")
	t.Setenv("SHEET_RANGE", "Games")
}

// TestDefaultConfig verifies that defaultConfig() returns proper defaults
func TestDefaultConfig(t *testing.T) {
	t.Parallel()

	cfg := defaultConfig()

	// Required fields have no default
	if cfg.Steam.APIKey != "" || cfg.Steam.SteamID != "" {
		t.Errorf("Steam credentials should be empty by default")
	}
	if cfg.Sheets.SpreadsheetID != "" || cfg.Sheets.Range != "" {
		t.Errorf("Sheets target should be empty by default")
	}

	if cfg.Steam.BaseURL != "https://api.steampowered.com" {
		t.Errorf("Steam.BaseURL = %q", cfg.Steam.BaseURL)
	}
	if cfg.Steam.StoreURL != "https://store.steampowered.com" {
		t.Errorf("Steam.StoreURL = %q", cfg.Steam.StoreURL)
	}
	if cfg.Steam.RequestsPerSecond != 4 {
		t.Errorf("Steam.RequestsPerSecond = %v, want 4", cfg.Steam.RequestsPerSecond)
	}
	if cfg.HLTB.SearchPath != "/api/search" {
		t.Errorf("HLTB.SearchPath = %q, want /api/search", cfg.HLTB.SearchPath)
	}
	if !cfg.HLTB.DiscoverEndpoint {
		t.Errorf("HLTB.DiscoverEndpoint should be true by default")
	}
	if cfg.HLTB.ResultsPerPage != 20 {
		t.Errorf("HLTB.ResultsPerPage = %d, want 20", cfg.HLTB.ResultsPerPage)
	}
	if cfg.Sheets.CredentialsFile != "Google_Credentials.json" {
		t.Errorf("Sheets.CredentialsFile = %q", cfg.Sheets.CredentialsFile)
	}
	if cfg.Sheets.WriteAttempts != 10 {
		t.Errorf("Sheets.WriteAttempts = %d, want 10", cfg.Sheets.WriteAttempts)
	}
	if cfg.Sheets.WriteRetryDelay != 5*time.Second {
		t.Errorf("Sheets.WriteRetryDelay = %v, want 5s", cfg.Sheets.WriteRetryDelay)
	}
	if cfg.Cache.Path != "SGL_Cache.json" {
		t.Errorf("Cache.Path = %q, want SGL_Cache.json", cfg.Cache.Path)
	}
	if cfg.Sync.GameDelay != time.Second {
		t.Errorf("Sync.GameDelay = %v, want 1s", cfg.Sync.GameDelay)
	}
	if cfg.Logging.File != "SGL_Logs.log" {
		t.Errorf("Logging.File = %q, want SGL_Logs.log", cfg.Logging.File)
	}
	if cfg.Metrics.TextfilePath != "" {
		t.Errorf("Metrics.TextfilePath should be empty by default")
	}
}

// TestEnvTransformFunc verifies environment variable to config path transformation
func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"STEAM_API_KEY", "steam.api_key"},
		{"STEAM_ID", "steam.steam_id"},
		{"STEAM_REQUESTS_PER_SECOND", "steam.requests_per_second"},
		{"HLTB_DISCOVER_ENDPOINT", "hltb.discover_endpoint"},
		{"SPREADSHEET_ID", "sheets.spreadsheet_id"},
		{"SHEET_RANGE", "sheets.range"},
		{"GOOGLE_CREDENTIALS", "sheets.credentials_file"},
		{"CACHE_PATH", "cache.path"},
		{"SYNC_GAME_DELAY", "sync.game_delay"},
		{"LOG_LEVEL", "logging.level"},
		{"METRICS_TEXTFILE", "metrics.textfile_path"},
		// Unmapped variables are ignored
		{"PATH", ""},
		{"HOME", ""},
		{"STEAM_UNKNOWN", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if result := envTransformFunc(tt.input); result != tt.expected {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, result, tt.expected)
			}
		})
	}
}

// TestFindConfigFile verifies config file discovery
func TestFindConfigFile(t *testing.T) {
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)
	clearEnv(t)

	t.Run("no config file exists", func(t *testing.T) {
		if result := findConfigFile(); result != "" {
			t.Errorf("findConfigFile() = %q, want empty string", result)
		}
	})

	t.Run("config.yaml exists", func(t *testing.T) {
		if err := os.WriteFile(filepath.Join(tmpDir, "config.yaml"), []byte("sync: {}"), 0o644); err != nil {
			t.Fatalf("Failed to create config file: %v", err)
		}
		if result := findConfigFile(); result != "config.yaml" {
			t.Errorf("findConfigFile() = %q, want config.yaml", result)
		}
	})

	t.Run("steamsheet.yaml wins over config.yaml", func(t *testing.T) {
		if err := os.WriteFile(filepath.Join(tmpDir, "steamsheet.yaml"), []byte("sync: {}"), 0o644); err != nil {
			t.Fatalf("Failed to create config file: %v", err)
		}
		if result := findConfigFile(); result != "steamsheet.yaml" {
			t.Errorf("findConfigFile() = %q, want steamsheet.yaml", result)
		}
	})

	t.Run("CONFIG_PATH env var takes precedence", func(t *testing.T) {
		customPath := filepath.Join(tmpDir, "custom.yaml")
		if err := os.WriteFile(customPath, []byte("sync: {}"), 0o644); err != nil {
			t.Fatalf("Failed to create custom config file: %v", err)
		}
		t.Setenv(ConfigPathEnvVar, customPath)

		if result := findConfigFile(); result != customPath {
			t.Errorf("findConfigFile() = %q, want %q", result, customPath)
		}
	})

	t.Run("CONFIG_PATH with non-existent file falls back", func(t *testing.T) {
		t.Setenv(ConfigPathEnvVar, "/non/existent/config.yaml")

		if result := findConfigFile(); result != "steamsheet.yaml" {
			t.Errorf("findConfigFile() = %q, want steamsheet.yaml", result)
		}
	})
}

// TestLoadWithKoanfEnvVars tests loading configuration from environment variables
func TestLoadWithKoanfEnvVars(t *testing.T) {
	t.Chdir(t.TempDir())
	clearEnv(t)
	setRequiredEnv(t)

	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("SYNC_GAME_DELAY", "250ms")
	t.Setenv("SHEETS_WRITE_ATTEMPTS", "3")
	t.Setenv("HLTB_DISCOVER_ENDPOINT", "false")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Steam.APIKey != testAPIKey {
		t.Errorf("Steam.APIKey = %q, want %q", cfg.Steam.APIKey, testAPIKey)
	}
	if cfg.Steam.SteamID != testSteamID {
		t.Errorf("Steam.SteamID = %q, want %q", cfg.Steam.SteamID, testSteamID)
	}
	if cfg.Sheets.Range != "Games" {
		t.Errorf("Sheets.Range = %q, want Games", cfg.Sheets.Range)
	}

	// Overrides
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	if cfg.Sync.GameDelay != 250*time.Millisecond {
		t.Errorf("Sync.GameDelay = %v, want 250ms", cfg.Sync.GameDelay)
	}
	if cfg.Sheets.WriteAttempts != 3 {
		t.Errorf("Sheets.WriteAttempts = %d, want 3", cfg.Sheets.WriteAttempts)
	}
	if cfg.HLTB.DiscoverEndpoint {
		t.Errorf("HLTB.DiscoverEndpoint = true, want false")
	}

	// Defaults still applied
	if cfg.Cache.Path != "SGL_Cache.json" {
		t.Errorf("Cache.Path = %q, want SGL_Cache.json (default)", cfg.Cache.Path)
	}
	if cfg.Sheets.WriteRetryDelay != 5*time.Second {
		t.Errorf("Sheets.WriteRetryDelay = %v, want 5s (default)", cfg.Sheets.WriteRetryDelay)
	}
}

// TestLoadWithKoanfEnvOverridesFile tests that env vars override config file
func TestLoadWithKoanfEnvOverridesFile(t *testing.T) {
	tmpDir := t.TempDir()
	t.Chdir(tmpDir)
	clearEnv(t)

	configContent := `
steam:
  api_key: "from-file-key"
  steam_id: "76561198000000001"
sheets:
  spreadsheet_id: "file-sheet"
  range: "Library"
cache:
  path: "/tmp/file-cache.json"
logging:
  level: "warn"
`
	configPath := filepath.Join(tmpDir, "custom.yaml")
	if err := os.WriteFile(configPath, []byte(configContent), 0o644); err != nil {
		t.Fatalf("Failed to create config file: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, configPath)
	t.Setenv("LOG_LEVEL", "error")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	// From file
	if cfg.Steam.APIKey != "from-file-key" {
		t.Errorf("Steam.APIKey = %q, want from-file-key", cfg.Steam.APIKey)
	}
	if cfg.Sheets.Range != "Library" {
		t.Errorf("Sheets.Range = %q, want Library", cfg.Sheets.Range)
	}
	if cfg.Cache.Path != "/tmp/file-cache.json" {
		t.Errorf("Cache.Path = %q, want /tmp/file-cache.json", cfg.Cache.Path)
	}

	// Env wins over file
	if cfg.Logging.Level != "error" {
		t.Errorf("Logging.Level = %q, want error (env override)", cfg.Logging.Level)
	}
}

// TestLoadWithKoanfValidation tests that invalid settings are rejected
func TestLoadWithKoanfValidation(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		errMsg  string
	}{
		{
			name:    "missing api key",
			envVars: map[string]string{"STEAM_API_KEY": ""},
			errMsg:  "steam.api_key",
		},
		{
			name:    "malformed steam id",
			envVars: map[string]string{"STEAM_ID": "12345"},
			errMsg:  "steam.steam_id",
		},
		{
			name:    "placeholder api key",
			envVars: map[string]string{"STEAM_API_KEY": "INSERT_STEAM_API_KEY"},
			errMsg:  "placeholder",
		},
		{
			name:    "steam base url with path",
			envVars: map[string]string{"STEAM_BASE_URL": "https://api.steampowered.com/IPlayerService"},
			errMsg:  "steam.base_url",
		},
		{
			name:    "cell range in sheet name",
			envVars: map[string]string{"SHEET_RANGE": "Games!A1:G1"},
			errMsg:  "sheets.range",
		},
		{
			name:    "negative game delay",
			envVars: map[string]string{"SYNC_GAME_DELAY": "-1s"},
			errMsg:  "sync.game_delay",
		},
		{
			name:    "zero write attempts",
			envVars: map[string]string{"SHEETS_WRITE_ATTEMPTS": "0"},
			errMsg:  "sheets.write_attempts",
		},
		{
			name:    "unknown log format",
			envVars: map[string]string{"LOG_FORMAT": "xml"},
			errMsg:  "logging.format",
		},
		{
			name:    "relative search path",
			envVars: map[string]string{"HLTB_SEARCH_PATH": "api/search"},
			errMsg:  "hltb.search_path",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Chdir(t.TempDir())
			clearEnv(t)
			setRequiredEnv(t)
			for k, v := range tt.envVars {
				t.Setenv(k, v)
				if v == "" {
					os.Unsetenv(k)
				}
			}

			_, err := LoadWithKoanf()
			if err == nil {
				t.Fatalf("LoadWithKoanf() expected error containing %q", tt.errMsg)
			}
			if !strings.Contains(err.Error(), tt.errMsg) {
				t.Errorf("error = %q, want it to contain %q", err.Error(), tt.errMsg)
			}
		})
	}
}

func TestValidateHTTPURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		url     string
		wantErr bool
	}{
		{"https://api.steampowered.com", false},
		{"https://api.steampowered.com/", false},
		{"http://127.0.0.1:8080", false},
		{"ftp://api.steampowered.com", true},
		{"https://", true},
		{"https://howlongtobeat.com/api", true},
		{"https://howlongtobeat.com?x=1", true},
	}

	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			err := validateHTTPURL(tt.url, "test_url")
			if (err != nil) != tt.wantErr {
				t.Errorf("validateHTTPURL(%q) error = %v, wantErr %v", tt.url, err, tt.wantErr)
			}
		})
	}
}
