// Steamsheet - Steam Library Sync to Google Sheets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steamsheet

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/steamsheet/internal/validation"
)

// placeholderPrefix marks values copied unchanged from the sample config.
const placeholderPrefix = "INSERT_"

// Validate checks that required configuration is present and valid.
// Struct tags cover presence and ranges; the methods below cover rules
// the tags cannot express.
func (c *Config) Validate() error {
	if err := validation.ValidateStruct(c); err != nil {
		return err
	}

	validators := []func() error{
		c.validatePlaceholders,
		c.validateURLs,
		c.validateDurations,
		c.validateRange,
	}
	for _, validator := range validators {
		if err := validator(); err != nil {
			return err
		}
	}
	return nil
}

// validatePlaceholders rejects sample values such as INSERT_API_KEY.
func (c *Config) validatePlaceholders() error {
	fields := map[string]string{
		"steam.api_key":         c.Steam.APIKey,
		"steam.steam_id":        c.Steam.SteamID,
		"sheets.spreadsheet_id": c.Sheets.SpreadsheetID,
		"sheets.range":          c.Sheets.Range,
	}
	for name, value := range fields {
		if strings.HasPrefix(value, placeholderPrefix) {
			return fmt.Errorf("%s still holds the placeholder %q", name, value)
		}
	}
	return nil
}

// validateURLs validates base URLs for all remote services.
func (c *Config) validateURLs() error {
	if err := validateHTTPURL(c.Steam.BaseURL, "steam.base_url"); err != nil {
		return err
	}
	if err := validateHTTPURL(c.Steam.StoreURL, "steam.store_url"); err != nil {
		return err
	}
	if err := validateHTTPURL(c.HLTB.BaseURL, "hltb.base_url"); err != nil {
		return err
	}
	return validateSearchPath(c.HLTB.SearchPath)
}

// validateDurations rejects negative pacing and timeout values.
func (c *Config) validateDurations() error {
	durations := []struct {
		name  string
		value time.Duration
	}{
		{"steam.timeout", c.Steam.Timeout},
		{"steam.retry_base_delay", c.Steam.RetryBaseDelay},
		{"hltb.timeout", c.HLTB.Timeout},
		{"sheets.write_retry_delay", c.Sheets.WriteRetryDelay},
		{"sync.game_delay", c.Sync.GameDelay},
	}
	for _, d := range durations {
		if d.value < 0 {
			return fmt.Errorf("%s must not be negative, got %s", d.name, d.value)
		}
	}
	return nil
}

// validateRange requires a bare sheet name; row ranges are derived from it.
func (c *Config) validateRange() error {
	if strings.Contains(c.Sheets.Range, "!") {
		return fmt.Errorf("sheets.range must be a sheet name without a cell range, got %q", c.Sheets.Range)
	}
	return nil
}
