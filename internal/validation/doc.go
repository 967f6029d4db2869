// Steamsheet - Steam Library Sync to Google Sheets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steamsheet

// Package validation provides struct validation using go-playground/validator v10.
//
// A thread-safe singleton validator is shared by all callers. Error field
// names come from `koanf` struct tags, so a failure reads
// "steam.api_key is required" rather than naming the Go field.
//
// Custom tags:
//   - steamid64: a 17-digit individual Steam account ID (7656119...)
//
// Example:
//
//	type SteamConfig struct {
//	    APIKey  string `koanf:"api_key" validate:"required"`
//	    SteamID string `koanf:"steam_id" validate:"required,steamid64"`
//	}
//
//	if err := validation.ValidateStruct(cfg); err != nil {
//	    return fmt.Errorf("configuration validation failed: %w", err)
//	}
package validation
