// Steamsheet - Steam Library Sync to Google Sheets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steamsheet

// Package main is the entry point for steamsheet.
//
// steamsheet copies a Steam library into a Google Sheets table: one row per
// owned game with its store link, playtime, achievement completion and
// HowLongToBeat main-story, all-styles and completionist estimates.
// HowLongToBeat results are cached in a local JSON file and looked up again
// only when a game's playtime or achievements change.
//
// # Run Order
//
//  1. Configuration: defaults, optional YAML file, environment (Koanf v2)
//  2. Logging: console plus a log file truncated on start
//  3. Sheets: service-account client (failure exits 1)
//  4. Sync: one sequential pass over the library
//  5. Metrics: optional Prometheus textfile at exit
//
// # Configuration
//
// Required environment variables (or their YAML keys):
//   - STEAM_API_KEY: Steam Web API key
//   - STEAM_ID: SteamID64 of the library owner
//   - SPREADSHEET_ID: target spreadsheet
//   - SHEET_RANGE: sheet (tab) name, e.g. Games
//
// GOOGLE_CREDENTIALS points at the service-account JSON file (default
// Google_Credentials.json). See internal/config for every setting.
//
// # Exit Codes
//
//   - 0: sync finished
//   - 1: configuration, credentials or a sheet write failed
//
// # Signal Handling
//
// SIGINT and SIGTERM stop the run before the next game. Rows and cache
// entries written so far are kept.
//
// # Example Usage
//
//	export STEAM_API_KEY=your-key
//	export STEAM_ID=76561198000000000
//	export SPREADSHEET_ID=1AbC...
//	export SHEET_RANGE=Games
//	./steamsheet
package main
