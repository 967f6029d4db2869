// Steamsheet - Steam Library Sync to Google Sheets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steamsheet

/*
Package models defines the data structures shared by the Steamsheet sync.

Key Components:

  - Measure: a number that may be unavailable (Available(v) | Unavailable).
    Renders as the shortest decimal or "N/A"; encodes to JSON as a number
    or the string "N/A".
  - GameRecord: one owned game with playtime and achievement percentage.
  - CompletionTime: main story, completionist and all-styles estimates.
  - CacheEntry / CacheEntries: the persisted per-game cache, keyed by app id.
  - Row: a seven-cell spreadsheet row with column constants and the header.

Subpackages steam and hltb hold the wire shapes of the two remote APIs.

Freshness:

A CacheEntry is fresh for a GameRecord when playtime and achievements are
both unchanged:

	if completion, ok := cache.Lookup(game); ok {
	    // reuse completion, no lookup
	}
*/
package models
