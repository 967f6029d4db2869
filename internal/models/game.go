// Steamsheet - Steam Library Sync to Google Sheets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steamsheet

package models

import (
	"strconv"
	"time"
)

// UnknownGameName is used when Steam omits a game's name.
const UnknownGameName = "Unknown"

// GameRecord is one owned game as reported by the Steam Web API for this run.
type GameRecord struct {
	ID           int64   // Steam app id; 0 when the API omitted it
	Name         string  // display name, may contain ™ © ®
	Playtime     float64 // hours, rounded to 1 decimal
	Achievements Measure // percentage 0-100, rounded to 2 decimals
}

// HasID reports whether the record carries a usable app id.
func (g GameRecord) HasID() bool {
	return g.ID > 0
}

// Key returns the app id as the string used for cache keys and the
// spreadsheet's App ID column.
func (g GameRecord) Key() string {
	return strconv.FormatInt(g.ID, 10)
}

// CompletionTime holds HowLongToBeat estimates in hours.
// The three fields are independent; no ordering holds between them.
type CompletionTime struct {
	MainStory     Measure `json:"main_story"`
	Completionist Measure `json:"completionist"`
	AllStyles     Measure `json:"all_styles"`
}

// UnavailableCompletionTime returns a CompletionTime with every field unavailable.
func UnavailableCompletionTime() CompletionTime {
	return CompletionTime{
		MainStory:     Unavailable(),
		Completionist: Unavailable(),
		AllStyles:     Unavailable(),
	}
}

// Found reports whether any estimate is available.
func (c CompletionTime) Found() bool {
	return c.MainStory.IsAvailable() || c.Completionist.IsAvailable() || c.AllStyles.IsAvailable()
}

// CacheTimeFormat is the layout of CacheEntry.LastUpdated.
const CacheTimeFormat = "2006-01-02 15:04:05"

// CacheEntry is the persisted state for one game, keyed by its app id.
// An entry is replaced wholesale whenever it goes stale.
type CacheEntry struct {
	Name           string         `json:"name"`
	Playtime       float64        `json:"playtime"`
	Achievements   Measure        `json:"achievements"`
	CompletionTime CompletionTime `json:"completion_time"`
	LastUpdated    string         `json:"last_updated"`
}

// NewCacheEntry builds the entry for game with freshly resolved completion times.
func NewCacheEntry(game GameRecord, completion CompletionTime, now time.Time) CacheEntry {
	return CacheEntry{
		Name:           game.Name,
		Playtime:       game.Playtime,
		Achievements:   game.Achievements,
		CompletionTime: completion,
		LastUpdated:    now.Format(CacheTimeFormat),
	}
}

// FreshFor reports whether the entry still describes game: playtime and
// achievements must both be unchanged.
func (e CacheEntry) FreshFor(game GameRecord) bool {
	return e.Playtime == game.Playtime && e.Achievements.Equal(game.Achievements)
}

// CacheEntries maps stringified app ids to cache entries.
type CacheEntries map[string]CacheEntry

// Lookup returns the cached completion time for game if its entry is fresh.
func (c CacheEntries) Lookup(game GameRecord) (CompletionTime, bool) {
	entry, ok := c[game.Key()]
	if !ok || !entry.FreshFor(game) {
		return CompletionTime{}, false
	}
	return entry.CompletionTime, true
}
