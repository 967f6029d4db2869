// Steamsheet - Steam Library Sync to Google Sheets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steamsheet

package sync

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/steamsheet/internal/config"
	"github.com/tomtom215/steamsheet/internal/models"
)

// newTestConfig returns a Config with no pacing and no retry delays.
// Remote URLs point at localhost and are replaced per test.
func newTestConfig() *config.Config {
	return &config.Config{
		Steam: config.SteamConfig{
			APIKey:            "test-steam-key",
			SteamID:           "76561198000000000",
			BaseURL:           "http://127.0.0.1",
			StoreURL:          "https://store.steampowered.com",
			RequestsPerSecond: 0,
			Timeout:           5 * time.Second,
			MaxRetries:        2,
			RetryBaseDelay:    time.Millisecond,
		},
		HLTB: config.HLTBConfig{
			BaseURL:          "http://127.0.0.1",
			SearchPath:       "/api/search",
			DiscoverEndpoint: false,
			UserAgent:        "steamsheet-test",
			ResultsPerPage:   20,
			Timeout:          5 * time.Second,
		},
		Sheets: config.SheetsConfig{
			SpreadsheetID: "sheet-id",
			Range:         "Games",
			WriteAttempts: 1,
		},
		Cache: config.CacheConfig{Path: "cache.json"},
		Sync:  config.SyncConfig{GameDelay: 0},
	}
}

// fakeFetcher returns a fixed library.
type fakeFetcher struct {
	games []models.GameRecord
}

func (f *fakeFetcher) FetchGames(_ context.Context) []models.GameRecord {
	out := make([]models.GameRecord, len(f.games))
	copy(out, f.games)
	return out
}

// fakeResolver returns canned completion times and counts lookups per title.
type fakeResolver struct {
	times map[string]models.CompletionTime
	calls map[string]int
}

func newFakeResolver(times map[string]models.CompletionTime) *fakeResolver {
	return &fakeResolver{times: times, calls: make(map[string]int)}
}

func (f *fakeResolver) Resolve(_ context.Context, title string) models.CompletionTime {
	f.calls[title]++
	if ct, ok := f.times[title]; ok {
		return ct
	}
	return models.UnavailableCompletionTime()
}

func (f *fakeResolver) total() int {
	n := 0
	for _, c := range f.calls {
		n += c
	}
	return n
}

// fakeStore keeps the cache in memory and records every save.
type fakeStore struct {
	entries models.CacheEntries
	saves   []models.CacheEntries
	saveErr error
}

func (f *fakeStore) Load() models.CacheEntries {
	out := make(models.CacheEntries, len(f.entries))
	for k, v := range f.entries {
		out[k] = v
	}
	return out
}

func (f *fakeStore) Save(entries models.CacheEntries) error {
	snapshot := make(models.CacheEntries, len(entries))
	for k, v := range entries {
		snapshot[k] = v
	}
	f.saves = append(f.saves, snapshot)
	if f.saveErr != nil {
		return f.saveErr
	}
	f.entries = snapshot
	return nil
}

// write is one recorded gateway write.
type write struct {
	rangeAddress string
	rows         []models.Row
}

// fakeGateway is an in-memory sheet. Writes to "Sheet!An:Gn" replace row n;
// a write to the bare sheet name replaces the table from row 1.
type fakeGateway struct {
	rows     []models.Row
	writes   []write
	writeErr error
}

var errFakeWrite = errors.New("fake sheet write failure")

func (f *fakeGateway) ReadAll(_ context.Context) []models.Row {
	out := make([]models.Row, len(f.rows))
	for i, r := range f.rows {
		out[i] = append(models.Row(nil), r...)
	}
	return out
}

func (f *fakeGateway) Write(_ context.Context, rangeAddress string, rows []models.Row) error {
	f.writes = append(f.writes, write{rangeAddress: rangeAddress, rows: rows})
	if f.writeErr != nil {
		return f.writeErr
	}

	start := 1
	if n, ok := rowNumber(rangeAddress); ok {
		start = n
	}
	for i, row := range rows {
		pos := start - 1 + i
		for len(f.rows) <= pos {
			f.rows = append(f.rows, models.Row{})
		}
		f.rows[pos] = append(models.Row(nil), row...)
	}
	return nil
}

// rowNumber parses n from "Sheet!An:Gn".
func rowNumber(rangeAddress string) (int, bool) {
	_, cells, ok := strings.Cut(rangeAddress, "!")
	if !ok {
		return 0, false
	}
	var from, to int
	if _, err := fmt.Sscanf(cells, "A%d:G%d", &from, &to); err != nil {
		return 0, false
	}
	return from, true
}

// fixedNow is the clock used by test managers.
func fixedNow() time.Time {
	return time.Date(2024, 3, 9, 14, 5, 7, 0, time.Local)
}

// newTestManager wires a Manager to fakes with a fixed clock and no delay.
func newTestManager(cfg *config.Config, fetcher LibraryFetcher, resolver CompletionResolver, store CacheStore, gateway SheetGateway) *Manager {
	m := NewManager(fetcher, resolver, store, gateway, cfg)
	m.now = fixedNow
	m.sleep = func(ctx context.Context, _ time.Duration) error { return ctx.Err() }
	return m
}
