// Steamsheet - Steam Library Sync to Google Sheets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steamsheet

/*
manager.go - Sync Manager

Manager reconciles the Steam library against the spreadsheet and the local
completion-time cache in a single sequential pass.

Run Steps:
  - Snapshot: read the whole sheet and load the cache, once
  - Header: prepend the header row and rewrite the table if A1 is not "App ID"
  - Fetch: owned games with playtime and achievements
  - Per game: skip without app id, reuse or resolve completion times,
    save the cache on every miss, update or append one row, then pause

Dependencies are small interfaces so the run can be driven by fakes:
  - LibraryFetcher: SteamClient
  - CompletionResolver: HLTBClient
  - CacheStore: cache.Store
  - SheetGateway: sheets.Gateway

Thread Safety:
  - runMu: Prevents concurrent runs sharing the cache file and sheet
*/

//nolint:staticcheck // File documentation, not package doc
package sync

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/tomtom215/steamsheet/internal/config"
	"github.com/tomtom215/steamsheet/internal/logging"
	"github.com/tomtom215/steamsheet/internal/metrics"
	"github.com/tomtom215/steamsheet/internal/models"
	"github.com/tomtom215/steamsheet/internal/sheets"
)

// ErrMissingIdentifier is logged for library entries without an app id.
var ErrMissingIdentifier = errors.New("game has no app id")

// LibraryFetcher returns the owned library. It fails soft: errors are
// logged and yield an empty slice.
type LibraryFetcher interface {
	FetchGames(ctx context.Context) []models.GameRecord
}

// CompletionResolver looks up completion times for a title. Lookup
// failures yield an all-unavailable CompletionTime.
type CompletionResolver interface {
	Resolve(ctx context.Context, title string) models.CompletionTime
}

// CacheStore loads and persists the completion-time cache.
type CacheStore interface {
	Load() models.CacheEntries
	Save(entries models.CacheEntries) error
}

// SheetGateway reads and writes the spreadsheet.
type SheetGateway interface {
	ReadAll(ctx context.Context) []models.Row
	Write(ctx context.Context, rangeAddress string, rows []models.Row) error
}

// RunResult summarizes one run.
type RunResult struct {
	Fetched     int
	Skipped     int
	CacheHits   int
	CacheMisses int
	Inserted    int
	Updated     int
	Unchanged   int
	Duration    time.Duration
}

// Processed returns the number of games that reached the row diff.
func (r *RunResult) Processed() int {
	return r.Inserted + r.Updated + r.Unchanged
}

// Manager runs the library-to-sheet reconciliation.
type Manager struct {
	fetcher  LibraryFetcher
	resolver CompletionResolver
	store    CacheStore
	gateway  SheetGateway
	cfg      *config.Config

	now   func() time.Time
	sleep func(ctx context.Context, d time.Duration) error

	runMu sync.Mutex
}

// NewManager creates a sync manager.
func NewManager(fetcher LibraryFetcher, resolver CompletionResolver, store CacheStore, gateway SheetGateway, cfg *config.Config) *Manager {
	logging.Info().
		Str("range", cfg.Sheets.Range).
		Str("cache", cfg.Cache.Path).
		Dur("game_delay", cfg.Sync.GameDelay).
		Msg("Sync manager config loaded")

	return &Manager{
		fetcher:  fetcher,
		resolver: resolver,
		store:    store,
		gateway:  gateway,
		cfg:      cfg,
		now:      time.Now,
		sleep:    sleepContext,
	}
}

// Run performs one full reconciliation. It returns an error only when a
// sheet write exhausts its retries or ctx is canceled; every other failure
// is logged and degrades the affected game.
func (m *Manager) Run(ctx context.Context) (*RunResult, error) {
	m.runMu.Lock()
	defer m.runMu.Unlock()

	ctx = logging.ContextWithNewRunID(ctx)
	log := logging.Ctx(ctx)

	start := m.now()
	result := &RunResult{}

	log.Info().Msg("Beginning of data processing...")

	snapshot := m.gateway.ReadAll(ctx)
	entries := m.store.Load()
	if entries == nil {
		entries = models.CacheEntries{}
	}

	snapshot, err := m.ensureHeader(ctx, snapshot)
	if err != nil {
		return m.finish(ctx, result, start, err)
	}

	games := m.fetcher.FetchGames(ctx)
	result.Fetched = len(games)
	if len(games) == 0 {
		log.Warn().Msg("No games received from Steam, nothing to sync")
		return m.finish(ctx, result, start, nil)
	}

	total := len(games)
	for i, game := range games {
		if err := ctx.Err(); err != nil {
			return m.finish(ctx, result, start, fmt.Errorf("sync interrupted: %w", err))
		}

		if !game.HasID() {
			result.Skipped++
			metrics.RecordGameOutcome("skipped")
			log.Error().Err(ErrMissingIdentifier).Str("name", game.Name).Msgf("[%d/%d] Skipping game without app id", i+1, total)
			continue
		}

		snapshot, err = m.processGame(ctx, i, total, game, snapshot, entries, result)
		if err != nil {
			return m.finish(ctx, result, start, err)
		}

		if err := m.sleep(ctx, m.cfg.Sync.GameDelay); err != nil {
			return m.finish(ctx, result, start, fmt.Errorf("sync interrupted: %w", err))
		}
	}

	return m.finish(ctx, result, start, nil)
}

// ensureHeader prepends the header row when A1 does not hold the marker and
// rewrites the whole table from the top of the sheet.
func (m *Manager) ensureHeader(ctx context.Context, snapshot []models.Row) ([]models.Row, error) {
	if len(snapshot) > 0 && snapshot[0].IsHeader() {
		return snapshot, nil
	}

	logging.Ctx(ctx).Info().Int("rows", len(snapshot)).Msg("Header row missing, inserting it")

	table := make([]models.Row, 0, len(snapshot)+1)
	table = append(table, models.HeaderRow())
	table = append(table, snapshot...)

	rangeAddress := sheets.SheetName(m.cfg.Sheets.Range)
	if err := m.gateway.Write(ctx, rangeAddress, table); err != nil {
		return nil, fmt.Errorf("failed to write sheet header: %w", err)
	}
	return table, nil
}

// processGame resolves completion times for one game and pushes its row.
// The returned snapshot includes any appended row.
func (m *Manager) processGame(ctx context.Context, i, total int, game models.GameRecord, snapshot []models.Row, entries models.CacheEntries, result *RunResult) ([]models.Row, error) {
	log := logging.Ctx(ctx)

	completion, hit := entries.Lookup(game)
	metrics.RecordCacheLookup(hit)
	if hit {
		result.CacheHits++
		log.Debug().Str("app_id", game.Key()).Msg("Completion time taken from cache")
	} else {
		result.CacheMisses++
		log.Info().Msgf("[%d/%d] Getting passing time for %s...", i+1, total, game.Name)

		completion = m.resolver.Resolve(ctx, game.Name)
		entries[game.Key()] = models.NewCacheEntry(game, completion, m.now())
		if err := m.store.Save(entries); err != nil {
			log.Error().Err(err).Str("app_id", game.Key()).Msg("Failed to save cache, continuing")
		}
	}

	row := buildRow(m.cfg.Steam.StoreURL, game, completion)
	sheet := sheets.SheetName(m.cfg.Sheets.Range)

	if idx := findRow(snapshot, game.Key()); idx >= 0 {
		if !rowDiffers(snapshot[idx], row) {
			result.Unchanged++
			metrics.RecordGameOutcome("unchanged")
			log.Debug().Str("app_id", game.Key()).Msg("Row up to date")
			return snapshot, nil
		}

		rangeAddress := sheets.RowRange(sheet, idx+1)
		if err := m.gateway.Write(ctx, rangeAddress, []models.Row{row}); err != nil {
			return snapshot, fmt.Errorf("failed to update sheet row for app %s: %w", game.Key(), err)
		}
		snapshot[idx] = row
		result.Updated++
		metrics.RecordGameOutcome("updated")
		log.Info().Str("range", rangeAddress).Msgf("[%d/%d] Updated %s", i+1, total, game.Name)
		return snapshot, nil
	}

	snapshot = append(snapshot, row)
	rangeAddress := sheets.RowRange(sheet, len(snapshot))
	if err := m.gateway.Write(ctx, rangeAddress, []models.Row{row}); err != nil {
		return snapshot, fmt.Errorf("failed to append sheet row for app %s: %w", game.Key(), err)
	}
	result.Inserted++
	metrics.RecordGameOutcome("inserted")
	log.Info().Str("range", rangeAddress).Msgf("[%d/%d] Added %s", i+1, total, game.Name)
	return snapshot, nil
}

// finish stamps the duration, records metrics and logs the outcome.
func (m *Manager) finish(ctx context.Context, result *RunResult, start time.Time, err error) (*RunResult, error) {
	result.Duration = m.now().Sub(start)
	metrics.RecordSyncOperation(result.Duration, result.Processed(), err)

	log := logging.Ctx(ctx)
	if err != nil {
		log.Error().Err(err).Dur("elapsed", result.Duration).Msg("Sync failed")
		return result, err
	}

	log.Info().
		Int("fetched", result.Fetched).
		Int("skipped", result.Skipped).
		Int("cache_hits", result.CacheHits).
		Int("cache_misses", result.CacheMisses).
		Int("inserted", result.Inserted).
		Int("updated", result.Updated).
		Int("unchanged", result.Unchanged).
		Msgf("Update completed in %s", formatElapsed(result.Duration))
	return result, nil
}
