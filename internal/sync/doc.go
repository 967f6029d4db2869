// Steamsheet - Steam Library Sync to Google Sheets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steamsheet

/*
Package sync reconciles a Steam library into a Google Sheets table.

A run reads the sheet and the completion-time cache once, fetches the owned
games from the Steam Web API, and for each game either reuses cached
HowLongToBeat estimates or looks them up, then writes only the rows whose
values changed.

Key Components:

  - Manager: Sequential reconciliation of library, cache and sheet
  - SteamClient: Owned games and per-game achievement completion
  - HLTBClient: HowLongToBeat search with endpoint discovery (colly)
  - Circuit Breaker: One gobreaker instance per remote service
  - Rate Limiting: x/time/rate pacing and HTTP 429 backoff

Cache Freshness:

A cached entry is reused only when both playtime and achievement completion
still equal the freshly fetched values. Any difference triggers a new lookup,
a wholesale replacement of the entry and an immediate save of the whole
cache.

Row Diff:

Rows are matched by the App ID cell. Playtime, achievements and the three
completion estimates are compared after padding the existing row to seven
cells; the achievements cell ignores a trailing "%" and numeric cells compare
by value. Unchanged rows cause no write, so a second run without upstream
changes issues no writes at all.

Usage Example:

	cfg, err := config.Load()
	if err != nil {
	    return err
	}
	gateway, err := sheets.New(ctx, &cfg.Sheets)
	if err != nil {
	    return err
	}

	manager := sync.NewManager(
	    sync.NewSteamClient(&cfg.Steam),
	    sync.NewHLTBClient(&cfg.HLTB),
	    cache.NewStore(cfg.Cache.Path),
	    gateway,
	    cfg,
	)
	result, err := manager.Run(ctx)

Fault Tolerance:

  - Steam and HLTB reads fail soft: errors become "N/A" values, never a failed run
  - Circuit Breaker: opens at 60% failures over 10+ requests, probes after 2 minutes
  - Rate Limiting: exponential backoff for HTTP 429, honoring Retry-After
  - Sheet writes are retried by the gateway; exhausted retries end the run

Metrics:

  - steamsheet_sync_duration_seconds: Run latency
  - steamsheet_sync_game_outcomes_total: inserted / updated / unchanged / skipped
  - steamsheet_cache_hits_total, steamsheet_cache_misses_total
  - steamsheet_circuit_breaker_state: per breaker (closed/half-open/open)

See Also:

  - internal/sheets: Spreadsheet gateway and retry policy
  - internal/cache: Completion-time cache file
  - internal/models: GameRecord, Measure and Row
*/
package sync
