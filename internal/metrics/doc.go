// Steamsheet - Steam Library Sync to Google Sheets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steamsheet

/*
Package metrics provides Prometheus metrics collection for sync runs.

Steamsheet is a batch job, not a server, so there is no /metrics endpoint.
Collectors register on the default registry through promauto; when
metrics.textfile_path is configured, main calls WriteTextfile at exit and
node_exporter's textfile collector picks the file up.

# Available Metrics

Sync Metrics:
  - steamsheet_sync_duration_seconds: Full run duration (histogram)
  - steamsheet_sync_games_processed_total: Owned games processed (counter)
  - steamsheet_sync_game_outcomes_total: Labels: outcome (inserted, updated, unchanged, skipped)
  - steamsheet_sync_errors_total: Labels: error_type
  - steamsheet_sync_last_success_timestamp: Unix timestamp (gauge)

Cache Metrics:
  - steamsheet_cache_hits_total / steamsheet_cache_misses_total
  - steamsheet_cache_saves_total: Labels: result
  - steamsheet_cache_load_failures_total: Labels: reason
  - steamsheet_cache_entries (gauge)

API Metrics:
  - steamsheet_api_requests_total: Labels: service, status_code
  - steamsheet_api_request_duration_seconds: Labels: service
  - steamsheet_api_rate_limit_hits_total: Labels: service
  - steamsheet_hltb_lookups_total: Labels: result
  - steamsheet_hltb_endpoint_discoveries_total: Labels: result
  - steamsheet_sheet_writes_total: Labels: result
  - steamsheet_sheet_write_retries_total

Circuit Breaker Metrics:
  - steamsheet_circuit_breaker_state: Labels: name. Values: 0=closed, 1=half-open, 2=open
  - steamsheet_circuit_breaker_requests_total: Labels: name, result
  - steamsheet_circuit_breaker_consecutive_failures: Labels: name
  - steamsheet_circuit_breaker_state_transitions_total: Labels: name, from_state, to_state

# Usage

	start := time.Now()
	result, err := manager.Run(ctx)
	metrics.RecordSyncOperation(time.Since(start), result.Fetched, err)

All collectors are safe for concurrent use.
*/
package metrics
