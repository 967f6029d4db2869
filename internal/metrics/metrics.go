// Steamsheet - Steam Library Sync to Google Sheets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steamsheet

package metrics

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for a sync run:
// - Run duration and per-game outcomes
// - Completion-time cache efficiency
// - Remote API latency (Steam, HLTB, Google Sheets)
// - Circuit breaker state

var (
	// Sync Metrics
	SyncDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "steamsheet_sync_duration_seconds",
			Help:    "Duration of a full library sync in seconds",
			Buckets: []float64{1, 5, 15, 30, 60, 120, 300, 600, 1200, 3600},
		},
	)

	SyncGamesProcessed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "steamsheet_sync_games_processed_total",
			Help: "Total number of owned games processed",
		},
	)

	SyncGameOutcomes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "steamsheet_sync_game_outcomes_total",
			Help: "Per-game reconciliation outcomes",
		},
		[]string{"outcome"}, // "inserted", "updated", "unchanged", "skipped"
	)

	SyncErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "steamsheet_sync_errors_total",
			Help: "Total number of failed sync runs",
		},
		[]string{"error_type"},
	)

	SyncLastSuccess = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "steamsheet_sync_last_success_timestamp",
			Help: "Unix timestamp of the last successful sync",
		},
	)

	// Completion Cache Metrics
	CacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "steamsheet_cache_hits_total",
			Help: "Games whose cached entry was still fresh",
		},
	)

	CacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "steamsheet_cache_misses_total",
			Help: "Games that required a completion-time lookup",
		},
	)

	CacheSaves = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "steamsheet_cache_saves_total",
			Help: "Cache file writes",
		},
		[]string{"result"}, // "success", "failure"
	)

	CacheLoadFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "steamsheet_cache_load_failures_total",
			Help: "Cache loads that fell back to an empty cache",
		},
		[]string{"reason"}, // "missing", "corrupt", "io"
	)

	CacheEntries = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "steamsheet_cache_entries",
			Help: "Number of entries in the completion cache",
		},
	)

	// Remote API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "steamsheet_api_requests_total",
			Help: "Total number of outbound API requests",
		},
		[]string{"service", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "steamsheet_api_request_duration_seconds",
			Help:    "Outbound API request latency in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service"},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "steamsheet_api_rate_limit_hits_total",
			Help: "Responses with HTTP 429 from remote APIs",
		},
		[]string{"service"},
	)

	// HowLongToBeat Metrics
	HLTBLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "steamsheet_hltb_lookups_total",
			Help: "Completion-time lookups by result",
		},
		[]string{"result"}, // "found", "not_found", "error"
	)

	HLTBEndpointDiscoveries = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "steamsheet_hltb_endpoint_discoveries_total",
			Help: "Search endpoint discovery attempts",
		},
		[]string{"result"}, // "discovered", "fallback"
	)

	// Google Sheets Metrics
	SheetWrites = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "steamsheet_sheet_writes_total",
			Help: "Row writes to the spreadsheet",
		},
		[]string{"result"}, // "success", "failure"
	)

	SheetWriteRetries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "steamsheet_sheet_write_retries_total",
			Help: "Write attempts retried after a transient error",
		},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "steamsheet_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "steamsheet_circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "steamsheet_circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "steamsheet_circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// System Metrics
	AppInfo = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "steamsheet_app_info",
			Help: "Application version and build information",
		},
		[]string{"version", "go_version"},
	)
)

// RecordSyncOperation records a finished sync run
func RecordSyncOperation(duration time.Duration, gamesProcessed int, err error) {
	SyncDuration.Observe(duration.Seconds())
	SyncGamesProcessed.Add(float64(gamesProcessed))
	if err != nil {
		SyncErrors.WithLabelValues(categorizeError(err)).Inc()
		return
	}
	SyncLastSuccess.Set(float64(time.Now().Unix()))
}

// categorizeError maps an error message to a bounded label value.
func categorizeError(err error) string {
	msg := strings.ToLower(err.Error())
	switch {
	case msg == "":
		return "unknown"
	case strings.Contains(msg, "steam"):
		return "steam_api"
	case strings.Contains(msg, "sheet"):
		return "sheets_api"
	case strings.Contains(msg, "cache"):
		return "cache"
	case strings.Contains(msg, "context canceled"), strings.Contains(msg, "deadline exceeded"):
		return "canceled"
	default:
		return "other"
	}
}

// RecordGameOutcome records how one game was reconciled
func RecordGameOutcome(outcome string) {
	SyncGameOutcomes.WithLabelValues(outcome).Inc()
}

// RecordAPIRequest records an outbound API request metric
func RecordAPIRequest(service string, statusCode int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(service, strconv.Itoa(statusCode)).Inc()
	APIRequestDuration.WithLabelValues(service).Observe(duration.Seconds())
	if statusCode == 429 {
		APIRateLimitHits.WithLabelValues(service).Inc()
	}
}

// RecordCacheLookup records a cache hit or miss
func RecordCacheLookup(hit bool) {
	if hit {
		CacheHits.Inc()
	} else {
		CacheMisses.Inc()
	}
}

// RecordCacheSave records a cache file write
func RecordCacheSave(entries int, err error) {
	if err != nil {
		CacheSaves.WithLabelValues("failure").Inc()
		return
	}
	CacheSaves.WithLabelValues("success").Inc()
	CacheEntries.Set(float64(entries))
}

// RecordSheetWrite records a row write
func RecordSheetWrite(err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	SheetWrites.WithLabelValues(result).Inc()
}

// WriteTextfile writes every registered collector to path in the Prometheus
// text format, for the node_exporter textfile collector.
func WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return fmt.Errorf("write metrics textfile: %w", err)
	}
	return nil
}
