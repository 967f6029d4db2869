// Steamsheet - Steam Library Sync to Google Sheets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steamsheet

package metrics

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

// TestRecordSyncOperation tests sync run metric recording
func TestRecordSyncOperation(t *testing.T) {
	tests := []struct {
		name      string
		errorType string
		err       error
	}{
		{"steam failure", "steam_api", errors.New("fetch owned games: Steam API returned 403")},
		{"sheets failure", "sheets_api", errors.New("write Sheet1!A2:G2: googleapi: Error 500")},
		{"canceled", "canceled", errors.New("context canceled")},
		{"other", "other", errors.New("boom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := testutil.ToFloat64(SyncErrors.WithLabelValues(tt.errorType))
			RecordSyncOperation(time.Second, 3, tt.err)
			after := testutil.ToFloat64(SyncErrors.WithLabelValues(tt.errorType))
			if after-before != 1 {
				t.Errorf("SyncErrors{%s} delta = %v, want 1", tt.errorType, after-before)
			}
		})
	}

	t.Run("success updates last success", func(t *testing.T) {
		processedBefore := testutil.ToFloat64(SyncGamesProcessed)
		RecordSyncOperation(2*time.Second, 5, nil)
		if got := testutil.ToFloat64(SyncGamesProcessed) - processedBefore; got != 5 {
			t.Errorf("SyncGamesProcessed delta = %v, want 5", got)
		}
		if testutil.ToFloat64(SyncLastSuccess) <= 0 {
			t.Error("SyncLastSuccess should be set after a successful sync")
		}
	})
}

func TestCategorizeError(t *testing.T) {
	t.Parallel()

	tests := []struct {
		msg  string
		want string
	}{
		{"", "unknown"},
		{"steam api returned 500", "steam_api"},
		{"SHEET write failed", "sheets_api"},
		{"save cache: disk full", "cache"},
		{"context deadline exceeded", "canceled"},
		{"unexpected", "other"},
	}

	for _, tt := range tests {
		if got := categorizeError(errors.New(tt.msg)); got != tt.want {
			t.Errorf("categorizeError(%q) = %q, want %q", tt.msg, got, tt.want)
		}
	}
}

func TestRecordAPIRequest(t *testing.T) {
	okBefore := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("steam", "200"))
	limitedBefore := testutil.ToFloat64(APIRateLimitHits.WithLabelValues("steam"))

	RecordAPIRequest("steam", 200, 10*time.Millisecond)
	RecordAPIRequest("steam", 429, 5*time.Millisecond)

	if got := testutil.ToFloat64(APIRequestsTotal.WithLabelValues("steam", "200")) - okBefore; got != 1 {
		t.Errorf("APIRequestsTotal{steam,200} delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(APIRateLimitHits.WithLabelValues("steam")) - limitedBefore; got != 1 {
		t.Errorf("APIRateLimitHits{steam} delta = %v, want 1", got)
	}
}

func TestCacheMetrics(t *testing.T) {
	hitsBefore := testutil.ToFloat64(CacheHits)
	missesBefore := testutil.ToFloat64(CacheMisses)
	failBefore := testutil.ToFloat64(CacheSaves.WithLabelValues("failure"))

	RecordCacheLookup(true)
	RecordCacheLookup(true)
	RecordCacheLookup(false)
	RecordCacheSave(7, nil)
	RecordCacheSave(0, errors.New("read-only file system"))

	if got := testutil.ToFloat64(CacheHits) - hitsBefore; got != 2 {
		t.Errorf("CacheHits delta = %v, want 2", got)
	}
	if got := testutil.ToFloat64(CacheMisses) - missesBefore; got != 1 {
		t.Errorf("CacheMisses delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(CacheSaves.WithLabelValues("failure")) - failBefore; got != 1 {
		t.Errorf("CacheSaves{failure} delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(CacheEntries); got != 7 {
		t.Errorf("CacheEntries = %v, want 7 (failed save must not reset it)", got)
	}
}

func TestRecordSheetWrite(t *testing.T) {
	okBefore := testutil.ToFloat64(SheetWrites.WithLabelValues("success"))
	failBefore := testutil.ToFloat64(SheetWrites.WithLabelValues("failure"))

	RecordSheetWrite(nil)
	RecordSheetWrite(errors.New("quota"))

	if got := testutil.ToFloat64(SheetWrites.WithLabelValues("success")) - okBefore; got != 1 {
		t.Errorf("SheetWrites{success} delta = %v, want 1", got)
	}
	if got := testutil.ToFloat64(SheetWrites.WithLabelValues("failure")) - failBefore; got != 1 {
		t.Errorf("SheetWrites{failure} delta = %v, want 1", got)
	}
}

// TestConcurrentMetricRecording tests thread-safety of metric recording
func TestConcurrentMetricRecording(t *testing.T) {
	before := testutil.ToFloat64(SyncGameOutcomes.WithLabelValues("unchanged"))

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			RecordGameOutcome("unchanged")
		}()
	}
	wg.Wait()

	if got := testutil.ToFloat64(SyncGameOutcomes.WithLabelValues("unchanged")) - before; got != 50 {
		t.Errorf("SyncGameOutcomes{unchanged} delta = %v, want 50", got)
	}
}

func TestWriteTextfile(t *testing.T) {
	RecordGameOutcome("inserted")

	path := filepath.Join(t.TempDir(), "steamsheet.prom")
	if err := WriteTextfile(path); err != nil {
		t.Fatalf("WriteTextfile() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read textfile: %v", err)
	}
	if !strings.Contains(string(data), "steamsheet_sync_game_outcomes_total") {
		t.Errorf("textfile missing steamsheet_sync_game_outcomes_total:\n%s", data)
	}
}

func TestWriteTextfile_BadPath(t *testing.T) {
	t.Parallel()

	err := WriteTextfile(filepath.Join(t.TempDir(), "missing", "dir", "out.prom"))
	if err == nil {
		t.Fatal("WriteTextfile() expected error for missing directory")
	}
}
