// Steamsheet - Steam Library Sync to Google Sheets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steamsheet

package main

import (
	"context"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/tomtom215/steamsheet/internal/cache"
	"github.com/tomtom215/steamsheet/internal/config"
	"github.com/tomtom215/steamsheet/internal/logging"
	"github.com/tomtom215/steamsheet/internal/metrics"
	"github.com/tomtom215/steamsheet/internal/sheets"
	"github.com/tomtom215/steamsheet/internal/sync"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	os.Exit(run())
}

// run performs one sync and returns the process exit code.
func run() int {
	// Load configuration first to get logging settings
	cfg, err := config.Load()
	if err != nil {
		// Default logger: config not yet available
		logging.Error().Err(err).Msg("Failed to load configuration")
		return 1
	}

	if err := logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
		Output:    os.Stderr,
		File:      cfg.Logging.File,
	}); err != nil {
		logging.Error().Err(err).Str("file", cfg.Logging.File).Msg("Failed to open log file")
		return 1
	}
	defer func() {
		if err := logging.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing log file")
		}
	}()

	metrics.AppInfo.WithLabelValues(version, runtime.Version()).Set(1)
	defer writeMetrics(cfg.Metrics.TextfilePath)

	logging.Info().
		Str("version", version).
		Str("spreadsheet", cfg.Sheets.SpreadsheetID).
		Str("range", cfg.Sheets.Range).
		Str("cache", cfg.Cache.Path).
		Msg("Configuration loaded")

	// SIGINT/SIGTERM stop the run between games
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	gateway, err := sheets.New(ctx, &cfg.Sheets)
	if err != nil {
		logging.Error().Err(err).Str("credentials", cfg.Sheets.CredentialsFile).Msg("Failed to initialize Google Sheets client")
		return 1
	}

	manager := sync.NewManager(
		sync.NewSteamClient(&cfg.Steam),
		sync.NewHLTBClient(&cfg.HLTB),
		cache.NewStore(cfg.Cache.Path),
		gateway,
		cfg,
	)

	// Run logs the failure and the elapsed time itself
	if _, err := manager.Run(ctx); err != nil {
		return 1
	}
	return 0
}

// writeMetrics exports every collector for the node_exporter textfile
// collector when a path is configured.
func writeMetrics(path string) {
	if path == "" {
		return
	}
	if err := metrics.WriteTextfile(path); err != nil {
		logging.Warn().Err(err).Str("path", path).Msg("Failed to write metrics textfile")
		return
	}
	logging.Debug().Str("path", path).Msg("Metrics textfile written")
}
