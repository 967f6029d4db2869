// Steamsheet - Steam Library Sync to Google Sheets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steamsheet

// Package logging provides centralized zerolog-based logging for Steamsheet.
//
// A single global logger is configured once from main and shared by every
// package. Console output is human-readable by default; when a log file is
// configured it is truncated at startup and receives the same events as
// bracketed text lines:
//
//	[2026-01-02 15:04:05] [INFO] Beginning of data processing...
//
// # Quick Start
//
//	if err := logging.Init(logging.Config{Level: "info", File: "SGL_Logs.log"}); err != nil {
//	    logging.Warn().Err(err).Msg("Log file unavailable, console only")
//	}
//	defer logging.Close()
//
//	ctx = logging.ContextWithNewRunID(ctx)
//	logging.Ctx(ctx).Info().Int("games", n).Msg("Found games")
//
// # Secrets
//
// Steam request URLs carry the API key in the query string. Use RedactURL or
// RedactError before logging anything derived from a request URL.
//
// # Best Practices
//
// Always terminate log chains with .Msg() or .Send():
//
//	logging.Info().Str("key", "value").Msg("message")  // Correct
//	logging.Info().Str("key", "value")                 // WRONG - log not emitted
package logging
