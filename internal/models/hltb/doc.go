// Steamsheet - Steam Library Sync to Google Sheets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steamsheet

// Package hltb provides data models for the HowLongToBeat search API.
//
// HowLongToBeat has no published API. These shapes mirror what the site's
// own frontend sends and receives, and Endpoint carries the rotating search
// path discovered from its JavaScript bundle.
package hltb
