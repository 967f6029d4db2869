// Steamsheet - Steam Library Sync to Google Sheets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steamsheet

/*
Package sheets reads and writes the library table in Google Sheets.

The Gateway wraps the values resource of google.golang.org/api/sheets/v4,
authenticated with a service-account credentials file. Reads fail soft and
return an empty snapshot. Writes are sent with the USER_ENTERED input
option so HYPERLINK formulas and percentages are interpreted, and are
retried on transient failures by a RetryPolicy:

	policy := sheets.RetryPolicy{MaxAttempts: 10, Delay: 5 * time.Second}
	gw := sheets.NewWithValues(values, &cfg.Sheets, policy)
	err := gw.Write(ctx, sheets.RowRange("Games", 5), rows)

A write that still fails after the last attempt returns an error wrapping
ErrRetriesExhausted and the last API error.
*/
package sheets
