// Steamsheet - Steam Library Sync to Google Sheets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steamsheet

package models

import (
	"strings"
)

// RowWidth is the fixed number of cells in a spreadsheet row.
const RowWidth = 7

// Column positions within a Row.
const (
	ColAppID = iota
	ColTitle
	ColPlaytime
	ColAchievements
	ColMainStory
	ColAllStyles
	ColCompletionist
)

// HeaderMarker is the expected content of cell A1.
const HeaderMarker = "App ID"

// Row is one spreadsheet row as text cells.
type Row []string

// HeaderRow returns the table header.
func HeaderRow() Row {
	return Row{
		HeaderMarker,
		"Title",
		"Playing time (hours)",
		"Achievements (%)",
		"Main Story",
		"All Styles",
		"Completionist",
	}
}

// Cell returns the cell at i, or "" when the row is shorter.
func (r Row) Cell(i int) string {
	if i < 0 || i >= len(r) {
		return ""
	}
	return r[i]
}

// Padded returns a copy of the row with exactly RowWidth cells.
// Short rows gain empty cells; long rows are clipped.
func (r Row) Padded() Row {
	out := make(Row, RowWidth)
	copy(out, r)
	return out
}

// Truncated returns the row clipped to RowWidth cells. Shorter rows are
// returned unchanged.
func (r Row) Truncated() Row {
	if len(r) <= RowWidth {
		return r
	}
	return r[:RowWidth]
}

// IsHeader reports whether the row starts with the header marker.
func (r Row) IsHeader() bool {
	return r.Cell(ColAppID) == HeaderMarker
}

// CanonicalCell normalizes a numeric cell so that "12.0", " 12" and "12"
// compare equal. Non-numeric text, including "N/A", is returned trimmed.
func CanonicalCell(s string) string {
	s = strings.TrimSpace(s)
	if m := ParseMeasure(s); m.IsAvailable() && !strings.HasSuffix(s, "%") {
		return m.String()
	}
	return s
}
