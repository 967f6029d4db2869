// Steamsheet - Steam Library Sync to Google Sheets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steamsheet

package models

import (
	"testing"
)

func TestRowPaddedAndTruncated(t *testing.T) {
	t.Parallel()

	short := Row{"10", "title"}
	padded := short.Padded()
	if len(padded) != RowWidth {
		t.Fatalf("Padded() len = %d, want %d", len(padded), RowWidth)
	}
	if padded[ColPlaytime] != "" || padded[ColAppID] != "10" {
		t.Errorf("Padded() = %q", padded)
	}
	if len(short) != 2 {
		t.Error("Padded() must not modify the receiver")
	}

	wide := Row{"1", "2", "3", "4", "5", "6", "7", "8", "9"}
	if got := wide.Truncated(); len(got) != RowWidth || got[6] != "7" {
		t.Errorf("Truncated() = %q", got)
	}
	if got := short.Truncated(); len(got) != 2 {
		t.Errorf("Truncated() on a short row = %q, want unchanged", got)
	}
}

func TestRowHeader(t *testing.T) {
	t.Parallel()

	header := HeaderRow()
	if len(header) != RowWidth {
		t.Fatalf("HeaderRow() len = %d", len(header))
	}
	if !header.IsHeader() {
		t.Error("HeaderRow().IsHeader() = false")
	}
	if header[ColAllStyles] != "All Styles" || header[ColCompletionist] != "Completionist" {
		t.Errorf("HeaderRow() column order = %q", header)
	}
	if (Row{}).IsHeader() {
		t.Error("empty row reported as header")
	}
	if got := (Row{}).Cell(3); got != "" {
		t.Errorf("Cell() out of range = %q", got)
	}
}

func TestCanonicalCell(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  string
	}{
		{"12.0", "12"},
		{"12", "12"},
		{" 5.50 ", "5.5"},
		{"N/A", "N/A"},
		{"", ""},
		{"42%", "42%"},
		{"=HYPERLINK(\"x\", \"y\")", "=HYPERLINK(\"x\", \"y\")"},
	}

	for _, tt := range tests {
		if got := CanonicalCell(tt.input); got != tt.want {
			t.Errorf("CanonicalCell(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
