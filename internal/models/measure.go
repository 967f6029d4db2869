// Steamsheet - Steam Library Sync to Google Sheets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steamsheet

package models

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// NotAvailable is the text written for an unavailable measure, both in the
// spreadsheet and in the cache file.
const NotAvailable = "N/A"

// Measure is a numeric value that upstream may not provide: an achievement
// percentage or a completion time in hours. The zero value is Unavailable.
type Measure struct {
	value     float64
	available bool
}

// Available returns a Measure holding v.
func Available(v float64) Measure {
	return Measure{value: v, available: true}
}

// Unavailable returns a Measure with no value.
func Unavailable() Measure {
	return Measure{}
}

// IsAvailable reports whether the measure holds a value.
func (m Measure) IsAvailable() bool {
	return m.available
}

// Value returns the value and whether it is available.
func (m Measure) Value() (float64, bool) {
	return m.value, m.available
}

// Equal reports whether two measures hold the same value. Two unavailable
// measures are equal.
func (m Measure) Equal(other Measure) bool {
	if m.available != other.available {
		return false
	}
	return !m.available || m.value == other.value
}

// String renders the value in its shortest decimal form, or "N/A".
func (m Measure) String() string {
	if !m.available {
		return NotAvailable
	}
	return FormatNumber(m.value)
}

// Percent renders the value with a "%" suffix. Unavailable renders "N/A"
// without a suffix.
func (m Measure) Percent() string {
	if !m.available {
		return NotAvailable
	}
	return FormatNumber(m.value) + "%"
}

// MarshalJSON encodes an available measure as a JSON number and an
// unavailable one as the string "N/A".
func (m Measure) MarshalJSON() ([]byte, error) {
	if !m.available {
		return json.Marshal(NotAvailable)
	}
	if math.IsNaN(m.value) || math.IsInf(m.value, 0) {
		return nil, fmt.Errorf("measure value %v is not representable in JSON", m.value)
	}
	return []byte(FormatNumber(m.value)), nil
}

// UnmarshalJSON accepts a number, a numeric string, "N/A" or null.
// Any other string decodes as unavailable.
func (m *Measure) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*m = Unavailable()
		return nil
	}

	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("decode measure: %w", err)
		}
		*m = ParseMeasure(s)
		return nil
	}

	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("decode measure: %w", err)
	}
	*m = Available(v)
	return nil
}

// ParseMeasure reads a cell or cache string. A trailing "%" is ignored.
// Text that is not a finite number yields Unavailable.
func ParseMeasure(s string) Measure {
	s = strings.TrimSuffix(strings.TrimSpace(s), "%")
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return Unavailable()
	}
	return Available(v)
}

// FormatNumber renders v with the fewest digits that round-trip:
// 5.5 -> "5.5", 80 -> "80".
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Round rounds v half away from zero to the given number of decimal places.
func Round(v float64, places int) float64 {
	scale := math.Pow10(places)
	return math.Round(v*scale) / scale
}
