// Steamsheet - Steam Library Sync to Google Sheets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steamsheet

package sync

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/tomtom215/steamsheet/internal/models"
)

// mutableColumns are the cells compared when deciding whether a row needs a rewrite.
var mutableColumns = []int{
	models.ColPlaytime,
	models.ColAchievements,
	models.ColMainStory,
	models.ColAllStyles,
	models.ColCompletionist,
}

// buildRow renders one game as a spreadsheet row.
func buildRow(storeURL string, game models.GameRecord, completion models.CompletionTime) models.Row {
	return models.Row{
		game.Key(),
		hyperlink(storeAppURL(storeURL, game.ID), game.Name),
		models.FormatNumber(game.Playtime),
		game.Achievements.Percent(),
		completion.MainStory.String(),
		completion.AllStyles.String(),
		completion.Completionist.String(),
	}
}

// storeAppURL returns the Steam store page of appID.
func storeAppURL(storeURL string, appID int64) string {
	return fmt.Sprintf("%s/app/%d", strings.TrimRight(storeURL, "/"), appID)
}

// hyperlink builds a HYPERLINK formula. Double quotes inside either
// argument are doubled, as the formula language requires.
func hyperlink(target, label string) string {
	escape := func(s string) string { return strings.ReplaceAll(s, `"`, `""`) }
	return fmt.Sprintf(`=HYPERLINK("%s", "%s")`, escape(target), escape(label))
}

// findRow returns the index of the first row whose App ID cell equals key,
// or -1.
func findRow(snapshot []models.Row, key string) int {
	for i, row := range snapshot {
		if row.Cell(models.ColAppID) == key {
			return i
		}
	}
	return -1
}

// rowDiffers reports whether any mutable cell of existing differs from fresh.
// existing is padded to the full width first. The achievements cell ignores
// one trailing "%" on either side, and numeric cells compare by value so
// "12.0" equals "12". "N/A" compares literally.
func rowDiffers(existing, fresh models.Row) bool {
	existing = existing.Padded()
	for _, col := range mutableColumns {
		have, want := existing.Cell(col), fresh.Cell(col)
		if col == models.ColAchievements {
			have = strings.TrimSuffix(strings.TrimSpace(have), "%")
			want = strings.TrimSuffix(want, "%")
		}
		if models.CanonicalCell(have) != models.CanonicalCell(want) {
			return true
		}
	}
	return false
}

// formatElapsed renders a run duration as "X min. Y sec.".
func formatElapsed(d time.Duration) string {
	if d < 0 {
		d = 0
	}
	minutes := int(d / time.Minute)
	seconds := int((d % time.Minute) / time.Second)
	return fmt.Sprintf("%d min. %d sec.", minutes, seconds)
}

// sleepContext blocks for d or until ctx is done.
func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
