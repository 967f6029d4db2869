// Steamsheet - Steam Library Sync to Google Sheets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steamsheet

/*
Package cache persists HowLongToBeat completion times between runs.

The cache is a single JSON object keyed by Steam app id:

	{
	    "620": {
	        "name": "Portal 2",
	        "playtime": 12.5,
	        "achievements": 66.67,
	        "completion_time": {
	            "main_story": 8.5,
	            "completionist": 22,
	            "all_styles": 12
	        },
	        "last_updated": "2024-03-09 14:05:07"
	    }
	}

Unavailable values are stored as the string "N/A". Entries are never
pruned: games that leave the library keep their entry.

Load tolerates a missing or corrupt file by starting from an empty cache.
Save rewrites the whole file through a temporary sibling and a rename.
*/
package cache
