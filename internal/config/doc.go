// Steamsheet - Steam Library Sync to Google Sheets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steamsheet

/*
Package config provides centralized configuration management for Steamsheet.

Configuration is loaded once at startup with Koanf v2 from three layers
(highest priority wins):

 1. Environment variables
 2. Optional YAML file (CONFIG_PATH, steamsheet.yaml, config.yaml)
 3. Built-in defaults

# Environment Variables

Steam:
  - STEAM_API_KEY: Steam Web API key (required)
  - STEAM_ID: SteamID64 of the library owner (required)
  - STEAM_BASE_URL: API base URL (default: https://api.steampowered.com)
  - STEAM_STORE_URL: Store base URL used for title links (default: https://store.steampowered.com)
  - STEAM_REQUESTS_PER_SECOND: Request pacing (default: 4)

HowLongToBeat:
  - HLTB_BASE_URL: Site base URL (default: https://howlongtobeat.com)
  - HLTB_SEARCH_PATH: Fallback search endpoint (default: /api/search)
  - HLTB_DISCOVER_ENDPOINT: Read the search endpoint from the site bundle (default: true)

Google Sheets:
  - SPREADSHEET_ID: Target spreadsheet (required)
  - SHEET_RANGE: Sheet (tab) name (required)
  - GOOGLE_CREDENTIALS: Service account key file (default: Google_Credentials.json)
  - SHEETS_WRITE_ATTEMPTS: Attempts per write (default: 10)
  - SHEETS_WRITE_RETRY_DELAY: Fixed delay between attempts (default: 5s)

Local state:
  - CACHE_PATH: Completion-time cache file (default: SGL_Cache.json)
  - SYNC_GAME_DELAY: Fixed pause after each game (default: 1s)
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER, LOG_FILE (default file: SGL_Logs.log)
  - METRICS_TEXTFILE: Write Prometheus metrics here at exit (default: disabled)

# Example config file

	steam:
	  api_key: "XXXXXXXXXXXXXXXXXXXXXXXXXXXXXXXX"
	  steam_id: "76561198000000000"
	sheets:
	  spreadsheet_id: "1AbC..."
	  range: "Games"
	sync:
	  game_delay: 1s
*/
package config
