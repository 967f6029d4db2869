// Steamsheet - Steam Library Sync to Google Sheets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steamsheet

// Package steam provides data models for Steam Web API responses.
//
// Only the two endpoints used by the library sync are modelled:
//
//   - OwnedGamesResponse: IPlayerService/GetOwnedGames/v1
//   - PlayerAchievementsResponse: ISteamUserStats/GetPlayerAchievements/v1
//
// Optional fields are pointers or carry omitempty so that "absent" can be
// told apart from a zero value where the sync logic depends on it.
package steam
