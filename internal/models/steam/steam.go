// Steamsheet - Steam Library Sync to Google Sheets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steamsheet

package steam

// OwnedGamesResponse is the body of IPlayerService/GetOwnedGames/v1.
type OwnedGamesResponse struct {
	Response OwnedGamesData `json:"response"`
}

// OwnedGamesData holds the owned games. Games is nil when the key is
// absent, which Steam returns for private profiles.
type OwnedGamesData struct {
	GameCount int         `json:"game_count"`
	Games     []OwnedGame `json:"games"`
}

// OwnedGame is one entry of GetOwnedGames with include_appinfo=1.
type OwnedGame struct {
	AppID                  int64   `json:"appid"`
	Name                   *string `json:"name,omitempty"`
	PlaytimeForever        int     `json:"playtime_forever"` // minutes
	Playtime2Weeks         int     `json:"playtime_2weeks,omitempty"`
	PlaytimeWindowsForever int     `json:"playtime_windows_forever,omitempty"`
	PlaytimeMacForever     int     `json:"playtime_mac_forever,omitempty"`
	PlaytimeLinuxForever   int     `json:"playtime_linux_forever,omitempty"`
	ImgIconURL             string  `json:"img_icon_url,omitempty"`
	HasCommunityStats      bool    `json:"has_community_visible_stats,omitempty"`
	RtimeLastPlayed        int64   `json:"rtime_last_played,omitempty"`
}

// DisplayName returns the game name, or "Unknown" when Steam omitted it.
func (g OwnedGame) DisplayName() string {
	if g.Name == nil {
		return "Unknown"
	}
	return *g.Name
}

// PlayerAchievementsResponse is the body of ISteamUserStats/GetPlayerAchievements/v1.
type PlayerAchievementsResponse struct {
	PlayerStats PlayerStats `json:"playerstats"`
}

// PlayerStats holds one player's achievements for one app.
// Games without achievements report success=true and omit the list.
type PlayerStats struct {
	SteamID      string        `json:"steamID"`
	GameName     string        `json:"gameName"`
	Achievements []Achievement `json:"achievements"`
	Success      bool          `json:"success"`
	Error        string        `json:"error,omitempty"`
}

// Achievement is one achievement's unlock state.
type Achievement struct {
	APIName    string `json:"apiname"`
	Achieved   int    `json:"achieved"` // 1 when unlocked
	UnlockTime int64  `json:"unlocktime"`
}

// Counts returns the number of unlocked achievements and the total.
func (p PlayerStats) Counts() (achieved, total int) {
	for _, a := range p.Achievements {
		if a.Achieved == 1 {
			achieved++
		}
	}
	return achieved, len(p.Achievements)
}
