// Steamsheet - Steam Library Sync to Google Sheets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steamsheet

package hltb

import (
	"strings"
)

// SearchRequest is the JSON body POSTed to the HowLongToBeat search endpoint.
type SearchRequest struct {
	SearchType    string        `json:"searchType"`
	SearchTerms   []string      `json:"searchTerms"`
	SearchPage    int           `json:"searchPage"`
	Size          int           `json:"size"`
	SearchOptions SearchOptions `json:"searchOptions"`
	UseCache      bool          `json:"useCache"`
}

type SearchOptions struct {
	Games      GameOptions `json:"games"`
	Users      UserOptions `json:"users"`
	Lists      ListOptions `json:"lists"`
	Filter     string      `json:"filter"`
	Sort       int         `json:"sort"`
	Randomizer int         `json:"randomizer"`
}

type GameOptions struct {
	UserID        int       `json:"userId"`
	Platform      string    `json:"platform"`
	SortCategory  string    `json:"sortCategory"`
	RangeCategory string    `json:"rangeCategory"`
	RangeTime     RangeTime `json:"rangeTime"`
	Gameplay      Gameplay  `json:"gameplay"`
	RangeYear     RangeYear `json:"rangeYear"`
	Modifier      string    `json:"modifier"`
}

type RangeTime struct {
	Min int `json:"min"`
	Max int `json:"max"`
}

type Gameplay struct {
	Perspective string `json:"perspective"`
	Flow        string `json:"flow"`
	Genre       string `json:"genre"`
	Difficulty  string `json:"difficulty"`
}

type RangeYear struct {
	Max string `json:"max"`
	Min string `json:"min"`
}

type UserOptions struct {
	ID           string `json:"id,omitempty"`
	SortCategory string `json:"sortCategory"`
}

type ListOptions struct {
	SortCategory string `json:"sortCategory"`
}

// NewSearchRequest builds a first-page game search for title. Search terms
// are the title split on whitespace, as the site's own search box does.
func NewSearchRequest(title string, size int) SearchRequest {
	return SearchRequest{
		SearchType:  "games",
		SearchTerms: strings.Fields(title),
		SearchPage:  1,
		Size:        size,
		SearchOptions: SearchOptions{
			Games: GameOptions{
				SortCategory:  "popular",
				RangeCategory: "main",
			},
			Users: UserOptions{SortCategory: "postcount"},
			Lists: ListOptions{SortCategory: "follows"},
		},
		UseCache: true,
	}
}

// SearchResponse is the search endpoint's reply.
type SearchResponse struct {
	Color       string       `json:"color"`
	Title       string       `json:"title"`
	Category    string       `json:"category"`
	Count       int          `json:"count"`
	PageCurrent int          `json:"pageCurrent"`
	PageTotal   int          `json:"pageTotal"`
	PageSize    int          `json:"pageSize"`
	Data        []GameResult `json:"data"`
}

// GameResult is one ranked match. Completion times are in seconds; 0 means
// HowLongToBeat has no data for that category.
type GameResult struct {
	GameID          int64   `json:"game_id"`
	GameName        string  `json:"game_name"`
	GameAlias       string  `json:"game_alias"`
	GameType        string  `json:"game_type"`
	CompMain        float64 `json:"comp_main"`
	CompPlus        float64 `json:"comp_plus"`
	Comp100         float64 `json:"comp_100"`
	CompAll         float64 `json:"comp_all"`
	ProfilePlatform string  `json:"profile_platform"`
	ReleaseWorld    int     `json:"release_world"`
	ReviewScore     int     `json:"review_score"`
}

// Endpoint is the search endpoint read from the site's JavaScript bundle.
// The path and key change with site deploys.
type Endpoint struct {
	Path string // e.g. "/api/search"
	Key  string // concatenated key suffix; empty for the static fallback
}

// URL joins the endpoint onto baseURL.
func (e Endpoint) URL(baseURL string) string {
	u := strings.TrimRight(baseURL, "/") + "/" + strings.Trim(e.Path, "/")
	if e.Key != "" {
		u += "/" + e.Key
	}
	return u
}

// Discovered reports whether the endpoint carries a key from discovery.
func (e Endpoint) Discovered() bool {
	return e.Key != ""
}
