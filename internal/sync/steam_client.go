// Steamsheet - Steam Library Sync to Google Sheets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steamsheet

/*
steam_client.go - Steam Web API Client

SteamClient fetches the owned-games list and per-game achievement
completion for one Steam account.

Resilience Mechanisms:
  - Pacing: golang.org/x/time/rate limiter shared by every Steam request
  - Rate Limiting: Exponential backoff on HTTP 429, honoring Retry-After
  - Circuit Breaker: "steam-api" around per-game achievement calls
  - Fail soft: a failed owned-games call yields an empty library; a failed
    achievements call yields "N/A" for that game only

The API key is sent as a query parameter; every URL that reaches an error
or a log line is redacted first.
*/

//nolint:staticcheck // File documentation, not package doc
package sync

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/time/rate"

	"github.com/tomtom215/steamsheet/internal/config"
	"github.com/tomtom215/steamsheet/internal/logging"
	"github.com/tomtom215/steamsheet/internal/models"
	"github.com/tomtom215/steamsheet/internal/models/steam"
)

// achievementsResult is what the breaker-protected call returns. HTTP
// statuses below 500 are a successful round trip for breaker purposes:
// Steam answers 400/403 for apps without stats or private profiles.
type achievementsResult struct {
	status int
	stats  *steam.PlayerStats
}

// SteamClient handles communication with the Steam Web API.
//
// Thread Safety: Safe for concurrent use, although the sync calls it sequentially.
type SteamClient struct {
	baseURL   string
	apiKey    string
	steamID   string
	transport *apiTransport
	breaker   *circuitBreaker[*achievementsResult]
}

// NewSteamClient creates a Steam Web API client from configuration.
func NewSteamClient(cfg *config.SteamConfig) *SteamClient {
	return newSteamClient(cfg, defaultBreakerSettings())
}

func newSteamClient(cfg *config.SteamConfig, settings breakerSettings) *SteamClient {
	var limiter *rate.Limiter
	if cfg.RequestsPerSecond > 0 {
		limiter = rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), 1)
	}

	return &SteamClient{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		apiKey:  cfg.APIKey,
		steamID: cfg.SteamID,
		transport: &apiTransport{
			service:        "steam",
			client:         &http.Client{Timeout: cfg.Timeout},
			limiter:        limiter,
			maxRetries:     cfg.MaxRetries,
			retryBaseDelay: cfg.RetryBaseDelay,
		},
		breaker: newCircuitBreaker[*achievementsResult](steamBreakerName, settings),
	}
}

// ownedGamesURL builds the GetOwnedGames request URL.
func (c *SteamClient) ownedGamesURL() string {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("steamid", c.steamID)
	params.Set("include_played_free_games", "1")
	params.Set("include_appinfo", "1")
	params.Set("format", "json")
	return fmt.Sprintf("%s/IPlayerService/GetOwnedGames/v1/?%s", c.baseURL, params.Encode())
}

// achievementsURL builds the GetPlayerAchievements request URL.
func (c *SteamClient) achievementsURL(appID int64) string {
	params := url.Values{}
	params.Set("appid", strconv.FormatInt(appID, 10))
	params.Set("key", c.apiKey)
	params.Set("steamid", c.steamID)
	return fmt.Sprintf("%s/ISteamUserStats/GetPlayerAchievements/v1/?%s", c.baseURL, params.Encode())
}

// GetOwnedGames retrieves the raw owned-games list.
// Returns an error on transport failure, non-200 status, undecodable body,
// or a response without a games array.
func (c *SteamClient) GetOwnedGames(ctx context.Context) ([]steam.OwnedGame, error) {
	resp, err := c.transport.doRequestWithRateLimit(ctx, getRequest(c.ownedGamesURL()))
	if err != nil {
		return nil, fmt.Errorf("failed to get owned games: %w", err)
	}
	defer resp.Body.Close()

	logging.Info().Int("status", resp.StatusCode).Msg("Response received from Steam API")

	if resp.StatusCode != http.StatusOK {
		body := readBodyForError(resp.Body)
		return nil, fmt.Errorf("owned games request failed with status %d: %s", resp.StatusCode, logging.RedactError(errors.New(string(body)), c.apiKey))
	}

	var result steam.OwnedGamesResponse
	if err := decodeJSONResponse(resp, &result); err != nil {
		return nil, fmt.Errorf("failed to decode owned games response: %w", err)
	}
	if result.Response.Games == nil {
		return nil, errors.New("owned games response has no games array (is the profile private?)")
	}

	return result.Response.Games, nil
}

// FetchGames returns the owned library with playtime and achievement
// completion, in API order. It never fails: an owned-games error is logged
// and yields an empty slice, and a failed achievements call degrades only
// that game's achievements to unavailable.
func (c *SteamClient) FetchGames(ctx context.Context) []models.GameRecord {
	logging.Info().Msg("Sending a request to the Steam API to get a list of games...")

	owned, err := c.GetOwnedGames(ctx)
	if err != nil {
		logging.Error().Str("error", logging.RedactError(err, c.apiKey)).Msg("Failed to fetch Steam library")
		return []models.GameRecord{}
	}

	total := len(owned)
	logging.Info().Int("games", total).Msgf("Found %d games.", total)

	records := make([]models.GameRecord, 0, total)
	for i, game := range owned {
		if ctx.Err() != nil {
			logging.Warn().Int("fetched", len(records)).Msg("Library fetch interrupted")
			break
		}

		name := game.DisplayName()
		logging.Info().Msgf("[%d/%d] Game Processing: %s", i+1, total, name)

		record := models.GameRecord{
			ID:           game.AppID,
			Name:         name,
			Playtime:     models.Round(float64(game.PlaytimeForever)/60, 1),
			Achievements: models.Unavailable(),
		}
		if record.HasID() {
			record.Achievements = c.GetAchievements(ctx, game.AppID)
		}
		records = append(records, record)
	}

	return records
}

// GetAchievements returns the achievement completion percentage for appID.
// The value is available only when Steam answers 200 with success=true and
// a non-empty achievements list; zero unlocked achievements yield 0, not
// unavailable.
func (c *SteamClient) GetAchievements(ctx context.Context, appID int64) models.Measure {
	result, err := c.breaker.execute(func() (*achievementsResult, error) {
		return c.fetchAchievements(ctx, appID)
	})
	if err != nil {
		if isBreakerRejection(err) {
			logging.Warn().Int64("app_id", appID).Msg("Steam circuit open, achievements unavailable")
		} else {
			logging.Error().Int64("app_id", appID).Str("error", logging.RedactError(err, c.apiKey)).Msg("Error when obtaining achievements")
		}
		return models.Unavailable()
	}

	return achievementPercentage(result)
}

// fetchAchievements performs the HTTP round trip. Only transport failures,
// decode failures of a 200 body and 5xx statuses are errors.
func (c *SteamClient) fetchAchievements(ctx context.Context, appID int64) (*achievementsResult, error) {
	resp, err := c.transport.doRequestWithRateLimit(ctx, getRequest(c.achievementsURL(appID)))
	if err != nil {
		return nil, fmt.Errorf("failed to get achievements: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		body := readBodyForError(resp.Body)
		return nil, fmt.Errorf("achievements request failed with status %d: %s", resp.StatusCode, string(body))
	}
	if resp.StatusCode != http.StatusOK {
		logging.Debug().Int64("app_id", appID).Int("status", resp.StatusCode).Msg("No achievement data")
		return &achievementsResult{status: resp.StatusCode}, nil
	}

	var payload steam.PlayerAchievementsResponse
	if err := decodeJSONResponse(resp, &payload); err != nil {
		return nil, fmt.Errorf("failed to decode achievements response: %w", err)
	}
	return &achievementsResult{status: resp.StatusCode, stats: &payload.PlayerStats}, nil
}

// achievementPercentage maps a round trip to a Measure.
func achievementPercentage(result *achievementsResult) models.Measure {
	if result == nil || result.status != http.StatusOK || result.stats == nil || !result.stats.Success {
		return models.Unavailable()
	}
	achieved, total := result.stats.Counts()
	if total == 0 {
		return models.Unavailable()
	}
	return models.Available(models.Round(100*float64(achieved)/float64(total), 2))
}
