// Steamsheet - Steam Library Sync to Google Sheets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steamsheet

/*
hltb_client.go - HowLongToBeat Client

HLTBClient resolves a game title to main-story, all-styles and
completionist estimates via the site's undocumented search endpoint.

Endpoint Discovery:
  - The search path and key are embedded in the site's Next.js _app bundle
    and rotate on deploys. The client reads them with colly once per run.
  - A 404 from a discovered endpoint invalidates it and retries once.
  - Discovery failure falls back to hltb.search_path.

Every failure mode degrades to an all-"N/A" CompletionTime. Resolve never
returns an error.
*/

//nolint:staticcheck // File documentation, not package doc
package sync

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"

	"github.com/goccy/go-json"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"

	"github.com/tomtom215/steamsheet/internal/config"
	"github.com/tomtom215/steamsheet/internal/logging"
	"github.com/tomtom215/steamsheet/internal/metrics"
	"github.com/tomtom215/steamsheet/internal/models"
	"github.com/tomtom215/steamsheet/internal/models/hltb"
)

// errEndpointNotFound marks a 404 from the search endpoint.
var errEndpointNotFound = errors.New("HLTB search endpoint returned 404")

// trademarkSymbols are stripped from titles before searching.
var trademarkSymbols = runes.Remove(runes.Predicate(func(r rune) bool {
	return r == '™' || r == '©' || r == '®'
}))

// NormalizeTitle removes ™, © and ® from title. Nothing else changes.
func NormalizeTitle(title string) string {
	normalized, _, err := transform.String(trademarkSymbols, title)
	if err != nil {
		return title
	}
	return normalized
}

// HLTBClient looks up completion times on HowLongToBeat.
//
// Thread Safety: Safe for concurrent use. The discovered endpoint is
// guarded by mu.
type HLTBClient struct {
	baseURL        string
	searchPath     string
	userAgent      string
	resultsPerPage int
	transport      *apiTransport
	breaker        *circuitBreaker[*hltb.SearchResponse]
	discoverer     *endpointDiscoverer // nil when discovery is disabled

	mu       sync.Mutex
	endpoint *hltb.Endpoint
}

// NewHLTBClient creates a HowLongToBeat client from configuration.
func NewHLTBClient(cfg *config.HLTBConfig) *HLTBClient {
	return newHLTBClient(cfg, defaultBreakerSettings())
}

func newHLTBClient(cfg *config.HLTBConfig, settings breakerSettings) *HLTBClient {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")

	c := &HLTBClient{
		baseURL:        baseURL,
		searchPath:     cfg.SearchPath,
		userAgent:      cfg.UserAgent,
		resultsPerPage: cfg.ResultsPerPage,
		transport: &apiTransport{
			service: "hltb",
			client:  &http.Client{Timeout: cfg.Timeout},
		},
		breaker: newCircuitBreaker[*hltb.SearchResponse](hltbBreakerName, settings),
	}
	if cfg.DiscoverEndpoint {
		c.discoverer = &endpointDiscoverer{
			baseURL:   baseURL,
			userAgent: cfg.UserAgent,
			timeout:   cfg.Timeout,
		}
	}
	return c
}

// Resolve returns the completion times of the best match for title.
func (c *HLTBClient) Resolve(ctx context.Context, title string) models.CompletionTime {
	normalized := NormalizeTitle(title)

	resp, err := c.breaker.execute(func() (*hltb.SearchResponse, error) {
		return c.searchWithRediscovery(ctx, normalized)
	})
	if err != nil {
		metrics.HLTBLookups.WithLabelValues("error").Inc()
		if isBreakerRejection(err) {
			logging.Warn().Str("title", normalized).Msg("HLTB circuit open, completion time unavailable")
		} else {
			logging.Error().Err(err).Str("title", normalized).Msg("Error when obtaining passing time")
		}
		return models.UnavailableCompletionTime()
	}

	if len(resp.Data) == 0 {
		metrics.HLTBLookups.WithLabelValues("not_found").Inc()
		logging.Warn().Str("title", normalized).Msgf("No HowLongToBeat results for %q", normalized)
		return models.UnavailableCompletionTime()
	}

	metrics.HLTBLookups.WithLabelValues("found").Inc()
	return completionFromResult(resp.Data[0])
}

// searchWithRediscovery runs the search and, when a discovered endpoint
// answers 404, rediscovers once and retries.
func (c *HLTBClient) searchWithRediscovery(ctx context.Context, title string) (*hltb.SearchResponse, error) {
	endpoint := c.resolveEndpoint(ctx)

	resp, err := c.search(ctx, endpoint, title)
	if errors.Is(err, errEndpointNotFound) && endpoint.Discovered() {
		logging.Warn().Str("path", endpoint.Path).Msg("HLTB search key rejected, rediscovering endpoint")
		c.invalidateEndpoint()
		return c.search(ctx, c.resolveEndpoint(ctx), title)
	}
	return resp, err
}

// search POSTs one search request to endpoint.
func (c *HLTBClient) search(ctx context.Context, endpoint hltb.Endpoint, title string) (*hltb.SearchResponse, error) {
	payload, err := json.Marshal(hltb.NewSearchRequest(title, c.resultsPerPage))
	if err != nil {
		return nil, fmt.Errorf("failed to encode search request: %w", err)
	}

	searchURL := endpoint.URL(c.baseURL)
	resp, err := c.transport.doRequestWithRateLimit(ctx, func(ctx context.Context) (*http.Request, error) {
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, searchURL, bytes.NewReader(payload))
		if err != nil {
			return nil, err
		}
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", c.userAgent)
		req.Header.Set("Referer", c.baseURL+"/")
		req.Header.Set("Origin", c.baseURL)
		return req, nil
	})
	if err != nil {
		return nil, fmt.Errorf("HLTB search failed: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, errEndpointNotFound
	case resp.StatusCode != http.StatusOK:
		body := readBodyForError(resp.Body)
		return nil, fmt.Errorf("HLTB search failed with status %d: %s", resp.StatusCode, string(body))
	}

	var result hltb.SearchResponse
	if err := decodeJSONResponse(resp, &result); err != nil {
		return nil, fmt.Errorf("failed to decode HLTB search response: %w", err)
	}
	return &result, nil
}

// completionFromResult converts a match's second counts to hours.
func completionFromResult(result hltb.GameResult) models.CompletionTime {
	return models.CompletionTime{
		MainStory:     secondsToHours(result.CompMain),
		Completionist: secondsToHours(result.Comp100),
		AllStyles:     secondsToHours(result.CompAll),
	}
}

func secondsToHours(seconds float64) models.Measure {
	if seconds <= 0 {
		return models.Unavailable()
	}
	return models.Available(models.Round(seconds/3600, 2))
}
