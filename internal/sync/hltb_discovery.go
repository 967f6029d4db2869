// Steamsheet - Steam Library Sync to Google Sheets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steamsheet

package sync

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/gocolly/colly/v2"

	"github.com/tomtom215/steamsheet/internal/logging"
	"github.com/tomtom215/steamsheet/internal/metrics"
	"github.com/tomtom215/steamsheet/internal/models/hltb"
)

// appScriptMarker identifies the Next.js bundle that holds the search call.
const appScriptMarker = "_app-"

var (
	// searchCallPattern matches "/api/<path>/".concat("a").concat("b") in the bundle.
	searchCallPattern = regexp.MustCompile(`["'](/api/[A-Za-z0-9_\-/]+)["']((?:\s*\.concat\(\s*["'][^"']*["']\s*\))+)`)

	// concatPartPattern extracts each .concat("...") argument.
	concatPartPattern = regexp.MustCompile(`\.concat\(\s*["']([^"']*)["']\s*\)`)

	errNoAppScripts     = errors.New("no _app script found on HowLongToBeat home page")
	errNoSearchEndpoint = errors.New("search endpoint not found in HowLongToBeat scripts")
)

// endpointDiscoverer reads the current search endpoint from the site's
// JavaScript bundle with colly.
type endpointDiscoverer struct {
	baseURL   string
	userAgent string
	timeout   time.Duration
}

// discover visits the home page, collects the _app script URLs and scans
// each for the search call.
func (d *endpointDiscoverer) discover(ctx context.Context) (hltb.Endpoint, error) {
	scripts, err := d.appScripts(ctx)
	if err != nil {
		return hltb.Endpoint{}, err
	}

	for _, script := range scripts {
		body, err := d.fetch(ctx, script)
		if err != nil {
			logging.Debug().Err(err).Str("script", script).Msg("HLTB script fetch failed")
			continue
		}
		if endpoint, ok := parseSearchEndpoint(body); ok {
			return endpoint, nil
		}
	}
	return hltb.Endpoint{}, errNoSearchEndpoint
}

// newCollector builds a collector for a single discovery pass.
func (d *endpointDiscoverer) newCollector(ctx context.Context) *colly.Collector {
	c := colly.NewCollector(
		colly.UserAgent(d.userAgent),
		colly.AllowURLRevisit(),
		colly.StdlibContext(ctx),
	)
	if d.timeout > 0 {
		c.SetRequestTimeout(d.timeout)
	}
	return c
}

// appScripts returns absolute URLs of <script src> tags containing "_app-".
func (d *endpointDiscoverer) appScripts(ctx context.Context) ([]string, error) {
	c := d.newCollector(ctx)

	var scripts []string
	var visitErr error

	c.OnHTML("script[src]", func(e *colly.HTMLElement) {
		src := e.Attr("src")
		if strings.Contains(src, appScriptMarker) {
			scripts = append(scripts, e.Request.AbsoluteURL(src))
		}
	})
	c.OnError(func(r *colly.Response, err error) {
		visitErr = fmt.Errorf("visit %s: status %d: %w", r.Request.URL, r.StatusCode, err)
	})

	if err := c.Visit(d.baseURL + "/"); err != nil && visitErr == nil {
		visitErr = fmt.Errorf("visit HowLongToBeat home page: %w", err)
	}
	c.Wait()

	if visitErr != nil {
		return nil, visitErr
	}
	if len(scripts) == 0 {
		return nil, errNoAppScripts
	}
	return scripts, nil
}

// fetch downloads one script body.
func (d *endpointDiscoverer) fetch(ctx context.Context, scriptURL string) (string, error) {
	c := d.newCollector(ctx)

	var body string
	var fetchErr error

	c.OnRequest(func(r *colly.Request) {
		r.Headers.Set("Referer", d.baseURL+"/")
	})
	c.OnResponse(func(r *colly.Response) {
		body = string(r.Body)
	})
	c.OnError(func(r *colly.Response, err error) {
		fetchErr = fmt.Errorf("status %d: %w", r.StatusCode, err)
	})

	if err := c.Visit(scriptURL); err != nil && fetchErr == nil {
		fetchErr = err
	}
	c.Wait()

	return body, fetchErr
}

// parseSearchEndpoint extracts the search path and key from a script body.
func parseSearchEndpoint(script string) (hltb.Endpoint, bool) {
	match := searchCallPattern.FindStringSubmatch(script)
	if match == nil {
		return hltb.Endpoint{}, false
	}

	var key strings.Builder
	for _, part := range concatPartPattern.FindAllStringSubmatch(match[2], -1) {
		key.WriteString(part[1])
	}
	if key.Len() == 0 {
		return hltb.Endpoint{}, false
	}

	return hltb.Endpoint{
		Path: strings.TrimRight(match[1], "/"),
		Key:  key.String(),
	}, true
}

// resolveEndpoint returns the memoized search endpoint, discovering it on
// first use. Discovery failure falls back to the configured path and is
// memoized too, so a run tries discovery at most once per invalidation.
func (c *HLTBClient) resolveEndpoint(ctx context.Context) hltb.Endpoint {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.endpoint != nil {
		return *c.endpoint
	}

	fallback := hltb.Endpoint{Path: c.searchPath}
	endpoint := fallback

	if c.discoverer != nil {
		discovered, err := c.discoverer.discover(ctx)
		switch {
		case err != nil:
			metrics.HLTBEndpointDiscoveries.WithLabelValues("fallback").Inc()
			logging.Warn().Err(err).Str("path", fallback.Path).Msg("HLTB endpoint discovery failed, using configured search path")
		default:
			metrics.HLTBEndpointDiscoveries.WithLabelValues("discovered").Inc()
			logging.Debug().Str("path", discovered.Path).Msg("HLTB search endpoint discovered")
			endpoint = discovered
		}
	}

	c.endpoint = &endpoint
	return endpoint
}

// invalidateEndpoint forgets the memoized endpoint.
func (c *HLTBClient) invalidateEndpoint() {
	c.mu.Lock()
	c.endpoint = nil
	c.mu.Unlock()
}
