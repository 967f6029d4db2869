// Steamsheet - Steam Library Sync to Google Sheets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steamsheet

package config

import (
	"fmt"
	"net/url"
	"strings"
)

// validateHTTPURL validates that a base URL is properly formatted.
// Supports: HTTP/HTTPS, IP addresses/hostnames, with optional ports.
// Paths are rejected because every client appends its own endpoint paths.
func validateHTTPURL(rawURL, fieldName string) error {
	parsedURL, err := url.Parse(rawURL)
	if err != nil {
		return fmt.Errorf("%s failed to parse URL: %w", fieldName, err)
	}

	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("%s scheme must be http or https, got: %s", fieldName, parsedURL.Scheme)
	}

	if parsedURL.Host == "" {
		return fmt.Errorf("%s host is required", fieldName)
	}

	// Allow trailing slash but no other paths
	if parsedURL.Path != "" && parsedURL.Path != "/" {
		return fmt.Errorf("%s should be base URL only, remove path: %s", fieldName, parsedURL.Path)
	}

	if parsedURL.RawQuery != "" {
		return fmt.Errorf("%s should not contain query parameters, remove: ?%s", fieldName, parsedURL.RawQuery)
	}

	return nil
}

// validateSearchPath checks the HLTB fallback search path is an absolute URL path.
func validateSearchPath(path string) error {
	if !strings.HasPrefix(path, "/") {
		return fmt.Errorf("hltb.search_path must start with '/', got: %s", path)
	}
	if strings.ContainsAny(path, "?#") {
		return fmt.Errorf("hltb.search_path must not contain a query or fragment: %s", path)
	}
	return nil
}
