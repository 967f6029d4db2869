// Steamsheet - Steam Library Sync to Google Sheets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steamsheet

package logging

import (
	"net/url"
	"strings"
)

// redactedValue replaces secret query parameter values.
const redactedValue = "REDACTED"

// secretParams lists query parameters that must never reach a log line.
var secretParams = []string{"key", "apikey", "api_key", "token", "access_token"}

// RedactURL masks secret query parameters in a URL string.
// Unparseable input is returned with everything after '?' removed.
func RedactURL(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		if i := strings.IndexByte(raw, '?'); i >= 0 {
			return raw[:i]
		}
		return raw
	}
	if u.RawQuery == "" {
		return raw
	}
	q := u.Query()
	changed := false
	for _, p := range secretParams {
		if q.Has(p) {
			q.Set(p, redactedValue)
			changed = true
		}
	}
	if !changed {
		return raw
	}
	u.RawQuery = q.Encode()
	return u.String()
}

// RedactError returns err's message with any secret query values masked.
// url.Error messages embed the full request URL, including the Steam API key.
func RedactError(err error, secrets ...string) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	for _, s := range secrets {
		if s != "" {
			msg = strings.ReplaceAll(msg, s, redactedValue)
		}
	}
	return msg
}
