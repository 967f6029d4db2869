// Steamsheet - Steam Library Sync to Google Sheets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steamsheet

package cache

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/goccy/go-json"

	"github.com/tomtom215/steamsheet/internal/logging"
	"github.com/tomtom215/steamsheet/internal/metrics"
	"github.com/tomtom215/steamsheet/internal/models"
)

// filePerm matches what a plain create would produce; CreateTemp uses 0600.
const filePerm = 0o644

// Store persists completion-time cache entries in a single JSON file.
//
// The file is read once per run and rewritten in full after every cache
// miss. Access is single-process and sequential; Store does no locking.
type Store struct {
	path string
}

// NewStore creates a store backed by path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}

// Load reads the cache file. A missing file or unreadable content yields
// an empty cache; Load never fails.
func (s *Store) Load() models.CacheEntries {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			metrics.CacheLoadFailures.WithLabelValues("missing").Inc()
			logging.Info().Str("path", s.path).Msg("Cache file not found, creating a new cache")
			return models.CacheEntries{}
		}
		metrics.CacheLoadFailures.WithLabelValues("io").Inc()
		logging.Warn().Err(err).Str("path", s.path).Msg("Cache file is unreadable, creating a new cache")
		return models.CacheEntries{}
	}

	var entries models.CacheEntries
	if err := json.Unmarshal(data, &entries); err != nil {
		metrics.CacheLoadFailures.WithLabelValues("corrupt").Inc()
		logging.Warn().Err(err).Str("path", s.path).Msg("Cache file is empty or contains invalid data, creating a new cache")
		return models.CacheEntries{}
	}
	if entries == nil {
		entries = models.CacheEntries{}
	}

	metrics.CacheEntries.Set(float64(len(entries)))
	logging.Info().Str("path", s.path).Int("entries", len(entries)).Msg("Cache loaded")
	return entries
}

// Save overwrites the cache file with entries. The JSON is indented with
// four spaces and keeps non-ASCII characters literal. The file is written
// to a temporary sibling and renamed into place.
func (s *Store) Save(entries models.CacheEntries) error {
	err := s.save(entries)
	metrics.RecordCacheSave(len(entries), err)
	return err
}

func (s *Store) save(entries models.CacheEntries) error {
	data, err := encode(entries)
	if err != nil {
		return fmt.Errorf("encode cache: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+"-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp cache file: %w", err)
	}
	tmpName := tmp.Name()

	// Remove the temp file on any failure below; after a successful
	// rename it no longer exists.
	defer os.Remove(tmpName) //nolint:errcheck

	if _, err := tmp.Write(data); err != nil {
		tmp.Close() //nolint:errcheck,gosec
		return fmt.Errorf("write cache: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close() //nolint:errcheck,gosec
		return fmt.Errorf("sync cache: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close cache: %w", err)
	}
	if err := os.Chmod(tmpName, filePerm); err != nil {
		return fmt.Errorf("chmod cache: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("replace cache file %s: %w", s.path, err)
	}
	return nil
}

func encode(entries models.CacheEntries) ([]byte, error) {
	if entries == nil {
		entries = models.CacheEntries{}
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "    ")
	if err := enc.Encode(entries); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
