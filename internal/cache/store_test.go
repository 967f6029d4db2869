// Steamsheet - Steam Library Sync to Google Sheets
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/steamsheet

package cache

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/tomtom215/steamsheet/internal/models"
)

func sampleEntries() models.CacheEntries {
	return models.CacheEntries{
		"10": {
			Name:         "Foo",
			Playtime:     5.5,
			Achievements: models.Available(80),
			CompletionTime: models.CompletionTime{
				MainStory:     models.Available(3),
				Completionist: models.Available(10),
				AllStyles:     models.Available(6),
			},
			LastUpdated: "2024-03-09 14:05:07",
		},
		"20": {
			Name:           "Ōkami HD™",
			Playtime:       0,
			Achievements:   models.Unavailable(),
			CompletionTime: models.UnavailableCompletionTime(),
			LastUpdated:    "2024-03-09 14:05:08",
		},
	}
}

func TestStoreLoad_MissingFile(t *testing.T) {
	t.Parallel()

	store := NewStore(filepath.Join(t.TempDir(), "SGL_Cache.json"))
	entries := store.Load()
	if entries == nil || len(entries) != 0 {
		t.Errorf("Load() = %v, want empty non-nil map", entries)
	}
}

func TestStoreLoad_InvalidContent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{"invalid json", "{not json"},
		{"empty file", ""},
		{"wrong shape", `["a", "b"]`},
		{"null", "null"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := filepath.Join(t.TempDir(), "SGL_Cache.json")
			if err := os.WriteFile(path, []byte(tt.content), 0o644); err != nil {
				t.Fatalf("write fixture: %v", err)
			}

			entries := NewStore(path).Load()
			if entries == nil || len(entries) != 0 {
				t.Errorf("Load() = %v, want empty non-nil map", entries)
			}
		})
	}
}

func TestStoreLoad_Directory(t *testing.T) {
	t.Parallel()

	entries := NewStore(t.TempDir()).Load()
	if entries == nil || len(entries) != 0 {
		t.Errorf("Load() = %v, want empty non-nil map", entries)
	}
}

func TestStoreSaveLoadRoundTrip(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "SGL_Cache.json")
	store := NewStore(path)
	want := sampleEntries()

	if err := store.Save(want); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got := store.Load()
	if len(got) != len(want) {
		t.Fatalf("Load() returned %d entries, want %d", len(got), len(want))
	}
	for key, w := range want {
		g, ok := got[key]
		if !ok {
			t.Fatalf("entry %s missing after round trip", key)
		}
		if g != w {
			t.Errorf("entry %s = %+v, want %+v", key, g, w)
		}
	}

	leftovers, err := filepath.Glob(filepath.Join(filepath.Dir(path), ".SGL_Cache.json-*.tmp"))
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	if len(leftovers) != 0 {
		t.Errorf("temporary files left behind: %v", leftovers)
	}
}

func TestStoreSave_Format(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "SGL_Cache.json")
	if err := NewStore(path).Save(sampleEntries()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read cache: %v", err)
	}
	text := string(data)

	if !strings.Contains(text, "Ōkami HD™") {
		t.Errorf("non-ASCII name was escaped:\n%s", text)
	}
	if !strings.Contains(text, "\n    \"10\": {") {
		t.Errorf("expected four-space indentation:\n%s", text)
	}
	if !strings.Contains(text, `"achievements": "N/A"`) {
		t.Errorf("unavailable achievements not written as \"N/A\":\n%s", text)
	}
	if !strings.Contains(text, `"main_story": 3`) {
		t.Errorf("completion time not written as a number:\n%s", text)
	}

	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat cache: %v", err)
	}
	if info.Mode().Perm() != filePerm {
		t.Errorf("cache mode = %v, want %v", info.Mode().Perm(), os.FileMode(filePerm))
	}
}

func TestStoreSave_Overwrites(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "SGL_Cache.json")
	store := NewStore(path)
	if err := store.Save(sampleEntries()); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	next := models.CacheEntries{"30": {Name: "Baz", Achievements: models.Available(0)}}
	if err := store.Save(next); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	got := store.Load()
	if len(got) != 1 {
		t.Fatalf("Load() returned %d entries, want 1 (full overwrite)", len(got))
	}
	if !got["30"].Achievements.Equal(models.Available(0)) {
		t.Errorf("achievements = %v, want 0", got["30"].Achievements)
	}
}

func TestStoreSave_MissingDirectory(t *testing.T) {
	t.Parallel()

	store := NewStore(filepath.Join(t.TempDir(), "missing", "SGL_Cache.json"))
	if err := store.Save(sampleEntries()); err == nil {
		t.Fatal("Save() expected error for missing directory")
	}
}
