// SPDX-FileCopyrightText: 2026 DBFlux authors
//
// SPDX-License-Identifier: Apache-2.0

package config

import (
	"encoding/json"
	"path/filepath"
	"testing"
)

func TestAppConfigRoundTrip(t *testing.T) {
	c := NewAppConfig()
	c.DriverOverrides = map[DriverKey]GlobalOverrides{
		BuiltinDriverKey("sqlite"): {},
	}

	data, err := json.Marshal(c)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var roundtripped AppConfig
	if err := json.Unmarshal(data, &roundtripped); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(roundtripped.DriverOverrides) != 0 {
		t.Fatalf("expected empty GlobalOverrides entry to be pruned, got %+v", roundtripped.DriverOverrides)
	}
	if roundtripped.Version != CurrentVersion {
		t.Fatalf("Version = %d, want %d", roundtripped.Version, CurrentVersion)
	}
}

func TestAppConfigUnknownKeysDoNotBreakParsing(t *testing.T) {
	raw := []byte(`{"unknown_field": 42, "general": {"refresh_policy": {"kind": 0}, "refresh_interval_secs": 30, "confirm_dangerous_queries": true, "dangerous_requires_where": true, "dangerous_requires_preview": false, "allow_redis_flush": false}}`)
	var c AppConfig
	if err := json.Unmarshal(raw, &c); err != nil {
		t.Fatalf("unmarshal with unknown top-level key should not fail: %v", err)
	}
	if c.Version != 1 {
		t.Fatalf("missing version should default to 1, got %d", c.Version)
	}
}

func TestStoreLoadMissingFileIsNotError(t *testing.T) {
	dir := t.TempDir()
	s := NewStore(filepath.Join(dir, "config.json"))
	if err := s.Load(); err != nil {
		t.Fatalf("Load on missing file: %v", err)
	}
}

func TestStoreSaveThenLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "dbflux", "config.json")
	s := NewStore(path)
	s.Update(func(c *AppConfig) {
		c.General.RefreshIntervalSecs = 99
	})
	if err := s.Save(); err != nil {
		t.Fatalf("Save: %v", err)
	}

	s2 := NewStore(path)
	if err := s2.Load(); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got := s2.Get().General.RefreshIntervalSecs; got != 99 {
		t.Fatalf("RefreshIntervalSecs = %d, want 99", got)
	}
}
