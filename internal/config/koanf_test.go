// Cashpick - Cashback Offer Recommendations for Chat Assistants
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cashpick

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/knadh/koanf/v2"
)

// isolateConfigFile points CONFIG_PATH at a file that does not exist so
// a stray config.yaml in the working directory cannot leak into tests.
func isolateConfigFile(t *testing.T) {
	t.Helper()
	t.Setenv(ConfigPathEnvVar, filepath.Join(t.TempDir(), "absent.yaml"))
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Database.Path != "/data/cashpick.duckdb" {
		t.Errorf("Database.Path = %q, want /data/cashpick.duckdb", cfg.Database.Path)
	}
	if cfg.Recommend.CatalogSize != 116 {
		t.Errorf("Recommend.CatalogSize = %d, want 116", cfg.Recommend.CatalogSize)
	}
	if cfg.Recommend.MinUsers != 7 || cfg.Recommend.MinUserInteractions != 3 {
		t.Errorf("routing = %d/%d, want 7/3", cfg.Recommend.MinUsers, cfg.Recommend.MinUserInteractions)
	}
	if cfg.Recommend.EASE.Lambda != 0.01 || cfg.Recommend.EASE.Window != 80 {
		t.Errorf("EASE = %+v, want lambda 0.01 window 80", cfg.Recommend.EASE)
	}
	if !cfg.Recommend.FitCache.Enabled {
		t.Error("FitCache.Enabled = false, want true")
	}
	if cfg.Events.Backend != "memory" {
		t.Errorf("Events.Backend = %q, want memory", cfg.Events.Backend)
	}
	if cfg.Server.Port != 3857 {
		t.Errorf("Server.Port = %d, want 3857", cfg.Server.Port)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaultConfig().Validate() error = %v", err)
	}
}

func TestLoadWithKoanf_Defaults(t *testing.T) {
	isolateConfigFile(t)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Recommend.PoolSize != 10 {
		t.Errorf("Recommend.PoolSize = %d, want 10", cfg.Recommend.PoolSize)
	}
	if cfg.Server.RequestTimeout != 10*time.Second {
		t.Errorf("Server.RequestTimeout = %v, want 10s", cfg.Server.RequestTimeout)
	}
}

func TestLoadWithKoanf_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
database:
  path: /tmp/test.duckdb
recommend:
  min_users: 3
  ease:
    lambda: 0.5
    window: 10
snapshot:
  enabled: true
  interval: 30m
  dir: /tmp/snapshots
  format: csv
server:
  port: 8080
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Database.Path != "/tmp/test.duckdb" {
		t.Errorf("Database.Path = %q", cfg.Database.Path)
	}
	if cfg.Recommend.MinUsers != 3 {
		t.Errorf("Recommend.MinUsers = %d, want 3", cfg.Recommend.MinUsers)
	}
	if cfg.Recommend.EASE.Lambda != 0.5 || cfg.Recommend.EASE.Window != 10 {
		t.Errorf("EASE = %+v, want 0.5/10", cfg.Recommend.EASE)
	}
	if cfg.Recommend.MinUserInteractions != 3 {
		t.Errorf("untouched default MinUserInteractions = %d, want 3", cfg.Recommend.MinUserInteractions)
	}
	if !cfg.Snapshot.Enabled || cfg.Snapshot.Interval != 30*time.Minute || cfg.Snapshot.Format != "csv" {
		t.Errorf("Snapshot = %+v", cfg.Snapshot)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want 8080", cfg.Server.Port)
	}
}

func TestLoadWithKoanf_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("server:\n  port: 8080\n"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("EASE_LAMBDA", "2.5")
	t.Setenv("FIT_CACHE_ENABLED", "false")
	t.Setenv("CORS_ORIGINS", "https://a.example.com, https://b.example.com")
	t.Setenv("RECOMMEND_SEED", "42")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want 9090", cfg.Server.Port)
	}
	if cfg.Recommend.EASE.Lambda != 2.5 {
		t.Errorf("EASE.Lambda = %v, want 2.5", cfg.Recommend.EASE.Lambda)
	}
	if cfg.Recommend.FitCache.Enabled {
		t.Error("FitCache.Enabled = true, want false")
	}
	if cfg.Recommend.Seed != 42 {
		t.Errorf("Seed = %d, want 42", cfg.Recommend.Seed)
	}
	want := []string{"https://a.example.com", "https://b.example.com"}
	if len(cfg.Security.CORSOrigins) != 2 || cfg.Security.CORSOrigins[0] != want[0] || cfg.Security.CORSOrigins[1] != want[1] {
		t.Errorf("CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, want)
	}
}

func TestLoadWithKoanf_InvalidConfig(t *testing.T) {
	isolateConfigFile(t)
	t.Setenv("RECOMMEND_MAX_K", "50")

	if _, err := LoadWithKoanf(); err == nil {
		t.Error("LoadWithKoanf() error = nil, want max_k validation error")
	}
}

func TestEnvTransformFunc(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"DUCKDB_PATH", "database.path"},
		{"EASE_LAMBDA", "recommend.ease.lambda"},
		{"ease_window", "recommend.ease.window"},
		{"FIT_CACHE_PERSIST", "recommend.fit_cache.persist"},
		{"NATS_URL", "events.nats_url"},
		{"HTTP_PORT", "server.port"},
		{"DISABLE_RATE_LIMIT", "security.rate_limit_disabled"},
		{"LOG_LEVEL", "logging.level"},
		{"HOME", ""},
		{"PATH", ""},
	}
	for _, tt := range tests {
		if got := envTransformFunc(tt.key); got != tt.want {
			t.Errorf("envTransformFunc(%q) = %q, want %q", tt.key, got, tt.want)
		}
	}
}

func TestProcessSliceFields(t *testing.T) {
	k := koanf.New(".")
	if err := k.Set("security.cors_origins", " https://a.example.com ,, https://b.example.com"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := processSliceFields(k); err != nil {
		t.Fatalf("processSliceFields() error = %v", err)
	}
	got := k.Strings("security.cors_origins")
	if len(got) != 2 || got[0] != "https://a.example.com" || got[1] != "https://b.example.com" {
		t.Errorf("cors_origins = %v", got)
	}
}

func TestFindConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	if err := os.WriteFile(path, []byte("{}"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)
	if got := findConfigFile(); got != path {
		t.Errorf("findConfigFile() = %q, want %q", got, path)
	}
}
