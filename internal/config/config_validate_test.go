// Cashpick - Cashback Offer Recommendations for Chat Assistants
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cashpick

package config

import (
	"testing"
	"time"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"empty database path", func(c *Config) { c.Database.Path = "" }, true},
		{"negative threads", func(c *Config) { c.Database.Threads = -1 }, true},
		{"max_k above pool", func(c *Config) { c.Recommend.MaxK = 11 }, true},
		{"negative lambda", func(c *Config) { c.Recommend.EASE.Lambda = -1 }, true},
		{"zero lambda allowed", func(c *Config) { c.Recommend.EASE.Lambda = 0 }, false},
		{"persist without path", func(c *Config) {
			c.Recommend.FitCache.Persist = true
			c.Recommend.FitCache.Path = ""
		}, true},
		{"unknown backend", func(c *Config) { c.Events.Backend = "kafka" }, true},
		{"nats backend", func(c *Config) { c.Events.Backend = "nats" }, false},
		{"nats bad scheme", func(c *Config) {
			c.Events.Backend = "nats"
			c.Events.NATSURL = "http://localhost:4222"
		}, true},
		{"embedded backend", func(c *Config) { c.Events.Backend = "embedded" }, false},
		{"embedded random port", func(c *Config) {
			c.Events.Backend = "embedded"
			c.Events.EmbeddedPort = -1
		}, false},
		{"embedded bad port", func(c *Config) {
			c.Events.Backend = "embedded"
			c.Events.EmbeddedPort = 70000
		}, true},
		{"empty topic", func(c *Config) { c.Events.Topic = "" }, true},
		{"zero breaker failures", func(c *Config) { c.Events.BreakerMaxFailures = 0 }, true},
		{"snapshot disabled ignores format", func(c *Config) { c.Snapshot.Format = "xml" }, false},
		{"snapshot bad format", func(c *Config) {
			c.Snapshot.Enabled = true
			c.Snapshot.Format = "xml"
		}, true},
		{"snapshot short interval", func(c *Config) {
			c.Snapshot.Enabled = true
			c.Snapshot.Interval = time.Millisecond
		}, true},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, true},
		{"port too high", func(c *Config) { c.Server.Port = 70000 }, true},
		{"zero request timeout", func(c *Config) { c.Server.RequestTimeout = 0 }, true},
		{"zero item cache", func(c *Config) { c.Server.ItemCacheSize = 0 }, true},
		{"origin with path", func(c *Config) { c.Security.CORSOrigins = []string{"https://a.example.com/app"} }, true},
		{"origin ftp", func(c *Config) { c.Security.CORSOrigins = []string{"ftp://a.example.com"} }, true},
		{"rate limit zero", func(c *Config) { c.Security.RateLimitReqs = 0 }, true},
		{"rate limit disabled", func(c *Config) {
			c.Security.RateLimitDisabled = true
			c.Security.RateLimitReqs = 0
		}, false},
		{"bad log level", func(c *Config) { c.Logging.Level = "verbose" }, true},
		{"bad log format", func(c *Config) { c.Logging.Format = "xml" }, true},
		{"empty log format", func(c *Config) { c.Logging.Format = "" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestRecommendConfig_EngineConfig(t *testing.T) {
	cfg := defaultConfig()
	cfg.Recommend.Seed = 99
	cfg.Recommend.EASE.Window = 5
	cfg.Recommend.FitCache.Enabled = false

	ec := cfg.Recommend.EngineConfig()
	if ec.Seed != 99 {
		t.Errorf("Seed = %d, want 99", ec.Seed)
	}
	if ec.EASE.Window != 5 {
		t.Errorf("EASE.Window = %d, want 5", ec.EASE.Window)
	}
	if ec.FitCache.Enabled {
		t.Error("FitCache.Enabled = true, want false")
	}
	if ec.Catalog.Size != 116 || ec.Routing.MinUsers != 7 || ec.Limits.MaxK != 10 {
		t.Errorf("EngineConfig() = %+v", ec)
	}
	if err := ec.Validate(); err != nil {
		t.Errorf("EngineConfig().Validate() error = %v", err)
	}
}

func TestConfig_HasWildcardCORS(t *testing.T) {
	cfg := defaultConfig()
	if !cfg.HasWildcardCORS() {
		t.Error("HasWildcardCORS() = false for default origins")
	}
	cfg.Security.CORSOrigins = []string{"https://a.example.com"}
	if cfg.HasWildcardCORS() {
		t.Error("HasWildcardCORS() = true for explicit origins")
	}
}
