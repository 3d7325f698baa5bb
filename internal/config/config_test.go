// ParkPilot - Theme Park Itinerary Optimization and Wait-Time Intelligence
// Copyright 2026 ParkPilot Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/parkpilot/parkpilot

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfigValidates(t *testing.T) {
	cfg := defaultConfig()
	cfg.Provider.BaseURL = "https://queue.example.com"

	if err := cfg.Validate(); err != nil {
		t.Errorf("default config with base URL should validate: %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing base url", func(c *Config) { c.Provider.BaseURL = "" }},
		{"bad port", func(c *Config) { c.Server.Port = 0 }},
		{"zero workers", func(c *Config) { c.Signal.FetchWorkers = 0 }},
		{"negative live ttl", func(c *Config) { c.Signal.LiveTTL = -time.Second }},
		{"rain probability above one", func(c *Config) { c.Planner.RainProbability = 1.5 }},
		{"zero anomaly threshold", func(c *Config) { c.Signal.AnomalyThresholdMinutes = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := defaultConfig()
			cfg.Provider.BaseURL = "https://queue.example.com"
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestEnvTransform(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"PARKPILOT_PROVIDER_BASE_URL", "provider.base_url"},
		{"PARKPILOT_SERVER_PORT", "server.port"},
		{"PARKPILOT_SIGNAL_FETCH_WORKERS", "signal.fetch_workers"},
	}

	for _, tt := range tests {
		if got := envTransform(tt.in); got != tt.want {
			t.Errorf("envTransform(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLoadLayersFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
provider:
  base_url: https://queue.example.com
server:
  port: 9001
signal:
  live_ttl: 45s
`
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("PARKPILOT_SERVER_PORT", "9002")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Server.Port != 9002 {
		t.Errorf("env override lost: port = %d, want 9002", cfg.Server.Port)
	}
	if cfg.Signal.LiveTTL != 45*time.Second {
		t.Errorf("file value lost: live_ttl = %v, want 45s", cfg.Signal.LiveTTL)
	}
	if cfg.Signal.CatalogTTL != time.Hour {
		t.Errorf("default lost: catalog_ttl = %v, want 1h", cfg.Signal.CatalogTTL)
	}
}

func TestParksFromCommaSeparatedEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("provider:\n  base_url: https://q.example.com\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv(ConfigPathEnvVar, path)
	t.Setenv("PARKPILOT_SIGNAL_PARKS", "wdw_mk, wdw_epcot")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if len(cfg.Signal.Parks) != 2 || cfg.Signal.Parks[0] != "wdw_mk" || cfg.Signal.Parks[1] != "wdw_epcot" {
		t.Errorf("parks = %v, want [wdw_mk wdw_epcot]", cfg.Signal.Parks)
	}
}
