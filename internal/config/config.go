// ParkPilot - Theme Park Itinerary Optimization and Wait-Time Intelligence
// Copyright 2026 ParkPilot Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/parkpilot/parkpilot

// Package config loads and validates ParkPilot configuration using koanf.
// Layering, lowest priority first: struct defaults, then an optional YAML
// file, then PARKPILOT_-prefixed environment variables.
package config

import (
	"fmt"
	"time"
)

// Config is the root configuration for the server and engine.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Provider ProviderConfig `koanf:"provider"`
	Signal   SignalConfig   `koanf:"signal"`
	Planner  PlannerConfig  `koanf:"planner"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// ServerConfig configures the HTTP wrapper.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
	RateLimitPerMin int           `koanf:"rate_limit_per_min"`
	CORSOrigins     []string      `koanf:"cors_origins"`
}

// ProviderConfig configures the external queue-times provider.
type ProviderConfig struct {
	BaseURL           string        `koanf:"base_url"`
	APIKey            string        `koanf:"api_key"`
	Timeout           time.Duration `koanf:"timeout"`
	RequestsPerSecond float64       `koanf:"requests_per_second"`
	Burst             int           `koanf:"burst"`

	// RealtimeURL is the optional websocket endpoint for push updates.
	// Empty means the realtime capability is absent and the engine runs
	// polling-only.
	RealtimeURL string `koanf:"realtime_url"`

	// HistoryDays bounds historical sample lookback.
	HistoryDays int `koanf:"history_days"`
}

// SignalConfig configures the wait-time cache and fusion engine.
type SignalConfig struct {
	LiveTTL      time.Duration `koanf:"live_ttl"`
	CatalogTTL   time.Duration `koanf:"catalog_ttl"`
	HistoryTTL   time.Duration `koanf:"history_ttl"`
	FetchWorkers int           `koanf:"fetch_workers"`

	// AnomalyThresholdMinutes is the live/predicted deviation beyond
	// which the anomaly detector nudges the prediction.
	AnomalyThresholdMinutes int `koanf:"anomaly_threshold_minutes"`

	// RefreshInterval drives the background poller; Parks lists park IDs
	// to keep warm. Empty disables background refresh.
	RefreshInterval time.Duration `koanf:"refresh_interval"`
	Parks           []string      `koanf:"parks"`
}

// PlannerConfig configures itinerary building defaults.
type PlannerConfig struct {
	DefaultWalkMinutes  float64       `koanf:"default_walk_minutes"`
	MealDurationMinutes int           `koanf:"meal_duration_minutes"`
	MaxBreakMinutes     int           `koanf:"max_break_minutes"`
	GeniePlusDailyCap   int           `koanf:"genie_plus_daily_cap"`
	RainProbability     float64       `koanf:"rain_probability"`
	ScheduleLookahead   time.Duration `koanf:"schedule_lookahead"`
}

// LoggingConfig configures log output.
type LoggingConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
	Caller bool   `koanf:"caller"`
}

// defaultConfig returns a Config with all defaults applied. Defaults are
// layered first, then overridden by file and environment.
func defaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            8642,
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			RateLimitPerMin: 120,
			CORSOrigins:     []string{"*"},
		},
		Provider: ProviderConfig{
			BaseURL:           "",
			Timeout:           10 * time.Second,
			RequestsPerSecond: 5,
			Burst:             10,
			HistoryDays:       30,
		},
		Signal: SignalConfig{
			LiveTTL:                 30 * time.Second,
			CatalogTTL:              time.Hour,
			HistoryTTL:              30 * time.Minute,
			FetchWorkers:            4,
			AnomalyThresholdMinutes: 15,
			RefreshInterval:         time.Minute,
		},
		Planner: PlannerConfig{
			DefaultWalkMinutes:  10,
			MealDurationMinutes: 60,
			MaxBreakMinutes:     30,
			GeniePlusDailyCap:   3,
			RainProbability:     0.3,
			ScheduleLookahead:   24 * time.Hour,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Validate checks the configuration for values the engine cannot run with.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port %d out of range", c.Server.Port)
	}
	if c.Provider.BaseURL == "" {
		return fmt.Errorf("provider.base_url is required")
	}
	if c.Provider.RequestsPerSecond <= 0 {
		return fmt.Errorf("provider.requests_per_second must be positive")
	}
	if c.Signal.FetchWorkers < 1 {
		return fmt.Errorf("signal.fetch_workers must be at least 1")
	}
	if c.Signal.LiveTTL <= 0 || c.Signal.CatalogTTL <= 0 || c.Signal.HistoryTTL <= 0 {
		return fmt.Errorf("signal TTLs must be positive")
	}
	if c.Signal.AnomalyThresholdMinutes < 1 {
		return fmt.Errorf("signal.anomaly_threshold_minutes must be at least 1")
	}
	if c.Planner.RainProbability < 0 || c.Planner.RainProbability > 1 {
		return fmt.Errorf("planner.rain_probability must be in [0,1]")
	}
	if c.Planner.GeniePlusDailyCap < 0 {
		return fmt.Errorf("planner.genie_plus_daily_cap must not be negative")
	}
	return nil
}

// Addr returns the HTTP listen address.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
