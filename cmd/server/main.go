// ParkPilot - Theme Park Itinerary Optimization and Wait-Time Intelligence
// Copyright 2026 ParkPilot Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/parkpilot/parkpilot

// Package main is the entry point for the ParkPilot server.
//
// ParkPilot builds optimized theme-park itineraries from live queue data,
// historical wait patterns, and visitor preferences, and serves short-horizon
// wait-time predictions over a REST and websocket API.
//
// # Application Architecture
//
// The server initializes components in the following order:
//
//  1. Configuration: layered koanf load (defaults, YAML file, PARKPILOT_ env)
//  2. Provider client: rate-limited HTTP client behind a circuit breaker
//  3. Signal service: cached wait-time snapshots, history, and EMA fusion
//  4. Engine: scoring, constraints, and the greedy itinerary builder
//  5. Supervisor tree: background refresh poller and the HTTP server
//
// # Configuration
//
// PARKPILOT_PROVIDER_BASE_URL is the only required setting. Common options:
//
//	export PARKPILOT_PROVIDER_BASE_URL=https://queue-api.example.com
//	export PARKPILOT_PROVIDER_API_KEY=your-api-key
//	export PARKPILOT_PROVIDER_REALTIME_URL=wss://queue-api.example.com
//	export PARKPILOT_SIGNAL_PARKS=magic-kingdom,epcot
//	export PARKPILOT_SERVER_PORT=8642
//	./parkpilot
//
// # Signal Handling
//
// The server shuts down gracefully on SIGINT and SIGTERM: the supervisor
// tree cancels its services, the HTTP server drains in-flight requests
// within the configured timeout, and the update bus is closed.
package main

import (
	"context"
	"errors"
	"net/http"
	ossignal "os/signal"
	"syscall"

	"github.com/parkpilot/parkpilot/internal/api"
	"github.com/parkpilot/parkpilot/internal/config"
	"github.com/parkpilot/parkpilot/internal/engine"
	"github.com/parkpilot/parkpilot/internal/logging"
	"github.com/parkpilot/parkpilot/internal/parksource"
	"github.com/parkpilot/parkpilot/internal/signal"
	"github.com/parkpilot/parkpilot/internal/supervisor"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		// Default logger; config is not available yet.
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})
	logger := logging.Logger()

	logging.Info().
		Str("provider_url", cfg.Provider.BaseURL).
		Int("parks", len(cfg.Signal.Parks)).
		Bool("realtime", cfg.Provider.RealtimeURL != "").
		Msg("Configuration loaded")

	client := parksource.NewClient(cfg.Provider, logger)
	source := parksource.NewCircuitBreakerClient(client, logger)

	var realtime signal.RealtimeProvider = signal.NoopRealtimeProvider{}
	if cfg.Provider.RealtimeURL != "" {
		realtime = parksource.NewWebSocketProvider(cfg.Provider.RealtimeURL, cfg.Provider.APIKey, logger)
	}

	bus := signal.NewBus(realtime, logger)
	defer func() {
		if err := bus.Close(); err != nil {
			logging.Error().Err(err).Msg("Error closing update bus")
		}
	}()

	signals := signal.NewService(cfg.Signal, source, bus, cfg.Provider.HistoryDays, logger)
	eng := engine.New(cfg.Planner, signals, logger)
	router := api.NewRouter(eng, cfg.Server, logger)

	server := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      router.Handler(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	tree := supervisor.NewTree(logger, supervisor.TreeConfig{
		ShutdownTimeout: cfg.Server.ShutdownTimeout,
	})
	tree.AddSignalService(supervisor.NewRefreshService(signals, cfg.Signal.Parks, cfg.Signal.RefreshInterval, logger))
	tree.AddAPIService(supervisor.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))

	ctx, stop := ossignal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logging.Info().Str("addr", server.Addr).Msg("Starting ParkPilot")

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("Supervisor tree exited")
	}

	logging.Info().Msg("Shutdown complete")
}
