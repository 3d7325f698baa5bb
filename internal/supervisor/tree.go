// ParkPilot - Theme Park Itinerary Optimization and Wait-Time Intelligence
// Copyright 2026 ParkPilot Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/parkpilot/parkpilot

// Package supervisor provides Suture-based process supervision for ParkPilot.
//
// The tree has two layers: a signal layer for the background refresh poller
// and an api layer for the HTTP server. A crash in the poller never takes
// the API down; the API keeps serving cached snapshots while the poller
// restarts.
package supervisor

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"
)

// TreeConfig holds supervisor tree configuration.
type TreeConfig struct {
	// FailureThreshold is the number of failures before entering backoff.
	// Default: 5
	FailureThreshold float64

	// FailureDecay is the rate at which failures decay in seconds.
	// Default: 30
	FailureDecay float64

	// FailureBackoff is the duration to wait when threshold is exceeded.
	// Default: 15s
	FailureBackoff time.Duration

	// ShutdownTimeout is the maximum time to wait for graceful shutdown.
	// Default: 10s
	ShutdownTimeout time.Duration
}

// DefaultTreeConfig returns suture's built-in defaults.
func DefaultTreeConfig() TreeConfig {
	return TreeConfig{
		FailureThreshold: 5.0,
		FailureDecay:     30.0,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	}
}

// Tree manages the two-layer supervisor structure.
type Tree struct {
	root   *suture.Supervisor
	signal *suture.Supervisor
	api    *suture.Supervisor
	logger zerolog.Logger
	config TreeConfig
}

// NewTree creates the supervisor tree.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewTree(logger zerolog.Logger, config TreeConfig) *Tree {
	if config.FailureThreshold == 0 {
		config.FailureThreshold = 5.0
	}
	if config.FailureDecay == 0 {
		config.FailureDecay = 30.0
	}
	if config.FailureBackoff == 0 {
		config.FailureBackoff = 15 * time.Second
	}
	if config.ShutdownTimeout == 0 {
		config.ShutdownTimeout = 10 * time.Second
	}

	log := logger.With().Str("component", "supervisor").Logger()

	rootSpec := suture.Spec{
		EventHook:        eventHook(log),
		FailureThreshold: config.FailureThreshold,
		FailureDecay:     config.FailureDecay,
		FailureBackoff:   config.FailureBackoff,
		Timeout:          config.ShutdownTimeout,
	}

	// Child supervisors inherit the EventHook from the root.
	childSpec := suture.Spec{
		FailureThreshold: config.FailureThreshold,
		FailureDecay:     config.FailureDecay,
		FailureBackoff:   config.FailureBackoff,
		Timeout:          config.ShutdownTimeout,
	}

	root := suture.New("parkpilot", rootSpec)
	sig := suture.New("signal-layer", childSpec)
	api := suture.New("api-layer", childSpec)

	root.Add(sig)
	root.Add(api)

	return &Tree{
		root:   root,
		signal: sig,
		api:    api,
		logger: log,
		config: config,
	}
}

// eventHook maps suture supervision events onto zerolog.
func eventHook(log zerolog.Logger) suture.EventHook {
	return func(ev suture.Event) {
		e := log.Warn()
		if ev.Type() == suture.EventTypeServiceTerminate {
			e = log.Error()
		}
		d := zerolog.Dict()
		for k, v := range ev.Map() {
			d = d.Interface(k, v)
		}
		e.Dict("event", d).Msg(ev.String())
	}
}

// AddSignalService adds a service to the signal layer supervisor.
// Use this for the background wait-time refresh poller.
func (t *Tree) AddSignalService(svc suture.Service) suture.ServiceToken {
	return t.signal.Add(svc)
}

// AddAPIService adds a service to the API layer supervisor.
// Use this for the HTTP server.
func (t *Tree) AddAPIService(svc suture.Service) suture.ServiceToken {
	return t.api.Add(svc)
}

// Serve starts the supervisor tree and blocks until the context is canceled.
func (t *Tree) Serve(ctx context.Context) error {
	return t.root.Serve(ctx)
}

// ServeBackground starts the tree in a background goroutine. The returned
// channel receives the error (or nil) when the supervisor stops.
func (t *Tree) ServeBackground(ctx context.Context) <-chan error {
	return t.root.ServeBackground(ctx)
}

// Remove removes a service from the tree by its token.
func (t *Tree) Remove(token suture.ServiceToken) error {
	return t.root.Remove(token)
}

// UnstoppedServiceReport returns services that failed to stop within the
// configured shutdown timeout.
func (t *Tree) UnstoppedServiceReport() ([]suture.UnstoppedService, error) {
	return t.root.UnstoppedServiceReport()
}
