// ParkPilot - Theme Park Itinerary Optimization and Wait-Time Intelligence
// Copyright 2026 ParkPilot Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/parkpilot/parkpilot

package signal

import (
	"context"

	"github.com/parkpilot/parkpilot/internal/models"
)

// DataSource is the upstream park-data capability the signal service
// consumes. The production implementation is the parksource client; tests
// substitute fakes.
type DataSource interface {
	// FetchAttractions returns the attraction catalog for a park.
	FetchAttractions(ctx context.Context, parkID string) ([]models.Attraction, error)

	// FetchWaitTime returns one attraction's live queue state. Callers
	// substitute a sentinel record on error; a batch never fails outright
	// for partial errors.
	FetchWaitTime(ctx context.Context, parkID, attractionID string) (models.AttractionWaitTime, error)

	// FetchSchedule returns the park operating schedule.
	FetchSchedule(ctx context.Context, parkID string) ([]models.ParkHours, error)

	// FetchHistory returns historical wait samples for an attraction over
	// the trailing number of days.
	FetchHistory(ctx context.Context, attractionID string, days int) ([]models.WaitSample, error)
}

// RealtimeProvider is the optional push-update capability. When the
// provider exposes a streaming endpoint, snapshots arrive via deliver
// without polling; when absent, NoopRealtimeProvider keeps the engine
// polling-only with the same wiring.
type RealtimeProvider interface {
	// Start begins streaming updates for the park. It returns a stop
	// function that must be safe to call exactly once.
	Start(ctx context.Context, parkID string, deliver func(*models.CachedWaitTimes)) (stop func(), err error)
}

// NoopRealtimeProvider is the absent-capability implementation.
type NoopRealtimeProvider struct{}

// Start never delivers anything and stops instantly.
func (NoopRealtimeProvider) Start(_ context.Context, _ string, _ func(*models.CachedWaitTimes)) (func(), error) {
	return func() {}, nil
}
