// ParkPilot - Theme Park Itinerary Optimization and Wait-Time Intelligence
// Copyright 2026 ParkPilot Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/parkpilot/parkpilot

package supervisor

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/parkpilot/parkpilot/internal/models"
)

// WaitTimeRefresher is the slice of the signal service the poller needs.
// Satisfied by *signal.Service.
type WaitTimeRefresher interface {
	CurrentWaitTimes(ctx context.Context, parkID string, forceRefresh bool) (*models.CachedWaitTimes, error)
}

// RefreshService periodically forces a live wait-time refresh for the
// configured parks so cached snapshots stay warm and bus subscribers keep
// receiving updates even without request traffic.
type RefreshService struct {
	refresher WaitTimeRefresher
	parks     []string
	interval  time.Duration
	logger    zerolog.Logger
}

// NewRefreshService creates the background poller.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRefreshService(refresher WaitTimeRefresher, parks []string, interval time.Duration, logger zerolog.Logger) *RefreshService {
	if interval <= 0 {
		interval = time.Minute
	}
	return &RefreshService{
		refresher: refresher,
		parks:     parks,
		interval:  interval,
		logger:    logger.With().Str("component", "refresh").Logger(),
	}
}

// Serve implements suture.Service. It refreshes all parks once immediately,
// then on every tick until the context is canceled. Per-park failures are
// logged and never abort the loop.
func (s *RefreshService) Serve(ctx context.Context) error {
	if len(s.parks) == 0 {
		s.logger.Info().Msg("no parks configured, refresh poller idle")
		<-ctx.Done()
		return ctx.Err()
	}

	s.refreshAll(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			s.refreshAll(ctx)
		}
	}
}

func (s *RefreshService) refreshAll(ctx context.Context) {
	for _, parkID := range s.parks {
		if ctx.Err() != nil {
			return
		}
		snapshot, err := s.refresher.CurrentWaitTimes(ctx, parkID, true)
		if err != nil {
			s.logger.Warn().Err(err).Str("park", parkID).Msg("refresh failed")
			continue
		}
		s.logger.Debug().
			Str("park", parkID).
			Int("attractions", len(snapshot.Times)).
			Msg("refreshed wait times")
	}
}

// String implements fmt.Stringer; suture uses it in supervision logs.
func (s *RefreshService) String() string {
	return "waittime-refresh"
}
