// ParkPilot - Theme Park Itinerary Optimization and Wait-Time Intelligence
// Copyright 2026 ParkPilot Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/parkpilot/parkpilot

package parksource

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/parkpilot/parkpilot/internal/metrics"
	"github.com/parkpilot/parkpilot/internal/models"
)

// CircuitBreakerClient wraps Client with the circuit breaker pattern so a
// slow or dead provider fails fast instead of piling up blocked fetches.
//
// The breaker uses real time for its interval and timeout bookkeeping;
// tests exercise the wrapped client directly or drive the breaker with
// enough failures to trip it.
type CircuitBreakerClient struct {
	client *Client
	cb     *gobreaker.CircuitBreaker[interface{}]
	name   string
	logger zerolog.Logger
}

// NewCircuitBreakerClient wraps a provider client. The breaker opens at a
// 60% failure rate over at least 10 requests, resets counts every minute
// while closed, and probes again 2 minutes after opening.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCircuitBreakerClient(client *Client, logger zerolog.Logger) *CircuitBreakerClient {
	cbName := "parksource-api"
	l := logger.With().Str("component", "parksource.breaker").Logger()

	metrics.CircuitBreakerState.WithLabelValues(cbName).Set(0) // 0 = closed

	cb := gobreaker.NewCircuitBreaker[interface{}](gobreaker.Settings{
		Name:        cbName,
		MaxRequests: 3,
		Interval:    time.Minute,
		Timeout:     2 * time.Minute,

		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 10 {
				return false
			}
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			if failureRatio >= 0.6 {
				l.Warn().
					Uint32("failures", counts.TotalFailures).
					Float64("failure_rate", failureRatio*100).
					Msg("opening provider circuit")
				return true
			}
			return false
		},

		OnStateChange: func(name string, from, to gobreaker.State) {
			fromStr, toStr := stateToString(from), stateToString(to)
			l.Info().Str("from", fromStr).Str("to", toStr).Msg("provider circuit state change")
			metrics.CircuitBreakerState.WithLabelValues(name).Set(stateToFloat(to))
			metrics.CircuitBreakerTransitions.WithLabelValues(name, fromStr, toStr).Inc()
		},
	})

	return &CircuitBreakerClient{client: client, cb: cb, name: cbName, logger: l}
}

func (cbc *CircuitBreakerClient) execute(fn func() (interface{}, error)) (interface{}, error) {
	return cbc.cb.Execute(fn)
}

// castResult safely type-casts the breaker result.
func castResult[T any](result interface{}, err error) (T, error) {
	var zero T
	if err != nil {
		return zero, err
	}
	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("circuit breaker: unexpected result type %T", result)
	}
	return typed, nil
}

// FetchAttractions retrieves the catalog with breaker protection.
func (cbc *CircuitBreakerClient) FetchAttractions(ctx context.Context, parkID string) ([]models.Attraction, error) {
	return castResult[[]models.Attraction](cbc.execute(func() (interface{}, error) {
		return cbc.client.FetchAttractions(ctx, parkID)
	}))
}

// FetchWaitTime retrieves one live queue entry with breaker protection.
func (cbc *CircuitBreakerClient) FetchWaitTime(ctx context.Context, parkID, attractionID string) (models.AttractionWaitTime, error) {
	return castResult[models.AttractionWaitTime](cbc.execute(func() (interface{}, error) {
		return cbc.client.FetchWaitTime(ctx, parkID, attractionID)
	}))
}

// FetchSchedule retrieves the operating schedule with breaker protection.
func (cbc *CircuitBreakerClient) FetchSchedule(ctx context.Context, parkID string) ([]models.ParkHours, error) {
	return castResult[[]models.ParkHours](cbc.execute(func() (interface{}, error) {
		return cbc.client.FetchSchedule(ctx, parkID)
	}))
}

// FetchHistory retrieves wait history with breaker protection.
func (cbc *CircuitBreakerClient) FetchHistory(ctx context.Context, attractionID string, days int) ([]models.WaitSample, error) {
	return castResult[[]models.WaitSample](cbc.execute(func() (interface{}, error) {
		return cbc.client.FetchHistory(ctx, attractionID, days)
	}))
}

func stateToFloat(state gobreaker.State) float64 {
	switch state {
	case gobreaker.StateClosed:
		return 0
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return -1
	}
}

func stateToString(state gobreaker.State) string {
	switch state {
	case gobreaker.StateClosed:
		return "closed"
	case gobreaker.StateHalfOpen:
		return "half-open"
	case gobreaker.StateOpen:
		return "open"
	default:
		return "unknown"
	}
}
