// ParkPilot - Theme Park Itinerary Optimization and Wait-Time Intelligence
// Copyright 2026 ParkPilot Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/parkpilot/parkpilot

// Package predict defines the wait-time predictor capability and its
// default hour-of-day heuristic implementation.
package predict

import (
	"math"
	"time"
)

// Predictor produces a predicted wait for an attraction at a future
// instant from the current observed wait. Implementations must be cheap
// and deterministic; the planner calls Predict once per candidate per
// scheduling step. A statistical model can be substituted without
// touching callers.
type Predictor interface {
	Predict(attractionID string, target time.Time, currentWaitMinutes int) int
}

// HourOfDay is the default predictor: a fixed multiplier on the current
// wait keyed by the target's hour of day.
//
//	00:00-08:59  x0.7  (rope drop and late night are quiet)
//	09:00-10:59  x1.0
//	11:00-15:59  x1.3  (midday peak)
//	16:00-18:59  x1.1
//	19:00-23:59  x0.7
type HourOfDay struct{}

// NewHourOfDay returns the heuristic predictor.
func NewHourOfDay() HourOfDay {
	return HourOfDay{}
}

// Predict applies the hour multiplier, rounding to the nearest minute.
// Sentinel (negative) waits pass through unchanged.
func (HourOfDay) Predict(_ string, target time.Time, currentWaitMinutes int) int {
	if currentWaitMinutes < 0 {
		return currentWaitMinutes
	}
	factor := hourFactor(target.Hour())
	return int(math.Round(float64(currentWaitMinutes) * factor))
}

func hourFactor(hour int) float64 {
	switch {
	case hour <= 8:
		return 0.7
	case hour <= 10:
		return 1.0
	case hour <= 15:
		return 1.3
	case hour <= 18:
		return 1.1
	default:
		return 0.7
	}
}
