// ParkPilot - Theme Park Itinerary Optimization and Wait-Time Intelligence
// Copyright 2026 ParkPilot Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/parkpilot/parkpilot

package scoring

import (
	"math/rand"
	"sync"
	"time"
)

// WeatherOracle answers whether rain is likely on a given date. The
// constraint engine consults it only when the request enables weather
// adaptation. Injecting the oracle keeps constraint application
// deterministic under test.
type WeatherOracle interface {
	RainLikely(date time.Time) bool
}

// BernoulliOracle is the default oracle: a fixed rain probability with a
// seeded random source. There is no real forecast feed behind it.
type BernoulliOracle struct {
	mu   sync.Mutex
	rng  *rand.Rand
	prob float64
}

// NewBernoulliOracle creates an oracle with the given seed and rain
// probability in [0,1].
func NewBernoulliOracle(seed int64, prob float64) *BernoulliOracle {
	return &BernoulliOracle{
		rng:  rand.New(rand.NewSource(seed)), //nolint:gosec // weather heuristic, not crypto
		prob: prob,
	}
}

// RainLikely draws once per call.
func (o *BernoulliOracle) RainLikely(time.Time) bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.rng.Float64() < o.prob
}

// StaticOracle always answers the same, for tests and for callers that
// already know the forecast.
type StaticOracle bool

// RainLikely returns the fixed answer.
func (s StaticOracle) RainLikely(time.Time) bool { return bool(s) }
