// ParkPilot - Theme Park Itinerary Optimization and Wait-Time Intelligence
// Copyright 2026 ParkPilot Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/parkpilot/parkpilot

package scoring

import (
	"sort"

	"github.com/rs/zerolog"

	"github.com/parkpilot/parkpilot/internal/models"
)

// Constraint penalties.
const (
	heightPenalty   = -80.0
	mobilityPenalty = -70.0
	weatherPenalty  = -30.0
)

// ConstraintEngine applies hard/soft penalties on top of base scores.
type ConstraintEngine struct {
	weather WeatherOracle
	logger  zerolog.Logger
}

// NewConstraintEngine creates a constraint engine with the given weather
// oracle.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewConstraintEngine(weather WeatherOracle, logger zerolog.Logger) *ConstraintEngine {
	return &ConstraintEngine{
		weather: weather,
		logger:  logger.With().Str("component", "constraints").Logger(),
	}
}

// Apply mutates candidate scores and tags in place, then re-sorts the
// slice by score, descending and stable. Candidates already at or below
// zero are skipped; they are effectively excluded and penalizing them
// further changes nothing.
func (ce *ConstraintEngine) Apply(candidates []*models.Candidate, req *models.OptimizationRequest) {
	rainLikely := false
	if req.Preferences.WeatherAdaptation {
		rainLikely = ce.weather.RainLikely(req.Date)
	}

	for _, c := range candidates {
		if c.Score <= 0 {
			continue
		}
		ce.applyHeight(c, req)
		ce.applyMobility(c, req)
		ce.applyWeather(c, req, rainLikely)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})
}

func (ce *ConstraintEngine) applyHeight(c *models.Candidate, req *models.OptimizationRequest) {
	if !req.Preferences.AccommodateHeight || !c.HasHeightRequirement() {
		return
	}
	for _, age := range req.Party.ChildAges {
		if estimatedHeightForAge(age) < c.HeightRequirementIn {
			c.Score += heightPenalty
			c.ConstraintTags = append(c.ConstraintTags, models.TagHeightRestriction)
			return
		}
	}
}

func (ce *ConstraintEngine) applyMobility(c *models.Candidate, req *models.OptimizationRequest) {
	if req.Party.Mobility && c.MobilityChallenging {
		c.Score += mobilityPenalty
		c.ConstraintTags = append(c.ConstraintTags, models.TagMobilityChallenging)
	}
}

func (ce *ConstraintEngine) applyWeather(c *models.Candidate, req *models.OptimizationRequest, rainLikely bool) {
	if req.Preferences.WeatherAdaptation && c.Outdoor && rainLikely {
		c.Score += weatherPenalty
		c.ConstraintTags = append(c.ConstraintTags, models.TagWeatherSensitive)
	}
}
