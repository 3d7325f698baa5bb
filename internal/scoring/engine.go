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

// Score deltas. Kept as named constants so the additive model stays
// explainable and testable.
const (
	baseScore = 50.0

	thrillMatchBonus   = 20.0
	familyMatchBonus   = 15.0
	typeMismatchPenalty = -10.0

	showOptInBonus    = 15.0
	showOptOutPenalty = -30.0

	shortWaitBonus        = 15.0
	overMaxWaitPenalty    = -25.0
	longWaitSoftPenalty   = -10.0
	shortWaitThreshold    = 15
	longWaitSoftThreshold = 60

	excludedPenalty = -150.0
	priorityBonus   = 50.0

	geniePassBonus      = 10.0
	individualPassBonus = 15.0

	// thrillHeightIn: a height gate above 40 inches marks a ride as
	// thrill-adjacent even without an explicit thrill tag.
	thrillHeightIn = 40
)

// Engine scores candidates against a request. Stateless and safe for
// concurrent use.
type Engine struct {
	logger zerolog.Logger
}

// NewEngine creates a scoring engine.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(logger zerolog.Logger) *Engine {
	return &Engine{
		logger: logger.With().Str("component", "scoring").Logger(),
	}
}

// ScoreAll scores every candidate in place, then sorts the slice by score,
// descending, keeping catalog order for ties. The sorted order seeds
// constraint application and greedy selection.
func (e *Engine) ScoreAll(candidates []*models.Candidate, req *models.OptimizationRequest) {
	for _, c := range candidates {
		c.Score = e.Score(c, req)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].Score > candidates[j].Score
	})

	e.logger.Debug().
		Int("candidates", len(candidates)).
		Msg("scored candidate pool")
}

// Score computes the desirability score for one candidate. The model is
// additive: start at the base, then apply each rule in a fixed order.
func (e *Engine) Score(c *models.Candidate, req *models.OptimizationRequest) float64 {
	prefs := &req.Preferences
	score := baseScore

	score += typeMatchDelta(c, prefs)
	score += waitShapingDelta(c, prefs)

	if prefs.IsExcluded(c.ID) {
		// Drives the net score deeply negative regardless of base.
		score += excludedPenalty
	}
	if prefs.IsPriority(c.ID) {
		score += priorityBonus
	}

	score += fastPassDelta(c, prefs)

	return score
}

func typeMatchDelta(c *models.Candidate, prefs *models.Preferences) float64 {
	switch c.Category {
	case models.CategoryRide:
		return rideMatchDelta(c, prefs)
	case models.CategoryShow, models.CategoryParade:
		if prefs.IncludeShows {
			return showOptInBonus
		}
		return showOptOutPenalty
	case models.CategoryMeetAndGreet:
		if prefs.IncludeMeetAndGreets {
			return showOptInBonus
		}
		return showOptOutPenalty
	default:
		return 0
	}
}

func rideMatchDelta(c *models.Candidate, prefs *models.Preferences) float64 {
	switch prefs.RideStyle {
	case models.RideStyleThrill:
		if c.Thrill || c.HeightRequirementIn > thrillHeightIn {
			return thrillMatchBonus
		}
		return typeMismatchPenalty
	case models.RideStyleFamily:
		if c.HeightRequirementIn <= thrillHeightIn {
			return familyMatchBonus
		}
		return typeMismatchPenalty
	default:
		// Mixed parties take rides as they come.
		return 0
	}
}

// waitShapingDelta applies exactly one of the three wait branches.
func waitShapingDelta(c *models.Candidate, prefs *models.Preferences) float64 {
	wait := c.CurrentWaitMinutes
	switch {
	case wait >= 0 && wait <= shortWaitThreshold:
		return shortWaitBonus
	case prefs.HasExplicitMaxWait() && wait > prefs.MaxWaitMinutes:
		return overMaxWaitPenalty
	case !prefs.HasExplicitMaxWait() && wait > longWaitSoftThreshold:
		return longWaitSoftPenalty
	default:
		return 0
	}
}

func fastPassDelta(c *models.Candidate, prefs *models.Preferences) float64 {
	if !c.FastPass.Eligible {
		return 0
	}
	switch c.FastPass.Kind {
	case models.FastPassGenie:
		if prefs.UseGeniePlus {
			return geniePassBonus
		}
	case models.FastPassIndividual:
		if prefs.UseIndividualLightningLane && c.FastPass.PriceUSD <= prefs.MaxLightningLaneBudgetUSD {
			return individualPassBonus
		}
	}
	return 0
}
