// ParkPilot - Theme Park Itinerary Optimization and Wait-Time Intelligence
// Copyright 2026 ParkPilot Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/parkpilot/parkpilot

package planner

import (
	"github.com/parkpilot/parkpilot/internal/models"
)

// Alternative perturbation weights. Each alternative re-scores a pool
// snapshot to emphasize one strategy, then runs the same builder.
const (
	altMorningRiserBonus     = 25
	altMorningEveningPenalty = -10

	altAfternoonShowBonus      = 20
	altAfternoonMiddayPenalty  = -10
	altAfternoonMiddayWaitHigh = 60

	altEveningShowBonus  = 25
	altEveningCalmsBonus = 10

	altRainOutdoorPenalty = -50
	altRainIndoorBonus    = 20

	altLowWaitBase = 100

	altQuickBonus   = 30
	altQuickMinutes = 45
	altLongPenalty  = -15
	altLongMinutes  = 90
)

// Generator produces the full set of named alternative plans.
type Generator struct {
	builder *Builder
}

// NewGenerator creates a Generator around the shared builder.
func NewGenerator(builder *Builder) *Generator {
	return &Generator{builder: builder}
}

// Generate builds every named alternative from its own perturbed snapshot
// of the canonical pool. The pool itself is never modified, so the result
// does not depend on generation order.
func (g *Generator) Generate(pool CandidatePool, req *models.OptimizationRequest, window models.Window) map[string]models.ItineraryPlan {
	out := make(map[string]models.ItineraryPlan, len(models.AlternativeNames))
	for _, name := range models.AlternativeNames {
		snap := pool.Snapshot()
		perturb(name, snap.Candidates())
		snap.SortByScore()
		out[name] = g.builder.Build(name, snap, req, window)
	}
	return out
}

// perturb applies one alternative's score adjustments in place.
func perturb(name string, candidates []*models.Candidate) {
	for _, c := range candidates {
		switch name {
		case models.AltMorning:
			if c.PredictedWaitAt(models.SlotMorning) < c.CurrentWaitMinutes {
				c.Score += altMorningRiserBonus
			}
			if c.Category == models.CategoryParade || c.Category == models.CategoryShow {
				c.Score += altMorningEveningPenalty
			}
		case models.AltAfternoon:
			if c.Category == models.CategoryShow || !c.Outdoor {
				c.Score += altAfternoonShowBonus
			}
			if c.PredictedWaitAt(models.SlotMidday) > altAfternoonMiddayWaitHigh {
				c.Score += altAfternoonMiddayPenalty
			}
		case models.AltEvening:
			if c.Category == models.CategoryParade || c.Category == models.CategoryShow {
				c.Score += altEveningShowBonus
			}
			if c.PredictedWaitAt(models.SlotEvening) < c.CurrentWaitMinutes {
				c.Score += altEveningCalmsBonus
			}
		case models.AltRainyDay:
			if c.Outdoor {
				c.Score += altRainOutdoorPenalty
			} else {
				c.Score += altRainIndoorBonus
			}
		case models.AltLowWait:
			s := float64(altLowWaitBase - c.CurrentWaitMinutes)
			if s < 0 {
				s = 0
			}
			c.Score = s
		case models.AltMaxCount:
			total := c.DurationMinutes + c.CurrentWaitMinutes
			if total <= altQuickMinutes {
				c.Score += altQuickBonus
			} else if total > altLongMinutes {
				c.Score += altLongPenalty
			}
		}
	}
}
