// ParkPilot - Theme Park Itinerary Optimization and Wait-Time Intelligence
// Copyright 2026 ParkPilot Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/parkpilot/parkpilot

package planner

import (
	"github.com/parkpilot/parkpilot/internal/models"
)

// minutesPerKm converts accumulated walking minutes back to distance,
// matching the walking model's base speed.
const minutesPerKm = 15.0

// ComputeStats derives the summary block for a finished plan.
func ComputeStats(plan *models.ItineraryPlan, req *models.OptimizationRequest, window models.Window) models.StatsSummary {
	s := models.StatsSummary{
		Start: window.Start,
		End:   window.End,
	}

	var walkMinutes int
	for i := range plan.Entries {
		e := &plan.Entries[i]
		if e.Kind != models.EntryActivity {
			continue
		}
		s.AttractionCount++
		s.TotalWaitMinutes += e.WaitMinutes
		walkMinutes += e.WalkMinutes
		if e.FastPassUsed {
			s.FastPassCount++
			s.FastPassSpendUSD += e.FastPassPriceUSD
		}
	}
	s.WalkingDistanceKm = float64(walkMinutes) / minutesPerKm
	s.CoveragePercent = coverage(plan, req.Preferences.PriorityIDs)
	return s
}

// coverage is the share of the priority list the plan includes, in
// [0,100]. An empty priority list counts as full coverage.
func coverage(plan *models.ItineraryPlan, priorityIDs []string) float64 {
	if len(priorityIDs) == 0 {
		return 100
	}
	var hit int
	for _, id := range priorityIDs {
		if plan.Includes(id) {
			hit++
		}
	}
	pct := 100 * float64(hit) / float64(len(priorityIDs))
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	}
	return pct
}
