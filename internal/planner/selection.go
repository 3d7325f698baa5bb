// ParkPilot - Theme Park Itinerary Optimization and Wait-Time Intelligence
// Copyright 2026 ParkPilot Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/parkpilot/parkpilot

package planner

import "github.com/parkpilot/parkpilot/internal/models"

// Transient selection adjustments. These modify the pick for the current
// moment only; the candidate's stored score is never touched.
const (
	nearWalkMinutes     = 15
	farWalkPenaltyRate  = 2
	shortSlotWaitBonus  = 20
	shortSlotWait       = 15
	longSlotWaitPenalty = -15
	longSlotWait        = 60

	individualPassPickBonus = 25
	geniePassPickBonus      = 15

	// maxRepeatCount bounds how often a repeatable priority attraction
	// may appear in one plan.
	maxRepeatCount = 2
)

// selectNext picks the best candidate for the current moment, or nil when
// nothing is eligible. Candidates arrive sorted by stored score descending;
// ties on transient score keep that order, so selection is deterministic.
func (b *Builder) selectNext(candidates []*models.Candidate, req *models.OptimizationRequest, st *buildState) *models.Candidate {
	var (
		best      *models.Candidate
		bestScore float64
	)

	slot := models.SlotFor(st.now)
	maxWait := req.Preferences.EffectiveMaxWait()

	for _, c := range candidates {
		if !b.eligible(c, req, st, maxWait) {
			continue
		}
		score := c.Score + b.transientDelta(c, req, st, slot)
		if best == nil || score > bestScore {
			best = c
			bestScore = score
		}
	}
	return best
}

func (b *Builder) eligible(c *models.Candidate, req *models.OptimizationRequest, st *buildState, maxWait int) bool {
	if st.unfit[c.ID] || c.Score < 0 {
		return false
	}
	if n := st.used[c.ID]; n > 0 {
		if !req.Preferences.RideRepeats || !req.Preferences.IsPriority(c.ID) || n >= maxRepeatCount {
			return false
		}
	}
	// An over-cap current wait only disqualifies when no pass could
	// shortcut it.
	if c.CurrentWaitMinutes > maxWait && !c.FastPass.Eligible {
		return false
	}
	return true
}

// transientDelta scores the candidate for right now: proximity, the
// predicted wait in the current time slot, and pass availability.
func (b *Builder) transientDelta(c *models.Candidate, req *models.OptimizationRequest, st *buildState, slot models.TimeSlot) float64 {
	var delta float64

	walk := c.WalkingMinutesFrom(st.location, b.cfg.DefaultWalkMinutes)
	if walk <= nearWalkMinutes {
		delta += nearWalkMinutes - walk
	} else {
		delta -= farWalkPenaltyRate * (walk - nearWalkMinutes)
	}

	switch w := c.PredictedWaitAt(slot); {
	case w >= 0 && w < shortSlotWait:
		delta += shortSlotWaitBonus
	case w > longSlotWait:
		delta += longSlotWaitPenalty
	}

	if c.FastPass.Eligible {
		switch c.FastPass.Kind {
		case models.FastPassIndividual:
			if req.Preferences.UseIndividualLightningLane &&
				st.llSpent+c.FastPass.PriceUSD <= req.Preferences.MaxLightningLaneBudgetUSD {
				delta += individualPassPickBonus
			}
		case models.FastPassGenie:
			if req.Preferences.UseGeniePlus && st.genieUsed < b.cfg.GeniePlusDailyCap {
				delta += geniePassPickBonus
			}
		}
	}
	return delta
}
