// ParkPilot - Theme Park Itinerary Optimization and Wait-Time Intelligence
// Copyright 2026 ParkPilot Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/parkpilot/parkpilot

package planner

import "github.com/parkpilot/parkpilot/internal/models"

// fastPassDecision is the outcome of evaluating skip-the-line usage for
// one scheduled activity.
type fastPassDecision struct {
	use   bool
	kind  models.FastPassKind
	price float64
}

// decideFastPass decides whether to burn a pass on this activity. A pass
// is only worth using above fastPassWorthwhileWait minutes of predicted
// wait. The allotment pass respects the daily cap; the individually
// priced pass respects the remaining dollar budget.
func (b *Builder) decideFastPass(c *models.Candidate, predictedWait int, req *models.OptimizationRequest, genieUsed int, llSpent float64) fastPassDecision {
	if !c.FastPass.Eligible || predictedWait <= fastPassWorthwhileWait {
		return fastPassDecision{}
	}

	switch c.FastPass.Kind {
	case models.FastPassGenie:
		if req.Preferences.UseGeniePlus && genieUsed < b.cfg.GeniePlusDailyCap {
			return fastPassDecision{use: true, kind: models.FastPassGenie}
		}
	case models.FastPassIndividual:
		if req.Preferences.UseIndividualLightningLane &&
			llSpent+c.FastPass.PriceUSD <= req.Preferences.MaxLightningLaneBudgetUSD {
			return fastPassDecision{use: true, kind: models.FastPassIndividual, price: c.FastPass.PriceUSD}
		}
	}
	return fastPassDecision{}
}
