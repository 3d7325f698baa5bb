// ParkPilot - Theme Park Itinerary Optimization and Wait-Time Intelligence
// Copyright 2026 ParkPilot Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/parkpilot/parkpilot

package models

// Constraint tags applied by the constraint engine.
const (
	TagHeightRestriction   = "HEIGHT_RESTRICTION"
	TagMobilityChallenging = "MOBILITY_CHALLENGING"
	TagWeatherSensitive    = "WEATHER_SENSITIVE"
)

// Candidate is an Attraction enriched with request-scoped planning data.
// A candidate is created per optimization request and owned exclusively by
// one planning run. The PredictedWait and WalkingMinutes maps are filled
// once during enrichment and treated as read-only afterwards; Score and
// ConstraintTags are the only fields that later stages mutate, and
// alternative plans operate on snapshots so those mutations never leak
// between runs.
type Candidate struct {
	Attraction

	// CurrentWaitMinutes is the live standby wait at enrichment time.
	// Negative values mark sentinel data from a failed fetch.
	CurrentWaitMinutes int

	// PredictedWait holds the predicted standby wait per time-of-day slot.
	PredictedWait map[TimeSlot]int

	// WalkingMinutes maps every other candidate's attraction ID to the
	// walking time from this attraction, pace modifiers already applied.
	WalkingMinutes map[string]float64

	// Score is the desirability score assigned by the scoring engine and
	// adjusted by the constraint engine.
	Score float64

	// ConstraintTags lists the constraint penalties applied to this
	// candidate, for explainability.
	ConstraintTags []string
}

// Clone returns a copy safe for independent score mutation. The enrichment
// maps are shared because they are read-only after enrichment; Score and
// ConstraintTags get their own storage.
func (c *Candidate) Clone() *Candidate {
	dup := *c
	if c.ConstraintTags != nil {
		dup.ConstraintTags = make([]string, len(c.ConstraintTags))
		copy(dup.ConstraintTags, c.ConstraintTags)
	}
	return &dup
}

// PredictedWaitAt returns the predicted wait for the slot containing the
// given representative slot, falling back to the current wait when the slot
// was never predicted.
func (c *Candidate) PredictedWaitAt(slot TimeSlot) int {
	if w, ok := c.PredictedWait[slot]; ok {
		return w
	}
	return c.CurrentWaitMinutes
}

// WalkingMinutesFrom returns the walking time from the attraction with the
// given ID, or the supplied default when unknown. An empty from ID means
// the party is at the park entrance.
func (c *Candidate) WalkingMinutesFrom(fromID string, def float64) float64 {
	if fromID == "" {
		return def
	}
	if m, ok := c.WalkingMinutes[fromID]; ok {
		return m
	}
	return def
}
