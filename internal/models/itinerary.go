// ParkPilot - Theme Park Itinerary Optimization and Wait-Time Intelligence
// Copyright 2026 ParkPilot Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/parkpilot/parkpilot

package models

import "time"

// EntryKind discriminates the itinerary entry variants.
type EntryKind string

const (
	EntryActivity EntryKind = "activity"
	EntryMeal     EntryKind = "meal"
	EntryBreak    EntryKind = "break"
	EntryFlexible EntryKind = "flexible"
)

// ItineraryEntry is one slot of a daily plan. Activity entries carry the
// attraction fields; meal, break and flexible entries only use the time
// bounds and notes.
type ItineraryEntry struct {
	Kind  EntryKind `json:"kind"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`

	AttractionID     string  `json:"attraction_id,omitempty"`
	AttractionName   string  `json:"attraction_name,omitempty"`
	WaitMinutes      int     `json:"wait_minutes,omitempty"`
	WalkMinutes      int     `json:"walk_minutes,omitempty"`
	FastPassUsed     bool    `json:"fast_pass_used,omitempty"`
	FastPassPriceUSD float64 `json:"fast_pass_price_usd,omitempty"`
	Notes            string  `json:"notes,omitempty"`
}

// DurationMinutes returns the entry span in whole minutes.
func (e *ItineraryEntry) DurationMinutes() int {
	return int(e.End.Sub(e.Start).Minutes())
}

// StatsSummary carries derived metrics for a finished plan.
type StatsSummary struct {
	AttractionCount   int       `json:"attraction_count"`
	TotalWaitMinutes  int       `json:"total_wait_minutes"`
	WalkingDistanceKm float64   `json:"walking_distance_km"`
	Start             time.Time `json:"start"`
	End               time.Time `json:"end"`

	// CoveragePercent is how much of the priority list made it into the
	// plan, in [0,100]. 100 when no priority list was given.
	CoveragePercent float64 `json:"coverage_percent"`

	FastPassCount    int     `json:"fast_pass_count"`
	FastPassSpendUSD float64 `json:"fast_pass_spend_usd"`
}

// ItineraryPlan is an ordered, chronologically non-overlapping sequence of
// entries plus derived stats.
type ItineraryPlan struct {
	ID      string           `json:"id"`
	Label   string           `json:"label"`
	Entries []ItineraryEntry `json:"entries"`
	Stats   StatsSummary     `json:"stats"`
}

// Activities returns only the activity entries, in order.
func (p *ItineraryPlan) Activities() []ItineraryEntry {
	out := make([]ItineraryEntry, 0, len(p.Entries))
	for _, e := range p.Entries {
		if e.Kind == EntryActivity {
			out = append(out, e)
		}
	}
	return out
}

// Includes reports whether the plan schedules the given attraction.
func (p *ItineraryPlan) Includes(attractionID string) bool {
	for _, e := range p.Entries {
		if e.Kind == EntryActivity && e.AttractionID == attractionID {
			return true
		}
	}
	return false
}

// Names of the generated alternative plans.
const (
	AltMorning   = "morning"
	AltAfternoon = "afternoon"
	AltEvening   = "evening"
	AltRainyDay = "rainy_day"
	AltLowWait  = "low_wait"
	AltMaxCount = "max_count"
)

// AlternativeNames lists the alternatives every result carries, in a
// stable presentation order.
var AlternativeNames = []string{
	AltMorning, AltAfternoon, AltEvening, AltRainyDay, AltLowWait, AltMaxCount,
}

// OptimizationResult is one primary plan plus a named set of independent,
// complete alternative plans.
type OptimizationResult struct {
	RequestID    string                   `json:"request_id"`
	ParkID       string                   `json:"park_id"`
	GeneratedAt  time.Time                `json:"generated_at"`
	Primary      ItineraryPlan            `json:"primary"`
	Alternatives map[string]ItineraryPlan `json:"alternatives"`
}
