// ParkPilot - Theme Park Itinerary Optimization and Wait-Time Intelligence
// Copyright 2026 ParkPilot Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/parkpilot/parkpilot

package models

import "time"

// RideStyle expresses the party's preferred ride intensity.
type RideStyle string

const (
	RideStyleThrill RideStyle = "thrill"
	RideStyleFamily RideStyle = "family"
	RideStyleMixed  RideStyle = "mixed"
)

// Pace expresses the party's walking speed.
type Pace string

const (
	PaceSlow     Pace = "slow"
	PaceModerate Pace = "moderate"
	PaceFast     Pace = "fast"
)

// DefaultMaxWaitMinutes is assumed when the request carries no explicit
// maximum acceptable wait.
const DefaultMaxWaitMinutes = 60

// Party describes who is visiting.
type Party struct {
	Size      int   `json:"size" validate:"required,min=1,max=20"`
	ChildAges []int `json:"child_ages,omitempty" validate:"dive,min=0,max=17"`
	Mobility  bool  `json:"mobility_considerations,omitempty"`
	Stroller  bool  `json:"stroller,omitempty"`
}

// Window is an explicit planning time window.
type Window struct {
	Start time.Time `json:"start" validate:"required"`
	End   time.Time `json:"end" validate:"required,gtfield=Start"`
}

// Preferences bundles everything the visitor cares about.
type Preferences struct {
	PriorityIDs          []string  `json:"priority_attraction_ids,omitempty"`
	ExcludedIDs          []string  `json:"excluded_attraction_ids,omitempty"`
	RideStyle            RideStyle `json:"ride_style,omitempty" validate:"omitempty,oneof=thrill family mixed"`
	IncludeShows         bool      `json:"include_shows,omitempty"`
	IncludeMeetAndGreets bool      `json:"include_meet_and_greets,omitempty"`

	// MaxWaitMinutes is the maximum acceptable standby wait.
	// Zero means "not set"; DefaultMaxWaitMinutes applies for filtering.
	MaxWaitMinutes int `json:"max_wait_minutes,omitempty" validate:"omitempty,min=1,max=600"`

	WalkingPace        Pace `json:"walking_pace,omitempty" validate:"omitempty,oneof=slow moderate fast"`
	BreakBudgetMinutes int  `json:"break_budget_minutes,omitempty" validate:"omitempty,min=0,max=480"`

	// LunchAnchor / DinnerAnchor override the default meal anchors
	// (window start +4h and +9h).
	LunchAnchor  *time.Time `json:"lunch_anchor,omitempty"`
	DinnerAnchor *time.Time `json:"dinner_anchor,omitempty"`

	// RideRepeats allows priority attractions to be scheduled twice.
	RideRepeats bool `json:"ride_repeats,omitempty"`

	UseGeniePlus               bool    `json:"use_genie_plus,omitempty"`
	UseIndividualLightningLane bool    `json:"use_individual_lightning_lane,omitempty"`
	MaxLightningLaneBudgetUSD  float64 `json:"max_lightning_lane_budget_usd,omitempty" validate:"omitempty,min=0"`

	WeatherAdaptation bool `json:"weather_adaptation,omitempty"`
	AccommodateHeight bool `json:"accommodate_height,omitempty"`
}

// EffectiveMaxWait returns the explicit maximum wait, or the default when
// none was set.
func (p *Preferences) EffectiveMaxWait() int {
	if p.MaxWaitMinutes > 0 {
		return p.MaxWaitMinutes
	}
	return DefaultMaxWaitMinutes
}

// HasExplicitMaxWait reports whether the visitor set a maximum wait.
func (p *Preferences) HasExplicitMaxWait() bool {
	return p.MaxWaitMinutes > 0
}

// IsPriority reports whether the attraction ID is on the must-include list.
func (p *Preferences) IsPriority(id string) bool {
	for _, pid := range p.PriorityIDs {
		if pid == id {
			return true
		}
	}
	return false
}

// IsExcluded reports whether the attraction ID is on the exclusion list.
func (p *Preferences) IsExcluded(id string) bool {
	for _, eid := range p.ExcludedIDs {
		if eid == id {
			return true
		}
	}
	return false
}

// OptimizationRequest is the primary input to the engine.
type OptimizationRequest struct {
	ParkID string    `json:"park_id" validate:"required"`
	Date   time.Time `json:"date" validate:"required"`

	// Window optionally pins the planning window; when nil the park
	// operating schedule for Date is used.
	Window *Window `json:"window,omitempty"`

	Party       Party       `json:"party"`
	Preferences Preferences `json:"preferences"`
}
