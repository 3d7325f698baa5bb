// ParkPilot - Theme Park Itinerary Optimization and Wait-Time Intelligence
// Copyright 2026 ParkPilot Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/parkpilot/parkpilot

package models

import "time"

// Category classifies an attraction by experience type.
type Category string

const (
	CategoryRide         Category = "ride"
	CategoryShow         Category = "show"
	CategoryMeetAndGreet Category = "meet_and_greet"
	CategoryParade       Category = "parade"
)

// FastPassKind distinguishes the two skip-the-line mechanisms.
type FastPassKind string

const (
	// FastPassGenie is the allotment-based pass, capped per day.
	FastPassGenie FastPassKind = "genie_plus"

	// FastPassIndividual is the individually priced pass.
	FastPassIndividual FastPassKind = "individual"
)

// FastPassOption describes skip-the-line availability for an attraction.
type FastPassOption struct {
	Eligible bool         `json:"eligible"`
	Kind     FastPassKind `json:"kind,omitempty"`
	PriceUSD float64      `json:"price_usd,omitempty"`
}

// Attraction is immutable reference data for a single park experience,
// refreshed hourly from the external provider.
type Attraction struct {
	ID                  string         `json:"id"`
	Name                string         `json:"name"`
	Category            Category       `json:"category"`
	DurationMinutes     int            `json:"duration_minutes"`
	HeightRequirementIn int            `json:"height_requirement_in,omitempty"`
	Latitude            float64        `json:"latitude,omitempty"`
	Longitude           float64        `json:"longitude,omitempty"`
	Area                string         `json:"area,omitempty"`
	Thrill              bool           `json:"thrill,omitempty"`
	Outdoor             bool           `json:"outdoor,omitempty"`
	MobilityChallenging bool           `json:"mobility_challenging,omitempty"`
	FastPass            FastPassOption `json:"fast_pass"`
}

// HasCoordinates reports whether the attraction carries usable geographic
// coordinates. (0,0) is in the Gulf of Guinea, not in any park.
func (a *Attraction) HasCoordinates() bool {
	return a.Latitude != 0 || a.Longitude != 0
}

// HasHeightRequirement reports whether the attraction enforces a minimum
// rider height.
func (a *Attraction) HasHeightRequirement() bool {
	return a.HeightRequirementIn > 0
}

// TimeSlot is a discretized time-of-day bucket used to key predicted waits.
type TimeSlot string

const (
	SlotMorning   TimeSlot = "morning"   // park open - 11:00
	SlotMidday    TimeSlot = "midday"    // 11:00 - 16:00
	SlotAfternoon TimeSlot = "afternoon" // 16:00 - 19:00
	SlotEvening   TimeSlot = "evening"   // 19:00 onward
)

// AllTimeSlots lists the slots in chronological order.
var AllTimeSlots = []TimeSlot{SlotMorning, SlotMidday, SlotAfternoon, SlotEvening}

// SlotFor maps a wall-clock instant to its time-of-day slot.
func SlotFor(t time.Time) TimeSlot {
	switch h := t.Hour(); {
	case h < 11:
		return SlotMorning
	case h < 16:
		return SlotMidday
	case h < 19:
		return SlotAfternoon
	default:
		return SlotEvening
	}
}

// RepresentativeHour returns the hour used when a predictor needs a concrete
// instant for a slot.
func (s TimeSlot) RepresentativeHour() int {
	switch s {
	case SlotMorning:
		return 10
	case SlotMidday:
		return 13
	case SlotAfternoon:
		return 17
	case SlotEvening:
		return 20
	default:
		return 12
	}
}

// ParkHours is one day of the park operating schedule.
type ParkHours struct {
	Date   time.Time `json:"date"`
	Opens  time.Time `json:"opens"`
	Closes time.Time `json:"closes"`
}
