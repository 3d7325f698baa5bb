// ParkPilot - Theme Park Itinerary Optimization and Wait-Time Intelligence
// Copyright 2026 ParkPilot Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/parkpilot/parkpilot

package models

import (
	"testing"
	"time"
)

func TestSlotFor(t *testing.T) {
	day := time.Date(2026, 8, 15, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		hour int
		want TimeSlot
	}{
		{8, SlotMorning},
		{10, SlotMorning},
		{11, SlotMidday},
		{15, SlotMidday},
		{16, SlotAfternoon},
		{18, SlotAfternoon},
		{19, SlotEvening},
		{23, SlotEvening},
	}

	for _, tt := range tests {
		got := SlotFor(day.Add(time.Duration(tt.hour) * time.Hour))
		if got != tt.want {
			t.Errorf("SlotFor(hour=%d) = %s, want %s", tt.hour, got, tt.want)
		}
	}
}

func TestCandidateCloneIsolatesScore(t *testing.T) {
	c := &Candidate{
		Attraction:         Attraction{ID: "a1", Name: "Space Coaster"},
		CurrentWaitMinutes: 30,
		Score:              75,
		ConstraintTags:     []string{TagWeatherSensitive},
	}

	dup := c.Clone()
	dup.Score = -10
	dup.ConstraintTags = append(dup.ConstraintTags, TagHeightRestriction)

	if c.Score != 75 {
		t.Errorf("clone mutation leaked into original score: %v", c.Score)
	}
	if len(c.ConstraintTags) != 1 {
		t.Errorf("clone mutation leaked into original tags: %v", c.ConstraintTags)
	}
}

func TestPreferencesEffectiveMaxWait(t *testing.T) {
	p := Preferences{}
	if got := p.EffectiveMaxWait(); got != DefaultMaxWaitMinutes {
		t.Errorf("default max wait = %d, want %d", got, DefaultMaxWaitMinutes)
	}
	if p.HasExplicitMaxWait() {
		t.Error("expected no explicit max wait")
	}

	p.MaxWaitMinutes = 30
	if got := p.EffectiveMaxWait(); got != 30 {
		t.Errorf("explicit max wait = %d, want 30", got)
	}
	if !p.HasExplicitMaxWait() {
		t.Error("expected explicit max wait")
	}
}

func TestSentinelWaitTime(t *testing.T) {
	s := SentinelWaitTime("a9")
	if !s.IsSentinel() {
		t.Error("sentinel record not recognized as sentinel")
	}
	if s.Name != "Unknown" {
		t.Errorf("sentinel name = %q, want %q", s.Name, "Unknown")
	}
	if s.WaitMinutes != SentinelWaitMinutes {
		t.Errorf("sentinel wait = %d, want %d", s.WaitMinutes, SentinelWaitMinutes)
	}
}

func TestPlanIncludes(t *testing.T) {
	plan := ItineraryPlan{Entries: []ItineraryEntry{
		{Kind: EntryActivity, AttractionID: "a1"},
		{Kind: EntryMeal},
		{Kind: EntryActivity, AttractionID: "a2"},
	}}

	if !plan.Includes("a2") {
		t.Error("expected plan to include a2")
	}
	if plan.Includes("a3") {
		t.Error("did not expect plan to include a3")
	}
	if got := len(plan.Activities()); got != 2 {
		t.Errorf("activity count = %d, want 2", got)
	}
}
