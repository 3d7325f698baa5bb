// ParkPilot - Theme Park Itinerary Optimization and Wait-Time Intelligence
// Copyright 2026 ParkPilot Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/parkpilot/parkpilot

package predict

import (
	"testing"
	"time"
)

func at(hour int) time.Time {
	return time.Date(2026, 8, 30, hour, 30, 0, 0, time.UTC)
}

func TestHourOfDayMultipliers(t *testing.T) {
	p := NewHourOfDay()

	tests := []struct {
		hour int
		wait int
		want int
	}{
		{7, 30, 21},   // early morning x0.7
		{8, 30, 21},   // boundary of quiet band
		{9, 30, 30},   // shoulder x1.0
		{10, 30, 30},  // shoulder x1.0
		{11, 30, 39},  // midday peak x1.3
		{13, 30, 39},  // midday peak
		{15, 30, 39},  // last peak hour
		{16, 30, 33},  // late afternoon x1.1
		{18, 30, 33},  // late afternoon
		{19, 30, 21},  // evening x0.7
		{23, 30, 21},  // late night
		{13, 45, 59},  // 58.5 rounds to nearest
		{13, 0, 0},    // zero stays zero
	}

	for _, tt := range tests {
		got := p.Predict("a1", at(tt.hour), tt.wait)
		if got != tt.want {
			t.Errorf("Predict(hour=%d, wait=%d) = %d, want %d", tt.hour, tt.wait, got, tt.want)
		}
	}
}

func TestSentinelWaitPassesThrough(t *testing.T) {
	p := NewHourOfDay()
	if got := p.Predict("a1", at(13), -1); got != -1 {
		t.Errorf("sentinel wait = %d, want -1", got)
	}
}
