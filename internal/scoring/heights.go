// ParkPilot - Theme Park Itinerary Optimization and Wait-Time Intelligence
// Copyright 2026 ParkPilot Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/parkpilot/parkpilot

package scoring

// estimatedHeightForAge approximates a child's height in inches from their
// age. The request model carries ages, not measured heights, so height
// gates are checked against 50th-percentile growth-chart brackets. When a
// real height field is added to Party this function is the only thing the
// constraint engine needs swapped.
func estimatedHeightForAge(years int) int {
	switch {
	case years <= 1:
		return 30
	case years <= 3:
		return 36
	case years <= 5:
		return 42
	case years <= 7:
		return 47
	case years <= 9:
		return 51
	case years <= 12:
		return 57
	default:
		return 62
	}
}
