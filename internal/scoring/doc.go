// ParkPilot - Theme Park Itinerary Optimization and Wait-Time Intelligence
// Copyright 2026 ParkPilot Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/parkpilot/parkpilot

// Package scoring assigns desirability scores to enriched candidates and
// applies hard/soft constraint penalties on top of them. Scores are
// additive and explainable: every adjustment is a fixed, documented delta
// so a plan can be traced back to the rules that shaped it.
package scoring
