// ParkPilot - Theme Park Itinerary Optimization and Wait-Time Intelligence
// Copyright 2026 ParkPilot Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/parkpilot/parkpilot

// Package planner turns a scored candidate pool into time-ordered daily
// plans. The builder is a single-pass greedy temporal scheduler: it is
// deterministic given its inputs, always returns a plan for a valid
// window, and makes no optimality guarantee beyond "reasonable and
// explainable".
//
// Alternative plans re-run the same builder under locally perturbed
// scores. Every alternative operates on its own pool snapshot, so runs
// are order-independent and the canonical pool is never mutated.
package planner
