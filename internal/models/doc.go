// ParkPilot - Theme Park Itinerary Optimization and Wait-Time Intelligence
// Copyright 2026 ParkPilot Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/parkpilot/parkpilot

// Package models defines the data model shared by the optimization engine:
// attraction reference data, request-scoped enriched candidates, optimization
// requests and results, itinerary plans, and wait-time sample types.
//
// Types in this package are plain data carriers with no behavior beyond
// small derived accessors. They have no dependencies on other internal
// packages so every layer of the engine can import them freely.
package models
