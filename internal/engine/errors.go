// ParkPilot - Theme Park Itinerary Optimization and Wait-Time Intelligence
// Copyright 2026 ParkPilot Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/parkpilot/parkpilot

package engine

import "errors"

// Sentinel error categories for API error mapping. Wrapped causes carry
// the detail; callers branch with errors.Is.
var (
	// ErrValidation marks a malformed or invalid optimization request.
	ErrValidation = errors.New("invalid request")

	// ErrDataSource marks an unrecoverable upstream data failure, such as
	// a missing attraction catalog. Partial live-data failures are
	// absorbed and never produce this error.
	ErrDataSource = errors.New("park data unavailable")
)
