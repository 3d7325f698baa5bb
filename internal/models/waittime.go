// ParkPilot - Theme Park Itinerary Optimization and Wait-Time Intelligence
// Copyright 2026 ParkPilot Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/parkpilot/parkpilot

package models

import "time"

// Attraction operating statuses reported by the provider.
const (
	StatusOperating = "OPERATING"
	StatusDown      = "DOWN"
	StatusClosed    = "CLOSED"
	StatusUnknown   = "UNKNOWN"
)

// SentinelWaitMinutes marks wait-time records substituted for failed
// per-attraction fetches. A batch never fails outright for partial errors.
const SentinelWaitMinutes = -1

// AttractionWaitTime is one attraction's live queue state.
type AttractionWaitTime struct {
	AttractionID string `json:"attraction_id"`
	Name         string `json:"name"`
	WaitMinutes  int    `json:"wait_minutes"`
	Status       string `json:"status"`
}

// IsSentinel reports whether this record stands in for a failed fetch.
func (w *AttractionWaitTime) IsSentinel() bool {
	return w.WaitMinutes == SentinelWaitMinutes
}

// SentinelWaitTime builds the substitute record for an attraction whose
// fetch failed.
func SentinelWaitTime(attractionID string) AttractionWaitTime {
	return AttractionWaitTime{
		AttractionID: attractionID,
		Name:         "Unknown",
		WaitMinutes:  SentinelWaitMinutes,
		Status:       StatusUnknown,
	}
}

// CachedWaitTimes is a park-level snapshot of live queue state.
type CachedWaitTimes struct {
	ParkID    string               `json:"park_id"`
	FetchedAt time.Time            `json:"fetched_at"`
	Times     []AttractionWaitTime `json:"times"`
}

// WaitSample is one historical wait-time observation.
type WaitSample struct {
	AttractionID string    `json:"attraction_id"`
	Timestamp    time.Time `json:"timestamp"`
	WaitMinutes  int       `json:"wait_minutes"`
}

// PredictedWaitTime is a short-horizon wait prediction with confidence.
type PredictedWaitTime struct {
	AttractionID     string    `json:"attraction_id"`
	Target           time.Time `json:"target"`
	PredictedMinutes int       `json:"predicted_minutes"`

	// Confidence is in [0,1]; anomalous live/predicted deviation lowers it.
	Confidence float64 `json:"confidence"`
}

// LiveStatus is the bulk live-data record keyed by attraction ID.
type LiveStatus struct {
	WaitMinutes int    `json:"wait_minutes"`
	Status      string `json:"status"`
}
