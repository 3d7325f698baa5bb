// ParkPilot - Theme Park Itinerary Optimization and Wait-Time Intelligence
// Copyright 2026 ParkPilot Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/parkpilot/parkpilot

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"

	"github.com/parkpilot/parkpilot/internal/models"
)

// maxOptimizeBodyBytes bounds the optimize request body.
const maxOptimizeBodyBytes = 1 << 20

func (rt *Router) handleHealth(w http.ResponseWriter, _ *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleOptimize runs the full optimization pipeline for one request.
func (rt *Router) handleOptimize(w http.ResponseWriter, r *http.Request) {
	var req models.OptimizationRequest
	r.Body = http.MaxBytesReader(w, r.Body, maxOptimizeBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "malformed request body", nil)
		return
	}

	result, err := rt.engine.Optimize(r.Context(), &req)
	if err != nil {
		rt.logger.Warn().Err(err).Str("park", req.ParkID).Msg("optimize failed")
		respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, result)
}

// handleWaitTimes serves the park's live snapshot. ?refresh=true bypasses
// the cache.
func (rt *Router) handleWaitTimes(w http.ResponseWriter, r *http.Request) {
	parkID := chi.URLParam(r, "parkID")
	force := r.URL.Query().Get("refresh") == "true"

	snapshot, err := rt.engine.CurrentWaitTimes(r.Context(), parkID, force)
	if err != nil {
		rt.logger.Warn().Err(err).Str("park", parkID).Msg("wait times fetch failed")
		respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, snapshot)
}

// handlePrediction serves the fused short-horizon prediction.
// ?at=RFC3339 sets the target instant (default one hour out); ?park=
// warms the live snapshot first.
func (rt *Router) handlePrediction(w http.ResponseWriter, r *http.Request) {
	attractionID := chi.URLParam(r, "attractionID")

	target := time.Now().Add(time.Hour)
	if at := r.URL.Query().Get("at"); at != "" {
		parsed, err := time.Parse(time.RFC3339, at)
		if err != nil {
			respondError(w, http.StatusBadRequest, "invalid 'at' timestamp, want RFC3339", nil)
			return
		}
		target = parsed
	}

	pred, err := rt.engine.PredictWaitTime(r.Context(), r.URL.Query().Get("park"), attractionID, target)
	if err != nil {
		rt.logger.Warn().Err(err).Str("attraction", attractionID).Msg("prediction failed")
		respondEngineError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, pred)
}
