// ParkPilot - Theme Park Itinerary Optimization and Wait-Time Intelligence
// Copyright 2026 ParkPilot Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/parkpilot/parkpilot

package api

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"github.com/parkpilot/parkpilot/internal/engine"
	"github.com/parkpilot/parkpilot/internal/signal"
	"github.com/parkpilot/parkpilot/internal/validation"
)

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Error  string                  `json:"error"`
	Fields []validation.FieldError `json:"fields,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func respondError(w http.ResponseWriter, status int, msg string, fields []validation.FieldError) {
	respondJSON(w, status, errorResponse{Error: msg, Fields: fields})
}

// respondEngineError maps engine error categories to HTTP statuses.
func respondEngineError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, engine.ErrValidation):
		var reqErr *validation.RequestError
		if errors.As(err, &reqErr) {
			respondError(w, http.StatusBadRequest, "validation failed", reqErr.Fields())
			return
		}
		respondError(w, http.StatusBadRequest, err.Error(), nil)
	case errors.Is(err, signal.ErrNoData):
		respondError(w, http.StatusNotFound, "no wait-time data for attraction", nil)
	case errors.Is(err, engine.ErrDataSource):
		respondError(w, http.StatusBadGateway, "park data provider unavailable", nil)
	default:
		respondError(w, http.StatusInternalServerError, "internal error", nil)
	}
}
