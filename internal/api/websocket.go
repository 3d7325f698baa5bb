// ParkPilot - Theme Park Itinerary Optimization and Wait-Time Intelligence
// Copyright 2026 ParkPilot Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/parkpilot/parkpilot

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"

	"github.com/parkpilot/parkpilot/internal/models"
)

const (
	wsWriteTimeout = 10 * time.Second
	wsPingInterval = 30 * time.Second

	// wsUpdateBuffer absorbs bursts; a client that cannot drain it loses
	// intermediate snapshots, never the connection.
	wsUpdateBuffer = 8
)

// handleStream upgrades to a websocket and pushes every wait-time
// snapshot for the park until the client disconnects.
func (rt *Router) handleStream(w http.ResponseWriter, r *http.Request) {
	parkID := chi.URLParam(r, "parkID")

	conn, err := rt.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade already wrote the HTTP error.
		rt.logger.Warn().Err(err).Str("park", parkID).Msg("websocket upgrade failed")
		return
	}
	defer func() { _ = conn.Close() }()

	updates := make(chan *models.CachedWaitTimes, wsUpdateBuffer)
	unsubscribe, err := rt.engine.OnWaitTimesUpdate(r.Context(), parkID, func(s *models.CachedWaitTimes) {
		select {
		case updates <- s:
		default:
		}
	})
	if err != nil {
		rt.logger.Error().Err(err).Str("park", parkID).Msg("stream subscription failed")
		return
	}
	defer unsubscribe()

	// Reader goroutine: drain client frames and signal disconnect.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	rt.logger.Debug().Str("park", parkID).Msg("stream client connected")
	ticker := time.NewTicker(wsPingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-r.Context().Done():
			return
		case snapshot := <-updates:
			_ = conn.SetWriteDeadline(time.Now().Add(wsWriteTimeout))
			if err := conn.WriteJSON(snapshot); err != nil {
				rt.logger.Debug().Err(err).Str("park", parkID).Msg("stream write failed")
				return
			}
		case <-ticker.C:
			deadline := time.Now().Add(wsWriteTimeout)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		}
	}
}
