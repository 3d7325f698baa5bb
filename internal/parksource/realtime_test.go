// ParkPilot - Theme Park Itinerary Optimization and Wait-Time Intelligence
// Copyright 2026 ParkPilot Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/parkpilot/parkpilot

package parksource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/parkpilot/parkpilot/internal/models"
)

func TestWebSocketProviderDeliversSnapshots(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/parks/mk/stream" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("api_key"); got != "test-key" {
			t.Errorf("api_key = %q", got)
		}
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade: %v", err)
			return
		}
		defer conn.Close()

		payload, _ := json.Marshal(models.CachedWaitTimes{
			ParkID:    "mk",
			FetchedAt: time.Now().UTC(),
			Times: []models.AttractionWaitTime{
				{AttractionID: "a", Name: "Alpha", WaitMinutes: 25, Status: models.StatusOperating},
			},
		})
		if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
			return
		}
		// Hold the connection open until the client goes away.
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	provider := NewWebSocketProvider(wsURL, "test-key", zerolog.Nop())

	received := make(chan *models.CachedWaitTimes, 1)
	stop, err := provider.Start(context.Background(), "mk", func(s *models.CachedWaitTimes) {
		select {
		case received <- s:
		default:
		}
	})
	if err != nil {
		t.Fatal(err)
	}
	defer stop()

	select {
	case snap := <-received:
		if snap.ParkID != "mk" || len(snap.Times) != 1 {
			t.Errorf("snapshot = %+v", snap)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("snapshot never delivered")
	}
}

func TestWebSocketProviderStopIsIdempotent(t *testing.T) {
	upgrader := websocket.Upgrader{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	provider := NewWebSocketProvider(wsURL, "", zerolog.Nop())

	stop, err := provider.Start(context.Background(), "mk", func(*models.CachedWaitTimes) {})
	if err != nil {
		t.Fatal(err)
	}
	stop()
	stop()
}
