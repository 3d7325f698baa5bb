// ParkPilot - Theme Park Itinerary Optimization and Wait-Time Intelligence
// Copyright 2026 ParkPilot Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/parkpilot/parkpilot

package parksource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/parkpilot/parkpilot/internal/config"
	"github.com/parkpilot/parkpilot/internal/models"
)

func testClient(t *testing.T, handler http.Handler) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(config.ProviderConfig{
		BaseURL:           srv.URL,
		APIKey:            "test-key",
		Timeout:           5 * time.Second,
		RequestsPerSecond: 1000,
		Burst:             1000,
	}, zerolog.Nop())
}

func TestFetchAttractions(t *testing.T) {
	var gotPath, gotKey string
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-API-Key")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"space-mountain","name":"Space Mountain","category":"ride",
			 "duration_minutes":5,"height_requirement_in":44,"thrill":true,
			 "area":"tomorrowland",
			 "fast_pass":{"eligible":true,"kind":"individual","price_usd":12.5}},
			{"id":"carousel","name":"Carousel","category":"ride","duration_minutes":4}
		]`))
	}))

	attractions, err := c.FetchAttractions(context.Background(), "mk")
	if err != nil {
		t.Fatal(err)
	}
	if gotPath != "/parks/mk/attractions" {
		t.Errorf("path = %s", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("X-API-Key = %q, want test-key", gotKey)
	}
	if len(attractions) != 2 {
		t.Fatalf("attractions = %d, want 2", len(attractions))
	}

	sm := attractions[0]
	if sm.ID != "space-mountain" || sm.Category != models.CategoryRide {
		t.Errorf("unexpected first attraction: %+v", sm)
	}
	if !sm.Thrill || sm.HeightRequirementIn != 44 {
		t.Errorf("thrill/height not decoded: %+v", sm)
	}
	if !sm.FastPass.Eligible || sm.FastPass.Kind != models.FastPassIndividual || sm.FastPass.PriceUSD != 12.5 {
		t.Errorf("fast pass not decoded: %+v", sm.FastPass)
	}
}

func TestFetchWaitTime(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/parks/mk/queue/space-mountain" {
			t.Errorf("path = %s", r.URL.Path)
		}
		_, _ = w.Write([]byte(`{"attraction_id":"space-mountain","name":"Space Mountain","wait_minutes":45,"status":"OPERATING"}`))
	}))

	wt, err := c.FetchWaitTime(context.Background(), "mk", "space-mountain")
	if err != nil {
		t.Fatal(err)
	}
	if wt.WaitMinutes != 45 || wt.Status != models.StatusOperating {
		t.Errorf("wait time = %+v", wt)
	}
}

func TestFetchWaitTimeMissingStatusDefaultsUnknown(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"wait_minutes":10}`))
	}))

	wt, err := c.FetchWaitTime(context.Background(), "mk", "x")
	if err != nil {
		t.Fatal(err)
	}
	if wt.Status != models.StatusUnknown {
		t.Errorf("status = %q, want %s", wt.Status, models.StatusUnknown)
	}
	if wt.AttractionID != "x" {
		t.Errorf("attraction id = %q, want filled from request", wt.AttractionID)
	}
}

func TestFetchHistoryPassesDays(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("days"); got != "30" {
			t.Errorf("days = %q, want 30", got)
		}
		_, _ = w.Write([]byte(`[{"attraction_id":"a","timestamp":"2026-08-01T13:00:00Z","wait_minutes":35}]`))
	}))

	samples, err := c.FetchHistory(context.Background(), "a", 30)
	if err != nil {
		t.Fatal(err)
	}
	if len(samples) != 1 || samples[0].WaitMinutes != 35 {
		t.Errorf("samples = %+v", samples)
	}
}

func TestErrorStatusSurfacesBody(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "park not found", http.StatusNotFound)
	}))

	_, err := c.FetchAttractions(context.Background(), "nowhere")
	if err == nil {
		t.Fatal("expected error for 404")
	}
}

func TestCircuitBreakerPassesThroughSuccess(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`[{"id":"a","name":"Alpha","category":"ride","duration_minutes":3}]`))
	}))
	cbc := NewCircuitBreakerClient(c, zerolog.Nop())

	attractions, err := cbc.FetchAttractions(context.Background(), "mk")
	if err != nil {
		t.Fatal(err)
	}
	if len(attractions) != 1 || attractions[0].ID != "a" {
		t.Errorf("attractions = %+v", attractions)
	}
}

func TestCircuitBreakerOpensAfterRepeatedFailures(t *testing.T) {
	var hits int
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits++
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	cbc := NewCircuitBreakerClient(c, zerolog.Nop())

	for i := 0; i < 12; i++ {
		_, _ = cbc.FetchAttractions(context.Background(), "mk")
	}
	if hits >= 12 {
		t.Errorf("upstream hit %d times; breaker never opened", hits)
	}
}
