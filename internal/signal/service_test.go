// ParkPilot - Theme Park Itinerary Optimization and Wait-Time Intelligence
// Copyright 2026 ParkPilot Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/parkpilot/parkpilot

package signal

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/parkpilot/parkpilot/internal/config"
	"github.com/parkpilot/parkpilot/internal/models"
)

type fakeSource struct {
	mu           sync.Mutex
	attractions  []models.Attraction
	waits        map[string]models.AttractionWaitTime
	fail         map[string]bool
	history      map[string][]models.WaitSample
	waitCalls    int
	catalogCalls int
	historyCalls int
}

func (f *fakeSource) FetchAttractions(_ context.Context, _ string) ([]models.Attraction, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.catalogCalls++
	return f.attractions, nil
}

func (f *fakeSource) FetchWaitTime(_ context.Context, _, attractionID string) (models.AttractionWaitTime, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.waitCalls++
	if f.fail[attractionID] {
		return models.AttractionWaitTime{}, errors.New("upstream timeout")
	}
	return f.waits[attractionID], nil
}

func (f *fakeSource) FetchSchedule(_ context.Context, _ string) ([]models.ParkHours, error) {
	return nil, nil
}

func (f *fakeSource) FetchHistory(_ context.Context, attractionID string, _ int) ([]models.WaitSample, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.historyCalls++
	return f.history[attractionID], nil
}

func (f *fakeSource) calls() (wait, catalog, history int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.waitCalls, f.catalogCalls, f.historyCalls
}

func testConfig() config.SignalConfig {
	return config.SignalConfig{
		LiveTTL:                 30 * time.Second,
		CatalogTTL:              time.Hour,
		HistoryTTL:              30 * time.Minute,
		FetchWorkers:            4,
		AnomalyThresholdMinutes: 15,
	}
}

func operating(id, name string, wait int) models.AttractionWaitTime {
	return models.AttractionWaitTime{
		AttractionID: id,
		Name:         name,
		WaitMinutes:  wait,
		Status:       models.StatusOperating,
	}
}

func newTestService(t *testing.T, src *fakeSource) (*Service, *Bus) {
	t.Helper()
	bus := NewBus(NoopRealtimeProvider{}, zerolog.Nop())
	t.Cleanup(func() { _ = bus.Close() })
	return NewService(testConfig(), src, bus, 30, zerolog.Nop()), bus
}

func TestCurrentWaitTimesCachesWithinTTL(t *testing.T) {
	src := &fakeSource{
		attractions: []models.Attraction{
			{ID: "a", Name: "Alpha"},
			{ID: "b", Name: "Beta"},
		},
		waits: map[string]models.AttractionWaitTime{
			"a": operating("a", "Alpha", 20),
			"b": operating("b", "Beta", 35),
		},
	}
	svc, _ := newTestService(t, src)
	ctx := context.Background()

	first, err := svc.CurrentWaitTimes(ctx, "mk", false)
	if err != nil {
		t.Fatalf("first fetch: %v", err)
	}
	second, err := svc.CurrentWaitTimes(ctx, "mk", false)
	if err != nil {
		t.Fatalf("second fetch: %v", err)
	}

	if wait, _, _ := src.calls(); wait != 2 {
		t.Errorf("upstream wait fetches = %d, want 2 (one batch, second call cached)", wait)
	}
	if !first.FetchedAt.Equal(second.FetchedAt) {
		t.Error("second call within TTL should return the cached snapshot")
	}

	if _, err := svc.CurrentWaitTimes(ctx, "mk", true); err != nil {
		t.Fatalf("forced refresh: %v", err)
	}
	if wait, _, _ := src.calls(); wait != 4 {
		t.Errorf("upstream wait fetches after force = %d, want 4", wait)
	}
}

func TestCurrentWaitTimesSentinelOnFailure(t *testing.T) {
	src := &fakeSource{
		attractions: []models.Attraction{
			{ID: "ok", Name: "Carousel"},
			{ID: "broken", Name: "Space Coaster"},
		},
		waits: map[string]models.AttractionWaitTime{
			"ok": operating("ok", "Carousel", 15),
		},
		fail: map[string]bool{"broken": true},
	}
	svc, _ := newTestService(t, src)

	snap, err := svc.CurrentWaitTimes(context.Background(), "mk", false)
	if err != nil {
		t.Fatalf("partial failure must not fail the batch: %v", err)
	}
	if len(snap.Times) != 2 {
		t.Fatalf("times = %d, want 2", len(snap.Times))
	}

	var sentinel *models.AttractionWaitTime
	for i := range snap.Times {
		if snap.Times[i].AttractionID == "broken" {
			sentinel = &snap.Times[i]
		}
	}
	if sentinel == nil {
		t.Fatal("failed attraction missing from snapshot")
	}
	if !sentinel.IsSentinel() {
		t.Errorf("wait = %d, want sentinel %d", sentinel.WaitMinutes, models.SentinelWaitMinutes)
	}
	if sentinel.Status != models.StatusUnknown {
		t.Errorf("status = %s, want %s", sentinel.Status, models.StatusUnknown)
	}
	if sentinel.Name != "Space Coaster" {
		t.Errorf("sentinel name = %q, want catalog name", sentinel.Name)
	}
}

func TestCurrentWaitTimesSortedByName(t *testing.T) {
	src := &fakeSource{
		attractions: []models.Attraction{
			{ID: "z", Name: "Zephyr"},
			{ID: "m", Name: "Mine Train"},
			{ID: "a", Name: "Astro Orbiter"},
		},
		waits: map[string]models.AttractionWaitTime{
			"z": operating("z", "Zephyr", 5),
			"m": operating("m", "Mine Train", 45),
			"a": operating("a", "Astro Orbiter", 25),
		},
	}
	svc, _ := newTestService(t, src)

	snap, err := svc.CurrentWaitTimes(context.Background(), "mk", false)
	if err != nil {
		t.Fatal(err)
	}
	if !sort.SliceIsSorted(snap.Times, func(i, j int) bool {
		return snap.Times[i].Name < snap.Times[j].Name
	}) {
		t.Errorf("snapshot not sorted by name: %+v", snap.Times)
	}
}

func TestCurrentWaitTimesPublishesToBus(t *testing.T) {
	src := &fakeSource{
		attractions: []models.Attraction{{ID: "a", Name: "Alpha"}},
		waits:       map[string]models.AttractionWaitTime{"a": operating("a", "Alpha", 10)},
	}
	svc, bus := newTestService(t, src)

	received := make(chan *models.CachedWaitTimes, 1)
	unsubscribe, err := bus.Subscribe(context.Background(), "mk", func(s *models.CachedWaitTimes) {
		received <- s
	})
	if err != nil {
		t.Fatal(err)
	}
	defer unsubscribe()

	if _, err := svc.CurrentWaitTimes(context.Background(), "mk", false); err != nil {
		t.Fatal(err)
	}

	select {
	case snap := <-received:
		if snap.ParkID != "mk" {
			t.Errorf("published park = %s, want mk", snap.ParkID)
		}
		if len(snap.Times) != 1 {
			t.Errorf("published times = %d, want 1", len(snap.Times))
		}
	case <-time.After(2 * time.Second):
		t.Fatal("snapshot never arrived on the bus")
	}
}

func TestHistoryCachedWithinTTL(t *testing.T) {
	src := &fakeSource{
		history: map[string][]models.WaitSample{
			"a": {{AttractionID: "a", Timestamp: time.Now().Add(-24 * time.Hour), WaitMinutes: 20}},
		},
	}
	svc, _ := newTestService(t, src)
	ctx := context.Background()

	if _, err := svc.History(ctx, "a"); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.History(ctx, "a"); err != nil {
		t.Fatal(err)
	}
	if _, _, history := src.calls(); history != 1 {
		t.Errorf("upstream history fetches = %d, want 1", history)
	}
}
