// ParkPilot - Theme Park Itinerary Optimization and Wait-Time Intelligence
// Copyright 2026 ParkPilot Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/parkpilot/parkpilot

// Package signal owns live park data: the wait-time cache, the prediction
// fusion engine, and the pub/sub fan-out of snapshots. All upstream access
// goes through the DataSource capability so the rest of the engine never
// talks to the provider directly.
package signal

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/parkpilot/parkpilot/internal/cache"
	"github.com/parkpilot/parkpilot/internal/config"
	"github.com/parkpilot/parkpilot/internal/metrics"
	"github.com/parkpilot/parkpilot/internal/models"
)

// ErrNoData means neither live samples nor history exist for an
// attraction, so no prediction can be fused.
var ErrNoData = errors.New("signal: no wait-time data available")

// liveSampleWindow bounds how far back live samples feed the fusion EMA.
const liveSampleWindow = time.Hour

// maxLiveSamples caps the per-attraction live sample ring.
const maxLiveSamples = 120

// Service is the wait-time intelligence layer: cached live snapshots,
// fused predictions, and snapshot publication.
type Service struct {
	cfg    config.SignalConfig
	source DataSource
	bus    *Bus
	logger zerolog.Logger

	live     *cache.Cache // parkID -> *models.CachedWaitTimes
	catalog  *cache.Cache // parkID -> []models.Attraction
	schedule *cache.Cache // parkID -> []models.ParkHours
	history  *cache.Cache // attractionID -> []models.WaitSample

	historyDays int

	mu      sync.Mutex
	samples map[string][]models.WaitSample

	// fetchGroup collapses concurrent refreshes of the same park.
	fetchMu sync.Mutex
}

// NewService wires the signal layer.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewService(cfg config.SignalConfig, source DataSource, bus *Bus, historyDays int, logger zerolog.Logger) *Service {
	if cfg.FetchWorkers <= 0 {
		cfg.FetchWorkers = 4
	}
	if historyDays <= 0 {
		historyDays = 30
	}
	return &Service{
		cfg:         cfg,
		source:      source,
		bus:         bus,
		logger:      logger.With().Str("component", "signal").Logger(),
		live:        cache.New(cfg.LiveTTL),
		catalog:     cache.New(cfg.CatalogTTL),
		schedule:    cache.New(cfg.CatalogTTL),
		history:     cache.New(cfg.HistoryTTL),
		historyDays: historyDays,
		samples:     make(map[string][]models.WaitSample),
	}
}

// Bus exposes the fan-out bus for realtime subscriptions.
func (s *Service) Bus() *Bus {
	return s.bus
}

// Attractions returns the park's attraction catalog, cached for the
// catalog TTL. Catalog failures are hard errors: without the catalog
// there is nothing to plan over.
func (s *Service) Attractions(ctx context.Context, parkID string) ([]models.Attraction, error) {
	key := cache.GenerateKey("catalog", parkID)
	if v, ok := s.catalog.Get(key); ok {
		return v.([]models.Attraction), nil
	}
	attractions, err := s.source.FetchAttractions(ctx, parkID)
	if err != nil {
		return nil, fmt.Errorf("fetch attractions for %s: %w", parkID, err)
	}
	s.catalog.Set(key, attractions)
	return attractions, nil
}

// Schedule returns the park operating schedule, cached alongside the
// catalog.
func (s *Service) Schedule(ctx context.Context, parkID string) ([]models.ParkHours, error) {
	key := cache.GenerateKey("schedule", parkID)
	if v, ok := s.schedule.Get(key); ok {
		return v.([]models.ParkHours), nil
	}
	hours, err := s.source.FetchSchedule(ctx, parkID)
	if err != nil {
		return nil, fmt.Errorf("fetch schedule for %s: %w", parkID, err)
	}
	s.schedule.Set(key, hours)
	return hours, nil
}

// CurrentWaitTimes returns the park's live snapshot. Within the live TTL
// the cached snapshot is served; forceRefresh bypasses the cache. A fresh
// snapshot is fetched per attraction by a bounded worker pool, failed
// attractions get sentinel records, and the result is published to the
// bus before being returned.
func (s *Service) CurrentWaitTimes(ctx context.Context, parkID string, forceRefresh bool) (*models.CachedWaitTimes, error) {
	key := cache.GenerateKey("waittimes", parkID)
	if !forceRefresh {
		if v, ok := s.live.Get(key); ok {
			metrics.WaitCacheHits.Inc()
			return v.(*models.CachedWaitTimes), nil
		}
	}
	metrics.WaitCacheMisses.Inc()

	// Serialize refreshes so a thundering herd performs one upstream batch.
	s.fetchMu.Lock()
	defer s.fetchMu.Unlock()
	if !forceRefresh {
		if v, ok := s.live.Get(key); ok {
			return v.(*models.CachedWaitTimes), nil
		}
	}

	snapshot, err := s.refresh(ctx, parkID)
	if err != nil {
		return nil, err
	}
	s.live.SetWithTTL(key, snapshot, s.cfg.LiveTTL)

	if err := s.bus.Publish(snapshot); err != nil {
		s.logger.Error().Err(err).Str("park", parkID).Msg("snapshot publish failed")
	}
	return snapshot, nil
}

func (s *Service) refresh(ctx context.Context, parkID string) (*models.CachedWaitTimes, error) {
	attractions, err := s.Attractions(ctx, parkID)
	if err != nil {
		return nil, err
	}

	times := make([]models.AttractionWaitTime, len(attractions))

	type job struct {
		idx        int
		attraction models.Attraction
	}
	jobs := make(chan job)

	var wg sync.WaitGroup
	for w := 0; w < s.cfg.FetchWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				wt, err := s.source.FetchWaitTime(ctx, parkID, j.attraction.ID)
				if err != nil {
					metrics.SignalFetchFailures.WithLabelValues(parkID).Inc()
					s.logger.Warn().Err(err).
						Str("park", parkID).
						Str("attraction", j.attraction.ID).
						Msg("wait-time fetch failed, substituting sentinel")
					wt = models.SentinelWaitTime(j.attraction.ID)
					wt.Name = j.attraction.Name
				}
				times[j.idx] = wt
			}
		}()
	}
	for i, a := range attractions {
		jobs <- job{idx: i, attraction: a}
	}
	close(jobs)
	wg.Wait()

	sort.Slice(times, func(i, j int) bool {
		if times[i].Name != times[j].Name {
			return times[i].Name < times[j].Name
		}
		return times[i].AttractionID < times[j].AttractionID
	})

	snapshot := &models.CachedWaitTimes{
		ParkID:    parkID,
		FetchedAt: time.Now().UTC(),
		Times:     times,
	}
	s.recordSamples(snapshot)
	return snapshot, nil
}

// recordSamples feeds non-sentinel waits into the per-attraction live
// sample rings that drive the fusion EMA.
func (s *Service) recordSamples(snapshot *models.CachedWaitTimes) {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := snapshot.FetchedAt.Add(-liveSampleWindow)
	for _, wt := range snapshot.Times {
		if wt.IsSentinel() || wt.Status != models.StatusOperating {
			continue
		}
		ring := append(s.samples[wt.AttractionID], models.WaitSample{
			AttractionID: wt.AttractionID,
			Timestamp:    snapshot.FetchedAt,
			WaitMinutes:  wt.WaitMinutes,
		})
		for len(ring) > 0 && ring[0].Timestamp.Before(cutoff) {
			ring = ring[1:]
		}
		if len(ring) > maxLiveSamples {
			ring = ring[len(ring)-maxLiveSamples:]
		}
		s.samples[wt.AttractionID] = ring
	}
}

// liveSamples returns the attraction's samples from the trailing window,
// oldest first.
func (s *Service) liveSamples(attractionID string, now time.Time) []models.WaitSample {
	s.mu.Lock()
	defer s.mu.Unlock()

	ring := s.samples[attractionID]
	cutoff := now.Add(-liveSampleWindow)
	out := make([]models.WaitSample, 0, len(ring))
	for _, sample := range ring {
		if !sample.Timestamp.Before(cutoff) {
			out = append(out, sample)
		}
	}
	return out
}

// History returns historical wait samples for an attraction, cached for
// the history TTL.
func (s *Service) History(ctx context.Context, attractionID string) ([]models.WaitSample, error) {
	key := cache.GenerateKey("history", attractionID)
	if v, ok := s.history.Get(key); ok {
		return v.([]models.WaitSample), nil
	}
	samples, err := s.source.FetchHistory(ctx, attractionID, s.historyDays)
	if err != nil {
		return nil, fmt.Errorf("fetch history for %s: %w", attractionID, err)
	}
	s.history.Set(key, samples)
	return samples, nil
}
