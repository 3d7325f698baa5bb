// ParkPilot - Theme Park Itinerary Optimization and Wait-Time Intelligence
// Copyright 2026 ParkPilot Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/parkpilot/parkpilot

// Package engine is the optimization facade: it validates requests, pulls
// park data through the signal layer, enriches and scores candidates, and
// runs the planner for the primary plan plus every alternative.
package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/parkpilot/parkpilot/internal/config"
	"github.com/parkpilot/parkpilot/internal/metrics"
	"github.com/parkpilot/parkpilot/internal/models"
	"github.com/parkpilot/parkpilot/internal/planner"
	"github.com/parkpilot/parkpilot/internal/predict"
	"github.com/parkpilot/parkpilot/internal/scoring"
	"github.com/parkpilot/parkpilot/internal/signal"
	"github.com/parkpilot/parkpilot/internal/validation"
	"github.com/parkpilot/parkpilot/internal/walking"
)

// Default planning window when neither the request nor the schedule pins
// park hours.
const (
	defaultOpenHour  = 9
	defaultCloseHour = 21
)

// Engine wires the full optimization pipeline behind one facade.
type Engine struct {
	cfg         config.PlannerConfig
	signals     *signal.Service
	scorer      *scoring.Engine
	constraints *scoring.ConstraintEngine
	walker      *walking.Model
	predictor   predict.Predictor
	builder     *planner.Builder
	generator   *planner.Generator
	logger      zerolog.Logger
}

// New assembles the engine from configuration and the signal layer.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func New(cfg config.PlannerConfig, signals *signal.Service, logger zerolog.Logger) *Engine {
	return NewWithOracle(cfg, signals,
		scoring.NewBernoulliOracle(time.Now().UnixNano(), cfg.RainProbability), logger)
}

// NewWithOracle assembles the engine with an explicit weather oracle.
// Tests use a StaticOracle for deterministic rain decisions.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewWithOracle(cfg config.PlannerConfig, signals *signal.Service, oracle scoring.WeatherOracle, logger zerolog.Logger) *Engine {
	predictor := predict.NewHourOfDay()
	builder := planner.NewBuilder(planner.Config{
		DefaultWalkMinutes:  cfg.DefaultWalkMinutes,
		MealDurationMinutes: cfg.MealDurationMinutes,
		MaxBreakMinutes:     cfg.MaxBreakMinutes,
		GeniePlusDailyCap:   cfg.GeniePlusDailyCap,
	}, predictor, logger)

	return &Engine{
		cfg:         cfg,
		signals:     signals,
		scorer:      scoring.NewEngine(logger),
		constraints: scoring.NewConstraintEngine(oracle, logger),
		walker:      walking.NewModel(),
		predictor:   predictor,
		builder:     builder,
		generator:   planner.NewGenerator(builder),
		logger:      logger.With().Str("component", "engine").Logger(),
	}
}

// Optimize runs the whole pipeline for one request. Catalog and schedule
// failures are hard errors; live wait-time failures degrade to unknown
// waits and still produce a plan.
func (e *Engine) Optimize(ctx context.Context, req *models.OptimizationRequest) (*models.OptimizationResult, error) {
	if err := validation.ValidateStruct(req); err != nil {
		metrics.OptimizeRequests.WithLabelValues("validation_error").Inc()
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}
	if req.Window != nil && !req.Window.End.After(req.Window.Start) {
		metrics.OptimizeRequests.WithLabelValues("validation_error").Inc()
		return nil, fmt.Errorf("%w: window end must be after start", ErrValidation)
	}

	attractions, err := e.signals.Attractions(ctx, req.ParkID)
	if err != nil {
		metrics.OptimizeRequests.WithLabelValues("data_source_error").Inc()
		return nil, fmt.Errorf("%w: %w", ErrDataSource, err)
	}
	if len(attractions) == 0 {
		metrics.OptimizeRequests.WithLabelValues("data_source_error").Inc()
		return nil, fmt.Errorf("%w: park %s has no attraction catalog", ErrDataSource, req.ParkID)
	}

	window, err := e.resolveWindow(ctx, req)
	if err != nil {
		metrics.OptimizeRequests.WithLabelValues("data_source_error").Inc()
		return nil, err
	}

	live := e.liveWaits(ctx, req.ParkID)
	candidates := e.enrich(attractions, live, req, window)

	e.scorer.ScoreAll(candidates, req)
	e.constraints.Apply(candidates, req)
	pool := planner.NewPool(candidates)

	primary := e.builder.Build("primary", pool, req, window)
	alternatives := e.generator.Generate(pool, req, window)

	result := &models.OptimizationResult{
		RequestID:    uuid.NewString(),
		ParkID:       req.ParkID,
		GeneratedAt:  time.Now().UTC(),
		Primary:      primary,
		Alternatives: alternatives,
	}

	metrics.OptimizeRequests.WithLabelValues("ok").Inc()
	e.logger.Info().
		Str("request_id", result.RequestID).
		Str("park", req.ParkID).
		Int("candidates", len(candidates)).
		Int("primary_attractions", primary.Stats.AttractionCount).
		Msg("optimization complete")
	return result, nil
}

// resolveWindow picks the planning window: an explicit request window
// wins, then the park schedule for the date, then the default hours.
func (e *Engine) resolveWindow(ctx context.Context, req *models.OptimizationRequest) (models.Window, error) {
	if req.Window != nil {
		return *req.Window, nil
	}

	schedule, err := e.signals.Schedule(ctx, req.ParkID)
	if err != nil {
		return models.Window{}, fmt.Errorf("%w: %w", ErrDataSource, err)
	}

	y, m, d := req.Date.Date()
	for _, hours := range schedule {
		hy, hm, hd := hours.Date.Date()
		if hy == y && hm == m && hd == d && hours.Closes.After(hours.Opens) {
			return models.Window{Start: hours.Opens, End: hours.Closes}, nil
		}
	}

	e.logger.Warn().
		Str("park", req.ParkID).
		Time("date", req.Date).
		Msg("no schedule entry for date, using default hours")
	loc := req.Date.Location()
	return models.Window{
		Start: time.Date(y, m, d, defaultOpenHour, 0, 0, 0, loc),
		End:   time.Date(y, m, d, defaultCloseHour, 0, 0, 0, loc),
	}, nil
}

// liveWaits returns current waits keyed by attraction ID. Failures are
// absorbed: planning proceeds with unknown waits.
func (e *Engine) liveWaits(ctx context.Context, parkID string) map[string]models.AttractionWaitTime {
	snapshot, err := e.signals.CurrentWaitTimes(ctx, parkID, false)
	if err != nil {
		e.logger.Warn().Err(err).Str("park", parkID).Msg("live waits unavailable, planning without")
		return nil
	}
	out := make(map[string]models.AttractionWaitTime, len(snapshot.Times))
	for _, wt := range snapshot.Times {
		out[wt.AttractionID] = wt
	}
	return out
}

// enrich turns the catalog into request-scoped candidates: live waits,
// per-slot predictions, and the pairwise walking matrix.
func (e *Engine) enrich(attractions []models.Attraction, live map[string]models.AttractionWaitTime, req *models.OptimizationRequest, window models.Window) []*models.Candidate {
	mods := walking.PaceModifiers{
		Pace:     req.Preferences.WalkingPace,
		Mobility: req.Party.Mobility,
		Stroller: req.Party.Stroller,
	}

	candidates := make([]*models.Candidate, len(attractions))
	for i := range attractions {
		a := attractions[i]

		wait := 0
		if wt, ok := live[a.ID]; ok && !wt.IsSentinel() && wt.Status == models.StatusOperating {
			wait = wt.WaitMinutes
		}

		predicted := make(map[models.TimeSlot]int, len(models.AllTimeSlots))
		y, m, d := window.Start.Date()
		for _, slot := range models.AllTimeSlots {
			at := time.Date(y, m, d, slot.RepresentativeHour(), 0, 0, 0, window.Start.Location())
			predicted[slot] = e.predictor.Predict(a.ID, at, wait)
		}

		candidates[i] = &models.Candidate{
			Attraction:         a,
			CurrentWaitMinutes: wait,
			PredictedWait:      predicted,
		}
	}

	for i, from := range candidates {
		for j, to := range candidates {
			if i == j {
				continue
			}
			if to.WalkingMinutes == nil {
				to.WalkingMinutes = make(map[string]float64, len(candidates)-1)
			}
			to.WalkingMinutes[from.ID] = e.walker.TimeBetween(&candidates[i].Attraction, &candidates[j].Attraction, mods)
		}
	}
	return candidates
}

// CurrentWaitTimes exposes the park's live snapshot.
func (e *Engine) CurrentWaitTimes(ctx context.Context, parkID string, forceRefresh bool) (*models.CachedWaitTimes, error) {
	snapshot, err := e.signals.CurrentWaitTimes(ctx, parkID, forceRefresh)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDataSource, err)
	}
	return snapshot, nil
}

// PredictWaitTime exposes the fused short-horizon prediction. A non-empty
// parkID warms the live snapshot first so recent samples can contribute.
func (e *Engine) PredictWaitTime(ctx context.Context, parkID, attractionID string, target time.Time) (models.PredictedWaitTime, error) {
	if parkID != "" {
		if _, err := e.signals.CurrentWaitTimes(ctx, parkID, false); err != nil {
			e.logger.Warn().Err(err).Str("park", parkID).Msg("snapshot warm-up failed before prediction")
		}
	}
	return e.signals.PredictWaitTime(ctx, attractionID, target)
}

// OnWaitTimesUpdate subscribes to a park's snapshot stream. The returned
// function unsubscribes and is safe to call more than once.
func (e *Engine) OnWaitTimesUpdate(ctx context.Context, parkID string, handler signal.UpdateHandler) (func(), error) {
	return e.signals.Bus().Subscribe(ctx, parkID, handler)
}
