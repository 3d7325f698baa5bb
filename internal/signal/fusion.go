// ParkPilot - Theme Park Itinerary Optimization and Wait-Time Intelligence
// Copyright 2026 ParkPilot Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/parkpilot/parkpilot

package signal

import (
	"context"
	"math"
	"time"

	"github.com/parkpilot/parkpilot/internal/metrics"
	"github.com/parkpilot/parkpilot/internal/models"
)

// Fusion weights and smoothing.
const (
	emaAlpha   = 0.4
	liveWeight = 0.6
	histWeight = 0.4
)

// PredictWaitTime fuses recent live samples with same-weekday history
// into a short-horizon prediction for the target instant.
//
// Live and historical signals are each smoothed with an exponential
// moving average, then blended 60/40 in favor of live data. The newest
// live reading is held out of the EMA and used as the anomaly reference
// instead. When only one signal exists it is used alone; when neither
// exists ErrNoData is returned. A reference reading that deviates from
// the fused value by more than the anomaly threshold pulls the
// prediction halfway toward it and lowers the confidence.
func (s *Service) PredictWaitTime(ctx context.Context, attractionID string, target time.Time) (models.PredictedWaitTime, error) {
	samples := s.liveSamples(attractionID, time.Now())

	var (
		latest     int
		haveLatest bool
	)
	if len(samples) > 0 {
		latest = samples[len(samples)-1].WaitMinutes
		haveLatest = true
		samples = samples[:len(samples)-1]
	}

	liveEMA, haveLive := ema(samples)
	histEMA, haveHist := s.historicalEMA(ctx, attractionID, target)

	var fused float64
	switch {
	case haveLive && haveHist:
		fused = liveWeight*liveEMA + histWeight*histEMA
	case haveLive:
		fused = liveEMA
	case haveHist:
		fused = histEMA
	case haveLatest:
		fused = float64(latest)
		haveLatest = false
	default:
		return models.PredictedWaitTime{}, ErrNoData
	}

	confidence := 1.0
	if haveLatest {
		threshold := float64(s.cfg.AnomalyThresholdMinutes)
		deviation := math.Abs(float64(latest) - fused)
		if deviation > threshold {
			fused += (float64(latest) - fused) / 2
			confidence = clamp01(1 - deviation/threshold)
			metrics.PredictionAnomalies.Inc()
			s.logger.Debug().
				Str("attraction", attractionID).
				Float64("deviation", deviation).
				Float64("confidence", confidence).
				Msg("prediction anomaly, nudging toward live")
		}
	}

	minutes := int(math.Round(fused))
	if minutes < 0 {
		minutes = 0
	}
	return models.PredictedWaitTime{
		AttractionID:     attractionID,
		Target:           target,
		PredictedMinutes: minutes,
		Confidence:       confidence,
	}, nil
}

// historicalEMA smooths the attraction's history filtered to the target's
// context. The filter relaxes in steps: same weekday and hour, then same
// weekday, then everything. History fetch failures degrade to "no signal"
// rather than failing the prediction.
func (s *Service) historicalEMA(ctx context.Context, attractionID string, target time.Time) (float64, bool) {
	history, err := s.History(ctx, attractionID)
	if err != nil {
		s.logger.Warn().Err(err).Str("attraction", attractionID).Msg("history unavailable for fusion")
		return 0, false
	}
	if len(history) == 0 {
		return 0, false
	}

	filters := []func(models.WaitSample) bool{
		func(w models.WaitSample) bool {
			return w.Timestamp.Weekday() == target.Weekday() && w.Timestamp.Hour() == target.Hour()
		},
		func(w models.WaitSample) bool {
			return w.Timestamp.Weekday() == target.Weekday()
		},
		func(models.WaitSample) bool { return true },
	}
	for _, keep := range filters {
		var matched []models.WaitSample
		for _, w := range history {
			if keep(w) {
				matched = append(matched, w)
			}
		}
		if len(matched) > 0 {
			return ema(matched)
		}
	}
	return 0, false
}

// ema smooths samples oldest-first with a fixed alpha.
func ema(samples []models.WaitSample) (float64, bool) {
	if len(samples) == 0 {
		return 0, false
	}
	v := float64(samples[0].WaitMinutes)
	for _, sample := range samples[1:] {
		v = emaAlpha*float64(sample.WaitMinutes) + (1-emaAlpha)*v
	}
	return v, true
}

// clamp01 bounds a value to [0,1].
func clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	}
	return v
}
