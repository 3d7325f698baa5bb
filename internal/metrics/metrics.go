// ParkPilot - Theme Park Itinerary Optimization and Wait-Time Intelligence
// Copyright 2026 ParkPilot Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/parkpilot/parkpilot

// Package metrics provides Prometheus instrumentation for the engine:
// provider fetch latency and failures, circuit breaker state, signal cache
// efficiency, pub/sub fan-out, and planner latency.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Provider (upstream data source) metrics
	ProviderRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "parksource_request_duration_seconds",
			Help:    "Duration of provider API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation"},
	)

	ProviderRequestErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parksource_request_errors_total",
			Help: "Total number of provider API request errors",
		},
		[]string{"operation"},
	)

	// Circuit breaker metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "parksource_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"breaker"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parksource_circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"breaker", "from", "to"},
	)

	// Signal cache metrics
	WaitCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "signal_wait_cache_hits_total",
			Help: "Total number of wait-time cache hits",
		},
	)

	WaitCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "signal_wait_cache_misses_total",
			Help: "Total number of wait-time cache misses",
		},
	)

	SignalFetchFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "signal_fetch_failures_total",
			Help: "Per-attraction fetch failures substituted with sentinel records",
		},
		[]string{"park"},
	)

	PredictionAnomalies = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "signal_prediction_anomalies_total",
			Help: "Predictions adjusted by the anomaly detector",
		},
	)

	// Pub/sub metrics
	PubSubSubscribers = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "signal_pubsub_subscribers",
			Help: "Current number of wait-time update subscribers per park",
		},
		[]string{"park"},
	)

	PubSubPublishes = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "signal_pubsub_publishes_total",
			Help: "Wait-time snapshots published to the fan-out bus",
		},
		[]string{"park"},
	)

	// Planner metrics
	PlanBuildDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "planner_build_duration_seconds",
			Help:    "Duration of a single itinerary build in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"plan"},
	)

	PlansGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "planner_plans_generated_total",
			Help: "Total number of itinerary plans generated",
		},
		[]string{"plan"},
	)

	OptimizeRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "engine_optimize_requests_total",
			Help: "Total optimization requests by outcome",
		},
		[]string{"outcome"}, // "ok", "validation_error", "data_source_error"
	)
)

// ObserveProviderRequest records one provider call.
func ObserveProviderRequest(operation string, start time.Time, err error) {
	ProviderRequestDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
	if err != nil {
		ProviderRequestErrors.WithLabelValues(operation).Inc()
	}
}

// ObservePlanBuild records one itinerary build.
func ObservePlanBuild(plan string, start time.Time) {
	PlanBuildDuration.WithLabelValues(plan).Observe(time.Since(start).Seconds())
	PlansGenerated.WithLabelValues(plan).Inc()
}
