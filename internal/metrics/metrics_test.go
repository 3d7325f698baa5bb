// ParkPilot - Theme Park Itinerary Optimization and Wait-Time Intelligence
// Copyright 2026 ParkPilot Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/parkpilot/parkpilot

package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObserveProviderRequestCountsErrors(t *testing.T) {
	before := testutil.ToFloat64(ProviderRequestErrors.WithLabelValues("fetch_wait"))

	ObserveProviderRequest("fetch_wait", time.Now(), nil)
	ObserveProviderRequest("fetch_wait", time.Now(), errors.New("boom"))

	after := testutil.ToFloat64(ProviderRequestErrors.WithLabelValues("fetch_wait"))
	if after-before != 1 {
		t.Errorf("expected exactly one error increment, got %v", after-before)
	}
}

func TestObservePlanBuildIncrementsCounter(t *testing.T) {
	before := testutil.ToFloat64(PlansGenerated.WithLabelValues("primary"))

	ObservePlanBuild("primary", time.Now())

	after := testutil.ToFloat64(PlansGenerated.WithLabelValues("primary"))
	if after-before != 1 {
		t.Errorf("expected one plan increment, got %v", after-before)
	}
}

func TestSubscriberGauge(t *testing.T) {
	g := PubSubSubscribers.WithLabelValues("test_park")
	g.Set(0)
	g.Inc()
	g.Inc()
	g.Dec()

	if got := testutil.ToFloat64(g); got != 1 {
		t.Errorf("subscriber gauge = %v, want 1", got)
	}
}
