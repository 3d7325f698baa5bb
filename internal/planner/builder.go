// ParkPilot - Theme Park Itinerary Optimization and Wait-Time Intelligence
// Copyright 2026 ParkPilot Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/parkpilot/parkpilot

package planner

import (
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/parkpilot/parkpilot/internal/metrics"
	"github.com/parkpilot/parkpilot/internal/models"
	"github.com/parkpilot/parkpilot/internal/predict"
)

// Builder timing rules.
const (
	mealWindowMinutes = 60
	lunchOffset       = 4 * time.Hour
	dinnerOffset      = 9 * time.Hour

	// breakEveryActivities inserts a rest break after each block of
	// activities once the break budget allows it.
	breakEveryActivities = 4

	// fastPassWaitMinutes is the assumed standby-bypass wait.
	fastPassWaitMinutes = 10

	// fastPassWorthwhileWait: below this predicted wait a pass is not
	// worth using.
	fastPassWorthwhileWait = 20

	flexibleBlockMinutes = 30

	// trailingBreakMinMinutes: leftover break budget below this is not
	// worth a dedicated trailing entry.
	trailingBreakMinMinutes = 15
)

// Config carries builder tunables.
type Config struct {
	// DefaultWalkMinutes is assumed when no walking time is known,
	// including the first hop from the park entrance.
	DefaultWalkMinutes float64

	MealDurationMinutes int
	MaxBreakMinutes     int

	// GeniePlusDailyCap bounds allotment-based pass usage per day.
	GeniePlusDailyCap int
}

// DefaultConfig returns the standard builder tunables.
func DefaultConfig() Config {
	return Config{
		DefaultWalkMinutes:  10,
		MealDurationMinutes: 60,
		MaxBreakMinutes:     30,
		GeniePlusDailyCap:   3,
	}
}

// Builder is the greedy temporal scheduler. It is stateless across calls
// and safe for concurrent use; all per-run state lives in a buildState.
type Builder struct {
	cfg       Config
	predictor predict.Predictor
	logger    zerolog.Logger
}

// NewBuilder creates a Builder.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewBuilder(cfg Config, predictor predict.Predictor, logger zerolog.Logger) *Builder {
	if cfg.DefaultWalkMinutes <= 0 {
		cfg.DefaultWalkMinutes = 10
	}
	if cfg.MealDurationMinutes <= 0 {
		cfg.MealDurationMinutes = 60
	}
	if cfg.MaxBreakMinutes <= 0 {
		cfg.MaxBreakMinutes = 30
	}
	return &Builder{
		cfg:       cfg,
		predictor: predictor,
		logger:    logger.With().Str("component", "planner").Logger(),
	}
}

// buildState is the mutable state of one scheduling run.
type buildState struct {
	now      time.Time
	end      time.Time
	location string // attraction ID of the previous activity, "" = entrance

	entries  []models.ItineraryEntry
	prevKind models.EntryKind

	used  map[string]int
	unfit map[string]bool // does not fit the remaining window this run

	activities  int
	breakBudget int
	lunchTaken  bool
	dinnerTaken bool

	genieUsed int
	llSpent   float64
}

// Build produces one plan over the given window. The candidate pool must
// be sorted by score descending; the builder reads scores but never
// writes them.
func (b *Builder) Build(label string, pool CandidatePool, req *models.OptimizationRequest, window models.Window) models.ItineraryPlan {
	start := time.Now()
	defer metrics.ObservePlanBuild(label, start)

	st := &buildState{
		now:         window.Start,
		end:         window.End,
		used:        make(map[string]int),
		unfit:       make(map[string]bool),
		breakBudget: req.Preferences.BreakBudgetMinutes,
	}

	lunch := anchorOr(req.Preferences.LunchAnchor, window.Start.Add(lunchOffset))
	dinner := anchorOr(req.Preferences.DinnerAnchor, window.Start.Add(dinnerOffset))

	for st.now.Before(st.end) {
		if b.tryMeal(st, lunch, dinner) {
			continue
		}
		if b.tryBreak(st) {
			continue
		}

		pick := b.selectNext(pool.Candidates(), req, st)
		if pick == nil {
			b.emitFlexible(st)
			continue
		}
		if !b.scheduleActivity(st, pick, req) {
			// Does not fit the remaining window; never retry it this run.
			st.unfit[pick.ID] = true
		}
	}

	b.appendTrailingBreak(st)

	plan := models.ItineraryPlan{
		ID:      uuid.NewString(),
		Label:   label,
		Entries: st.entries,
	}
	plan.Stats = ComputeStats(&plan, req, window)

	b.logger.Debug().
		Str("plan", label).
		Int("entries", len(plan.Entries)).
		Int("attractions", plan.Stats.AttractionCount).
		Msg("plan built")

	return plan
}

func anchorOr(explicit *time.Time, fallback time.Time) time.Time {
	if explicit != nil {
		return *explicit
	}
	return fallback
}

// tryMeal emits a meal entry when the clock is inside the window around
// an untaken meal anchor.
func (b *Builder) tryMeal(st *buildState, lunch, dinner time.Time) bool {
	switch {
	case !st.lunchTaken && withinMealWindow(st.now, lunch):
		st.lunchTaken = true
		b.emitMeal(st, "Lunch")
		return true
	case !st.dinnerTaken && withinMealWindow(st.now, dinner):
		st.dinnerTaken = true
		b.emitMeal(st, "Dinner")
		return true
	}
	return false
}

func withinMealWindow(now, anchor time.Time) bool {
	diff := now.Sub(anchor)
	if diff < 0 {
		diff = -diff
	}
	return diff <= mealWindowMinutes*time.Minute
}

func (b *Builder) emitMeal(st *buildState, notes string) {
	end := clampTime(st.now.Add(time.Duration(b.cfg.MealDurationMinutes)*time.Minute), st.end)
	st.entries = append(st.entries, models.ItineraryEntry{
		Kind:  models.EntryMeal,
		Start: st.now,
		End:   end,
		Notes: notes,
	})
	st.now = end
	st.prevKind = models.EntryMeal
}

// tryBreak emits a rest break after every block of activities, budget
// permitting. Consecutive breaks are not allowed.
func (b *Builder) tryBreak(st *buildState) bool {
	if st.breakBudget <= 0 ||
		st.activities < breakEveryActivities ||
		st.activities%breakEveryActivities != 0 ||
		st.prevKind == models.EntryBreak {
		return false
	}

	length := st.breakBudget
	if length > b.cfg.MaxBreakMinutes {
		length = b.cfg.MaxBreakMinutes
	}
	end := clampTime(st.now.Add(time.Duration(length)*time.Minute), st.end)
	taken := int(end.Sub(st.now).Minutes())
	if taken <= 0 {
		return false
	}

	st.entries = append(st.entries, models.ItineraryEntry{
		Kind:  models.EntryBreak,
		Start: st.now,
		End:   end,
		Notes: "Rest break",
	})
	st.breakBudget -= taken
	st.now = end
	st.prevKind = models.EntryBreak
	return true
}

// emitFlexible fills unschedulable time so the clock always advances.
func (b *Builder) emitFlexible(st *buildState) {
	end := clampTime(st.now.Add(flexibleBlockMinutes*time.Minute), st.end)
	if !end.After(st.now) {
		// Sub-minute remainder; close out the window.
		st.now = st.end
		return
	}
	st.entries = append(st.entries, models.ItineraryEntry{
		Kind:  models.EntryFlexible,
		Start: st.now,
		End:   end,
		Notes: "Free time - explore shops, snacks, or revisit a favorite",
	})
	st.now = end
	st.prevKind = models.EntryFlexible
}

// scheduleActivity books the picked candidate. Returns false when the
// activity cannot finish inside the window.
func (b *Builder) scheduleActivity(st *buildState, pick *models.Candidate, req *models.OptimizationRequest) bool {
	walk := pick.WalkingMinutesFrom(st.location, b.cfg.DefaultWalkMinutes)
	walkMin := int(math.Round(walk))
	arrival := st.now.Add(time.Duration(walkMin) * time.Minute)
	if !arrival.Before(st.end) {
		return false
	}

	predicted := b.predictor.Predict(pick.ID, arrival, pick.CurrentWaitMinutes)
	if predicted < 0 {
		predicted = 0
	}

	fp := b.decideFastPass(pick, predicted, req, st.genieUsed, st.llSpent)
	wait := predicted
	if fp.use && wait > fastPassWaitMinutes {
		wait = fastPassWaitMinutes
	}

	end := arrival.Add(time.Duration(wait+pick.DurationMinutes) * time.Minute)
	if end.After(st.end) {
		return false
	}

	entry := models.ItineraryEntry{
		Kind:           models.EntryActivity,
		Start:          st.now,
		End:            end,
		AttractionID:   pick.ID,
		AttractionName: pick.Name,
		WaitMinutes:    wait,
		WalkMinutes:    walkMin,
		FastPassUsed:   fp.use,
	}
	if fp.use && fp.kind == models.FastPassIndividual {
		entry.FastPassPriceUSD = fp.price
		st.llSpent += fp.price
	}
	if fp.use && fp.kind == models.FastPassGenie {
		st.genieUsed++
	}

	st.entries = append(st.entries, entry)
	st.now = end
	st.location = pick.ID
	st.used[pick.ID]++
	st.activities++
	st.prevKind = models.EntryActivity
	return true
}

// appendTrailingBreak spends meaningful leftover break budget at the end
// of the day.
func (b *Builder) appendTrailingBreak(st *buildState) {
	if st.breakBudget <= trailingBreakMinMinutes || !st.now.Before(st.end) {
		return
	}
	end := clampTime(st.now.Add(time.Duration(st.breakBudget)*time.Minute), st.end)
	if !end.After(st.now) {
		return
	}
	st.entries = append(st.entries, models.ItineraryEntry{
		Kind:  models.EntryBreak,
		Start: st.now,
		End:   end,
		Notes: "Wind-down break",
	})
	st.now = end
}

func clampTime(t, max time.Time) time.Time {
	if t.After(max) {
		return max
	}
	return t
}
