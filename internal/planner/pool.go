// ParkPilot - Theme Park Itinerary Optimization and Wait-Time Intelligence
// Copyright 2026 ParkPilot Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/parkpilot/parkpilot

package planner

import (
	"sort"

	"github.com/parkpilot/parkpilot/internal/models"
)

// CandidatePool is the candidate set a planning run schedules from.
// A pool is treated as immutable once built: the builder never changes
// scores, and alternative generation perturbs snapshots, never the pool
// it was given. This replaces the mutate-then-restore pattern with
// copy-on-write semantics.
type CandidatePool struct {
	candidates []*models.Candidate
}

// NewPool wraps the given candidates. The slice header is copied so later
// append/sort on the caller's slice cannot reorder the pool.
func NewPool(candidates []*models.Candidate) CandidatePool {
	own := make([]*models.Candidate, len(candidates))
	copy(own, candidates)
	return CandidatePool{candidates: own}
}

// Len returns the number of candidates.
func (p CandidatePool) Len() int {
	return len(p.candidates)
}

// Candidates returns the pool's candidates in order. Callers must treat
// the result as read-only.
func (p CandidatePool) Candidates() []*models.Candidate {
	return p.candidates
}

// Snapshot deep-copies every candidate so scores and tags can be mutated
// independently of the source pool.
func (p CandidatePool) Snapshot() CandidatePool {
	dup := make([]*models.Candidate, len(p.candidates))
	for i, c := range p.candidates {
		dup[i] = c.Clone()
	}
	return CandidatePool{candidates: dup}
}

// SortByScore stable-sorts the pool's candidates by score, descending.
// Only meaningful on snapshots whose scores were just perturbed; the
// canonical pool arrives pre-sorted from the scoring engine.
func (p CandidatePool) SortByScore() {
	sort.SliceStable(p.candidates, func(i, j int) bool {
		return p.candidates[i].Score > p.candidates[j].Score
	})
}
