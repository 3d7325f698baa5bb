// ParkPilot - Theme Park Itinerary Optimization and Wait-Time Intelligence
// Copyright 2026 ParkPilot Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/parkpilot/parkpilot

// Package walking computes inter-attraction walking times from an area
// adjacency table, geodesic distance, and party pace modifiers.
package walking

import (
	"math"
	"strings"

	"github.com/parkpilot/parkpilot/internal/models"
)

const (
	// earthRadiusKm is the Earth radius used for haversine distance.
	earthRadiusKm = 6371.0

	// minutesPerKm is the assumed theme-park walking rate. Crowds, strollers
	// and window shopping make this much slower than open-sidewalk pace.
	minutesPerKm = 15.0

	// defaultMinutes is returned when neither areas nor coordinates resolve.
	defaultMinutes = 10.0
)

// Pace multipliers; mobility and stroller factors compose multiplicatively
// after the pace factor.
const (
	paceSlowFactor     = 1.3
	paceFastFactor     = 0.8
	paceModerateFactor = 1.0
	mobilityFactor     = 1.5
	strollerFactor     = 1.2
)

// PaceModifiers carries the party attributes that scale a base walking time.
type PaceModifiers struct {
	Pace     models.Pace
	Mobility bool
	Stroller bool
}

// areaPair is a directional area-to-area lookup key.
type areaPair struct {
	from, to string
}

// Model resolves walking times. It is a pure function of its inputs plus
// the precomputed area table and is safe for concurrent use.
type Model struct {
	areas map[areaPair]float64
}

// NewModel builds a Model with the default area adjacency table.
func NewModel() *Model {
	return &Model{areas: defaultAreaTable()}
}

// NewModelWithAreas builds a Model from a custom adjacency table of
// approximate minutes between named park zones. Lookups are directional;
// callers wanting symmetry must provide both directions.
func NewModelWithAreas(table map[[2]string]float64) *Model {
	areas := make(map[areaPair]float64, len(table))
	for k, v := range table {
		areas[areaPair{normalizeArea(k[0]), normalizeArea(k[1])}] = v
	}
	return &Model{areas: areas}
}

// TimeBetween returns the walking minutes from one attraction to another.
//
// Resolution order: area adjacency table when both attractions map to a
// known area, haversine distance at the park walking rate when both carry
// coordinates, else a fixed default. The resolved base time is scaled by
// the pace multiplier, then the mobility factor, then the stroller factor.
func (m *Model) TimeBetween(from, to *models.Attraction, mods PaceModifiers) float64 {
	base := m.baseMinutes(from, to)

	switch mods.Pace {
	case models.PaceSlow:
		base *= paceSlowFactor
	case models.PaceFast:
		base *= paceFastFactor
	default:
		base *= paceModerateFactor
	}
	if mods.Mobility {
		base *= mobilityFactor
	}
	if mods.Stroller {
		base *= strollerFactor
	}

	return base
}

func (m *Model) baseMinutes(from, to *models.Attraction) float64 {
	if fromArea, ok := m.resolveArea(from); ok {
		if toArea, ok := m.resolveArea(to); ok {
			if minutes, ok := m.areas[areaPair{fromArea, toArea}]; ok {
				return minutes
			}
		}
	}

	if from.HasCoordinates() && to.HasCoordinates() {
		km := haversineKm(from.Latitude, from.Longitude, to.Latitude, to.Longitude)
		return km * minutesPerKm
	}

	return defaultMinutes
}

// resolveArea maps an attraction to a known area via its area tag, falling
// back to a name keyword heuristic.
func (m *Model) resolveArea(a *models.Attraction) (string, bool) {
	if a.Area != "" {
		area := normalizeArea(a.Area)
		if m.knownArea(area) {
			return area, true
		}
	}

	name := strings.ToLower(a.Name)
	for _, area := range knownAreaKeywords {
		if strings.Contains(name, area.keyword) {
			if m.knownArea(area.area) {
				return area.area, true
			}
		}
	}

	return "", false
}

func (m *Model) knownArea(area string) bool {
	for pair := range m.areas {
		if pair.from == area || pair.to == area {
			return true
		}
	}
	return false
}

func normalizeArea(area string) string {
	return strings.ToLower(strings.TrimSpace(strings.ReplaceAll(area, " ", "_")))
}

// haversineKm returns the great-circle distance between two coordinates.
func haversineKm(lat1, lon1, lat2, lon2 float64) float64 {
	const degToRad = math.Pi / 180.0

	dLat := (lat2 - lat1) * degToRad
	dLon := (lon2 - lon1) * degToRad

	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(lat1*degToRad)*math.Cos(lat2*degToRad)*
			math.Sin(dLon/2)*math.Sin(dLon/2)

	return 2 * earthRadiusKm * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

// knownAreaKeywords maps name fragments to areas for attractions whose
// records carry no area tag.
var knownAreaKeywords = []struct {
	keyword string
	area    string
}{
	{"mountain", "frontier"},
	{"space", "tomorrow"},
	{"speedway", "tomorrow"},
	{"castle", "fantasy"},
	{"carousel", "fantasy"},
	{"tea", "fantasy"},
	{"jungle", "adventure"},
	{"pirates", "adventure"},
	{"tiki", "adventure"},
	{"main street", "main_street"},
	{"railroad", "main_street"},
	{"hall of", "liberty"},
	{"mansion", "liberty"},
	{"riverboat", "liberty"},
}

// defaultAreaTable approximates walking minutes between the classic hub-and-
// spoke park zones. Directional entries are mirrored explicitly because the
// table does not promise symmetry.
func defaultAreaTable() map[areaPair]float64 {
	zones := []string{"main_street", "adventure", "frontier", "liberty", "fantasy", "tomorrow"}
	minutes := map[areaPair]float64{
		{"main_street", "adventure"}: 8,
		{"main_street", "frontier"}:  10,
		{"main_street", "liberty"}:   9,
		{"main_street", "fantasy"}:   7,
		{"main_street", "tomorrow"}:  6,
		{"adventure", "frontier"}:    4,
		{"adventure", "liberty"}:     6,
		{"adventure", "fantasy"}:     9,
		{"adventure", "tomorrow"}:    12,
		{"frontier", "liberty"}:      3,
		{"frontier", "fantasy"}:      7,
		{"frontier", "tomorrow"}:     13,
		{"liberty", "fantasy"}:       5,
		{"liberty", "tomorrow"}:      10,
		{"fantasy", "tomorrow"}:      5,
	}

	table := make(map[areaPair]float64, len(minutes)*2+len(zones))
	for pair, m := range minutes {
		table[pair] = m
		table[areaPair{pair.to, pair.from}] = m
	}
	// Same-area hops are short but not free.
	for _, z := range zones {
		table[areaPair{z, z}] = 2
	}
	return table
}
