// ParkPilot - Theme Park Itinerary Optimization and Wait-Time Intelligence
// Copyright 2026 ParkPilot Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/parkpilot/parkpilot

package parksource

import (
	"time"

	"github.com/parkpilot/parkpilot/internal/models"
)

// Wire types for the upstream park-data provider. The provider's JSON is
// decoded into these and converted to domain models at the client
// boundary so provider schema drift never leaks past this package.

type attractionDTO struct {
	ID                  string  `json:"id"`
	Name                string  `json:"name"`
	Category            string  `json:"category"`
	DurationMinutes     int     `json:"duration_minutes"`
	HeightRequirementIn int     `json:"height_requirement_in"`
	Latitude            float64 `json:"latitude"`
	Longitude           float64 `json:"longitude"`
	Area                string  `json:"area"`
	Thrill              bool    `json:"thrill"`
	Outdoor             bool    `json:"outdoor"`
	MobilityChallenging bool    `json:"mobility_challenging"`

	FastPass struct {
		Eligible bool    `json:"eligible"`
		Kind     string  `json:"kind"`
		PriceUSD float64 `json:"price_usd"`
	} `json:"fast_pass"`
}

func (d *attractionDTO) toModel() models.Attraction {
	return models.Attraction{
		ID:                  d.ID,
		Name:                d.Name,
		Category:            models.Category(d.Category),
		DurationMinutes:     d.DurationMinutes,
		HeightRequirementIn: d.HeightRequirementIn,
		Latitude:            d.Latitude,
		Longitude:           d.Longitude,
		Area:                d.Area,
		Thrill:              d.Thrill,
		Outdoor:             d.Outdoor,
		MobilityChallenging: d.MobilityChallenging,
		FastPass: models.FastPassOption{
			Eligible: d.FastPass.Eligible,
			Kind:     models.FastPassKind(d.FastPass.Kind),
			PriceUSD: d.FastPass.PriceUSD,
		},
	}
}

type queueEntryDTO struct {
	AttractionID string `json:"attraction_id"`
	Name         string `json:"name"`
	WaitMinutes  int    `json:"wait_minutes"`
	Status       string `json:"status"`
}

func (d *queueEntryDTO) toModel() models.AttractionWaitTime {
	status := d.Status
	if status == "" {
		status = models.StatusUnknown
	}
	return models.AttractionWaitTime{
		AttractionID: d.AttractionID,
		Name:         d.Name,
		WaitMinutes:  d.WaitMinutes,
		Status:       status,
	}
}

type scheduleEntryDTO struct {
	Date   time.Time `json:"date"`
	Opens  time.Time `json:"opens"`
	Closes time.Time `json:"closes"`
}

func (d *scheduleEntryDTO) toModel() models.ParkHours {
	return models.ParkHours{Date: d.Date, Opens: d.Opens, Closes: d.Closes}
}

type historySampleDTO struct {
	AttractionID string    `json:"attraction_id"`
	Timestamp    time.Time `json:"timestamp"`
	WaitMinutes  int       `json:"wait_minutes"`
}

func (d *historySampleDTO) toModel() models.WaitSample {
	return models.WaitSample{
		AttractionID: d.AttractionID,
		Timestamp:    d.Timestamp,
		WaitMinutes:  d.WaitMinutes,
	}
}
