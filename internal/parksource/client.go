// ParkPilot - Theme Park Itinerary Optimization and Wait-Time Intelligence
// Copyright 2026 ParkPilot Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/parkpilot/parkpilot

// Package parksource is the client for the external park-data provider:
// attraction catalogs, live queue state, operating schedules, and wait
// history. The base client enforces a request rate limit; production
// deployments wrap it in CircuitBreakerClient.
package parksource

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/parkpilot/parkpilot/internal/config"
	"github.com/parkpilot/parkpilot/internal/metrics"
	"github.com/parkpilot/parkpilot/internal/models"
)

// Client provides access to the provider REST API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	limiter    *rate.Limiter
	logger     zerolog.Logger
}

// NewClient creates a provider API client from configuration.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewClient(cfg config.ProviderConfig, logger zerolog.Logger) *Client {
	rps := cfg.RequestsPerSecond
	if rps <= 0 {
		rps = 5
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 10
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL:    strings.TrimSuffix(cfg.BaseURL, "/"),
		apiKey:     cfg.APIKey,
		httpClient: &http.Client{Timeout: timeout},
		limiter:    rate.NewLimiter(rate.Limit(rps), burst),
		logger:     logger.With().Str("component", "parksource").Logger(),
	}
}

// FetchAttractions retrieves the attraction catalog for a park.
func (c *Client) FetchAttractions(ctx context.Context, parkID string) ([]models.Attraction, error) {
	var dtos []attractionDTO
	endpoint := fmt.Sprintf("/parks/%s/attractions", url.PathEscape(parkID))
	if err := c.getJSON(ctx, "attractions", endpoint, &dtos); err != nil {
		return nil, err
	}
	out := make([]models.Attraction, len(dtos))
	for i := range dtos {
		out[i] = dtos[i].toModel()
	}
	return out, nil
}

// FetchWaitTime retrieves a single attraction's live queue state.
func (c *Client) FetchWaitTime(ctx context.Context, parkID, attractionID string) (models.AttractionWaitTime, error) {
	var dto queueEntryDTO
	endpoint := fmt.Sprintf("/parks/%s/queue/%s", url.PathEscape(parkID), url.PathEscape(attractionID))
	if err := c.getJSON(ctx, "queue_entry", endpoint, &dto); err != nil {
		return models.AttractionWaitTime{}, err
	}
	if dto.AttractionID == "" {
		dto.AttractionID = attractionID
	}
	return dto.toModel(), nil
}

// FetchSchedule retrieves the park operating schedule.
func (c *Client) FetchSchedule(ctx context.Context, parkID string) ([]models.ParkHours, error) {
	var dtos []scheduleEntryDTO
	endpoint := fmt.Sprintf("/parks/%s/schedule", url.PathEscape(parkID))
	if err := c.getJSON(ctx, "schedule", endpoint, &dtos); err != nil {
		return nil, err
	}
	out := make([]models.ParkHours, len(dtos))
	for i := range dtos {
		out[i] = dtos[i].toModel()
	}
	return out, nil
}

// FetchHistory retrieves historical wait samples for an attraction over
// the trailing number of days.
func (c *Client) FetchHistory(ctx context.Context, attractionID string, days int) ([]models.WaitSample, error) {
	var dtos []historySampleDTO
	endpoint := fmt.Sprintf("/attractions/%s/history?days=%s",
		url.PathEscape(attractionID), strconv.Itoa(days))
	if err := c.getJSON(ctx, "history", endpoint, &dtos); err != nil {
		return nil, err
	}
	out := make([]models.WaitSample, len(dtos))
	for i := range dtos {
		out[i] = dtos[i].toModel()
	}
	return out, nil
}

// getJSON performs a rate-limited GET and decodes the response body.
func (c *Client) getJSON(ctx context.Context, operation, endpoint string, v interface{}) error {
	start := time.Now()
	err := c.doGetJSON(ctx, endpoint, v)
	metrics.ObserveProviderRequest(operation, start, err)
	if err != nil {
		return fmt.Errorf("provider %s: %w", operation, err)
	}
	return nil
}

func (c *Client) doGetJSON(ctx context.Context, endpoint string, v interface{}) error {
	if err := c.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("rate limiter: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("X-API-Key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		body, rerr := io.ReadAll(io.LimitReader(resp.Body, 4096))
		if rerr != nil {
			return fmt.Errorf("status %d (failed to read body)", resp.StatusCode)
		}
		return fmt.Errorf("status %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}
