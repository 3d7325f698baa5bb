// ParkPilot - Theme Park Itinerary Optimization and Wait-Time Intelligence
// Copyright 2026 ParkPilot Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/parkpilot/parkpilot

package parksource

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	"github.com/parkpilot/parkpilot/internal/models"
	"github.com/parkpilot/parkpilot/internal/signal"
)

// Reconnect and keepalive tuning for the realtime stream.
const (
	wsHandshakeTimeout = 10 * time.Second
	wsPingInterval     = 30 * time.Second
	wsWriteTimeout     = 10 * time.Second
	wsReconnectMin     = time.Second
	wsReconnectMax     = 30 * time.Second
	wsReadLimitBytes   = 1 << 20
)

// WebSocketProvider streams live snapshot pushes from the provider's
// websocket endpoint. It implements the realtime capability; deployments
// without a realtime URL use signal.NoopRealtimeProvider instead.
type WebSocketProvider struct {
	baseURL string
	apiKey  string
	logger  zerolog.Logger
}

var _ signal.RealtimeProvider = (*WebSocketProvider)(nil)

// NewWebSocketProvider creates the realtime provider. baseURL is the
// ws:// or wss:// root of the provider's streaming API.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewWebSocketProvider(baseURL, apiKey string, logger zerolog.Logger) *WebSocketProvider {
	return &WebSocketProvider{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		logger:  logger.With().Str("component", "parksource.realtime").Logger(),
	}
}

// Start opens the park's stream and keeps it open across connection
// drops until the context is canceled or stop is called. Snapshots are
// handed to deliver in arrival order.
func (p *WebSocketProvider) Start(ctx context.Context, parkID string, deliver func(*models.CachedWaitTimes)) (func(), error) {
	streamURL, err := p.streamURL(parkID)
	if err != nil {
		return nil, err
	}

	runCtx, cancel := context.WithCancel(ctx)
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		p.run(runCtx, parkID, streamURL, deliver)
	}()

	var once sync.Once
	stop := func() {
		once.Do(func() {
			cancel()
			wg.Wait()
		})
	}
	return stop, nil
}

func (p *WebSocketProvider) streamURL(parkID string) (string, error) {
	u, err := url.Parse(fmt.Sprintf("%s/parks/%s/stream", p.baseURL, url.PathEscape(parkID)))
	if err != nil {
		return "", fmt.Errorf("realtime url: %w", err)
	}
	if p.apiKey != "" {
		q := u.Query()
		q.Set("api_key", p.apiKey)
		u.RawQuery = q.Encode()
	}
	return u.String(), nil
}

// run is the reconnect loop with exponential backoff.
func (p *WebSocketProvider) run(ctx context.Context, parkID, streamURL string, deliver func(*models.CachedWaitTimes)) {
	backoff := wsReconnectMin
	for {
		if ctx.Err() != nil {
			return
		}

		err := p.consume(ctx, streamURL, deliver)
		if ctx.Err() != nil {
			return
		}
		p.logger.Warn().Err(err).
			Str("park", parkID).
			Dur("backoff", backoff).
			Msg("realtime stream dropped, reconnecting")

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		backoff *= 2
		if backoff > wsReconnectMax {
			backoff = wsReconnectMax
		}
	}
}

// consume runs one connection until it fails or the context ends.
func (p *WebSocketProvider) consume(ctx context.Context, streamURL string, deliver func(*models.CachedWaitTimes)) error {
	dialer := websocket.Dialer{
		HandshakeTimeout:  wsHandshakeTimeout,
		EnableCompression: true,
	}
	conn, resp, err := dialer.DialContext(ctx, streamURL, nil)
	if err != nil {
		if resp != nil {
			return fmt.Errorf("dial failed (status %d): %w", resp.StatusCode, err)
		}
		return fmt.Errorf("dial failed: %w", err)
	}
	if resp != nil && resp.Body != nil {
		_ = resp.Body.Close()
	}
	defer func() { _ = conn.Close() }()
	conn.SetReadLimit(wsReadLimitBytes)

	// Close the connection when the context ends so ReadMessage unblocks.
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-done:
		}
	}()

	go p.pingLoop(ctx, conn, done)

	for {
		_, payload, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("read: %w", err)
		}
		var snapshot models.CachedWaitTimes
		if err := json.Unmarshal(payload, &snapshot); err != nil {
			p.logger.Warn().Err(err).Msg("malformed realtime snapshot, skipping")
			continue
		}
		deliver(&snapshot)
	}
}

func (p *WebSocketProvider) pingLoop(ctx context.Context, conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(wsPingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-done:
			return
		case <-ticker.C:
			deadline := time.Now().Add(wsWriteTimeout)
			if err := conn.WriteControl(websocket.PingMessage, nil, deadline); err != nil {
				return
			}
		}
	}
}
