// ParkPilot - Theme Park Itinerary Optimization and Wait-Time Intelligence
// Copyright 2026 ParkPilot Contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/parkpilot/parkpilot

// Package api provides the HTTP surface using the chi router: the
// optimization endpoint, live wait-time reads, fused predictions, and the
// websocket stream of snapshot updates.
package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/gorilla/websocket"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"

	"github.com/parkpilot/parkpilot/internal/config"
	"github.com/parkpilot/parkpilot/internal/engine"
)

// Router builds the HTTP handler tree around the engine facade.
type Router struct {
	engine   *engine.Engine
	cfg      config.ServerConfig
	logger   zerolog.Logger
	upgrader websocket.Upgrader
}

// NewRouter creates the API router.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRouter(eng *engine.Engine, cfg config.ServerConfig, logger zerolog.Logger) *Router {
	return &Router{
		engine: eng,
		cfg:    cfg,
		logger: logger.With().Str("component", "api").Logger(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// Cross-origin policy is enforced by the CORS middleware;
			// the websocket handshake accepts any origin here.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Handler assembles the full middleware and route tree.
func (rt *Router) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(rt.requestLogger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: rt.cfg.CORSOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"Content-Type", "Accept"},
		MaxAge:         86400,
	}))

	r.Get("/healthz", rt.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		limit := rt.cfg.RateLimitPerMin
		if limit <= 0 {
			limit = 120
		}
		r.Use(httprate.LimitByIP(limit, time.Minute))

		r.Post("/optimize", rt.handleOptimize)
		r.Get("/parks/{parkID}/waittimes", rt.handleWaitTimes)
		r.Get("/parks/{parkID}/waittimes/stream", rt.handleStream)
		r.Get("/attractions/{attractionID}/prediction", rt.handlePrediction)
	})

	return r
}

// requestLogger is a zerolog access-log middleware.
func (rt *Router) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		rt.logger.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Str("remote", r.RemoteAddr).
			Msg("request")
	})
}
