// PlacePulse - Place Discovery and Crowd Intelligence
// Copyright 2026 A. Vela (avela)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avela/placepulse

// Package ops provides the operational HTTP surface: health probes and
// Prometheus metrics. The product-facing API lives in the surrounding
// application; this server exists for orchestrators and monitoring.
package ops

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/goccy/go-json"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// ReadyChecker reports whether a component is ready to serve. The
// profile registry backend satisfies this once its store is open.
type ReadyChecker interface {
	Ready() bool
}

// Router builds the operational HTTP handler.
type Router struct {
	logger  zerolog.Logger
	ready   ReadyChecker
	version string
	started time.Time
}

// NewRouter creates an ops router. ready may be nil, in which case the
// readiness probe always succeeds.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRouter(ready ReadyChecker, version string, logger zerolog.Logger) *Router {
	return &Router{
		logger:  logger.With().Str("component", "ops").Logger(),
		ready:   ready,
		version: version,
		started: time.Now(),
	}
}

// Handler returns a standalone chi handler serving only the ops routes.
func (rt *Router) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	rt.Routes(r)

	return r
}

// Routes registers the ops endpoints on an existing router, so the ops
// surface can share a listener with the API.
func (rt *Router) Routes(r chi.Router) {
	r.Get("/healthz", rt.handleLive)
	r.Get("/healthz/ready", rt.handleReady)
	r.Handle("/metrics", promhttp.Handler())
}

// healthResponse is the JSON body for health probes.
type healthResponse struct {
	Status        string `json:"status"`
	Version       string `json:"version,omitempty"`
	UptimeSeconds int64  `json:"uptime_seconds"`
}

// handleLive is the liveness probe. It succeeds whenever the process can
// serve HTTP.
func (rt *Router) handleLive(w http.ResponseWriter, _ *http.Request) {
	rt.writeJSON(w, http.StatusOK, healthResponse{
		Status:        "alive",
		Version:       rt.version,
		UptimeSeconds: int64(time.Since(rt.started).Seconds()),
	})
}

// handleReady is the readiness probe. It fails while the profile store
// is unavailable.
func (rt *Router) handleReady(w http.ResponseWriter, _ *http.Request) {
	if rt.ready != nil && !rt.ready.Ready() {
		rt.writeJSON(w, http.StatusServiceUnavailable, healthResponse{
			Status:        "not_ready",
			UptimeSeconds: int64(time.Since(rt.started).Seconds()),
		})
		return
	}

	rt.writeJSON(w, http.StatusOK, healthResponse{
		Status:        "ready",
		Version:       rt.version,
		UptimeSeconds: int64(time.Since(rt.started).Seconds()),
	})
}

func (rt *Router) writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		rt.logger.Warn().Err(err).Msg("write health response")
	}
}
