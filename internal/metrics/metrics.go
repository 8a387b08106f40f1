// PlacePulse - Place Discovery and Crowd Intelligence
// Copyright 2026 A. Vela (avela)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avela/placepulse

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus instrumentation for the profiling and recommendation core:
// - profile build volume, latency and failures
// - registry size
// - scoring/prediction request volume and latency
// - refresh service sweep outcomes

var (
	// Profile builder metrics
	ProfileBuildsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "profile_builds_total",
			Help: "Total number of user profiles built",
		},
	)

	ProfileBuildErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "profile_build_errors_total",
			Help: "Total number of profile builds that failed to store",
		},
	)

	ProfileBuildDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "profile_build_duration_seconds",
			Help:    "Duration of profile builds in seconds",
			Buckets: []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25},
		},
	)

	ProfileRegistrySize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "profile_registry_entries",
			Help: "Current number of profiles in the registry",
		},
	)

	// Recommendation metrics
	RecommendRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_requests_total",
			Help: "Total number of recommendation requests",
		},
		[]string{"operation"}, // "rank", "predict"
	)

	RecommendRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_request_duration_seconds",
			Help:    "Recommendation request duration in seconds",
			Buckets: []float64{0.0001, 0.00025, 0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025},
		},
		[]string{"operation"},
	)

	RecommendCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_cache_hits_total",
			Help: "Total number of ranking cache hits",
		},
	)

	RecommendCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_cache_misses_total",
			Help: "Total number of ranking cache misses",
		},
	)

	// Refresh service metrics
	RefreshSweepsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "profile_refresh_sweeps_total",
			Help: "Total number of profile refresh sweeps",
		},
	)

	RefreshRebuildsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "profile_refresh_rebuilds_total",
			Help: "Total number of profiles rebuilt by the refresh service",
		},
		[]string{"outcome"}, // "ok", "error"
	)

	// HTTP metrics
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"method", "path"},
	)

	HTTPActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "http_active_requests",
			Help: "Number of HTTP requests currently being served",
		},
	)
)
