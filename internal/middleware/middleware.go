// PlacePulse - Place Discovery and Crowd Intelligence
// Copyright 2026 A. Vela (avela)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avela/placepulse

// Package middleware provides chi-compatible HTTP middleware: request ID
// propagation and Prometheus instrumentation.
package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/avela/placepulse/internal/logging"
	"github.com/avela/placepulse/internal/metrics"
)

// requestIDHeader is the header carrying the request ID.
const requestIDHeader = "X-Request-ID"

// RequestID assigns each request a UUID, stores it in the context for
// log correlation, and echoes it in the response header. An inbound
// X-Request-ID from an upstream proxy is honored.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = logging.GenerateRequestID()
		}

		w.Header().Set(requestIDHeader, id)
		ctx := logging.ContextWithRequestID(r.Context(), id)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// Prometheus records request counts, latency and in-flight gauge. The
// chi route pattern is used as the path label so user ids do not explode
// label cardinality.
func Prometheus(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.HTTPActiveRequests.Inc()
		defer metrics.HTTPActiveRequests.Dec()

		start := time.Now()
		wrapper := &statusWriter{ResponseWriter: w, statusCode: http.StatusOK}

		next.ServeHTTP(wrapper, r)

		path := r.URL.Path
		if rctx := chi.RouteContext(r.Context()); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				path = pattern
			}
		}

		metrics.HTTPRequestsTotal.WithLabelValues(
			r.Method, path, strconv.Itoa(wrapper.statusCode),
		).Inc()
		metrics.HTTPRequestDuration.WithLabelValues(r.Method, path).
			Observe(time.Since(start).Seconds())
	})
}

// statusWriter wraps http.ResponseWriter to capture the status code.
type statusWriter struct {
	http.ResponseWriter
	statusCode int
}

// WriteHeader captures the status code.
func (sw *statusWriter) WriteHeader(code int) {
	sw.statusCode = code
	sw.ResponseWriter.WriteHeader(code)
}
