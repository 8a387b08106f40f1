// PlacePulse - Place Discovery and Crowd Intelligence
// Copyright 2026 A. Vela (avela)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avela/placepulse

package ops

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog"
)

// staticReady is a ReadyChecker with a fixed answer.
type staticReady bool

func (s staticReady) Ready() bool { return bool(s) }

func probe(t *testing.T, handler http.Handler, path string) (*httptest.ResponseRecorder, healthResponse) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	var body healthResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode %s response %q: %v", path, rec.Body.String(), err)
	}
	return rec, body
}

func TestLivenessProbe(t *testing.T) {
	handler := NewRouter(staticReady(false), "1.2.3", zerolog.Nop()).Handler()

	// Liveness ignores readiness state.
	rec, body := probe(t, handler, "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if body.Status != "alive" || body.Version != "1.2.3" {
		t.Errorf("body = %+v, want alive with version", body)
	}
}

func TestReadinessProbe(t *testing.T) {
	tests := []struct {
		name       string
		ready      ReadyChecker
		wantStatus int
		wantBody   string
	}{
		{"ready backend", staticReady(true), http.StatusOK, "ready"},
		{"unready backend", staticReady(false), http.StatusServiceUnavailable, "not_ready"},
		{"nil checker defaults ready", nil, http.StatusOK, "ready"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewRouter(tt.ready, "", zerolog.Nop()).Handler()

			rec, body := probe(t, handler, "/healthz/ready")
			if rec.Code != tt.wantStatus {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if body.Status != tt.wantBody {
				t.Errorf("status field = %q, want %q", body.Status, tt.wantBody)
			}
		})
	}
}

func TestMetricsEndpoint(t *testing.T) {
	handler := NewRouter(staticReady(true), "", zerolog.Nop()).Handler()

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "go_goroutines") {
		t.Error("metrics output missing runtime collectors")
	}
}
