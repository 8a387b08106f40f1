// PlacePulse - Place Discovery and Crowd Intelligence
// Copyright 2026 A. Vela (avela)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avela/placepulse

package services

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"
)

// mockServer simulates an http.Server for lifecycle tests.
type mockServer struct {
	listenErr   error
	shutdownErr error

	started  chan struct{}
	release  chan struct{}
	shutdown chan struct{}
}

func newMockServer() *mockServer {
	return &mockServer{
		started:  make(chan struct{}),
		release:  make(chan struct{}),
		shutdown: make(chan struct{}),
	}
}

func (m *mockServer) ListenAndServe() error {
	close(m.started)
	if m.listenErr != nil {
		return m.listenErr
	}
	<-m.release
	return http.ErrServerClosed
}

func (m *mockServer) Shutdown(_ context.Context) error {
	close(m.shutdown)
	close(m.release)
	return m.shutdownErr
}

func TestHTTPServiceGracefulShutdown(t *testing.T) {
	srv := newMockServer()
	svc := NewHTTPServerService(srv, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	<-srv.started
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Serve() did not return after cancellation")
	}

	select {
	case <-srv.shutdown:
	default:
		t.Error("Shutdown() was never called")
	}
}

func TestHTTPServiceListenFailure(t *testing.T) {
	srv := newMockServer()
	srv.listenErr = errors.New("address already in use")
	svc := NewHTTPServerService(srv, time.Second)

	err := svc.Serve(context.Background())
	if err == nil || !errors.Is(err, srv.listenErr) {
		t.Errorf("Serve() = %v, want listen error", err)
	}
}

func TestHTTPServiceShutdownFailure(t *testing.T) {
	srv := newMockServer()
	srv.shutdownErr = errors.New("connections still open")
	svc := NewHTTPServerService(srv, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	<-srv.started
	cancel()

	select {
	case err := <-done:
		if err == nil || !errors.Is(err, srv.shutdownErr) {
			t.Errorf("Serve() = %v, want shutdown error", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Serve() did not return")
	}
}

func TestHTTPServiceName(t *testing.T) {
	svc := NewHTTPServerService(newMockServer(), 0)
	if svc.String() != "http-server" {
		t.Errorf("String() = %q, want http-server", svc.String())
	}
}
