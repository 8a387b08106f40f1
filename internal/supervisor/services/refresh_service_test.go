// PlacePulse - Place Discovery and Crowd Intelligence
// Copyright 2026 A. Vela (avela)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avela/placepulse

package services

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/avela/placepulse/internal/activity"
	"github.com/avela/placepulse/internal/models"
	"github.com/avela/placepulse/internal/profile"
	"github.com/avela/placepulse/internal/profile/store"
)

func sweepFixture(t *testing.T) (*profile.Builder, activity.Provider) {
	t.Helper()

	snapshot := activity.Snapshot{
		Users: map[string]activity.UserSnapshot{
			"u1": {Settings: models.UserSettings{UserID: "u1"}},
			"u2": {Settings: models.UserSettings{UserID: "u2"}},
		},
	}
	builder := profile.NewBuilder(store.NewMemoryStore(), zerolog.Nop())
	return builder, activity.NewSnapshotProvider(snapshot)
}

func TestSweepBuildsMissingProfiles(t *testing.T) {
	builder, provider := sweepFixture(t)
	svc := NewRefreshService(builder, provider, RefreshServiceConfig{}, zerolog.Nop())
	ctx := context.Background()

	if err := svc.Sweep(ctx); err != nil {
		t.Fatalf("Sweep() error: %v", err)
	}

	for _, userID := range []string{"u1", "u2"} {
		if _, err := builder.GetProfile(ctx, userID); err != nil {
			t.Errorf("GetProfile(%s) after sweep error: %v", userID, err)
		}
	}
}

func TestSweepSkipsFreshProfiles(t *testing.T) {
	builder, provider := sweepFixture(t)
	svc := NewRefreshService(builder, provider, RefreshServiceConfig{ProfileTTL: 6 * time.Hour}, zerolog.Nop())
	ctx := context.Background()

	if err := svc.Sweep(ctx); err != nil {
		t.Fatalf("first Sweep() error: %v", err)
	}
	first, err := builder.GetProfile(ctx, "u1")
	if err != nil {
		t.Fatalf("GetProfile() error: %v", err)
	}

	if err := svc.Sweep(ctx); err != nil {
		t.Fatalf("second Sweep() error: %v", err)
	}
	second, err := builder.GetProfile(ctx, "u1")
	if err != nil {
		t.Fatalf("GetProfile() error: %v", err)
	}

	if !second.LastUpdated.Equal(first.LastUpdated) {
		t.Error("fresh profile was rebuilt by the second sweep")
	}
}

func TestSweepRebuildsStaleProfiles(t *testing.T) {
	builder, provider := sweepFixture(t)
	svc := NewRefreshService(builder, provider, RefreshServiceConfig{ProfileTTL: 6 * time.Hour}, zerolog.Nop())
	ctx := context.Background()

	// Seed a profile that is already well past the TTL.
	past := time.Now().Add(-24 * time.Hour)
	builder.SetClock(func() time.Time { return past })
	if _, err := builder.Build(ctx, models.UserSettings{UserID: "u1"}, nil, nil); err != nil {
		t.Fatalf("seed Build() error: %v", err)
	}
	builder.SetClock(time.Now)

	if err := svc.Sweep(ctx); err != nil {
		t.Fatalf("Sweep() error: %v", err)
	}

	prof, err := builder.GetProfile(ctx, "u1")
	if err != nil {
		t.Fatalf("GetProfile() error: %v", err)
	}
	if prof.LastUpdated.Equal(past) {
		t.Error("stale profile survived the sweep")
	}
}

func TestSweepHonorsCancellation(t *testing.T) {
	builder, provider := sweepFixture(t)
	svc := NewRefreshService(builder, provider, RefreshServiceConfig{}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := svc.Sweep(ctx); err == nil {
		t.Error("Sweep() with canceled context succeeded, want error")
	}
}

func TestServeStopsOnCancel(t *testing.T) {
	builder, provider := sweepFixture(t)
	svc := NewRefreshService(builder, provider, RefreshServiceConfig{
		Interval:         time.Hour,
		RefreshOnStartup: false,
	}, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- svc.Serve(ctx) }()

	cancel()
	select {
	case err := <-done:
		if err != context.Canceled {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Serve() did not return after cancellation")
	}
}

func TestRefreshServiceName(t *testing.T) {
	builder, provider := sweepFixture(t)
	svc := NewRefreshService(builder, provider, RefreshServiceConfig{}, zerolog.Nop())
	if svc.String() != "profile-refresh" {
		t.Errorf("String() = %q, want profile-refresh", svc.String())
	}
}
