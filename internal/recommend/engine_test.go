// PlacePulse - Place Discovery and Crowd Intelligence
// Copyright 2026 A. Vela (avela)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avela/placepulse

package recommend

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/avela/placepulse/internal/activity"
	"github.com/avela/placepulse/internal/models"
	"github.com/avela/placepulse/internal/profile"
	"github.com/avela/placepulse/internal/profile/store"
)

// testSnapshot exports one cafe-loving user.
func testSnapshot() activity.Snapshot {
	visit := models.ActivityRecord{
		Kind:      models.ActivityVisit,
		Place:     models.PlaceRef{ID: "p1", Category: models.CategoryCafe},
		Timestamp: time.Date(2026, time.June, 15, 12, 30, 0, 0, time.UTC),
	}
	return activity.Snapshot{
		Users: map[string]activity.UserSnapshot{
			"u1": {
				Settings: models.UserSettings{UserID: "u1", MaxWaitTimeMinutes: 20},
				History:  []models.ActivityRecord{visit, visit, visit},
			},
		},
	}
}

func newTestEngine(t *testing.T, cfg *Config, provider activity.Provider) (*Engine, *profile.Builder) {
	t.Helper()

	builder := profile.NewBuilder(store.NewMemoryStore(), zerolog.Nop())
	builder.SetClock(func() time.Time {
		return time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)
	})

	engine, err := NewEngine(cfg, builder, provider, zerolog.Nop())
	if err != nil {
		t.Fatalf("NewEngine() error: %v", err)
	}
	return engine, builder
}

func TestNewEngineRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Limits.DefaultK = 0

	builder := profile.NewBuilder(store.NewMemoryStore(), zerolog.Nop())
	if _, err := NewEngine(cfg, builder, nil, zerolog.Nop()); err == nil {
		t.Error("NewEngine() with invalid config succeeded, want error")
	}
}

func TestNewEngineRequiresBuilder(t *testing.T) {
	if _, err := NewEngine(DefaultConfig(), nil, nil, zerolog.Nop()); err == nil {
		t.Error("NewEngine() without builder succeeded, want error")
	}
}

func TestRankForUserRebuildsMissingProfile(t *testing.T) {
	provider := activity.NewSnapshotProvider(testSnapshot())
	engine, builder := newTestEngine(t, nil, provider)
	ctx := context.Background()

	places := []models.Place{
		{ID: "cafe", Category: models.CategoryCafe, WaitTimeMinutes: 5},
		{ID: "bank", Category: models.CategoryBank, WaitTimeMinutes: 5},
	}

	resp, err := engine.RankForUser(ctx, "u1", places, noon, 10)
	if err != nil {
		t.Fatalf("RankForUser() error: %v", err)
	}

	if resp.TotalCandidates != 2 || len(resp.Places) != 2 {
		t.Fatalf("got %d/%d places, want 2/2", len(resp.Places), resp.TotalCandidates)
	}
	if resp.Places[0].Place.ID != "cafe" {
		t.Errorf("top place = %s, want cafe", resp.Places[0].Place.ID)
	}
	if resp.Metadata.UserID != "u1" || resp.Metadata.CacheHit {
		t.Errorf("metadata = %+v, want user u1 and no cache hit", resp.Metadata)
	}

	// The rebuild must have landed in the registry.
	if _, err := builder.GetProfile(ctx, "u1"); err != nil {
		t.Errorf("GetProfile() after rank error: %v", err)
	}
}

func TestRankForUserCacheHit(t *testing.T) {
	provider := activity.NewSnapshotProvider(testSnapshot())
	engine, _ := newTestEngine(t, nil, provider)
	ctx := context.Background()

	places := []models.Place{{ID: "cafe", Category: models.CategoryCafe, WaitTimeMinutes: 5}}

	first, err := engine.RankForUser(ctx, "u1", places, noon, 10)
	if err != nil {
		t.Fatalf("first RankForUser() error: %v", err)
	}
	second, err := engine.RankForUser(ctx, "u1", places, noon, 10)
	if err != nil {
		t.Fatalf("second RankForUser() error: %v", err)
	}

	if first.Metadata.CacheHit {
		t.Error("first response claims a cache hit")
	}
	if !second.Metadata.CacheHit {
		t.Error("second response is not a cache hit")
	}
	if second.Metadata.RequestID == first.Metadata.RequestID {
		t.Error("cached response kept the original request id")
	}
	if len(second.Places) != len(first.Places) {
		t.Errorf("cached response has %d places, want %d", len(second.Places), len(first.Places))
	}
}

func TestRankForUserUnknownUserNoProvider(t *testing.T) {
	engine, _ := newTestEngine(t, nil, nil)

	_, err := engine.RankForUser(context.Background(), "ghost", nil, noon, 10)
	if !errors.Is(err, profile.ErrProfileNotFound) {
		t.Errorf("RankForUser() error = %v, want ErrProfileNotFound", err)
	}
}

func TestRankForUserUnknownUserWithProvider(t *testing.T) {
	provider := activity.NewSnapshotProvider(testSnapshot())
	engine, _ := newTestEngine(t, nil, provider)

	_, err := engine.RankForUser(context.Background(), "ghost", nil, noon, 10)
	if !errors.Is(err, activity.ErrUnknownUser) {
		t.Errorf("RankForUser() error = %v, want ErrUnknownUser", err)
	}
}

func TestRankForUserServesStaleWithoutProvider(t *testing.T) {
	engine, builder := newTestEngine(t, nil, nil)
	ctx := context.Background()

	if _, err := builder.Build(ctx, models.UserSettings{UserID: "u1"}, nil, nil); err != nil {
		t.Fatalf("Build() error: %v", err)
	}

	// Two days past the build instant, well beyond the 6 hour TTL.
	later := time.Date(2026, time.June, 17, 12, 0, 0, 0, time.UTC)
	resp, err := engine.RankForUser(ctx, "u1", []models.Place{{ID: "p1"}}, later, 10)
	if err != nil {
		t.Fatalf("RankForUser() with stale profile error: %v", err)
	}
	if len(resp.Places) != 1 {
		t.Errorf("got %d places, want 1", len(resp.Places))
	}
}

func TestInvalidateUser(t *testing.T) {
	provider := activity.NewSnapshotProvider(testSnapshot())
	engine, _ := newTestEngine(t, nil, provider)
	ctx := context.Background()

	places := []models.Place{{ID: "cafe", Category: models.CategoryCafe, WaitTimeMinutes: 5}}
	if _, err := engine.RankForUser(ctx, "u1", places, noon, 10); err != nil {
		t.Fatalf("RankForUser() error: %v", err)
	}

	engine.InvalidateUser("u1")

	resp, err := engine.RankForUser(ctx, "u1", places, noon, 10)
	if err != nil {
		t.Fatalf("RankForUser() after invalidate error: %v", err)
	}
	if resp.Metadata.CacheHit {
		t.Error("response served from cache after invalidation")
	}
}

func TestRankWithDisabledCache(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Cache.Enabled = false

	provider := activity.NewSnapshotProvider(testSnapshot())
	engine, _ := newTestEngine(t, cfg, provider)
	ctx := context.Background()

	places := []models.Place{{ID: "cafe", Category: models.CategoryCafe, WaitTimeMinutes: 5}}
	for i := 0; i < 2; i++ {
		resp, err := engine.RankForUser(ctx, "u1", places, noon, 10)
		if err != nil {
			t.Fatalf("RankForUser() error: %v", err)
		}
		if resp.Metadata.CacheHit {
			t.Error("cache hit with caching disabled")
		}
	}
}

func TestPredictAcceptanceForUser(t *testing.T) {
	provider := activity.NewSnapshotProvider(testSnapshot())
	engine, _ := newTestEngine(t, nil, provider)

	s := models.Suggestion{
		Place:           models.Place{ID: "p9", Category: models.CategoryCafe},
		RecommendedTime: noon,
	}
	p, err := engine.PredictAcceptanceForUser(context.Background(), "u1", s, noon)
	if err != nil {
		t.Fatalf("PredictAcceptanceForUser() error: %v", err)
	}
	if p < 0 || p > 1 {
		t.Errorf("probability = %f, want within [0, 1]", p)
	}
}
