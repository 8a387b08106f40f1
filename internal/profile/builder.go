// PlacePulse - Place Discovery and Crowd Intelligence
// Copyright 2026 A. Vela (avela)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avela/placepulse

package profile

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/avela/placepulse/internal/metrics"
	"github.com/avela/placepulse/internal/models"
	"github.com/avela/placepulse/internal/validation"
)

// ErrProfileNotFound is returned by registry lookups for unknown users.
var ErrProfileNotFound = errors.New("profile not found")

// Registry stores one live profile per user, keyed by user id. Put
// replaces any prior entry atomically; implementations live in the
// profile/store package (in-memory map, BadgerDB).
type Registry interface {
	// Put stores a profile, replacing any prior entry for the same user.
	Put(ctx context.Context, p *UserProfile) error

	// Get returns the live profile for a user, or ErrProfileNotFound.
	Get(ctx context.Context, userID string) (*UserProfile, error)

	// Delete removes a user's profile. Deleting an absent profile is not
	// an error.
	Delete(ctx context.Context, userID string) error

	// UserIDs lists the users that currently have a profile.
	UserIDs(ctx context.Context) ([]string, error)
}

// Builder orchestrates the three analyzers into UserProfile snapshots and
// registers them. It is safe for concurrent use; concurrent builds for
// the same user serialize on a per-user lock while distinct users proceed
// in parallel.
type Builder struct {
	registry Registry
	logger   zerolog.Logger

	preferences *PreferenceAnalyzer
	behaviors   *BehaviorAnalyzer
	patterns    *PatternMiner

	// clock is injectable so tests can pin LastUpdated.
	clock func() time.Time

	mu        sync.Mutex
	userLocks map[string]*sync.Mutex
}

// NewBuilder creates a profile builder backed by the given registry.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewBuilder(registry Registry, logger zerolog.Logger) *Builder {
	return &Builder{
		registry:    registry,
		logger:      logger.With().Str("component", "profile").Logger(),
		preferences: NewPreferenceAnalyzer(),
		behaviors:   NewBehaviorAnalyzer(),
		patterns:    NewPatternMiner(),
		clock:       time.Now,
		userLocks:   make(map[string]*sync.Mutex),
	}
}

// SetClock replaces the build timestamp source. Intended for tests that
// need byte-identical output across builds.
func (b *Builder) SetClock(clock func() time.Time) {
	if clock != nil {
		b.clock = clock
	}
}

// Build derives a fresh profile from settings, activity history and
// suggestion history, stores it in the registry and returns it. It never
// fails on empty history; every derived field falls back to defaults.
// Identical ordered inputs yield identical profiles (given a pinned
// clock), so builds are idempotent snapshots, not incremental merges.
func (b *Builder) Build(ctx context.Context, settings models.UserSettings, history []models.ActivityRecord, suggestions []models.SuggestionOutcome) (*UserProfile, error) {
	if settings.UserID == "" {
		return nil, fmt.Errorf("build profile: user id is empty")
	}
	if err := validation.ValidateStruct(&settings); err != nil {
		return nil, fmt.Errorf("build profile for %s: %w", settings.UserID, err)
	}

	lock := b.userLock(settings.UserID)
	lock.Lock()
	defer lock.Unlock()

	start := time.Now()

	p := &UserProfile{
		UserID:      settings.UserID,
		Preferences: b.preferences.Analyze(settings, history),
		Behaviors:   b.behaviors.Analyze(history, suggestions),
		Patterns:    b.patterns.Mine(settings, history),
		LastUpdated: b.clock(),
	}

	if err := b.registry.Put(ctx, p); err != nil {
		metrics.ProfileBuildErrors.Inc()
		return nil, fmt.Errorf("store profile for %s: %w", settings.UserID, err)
	}

	metrics.ProfileBuildsTotal.Inc()
	metrics.ProfileBuildDuration.Observe(time.Since(start).Seconds())

	b.logger.Debug().
		Str("user_id", settings.UserID).
		Int("history", len(history)).
		Int("suggestions", len(suggestions)).
		Int("categories", len(p.Preferences.PreferredCategories)).
		Int("time_slots", len(p.Preferences.PreferredTimeSlots)).
		Msg("profile built")

	return p, nil
}

// GetProfile returns the live profile for a user from the registry.
func (b *Builder) GetProfile(ctx context.Context, userID string) (*UserProfile, error) {
	return b.registry.Get(ctx, userID)
}

// Registry exposes the backing registry for callers that need direct
// access (refresh sweeps, diagnostics).
func (b *Builder) Registry() Registry {
	return b.registry
}

// userLock returns the mutex serializing builds for one user.
func (b *Builder) userLock(userID string) *sync.Mutex {
	b.mu.Lock()
	defer b.mu.Unlock()

	lock, ok := b.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		b.userLocks[userID] = lock
	}
	return lock
}
