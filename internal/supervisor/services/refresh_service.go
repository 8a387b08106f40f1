// PlacePulse - Place Discovery and Crowd Intelligence
// Copyright 2026 A. Vela (avela)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avela/placepulse

// Package services provides Suture service wrappers for application components.
package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/avela/placepulse/internal/activity"
	"github.com/avela/placepulse/internal/metrics"
	"github.com/avela/placepulse/internal/profile"
)

// RefreshServiceConfig holds configuration for the profile refresh sweep.
type RefreshServiceConfig struct {
	// Interval is how often to sweep all users for stale profiles.
	Interval time.Duration

	// ProfileTTL is the age past which a profile is considered stale.
	ProfileTTL time.Duration

	// RebuildsPerSecond bounds the rebuild rate so a large user base
	// does not saturate the store.
	RebuildsPerSecond float64

	// RebuildBurst is the rate limiter burst size.
	RebuildBurst int

	// RefreshOnStartup runs one sweep immediately when the service starts.
	RefreshOnStartup bool
}

// RefreshService periodically rebuilds stale user profiles from the
// activity provider. It runs under suture supervision.
type RefreshService struct {
	builder  *profile.Builder
	provider activity.Provider
	config   RefreshServiceConfig
	limiter  *rate.Limiter
	logger   zerolog.Logger
	name     string
}

// NewRefreshService creates a profile refresh service.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewRefreshService(builder *profile.Builder, provider activity.Provider, cfg RefreshServiceConfig, logger zerolog.Logger) *RefreshService {
	if cfg.Interval <= 0 {
		cfg.Interval = 30 * time.Minute
	}
	if cfg.ProfileTTL <= 0 {
		cfg.ProfileTTL = 6 * time.Hour
	}
	if cfg.RebuildsPerSecond <= 0 {
		cfg.RebuildsPerSecond = 10
	}
	if cfg.RebuildBurst <= 0 {
		cfg.RebuildBurst = 5
	}

	return &RefreshService{
		builder:  builder,
		provider: provider,
		config:   cfg,
		limiter:  rate.NewLimiter(rate.Limit(cfg.RebuildsPerSecond), cfg.RebuildBurst),
		logger:   logger.With().Str("service", "profile-refresh").Logger(),
		name:     "profile-refresh",
	}
}

// Serve implements the suture.Service interface. It sweeps all known
// users on a ticker and rebuilds profiles older than the TTL.
func (s *RefreshService) Serve(ctx context.Context) error {
	s.logger.Info().
		Dur("interval", s.config.Interval).
		Dur("profile_ttl", s.config.ProfileTTL).
		Float64("rebuilds_per_second", s.config.RebuildsPerSecond).
		Msg("profile refresh service starting")

	if s.config.RefreshOnStartup {
		if err := s.sweep(ctx); err != nil {
			s.logger.Warn().Err(err).Msg("startup sweep failed (will retry on schedule)")
		}
	}

	ticker := time.NewTicker(s.config.Interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("profile refresh service shutting down")
			return ctx.Err()

		case <-ticker.C:
			if err := s.sweep(ctx); err != nil {
				s.logger.Warn().Err(err).Msg("refresh sweep failed")
			}
		}
	}
}

// Sweep runs a single refresh pass immediately. Exposed for admin
// triggers and tests.
func (s *RefreshService) Sweep(ctx context.Context) error {
	return s.sweep(ctx)
}

// sweep walks all users and rebuilds stale or missing profiles.
func (s *RefreshService) sweep(ctx context.Context) error {
	start := time.Now()
	metrics.RefreshSweepsTotal.Inc()

	userIDs, err := s.provider.UserIDs(ctx)
	if err != nil {
		return err
	}

	now := time.Now()
	rebuilt, failed, fresh := 0, 0, 0

	for _, userID := range userIDs {
		if ctx.Err() != nil {
			return ctx.Err()
		}

		if !s.needsRebuild(ctx, userID, now) {
			fresh++
			continue
		}

		if err := s.limiter.Wait(ctx); err != nil {
			return err
		}

		if err := s.rebuild(ctx, userID); err != nil {
			metrics.RefreshRebuildsTotal.WithLabelValues("error").Inc()
			s.logger.Warn().Err(err).Str("user_id", userID).Msg("profile rebuild failed")
			failed++
			continue
		}
		metrics.RefreshRebuildsTotal.WithLabelValues("ok").Inc()
		rebuilt++
	}

	s.logger.Info().
		Int("users", len(userIDs)).
		Int("rebuilt", rebuilt).
		Int("fresh", fresh).
		Int("failed", failed).
		Dur("duration", time.Since(start)).
		Msg("refresh sweep complete")

	return nil
}

// needsRebuild reports whether a user's profile is missing or stale.
func (s *RefreshService) needsRebuild(ctx context.Context, userID string, now time.Time) bool {
	prof, err := s.builder.GetProfile(ctx, userID)
	if err != nil {
		return true
	}
	return prof.StaleAfter(s.config.ProfileTTL, now)
}

// rebuild fetches a user's data from the provider and rebuilds the profile.
func (s *RefreshService) rebuild(ctx context.Context, userID string) error {
	settings, err := s.provider.Settings(ctx, userID)
	if err != nil {
		return err
	}

	history, err := s.provider.History(ctx, userID)
	if err != nil {
		return err
	}

	suggestions, err := s.provider.SuggestionHistory(ctx, userID)
	if err != nil {
		return err
	}

	_, err = s.builder.Build(ctx, settings, history, suggestions)
	return err
}

// String returns the service name for logging.
func (s *RefreshService) String() string {
	return s.name
}
