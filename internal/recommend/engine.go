// PlacePulse - Place Discovery and Crowd Intelligence
// Copyright 2026 A. Vela (avela)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avela/placepulse

package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/avela/placepulse/internal/activity"
	"github.com/avela/placepulse/internal/cache"
	"github.com/avela/placepulse/internal/metrics"
	"github.com/avela/placepulse/internal/models"
	"github.com/avela/placepulse/internal/profile"
)

// Engine is the entry point for profile-backed recommendations. It
// resolves profiles through the builder's registry, rebuilds stale ones
// when an activity provider is available, and delegates to the scorer
// and predictor. Safe for concurrent use.
type Engine struct {
	config *Config
	logger zerolog.Logger

	builder   *profile.Builder
	provider  activity.Provider
	scorer    *Scorer
	predictor *Predictor

	cache *cache.LRU
}

// Response is an ordered ranking of candidate places for one user.
type Response struct {
	// Places is the ordered list of scored places, best first.
	Places []ScoredPlace `json:"places"`

	// TotalCandidates is the number of candidates considered.
	TotalCandidates int `json:"total_candidates"`

	// Metadata contains timing and diagnostic information.
	Metadata ResponseMetadata `json:"metadata"`
}

// ResponseMetadata contains timing and diagnostic information.
type ResponseMetadata struct {
	// RequestID is the unique request identifier.
	RequestID string `json:"request_id"`

	// UserID is the user the ranking is for.
	UserID string `json:"user_id"`

	// LatencyMS is the total ranking latency in milliseconds.
	LatencyMS int64 `json:"latency_ms"`

	// CacheHit indicates whether the result was served from cache.
	CacheHit bool `json:"cache_hit"`

	// ProfileBuiltAt is when the profile used for ranking was built.
	ProfileBuiltAt time.Time `json:"profile_built_at"`

	// Timestamp is when the response was generated.
	Timestamp time.Time `json:"timestamp"`
}

// NewEngine creates a recommendation engine. The provider may be nil, in
// which case profiles are never rebuilt on read and unknown users fail.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cfg *Config, builder *profile.Builder, provider activity.Provider, logger zerolog.Logger) (*Engine, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if builder == nil {
		return nil, fmt.Errorf("profile builder is required")
	}

	e := &Engine{
		config:    cfg,
		logger:    logger.With().Str("component", "recommend").Logger(),
		builder:   builder,
		provider:  provider,
		scorer:    NewScorer(cfg.Scoring),
		predictor: NewPredictor(cfg.Acceptance, cfg.Scoring),
	}
	if cfg.Cache.Enabled {
		e.cache = cache.NewLRU(cfg.Cache.MaxEntries, cfg.Cache.TTL)
	}
	return e, nil
}

// RankForUser ranks candidate places for a user at the given time. The
// user's profile is loaded from the registry; a missing or stale profile
// is rebuilt from the activity provider when one is configured.
func (e *Engine) RankForUser(ctx context.Context, userID string, places []models.Place, now time.Time, k int) (*Response, error) {
	start := time.Now()
	requestID := uuid.NewString()
	metrics.RecommendRequestsTotal.WithLabelValues("rank").Inc()

	logger := e.logger.With().
		Str("request_id", requestID).
		Str("user_id", userID).
		Logger()

	if e.cache != nil {
		if resp := e.checkCache(e.cacheKey(userID, k, now)); resp != nil {
			metrics.RecommendCacheHits.Inc()
			resp.Metadata.CacheHit = true
			resp.Metadata.RequestID = requestID
			resp.Metadata.LatencyMS = time.Since(start).Milliseconds()
			logger.Debug().Msg("ranking cache hit")
			return resp, nil
		}
		metrics.RecommendCacheMisses.Inc()
	}

	prof, err := e.resolveProfile(ctx, userID, now)
	if err != nil {
		return nil, err
	}

	resp := e.rank(prof, places, now, k, requestID, start)

	if e.cache != nil {
		e.cache.Set(e.cacheKey(userID, k, now), resp)
	}

	metrics.RecommendRequestDuration.WithLabelValues("rank").Observe(time.Since(start).Seconds())
	logger.Debug().
		Int("candidates", len(places)).
		Int("returned", len(resp.Places)).
		Int64("latency_ms", resp.Metadata.LatencyMS).
		Msg("ranking complete")

	return resp, nil
}

// Rank ranks candidate places against an already-resolved profile. Pure:
// no registry access, no cache.
func (e *Engine) Rank(prof *profile.UserProfile, places []models.Place, now time.Time, k int) *Response {
	return e.rank(prof, places, now, k, uuid.NewString(), time.Now())
}

// PredictAcceptance estimates the probability that the user behind the
// profile accepts the suggestion.
func (e *Engine) PredictAcceptance(s models.Suggestion, prof *profile.UserProfile) float64 {
	start := time.Now()
	metrics.RecommendRequestsTotal.WithLabelValues("predict").Inc()
	p := e.predictor.PredictAcceptance(s, prof)
	metrics.RecommendRequestDuration.WithLabelValues("predict").Observe(time.Since(start).Seconds())
	return p
}

// PredictAcceptanceForUser resolves the user's profile and estimates
// acceptance for the suggestion.
func (e *Engine) PredictAcceptanceForUser(ctx context.Context, userID string, s models.Suggestion, now time.Time) (float64, error) {
	prof, err := e.resolveProfile(ctx, userID, now)
	if err != nil {
		return 0, err
	}
	return e.PredictAcceptance(s, prof), nil
}

// Scorer exposes the underlying scorer for callers that rank against
// profiles they hold themselves.
func (e *Engine) Scorer() *Scorer {
	return e.scorer
}

// GetConfig returns a copy of the current configuration.
func (e *Engine) GetConfig() *Config {
	return e.config.Clone()
}

// rank scores, sorts and truncates the candidate list.
func (e *Engine) rank(prof *profile.UserProfile, places []models.Place, now time.Time, k int, requestID string, start time.Time) *Response {
	scored := e.scorer.RankPlaces(places, prof, now, k, e.config.Limits)

	return &Response{
		Places:          scored,
		TotalCandidates: len(places),
		Metadata: ResponseMetadata{
			RequestID:      requestID,
			UserID:         prof.UserID,
			LatencyMS:      time.Since(start).Milliseconds(),
			ProfileBuiltAt: prof.LastUpdated,
			Timestamp:      time.Now(),
		},
	}
}

// resolveProfile loads the user's profile, rebuilding a missing or stale
// one from the activity provider when configured.
func (e *Engine) resolveProfile(ctx context.Context, userID string, now time.Time) (*profile.UserProfile, error) {
	prof, err := e.builder.GetProfile(ctx, userID)

	switch {
	case err == nil && !prof.StaleAfter(e.config.ProfileTTL, now):
		return prof, nil

	case err != nil && !errors.Is(err, profile.ErrProfileNotFound):
		return nil, fmt.Errorf("load profile for %s: %w", userID, err)

	case e.provider == nil:
		if err != nil {
			return nil, fmt.Errorf("load profile for %s: %w", userID, err)
		}
		// Stale but no provider to rebuild from; serve what we have.
		return prof, nil
	}

	rebuilt, err := e.rebuildProfile(ctx, userID)
	if err != nil {
		return nil, err
	}
	return rebuilt, nil
}

// rebuildProfile fetches the user's data from the provider and builds a
// fresh profile.
func (e *Engine) rebuildProfile(ctx context.Context, userID string) (*profile.UserProfile, error) {
	settings, err := e.provider.Settings(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch settings for %s: %w", userID, err)
	}

	history, err := e.provider.History(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch history for %s: %w", userID, err)
	}

	suggestions, err := e.provider.SuggestionHistory(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("fetch suggestion history for %s: %w", userID, err)
	}

	return e.builder.Build(ctx, settings, history, suggestions)
}

// cacheKey identifies a ranking response. The hour component keeps
// cached rankings aligned with time-slot boundaries.
func (e *Engine) cacheKey(userID string, k int, now time.Time) string {
	return fmt.Sprintf("rank:%s:%d:%d", userID, k, now.Hour())
}

// checkCache returns a copy of a live cached response, or nil.
func (e *Engine) checkCache(key string) *Response {
	cached, ok := e.cache.Get(key)
	if !ok {
		return nil
	}

	resp, ok := cached.(*Response)
	if !ok {
		return nil
	}

	places := make([]ScoredPlace, len(resp.Places))
	copy(places, resp.Places)
	return &Response{
		Places:          places,
		TotalCandidates: resp.TotalCandidates,
		Metadata:        resp.Metadata,
	}
}

// InvalidateUser drops cached rankings for a user, e.g. after an
// explicit rebuild.
func (e *Engine) InvalidateUser(userID string) {
	if e.cache != nil {
		e.cache.DeletePrefix("rank:" + userID + ":")
	}
}
