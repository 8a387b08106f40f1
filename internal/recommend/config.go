// PlacePulse - Place Discovery and Crowd Intelligence
// Copyright 2026 A. Vela (avela)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avela/placepulse

package recommend

import (
	"fmt"
	"time"
)

// Config contains all configuration for the recommendation engine.
type Config struct {
	// Scoring contains the place-ranking weights.
	Scoring ScoringConfig `json:"scoring" koanf:"scoring"`

	// Acceptance contains the acceptance-prediction weights.
	Acceptance AcceptanceConfig `json:"acceptance" koanf:"acceptance"`

	// Limits contains operational limits.
	Limits LimitsConfig `json:"limits" koanf:"limits"`

	// Cache contains ranking-cache parameters.
	Cache CacheConfig `json:"cache" koanf:"cache"`

	// ProfileTTL is how long a stored profile stays fresh. When a lookup
	// finds a profile older than this and an activity provider is
	// configured, the engine rebuilds before ranking. Zero disables
	// staleness checks (the caller owns rebuild timing).
	ProfileTTL time.Duration `json:"profile_ttl" koanf:"profile_ttl"`
}

// ScoringConfig contains the additive weights for place scoring.
// Defaults mirror the reference heuristic; see DefaultConfig.
type ScoringConfig struct {
	// Base is the starting score for every candidate.
	Base float64 `json:"base" koanf:"base"`

	// CategoryBonus applies when the place category is preferred.
	CategoryBonus float64 `json:"category_bonus" koanf:"category_bonus"`

	// CrowdBonus applies when the place crowd level is preferred.
	CrowdBonus float64 `json:"crowd_bonus" koanf:"crowd_bonus"`

	// TimeFactor scales the matched time-slot weight.
	TimeFactor float64 `json:"time_factor" koanf:"time_factor"`

	// DefaultTimeWeight substitutes for the slot weight when no slot
	// contains the scoring hour.
	DefaultTimeWeight float64 `json:"default_time_weight" koanf:"default_time_weight"`

	// WaitBonus applies when the wait fits the user's tolerance.
	WaitBonus float64 `json:"wait_bonus" koanf:"wait_bonus"`

	// WaitPenalty subtracts when the wait exceeds the tolerance.
	WaitPenalty float64 `json:"wait_penalty" koanf:"wait_penalty"`

	// AccessibilityFactor scales the fraction of required capabilities
	// the place provides.
	AccessibilityFactor float64 `json:"accessibility_factor" koanf:"accessibility_factor"`

	// DefaultMaxWaitMinutes is the wait tolerance assumed when the
	// profile carries none.
	DefaultMaxWaitMinutes int `json:"default_max_wait_minutes" koanf:"default_max_wait_minutes"`
}

// AcceptanceConfig contains the additive weights for acceptance
// prediction. The base of the prediction is the profile's measured
// suggestion acceptance rate, not a configured constant.
type AcceptanceConfig struct {
	// CategoryBonus applies when the suggested category is preferred.
	CategoryBonus float64 `json:"category_bonus" koanf:"category_bonus"`

	// CrowdBonus applies when the estimated crowd level is preferred.
	CrowdBonus float64 `json:"crowd_bonus" koanf:"crowd_bonus"`

	// TimeFactor scales the time-slot weight at the recommended hour.
	TimeFactor float64 `json:"time_factor" koanf:"time_factor"`

	// WaitBonus applies when the estimated wait fits the tolerance.
	WaitBonus float64 `json:"wait_bonus" koanf:"wait_bonus"`

	// WaitPenalty subtracts when the estimated wait exceeds it.
	WaitPenalty float64 `json:"wait_penalty" koanf:"wait_penalty"`
}

// LimitsConfig contains operational limits.
type LimitsConfig struct {
	// MaxCandidates is the maximum number of places scored per request.
	// Default: 1000.
	MaxCandidates int `json:"max_candidates" koanf:"max_candidates"`

	// DefaultK is the default number of places to return.
	// Default: 10.
	DefaultK int `json:"default_k" koanf:"default_k"`

	// MaxK is the maximum allowed K value.
	// Default: 100.
	MaxK int `json:"max_k" koanf:"max_k"`
}

// CacheConfig contains ranking-cache parameters.
type CacheConfig struct {
	// Enabled controls whether ranking responses are cached.
	// Default: true.
	Enabled bool `json:"enabled" koanf:"enabled"`

	// TTL is the cache entry time-to-live.
	// Default: 5m.
	TTL time.Duration `json:"ttl" koanf:"ttl"`

	// MaxEntries is the maximum number of cached responses.
	// Default: 10000.
	MaxEntries int `json:"max_entries" koanf:"max_entries"`
}

// DefaultConfig returns a Config with the reference heuristic weights.
func DefaultConfig() *Config {
	return &Config{
		Scoring: ScoringConfig{
			Base:                  0.5,
			CategoryBonus:         0.3,
			CrowdBonus:            0.2,
			TimeFactor:            0.2,
			DefaultTimeWeight:     0.3,
			WaitBonus:             0.1,
			WaitPenalty:           0.2,
			AccessibilityFactor:   0.15,
			DefaultMaxWaitMinutes: 30,
		},
		Acceptance: AcceptanceConfig{
			CategoryBonus: 0.2,
			CrowdBonus:    0.15,
			TimeFactor:    0.2,
			WaitBonus:     0.1,
			WaitPenalty:   0.2,
		},
		Limits: LimitsConfig{
			MaxCandidates: 1000,
			DefaultK:      10,
			MaxK:          100,
		},
		Cache: CacheConfig{
			Enabled:    true,
			TTL:        5 * time.Minute,
			MaxEntries: 10000,
		},
		ProfileTTL: 6 * time.Hour,
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	weights := []struct {
		name  string
		value float64
	}{
		{"scoring.base", c.Scoring.Base},
		{"scoring.category_bonus", c.Scoring.CategoryBonus},
		{"scoring.crowd_bonus", c.Scoring.CrowdBonus},
		{"scoring.time_factor", c.Scoring.TimeFactor},
		{"scoring.default_time_weight", c.Scoring.DefaultTimeWeight},
		{"scoring.wait_bonus", c.Scoring.WaitBonus},
		{"scoring.wait_penalty", c.Scoring.WaitPenalty},
		{"scoring.accessibility_factor", c.Scoring.AccessibilityFactor},
		{"acceptance.category_bonus", c.Acceptance.CategoryBonus},
		{"acceptance.crowd_bonus", c.Acceptance.CrowdBonus},
		{"acceptance.time_factor", c.Acceptance.TimeFactor},
		{"acceptance.wait_bonus", c.Acceptance.WaitBonus},
		{"acceptance.wait_penalty", c.Acceptance.WaitPenalty},
	}
	for _, w := range weights {
		if w.value < 0 || w.value > 1 {
			return fmt.Errorf("%s must be in [0, 1], got %f", w.name, w.value)
		}
	}

	if c.Scoring.DefaultMaxWaitMinutes < 0 {
		return fmt.Errorf("scoring.default_max_wait_minutes must be non-negative, got %d", c.Scoring.DefaultMaxWaitMinutes)
	}

	if c.Limits.MaxCandidates < 1 {
		return fmt.Errorf("limits.max_candidates must be positive, got %d", c.Limits.MaxCandidates)
	}
	if c.Limits.DefaultK < 1 {
		return fmt.Errorf("limits.default_k must be positive, got %d", c.Limits.DefaultK)
	}
	if c.Limits.MaxK < c.Limits.DefaultK {
		return fmt.Errorf("limits.max_k must be >= limits.default_k, got %d < %d", c.Limits.MaxK, c.Limits.DefaultK)
	}

	if c.Cache.Enabled {
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache.ttl must be positive, got %v", c.Cache.TTL)
		}
		if c.Cache.MaxEntries < 1 {
			return fmt.Errorf("cache.max_entries must be positive, got %d", c.Cache.MaxEntries)
		}
	}

	if c.ProfileTTL < 0 {
		return fmt.Errorf("profile_ttl must be non-negative, got %v", c.ProfileTTL)
	}

	return nil
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	// Direct field copy - all nested structs contain only value types
	clone := *c
	return &clone
}
