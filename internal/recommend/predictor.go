// PlacePulse - Place Discovery and Crowd Intelligence
// Copyright 2026 A. Vela (avela)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avela/placepulse

package recommend

import (
	"github.com/avela/placepulse/internal/models"
	"github.com/avela/placepulse/internal/profile"
)

// Predictor estimates the probability that a user accepts a generated
// suggestion. The profile's measured acceptance rate is the base; the
// suggestion's fit against preferences shifts it. Safe for concurrent
// use.
type Predictor struct {
	cfg AcceptanceConfig

	// defaultTimeWeight and defaultMaxWait mirror the scorer so both
	// sides judge time and wait fit identically.
	defaultTimeWeight float64
	defaultMaxWait    int
}

// NewPredictor creates a predictor with the given weights. The scoring
// config supplies the shared time and wait defaults.
func NewPredictor(cfg AcceptanceConfig, scoring ScoringConfig) *Predictor {
	return &Predictor{
		cfg:               cfg,
		defaultTimeWeight: scoring.DefaultTimeWeight,
		defaultMaxWait:    scoring.DefaultMaxWaitMinutes,
	}
}

// PredictAcceptance returns the estimated acceptance probability for the
// suggestion, always within [0, 1].
func (p *Predictor) PredictAcceptance(s models.Suggestion, prof *profile.UserProfile) float64 {
	probability := prof.Behaviors.SuggestionAcceptanceRate

	if prof.Preferences.HasCategory(s.Place.Category) {
		probability += p.cfg.CategoryBonus
	}

	if prof.Preferences.HasCrowdLevel(s.EstimatedCrowdLevel) {
		probability += p.cfg.CrowdBonus
	}

	weight, ok := prof.Preferences.TimeWeight(s.RecommendedTime.Hour())
	if !ok {
		weight = p.defaultTimeWeight
	}
	probability += weight * p.cfg.TimeFactor

	maxWait := prof.Preferences.MaxWaitTimeMinutes
	if maxWait <= 0 {
		maxWait = p.defaultMaxWait
	}
	if s.EstimatedWaitTimeMinutes <= maxWait {
		probability += p.cfg.WaitBonus
	} else {
		probability -= p.cfg.WaitPenalty
	}

	return clamp01(probability)
}
