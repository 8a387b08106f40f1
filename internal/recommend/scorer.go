// PlacePulse - Place Discovery and Crowd Intelligence
// Copyright 2026 A. Vela (avela)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avela/placepulse

package recommend

import (
	"sort"
	"time"

	"github.com/avela/placepulse/internal/models"
	"github.com/avela/placepulse/internal/profile"
)

// ScoredPlace is a candidate place with its recommendation score.
type ScoredPlace struct {
	// Place is the candidate place.
	Place models.Place `json:"place"`

	// Score is the recommendation score (0-1, higher is better).
	Score float64 `json:"score"`
}

// Scorer ranks candidate places against a user profile and a point in
// time. It is stateless apart from its weights and safe for concurrent
// use.
type Scorer struct {
	cfg ScoringConfig
}

// NewScorer creates a scorer with the given weights.
func NewScorer(cfg ScoringConfig) *Scorer {
	return &Scorer{cfg: cfg}
}

// ScorePlace scores one candidate place for a profile at the given time.
// The result is always within [0, 1] regardless of input extremes.
func (s *Scorer) ScorePlace(place models.Place, prof *profile.UserProfile, now time.Time) float64 {
	score := s.cfg.Base

	if prof.Preferences.HasCategory(place.Category) {
		score += s.cfg.CategoryBonus
	}

	if prof.Preferences.HasCrowdLevel(place.CrowdLevel) {
		score += s.cfg.CrowdBonus
	}

	weight, ok := prof.Preferences.TimeWeight(now.Hour())
	if !ok {
		weight = s.cfg.DefaultTimeWeight
	}
	score += weight * s.cfg.TimeFactor

	if place.WaitTimeMinutes <= s.maxWait(prof) {
		score += s.cfg.WaitBonus
	} else {
		score -= s.cfg.WaitPenalty
	}

	score += s.accessibilityMatch(place, prof) * s.cfg.AccessibilityFactor

	return clamp01(score)
}

// RankPlaces scores all candidates and returns the top k by score,
// descending. The sort is stable, so equal scores keep input order. A
// non-positive k falls back to the configured default.
func (s *Scorer) RankPlaces(places []models.Place, prof *profile.UserProfile, now time.Time, k int, limits LimitsConfig) []ScoredPlace {
	if k <= 0 {
		k = limits.DefaultK
	}
	if k > limits.MaxK {
		k = limits.MaxK
	}
	if len(places) > limits.MaxCandidates {
		places = places[:limits.MaxCandidates]
	}

	scored := make([]ScoredPlace, 0, len(places))
	for _, place := range places {
		scored = append(scored, ScoredPlace{
			Place: place,
			Score: s.ScorePlace(place, prof, now),
		})
	}

	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	if len(scored) > k {
		scored = scored[:k]
	}
	return scored
}

// maxWait is the user's wait tolerance in minutes, falling back to the
// configured default when the profile carries none.
func (s *Scorer) maxWait(prof *profile.UserProfile) int {
	if prof.Preferences.MaxWaitTimeMinutes > 0 {
		return prof.Preferences.MaxWaitTimeMinutes
	}
	return s.cfg.DefaultMaxWaitMinutes
}

// accessibilityMatch is the fraction of profile-required capabilities the
// place provides, or 1 when the profile requires none.
func (s *Scorer) accessibilityMatch(place models.Place, prof *profile.UserProfile) float64 {
	required := prof.Preferences.AccessibilityRequirements
	if len(required) == 0 {
		return 1
	}

	available := make(map[string]struct{}, len(place.Accessibility))
	for _, tag := range place.Accessibility {
		available[tag] = struct{}{}
	}

	matched := 0
	for _, tag := range required {
		if _, ok := available[tag]; ok {
			matched++
		}
	}
	return float64(matched) / float64(len(required))
}

// clamp01 bounds a score to [0, 1].
func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
