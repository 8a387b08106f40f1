// PlacePulse - Place Discovery and Crowd Intelligence
// Copyright 2026 A. Vela (avela)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avela/placepulse

package recommend

import (
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/avela/placepulse/internal/models"
	"github.com/avela/placepulse/internal/profile"
)

// noon is a fixed scoring instant; hour 12 sits inside the test
// profile's preferred slot.
var noon = time.Date(2026, time.June, 15, 12, 0, 0, 0, time.UTC)

// matchingProfile prefers cafes at low crowd between 11:00 and 14:00
// with a 20 minute wait tolerance.
func matchingProfile() *profile.UserProfile {
	return &profile.UserProfile{
		UserID: "u1",
		Preferences: profile.PreferenceProfile{
			PreferredCategories:  []models.Category{models.CategoryCafe},
			PreferredCrowdLevels: []models.CrowdLevel{models.CrowdLow},
			PreferredTimeSlots: []profile.TimeSlot{
				{StartHour: 11, EndHour: 14, Weight: 0.8},
			},
			MaxWaitTimeMinutes: 20,
		},
		Behaviors: profile.BehaviorProfile{SuggestionAcceptanceRate: 0.7},
	}
}

// emptyProfile carries no preferences at all.
func emptyProfile() *profile.UserProfile {
	return &profile.UserProfile{
		UserID:    "u1",
		Behaviors: profile.BehaviorProfile{SuggestionAcceptanceRate: 0.7},
	}
}

func TestScorePlace(t *testing.T) {
	scorer := NewScorer(DefaultConfig().Scoring)

	tests := []struct {
		name  string
		place models.Place
		prof  *profile.UserProfile
		want  float64
	}{
		{
			// 0.5 + 0.3 + 0.2 + 0.8*0.2 + 0.1 + 0.15 exceeds one.
			name: "full match saturates at one",
			place: models.Place{
				ID:              "p1",
				Category:        models.CategoryCafe,
				CrowdLevel:      models.CrowdLow,
				WaitTimeMinutes: 10,
			},
			prof: matchingProfile(),
			want: 1,
		},
		{
			// 0.5 + 0.3*0.2 + 0.1 + 0.15 with nothing else matching.
			name: "no preference signal uses defaults",
			place: models.Place{
				ID:              "p1",
				Category:        models.CategoryBank,
				CrowdLevel:      models.CrowdHigh,
				WaitTimeMinutes: 10,
			},
			prof: emptyProfile(),
			want: 0.81,
		},
		{
			// Same as above but the wait exceeds the 30 minute default
			// tolerance, flipping the 0.1 bonus into a 0.2 penalty.
			name: "excessive wait drops the score",
			place: models.Place{
				ID:              "p1",
				Category:        models.CategoryBank,
				CrowdLevel:      models.CrowdHigh,
				WaitTimeMinutes: 45,
			},
			prof: emptyProfile(),
			want: 0.51,
		},
		{
			// Profile tolerance 20 overrides the 30 minute default: a
			// 25 minute wait is over budget even though it is under 30.
			name: "profile wait tolerance wins over default",
			place: models.Place{
				ID:              "p1",
				Category:        models.CategoryBank,
				CrowdLevel:      models.CrowdHigh,
				WaitTimeMinutes: 25,
			},
			prof: func() *profile.UserProfile {
				p := emptyProfile()
				p.Preferences.MaxWaitTimeMinutes = 20
				return p
			}(),
			// 0.5 + 0.06 - 0.2 + 0.15
			want: 0.51,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := scorer.ScorePlace(tt.place, tt.prof, noon)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ScorePlace() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestScorePlaceWaitPenaltyDelta(t *testing.T) {
	scorer := NewScorer(DefaultConfig().Scoring)
	prof := emptyProfile()

	fast := models.Place{ID: "p1", Category: models.CategoryBank, WaitTimeMinutes: 10}
	slow := fast
	slow.WaitTimeMinutes = 45

	delta := scorer.ScorePlace(fast, prof, noon) - scorer.ScorePlace(slow, prof, noon)
	if math.Abs(delta-0.3) > 1e-9 {
		t.Errorf("bonus-to-penalty swing = %f, want 0.3", delta)
	}
}

func TestScorePlaceAccessibility(t *testing.T) {
	scorer := NewScorer(DefaultConfig().Scoring)

	prof := emptyProfile()
	prof.Preferences.AccessibilityRequirements = []string{"wheelchair", "elevator"}

	tests := []struct {
		name      string
		available []string
		want      float64
	}{
		// 0.5 + 0.06 + 0.1 + fraction*0.15
		{"all requirements met", []string{"wheelchair", "elevator", "braille"}, 0.81},
		{"half the requirements met", []string{"wheelchair"}, 0.735},
		{"none met", nil, 0.66},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			place := models.Place{
				ID:              "p1",
				Category:        models.CategoryBank,
				WaitTimeMinutes: 10,
				Accessibility:   tt.available,
			}
			got := scorer.ScorePlace(place, prof, noon)
			if math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ScorePlace() = %f, want %f", got, tt.want)
			}
		})
	}
}

func TestScorePlaceClampsAtZero(t *testing.T) {
	cfg := ScoringConfig{
		WaitPenalty:           0.5,
		DefaultMaxWaitMinutes: 30,
	}
	scorer := NewScorer(cfg)

	prof := emptyProfile()
	prof.Preferences.AccessibilityRequirements = []string{"wheelchair"}

	place := models.Place{ID: "p1", WaitTimeMinutes: 60}
	if got := scorer.ScorePlace(place, prof, noon); got != 0 {
		t.Errorf("ScorePlace() = %f, want 0", got)
	}
}

func TestRankPlaces(t *testing.T) {
	scorer := NewScorer(DefaultConfig().Scoring)
	limits := DefaultConfig().Limits
	prof := matchingProfile()

	preferred := models.Place{ID: "cafe", Category: models.CategoryCafe, CrowdLevel: models.CrowdLow, WaitTimeMinutes: 5}
	other := models.Place{ID: "bank", Category: models.CategoryBank, CrowdLevel: models.CrowdHigh, WaitTimeMinutes: 5}

	t.Run("orders by score descending", func(t *testing.T) {
		got := scorer.RankPlaces([]models.Place{other, preferred}, prof, noon, 10, limits)

		if len(got) != 2 {
			t.Fatalf("RankPlaces() returned %d places, want 2", len(got))
		}
		if got[0].Place.ID != "cafe" || got[1].Place.ID != "bank" {
			t.Errorf("order = [%s %s], want [cafe bank]", got[0].Place.ID, got[1].Place.ID)
		}
		if got[0].Score <= got[1].Score {
			t.Errorf("scores not descending: %f <= %f", got[0].Score, got[1].Score)
		}
	})

	t.Run("equal scores keep input order", func(t *testing.T) {
		a := other
		a.ID = "first"
		b := other
		b.ID = "second"

		got := scorer.RankPlaces([]models.Place{a, b}, prof, noon, 10, limits)
		if got[0].Place.ID != "first" || got[1].Place.ID != "second" {
			t.Errorf("order = [%s %s], want [first second]", got[0].Place.ID, got[1].Place.ID)
		}
	})

	t.Run("truncates to k", func(t *testing.T) {
		places := make([]models.Place, 30)
		for i := range places {
			p := other
			p.ID = fmt.Sprintf("p%d", i)
			places[i] = p
		}

		got := scorer.RankPlaces(places, prof, noon, 3, limits)
		if len(got) != 3 {
			t.Errorf("RankPlaces(k=3) returned %d places, want 3", len(got))
		}
	})

	t.Run("non-positive k falls back to default", func(t *testing.T) {
		places := make([]models.Place, 30)
		for i := range places {
			p := other
			p.ID = fmt.Sprintf("p%d", i)
			places[i] = p
		}

		got := scorer.RankPlaces(places, prof, noon, 0, limits)
		if len(got) != limits.DefaultK {
			t.Errorf("RankPlaces(k=0) returned %d places, want %d", len(got), limits.DefaultK)
		}
	})

	t.Run("k is capped at the maximum", func(t *testing.T) {
		small := LimitsConfig{MaxCandidates: 1000, DefaultK: 2, MaxK: 4}
		places := make([]models.Place, 10)
		for i := range places {
			p := other
			p.ID = fmt.Sprintf("p%d", i)
			places[i] = p
		}

		got := scorer.RankPlaces(places, prof, noon, 50, small)
		if len(got) != 4 {
			t.Errorf("RankPlaces(k=50, maxK=4) returned %d places, want 4", len(got))
		}
	})

	t.Run("candidate list is bounded", func(t *testing.T) {
		small := LimitsConfig{MaxCandidates: 5, DefaultK: 10, MaxK: 100}

		// The preferred place sits past the candidate cutoff, so it
		// must not appear in the result.
		places := make([]models.Place, 0, 6)
		for i := 0; i < 5; i++ {
			p := other
			p.ID = fmt.Sprintf("p%d", i)
			places = append(places, p)
		}
		places = append(places, preferred)

		got := scorer.RankPlaces(places, prof, noon, 10, small)
		if len(got) != 5 {
			t.Fatalf("RankPlaces() returned %d places, want 5", len(got))
		}
		for _, sp := range got {
			if sp.Place.ID == "cafe" {
				t.Error("place past the candidate limit was scored")
			}
		}
	})

	t.Run("empty candidates yield empty result", func(t *testing.T) {
		got := scorer.RankPlaces(nil, prof, noon, 10, limits)
		if len(got) != 0 {
			t.Errorf("RankPlaces(nil) = %v, want empty", got)
		}
	})
}
