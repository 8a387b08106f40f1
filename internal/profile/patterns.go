// PlacePulse - Place Discovery and Crowd Intelligence
// Copyright 2026 A. Vela (avela)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avela/placepulse

package profile

import (
	"time"

	"github.com/avela/placepulse/internal/models"
)

// Pattern mining constants. Routine/social/mobility values are coarse
// placeholders until richer signals (companions, geolocation traces) are
// collected; seasonal preferences are the only fully data-derived output.
const (
	// routineSupportCount is the history size at which a routine pattern
	// reaches full confidence.
	routineSupportCount = 20

	// weekendRoutineShare is the weekend activity share above which a
	// weekend routine is emitted.
	weekendRoutineShare = 0.4

	// defaultMobilityRangeKM applies when settings carry no travel bound.
	defaultMobilityRangeKM = 5.0

	// localMobilityMaxKM separates "local" from "roaming" movement.
	localMobilityMaxKM = 5.0

	// mobilityBaseConfidence reflects that mobility is inferred from a
	// single settings field, not observed movement.
	mobilityBaseConfidence = 0.3
)

// seasonOrder fixes the emission order of seasonal summaries.
var seasonOrder = []Season{SeasonWinter, SeasonSpring, SeasonSummer, SeasonAutumn}

// PatternMiner derives coarse recurring patterns from history and
// settings. It is stateless and safe for concurrent use.
type PatternMiner struct{}

// NewPatternMiner creates a pattern miner.
func NewPatternMiner() *PatternMiner {
	return &PatternMiner{}
}

// Mine derives the pattern profile. Empty history yields empty routine
// and seasonal summaries; social and mobility summaries always carry the
// coarse defaults.
func (m *PatternMiner) Mine(settings models.UserSettings, history []models.ActivityRecord) PatternProfile {
	return PatternProfile{
		RoutinePatterns:     mineRoutines(history),
		SeasonalPreferences: mineSeasons(history),
		SocialPatterns:      defaultSocialPatterns(),
		MobilityPatterns:    mineMobility(settings),
	}
}

// mineSeasons buckets each record into one of four fixed seasons and
// summarizes the distinct categories and activity share per season.
func mineSeasons(history []models.ActivityRecord) []SeasonalPreference {
	if len(history) == 0 {
		return []SeasonalPreference{}
	}

	counts := make(map[Season]int, 4)
	categories := make(map[Season][]models.Category, 4)
	seen := make(map[Season]map[models.Category]struct{}, 4)

	for _, rec := range history {
		season := SeasonOf(rec.Timestamp.Month())
		counts[season]++
		if rec.Place.Category == "" {
			continue
		}
		if seen[season] == nil {
			seen[season] = make(map[models.Category]struct{})
		}
		if _, ok := seen[season][rec.Place.Category]; !ok {
			seen[season][rec.Place.Category] = struct{}{}
			categories[season] = append(categories[season], rec.Place.Category)
		}
	}

	total := len(history)
	prefs := make([]SeasonalPreference, 0, 4)
	for _, season := range seasonOrder {
		if counts[season] == 0 {
			continue
		}
		cats := categories[season]
		if cats == nil {
			cats = []models.Category{}
		}
		prefs = append(prefs, SeasonalPreference{
			Season:        season,
			Categories:    cats,
			ActivityLevel: float64(counts[season]) / float64(total),
		})
	}
	return prefs
}

// mineRoutines emits a coarse overall routine plus a weekend routine when
// weekend activity dominates. Confidence scales with history size.
func mineRoutines(history []models.ActivityRecord) []RoutinePattern {
	if len(history) == 0 {
		return []RoutinePattern{}
	}

	support := float64(len(history)) / routineSupportCount
	if support > 1 {
		support = 1
	}

	routines := []RoutinePattern{{
		Label:      "regular_hours",
		Hours:      peakHours(history),
		Days:       preferredDays(history),
		Confidence: support,
	}}

	weekend := 0
	for _, rec := range history {
		if d := rec.Timestamp.Weekday(); d == time.Saturday || d == time.Sunday {
			weekend++
		}
	}
	if share := float64(weekend) / float64(len(history)); share > weekendRoutineShare {
		routines = append(routines, RoutinePattern{
			Label:      "weekend_outing",
			Days:       []time.Weekday{time.Saturday, time.Sunday},
			Confidence: share,
		})
	}

	return routines
}

// defaultSocialPatterns returns the placeholder social split. Companion
// matching data is not yet fed into profiling.
func defaultSocialPatterns() []SocialPattern {
	return []SocialPattern{
		{Kind: "solo", Weight: 0.6},
		{Kind: "group", Weight: 0.4},
	}
}

// mineMobility infers a movement summary from the explicit travel bound.
func mineMobility(settings models.UserSettings) []MobilityPattern {
	rangeKM := settings.MaxTravelDistanceKM
	if rangeKM <= 0 {
		rangeKM = defaultMobilityRangeKM
	}

	kind := "roaming"
	if rangeKM <= localMobilityMaxKM {
		kind = "local"
	}

	return []MobilityPattern{{
		Kind:       kind,
		RangeKM:    rangeKM,
		Confidence: mobilityBaseConfidence,
	}}
}
