// PlacePulse - Place Discovery and Crowd Intelligence
// Copyright 2026 A. Vela (avela)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avela/placepulse

package profile

import (
	"sort"

	"github.com/avela/placepulse/internal/models"
)

// Preference derivation limits.
const (
	maxPreferredCategories = 5
	maxPreferredCrowds     = 2
	maxActiveHours         = 6

	// defaultSlotWeight is the preference weight assigned to every mined
	// time slot.
	defaultSlotWeight = 0.8

	// crowdAvoidImportance and waitAvoidImportance weight the avoidance
	// factors derived from explicit settings.
	crowdAvoidImportance = 0.8
	waitAvoidImportance  = 0.7
)

// PreferenceAnalyzer derives a PreferenceProfile from explicit settings
// and activity history. It is stateless and safe for concurrent use.
type PreferenceAnalyzer struct{}

// NewPreferenceAnalyzer creates a preference analyzer.
func NewPreferenceAnalyzer() *PreferenceAnalyzer {
	return &PreferenceAnalyzer{}
}

// Analyze derives the preference profile. Empty history yields empty
// preference lists; missing settings fields yield no avoidance factors.
func (a *PreferenceAnalyzer) Analyze(settings models.UserSettings, history []models.ActivityRecord) PreferenceProfile {
	return PreferenceProfile{
		PreferredCategories:       topCategories(history, maxPreferredCategories),
		PreferredCrowdLevels:      topCrowdLevels(history, maxPreferredCrowds),
		PreferredTimeSlots:        mineTimeSlots(history),
		AvoidanceFactors:          avoidanceFromSettings(settings),
		AccessibilityRequirements: append([]string(nil), settings.AccessibilityNeeds...),
		MaxTravelDistanceKM:       settings.MaxTravelDistanceKM,
		MaxWaitTimeMinutes:        settings.MaxWaitTimeMinutes,
	}
}

// topCategories returns the n most frequent place categories across the
// history, ties broken by first-seen order.
func topCategories(history []models.ActivityRecord, n int) []models.Category {
	counts := make(map[models.Category]int)
	order := make([]models.Category, 0)

	for _, rec := range history {
		if rec.Place.Category == "" {
			continue
		}
		if _, seen := counts[rec.Place.Category]; !seen {
			order = append(order, rec.Place.Category)
		}
		counts[rec.Place.Category]++
	}

	// Stable sort over first-seen order keeps ties deterministic.
	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > n {
		order = order[:n]
	}
	return order
}

// topCrowdLevels returns the n most frequently reported crowd levels,
// ties broken by first-seen order.
func topCrowdLevels(history []models.ActivityRecord, n int) []models.CrowdLevel {
	counts := make(map[models.CrowdLevel]int)
	order := make([]models.CrowdLevel, 0)

	for _, rec := range history {
		if !rec.IsReport() || !rec.CrowdLevel.Valid() {
			continue
		}
		if _, seen := counts[rec.CrowdLevel]; !seen {
			order = append(order, rec.CrowdLevel)
		}
		counts[rec.CrowdLevel]++
	}

	sort.SliceStable(order, func(i, j int) bool {
		return counts[order[i]] > counts[order[j]]
	})

	if len(order) > n {
		order = order[:n]
	}
	return order
}

// mineTimeSlots builds an hour-of-day histogram from record timestamps,
// selects the most active hours and merges contiguous hours into maximal
// ranges. Each range becomes one slot with the default weight, emitted in
// ascending start order.
func mineTimeSlots(history []models.ActivityRecord) []TimeSlot {
	var histogram [24]int
	for _, rec := range history {
		histogram[rec.Timestamp.Hour()]++
	}

	active := make([]int, 0, 24)
	for h := 0; h < 24; h++ {
		if histogram[h] > 0 {
			active = append(active, h)
		}
	}

	// Most active first; equal counts resolve to the earlier hour.
	sort.SliceStable(active, func(i, j int) bool {
		if histogram[active[i]] != histogram[active[j]] {
			return histogram[active[i]] > histogram[active[j]]
		}
		return active[i] < active[j]
	})

	if len(active) > maxActiveHours {
		active = active[:maxActiveHours]
	}
	sort.Ints(active)

	slots := make([]TimeSlot, 0, len(active))
	for _, h := range active {
		if n := len(slots); n > 0 && h == slots[n-1].EndHour+1 {
			slots[n-1].EndHour = h
			continue
		}
		slots = append(slots, TimeSlot{StartHour: h, EndHour: h, Weight: defaultSlotWeight})
	}
	return slots
}

// avoidanceFromSettings derives avoidance factors from explicit settings.
// History does not currently contribute factors; crowd reports could seed
// a learned crowd threshold once per-user tolerance data exists.
func avoidanceFromSettings(settings models.UserSettings) []AvoidanceFactor {
	factors := make([]AvoidanceFactor, 0, 2)

	if settings.PreferredCrowdLevel.Valid() {
		factors = append(factors, AvoidanceFactor{
			Type:       AvoidCrowd,
			Threshold:  float64(settings.PreferredCrowdLevel),
			Importance: crowdAvoidImportance,
		})
	}

	if settings.MaxWaitTimeMinutes > 0 {
		factors = append(factors, AvoidanceFactor{
			Type:       AvoidWaitTime,
			Threshold:  float64(settings.MaxWaitTimeMinutes),
			Importance: waitAvoidImportance,
		})
	}

	return factors
}
