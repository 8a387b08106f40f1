// PlacePulse - Place Discovery and Crowd Intelligence
// Copyright 2026 A. Vela (avela)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avela/placepulse

package profile

import (
	"sort"
	"time"

	"github.com/avela/placepulse/internal/models"
)

const (
	maxPeakHours     = 6
	maxPreferredDays = 4

	// observationWindowWeeks is the assumed span of the supplied history.
	// ReportFrequency is reports-per-week under this assumption; the
	// caller is expected to fetch roughly four weeks of records.
	observationWindowWeeks = 4

	// neutralAcceptanceRate is the placeholder used when the suggestion
	// history carries no responded outcomes. The app does not yet persist
	// enough outcome data to measure a true per-user rate.
	neutralAcceptanceRate = 0.7

	// fallbackVisitMinutes is used for categories absent from the
	// duration table.
	fallbackVisitMinutes = 45
)

// defaultVisitDurations is a static category-to-minutes table. Durations
// are not derived from data; replace with real aggregation once visit
// span tracking exists.
var defaultVisitDurations = map[models.Category]int{
	models.CategoryRestaurant: 60,
	models.CategoryCafe:       40,
	models.CategoryBank:       20,
	models.CategoryHospital:   90,
	models.CategoryPharmacy:   15,
	models.CategoryPark:       75,
	models.CategoryLibrary:    80,
	models.CategoryGym:        70,
	models.CategoryMarket:     35,
	models.CategoryMall:       100,
}

// BehaviorAnalyzer derives a BehaviorProfile from activity and suggestion
// history. It is stateless and safe for concurrent use.
type BehaviorAnalyzer struct{}

// NewBehaviorAnalyzer creates a behavior analyzer.
func NewBehaviorAnalyzer() *BehaviorAnalyzer {
	return &BehaviorAnalyzer{}
}

// Analyze derives the behavior profile. Empty history yields zero
// frequencies and empty statistics.
func (a *BehaviorAnalyzer) Analyze(history []models.ActivityRecord, suggestions []models.SuggestionOutcome) BehaviorProfile {
	freq := visitFrequency(history)

	return BehaviorProfile{
		VisitFrequency:           freq,
		AverageVisitDuration:     visitDurations(freq),
		Reporting:                reportingActivity(history),
		SuggestionAcceptanceRate: acceptanceRate(suggestions),
		PeakActivityHours:        peakHours(history),
		PreferredDays:            preferredDays(history),
	}
}

// visitFrequency computes each category's share of the history. The
// returned map is empty (not nil) when there is no history, and its
// values sum to 1 otherwise.
func visitFrequency(history []models.ActivityRecord) map[models.Category]float64 {
	counts := make(map[models.Category]int)
	total := 0
	for _, rec := range history {
		if rec.Place.Category == "" {
			continue
		}
		counts[rec.Place.Category]++
		total++
	}

	freq := make(map[models.Category]float64, len(counts))
	if total == 0 {
		return freq
	}
	for cat, n := range counts {
		freq[cat] = float64(n) / float64(total)
	}
	return freq
}

// visitDurations looks up the static duration table for every observed
// category.
func visitDurations(freq map[models.Category]float64) map[models.Category]int {
	durations := make(map[models.Category]int, len(freq))
	for cat := range freq {
		if minutes, ok := defaultVisitDurations[cat]; ok {
			durations[cat] = minutes
			continue
		}
		durations[cat] = fallbackVisitMinutes
	}
	return durations
}

// reportingActivity summarizes report volume, accuracy and cadence.
func reportingActivity(history []models.ActivityRecord) ReportingActivity {
	total := len(history)

	verified := 0
	types := make([]string, 0)
	seenTypes := make(map[string]struct{})
	for _, rec := range history {
		if rec.Verified {
			verified++
		}
		if rec.ReportType == "" {
			continue
		}
		if _, seen := seenTypes[rec.ReportType]; !seen {
			seenTypes[rec.ReportType] = struct{}{}
			types = append(types, rec.ReportType)
		}
	}

	accuracy := 0.0
	frequency := 0.0
	if total > 0 {
		accuracy = float64(verified) / float64(total)
		frequency = float64(total) / observationWindowWeeks
	}

	return ReportingActivity{
		TotalReports:         total,
		AccuracyScore:        accuracy,
		ReportFrequency:      frequency,
		PreferredReportTypes: types,
	}
}

// acceptanceRate is the fraction of responded suggestions the user
// accepted. Pending entries carry no signal and are skipped; with no
// responded outcomes at all the neutral placeholder applies.
func acceptanceRate(suggestions []models.SuggestionOutcome) float64 {
	accepted, responded := 0, 0
	for _, s := range suggestions {
		switch s.Status {
		case models.SuggestionAccepted:
			accepted++
			responded++
		case models.SuggestionDeclined:
			responded++
		case models.SuggestionPending:
		}
	}

	if responded == 0 {
		return neutralAcceptanceRate
	}
	return float64(accepted) / float64(responded)
}

// peakHours returns up to 6 hours of day ordered by activity count
// descending; equal counts resolve to the earlier hour.
func peakHours(history []models.ActivityRecord) []int {
	var histogram [24]int
	for _, rec := range history {
		histogram[rec.Timestamp.Hour()]++
	}

	hours := make([]int, 0, 24)
	for h := 0; h < 24; h++ {
		if histogram[h] > 0 {
			hours = append(hours, h)
		}
	}

	sort.SliceStable(hours, func(i, j int) bool {
		if histogram[hours[i]] != histogram[hours[j]] {
			return histogram[hours[i]] > histogram[hours[j]]
		}
		return hours[i] < hours[j]
	})

	if len(hours) > maxPeakHours {
		hours = hours[:maxPeakHours]
	}
	return hours
}

// preferredDays returns up to 4 weekdays ordered by activity count
// descending; equal counts resolve to the earlier weekday.
func preferredDays(history []models.ActivityRecord) []time.Weekday {
	var histogram [7]int
	for _, rec := range history {
		histogram[rec.Timestamp.Weekday()]++
	}

	days := make([]time.Weekday, 0, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		if histogram[d] > 0 {
			days = append(days, d)
		}
	}

	sort.SliceStable(days, func(i, j int) bool {
		if histogram[days[i]] != histogram[days[j]] {
			return histogram[days[i]] > histogram[days[j]]
		}
		return days[i] < days[j]
	})

	if len(days) > maxPreferredDays {
		days = days[:maxPreferredDays]
	}
	return days
}
