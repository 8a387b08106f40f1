// PlacePulse - Place Discovery and Crowd Intelligence
// Copyright 2026 A. Vela (avela)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avela/placepulse

package profile

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/avela/placepulse/internal/models"
)

// TimeSlot is a contiguous hour-of-day range with a preference weight.
// StartHour and EndHour are inclusive (a 12-14 slot covers hours 12, 13
// and 14). Slots within a profile are sorted ascending by StartHour and
// never overlap.
type TimeSlot struct {
	// StartHour is the first hour of the slot (0-23).
	StartHour int `json:"-"`

	// EndHour is the last hour of the slot (0-23), inclusive.
	EndHour int `json:"-"`

	// Weight is the preference weight for this slot (0-1).
	Weight float64 `json:"weight"`
}

// Contains reports whether the given hour falls inside the slot.
func (s TimeSlot) Contains(hour int) bool {
	return hour >= s.StartHour && hour <= s.EndHour
}

// timeSlotJSON is the wire form of a TimeSlot ("HH:00" hour strings).
type timeSlotJSON struct {
	Start  string  `json:"start"`
	End    string  `json:"end"`
	Weight float64 `json:"weight"`
}

// MarshalJSON serializes the slot with "HH:00" hour boundaries.
func (s TimeSlot) MarshalJSON() ([]byte, error) {
	return []byte(fmt.Sprintf(`{"start":"%02d:00","end":"%02d:00","weight":%s}`,
		s.StartHour, s.EndHour, strconv.FormatFloat(s.Weight, 'g', -1, 64))), nil
}

// UnmarshalJSON parses a slot from its wire form.
func (s *TimeSlot) UnmarshalJSON(data []byte) error {
	var raw timeSlotJSON
	if err := unmarshalJSON(data, &raw); err != nil {
		return err
	}
	start, err := parseHour(raw.Start)
	if err != nil {
		return fmt.Errorf("time slot start: %w", err)
	}
	end, err := parseHour(raw.End)
	if err != nil {
		return fmt.Errorf("time slot end: %w", err)
	}
	s.StartHour = start
	s.EndHour = end
	s.Weight = raw.Weight
	return nil
}

// parseHour converts an "HH:00" string to an hour of day.
func parseHour(v string) (int, error) {
	hh, _, ok := strings.Cut(v, ":")
	if !ok {
		return 0, fmt.Errorf("malformed hour %q", v)
	}
	h, err := strconv.Atoi(hh)
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("hour out of range %q", v)
	}
	return h, nil
}

// AvoidanceType classifies an avoidance factor.
type AvoidanceType string

const (
	// AvoidCrowd marks a crowd-level threshold the user wants to stay under.
	AvoidCrowd AvoidanceType = "crowd"
	// AvoidWaitTime marks a wait-time threshold in minutes.
	AvoidWaitTime AvoidanceType = "wait_time"
)

// AvoidanceFactor is a condition the user wants recommendations to avoid,
// derived from explicit settings.
type AvoidanceFactor struct {
	// Type classifies the factor.
	Type AvoidanceType `json:"type"`

	// Threshold is the value the factor triggers above (crowd ordinal or
	// minutes, depending on Type).
	Threshold float64 `json:"threshold"`

	// Importance is how strongly the user cares about this factor (0-1).
	Importance float64 `json:"importance"`
}

// PreferenceProfile summarizes what the user likes: categories, crowd
// levels, time slots and hard constraints.
type PreferenceProfile struct {
	// PreferredCategories holds up to 5 categories, most frequent first.
	PreferredCategories []models.Category `json:"preferred_categories"`

	// PreferredCrowdLevels holds up to 2 crowd levels, most frequent first.
	PreferredCrowdLevels []models.CrowdLevel `json:"preferred_crowd_levels"`

	// PreferredTimeSlots holds non-overlapping slots sorted ascending by
	// start hour.
	PreferredTimeSlots []TimeSlot `json:"preferred_time_slots"`

	// AvoidanceFactors are conditions to avoid, from explicit settings.
	AvoidanceFactors []AvoidanceFactor `json:"avoidance_factors"`

	// AccessibilityRequirements are capability tags the user requires.
	AccessibilityRequirements []string `json:"accessibility_requirements"`

	// MaxTravelDistanceKM bounds travel distance in km (0 = unset).
	MaxTravelDistanceKM float64 `json:"max_travel_distance_km"`

	// MaxWaitTimeMinutes bounds wait time in minutes (0 = unset).
	MaxWaitTimeMinutes int `json:"max_wait_time_minutes"`
}

// TimeWeight returns the weight of the slot containing the given hour.
// The second return value is false when no slot matches.
func (p PreferenceProfile) TimeWeight(hour int) (float64, bool) {
	for _, slot := range p.PreferredTimeSlots {
		if slot.Contains(hour) {
			return slot.Weight, true
		}
	}
	return 0, false
}

// HasCategory reports whether the category is among the preferred ones.
func (p PreferenceProfile) HasCategory(c models.Category) bool {
	for _, pc := range p.PreferredCategories {
		if pc == c {
			return true
		}
	}
	return false
}

// HasCrowdLevel reports whether the crowd level is among the preferred ones.
func (p PreferenceProfile) HasCrowdLevel(c models.CrowdLevel) bool {
	for _, pc := range p.PreferredCrowdLevels {
		if pc == c {
			return true
		}
	}
	return false
}

// ReportingActivity summarizes how actively and reliably the user reports.
type ReportingActivity struct {
	// TotalReports is the number of history records observed.
	TotalReports int `json:"total_reports"`

	// AccuracyScore is the fraction of reports that were verified (0-1).
	AccuracyScore float64 `json:"accuracy_score"`

	// ReportFrequency is reports per week, assuming the history covers a
	// 4-week observation window.
	ReportFrequency float64 `json:"report_frequency"`

	// PreferredReportTypes are the distinct report-type tags observed,
	// in first-seen order.
	PreferredReportTypes []string `json:"preferred_report_types"`
}

// BehaviorProfile summarizes how the user behaves: where they go, how
// long they stay, how they report and when they are active.
type BehaviorProfile struct {
	// VisitFrequency maps category to relative frequency. Values sum to 1
	// over observed categories; the map is empty when there is no history.
	VisitFrequency map[models.Category]float64 `json:"visit_frequency"`

	// AverageVisitDuration maps category to typical visit length in
	// minutes, from a static default table.
	AverageVisitDuration map[models.Category]int `json:"average_visit_duration"`

	// Reporting summarizes reporting activity.
	Reporting ReportingActivity `json:"reporting"`

	// SuggestionAcceptanceRate is the fraction of responded suggestions
	// the user accepted (0-1).
	SuggestionAcceptanceRate float64 `json:"suggestion_acceptance_rate"`

	// PeakActivityHours holds up to 6 hours of day, most active first.
	PeakActivityHours []int `json:"peak_activity_hours"`

	// PreferredDays holds up to 4 weekdays, most active first.
	PreferredDays []time.Weekday `json:"preferred_days"`
}

// Season is one of four fixed seasonal buckets.
type Season string

// Seasons, by meteorological month grouping.
const (
	SeasonWinter Season = "winter"
	SeasonSpring Season = "spring"
	SeasonSummer Season = "summer"
	SeasonAutumn Season = "autumn"
)

// SeasonOf maps a month to its season.
func SeasonOf(m time.Month) Season {
	switch m {
	case time.December, time.January, time.February:
		return SeasonWinter
	case time.March, time.April, time.May:
		return SeasonSpring
	case time.June, time.July, time.August:
		return SeasonSummer
	default:
		return SeasonAutumn
	}
}

// RoutinePattern is a recurring activity pattern with a confidence score.
type RoutinePattern struct {
	// Label names the pattern (e.g. "weekday_lunch").
	Label string `json:"label"`

	// Hours are the hours of day the pattern covers.
	Hours []int `json:"hours,omitempty"`

	// Days are the weekdays the pattern covers.
	Days []time.Weekday `json:"days,omitempty"`

	// Confidence is how well the history supports the pattern (0-1).
	Confidence float64 `json:"confidence"`
}

// SeasonalPreference summarizes activity within one season.
type SeasonalPreference struct {
	// Season is the seasonal bucket.
	Season Season `json:"season"`

	// Categories are the distinct categories visited that season,
	// in first-seen order.
	Categories []models.Category `json:"categories"`

	// ActivityLevel is the season's share of all activity (0-1).
	ActivityLevel float64 `json:"activity_level"`
}

// SocialPattern is a coarse summary of how the user moves socially.
type SocialPattern struct {
	// Kind names the pattern (e.g. "solo", "group").
	Kind string `json:"kind"`

	// Weight is the pattern's relative strength (0-1).
	Weight float64 `json:"weight"`
}

// MobilityPattern is a coarse summary of the user's movement range.
type MobilityPattern struct {
	// Kind names the pattern (e.g. "local", "roaming").
	Kind string `json:"kind"`

	// RangeKM is the typical travel range in km.
	RangeKM float64 `json:"range_km"`

	// Confidence is how well the data supports the pattern (0-1).
	Confidence float64 `json:"confidence"`
}

// PatternProfile holds the coarse recurring-pattern summaries. These are
// intentionally low-fidelity extension points, not finished algorithms.
type PatternProfile struct {
	RoutinePatterns     []RoutinePattern     `json:"routine_patterns"`
	SeasonalPreferences []SeasonalPreference `json:"seasonal_preferences"`
	SocialPatterns      []SocialPattern      `json:"social_patterns"`
	MobilityPatterns    []MobilityPattern    `json:"mobility_patterns"`
}

// UserProfile is the aggregated behavioral profile for one user. It is an
// immutable snapshot: rebuilds produce a new value that replaces the
// registry entry, never a mutation of the previous one.
type UserProfile struct {
	// UserID identifies the user.
	UserID string `json:"user_id"`

	// Preferences summarizes what the user likes.
	Preferences PreferenceProfile `json:"preferences"`

	// Behaviors summarizes how the user behaves.
	Behaviors BehaviorProfile `json:"behaviors"`

	// Patterns holds coarse recurring-pattern summaries.
	Patterns PatternProfile `json:"patterns"`

	// LastUpdated is when the profile was built.
	LastUpdated time.Time `json:"last_updated"`
}

// StaleAfter reports whether the profile is older than the given TTL at
// the provided instant. A non-positive TTL never marks profiles stale.
func (p *UserProfile) StaleAfter(ttl time.Duration, now time.Time) bool {
	if ttl <= 0 {
		return false
	}
	return now.Sub(p.LastUpdated) > ttl
}
