// PlacePulse - Place Discovery and Crowd Intelligence
// Copyright 2026 A. Vela (avela)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avela/placepulse

package models

// UserSettings carries a user's explicit preferences as entered in the
// app. Every field other than UserID is optional; the profiling core
// treats a zero value as "no explicit preference" and never fails on
// partially empty settings.
type UserSettings struct {
	// UserID is the user identifier the settings belong to.
	UserID string `json:"user_id" validate:"required"`

	// PreferredCategories are categories the user explicitly favors.
	PreferredCategories []Category `json:"preferred_categories,omitempty"`

	// PreferredCrowdLevel is the congestion level the user prefers.
	// CrowdUnspecified means no preference.
	PreferredCrowdLevel CrowdLevel `json:"preferred_crowd_level,omitempty" validate:"min=0,max=4"`

	// MaxTravelDistanceKM bounds how far the user will travel, in km.
	// Zero means unset.
	MaxTravelDistanceKM float64 `json:"max_travel_distance_km,omitempty" validate:"min=0"`

	// MaxWaitTimeMinutes bounds how long the user will wait, in minutes.
	// Zero means unset.
	MaxWaitTimeMinutes int `json:"max_wait_time_minutes,omitempty" validate:"min=0"`

	// AccessibilityNeeds lists capability tags the user requires
	// (e.g. "wheelchair", "elevator").
	AccessibilityNeeds []string `json:"accessibility_needs,omitempty"`
}
