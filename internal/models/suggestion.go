// PlacePulse - Place Discovery and Crowd Intelligence
// Copyright 2026 A. Vela (avela)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avela/placepulse

package models

import "time"

// Suggestion is a generated recommendation of a place and time, with the
// crowd and wait conditions estimated for that time. Read-only to the core.
type Suggestion struct {
	// Place is the suggested place.
	Place Place `json:"place"`

	// RecommendedTime is the suggested arrival time.
	RecommendedTime time.Time `json:"recommended_time"`

	// EstimatedCrowdLevel is the expected congestion at RecommendedTime.
	EstimatedCrowdLevel CrowdLevel `json:"estimated_crowd_level"`

	// EstimatedWaitTimeMinutes is the expected wait in minutes.
	EstimatedWaitTimeMinutes int `json:"estimated_wait_time_minutes"`

	// AlternativeOptions are fallback places offered with the suggestion.
	AlternativeOptions []Place `json:"alternative_options,omitempty"`

	// Confidence is the generator's confidence in the suggestion (0-1).
	Confidence float64 `json:"confidence"`
}

// SuggestionStatus describes how the user responded to a suggestion.
type SuggestionStatus int

const (
	// SuggestionPending means the user has not responded yet.
	SuggestionPending SuggestionStatus = iota
	// SuggestionAccepted means the user accepted the suggestion.
	SuggestionAccepted
	// SuggestionDeclined means the user declined the suggestion.
	SuggestionDeclined
)

// String returns a human-readable name for the suggestion status.
func (s SuggestionStatus) String() string {
	switch s {
	case SuggestionPending:
		return "pending"
	case SuggestionAccepted:
		return "accepted"
	case SuggestionDeclined:
		return "declined"
	default:
		return "unknown"
	}
}

// SuggestionOutcome is one entry of a user's suggestion history: a
// suggestion that was shown plus the user's response, if any.
type SuggestionOutcome struct {
	// Suggestion is the suggestion that was shown.
	Suggestion Suggestion `json:"suggestion"`

	// Status records the user's response.
	Status SuggestionStatus `json:"status"`

	// RespondedAt is when the user responded (zero for pending).
	RespondedAt time.Time `json:"responded_at,omitempty"`
}
