// PlacePulse - Place Discovery and Crowd Intelligence
// Copyright 2026 A. Vela (avela)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avela/placepulse

package models

import "time"

// ActivityKind distinguishes the two record types in a user's history.
type ActivityKind int

const (
	// ActivityReport is a user-submitted crowd-level observation.
	ActivityReport ActivityKind = iota
	// ActivityVisit is a recorded place visit without an observation.
	ActivityVisit
)

// String returns a human-readable name for the activity kind.
func (k ActivityKind) String() string {
	switch k {
	case ActivityReport:
		return "report"
	case ActivityVisit:
		return "visit"
	default:
		return "unknown"
	}
}

// ActivityRecord is one entry in a user's activity history: either a
// crowd-level report or a plain visit. CrowdLevel, ReportType and
// Verified are only meaningful for reports.
type ActivityRecord struct {
	// Kind is the record type (report or visit).
	Kind ActivityKind `json:"kind"`

	// Place identifies the place the activity happened at.
	Place PlaceRef `json:"place"`

	// CrowdLevel is the observed congestion level (reports only).
	CrowdLevel CrowdLevel `json:"crowd_level,omitempty"`

	// ReportType tags the kind of observation (e.g. "queue", "seating").
	ReportType string `json:"report_type,omitempty"`

	// Timestamp is when the activity occurred.
	Timestamp time.Time `json:"timestamp"`

	// Verified indicates the report was corroborated by other users
	// or by a place operator.
	Verified bool `json:"verified,omitempty"`
}

// IsReport reports whether the record is a crowd-level report.
func (r ActivityRecord) IsReport() bool {
	return r.Kind == ActivityReport
}
