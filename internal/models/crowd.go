// PlacePulse - Place Discovery and Crowd Intelligence
// Copyright 2026 A. Vela (avela)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avela/placepulse

package models

import "fmt"

// CrowdLevel is an ordinal congestion level for a place.
// The zero value means "unspecified" so that optional settings fields
// can distinguish "no preference" from an explicit preference.
type CrowdLevel int

const (
	// CrowdUnspecified indicates no crowd level was provided.
	CrowdUnspecified CrowdLevel = iota
	// CrowdLow indicates the place is nearly empty.
	CrowdLow
	// CrowdMedium indicates moderate congestion.
	CrowdMedium
	// CrowdHigh indicates heavy congestion.
	CrowdHigh
	// CrowdVeryHigh indicates the place is at or near capacity.
	CrowdVeryHigh
)

// String returns a human-readable name for the crowd level.
func (c CrowdLevel) String() string {
	switch c {
	case CrowdLow:
		return "low"
	case CrowdMedium:
		return "medium"
	case CrowdHigh:
		return "high"
	case CrowdVeryHigh:
		return "very_high"
	case CrowdUnspecified:
		return "unspecified"
	default:
		return "unknown"
	}
}

// Valid reports whether the crowd level is one of the defined ordinals.
// CrowdUnspecified is not considered valid observation data.
func (c CrowdLevel) Valid() bool {
	return c >= CrowdLow && c <= CrowdVeryHigh
}

// ParseCrowdLevel converts a string name to a CrowdLevel.
func ParseCrowdLevel(s string) (CrowdLevel, error) {
	switch s {
	case "low":
		return CrowdLow, nil
	case "medium":
		return CrowdMedium, nil
	case "high":
		return CrowdHigh, nil
	case "very_high":
		return CrowdVeryHigh, nil
	case "", "unspecified":
		return CrowdUnspecified, nil
	default:
		return CrowdUnspecified, fmt.Errorf("unknown crowd level %q", s)
	}
}

// MarshalJSON serializes the crowd level as its string name.
func (c CrowdLevel) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

// UnmarshalJSON parses a crowd level from its string name.
func (c *CrowdLevel) UnmarshalJSON(data []byte) error {
	if len(data) < 2 || data[0] != '"' || data[len(data)-1] != '"' {
		return fmt.Errorf("crowd level must be a JSON string, got %s", data)
	}
	parsed, err := ParseCrowdLevel(string(data[1 : len(data)-1]))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
