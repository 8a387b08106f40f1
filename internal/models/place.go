// PlacePulse - Place Discovery and Crowd Intelligence
// Copyright 2026 A. Vela (avela)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avela/placepulse

package models

// Category classifies a place (restaurant, bank, hospital, ...).
// Categories are open-ended strings rather than a closed enum so that
// the surrounding application can introduce new place types without a
// core change; the constants below cover the common set.
type Category string

// Common place categories.
const (
	CategoryRestaurant Category = "restaurant"
	CategoryCafe       Category = "cafe"
	CategoryBank       Category = "bank"
	CategoryHospital   Category = "hospital"
	CategoryPharmacy   Category = "pharmacy"
	CategoryPark       Category = "park"
	CategoryLibrary    Category = "library"
	CategoryGym        Category = "gym"
	CategoryMarket     Category = "market"
	CategoryMall       Category = "mall"
)

// PlaceRef is a lightweight reference to a place as it appears inside
// activity records. Only the fields the core derives signal from are
// carried; full place metadata lives with the caller.
type PlaceRef struct {
	// ID is the unique place identifier.
	ID string `json:"id"`

	// Category is the place classification.
	Category Category `json:"category"`
}

// Place is a candidate place presented to the recommendation scorer.
// It is read-only to the core.
type Place struct {
	// ID is the unique place identifier.
	ID string `json:"id"`

	// Name is the display name.
	Name string `json:"name,omitempty"`

	// Category is the place classification.
	Category Category `json:"category"`

	// CrowdLevel is the current (or estimated) congestion level.
	CrowdLevel CrowdLevel `json:"crowd_level"`

	// WaitTimeMinutes is the current estimated wait time in minutes.
	WaitTimeMinutes int `json:"wait_time_minutes"`

	// Accessibility lists the capability tags the place supports
	// (e.g. "wheelchair", "elevator", "braille").
	Accessibility []string `json:"accessibility,omitempty"`
}

// Ref returns the PlaceRef for this place.
func (p Place) Ref() PlaceRef {
	return PlaceRef{ID: p.ID, Category: p.Category}
}
