// PlacePulse - Place Discovery and Crowd Intelligence
// Copyright 2026 A. Vela (avela)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avela/placepulse

// Package models contains the shared domain types consumed by the profiling
// and recommendation core: place categories, ordinal crowd levels, activity
// records (reports and visits), suggestions with outcomes, and explicit
// user settings.
//
// The core treats these as plain in-memory values. Persistence of raw
// activity records is the responsibility of the surrounding application;
// nothing in this package implies a storage schema.
package models
