// PlacePulse - Place Discovery and Crowd Intelligence
// Copyright 2026 A. Vela (avela)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avela/placepulse

// Package profile implements the user profiling engine: it turns a user's
// raw activity history (place visits, crowd-level reports, suggestion
// responses) plus explicit settings into an immutable UserProfile snapshot.
//
// # Architecture
//
// Three analyzers feed one builder:
//
//   - PreferenceAnalyzer: category/crowd/time-slot preferences, avoidance
//     factors, accessibility requirements
//   - BehaviorAnalyzer: visit frequency, reporting reliability, activity
//     time statistics, suggestion acceptance rate
//   - PatternMiner: coarse routine/seasonal/social/mobility summaries
//
// The Builder orchestrates the analyzers, assembles the UserProfile and
// replaces the registry entry for that user wholesale. Profiles are never
// mutated in place; a rebuild produces a new value, which keeps concurrent
// reads safe without locking.
//
// # Determinism
//
// Building is pure and deterministic: identical inputs (including record
// order) always produce an identical profile. Tie-breaks follow first-seen
// order, and the builder carries no randomness. The wall clock is injected
// so tests can pin LastUpdated.
//
// # Empty input
//
// Building never fails on empty history or partially empty settings; every
// derived field falls back to a documented default.
package profile
