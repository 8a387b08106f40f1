// PlacePulse - Place Discovery and Crowd Intelligence
// Copyright 2026 A. Vela (avela)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avela/placepulse

// Package recommend implements recommendation scoring against user
// profiles: ranking candidate places for a user at a point in time, and
// predicting whether a generated suggestion will be accepted.
//
// # Design Principles
//
//   - Deterministic: identical profile, candidates and clock produce
//     identical rankings; there is no randomness in scoring
//   - Pure: scoring performs no I/O; the caller supplies already-fetched
//     candidates and a profile (or a user id resolved via the registry)
//   - Bounded: ranking cost is linear in the candidate list, which the
//     caller bounds via Limits.MaxCandidates
//   - Clamped: scores and probabilities are always within [0, 1]
//     regardless of input extremes
//
// # Scoring model
//
// Scoring is an additive heuristic over profile signals (preferred
// categories, crowd levels, time slots, wait tolerance, accessibility),
// clamped to [0, 1]. It is intentionally not a learned model; weights
// live in ScoringConfig with documented defaults.
//
// # Usage
//
//	engine, err := recommend.NewEngine(cfg, builder, provider, logger)
//	resp, err := engine.RankForUser(ctx, userID, candidates, time.Now(), 10)
//	p := engine.PredictAcceptance(suggestion, prof)
package recommend
