// PlacePulse - Place Discovery and Crowd Intelligence
// Copyright 2026 A. Vela (avela)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avela/placepulse

// Package store provides profile.Registry implementations: a process-local
// in-memory map for tests and single-instance deployments, and a BadgerDB
// backed store for deployments that want profiles to survive restarts.
//
// Both stores treat profiles as opaque immutable snapshots; Put replaces
// the whole entry for a user, which is what makes lock-free reads safe.
package store
