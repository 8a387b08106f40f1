// PlacePulse - Place Discovery and Crowd Intelligence
// Copyright 2026 A. Vela (avela)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avela/placepulse

// Package activity defines how the profiling core receives user activity
// data. The core performs no I/O of its own; the surrounding application
// implements Provider against its database and hands records over as
// plain in-memory values. A JSON snapshot implementation is included for
// standalone operation and tests.
package activity

import (
	"context"

	"github.com/avela/placepulse/internal/models"
)

// Provider supplies the inputs to a profile build. Implementations are
// typically backed by the application's database layer; they must return
// records in a stable order so rebuilds stay deterministic.
type Provider interface {
	// Settings returns a user's explicit settings.
	Settings(ctx context.Context, userID string) (models.UserSettings, error)

	// History returns a user's activity records (reports and visits),
	// oldest first.
	History(ctx context.Context, userID string) ([]models.ActivityRecord, error)

	// SuggestionHistory returns the suggestions shown to a user with
	// their outcomes, oldest first.
	SuggestionHistory(ctx context.Context, userID string) ([]models.SuggestionOutcome, error)

	// UserIDs lists the users that have activity data.
	UserIDs(ctx context.Context) ([]string, error)
}
