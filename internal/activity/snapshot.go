// PlacePulse - Place Discovery and Crowd Intelligence
// Copyright 2026 A. Vela (avela)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avela/placepulse

package activity

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/goccy/go-json"

	"github.com/avela/placepulse/internal/models"
)

// ErrUnknownUser is returned for users absent from a snapshot.
var ErrUnknownUser = errors.New("user not in activity snapshot")

// Snapshot is the JSON export format consumed by SnapshotProvider.
type Snapshot struct {
	// Users maps user id to that user's exported data.
	Users map[string]UserSnapshot `json:"users"`
}

// UserSnapshot is one user's exported settings and history.
type UserSnapshot struct {
	Settings    models.UserSettings        `json:"settings"`
	History     []models.ActivityRecord    `json:"history"`
	Suggestions []models.SuggestionOutcome `json:"suggestions"`
}

// SnapshotProvider serves activity data from an in-memory snapshot,
// typically loaded from a JSON export file. It is read-only and safe for
// concurrent use.
type SnapshotProvider struct {
	snapshot Snapshot
}

// NewSnapshotProvider wraps an already-loaded snapshot.
func NewSnapshotProvider(snapshot Snapshot) *SnapshotProvider {
	return &SnapshotProvider{snapshot: snapshot}
}

// LoadSnapshot reads a JSON export file and returns a provider over it.
func LoadSnapshot(path string) (*SnapshotProvider, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read activity snapshot: %w", err)
	}

	var snapshot Snapshot
	if err := json.Unmarshal(data, &snapshot); err != nil {
		return nil, fmt.Errorf("parse activity snapshot %s: %w", path, err)
	}

	return NewSnapshotProvider(snapshot), nil
}

// Settings returns a user's explicit settings. The user id is filled in
// when the export omitted it.
func (p *SnapshotProvider) Settings(_ context.Context, userID string) (models.UserSettings, error) {
	user, ok := p.snapshot.Users[userID]
	if !ok {
		return models.UserSettings{}, fmt.Errorf("settings for %s: %w", userID, ErrUnknownUser)
	}

	settings := user.Settings
	if settings.UserID == "" {
		settings.UserID = userID
	}
	return settings, nil
}

// History returns a user's activity records in export order.
func (p *SnapshotProvider) History(_ context.Context, userID string) ([]models.ActivityRecord, error) {
	user, ok := p.snapshot.Users[userID]
	if !ok {
		return nil, fmt.Errorf("history for %s: %w", userID, ErrUnknownUser)
	}
	return user.History, nil
}

// SuggestionHistory returns a user's suggestion outcomes in export order.
func (p *SnapshotProvider) SuggestionHistory(_ context.Context, userID string) ([]models.SuggestionOutcome, error) {
	user, ok := p.snapshot.Users[userID]
	if !ok {
		return nil, fmt.Errorf("suggestions for %s: %w", userID, ErrUnknownUser)
	}
	return user.Suggestions, nil
}

// UserIDs lists the users in the snapshot, sorted for deterministic
// sweep order.
func (p *SnapshotProvider) UserIDs(_ context.Context) ([]string, error) {
	ids := make([]string, 0, len(p.snapshot.Users))
	for id := range p.snapshot.Users {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
