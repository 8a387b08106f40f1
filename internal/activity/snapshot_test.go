// PlacePulse - Place Discovery and Crowd Intelligence
// Copyright 2026 A. Vela (avela)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avela/placepulse

package activity

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/avela/placepulse/internal/models"
)

const snapshotJSON = `{
  "users": {
    "u1": {
      "settings": {"user_id": "u1", "max_wait_time_minutes": 20},
      "history": [
        {
          "kind": 1,
          "place": {"id": "p1", "category": "cafe"},
          "timestamp": "2026-06-15T12:30:00Z"
        }
      ],
      "suggestions": []
    },
    "u2": {
      "settings": {"preferred_crowd_level": "low"}
    }
  }
}`

func writeSnapshot(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "snapshot.json")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write snapshot: %v", err)
	}
	return path
}

func TestLoadSnapshot(t *testing.T) {
	provider, err := LoadSnapshot(writeSnapshot(t, snapshotJSON))
	if err != nil {
		t.Fatalf("LoadSnapshot() error: %v", err)
	}
	ctx := context.Background()

	settings, err := provider.Settings(ctx, "u1")
	if err != nil {
		t.Fatalf("Settings() error: %v", err)
	}
	if settings.UserID != "u1" || settings.MaxWaitTimeMinutes != 20 {
		t.Errorf("Settings() = %+v", settings)
	}

	history, err := provider.History(ctx, "u1")
	if err != nil {
		t.Fatalf("History() error: %v", err)
	}
	if len(history) != 1 || history[0].Place.Category != models.CategoryCafe {
		t.Errorf("History() = %+v, want one cafe visit", history)
	}

	suggestions, err := provider.SuggestionHistory(ctx, "u1")
	if err != nil {
		t.Fatalf("SuggestionHistory() error: %v", err)
	}
	if len(suggestions) != 0 {
		t.Errorf("SuggestionHistory() = %v, want empty", suggestions)
	}
}

func TestLoadSnapshotErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		if _, err := LoadSnapshot(filepath.Join(t.TempDir(), "absent.json")); err == nil {
			t.Error("LoadSnapshot() of absent file succeeded, want error")
		}
	})

	t.Run("malformed json", func(t *testing.T) {
		if _, err := LoadSnapshot(writeSnapshot(t, "{not json")); err == nil {
			t.Error("LoadSnapshot() of malformed file succeeded, want error")
		}
	})
}

func TestSnapshotProviderUnknownUser(t *testing.T) {
	provider := NewSnapshotProvider(Snapshot{})
	ctx := context.Background()

	if _, err := provider.Settings(ctx, "ghost"); !errors.Is(err, ErrUnknownUser) {
		t.Errorf("Settings() error = %v, want ErrUnknownUser", err)
	}
	if _, err := provider.History(ctx, "ghost"); !errors.Is(err, ErrUnknownUser) {
		t.Errorf("History() error = %v, want ErrUnknownUser", err)
	}
	if _, err := provider.SuggestionHistory(ctx, "ghost"); !errors.Is(err, ErrUnknownUser) {
		t.Errorf("SuggestionHistory() error = %v, want ErrUnknownUser", err)
	}
}

func TestSnapshotProviderBackfillsUserID(t *testing.T) {
	provider, err := LoadSnapshot(writeSnapshot(t, snapshotJSON))
	if err != nil {
		t.Fatalf("LoadSnapshot() error: %v", err)
	}

	// u2's exported settings omit the user id.
	settings, err := provider.Settings(context.Background(), "u2")
	if err != nil {
		t.Fatalf("Settings() error: %v", err)
	}
	if settings.UserID != "u2" {
		t.Errorf("UserID = %q, want u2", settings.UserID)
	}
}

func TestSnapshotProviderUserIDsSorted(t *testing.T) {
	provider := NewSnapshotProvider(Snapshot{
		Users: map[string]UserSnapshot{
			"charlie": {}, "alice": {}, "bob": {},
		},
	})

	ids, err := provider.UserIDs(context.Background())
	if err != nil {
		t.Fatalf("UserIDs() error: %v", err)
	}
	want := []string{"alice", "bob", "charlie"}
	if !reflect.DeepEqual(ids, want) {
		t.Errorf("UserIDs() = %v, want %v", ids, want)
	}
}
