// PlacePulse - Place Discovery and Crowd Intelligence
// Copyright 2026 A. Vela (avela)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avela/placepulse

package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dgraph-io/badger/v4"

	"github.com/avela/placepulse/internal/profile"
)

// profileKeyPrefix namespaces profile entries in BadgerDB.
const profileKeyPrefix = "profile:"

// BadgerStore is a BadgerDB-backed profile registry. Profiles survive
// process restarts, which lets the refresh service resume a warm registry
// instead of rebuilding every user on startup.
type BadgerStore struct {
	db *badger.DB
}

// NewBadgerStore creates a registry backed by an open BadgerDB handle.
// The caller owns the handle's lifecycle.
func NewBadgerStore(db *badger.DB) *BadgerStore {
	return &BadgerStore{db: db}
}

// Put stores a profile, replacing any prior entry for the same user.
func (s *BadgerStore) Put(_ context.Context, p *profile.UserProfile) error {
	data, err := profile.MarshalProfile(p)
	if err != nil {
		return fmt.Errorf("marshal profile: %w", err)
	}

	err = s.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(profileKeyPrefix+p.UserID), data)
	})
	if err != nil {
		return fmt.Errorf("set profile: %w", err)
	}
	return nil
}

// Get returns the live profile for a user.
func (s *BadgerStore) Get(_ context.Context, userID string) (*profile.UserProfile, error) {
	var p *profile.UserProfile

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(profileKeyPrefix + userID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return profile.ErrProfileNotFound
		}
		if err != nil {
			return fmt.Errorf("get profile: %w", err)
		}

		return item.Value(func(val []byte) error {
			p, err = profile.UnmarshalProfile(val)
			return err
		})
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

// Delete removes a user's profile. Absent profiles are not an error.
func (s *BadgerStore) Delete(_ context.Context, userID string) error {
	err := s.db.Update(func(txn *badger.Txn) error {
		err := txn.Delete([]byte(profileKeyPrefix + userID))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return nil
		}
		return err
	})
	if err != nil {
		return fmt.Errorf("delete profile: %w", err)
	}
	return nil
}

// Ready reports readiness for health probes. The store is ready while
// the underlying database is open.
func (s *BadgerStore) Ready() bool {
	return s.db != nil && !s.db.IsClosed()
}

// UserIDs lists the users that currently have a profile. Badger iterates
// keys in lexicographic order, so the result is deterministic.
func (s *BadgerStore) UserIDs(_ context.Context) ([]string, error) {
	ids := make([]string, 0)

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		it := txn.NewIterator(opts)
		defer it.Close()

		prefix := []byte(profileKeyPrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := string(it.Item().Key())
			ids = append(ids, strings.TrimPrefix(key, profileKeyPrefix))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return ids, nil
}
