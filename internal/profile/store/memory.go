// PlacePulse - Place Discovery and Crowd Intelligence
// Copyright 2026 A. Vela (avela)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avela/placepulse

package store

import (
	"context"
	"sort"
	"sync"

	"github.com/avela/placepulse/internal/metrics"
	"github.com/avela/placepulse/internal/profile"
)

// MemoryStore is an in-memory profile registry. Entries are replaced
// atomically under a write lock; reads share a read lock. Suitable for
// tests and single-instance deployments without durability needs.
type MemoryStore struct {
	mu       sync.RWMutex
	profiles map[string]*profile.UserProfile
}

// NewMemoryStore creates an empty in-memory registry.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		profiles: make(map[string]*profile.UserProfile),
	}
}

// Put stores a profile, replacing any prior entry for the same user.
func (s *MemoryStore) Put(_ context.Context, p *profile.UserProfile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.profiles[p.UserID] = p
	metrics.ProfileRegistrySize.Set(float64(len(s.profiles)))
	return nil
}

// Get returns the live profile for a user.
func (s *MemoryStore) Get(_ context.Context, userID string) (*profile.UserProfile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.profiles[userID]
	if !ok {
		return nil, profile.ErrProfileNotFound
	}
	return p, nil
}

// Delete removes a user's profile. Absent profiles are not an error.
func (s *MemoryStore) Delete(_ context.Context, userID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.profiles, userID)
	metrics.ProfileRegistrySize.Set(float64(len(s.profiles)))
	return nil
}

// Ready reports readiness for health probes. The memory store is always
// ready once constructed.
func (s *MemoryStore) Ready() bool {
	return true
}

// UserIDs lists the users that currently have a profile, sorted for
// deterministic iteration.
func (s *MemoryStore) UserIDs(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	ids := make([]string, 0, len(s.profiles))
	for id := range s.profiles {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}
