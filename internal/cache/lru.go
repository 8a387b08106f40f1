// PlacePulse - Place Discovery and Crowd Intelligence
// Copyright 2026 A. Vela (avela)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/avela/placepulse

// Package cache provides a thread-safe LRU cache with per-entry TTL,
// used for ranking responses. Capacity-bounded so a large user base
// cannot grow the cache without limit.
package cache

import (
	"container/list"
	"strings"
	"sync"
	"time"
)

// entry is a cached value with its key and expiry.
type entry struct {
	key       string
	value     interface{}
	expiresAt time.Time
}

// LRU is a capacity-bounded cache with TTL expiration. Least recently
// used entries are evicted first when the cache is full. Safe for
// concurrent use.
type LRU struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	order    *list.List               // front = most recently used
	items    map[string]*list.Element // key -> element in order

	hits   int64
	misses int64
}

// NewLRU creates an LRU cache. Capacity must be positive; ttl bounds
// every entry's lifetime.
func NewLRU(capacity int, ttl time.Duration) *LRU {
	if capacity < 1 {
		capacity = 1
	}
	return &LRU{
		capacity: capacity,
		ttl:      ttl,
		order:    list.New(),
		items:    make(map[string]*list.Element, capacity),
	}
}

// Get returns the live value for a key. Expired entries are removed on
// access.
func (c *LRU) Get(key string) (interface{}, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	elem, ok := c.items[key]
	if !ok {
		c.misses++
		return nil, false
	}

	ent := elem.Value.(*entry)
	if time.Now().After(ent.expiresAt) {
		c.removeElement(elem)
		c.misses++
		return nil, false
	}

	c.order.MoveToFront(elem)
	c.hits++
	return ent.value, true
}

// Set stores a value, replacing any prior entry for the key and evicting
// the least recently used entry when at capacity.
func (c *LRU) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		ent := elem.Value.(*entry)
		ent.value = value
		ent.expiresAt = time.Now().Add(c.ttl)
		c.order.MoveToFront(elem)
		return
	}

	if c.order.Len() >= c.capacity {
		if oldest := c.order.Back(); oldest != nil {
			c.removeElement(oldest)
		}
	}

	elem := c.order.PushFront(&entry{
		key:       key,
		value:     value,
		expiresAt: time.Now().Add(c.ttl),
	})
	c.items[key] = elem
}

// Delete removes a key. Absent keys are a no-op.
func (c *LRU) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if elem, ok := c.items[key]; ok {
		c.removeElement(elem)
	}
}

// DeletePrefix removes every key with the given prefix and returns how
// many entries were dropped.
func (c *LRU) DeletePrefix(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, elem := range c.items {
		if strings.HasPrefix(key, prefix) {
			c.removeElement(elem)
			removed++
		}
	}
	return removed
}

// Len returns the number of entries, including any not yet expired-out.
func (c *LRU) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Clear removes all entries.
func (c *LRU) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.order.Init()
	c.items = make(map[string]*list.Element, c.capacity)
}

// Stats returns hit and miss counters.
func (c *LRU) Stats() (hits, misses int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}

// removeElement drops an element from both the list and the index.
// Callers must hold the lock.
func (c *LRU) removeElement(elem *list.Element) {
	c.order.Remove(elem)
	delete(c.items, elem.Value.(*entry).key)
}
