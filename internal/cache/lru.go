// Reelrank - Content-Based Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelrank

package cache

import (
	"sync"
	"time"
)

const (
	defaultCapacity = 10000
	defaultTTL      = 5 * time.Minute
)

type lruEntry[V any] struct {
	key       string
	value     V
	prev      *lruEntry[V]
	next      *lruEntry[V]
	expiresAt time.Time
}

// LRU is a thread-safe least-recently-used cache with a per-entry TTL.
// Get, Add and eviction are O(1): a map indexes a doubly-linked list whose
// head is the most recently used entry. Expired entries are dropped lazily.
type LRU[V any] struct {
	mu sync.Mutex

	capacity int
	ttl      time.Duration
	items    map[string]*lruEntry[V]

	// Sentinels. head.next is newest, tail.prev is oldest.
	head *lruEntry[V]
	tail *lruEntry[V]

	hits   int64
	misses int64
	now    func() time.Time
}

// NewLRU creates a cache. Non-positive capacity or ttl take the defaults
// (10000 entries, 5 minutes).
func NewLRU[V any](capacity int, ttl time.Duration) *LRU[V] {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}

	c := &LRU[V]{
		capacity: capacity,
		ttl:      ttl,
		items:    make(map[string]*lruEntry[V], capacity),
		head:     &lruEntry[V]{},
		tail:     &lruEntry[V]{},
		now:      time.Now,
	}
	c.head.next = c.tail
	c.tail.prev = c.head
	return c
}

// Get returns the value for key and marks it most recently used.
func (c *LRU[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.items[key]
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	if c.now().After(entry.expiresAt) {
		c.removeEntry(entry)
		c.misses++
		var zero V
		return zero, false
	}

	c.moveToFront(entry)
	c.hits++
	return entry.value, true
}

// Add inserts or replaces key, resetting its TTL. The least recently used
// entry is evicted when the cache is full.
func (c *LRU[V]) Add(key string, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	expiresAt := c.now().Add(c.ttl)

	if entry, ok := c.items[key]; ok {
		entry.value = value
		entry.expiresAt = expiresAt
		c.moveToFront(entry)
		return
	}

	entry := &lruEntry[V]{key: key, value: value, expiresAt: expiresAt}
	c.addToFront(entry)
	c.items[key] = entry

	for len(c.items) > c.capacity {
		c.evictOldest()
	}
}

// Remove deletes key and reports whether it was present.
func (c *LRU[V]) Remove(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.items[key]; ok {
		c.removeEntry(entry)
		return true
	}
	return false
}

// Len returns the number of entries, expired ones included until touched.
func (c *LRU[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.items)
}

// CleanupExpired removes every expired entry and returns how many it removed.
func (c *LRU[V]) CleanupExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for entry := c.tail.prev; entry != c.head; {
		prev := entry.prev
		if now.After(entry.expiresAt) {
			c.removeEntry(entry)
			removed++
		}
		entry = prev
	}
	return removed
}

// Stats returns hit and miss counts and the current size.
func (c *LRU[V]) Stats() (hits, misses int64, size int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses, len(c.items)
}

// The helpers below require c.mu.

func (c *LRU[V]) addToFront(entry *lruEntry[V]) {
	entry.prev = c.head
	entry.next = c.head.next
	c.head.next.prev = entry
	c.head.next = entry
}

func (c *LRU[V]) moveToFront(entry *lruEntry[V]) {
	entry.prev.next = entry.next
	entry.next.prev = entry.prev
	c.addToFront(entry)
}

func (c *LRU[V]) removeEntry(entry *lruEntry[V]) {
	entry.prev.next = entry.next
	entry.next.prev = entry.prev
	delete(c.items, entry.key)
}

func (c *LRU[V]) evictOldest() {
	oldest := c.tail.prev
	if oldest == c.head {
		return
	}
	c.removeEntry(oldest)
}
