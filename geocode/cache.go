// Copyright 2026 The WareOnGo Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"strings"
	"sync"
	"time"

	"github.com/wareongo/wareongo/utils/strutils"
)

// noPostalSentinel stands in for a missing postal code so that queries
// with and without one map to distinct keys.
const noPostalSentinel = "none"

// cacheKey derives a deterministic, case- and accent-insensitive key from
// all four query fields.
func cacheKey(query Query) string {
	postal := query.PostalCode
	if postal == "" {
		postal = noPostalSentinel
	}

	return strings.Join([]string{
		strutils.LowerASCIIFolding(postal),
		strutils.LowerASCIIFolding(query.City),
		strutils.LowerASCIIFolding(query.State),
		strutils.LowerASCIIFolding(query.Country),
	}, "|")
}

type cacheEntry struct {
	result    *Result
	createdAt time.Time
	expiresAt time.Time
}

// resultCache is a TTL map with lazy eviction. It has no capacity bound:
// the key space is the set of distinct listing locations, which stays
// small for the lifetime of a process.
type resultCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]cacheEntry
}

func newResultCache(ttl time.Duration) *resultCache {
	return &resultCache{
		ttl:     ttl,
		entries: make(map[string]cacheEntry),
	}
}

func (c *resultCache) get(key string, now time.Time) (*Result, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return nil, false
	}

	if now.After(entry.expiresAt) {
		delete(c.entries, key)

		return nil, false
	}

	return entry.result, true
}

func (c *resultCache) put(key string, result *Result, now time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = cacheEntry{
		result:    result,
		createdAt: now,
		expiresAt: now.Add(c.ttl),
	}

	// Piggyback expired-entry cleanup on writes
	for k, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, k)
		}
	}
}

func (c *resultCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.entries)
}

func (c *resultCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]cacheEntry)
}
