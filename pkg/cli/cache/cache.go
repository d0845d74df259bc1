/* Copyright 2025 MindToon Authors
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

// Package cache provides a time-boxed in-memory cache for per-world comic
// pages and stats. Entries older than the TTL behave as absent. The cache is
// never persisted; it resets on logout and on process restart.
package cache

import (
	"sync"
	"time"

	"github.com/mindtoon/mindtoon/pkg/cli/client"
	"github.com/mindtoon/mindtoon/pkg/cli/worlds"
	"github.com/mindtoon/mindtoon/pkg/clock"
)

// DefaultTTL is the validity window for cached entries
const DefaultTTL = 5 * time.Minute

type pageKey struct {
	world worlds.Type
	page  int
}

type comicsEntry struct {
	comics    []client.Comic
	fetchedAt time.Time
}

type statsEntry struct {
	stats     client.WorldStats
	fetchedAt time.Time
}

// Cache holds cached world pages and stats. Safe for concurrent use.
type Cache struct {
	mu     sync.RWMutex
	clock  clock.Clock
	ttl    time.Duration
	comics map[pageKey]comicsEntry
	stats  map[worlds.Type]statsEntry
}

// New creates a cache with the default TTL
func New(c clock.Clock) *Cache {
	return NewWithTTL(c, DefaultTTL)
}

// NewWithTTL creates a cache with the given TTL
func NewWithTTL(c clock.Clock, ttl time.Duration) *Cache {
	return &Cache{
		clock:  c,
		ttl:    ttl,
		comics: map[pageKey]comicsEntry{},
		stats:  map[worlds.Type]statsEntry{},
	}
}

func (c *Cache) fresh(fetchedAt time.Time) bool {
	return c.clock.Now().Sub(fetchedAt) < c.ttl
}

// GetComics returns the cached page for the given world, if present and fresh
func (c *Cache) GetComics(world worlds.Type, page int) ([]client.Comic, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.comics[pageKey{world: world, page: page}]
	if !ok || !c.fresh(entry.fetchedAt) {
		return nil, false
	}

	return entry.comics, true
}

// SetComics caches a page for the given world, overwriting any prior entry
func (c *Cache) SetComics(world worlds.Type, page int, comics []client.Comic) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.comics[pageKey{world: world, page: page}] = comicsEntry{
		comics:    comics,
		fetchedAt: c.clock.Now(),
	}
}

// GetStats returns the cached stats for the given world, if present and fresh
func (c *Cache) GetStats(world worlds.Type) (client.WorldStats, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.stats[world]
	if !ok || !c.fresh(entry.fetchedAt) {
		return client.WorldStats{}, false
	}

	return entry.stats, true
}

// SetStats caches the stats for the given world
func (c *Cache) SetStats(world worlds.Type, stats client.WorldStats) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stats[world] = statsEntry{
		stats:     stats,
		fetchedAt: c.clock.Now(),
	}
}

// InvalidateWorld removes every cached page and the stats for the given
// world. Invalidation is coarse on purpose: dropping all pages avoids
// partially stale lists after a write.
func (c *Cache) InvalidateWorld(world worlds.Type) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for key := range c.comics {
		if key.world == world {
			delete(c.comics, key)
		}
	}
	delete(c.stats, world)
}

// Clear empties the cache entirely
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.comics = map[pageKey]comicsEntry{}
	c.stats = map[worlds.Type]statsEntry{}
}
