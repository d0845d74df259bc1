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

// Package worldstate binds per-world observable state to the API client and
// the cache. Reads go through the cache; writes invalidate it. A session
// rejection anywhere forces a logout and clears everything.
package worldstate

import (
	gocontext "context"
	"sync"

	"github.com/pkg/errors"

	"github.com/mindtoon/mindtoon/pkg/cli/apierr"
	"github.com/mindtoon/mindtoon/pkg/cli/cache"
	"github.com/mindtoon/mindtoon/pkg/cli/client"
	"github.com/mindtoon/mindtoon/pkg/cli/context"
	"github.com/mindtoon/mindtoon/pkg/cli/log"
	"github.com/mindtoon/mindtoon/pkg/cli/retry"
	"github.com/mindtoon/mindtoon/pkg/cli/session"
	"github.com/mindtoon/mindtoon/pkg/cli/worlds"
)

// DefaultPerPage is the page size for world comic listings
const DefaultPerPage = 10

// worldEntry is the last observed state of one world
type worldEntry struct {
	comics  []client.Comic
	page    int
	hasMore bool
}

// Store holds per-world state. All mutation happens under one mutex; network
// calls run outside it. Safe for concurrent use.
type Store struct {
	mu          sync.Mutex
	cache       *cache.Cache
	sessions    *session.Manager
	retryCfg    retry.Config
	sleeper     retry.Sleeper
	entries     map[worlds.Type]*worldEntry
	subscribers []func(worlds.Type)
}

// New creates a store. The store subscribes to the session manager so a
// logout clears the cache and every world's state.
func New(c *cache.Cache, sessions *session.Manager) *Store {
	s := &Store{
		cache:    c,
		sessions: sessions,
		retryCfg: retry.Default,
		sleeper:  retry.NewSleeper(),
		entries:  map[worlds.Type]*worldEntry{},
	}

	if sessions != nil {
		sessions.Subscribe(func(state session.State) {
			if state == session.LoggedOut {
				s.Reset()
			}
		})
	}

	return s
}

// Subscribe registers a listener notified with the world whose state changed
func (s *Store) Subscribe(fn func(worlds.Type)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.subscribers = append(s.subscribers, fn)
}

func (s *Store) notify(world worlds.Type) {
	s.mu.Lock()
	subscribers := make([]func(worlds.Type), len(s.subscribers))
	copy(subscribers, s.subscribers)
	s.mu.Unlock()

	for _, fn := range subscribers {
		fn(world)
	}
}

// Comics returns the last loaded comics for the given world
func (s *Store) Comics(world worlds.Type) []client.Comic {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[world]
	if !ok {
		return nil
	}

	return entry.comics
}

// HasMore reports whether the last loaded page for the world was full
func (s *Store) HasMore(world worlds.Type) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[world]
	return ok && entry.hasMore
}

// Reset clears the cache and every world's state
func (s *Store) Reset() {
	if s.cache != nil {
		s.cache.Clear()
	}

	s.mu.Lock()
	s.entries = map[worlds.Type]*worldEntry{}
	s.mu.Unlock()
}

// checkSession forces a logout when the server rejected the session token
func (s *Store) checkSession(err error) {
	if err == nil || s.sessions == nil {
		return
	}

	if apierr.IsSessionExpired(err) {
		if logoutErr := s.sessions.ForceLogout(); logoutErr != nil {
			log.Debug("forcing logout: %v\n", logoutErr)
		}
	}
}

// LoadOptions filter and order a comic listing
type LoadOptions struct {
	FavoritesOnly bool
	SortBy        worlds.SortBy
	SearchTerm    *string
}

func (o LoadOptions) plain() bool {
	return !o.FavoritesOnly && o.SearchTerm == nil &&
		(o.SortBy == "" || o.SortBy == worlds.SortNewest)
}

// LoadComics loads one page of comics for a world. Unfiltered pages are read
// through the cache; filtered listings always hit the server.
func (s *Store) LoadComics(ctx context.MindtoonCtx, world worlds.Type, page int, opts LoadOptions) ([]client.Comic, error) {
	if opts.plain() {
		if comics, ok := s.cache.GetComics(world, page); ok {
			s.setComics(world, page, comics)
			return comics, nil
		}
	}

	sortBy := opts.SortBy
	if sortBy == "" {
		sortBy = worlds.SortNewest
	}

	payload := client.GetWorldComicsPayload{
		WorldType:     world,
		Page:          page,
		PerPage:       DefaultPerPage,
		FavoritesOnly: opts.FavoritesOnly,
		SortBy:        sortBy,
		SearchTerm:    opts.SearchTerm,
	}

	var comics []client.Comic
	err := retry.Do(gocontext.Background(), s.retryCfg, s.sleeper, func() error {
		var err error
		comics, err = client.GetWorldComics(ctx, payload)
		return err
	})
	if err != nil {
		s.checkSession(err)
		return nil, errors.Wrap(err, "loading comics")
	}

	if opts.plain() {
		s.cache.SetComics(world, page, comics)
	}
	s.setComics(world, page, comics)

	return comics, nil
}

func (s *Store) setComics(world worlds.Type, page int, comics []client.Comic) {
	s.mu.Lock()
	s.entries[world] = &worldEntry{
		comics:  comics,
		page:    page,
		hasMore: len(comics) == DefaultPerPage,
	}
	s.mu.Unlock()

	s.notify(world)
}

// LoadStats loads the stats snapshot for a world through the cache
func (s *Store) LoadStats(ctx context.MindtoonCtx, world worlds.Type) (client.WorldStats, error) {
	if stats, ok := s.cache.GetStats(world); ok {
		return stats, nil
	}

	var stats client.WorldStats
	err := retry.Do(gocontext.Background(), s.retryCfg, s.sleeper, func() error {
		var err error
		stats, err = client.GetWorldStats(ctx, world)
		return err
	})
	if err != nil {
		s.checkSession(err)
		return client.WorldStats{}, errors.Wrap(err, "loading stats")
	}

	s.cache.SetStats(world, stats)

	return stats, nil
}

// LoadAllStats loads the stats for every world concurrently. A failing world
// yields zeroed stats instead of aborting its siblings.
func (s *Store) LoadAllStats(ctx context.MindtoonCtx) map[worlds.Type]client.WorldStats {
	all := worlds.All()

	results := make([]client.WorldStats, len(all))

	var wg sync.WaitGroup
	for i, world := range all {
		wg.Add(1)
		go func(i int, world worlds.Type) {
			defer wg.Done()

			stats, err := s.LoadStats(ctx, world)
			if err != nil {
				log.Debug("loading stats for %s: %v\n", world, err)
				stats = client.WorldStats{WorldType: world}
			}
			results[i] = stats
		}(i, world)
	}
	wg.Wait()

	ret := make(map[worlds.Type]client.WorldStats, len(all))
	for i, world := range all {
		ret[world] = results[i]
	}

	return ret
}

// LoadAnalytics loads the analytics snapshot for a world
func (s *Store) LoadAnalytics(ctx context.MindtoonCtx, world worlds.Type) (client.WorldAnalytics, error) {
	var analytics client.WorldAnalytics
	err := retry.Do(gocontext.Background(), s.retryCfg, s.sleeper, func() error {
		var err error
		analytics, err = client.GetWorldAnalytics(ctx, world)
		return err
	})
	if err != nil {
		s.checkSession(err)
		return client.WorldAnalytics{}, errors.Wrap(err, "loading analytics")
	}

	return analytics, nil
}

// CreateComic generates and saves a comic. The call is never retried. Local
// state is touched only after the server confirms; cached pages for the world
// are invalidated and cached stats adjusted.
func (s *Store) CreateComic(ctx context.MindtoonCtx, payload client.SaveComicPayload) (client.Comic, error) {
	comic, err := client.GenerateComicWithData(ctx, payload)
	if err != nil {
		s.checkSession(err)
		return client.Comic{}, errors.Wrap(err, "generating comic")
	}

	stats, hadStats := s.cache.GetStats(comic.WorldType)
	s.cache.InvalidateWorld(comic.WorldType)
	if hadStats {
		stats.TotalComics++
		s.cache.SetStats(comic.WorldType, stats)
	}
	s.notify(comic.WorldType)

	return comic, nil
}

// RemoveComic deletes a comic after server confirmation and invalidates the
// world's cached pages
func (s *Store) RemoveComic(ctx context.MindtoonCtx, world worlds.Type, comicID int) error {
	if err := client.DeleteComic(ctx, comicID); err != nil {
		s.checkSession(err)
		return errors.Wrap(err, "deleting comic")
	}

	stats, hadStats := s.cache.GetStats(world)
	s.cache.InvalidateWorld(world)
	if hadStats && stats.TotalComics > 0 {
		stats.TotalComics--
		s.cache.SetStats(world, stats)
	}

	s.mu.Lock()
	if entry, ok := s.entries[world]; ok {
		kept := entry.comics[:0:0]
		for _, c := range entry.comics {
			if c.ID != comicID {
				kept = append(kept, c)
			}
		}
		entry.comics = kept
	}
	s.mu.Unlock()
	s.notify(world)

	return nil
}

// ToggleFavorite flips a comic's favorite flag. The flip is applied locally
// first and reconciled against the authoritative record once the server
// responds; on failure the flip is reverted.
func (s *Store) ToggleFavorite(ctx context.MindtoonCtx, world worlds.Type, comicID int) (client.Comic, error) {
	target := !s.localFlag(world, comicID, func(c client.Comic) bool { return c.IsFavorite })
	s.setLocalComic(world, comicID, func(c *client.Comic) { c.IsFavorite = target })

	payload := client.UpdateComicPayload{IsFavorite: &target}
	updated, err := client.UpdateComic(ctx, comicID, payload)
	if err != nil {
		s.setLocalComic(world, comicID, func(c *client.Comic) { c.IsFavorite = !target })
		s.checkSession(err)
		return client.Comic{}, errors.Wrap(err, "updating comic")
	}

	s.reconcile(world, updated)

	return updated, nil
}

// TogglePublic flips a comic's public flag, optimistically with reconciliation
func (s *Store) TogglePublic(ctx context.MindtoonCtx, world worlds.Type, comicID int) (client.Comic, error) {
	target := !s.localFlag(world, comicID, func(c client.Comic) bool { return c.IsPublic })
	s.setLocalComic(world, comicID, func(c *client.Comic) { c.IsPublic = target })

	payload := client.UpdateComicPayload{IsPublic: &target}
	updated, err := client.UpdateComic(ctx, comicID, payload)
	if err != nil {
		s.setLocalComic(world, comicID, func(c *client.Comic) { c.IsPublic = !target })
		s.checkSession(err)
		return client.Comic{}, errors.Wrap(err, "updating comic")
	}

	s.reconcile(world, updated)

	return updated, nil
}

// RenameComic sets a comic's title after server confirmation
func (s *Store) RenameComic(ctx context.MindtoonCtx, world worlds.Type, comicID int, title string) (client.Comic, error) {
	payload := client.UpdateComicPayload{Title: &title}
	updated, err := client.UpdateComic(ctx, comicID, payload)
	if err != nil {
		s.checkSession(err)
		return client.Comic{}, errors.Wrap(err, "updating comic")
	}

	s.reconcile(world, updated)

	return updated, nil
}

func (s *Store) localFlag(world worlds.Type, comicID int, get func(client.Comic) bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, ok := s.entries[world]
	if !ok {
		return false
	}
	for _, c := range entry.comics {
		if c.ID == comicID {
			return get(c)
		}
	}

	return false
}

func (s *Store) setLocalComic(world worlds.Type, comicID int, mutate func(*client.Comic)) {
	s.mu.Lock()
	if entry, ok := s.entries[world]; ok {
		for i := range entry.comics {
			if entry.comics[i].ID == comicID {
				mutate(&entry.comics[i])
				break
			}
		}
	}
	s.mu.Unlock()

	s.notify(world)
}

// reconcile replaces the local copy of a comic with the authoritative record
// and invalidates the world's cached pages
func (s *Store) reconcile(world worlds.Type, updated client.Comic) {
	stats, hadStats := s.cache.GetStats(world)
	s.cache.InvalidateWorld(world)
	if hadStats {
		s.cache.SetStats(world, stats)
	}

	s.mu.Lock()
	if entry, ok := s.entries[world]; ok {
		for i := range entry.comics {
			if entry.comics[i].ID == updated.ID {
				entry.comics[i] = updated
				break
			}
		}
	}
	s.mu.Unlock()

	s.notify(world)
}
