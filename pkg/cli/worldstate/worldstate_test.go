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

package worldstate

import (
	gocontext "context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mindtoon/mindtoon/pkg/assert"
	"github.com/mindtoon/mindtoon/pkg/cli/cache"
	"github.com/mindtoon/mindtoon/pkg/cli/client"
	"github.com/mindtoon/mindtoon/pkg/cli/context"
	"github.com/mindtoon/mindtoon/pkg/cli/database"
	"github.com/mindtoon/mindtoon/pkg/cli/session"
	"github.com/mindtoon/mindtoon/pkg/cli/worlds"
	"github.com/mindtoon/mindtoon/pkg/clock"
)

type noopSleeper struct{}

func (noopSleeper) Sleep(ctx gocontext.Context, d time.Duration) error {
	return nil
}

func newTestCtx(endpoint string) context.MindtoonCtx {
	return context.MindtoonCtx{
		APIEndpoint:          endpoint,
		Version:              "0.0.0-test",
		SessionToken:         "tok-abc",
		HTTPClient:           &http.Client{},
		GenerationHTTPClient: &http.Client{},
	}
}

func newTestStore(mock *clock.Mock) *Store {
	s := New(cache.New(mock), nil)
	s.sleeper = noopSleeper{}
	return s
}

func TestLoadComicsCached(t *testing.T) {
	var listCalls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&listCalls, 1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[{"id": 1, "title": "Skylines", "world_type": "imagination_world"}]`)
	}))
	defer server.Close()

	mock := clock.NewMock()
	s := newTestStore(mock)
	ctx := newTestCtx(server.URL)

	first, err := s.LoadComics(ctx, worlds.Imagination, 1, LoadOptions{})
	assert.Equal(t, err, nil, "first load")
	assert.Equal(t, len(first), 1, "first load size mismatch")
	assert.Equal(t, atomic.LoadInt32(&listCalls), int32(1), "first load should hit the server")

	second, err := s.LoadComics(ctx, worlds.Imagination, 1, LoadOptions{})
	assert.Equal(t, err, nil, "second load")
	assert.DeepEqual(t, second, first, "cached payload mismatch")
	assert.Equal(t, atomic.LoadInt32(&listCalls), int32(1), "second load should be served from cache")

	mock.Advance(6 * time.Minute)

	_, err = s.LoadComics(ctx, worlds.Imagination, 1, LoadOptions{})
	assert.Equal(t, err, nil, "expired load")
	assert.Equal(t, atomic.LoadInt32(&listCalls), int32(2), "expired entry should hit the server again")
}

func TestLoadComicsFilteredBypassesCache(t *testing.T) {
	var listCalls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&listCalls, 1)
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `[]`)
	}))
	defer server.Close()

	s := newTestStore(clock.NewMock())
	ctx := newTestCtx(server.URL)

	opts := LoadOptions{FavoritesOnly: true}
	if _, err := s.LoadComics(ctx, worlds.Dream, 1, opts); err != nil {
		t.Fatal(err)
	}
	if _, err := s.LoadComics(ctx, worlds.Dream, 1, opts); err != nil {
		t.Fatal(err)
	}

	assert.Equal(t, atomic.LoadInt32(&listCalls), int32(2), "filtered listings should not be cached")
}

func TestCreateComicInvalidatesCache(t *testing.T) {
	var listCalls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/chats/world-comics":
			atomic.AddInt32(&listCalls, 1)
			fmt.Fprint(w, `[{"id": 1, "title": "Skylines", "world_type": "dream_world"}]`)
		case "/api/chats/generate-comic-with-data":
			fmt.Fprint(w, `{"id": 2, "title": "Tides", "world_type": "dream_world"}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	s := newTestStore(clock.NewMock())
	ctx := newTestCtx(server.URL)

	if _, err := s.LoadComics(ctx, worlds.Dream, 1, LoadOptions{}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.LoadComics(ctx, worlds.Dream, 2, LoadOptions{}); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, atomic.LoadInt32(&listCalls), int32(2), "both pages should hit the server once")

	// pages are now cached
	if _, err := s.LoadComics(ctx, worlds.Dream, 1, LoadOptions{}); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, atomic.LoadInt32(&listCalls), int32(2), "page 1 should be served from cache")

	comic, err := s.CreateComic(ctx, client.SaveComicPayload{
		Title:     "Tides",
		Concept:   "a flooded harbor town",
		Genre:     "adventure",
		ArtStyle:  "watercolor",
		WorldType: worlds.Dream,
	})
	assert.Equal(t, err, nil, "creating comic")
	assert.Equal(t, comic.ID, 2, "created comic mismatch")

	if _, err := s.LoadComics(ctx, worlds.Dream, 1, LoadOptions{}); err != nil {
		t.Fatal(err)
	}
	if _, err := s.LoadComics(ctx, worlds.Dream, 2, LoadOptions{}); err != nil {
		t.Fatal(err)
	}
	assert.Equal(t, atomic.LoadInt32(&listCalls), int32(4), "every cached page should be invalidated by the create")
}

func TestLoadAllStatsFallback(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/chats/world-stats/dream_world":
			w.Header().Set("Content-Type", "application/json")
			fmt.Fprint(w, `{"world_type": "dream_world", "total_comics": 4, "favorite_comics": 1, "public_comics": 2, "total_collections": 1, "total_scenarios": 3}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	s := newTestStore(clock.NewMock())
	ctx := newTestCtx(server.URL)

	all := s.LoadAllStats(ctx)

	assert.Equal(t, len(all), 3, "every world should have an entry")
	assert.Equal(t, all[worlds.Dream].TotalComics, 4, "dream stats mismatch")
	assert.Equal(t, all[worlds.Mind].TotalComics, 0, "failed worlds should fall back to zeroed stats")
	assert.Equal(t, all[worlds.Mind].WorldType, worlds.Mind, "fallback stats should name the world")
}

func TestToggleFavoriteReconciles(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/chats/world-comics":
			fmt.Fprint(w, `[{"id": 1, "title": "Skylines", "world_type": "mind_world", "is_favorite": false}]`)
		case "/api/chats/comics/1":
			assert.Equal(t, r.Method, "PATCH", "method mismatch")
			fmt.Fprint(w, `{"id": 1, "title": "Skylines", "world_type": "mind_world", "is_favorite": true}`)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	s := newTestStore(clock.NewMock())
	ctx := newTestCtx(server.URL)

	if _, err := s.LoadComics(ctx, worlds.Mind, 1, LoadOptions{}); err != nil {
		t.Fatal(err)
	}

	updated, err := s.ToggleFavorite(ctx, worlds.Mind, 1)

	assert.Equal(t, err, nil, "toggling favorite")
	assert.Equal(t, updated.IsFavorite, true, "authoritative record mismatch")

	local := s.Comics(worlds.Mind)
	assert.Equal(t, local[0].IsFavorite, true, "local state should match the server")
}

func TestToggleFavoriteRevertsOnFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/chats/world-comics":
			fmt.Fprint(w, `[{"id": 1, "title": "Skylines", "world_type": "mind_world", "is_favorite": false}]`)
		case "/api/chats/comics/1":
			w.WriteHeader(http.StatusForbidden)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	s := newTestStore(clock.NewMock())
	ctx := newTestCtx(server.URL)

	if _, err := s.LoadComics(ctx, worlds.Mind, 1, LoadOptions{}); err != nil {
		t.Fatal(err)
	}

	_, err := s.ToggleFavorite(ctx, worlds.Mind, 1)

	assert.NotEqual(t, err, nil, "expected an error")

	local := s.Comics(worlds.Mind)
	assert.Equal(t, local[0].IsFavorite, false, "local flip should be reverted")
}

func TestRemoveComicUpdatesLocalState(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/api/chats/world-comics":
			fmt.Fprint(w, `[{"id": 1, "world_type": "dream_world"}, {"id": 2, "world_type": "dream_world"}]`)
		case "/api/chats/comics/1":
			assert.Equal(t, r.Method, "DELETE", "method mismatch")
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer server.Close()

	s := newTestStore(clock.NewMock())
	ctx := newTestCtx(server.URL)

	if _, err := s.LoadComics(ctx, worlds.Dream, 1, LoadOptions{}); err != nil {
		t.Fatal(err)
	}

	err := s.RemoveComic(ctx, worlds.Dream, 1)

	assert.Equal(t, err, nil, "removing comic")

	local := s.Comics(worlds.Dream)
	assert.Equal(t, len(local), 1, "removed comic should be gone locally")
	assert.Equal(t, local[0].ID, 2, "remaining comic mismatch")
}

func TestSessionExpiryForcesLogout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	db := database.InitTestMemoryDB(t)
	sessions := session.New(db)
	if err := database.UpsertSystem(db, "session_token", "tok-stale"); err != nil {
		t.Fatal(err)
	}
	if err := sessions.Restore(); err != nil {
		t.Fatal(err)
	}

	s := New(cache.New(clock.NewMock()), sessions)
	s.sleeper = noopSleeper{}
	s.retryCfg.MaxRetries = 0

	ctx := newTestCtx(server.URL)

	_, err := s.LoadStats(ctx, worlds.Dream)

	assert.NotEqual(t, err, nil, "expected an error")
	assert.Equal(t, sessions.State(), session.LoggedOut, "a rejected token should force a logout")
}
