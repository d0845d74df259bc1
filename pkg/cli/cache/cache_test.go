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

package cache

import (
	"testing"
	"time"

	"github.com/mindtoon/mindtoon/pkg/assert"
	"github.com/mindtoon/mindtoon/pkg/cli/client"
	"github.com/mindtoon/mindtoon/pkg/cli/worlds"
	"github.com/mindtoon/mindtoon/pkg/clock"
)

func TestGetComicsWithinTTL(t *testing.T) {
	mock := clock.NewMock()
	c := New(mock)

	comics := []client.Comic{{ID: 1, Title: "Skylines"}}
	c.SetComics(worlds.Dream, 1, comics)

	mock.Advance(4 * time.Minute)

	got, ok := c.GetComics(worlds.Dream, 1)
	assert.Equal(t, ok, true, "entry should be fresh")
	assert.DeepEqual(t, got, comics, "payload mismatch")
}

func TestGetComicsExpired(t *testing.T) {
	mock := clock.NewMock()
	c := New(mock)

	c.SetComics(worlds.Dream, 1, []client.Comic{{ID: 1}})

	mock.Advance(5 * time.Minute)

	_, ok := c.GetComics(worlds.Dream, 1)
	assert.Equal(t, ok, false, "entry should have expired")
}

func TestGetComicsMiss(t *testing.T) {
	c := New(clock.NewMock())

	_, ok := c.GetComics(worlds.Mind, 1)
	assert.Equal(t, ok, false, "unset key should miss")
}

func TestInvalidateWorldClearsAllPages(t *testing.T) {
	mock := clock.NewMock()
	c := New(mock)

	c.SetComics(worlds.Imagination, 1, []client.Comic{{ID: 1}})
	c.SetComics(worlds.Imagination, 2, []client.Comic{{ID: 2}})
	c.SetStats(worlds.Imagination, client.WorldStats{TotalComics: 2})
	c.SetComics(worlds.Dream, 1, []client.Comic{{ID: 3}})

	c.InvalidateWorld(worlds.Imagination)

	_, ok := c.GetComics(worlds.Imagination, 1)
	assert.Equal(t, ok, false, "page 1 should be invalidated")
	_, ok = c.GetComics(worlds.Imagination, 2)
	assert.Equal(t, ok, false, "page 2 should be invalidated")
	_, ok = c.GetStats(worlds.Imagination)
	assert.Equal(t, ok, false, "stats should be invalidated")

	_, ok = c.GetComics(worlds.Dream, 1)
	assert.Equal(t, ok, true, "other worlds should be untouched")
}

func TestStatsTTL(t *testing.T) {
	mock := clock.NewMock()
	c := New(mock)

	c.SetStats(worlds.Mind, client.WorldStats{TotalComics: 7})

	got, ok := c.GetStats(worlds.Mind)
	assert.Equal(t, ok, true, "stats should be fresh")
	assert.Equal(t, got.TotalComics, 7, "stats mismatch")

	mock.Advance(6 * time.Minute)

	_, ok = c.GetStats(worlds.Mind)
	assert.Equal(t, ok, false, "stats should have expired")
}

func TestClear(t *testing.T) {
	c := New(clock.NewMock())

	c.SetComics(worlds.Dream, 1, []client.Comic{{ID: 1}})
	c.SetStats(worlds.Dream, client.WorldStats{TotalComics: 1})

	c.Clear()

	_, ok := c.GetComics(worlds.Dream, 1)
	assert.Equal(t, ok, false, "comics should be cleared")
	_, ok = c.GetStats(worlds.Dream)
	assert.Equal(t, ok, false, "stats should be cleared")
}
