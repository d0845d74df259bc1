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

// Package worlds defines the closed set of content worlds and their
// presentation metadata. A world is the primary sharding key for comics,
// stats, and caching.
package worlds

import (
	"strings"

	"github.com/pkg/errors"
)

// Type identifies a world. The wire representation is the snake_case value.
type Type string

const (
	// Dream is the world for surreal, subconscious narratives
	Dream Type = "dream_world"
	// Mind is the world for psychological narratives
	Mind Type = "mind_world"
	// Imagination is the world for unconstrained creative narratives
	Imagination Type = "imagination_world"
)

// All returns every world in a fixed order
func All() []Type {
	return []Type{Dream, Mind, Imagination}
}

// Valid returns true if the type is one of the known worlds
func (t Type) Valid() bool {
	switch t {
	case Dream, Mind, Imagination:
		return true
	}

	return false
}

func (t Type) String() string {
	return string(t)
}

// Meta holds the presentation metadata of a world
type Meta struct {
	DisplayName     string
	Description     string
	Icon            string
	Color           string
	Themes          []string
	SuggestedGenres []string
}

var metas = map[Type]Meta{
	Dream: {
		DisplayName:     "Dream World",
		Description:     "Explore the depths of your subconscious mind through surreal and symbolic narratives",
		Icon:            "moon",
		Color:           "purple",
		Themes:          []string{"surreal", "symbolic", "subconscious", "mysterious", "ethereal"},
		SuggestedGenres: []string{"mystery", "psychological thriller", "surreal", "horror"},
	},
	Mind: {
		DisplayName:     "Mind World",
		Description:     "Journey through psychological landscapes and mental adventures",
		Icon:            "brain",
		Color:           "indigo",
		Themes:          []string{"psychological", "introspective", "mental health", "consciousness", "thought"},
		SuggestedGenres: []string{"drama", "psychological", "slice of life", "educational"},
	},
	Imagination: {
		DisplayName:     "Imagination World",
		Description:     "Create unlimited stories where anything is possible",
		Icon:            "wand",
		Color:           "pink",
		Themes:          []string{"fantasy", "creative", "limitless", "magical", "inventive"},
		SuggestedGenres: []string{"fantasy", "adventure", "sci-fi", "comedy", "romance"},
	},
}

// Metadata returns the presentation metadata of a world
func (t Type) Metadata() Meta {
	return metas[t]
}

// DisplayName returns the human-readable name of a world
func (t Type) DisplayName() string {
	return metas[t].DisplayName
}

// Parse resolves a user-provided world name. It accepts the wire value as
// well as short and hyphenated spellings, e.g. "dream", "dream-world".
func Parse(s string) (Type, error) {
	normalized := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(s)), "-", "_")

	switch normalized {
	case "dream", "dream_world":
		return Dream, nil
	case "mind", "mind_world":
		return Mind, nil
	case "imagination", "imagination_world":
		return Imagination, nil
	}

	return "", errors.Errorf("unknown world %q", s)
}

// SortBy is a sort order for world comic listings
type SortBy string

const (
	// SortNewest sorts newest first
	SortNewest SortBy = "newest"
	// SortOldest sorts oldest first
	SortOldest SortBy = "oldest"
	// SortTitle sorts by title
	SortTitle SortBy = "title"
	// SortFavorite sorts favorites first
	SortFavorite SortBy = "favorite"
	// SortPopular sorts by popularity
	SortPopular SortBy = "popular"
)

// ParseSortBy resolves a user-provided sort order
func ParseSortBy(s string) (SortBy, error) {
	switch SortBy(strings.ToLower(strings.TrimSpace(s))) {
	case SortNewest:
		return SortNewest, nil
	case SortOldest:
		return SortOldest, nil
	case SortTitle:
		return SortTitle, nil
	case SortFavorite:
		return SortFavorite, nil
	case SortPopular:
		return SortPopular, nil
	}

	return "", errors.Errorf("unknown sort order %q", s)
}
