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

package client

import (
	"encoding/json"
	"fmt"

	"github.com/pkg/errors"

	"github.com/mindtoon/mindtoon/pkg/cli/context"
	"github.com/mindtoon/mindtoon/pkg/cli/worlds"
)

// WorldStats is the aggregate snapshot for one world. ScenariosKnown records
// whether the server actually sent total_scenarios, since an omitted field is
// not the same as zero scenarios.
type WorldStats struct {
	WorldType        worlds.Type
	TotalComics      int
	FavoriteComics   int
	PublicComics     int
	TotalCollections int
	TotalScenarios   int
	ScenariosKnown   bool
	LastActivity     *string
}

// UnmarshalJSON implements json.Unmarshaler
func (s *WorldStats) UnmarshalJSON(data []byte) error {
	var raw struct {
		WorldType        worlds.Type `json:"world_type"`
		TotalComics      int         `json:"total_comics"`
		FavoriteComics   int         `json:"favorite_comics"`
		PublicComics     int         `json:"public_comics"`
		TotalCollections int         `json:"total_collections"`
		TotalScenarios   *int        `json:"total_scenarios"`
		LastActivity     *string     `json:"last_activity"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return errors.Wrap(err, "unmarshalling world stats")
	}

	s.WorldType = raw.WorldType
	s.TotalComics = raw.TotalComics
	s.FavoriteComics = raw.FavoriteComics
	s.PublicComics = raw.PublicComics
	s.TotalCollections = raw.TotalCollections
	s.LastActivity = raw.LastActivity

	if raw.TotalScenarios != nil {
		s.TotalScenarios = *raw.TotalScenarios
		s.ScenariosKnown = true
	} else {
		s.TotalScenarios = 0
		s.ScenariosKnown = false
	}

	return nil
}

// GetWorldStats fetches the stats snapshot for a world
func GetWorldStats(ctx context.MindtoonCtx, world worlds.Type) (WorldStats, error) {
	endpoint := fmt.Sprintf("/api/chats/world-stats/%s", world)
	res, err := doAuthorizedReq(ctx, "GET", endpoint, "", nil)
	if err != nil {
		return WorldStats{}, errors.Wrap(err, "making http request")
	}

	var resp WorldStats
	if err := decodeResp(res, "world stats", &resp); err != nil {
		return WorldStats{}, err
	}

	return resp, nil
}

// CreationTrend is a per-day creation count
type CreationTrend struct {
	Date  string `json:"date"`
	Count int    `json:"count"`
}

// ThemeCount is a per-theme occurrence count
type ThemeCount struct {
	Theme string `json:"theme"`
	Count int    `json:"count"`
}

// GenreCount is a per-genre occurrence count
type GenreCount struct {
	Genre string `json:"genre"`
	Count int    `json:"count"`
}

// WorldAnalytics is the analytics snapshot for one world
type WorldAnalytics struct {
	WorldType         worlds.Type     `json:"world_type"`
	CreationTrends    []CreationTrend `json:"creation_trends"`
	PopularThemes     []ThemeCount    `json:"popular_themes"`
	GenreDistribution []GenreCount    `json:"genre_distribution"`
	ActivityScore     float64         `json:"activity_score"`
}

// GetWorldAnalytics fetches the analytics snapshot for a world
func GetWorldAnalytics(ctx context.MindtoonCtx, world worlds.Type) (WorldAnalytics, error) {
	endpoint := fmt.Sprintf("/api/chats/world-analytics/%s", world)
	res, err := doAuthorizedReq(ctx, "GET", endpoint, "", nil)
	if err != nil {
		return WorldAnalytics{}, errors.Wrap(err, "making http request")
	}

	var resp WorldAnalytics
	if err := decodeResp(res, "world analytics", &resp); err != nil {
		return WorldAnalytics{}, err
	}

	return resp, nil
}
