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
	"fmt"

	"github.com/pkg/errors"

	"github.com/mindtoon/mindtoon/pkg/cli/context"
	"github.com/mindtoon/mindtoon/pkg/cli/jsonval"
	"github.com/mindtoon/mindtoon/pkg/cli/worlds"
)

// Scenario is a detailed scenario attached to a comic. ScenarioData arrives
// as a JSON document embedded in a string; Premise digs the premise out of it.
type Scenario struct {
	ID                 int                `json:"id"`
	ComicID            int                `json:"comic_id"`
	Title              string             `json:"title"`
	Concept            string             `json:"concept"`
	Genre              string             `json:"genre"`
	ArtStyle           string             `json:"art_style"`
	WorldType          worlds.Type        `json:"world_type"`
	ScenarioData       jsonval.FlexString `json:"scenario_data"`
	WordCount          int                `json:"word_count"`
	ReadingTimeMinutes int                `json:"reading_time_minutes"`
	CreatedAt          string             `json:"created_at"`
	IsFavorite         bool               `json:"is_favorite"`
	IsPublic           bool               `json:"is_public"`
}

// Premise extracts the premise from the embedded scenario document. It
// returns an empty string when the document carries none.
func (s Scenario) Premise() string {
	doc := s.ScenarioData.Decode()

	premise, ok := doc.Get("premise")
	if !ok {
		return ""
	}

	ret, _ := premise.AsString()
	return ret
}

// GetComicScenario fetches the detailed scenario for a comic. Comics without
// one yield a NotFound error.
func GetComicScenario(ctx context.MindtoonCtx, comicID int) (Scenario, error) {
	endpoint := fmt.Sprintf("/api/chats/scenarios/comic/%d", comicID)
	res, err := doAuthorizedReq(ctx, "GET", endpoint, "", nil)
	if err != nil {
		return Scenario{}, errors.Wrap(err, "making http request")
	}

	var resp Scenario
	if err := decodeResp(res, "scenario", &resp); err != nil {
		return Scenario{}, err
	}

	return resp, nil
}
