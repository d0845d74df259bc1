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
	"io"

	"github.com/pkg/errors"

	"github.com/mindtoon/mindtoon/pkg/cli/context"
	"github.com/mindtoon/mindtoon/pkg/cli/jsonval"
	"github.com/mindtoon/mindtoon/pkg/cli/log"
	"github.com/mindtoon/mindtoon/pkg/cli/worlds"
)

// Comic is a comic record in the response. ImageBase64 and ImageURL are both
// optional; at least one is present on saved comics.
type Comic struct {
	ID                  int                `json:"id"`
	Title               string             `json:"title"`
	Concept             string             `json:"concept"`
	Genre               string             `json:"genre"`
	ArtStyle            string             `json:"art_style"`
	WorldType           worlds.Type        `json:"world_type"`
	ImageBase64         string             `json:"image_base64"`
	ImageURL            string             `json:"image_url"`
	PanelsData          jsonval.FlexString `json:"panels_data"`
	CreatedAt           string             `json:"created_at"`
	IsFavorite          bool               `json:"is_favorite"`
	IsPublic            bool               `json:"is_public"`
	ViewCount           int                `json:"view_count"`
	HasDetailedScenario bool               `json:"has_detailed_scenario"`
}

// SaveComicPayload is a payload for generating and saving a comic
type SaveComicPayload struct {
	Title                   string      `json:"title"`
	Concept                 string      `json:"concept"`
	Genre                   string      `json:"genre"`
	ArtStyle                string      `json:"art_style"`
	WorldType               worlds.Type `json:"world_type"`
	IncludeDetailedScenario bool        `json:"include_detailed_scenario"`
	ImageBase64             *string     `json:"image_base64,omitempty"`
	PanelsData              *string     `json:"panels_data,omitempty"`
	IsFavorite              *bool       `json:"is_favorite,omitempty"`
	IsPublic                *bool       `json:"is_public,omitempty"`
}

// GenerateComicWithData generates a comic and saves it to the user's world.
// The call is long-running and non-idempotent; callers must not retry it.
func GenerateComicWithData(ctx context.MindtoonCtx, payload SaveComicPayload) (Comic, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return Comic{}, errors.Wrap(err, "marshaling payload")
	}

	opts := requestOptions{HTTPClient: ctx.GenerationHTTPClient}
	res, err := doAuthorizedReq(ctx, "POST", "/api/chats/generate-comic-with-data", string(b), &opts)
	if err != nil {
		return Comic{}, errors.Wrap(err, "making http request")
	}

	var resp Comic
	if err := decodeResp(res, "comic", &resp); err != nil {
		return Comic{}, err
	}

	return resp, nil
}

// GetWorldComicsPayload is a payload for listing comics in a world
type GetWorldComicsPayload struct {
	WorldType     worlds.Type   `json:"world_type"`
	Page          int           `json:"page"`
	PerPage       int           `json:"per_page"`
	FavoritesOnly bool          `json:"favorites_only"`
	SortBy        worlds.SortBy `json:"sort_by"`
	SearchTerm    *string       `json:"search_term,omitempty"`
}

// GetWorldComics lists comics in a world, one page at a time. Records that
// fail to decode are skipped so one bad record does not lose the page.
func GetWorldComics(ctx context.MindtoonCtx, payload GetWorldComicsPayload) ([]Comic, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling payload")
	}

	res, err := doAuthorizedReq(ctx, "POST", "/api/chats/world-comics", string(b), nil)
	if err != nil {
		return nil, errors.Wrap(err, "making http request")
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Wrap(err, "reading the response body")
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, errors.Wrap(err, "unmarshalling the payload")
	}

	ret := make([]Comic, 0, len(raw))
	for i, r := range raw {
		var comic Comic
		if err := json.Unmarshal(r, &comic); err != nil {
			log.Debug("skipping undecodable comic at index %d: %v\n", i, err)
			continue
		}
		ret = append(ret, comic)
	}

	return ret, nil
}

// UpdateComicPayload is a payload for partially updating a comic. Nil fields
// are left untouched by the server.
type UpdateComicPayload struct {
	Title      *string `json:"title,omitempty"`
	IsFavorite *bool   `json:"is_favorite,omitempty"`
	IsPublic   *bool   `json:"is_public,omitempty"`
}

// UpdateComic partially updates a comic and returns the authoritative record
func UpdateComic(ctx context.MindtoonCtx, comicID int, payload UpdateComicPayload) (Comic, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return Comic{}, errors.Wrap(err, "marshaling payload")
	}

	endpoint := fmt.Sprintf("/api/chats/comics/%d", comicID)
	res, err := doAuthorizedReq(ctx, "PATCH", endpoint, string(b), nil)
	if err != nil {
		return Comic{}, errors.Wrap(err, "making http request")
	}

	var resp Comic
	if err := decodeResp(res, "comic", &resp); err != nil {
		return Comic{}, err
	}

	return resp, nil
}

// DeleteComic removes a comic from the server
func DeleteComic(ctx context.MindtoonCtx, comicID int) error {
	endpoint := fmt.Sprintf("/api/chats/comics/%d", comicID)
	_, err := doAuthorizedReq(ctx, "DELETE", endpoint, "", nil)
	if err != nil {
		return errors.Wrap(err, "making http request")
	}

	return nil
}
