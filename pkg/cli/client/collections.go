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
	"net/http"

	"github.com/pkg/errors"

	"github.com/mindtoon/mindtoon/pkg/cli/context"
	"github.com/mindtoon/mindtoon/pkg/cli/log"
	"github.com/mindtoon/mindtoon/pkg/cli/worlds"
)

// Collection is a user-curated grouping of comics within one world
type Collection struct {
	ID            int         `json:"id"`
	Name          string      `json:"name"`
	Description   *string     `json:"description"`
	WorldType     worlds.Type `json:"world_type"`
	IsPublic      bool        `json:"is_public"`
	ComicsCount   int         `json:"comics_count"`
	Tags          []string    `json:"tags"`
	CreatedAt     string      `json:"created_at"`
	UpdatedAt     string      `json:"updated_at"`
	PreviewImages []string    `json:"preview_images"`
	Comics        []Comic     `json:"comics"`
}

// CreateCollectionPayload is a payload for creating a collection
type CreateCollectionPayload struct {
	Name        string      `json:"name"`
	Description *string     `json:"description,omitempty"`
	WorldType   worlds.Type `json:"world_type"`
	IsPublic    bool        `json:"is_public"`
	Tags        []string    `json:"tags"`
}

// CreateCollection creates a collection on the server
func CreateCollection(ctx context.MindtoonCtx, payload CreateCollectionPayload) (Collection, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return Collection{}, errors.Wrap(err, "marshaling payload")
	}

	res, err := doAuthorizedReq(ctx, "POST", "/api/collections", string(b), nil)
	if err != nil {
		return Collection{}, errors.Wrap(err, "making http request")
	}

	var resp Collection
	if err := decodeResp(res, "collection", &resp); err != nil {
		return Collection{}, err
	}

	return resp, nil
}

// GetWorldCollections lists the collections in a world. Records that fail to
// decode are skipped.
func GetWorldCollections(ctx context.MindtoonCtx, world worlds.Type) ([]Collection, error) {
	endpoint := fmt.Sprintf("/api/chats/collections/%s", world)
	res, err := doAuthorizedReq(ctx, "GET", endpoint, "", nil)
	if err != nil {
		return nil, errors.Wrap(err, "making http request")
	}

	return decodeCollectionList(res)
}

// AddComicToCollection adds a comic to a collection
func AddComicToCollection(ctx context.MindtoonCtx, collectionID, comicID int) error {
	endpoint := fmt.Sprintf("/api/collections/%d/comics/%d", collectionID, comicID)
	_, err := doAuthorizedReq(ctx, "POST", endpoint, "", nil)
	if err != nil {
		return errors.Wrap(err, "making http request")
	}

	return nil
}

// RemoveComicFromCollection removes a comic from a collection. The comic
// itself is untouched.
func RemoveComicFromCollection(ctx context.MindtoonCtx, collectionID, comicID int) error {
	endpoint := fmt.Sprintf("/api/collections/%d/comics/%d", collectionID, comicID)
	_, err := doAuthorizedReq(ctx, "DELETE", endpoint, "", nil)
	if err != nil {
		return errors.Wrap(err, "making http request")
	}

	return nil
}

// UpdateCollectionPayload is a payload for partially updating a collection
type UpdateCollectionPayload struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	IsPublic    *bool    `json:"is_public,omitempty"`
	Tags        []string `json:"tags,omitempty"`
}

// UpdateCollection updates a collection and returns the authoritative record
func UpdateCollection(ctx context.MindtoonCtx, collectionID int, payload UpdateCollectionPayload) (Collection, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return Collection{}, errors.Wrap(err, "marshaling payload")
	}

	endpoint := fmt.Sprintf("/api/collections/%d", collectionID)
	res, err := doAuthorizedReq(ctx, "PUT", endpoint, string(b), nil)
	if err != nil {
		return Collection{}, errors.Wrap(err, "making http request")
	}

	var resp Collection
	if err := decodeResp(res, "collection", &resp); err != nil {
		return Collection{}, err
	}

	return resp, nil
}

// DeleteCollection removes a collection from the server
func DeleteCollection(ctx context.MindtoonCtx, collectionID int) error {
	endpoint := fmt.Sprintf("/api/collections/%d", collectionID)
	_, err := doAuthorizedReq(ctx, "DELETE", endpoint, "", nil)
	if err != nil {
		return errors.Wrap(err, "making http request")
	}

	return nil
}

// SearchCollectionsPayload is a payload for searching collections
type SearchCollectionsPayload struct {
	WorldType  *worlds.Type `json:"world_type,omitempty"`
	SearchTerm *string      `json:"search_term,omitempty"`
	Tags       []string     `json:"tags,omitempty"`
	IsPublic   *bool        `json:"is_public,omitempty"`
	SortBy     string       `json:"sort_by"`
	Page       int          `json:"page"`
	Limit      int          `json:"limit"`
}

// SearchCollections searches collections across worlds
func SearchCollections(ctx context.MindtoonCtx, payload SearchCollectionsPayload) ([]Collection, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling payload")
	}

	res, err := doAuthorizedReq(ctx, "POST", "/api/collections/search", string(b), nil)
	if err != nil {
		return nil, errors.Wrap(err, "making http request")
	}

	return decodeCollectionList(res)
}

func decodeCollectionList(res *http.Response) ([]Collection, error) {
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Wrap(err, "reading the response body")
	}

	var raw []json.RawMessage
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, errors.Wrap(err, "unmarshalling the payload")
	}

	ret := make([]Collection, 0, len(raw))
	for i, r := range raw {
		var collection Collection
		if err := json.Unmarshal(r, &collection); err != nil {
			log.Debug("skipping undecodable collection at index %d: %v\n", i, err)
			continue
		}
		ret = append(ret, collection)
	}

	return ret, nil
}
