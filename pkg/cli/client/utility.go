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
	"io"

	"github.com/pkg/errors"

	"github.com/mindtoon/mindtoon/pkg/cli/context"
)

// GetHealthResp is the response from the health endpoint
type GetHealthResp struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// GetHealth checks the health of the server. It requires no session.
func GetHealth(ctx context.MindtoonCtx) (GetHealthResp, error) {
	res, err := doReq(ctx, "GET", "/health", "", nil)
	if err != nil {
		return GetHealthResp{}, errors.Wrap(err, "making http request")
	}

	var resp GetHealthResp
	if err := decodeResp(res, "health", &resp); err != nil {
		return GetHealthResp{}, err
	}

	return resp, nil
}

// GetIOSConfigResp is the response from the client config endpoint
type GetIOSConfigResp struct {
	Version  string            `json:"version"`
	Features []string          `json:"features"`
	Config   map[string]string `json:"config"`
}

// GetIOSConfig fetches the server-advertised client configuration
func GetIOSConfig(ctx context.MindtoonCtx) (GetIOSConfigResp, error) {
	res, err := doReq(ctx, "GET", "/api/ios/config", "", nil)
	if err != nil {
		return GetIOSConfigResp{}, errors.Wrap(err, "making http request")
	}

	var resp GetIOSConfigResp
	if err := decodeResp(res, "config", &resp); err != nil {
		return GetIOSConfigResp{}, err
	}

	return resp, nil
}

// GetGenresResp is the response from the genres endpoint
type GetGenresResp struct {
	Genres []string `json:"genres"`
}

// GetGenres lists the genres the generator supports
func GetGenres(ctx context.MindtoonCtx) (GetGenresResp, error) {
	res, err := doReq(ctx, "GET", "/api/utils/genres", "", nil)
	if err != nil {
		return GetGenresResp{}, errors.Wrap(err, "making http request")
	}

	var resp GetGenresResp
	if err := decodeResp(res, "genres", &resp); err != nil {
		return GetGenresResp{}, err
	}

	return resp, nil
}

// GetArtStylesResp is the response from the art styles endpoint
type GetArtStylesResp struct {
	ArtStyles []string `json:"art_styles"`
}

// GetArtStyles lists the art styles the generator supports
func GetArtStyles(ctx context.MindtoonCtx) (GetArtStylesResp, error) {
	res, err := doReq(ctx, "GET", "/api/utils/art-styles", "", nil)
	if err != nil {
		return GetArtStylesResp{}, errors.Wrap(err, "making http request")
	}

	var resp GetArtStylesResp
	if err := decodeResp(res, "art styles", &resp); err != nil {
		return GetArtStylesResp{}, err
	}

	return resp, nil
}

type generateImagePayload struct {
	Prompt string `json:"prompt"`
}

// GenerateImage generates a single image and returns the raw bytes. The call
// is long-running and non-idempotent; callers must not retry it.
func GenerateImage(ctx context.MindtoonCtx, prompt string) ([]byte, error) {
	b, err := json.Marshal(generateImagePayload{Prompt: prompt})
	if err != nil {
		return nil, errors.Wrap(err, "marshaling payload")
	}

	opts := requestOptions{
		HTTPClient:          ctx.GenerationHTTPClient,
		ExpectedContentType: &contentTypeImage,
	}
	res, err := doAuthorizedReq(ctx, "POST", "/api/chats/generate-image", string(b), &opts)
	if err != nil {
		return nil, errors.Wrap(err, "making http request")
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Wrap(err, "reading the response body")
	}

	return body, nil
}
