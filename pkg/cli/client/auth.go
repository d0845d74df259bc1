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
	"net/url"
	"strings"

	"github.com/pkg/errors"

	"github.com/mindtoon/mindtoon/pkg/cli/context"
)

// GetTokenResp is the response from the token endpoint
type GetTokenResp struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// GetToken exchanges credentials for a bearer token. The endpoint expects a
// form-encoded body rather than JSON.
func GetToken(ctx context.MindtoonCtx, username, password string) (GetTokenResp, error) {
	v := url.Values{}
	v.Set("username", username)
	v.Set("password", password)

	opts := requestOptions{ContentType: contentTypeForm}
	res, err := doReq(ctx, "POST", "/api/auth/token", v.Encode(), &opts)
	if err != nil {
		return GetTokenResp{}, errors.Wrap(err, "making http request")
	}

	var resp GetTokenResp
	if err := decodeResp(res, "token response", &resp); err != nil {
		return GetTokenResp{}, err
	}

	return resp, nil
}

// RegisterPayload is a payload for the register endpoint
type RegisterPayload struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Password string `json:"password"`
}

// RespUser is a user in the response
type RespUser struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	FullName  string `json:"full_name"`
	CreatedAt string `json:"created_at"`
}

// Register creates a new account on the server
func Register(ctx context.MindtoonCtx, payload RegisterPayload) (RespUser, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return RespUser{}, errors.Wrap(err, "marshaling payload")
	}

	res, err := doReq(ctx, "POST", "/api/auth/register", string(b), nil)
	if err != nil {
		return RespUser{}, errors.Wrap(err, "making http request")
	}

	var resp RespUser
	if err := decodeResp(res, "user", &resp); err != nil {
		return RespUser{}, err
	}

	return resp, nil
}

// GetMe fetches the identity of the authenticated user
func GetMe(ctx context.MindtoonCtx) (RespUser, error) {
	res, err := doAuthorizedReq(ctx, "GET", "/api/auth/me", "", nil)
	if err != nil {
		return RespUser{}, errors.Wrap(err, "making http request")
	}

	var resp RespUser
	if err := decodeResp(res, "user", &resp); err != nil {
		return RespUser{}, err
	}

	return resp, nil
}

// DeleteAccountPayload is a payload for the delete account endpoint. The
// server requires all three confirmation fields.
type DeleteAccountPayload struct {
	ConfirmDeletion             bool   `json:"confirm_deletion"`
	UsernameConfirmation        string `json:"username_confirmation"`
	UnderstandingAcknowledgment string `json:"understanding_acknowledgment"`
}

// DeletionSummary reports what the server removed along with the account
type DeletionSummary struct {
	Username           string `json:"username"`
	ComicsDeleted      int    `json:"comics_deleted"`
	CollectionsDeleted int    `json:"collections_deleted"`
	ScenariosDeleted   int    `json:"scenarios_deleted"`
	StorageCleared     string `json:"storage_cleared"`
	DeletedAt          string `json:"deleted_at"`
}

// DeleteAccount destroys the account server-side. The deletion summary is nil
// when the server responds without a body.
func DeleteAccount(ctx context.MindtoonCtx, payload DeleteAccountPayload) (*DeletionSummary, error) {
	b, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "marshaling payload")
	}

	res, err := doAuthorizedReq(ctx, "DELETE", "/api/auth/delete-account", string(b), nil)
	if err != nil {
		return nil, errors.Wrap(err, "making http request")
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, errors.Wrap(err, "reading the response body")
	}
	if strings.TrimSpace(string(body)) == "" {
		return nil, nil
	}

	var resp DeletionSummary
	if err := json.Unmarshal(body, &resp); err != nil {
		// the summary is informational; an undecodable body is not a failure
		return nil, nil
	}

	return &resp, nil
}
