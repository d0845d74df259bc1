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

package apierr

import (
	"fmt"
	"testing"

	"github.com/mindtoon/mindtoon/pkg/assert"
	"github.com/pkg/errors"
)

func TestClassify(t *testing.T) {
	testCases := []struct {
		name       string
		statusCode int
		body       string
		hadSession bool
		expected   Kind
	}{
		{
			name:       "401 without a session",
			statusCode: 401,
			expected:   KindUnauthorized,
		},
		{
			name:       "401 with a session",
			statusCode: 401,
			hadSession: true,
			expected:   KindSessionExpired,
		},
		{
			name:       "403",
			statusCode: 403,
			expected:   KindForbidden,
		},
		{
			name:       "404",
			statusCode: 404,
			expected:   KindNotFound,
		},
		{
			name:       "429",
			statusCode: 429,
			expected:   KindRateLimited,
		},
		{
			name:       "507",
			statusCode: 507,
			expected:   KindQuotaExceeded,
		},
		{
			name:       "500 with an empty body",
			statusCode: 500,
			expected:   KindServerError,
		},
		{
			name:       "503 with an html body",
			statusCode: 503,
			body:       "<html><body>bad gateway</body></html>",
			expected:   KindServerError,
		},
		{
			name:       "422 with validation errors",
			statusCode: 422,
			body:       `{"error":"Unprocessable Entity","validation_errors":[{"field":"genre","message":"unknown genre","code":"invalid"},{"field":"concept","message":"must not be empty","code":"required"}]}`,
			expected:   KindValidationFailed,
		},
		{
			name:       "400 with a structured message",
			statusCode: 400,
			body:       `{"error":"Bad Request","message":"concept is too long"}`,
			expected:   KindServerMessage,
		},
		{
			name:       "400 with only a detail key",
			statusCode: 400,
			body:       `{"detail":"world type is not supported"}`,
			expected:   KindServerMessage,
		},
		{
			name:       "500 with a structured message",
			statusCode: 500,
			body:       `{"detail":"generation pipeline crashed"}`,
			expected:   KindServerError,
		},
		{
			name:       "400 with a plain text body",
			statusCode: 400,
			body:       "malformed request payload",
			expected:   KindServerMessage,
		},
		{
			name:       "413 with a quota message",
			statusCode: 413,
			body:       `{"detail":"storage quota exceeded for this account"}`,
			expected:   KindQuotaExceeded,
		},
		{
			name:       "418 with an empty body",
			statusCode: 418,
			expected:   KindInvalidRequest,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := Classify(tc.statusCode, []byte(tc.body), tc.hadSession)

			assert.Equal(t, got.Kind, tc.expected, "kind mismatch")
		})
	}
}

func TestClassifyServerFailureRetryable(t *testing.T) {
	got := Classify(500, []byte(`{"detail":"internal server error"}`), true)

	assert.Equal(t, got.Kind, KindServerError, "kind mismatch")
	assert.Equal(t, got.StatusCode, 500, "status code mismatch")
	assert.Equal(t, got.Retryable(), true, "server failures must stay retryable")
}

func TestClassifyValidationFields(t *testing.T) {
	body := `{"validation_errors":[{"field":"genre","message":"unknown genre"},{"message":"payload is empty"}]}`

	got := Classify(422, []byte(body), false)

	assert.DeepEqual(t, got.Fields, []string{"genre: unknown genre", "payload is empty"}, "fields mismatch")
}

func TestRetryable(t *testing.T) {
	testCases := []struct {
		err      *Error
		expected bool
	}{
		{err: NetworkFailure(errors.New("connection refused")), expected: true},
		{err: ServerError(500), expected: true},
		{err: ServerError(502), expected: true},
		{err: RateLimited(), expected: true},
		{err: Unauthorized(), expected: false},
		{err: SessionExpired(), expected: false},
		{err: Forbidden(), expected: false},
		{err: NotFound(), expected: false},
		{err: ServerMessage("nope"), expected: false},
		{err: ValidationFailed([]string{"genre: unknown"}), expected: false},
		{err: QuotaExceeded(), expected: false},
		{err: DecodingFailed("panels_data", errors.New("bad json")), expected: false},
	}

	for _, tc := range testCases {
		t.Run(tc.err.Code(), func(t *testing.T) {
			assert.Equal(t, tc.err.Retryable(), tc.expected, fmt.Sprintf("retryable mismatch for %s", tc.err.Code()))
		})
	}
}

func TestAs(t *testing.T) {
	wrapped := errors.Wrap(NotFound(), "getting comic")

	got, ok := As(wrapped)
	assert.Equal(t, ok, true, "should unwrap to a typed error")
	assert.Equal(t, got.Kind, KindNotFound, "kind mismatch")

	_, ok = As(errors.New("plain"))
	assert.Equal(t, ok, false, "plain error should not unwrap")
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, ServerMessage("comic limit reached").UserMessage(), "comic limit reached", "server message should pass through")
	assert.Equal(t, SessionExpired().UserMessage(), "Your session has expired. Please log in again.", "session message mismatch")
	assert.NotEqual(t, NetworkFailure(errors.New("dial tcp")).UserMessage(), "", "network failure should have a message")
}
