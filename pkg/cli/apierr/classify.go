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
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/pkg/errors"
)

// validationDetail is one entry of a validation_errors list
type validationDetail struct {
	Field   string `json:"field"`
	Message string `json:"message"`
	Code    string `json:"code"`
}

// errorResponse is the structured error body the server sends on failures.
// Not all fields are populated on every response.
type errorResponse struct {
	Error            string             `json:"error"`
	Message          string             `json:"message"`
	Detail           string             `json:"detail"`
	ValidationErrors []validationDetail `json:"validation_errors"`
}

// Classify turns a non-2xx response into a typed error. hadSession indicates
// whether the request was made with credentials believed valid; it decides
// between Unauthorized and SessionExpired on a 401.
func Classify(statusCode int, body []byte, hadSession bool) *Error {
	switch statusCode {
	case http.StatusUnauthorized:
		if hadSession {
			return SessionExpired()
		}
		return Unauthorized()
	case http.StatusForbidden:
		return Forbidden()
	case http.StatusNotFound:
		return NotFound()
	case http.StatusTooManyRequests:
		return RateLimited()
	case http.StatusInsufficientStorage:
		return QuotaExceeded()
	}

	// 5xx is classified by status alone so it stays retryable; the body of a
	// server failure carries no finer-grained kind
	if statusCode >= 500 {
		return ServerError(statusCode)
	}

	if parsed := parseBody(body); parsed != nil {
		return parsed
	}

	return InvalidRequest(fmt.Sprintf("request rejected with status %d", statusCode))
}

// parseBody extracts a typed error from an error response body. The body is
// tried as a validation error list, then as a structured message, then as a
// loose key-value object, and finally as plain text. It returns nil when the
// body carries nothing usable.
func parseBody(body []byte) *Error {
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return nil
	}

	var structured errorResponse
	if err := json.Unmarshal(body, &structured); err == nil {
		if len(structured.ValidationErrors) > 0 {
			fields := make([]string, 0, len(structured.ValidationErrors))
			for _, d := range structured.ValidationErrors {
				if d.Field == "" {
					fields = append(fields, d.Message)
					continue
				}
				fields = append(fields, fmt.Sprintf("%s: %s", d.Field, d.Message))
			}
			return ValidationFailed(fields)
		}

		for _, msg := range []string{structured.Message, structured.Detail, structured.Error} {
			if msg != "" {
				return messageError(msg)
			}
		}

		return nil
	}

	// the body is not a JSON object; a short plain-text body is still a message
	if !strings.HasPrefix(trimmed, "<") && len(trimmed) < 512 {
		return messageError(trimmed)
	}

	return nil
}

// messageError maps a server-provided message onto a kind. Quota rejections
// arrive as plain messages rather than a dedicated status.
func messageError(msg string) *Error {
	if strings.Contains(strings.ToLower(msg), "quota") {
		return QuotaExceeded()
	}

	return ServerMessage(msg)
}

// As unwraps err into a typed API error. It mirrors errors.As but saves
// callers the target declaration.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}

	return nil, false
}

// IsRetryable reports whether err is a typed API error worth retrying
func IsRetryable(err error) bool {
	e, ok := As(err)
	return ok && e.Retryable()
}

// IsSessionExpired reports whether err indicates the session is no longer valid
func IsSessionExpired(err error) bool {
	e, ok := As(err)
	return ok && e.Kind == KindSessionExpired
}
