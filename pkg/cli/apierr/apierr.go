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

// Package apierr defines the closed set of error kinds that the API client
// surfaces to callers. Callers never see raw transport or decoding errors;
// every failure is classified into one of these kinds first.
package apierr

import (
	"fmt"
	"strings"
)

// Kind is a category of API failure
type Kind int

const (
	// KindInvalidRequest is a malformed request rejected before or by the server
	KindInvalidRequest Kind = iota
	// KindUnauthorized is a 401 without an established session
	KindUnauthorized
	// KindSessionExpired is a 401 while a session was believed valid
	KindSessionExpired
	// KindForbidden is a 403
	KindForbidden
	// KindNotFound is a 404
	KindNotFound
	// KindServerError is a 5xx with no usable body
	KindServerError
	// KindServerMessage is a structured error message from the server
	KindServerMessage
	// KindDecodingFailed is a response body that could not be decoded
	KindDecodingFailed
	// KindNetworkFailure is a transport-level failure
	KindNetworkFailure
	// KindValidationFailed is a 4xx carrying per-field validation errors
	KindValidationFailed
	// KindRateLimited is a 429
	KindRateLimited
	// KindQuotaExceeded is a storage quota rejection
	KindQuotaExceeded
	// KindDomainOperationFailed is a domain operation reported as failed by the server
	KindDomainOperationFailed
)

// Error is a classified API failure. It carries a technical description for
// logs and a user-facing message for display.
type Error struct {
	Kind       Kind
	StatusCode int
	Message    string
	Field      string
	Fields     []string
	Cause      error
}

// Error implements the error interface with the technical description
func (e *Error) Error() string {
	switch e.Kind {
	case KindInvalidRequest:
		return fmt.Sprintf("invalid request: %s", e.Message)
	case KindUnauthorized:
		return "unauthorized"
	case KindSessionExpired:
		return "session expired"
	case KindForbidden:
		return "forbidden"
	case KindNotFound:
		return "not found"
	case KindServerError:
		return fmt.Sprintf("server error %d", e.StatusCode)
	case KindServerMessage:
		return fmt.Sprintf("server message: %s", e.Message)
	case KindDecodingFailed:
		return fmt.Sprintf("decoding field %q: %v", e.Field, e.Cause)
	case KindNetworkFailure:
		return fmt.Sprintf("network failure: %v", e.Cause)
	case KindValidationFailed:
		return fmt.Sprintf("validation failed: %s", strings.Join(e.Fields, ", "))
	case KindRateLimited:
		return "rate limited"
	case KindQuotaExceeded:
		return "storage quota exceeded"
	case KindDomainOperationFailed:
		return fmt.Sprintf("operation failed: %s", e.Message)
	}

	return "unknown error"
}

// Unwrap exposes the underlying cause, if any
func (e *Error) Unwrap() error {
	return e.Cause
}

// UserMessage returns a message suitable for display to the user
func (e *Error) UserMessage() string {
	switch e.Kind {
	case KindInvalidRequest, KindDecodingFailed:
		return "Something went wrong. Please try again."
	case KindUnauthorized:
		return "Please log in to continue"
	case KindSessionExpired:
		return "Your session has expired. Please log in again."
	case KindForbidden:
		return "You don't have permission to perform this action"
	case KindNotFound:
		return "The requested item was not found"
	case KindServerError:
		if e.StatusCode >= 500 {
			return "Server is temporarily unavailable. Please try again later."
		}
		return "Something went wrong. Please try again."
	case KindServerMessage, KindDomainOperationFailed:
		return e.Message
	case KindNetworkFailure:
		return "Please check your internet connection and try again"
	case KindValidationFailed:
		return fmt.Sprintf("Please fix the following: %s", strings.Join(e.Fields, ", "))
	case KindRateLimited:
		return "Too many requests. Please wait a moment and try again."
	case KindQuotaExceeded:
		return "Storage quota exceeded. Please delete some comics to free up space."
	}

	return "Something went wrong. Please try again."
}

// Code returns a stable identifier for the error kind
func (e *Error) Code() string {
	switch e.Kind {
	case KindInvalidRequest:
		return "INVALID_REQUEST"
	case KindUnauthorized:
		return "UNAUTHORIZED"
	case KindSessionExpired:
		return "SESSION_EXPIRED"
	case KindForbidden:
		return "FORBIDDEN"
	case KindNotFound:
		return "NOT_FOUND"
	case KindServerError:
		return fmt.Sprintf("SERVER_ERROR_%d", e.StatusCode)
	case KindServerMessage:
		return "SERVER_MESSAGE"
	case KindDecodingFailed:
		return "DECODING_FAILED"
	case KindNetworkFailure:
		return "NETWORK_FAILURE"
	case KindValidationFailed:
		return "VALIDATION_FAILED"
	case KindRateLimited:
		return "RATE_LIMITED"
	case KindQuotaExceeded:
		return "QUOTA_EXCEEDED"
	case KindDomainOperationFailed:
		return "OPERATION_FAILED"
	}

	return "UNKNOWN"
}

// Retryable reports whether retrying the operation may succeed. It is true
// exactly for network failures, 5xx server errors, and rate limiting.
func (e *Error) Retryable() bool {
	switch e.Kind {
	case KindNetworkFailure, KindRateLimited:
		return true
	case KindServerError:
		return e.StatusCode >= 500
	}

	return false
}

// InvalidRequest returns an error for a malformed request
func InvalidRequest(message string) *Error {
	return &Error{Kind: KindInvalidRequest, Message: message}
}

// Unauthorized returns an error for a request lacking valid credentials
func Unauthorized() *Error {
	return &Error{Kind: KindUnauthorized}
}

// SessionExpired returns an error for a session the server no longer accepts
func SessionExpired() *Error {
	return &Error{Kind: KindSessionExpired}
}

// Forbidden returns an error for a request the user may not perform
func Forbidden() *Error {
	return &Error{Kind: KindForbidden}
}

// NotFound returns an error for a missing resource
func NotFound() *Error {
	return &Error{Kind: KindNotFound}
}

// ServerError returns an error for a failing server
func ServerError(statusCode int) *Error {
	return &Error{Kind: KindServerError, StatusCode: statusCode}
}

// ServerMessage returns an error carrying a server-provided message
func ServerMessage(message string) *Error {
	return &Error{Kind: KindServerMessage, Message: message}
}

// DecodingFailed returns an error for an undecodable response field
func DecodingFailed(field string, cause error) *Error {
	return &Error{Kind: KindDecodingFailed, Field: field, Cause: cause}
}

// NetworkFailure returns an error for a transport-level failure
func NetworkFailure(cause error) *Error {
	return &Error{Kind: KindNetworkFailure, Cause: cause}
}

// ValidationFailed returns an error listing per-field validation failures
func ValidationFailed(fields []string) *Error {
	return &Error{Kind: KindValidationFailed, Fields: fields}
}

// RateLimited returns an error for a rate-limited request
func RateLimited() *Error {
	return &Error{Kind: KindRateLimited}
}

// QuotaExceeded returns an error for an exhausted storage quota
func QuotaExceeded() *Error {
	return &Error{Kind: KindQuotaExceeded}
}

// DomainOperationFailed returns an error for a failed domain operation
func DomainOperationFailed(message string) *Error {
	return &Error{Kind: KindDomainOperationFailed, Message: message}
}
