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

// Package client provides interfaces for interacting with the MindToon server
// and the data structures for responses. Non-2xx responses and transport
// failures surface as typed apierr errors, never as raw HTTP errors.
package client

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/pkg/errors"
	"golang.org/x/time/rate"

	"github.com/mindtoon/mindtoon/pkg/cli/apierr"
	"github.com/mindtoon/mindtoon/pkg/cli/context"
	"github.com/mindtoon/mindtoon/pkg/cli/log"
)

// ErrContentTypeMismatch is an error for an unexpected response content type
var ErrContentTypeMismatch = errors.New("content type mismatch")

var contentTypeApplicationJSON = "application/json"
var contentTypeForm = "application/x-www-form-urlencoded"
var contentTypeImage = "image/*"

// requestOptions contains options for requests
type requestOptions struct {
	HTTPClient *http.Client
	// ContentType is the Content-Type of the request body. Defaults to
	// application/json when a body is present.
	ContentType string
	// ExpectedContentType is the Content-Type that the client is expecting from the server
	ExpectedContentType *string
}

const (
	// crudTimeout bounds quick CRUD and read requests
	crudTimeout = 30 * time.Second
	// generationTimeout accommodates slow AI generation endpoints
	generationTimeout = 420 * time.Second

	// clientRateLimitPerSecond is the max requests per second the client will make
	clientRateLimitPerSecond = 50
	// clientRateLimitBurst is the burst capacity for rate limiting
	clientRateLimitBurst = 100
)

// rateLimitedTransport wraps an http.RoundTripper with rate limiting
type rateLimitedTransport struct {
	transport http.RoundTripper
	limiter   *rate.Limiter
}

func (t *rateLimitedTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if err := t.limiter.Wait(req.Context()); err != nil {
		return nil, err
	}
	return t.transport.RoundTrip(req)
}

func newRateLimitedTransport() http.RoundTripper {
	interval := time.Second / time.Duration(clientRateLimitPerSecond)

	return &rateLimitedTransport{
		transport: http.DefaultTransport,
		limiter:   rate.NewLimiter(rate.Every(interval), clientRateLimitBurst),
	}
}

// NewHTTPClient creates a rate limited HTTP client for CRUD requests
func NewHTTPClient() *http.Client {
	return &http.Client{
		Transport: newRateLimitedTransport(),
		Timeout:   crudTimeout,
	}
}

// NewGenerationHTTPClient creates a rate limited HTTP client with a timeout
// long enough for comic and image generation
func NewGenerationHTTPClient() *http.Client {
	return &http.Client{
		Transport: newRateLimitedTransport(),
		Timeout:   generationTimeout,
	}
}

func getHTTPClient(ctx context.MindtoonCtx, options *requestOptions) *http.Client {
	if options != nil && options.HTTPClient != nil {
		return options.HTTPClient
	}

	if ctx.HTTPClient != nil {
		return ctx.HTTPClient
	}

	return &http.Client{}
}

func getExpectedContentType(options *requestOptions) string {
	if options != nil && options.ExpectedContentType != nil {
		return *options.ExpectedContentType
	}

	return contentTypeApplicationJSON
}

func getReq(ctx context.MindtoonCtx, path, method, body string, options *requestOptions) (*http.Request, error) {
	endpoint := fmt.Sprintf("%s%s", ctx.APIEndpoint, path)
	req, err := http.NewRequest(method, endpoint, strings.NewReader(body))
	if err != nil {
		return nil, errors.Wrap(err, "constructing http request")
	}

	req.Header.Set("CLI-Version", ctx.Version)

	if body != "" {
		contentType := contentTypeApplicationJSON
		if options != nil && options.ContentType != "" {
			contentType = options.ContentType
		}
		req.Header.Set("Content-Type", contentType)
	}

	if ctx.SessionToken != "" {
		credential := fmt.Sprintf("Bearer %s", ctx.SessionToken)
		req.Header.Set("Authorization", credential)
	}

	return req, nil
}

// checkRespErr classifies the given http response if it indicates an error
func checkRespErr(ctx context.MindtoonCtx, res *http.Response) error {
	if res.StatusCode < 400 {
		return nil
	}

	body, err := io.ReadAll(res.Body)
	if err != nil {
		return errors.Wrapf(err, "server responded with %d but client could not read the response body", res.StatusCode)
	}

	return apierr.Classify(res.StatusCode, body, ctx.SessionToken != "")
}

func checkContentType(res *http.Response, options *requestOptions) error {
	expected := getExpectedContentType(options)

	got := res.Header.Get("Content-Type")
	// drop parameters such as charset
	if i := strings.Index(got, ";"); i >= 0 {
		got = strings.TrimSpace(got[:i])
	}

	if strings.HasSuffix(expected, "/*") {
		prefix := strings.TrimSuffix(expected, "*")
		if strings.HasPrefix(got, prefix) {
			return nil
		}
	} else if got == expected {
		return nil
	}

	return errors.Wrapf(ErrContentTypeMismatch, "got: '%s' want: '%s'. Did you configure your endpoint correctly?", got, expected)
}

// doReq does a http request to the given path in the api endpoint
func doReq(ctx context.MindtoonCtx, method, path, body string, options *requestOptions) (*http.Response, error) {
	req, err := getReq(ctx, path, method, body, options)
	if err != nil {
		return nil, errors.Wrap(err, "getting request")
	}

	log.Debug("HTTP %s %s\n", method, path)

	hc := getHTTPClient(ctx, options)
	res, err := hc.Do(req)
	if err != nil {
		return res, apierr.NetworkFailure(err)
	}

	log.Debug("HTTP %d %s\n", res.StatusCode, res.Status)

	if err = checkRespErr(ctx, res); err != nil {
		return res, err
	}

	if err = checkContentType(res, options); err != nil {
		return res, errors.Wrap(err, "unexpected Content-Type")
	}

	return res, nil
}

// doAuthorizedReq does a http request to the given path in the api endpoint as
// a user, with the appropriate headers. The given path should include the
// preceding slash. A missing session short-circuits without a network call.
func doAuthorizedReq(ctx context.MindtoonCtx, method, path, body string, options *requestOptions) (*http.Response, error) {
	if ctx.SessionToken == "" {
		return nil, apierr.Unauthorized()
	}

	return doReq(ctx, method, path, body, options)
}

// decodeResp decodes the response body into dest. Decoding failures surface
// as a DecodingFailed error naming the payload.
func decodeResp(res *http.Response, name string, dest interface{}) error {
	body, err := io.ReadAll(res.Body)
	if err != nil {
		return errors.Wrap(err, "reading the response body")
	}

	if err = json.Unmarshal(body, dest); err != nil {
		return apierr.DecodingFailed(name, err)
	}

	return nil
}

// SuccessResp is a generic acknowledgement from the server
type SuccessResp struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
