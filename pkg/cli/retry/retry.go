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

// Package retry implements exponential backoff for operations that fail
// transiently. Only errors the caller marks retryable are retried.
package retry

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/mindtoon/mindtoon/pkg/cli/apierr"
	"github.com/mindtoon/mindtoon/pkg/cli/log"
)

// Config describes a backoff schedule. MaxRetries caps the total number of
// executions, so an operation runs at most MaxRetries times.
type Config struct {
	MaxRetries        int
	BaseDelay         time.Duration
	MaxDelay          time.Duration
	BackoffMultiplier float64
}

// Default suits most interactive requests
var Default = Config{
	MaxRetries:        3,
	BaseDelay:         time.Second,
	MaxDelay:          30 * time.Second,
	BackoffMultiplier: 2,
}

// Aggressive retries more and sooner, for operations the user is waiting on
var Aggressive = Config{
	MaxRetries:        5,
	BaseDelay:         500 * time.Millisecond,
	MaxDelay:          60 * time.Second,
	BackoffMultiplier: 1.5,
}

// Conservative backs off hard, for background refreshes
var Conservative = Config{
	MaxRetries:        2,
	BaseDelay:         2 * time.Second,
	MaxDelay:          15 * time.Second,
	BackoffMultiplier: 3,
}

// Delay returns the backoff delay preceding the given retry attempt,
// starting at 1
func (c Config) Delay(attempt int) time.Duration {
	d := c.BaseDelay
	for i := 1; i < attempt; i++ {
		d = time.Duration(float64(d) * c.BackoffMultiplier)
		if d >= c.MaxDelay {
			return c.MaxDelay
		}
	}

	if d > c.MaxDelay {
		return c.MaxDelay
	}

	return d
}

// Sleeper waits for a duration or until the context is done. The default
// implementation sleeps on the wall clock; tests substitute their own.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

type wallSleeper struct{}

func (wallSleeper) Sleep(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()

	select {
	case <-ctx.Done():
		return errors.Wrap(ctx.Err(), "waiting to retry")
	case <-t.C:
		return nil
	}
}

// NewSleeper returns a Sleeper backed by the wall clock
func NewSleeper() Sleeper {
	return wallSleeper{}
}

// Do runs fn, retrying per the config while fn returns a retryable error.
// The last error is returned once retries are exhausted. Non-retryable
// errors propagate immediately.
func Do(ctx context.Context, c Config, s Sleeper, fn func() error) error {
	var err error

	for attempt := 0; ; attempt++ {
		err = fn()
		if err == nil {
			return nil
		}

		if !apierr.IsRetryable(err) {
			return err
		}
		if attempt >= c.MaxRetries-1 {
			return err
		}

		delay := c.Delay(attempt + 1)
		log.Debug("retrying in %s after attempt %d: %v\n", delay, attempt+1, err)

		if sleepErr := s.Sleep(ctx, delay); sleepErr != nil {
			return sleepErr
		}
	}
}
