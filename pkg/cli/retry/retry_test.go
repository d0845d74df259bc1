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

package retry

import (
	"context"
	"testing"
	"time"

	"github.com/pkg/errors"

	"github.com/mindtoon/mindtoon/pkg/assert"
	"github.com/mindtoon/mindtoon/pkg/cli/apierr"
)

// recordingSleeper collects requested delays without sleeping
type recordingSleeper struct {
	delays []time.Duration
}

func (s *recordingSleeper) Sleep(ctx context.Context, d time.Duration) error {
	s.delays = append(s.delays, d)
	return nil
}

func TestDoEventualSuccess(t *testing.T) {
	sleeper := &recordingSleeper{}
	calls := 0

	err := Do(context.Background(), Default, sleeper, func() error {
		calls++
		if calls <= 2 {
			return apierr.ServerError(502)
		}
		return nil
	})

	assert.Equal(t, err, nil, "operation should eventually succeed")
	assert.Equal(t, calls, 3, "call count mismatch")
	assert.DeepEqual(t, sleeper.delays, []time.Duration{time.Second, 2 * time.Second}, "delay schedule mismatch")
}

func TestDoExhaustsRetries(t *testing.T) {
	sleeper := &recordingSleeper{}
	calls := 0

	err := Do(context.Background(), Default, sleeper, func() error {
		calls++
		return apierr.NetworkFailure(errors.New("connection reset"))
	})

	assert.NotEqual(t, err, nil, "expected an error")
	assert.Equal(t, calls, Default.MaxRetries, "call count mismatch")
	assert.Equal(t, len(sleeper.delays), Default.MaxRetries-1, "delay count mismatch")

	e, ok := apierr.As(err)
	assert.Equal(t, ok, true, "last error should be typed")
	assert.Equal(t, e.Kind, apierr.KindNetworkFailure, "kind mismatch")
}

func TestDoNonRetryable(t *testing.T) {
	sleeper := &recordingSleeper{}
	calls := 0

	err := Do(context.Background(), Default, sleeper, func() error {
		calls++
		return apierr.Unauthorized()
	})

	assert.NotEqual(t, err, nil, "expected an error")
	assert.Equal(t, calls, 1, "non-retryable errors should not be retried")
	assert.Equal(t, len(sleeper.delays), 0, "no delay should be scheduled")
}

func TestDoCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	calls := 0
	err := Do(ctx, Default, NewSleeper(), func() error {
		calls++
		return apierr.ServerError(500)
	})

	assert.NotEqual(t, err, nil, "expected an error")
	assert.Equal(t, calls, 1, "cancellation should stop further attempts")
	assert.Equal(t, errors.Is(err, context.Canceled), true, "error should carry the cancellation")
}

func TestDelayCap(t *testing.T) {
	testCases := []struct {
		config   Config
		attempt  int
		expected time.Duration
	}{
		{config: Default, attempt: 1, expected: time.Second},
		{config: Default, attempt: 2, expected: 2 * time.Second},
		{config: Default, attempt: 3, expected: 4 * time.Second},
		{config: Default, attempt: 10, expected: 30 * time.Second},
		{config: Aggressive, attempt: 1, expected: 500 * time.Millisecond},
		{config: Aggressive, attempt: 2, expected: 750 * time.Millisecond},
		{config: Conservative, attempt: 2, expected: 6 * time.Second},
		{config: Conservative, attempt: 3, expected: 15 * time.Second},
	}

	for _, tc := range testCases {
		got := tc.config.Delay(tc.attempt)
		assert.Equal(t, got, tc.expected, "delay mismatch")
	}
}
