// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package helper

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRetry(t *testing.T) {
	errTemporary := errors.New("temporary")
	errFinal := errors.New("final")

	tests := []struct {
		name      string
		failures  int
		err       error
		rc        RetryConfig
		wantCalls int
		wantErr   error
	}{
		{
			name:      "success on first call",
			failures:  0,
			rc:        RetryConfig{Count: 2, Delay: time.Millisecond},
			wantCalls: 1,
		},
		{
			name:      "success after retries",
			failures:  2,
			err:       errTemporary,
			rc:        RetryConfig{Count: 2, Delay: time.Millisecond},
			wantCalls: 3,
		},
		{
			name:      "retries exhausted",
			failures:  5,
			err:       errTemporary,
			rc:        RetryConfig{Count: 2, Delay: time.Millisecond},
			wantCalls: 3,
			wantErr:   errTemporary,
		},
		{
			name:      "no retries configured",
			failures:  1,
			err:       errTemporary,
			rc:        RetryConfig{},
			wantCalls: 1,
			wantErr:   errTemporary,
		},
		{
			name:      "permanent error is not retried",
			failures:  5,
			err:       Permanent(errFinal),
			rc:        RetryConfig{Count: 3, Delay: time.Millisecond},
			wantCalls: 1,
			wantErr:   errFinal,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			effector := func(_ context.Context) error {
				calls++
				if calls <= tt.failures {
					return tt.err
				}
				return nil
			}

			err := Retry(effector, tt.rc)(t.Context())
			assert.Equal(t, tt.wantCalls, calls)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
			assert.False(t, IsPermanent(err), "returned error must not stay marked as permanent")
		})
	}
}

func TestRetry_ContextCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	calls := 0
	effector := func(_ context.Context) error {
		calls++
		cancel()
		return errors.New("fail")
	}

	err := Retry(effector, RetryConfig{Count: 3, Delay: time.Hour})(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestPermanent(t *testing.T) {
	base := errors.New("nxdomain")

	assert.NoError(t, Permanent(nil))
	assert.True(t, IsPermanent(Permanent(base)))
	assert.True(t, IsPermanent(fmt.Errorf("wrapped: %w", Permanent(base))))
	assert.False(t, IsPermanent(base))
	assert.ErrorIs(t, Permanent(base), base)
	assert.Equal(t, base.Error(), Permanent(base).Error())
}

func Test_getExpBackoff(t *testing.T) {
	tests := []struct {
		iteration int
		want      time.Duration
	}{
		{0, time.Second},
		{1, time.Second},
		{2, 2 * time.Second},
		{3, 4 * time.Second},
		{4, 8 * time.Second},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("iteration %d", tt.iteration), func(t *testing.T) {
			assert.Equal(t, tt.want, getExpBackoff(time.Second, tt.iteration))
		})
	}
}
