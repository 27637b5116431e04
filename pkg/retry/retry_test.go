package retry

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errTemporary = errors.New("temporary")

func TestDo(t *testing.T) {
	t.Run("SucceedsAfterRetries", func(t *testing.T) {
		calls := 0
		cfg := RetryConfig{
			MaxAttempts: 5,
			Backoff:     LinearBackoff(time.Millisecond),
		}

		err := Do(t.Context(), cfg, func() error {
			calls++
			if calls < 3 {
				return errTemporary
			}
			return nil
		})

		require.NoError(t, err)
		assert.Equal(t, 3, calls)
	})

	t.Run("ExhaustsAttempts", func(t *testing.T) {
		calls := 0
		cfg := RetryConfig{
			MaxAttempts: 3,
			Backoff:     LinearBackoff(time.Millisecond),
		}

		err := Do(t.Context(), cfg, func() error {
			calls++
			return errTemporary
		})

		require.ErrorIs(t, err, errTemporary)
		assert.Equal(t, 3, calls)
	})

	t.Run("StopsOnNonRetryableError", func(t *testing.T) {
		calls := 0
		cfg := RetryConfig{
			MaxAttempts: 5,
			Backoff:     LinearBackoff(time.Millisecond),
			ShouldRetry: func(err error) bool { return false },
		}

		err := Do(t.Context(), cfg, func() error {
			calls++
			return errTemporary
		})

		require.ErrorIs(t, err, errTemporary)
		assert.Equal(t, 1, calls)
	})

	t.Run("CanceledContext", func(t *testing.T) {
		ctx, cancel := context.WithCancel(t.Context())
		cancel()

		err := Do(ctx, RetryConfig{}, func() error { return nil })
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestDoWithResult(t *testing.T) {
	cfg := RetryConfig{
		MaxAttempts: 2,
		Backoff:     LinearBackoff(time.Millisecond),
	}

	v, err := DoWithResult(t.Context(), cfg, func() (int, error) {
		return 42, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 42, v)
}
