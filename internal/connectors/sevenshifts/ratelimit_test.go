package sevenshifts

import (
	"context"
	"net/http"
	"strconv"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRateLimiter(t *testing.T) {
	r := NewRateLimiter(DefaultRate)
	assert.Equal(t, -1, r.Remaining())
	assert.Equal(t, -1, r.Limit())
	assert.True(t, r.ResetTime().IsZero())
}

func TestRateLimiter_UpdateFromResponse(t *testing.T) {
	r := NewRateLimiter(0)
	reset := time.Now().Add(time.Minute).Unix()
	resp := &http.Response{StatusCode: http.StatusOK, Header: http.Header{}}
	resp.Header.Set(HeaderRateLimit, "10")
	resp.Header.Set(HeaderRateRemaining, "7")
	resp.Header.Set(HeaderRateReset, strconv.FormatInt(reset, 10))

	r.UpdateFromResponse(resp)
	assert.Equal(t, 10, r.Limit())
	assert.Equal(t, 7, r.Remaining())
	assert.Equal(t, reset, r.ResetTime().Unix())

	r.UpdateFromResponse(nil)
	assert.Equal(t, 7, r.Remaining())
}

func TestRateLimiter_CheckRateLimit(t *testing.T) {
	r := NewRateLimiter(0)

	t.Run("ok response", func(t *testing.T) {
		assert.NoError(t, r.CheckRateLimit(&http.Response{StatusCode: http.StatusOK, Header: http.Header{}}))
	})

	t.Run("429 honours Retry-After", func(t *testing.T) {
		resp := &http.Response{StatusCode: http.StatusTooManyRequests, Header: http.Header{}}
		resp.Header.Set(HeaderRetryAfter, "30")

		err := r.CheckRateLimit(resp)
		require.Error(t, err)
		rl, ok := err.(*RateLimitError)
		require.True(t, ok)
		assert.WithinDuration(t, time.Now().Add(30*time.Second), rl.ResetAt, 2*time.Second)
		assert.True(t, IsRateLimited(err))
	})
}

func TestRateLimiter_WaitHoldsNearLimit(t *testing.T) {
	r := NewRateLimiter(0)
	resp := &http.Response{StatusCode: http.StatusOK, Header: http.Header{}}
	resp.Header.Set(HeaderRateRemaining, "0")
	resp.Header.Set(HeaderRateReset, strconv.FormatInt(time.Now().Add(time.Hour).Unix(), 10))
	r.UpdateFromResponse(resp)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	assert.ErrorIs(t, r.Wait(ctx), context.DeadlineExceeded)
}

func TestRateLimiter_Backoff(t *testing.T) {
	r := NewRateLimiter(0)
	r.SetBackoff(time.Millisecond, 2*time.Millisecond)

	start := time.Now()
	require.NoError(t, r.Backoff(context.Background(), &RateLimitError{}))
	assert.Less(t, time.Since(start), time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := r.Backoff(ctx, &RateLimitError{ResetAt: time.Now().Add(time.Hour)})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestRateLimiter_BucketThrottles(t *testing.T) {
	r := NewRateLimiter(50)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		require.NoError(t, r.Wait(ctx))
	}
	assert.GreaterOrEqual(t, time.Since(start), 30*time.Millisecond)
}
