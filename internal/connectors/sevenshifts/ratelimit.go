package sevenshifts

import (
	"context"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/jpillora/backoff"
	"golang.org/x/time/rate"
)

const (
	// DefaultRate is the proactive throttle in requests per second.
	// 7shifts allows 10 requests per second per access token.
	DefaultRate = 10.0

	// MinBuffer is the remaining request count below which Wait holds off
	// until the advertised reset.
	MinBuffer = 2

	// HeaderRateLimit is the rate limit header.
	HeaderRateLimit = "X-RateLimit-Limit"

	// HeaderRateRemaining is the remaining requests header.
	HeaderRateRemaining = "X-RateLimit-Remaining"

	// HeaderRateReset is the reset timestamp header (Unix seconds).
	HeaderRateReset = "X-RateLimit-Reset"

	// HeaderRetryAfter is the retry-after header (seconds).
	HeaderRetryAfter = "Retry-After"
)

// RateLimiter throttles requests ahead of time with a token bucket and
// reacts to the limit headers and 429 responses the API sends back.
type RateLimiter struct {
	mu        sync.Mutex
	remaining int // -1 until the API reports it
	limit     int
	resetTime time.Time
	bucket    *rate.Limiter
	minBuffer int
	backoff   *backoff.Backoff
}

// NewRateLimiter creates a limiter allowing perSecond requests per second.
// A perSecond of zero or less disables proactive throttling.
func NewRateLimiter(perSecond float64) *RateLimiter {
	limit := rate.Inf
	if perSecond > 0 {
		limit = rate.Limit(perSecond)
	}
	return &RateLimiter{
		remaining: -1,
		limit:     -1,
		bucket:    rate.NewLimiter(limit, 1),
		minBuffer: MinBuffer,
		backoff: &backoff.Backoff{
			Min:    time.Second,
			Max:    time.Minute,
			Factor: 2,
			Jitter: true,
		},
	}
}

// Wait blocks until it's safe to make a request.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.bucket.Wait(ctx); err != nil {
		return err
	}

	r.mu.Lock()
	remaining := r.remaining
	resetTime := r.resetTime
	r.mu.Unlock()

	if remaining >= 0 && remaining < r.minBuffer && time.Now().Before(resetTime) {
		return sleep(ctx, time.Until(resetTime))
	}
	return nil
}

// UpdateFromResponse updates rate limit state from response headers.
func (r *RateLimiter) UpdateFromResponse(resp *http.Response) {
	if resp == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if remaining := resp.Header.Get(HeaderRateRemaining); remaining != "" {
		if val, err := strconv.Atoi(remaining); err == nil {
			r.remaining = val
		}
	}
	if limit := resp.Header.Get(HeaderRateLimit); limit != "" {
		if val, err := strconv.Atoi(limit); err == nil {
			r.limit = val
		}
	}
	if reset := resp.Header.Get(HeaderRateReset); reset != "" {
		if val, err := strconv.ParseInt(reset, 10, 64); err == nil {
			r.resetTime = time.Unix(val, 0)
		}
	}
}

// CheckRateLimit returns a RateLimitError for a 429 response, nil otherwise.
func (r *RateLimiter) CheckRateLimit(resp *http.Response) error {
	if resp == nil {
		return nil
	}

	r.UpdateFromResponse(resp)

	if resp.StatusCode != http.StatusTooManyRequests {
		return nil
	}

	r.mu.Lock()
	resetTime := r.resetTime
	remaining := r.remaining
	limit := r.limit
	r.mu.Unlock()

	if retryAfter := resp.Header.Get(HeaderRetryAfter); retryAfter != "" {
		if seconds, err := strconv.Atoi(retryAfter); err == nil {
			resetTime = time.Now().Add(time.Duration(seconds) * time.Second)
		}
	}

	return &RateLimitError{
		ResetAt:   resetTime,
		Remaining: remaining,
		Limit:     limit,
	}
}

// Backoff waits after a 429: until the advertised reset, or for the
// next jittered backoff step when that is longer.
func (r *RateLimiter) Backoff(ctx context.Context, limitErr *RateLimitError) error {
	r.mu.Lock()
	wait := r.backoff.Duration()
	r.mu.Unlock()

	if limitErr != nil {
		if untilReset := time.Until(limitErr.ResetAt); untilReset > wait {
			wait = untilReset
		}
	}
	return sleep(ctx, wait)
}

// SetBackoff changes the bounds of the 429 backoff.
func (r *RateLimiter) SetBackoff(minDelay, maxDelay time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backoff.Min = minDelay
	r.backoff.Max = maxDelay
	r.backoff.Reset()
}

// ResetBackoff clears the backoff after a successful request.
func (r *RateLimiter) ResetBackoff() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.backoff.Reset()
}

// Remaining returns the last reported remaining requests, or -1.
func (r *RateLimiter) Remaining() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.remaining
}

// Limit returns the last reported limit, or -1.
func (r *RateLimiter) Limit() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.limit
}

// ResetTime returns the rate limit reset time.
func (r *RateLimiter) ResetTime() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resetTime
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
