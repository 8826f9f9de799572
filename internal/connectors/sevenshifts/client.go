package sevenshifts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/PuerkitoBio/rehttp"
	"github.com/patrickmn/go-cache"
	"golang.org/x/oauth2"

	"github.com/prairiedogbeer/go7shifts/internal/core/domain"
	"github.com/prairiedogbeer/go7shifts/internal/core/ports/driven"
	"github.com/prairiedogbeer/go7shifts/internal/logger"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 30 * time.Second

	// MaxRetries is the default number of retries for transient errors.
	MaxRetries = 3

	// RetryDelay is the initial delay between transport retries.
	RetryDelay = time.Second

	// MaxRetryDelay caps the delay between transport retries.
	MaxRetryDelay = 30 * time.Second

	// DefaultCacheTTL is how long reference data responses are reused.
	DefaultCacheTTL = 5 * time.Minute

	// DefaultUserAgent identifies this client to the API.
	DefaultUserAgent = "go7shifts"
)

// Config controls how the client talks to the API.
type Config struct {
	// BaseURL is the API root, without a version segment.
	BaseURL string

	// RateLimit is the proactive request rate per second. Zero disables it.
	RateLimit float64

	// Timeout bounds each HTTP request including retries.
	Timeout time.Duration

	// MaxRetries bounds transport retries and 429 retries separately.
	MaxRetries int

	// RetryDelay is the first transport retry delay.
	RetryDelay time.Duration

	// CacheTTL is how long reference data is cached. Zero disables caching.
	CacheTTL time.Duration

	// UserAgent is sent with every request.
	UserAgent string

	// Transport is the base round tripper. Defaults to http.DefaultTransport.
	Transport http.RoundTripper
}

// DefaultConfig returns the production configuration.
func DefaultConfig() Config {
	return Config{
		BaseURL:    domain.DefaultBaseURL,
		RateLimit:  DefaultRate,
		Timeout:    DefaultTimeout,
		MaxRetries: MaxRetries,
		RetryDelay: RetryDelay,
		CacheTTL:   DefaultCacheTTL,
		UserAgent:  DefaultUserAgent,
	}
}

// ConfigFromSettings builds a client configuration from stored settings.
func ConfigFromSettings(s domain.APISettings) Config {
	cfg := DefaultConfig()
	if s.BaseURL != "" {
		cfg.BaseURL = s.BaseURL
	}
	cfg.RateLimit = s.RateLimit
	if s.TimeoutSeconds > 0 {
		cfg.Timeout = s.Timeout()
	}
	if s.MaxRetries >= 0 {
		cfg.MaxRetries = s.MaxRetries
	}
	cfg.CacheTTL = s.CacheTTL()
	return cfg
}

// Client calls the 7shifts API.
type Client struct {
	tokenProvider driven.TokenProvider
	config        Config
	baseURL       *url.URL
	rateLimiter   *RateLimiter
	cache         *cache.Cache

	mu   sync.Mutex
	http *http.Client
}

// Ensure Client implements the WorkforceAPI interface.
var _ driven.WorkforceAPI = (*Client)(nil)

// NewClient creates an API client. The token is fetched from
// tokenProvider on first use.
func NewClient(tokenProvider driven.TokenProvider, cfg Config) (*Client, error) {
	if tokenProvider == nil {
		return nil, fmt.Errorf("%w: token provider", domain.ErrNotConfigured)
	}
	if cfg.BaseURL == "" {
		cfg.BaseURL = domain.DefaultBaseURL
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: base URL %q", domain.ErrInvalidInput, cfg.BaseURL)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if cfg.RetryDelay <= 0 {
		cfg.RetryDelay = RetryDelay
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = DefaultUserAgent
	}

	c := &Client{
		tokenProvider: tokenProvider,
		config:        cfg,
		baseURL:       base,
		rateLimiter:   NewRateLimiter(cfg.RateLimit),
	}
	if cfg.CacheTTL > 0 {
		c.cache = cache.New(cfg.CacheTTL, 2*cfg.CacheTTL)
	}
	return c, nil
}

// RateLimiter returns the rate limiter for external access.
func (c *Client) RateLimiter() *RateLimiter {
	return c.rateLimiter
}

// InvalidateCache drops every cached reference data response.
func (c *Client) InvalidateCache() {
	if c.cache != nil {
		c.cache.Flush()
	}
}

// ensureClient builds the authenticated HTTP client on first use so the
// token is only looked up when a request is actually made.
func (c *Client) ensureClient(ctx context.Context) (*http.Client, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.http != nil {
		return c.http, nil
	}

	token, err := c.tokenProvider.GetToken(ctx)
	if err != nil {
		return nil, fmt.Errorf("get token: %w", err)
	}

	base := c.config.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	retrying := rehttp.NewTransport(base,
		rehttp.RetryAll(
			rehttp.RetryMaxRetries(c.config.MaxRetries),
			rehttp.RetryHTTPMethods(http.MethodGet, http.MethodHead),
			rehttp.RetryAny(
				rehttp.RetryStatuses(http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout),
				rehttp.RetryTemporaryErr(),
			),
		),
		rehttp.ExpJitterDelay(c.config.RetryDelay, MaxRetryDelay),
	)

	ctx = context.WithValue(ctx, oauth2.HTTPClient, &http.Client{Transport: retrying})
	ts := oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token, TokenType: "Bearer"},
	)
	tc := oauth2.NewClient(ctx, ts)
	tc.Timeout = c.config.Timeout
	c.http = tc

	return c.http, nil
}

// request describes one API call.
type request struct {
	method    string
	path      string
	query     url.Values
	body      any
	cacheable bool
}

// do sends req and decodes the JSON response into out, which may be nil.
// 429 responses are retried after a backoff up to MaxRetries times.
func (c *Client) do(ctx context.Context, req request, out any) error {
	u := c.baseURL.JoinPath(req.path)
	if len(req.query) > 0 {
		u.RawQuery = req.query.Encode()
	}
	target := u.String()

	cacheKey := req.method + " " + target
	if req.cacheable && c.cache != nil {
		if cached, ok := c.cache.Get(cacheKey); ok {
			logger.Debug("cache hit: %s", cacheKey)
			return decodeInto(cached.([]byte), out)
		}
	}

	hc, err := c.ensureClient(ctx)
	if err != nil {
		return err
	}

	var payload []byte
	if req.body != nil {
		payload, err = json.Marshal(req.body)
		if err != nil {
			return fmt.Errorf("encoding request body: %w", err)
		}
	}

	for attempt := 0; ; attempt++ {
		if err := c.rateLimiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit wait: %w", err)
		}

		var body io.Reader
		if payload != nil {
			body = bytes.NewReader(payload)
		}
		httpReq, err := http.NewRequestWithContext(ctx, req.method, target, body)
		if err != nil {
			return fmt.Errorf("creating request: %w", err)
		}
		httpReq.Header.Set("Accept", "application/json")
		httpReq.Header.Set("User-Agent", c.config.UserAgent)
		if payload != nil {
			httpReq.Header.Set("Content-Type", "application/json")
		}

		logger.Debug("%s %s", req.method, u.RequestURI())
		resp, err := hc.Do(httpReq)
		if err != nil {
			return fmt.Errorf("%s %s: %w", req.method, req.path, err)
		}
		data, readErr := io.ReadAll(resp.Body)
		resp.Body.Close()

		if limitErr := c.rateLimiter.CheckRateLimit(resp); limitErr != nil {
			var rl *RateLimitError
			if errors.As(limitErr, &rl) {
				rl.Body = data
			}
			if attempt >= c.config.MaxRetries {
				return limitErr
			}
			logger.Warn("rate limited on %s %s, backing off (attempt %d)", req.method, req.path, attempt+1)
			if err := c.rateLimiter.Backoff(ctx, rl); err != nil {
				return err
			}
			continue
		}
		if readErr != nil {
			return fmt.Errorf("reading response: %w", readErr)
		}
		if resp.StatusCode > 299 {
			return newAPIError(resp, data)
		}

		c.rateLimiter.ResetBackoff()
		if req.cacheable && c.cache != nil {
			c.cache.Set(cacheKey, data, cache.DefaultExpiration)
		}
		return decodeInto(data, out)
	}
}

func decodeInto(data []byte, out any) error {
	if out == nil || len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return fmt.Errorf("decoding response: %w", err)
	}
	return nil
}

// companyPath builds /v2/company/{id}/{parts...}.
func companyPath(companyID int64, parts ...string) string {
	return "/v2/company/" + fmt.Sprint(companyID) + "/" + strings.Join(parts, "/")
}
