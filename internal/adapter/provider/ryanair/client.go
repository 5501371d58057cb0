// Package ryanair adapts the carrier's public fare-finder and route endpoints
// to the domain provider interfaces.
package ryanair

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/wandrly/wandrly-api/internal/domain"
	"github.com/wandrly/wandrly-api/internal/infrastructure/logger"
)

// ProviderName is the unique identifier for the Ryanair upstream.
const ProviderName = "ryanair"

// Upstream endpoints.
const (
	DefaultRoutesURL   = "https://www.ryanair.com/api/views/locate/3/routes"
	DefaultAirportsURL = "https://api.ryanair.com/aggregate/3/common?market=en-gb"
	DefaultFaresURL    = "https://www.ryanair.com/api/farfnd/v4/oneWayFares"
)

// Default client settings.
const (
	DefaultTimeout           = 15 * time.Second
	DefaultRequestsPerSecond = 10
	DefaultBurst             = 20
	maxBodyBytes             = 32 << 20
)

// Config holds the upstream client settings.
type Config struct {
	RoutesURL   string
	AirportsURL string
	FaresURL    string

	// Currency is requested on every fare call
	Currency string

	// FareTimeout bounds a single fare request
	FareTimeout time.Duration

	// ReferenceTimeout bounds a single routes or airports request
	ReferenceTimeout time.Duration

	// RequestsPerSecond and Burst configure the shared token bucket
	RequestsPerSecond float64
	Burst             int

	UserAgent string
}

// DefaultConfig returns the production endpoints and limits.
func DefaultConfig() Config {
	return Config{
		RoutesURL:         DefaultRoutesURL,
		AirportsURL:       DefaultAirportsURL,
		FaresURL:          DefaultFaresURL,
		Currency:          domain.DefaultCurrency,
		FareTimeout:       DefaultTimeout,
		ReferenceTimeout:  DefaultTimeout,
		RequestsPerSecond: DefaultRequestsPerSecond,
		Burst:             DefaultBurst,
		UserAgent:         "wandrly-api/1.0",
	}
}

// Client performs rate-limited JSON GETs against the upstream. It is safe for
// concurrent use; every search shares its limiter.
type Client struct {
	cfg     Config
	http    *http.Client
	limiter *rate.Limiter
	log     *logger.Logger
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) ClientOption {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// WithLogger sets the client logger.
func WithLogger(log *logger.Logger) ClientOption {
	return func(c *Client) {
		if log != nil {
			c.log = log.WithComponent(ProviderName)
		}
	}
}

// NewClient creates a Client. Zero fields of cfg take their defaults.
func NewClient(cfg Config, opts ...ClientOption) *Client {
	def := DefaultConfig()
	if cfg.RoutesURL == "" {
		cfg.RoutesURL = def.RoutesURL
	}
	if cfg.AirportsURL == "" {
		cfg.AirportsURL = def.AirportsURL
	}
	if cfg.FaresURL == "" {
		cfg.FaresURL = def.FaresURL
	}
	if cfg.Currency == "" {
		cfg.Currency = def.Currency
	}
	if cfg.FareTimeout <= 0 {
		cfg.FareTimeout = def.FareTimeout
	}
	if cfg.ReferenceTimeout <= 0 {
		cfg.ReferenceTimeout = def.ReferenceTimeout
	}
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = def.RequestsPerSecond
	}
	if cfg.Burst <= 0 {
		cfg.Burst = def.Burst
	}

	c := &Client{
		cfg:     cfg,
		http:    &http.Client{},
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.Burst),
		log:     logger.Nop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Config returns the effective client configuration.
func (c *Client) Config() Config {
	return c.cfg
}

// getJSON fetches rawURL with query appended, decodes the body into out and
// returns the raw body.
func (c *Client) getJSON(ctx context.Context, operation, rawURL string, query url.Values, timeout time.Duration, out interface{}) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, c.contextError(ctx, operation, err)
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, domain.NewProviderError(ProviderName, operation, err)
	}
	if len(query) > 0 {
		q := u.Query()
		for k, vs := range query {
			for _, v := range vs {
				q.Add(k, v)
			}
		}
		u.RawQuery = q.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, domain.NewProviderError(ProviderName, operation, err)
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.UserAgent != "" {
		req.Header.Set("User-Agent", c.cfg.UserAgent)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, c.contextError(ctx, operation, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, c.contextError(ctx, operation, err)
	}

	c.log.Debug().
		Str("operation", operation).
		Str("url", u.String()).
		Int("status", resp.StatusCode).
		Dur("elapsed", time.Since(start)).
		Msg("upstream request")

	if resp.StatusCode != http.StatusOK {
		return nil, domain.NewProviderStatusError(ProviderName, operation, resp.StatusCode)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return nil, domain.NewProviderError(ProviderName, operation, fmt.Errorf("%w: %v", domain.ErrMalformedPayload, err))
	}
	return body, nil
}

// contextError maps deadline expiry to ErrProviderTimeout.
func (c *Client) contextError(ctx context.Context, operation string, err error) error {
	if errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(err, context.DeadlineExceeded) {
		return domain.NewProviderTimeoutError(ProviderName, operation)
	}
	return domain.NewProviderError(ProviderName, operation, err)
}
