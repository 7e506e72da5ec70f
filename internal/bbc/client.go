// SPDX-License-Identifier: MIT

// Package bbc talks to the BBC schedule backends: the iBL broadcasts API for
// television and the Sounds web front-end for radio.
package bbc

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	xglog "github.com/ManuGH/ipwww-iptv/internal/log"
	"github.com/ManuGH/ipwww-iptv/internal/metrics"
	"github.com/ManuGH/ipwww-iptv/internal/platform/httpx"
	"github.com/ManuGH/ipwww-iptv/internal/resilience"
)

const (
	DefaultIBLBaseURL    = "https://ibl.api.bbc.co.uk/ibl/v1"
	DefaultSoundsBaseURL = "https://www.bbc.co.uk/sounds"
	DefaultBootstrapPath = "/schedules/bbc_radio_one"
	DefaultUserAgent     = "ipwww-iptv/1.0"

	defaultMaxBodyBytes = 16 << 20
)

// Fetcher performs a single request and returns the response body.
type Fetcher interface {
	Fetch(ctx context.Context, method, rawURL string) ([]byte, error)
}

// Options configures a Client. Zero values fall back to the defaults above.
type Options struct {
	IBLBaseURL    string
	SoundsBaseURL string
	BootstrapPath string
	UserAgent     string
	Timeout       time.Duration

	// RateLimit is the sustained request rate per second; zero disables limiting.
	RateLimit float64
	Burst     int

	BreakerThreshold int
	BreakerReset     time.Duration
	MaxBodyBytes     int64
}

// Client is the HTTP implementation of Fetcher plus the typed schedule calls.
type Client struct {
	opts    Options
	http    *http.Client
	limiter *rate.Limiter

	// one breaker per backend, so a Sounds outage leaves TV schedules flowing
	breakers map[string]*resilience.CircuitBreaker
}

var backends = []string{"ibl", "sounds", "other"}

// New builds a client with a traced, hardened transport.
func New(opts Options) *Client {
	opts = opts.withDefaults()

	limit := rate.Inf
	if opts.RateLimit > 0 {
		limit = rate.Limit(opts.RateLimit)
	}

	breakers := make(map[string]*resilience.CircuitBreaker, len(backends))
	for _, b := range backends {
		breakers[b] = resilience.NewCircuitBreaker("bbc_"+b, opts.BreakerThreshold, opts.BreakerReset,
			resilience.WithFailureFilter(countsTowardsBreaker))
	}

	return &Client{
		opts:     opts,
		http:     httpx.NewTracedClient(opts.Timeout),
		limiter:  rate.NewLimiter(limit, opts.Burst),
		breakers: breakers,
	}
}

func (o Options) withDefaults() Options {
	if o.IBLBaseURL == "" {
		o.IBLBaseURL = DefaultIBLBaseURL
	}
	if o.SoundsBaseURL == "" {
		o.SoundsBaseURL = DefaultSoundsBaseURL
	}
	if o.BootstrapPath == "" {
		o.BootstrapPath = DefaultBootstrapPath
	}
	if o.UserAgent == "" {
		o.UserAgent = DefaultUserAgent
	}
	if o.Burst <= 0 {
		o.Burst = 1
	}
	if o.MaxBodyBytes <= 0 {
		o.MaxBodyBytes = defaultMaxBodyBytes
	}
	o.IBLBaseURL = strings.TrimRight(o.IBLBaseURL, "/")
	o.SoundsBaseURL = strings.TrimRight(o.SoundsBaseURL, "/")
	return o
}

// Fetch issues one request and returns the body of a 2xx response. Any other
// outcome is an *APIError wrapping one of the package sentinels.
func (c *Client) Fetch(ctx context.Context, method, rawURL string) ([]byte, error) {
	return c.fetch(ctx, c.backendOf(rawURL), strings.ToLower(method), method, rawURL)
}

func (c *Client) backendOf(rawURL string) string {
	switch {
	case strings.HasPrefix(rawURL, c.opts.IBLBaseURL):
		return "ibl"
	case strings.HasPrefix(rawURL, c.opts.SoundsBaseURL):
		return "sounds"
	default:
		return "other"
	}
}

func (c *Client) fetch(ctx context.Context, backend, op, method, rawURL string) ([]byte, error) {
	logger := xglog.WithComponentFromContext(ctx, "bbc")

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, wrapError(op, rawURL, err, 0, nil)
	}

	var body []byte
	err := c.breakers[backend].Execute(func() error {
		var err error
		body, err = c.do(ctx, op, method, rawURL)
		return err
	})
	if errors.Is(err, resilience.ErrCircuitOpen) {
		err = &APIError{Sentinel: ErrUpstreamUnavailable, Operation: op, URL: rawURL, Err: err}
	}

	metrics.RecordUpstreamRequest(backend, err == nil)
	if err != nil {
		logger.Debug().Err(err).
			Str(xglog.FieldOperation, op).
			Str(xglog.FieldURL, rawURL).
			Msg("upstream request failed")
		return nil, err
	}
	return body, nil
}

func (c *Client) do(ctx context.Context, op, method, rawURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("bbc: %s: build request: %w", op, err)
	}
	req.Header.Set("User-Agent", c.opts.UserAgent)
	req.Header.Set("Accept", "application/json, text/html;q=0.9")

	res, err := c.http.Do(req)
	if err != nil {
		return nil, wrapError(op, rawURL, err, 0, nil)
	}
	defer func() { _ = res.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(res.Body, c.opts.MaxBodyBytes))
	if err != nil {
		return nil, wrapError(op, rawURL, err, 0, nil)
	}
	if res.StatusCode < 200 || res.StatusCode > 299 {
		return nil, wrapError(op, rawURL, nil, res.StatusCode, body)
	}
	return body, nil
}

// CloseIdleConnections releases pooled keep-alive connections.
func (c *Client) CloseIdleConnections() {
	c.http.CloseIdleConnections()
}
