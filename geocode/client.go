// Copyright 2026 The WareOnGo Authors
// SPDX-License-Identifier: Apache-2.0

package geocode

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"math/rand"
	"net"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"
	"golang.org/x/time/rate"

	"github.com/wareongo/wareongo/spatial"
	"github.com/wareongo/wareongo/utils/httputils"
	"github.com/wareongo/wareongo/utils/strutils"
)

const (
	defaultBaseURL   = "https://nominatim.openstreetmap.org/search"
	defaultUserAgent = "wareongo/1.0 (warehouse location map)"

	defaultCacheTTL    = 24 * time.Hour
	defaultTimeout     = 10 * time.Second
	defaultMaxAttempts = 3
	defaultBaseBackoff = time.Second
	maxBackoff         = 30 * time.Second
	maxJitter          = time.Second

	// Nominatim's usage policy allows at most one request per second,
	// enforced here across all keys rather than reactively on 429s.
	defaultRequestsPerSecond = 1
)

// indiaCenter is the hardcoded country fallback when every finer strategy
// comes up empty.
var indiaCenter = Result{
	Point:       spatial.Point{Lat: 20.5937, Lng: 78.9629},
	Accuracy:    AccuracyApproximate,
	DisplayName: "India (approximate center)",
}

// ApproximateIndiaCenter returns the country-center fallback result,
// for callers that must render something when resolution fails outright.
func ApproximateIndiaCenter() *Result {
	result := indiaCenter

	return &result
}

// ClientOptions configuration for the geocoding client.
type ClientOptions struct {
	// BaseURL of the geocoding search endpoint
	BaseURL string

	// UserAgent is the User-Agent header to use in HTTP requests
	UserAgent string

	// CacheTTL overrides the 24h result cache expiry
	CacheTTL time.Duration

	// MaxAttempts per strategy call, including the first
	MaxAttempts int

	// BaseBackoff is the first retry delay, doubled per attempt
	BaseBackoff time.Duration

	// RequestsPerSecond caps outgoing calls across all keys
	RequestsPerSecond float64

	// Enables light tracing of HTTP requests and responses
	EnableHTTPTrace bool
}

// Client resolves location queries against a Nominatim-style endpoint
// with caching, in-flight de-duplication, throttling, and a tiered
// fallback chain. Each instance owns its cache and in-flight registry and
// is safe for concurrent use.
type Client struct {
	baseURL     string
	client      *http.Client
	cache       *resultCache
	group       singleflight.Group
	limiter     *rate.Limiter
	maxAttempts int
	baseBackoff time.Duration
	pending     atomic.Int64

	now    func() time.Time
	sleep  func(ctx context.Context, d time.Duration) error
	jitter func() time.Duration
}

// NewClient creates a geocoding client with the provided options.
func NewClient(options *ClientOptions) *Client {
	if options == nil {
		options = &ClientOptions{}
	}

	baseURL := options.BaseURL
	if baseURL == "" {
		baseURL = defaultBaseURL
	}

	userAgent := options.UserAgent
	if userAgent == "" {
		userAgent = defaultUserAgent
	}

	cacheTTL := options.CacheTTL
	if cacheTTL <= 0 {
		cacheTTL = defaultCacheTTL
	}

	maxAttempts := options.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = defaultMaxAttempts
	}

	baseBackoff := options.BaseBackoff
	if baseBackoff <= 0 {
		baseBackoff = defaultBaseBackoff
	}

	rps := options.RequestsPerSecond
	if rps <= 0 {
		rps = defaultRequestsPerSecond
	}

	var httpLogWriter io.Writer
	if options.EnableHTTPTrace {
		httpLogWriter = os.Stderr
	}

	transport := &httputils.AppendRequestHeadersRoundTripper{
		Headers: map[string]string{
			"User-Agent": userAgent,
			"Accept":     "application/json",
		},
		Transport: &httputils.LoggingRoundTripper{
			Writer:    httpLogWriter,
			Transport: http.DefaultTransport,
		},
	}

	return &Client{
		baseURL: baseURL,
		client: &http.Client{
			Timeout:   defaultTimeout,
			Transport: transport,
		},
		cache:       newResultCache(cacheTTL),
		limiter:     rate.NewLimiter(rate.Limit(rps), 1),
		maxAttempts: maxAttempts,
		baseBackoff: baseBackoff,
		now:         time.Now,
		sleep: func(ctx context.Context, d time.Duration) error {
			timer := time.NewTimer(d)
			defer timer.Stop()

			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-timer.C:
				return nil
			}
		},
		jitter: func() time.Duration {
			return time.Duration(rand.Int63n(int64(maxJitter)))
		},
	}
}

// Resolve turns a location query into coordinates. Repeated queries
// within the cache TTL are served without network access, and concurrent
// identical queries share a single upstream exchange.
func (c *Client) Resolve(ctx context.Context, query Query) (*Result, error) {
	if err := validateQuery(&query); err != nil {
		return nil, err
	}

	key := cacheKey(query)

	if result, ok := c.cache.get(key, c.now()); ok {
		return result, nil
	}

	c.pending.Add(1)
	defer c.pending.Add(-1)

	v, err, _ := c.group.Do(key, func() (any, error) {
		// A concurrent caller may have populated the cache while this
		// call waited on the flight group
		if result, ok := c.cache.get(key, c.now()); ok {
			return result, nil
		}

		result, err := c.resolveWithFallback(ctx, query)
		if err != nil {
			return nil, err
		}

		c.cache.put(key, result, c.now())

		return result, nil
	})
	if err != nil {
		return nil, err
	}

	return v.(*Result), nil
}

// resolveWithFallback tries strategies from finest to coarsest, stopping
// at the first that yields structurally valid coordinates. A strategy
// error is logged and skipped; only the final country fallback is fatal.
func (c *Client) resolveWithFallback(ctx context.Context, query Query) (*Result, error) {
	strategies := []struct {
		accuracy Accuracy
		text     string
		enabled  bool
	}{
		{AccuracyPostal, fmt.Sprintf("%s %s, %s, %s", query.PostalCode, query.City, query.State, query.Country), query.PostalCode != ""},
		{AccuracyCity, fmt.Sprintf("%s, %s, %s", query.City, query.State, query.Country), true},
		{AccuracyState, fmt.Sprintf("%s, %s", query.State, query.Country), true},
	}

	var lastErr error

	for _, strategy := range strategies {
		if !strategy.enabled {
			continue
		}

		point, displayName, err := c.fetch(ctx, sanitizeQuery(strategy.text))
		if err != nil {
			log.Printf("geocoding strategy %q failed: %v", strategy.accuracy, err)

			lastErr = err

			continue
		}

		if point == nil { // zero results, try the next coarser strategy
			continue
		}

		if !point.Valid() {
			log.Printf("geocoding strategy %q returned out-of-range coordinates %v, skipping", strategy.accuracy, point)

			continue
		}

		if !point.InIndia() {
			log.Printf("geocoding result %v appears to be outside India", point)
		}

		return &Result{
			Point:       *point,
			Accuracy:    strategy.accuracy,
			DisplayName: displayName,
		}, nil
	}

	result, err := c.defaultLocation(ctx, query.Country)
	if err != nil {
		if lastErr == nil {
			lastErr = err
		}

		return nil, &GeocodingError{
			Type:    ErrorTypeNotFound,
			Message: "unable to geocode location with any available strategy",
			Err:     lastErr,
		}
	}

	return result, nil
}

// defaultLocation is the last tier of the fallback chain: a fixed center
// for India, a geocoded country centroid otherwise, and the world origin
// when even the country is unknown upstream.
func (c *Client) defaultLocation(ctx context.Context, country string) (*Result, error) {
	if strutils.LowerASCIIFolding(country) == "india" {
		result := indiaCenter

		return &result, nil
	}

	point, displayName, err := c.fetch(ctx, sanitizeQuery(country))
	if err != nil {
		return nil, err
	}

	if point == nil || !point.Valid() {
		return &Result{
			Point:       spatial.Point{},
			Accuracy:    AccuracyApproximate,
			DisplayName: "World center (fallback)",
		}, nil
	}

	return &Result{
		Point:       *point,
		Accuracy:    AccuracyApproximate,
		DisplayName: displayName,
	}, nil
}

// fetch performs one logical geocoding call: up to maxAttempts HTTP
// exchanges with exponential backoff on transient failures. A nil point
// with nil error means the upstream had zero results.
func (c *Client) fetch(ctx context.Context, query string) (*spatial.Point, string, error) {
	var lastErr error

	for attempt := 0; attempt < c.maxAttempts; attempt++ {
		if attempt > 0 {
			if err := c.sleep(ctx, c.backoffDelay(attempt-1)); err != nil {
				return nil, "", err
			}
		}

		point, displayName, err := c.fetchOnce(ctx, query)
		if err == nil {
			return point, displayName, nil
		}

		lastErr = err

		if !IsRetryable(err) {
			return nil, "", err
		}
	}

	return nil, "", lastErr
}

// backoffDelay computes min(base * 2^attempt + jitter, 30s).
func (c *Client) backoffDelay(attempt int) time.Duration {
	delay := c.baseBackoff << uint(attempt)

	delay += c.jitter()
	if delay > maxBackoff {
		delay = maxBackoff
	}

	return delay
}

// nominatimResult is the subset of the search response the client needs.
// Nominatim serializes coordinates as strings.
type nominatimResult struct {
	Lat         string `json:"lat"`
	Lon         string `json:"lon"`
	DisplayName string `json:"display_name"`
}

func (c *Client) fetchOnce(ctx context.Context, query string) (*spatial.Point, string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, "", &GeocodingError{
			Type:    ErrorTypeTimeout,
			Message: "waiting for rate limiter",
			Err:     err,
		}
	}

	params := url.Values{}
	params.Set("q", query)
	params.Set("format", "json")
	params.Set("limit", "1")
	params.Set("addressdetails", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, "", &GeocodingError{
			Type:    ErrorTypeInvalidRequest,
			Message: "building geocoding request",
			Err:     err,
		}
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, "", classifyTransportError(err)
	}

	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", ClassifyHTTPError(resp.StatusCode)
	}

	var results []nominatimResult
	if err := json.NewDecoder(resp.Body).Decode(&results); err != nil {
		return nil, "", &GeocodingError{
			Type:    ErrorTypeParse,
			Message: "invalid response format from geocoding service",
			Err:     err,
		}
	}

	if len(results) == 0 {
		return nil, "", nil
	}

	lat, latErr := strconv.ParseFloat(results[0].Lat, 64)
	lng, lngErr := strconv.ParseFloat(results[0].Lon, 64)

	if latErr != nil || lngErr != nil {
		return nil, "", &GeocodingError{
			Type:    ErrorTypeInvalidCoordinates,
			Message: fmt.Sprintf("invalid coordinates received from geocoding service: lat=%q lon=%q", results[0].Lat, results[0].Lon),
		}
	}

	return &spatial.Point{Lat: lat, Lng: lng}, results[0].DisplayName, nil
}

// classifyTransportError distinguishes timeouts from other network-level
// failures; both are retryable.
func classifyTransportError(err error) *GeocodingError {
	var netErr net.Error
	if (errors.As(err, &netErr) && netErr.Timeout()) || errors.Is(err, context.DeadlineExceeded) {
		return &GeocodingError{
			Type:    ErrorTypeTimeout,
			Message: "geocoding request timed out",
			Err:     err,
		}
	}

	return &GeocodingError{
		Type:    ErrorTypeNetwork,
		Message: "unable to connect to geocoding service",
		Err:     err,
	}
}

// Stats is a snapshot of the client's internal state.
type Stats struct {
	CacheSize int   `json:"cache_size"`
	Pending   int64 `json:"pending_requests"`
}

// Stats returns cache and in-flight counters, mostly for health reporting.
func (c *Client) Stats() Stats {
	return Stats{
		CacheSize: c.cache.size(),
		Pending:   c.pending.Load(),
	}
}

// ClearCache drops every cached result.
func (c *Client) ClearCache() {
	c.cache.clear()
}

// Health status values reported by Health.
const (
	HealthHealthy   = "healthy"
	HealthDegraded  = "degraded"
	HealthUnhealthy = "unhealthy"
)

// Health probes the upstream with a country-level query. Degraded means
// the service answered with zero results, unhealthy that it failed.
func (c *Client) Health(ctx context.Context) (string, Stats) {
	point, _, err := c.fetch(ctx, DefaultCountry)

	switch {
	case err != nil:
		return HealthUnhealthy, c.Stats()
	case point == nil:
		return HealthDegraded, c.Stats()
	default:
		return HealthHealthy, c.Stats()
	}
}
