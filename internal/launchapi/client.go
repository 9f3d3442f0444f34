// Package launchapi is a thin client for the Launch Library 2 HTTP API.
package launchapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Nixie-Tech-LLC/launches/internal/model"
)

var (
	// ErrUpstream wraps every transport, status and decoding failure.
	ErrUpstream = errors.New("launch api request failed")
	// ErrEmptyID is returned by GetLaunch when called without an identifier.
	ErrEmptyID = errors.New("launch id is required")
)

// Fetcher is implemented by *Client and faked in tests.
type Fetcher interface {
	GetLaunch(ctx context.Context, id string) (*model.Launch, error)
	SearchLaunches(ctx context.Context, query string) ([]model.LaunchSummary, error)
}

var _ Fetcher = (*Client)(nil)

const (
	DefaultBaseURL     = "https://lldev.thespacedevs.com/2.2.0"
	DefaultUserAgent   = "launches/1.0"
	DefaultTimeout     = 10 * time.Second
	DefaultSearchLimit = 10
	DefaultCacheTTL    = 5 * time.Minute

	maxBodyBytes = 4 << 20
)

// Options configures a Client. Zero values fall back to the defaults above.
type Options struct {
	BaseURL     string
	UserAgent   string
	Timeout     time.Duration
	SearchLimit int
	Cache       Cache
	CacheTTL    time.Duration
	HTTPClient  *http.Client
}

// Client talks to the launch library.
type Client struct {
	baseURL     *url.URL
	http        *http.Client
	userAgent   string
	searchLimit int
	cache       Cache
	cacheTTL    time.Duration
}

// NewClient builds a Client from opts.
func NewClient(opts Options) (*Client, error) {
	base, err := parseBaseURL(opts.BaseURL)
	if err != nil {
		return nil, err
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		timeout := opts.Timeout
		if timeout <= 0 {
			timeout = DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}
	userAgent := strings.TrimSpace(opts.UserAgent)
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}
	limit := opts.SearchLimit
	if limit <= 0 {
		limit = DefaultSearchLimit
	}
	ttl := opts.CacheTTL
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}

	return &Client{
		baseURL:     base,
		http:        httpClient,
		userAgent:   userAgent,
		searchLimit: limit,
		cache:       opts.Cache,
		cacheTTL:    ttl,
	}, nil
}

// GetLaunch fetches one launch. A launch the upstream does not know is
// reported as (nil, nil); only failures return an error.
func (c *Client) GetLaunch(ctx context.Context, id string) (*model.Launch, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, ErrEmptyID
	}

	if id == "." || id == ".." {
		return nil, nil
	}

	rel := &url.URL{
		Path:    "launch/" + id + "/",
		RawPath: "launch/" + url.PathEscape(id) + "/",
	}
	var launch model.Launch
	found, err := c.get(ctx, launchCacheKey(id), rel, &launch)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return &launch, nil
}

// SearchLaunches returns launches matching query in upstream order. An empty
// query lists launches unfiltered.
func (c *Client) SearchLaunches(ctx context.Context, query string) ([]model.LaunchSummary, error) {
	query = strings.TrimSpace(query)

	values := url.Values{}
	values.Set("search", query)
	values.Set("mode", "list")
	values.Set("limit", strconv.Itoa(c.searchLimit))
	rel := &url.URL{Path: "launch/", RawQuery: values.Encode()}

	var result model.SearchResult
	found, err := c.get(ctx, searchCacheKey(query), rel, &result)
	if err != nil {
		return nil, err
	}
	if !found || result.Results == nil {
		return []model.LaunchSummary{}, nil
	}
	return result.Results, nil
}

// get resolves rel against the base URL and decodes the JSON body into dest.
// found is false when the upstream answered 404.
func (c *Client) get(ctx context.Context, cacheKey string, rel *url.URL, dest any) (found bool, err error) {
	if body, ok := c.cached(ctx, cacheKey); ok {
		if err := json.Unmarshal(body, dest); err == nil {
			return true, nil
		}
		log.Warn().Str("key", cacheKey).Msg("discarding undecodable cache entry")
	}

	reqURL := c.baseURL.ResolveReference(rel)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return false, fmt.Errorf("%w: create request: %v", ErrUpstream, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return false, fmt.Errorf("%w: execute request: %w", ErrUpstream, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return false, fmt.Errorf("%w: %s returned status %d", ErrUpstream, rel.String(), resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return false, fmt.Errorf("%w: read response: %w", ErrUpstream, err)
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return false, fmt.Errorf("%w: decode response: %w", ErrUpstream, err)
	}

	c.store(ctx, cacheKey, body)
	return true, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		trimmed = DefaultBaseURL
	}
	u, err := url.Parse(trimmed)
	if err != nil {
		return nil, fmt.Errorf("parse launch api url %q: %w", raw, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("launch api url %q must be absolute", raw)
	}
	// ResolveReference keeps the base path only when it ends in a slash.
	if !strings.HasSuffix(u.Path, "/") {
		u.Path += "/"
	}
	u.RawQuery = ""
	u.Fragment = ""
	return u, nil
}
