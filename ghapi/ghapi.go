// Package ghapi is a minimal client for the GitHub REST v3 API, covering the
// user-graph endpoints (followers, following, profiles, and the authenticated
// user's "following" relationship).
package ghapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/carlmjohnson/versioninfo"
	"github.com/hashicorp/go-retryablehttp"
)

const defaultHost = "https://api.github.com"

type Client struct {
	// Client is an HTTP client to use. If not set, defaults to RobustHTTPClient().
	Client    *http.Client
	Host      string
	Token     string
	UserAgent *string
	Headers   map[string]string
}

func (c *Client) getClient() *http.Client {
	if c.Client == nil {
		return RobustHTTPClient()
	}
	return c.Client
}

func (c *Client) getHost() string {
	if c.Host == "" {
		return defaultHost
	}
	return c.Host
}

// Generates an HTTP client with decent general-purpose defaults around
// timeouts and retries. The returned client has the stdlib http.Client
// interface, but has Hashicorp retryablehttp logic internally.
//
// This client will retry on connection errors, 5xx status (except 501), and
// 429 Backoff requests (respecting 'Retry-After' header).
func RobustHTTPClient() *http.Client {
	retryClient := retryablehttp.NewClient()
	retryClient.RetryMax = 3
	retryClient.RetryWaitMin = 1 * time.Second
	retryClient.RetryWaitMax = 10 * time.Second
	retryClient.Logger = nil
	client := retryClient.StandardClient()
	client.Timeout = 20 * time.Second
	return client
}

// APIError is the JSON error body returned by the GitHub API.
type APIError struct {
	Message          string `json:"message"`
	DocumentationURL string `json:"documentation_url,omitempty"`
}

func (ae *APIError) Error() string {
	return ae.Message
}

type Error struct {
	StatusCode int
	Wrapped    error
	Ratelimit  *RatelimitInfo
}

func (e *Error) Error() string {
	if e.Wrapped == nil {
		return fmt.Sprintf("ghapi error %d", e.StatusCode)
	}
	if e.IsThrottled() && e.Ratelimit != nil {
		return fmt.Sprintf("ghapi error %d: %s (throttled until %s)", e.StatusCode, e.Wrapped, e.Ratelimit.Reset.Local())
	}
	return fmt.Sprintf("ghapi error %d: %s", e.StatusCode, e.Wrapped)
}

func (e *Error) Unwrap() error {
	if e.Wrapped == nil {
		return nil
	}
	return e.Wrapped
}

// IsNotFound indicates a definitive 404 from the API: the entity (or the
// following relationship) does not exist. Distinct from transport failures.
func (e *Error) IsNotFound() bool {
	return e.StatusCode == http.StatusNotFound
}

// IsThrottled indicates a rate-limit response. GitHub signals primary limit
// exhaustion with 403 plus a zeroed x-ratelimit-remaining header, and
// secondary limits with 429.
func (e *Error) IsThrottled() bool {
	if e.StatusCode == http.StatusTooManyRequests {
		return true
	}
	return e.StatusCode == http.StatusForbidden && e.Ratelimit != nil && e.Ratelimit.Remaining == 0
}

type RatelimitInfo struct {
	Limit     int
	Remaining int
	Resource  string
	Reset     time.Time
}

func errorFromHTTPResponse(resp *http.Response, err error) error {
	r := &Error{
		StatusCode: resp.StatusCode,
		Wrapped:    err,
	}
	if resp.Header.Get("x-ratelimit-limit") != "" {
		r.Ratelimit = &RatelimitInfo{
			Resource: resp.Header.Get("x-ratelimit-resource"),
		}
		if n, err := strconv.ParseInt(resp.Header.Get("x-ratelimit-reset"), 10, 64); err == nil {
			r.Ratelimit.Reset = time.Unix(n, 0)
		}
		if n, err := strconv.ParseInt(resp.Header.Get("x-ratelimit-limit"), 10, 64); err == nil {
			r.Ratelimit.Limit = int(n)
		}
		if n, err := strconv.ParseInt(resp.Header.Get("x-ratelimit-remaining"), 10, 64); err == nil {
			r.Ratelimit.Remaining = int(n)
		}
	}
	return r
}

// makeParams converts a map of string keys and any values into a URL-encoded
// string. Generally the values will be strings, numbers, or booleans.
func makeParams(p map[string]any) string {
	params := url.Values{}
	for k, v := range p {
		params.Add(k, fmt.Sprint(v))
	}
	return params.Encode()
}

// Do sends a single API request and decodes a 2xx JSON response body into out
// (when out is non-nil). Responses outside 2xx are returned as *Error; 204 No
// Content is a success with no body.
func (c *Client) Do(ctx context.Context, method, path string, params map[string]any, out any) error {
	var paramStr string
	if len(params) > 0 {
		paramStr = "?" + makeParams(params)
	}

	uri := c.getHost() + path + paramStr

	req, err := http.NewRequestWithContext(ctx, method, uri, nil)
	if err != nil {
		return err
	}

	req.Header.Set("Accept", "application/vnd.github.v3+json")
	if c.UserAgent != nil {
		req.Header.Set("User-Agent", *c.UserAgent)
	} else {
		req.Header.Set("User-Agent", "preen/"+versioninfo.Short())
	}
	if c.Token != "" {
		req.Header.Set("Authorization", "token "+c.Token)
	}
	for k, v := range c.Headers {
		req.Header.Set(k, v)
	}

	resp, err := c.getClient().Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		var ae APIError
		if err := json.NewDecoder(resp.Body).Decode(&ae); err != nil {
			return errorFromHTTPResponse(resp, fmt.Errorf("failed to decode error message: %w", err))
		}
		return errorFromHTTPResponse(resp, &ae)
	}

	if out != nil && resp.StatusCode != http.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decoding response: %w", err)
		}
	}

	return nil
}
