// Package scryfall is the card-reference client: it turns a lookup key into
// canonical card attributes via the Scryfall REST API, pacing every outbound
// request through a single rate gate.
package scryfall

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"deckbuilder/internal/collection"
	"deckbuilder/internal/enrich"
)

const (
	defaultBaseURL = "https://api.scryfall.com"

	// Scryfall rejects requests without an identifying User-Agent.
	defaultUserAgent = "deckbuilder/1.0"

	// Scryfall asks clients to stay under roughly 10 requests per second.
	defaultRateInterval = 100 * time.Millisecond

	defaultRequestTimeout = 30 * time.Second
)

// Client is a rate-limited Scryfall API client. The limiter is shared by all
// calls from one client, including retries, so the pacing holds even under
// retry storms. Construct one per run and pass it into the orchestrator.
type Client struct {
	baseURL    string
	userAgent  string
	httpClient *http.Client
	limiter    *rate.Limiter
}

// Option customizes the client.
type Option func(*Client)

// WithBaseURL overrides the API base (useful for tests/mocks).
func WithBaseURL(base string) Option {
	return func(c *Client) {
		base = strings.TrimSpace(base)
		if base != "" {
			c.baseURL = strings.TrimRight(base, "/")
		}
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		if client != nil {
			c.httpClient = client
		}
	}
}

// WithRateInterval sets the minimum delay between outbound requests.
// Zero or negative disables the gate.
func WithRateInterval(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.limiter = rate.NewLimiter(rate.Every(d), 1)
		} else {
			c.limiter = nil
		}
	}
}

// WithRequestTimeout bounds each individual request.
func WithRequestTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(c *Client) {
		ua = strings.TrimSpace(ua)
		if ua != "" {
			c.userAgent = ua
		}
	}
}

// NewClient constructs a Scryfall client.
func NewClient(opts ...Option) *Client {
	c := &Client{
		baseURL:    defaultBaseURL,
		userAgent:  defaultUserAgent,
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
		limiter:    rate.NewLimiter(rate.Every(defaultRateInterval), 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Resolve fetches the card identified by key and extracts its attributes.
//
// Outcomes: (attrs, nil) on success; *enrich.NotFoundError when the source
// definitively has no such card; *enrich.TransientError on timeouts,
// connection failures, throttling, and server errors; any other error is
// terminal for the key (notably a malformed response body, which is not
// retried).
func (c *Client) Resolve(ctx context.Context, key collection.Key) (collection.Attributes, error) {
	var empty collection.Attributes

	endpoint, err := c.lookupURL(key)
	if err != nil {
		return empty, err
	}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return empty, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return empty, fmt.Errorf("scryfall: build request: %w", err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return empty, ctx.Err()
		}
		return empty, &enrich.TransientError{Err: fmt.Errorf("scryfall: request failed: %w", err)}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return empty, &enrich.TransientError{Err: fmt.Errorf("scryfall: read body: %w", err)}
	}

	switch {
	case resp.StatusCode == http.StatusOK:
		var payload card
		if err := json.Unmarshal(body, &payload); err != nil {
			return empty, fmt.Errorf("scryfall: decode card %s: %w", key.String(), err)
		}
		return payload.attributes(), nil

	case resp.StatusCode == http.StatusNotFound:
		return empty, &enrich.NotFoundError{Key: key.String()}

	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return empty, &enrich.TransientError{Err: httpError(resp.StatusCode, body)}

	default:
		return empty, httpError(resp.StatusCode, body)
	}
}

// lookupURL picks the endpoint for a key: direct ID fetch when the export
// carried a Scryfall ID, set+collector-number fetch when both are known,
// exact-name lookup otherwise.
func (c *Client) lookupURL(key collection.Key) (string, error) {
	switch {
	case key.ByID():
		return url.JoinPath(c.baseURL, "cards", key.ScryfallID)
	case key.SetCode != "" && key.CollectorNumber != "":
		return url.JoinPath(c.baseURL, "cards", key.SetCode, key.CollectorNumber)
	case key.Name != "":
		q := url.Values{"exact": {key.Name}}
		if key.SetCode != "" {
			q.Set("set", key.SetCode)
		}
		return c.baseURL + "/cards/named?" + q.Encode(), nil
	default:
		return "", fmt.Errorf("scryfall: empty lookup key")
	}
}

// apiError is Scryfall's error envelope; Details carries the human-readable
// reason.
type apiError struct {
	Code    string `json:"code"`
	Status  int    `json:"status"`
	Details string `json:"details"`
}

func httpError(status int, body []byte) error {
	var env apiError
	if len(body) > 0 && json.Unmarshal(body, &env) == nil && env.Details != "" {
		return fmt.Errorf("scryfall: http %d: %s", status, strings.TrimSpace(env.Details))
	}
	return fmt.Errorf("scryfall: http %d", status)
}
