package source

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"golang.org/x/time/rate"
)

// Client fetches raw roster, schedule, box-score, and game-log documents from
// the stats provider. Requests share a token-bucket rate limiter so batch
// syncs stay under the provider's request budget.
type Client struct {
	httpClient *http.Client
	baseURL    string
	teamID     string
	limiter    *rate.Limiter
	logger     *slog.Logger
	observe    func(endpoint string, seconds float64)
}

// ClientOption customizes a Client.
type ClientOption func(*Client)

// WithRequestObserver records per-request durations, labeled by endpoint.
func WithRequestObserver(observe func(endpoint string, seconds float64)) ClientOption {
	return func(c *Client) { c.observe = observe }
}

// NewClient creates a stats provider client.
func NewClient(baseURL, teamID string, requestsPerMinute int, timeout time.Duration, logger *slog.Logger, opts ...ClientOption) *Client {
	if logger == nil {
		logger = slog.Default()
	}
	rps := float64(requestsPerMinute) / 60.0
	c := &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		teamID:     teamID,
		limiter:    rate.NewLimiter(rate.Limit(rps), 1),
		logger:     logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// FetchRoster returns the raw roster document for the configured team.
func (c *Client) FetchRoster(ctx context.Context) ([]byte, error) {
	return c.get(ctx, "roster", fmt.Sprintf("/teams/%s/roster", c.teamID), nil)
}

// FetchSchedule returns the raw schedule documents for a season, one per
// season segment (regular season, then postseason).
func (c *Client) FetchSchedule(ctx context.Context, season int) ([][]byte, error) {
	var docs [][]byte
	for _, seasonType := range []string{"2", "3"} { // 2=regular season, 3=postseason
		params := url.Values{
			"season":     {fmt.Sprintf("%d", season)},
			"seasontype": {seasonType},
		}
		doc, err := c.get(ctx, "schedule", fmt.Sprintf("/teams/%s/schedule", c.teamID), params)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// FetchBoxScore returns the raw box-score document for a game, or ErrNotFound
// when the provider has no box score for that id.
func (c *Client) FetchBoxScore(ctx context.Context, gameID string) ([]byte, error) {
	return c.get(ctx, "boxscore", fmt.Sprintf("/summary/%s", gameID), nil)
}

// FetchGameLog returns a player's raw season game-log document.
func (c *Client) FetchGameLog(ctx context.Context, playerID string) ([]byte, error) {
	return c.get(ctx, "gamelog", fmt.Sprintf("/athletes/%s/gamelog", playerID), nil)
}

// get performs one rate-limited GET and classifies failures into the package
// error taxonomy.
func (c *Client) get(ctx context.Context, endpoint, path string, params url.Values) ([]byte, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit wait: %w", err)
	}

	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnavailable, path, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body %s: %v", ErrUnavailable, path, err)
	}

	elapsed := time.Since(start)
	if c.observe != nil {
		c.observe(endpoint, elapsed.Seconds())
	}
	c.logger.Debug("stats provider request",
		"path", path,
		"status", resp.StatusCode,
		"bytes", len(body),
		"duration", elapsed,
	)

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
	case resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: %s returned %d", ErrUnavailable, path, resp.StatusCode)
	case resp.StatusCode != http.StatusOK:
		return nil, fmt.Errorf("%w: %s returned %d: %s", ErrFormatUnrecognized, path, resp.StatusCode, truncate(body, 200))
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: %s returned non-JSON payload", ErrFormatUnrecognized, path)
	}

	return body, nil
}

// truncate returns a bounded string form of a payload for error messages.
func truncate(b []byte, maxLen int) string {
	if len(b) <= maxLen {
		return string(b)
	}
	return string(b[:maxLen]) + "..."
}
