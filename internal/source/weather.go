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
)

// WeatherClient fetches per-hour historical weather documents keyed by
// coordinates and date.
type WeatherClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	logger     *slog.Logger
}

// NewWeatherClient creates a weather history client.
func NewWeatherClient(baseURL, apiKey string, timeout time.Duration, logger *slog.Logger) *WeatherClient {
	if logger == nil {
		logger = slog.Default()
	}
	return &WeatherClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    baseURL,
		apiKey:     apiKey,
		logger:     logger,
	}
}

// FetchHistory returns the raw weather history document for a location and
// calendar date. The hour narrows the provider's response to a single
// forecast hour where supported; the extractor still selects the closest hour
// from whatever comes back.
func (c *WeatherClient) FetchHistory(ctx context.Context, lat, lon float64, day time.Time, hour int) ([]byte, error) {
	params := url.Values{
		"key": {c.apiKey},
		"q":   {fmt.Sprintf("%.4f,%.4f", lat, lon)},
		"dt":  {day.Format("2006-01-02")},
	}
	if hour >= 0 && hour <= 23 {
		params.Set("hour", fmt.Sprintf("%d", hour))
	}

	u := c.baseURL + "/history.json?" + params.Encode()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrWeatherUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrWeatherUnavailable, err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Debug("weather history miss",
			"status", resp.StatusCode,
			"date", day.Format("2006-01-02"),
		)
		return nil, fmt.Errorf("%w: history returned %d", ErrWeatherUnavailable, resp.StatusCode)
	}

	if !json.Valid(body) {
		return nil, fmt.Errorf("%w: history returned non-JSON payload", ErrFormatUnrecognized)
	}

	return body, nil
}
