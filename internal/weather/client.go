// Package weather provides a read-only client for the upstream weather
// service (weatherapi.com).
//
// The client is the server-side half of the weather display: it holds the
// API credential and talks to the third-party service so the credential
// never reaches daybook clients. Errors returned from this package are
// scrubbed of the request URL (which carries the key in a query parameter)
// and of raw upstream payloads.
package weather

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"net/url"
	"time"
)

// DefaultBaseURL is the production weatherapi.com endpoint.
const DefaultBaseURL = "https://api.weatherapi.com/v1"

// Client queries the upstream weather service for current conditions.
type Client struct {
	baseURL string
	key     string
	city    string
	http    *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the upstream endpoint. Used by tests.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient overrides the underlying HTTP client.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) { c.http = h }
}

// NewClient creates a weather client for the given API key and city.
func NewClient(key, city string, opts ...Option) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		key:     key,
		city:    city,
		http: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// currentResponse is the subset of the upstream current.json payload we use.
type currentResponse struct {
	Current struct {
		TempF float64 `json:"temp_f"`
	} `json:"current"`
	Error *struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	} `json:"error"`
}

// Current returns the current temperature for the configured city, rounded
// to the nearest whole degree Fahrenheit.
func (c *Client) Current(ctx context.Context) (int, error) {
	if c.key == "" {
		return 0, errors.New("weather api key not configured")
	}

	u, err := url.Parse(c.baseURL + "/current.json")
	if err != nil {
		return 0, fmt.Errorf("invalid weather base url: %w", err)
	}
	q := u.Query()
	q.Set("key", c.key)
	q.Set("q", c.city)
	q.Set("aqi", "no")
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return 0, fmt.Errorf("failed to build weather request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		// url.Error embeds the full request URL, key included. Unwrap
		// so the credential cannot end up in logs.
		var uerr *url.Error
		if errors.As(err, &uerr) {
			return 0, fmt.Errorf("weather request failed: %w", uerr.Err)
		}
		return 0, fmt.Errorf("weather request failed: %w", err)
	}
	defer resp.Body.Close()

	var data currentResponse
	if err := json.NewDecoder(resp.Body).Decode(&data); err != nil {
		return 0, fmt.Errorf("failed to decode weather response: %w", err)
	}

	if data.Error != nil {
		return 0, fmt.Errorf("weather upstream error (code %d)", data.Error.Code)
	}
	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("weather upstream status %s", resp.Status)
	}

	return int(math.Round(data.Current.TempF)), nil
}
