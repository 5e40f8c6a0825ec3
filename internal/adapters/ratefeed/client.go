package ratefeed

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/shopspring/decimal"
)

// Client fetches exchange rates from an external feed exposing the common
// "conversion rates per base currency" shape.
type Client struct {
	http    *http.Client
	baseURL string
}

type feedResponse struct {
	Result          string                     `json:"result"`
	BaseCode        string                     `json:"base_code"`
	ConversionRates map[string]decimal.Decimal `json:"conversion_rates"`
}

// NewClient creates a feed client against baseURL.
func NewClient(httpClient *http.Client, baseURL string) *Client {
	return &Client{http: httpClient, baseURL: baseURL}
}

// GetExchangeRates fetches the conversion rates for the given base currency
// code, keyed by quote currency code.
func (c *Client) GetExchangeRates(ctx context.Context, base string) (map[string]decimal.Decimal, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse feed URL: %w", err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + "/" + base

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create feed request for %q: %w", base, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute feed request for %q: %w", base, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected feed status %d for %q: %s", resp.StatusCode, base, resp.Status)
	}

	var body feedResponse
	if err = json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode feed response for %q: %w", base, err)
	}
	if body.Result != "success" {
		return nil, fmt.Errorf("feed returned non-success result for %q: %s", base, body.Result)
	}

	return body.ConversionRates, nil
}
