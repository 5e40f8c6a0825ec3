package forecast

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	portssvc "github.com/coreledger/erp-backend/internal/core/ports/services"
	"github.com/coreledger/erp-backend/internal/dto"
)

// Client proxies predictive-analytics requests to the external AI service.
// The tenant id is injected into every payload; responses are passed through
// verbatim so the AI service can evolve its contract independently.
type Client struct {
	http    *http.Client
	baseURL string
}

// NewClient creates a forecast client against baseURL with the given timeout.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		http:    &http.Client{Timeout: timeout},
		baseURL: baseURL,
	}
}

var _ portssvc.ForecastSvcFacade = (*Client)(nil)

// DemandForecast requests a demand forecast for a product.
func (c *Client) DemandForecast(ctx context.Context, tenantID string, req dto.DemandForecastRequest) (json.RawMessage, error) {
	return c.post(ctx, "/forecast/demand", tenantID, req)
}

// StockOptimization requests stock level recommendations for a product.
func (c *Client) StockOptimization(ctx context.Context, tenantID string, req dto.StockOptimizationRequest) (json.RawMessage, error) {
	return c.post(ctx, "/forecast/stock-optimization", tenantID, req)
}

// SeasonalPatterns requests a seasonal demand analysis for a product.
func (c *Client) SeasonalPatterns(ctx context.Context, tenantID string, req dto.SeasonalPatternRequest) (json.RawMessage, error) {
	return c.post(ctx, "/forecast/seasonal-patterns", tenantID, req)
}

func (c *Client) post(ctx context.Context, path, tenantID string, payload any) (json.RawMessage, error) {
	if c.baseURL == "" {
		return nil, fmt.Errorf("forecast service is not configured")
	}

	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse forecast service URL: %w", err)
	}
	u.Path = strings.TrimSuffix(u.Path, "/") + path

	body, err := injectTenantID(payload, tenantID)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u.String(), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create forecast request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to call forecast service: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read forecast response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("forecast service returned status %d: %s", resp.StatusCode, string(respBody))
	}

	return json.RawMessage(respBody), nil
}

// injectTenantID marshals the payload and adds the tenantId field the AI
// service partitions by.
func injectTenantID(payload any, tenantID string) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal forecast payload: %w", err)
	}

	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return nil, fmt.Errorf("failed to shape forecast payload: %w", err)
	}
	m["tenantId"] = tenantID

	body, err := json.Marshal(m)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal forecast payload: %w", err)
	}
	return body, nil
}
