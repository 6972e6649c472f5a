package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"office-dashboard/dashboard"
	"office-dashboard/shared"
)

// ErrNotFound is returned when the snapshot service has no such chart or zone.
var ErrNotFound = errors.New("not found")

// DashboardSource is what the hub and clients read views from.
type DashboardSource interface {
	FetchSeating(ctx context.Context) (dashboard.SeatingView, error)
	FetchChart(ctx context.Context, name, kind, title string) (dashboard.ChartView, error)
}

// DashboardClient handles communication with the snapshot service
type DashboardClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewDashboardClient creates a new snapshot service client
func NewDashboardClient(baseURL string) *DashboardClient {
	return &DashboardClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
	}
}

// FetchSeating fetches the annotated seating view
func (dc *DashboardClient) FetchSeating(ctx context.Context) (dashboard.SeatingView, error) {
	var view dashboard.SeatingView
	if err := dc.getJSON(ctx, shared.APIEndpointSeating, &view); err != nil {
		return dashboard.SeatingView{}, fmt.Errorf("failed to fetch seating: %w", err)
	}
	return view, nil
}

// FetchChart fetches one render-ready chart. Empty kind or title keep the
// chart's defaults.
func (dc *DashboardClient) FetchChart(ctx context.Context, name, kind, title string) (dashboard.ChartView, error) {
	query := url.Values{}
	if kind != "" {
		query.Set("kind", kind)
	}
	if title != "" {
		query.Set("title", title)
	}
	endpoint := shared.APIEndpointCharts + "/" + url.PathEscape(name)
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var view dashboard.ChartView
	if err := dc.getJSON(ctx, endpoint, &view); err != nil {
		return dashboard.ChartView{}, fmt.Errorf("failed to fetch chart %s: %w", name, err)
	}
	return view, nil
}

// HealthCheck verifies the snapshot service is available
func (dc *DashboardClient) HealthCheck(ctx context.Context) error {
	var body map[string]any
	if err := dc.getJSON(ctx, shared.APIEndpointHealth, &body); err != nil {
		return fmt.Errorf("health check failed: %w", err)
	}
	return nil
}

func (dc *DashboardClient) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, dc.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := dc.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		msg := strings.TrimSpace(string(body))
		var errResp shared.ErrorResponse
		if json.Unmarshal(body, &errResp) == nil && errResp.Error != "" {
			msg = errResp.Error
		}
		if resp.StatusCode == http.StatusNotFound {
			return fmt.Errorf("%s: %w", msg, ErrNotFound)
		}
		return fmt.Errorf("server returned status %d: %s", resp.StatusCode, msg)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
