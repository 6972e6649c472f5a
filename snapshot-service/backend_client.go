package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"office-dashboard/shared"
)

// Backend is the energy backend as seen by the refresher.
type Backend interface {
	SeatingArrangement(ctx context.Context) (shared.SeatingArrangement, error)
	SeatingSuggestions(ctx context.Context) (shared.SeatingSuggestion, error)
	LaptopUsage(ctx context.Context) ([]shared.LaptopUsage, error)
	Lighting(ctx context.Context) ([]shared.LightingZone, error)
	HVAC(ctx context.Context) ([]shared.HVACZone, error)
}

// BackendClient handles communication with the energy backend
type BackendClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewBackendClient creates a new energy backend client
func NewBackendClient(baseURL string, timeout time.Duration) *BackendClient {
	return &BackendClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// SeatingArrangement fetches the zones and seats
func (bc *BackendClient) SeatingArrangement(ctx context.Context) (shared.SeatingArrangement, error) {
	var out shared.SeatingArrangement
	err := bc.getJSON(ctx, shared.BackendSeatingArrangement, &out)
	return out, err
}

// SeatingSuggestions fetches the suggested moves
func (bc *BackendClient) SeatingSuggestions(ctx context.Context) (shared.SeatingSuggestion, error) {
	var out shared.SeatingSuggestion
	err := bc.getJSON(ctx, shared.BackendSeatingSuggestions, &out)
	return out, err
}

// LaptopUsage fetches per-employee laptop records
func (bc *BackendClient) LaptopUsage(ctx context.Context) ([]shared.LaptopUsage, error) {
	var out []shared.LaptopUsage
	err := bc.getJSON(ctx, shared.BackendLaptopUsage, &out)
	return out, err
}

// Lighting fetches per-zone lighting state
func (bc *BackendClient) Lighting(ctx context.Context) ([]shared.LightingZone, error) {
	var out []shared.LightingZone
	err := bc.getJSON(ctx, shared.BackendLighting, &out)
	return out, err
}

// HVAC fetches per-zone HVAC state
func (bc *BackendClient) HVAC(ctx context.Context) ([]shared.HVACZone, error) {
	var out []shared.HVACZone
	err := bc.getJSON(ctx, shared.BackendHVAC, &out)
	return out, err
}

// getJSON makes a GET request to the backend and decodes the body into out
func (bc *BackendClient) getJSON(ctx context.Context, endpoint string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, bc.baseURL+endpoint, nil)
	if err != nil {
		return fmt.Errorf("failed to create request for %s: %w", endpoint, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := bc.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("backend returned status %d for %s: %s", resp.StatusCode, endpoint, strings.TrimSpace(string(body)))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s: %w", endpoint, err)
	}
	return nil
}
