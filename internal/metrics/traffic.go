package metrics

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// TrafficPoint is one day of visit counts from the traffic endpoint.
type TrafficPoint struct {
	Date   string `json:"date"`
	Visits int    `json:"visits"`
}

// TrafficCollector fetches the site's daily visit series.
type TrafficCollector interface {
	Collect(ctx context.Context) ([]TrafficPoint, error)
}

// HTTPTrafficCollector pulls the series from a configured HTTP endpoint.
type HTTPTrafficCollector struct {
	client   *http.Client
	endpoint string
}

func NewHTTPTrafficCollector(endpoint string) *HTTPTrafficCollector {
	return &HTTPTrafficCollector{
		client:   &http.Client{Timeout: 15 * time.Second},
		endpoint: endpoint,
	}
}

func (c *HTTPTrafficCollector) Collect(ctx context.Context) ([]TrafficPoint, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("traffic: failed to create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("traffic: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("traffic: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("traffic: failed to read response: %w", err)
	}

	return ParseTrafficPayload(body)
}

// ParseTrafficPayload normalizes the two payload shapes the endpoint may
// emit: a bare list of points, or an object wrapping the list under
// "daily_visits". Downstream code only ever sees the flat series.
func ParseTrafficPayload(body []byte) ([]TrafficPoint, error) {
	trimmed := bytes.TrimSpace(body)
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var points []TrafficPoint
		if err := json.Unmarshal(trimmed, &points); err != nil {
			return nil, fmt.Errorf("traffic: failed to parse list payload: %w", err)
		}
		return points, nil
	}

	var wrapped struct {
		DailyVisits []TrafficPoint `json:"daily_visits"`
	}
	if err := json.Unmarshal(trimmed, &wrapped); err != nil {
		return nil, fmt.Errorf("traffic: failed to parse object payload: %w", err)
	}
	return wrapped.DailyVisits, nil
}
