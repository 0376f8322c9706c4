package gtfsrt

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	board "github.com/transit-displays/arrival-board"
)

// Client fetches GTFS-RT trip-update feeds and extracts per-stop
// arrivals. It implements the board's ArrivalSource contract; the API
// credential travels as the x-api-key header on every request.
type Client struct {
	httpClient *http.Client
	apiKey     string
	limit      int
}

// NewClient creates a client with the given credential and fetch timeout.
func NewClient(apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		apiKey:     apiKey,
		limit:      MaxArrivals,
	}
}

// Arrivals fetches feedURL and returns the upcoming arrivals at stopID,
// sorted by time. Network errors, non-200 responses and malformed
// payloads all surface as errors; the caller keeps its previous data.
func (c *Client) Arrivals(ctx context.Context, feedURL, stopID string) ([]board.Arrival, error) {
	raw, err := c.fetch(ctx, feedURL)
	if err != nil {
		return nil, err
	}
	return DecodeArrivals(raw, stopID, time.Now().UTC(), c.limit)
}

// fetch returns a feed's raw protobuf bytes.
func (c *Client) fetch(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	if c.apiKey != "" {
		req.Header.Set("x-api-key", c.apiKey)
	}
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch %s: %w", url, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}
	return io.ReadAll(resp.Body)
}
