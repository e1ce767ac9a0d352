package metrics

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"
)

// Snapshot holds the optional enrichment data attached to a run report.
// A nil Traffic means the traffic endpoint was not configured or its data
// was insufficient for analysis.
type Snapshot struct {
	PostCount      int
	PageCount      int
	CommentCount   int
	TrafficSamples int
	Traffic        *TrafficAnalysis
}

// InventoryCollector counts the site's posts, pages, and comments.
type InventoryCollector interface {
	Counts(ctx context.Context) (posts, pages, comments int, err error)
}

// WordPressInventory reads collection sizes from the X-WP-Total header that
// the WordPress REST API attaches to every list response, so each count
// costs a single per_page=1 request.
type WordPressInventory struct {
	client  *http.Client
	siteURL string
}

func NewWordPressInventory(siteURL string) *WordPressInventory {
	return &WordPressInventory{
		client:  &http.Client{Timeout: 15 * time.Second},
		siteURL: strings.TrimRight(siteURL, "/"),
	}
}

func (c *WordPressInventory) Counts(ctx context.Context) (int, int, int, error) {
	posts, err := c.total(ctx, "posts")
	if err != nil {
		return 0, 0, 0, err
	}
	pages, err := c.total(ctx, "pages")
	if err != nil {
		return 0, 0, 0, err
	}
	comments, err := c.total(ctx, "comments")
	if err != nil {
		return 0, 0, 0, err
	}
	return posts, pages, comments, nil
}

func (c *WordPressInventory) total(ctx context.Context, collection string) (int, error) {
	reqURL := fmt.Sprintf("%s/wp-json/wp/v2/%s?per_page=1", c.siteURL, collection)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return 0, fmt.Errorf("inventory: failed to create request for %s: %w", collection, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return 0, fmt.Errorf("inventory: request for %s failed: %w", collection, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, fmt.Errorf("inventory: unexpected status %d for %s", resp.StatusCode, collection)
	}

	header := resp.Header.Get("X-WP-Total")
	if header == "" {
		return 0, fmt.Errorf("inventory: missing X-WP-Total header for %s", collection)
	}
	total, err := strconv.Atoi(header)
	if err != nil {
		return 0, fmt.Errorf("inventory: bad X-WP-Total header %q for %s: %w", header, collection, err)
	}
	return total, nil
}
