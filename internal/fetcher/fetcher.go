package fetcher

import (
	"context"
)

// Post is an immutable snapshot of one content item as returned by the
// site's API. ID is normalized to a string regardless of the wire type.
type Post struct {
	ID       string
	Title    string
	Modified string // ISO-8601, compared as a string
	Status   string
	Link     string
}

// Fetcher retrieves the current post list from the monitored site.
type Fetcher interface {
	Fetch(ctx context.Context) ([]Post, error)
}
