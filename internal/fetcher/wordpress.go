package fetcher

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/ryosukesatoh/wp-monitor/internal/retry"
)

// WordPress REST API wire structures.

// postID accepts the usual integer id as well as string ids, normalizing
// both to a string.
type postID string

func (p *postID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*p = postID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*p = postID(n.String())
	return nil
}

// renderedText accepts both the usual {"rendered": "..."} object and a bare
// string, which some sites emit for embedded contexts. The shape is resolved
// here once; callers only ever see the plain text.
type renderedText string

func (r *renderedText) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*r = renderedText(s)
		return nil
	}
	var obj struct {
		Rendered string `json:"rendered"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*r = renderedText(obj.Rendered)
	return nil
}

type wpPost struct {
	ID       postID       `json:"id"`
	Title    renderedText `json:"title"`
	Modified string       `json:"modified"`
	Status   string       `json:"status"`
	Link     string       `json:"link"`
}

// WordPressFetcher fetches posts from a WordPress site's REST API,
// most recently modified first.
type WordPressFetcher struct {
	client      *http.Client
	siteURL     string
	maxPosts    int
	retryConfig retry.Config
}

func NewWordPressFetcher(siteURL string, maxPosts int) *WordPressFetcher {
	return &WordPressFetcher{
		client:      &http.Client{Timeout: 15 * time.Second},
		siteURL:     strings.TrimRight(siteURL, "/"),
		maxPosts:    maxPosts,
		retryConfig: retry.DefaultConfig(),
	}
}

func (f *WordPressFetcher) Fetch(ctx context.Context) ([]Post, error) {
	query := url.Values{}
	query.Set("per_page", fmt.Sprintf("%d", f.maxPosts))
	query.Set("orderby", "modified")
	query.Set("order", "desc")

	reqURL := fmt.Sprintf("%s/wp-json/wp/v2/posts?%s", f.siteURL, query.Encode())

	var body []byte
	err := retry.WithBackoff(ctx, f.retryConfig, func(ctx context.Context) error {
		var err error
		body, err = f.get(ctx, reqURL)
		return err
	})
	if err != nil {
		return nil, err
	}

	var raw []wpPost
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("wordpress: failed to parse post list: %w", err)
	}

	posts := make([]Post, 0, len(raw))
	for _, p := range raw {
		posts = append(posts, Post{
			ID:       string(p.ID),
			Title:    stripParagraphTags(string(p.Title)),
			Modified: p.Modified,
			Status:   p.Status,
			Link:     p.Link,
		})
	}
	return posts, nil
}

func (f *WordPressFetcher) get(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("wordpress: failed to create request: %w", err)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("wordpress: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("wordpress: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("wordpress: failed to read response: %w", err)
	}
	return body, nil
}

// stripParagraphTags removes the <p> wrapper WordPress puts around rendered
// titles and trims whitespace.
func stripParagraphTags(s string) string {
	s = strings.ReplaceAll(s, "<p>", "")
	s = strings.ReplaceAll(s, "</p>", "")
	return strings.TrimSpace(s)
}
