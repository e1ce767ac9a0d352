package publisher

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/ryosukesatoh/wp-monitor/internal/retry"
	"github.com/ryosukesatoh/wp-monitor/internal/summarizer"
)

type discordEmbedFooter struct {
	Text string `json:"text"`
}

type discordEmbed struct {
	Title       string              `json:"title,omitempty"`
	URL         string              `json:"url,omitempty"`
	Description string              `json:"description,omitempty"`
	Color       int                 `json:"color,omitempty"`
	Footer      *discordEmbedFooter `json:"footer,omitempty"`
	Timestamp   string              `json:"timestamp,omitempty"`
}

type discordWebhookPayload struct {
	Embeds []discordEmbed `json:"embeds"`
}

// DiscordPublisher posts run reports to a Discord channel via webhook.
type DiscordPublisher struct {
	webhookURL  string
	client      *http.Client
	retryConfig retry.Config
}

func NewDiscordPublisher(webhookURL string) *DiscordPublisher {
	return &DiscordPublisher{
		webhookURL:  webhookURL,
		client:      &http.Client{Timeout: 30 * time.Second},
		retryConfig: retry.DefaultConfig(),
	}
}

// Publish sends the report as a series of rich embeds, batched to Discord's
// message limits.
func (d *DiscordPublisher) Publish(ctx context.Context, report *summarizer.Report) error {
	batches := batchEmbeds(buildEmbeds(report))

	for i, batch := range batches {
		err := retry.WithBackoff(ctx, d.retryConfig, func(ctx context.Context) error {
			return d.sendWebhook(ctx, batch)
		})
		if err != nil {
			return fmt.Errorf("discord: failed to send batch %d: %w", i+1, err)
		}

		// Delay between batches to avoid rate limits.
		if i < len(batches)-1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(500 * time.Millisecond):
			}
		}
	}
	return nil
}

const discordGreen = 0x2ECC71

func buildEmbeds(report *summarizer.Report) []discordEmbed {
	embeds := make([]discordEmbed, 0, len(report.Changes)+2)

	overview := discordEmbed{
		Title:       fmt.Sprintf("WordPress Monitor: %s", report.SiteURL),
		Description: fmt.Sprintf("%d changed post(s) detected", len(report.Changes)),
		Color:       discordGreen,
		Footer:      &discordEmbedFooter{Text: report.Date.Format("2006-01-02")},
		Timestamp:   report.Date.Format(time.RFC3339),
	}
	if snap := report.Metrics; snap != nil {
		overview.Description += fmt.Sprintf("\nPosts: %d | Pages: %d | Comments: %d",
			snap.PostCount, snap.PageCount, snap.CommentCount)
		if snap.Traffic != nil && snap.Traffic.Available {
			overview.Description += fmt.Sprintf("\nTraffic trend: %s (%+.2f%%)",
				snap.Traffic.Trend, snap.Traffic.ChangePct)
		}
	}
	embeds = append(embeds, overview)

	for _, c := range report.Changes {
		e := discordEmbed{
			Title: truncate(fmt.Sprintf("[%s] %s", c.Type, c.Title), 256),
			URL:   c.Link,
			Color: discordGreen,
		}
		if c.OldModified != "" {
			e.Description = fmt.Sprintf("Modified %s (was %s)", c.Modified, c.OldModified)
		} else {
			e.Description = fmt.Sprintf("Modified %s", c.Modified)
		}
		embeds = append(embeds, e)
	}

	if report.Summary != "" {
		embeds = append(embeds, discordEmbed{
			Title:       "Claude summary",
			Description: truncate(report.Summary, 4096),
			Color:       discordGreen,
		})
	}

	return embeds
}

// batchEmbeds splits embeds into batches respecting Discord limits:
// max 10 embeds per message, max 6000 total characters per message.
func batchEmbeds(embeds []discordEmbed) [][]discordEmbed {
	var batches [][]discordEmbed
	var current []discordEmbed
	currentChars := 0

	for _, e := range embeds {
		ec := embedCharCount(e)

		if len(current) > 0 && (len(current) >= 10 || currentChars+ec > 6000) {
			batches = append(batches, current)
			current = nil
			currentChars = 0
		}

		current = append(current, e)
		currentChars += ec
	}

	if len(current) > 0 {
		batches = append(batches, current)
	}

	return batches
}

func (d *DiscordPublisher) sendWebhook(ctx context.Context, embeds []discordEmbed) error {
	body, err := json.Marshal(discordWebhookPayload{Embeds: embeds})
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.webhookURL, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	return nil
}

// truncate shortens s to max characters, preferring a sentence boundary.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}

	cut := s[:max-1]
	if idx := strings.LastIndexAny(cut, ".!?"); idx > max/2 {
		return cut[:idx+1]
	}
	return cut + "…"
}

func embedCharCount(e discordEmbed) int {
	n := len(e.Title) + len(e.Description)
	if e.Footer != nil {
		n += len(e.Footer.Text)
	}
	return n
}
