package publisher

import (
	"context"
	"fmt"
	"strings"

	"github.com/ryosukesatoh/wp-monitor/internal/summarizer"
)

// StdoutPublisher prints the run report to stdout.
type StdoutPublisher struct{}

func NewStdoutPublisher() *StdoutPublisher {
	return &StdoutPublisher{}
}

func (p *StdoutPublisher) Publish(_ context.Context, report *summarizer.Report) error {
	fmt.Println(strings.Repeat("=", 72))
	fmt.Printf("WordPress Monitor: %s\n", report.SiteURL)
	fmt.Printf("Date: %s\n", report.Date.Format("2006-01-02 15:04"))
	fmt.Println(strings.Repeat("=", 72))

	fmt.Printf("\nDetected changes: %d\n", len(report.Changes))
	for _, c := range report.Changes {
		fmt.Printf("- [%s] %s (%s)\n", c.Type, c.Title, c.Modified)
	}

	if snap := report.Metrics; snap != nil {
		fmt.Printf("\nSite inventory: %d posts, %d pages, %d comments\n",
			snap.PostCount, snap.PageCount, snap.CommentCount)
		if snap.Traffic != nil && snap.Traffic.Available {
			t := snap.Traffic
			fmt.Printf("Traffic trend: %s (%.1f avg vs %.1f avg, %+.2f%%)\n",
				t.Trend, t.Last7Avg, t.Previous7Avg, t.ChangePct)
		}
	}

	if report.Summary != "" {
		fmt.Println("\nClaude summary:")
		fmt.Println()
		fmt.Println(report.Summary)
	}

	fmt.Println(strings.Repeat("=", 72))
	return nil
}
