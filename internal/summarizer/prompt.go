package summarizer

import (
	"fmt"
	"strings"

	"github.com/ryosukesatoh/wp-monitor/internal/detector"
	"github.com/ryosukesatoh/wp-monitor/internal/metrics"
)

// BuildPrompt renders the summarization prompt from the detected changes
// and optional metrics snapshot. Pure string assembly; sections with no
// data are omitted.
func BuildPrompt(siteURL string, changes []detector.Change, snap *metrics.Snapshot) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("WordPress site: %s\n", siteURL))
	sb.WriteString("You are monitoring content changes.\n")
	sb.WriteString("Summarize what changed and provide 3 operational recommendations.\n")

	if snap != nil {
		sb.WriteString("\nSite metrics snapshot:\n")
		sb.WriteString(fmt.Sprintf("Posts: %d | Pages: %d | Comments: %d\n",
			snap.PostCount, snap.PageCount, snap.CommentCount))
		if snap.Traffic != nil && snap.Traffic.Available {
			t := snap.Traffic
			sb.WriteString(fmt.Sprintf("Traffic: trend=%s last7_avg=%.1f prev7_avg=%.1f change_pct=%.2f samples=%d\n",
				t.Trend, t.Last7Avg, t.Previous7Avg, t.ChangePct, snap.TrafficSamples))
		}
	}

	sb.WriteString("\nChanged posts:\n")
	for _, c := range changes {
		sb.WriteString(fmt.Sprintf("- [%s] %s (%s) %s\n", c.Type, c.Title, c.Modified, c.Link))
	}

	return strings.TrimRight(sb.String(), "\n")
}
