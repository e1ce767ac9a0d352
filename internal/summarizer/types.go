package summarizer

import (
	"context"
	"time"

	"github.com/ryosukesatoh/wp-monitor/internal/detector"
	"github.com/ryosukesatoh/wp-monitor/internal/metrics"
)

// Report is the outcome of one monitoring run: the detected changes, any
// enrichment data that could be collected, and the generated summary (empty
// when summarization was skipped or failed).
type Report struct {
	SiteURL string
	Date    time.Time
	Changes []detector.Change
	Metrics *metrics.Snapshot
	Summary string
}

// Summarizer turns a run report into a prose summary.
type Summarizer interface {
	Summarize(ctx context.Context, report *Report) (string, error)
}
