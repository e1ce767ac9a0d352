package publisher

import (
	"context"

	"github.com/ryosukesatoh/wp-monitor/internal/summarizer"
)

// Publisher delivers a run report to some output destination.
type Publisher interface {
	Publish(ctx context.Context, report *summarizer.Report) error
}
