package runner

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/ryosukesatoh/wp-monitor/internal/detector"
	"github.com/ryosukesatoh/wp-monitor/internal/fetcher"
	"github.com/ryosukesatoh/wp-monitor/internal/metrics"
	"github.com/ryosukesatoh/wp-monitor/internal/publisher"
	"github.com/ryosukesatoh/wp-monitor/internal/state"
	"github.com/ryosukesatoh/wp-monitor/internal/summarizer"
)

// Runner orchestrates one monitoring run: load state -> fetch -> detect ->
// persist state -> enrich -> summarize -> publish.
type Runner struct {
	siteURL    string
	stateFile  string
	fetcher    fetcher.Fetcher
	inventory  metrics.InventoryCollector // nil disables inventory enrichment
	traffic    metrics.TrafficCollector   // nil disables traffic enrichment
	summarizer summarizer.Summarizer      // nil disables the Claude call
	publishers []publisher.Publisher
}

func New(siteURL, stateFile string, f fetcher.Fetcher, inv metrics.InventoryCollector, tr metrics.TrafficCollector, s summarizer.Summarizer, pubs []publisher.Publisher) *Runner {
	return &Runner{
		siteURL:    siteURL,
		stateFile:  stateFile,
		fetcher:    f,
		inventory:  inv,
		traffic:    tr,
		summarizer: s,
		publishers: pubs,
	}
}

// Run executes the pipeline once. State and post-fetch failures are fatal.
// Enrichment and summarizer failures degrade the report and are logged as
// warnings; the run still succeeds.
func (r *Runner) Run(ctx context.Context) (*summarizer.Report, error) {
	prev, err := state.Load(r.stateFile)
	if err != nil {
		return nil, fmt.Errorf("runner: load state failed: %w", err)
	}

	log.Printf("Fetching posts from %s...", r.siteURL)
	posts, err := r.fetcher.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("runner: fetch failed: %w", err)
	}
	log.Printf("Fetched %d posts", len(posts))

	changes, next := detector.Detect(prev, posts)
	log.Printf("Detected %d changed posts", len(changes))

	// Persist before summarizing so a summarizer failure never re-reports
	// the same changes on the next run.
	if err := state.Save(r.stateFile, next); err != nil {
		return nil, fmt.Errorf("runner: save state failed: %w", err)
	}

	report := &summarizer.Report{
		SiteURL: r.siteURL,
		Date:    time.Now(),
		Changes: changes,
		Metrics: r.collectMetrics(ctx),
	}

	if len(changes) > 0 && r.summarizer != nil {
		log.Println("Requesting Claude summary...")
		summary, err := r.summarizer.Summarize(ctx, report)
		if err != nil {
			log.Printf("WARNING: summarize failed: %v", err)
		} else {
			report.Summary = summary
		}
	}

	if err := r.publish(ctx, report); err != nil {
		return nil, err
	}

	return report, nil
}

// collectMetrics gathers the optional enrichment data. Any collector failure
// is a warning; a nil snapshot means nothing could be collected.
func (r *Runner) collectMetrics(ctx context.Context) *metrics.Snapshot {
	if r.inventory == nil && r.traffic == nil {
		return nil
	}

	snap := &metrics.Snapshot{}
	collected := false

	if r.inventory != nil {
		posts, pages, comments, err := r.inventory.Counts(ctx)
		if err != nil {
			log.Printf("WARNING: inventory collection failed: %v", err)
		} else {
			snap.PostCount = posts
			snap.PageCount = pages
			snap.CommentCount = comments
			collected = true
		}
	}

	if r.traffic != nil {
		points, err := r.traffic.Collect(ctx)
		if err != nil {
			log.Printf("WARNING: traffic collection failed: %v", err)
		} else {
			snap.TrafficSamples = len(points)
			analysis := metrics.AnalyzeTraffic(points)
			snap.Traffic = &analysis
			collected = true
		}
	}

	if !collected {
		return nil
	}
	return snap
}

// publish delivers the report through every publisher, continuing past
// individual failures. Only all publishers failing fails the run.
func (r *Runner) publish(ctx context.Context, report *summarizer.Report) error {
	var publishErrors []error
	for _, pub := range r.publishers {
		if err := pub.Publish(ctx, report); err != nil {
			publishErrors = append(publishErrors, fmt.Errorf("publish via %T failed: %w", pub, err))
			log.Printf("WARNING: %v", publishErrors[len(publishErrors)-1])
		}
	}

	if len(publishErrors) == len(r.publishers) && len(r.publishers) > 0 {
		return fmt.Errorf("runner: all publishers failed: %v", publishErrors)
	}
	return nil
}
