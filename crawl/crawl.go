// Package crawl provides archive crawling orchestration.
// It coordinates URL classification, page fetching and navigation, path
// resolution, resume checks and image storage for Matricula archive URLs.
package crawl

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/fwojciec/mos"
	"golang.org/x/sync/errgroup"
)

// Crawler downloads the images reachable from archive URLs.
type Crawler struct {
	Fetcher   mos.Fetcher
	Images    mos.ImageFetcher
	Navigator mos.Navigator
	Names     mos.NameSource
	Resolver  mos.PathResolver
	Tracker   mos.ResumeTracker
	Store     mos.ImageStore

	// Manifest, if set, records the outcome of every image.
	Manifest mos.ManifestService

	// Range bounds registers pages to their first 1+Range record pages.
	// mos.NoRange processes all of them.
	Range int

	// Delay is the pause between the end of one request and the start of
	// the next within one archive URL.
	Delay time.Duration

	// NewThrottle builds the throttle of each archive URL from Delay.
	// Nil uses the package's NewThrottle.
	NewThrottle func(delay time.Duration) mos.Throttle

	// Concurrency is the number of archive URLs CrawlAll processes at
	// once. Values below 1 mean one at a time.
	Concurrency int

	// RetryDelays are the backoff delays for transport failures.
	// Nil uses DefaultRetryDelays; an empty slice disables retries.
	RetryDelays []time.Duration
}

// Result holds the outcome of a crawl operation.
type Result struct {
	Archives       int
	FailedArchives int
	Records        int
	FailedRecords  int
	Downloaded     int
	Skipped        int
	Failed         int
	Bytes          int64
}

func (r *Result) add(o *Result) {
	r.Archives += o.Archives
	r.FailedArchives += o.FailedArchives
	r.Records += o.Records
	r.FailedRecords += o.FailedRecords
	r.Downloaded += o.Downloaded
	r.Skipped += o.Skipped
	r.Failed += o.Failed
	r.Bytes += o.Bytes
}

// ProgressEvent reports progress during a crawl operation.
type ProgressEvent struct {
	Type       ProgressType
	ArchiveURL string
	Kind       mos.PageKind
	URL        string
	Path       string
	Completed  int
	Total      int
	Bytes      int64
	Attempt    int
	Error      error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressListed
	ProgressRecord
	ProgressRecordFailed
	ProgressSaved
	ProgressSkipped
	ProgressFailed
	ProgressRetry
	ProgressManifestFailed
	ProgressArchiveFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
// With Concurrency above 1 it is called from several goroutines.
type ProgressFunc func(event ProgressEvent)

// CrawlAll crawls each archive URL in turn, or Concurrency of them at a
// time. A failing archive URL is reported with ProgressArchiveFailed and
// does not stop the others. The returned error is non-nil only if ctx
// ends the batch early.
func (c *Crawler) CrawlAll(ctx context.Context, urls []string, progress ProgressFunc) (*Result, error) {
	concurrency := c.Concurrency
	if concurrency < 1 {
		concurrency = 1
	}

	var (
		mu    sync.Mutex
		total Result
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, archiveURL := range urls {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			result, err := c.Crawl(gctx, archiveURL, progress)

			mu.Lock()
			if result != nil {
				total.add(result)
			}
			if err != nil {
				total.FailedArchives++
			}
			mu.Unlock()

			if err != nil {
				if ctxErr := gctx.Err(); ctxErr != nil {
					return ctxErr
				}
				if progress != nil {
					progress(ProgressEvent{
						Type:       ProgressArchiveFailed,
						ArchiveURL: archiveURL,
						URL:        archiveURL,
						Error:      err,
					})
				}
			}
			return nil
		})
	}

	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}
	return &total, err
}

// Crawl downloads every image reachable from one archive URL.
//
// The URL is classified without fetching it. Registers pages are
// enumerated (across all their pagination pages, bounded by Range) and
// each record page is processed in order; record URLs are processed
// directly. Failures of single images or record pages are reported
// through progress and counted in the result. The returned error is
// non-nil if the URL is unrecognized or its own page cannot be fetched
// or parsed.
func (c *Crawler) Crawl(ctx context.Context, archiveURL string, progress ProgressFunc) (*Result, error) {
	kind, err := mos.Classify(archiveURL)
	if err != nil {
		return &Result{}, err
	}

	s := c.newSession(archiveURL, progress)
	s.result.Archives = 1
	s.emit(ProgressEvent{Type: ProgressStarted, Kind: kind, URL: archiveURL})

	switch kind {
	case mos.KindRegisters:
		err = s.crawlRegisters(ctx, archiveURL)
	case mos.KindRecord:
		err = s.crawlRecord(ctx, mos.RecordPageRef{URL: archiveURL}, "")
	}
	if err != nil {
		return &s.result, err
	}

	s.emit(ProgressEvent{
		Type:      ProgressFinished,
		Kind:      kind,
		URL:       archiveURL,
		Completed: s.result.Downloaded + s.result.Skipped,
		Total:     s.result.Downloaded + s.result.Skipped + s.result.Failed,
		Bytes:     s.result.Bytes,
	})
	return &s.result, nil
}

func (c *Crawler) newThrottle() mos.Throttle {
	if c.NewThrottle == nil {
		return NewThrottle(c.Delay)
	}
	return c.NewThrottle(c.Delay)
}

func (c *Crawler) retryDelays() []time.Duration {
	if c.RetryDelays == nil {
		return DefaultRetryDelays()
	}
	return c.RetryDelays
}

// FormatBytes formats bytes in human-readable form.
func FormatBytes(bytes int64) string {
	const (
		KB = 1024
		MB = KB * 1024
		GB = MB * 1024
	)
	switch {
	case bytes >= GB:
		return fmt.Sprintf("%.1f GB", float64(bytes)/float64(GB))
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
