// Package slog provides logging decorators for mos services.
package slog

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/mos"
)

// Ensure the decorators implement their interfaces.
var (
	_ mos.Fetcher      = (*LoggingFetcher)(nil)
	_ mos.ImageFetcher = (*LoggingImageFetcher)(nil)
)

// LoggingFetcher wraps a Fetcher with debug logging of page fetches.
type LoggingFetcher struct {
	next   mos.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next mos.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher and logs the outcome.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (string, error) {
	begin := time.Now()
	html, err := f.next.Fetch(ctx, url)
	if err != nil {
		f.logger.Debug("fetch",
			"url", url,
			"duration", time.Since(begin),
			"err", err,
		)
		return html, err
	}
	f.logger.Debug("fetch",
		"url", url,
		"bytes", len(html),
		"duration", time.Since(begin),
	)
	return html, nil
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}

// LoggingImageFetcher wraps an ImageFetcher with debug logging of image
// downloads.
type LoggingImageFetcher struct {
	next   mos.ImageFetcher
	logger *slog.Logger
}

// NewLoggingImageFetcher creates a new LoggingImageFetcher.
func NewLoggingImageFetcher(next mos.ImageFetcher, logger *slog.Logger) *LoggingImageFetcher {
	return &LoggingImageFetcher{next: next, logger: logger}
}

// FetchImage delegates to the wrapped fetcher and logs the outcome.
func (f *LoggingImageFetcher) FetchImage(ctx context.Context, url string, w io.Writer) (int64, error) {
	begin := time.Now()
	n, err := f.next.FetchImage(ctx, url, w)
	attrs := []any{
		"url", url,
		"bytes", n,
		"duration", time.Since(begin),
	}
	if err != nil {
		attrs = append(attrs, "err", err)
	}
	f.logger.Debug("fetch image", attrs...)
	return n, err
}
