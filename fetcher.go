package mos

import (
	"context"
	"io"
)

// Fetcher retrieves archive page HTML.
type Fetcher interface {
	// Fetch returns the HTML of the page at url.
	// Non-success responses return EFETCH.
	// The context controls timeout and cancellation.
	Fetch(ctx context.Context, url string) (html string, err error)

	// Close releases transport resources.
	Close() error
}

// ImageFetcher streams image resources.
type ImageFetcher interface {
	// FetchImage copies the image body at url into w and returns the
	// number of bytes written. Non-success responses return EFETCH
	// before anything is written.
	FetchImage(ctx context.Context, url string, w io.Writer) (n int64, err error)
}

// Throttle spaces out requests to the archive.
type Throttle interface {
	// Wait blocks until the next request may be sent.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context) error

	// Done reports that the request admitted by Wait has finished.
	// The pause before the next request is measured from this call.
	Done()
}
