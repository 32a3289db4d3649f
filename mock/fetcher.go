package mock

import (
	"context"
	"io"

	"github.com/fwojciec/mos"
)

var (
	_ mos.Fetcher      = (*Fetcher)(nil)
	_ mos.ImageFetcher = (*ImageFetcher)(nil)
	_ mos.Throttle     = (*Throttle)(nil)
)

// Fetcher is a mock implementation of mos.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}

// ImageFetcher is a mock implementation of mos.ImageFetcher.
type ImageFetcher struct {
	FetchImageFn func(ctx context.Context, url string, w io.Writer) (int64, error)
}

func (f *ImageFetcher) FetchImage(ctx context.Context, url string, w io.Writer) (int64, error) {
	return f.FetchImageFn(ctx, url, w)
}

// Throttle is a mock implementation of mos.Throttle.
type Throttle struct {
	WaitFn func(ctx context.Context) error
	DoneFn func()
}

func (t *Throttle) Wait(ctx context.Context) error {
	return t.WaitFn(ctx)
}

func (t *Throttle) Done() {
	t.DoneFn()
}
