// Package http provides the HTTP transport for archive pages and images.
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/fwojciec/mos"
	"golang.org/x/net/publicsuffix"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 30 * time.Second

// DefaultUserAgent identifies the downloader to the archive.
const DefaultUserAgent = "Mozilla/5.0 (X11; Linux x86_64; rv:128.0) Gecko/20100101 Firefox/128.0"

// CSRFCookie is the cookie in which the archive hands out its CSRF token.
const CSRFCookie = "shared_csrftoken"

// Ensure Fetcher implements the transport interfaces at compile time.
var (
	_ mos.Fetcher      = (*Fetcher)(nil)
	_ mos.ImageFetcher = (*Fetcher)(nil)
)

// Fetcher retrieves pages and images over HTTP. Cookies set by the
// archive (session and CSRF token) are kept in a jar and sent with every
// later request, so image requests carry the session of the page that
// listed them.
type Fetcher struct {
	client    *http.Client
	timeout   time.Duration
	userAgent string
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (30s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:   DefaultFetchTimeout,
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(f)
	}

	// cookiejar.New never returns an error.
	jar, _ := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	f.client = &http.Client{
		Timeout: f.timeout,
		Jar:     jar,
	}

	return f
}

// Fetch retrieves the HTML content from the given URL.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	resp, err := f.get(ctx, url, "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", transportError(ctx, url, err)
	}

	return string(body), nil
}

// FetchImage streams the image at url into w.
func (f *Fetcher) FetchImage(ctx context.Context, url string, w io.Writer) (int64, error) {
	resp, err := f.get(ctx, url, "image/avif,image/webp,image/*,*/*;q=0.8")
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	body := &bodyReader{r: resp.Body}
	n, err := io.Copy(w, body)
	if body.err != nil {
		return n, transportError(ctx, url, body.err)
	} else if err != nil {
		return n, fmt.Errorf("write %s: %w", url, err)
	}
	return n, nil
}

// bodyReader remembers read errors of a response body so they can be
// told apart from errors of the writer it is copied into.
type bodyReader struct {
	r   io.Reader
	err error
}

func (b *bodyReader) Read(p []byte) (int, error) {
	n, err := b.r.Read(p)
	if err != nil && err != io.EOF {
		b.err = err
	}
	return n, err
}

// Cookie returns the value of the named cookie the jar holds for rawURL.
func (f *Fetcher) Cookie(rawURL, name string) (string, bool) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", false
	}
	for _, c := range f.client.Jar.Cookies(u) {
		if c.Name == name {
			return c.Value, true
		}
	}
	return "", false
}

// Close releases idle connections.
func (f *Fetcher) Close() error {
	f.client.CloseIdleConnections()
	return nil
}

// get issues a GET request and returns the response of a 200 reply.
// Status failures return EFETCH; transport failures return ETRANSPORT
// and may be retried by the caller.
func (f *Fetcher) get(ctx context.Context, url, accept string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, mos.Errorf(mos.EFETCH, "invalid request for %s: %v", url, err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", accept)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, transportError(ctx, url, err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, mos.Errorf(mos.EFETCH, "HTTP %d for %s", resp.StatusCode, url)
	}

	return resp, nil
}

// transportError classifies a failed exchange with the server. A done
// context is returned as is so cancellation stays recognizable.
func transportError(ctx context.Context, url string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return mos.Errorf(mos.ETRANSPORT, "request %s: %v", url, err)
}
