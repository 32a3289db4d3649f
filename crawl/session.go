package crawl

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/fwojciec/mos"
)

// session is the state of crawling one archive URL. Every network
// request of a session waits on the session's own throttle.
type session struct {
	c          *Crawler
	archiveURL string
	throttle   mos.Throttle
	delays     []time.Duration
	progress   ProgressFunc
	result     Result
}

func (c *Crawler) newSession(archiveURL string, progress ProgressFunc) *session {
	return &session{
		c:          c,
		archiveURL: archiveURL,
		throttle:   c.newThrottle(),
		delays:     c.retryDelays(),
		progress:   progress,
	}
}

func (s *session) emit(event ProgressEvent) {
	if s.progress == nil {
		return
	}
	event.ArchiveURL = s.archiveURL
	s.progress(event)
}

// crawlRegisters enumerates the record pages of a registers page and
// processes them in order. A failing record page is reported and skipped.
func (s *session) crawlRegisters(ctx context.Context, registersURL string) error {
	doc, err := s.fetchPage(ctx, registersURL)
	if err != nil {
		return fmt.Errorf("registers page: %w", err)
	}

	var parishDisplay string
	if s.c.Names.UsesDisplayNames() {
		parishDisplay, _ = doc.DisplayName()
	}

	refs, err := s.listRecordPages(ctx, doc)
	if err != nil {
		return fmt.Errorf("registers page: %w", err)
	}
	s.emit(ProgressEvent{
		Type:  ProgressListed,
		Kind:  mos.KindRegisters,
		URL:   registersURL,
		Total: len(refs),
	})

	for i, ref := range refs {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.crawlRecord(ctx, ref, parishDisplay); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			s.result.FailedRecords++
			s.emit(ProgressEvent{
				Type:      ProgressRecordFailed,
				Kind:      mos.KindRecord,
				URL:       ref.URL,
				Completed: i + 1,
				Total:     len(refs),
				Error:     err,
			})
		}
	}
	return nil
}

// listRecordPages collects the record pages of a registers page and its
// pagination pages, dropping duplicates and stopping as soon as the range
// is satisfied.
func (s *session) listRecordPages(ctx context.Context, first mos.Document) ([]mos.RecordPageRef, error) {
	var refs []mos.RecordPageRef
	seen := make(map[string]struct{})
	collect := func(doc mos.Document) {
		for _, ref := range doc.RecordPages() {
			if _, ok := seen[ref.URL]; ok {
				continue
			}
			seen[ref.URL] = struct{}{}
			ref.Index = len(refs)
			refs = append(refs, ref)
		}
	}
	satisfied := func() bool {
		return s.c.Range > mos.NoRange && len(refs) >= s.c.Range+1
	}

	collect(first)
	for _, link := range first.PageLinks() {
		if satisfied() {
			break
		}
		doc, err := s.fetchPage(ctx, link)
		if err != nil {
			return nil, fmt.Errorf("pagination page %s: %w", link, err)
		}
		collect(doc)
	}

	return refs[:mos.BoundRecords(s.c.Range, len(refs))], nil
}

// crawlRecord downloads the images of one record page. Failures of single
// images are reported and skipped; the returned error means the record
// page itself could not be processed.
func (s *session) crawlRecord(ctx context.Context, ref mos.RecordPageRef, parishDisplay string) error {
	tokens, err := mos.ExtractTokens(ref.URL)
	if err != nil {
		return err
	}
	if tokens.Book == "" {
		return mos.Errorf(mos.EUNRECOGNIZED, "not a record page URL %q", ref.URL)
	}

	doc, err := s.fetchPage(ctx, ref.URL)
	if err != nil {
		return fmt.Errorf("record page: %w", err)
	}

	rec := mos.RecordContext{
		RecordURL:     ref.URL,
		Tokens:        tokens,
		ParishDisplay: parishDisplay,
	}
	if s.c.Names.UsesDisplayNames() {
		rec.BookDisplay, _ = doc.DisplayName()
	}

	images := doc.Images()
	s.result.Records++
	s.emit(ProgressEvent{
		Type:  ProgressRecord,
		Kind:  mos.KindRecord,
		URL:   ref.URL,
		Total: len(images),
	})

	for i, img := range images {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.processImage(ctx, rec, img, i+1, len(images))
	}
	return nil
}

// processImage resolves, checks and downloads one image.
func (s *session) processImage(ctx context.Context, rec mos.RecordContext, img mos.ImageRef, n, total int) {
	target := s.c.Resolver.Resolve(img, rec)
	event := ProgressEvent{
		Kind:      mos.KindRecord,
		URL:       img.URL,
		Path:      target.Path,
		Completed: n,
		Total:     total,
	}

	if s.c.Tracker.ShouldSkip(target) {
		s.result.Skipped++
		event.Type = ProgressSkipped
		s.emit(event)
		s.record(ctx, &mos.Entry{Path: target.Path, ImageURL: img.URL, Status: mos.StatusSkipped})
		return
	}

	var saved *mos.SaveResult
	err := Retry(ctx, s.delays, func(ctx context.Context) error {
		if err := s.throttle.Wait(ctx); err != nil {
			return err
		}
		var err error
		saved, err = s.c.Store.Save(ctx, target, func(w io.Writer) (int64, error) {
			defer s.throttle.Done()
			return s.c.Images.FetchImage(ctx, img.URL, w)
		})
		return err
	}, s.notifyRetry(img.URL))
	if err != nil {
		s.result.Failed++
		event.Type = ProgressFailed
		event.Error = err
		s.emit(event)
		s.record(ctx, &mos.Entry{Path: target.Path, ImageURL: img.URL, Status: mos.StatusFailed, Error: err.Error()})
		return
	}

	s.result.Downloaded++
	s.result.Bytes += saved.Bytes
	event.Type = ProgressSaved
	event.Bytes = saved.Bytes
	s.emit(event)
	s.record(ctx, &mos.Entry{
		Path:     target.Path,
		ImageURL: img.URL,
		Status:   mos.StatusDownloaded,
		Bytes:    saved.Bytes,
		Checksum: saved.Checksum,
	})
}

// fetchPage fetches and parses a page, retrying transport failures.
func (s *session) fetchPage(ctx context.Context, url string) (mos.Document, error) {
	var html string
	err := Retry(ctx, s.delays, func(ctx context.Context) error {
		if err := s.throttle.Wait(ctx); err != nil {
			return err
		}
		defer s.throttle.Done()
		var err error
		html, err = s.c.Fetcher.Fetch(ctx, url)
		return err
	}, s.notifyRetry(url))
	if err != nil {
		return nil, err
	}
	return s.c.Navigator.Parse(html, url)
}

func (s *session) notifyRetry(url string) RetryNotifyFunc {
	return func(attempt int, err error) {
		s.emit(ProgressEvent{
			Type:    ProgressRetry,
			URL:     url,
			Attempt: attempt,
			Error:   err,
		})
	}
}

// record stores an image outcome in the manifest, if one is configured.
func (s *session) record(ctx context.Context, entry *mos.Entry) {
	if s.c.Manifest == nil {
		return
	}
	entry.ArchiveURL = s.archiveURL
	if err := s.c.Manifest.RecordEntry(ctx, entry); err != nil {
		s.emit(ProgressEvent{
			Type:  ProgressManifestFailed,
			URL:   entry.ImageURL,
			Path:  entry.Path,
			Error: err,
		})
	}
}
