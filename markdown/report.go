// Package markdown writes crawl reports as Markdown documents.
package markdown

import (
	"io"
	"strconv"
	"sync"
	"time"

	"github.com/fwojciec/mos"
	"github.com/fwojciec/mos/crawl"
	"github.com/nao1215/markdown"
)

// Report collects progress events of a crawl and renders them as a
// Markdown document with one row per archive URL and a list of failures.
type Report struct {
	mu       sync.Mutex
	started  time.Time
	order    []string
	archives map[string]*archiveRow
	failures []failure
}

type archiveRow struct {
	url        string
	kind       string
	downloaded int
	skipped    int
	failed     int
	bytes      int64
	status     string
}

type failure struct {
	url  string
	path string
	err  string
}

// NewReport creates an empty report.
func NewReport() *Report {
	return &Report{
		started:  time.Now(),
		archives: make(map[string]*archiveRow),
	}
}

// Observe records one progress event. It is safe for concurrent use.
func (r *Report) Observe(e crawl.ProgressEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()

	row := r.row(e.ArchiveURL)
	switch e.Type {
	case crawl.ProgressStarted:
		row.kind = e.Kind.String()
	case crawl.ProgressSaved:
		row.downloaded++
		row.bytes += e.Bytes
	case crawl.ProgressSkipped:
		row.skipped++
	case crawl.ProgressFailed:
		row.failed++
		r.failures = append(r.failures, failure{url: e.URL, path: e.Path, err: errorText(e.Error)})
	case crawl.ProgressRecordFailed:
		r.failures = append(r.failures, failure{url: e.URL, err: errorText(e.Error)})
	case crawl.ProgressFinished:
		row.status = "done"
	case crawl.ProgressArchiveFailed:
		row.status = "failed: " + errorText(e.Error)
	}
}

func (r *Report) row(archiveURL string) *archiveRow {
	row, ok := r.archives[archiveURL]
	if !ok {
		row = &archiveRow{url: archiveURL, status: "incomplete"}
		r.archives[archiveURL] = row
		r.order = append(r.order, archiveURL)
	}
	return row
}

// Write renders the report with the totals of result.
func (r *Report) Write(w io.Writer, result *crawl.Result) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	md := markdown.NewMarkdown(w)
	md.H1("Matricula download report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Started", r.started.Format("2006-01-02 15:04:05 MST")},
			{"Archive URLs", strconv.Itoa(result.Archives + countUnstarted(r))},
			{"Record pages", strconv.Itoa(result.Records)},
			{"Downloaded", strconv.Itoa(result.Downloaded)},
			{"Skipped", strconv.Itoa(result.Skipped)},
			{"Failed", strconv.Itoa(result.Failed)},
			{"Size", crawl.FormatBytes(result.Bytes)},
		},
	})
	md.PlainText("")

	if result.Failed > 0 || result.FailedRecords > 0 || result.FailedArchives > 0 {
		md.Warningf("%d image(s), %d record page(s) and %d archive URL(s) failed. Re-run with --skip-existing to retry them.",
			result.Failed, result.FailedRecords, result.FailedArchives)
		md.PlainText("")
	}

	md.H2("Archives")
	md.PlainText("")
	rows := make([][]string, 0, len(r.order))
	for _, u := range r.order {
		a := r.archives[u]
		rows = append(rows, []string{
			"`" + a.url + "`",
			a.kind,
			strconv.Itoa(a.downloaded),
			strconv.Itoa(a.skipped),
			strconv.Itoa(a.failed),
			crawl.FormatBytes(a.bytes),
			a.status,
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"URL", "Kind", "Downloaded", "Skipped", "Failed", "Size", "Status"},
		Rows:   rows,
	})
	md.PlainText("")

	if len(r.failures) > 0 {
		md.H2("Failures")
		md.PlainText("")
		items := make([]string, 0, len(r.failures))
		for _, f := range r.failures {
			item := "`" + f.url + "`"
			if f.path != "" {
				item += " → `" + f.path + "`"
			}
			items = append(items, item+": "+f.err)
		}
		md.BulletList(items...)
		md.PlainText("")
	}

	return md.Build()
}

// countUnstarted counts archive URLs rejected before a session started,
// which the result does not include in Archives.
func countUnstarted(r *Report) int {
	n := 0
	for _, a := range r.archives {
		if a.kind == "" {
			n++
		}
	}
	return n
}

func errorText(err error) string {
	if err == nil {
		return ""
	}
	if mos.ErrorCode(err) == mos.EINTERNAL {
		return err.Error()
	}
	return mos.ErrorMessage(err)
}
