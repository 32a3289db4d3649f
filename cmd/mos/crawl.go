package main

import (
	"fmt"
	"os"

	"github.com/fwojciec/mos"
	"github.com/fwojciec/mos/crawl"
	moshttp "github.com/fwojciec/mos/http"
	"github.com/jedib0t/go-pretty/v6/table"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	result, err := deps.Crawler.CrawlAll(deps.Ctx, c.URLs, c.progress(deps))
	if result == nil {
		return err
	}

	printSummary(deps, result)

	if deps.Report != nil && c.ReportPath != "" {
		if werr := writeReport(deps, c.ReportPath, result); werr != nil {
			deps.Logger.Error("report", "path", c.ReportPath, "err", werr)
		}
	}
	if deps.Metrics != nil && c.MetricsPath != "" {
		if werr := deps.Metrics.WriteTextfile(c.MetricsPath); werr != nil {
			deps.Logger.Error("metrics", "path", c.MetricsPath, "err", werr)
		}
	}
	return err
}

func writeReport(deps *Dependencies, path string, result *crawl.Result) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := deps.Report.Write(f, result); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func (c *CrawlCmd) progress(deps *Dependencies) crawl.ProgressFunc {
	logger := deps.Logger
	return func(e crawl.ProgressEvent) {
		if deps.Metrics != nil {
			deps.Metrics.Observe(e)
		}
		if deps.Report != nil {
			deps.Report.Observe(e)
		}

		switch e.Type {
		case crawl.ProgressStarted:
			logger.Info("crawl", "url", e.URL, "kind", e.Kind)
		case crawl.ProgressListed:
			logger.Info("record pages", "url", e.URL, "count", e.Total)
		case crawl.ProgressRecord:
			logger.Info("record", "url", e.URL, "images", e.Total)
		case crawl.ProgressRecordFailed:
			logger.Error("record failed", "url", e.URL, "err", describe(e.Error))
		case crawl.ProgressSaved:
			logger.Info("saved",
				"path", e.Path,
				"progress", fmt.Sprintf("%d/%d", e.Completed, e.Total),
				"size", crawl.FormatBytes(e.Bytes),
			)
		case crawl.ProgressSkipped:
			logger.Info("skipped", "path", e.Path, "progress", fmt.Sprintf("%d/%d", e.Completed, e.Total))
		case crawl.ProgressFailed:
			logger.Error("image failed", "url", e.URL, "path", e.Path, "err", describe(e.Error))
		case crawl.ProgressRetry:
			logger.Warn("retry", "url", e.URL, "attempt", e.Attempt, "err", e.Error)
		case crawl.ProgressManifestFailed:
			logger.Warn("manifest", "path", e.Path, "err", e.Error)
		case crawl.ProgressArchiveFailed:
			logger.Error("archive failed", "url", e.URL, "err", describe(e.Error))
		case crawl.ProgressFinished:
			if deps.Cookies != nil {
				_, ok := deps.Cookies.Cookie(e.URL, moshttp.CSRFCookie)
				logger.Debug("session", "url", e.URL, "csrf", ok)
			}
			logger.Info("done", "url", e.URL, "images", e.Completed, "size", crawl.FormatBytes(e.Bytes))
		}
	}
}

func printSummary(deps *Dependencies, r *crawl.Result) {
	t := table.NewWriter()
	t.SetOutputMirror(deps.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Summary", "Count"})
	t.AppendRows([]table.Row{
		{"Downloaded", r.Downloaded},
		{"Skipped", r.Skipped},
		{"Failed images", r.Failed},
		{"Size", crawl.FormatBytes(r.Bytes)},
		{"Record pages", r.Records},
		{"Failed record pages", r.FailedRecords},
		{"Failed archive URLs", r.FailedArchives},
	})
	t.Render()
}

// describe returns the message of an application error, or the full text
// of any other error.
func describe(err error) string {
	if err == nil {
		return ""
	}
	if mos.ErrorCode(err) == mos.EINTERNAL {
		return err.Error()
	}
	return mos.ErrorMessage(err)
}
