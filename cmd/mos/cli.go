package main

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/fwojciec/mos"
	"github.com/fwojciec/mos/crawl"
	mosmd "github.com/fwojciec/mos/markdown"
	mosprom "github.com/fwojciec/mos/prometheus"
)

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Output string `short:"o" env:"MOS_OUTPUT" help:"Root directory for downloaded images"`
	URL    string `short:"u" xor:"input" help:"Archive URL (registers or record page)"`
	File   string `short:"f" xor:"input" help:"File with one archive URL per line"`

	Range           int  `short:"r" default:"-1" help:"Process only the first 1+N record pages of a registers page (-1 for all)"`
	Deep            bool `short:"d" help:"Store images as <parish>/<book>/<page> instead of flat files"`
	IncludeFullname bool `xor:"naming" help:"Name directories and files after the register display names"`
	SimpleDirnames  bool `xor:"naming" help:"Name directories and files after URL identifiers only"`
	SkipExisting    bool `short:"s" help:"Skip images already downloaded"`

	CrawlSpeed float64       `env:"MOS_CRAWL_SPEED" default:"2" help:"Seconds between archive requests (non-positive keeps the default)"`
	Timeout    time.Duration `short:"t" default:"30s" help:"Timeout per request"`
	Retries    int           `default:"3" help:"Retries for transport failures"`
	Parallel   int           `short:"p" default:"1" help:"Archive URLs to process at once"`
	Manifest   string        `short:"m" env:"MOS_MANIFEST" help:"SQLite file recording the outcome of every image"`
	Report     string        `help:"Write a Markdown report of the run to this file"`
	Metrics    string        `help:"Write Prometheus metrics of the run to this textfile"`
	Verbose    bool          `short:"v" help:"Log every request"`
}

// Config maps the command-line flags to crawl settings.
func (c *CLI) Config() mos.Config {
	naming := mos.NamingDefault
	switch {
	case c.IncludeFullname:
		naming = mos.NamingFullname
	case c.SimpleDirnames:
		naming = mos.NamingSimple
	}

	delay := time.Duration(c.CrawlSpeed * float64(time.Second))
	if delay <= 0 {
		delay = mos.DefaultCrawlDelay
	}

	return mos.Config{
		OutputDir:    c.Output,
		Range:        c.Range,
		Deep:         c.Deep,
		Naming:       naming,
		SkipExisting: c.SkipExisting,
		CrawlDelay:   delay,
	}
}

// ArchiveURLs returns the archive URLs to crawl. A single --url must be
// recognized up front; URLs from --file are checked one by one while
// crawling so one bad line does not stop the batch.
func (c *CLI) ArchiveURLs() ([]string, error) {
	switch {
	case c.URL != "":
		if _, err := mos.Classify(c.URL); err != nil {
			return nil, err
		}
		return []string{c.URL}, nil
	case c.File != "":
		f, err := os.Open(c.File)
		if err != nil {
			return nil, mos.Errorf(mos.EINVALID, "cannot read input file %q", c.File)
		}
		defer f.Close()
		return readURLs(f)
	default:
		return nil, mos.Errorf(mos.EINVALID, "one of --url or --file is required")
	}
}

// readURLs reads one URL per line, trimming whitespace and skipping empty
// lines.
func readURLs(r io.Reader) ([]string, error) {
	var urls []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		urls = append(urls, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, mos.Errorf(mos.EINVALID, "cannot read input file: %v", err)
	}
	return urls, nil
}

// CookieJar reports cookies the archive has set.
type CookieJar interface {
	Cookie(rawURL, name string) (string, bool)
}

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx    context.Context
	Stdout io.Writer
	Stderr io.Writer
	Logger *slog.Logger

	Crawler *crawl.Crawler
	Cookies CookieJar

	// Optional observers of crawl progress.
	Metrics *mosprom.Metrics
	Report  *mosmd.Report
}

// CrawlCmd downloads the images of a list of archive URLs.
type CrawlCmd struct {
	URLs        []string
	MetricsPath string
	ReportPath  string
}
