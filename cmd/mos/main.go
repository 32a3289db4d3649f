package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/mos"
	"github.com/fwojciec/mos/crawl"
	"github.com/fwojciec/mos/fs"
	"github.com/fwojciec/mos/goquery"
	moshttp "github.com/fwojciec/mos/http"
	mosmd "github.com/fwojciec/mos/markdown"
	mosprom "github.com/fwojciec/mos/prometheus"
	mosslog "github.com/fwojciec/mos/slog"
	"github.com/fwojciec/mos/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, describe(err))
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// TOML files supplying flag defaults. Missing files are ignored.
	ConfigPaths []string

	// SQLite database backing the manifest, if one is configured.
	DB *sqlite.DB
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		ConfigPaths: []string{DefaultConfigPath()},
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments. Only configuration
// problems are returned as errors; failures while crawling are logged and
// summarized.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("mos"),
		kong.Description("Download scanned parish register images from Matricula Online"),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}),
		kong.Configuration(TOML, m.ConfigPaths...),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	// Handle no arguments
	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no arguments provided")
	}

	// Handle help flags
	if len(args) == 1 && (args[0] == "--help" || args[0] == "-h" || args[0] == "help") {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	if _, err := parser.Parse(args); err != nil {
		return err
	}

	cfg := cli.Config()
	if err := cfg.Validate(); err != nil {
		return err
	}
	urls, err := cli.ArchiveURLs()
	if err != nil {
		return err
	}

	logger := newLogger(stderr, cli.Verbose)

	fetcher := moshttp.NewFetcher(moshttp.WithTimeout(cli.Timeout))
	defer fetcher.Close()

	names := fs.NewNameSource(cfg.Naming)
	crawler := &crawl.Crawler{
		Fetcher:     mosslog.NewLoggingFetcher(fetcher, logger),
		Images:      mosslog.NewLoggingImageFetcher(fetcher, logger),
		Navigator:   mosslog.NewLoggingNavigator(goquery.NewNavigator(), logger),
		Names:       names,
		Resolver:    fs.NewResolver(cfg.OutputDir, cfg.Deep, names),
		Tracker:     fs.NewTracker(cfg.SkipExisting),
		Store:       fs.NewImageStore(),
		Range:       cfg.Range,
		Delay:       cfg.CrawlDelay,
		Concurrency: cli.Parallel,
		RetryDelays: crawl.RetryDelays(cli.Retries),
	}

	if cli.Manifest != "" {
		m.DB = sqlite.NewDB(cli.Manifest)
		if err := m.DB.Open(); err != nil {
			return mos.Errorf(mos.EINVALID, "failed to open manifest at %q: %v", cli.Manifest, err)
		}
		defer m.Close()
		crawler.Manifest = sqlite.NewManifestService(m.DB)
	}

	deps := &Dependencies{
		Ctx:     ctx,
		Stdout:  stdout,
		Stderr:  stderr,
		Logger:  logger,
		Crawler: crawler,
		Cookies: fetcher,
	}
	if cli.Metrics != "" {
		deps.Metrics = mosprom.NewMetrics()
	}
	if cli.Report != "" {
		deps.Report = mosmd.NewReport()
	}

	cmd := &CrawlCmd{
		URLs:        urls,
		MetricsPath: cli.Metrics,
		ReportPath:  cli.Report,
	}
	return cmd.Run(deps)
}

func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}
