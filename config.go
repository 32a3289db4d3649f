package mos

import "time"

// NoRange disables the record page bound.
const NoRange = -1

// DefaultCrawlDelay is the delay between archive requests when none is configured.
const DefaultCrawlDelay = 2 * time.Second

// Config holds the settings of a crawl.
type Config struct {
	// OutputDir is the root of the local directory tree.
	OutputDir string

	// Range bounds a registers page to its first 1+Range record pages.
	// NoRange processes all of them. Ignored for record URLs.
	Range int

	// Deep lays images out as <parish>/<book>/<page> instead of flat files.
	Deep bool

	Naming NamingMode

	// SkipExisting skips images whose target file exists and is non-empty.
	SkipExisting bool

	// CrawlDelay is the minimum spacing between archive requests.
	CrawlDelay time.Duration
}

// Validate returns an error if the configuration is invalid.
func (c *Config) Validate() error {
	if c.OutputDir == "" {
		return Errorf(EINVALID, "output directory required")
	}
	if c.Range < NoRange {
		return Errorf(EINVALID, "range must be a non-negative integer, got %d", c.Range)
	}
	switch c.Naming {
	case NamingDefault, NamingFullname, NamingSimple:
	default:
		return Errorf(EINVALID, "invalid naming mode %d", c.Naming)
	}
	if c.CrawlDelay < 0 {
		return Errorf(EINVALID, "crawl delay must not be negative")
	}
	return nil
}

// Bound returns the number of record pages to process out of total.
func (c *Config) Bound(total int) int {
	return BoundRecords(c.Range, total)
}

// BoundRecords returns how many of total record pages a range permits:
// the first page plus rng further pages, or all of them for NoRange.
func BoundRecords(rng, total int) int {
	if rng <= NoRange || rng+1 >= total {
		return total
	}
	return rng + 1
}
