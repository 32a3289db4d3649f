package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/mos"
)

var _ mos.Navigator = (*LoggingNavigator)(nil)

// LoggingNavigator wraps a Navigator with debug logging of what each
// parsed page offers.
type LoggingNavigator struct {
	next   mos.Navigator
	logger *slog.Logger
}

// NewLoggingNavigator creates a new LoggingNavigator.
func NewLoggingNavigator(next mos.Navigator, logger *slog.Logger) *LoggingNavigator {
	return &LoggingNavigator{next: next, logger: logger}
}

// Parse delegates to the wrapped navigator and logs the page contents.
func (n *LoggingNavigator) Parse(html string, pageURL string) (mos.Document, error) {
	begin := time.Now()
	doc, err := n.next.Parse(html, pageURL)
	if err != nil {
		n.logger.Debug("parse",
			"url", pageURL,
			"duration", time.Since(begin),
			"err", err,
		)
		return nil, err
	}
	name, _ := doc.DisplayName()
	n.logger.Debug("parse",
		"url", pageURL,
		"name", name,
		"records", len(doc.RecordPages()),
		"pages", len(doc.PageLinks()),
		"images", len(doc.Images()),
		"duration", time.Since(begin),
	)
	return doc, nil
}
