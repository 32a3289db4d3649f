package mos

import (
	"context"
	"time"
)

// EntryStatus is the outcome of an image download attempt.
type EntryStatus string

// Entry statuses.
const (
	StatusDownloaded EntryStatus = "downloaded"
	StatusSkipped    EntryStatus = "skipped"
	StatusFailed     EntryStatus = "failed"
)

// Entry records the latest outcome for one local image path.
type Entry struct {
	ID         string      `json:"id"`
	Path       string      `json:"path"`
	ImageURL   string      `json:"imageUrl"`
	ArchiveURL string      `json:"archiveUrl"`
	Status     EntryStatus `json:"status"`
	Bytes      int64       `json:"bytes"`
	Checksum   string      `json:"checksum"`
	Error      string      `json:"error"`
	UpdatedAt  time.Time   `json:"updatedAt"`
}

// Validate returns an error if the entry contains invalid fields.
func (e *Entry) Validate() error {
	if e.Path == "" {
		return Errorf(EINVALID, "manifest entry path required")
	}
	switch e.Status {
	case StatusDownloaded, StatusSkipped, StatusFailed:
	default:
		return Errorf(EINVALID, "invalid manifest entry status %q", e.Status)
	}
	return nil
}

// ManifestService records download outcomes.
type ManifestService interface {
	// RecordEntry inserts or replaces the entry for entry.Path.
	RecordEntry(ctx context.Context, entry *Entry) error

	// FindEntryByPath retrieves the entry for a local path.
	// Returns ENOTFOUND if no outcome was recorded.
	FindEntryByPath(ctx context.Context, path string) (*Entry, error)

	// FindEntries retrieves entries matching the filter.
	FindEntries(ctx context.Context, filter EntryFilter) ([]*Entry, error)
}

// EntryFilter represents a filter for FindEntries.
type EntryFilter struct {
	ArchiveURL *string      `json:"archiveUrl"`
	Status     *EntryStatus `json:"status"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
