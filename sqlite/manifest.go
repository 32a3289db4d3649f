package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/fwojciec/mos"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ mos.ManifestService = (*ManifestService)(nil)

// ManifestService implements mos.ManifestService using SQLite.
type ManifestService struct {
	db *DB
}

// NewManifestService creates a new ManifestService.
func NewManifestService(db *DB) *ManifestService {
	return &ManifestService{db: db}
}

const entryColumns = "id, path, image_url, archive_url, status, bytes, checksum, error, updated_at"

// RecordEntry inserts the entry, or replaces the outcome already recorded
// for its path. The entry's ID and UpdatedAt are set from the stored row.
func (s *ManifestService) RecordEntry(ctx context.Context, entry *mos.Entry) error {
	if err := entry.Validate(); err != nil {
		return err
	}

	entry.UpdatedAt = time.Now().UTC()

	var id string
	err := s.db.QueryRowContext(ctx, `
		INSERT INTO entries (`+entryColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			image_url = excluded.image_url,
			archive_url = excluded.archive_url,
			status = excluded.status,
			bytes = excluded.bytes,
			checksum = excluded.checksum,
			error = excluded.error,
			updated_at = excluded.updated_at
		RETURNING id
	`, uuid.New().String(), entry.Path, entry.ImageURL, entry.ArchiveURL, string(entry.Status),
		entry.Bytes, entry.Checksum, entry.Error, entry.UpdatedAt.Format(time.RFC3339)).Scan(&id)
	if err != nil {
		return err
	}

	entry.ID = id
	return nil
}

// FindEntryByPath retrieves the entry recorded for a local path.
func (s *ManifestService) FindEntryByPath(ctx context.Context, path string) (*mos.Entry, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+entryColumns+" FROM entries WHERE path = ?", path)
	entry, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, mos.Errorf(mos.ENOTFOUND, "manifest entry not found")
	}
	return entry, err
}

// FindEntries retrieves entries matching the filter, ordered by path.
func (s *ManifestService) FindEntries(ctx context.Context, filter mos.EntryFilter) ([]*mos.Entry, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + entryColumns + " FROM entries WHERE 1=1")

	if filter.ArchiveURL != nil {
		query.WriteString(" AND archive_url = ?")
		args = append(args, *filter.ArchiveURL)
	}
	if filter.Status != nil {
		query.WriteString(" AND status = ?")
		args = append(args, string(*filter.Status))
	}

	query.WriteString(" ORDER BY path")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []*mos.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanEntry(row scanner) (*mos.Entry, error) {
	var entry mos.Entry
	var status, updatedAt string

	if err := row.Scan(&entry.ID, &entry.Path, &entry.ImageURL, &entry.ArchiveURL, &status,
		&entry.Bytes, &entry.Checksum, &entry.Error, &updatedAt); err != nil {
		return nil, err
	}
	entry.Status = mos.EntryStatus(status)

	var err error
	entry.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at")
	if err != nil {
		return nil, err
	}
	return &entry, nil
}
