package mock

import (
	"context"

	"github.com/fwojciec/mos"
)

var (
	_ mos.ImageStore      = (*ImageStore)(nil)
	_ mos.ManifestService = (*ManifestService)(nil)
)

// ImageStore is a mock implementation of mos.ImageStore.
type ImageStore struct {
	SaveFn func(ctx context.Context, target mos.LocalTarget, write mos.WriteFunc) (*mos.SaveResult, error)
}

func (s *ImageStore) Save(ctx context.Context, target mos.LocalTarget, write mos.WriteFunc) (*mos.SaveResult, error) {
	return s.SaveFn(ctx, target, write)
}

// ManifestService is a mock implementation of mos.ManifestService.
type ManifestService struct {
	RecordEntryFn     func(ctx context.Context, entry *mos.Entry) error
	FindEntryByPathFn func(ctx context.Context, path string) (*mos.Entry, error)
	FindEntriesFn     func(ctx context.Context, filter mos.EntryFilter) ([]*mos.Entry, error)
}

func (s *ManifestService) RecordEntry(ctx context.Context, entry *mos.Entry) error {
	return s.RecordEntryFn(ctx, entry)
}

func (s *ManifestService) FindEntryByPath(ctx context.Context, path string) (*mos.Entry, error) {
	return s.FindEntryByPathFn(ctx, path)
}

func (s *ManifestService) FindEntries(ctx context.Context, filter mos.EntryFilter) ([]*mos.Entry, error) {
	return s.FindEntriesFn(ctx, filter)
}
