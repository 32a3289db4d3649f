package fs

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/mos"
	"github.com/google/uuid"
)

// Ensure ImageStore implements mos.ImageStore at compile time.
var _ mos.ImageStore = (*ImageStore)(nil)

// ImageStore writes images atomically. Content goes to a hidden temporary
// file next to the target, which is renamed into place once complete, so
// an interrupted write never leaves a file at the target path.
type ImageStore struct{}

// NewImageStore creates a new ImageStore.
func NewImageStore() *ImageStore {
	return &ImageStore{}
}

// Save writes the output of write to target.
func (s *ImageStore) Save(ctx context.Context, target mos.LocalTarget, write mos.WriteFunc) (*mos.SaveResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	dir := filepath.Dir(target.Path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("create directory: %w", err)
	}

	tmpPath := TempPath(target.Path)
	f, err := os.OpenFile(tmpPath, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}

	h := xxhash.New()
	n, err := write(io.MultiWriter(f, h))
	if err == nil && n == 0 {
		err = mos.Errorf(mos.EFETCH, "empty image body for %s", filepath.Base(target.Path))
	}
	if err == nil {
		err = f.Sync()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(tmpPath)
		return nil, err
	}

	if err := os.Rename(tmpPath, target.Path); err != nil {
		_ = os.Remove(tmpPath)
		return nil, fmt.Errorf("rename temp file: %w", err)
	}

	return &mos.SaveResult{
		Bytes:    n,
		Checksum: fmt.Sprintf("%016x", h.Sum64()),
	}, nil
}

// TempPath returns a unique hidden temporary path next to path.
func TempPath(path string) string {
	dir, file := filepath.Split(path)
	return filepath.Join(dir, "."+file+"."+uuid.New().String()+".part")
}
