package mos

import (
	"context"
	"io"
)

// WriteFunc writes content to w and returns the number of bytes written.
type WriteFunc func(w io.Writer) (int64, error)

// SaveResult describes a file written by an ImageStore.
type SaveResult struct {
	Bytes    int64
	Checksum string
}

// ImageStore persists downloaded images.
type ImageStore interface {
	// Save writes the output of write to the target path atomically.
	// On any error, including an empty write, no file is left at the
	// target path. Parent directories are created as needed.
	Save(ctx context.Context, target LocalTarget, write WriteFunc) (*SaveResult, error)
}
