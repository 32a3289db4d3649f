package fs_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/mos"
	"github.com/fwojciec/mos/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTracker_ShouldSkip(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	complete := filepath.Join(dir, "complete.jpg")
	empty := filepath.Join(dir, "empty.jpg")
	require.NoError(t, os.WriteFile(complete, []byte("jpeg"), 0644))
	require.NoError(t, os.WriteFile(empty, nil, 0644))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "subdir.jpg"), 0755))

	tests := []struct {
		name         string
		skipExisting bool
		path         string
		want         bool
	}{
		{name: "skips complete file", skipExisting: true, path: complete, want: true},
		{name: "retries zero-byte file", skipExisting: true, path: empty, want: false},
		{name: "fetches missing file", skipExisting: true, path: filepath.Join(dir, "missing.jpg"), want: false},
		{name: "ignores directories", skipExisting: true, path: filepath.Join(dir, "subdir.jpg"), want: false},
		{name: "always fetches when disabled", skipExisting: false, path: complete, want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			tracker := fs.NewTracker(tt.skipExisting)

			assert.Equal(t, tt.want, tracker.ShouldSkip(mos.LocalTarget{Path: tt.path}))
		})
	}
}
