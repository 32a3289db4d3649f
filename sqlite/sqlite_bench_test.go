package sqlite_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/mos"
	"github.com/fwojciec/mos/sqlite"
	"github.com/stretchr/testify/require"
)

// BenchmarkRecordEntry compares manifest write performance between WAL and
// rollback journal modes for a crawl recording one entry per image.
func BenchmarkRecordEntry(b *testing.B) {
	b.Run("rollback_journal", func(b *testing.B) {
		benchmarkRecordEntry(b, false)
	})

	b.Run("wal_mode", func(b *testing.B) {
		benchmarkRecordEntry(b, true)
	})
}

func benchmarkRecordEntry(b *testing.B, useWAL bool) {
	b.Helper()

	dbPath := filepath.Join(b.TempDir(), "bench.db")

	db := sqlite.NewDB(dbPath)
	require.NoError(b, db.Open())

	ctx := context.Background()
	mode := "DELETE"
	if useWAL {
		mode = "WAL"
	}
	_, err := db.ExecContext(ctx, "PRAGMA journal_mode = "+mode)
	require.NoError(b, err)

	defer func() {
		db.Close()
		os.Remove(dbPath + "-wal")
		os.Remove(dbPath + "-shm")
	}()

	svc := sqlite.NewManifestService(db)

	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		entry := &mos.Entry{
			Path:       fmt.Sprintf("out/st-stephan/01-05/%04d.jpg", i),
			ImageURL:   fmt.Sprintf("https://img.example.com/%d.jpg", i),
			ArchiveURL: "https://data.matricula-online.eu/de/oesterreich/wien/st-stephan/",
			Status:     mos.StatusDownloaded,
			Bytes:      250_000,
			Checksum:   "00000000deadbeef",
		}
		if err := svc.RecordEntry(ctx, entry); err != nil {
			b.Fatal(err)
		}
	}
}
