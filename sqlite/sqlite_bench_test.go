package sqlite_test

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/prex"
	"github.com/fwojciec/prex/sqlite"
	"github.com/stretchr/testify/require"
)

// BenchmarkWALMode compares write performance between WAL and rollback
// journal modes. This simulates a scrape workload: upserting many product
// records into a fresh database.
func BenchmarkWALMode(b *testing.B) {
	b.Run("rollback_journal", func(b *testing.B) {
		benchmarkProductInserts(b, false)
	})

	b.Run("wal_mode", func(b *testing.B) {
		benchmarkProductInserts(b, true)
	})
}

func benchmarkProductInserts(b *testing.B, useWAL bool) {
	b.Helper()

	tmpDir := b.TempDir()
	dbPath := filepath.Join(tmpDir, "bench.db")

	db := sqlite.NewDB(dbPath)
	require.NoError(b, db.Open())

	ctx := context.Background()
	if !useWAL {
		_, err := db.ExecContext(ctx, "PRAGMA journal_mode = DELETE")
		require.NoError(b, err)
	}

	defer func() {
		db.Close()
		os.Remove(dbPath + "-wal")
		os.Remove(dbPath + "-shm")
	}()

	svc := sqlite.NewProductService(db)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		price := 100.0
		rec := &prex.ProductRecord{
			Product: prex.Reconciled{
				Product: prex.Product{
					Name:  fmt.Sprintf("Product %d", i),
					Price: &price,
					URL:   fmt.Sprintf("https://shop.example.com/products/%d", i),
				},
				QualityScore: 0.9,
				Valid:        true,
			},
			SourceURL: "https://shop.example.com",
		}
		require.NoError(b, svc.SaveProduct(ctx, rec))
	}
}
