package fs_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/prex"
	"github.com/fwojciec/prex/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func storeRecord(url string) *prex.ProductRecord {
	return &prex.ProductRecord{
		Product: prex.Reconciled{
			Product: prex.Product{Name: "Silk Dress", URL: url},
		},
	}
}

func TestExportStore(t *testing.T) {
	t.Parallel()

	t.Run("records appear only after commit", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		s := fs.NewExportStore(dir, "export")
		ctx := context.Background()

		require.NoError(t, s.Save(ctx, storeRecord("https://shop.example.com/products/dress")))

		_, err := os.Stat(filepath.Join(dir, "export", "products", "dress.json"))
		assert.True(t, os.IsNotExist(err))

		require.NoError(t, s.Commit())

		_, err = os.Stat(filepath.Join(dir, "export", "products", "dress.json"))
		assert.NoError(t, err)
	})

	t.Run("commit replaces a previous export", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		ctx := context.Background()

		first := fs.NewExportStore(dir, "export")
		require.NoError(t, first.Save(ctx, storeRecord("https://shop.example.com/products/old")))
		require.NoError(t, first.Commit())

		second := fs.NewExportStore(dir, "export")
		require.NoError(t, second.Save(ctx, storeRecord("https://shop.example.com/products/new")))
		require.NoError(t, second.Commit())

		_, err := os.Stat(filepath.Join(dir, "export", "products", "old.json"))
		assert.True(t, os.IsNotExist(err))
		_, err = os.Stat(filepath.Join(dir, "export", "products", "new.json"))
		assert.NoError(t, err)
	})

	t.Run("commit writes a manifest", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		s := fs.NewExportStore(dir, "export")
		ctx := context.Background()

		require.NoError(t, s.Save(ctx, storeRecord("https://shop.example.com/products/dress")))
		require.NoError(t, s.Save(ctx, storeRecord("https://shop.example.com/products/tote")))
		require.NoError(t, s.Commit())

		data, err := os.ReadFile(filepath.Join(dir, "export", fs.ManifestName))
		require.NoError(t, err)

		var m fs.Manifest
		require.NoError(t, json.Unmarshal(data, &m))
		assert.Equal(t, 2, m.Count)
		assert.NotEmpty(t, m.Fingerprint)
	})

	t.Run("identical exports share a fingerprint", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		ctx := context.Background()

		manifestFor := func(name string) fs.Manifest {
			s := fs.NewExportStore(dir, name)
			require.NoError(t, s.Save(ctx, storeRecord("https://shop.example.com/products/dress")))
			require.NoError(t, s.Commit())

			data, err := os.ReadFile(filepath.Join(dir, name, fs.ManifestName))
			require.NoError(t, err)
			var m fs.Manifest
			require.NoError(t, json.Unmarshal(data, &m))
			return m
		}

		assert.Equal(t, manifestFor("a").Fingerprint, manifestFor("b").Fingerprint)
	})

	t.Run("abort discards pending records", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		s := fs.NewExportStore(dir, "export")

		require.NoError(t, s.Save(context.Background(), storeRecord("https://shop.example.com/products/dress")))
		require.NoError(t, s.Abort())

		_, err := os.Stat(filepath.Join(dir, "export.tmp"))
		assert.True(t, os.IsNotExist(err))
	})
}
