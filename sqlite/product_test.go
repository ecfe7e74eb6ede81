package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/fwojciec/prex"
	"github.com/fwojciec/prex/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustOpenDB(t *testing.T) *sqlite.DB {
	t.Helper()

	db := sqlite.NewDB(":memory:")
	require.NoError(t, db.Open())
	t.Cleanup(func() { db.Close() })
	return db
}

func testRecord(url, name, brand string, price float64, quality float64) *prex.ProductRecord {
	return &prex.ProductRecord{
		Product: prex.Reconciled{
			Product: prex.Product{
				Name:         name,
				Price:        &price,
				Currency:     "USD",
				Brand:        brand,
				URL:          url,
				Image:        "https://shop.example.com/img.jpg",
				Availability: prex.InStock,
			},
			QualityScore: quality,
			Valid:        true,
		},
		Fingerprint: "abc123",
		SourceURL:   "https://shop.example.com/collections/all",
	}
}

func TestProductService_SaveProduct(t *testing.T) {
	t.Parallel()

	t.Run("assigns an ID and persists the record", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewProductService(db)
		ctx := context.Background()

		rec := testRecord("https://shop.example.com/products/dress", "Silk Dress", "Gucci", 1200, 1.0)
		require.NoError(t, s.SaveProduct(ctx, rec))
		assert.NotEmpty(t, rec.ID)
		assert.False(t, rec.FetchedAt.IsZero())

		got, err := s.FindProductByURL(ctx, "https://shop.example.com/products/dress")
		require.NoError(t, err)
		assert.Equal(t, rec.ID, got.ID)
		assert.Equal(t, "Silk Dress", got.Product.Name)
		require.NotNil(t, got.Product.Price)
		assert.Equal(t, 1200.0, *got.Product.Price)
		assert.Equal(t, "abc123", got.Fingerprint)
	})

	t.Run("re-saving the same URL keeps the ID and updates fields", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewProductService(db)
		ctx := context.Background()

		first := testRecord("https://shop.example.com/products/tote", "Canvas Tote", "", 95, 0.8)
		require.NoError(t, s.SaveProduct(ctx, first))

		second := testRecord("https://shop.example.com/products/tote", "Canvas Tote Bag", "Prada", 89, 1.0)
		require.NoError(t, s.SaveProduct(ctx, second))
		assert.Equal(t, first.ID, second.ID)

		recs, err := s.FindProducts(ctx, prex.ProductFilter{})
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, "Canvas Tote Bag", recs[0].Product.Name)
		assert.Equal(t, "Prada", recs[0].Product.Brand)
	})

	t.Run("rejects a record without a URL", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewProductService(db)

		err := s.SaveProduct(context.Background(), &prex.ProductRecord{})
		assert.Equal(t, prex.EINVALID, prex.ErrorCode(err))
	})
}

func TestProductService_FindProductByURL(t *testing.T) {
	t.Parallel()

	t.Run("returns ENOTFOUND for a missing URL", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewProductService(db)

		_, err := s.FindProductByURL(context.Background(), "https://shop.example.com/products/missing")
		assert.Equal(t, prex.ENOTFOUND, prex.ErrorCode(err))
	})
}

func TestProductService_FindProducts(t *testing.T) {
	t.Parallel()

	seed := func(t *testing.T, s *sqlite.ProductService) {
		t.Helper()
		ctx := context.Background()

		a := testRecord("https://shop.example.com/products/dress", "Silk Dress", "Gucci", 1200, 1.0)
		a.FetchedAt = time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
		require.NoError(t, s.SaveProduct(ctx, a))

		b := testRecord("https://shop.example.com/products/tote", "Canvas Tote", "Prada", 95, 0.7)
		b.FetchedAt = time.Date(2026, 8, 2, 10, 0, 0, 0, time.UTC)
		b.Product.Availability = prex.OutOfStock
		require.NoError(t, s.SaveProduct(ctx, b))

		c := testRecord("https://shop.example.com/products/scarf", "Wool Scarf", "Gucci", 250, 0.9)
		c.FetchedAt = time.Date(2026, 8, 3, 10, 0, 0, 0, time.UTC)
		require.NoError(t, s.SaveProduct(ctx, c))
	}

	t.Run("returns all records most recent first", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewProductService(db)
		seed(t, s)

		recs, err := s.FindProducts(context.Background(), prex.ProductFilter{})
		require.NoError(t, err)
		require.Len(t, recs, 3)
		assert.Equal(t, "Wool Scarf", recs[0].Product.Name)
		assert.Equal(t, "Silk Dress", recs[2].Product.Name)
	})

	t.Run("filters by brand", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewProductService(db)
		seed(t, s)

		brand := "Gucci"
		recs, err := s.FindProducts(context.Background(), prex.ProductFilter{Brand: &brand})
		require.NoError(t, err)
		assert.Len(t, recs, 2)
	})

	t.Run("filters by availability", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewProductService(db)
		seed(t, s)

		avail := prex.OutOfStock
		recs, err := s.FindProducts(context.Background(), prex.ProductFilter{Availability: &avail})
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, "Canvas Tote", recs[0].Product.Name)
	})

	t.Run("filters by minimum quality", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewProductService(db)
		seed(t, s)

		min := 0.9
		recs, err := s.FindProducts(context.Background(), prex.ProductFilter{MinQuality: &min})
		require.NoError(t, err)
		assert.Len(t, recs, 2)
	})

	t.Run("applies limit and offset", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewProductService(db)
		seed(t, s)

		recs, err := s.FindProducts(context.Background(), prex.ProductFilter{Limit: 1, Offset: 1})
		require.NoError(t, err)
		require.Len(t, recs, 1)
		assert.Equal(t, "Canvas Tote", recs[0].Product.Name)
	})
}

func TestProductService_DeleteProduct(t *testing.T) {
	t.Parallel()

	t.Run("deletes an existing record", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewProductService(db)
		ctx := context.Background()

		rec := testRecord("https://shop.example.com/products/dress", "Silk Dress", "Gucci", 1200, 1.0)
		require.NoError(t, s.SaveProduct(ctx, rec))

		require.NoError(t, s.DeleteProduct(ctx, "https://shop.example.com/products/dress"))

		_, err := s.FindProductByURL(ctx, "https://shop.example.com/products/dress")
		assert.Equal(t, prex.ENOTFOUND, prex.ErrorCode(err))
	})

	t.Run("returns ENOTFOUND for a missing URL", func(t *testing.T) {
		t.Parallel()

		db := mustOpenDB(t)
		s := sqlite.NewProductService(db)

		err := s.DeleteProduct(context.Background(), "https://shop.example.com/products/missing")
		assert.Equal(t, prex.ENOTFOUND, prex.ErrorCode(err))
	})
}
