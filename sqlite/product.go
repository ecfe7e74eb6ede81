package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"
	"time"

	"github.com/fwojciec/prex"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ prex.ProductService = (*ProductService)(nil)

// ProductService implements prex.ProductService using SQLite.
type ProductService struct {
	db *DB
}

// NewProductService creates a new ProductService.
func NewProductService(db *DB) *ProductService {
	return &ProductService{db: db}
}

// SaveProduct inserts or updates a record keyed by product URL. Re-scraping
// the same product overwrites the stored record but keeps its original ID.
func (s *ProductService) SaveProduct(ctx context.Context, rec *prex.ProductRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	// Reuse the ID of an existing row for the same URL so callers can
	// treat the ID as stable across re-scrapes.
	var existingID string
	err := s.db.QueryRowContext(ctx, "SELECT id FROM products WHERE url = ?", rec.Product.URL).Scan(&existingID)
	switch {
	case err == sql.ErrNoRows:
		rec.ID = uuid.New().String()
	case err != nil:
		return err
	default:
		rec.ID = existingID
	}

	if rec.FetchedAt.IsZero() {
		rec.FetchedAt = time.Now().UTC()
	}

	data, err := json.Marshal(rec.Product)
	if err != nil {
		return prex.Errorf(prex.EINTERNAL, "encoding product record: %v", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO products (id, url, name, brand, price, currency, availability, quality, valid, data, fingerprint, source_url, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			name = excluded.name,
			brand = excluded.brand,
			price = excluded.price,
			currency = excluded.currency,
			availability = excluded.availability,
			quality = excluded.quality,
			valid = excluded.valid,
			data = excluded.data,
			fingerprint = excluded.fingerprint,
			source_url = excluded.source_url,
			fetched_at = excluded.fetched_at
	`, rec.ID, rec.Product.URL, rec.Product.Name, rec.Product.Brand, nullFloat(rec.Product.Price),
		rec.Product.Currency, string(rec.Product.Availability), rec.Product.QualityScore,
		boolToInt(rec.Product.Valid), string(data), rec.Fingerprint, rec.SourceURL,
		rec.FetchedAt.Format(time.RFC3339))

	return err
}

// FindProductByURL retrieves a record by its product URL.
func (s *ProductService) FindProductByURL(ctx context.Context, url string) (*prex.ProductRecord, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, data, fingerprint, source_url, fetched_at
		FROM products
		WHERE url = ?
	`, url)

	rec, err := scanRecord(row.Scan)
	if err == sql.ErrNoRows {
		return nil, prex.Errorf(prex.ENOTFOUND, "product not found")
	}
	if err != nil {
		return nil, err
	}

	return rec, nil
}

// FindProducts retrieves records matching the filter, most recently
// fetched first.
func (s *ProductService) FindProducts(ctx context.Context, filter prex.ProductFilter) ([]*prex.ProductRecord, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, data, fingerprint, source_url, fetched_at FROM products WHERE 1=1")

	if filter.Brand != nil {
		query.WriteString(" AND brand = ? COLLATE NOCASE")
		args = append(args, *filter.Brand)
	}
	if filter.Availability != nil {
		query.WriteString(" AND availability = ?")
		args = append(args, string(*filter.Availability))
	}
	if filter.MinQuality != nil {
		query.WriteString(" AND quality >= ?")
		args = append(args, *filter.MinQuality)
	}

	query.WriteString(" ORDER BY fetched_at DESC")

	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*prex.ProductRecord
	for rows.Next() {
		rec, err := scanRecord(rows.Scan)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}

	return recs, rows.Err()
}

// DeleteProduct permanently removes a record by product URL.
func (s *ProductService) DeleteProduct(ctx context.Context, url string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM products WHERE url = ?", url)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return prex.Errorf(prex.ENOTFOUND, "product not found")
	}

	return nil
}

// scanRecord reads one record row. The scan argument abstracts over
// sql.Row.Scan and sql.Rows.Scan.
func scanRecord(scan func(dest ...any) error) (*prex.ProductRecord, error) {
	var rec prex.ProductRecord
	var data, fetchedAt string

	if err := scan(&rec.ID, &data, &rec.Fingerprint, &rec.SourceURL, &fetchedAt); err != nil {
		return nil, err
	}

	if err := json.Unmarshal([]byte(data), &rec.Product); err != nil {
		return nil, prex.Errorf(prex.EINTERNAL, "decoding product record: %v", err)
	}

	var err error
	rec.FetchedAt, err = parseRFC3339(fetchedAt, "fetched_at")
	if err != nil {
		return nil, err
	}

	return &rec, nil
}

func nullFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
