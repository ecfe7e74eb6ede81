// Package fs provides file-based export of scraped product records.
package fs

import (
	"context"
	"encoding/json"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/prex"
)

// URLToPath converts a product URL to a relative file path.
// Example: https://shop.example.com/products/silk-dress → products/silk-dress.json
func URLToPath(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", err
	}

	path := u.Path

	// Handle root or trailing slash → index.json
	if path == "" || path == "/" {
		return "index.json", nil
	}

	// Remove leading slash
	path = strings.TrimPrefix(path, "/")

	// Trailing slash becomes index.json in that directory
	if strings.HasSuffix(path, "/") {
		return path + "index.json", nil
	}

	// Otherwise append .json
	return path + ".json", nil
}

// FormatRecord renders a record as indented JSON.
func FormatRecord(rec *prex.ProductRecord) ([]byte, error) {
	return json.MarshalIndent(rec, "", "  ")
}

// Writer writes product records as JSON files to a directory, one file per
// product, mirroring the shop's URL structure.
type Writer struct {
	baseDir string
}

// NewWriter creates a new Writer that writes to the given base directory.
func NewWriter(baseDir string) *Writer {
	return &Writer{baseDir: baseDir}
}

// WriteRecord writes a record to disk as a JSON file.
func (w *Writer) WriteRecord(ctx context.Context, rec *prex.ProductRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}

	relPath, err := URLToPath(rec.Product.URL)
	if err != nil {
		return err
	}

	fullPath := filepath.Join(w.baseDir, relPath)

	// Create parent directories
	dir := filepath.Dir(fullPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	content, err := FormatRecord(rec)
	if err != nil {
		return err
	}
	return os.WriteFile(fullPath, content, 0644)
}
