package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/prex"
)

// ExportStore writes product records with atomic update semantics.
// Records are saved to a temporary directory, then moved atomically on
// Commit, so readers never observe a half-written export.
type ExportStore struct {
	baseDir string
	name    string
	writer  *Writer
	count   int
	digest  *xxhash.Digest
}

// Manifest summarizes a committed export. The fingerprint covers every
// record payload in save order, so two exports of the same data compare
// equal without walking the tree.
type Manifest struct {
	Count       int    `json:"count"`
	Fingerprint string `json:"fingerprint"`
}

// ManifestName is the manifest file written at the export root on Commit.
const ManifestName = "manifest.json"

// NewExportStore creates a new ExportStore.
// baseDir is the parent directory, name is the output directory name.
// Files are saved to baseDir/name.tmp and moved to baseDir/name on Commit.
func NewExportStore(baseDir, name string) *ExportStore {
	s := &ExportStore{
		baseDir: baseDir,
		name:    name,
		digest:  xxhash.New(),
	}
	s.writer = NewWriter(s.tempDir())
	return s
}

func (s *ExportStore) tempDir() string {
	return filepath.Join(s.baseDir, s.name+".tmp")
}

func (s *ExportStore) finalDir() string {
	return filepath.Join(s.baseDir, s.name)
}

// Save writes one record into the pending export.
func (s *ExportStore) Save(ctx context.Context, rec *prex.ProductRecord) error {
	if err := s.writer.WriteRecord(ctx, rec); err != nil {
		return err
	}

	content, err := FormatRecord(rec)
	if err != nil {
		return err
	}
	s.count++
	_, _ = s.digest.Write(content)
	return nil
}

// Commit writes the export manifest and atomically replaces the previous
// export with the pending one.
func (s *ExportStore) Commit() error {
	m := Manifest{
		Count:       s.count,
		Fingerprint: fmt.Sprintf("%x", s.digest.Sum64()),
	}
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.tempDir(), 0755); err != nil {
		return err
	}
	if err := os.WriteFile(filepath.Join(s.tempDir(), ManifestName), data, 0644); err != nil {
		return err
	}

	// Remove existing final directory if present
	if err := os.RemoveAll(s.finalDir()); err != nil {
		return err
	}

	// Atomically rename temp to final
	if err := os.Rename(s.tempDir(), s.finalDir()); err != nil {
		return err
	}

	return nil
}

// Abort discards the pending export.
func (s *ExportStore) Abort() error {
	return os.RemoveAll(s.tempDir())
}
