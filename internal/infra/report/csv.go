// Package report writes classification results as a CSV table.
package report

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"compliance-prefilter/internal/domain/entity"
)

// Header is the first row of every table.
var Header = []string{"id", "company", "decision", "reason"}

// Write renders rows as CSV with a header line. Fields are quoted only when
// needed and lines end with CRLF.
func Write(w io.Writer, rows []entity.Classification) error {
	cw := csv.NewWriter(w)
	cw.UseCRLF = true

	if err := cw.Write(Header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	for _, row := range rows {
		record := []string{row.ID.String(), row.Company, string(row.Decision), row.Reason}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("write row %s: %w", row.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// WriteFile writes rows to path. The table is written to a temporary file in
// the same directory and renamed into place, so path never holds a partial
// table.
func WriteFile(path string, rows []entity.Classification) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	if err = Write(tmp, rows); err != nil {
		return err
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("sync %s: %w", tmpName, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err = os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename to %s: %w", path, err)
	}
	return nil
}

// FileRepository stores a run's rows as a CSV file.
// It implements repository.ClassificationRepository.
type FileRepository struct {
	Path string
}

// NewFileRepository returns a repository writing to path.
func NewFileRepository(path string) *FileRepository {
	return &FileRepository{Path: path}
}

// SaveAll writes rows to the repository's path, replacing any previous table.
func (r *FileRepository) SaveAll(ctx context.Context, rows []entity.Classification) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := WriteFile(r.Path, rows); err != nil {
		return fmt.Errorf("save classifications to %s: %w", r.Path, err)
	}
	return nil
}
