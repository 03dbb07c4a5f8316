package report

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/xuri/excelize/v2"
)

// writeAtomic writes through a temp file in the target directory and
// renames it over path, so a reader sees either the old file or the new one.
func writeAtomic(path string, write func(w io.Writer) error) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if err := write(tmp); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		return fmt.Errorf("chmod %s: %w", tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", tmpName, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename to %s: %w", path, err)
	}
	return nil
}

// writeCSV writes t to dir/t.file.
func writeCSV(dir string, t table) (string, error) {
	path := filepath.Join(dir, t.file)
	err := writeAtomic(path, func(w io.Writer) error {
		cw := csv.NewWriter(w)
		if err := cw.WriteAll(t.records()); err != nil {
			return fmt.Errorf("write %s: %w", t.file, err)
		}
		return nil
	})
	if err != nil {
		return "", err
	}
	return path, nil
}

// writeWorkbook writes every table as one sheet of an XLSX workbook.
// Currency cells are stored as numbers rounded to cents.
func writeWorkbook(path string, tables []table) error {
	f := excelize.NewFile()
	defer f.Close()

	for i, t := range tables {
		if i == 0 {
			if err := f.SetSheetName(f.GetSheetName(0), t.sheet); err != nil {
				return fmt.Errorf("rename sheet: %w", err)
			}
		} else if _, err := f.NewSheet(t.sheet); err != nil {
			return fmt.Errorf("create sheet %s: %w", t.sheet, err)
		}

		header := make([]any, len(t.header))
		for c, h := range t.header {
			header[c] = h
		}
		if err := f.SetSheetRow(t.sheet, "A1", &header); err != nil {
			return fmt.Errorf("write %s header: %w", t.sheet, err)
		}

		for r, row := range t.rows {
			cells := make([]any, len(row))
			for c, v := range row {
				if money, ok := v.(float64); ok {
					v = roundCents(money)
				}
				cells[c] = v
			}
			cell, err := excelize.CoordinatesToCellName(1, r+2)
			if err != nil {
				return err
			}
			if err := f.SetSheetRow(t.sheet, cell, &cells); err != nil {
				return fmt.Errorf("write %s row %d: %w", t.sheet, r+1, err)
			}
		}
	}

	return writeAtomic(path, func(w io.Writer) error {
		if _, err := f.WriteTo(w); err != nil {
			return fmt.Errorf("write workbook: %w", err)
		}
		return nil
	})
}
