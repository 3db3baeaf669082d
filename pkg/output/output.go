// Package output renders the final record set to files. CSV is the primary
// format with a fixed column contract; XLSX is offered for consumers that
// want a spreadsheet directly.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	"github.com/xuri/excelize/v2"

	"harvester/pkg/domain"
)

// Headers is the fixed CSV column order. Downstream tooling keys on these
// names, do not reorder.
var Headers = []string{"Query", "Title", "Email", "SourceURL"}

// WriteCSV streams records to w with the fixed header row.
func WriteCSV(w io.Writer, records []domain.EmailRecord) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(Headers); err != nil {
		return fmt.Errorf("cannot write csv header: %w", err)
	}

	for _, record := range records {
		row := []string{record.Query, record.PageTitle, record.Address, record.SourceURL}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("cannot write csv row: %w", err)
		}
	}

	cw.Flush()

	return cw.Error()
}

// WriteCSVFile writes records to path, creating parent directories as needed.
func WriteCSVFile(path string, records []domain.EmailRecord) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := WriteCSV(f, records); err != nil {
		f.Close() //nolint: errcheck,gosec

		return err
	}

	return f.Close()
}

// WriteXLSXFile writes records to an xlsx workbook with a single Results
// sheet carrying the same columns as the CSV output.
func WriteXLSXFile(path string, records []domain.EmailRecord) error {
	const sheet = "Results"

	f := excelize.NewFile()
	defer f.Close() //nolint: errcheck

	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	for i, h := range Headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return err
		}
	}

	for rowIdx, record := range records {
		row := []string{record.Query, record.PageTitle, record.Address, record.SourceURL}
		for colIdx, value := range row {
			cell, err := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheet, cell, value); err != nil {
				return err
			}
		}
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	return f.SaveAs(path)
}

// WritePerQueryCSV writes one CSV file per query partition under dir. File
// names are numbered in stable (sorted query) order to keep them
// filesystem-safe regardless of query contents; the query itself is
// recoverable from the rows.
func WritePerQueryCSV(dir string, partitions map[string][]domain.EmailRecord) error {
	queries := make([]string, 0, len(partitions))
	for query := range partitions {
		queries = append(queries, query)
	}
	sort.Strings(queries)

	for i, query := range queries {
		path := filepath.Join(dir, fmt.Sprintf("query_%03d.csv", i+1))
		if err := WriteCSVFile(path, partitions[query]); err != nil {
			return err
		}
	}

	return nil
}
