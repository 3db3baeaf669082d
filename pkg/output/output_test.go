package output_test

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"harvester/pkg/domain"
	"harvester/pkg/output"
)

func sampleRecords() []domain.EmailRecord {
	return []domain.EmailRecord{
		{
			Address:   "info@airline.example",
			SourceURL: "https://airline.example/contact",
			Query:     "airline contact email",
			PageTitle: "Contact Us",
		},
		{
			Address:   "sales@cargo.example",
			SourceURL: "https://cargo.example",
			Query:     "cargo gsa email",
			PageTitle: "",
		},
	}
}

func TestWriteCSVHeaderAndRows(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, output.WriteCSV(&buf, sampleRecords()))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	require.Equal(t, []string{"Query", "Title", "Email", "SourceURL"}, rows[0])
	require.Equal(t, []string{"airline contact email", "Contact Us", "info@airline.example", "https://airline.example/contact"}, rows[1])
	require.Equal(t, []string{"cargo gsa email", "", "sales@cargo.example", "https://cargo.example"}, rows[2])
}

func TestWriteCSVEmptySetStillWritesHeader(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, output.WriteCSV(&buf, nil))

	rows, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	require.Equal(t, []string{"Query", "Title", "Email", "SourceURL"}, rows[0])
}

func TestWriteCSVFileCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "results.csv")
	require.NoError(t, output.WriteCSVFile(path, sampleRecords()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "info@airline.example")
}

func TestWriteXLSXFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.xlsx")
	require.NoError(t, output.WriteXLSXFile(path, sampleRecords()))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close() //nolint: errcheck

	rows, err := f.GetRows("Results")
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(rows), 3)
	require.Equal(t, []string{"Query", "Title", "Email", "SourceURL"}, rows[0])
	require.Equal(t, "info@airline.example", rows[1][2])
}

func TestWritePerQueryCSV(t *testing.T) {
	dir := t.TempDir()
	partitions := map[string][]domain.EmailRecord{
		"query b": {{Address: "b@x.example", Query: "query b"}},
		"query a": {{Address: "a@x.example", Query: "query a"}},
	}
	require.NoError(t, output.WritePerQueryCSV(dir, partitions))

	first, err := os.ReadFile(filepath.Join(dir, "query_001.csv"))
	require.NoError(t, err)
	require.Contains(t, string(first), "a@x.example")

	second, err := os.ReadFile(filepath.Join(dir, "query_002.csv"))
	require.NoError(t, err)
	require.Contains(t, string(second), "b@x.example")
}
