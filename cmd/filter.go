package main

import (
	"context"
	"encoding/csv"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"harvester/internal/extract"
	"harvester/internal/relevance"
	"harvester/pkg/domain"
	"harvester/pkg/logger"
	"harvester/pkg/output"
)

// filterCommand re-applies validation and the relevance policy to a results
// CSV produced by an earlier run, so the vocabulary can be tightened without
// crawling again.
func filterCommand() *cobra.Command {
	var inPath, outPath string

	cmd := &cobra.Command{
		Use:   "filter",
		Short: "Re-filters an existing results CSV with the current relevance policy",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()

			records, total, err := readResultsCSV(inPath)
			if err != nil {
				logger.Fatal(ctx, "could not read input csv", zap.Error(err))
			}

			filter := relevance.New(relevance.DefaultConfig())

			kept := records[:0]
			for _, record := range records {
				email := extract.Normalize(record.Address)
				if !extract.Valid(email) || !filter.Accept(email) {
					continue
				}
				record.Address = email
				kept = append(kept, record)
			}

			if err := output.WriteCSVFile(outPath, kept); err != nil {
				logger.Fatal(ctx, "could not write output csv", zap.Error(err))
			}

			logger.Info(ctx, "filtered results",
				zap.Int("input_rows", total),
				zap.Int("kept", len(kept)),
				zap.String("path", outPath))
		},
	}

	cmd.Flags().StringVarP(&inPath, "in", "i", "results/emails.csv", "Input results CSV")
	cmd.Flags().StringVarP(&outPath, "out", "o", "results/emails_filtered.csv", "Output CSV for kept rows")

	return cmd
}

// readResultsCSV loads a results CSV with the standard column layout,
// tolerating files with or without the header row.
func readResultsCSV(path string) ([]domain.EmailRecord, int, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, 0, err
	}
	defer f.Close() //nolint: errcheck

	reader := csv.NewReader(f)
	reader.FieldsPerRecord = len(output.Headers)

	var records []domain.EmailRecord
	total := 0
	for {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, err
		}
		if row[0] == output.Headers[0] && row[2] == output.Headers[2] {
			continue // header row
		}
		total++
		records = append(records, domain.EmailRecord{
			Query:     row[0],
			PageTitle: row[1],
			Address:   row[2],
			SourceURL: row[3],
		})
	}

	return records, total, nil
}
