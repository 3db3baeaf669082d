package main

import (
	"context"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"harvester/internal/queries"
	"harvester/pkg/logger"
)

func queriesCommand() *cobra.Command {
	var (
		countriesPath string
		keywordsPath  string
		outputPath    string
		maxQueries    int
		seed          int64
	)

	cmd := &cobra.Command{
		Use:   "queries",
		Short: "Generates search queries from country and keyword lists",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()

			countries, err := queries.ReadLinesFile(countriesPath)
			if err != nil {
				logger.Fatal(ctx, "could not read countries file", zap.Error(err))
			}
			keywords, err := queries.ReadLinesFile(keywordsPath)
			if err != nil {
				logger.Fatal(ctx, "could not read keywords file", zap.Error(err))
			}

			logger.Info(ctx, "loaded inputs",
				zap.Int("countries", len(countries)),
				zap.Int("keywords", len(keywords)))

			if seed == 0 {
				seed = time.Now().UnixNano()
			}
			generated := queries.Generate(countries, keywords, maxQueries, rand.New(rand.NewSource(seed))) //nolint: gosec

			contents := strings.Join(generated, "\n") + "\n"
			if err := os.WriteFile(outputPath, []byte(contents), 0o644); err != nil { //nolint: gosec
				logger.Fatal(ctx, "could not write queries file", zap.Error(err))
			}

			logger.Info(ctx, "generated queries",
				zap.Int("count", len(generated)),
				zap.String("path", outputPath))
		},
	}

	cmd.Flags().StringVar(&countriesPath, "countries", "queries/countries.txt", "Path to countries list file")
	cmd.Flags().StringVar(&keywordsPath, "keywords", "queries/keywords.txt", "Path to keywords file")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "queries/generated.txt", "Output file for generated queries")
	cmd.Flags().IntVar(&maxQueries, "max-queries", 500, "Maximum number of queries to generate")
	cmd.Flags().Int64Var(&seed, "seed", 0, "Shuffle seed, 0 uses the current time")

	return cmd
}
