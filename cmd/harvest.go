package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"harvester/internal/config"
	"harvester/internal/extract"
	"harvester/internal/fetcher"
	"harvester/internal/harvester"
	"harvester/internal/metrics"
	"harvester/internal/queries"
	"harvester/internal/relevance"
	"harvester/pkg/logger"
	"harvester/pkg/output"
	"harvester/pkg/search/serp"
)

// setupMetricsServer starts the debug listener when configured and returns a
// shutdown function.
func setupMetricsServer(ctx context.Context, addr string) func(ctx context.Context) {
	if addr == "" {
		return func(context.Context) {}
	}

	server := metrics.NewServer(addr)

	go func() {
		logger.Info(ctx, "starting debug listener...", zap.String("addr", addr))
		if err := server.ListenAndServe(); err != nil {
			if !errors.Is(err, http.ErrServerClosed) {
				logger.Error(ctx, "could not start debug listener", zap.Error(err))
			}
		}
	}()

	return func(ctx context.Context) {
		logger.Info(ctx, "stopping debug listener...")
		if err := server.Shutdown(ctx); err != nil {
			logger.Error(ctx, "could not stop debug listener", zap.Error(err))
		}
	}
}

func harvestCommand(cfg *config.Config) *cobra.Command {
	var queriesPath string

	cmd := &cobra.Command{
		Use:   "harvest",
		Short: "Runs the crawl for every query in the queries file and writes the contact CSV",
		Run: func(cmd *cobra.Command, args []string) {
			ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			ctx = logger.WithFields(ctx, zap.String("run_id", uuid.New().String()))

			queryList, err := queries.ReadLinesFile(queriesPath)
			if err != nil {
				logger.Fatal(ctx, "could not read queries file", zap.Error(err))
			}
			if len(queryList) == 0 {
				logger.Fatal(ctx, "queries file is empty", zap.String("path", queriesPath))
			}

			stopMetrics := setupMetricsServer(ctx, cfg.Harvest.MetricsAddr)
			defer stopMetrics(context.Background())

			recorder, err := metrics.New()
			if err != nil {
				logger.Fatal(ctx, "could not create metrics recorder", zap.Error(err))
			}

			engines, err := cfg.Engines()
			if err != nil {
				logger.Fatal(ctx, "could not parse engines", zap.Error(err))
			}

			h := harvester.New(harvester.Deps{
				Providers: serp.ForEngines(&http.Client{Timeout: cfg.Fetch.Timeout}, engines),
				Fetcher: fetcher.New(fetcher.NewHTTPTransport(), fetcher.Options{
					Timeout:     cfg.Fetch.Timeout,
					MaxAttempts: cfg.Fetch.MaxAttempts,
					BaseDelay:   cfg.Fetch.BaseDelay,
					MaxDelay:    cfg.Fetch.MaxDelay,
					PauseMin:    cfg.Fetch.PauseMin,
					PauseMax:    cfg.Fetch.PauseMax,
				}),
				Extractor: extract.New(extract.Options{}),
				Filter:    relevance.New(relevance.DefaultConfig()),
				Metrics:   recorder,
			}, harvester.NewOptions(cfg))

			logger.Info(ctx, "starting harvest",
				zap.Int("queries", len(queryList)),
				zap.Int("engines", len(engines)))

			results := h.Run(ctx, queryList)

			logger.Info(ctx, "harvest finished", zap.Int("contacts", results.Len()))

			if err := output.WriteCSVFile(cfg.Output.CSVPath, results.Records()); err != nil {
				logger.Fatal(ctx, "could not write csv", zap.Error(err))
			}
			logger.Info(ctx, "wrote csv", zap.String("path", cfg.Output.CSVPath))

			if cfg.Output.XLSXPath != "" {
				if err := output.WriteXLSXFile(cfg.Output.XLSXPath, results.Records()); err != nil {
					logger.Fatal(ctx, "could not write xlsx", zap.Error(err))
				}
				logger.Info(ctx, "wrote xlsx", zap.String("path", cfg.Output.XLSXPath))
			}

			if cfg.Output.PerQueryDir != "" {
				if err := output.WritePerQueryCSV(cfg.Output.PerQueryDir, results.ByQuery()); err != nil {
					logger.Fatal(ctx, "could not write per-query csv files", zap.Error(err))
				}
				logger.Info(ctx, "wrote per-query csv files", zap.String("dir", cfg.Output.PerQueryDir))
			}
		},
	}

	cmd.Flags().StringVarP(&queriesPath, "queries", "q", "queries.txt", "Path to the queries file, one query per line")

	return cmd
}
