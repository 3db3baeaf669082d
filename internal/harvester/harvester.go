package harvester

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"harvester/internal/config"
	"harvester/internal/extract"
	"harvester/internal/fetcher"
	"harvester/internal/metrics"
	"harvester/internal/relevance"
	"harvester/internal/worker"
	"harvester/pkg/aggregate"
	"harvester/pkg/domain"
	"harvester/pkg/logger"
	"harvester/pkg/search"
)

// Options configure the crawl limits for a run. These settings are typically
// derived from application configuration.
type Options struct {
	// URLLimitPerQuery caps how many result URLs are taken from each engine
	// per query.
	URLLimitPerQuery int
	// MaxPagesPerSession caps total pages fetched while processing one seed.
	MaxPagesPerSession int
	// HostPageBudget caps pages fetched from one host within a session.
	HostPageBudget int
	// LinkLimit caps contact links followed from each seed page.
	LinkLimit int
	// WorkerPoolSize sets how many sessions run concurrently.
	WorkerPoolSize int
	// SkipHosts are hosts (and their subdomains) never fetched. Social and
	// video platforms gate their pages behind logins, so fetching them only
	// burns the page budget.
	SkipHosts map[string]struct{}
}

// NewOptions constructs an Options value from the provided application config.
func NewOptions(cfg *config.Config) Options {
	return Options{
		URLLimitPerQuery:   cfg.Harvest.URLLimitPerQuery,
		MaxPagesPerSession: cfg.Harvest.MaxPagesPerSession,
		HostPageBudget:     cfg.Harvest.HostPageBudget,
		LinkLimit:          cfg.Harvest.LinkLimit,
		WorkerPoolSize:     cfg.Harvest.WorkerPoolSize,
		SkipHosts:          relevance.SetOf(relevance.DefaultSocialHosts()),
	}
}

// Deps are the collaborators a run needs.
type Deps struct {
	Providers []search.Provider
	Fetcher   *fetcher.Fetcher
	Extractor *extract.Extractor
	Filter    *relevance.Filter
	Metrics   *metrics.Recorder
}

type harvester struct {
	opts Options
	deps Deps
}

// New creates a Harvester with the given collaborators and limits.
func New(deps Deps, opts Options) Harvester {
	return &harvester{opts: opts, deps: deps}
}

var _ Harvester = (*harvester)(nil)

// Run processes queries sequentially; within a query, providers are asked in
// parallel and each fresh result URL becomes one session on the pool. URLs
// are de-duplicated globally across queries in normalized form, so a URL
// surfaced by several engines or queries is crawled once, attributed to the
// first query that surfaced it.
func (h *harvester) Run(ctx context.Context, queries []string) *aggregate.Set {
	results := aggregate.NewSet()
	seen := map[string]struct{}{}

	pool := worker.NewPool(h.opts.WorkerPoolSize)
	pool.Start(ctx)
	defer pool.Close()

	for i, query := range queries {
		if ctx.Err() != nil {
			logger.Info(ctx, "run cancelled",
				zap.Int("queries_done", i),
				zap.Int("queries_total", len(queries)))

			break
		}

		qlog := logger.WithFields(ctx, zap.String("query", query))
		logger.Info(qlog, "processing query", zap.Int("index", i+1), zap.Int("total", len(queries)))

		for _, result := range h.collect(qlog, query) {
			norm, err := NormalizeURL(result.URL)
			if err != nil {
				continue
			}
			if h.skipURL(norm) {
				continue
			}
			if _, dup := seen[norm]; dup {
				continue
			}
			seen[norm] = struct{}{}

			task := domain.CrawlTask{URL: norm, Query: query}
			seedTitle := result.Title
			if err := pool.Submit(qlog, func(ctx context.Context) {
				h.runSession(ctx, task, seedTitle, results)
			}); err != nil {
				return results
			}
		}
	}

	return results
}

// collect fans the query out to every provider and merges their results.
// Provider failures are logged and skipped; one broken engine never stops a
// run.
func (h *harvester) collect(ctx context.Context, query string) []search.Result {
	var (
		mu  sync.Mutex
		all []search.Result
		wg  sync.WaitGroup
	)

	for _, provider := range h.deps.Providers {
		wg.Add(1)

		go func(provider search.Provider) {
			defer wg.Done()

			results, err := provider.Search(ctx, query, h.opts.URLLimitPerQuery)
			if err != nil {
				h.deps.Metrics.ProviderError(ctx, provider.Engine())
				logger.Warn(ctx, "search provider failed",
					zap.String("engine", provider.Engine().String()),
					zap.Error(err))

				return
			}
			h.deps.Metrics.ProviderResults(ctx, provider.Engine(), len(results))

			mu.Lock()
			all = append(all, results...)
			mu.Unlock()
		}(provider)
	}
	wg.Wait()

	return all
}

// skipURL reports whether the normalized URL sits on a skip host or one of
// its subdomains.
func (h *harvester) skipURL(normURL string) bool {
	host := hostOf(normURL)
	if host == "" {
		return true
	}

	for skip := range h.opts.SkipHosts {
		if host == skip || strings.HasSuffix(host, "."+skip) {
			return true
		}
	}

	return false
}

func hostOf(normURL string) string {
	rest, ok := strings.CutPrefix(normURL, "https://")
	if !ok {
		rest, ok = strings.CutPrefix(normURL, "http://")
	}
	if !ok {
		return ""
	}
	host, _, _ := strings.Cut(rest, "/")
	host, _, _ = strings.Cut(host, ":")

	return host
}
