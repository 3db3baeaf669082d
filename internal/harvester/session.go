package harvester

import (
	"context"
	"time"

	"go.uber.org/zap"

	"harvester/internal/extract"
	"harvester/internal/frontier"
	"harvester/pkg/aggregate"
	"harvester/pkg/domain"
	"harvester/pkg/logger"
)

// runSession crawls one seed URL: fetch the seed, harvest it, then follow at
// most LinkLimit contact-looking links discovered on the seed page itself.
// Discovered pages are never expanded further, so a session touches at most
// 1+LinkLimit pages regardless of what the pages link to, bounded further by
// the frontier's host budget and page cap.
func (h *harvester) runSession(ctx context.Context, task domain.CrawlTask, seedTitle string, results *aggregate.Set) {
	ctx = logger.WithFields(ctx, zap.String("seed", task.URL))

	session := frontier.NewSession(h.opts.HostPageBudget, h.opts.MaxPagesPerSession)
	if !session.ShouldVisit(task.URL) {
		return
	}

	body, ok := h.fetchPage(ctx, task.URL)
	if !ok {
		return
	}

	title := extract.PageTitle(body)
	if title == "" {
		title = seedTitle
	}
	found := h.harvestPage(ctx, body, task.URL, task.Query, title, results)

	for _, link := range extract.DiscoverLinks(task.URL, body, h.opts.LinkLimit) {
		if ctx.Err() != nil {
			return
		}
		if !session.ShouldVisit(link) {
			continue
		}

		linkBody, ok := h.fetchPage(ctx, link)
		if !ok {
			continue
		}

		linkTitle := extract.PageTitle(linkBody)
		if linkTitle == "" {
			linkTitle = title
		}
		found += h.harvestPage(ctx, linkBody, link, task.Query, linkTitle, results)
	}

	logger.Debug(ctx, "session finished",
		zap.Int("pages", session.Visited()),
		zap.Int("accepted", found))
}

// fetchPage retrieves one page body, recording latency and failures.
func (h *harvester) fetchPage(ctx context.Context, url string) (string, bool) {
	start := time.Now()

	res, err := h.deps.Fetcher.Fetch(ctx, url)
	if err != nil {
		h.deps.Metrics.FetchError(ctx)
		logger.Debug(ctx, "fetch failed", zap.String("url", url), zap.Error(err))

		return "", false
	}
	h.deps.Metrics.PageFetched(ctx, time.Since(start).Seconds())

	return res.Body, true
}

// harvestPage extracts candidates from one page body, filters them, and adds
// survivors to the shared set with this page as provenance. Returns how many
// candidates were accepted (including ones another page already recorded).
func (h *harvester) harvestPage(ctx context.Context,
	body, sourceURL, query, title string,
	results *aggregate.Set) int {
	candidates := h.deps.Extractor.Extract(body)
	h.deps.Metrics.Candidates(ctx, len(candidates))

	accepted := 0
	for _, email := range candidates {
		if !h.deps.Filter.Accept(email) {
			continue
		}
		accepted++
		results.Add(domain.EmailRecord{
			Address:   email,
			SourceURL: sourceURL,
			Query:     query,
			PageTitle: title,
		})
	}
	h.deps.Metrics.Accepted(ctx, accepted)
	h.deps.Metrics.Rejected(ctx, len(candidates)-accepted)

	return accepted
}
