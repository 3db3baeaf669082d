// Package metrics records run counters through OpenTelemetry and exposes
// them, together with pprof, on an optional debug HTTP listener.
package metrics

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	"go.opentelemetry.io/otel/attribute"
	otelprom "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"harvester/pkg/domain"
)

// DefaultBuckets provides a common set of histogram buckets in seconds
// reused for latency metrics.
var DefaultBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10} //nolint: gochecknoglobals

// Recorder holds the run's instruments. A nil *Recorder is valid and records
// nothing, so callers never need to branch on whether metrics are enabled.
type Recorder struct {
	providerResults metric.Int64Counter
	providerErrors  metric.Int64Counter
	pagesFetched    metric.Int64Counter
	fetchErrors     metric.Int64Counter
	fetchSeconds    metric.Float64Histogram
	candidatesSeen  metric.Int64Counter
	emailsAccepted  metric.Int64Counter
	emailsRejected  metric.Int64Counter
}

// New registers an OpenTelemetry meter backed by the default Prometheus
// registerer and creates the run instruments on it.
func New() (*Recorder, error) {
	exp, err := otelprom.New(otelprom.WithRegisterer(prometheus.DefaultRegisterer))
	if err != nil {
		return nil, fmt.Errorf("could not create otel exporter: %w", err)
	}

	meter := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exp)).Meter("harvester")

	r := &Recorder{}

	if r.providerResults, err = meter.Int64Counter("harvester_provider_results_total",
		metric.WithDescription("Search results returned by providers")); err != nil {
		return nil, err
	}
	if r.providerErrors, err = meter.Int64Counter("harvester_provider_errors_total",
		metric.WithDescription("Provider queries that failed")); err != nil {
		return nil, err
	}
	if r.pagesFetched, err = meter.Int64Counter("harvester_pages_fetched_total",
		metric.WithDescription("Pages fetched successfully")); err != nil {
		return nil, err
	}
	if r.fetchErrors, err = meter.Int64Counter("harvester_fetch_errors_total",
		metric.WithDescription("Page fetches that failed after retries")); err != nil {
		return nil, err
	}
	if r.fetchSeconds, err = meter.Float64Histogram("harvester_fetch_duration_seconds",
		metric.WithDescription("Page fetch latency"),
		metric.WithExplicitBucketBoundaries(DefaultBuckets...)); err != nil {
		return nil, err
	}
	if r.candidatesSeen, err = meter.Int64Counter("harvester_email_candidates_total",
		metric.WithDescription("Email candidates extracted from pages")); err != nil {
		return nil, err
	}
	if r.emailsAccepted, err = meter.Int64Counter("harvester_emails_accepted_total",
		metric.WithDescription("Candidates accepted by the relevance filter")); err != nil {
		return nil, err
	}
	if r.emailsRejected, err = meter.Int64Counter("harvester_emails_rejected_total",
		metric.WithDescription("Candidates rejected by the relevance filter")); err != nil {
		return nil, err
	}

	return r, nil
}

func engineAttr(engine domain.Engine) metric.AddOption {
	return metric.WithAttributes(attribute.String("engine", string(engine)))
}

// ProviderResults counts search results returned by one provider query.
func (r *Recorder) ProviderResults(ctx context.Context, engine domain.Engine, n int) {
	if r == nil {
		return
	}
	r.providerResults.Add(ctx, int64(n), engineAttr(engine))
}

// ProviderError counts a failed provider query.
func (r *Recorder) ProviderError(ctx context.Context, engine domain.Engine) {
	if r == nil {
		return
	}
	r.providerErrors.Add(ctx, 1, engineAttr(engine))
}

// PageFetched counts one successful fetch and observes its latency.
func (r *Recorder) PageFetched(ctx context.Context, seconds float64) {
	if r == nil {
		return
	}
	r.pagesFetched.Add(ctx, 1)
	r.fetchSeconds.Record(ctx, seconds)
}

// FetchError counts one fetch that failed after retries.
func (r *Recorder) FetchError(ctx context.Context) {
	if r == nil {
		return
	}
	r.fetchErrors.Add(ctx, 1)
}

// Candidates counts extracted email candidates.
func (r *Recorder) Candidates(ctx context.Context, n int) {
	if r == nil {
		return
	}
	r.candidatesSeen.Add(ctx, int64(n))
}

// Accepted counts candidates that passed the relevance filter.
func (r *Recorder) Accepted(ctx context.Context, n int) {
	if r == nil {
		return
	}
	r.emailsAccepted.Add(ctx, int64(n))
}

// Rejected counts candidates dropped by the relevance filter.
func (r *Recorder) Rejected(ctx context.Context, n int) {
	if r == nil {
		return
	}
	r.emailsRejected.Add(ctx, int64(n))
}
