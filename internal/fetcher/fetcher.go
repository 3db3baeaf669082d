package fetcher

import (
	"context"
	"math/rand"
	"net/http"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"

	"harvester/pkg/domain"
	"harvester/pkg/logger"
	"harvester/pkg/serrors"
)

// Options configure timeouts, the retry policy and the politeness pause.
type Options struct {
	// Timeout bounds each individual attempt.
	Timeout time.Duration
	// MaxAttempts is the total number of tries for retryable failures.
	MaxAttempts int
	// BaseDelay seeds the exponential backoff (base × 2^attempt).
	BaseDelay time.Duration
	// MaxDelay caps the backoff interval.
	MaxDelay time.Duration
	// PauseMin/PauseMax bound the randomized delay taken after each fetch.
	// A zero PauseMax disables pacing, which tests rely on.
	PauseMin time.Duration
	PauseMax time.Duration
}

func (o *Options) withDefaults() Options {
	out := *o
	if out.Timeout <= 0 {
		out.Timeout = 15 * time.Second
	}
	if out.MaxAttempts <= 0 {
		out.MaxAttempts = 3
	}
	if out.BaseDelay <= 0 {
		out.BaseDelay = 600 * time.Millisecond
	}
	if out.MaxDelay <= 0 {
		out.MaxDelay = 10 * time.Second
	}

	return out
}

// Fetcher wraps a Transport with the retry/backoff policy. It holds no crawl
// state; all session bookkeeping stays with the caller.
type Fetcher struct {
	transport Transport
	opts      Options
}

// New constructs a Fetcher over the given transport.
func New(transport Transport, opts Options) *Fetcher {
	return &Fetcher{transport: transport, opts: opts.withDefaults()}
}

// Fetch retrieves the URL, retrying transient failures (network errors, HTTP
// 429 and 5xx) with exponential backoff up to MaxAttempts. Every other
// failure short-circuits. The returned FetchResult has StatusOk=false with an
// empty body for any failure, so callers can always treat a failed URL as an
// empty page; the error carries the semantic kind for logging.
func (f *Fetcher) Fetch(ctx context.Context, rawURL string) (domain.FetchResult, error) {
	failed := domain.FetchResult{URL: rawURL}

	var resp *Response
	attempt := func() error {
		attemptCtx, cancel := context.WithTimeout(ctx, f.opts.Timeout)
		defer cancel()

		r, err := f.transport.Get(attemptCtx, rawURL)
		if err != nil {
			return serrors.Wrap(serrors.ErrTransient, err, "request failed")
		}
		switch {
		case r.StatusCode == http.StatusTooManyRequests:
			return serrors.With(serrors.ErrRateLimited, "status %d", r.StatusCode)
		case r.StatusCode >= 500:
			return serrors.With(serrors.ErrTransient, "status %d", r.StatusCode)
		case r.StatusCode < 200 || r.StatusCode >= 300:
			return backoff.Permanent(serrors.With(serrors.ErrFetchFailed, "status %d", r.StatusCode))
		case !isHTML(r.ContentType):
			return backoff.Permanent(serrors.With(serrors.ErrMalformedContent,
				"content type %q", r.ContentType))
		}
		resp = r

		return nil
	}

	bo := backoff.NewExponentialBackOff()
	bo.InitialInterval = f.opts.BaseDelay
	bo.Multiplier = 2
	bo.MaxInterval = f.opts.MaxDelay
	bo.MaxElapsedTime = 0
	policy := backoff.WithContext(backoff.WithMaxRetries(bo, uint64(f.opts.MaxAttempts-1)), ctx)

	err := backoff.Retry(attempt, policy)
	f.pause(ctx)
	if err != nil {
		logger.Debug(ctx, "fetch failed", zap.String("url", rawURL), zap.Error(err))

		return failed, err
	}

	return domain.FetchResult{
		URL:         rawURL,
		StatusOk:    true,
		Body:        resp.Body,
		ContentType: resp.ContentType,
	}, nil
}

// pause sleeps a random duration inside the configured range, returning early
// when the context is canceled.
func (f *Fetcher) pause(ctx context.Context) {
	if f.opts.PauseMax <= 0 {
		return
	}
	span := f.opts.PauseMax - f.opts.PauseMin
	d := f.opts.PauseMin
	if span > 0 {
		d += time.Duration(rand.Int63n(int64(span))) //nolint: gosec
	}
	select {
	case <-ctx.Done():
	case <-time.After(d):
	}
}

func isHTML(contentType string) bool {
	ct := strings.ToLower(contentType)

	return strings.Contains(ct, "text/html") || strings.Contains(ct, "application/xhtml")
}
