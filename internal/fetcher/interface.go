// Package fetcher retrieves page content with timeouts, bounded retries and a
// swappable transport. The Transport seam is where a browser-driven client
// for challenge-protected targets plugs in without touching caller code.
package fetcher

import "context"

// Response is the raw outcome of one transport attempt before the retry
// policy classifies it.
type Response struct {
	// StatusCode is the HTTP status code of the response.
	StatusCode int
	// Body is the response body, already read and bounded.
	Body string
	// ContentType is the Content-Type header value.
	ContentType string
}

// Transport performs a single GET without retry semantics. Implementations
// must be safe for concurrent use.
//
//go:generate mockgen -package mockfetcher -source=interface.go -destination=mock/mockfetcher.go *
type Transport interface {
	// Get fetches the URL and returns the raw response. Network-level
	// failures (timeout, reset, DNS) are returned as errors; any response
	// that arrived, whatever its status, is returned as a Response.
	Get(ctx context.Context, url string) (*Response, error)
}
