package domain

import "strings"

// EmailRecord is one accepted contact signal together with its provenance.
// Records are compared by Address alone for global aggregation; the rest of
// the fields record where and why the address was found.
type EmailRecord struct {
	// Address is the lowercase, validated email address.
	Address string `json:"email"`
	// SourceURL is the page the address was first extracted from.
	SourceURL string `json:"sourceUrl"`
	// Query is the search query whose results led to the source page.
	Query string `json:"query"`
	// PageTitle is the source page's title, when one was available.
	PageTitle string `json:"title,omitempty"`
}

// Domain returns the part of the address after '@', or "" when the address
// has no '@'.
func (r EmailRecord) Domain() string {
	_, dom, ok := strings.Cut(r.Address, "@")
	if !ok {
		return ""
	}

	return dom
}

// LocalPart returns the part of the address before '@'.
func (r EmailRecord) LocalPart() string {
	local, _, _ := strings.Cut(r.Address, "@")

	return local
}

// FetchResult is the outcome of fetching one URL. A failed or non-HTML fetch
// yields StatusOk=false with an empty body; callers treat it as an empty page.
type FetchResult struct {
	// URL is the address that was fetched (after redirects, the original
	// request URL is kept).
	URL string
	// StatusOk reports whether the fetch produced usable HTML content.
	StatusOk bool
	// Body is the raw response body. Empty when StatusOk is false.
	Body string
	// ContentType is the response Content-Type header value.
	ContentType string
}

// CrawlTask is one unit of crawl work: a URL to fetch within the session that
// was seeded for the given query. Tasks are immutable once created.
type CrawlTask struct {
	URL   string
	Query string
}
