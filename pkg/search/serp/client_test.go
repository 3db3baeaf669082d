package serp_test

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"harvester/pkg/domain"
	"harvester/pkg/search/serp"
	"harvester/pkg/serrors"
)

// rtFunc allows using a function as an http.RoundTripper.
type rtFunc func(*http.Request) (*http.Response, error)

func (f rtFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func newTestClient(engine domain.Engine, fn rtFunc) *serp.Client {
	return serp.New(&http.Client{Transport: fn}, engine)
}

func htmlResponse(body string) *http.Response {
	return &http.Response{
		StatusCode: http.StatusOK,
		Body:       io.NopCloser(strings.NewReader(body)),
	}
}

func TestSearchGoogleUnwrapsRedirects(t *testing.T) {
	const page = `<html><body>
<a href="/url?q=https%3A%2F%2Fairline.example%2Fcontact&amp;sa=U&amp;ved=xyz">Airline Contact</a>
<a href="/url?q=https%3A%2F%2Fcargo.example%2F&amp;sa=U">Cargo Ops</a>
<a href="/search?q=next+page">Next</a>
<a href="/url?q=https%3A%2F%2Fairline.example%2Fcontact&amp;sa=U">duplicate</a>
</body></html>`

	c := newTestClient(domain.EngineGoogle, func(r *http.Request) (*http.Response, error) {
		require.Equal(t, "www.google.com", r.URL.Host)
		require.Equal(t, "/search", r.URL.Path)
		require.Equal(t, "airline contact email", r.URL.Query().Get("q"))
		require.Equal(t, "10", r.URL.Query().Get("num"))
		require.NotEmpty(t, r.Header.Get("User-Agent"))

		return htmlResponse(page), nil
	})

	results, err := c.Search(context.Background(), "airline contact email", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, "https://airline.example/contact", results[0].URL)
	require.Equal(t, "Airline Contact", results[0].Title)
	require.Equal(t, "https://cargo.example/", results[1].URL)
}

func TestSearchDuckDuckGoUsesResultAnchors(t *testing.T) {
	const page = `<html><body>
<a class="result__a" href="https://airline.example/">Airline Example</a>
<a class="result__a" href="https://cargo.example/team">Cargo Team</a>
<a href="https://duckduckgo.com/about">About DDG</a>
</body></html>`

	c := newTestClient(domain.EngineDuckDuckGo, func(r *http.Request) (*http.Response, error) {
		require.Equal(t, "duckduckgo.com", r.URL.Host)
		require.Equal(t, "/html/", r.URL.Path)

		return htmlResponse(page), nil
	})

	results, err := c.Search(context.Background(), "airline contact", 10)
	require.NoError(t, err)
	require.Len(t, results, 2)
	require.Equal(t, "https://airline.example/", results[0].URL)
}

func TestSearchBingFiltersOwnDomain(t *testing.T) {
	const page = `<html><body>
<a href="https://www.bing.com/images/search?q=x">Images</a>
<a href="https://airline.example/contact">Airline Contact</a>
<a href="/rewards">Rewards</a>
</body></html>`

	c := newTestClient(domain.EngineBing, func(r *http.Request) (*http.Response, error) {
		require.Equal(t, "www.bing.com", r.URL.Host)

		return htmlResponse(page), nil
	})

	results, err := c.Search(context.Background(), "airline contact", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	require.Equal(t, "https://airline.example/contact", results[0].URL)
}

func TestSearchRespectsLimit(t *testing.T) {
	const page = `<html><body>
<a class="result__a" href="https://a.example/">A</a>
<a class="result__a" href="https://b.example/">B</a>
<a class="result__a" href="https://c.example/">C</a>
</body></html>`

	c := newTestClient(domain.EngineDuckDuckGo, func(*http.Request) (*http.Response, error) {
		return htmlResponse(page), nil
	})

	results, err := c.Search(context.Background(), "q", 2)
	require.NoError(t, err)
	require.Len(t, results, 2)
}

func TestSearchNon2xxIsProviderError(t *testing.T) {
	c := newTestClient(domain.EngineYandex, func(*http.Request) (*http.Response, error) {
		return &http.Response{
			StatusCode: http.StatusForbidden,
			Body:       io.NopCloser(strings.NewReader("captcha")),
		}, nil
	})

	_, err := c.Search(context.Background(), "q", 10)
	require.ErrorIs(t, err, serrors.ErrProvider)
}

func TestSearchTransportErrorIsProviderError(t *testing.T) {
	c := newTestClient(domain.EngineYahoo, func(*http.Request) (*http.Response, error) {
		return nil, io.ErrUnexpectedEOF
	})

	_, err := c.Search(context.Background(), "q", 10)
	require.ErrorIs(t, err, serrors.ErrProvider)
}

func TestForEngines(t *testing.T) {
	providers := serp.ForEngines(http.DefaultClient, domain.Engines())
	require.Len(t, providers, len(domain.Engines()))

	seen := map[domain.Engine]struct{}{}
	for _, p := range providers {
		seen[p.Engine()] = struct{}{}
	}
	require.Len(t, seen, len(domain.Engines()))
}
