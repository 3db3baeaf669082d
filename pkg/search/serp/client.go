// Package serp provides search.Provider implementations that scrape the
// public HTML result pages of the supported engines. Each client handles one
// engine: its endpoint, its result selector and its own-domain self-filter.
package serp

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"harvester/pkg/domain"
	"harvester/pkg/search"
	"harvester/pkg/serrors"
)

const userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 " +
	"(KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// Client scrapes one engine's HTML SERP. It is safe for concurrent use.
type Client struct {
	httpClient *http.Client
	engine     domain.Engine
}

// New constructs a Client for the given engine using the provided
// http.Client (which should carry a timeout).
func New(httpClient *http.Client, engine domain.Engine) *Client {
	return &Client{httpClient: httpClient, engine: engine}
}

// Engine implements search.Provider.
func (c *Client) Engine() domain.Engine { return c.engine }

// Search fetches the engine's result page for the query and parses out up to
// limit result links. Any HTTP or parse failure is reported as an ErrProvider
// error; the caller logs it and continues with other providers.
func (c *Client) Search(ctx context.Context, query string, limit int) ([]search.Result, error) {
	endpoint := c.endpoint(query, limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrProvider, err, "could not create request")
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrProvider, err, "%s search failed", c.engine)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, resp.Body)

		return nil, serrors.With(serrors.ErrProvider, "%s search returned status %d", c.engine, resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, serrors.Wrap(serrors.ErrProvider, err, "could not parse %s results", c.engine)
	}

	return c.parse(doc, limit), nil
}

// endpoint builds the engine-specific SERP URL.
func (c *Client) endpoint(query string, limit int) string {
	q := url.QueryEscape(query)
	n := strconv.Itoa(limit)
	switch c.engine {
	case domain.EngineGoogle:
		return "https://www.google.com/search?q=" + q + "&num=" + n
	case domain.EngineBing:
		return "https://www.bing.com/search?q=" + q + "&count=" + n
	case domain.EngineYahoo:
		return "https://search.yahoo.com/search?p=" + q + "&n=" + n
	case domain.EngineYandex:
		return "https://yandex.com/search/?text=" + q + "&numdoc=" + n
	case domain.EngineDuckDuckGo:
		return "https://duckduckgo.com/html/?q=" + q
	default:
		// Engines are validated at startup; this is unreachable in a run.
		return ""
	}
}

// parse extracts result links with the engine's selector, skipping links that
// lead back into the engine's own domain.
func (c *Client) parse(doc *goquery.Document, limit int) []search.Result {
	var results []search.Result
	seen := map[string]struct{}{}
	add := func(link, title string) bool {
		if link == "" || !strings.HasPrefix(link, "http") {
			return true
		}
		if _, dup := seen[link]; dup {
			return true
		}
		seen[link] = struct{}{}
		results = append(results, search.Result{URL: link, Title: strings.TrimSpace(title)})

		return len(results) < limit
	}

	switch c.engine {
	case domain.EngineGoogle:
		doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			href := sel.AttrOr("href", "")
			if !strings.HasPrefix(href, "/url?q=") {
				return true
			}
			actual := strings.TrimPrefix(href, "/url?q=")
			if idx := strings.IndexByte(actual, '&'); idx >= 0 {
				actual = actual[:idx]
			}
			if unescaped, err := url.QueryUnescape(actual); err == nil {
				actual = unescaped
			}

			return add(actual, sel.Text())
		})
	case domain.EngineDuckDuckGo:
		doc.Find("a.result__a").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			return add(sel.AttrOr("href", ""), sel.Text())
		})
	default:
		// Bing, Yahoo and Yandex all expose plain external anchors; the
		// self-filter keeps navigation links out.
		self := c.selfDomain()
		doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			href := sel.AttrOr("href", "")
			if self != "" && strings.Contains(href, self) {
				return true
			}

			return add(href, sel.Text())
		})
	}

	return results
}

func (c *Client) selfDomain() string {
	switch c.engine {
	case domain.EngineBing:
		return "bing.com"
	case domain.EngineYahoo:
		return "yahoo.com"
	case domain.EngineYandex:
		return "yandex"
	default:
		return ""
	}
}

var _ search.Provider = (*Client)(nil)

// ForEngines builds one Client per engine over a shared http.Client.
func ForEngines(httpClient *http.Client, engines []domain.Engine) []search.Provider {
	providers := make([]search.Provider, 0, len(engines))
	for _, engine := range engines {
		providers = append(providers, New(httpClient, engine))
	}

	return providers
}