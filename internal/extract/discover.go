package extract

import (
	"net/url"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// DefaultLinkLimit bounds how many contact-page links a seed page may
// contribute to its session.
const DefaultLinkLimit = 4

// contactKeywords mark anchors that likely lead to a page carrying operator
// contacts. Matching is a case-insensitive substring test on the raw href.
var contactKeywords = []string{
	"contact",
	"kontakt",
	"about",
	"team",
	"company",
	"support",
	"services",
	"locations",
	"branches",
	"offices",
	"directions",
}

// DiscoverLinks parses the page HTML and returns up to limit same-host URLs
// whose href contains a contact keyword. Anchors with mailto:, javascript: or
// fragment-only hrefs are skipped, relative hrefs are resolved against
// baseURL, and cross-host links are never returned. The result order follows
// document order and is recomputed from scratch on every call.
func DiscoverLinks(baseURL, body string, limit int) []string {
	if limit <= 0 {
		limit = DefaultLinkLimit
	}
	base, err := url.Parse(baseURL)
	if err != nil || base.Hostname() == "" {
		return nil
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return nil
	}

	baseHost := strings.ToLower(base.Hostname())
	seen := map[string]struct{}{}
	var links []string
	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href := strings.TrimSpace(sel.AttrOr("href", ""))
		if href == "" ||
			strings.HasPrefix(href, "mailto:") ||
			strings.HasPrefix(href, "javascript:") ||
			strings.HasPrefix(href, "#") {
			return true
		}
		ref, err := url.Parse(href)
		if err != nil {
			return true
		}
		dest := base.ResolveReference(ref)
		if !strings.EqualFold(dest.Hostname(), baseHost) {
			return true
		}
		lowered := strings.ToLower(href)
		matched := false
		for _, keyword := range contactKeywords {
			if strings.Contains(lowered, keyword) {
				matched = true

				break
			}
		}
		if !matched {
			return true
		}
		resolved := dest.String()
		if _, dup := seen[resolved]; dup {
			return true
		}
		seen[resolved] = struct{}{}
		links = append(links, resolved)

		return len(links) < limit
	})

	return links
}

var titleSpaceRE = regexp.MustCompile(`\s+`)

// PageTitle returns the trimmed text of the page's <title> element, with
// internal whitespace collapsed. An unparsable page yields "".
func PageTitle(body string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return ""
	}
	title := doc.Find("title").First().Text()

	return strings.TrimSpace(titleSpaceRE.ReplaceAllString(title, " "))
}
