// Package queries expands country and keyword lists into search engine
// queries aimed at contact-page discovery.
package queries

import (
	"bufio"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
)

// templates combine a keyword and country (or a country-code TLD) with
// contact phrasing. The {tld} templates bias engines toward local sites.
var templates = []string{
	`"%[1]s" "%[2]s" "contact" email`,
	`"%[1]s" "%[2]s" "email address" contact`,
	`"%[1]s" "%[2]s" "get in touch" email`,
	`"%[1]s" "%[2]s" "contact us" email`,
	`"%[1]s" "%[2]s" "email us" contact`,
	`"%[1]s" "%[2]s" "contact details" email`,
	`"%[1]s" "%[2]s" "contact form" email`,
	`"%[1]s" "%[2]s" "get quote" email`,
	`"%[1]s" "%[2]s" email inquire`,
}

var tldTemplates = []string{
	`site:.%[2]s "%[1]s" email contact`,
	`site:.%[2]s "%[1]s" "contact us"`,
	`site:.%[2]s "%[1]s" "email address"`,
}

// countryTLDs maps country names to their ccTLD for site: scoped queries.
// Countries not listed fall back to "com".
var countryTLDs = map[string]string{
	"South Africa":             "za",
	"Kenya":                    "ke",
	"Nigeria":                  "ng",
	"Ghana":                    "gh",
	"Uganda":                   "ug",
	"Tanzania":                 "tz",
	"Egypt":                    "eg",
	"Tunisia":                  "tn",
	"Libya":                    "ly",
	"Mauritius":                "mu",
	"Seychelles":               "sc",
	"Botswana":                 "bw",
	"Namibia":                  "na",
	"Zambia":                   "zm",
	"Zimbabwe":                 "zw",
	"Rwanda":                   "rw",
	"Ethiopia":                 "et",
	"Mozambique":               "mz",
	"Angola":                   "ao",
	"Cameroon":                 "cm",
	"Senegal":                  "sn",
	"Mali":                     "ml",
	"Burkina Faso":             "bf",
	"Niger":                    "ne",
	"Chad":                     "td",
	"Sudan":                    "sd",
	"Somalia":                  "so",
	"Djibouti":                 "dj",
	"Eritrea":                  "er",
	"Madagascar":               "mg",
	"Malawi":                   "mw",
	"Gabon":                    "ga",
	"Republic of the Congo":    "cg",
	"Cote d'Ivoire":            "ci",
	"Guinea":                   "gn",
	"Sierra Leone":             "sl",
	"Liberia":                  "lr",
	"Togo":                     "tg",
	"Benin":                    "bj",
	"Central African Republic": "cf",
	"United Arab Emirates":     "ae",
	"Saudi Arabia":             "sa",
	"Qatar":                    "qa",
	"Kuwait":                   "kw",
	"Bahrain":                  "bh",
	"Oman":                     "om",
}

// TLDFor returns the ccTLD used in site: scoped queries for a country.
func TLDFor(country string) string {
	if tld, ok := countryTLDs[country]; ok {
		return tld
	}

	return "com"
}

// Generate expands countries x keywords x templates into at most max queries.
// The result is shuffled with the given source so consecutive queries do not
// hit an engine with near-identical text; a nil source keeps generation
// order, which tests rely on.
func Generate(countries, keywords []string, max int, rng *rand.Rand) []string {
	if max <= 0 {
		return nil
	}

	queries := make([]string, 0, max)

	for _, country := range countries {
		for _, keyword := range keywords {
			tld := TLDFor(country)

			for _, tmpl := range templates {
				queries = append(queries, fmt.Sprintf(tmpl, keyword, country))
				if len(queries) >= max {
					break
				}
			}
			if len(queries) < max {
				for _, tmpl := range tldTemplates {
					queries = append(queries, fmt.Sprintf(tmpl, keyword, tld))
					if len(queries) >= max {
						break
					}
				}
			}
			if len(queries) >= max {
				break
			}
		}
		if len(queries) >= max {
			break
		}
	}

	if rng != nil {
		rng.Shuffle(len(queries), func(i, j int) {
			queries[i], queries[j] = queries[j], queries[i]
		})
	}

	return queries
}

// ReadLines loads one entry per line from r, skipping blanks and # comments.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}

	return lines, scanner.Err()
}

// ReadLinesFile is ReadLines over a file path.
func ReadLinesFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint: errcheck

	return ReadLines(f)
}
