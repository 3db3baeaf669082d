// Package extract pulls candidate email addresses out of raw page content.
// It layers several pattern families over the text so that common obfuscation
// schemes (spacing, "at"/"dot" spelling, percent and entity encoding, data
// attributes, JSON fragments, light reversible encodings) still yield
// canonical candidates. Extraction is pure: malformed input produces an empty
// set, never an error.
package extract

import (
	"encoding/base64"
	"html"
	"net/url"
	"regexp"
	"sort"
	"strings"
)

var (
	// emailRE is the RFC-lenient pattern used for direct matches and for
	// re-scanning decoded payloads.
	emailRE = regexp.MustCompile(`[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`)
	// canonicalRE gates every normalized candidate: local@domain.tld with a
	// TLD of at least two letters, all lowercase.
	canonicalRE = regexp.MustCompile(`^[a-z0-9._%+-]+@[a-z0-9.-]+\.[a-z]{2,}$`)
	// base64RE finds runs long enough to plausibly hold an encoded address.
	base64RE = regexp.MustCompile(`[A-Za-z0-9+/]{32,}={0,2}`)
	// rotCandidateRE finds tokens drawn from the email alphabet worth a
	// rotate-by-13 attempt.
	rotCandidateRE = regexp.MustCompile(`[A-Za-z0-9._%+@-]{10,}`)
)

// obfuscatedPatterns are applied in order over the entity-decoded text.
// Patterns with a capture group contribute the group; the rest contribute the
// whole match.
var obfuscatedPatterns = []*regexp.Regexp{
	regexp.MustCompile(`[a-zA-Z0-9._%+-]+\s*@\s*[a-zA-Z0-9.-]+\s*\.\s*[a-zA-Z]{2,}`),
	regexp.MustCompile(`[a-zA-Z0-9._%+-]+%40[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`),
	regexp.MustCompile(`[a-zA-Z0-9._%+-]+&#64;[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}`),
	regexp.MustCompile(`[a-zA-Z0-9._%+-]+\s+(?:at|@)\s+[a-zA-Z0-9.-]+\s+(?:dot|\.)\s+[a-zA-Z0-9.-]+`),
	regexp.MustCompile(`(?i)mailto:([a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,})`),
	regexp.MustCompile(`"email"\s*:\s*"([^"]+)"`),
	regexp.MustCompile(`'email'\s*:\s*'([^']+)'`),
	regexp.MustCompile(`data-email=["']([^"']+)["']`),
	regexp.MustCompile(`data-contact=["']([^"']+)["']`),
	regexp.MustCompile(`data-mail=["']([^"']+)["']`),
}

// placeholderFragments mark template and asset artifacts that are never real
// contacts; candidates containing one are dropped before filtering.
var placeholderFragments = []string{
	"example.com",
	"example@",
	"test.com",
	"domain.com",
	"yourdomain",
	"providername.com",
	"johnsmith",
	"no-reply@",
	"noreply@",
	"sprite@",
	"flags@",
	"loading@",
	"fancybox_",
}

// Options toggle the heuristic decode sweeps. Both sweeps can produce false
// positives, so tests and cautious runs may turn them off independently.
type Options struct {
	// DisableBase64Sweep skips decoding base64-alphabet runs.
	DisableBase64Sweep bool
	// DisableRotateSweep skips the rotate-by-13 decode pass.
	DisableRotateSweep bool
}

// Extractor applies the pattern families with a fixed Options value. The
// zero value runs every sweep.
type Extractor struct {
	opts Options
}

// New constructs an Extractor with the given options.
func New(opts Options) *Extractor {
	return &Extractor{opts: opts}
}

// Extract returns the sorted set of canonical email candidates found in the
// given text. Each raw match is normalized and then gated on the canonical
// grammar; anything that fails the gate is discarded silently.
func (e *Extractor) Extract(text string) []string {
	if text == "" {
		return nil
	}

	found := map[string]struct{}{}
	add := func(raw string) {
		cleaned := Normalize(raw)
		if !Valid(cleaned) {
			return
		}
		found[cleaned] = struct{}{}
	}
	scan := func(s string) {
		for _, m := range emailRE.FindAllString(s, -1) {
			add(m)
		}
	}

	// Entity-decode once up front so &#64; and friends match directly.
	working := html.UnescapeString(text)

	scan(working)
	for _, pattern := range obfuscatedPatterns {
		for _, m := range pattern.FindAllStringSubmatch(working, -1) {
			candidate := m[0]
			if len(m) > 1 && m[1] != "" {
				candidate = m[1]
			}
			add(candidate)
		}
	}

	// Percent-decoded view of the whole page. PathUnescape rather than
	// QueryUnescape: '+' is part of the email local-part alphabet and must
	// not become a space.
	if decoded, err := url.PathUnescape(working); err == nil && decoded != working {
		scan(decoded)
	}

	if !e.opts.DisableBase64Sweep {
		for _, token := range base64RE.FindAllString(working, -1) {
			if len(token)%4 != 0 {
				continue
			}
			decoded, err := base64.StdEncoding.DecodeString(token)
			if err != nil {
				continue
			}
			scan(string(decoded))
		}
	}

	if !e.opts.DisableRotateSweep {
		for _, token := range rotCandidateRE.FindAllString(working, -1) {
			decoded := rotate13(token)
			if decoded != token && strings.Contains(decoded, "@") {
				scan(decoded)
			}
		}
	}

	if len(found) == 0 {
		return nil
	}
	out := make([]string, 0, len(found))
	for candidate := range found {
		out = append(out, candidate)
	}
	sort.Strings(out)

	return out
}

// Normalize turns a raw candidate into canonical form: entity and percent
// unescaping, whitespace collapsed around '@' and '.', textual "at"/"dot"
// substitution, surrounding punctuation stripped, lowercased. The result is
// not guaranteed to be a valid address; callers gate it with Valid.
func Normalize(raw string) string {
	if raw == "" {
		return ""
	}
	s := html.UnescapeString(raw)
	// PathUnescape keeps '+' literal; it is a valid local-part character.
	if decoded, err := url.PathUnescape(s); err == nil {
		s = decoded
	}
	s = spacedAtRE.ReplaceAllString(s, "@")
	s = spacedDotRE.ReplaceAllString(s, ".")
	s = strings.ReplaceAll(s, " at ", "@")
	s = strings.ReplaceAll(s, " dot ", ".")
	s = strings.Trim(s, " \"'()[]{}<>")

	return strings.ToLower(s)
}

var (
	spacedAtRE  = regexp.MustCompile(`\s*@\s*`)
	spacedDotRE = regexp.MustCompile(`\s*\.\s*`)
)

// Valid reports whether a normalized candidate fully matches the canonical
// email grammar and is not an obvious placeholder.
func Valid(email string) bool {
	if email == "" || len(email) > 100 {
		return false
	}
	if !canonicalRE.MatchString(email) {
		return false
	}
	for _, fragment := range placeholderFragments {
		if strings.Contains(email, fragment) {
			return false
		}
	}

	return true
}

// rotate13 applies the letter-substitution cipher to ASCII letters, leaving
// every other byte unchanged.
func rotate13(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z':
			return 'a' + (r-'a'+13)%26
		case r >= 'A' && r <= 'Z':
			return 'A' + (r-'A'+13)%26
		default:
			return r
		}
	}, s)
}
