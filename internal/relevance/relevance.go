// Package relevance decides whether an extracted email address is a genuine
// operator contact or noise. The policy is a fixed, ordered list of rules
// where the first matching rule wins; callers tune the tradeoff per run by
// editing the Config sets, never the code.
package relevance

import "strings"

// Config holds the vocabulary the filter evaluates against. It is read-only
// for the duration of a run and safe for concurrent use.
type Config struct {
	// GenericProviderDomains are free consumer mail hosts; addresses on them
	// are never operator contacts.
	GenericProviderDomains map[string]struct{}
	// ExcludedDomainSuffixes knock out SaaS, tracking, marketing platforms
	// and CDNs by domain suffix.
	ExcludedDomainSuffixes []string
	// TrustedLocalParts are role-account prefixes (info, ops, sales …) that
	// accept an address on their own.
	TrustedLocalParts []string
	// RelevanceKeywords are vertical vocabulary substrings matched against
	// the full address.
	RelevanceKeywords []string
	// RegionalTLDs are geo-targeted top-level domains used as a positive
	// signal.
	RegionalTLDs map[string]struct{}
	// RequiredDomainSubstrings, when non-empty, give an address with no other
	// positive signal a last chance: its domain must contain one of them.
	RequiredDomainSubstrings []string
}

// assetTLDs are image/script extensions that occasionally leak into a match.
// Normalization should prevent these, this guard is the backstop.
var assetTLDs = map[string]struct{}{
	"png": {}, "gif": {}, "jpg": {}, "jpeg": {}, "svg": {}, "webp": {},
	"css": {}, "js": {}, "ico": {},
}

// verticalSuffix is accepted unconditionally as a positive signal (rule 6).
const verticalSuffix = ".aero"

// Filter applies the ordered accept/reject policy over one Config.
type Filter struct {
	cfg Config
}

// New constructs a Filter for the given config.
func New(cfg Config) *Filter {
	return &Filter{cfg: cfg}
}

// Accept reports whether the address is worth keeping. The address must be a
// normalized lowercase email; rules run in order and the first match decides:
//
//  1. reject generic consumer providers
//  2. reject excluded domain suffixes
//  3. reject asset-extension TLDs
//  4. accept trusted role-account local parts
//  5. accept relevance-keyword hits
//  6. accept regional TLDs and the vertical suffix
//  7. fall back to RequiredDomainSubstrings, rejecting when empty
func (f *Filter) Accept(email string) bool {
	local, dom, ok := strings.Cut(email, "@")
	if !ok || local == "" || dom == "" {
		return false
	}

	if _, generic := f.cfg.GenericProviderDomains[dom]; generic {
		return false
	}
	for _, suffix := range f.cfg.ExcludedDomainSuffixes {
		if strings.HasSuffix(dom, suffix) {
			return false
		}
	}
	if _, asset := assetTLDs[tldOf(dom)]; asset {
		return false
	}

	for _, prefix := range f.cfg.TrustedLocalParts {
		if strings.HasPrefix(local, prefix) {
			return true
		}
	}
	for _, keyword := range f.cfg.RelevanceKeywords {
		if strings.Contains(email, keyword) {
			return true
		}
	}
	if _, regional := f.cfg.RegionalTLDs[tldOf(dom)]; regional {
		return true
	}
	if strings.HasSuffix(dom, verticalSuffix) {
		return true
	}

	for _, required := range f.cfg.RequiredDomainSubstrings {
		if strings.Contains(dom, required) {
			return true
		}
	}

	return false
}

func tldOf(dom string) string {
	idx := strings.LastIndexByte(dom, '.')
	if idx < 0 {
		return dom
	}

	return dom[idx+1:]
}
