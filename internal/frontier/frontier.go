// Package frontier tracks which URLs a crawl session has visited and how many
// pages each host has contributed. One Session belongs to exactly one seed
// URL's exploration and is discarded when the session ends.
package frontier

import (
	"net/url"
	"strings"
	"sync"
)

// Session is the per-session visited set plus per-host page counters. Each
// worker owns its Session, but ShouldVisit is still guarded by a mutex so the
// check-and-set stays atomic if a session is ever shared.
type Session struct {
	mu         sync.Mutex
	visited    map[string]struct{}
	hostPages  map[string]int
	hostBudget int
	maxPages   int
}

// NewSession creates a Session limiting each host to hostBudget pages and the
// whole session to maxPages fetches. Non-positive limits mean unlimited.
func NewSession(hostBudget, maxPages int) *Session {
	return &Session{
		visited:    map[string]struct{}{},
		hostPages:  map[string]int{},
		hostBudget: hostBudget,
		maxPages:   maxPages,
	}
}

// ShouldVisit atomically marks-and-tests the URL: it returns false when the
// URL was already visited in this session, when its host has exhausted its
// page budget, or when the session page cap is reached; otherwise it records
// the visit, increments the host counter and returns true. A URL that does
// not parse or has no host is never visited.
func (s *Session) ShouldVisit(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil || u.Hostname() == "" {
		return false
	}
	host := strings.ToLower(u.Hostname())

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, seen := s.visited[rawURL]; seen {
		return false
	}
	if s.maxPages > 0 && len(s.visited) >= s.maxPages {
		return false
	}
	if s.hostBudget > 0 && s.hostPages[host] >= s.hostBudget {
		return false
	}

	s.visited[rawURL] = struct{}{}
	s.hostPages[host]++

	return true
}

// Visited reports how many URLs the session has committed to fetching.
func (s *Session) Visited() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.visited)
}

// HostPages reports how many pages the given host has contributed.
func (s *Session) HostPages(host string) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.hostPages[strings.ToLower(host)]
}
