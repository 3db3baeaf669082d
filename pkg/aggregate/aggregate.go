// Package aggregate merges per-session results into one globally deduplicated
// record set. The set is the only structure shared by concurrent session
// workers, so insertion is mutex-guarded: the "check absent, then insert"
// step is atomic and the first writer's provenance wins.
package aggregate

import (
	"sort"
	"strings"
	"sync"

	"harvester/pkg/domain"
)

// Set is a concurrent-safe collection of EmailRecords keyed by lowercase
// address.
type Set struct {
	mu      sync.Mutex
	records map[string]domain.EmailRecord
}

// NewSet creates an empty Set.
func NewSet() *Set {
	return &Set{records: map[string]domain.EmailRecord{}}
}

// Add inserts the record unless a record for the same normalized address is
// already present. It reports whether the record was stored. The address is
// lowercased before keying, so callers may pass records from any source.
func (s *Set) Add(record domain.EmailRecord) bool {
	addr := strings.ToLower(record.Address)
	if addr == "" {
		return false
	}
	record.Address = addr

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.records[addr]; exists {
		return false
	}
	s.records[addr] = record

	return true
}

// AddAll inserts every record, returning how many were newly stored.
func (s *Set) AddAll(records []domain.EmailRecord) int {
	added := 0
	for _, record := range records {
		if s.Add(record) {
			added++
		}
	}

	return added
}

// Len reports the number of stored records.
func (s *Set) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.records)
}

// Contains reports whether an address (case-insensitive) is present.
func (s *Set) Contains(address string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.records[strings.ToLower(address)]

	return ok
}

// Records returns all stored records sorted by address, so output is stable
// for a given final set regardless of scheduling order.
func (s *Set) Records() []domain.EmailRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]domain.EmailRecord, 0, len(s.records))
	for _, record := range s.records {
		out = append(out, record)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Address < out[j].Address })

	return out
}

// ByQuery partitions the stored records by originating query, each partition
// sorted by address. Useful for multi-file output.
func (s *Set) ByQuery() map[string][]domain.EmailRecord {
	records := s.Records()
	out := map[string][]domain.EmailRecord{}
	for _, record := range records {
		out[record.Query] = append(out[record.Query], record)
	}

	return out
}
