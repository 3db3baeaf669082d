// Package search defines the capability the orchestrator uses to turn a
// query into candidate URLs. Implementations wrap one concrete engine; a
// failure from any provider is non-fatal to the run.
package search

import (
	"context"

	"harvester/pkg/domain"
)

// Result is one search result: the landing URL plus the result title when
// the engine exposes one.
type Result struct {
	URL   string
	Title string
}

// Provider is the abstraction over a search engine. Implementations must be
// safe for concurrent use.
//
//go:generate mockgen -package mocksearch -source=interface.go -destination=mock/mocksearch.go *
type Provider interface {
	// Engine identifies which engine backs this provider.
	Engine() domain.Engine
	// Search returns up to limit results for the query.
	Search(ctx context.Context, query string, limit int) ([]Result, error)
}
