// Package harvester coordinates a full run: queries fan out to the search
// providers, result URLs become bounded crawl sessions on a worker pool, and
// extracted contacts land in one deduplicated set.
package harvester

import (
	"context"

	"harvester/pkg/aggregate"
)

//go:generate mockgen -package mockharvester -source=interface.go -destination=mock/mockharvester.go *
type Harvester interface {
	// Run processes the queries in order and returns every accepted contact.
	// When ctx is cancelled, the records collected so far are returned; no
	// new session starts after cancellation.
	Run(ctx context.Context, queries []string) *aggregate.Set
}
