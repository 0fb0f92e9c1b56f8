package search

import "github.com/poiesic/servit/core"

// SearchMonitor receives callbacks as a search moves through its
// strategies. Implementations can trace each store probe, feed metrics,
// or record why a strategy never ran.
type SearchMonitor interface {
	// Start fires once, before any store access.
	Start(query string)

	// AfterStoreQuery reports the raw candidates a probe returned,
	// before any filtering.
	AfterStoreQuery(probe string, candidates []*core.SearchResult)

	// AfterFilter reports what survived filtering under the named
	// strategy.
	AfterFilter(strategy string, kept []*core.SearchResult)

	// StrategySkipped explains why a strategy was not attempted.
	StrategySkipped(strategy string, reason string)

	// Finish fires once, with the results the caller will see.
	Finish(results []*core.SearchResult)
}

// noopMonitor stands in when the caller passes no monitor.
type noopMonitor struct{}

var _ SearchMonitor = (*noopMonitor)(nil)

func (n noopMonitor) Start(string)                                 {}
func (n noopMonitor) AfterStoreQuery(string, []*core.SearchResult) {}
func (n noopMonitor) AfterFilter(string, []*core.SearchResult)     {}
func (n noopMonitor) StrategySkipped(string, string)               {}
func (n noopMonitor) Finish([]*core.SearchResult)                  {}
