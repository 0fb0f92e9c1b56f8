package search

import (
	"context"
	"log/slog"

	"github.com/poiesic/servit/ai"
	"github.com/poiesic/servit/core"
	"github.com/poiesic/servit/storage"
)

// DefaultLimit caps results when a request does not set its own limit.
const DefaultLimit = 5

// Searcher runs multi-strategy semantic search over service records.
type Searcher struct {
	repo     storage.ServiceRepository
	embedder ai.Embedder
	expander *Expander
	logger   *slog.Logger
}

// Option adjusts searcher construction.
type Option func(*Searcher) error

// WithLogger routes search logging to the given logger, or back to
// slog.Default() when nil.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Searcher) error {
		s.logger = logger
		if s.logger == nil {
			s.logger = slog.Default()
		}
		return nil
	}
}

// WithExpander swaps in a custom query expander, or the built-in synonym
// table when nil.
func WithExpander(expander *Expander) Option {
	return func(s *Searcher) error {
		s.expander = expander
		if s.expander == nil {
			s.expander = NewExpander(nil)
		}
		return nil
	}
}

// NewSearcher wires a searcher to its record store and embedder.
func NewSearcher(
	serviceRepository storage.ServiceRepository,
	embedder ai.Embedder,
	opts ...Option,
) (*Searcher, error) {
	switch {
	case serviceRepository == nil:
		return nil, ErrServiceRepositoryRequired
	case embedder == nil:
		return nil, ErrEmbedderRequired
	}

	s := &Searcher{
		repo:     serviceRepository,
		embedder: embedder,
		expander: NewExpander(nil),
		logger:   slog.Default(),
	}
	for _, apply := range opts {
		if err := apply(s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// SearchRequest carries a user query and its filters.
// A Limit of zero or less falls back to DefaultLimit.
type SearchRequest struct {
	Query    string
	Category string
	Location string
	MaxPrice float64
	Limit    int
}

// Search finds service records matching the request.
// It is a total function: internal failures are logged and degrade to an
// empty result, never an error to the caller.
func (s *Searcher) Search(ctx context.Context, req SearchRequest) []*core.SearchResult {
	return s.SearchWithMonitor(ctx, req, nil)
}

// SearchWithMonitor finds service records matching the request with
// monitoring. The monitor receives callbacks at each stage of the search.
//
// Strategies run in order and the first one with any post-filter survivor
// wins: the raw query, then each synonym expansion of the query, then a
// probe on the category filter itself when one is set.
func (s *Searcher) SearchWithMonitor(ctx context.Context, req SearchRequest, monitor SearchMonitor) []*core.SearchResult {
	if monitor == nil {
		monitor = noopMonitor{}
	}

	limit := req.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	filters := Filters{
		Category: req.Category,
		Location: req.Location,
		MaxPrice: req.MaxPrice,
	}

	monitor.Start(req.Query)

	// 1. Direct probe with the raw query
	candidates := s.queryStore(ctx, req.Query, limit)
	monitor.AfterStoreQuery(req.Query, candidates)
	if kept := applyFilters(candidates, filters); len(kept) > 0 {
		kept = capResults(kept, limit)
		monitor.AfterFilter("direct", kept)
		monitor.Finish(kept)
		return kept
	}

	// 2. Synonym expansions, first non-empty survivor set wins
	for _, expansion := range s.expander.Expand(req.Query) {
		candidates = s.queryStore(ctx, expansion, limit)
		monitor.AfterStoreQuery(expansion, candidates)
		if kept := applyFilters(candidates, filters); len(kept) > 0 {
			kept = capResults(kept, limit)
			monitor.AfterFilter("expanded", kept)
			monitor.Finish(kept)
			return kept
		}
	}

	// 3. Category fallback: probe with the category itself, which satisfies
	// the category filter trivially, so only location and price still apply
	if filters.categoryActive() {
		candidates = s.queryStore(ctx, req.Category, limit*2)
		monitor.AfterStoreQuery(req.Category, candidates)
		fallback := filters
		fallback.Category = ""
		if kept := applyFilters(candidates, fallback); len(kept) > 0 {
			kept = capResults(kept, limit)
			monitor.AfterFilter("category", kept)
			monitor.Finish(kept)
			return kept
		}
	} else {
		monitor.StrategySkipped("category", "no category filter")
	}

	// No matches anywhere is a valid outcome
	results := []*core.SearchResult{}
	monitor.Finish(results)
	return results
}

// queryStore embeds the probe text and runs a similarity query against the
// store. Failures degrade to an empty candidate list.
func (s *Searcher) queryStore(ctx context.Context, probe string, limit int) []*core.SearchResult {
	embedding, err := s.embedder.EmbedText(ctx, probe)
	if err != nil {
		s.logger.Error("error generating embedding for query", "query", probe, "err", err)
		return nil
	}
	embedding = core.NormalizeVector(embedding)

	matches, err := s.repo.FindSimilar(ctx, embedding, limit)
	if err != nil {
		s.logger.Error("error querying for similar records", "err", err)
		return nil
	}
	return matches
}

func capResults(results []*core.SearchResult, limit int) []*core.SearchResult {
	if len(results) > limit {
		results = results[:limit]
	}
	return results
}
