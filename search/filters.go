package search

import (
	"strings"

	"github.com/poiesic/servit/core"
)

// categoryAll is the sentinel callers pass to disable category filtering.
const categoryAll = "All"

// Filters narrow store candidates before they count toward a strategy's
// result. Zero values disable the corresponding filter.
type Filters struct {
	Category string
	Location string
	MaxPrice float64
}

// categoryActive reports whether a real category filter is set.
func (f Filters) categoryActive() bool {
	return f.Category != "" && f.Category != categoryAll
}

// matchesCategory checks the category filter (exact equality).
func (f Filters) matchesCategory(record *core.ServiceRecord) bool {
	if !f.categoryActive() {
		return true
	}
	return record.Category == f.Category
}

// matchesLocation checks the location filter (case-insensitive substring of
// the filter inside the record's locality).
func (f Filters) matchesLocation(record *core.ServiceRecord) bool {
	if f.Location == "" {
		return true
	}
	return strings.Contains(strings.ToLower(record.Location), strings.ToLower(f.Location))
}

// withinPrice checks the price ceiling. Records whose price display has no
// digits pass, so unknown pricing never hides a listing.
func (f Filters) withinPrice(record *core.ServiceRecord) bool {
	if f.MaxPrice <= 0 {
		return true
	}
	price, ok := core.ParsePrice(record.Price)
	if !ok {
		return true
	}
	return price <= f.MaxPrice
}

// applyFilters keeps the candidates that pass every active filter.
func applyFilters(candidates []*core.SearchResult, filters Filters) []*core.SearchResult {
	kept := make([]*core.SearchResult, 0, len(candidates))
	for _, candidate := range candidates {
		record := candidate.Record
		if record == nil {
			continue
		}
		if !filters.matchesCategory(record) {
			continue
		}
		if !filters.matchesLocation(record) {
			continue
		}
		if !filters.withinPrice(record) {
			continue
		}
		kept = append(kept, candidate)
	}
	return kept
}
