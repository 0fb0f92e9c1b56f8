package ai

import "github.com/poiesic/servit/core"

// RecommendationRequest carries everything a Recommender needs: the user's
// query, the filters that were active during the search, and the results the
// recommendation should cover.
type RecommendationRequest struct {
	// Query is the user's original search text.
	Query string

	// Category is the active category filter, empty when none was applied.
	Category string

	// Location is the active location filter, empty when none was applied.
	Location string

	// Results are the matched services, in ranked order.
	Results []*core.SearchResult
}
