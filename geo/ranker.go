package geo

import (
	"fmt"
	"math"
	"slices"

	"github.com/poiesic/servit/core"
)

// Ranker annotates search results with distance from a user location and
// orders them nearest first.
type Ranker struct {
	resolver *Resolver
}

// NewRanker creates a Ranker. A nil resolver uses the default gazetteer.
func NewRanker(resolver *Resolver) *Ranker {
	if resolver == nil {
		resolver = NewResolver(nil)
	}
	return &Ranker{resolver: resolver}
}

// AnnotateAndSort fills in Distance and DistanceText for each result and
// stable-sorts the slice by ascending distance. Records without an address
// get the unknown-distance sentinel, which sorts them last. The slice is
// modified in place and returned.
func (rk *Ranker) AnnotateAndSort(results []*core.SearchResult, userLat, userLon float64) []*core.SearchResult {
	for _, result := range results {
		if result.Record == nil || result.Record.Address == "" {
			result.Distance = core.DistanceUnknown
			result.DistanceText = "Distance unknown"
			continue
		}

		lat, lon := rk.resolver.CoordinatesOf(result.Record.Address)
		distance := DistanceKm(userLat, userLon, lat, lon)
		result.Distance = math.Round(distance*100) / 100
		result.DistanceText = fmt.Sprintf("%.1f km away", result.Distance)
	}

	slices.SortStableFunc(results, func(a, b *core.SearchResult) int {
		if a.Distance < b.Distance {
			return -1
		}
		if a.Distance > b.Distance {
			return 1
		}
		return 0
	})

	return results
}
