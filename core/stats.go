package core

import "slices"

// Stats summarizes the stored listings. The distinct lists feed filter
// dropdowns, so they are sorted and skip empty values.
type Stats struct {
	TotalServices int
	Categories    int
	Locations     int
	CategoryList  []string
	LocationList  []string
}

// ComputeStats aggregates record counts and sorted distinct category and
// location lists over a set of records.
func ComputeStats(records []*ServiceRecord) *Stats {
	categories := distinctNonEmpty(records, func(r *ServiceRecord) string { return r.Category })
	locations := distinctNonEmpty(records, func(r *ServiceRecord) string { return r.Location })

	return &Stats{
		TotalServices: len(records),
		Categories:    len(categories),
		Locations:     len(locations),
		CategoryList:  categories,
		LocationList:  locations,
	}
}

func distinctNonEmpty(records []*ServiceRecord, field func(*ServiceRecord) string) []string {
	seen := make(map[string]struct{}, len(records))
	values := make([]string, 0, len(records))
	for _, r := range records {
		v := field(r)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		values = append(values, v)
	}
	slices.Sort(values)
	return values
}
