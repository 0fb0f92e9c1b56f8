package search

import "strings"

// SynonymGroup maps a trigger phrase to the alternate queries tried when a
// user query contains that phrase.
type SynonymGroup struct {
	Trigger string
	Queries []string
}

// DefaultSynonymGroups returns the built-in synonym table. Order matters:
// expansion uses the first group whose trigger the query contains.
func DefaultSynonymGroups() []SynonymGroup {
	return []SynonymGroup{
		{"bike repair", []string{"bike service", "bike repair", "two wheeler service", "motorcycle repair"}},
		{"bike service", []string{"bike service", "bike repair", "two wheeler service", "motorcycle repair"}},
		{"motorcycle", []string{"bike service", "bike repair", "two wheeler service"}},
		{"two wheeler", []string{"bike service", "bike repair", "two wheeler service"}},
		{"ac repair", []string{"ac repair", "air conditioning", "ac service"}},
		{"air conditioning", []string{"ac repair", "air conditioning", "ac service"}},
		{"plumber", []string{"plumber", "plumbing service", "water repair"}},
		{"electrician", []string{"electrician", "electrical service", "electrical repair"}},
		{"restaurant", []string{"restaurant", "food", "dining", "eating"}},
		{"food", []string{"restaurant", "food", "dining", "cafe"}},
		{"doctor", []string{"doctor", "physician", "medical", "clinic"}},
		{"dentist", []string{"dentist", "dental", "tooth doctor"}},
		{"gym", []string{"gym", "fitness", "exercise", "workout"}},
		{"beauty", []string{"beauty parlor", "salon", "beauty service"}},
		{"salon", []string{"beauty parlor", "salon", "beauty service"}},
	}
}

// Expander rewrites a user query into alternate phrasings so colloquial
// wording still reaches listings phrased differently.
type Expander struct {
	groups []SynonymGroup
}

// NewExpander creates an Expander. A nil groups slice uses the default table.
func NewExpander(groups []SynonymGroup) *Expander {
	if groups == nil {
		groups = DefaultSynonymGroups()
	}
	return &Expander{groups: groups}
}

// Expand returns the queries of the first group whose trigger appears in the
// lowercased query, or the query itself when no trigger matches.
func (e *Expander) Expand(query string) []string {
	queryLower := strings.ToLower(query)
	for _, group := range e.groups {
		if strings.Contains(queryLower, group.Trigger) {
			return group.Queries
		}
	}
	return []string{query}
}
