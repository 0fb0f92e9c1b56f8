package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpand(t *testing.T) {
	expander := NewExpander(nil)

	tests := []struct {
		name     string
		query    string
		expected []string
	}{
		{
			name:     "bike repair trigger",
			query:    "bike repair",
			expected: []string{"bike service", "bike repair", "two wheeler service", "motorcycle repair"},
		},
		{
			name:     "trigger inside longer query",
			query:    "cheap bike repair near me",
			expected: []string{"bike service", "bike repair", "two wheeler service", "motorcycle repair"},
		},
		{
			name:     "motorcycle trigger",
			query:    "motorcycle",
			expected: []string{"bike service", "bike repair", "two wheeler service"},
		},
		{
			name:     "case insensitive",
			query:    "AC Repair",
			expected: []string{"ac repair", "air conditioning", "ac service"},
		},
		{
			name:     "restaurant trigger",
			query:    "good restaurant",
			expected: []string{"restaurant", "food", "dining", "eating"},
		},
		{
			name:     "no trigger passes query through",
			query:    "notary public",
			expected: []string{"notary public"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, expander.Expand(tt.query))
		})
	}
}

func TestExpand_FirstTriggerWins(t *testing.T) {
	expander := NewExpander(nil)

	// "bike repair" precedes "motorcycle" in the table, so a query containing
	// both expands through the bike repair group
	expanded := expander.Expand("motorcycle and bike repair")
	assert.Contains(t, expanded, "motorcycle repair")
}

func TestExpand_CustomGroups(t *testing.T) {
	expander := NewExpander([]SynonymGroup{
		{"laundry", []string{"laundry", "dry cleaning", "washing service"}},
	})

	assert.Equal(t,
		[]string{"laundry", "dry cleaning", "washing service"},
		expander.Expand("laundry pickup"))

	// Built-in triggers are gone with a custom table
	assert.Equal(t, []string{"bike repair"}, expander.Expand("bike repair"))
}
