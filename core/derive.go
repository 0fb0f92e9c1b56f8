package core

import (
	"strconv"
	"strings"
)

// LocationFromAddress extracts the locality token from a postal address.
// Addresses follow the "Plot 12, Madhapur, Hyderabad, Telangana 500081"
// convention, where the second-to-last comma-separated part names the city.
// Addresses with fewer than two parts are returned whole, trimmed.
func LocationFromAddress(address string) string {
	parts := strings.Split(address, ",")
	if len(parts) >= 2 {
		return strings.TrimSpace(parts[len(parts)-2])
	}
	return strings.TrimSpace(address)
}

// ParsePrice extracts the numeric value of a price display string by reading
// its first run of ASCII digits. "₹450 onwards" yields (450, true). Strings
// without digits such as "Contact for price" yield (0, false), which price
// filters treat as a pass.
func ParsePrice(price string) (float64, bool) {
	start := -1
	for i, r := range price {
		if r >= '0' && r <= '9' {
			start = i
			break
		}
	}
	if start < 0 {
		return 0, false
	}

	end := start
	for end < len(price) && price[end] >= '0' && price[end] <= '9' {
		end++
	}

	value, err := strconv.ParseFloat(price[start:end], 64)
	if err != nil {
		return 0, false
	}
	return value, true
}

// BuildDocument assembles the searchable text for a service record. Empty
// fields are omitted so the embedding is not polluted with bare labels.
func BuildDocument(name, category, address, rating, price string) string {
	parts := make([]string, 0, 5)
	if name != "" {
		parts = append(parts, "Service: "+name)
	}
	if category != "" {
		parts = append(parts, "Category: "+category)
	}
	if address != "" {
		parts = append(parts, "Address: "+address)
	}
	if rating != "" {
		parts = append(parts, "Rating: "+rating)
	}
	if price != "" {
		parts = append(parts, "Price: "+price)
	}
	return strings.Join(parts, " | ")
}
