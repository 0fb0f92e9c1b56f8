package geo

import "strings"

// GazetteerEntry maps a lowercase city name to its coordinates.
type GazetteerEntry struct {
	City string
	Lat  float64
	Lon  float64
}

// Default coordinates returned when an address matches no gazetteer entry
// (central Hyderabad).
const (
	DefaultLat = 17.3850
	DefaultLon = 78.4867
)

// DefaultGazetteer returns the built-in city gazetteer. Order matters:
// resolution takes the first entry whose city name the address contains.
func DefaultGazetteer() []GazetteerEntry {
	return []GazetteerEntry{
		{"hyderabad", 17.3850, 78.4867},
		{"mumbai", 19.0760, 72.8777},
		{"delhi", 28.6139, 77.2090},
		{"bangalore", 12.9716, 77.5946},
		{"chennai", 13.0827, 80.2707},
		{"kolkata", 22.5726, 88.3639},
		{"pune", 18.5204, 73.8567},
		{"ahmedabad", 23.0225, 72.5714},
		{"jaipur", 26.9124, 75.7873},
		{"lucknow", 26.8467, 80.9462},
		{"kanpur", 26.4499, 80.3319},
		{"nagpur", 21.1458, 79.0882},
		{"indore", 22.7196, 75.8577},
		{"thane", 19.2183, 72.9781},
		{"bhopal", 23.2599, 77.4126},
		{"visakhapatnam", 17.6868, 83.2185},
		{"patna", 25.5941, 85.1376},
		{"vadodara", 22.3072, 73.1812},
		{"ghaziabad", 28.6692, 77.4538},
		{"ludhiana", 30.9010, 75.8573},
		{"agra", 27.1767, 78.0081},
		{"nashik", 19.9975, 73.7898},
		{"faridabad", 28.4089, 77.3178},
		{"meerut", 28.9845, 77.7064},
		{"rajkot", 22.3039, 70.8022},
		{"kalyan", 19.2437, 73.1355},
		{"vasai", 19.4909, 72.8152},
		{"varanasi", 25.3176, 82.9739},
		{"srinagar", 34.0837, 74.7973},
		{"aurangabad", 19.8762, 75.3433},
		{"dhanbad", 23.7957, 86.4304},
		{"amritsar", 31.6340, 74.8723},
		{"navi mumbai", 19.0330, 73.0297},
		{"allahabad", 25.4358, 81.8463},
		{"ranchi", 23.3441, 85.3096},
		{"howrah", 22.5958, 88.2636},
		{"coimbatore", 11.0168, 76.9558},
		{"jabalpur", 23.1815, 79.9864},
		{"gwalior", 26.2183, 78.1828},
		{"vijayawada", 16.5062, 80.6480},
		{"jodhpur", 26.2389, 73.0243},
		{"madurai", 9.9252, 78.1198},
		{"raipur", 21.2514, 81.6296},
		{"kota", 25.2138, 75.8648},
		{"guntur", 16.3067, 80.4365},
		{"bhubaneswar", 20.2961, 85.8245},
		{"dehradun", 30.3165, 78.0322},
		{"asansol", 23.6739, 86.9524},
		{"nellore", 14.4426, 79.9865},
		{"jammu", 32.7266, 74.8570},
		{"belagavi", 15.8497, 74.4977},
		{"rourkela", 22.2604, 84.8536},
		{"mangaluru", 12.9141, 74.8560},
		{"tirunelveli", 8.7139, 77.7567},
		{"malegaon", 20.5579, 74.5287},
		{"gaya", 24.7914, 85.0002},
	}
}

// Resolver geocodes free-text addresses against a gazetteer.
type Resolver struct {
	entries []GazetteerEntry
}

// NewResolver creates a Resolver. A nil entries slice uses the default
// gazetteer.
func NewResolver(entries []GazetteerEntry) *Resolver {
	if entries == nil {
		entries = DefaultGazetteer()
	}
	return &Resolver{entries: entries}
}

// CoordinatesOf resolves an address to coordinates. The first gazetteer
// entry whose city name appears in the lowercased address wins. Addresses
// matching no entry resolve to the default coordinates.
func (r *Resolver) CoordinatesOf(address string) (lat, lon float64) {
	addressLower := strings.ToLower(address)
	for _, entry := range r.entries {
		if strings.Contains(addressLower, entry.City) {
			return entry.Lat, entry.Lon
		}
	}
	return DefaultLat, DefaultLon
}
