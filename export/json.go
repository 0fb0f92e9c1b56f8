package export

import (
	"encoding/json"
	"io"
	"time"

	"github.com/poiesic/servit/core"
)

// timestampLayout is the human-readable timestamp in the export envelope.
const timestampLayout = "2006-01-02 15:04:05"

// Service is one exported listing row. Distance fields are present only
// when the result was ranked against a user coordinate.
type Service struct {
	Name         string   `json:"name"`
	Category     string   `json:"category"`
	Address      string   `json:"address"`
	Phone        string   `json:"phone"`
	Rating       string   `json:"rating"`
	Price        string   `json:"price"`
	Location     string   `json:"location"`
	Distance     *float64 `json:"distance,omitempty"`
	DistanceText string   `json:"distance_text,omitempty"`
}

// Envelope is the export document.
type Envelope struct {
	SearchQuery     string    `json:"search_query"`
	TotalServices   int       `json:"total_services"`
	ExportTimestamp string    `json:"export_timestamp"`
	Services        []Service `json:"services"`
}

// NewService maps a stored record onto its exported row.
func NewService(record *core.ServiceRecord) Service {
	return Service{
		Name:     record.Name,
		Category: record.Category,
		Address:  record.Address,
		Phone:    record.Phone,
		Rating:   record.Rating,
		Price:    record.Price,
		Location: record.Location,
	}
}

// Services maps search results onto exported rows, carrying distance
// annotations over when present.
func Services(results []*core.SearchResult) []Service {
	services := make([]Service, 0, len(results))
	for _, result := range results {
		if result.Record == nil {
			continue
		}
		service := NewService(result.Record)
		if result.DistanceText != "" {
			distance := result.Distance
			service.Distance = &distance
			service.DistanceText = result.DistanceText
		}
		services = append(services, service)
	}
	return services
}

// NewEnvelope builds the export document for a query's results.
func NewEnvelope(query string, results []*core.SearchResult) *Envelope {
	services := Services(results)
	return &Envelope{
		SearchQuery:     query,
		TotalServices:   len(services),
		ExportTimestamp: time.Now().Format(timestampLayout),
		Services:        services,
	}
}

// WriteJSON writes the export envelope for a query's results as indented
// JSON.
func WriteJSON(w io.Writer, query string, results []*core.SearchResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(NewEnvelope(query, results))
}
