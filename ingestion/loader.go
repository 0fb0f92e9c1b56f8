package ingestion

import (
	"encoding/json"
	"fmt"
	"os"
)

// RawService is one listing as it appears in a bulk file: a JSON object in
// an array. Only the name is required; unknown keys are ignored.
type RawService struct {
	Name     string `json:"name"`
	Category string `json:"category"`
	Address  string `json:"address"`
	Phone    string `json:"phone"`
	Rating   string `json:"rating"`
	Price    string `json:"price"`
}

// LoadFile reads a bulk file and returns its listings in file order.
// A missing file, malformed JSON, or an empty array is an error.
func LoadFile(path string) ([]RawService, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading bulk file: %w", err)
	}

	var raws []RawService
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("parsing bulk file %s: %w", path, err)
	}
	if len(raws) == 0 {
		return nil, fmt.Errorf("bulk file %s: %w", path, ErrNoRecords)
	}
	return raws, nil
}
