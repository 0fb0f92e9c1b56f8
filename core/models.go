package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"fmt"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is the key type for stored entities, derived by hashing content.
type ID uint64

// IDFromContent hashes text into an ID with an 8-byte BLAKE2b digest.
// The same text always yields the same ID.
func IDFromContent(text string) ID {
	hasher, _ := blake2b.New(8, nil)
	hasher.Write([]byte(text))
	return ID(binary.LittleEndian.Uint64(hasher.Sum(nil)))
}

// ServiceIDFor generates the ID for a service record from its position in the
// source listing file and its name. Re-ingesting the same file reproduces the
// same IDs, so a bulk load overwrites records in place instead of
// accumulating duplicates.
func ServiceIDFor(position int, name string) ID {
	return IDFromContent(fmt.Sprintf("service_%d_%s", position, name))
}

// ServiceRecord represents a single local business listing.
// Source fields come from the listing file as display strings; derived fields
// are computed during ingestion and always populated.
type ServiceRecord struct {
	Id       ID
	Position uint64 // Ordinal in the source listing file
	Name     string
	Category string
	Address  string
	Phone    string
	Rating   string // Display string, e.g. "4.2 ⭐"
	Price    string // Display string, e.g. "₹450 onwards"

	Location     string  // Locality extracted from Address
	PriceNumeric float64 // Value of the first digit run in Price, 0 when absent
	Document     string  // Searchable text assembled from the fields above

	Vector     []float32 // Embedding of Document (populated by the ingestion pipeline)
	IngestedAt time.Time // When the record was inserted into the database
	UpdatedAt  time.Time // When the record was last updated
}

// DistanceUnknown is the sentinel distance for results whose address is
// missing. It sorts after every real distance.
const DistanceUnknown float64 = 999

// SearchResult represents a search result with the full record and relevance
// score. Distance fields are filled in by the distance ranker when the caller
// shares a coordinate; they are transient and never persisted.
type SearchResult struct {
	Record *ServiceRecord
	Score  float32

	Distance     float64 // Kilometers from the caller, DistanceUnknown when unresolvable
	DistanceText string  // Human-readable label, e.g. "1.4 km away"
}

// Checkpoint records the completion state of a bulk load or maintenance job.
type Checkpoint struct {
	Name        string
	LastID      ID
	RecordCount uint64
	UpdatedAt   time.Time
}
