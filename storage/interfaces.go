package storage

import (
	"context"

	"github.com/poiesic/servit/core"
)

// Repository provides common storage operations shared across all repositories.
// Implementations must be thread-safe and support concurrent access.
type Repository interface {
	// FindSimilar finds service records similar to the given vector.
	// Returns up to limit results ordered by similarity score (highest first);
	// equal scores fall back to listing position. Records without embeddings
	// are skipped.
	FindSimilar(ctx context.Context, vector []float32, limit int) ([]*core.SearchResult, error)

	// WithTransaction executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// The context passed to fn may contain transaction state.
	WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error

	// Close closes the storage backend and releases resources.
	Close() error
}

// ServiceRepository provides operations for managing service records.
type ServiceRepository interface {
	Repository

	// AddServiceRecords adds one or more service records to storage.
	// Records arrive with content-derived IDs already assigned; adding a
	// record under an existing ID overwrites it in place.
	// Sets IngestedAt and UpdatedAt timestamps if not already set.
	// Returns the records with timestamps populated.
	AddServiceRecords(ctx context.Context, records ...*core.ServiceRecord) ([]*core.ServiceRecord, error)

	// UpdateServiceRecords updates existing service records.
	// Updates the UpdatedAt timestamp automatically.
	// Returns ErrNotFound if any record doesn't exist.
	UpdateServiceRecords(ctx context.Context, records ...*core.ServiceRecord) ([]*core.ServiceRecord, error)

	// GetServiceRecord retrieves a single service record by ID.
	// Returns ErrNotFound if the record doesn't exist.
	GetServiceRecord(ctx context.Context, id core.ID) (*core.ServiceRecord, error)

	// GetServiceRecords retrieves multiple service records by their IDs.
	// Returns only the records that exist (no error for missing records).
	GetServiceRecords(ctx context.Context, ids ...core.ID) ([]*core.ServiceRecord, error)

	// AllServiceRecords retrieves every stored record, ordered by listing
	// position.
	AllServiceRecords(ctx context.Context) ([]*core.ServiceRecord, error)

	// CountServiceRecords returns the number of stored records.
	CountServiceRecords(ctx context.Context) (int, error)
}

// CheckpointRepository provides operations for persisting job completion
// markers, keyed by checkpoint name.
type CheckpointRepository interface {
	// SaveCheckpoint persists a checkpoint under its name.
	SaveCheckpoint(ctx context.Context, checkpoint *core.Checkpoint) error

	// LoadCheckpoint retrieves the checkpoint with the given name.
	// Returns nil, nil if no checkpoint exists.
	LoadCheckpoint(ctx context.Context, name string) (*core.Checkpoint, error)
}
