package ingestion

import "errors"

// Pipeline construction and run sentinels.
var (
	// ErrServiceRepositoryRequired rejects building a pipeline without a
	// record store.
	ErrServiceRepositoryRequired = errors.New("service repository required")

	// ErrCheckpointRepositoryRequired rejects building a pipeline
	// without checkpoint storage.
	ErrCheckpointRepositoryRequired = errors.New("checkpoint repository required")

	// ErrEmbedderRequired rejects building a pipeline without an
	// embedder.
	ErrEmbedderRequired = errors.New("embedder required")

	// ErrNoRecords means a bulk load found nothing to ingest.
	ErrNoRecords = errors.New("no records to ingest")
)
