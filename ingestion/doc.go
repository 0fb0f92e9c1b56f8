// Package ingestion provides bulk loading of service listings.
//
// The Pipeline type manages the bulk load workflow, including:
//   - Deduplicating listings by name and phone
//   - Deriving the stored record form (locality, numeric price, document)
//   - Generating embeddings concurrently on a worker pool
//   - Persisting records and a completion checkpoint
//
// Embedding runs concurrently using a worker pool to maximize throughput.
// A failed batch is logged and counted but does not fail the bulk load.
package ingestion
