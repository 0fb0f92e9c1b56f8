// Package reembed provides functionality for reembedding stored service
// records after an embedding model change.
//
// This package supports batch processing of service records, progress
// tracking, retry logic with exponential backoff, and vector normalization
// to keep dot product similarity behaving as cosine similarity.
package reembed
