package reembed

import (
	"context"
	"fmt"
	"time"

	"github.com/poiesic/servit/ai"
	"github.com/poiesic/servit/core"
	"github.com/poiesic/servit/storage"
)

// BatchProcessor reembeds batches of service records from their listing
// documents.
type BatchProcessor struct {
	repo       storage.ServiceRepository
	embedder   ai.Embedder
	maxRetries int
	baseDelay  time.Duration
}

// NewBatchProcessor creates a processor that retries a failing embedding
// call up to maxRetries times with exponential backoff starting at
// baseDelay.
func NewBatchProcessor(repo storage.ServiceRepository, embedder ai.Embedder, maxRetries int, baseDelay time.Duration) *BatchProcessor {
	return &BatchProcessor{repo: repo, embedder: embedder, maxRetries: maxRetries, baseDelay: baseDelay}
}

// Process embeds the documents of records and stores the updated vectors.
// Vectors are unit-normalized so dot product similarity behaves as cosine
// similarity.
func (bp *BatchProcessor) Process(ctx context.Context, records []*core.ServiceRecord) error {
	if len(records) == 0 {
		return nil
	}

	texts := make([]string, 0, len(records))
	for _, record := range records {
		texts = append(texts, record.Document)
	}

	var embeddings [][]float32
	err := RetryWithBackoff(ctx, func() error {
		out, err := bp.embedder.EmbedTexts(ctx, texts)
		if err != nil {
			return err
		}
		embeddings = out
		return nil
	}, bp.maxRetries, bp.baseDelay)
	if err != nil {
		return fmt.Errorf("embedding batch after %d attempts: %w", bp.maxRetries, err)
	}
	if got, want := len(embeddings), len(records); got != want {
		return fmt.Errorf("embedder returned %d vectors for %d records", got, want)
	}

	for i, embedding := range embeddings {
		records[i].Vector = core.NormalizeVector(embedding)
	}

	if _, err := bp.repo.UpdateServiceRecords(ctx, records...); err != nil {
		return fmt.Errorf("storing reembedded records: %w", err)
	}
	return nil
}
