package ai

import "context"

// Embedder turns text into vectors for semantic similarity search.
// Implementations must tolerate concurrent use.
type Embedder interface {
	// EmbedText embeds a single text.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts embeds a batch in one call, returning vectors in input
	// order.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Recommender produces a short natural-language recommendation for a set
// of search results. Implementations must tolerate concurrent use.
type Recommender interface {
	// Recommend generates advisory text for the request's results. Failures
	// come back wrapped in this package's sentinel errors so callers can
	// report the condition without losing the results themselves.
	Recommend(ctx context.Context, req *RecommendationRequest) (string, error)
}
