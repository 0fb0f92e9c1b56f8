package openai

import (
	"context"
	"log/slog"

	"github.com/poiesic/servit/ai"
	"github.com/tmc/langchaingo/embeddings"
	"github.com/tmc/langchaingo/llms/openai"
)

// Embedder generates embeddings through any OpenAI-compatible endpoint.
type Embedder struct {
	client embeddings.Embedder
	logger *slog.Logger
}

// newEmbedder returns the concrete type for use inside the package.
func newEmbedder(config *ai.Config) (*Embedder, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	// Local OpenAI-compatible services accept any token, so "none" keeps
	// unauthenticated setups working.
	base, err := openai.New(
		openai.WithBaseURL(config.EmbeddingHost),
		openai.WithToken("none"),
		openai.WithEmbeddingModel(config.EmbeddingModel),
	)
	if err != nil {
		return nil, err
	}
	client, err := embeddings.NewEmbedder(base, embeddings.WithStripNewLines(true))
	if err != nil {
		return nil, err
	}

	return &Embedder{client: client, logger: slog.Default().With("component", "openai-embedder")}, nil
}

// NewEmbedder creates an embedder for the configured embedding host and
// model, returned as the ai.Embedder interface.
func NewEmbedder(config *ai.Config) (ai.Embedder, error) {
	return newEmbedder(config)
}

// EmbedText embeds a single text.
func (e *Embedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	vectors, err := e.EmbedTexts(ctx, []string{text})
	if err != nil {
		return nil, err
	}
	if len(vectors) == 0 {
		e.logger.Warn("embedding service returned no vector")
		return []float32{}, nil
	}
	return vectors[0], nil
}

// EmbedTexts embeds a batch of texts in one call.
func (e *Embedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	e.logger.Debug("embedding texts", "count", len(texts))

	vectors, err := e.client.EmbedDocuments(ctx, texts)
	if err != nil {
		e.logger.Error("embedding call failed", "count", len(texts), "err", err)
		return nil, err
	}
	return vectors, nil
}
