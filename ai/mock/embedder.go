package mock

import (
	"context"
	"hash/fnv"
	"math"
)

// defaultDim is the dimension of the vectors the default behavior
// produces.
const defaultDim = 384

// MockEmbedder is a test double for ai.Embedder. Behavior can be swapped
// per test through the function fields; with none set, a deterministic
// pseudo-embedding derived from the text itself is returned, so equal
// inputs always embed equally.
type MockEmbedder struct {
	// EmbedTextFunc overrides EmbedText when set.
	EmbedTextFunc func(ctx context.Context, text string) ([]float32, error)

	// EmbedTextsFunc overrides EmbedTexts when set.
	EmbedTextsFunc func(ctx context.Context, texts []string) ([][]float32, error)

	calls int
}

// NewMockEmbedder creates a mock embedder with the deterministic default
// behavior.
func NewMockEmbedder() *MockEmbedder {
	return &MockEmbedder{}
}

// CallCount returns how many times either embed method was called.
func (m *MockEmbedder) CallCount() int { return m.calls }

// Reset clears the call count and any injected behavior.
func (m *MockEmbedder) Reset() {
	m.calls = 0
	m.EmbedTextFunc = nil
	m.EmbedTextsFunc = nil
}

// EmbedText returns the injected or deterministic embedding for text.
func (m *MockEmbedder) EmbedText(ctx context.Context, text string) ([]float32, error) {
	m.calls++
	if m.EmbedTextFunc != nil {
		return m.EmbedTextFunc(ctx, text)
	}
	return pseudoEmbedding(text, defaultDim), nil
}

// EmbedTexts returns injected or deterministic embeddings for texts.
func (m *MockEmbedder) EmbedTexts(ctx context.Context, texts []string) ([][]float32, error) {
	m.calls++
	if m.EmbedTextsFunc != nil {
		return m.EmbedTextsFunc(ctx, texts)
	}
	out := make([][]float32, 0, len(texts))
	for _, text := range texts {
		out = append(out, pseudoEmbedding(text, defaultDim))
	}
	return out, nil
}

// pseudoEmbedding derives a unit-length vector from the FNV hash of text.
// A linear congruential generator seeded with the hash fills the
// components, so the text-to-vector mapping is stable across runs.
func pseudoEmbedding(text string, dim int) []float32 {
	hash := fnv.New32a()
	hash.Write([]byte(text))

	v := make([]float32, dim)
	state := hash.Sum32()
	var sumSquares float64
	for i := range v {
		state = state*1664525 + 1013904223
		v[i] = float32(state%1000) / 1000
		sumSquares += float64(v[i]) * float64(v[i])
	}
	if norm := math.Sqrt(sumSquares); norm > 0 {
		for i := range v {
			v[i] = float32(float64(v[i]) / norm)
		}
	}
	return v
}
