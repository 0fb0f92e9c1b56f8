// Package mock provides deterministic in-process doubles for the ai
// interfaces, so tests run without an external model service.
//
// Behavior is swapped through public function fields and observed
// through call counters:
//
//	embedder := mock.NewMockEmbedder()
//	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
//	    return []float32{0.1, 0.2, 0.3}, nil
//	}
//
//	// ... exercise code under test ...
//
//	if embedder.CallCount() != 1 {
//	    t.Fatal("expected one embedding call")
//	}
//
// With nothing injected, MockEmbedder derives a stable unit vector from
// the text itself, so equal inputs embed equally across runs, and
// MockRecommender answers with canned text naming the query and the
// number of results it saw.
package mock
