package reembed

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/servit/ai"
	"github.com/poiesic/servit/ai/mock"
	"github.com/poiesic/servit/ai/openai"
	"github.com/poiesic/servit/core"
)

// Reembedding the same store twice must settle on the same vectors.
func TestIntegration_ReembedTwice(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	repo := setupTestDB(t)
	ctx := context.Background()
	seedRecords(t, ctx, repo, 10)

	config := &Config{BatchSize: 5, ReportInterval: 5, MaxRetries: 3, RetryDelay: 10 * time.Millisecond}

	var runs [2]map[core.ID][]float32
	for i := range runs {
		var buf bytes.Buffer
		require.NoError(t, NewReembedder(repo, mock.NewMockEmbedder(), config, &buf).Run(ctx))

		stored, err := repo.AllServiceRecords(ctx)
		require.NoError(t, err)
		require.Len(t, stored, 10)

		runs[i] = make(map[core.ID][]float32, len(stored))
		for _, record := range stored {
			require.NotEmpty(t, record.Vector)
			runs[i][record.Id] = record.Vector
		}
	}

	for id, before := range runs[0] {
		after, ok := runs[1][id]
		require.True(t, ok, "record %d vanished between runs", id)
		require.Equal(t, len(before), len(after))
		for i := range before {
			assert.InDelta(t, before[i], after[i], 0.001)
		}
	}
}

// Needs a live OpenAI-compatible embedding endpoint, so this only runs
// when enabled by hand.
func TestIntegration_WithRealEmbedder(t *testing.T) {
	t.Skip("needs a running embedding service, enable manually")

	repo := setupTestDB(t)
	ctx := context.Background()

	listings := []struct {
		name, category, address, rating, price string
	}{
		{"Cool Care AC Repair", "AC Repair", "Plot 12, Madhapur, Hyderabad", "4.2 ⭐", "₹450 onwards"},
		{"AquaFix Plumbing", "Plumber", "Plot 7, Kondapur, Hyderabad", "4.0 ⭐", "₹300 onwards"},
		{"Spice Garden", "Restaurant", "Plot 3, Jubilee Hills, Hyderabad", "4.5 ⭐", "₹800 for two"},
	}
	records := make([]*core.ServiceRecord, 0, len(listings))
	for i, l := range listings {
		records = append(records, &core.ServiceRecord{
			Id:       core.ServiceIDFor(i, l.name),
			Position: uint64(i),
			Name:     l.name,
			Category: l.category,
			Address:  l.address,
			Rating:   l.rating,
			Price:    l.price,
			Document: core.BuildDocument(l.name, l.category, l.address, l.rating, l.price),
		})
	}
	_, err := repo.AddServiceRecords(ctx, records...)
	require.NoError(t, err)

	embedder, err := openai.NewEmbedder(ai.NewConfig(
		ai.WithEmbeddingHost("http://localhost:11434/v1"),
		ai.WithEmbeddingModel("embeddinggemma"),
	))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, NewReembedder(repo, embedder, nil, &buf).Run(ctx))

	updated, err := repo.AllServiceRecords(ctx)
	require.NoError(t, err)
	require.Len(t, updated, 3)
	for _, record := range updated {
		assert.NotEmpty(t, record.Vector)
	}
}
