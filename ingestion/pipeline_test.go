package ingestion

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/servit/ai/mock"
	"github.com/poiesic/servit/core"
	"github.com/poiesic/servit/storage"
	"github.com/poiesic/servit/storage/badger"
)

func setupTestRepositories(t *testing.T) (storage.ServiceRepository, storage.CheckpointRepository) {
	t.Helper()

	backend, err := badger.OpenBackend(t.TempDir(), false)
	require.NoError(t, err)

	serviceRepo := badger.NewServiceRepository(backend)
	checkpointRepo := badger.NewCheckpointRepository(backend)

	t.Cleanup(func() {
		serviceRepo.Close()
		backend.Close()
	})

	return serviceRepo, checkpointRepo
}

func sampleRaws() []RawService {
	return []RawService{
		{
			Name:     "Cool Care AC Repair",
			Category: "AC Repair",
			Address:  "Plot 12, Madhapur, Hyderabad, Telangana 500081",
			Phone:    "9876543210",
			Rating:   "4.5 ⭐",
			Price:    "₹450",
		},
		{
			Name:     "AquaFix Plumbing",
			Category: "Plumber",
			Address:  "Shop 3, Andheri, Mumbai, Maharashtra 400058",
			Phone:    "9812345678",
			Rating:   "4.0 ⭐",
			Price:    "₹300",
		},
		{
			Name:     "Arctic Services",
			Category: "AC Repair",
			Address:  "Plot 34, Gachibowli, Hyderabad, Telangana 500032",
			Phone:    "9898989898",
			Rating:   "4.2 ⭐",
			Price:    "Contact for price",
		},
	}
}

func TestNewPipeline(t *testing.T) {
	serviceRepo, checkpointRepo := setupTestRepositories(t)
	embedder := mock.NewMockEmbedder()

	t.Run("constructs with defaults", func(t *testing.T) {
		pipeline, err := NewPipeline(serviceRepo, checkpointRepo, embedder)
		require.NoError(t, err)
		assert.NotNil(t, pipeline)
		pipeline.Release()
	})

	t.Run("with options", func(t *testing.T) {
		pipeline, err := NewPipeline(serviceRepo, checkpointRepo, embedder,
			WithPoolSize(2), WithBatchSize(10), WithLogger(nil))
		require.NoError(t, err)
		assert.NotNil(t, pipeline)
		pipeline.Release()
	})

	t.Run("pool and batch sizes clamp to one", func(t *testing.T) {
		pipeline, err := NewPipeline(serviceRepo, checkpointRepo, embedder,
			WithPoolSize(0), WithBatchSize(-5))
		require.NoError(t, err)
		assert.NotNil(t, pipeline)
		pipeline.Release()
	})

	t.Run("nil service repository", func(t *testing.T) {
		_, err := NewPipeline(nil, checkpointRepo, embedder)
		assert.Equal(t, ErrServiceRepositoryRequired, err)
	})

	t.Run("nil checkpoint repository", func(t *testing.T) {
		_, err := NewPipeline(serviceRepo, nil, embedder)
		assert.Equal(t, ErrCheckpointRepositoryRequired, err)
	})

	t.Run("nil embedder", func(t *testing.T) {
		_, err := NewPipeline(serviceRepo, checkpointRepo, nil)
		assert.Equal(t, ErrEmbedderRequired, err)
	})
}

func TestIngest_EmptyInput(t *testing.T) {
	serviceRepo, checkpointRepo := setupTestRepositories(t)

	pipeline, err := NewPipeline(serviceRepo, checkpointRepo, mock.NewMockEmbedder())
	require.NoError(t, err)
	defer pipeline.Release()

	_, err = pipeline.Ingest(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoRecords)
}

func TestIngest_DerivesStoredForm(t *testing.T) {
	serviceRepo, checkpointRepo := setupTestRepositories(t)

	pipeline, err := NewPipeline(serviceRepo, checkpointRepo, mock.NewMockEmbedder())
	require.NoError(t, err)
	defer pipeline.Release()

	ctx := context.Background()
	report, err := pipeline.Ingest(ctx, sampleRaws())
	require.NoError(t, err)

	assert.Equal(t, 3, report.Loaded)
	assert.Equal(t, 3, report.Added)
	assert.Equal(t, 0, report.Skipped)
	assert.Equal(t, 0, report.Failed)

	record, err := serviceRepo.GetServiceRecord(ctx, core.ServiceIDFor(0, "Cool Care AC Repair"))
	require.NoError(t, err)

	assert.Equal(t, uint64(0), record.Position)
	assert.Equal(t, "Hyderabad", record.Location)
	assert.Equal(t, 450.0, record.PriceNumeric)
	assert.Equal(t,
		"Service: Cool Care AC Repair | Category: AC Repair | Address: Plot 12, Madhapur, Hyderabad, Telangana 500081 | Rating: 4.5 ⭐ | Price: ₹450",
		record.Document)
	assert.False(t, record.IngestedAt.IsZero())

	// Vectors are stored unit-normalized
	require.Len(t, record.Vector, 384)
	var sumSquares float64
	for _, v := range record.Vector {
		sumSquares += float64(v) * float64(v)
	}
	assert.InDelta(t, 1.0, sumSquares, 1e-3)

	// Unpriced listings keep a zero numeric price
	record, err = serviceRepo.GetServiceRecord(ctx, core.ServiceIDFor(2, "Arctic Services"))
	require.NoError(t, err)
	assert.Equal(t, 0.0, record.PriceNumeric)
}

func TestIngest_SkipsNamelessAndDuplicates(t *testing.T) {
	serviceRepo, checkpointRepo := setupTestRepositories(t)

	pipeline, err := NewPipeline(serviceRepo, checkpointRepo, mock.NewMockEmbedder())
	require.NoError(t, err)
	defer pipeline.Release()

	raws := []RawService{
		{Name: "Cool Care AC Repair", Phone: "9876543210"},
		{Name: "", Address: "Plot 1, Hyderabad"},
		{Name: "  cool care ac repair  ", Phone: "9876543210"},
		{Name: "AquaFix Plumbing", Phone: "9812345678"},
	}

	ctx := context.Background()
	report, err := pipeline.Ingest(ctx, raws)
	require.NoError(t, err)

	assert.Equal(t, 4, report.Loaded)
	assert.Equal(t, 2, report.Added)
	assert.Equal(t, 2, report.Skipped)

	count, err := serviceRepo.CountServiceRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestIngest_SameNameDifferentPhoneIsKept(t *testing.T) {
	serviceRepo, checkpointRepo := setupTestRepositories(t)

	pipeline, err := NewPipeline(serviceRepo, checkpointRepo, mock.NewMockEmbedder())
	require.NoError(t, err)
	defer pipeline.Release()

	raws := []RawService{
		{Name: "Cool Care AC Repair", Phone: "9876543210"},
		{Name: "Cool Care AC Repair", Phone: "9800000000"},
	}

	report, err := pipeline.Ingest(context.Background(), raws)
	require.NoError(t, err)

	assert.Equal(t, 2, report.Added)
	assert.Equal(t, 0, report.Skipped)
}

func TestIngest_PositionsFollowSourceOrder(t *testing.T) {
	serviceRepo, checkpointRepo := setupTestRepositories(t)

	pipeline, err := NewPipeline(serviceRepo, checkpointRepo, mock.NewMockEmbedder())
	require.NoError(t, err)
	defer pipeline.Release()

	raws := []RawService{
		{Name: "Cool Care AC Repair", Phone: "9876543210"},
		{Name: "Cool Care AC Repair", Phone: "9876543210"}, // duplicate
		{Name: "AquaFix Plumbing", Phone: "9812345678"},
	}

	ctx := context.Background()
	_, err = pipeline.Ingest(ctx, raws)
	require.NoError(t, err)

	records, err := serviceRepo.AllServiceRecords(ctx)
	require.NoError(t, err)
	require.Len(t, records, 2)

	// The survivor of a skipped slot keeps its source position, so IDs are
	// stable no matter how many duplicates precede a listing
	assert.Equal(t, uint64(0), records[0].Position)
	assert.Equal(t, "Cool Care AC Repair", records[0].Name)
	assert.Equal(t, uint64(2), records[1].Position)
	assert.Equal(t, "AquaFix Plumbing", records[1].Name)
	assert.Equal(t, core.ServiceIDFor(2, "AquaFix Plumbing"), records[1].Id)
}

func TestIngest_FailedBatchContinues(t *testing.T) {
	serviceRepo, checkpointRepo := setupTestRepositories(t)

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		if strings.Contains(texts[0], "Cool Care") {
			return nil, errors.New("embedding model offline")
		}
		embeddings := make([][]float32, len(texts))
		for i := range texts {
			embeddings[i] = []float32{0.6, 0.8, 0.0}
		}
		return embeddings, nil
	}

	pipeline, err := NewPipeline(serviceRepo, checkpointRepo, embedder, WithBatchSize(1))
	require.NoError(t, err)
	defer pipeline.Release()

	ctx := context.Background()
	report, err := pipeline.Ingest(ctx, sampleRaws())
	require.NoError(t, err)

	assert.Equal(t, 3, report.Loaded)
	assert.Equal(t, 2, report.Added)
	assert.Equal(t, 1, report.Failed)

	count, err := serviceRepo.CountServiceRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestIngest_SavesCheckpoint(t *testing.T) {
	serviceRepo, checkpointRepo := setupTestRepositories(t)

	pipeline, err := NewPipeline(serviceRepo, checkpointRepo, mock.NewMockEmbedder())
	require.NoError(t, err)
	defer pipeline.Release()

	ctx := context.Background()
	_, err = pipeline.Ingest(ctx, sampleRaws())
	require.NoError(t, err)

	checkpoint, err := checkpointRepo.LoadCheckpoint(ctx, CheckpointName)
	require.NoError(t, err)
	require.NotNil(t, checkpoint)

	assert.Equal(t, CheckpointName, checkpoint.Name)
	assert.Equal(t, uint64(3), checkpoint.RecordCount)
	assert.Equal(t, core.ServiceIDFor(2, "Arctic Services"), checkpoint.LastID)
	assert.False(t, checkpoint.UpdatedAt.IsZero())
}

func TestIngest_NoCheckpointWhenNothingAdded(t *testing.T) {
	serviceRepo, checkpointRepo := setupTestRepositories(t)

	embedder := mock.NewMockEmbedder()
	embedder.EmbedTextsFunc = func(ctx context.Context, texts []string) ([][]float32, error) {
		return nil, errors.New("embedding model offline")
	}

	pipeline, err := NewPipeline(serviceRepo, checkpointRepo, embedder)
	require.NoError(t, err)
	defer pipeline.Release()

	ctx := context.Background()
	report, err := pipeline.Ingest(ctx, sampleRaws())
	require.NoError(t, err)
	assert.Equal(t, 3, report.Failed)

	checkpoint, err := checkpointRepo.LoadCheckpoint(ctx, CheckpointName)
	require.NoError(t, err)
	assert.Nil(t, checkpoint)
}
