package ingestion

import (
	"context"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/panjf2000/ants/v2"

	"github.com/poiesic/servit/ai"
	"github.com/poiesic/servit/core"
	"github.com/poiesic/servit/storage"
)

// CheckpointName marks a completed bulk load in the checkpoint store.
const CheckpointName = "bulk-load"

// DefaultBatchSize is the number of documents embedded per worker task.
const DefaultBatchSize = 25

// Pipeline orchestrates bulk loading of service listings.
// It derives the stored record form, embeds listing documents concurrently,
// and persists the results.
type Pipeline struct {
	serviceRepository    storage.ServiceRepository
	checkpointRepository storage.CheckpointRepository
	embedder             ai.Embedder
	pool                 *ants.Pool
	poolSize             int
	batchSize            int
	logger               *slog.Logger
}

// Option adjusts pipeline construction.
type Option func(*Pipeline) error

// WithPoolSize sets how many embedding workers run at once. Sizes below one
// clamp to one; the default is half the CPU count.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		p.poolSize = max(size, 1)
		return nil
	}
}

// WithBatchSize sets the number of documents embedded per worker task,
// DefaultBatchSize unless overridden. Sizes below one clamp to one.
func WithBatchSize(size int) Option {
	return func(p *Pipeline) error {
		p.batchSize = max(size, 1)
		return nil
	}
}

// WithLogger routes pipeline logging somewhere other than slog.Default().
// A nil logger keeps the default.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger != nil {
			p.logger = logger
		}
		return nil
	}
}

// NewPipeline builds a bulk load pipeline over the given stores and embedder.
func NewPipeline(
	serviceRepository storage.ServiceRepository,
	checkpointRepository storage.CheckpointRepository,
	embedder ai.Embedder,
	opts ...Option,
) (*Pipeline, error) {
	switch {
	case serviceRepository == nil:
		return nil, ErrServiceRepositoryRequired
	case checkpointRepository == nil:
		return nil, ErrCheckpointRepositoryRequired
	case embedder == nil:
		return nil, ErrEmbedderRequired
	}

	p := &Pipeline{
		serviceRepository:    serviceRepository,
		checkpointRepository: checkpointRepository,
		embedder:             embedder,
		poolSize:             max(runtime.NumCPU()/2, 1),
		batchSize:            DefaultBatchSize,
		logger:               slog.Default(),
	}
	for _, opt := range opts {
		if err := opt(p); err != nil {
			return nil, err
		}
	}

	pool, err := ants.NewPool(p.poolSize)
	if err != nil {
		return nil, err
	}
	p.pool = pool
	return p, nil
}

// Report summarizes one bulk load.
type Report struct {
	Loaded  int // listings in the input
	Added   int // records embedded and persisted
	Skipped int // nameless or duplicate listings
	Failed  int // records lost to failed batches
}

// Ingest bulk loads raw listings. Nameless listings and duplicates (same
// name and phone, first occurrence wins) are skipped. The survivors are
// embedded in batches on the worker pool and persisted; a failed batch is
// logged and counted without stopping the remaining batches.
//
// On completion a checkpoint named CheckpointName records the load.
func (p *Pipeline) Ingest(ctx context.Context, raws []RawService) (*Report, error) {
	if len(raws) == 0 {
		return nil, ErrNoRecords
	}

	report := &Report{Loaded: len(raws)}

	// Derive the stored record form, keeping the source position so IDs
	// stay stable across re-ingestion of the same file
	seen := make(map[uint64]struct{}, len(raws))
	records := make([]*core.ServiceRecord, 0, len(raws))
	for position, raw := range raws {
		if strings.TrimSpace(raw.Name) == "" {
			report.Skipped++
			continue
		}
		key := dedupKey(raw)
		if _, dup := seen[key]; dup {
			p.logger.Debug("skipping duplicate listing", "name", raw.Name, "phone", raw.Phone)
			report.Skipped++
			continue
		}
		seen[key] = struct{}{}
		records = append(records, buildRecord(position, raw))
	}

	if len(records) == 0 {
		return report, nil
	}

	// Embed and persist in batches; batches run concurrently and the
	// report is folded together under the mutex
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		last *core.ServiceRecord
	)
	for start := 0; start < len(records); start += p.batchSize {
		end := min(start+p.batchSize, len(records))
		batch := records[start:end]

		wg.Add(1)
		submitErr := p.pool.Submit(func() {
			defer wg.Done()

			if err := p.processBatch(ctx, batch); err != nil {
				p.logger.Error("error ingesting batch", "records", len(batch), "err", err)
				mu.Lock()
				report.Failed += len(batch)
				mu.Unlock()
				return
			}

			mu.Lock()
			report.Added += len(batch)
			tail := batch[len(batch)-1]
			if last == nil || tail.Position > last.Position {
				last = tail
			}
			mu.Unlock()
		})
		if submitErr != nil {
			wg.Done()
			p.logger.Error("error submitting batch", "err", submitErr)
			report.Failed += len(batch)
		}
	}
	wg.Wait()

	if err := ctx.Err(); err != nil {
		return report, err
	}

	if report.Added > 0 {
		checkpoint := &core.Checkpoint{
			Name:        CheckpointName,
			LastID:      last.Id,
			RecordCount: uint64(report.Added),
			UpdatedAt:   time.Now().UTC(),
		}
		if err := p.checkpointRepository.SaveCheckpoint(ctx, checkpoint); err != nil {
			p.logger.Warn("error saving bulk load checkpoint", "err", err)
		}
	}

	p.logger.Info("bulk load complete",
		"loaded", report.Loaded, "added", report.Added,
		"skipped", report.Skipped, "failed", report.Failed)
	return report, nil
}

// processBatch embeds one batch of records and persists it.
func (p *Pipeline) processBatch(ctx context.Context, batch []*core.ServiceRecord) error {
	texts := make([]string, len(batch))
	for i, record := range batch {
		texts[i] = record.Document
	}

	embeddings, err := p.embedder.EmbedTexts(ctx, texts)
	if err != nil {
		return err
	}
	if len(embeddings) != len(batch) {
		return fmt.Errorf("embedding result mismatch. expected %d, received %d", len(batch), len(embeddings))
	}

	for i, embedding := range embeddings {
		batch[i].Vector = core.NormalizeVector(embedding)
	}

	_, err = p.serviceRepository.AddServiceRecords(ctx, batch...)
	return err
}

// Release releases the worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.pool != nil {
		p.pool.Release()
	}
}

// dedupKey identifies a listing by name and phone, tolerant of case and
// surrounding whitespace.
func dedupKey(raw RawService) uint64 {
	name := strings.ToLower(strings.TrimSpace(raw.Name))
	phone := strings.TrimSpace(raw.Phone)
	return xxhash.Sum64String(name + "|" + phone)
}

// buildRecord derives the stored form of a raw listing.
func buildRecord(position int, raw RawService) *core.ServiceRecord {
	record := &core.ServiceRecord{
		Id:       core.ServiceIDFor(position, raw.Name),
		Position: uint64(position),
		Name:     raw.Name,
		Category: raw.Category,
		Address:  raw.Address,
		Phone:    raw.Phone,
		Rating:   raw.Rating,
		Price:    raw.Price,
		Location: core.LocationFromAddress(raw.Address),
	}
	if price, ok := core.ParsePrice(raw.Price); ok {
		record.PriceNumeric = price
	}
	record.Document = core.BuildDocument(record.Name, record.Category, record.Address, record.Rating, record.Price)
	return record
}
