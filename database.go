// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package servit

import (
	"context"
	"io"
	"log/slog"

	"github.com/poiesic/servit/ai"
	"github.com/poiesic/servit/ai/gemini"
	"github.com/poiesic/servit/ai/openai"
	"github.com/poiesic/servit/core"
	"github.com/poiesic/servit/ingestion"
	"github.com/poiesic/servit/reembed"
	"github.com/poiesic/servit/search"
	"github.com/poiesic/servit/storage"
	"github.com/poiesic/servit/storage/badger"
)

// Database bundles storage and AI services behind a single handle. Open
// it once and hand out the narrower pieces.
type Database struct {
	backend        *badger.Backend
	serviceRepo    storage.ServiceRepository
	checkpointRepo storage.CheckpointRepository
	provider       *openai.Provider
	recommender    ai.Recommender
	log            *slog.Logger
}

// DatabaseOption adjusts how a Database is opened.
type DatabaseOption func(*databaseOptions)

type databaseOptions struct {
	aiConfig *ai.Config
}

// WithAIConfig overrides the AI service configuration, which is
// ai.DefaultConfig() otherwise. A nil config is ignored.
func WithAIConfig(config *ai.Config) DatabaseOption {
	return func(o *databaseOptions) {
		if config != nil {
			o.aiConfig = config
		}
	}
}

// NewDatabase opens or creates the store at filePath and wires up the AI
// services configured through opts.
func NewDatabase(filePath string, opts ...DatabaseOption) (*Database, error) {
	options := &databaseOptions{aiConfig: ai.DefaultConfig()}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend(filePath, false)
	if err != nil {
		return nil, err
	}
	serviceRepo := badger.NewServiceRepository(backend)

	provider, err := openai.NewProvider(options.aiConfig)
	if err != nil {
		serviceRepo.Close()
		backend.Close()
		return nil, err
	}

	// Recommendations go through Gemini when an API key is configured,
	// otherwise through the local chat host.
	recommender := provider.Recommender()
	if options.aiConfig.UseGemini() {
		geminiRecommender, err := gemini.NewRecommender(context.Background(), options.aiConfig)
		if err != nil {
			provider.Close()
			serviceRepo.Close()
			backend.Close()
			return nil, err
		}
		recommender = geminiRecommender
	}

	return &Database{
		backend:        backend,
		serviceRepo:    serviceRepo,
		checkpointRepo: badger.NewCheckpointRepository(backend),
		provider:       provider,
		recommender:    recommender,
		log:            slog.Default(),
	}, nil
}

// Close releases the AI provider and storage in dependency order. The
// first storage error wins; provider close problems are only logged.
func (db *Database) Close() error {
	if err := db.provider.Close(); err != nil {
		db.log.Error("closing AI provider", "err", err)
	}
	if err := db.serviceRepo.Close(); err != nil {
		db.log.Error("closing service repository", "err", err)
		return err
	}
	if err := db.backend.Close(); err != nil {
		db.log.Error("closing backend storage", "err", err)
		return err
	}
	return nil
}

func (db *Database) ServiceRepository() storage.ServiceRepository {
	return db.serviceRepo
}

func (db *Database) CheckpointRepository() storage.CheckpointRepository {
	return db.checkpointRepo
}

// Embedder returns the embedding service used for queries and documents.
func (db *Database) Embedder() ai.Embedder {
	return db.provider.Embedder()
}

// Recommender returns the active recommendation backend.
func (db *Database) Recommender() ai.Recommender {
	return db.recommender
}

func (db *Database) NewSearcher(opts ...search.Option) (*search.Searcher, error) {
	return search.NewSearcher(db.serviceRepo, db.provider.Embedder(), opts...)
}

func (db *Database) NewIngestionPipeline(opts ...ingestion.Option) (*ingestion.Pipeline, error) {
	return ingestion.NewPipeline(db.serviceRepo, db.checkpointRepo, db.provider.Embedder(), opts...)
}

func (db *Database) NewReembedder(config *reembed.Config, progress io.Writer) *reembed.Reembedder {
	return reembed.NewReembedder(db.serviceRepo, db.provider.Embedder(), config, progress)
}

// Stats aggregates counts and the sorted distinct category and location
// lists over the stored records.
func (db *Database) Stats(ctx context.Context) (*core.Stats, error) {
	records, err := db.serviceRepo.AllServiceRecords(ctx)
	if err != nil {
		return nil, err
	}
	return core.ComputeStats(records), nil
}

// EnsureSeeded bulk loads the named file when the store is empty. The guard
// is idempotent: a populated store skips the load. Seed problems are logged
// as warnings and the application continues with whatever is stored; only
// cancellation propagates.
func (db *Database) EnsureSeeded(ctx context.Context, path string) error {
	count, err := db.serviceRepo.CountServiceRecords(ctx)
	if err != nil {
		db.log.Warn("skipping bulk seed, count failed", "err", err)
		return nil
	}
	if count > 0 {
		db.log.Info("store already seeded", "records", count)
		return nil
	}

	raws, err := ingestion.LoadFile(path)
	if err != nil {
		db.log.Warn("skipping bulk seed", "file", path, "err", err)
		return nil
	}

	pipeline, err := db.NewIngestionPipeline()
	if err != nil {
		db.log.Warn("skipping bulk seed, pipeline unavailable", "err", err)
		return nil
	}
	defer pipeline.Release()

	report, err := pipeline.Ingest(ctx, raws)
	if err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		db.log.Warn("bulk seed failed", "file", path, "err", err)
		return nil
	}

	db.log.Info("seeded store from bulk file", "file", path,
		"added", report.Added, "skipped", report.Skipped, "failed", report.Failed)
	return nil
}
