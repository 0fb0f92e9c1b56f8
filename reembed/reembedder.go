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


package reembed

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/poiesic/servit/ai"
	"github.com/poiesic/servit/core"
	"github.com/poiesic/servit/storage"
)

// Config controls a reembedding run.
type Config struct {
	BatchSize      int           // records per embedding call
	ReportInterval int           // records between progress lines
	MaxRetries     int           // attempts for a failing embedding call
	RetryDelay     time.Duration // base backoff delay between attempts
}

// DefaultConfig returns the defaults used when no config is given.
func DefaultConfig() *Config {
	return &Config{BatchSize: 100, ReportInterval: 100, MaxRetries: 3, RetryDelay: time.Second}
}

// Reembedder walks every stored service record and regenerates its
// embedding, for instance after switching embedding models.
type Reembedder struct {
	repo     storage.ServiceRepository
	embedder ai.Embedder
	config   *Config
	out      io.Writer
}

// NewReembedder creates a reembedder writing progress to out, typically
// os.Stderr. A nil config uses DefaultConfig.
func NewReembedder(repo storage.ServiceRepository, embedder ai.Embedder, config *Config, out io.Writer) *Reembedder {
	cfg := config
	if cfg == nil {
		cfg = DefaultConfig()
	}
	return &Reembedder{repo: repo, embedder: embedder, config: cfg, out: out}
}

// Run reembeds the whole store in listing order. Batches already written
// stay persisted when a later batch ultimately fails.
func (r *Reembedder) Run(ctx context.Context) error {
	total, err := r.repo.CountServiceRecords(ctx)
	if err != nil {
		return fmt.Errorf("counting records: %w", err)
	}
	if total == 0 {
		fmt.Fprintln(r.out, "Nothing to reembed, the store holds no records")
		return nil
	}
	fmt.Fprintf(r.out, "Reembedding %d records in batches of %d\n", total, r.config.BatchSize)

	var (
		progress  = NewProgressTracker(r.out, total, r.config.ReportInterval)
		processor = NewBatchProcessor(r.repo, r.embedder, r.config.MaxRetries, r.config.RetryDelay)
		iterator  = NewRecordIterator(r.repo, r.config.BatchSize)
		done      int
	)
	progress.Start()

	err = iterator.ForEach(ctx, func(batch []*core.ServiceRecord) error {
		if err := processor.Process(ctx, batch); err != nil {
			return fmt.Errorf("reembedding batch at record %d: %w", done, err)
		}
		done += len(batch)
		progress.Update(done)
		return nil
	})
	if err != nil {
		return err
	}

	progress.Finish()
	took := progress.Elapsed()
	fmt.Fprintf(r.out, "Done: %d records in %v (%.1f records/s)\n",
		total, took.Round(time.Second), float64(total)/took.Seconds())
	return nil
}
