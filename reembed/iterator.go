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

	"github.com/poiesic/servit/core"
	"github.com/poiesic/servit/storage"
)

// DefaultBatchSize is used when a caller passes a batch size of zero or
// less.
const DefaultBatchSize = 100

// RecordIterator walks every stored service record in listing order,
// handing them out in batches.
type RecordIterator struct {
	repo      storage.ServiceRepository
	batchSize int
}

// NewRecordIterator creates an iterator over repo.
func NewRecordIterator(repo storage.ServiceRepository, batchSize int) *RecordIterator {
	if batchSize <= 0 {
		batchSize = DefaultBatchSize
	}
	return &RecordIterator{repo: repo, batchSize: batchSize}
}

// ForEach calls fn once per batch until every record has been seen, fn
// fails, or the context ends. The error from fn is returned unchanged.
func (it *RecordIterator) ForEach(ctx context.Context, fn func([]*core.ServiceRecord) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	records, err := it.repo.AllServiceRecords(ctx)
	if err != nil {
		return err
	}

	for start := 0; start < len(records); start += it.batchSize {
		end := min(start+it.batchSize, len(records))
		if err := fn(records[start:end]); err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
	}
	return nil
}
