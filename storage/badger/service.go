package badger

import (
	"context"
	"errors"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/servit/core"
	"github.com/poiesic/servit/storage"
)

// ServiceRepository implements storage.ServiceRepository on a Backend.
type ServiceRepository struct {
	backend *Backend
}

var _ storage.ServiceRepository = (*ServiceRepository)(nil)

// NewServiceRepository creates a repository over backend.
func NewServiceRepository(backend *Backend) *ServiceRepository {
	return &ServiceRepository{backend: backend}
}

// read runs fn in a read-only transaction.
func (r *ServiceRepository) read(fn func(tx *badger.Txn) error) error {
	return r.backend.WithTx(fn, false)
}

// write runs fn in a read-write transaction and commits unless fn fails.
func (r *ServiceRepository) write(fn func(tx *badger.Txn) error) error {
	return r.backend.WithTx(func(tx *badger.Txn) error {
		if err := fn(tx); err != nil {
			return err
		}
		return tx.Commit()
	}, true)
}

// Close is a no-op. The backend owns the database handle and is closed
// on its own.
func (r *ServiceRepository) Close() error {
	return nil
}

// FindSimilar delegates to the backend's vector scan.
func (r *ServiceRepository) FindSimilar(ctx context.Context, vector []float32, limit int) ([]*core.SearchResult, error) {
	return r.backend.FindSimilar(ctx, vector, limit)
}

// WithTransaction hands fn to the backend's transactional runner.
func (r *ServiceRepository) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return r.backend.WithTransaction(ctx, fn)
}

// AddServiceRecords validates records, then writes them along with
// their position index entries. IDs derive from content, so re-adding a
// record overwrites it in place.
func (r *ServiceRepository) AddServiceRecords(ctx context.Context, records ...*core.ServiceRecord) ([]*core.ServiceRecord, error) {
	for _, record := range records {
		if err := core.ValidateServiceRecord(record); err != nil {
			return nil, err
		}
	}

	now := time.Now().UTC()
	err := r.write(func(tx *badger.Txn) error {
		for _, record := range records {
			if record.IngestedAt.IsZero() {
				record.IngestedAt = now
			}
			record.UpdatedAt = now
			if err := putRecord(tx, record); err != nil {
				return err
			}
			if err := tx.Set(makePositionKey(record.Position), storage.MarshalID(record.Id)); err != nil {
				return err
			}
		}
		return nil
	})
	return records, err
}

// UpdateServiceRecords overwrites records that already exist, failing
// with storage.ErrNotFound for IDs that were never added. A record whose
// listing position moved gets its index entry re-homed.
func (r *ServiceRepository) UpdateServiceRecords(ctx context.Context, records ...*core.ServiceRecord) ([]*core.ServiceRecord, error) {
	for _, record := range records {
		if err := core.ValidateServiceRecord(record); err != nil {
			return nil, err
		}
	}

	err := r.write(func(tx *badger.Txn) error {
		for _, record := range records {
			old, err := fetchRecord(tx, record.Id)
			if err != nil {
				return err
			}
			if old == nil {
				return storage.ErrNotFound
			}

			record.UpdatedAt = time.Now().UTC()
			if record.IngestedAt.IsZero() {
				record.IngestedAt = old.IngestedAt
			}
			if err := putRecord(tx, record); err != nil {
				return err
			}
			if old.Position == record.Position {
				continue
			}
			if err := tx.Delete(makePositionKey(old.Position)); err != nil {
				return err
			}
			if err := tx.Set(makePositionKey(record.Position), storage.MarshalID(record.Id)); err != nil {
				return err
			}
		}
		return nil
	})
	return records, err
}

// GetServiceRecord returns the record with id, or storage.ErrNotFound.
func (r *ServiceRepository) GetServiceRecord(ctx context.Context, id core.ID) (*core.ServiceRecord, error) {
	var result *core.ServiceRecord
	err := r.read(func(tx *badger.Txn) error {
		record, err := fetchRecord(tx, id)
		if err != nil {
			return err
		}
		if record == nil {
			return storage.ErrNotFound
		}
		result = record
		return nil
	})
	return result, err
}

// GetServiceRecords returns whichever of the requested records exist,
// silently skipping unknown IDs.
func (r *ServiceRepository) GetServiceRecords(ctx context.Context, ids ...core.ID) ([]*core.ServiceRecord, error) {
	var found []*core.ServiceRecord
	err := r.read(func(tx *badger.Txn) error {
		for _, id := range ids {
			record, err := fetchRecord(tx, id)
			if err != nil {
				return err
			}
			if record != nil {
				found = append(found, record)
			}
		}
		return nil
	})
	return found, err
}

// AllServiceRecords walks the position index, so records come back in
// listing order.
func (r *ServiceRepository) AllServiceRecords(ctx context.Context) ([]*core.ServiceRecord, error) {
	var records []*core.ServiceRecord
	err := r.read(func(tx *badger.Txn) error {
		iter := newIndexIterator(tx, true)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			id, err := indexedID(iter.Item())
			if err != nil {
				return err
			}
			record, err := fetchRecord(tx, id)
			if err != nil {
				return err
			}
			if record != nil {
				records = append(records, record)
			}
		}
		return nil
	})
	return records, err
}

// CountServiceRecords counts position index entries without loading any
// values.
func (r *ServiceRepository) CountServiceRecords(ctx context.Context) (int, error) {
	count := 0
	err := r.read(func(tx *badger.Txn) error {
		iter := newIndexIterator(tx, false)
		defer iter.Close()
		for iter.Rewind(); iter.Valid(); iter.Next() {
			count++
		}
		return nil
	})
	return count, err
}

// newIndexIterator scans the position index range. With prefetch off
// only keys are touched.
func newIndexIterator(tx *badger.Txn, prefetch bool) *badger.Iterator {
	opts := badger.DefaultIteratorOptions
	opts.Prefix = positionIndexPrefix()
	opts.PrefetchValues = prefetch
	return tx.NewIterator(opts)
}

// putRecord serializes record under its primary key inside tx.
func putRecord(tx *badger.Txn, record *core.ServiceRecord) error {
	return tx.Set(makeServiceRecordKey(record.Id), storage.MarshalServiceRecord(record))
}

// fetchRecord loads and decodes one record inside tx. A missing key
// comes back as (nil, nil) so callers choose how absence surfaces.
func fetchRecord(tx *badger.Txn, id core.ID) (*core.ServiceRecord, error) {
	item, err := tx.Get(makeServiceRecordKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeRecordItem(item)
}

// indexedID decodes the record ID an index entry points at.
func indexedID(item *badger.Item) (core.ID, error) {
	var id core.ID
	err := item.Value(func(val []byte) error {
		var derr error
		id, derr = storage.UnmarshalID(val)
		return derr
	})
	return id, err
}
