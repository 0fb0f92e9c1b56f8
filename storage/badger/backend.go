package badger

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/dgraph-io/badger/v4"
	"github.com/dgraph-io/badger/v4/options"
	"github.com/poiesic/servit/core"
	"github.com/poiesic/servit/storage"
)

// Backend wraps one BadgerDB instance. Repositories share a Backend and
// run their operations through its transactions.
type Backend struct {
	db *badger.DB
}

// badgerLogger forwards BadgerDB's internal log lines to slog.
type badgerLogger struct{ *slog.Logger }

var _ badger.Logger = badgerLogger{}

func (l badgerLogger) Errorf(format string, args ...any)   { l.Error(fmt.Sprintf(format, args...)) }
func (l badgerLogger) Warningf(format string, args ...any) { l.Warn(fmt.Sprintf(format, args...)) }
func (l badgerLogger) Infof(format string, args ...any)    { l.Info(fmt.Sprintf(format, args...)) }
func (l badgerLogger) Debugf(format string, args ...any)   { l.Debug(fmt.Sprintf(format, args...)) }

// ensureDir creates path as a directory when missing and rejects paths
// that exist as something else.
func ensureDir(path string) error {
	info, err := os.Stat(path)
	switch {
	case os.IsNotExist(err):
		return os.MkdirAll(path, 0o755)
	case err != nil:
		return err
	case !info.IsDir():
		return fmt.Errorf("%s is not a directory", path)
	}
	return nil
}

// OpenBackend opens the database at path, creating the directory when
// needed. With inMemory set, path is ignored and nothing touches disk.
func OpenBackend(path string, inMemory bool) (*Backend, error) {
	opts := badger.DefaultOptions("").WithInMemory(true)
	if !inMemory {
		if err := ensureDir(path); err != nil {
			return nil, err
		}
		opts = badger.DefaultOptions(path)
	}
	opts.Logger = badgerLogger{slog.Default()}
	opts.Compression = options.None

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}
	return &Backend{db: db}, nil
}

// Close closes the underlying database.
func (b *Backend) Close() error { return b.db.Close() }

// IsClosed reports whether the database has been closed.
func (b *Backend) IsClosed() bool { return b.db.IsClosed() }

// WithTx runs fn inside a BadgerDB transaction, read-write when isWrite is
// set. The transaction is discarded afterward unless fn committed it.
func (b *Backend) WithTx(fn func(tx *badger.Txn) error, isWrite bool) error {
	tx := b.db.NewTransaction(isWrite)
	defer tx.Discard()
	return fn(tx)
}

// WithTransaction implements the storage.Repository transaction contract:
// fn runs inside a read-write transaction that commits only when fn
// returns nil.
func (b *Backend) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	tx := b.db.NewTransaction(true)
	defer tx.Discard()
	if err := fn(ctx); err != nil {
		return err
	}
	return tx.Commit()
}

// decodeRecordItem unmarshals the record held by a raw iterator item.
func decodeRecordItem(item *badger.Item) (*core.ServiceRecord, error) {
	var record *core.ServiceRecord
	err := item.Value(func(val []byte) error {
		var derr error
		record, derr = storage.UnmarshalServiceRecord(val)
		return derr
	})
	return record, err
}

// byScoreThenPosition orders search results best score first, breaking
// ties by listing position so equal scores keep a stable order.
func byScoreThenPosition(a, b *core.SearchResult) int {
	switch {
	case a.Score > b.Score:
		return -1
	case a.Score < b.Score:
		return 1
	case a.Record.Position < b.Record.Position:
		return -1
	case a.Record.Position > b.Record.Position:
		return 1
	}
	return 0
}

// FindSimilar scores every embedded record against vector by dot product
// and returns the top limit results. Stored vectors are unit length, so
// the score is cosine similarity. Ties keep listing order.
func (b *Backend) FindSimilar(ctx context.Context, vector []float32, limit int) ([]*core.SearchResult, error) {
	var scored []*core.SearchResult

	err := b.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(serviceRecordPrefix)
		it := tx.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			item := it.Item()
			if bytes.HasPrefix(item.Key(), positionIndexPrefix()) {
				continue
			}
			record, err := decodeRecordItem(item)
			if err != nil {
				return err
			}
			if record == nil || len(record.Vector) == 0 {
				continue
			}
			scored = append(scored, &core.SearchResult{Record: record, Score: dotProduct(vector, record.Vector)})
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}

	slices.SortFunc(scored, byScoreThenPosition)
	if len(scored) > limit {
		scored = scored[:limit]
	}
	return scored, nil
}

// dotProduct multiplies two vectors elementwise over their shared length.
func dotProduct(a, b []float32) float32 {
	var sum float32
	for i := range min(len(a), len(b)) {
		sum += a[i] * b[i]
	}
	return sum
}
