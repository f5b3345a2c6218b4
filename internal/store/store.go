// Package store persists the durable bubble record in an embedded
// BadgerDB key-value store. All failure modes degrade per design:
// corrupt or invalid records load as "no saved bubble" and write
// failures are logged and swallowed, never surfaced to the UI.
package store

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/dgraph-io/badger/v4"
)

// bubbleKey is the single record key. One bubble per store.
var bubbleKey = []byte("bubble")

// Store wraps a BadgerDB instance holding the bubble record.
type Store struct {
	db     *badger.DB
	logger *slog.Logger
}

// Open opens (creating if needed) a store at the given directory.
func Open(path string, logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions(path).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open store at %s: %w", path, err)
	}
	return newStore(db, logger), nil
}

// OpenInMemory opens an in-memory store. Used by tests.
func OpenInMemory(logger *slog.Logger) (*Store, error) {
	opts := badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open in-memory store: %w", err)
	}
	return newStore(db, logger), nil
}

func newStore(db *badger.DB, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}
	return &Store{db: db, logger: logger}
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Raw returns the stored record bytes, or ok=false when absent.
func (s *Store) Raw() ([]byte, bool) {
	var out []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(bubbleKey)
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	if err != nil {
		if !errors.Is(err, badger.ErrKeyNotFound) {
			s.logger.Warn("read bubble record", "error", err)
		}
		return nil, false
	}
	return out, true
}

// put writes the record bytes. Errors are returned for the caller to
// absorb.
func (s *Store) put(data []byte) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(bubbleKey, data)
	})
}
