package ratelimit

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v3"
)

// BadgerStore persists timestamps in an embedded badger database so limits
// survive restarts. Entries are written with a TTL and expire on their own.
type BadgerStore struct {
	db *badger.DB
}

// OpenBadgerStore opens (or creates) a store at path. An empty path opens an
// in-memory database.
func OpenBadgerStore(path string, logger badger.Logger) (*BadgerStore, error) {
	opts := badger.DefaultOptions(path).WithLogger(logger)
	if path == "" {
		opts = opts.WithInMemory(true)
	}
	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open rate limit store: %w", err)
	}
	return &BadgerStore{db: db}, nil
}

func (s *BadgerStore) Load(_ context.Context, key string) ([]time.Time, error) {
	var raw []byte
	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(keyPrefix + key))
		if err != nil {
			return err
		}
		raw, err = item.ValueCopy(nil)
		return err
	})
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return decodeStamps(raw)
}

func (s *BadgerStore) Save(_ context.Context, key string, stamps []time.Time, ttl time.Duration) error {
	k := []byte(keyPrefix + key)
	if len(stamps) == 0 {
		return s.db.Update(func(txn *badger.Txn) error {
			return txn.Delete(k)
		})
	}
	raw, err := encodeStamps(stamps)
	if err != nil {
		return err
	}
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.SetEntry(badger.NewEntry(k, raw).WithTTL(ttl))
	})
}

// Close releases the underlying database.
func (s *BadgerStore) Close() error {
	return s.db.Close()
}
