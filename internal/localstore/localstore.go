// Package localstore is a small durable key/value store for client side
// state, backed by Badger.
package localstore

import (
	"context"
	"fmt"

	"libraryapi/internal/kv"
)

const keyPrefix = "localstorage/"

// ErrNotFound is returned by GetItem for keys that were never set.
var ErrNotFound = kv.ErrNotFound

type Store struct {
	db    *kv.DB
	owned bool
}

// Open opens a store at path. An empty path keeps everything in memory.
func Open(path string) (*Store, error) {
	db, err := kv.Open(kv.Options{Path: path, InMemory: path == ""})
	if err != nil {
		return nil, fmt.Errorf("open local store: %w", err)
	}
	return &Store{db: db, owned: true}, nil
}

// New wraps an already open database. Close leaves it open.
func New(db *kv.DB) *Store {
	return &Store{db: db}
}

func (s *Store) GetItem(ctx context.Context, key string) ([]byte, error) {
	return s.db.GetRaw(ctx, keyPrefix+key)
}

func (s *Store) SetItem(ctx context.Context, key string, value []byte) error {
	if err := s.db.SetRaw(ctx, keyPrefix+key, value); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return nil
}

func (s *Store) Close() error {
	if !s.owned {
		return nil
	}
	return s.db.Close()
}
