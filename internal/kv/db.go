// Package kv implements keyed tables on top of an embedded Badger database.
//
// A table stores JSON encoded items under "{table}/{partition}[/{sort}]" and
// keeps secondary index entries under "{table}#idx/{index}/{value}" pointing
// back at the primary key.
package kv

import (
	"context"
	"errors"
	"fmt"

	"github.com/dgraph-io/badger/v4"
	"github.com/rs/zerolog"

	"libraryapi/internal/logging"
)

// ErrNotFound is returned when a key or index entry does not exist.
var ErrNotFound = errors.New("item not found")

type Options struct {
	Path     string
	InMemory bool
}

// DB wraps a Badger instance shared by all tables.
type DB struct {
	db *badger.DB
}

func Open(opts Options) (*DB, error) {
	bopts := badger.DefaultOptions(opts.Path)
	if opts.InMemory {
		bopts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		bopts.SyncWrites = true
		bopts.CompactL0OnClose = true
	}
	bopts.Logger = badgerLogger{l: logging.With("badger")}

	db, err := badger.Open(bopts)
	if err != nil {
		return nil, fmt.Errorf("open badger db: %w", err)
	}
	return &DB{db: db}, nil
}

func (d *DB) Close() error {
	return d.db.Close()
}

// Ping reports whether the database is open and readable.
func (d *DB) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d.db.IsClosed() {
		return errors.New("badger db is closed")
	}
	return d.db.View(func(*badger.Txn) error { return nil })
}

// GetRaw reads an untyped value.
func (d *DB) GetRaw(ctx context.Context, key string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []byte
	err := d.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get([]byte(key))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		out, err = item.ValueCopy(nil)
		return err
	})
	return out, err
}

// SetRaw writes an untyped value.
func (d *DB) SetRaw(ctx context.Context, key string, value []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return d.db.Update(func(txn *badger.Txn) error {
		return txn.Set([]byte(key), value)
	})
}

// badgerLogger routes Badger's internal messages into zerolog.
// Info and debug chatter is demoted to debug.
type badgerLogger struct {
	l zerolog.Logger
}

func (b badgerLogger) Errorf(f string, args ...interface{})   { b.l.Error().Msgf(f, args...) }
func (b badgerLogger) Warningf(f string, args ...interface{}) { b.l.Warn().Msgf(f, args...) }
func (b badgerLogger) Infof(f string, args ...interface{})    { b.l.Debug().Msgf(f, args...) }
func (b badgerLogger) Debugf(f string, args ...interface{})   { b.l.Trace().Msgf(f, args...) }
