package kv

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/url"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
)

// Key addresses one item. Sort is empty for tables keyed by partition only.
type Key struct {
	Partition string
	Sort      string
}

type index[T any] struct {
	name    string
	valueOf func(*T) string
}

// Table is a typed view over one key range of the database.
type Table[T any] struct {
	db      *DB
	name    string
	keyOf   func(*T) Key
	indexes []index[T]
}

func NewTable[T any](db *DB, name string, keyOf func(*T) Key) *Table[T] {
	return &Table[T]{db: db, name: name, keyOf: keyOf}
}

// WithIndex registers a secondary index. Items whose value is empty are not indexed.
func (t *Table[T]) WithIndex(name string, valueOf func(*T) string) *Table[T] {
	t.indexes = append(t.indexes, index[T]{name: name, valueOf: valueOf})
	return t
}

func (t *Table[T]) Name() string { return t.name }

func (t *Table[T]) prefix() []byte {
	return []byte(t.name + "/")
}

func (t *Table[T]) partitionPrefix(partition string) []byte {
	return []byte(t.name + "/" + url.PathEscape(partition) + "/")
}

func (t *Table[T]) primaryKey(k Key) []byte {
	key := t.name + "/" + url.PathEscape(k.Partition)
	if k.Sort != "" {
		key += "/" + url.PathEscape(k.Sort)
	}
	return []byte(key)
}

func (t *Table[T]) indexKey(name, value string) []byte {
	return []byte(t.name + "#idx/" + name + "/" + url.PathEscape(value))
}

func decode[T any](item *badger.Item) (*T, error) {
	var v T
	err := item.Value(func(val []byte) error {
		return json.Unmarshal(val, &v)
	})
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", item.Key(), err)
	}
	return &v, nil
}

func (t *Table[T]) get(txn *badger.Txn, key []byte) (*T, error) {
	item, err := txn.Get(key)
	if errors.Is(err, badger.ErrKeyNotFound) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return decode[T](item)
}

// write stores v and keeps index entries in sync with old, which may be nil.
func (t *Table[T]) write(txn *badger.Txn, old, v *T) error {
	key := t.primaryKey(t.keyOf(v))
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode item: %w", err)
	}
	if err := txn.Set(key, data); err != nil {
		return err
	}
	for _, idx := range t.indexes {
		if old != nil {
			if prev := idx.valueOf(old); prev != "" && prev != idx.valueOf(v) {
				if err := txn.Delete(t.indexKey(idx.name, prev)); err != nil {
					return err
				}
			}
		}
		if val := idx.valueOf(v); val != "" {
			if err := txn.Set(t.indexKey(idx.name, val), key); err != nil {
				return err
			}
		}
	}
	return nil
}

// Put creates or replaces the item at its key.
func (t *Table[T]) Put(ctx context.Context, v *T) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return t.db.db.Update(func(txn *badger.Txn) error {
		old, err := t.get(txn, t.primaryKey(t.keyOf(v)))
		if err != nil && !errors.Is(err, ErrNotFound) {
			return err
		}
		return t.write(txn, old, v)
	})
}

func (t *Table[T]) Get(ctx context.Context, k Key) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out *T
	err := t.db.db.View(func(txn *badger.Txn) error {
		v, err := t.get(txn, t.primaryKey(k))
		out = v
		return err
	})
	return out, err
}

// Update applies fn to the stored item inside one transaction and returns the
// new value. fn must not change the item's key.
func (t *Table[T]) Update(ctx context.Context, k Key, fn func(*T) error) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out *T
	err := t.db.db.Update(func(txn *badger.Txn) error {
		old, err := t.get(txn, t.primaryKey(k))
		if err != nil {
			return err
		}
		next := *old
		if err := fn(&next); err != nil {
			return err
		}
		if t.keyOf(&next) != k {
			return fmt.Errorf("update of %s changed its key", t.primaryKey(k))
		}
		out = &next
		return t.write(txn, old, &next)
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the item and returns it as it was before deletion.
func (t *Table[T]) Delete(ctx context.Context, k Key) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out *T
	err := t.db.db.Update(func(txn *badger.Txn) error {
		key := t.primaryKey(k)
		old, err := t.get(txn, key)
		if err != nil {
			return err
		}
		if err := txn.Delete(key); err != nil {
			return err
		}
		for _, idx := range t.indexes {
			if val := idx.valueOf(old); val != "" {
				if err := txn.Delete(t.indexKey(idx.name, val)); err != nil {
					return err
				}
			}
		}
		out = old
		return nil
	})
	return out, err
}

// GetByIndex resolves value through the named index and loads the item.
func (t *Table[T]) GetByIndex(ctx context.Context, name, value string) (*T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out *T
	err := t.db.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(t.indexKey(name, value))
		if errors.Is(err, badger.ErrKeyNotFound) {
			return ErrNotFound
		}
		if err != nil {
			return err
		}
		primary, err := item.ValueCopy(nil)
		if err != nil {
			return err
		}
		out, err = t.get(txn, primary)
		return err
	})
	return out, err
}

// Query returns every item in one partition ordered by sort key.
func (t *Table[T]) Query(ctx context.Context, partition string) ([]T, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []T
	prefix := t.partitionPrefix(partition)
	err := t.db.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{PrefetchValues: true, PrefetchSize: 100, Prefix: prefix})
		defer it.Close()
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			v, err := decode[T](it.Item())
			if err != nil {
				return err
			}
			out = append(out, *v)
		}
		return nil
	})
	return out, err
}

type ScanInput struct {
	Limit             int
	ExclusiveStartKey string
}

type ScanOutput[T any] struct {
	Items []T
	// LastEvaluatedKey is empty when the table has been fully read.
	LastEvaluatedKey string
}

// Scan reads up to Limit items in key order, resuming after ExclusiveStartKey.
func (t *Table[T]) Scan(ctx context.Context, in ScanInput) (*ScanOutput[T], error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if in.Limit <= 0 {
		return nil, fmt.Errorf("scan limit must be positive, got %d", in.Limit)
	}
	out := &ScanOutput[T]{}
	prefix := t.prefix()
	err := t.db.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.IteratorOptions{PrefetchValues: true, PrefetchSize: 100, Prefix: prefix})
		defer it.Close()

		start := prefix
		if in.ExclusiveStartKey != "" {
			start = []byte(in.ExclusiveStartKey)
		}
		var last []byte
		for it.Seek(start); it.ValidForPrefix(prefix); it.Next() {
			item := it.Item()
			if in.ExclusiveStartKey != "" && bytes.Equal(item.Key(), start) {
				continue
			}
			if len(out.Items) == in.Limit {
				out.LastEvaluatedKey = string(last)
				return nil
			}
			v, err := decode[T](item)
			if err != nil {
				return err
			}
			out.Items = append(out.Items, *v)
			last = item.KeyCopy(nil)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
