package kv

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type item struct {
	Owner string `json:"owner"`
	ID    string `json:"id"`
	Name  string `json:"name"`
}

func setupTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(Options{InMemory: true})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func newItemTable(db *DB) *Table[item] {
	return NewTable(db, "Items", func(i *item) Key {
		return Key{Partition: i.Owner, Sort: i.ID}
	}).WithIndex("id", func(i *item) string { return i.ID })
}

func TestTable_PutGetDelete(t *testing.T) {
	ctx := context.Background()
	tbl := newItemTable(setupTestDB(t))

	require.NoError(t, tbl.Put(ctx, &item{Owner: "1", ID: "a", Name: "first"}))

	got, err := tbl.Get(ctx, Key{Partition: "1", Sort: "a"})
	require.NoError(t, err)
	assert.Equal(t, "first", got.Name)

	_, err = tbl.Get(ctx, Key{Partition: "2", Sort: "a"})
	assert.ErrorIs(t, err, ErrNotFound)

	old, err := tbl.Delete(ctx, Key{Partition: "1", Sort: "a"})
	require.NoError(t, err)
	assert.Equal(t, "first", old.Name)

	_, err = tbl.Delete(ctx, Key{Partition: "1", Sort: "a"})
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = tbl.GetByIndex(ctx, "id", "a")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestTable_GetByIndex(t *testing.T) {
	ctx := context.Background()
	tbl := newItemTable(setupTestDB(t))

	require.NoError(t, tbl.Put(ctx, &item{Owner: "user/with/slashes", ID: "x", Name: "n"}))

	got, err := tbl.GetByIndex(ctx, "id", "x")
	require.NoError(t, err)
	assert.Equal(t, "user/with/slashes", got.Owner)
}

func TestTable_Update(t *testing.T) {
	ctx := context.Background()
	tbl := newItemTable(setupTestDB(t))
	key := Key{Partition: "1", Sort: "a"}
	require.NoError(t, tbl.Put(ctx, &item{Owner: "1", ID: "a", Name: "old"}))

	got, err := tbl.Update(ctx, key, func(i *item) error {
		i.Name = "new"
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, "new", got.Name)

	stored, err := tbl.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "new", stored.Name)

	_, err = tbl.Update(ctx, Key{Partition: "1", Sort: "missing"}, func(*item) error { return nil })
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = tbl.Update(ctx, key, func(i *item) error {
		i.ID = "moved"
		return nil
	})
	assert.Error(t, err)
}

func TestTable_QueryIsolatesPartitions(t *testing.T) {
	ctx := context.Background()
	tbl := newItemTable(setupTestDB(t))

	require.NoError(t, tbl.Put(ctx, &item{Owner: "a", ID: "1"}))
	require.NoError(t, tbl.Put(ctx, &item{Owner: "a", ID: "2"}))
	require.NoError(t, tbl.Put(ctx, &item{Owner: "a/b", ID: "3"}))
	require.NoError(t, tbl.Put(ctx, &item{Owner: "ab", ID: "4"}))

	got, err := tbl.Query(ctx, "a")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "1", got[0].ID)
	assert.Equal(t, "2", got[1].ID)

	none, err := tbl.Query(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestTable_ScanPages(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)
	tbl := NewTable(db, "Books", func(i *item) Key { return Key{Partition: i.ID} })
	other := newItemTable(db)
	require.NoError(t, other.Put(ctx, &item{Owner: "1", ID: "zz"}))

	for i := 0; i < 5; i++ {
		require.NoError(t, tbl.Put(ctx, &item{ID: fmt.Sprintf("b%d", i)}))
	}

	var all []item
	var pages int
	in := ScanInput{Limit: 2}
	for {
		out, err := tbl.Scan(ctx, in)
		require.NoError(t, err)
		pages++
		all = append(all, out.Items...)
		if out.LastEvaluatedKey == "" {
			break
		}
		in.ExclusiveStartKey = out.LastEvaluatedKey
	}

	assert.Equal(t, 3, pages)
	require.Len(t, all, 5)
	for i, it := range all {
		assert.Equal(t, fmt.Sprintf("b%d", i), it.ID)
	}
}

func TestTable_ScanExactPageHasNoCursor(t *testing.T) {
	ctx := context.Background()
	tbl := NewTable(setupTestDB(t), "Books", func(i *item) Key { return Key{Partition: i.ID} })
	require.NoError(t, tbl.Put(ctx, &item{ID: "a"}))
	require.NoError(t, tbl.Put(ctx, &item{ID: "b"}))

	out, err := tbl.Scan(ctx, ScanInput{Limit: 2})
	require.NoError(t, err)
	assert.Len(t, out.Items, 2)
	assert.Empty(t, out.LastEvaluatedKey)

	_, err = tbl.Scan(ctx, ScanInput{})
	assert.Error(t, err)
}

func TestDB_RawAndPing(t *testing.T) {
	ctx := context.Background()
	db := setupTestDB(t)

	require.NoError(t, db.Ping(ctx))

	_, err := db.GetRaw(ctx, "k")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, db.SetRaw(ctx, "k", []byte("v")))
	got, err := db.GetRaw(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v", string(got))
}
