package book

import (
	"context"
	"errors"

	"libraryapi/internal/kv"
)

// BadgerRepo stores books in the embedded key-value table keyed by id.
type BadgerRepo struct {
	table *kv.Table[Book]
}

func NewBadgerRepo(db *kv.DB, tableName string) *BadgerRepo {
	return &BadgerRepo{
		table: kv.NewTable(db, tableName, func(b *Book) kv.Key {
			return kv.Key{Partition: b.ID}
		}),
	}
}

func mapErr(err error) error {
	if errors.Is(err, kv.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (r *BadgerRepo) ScanPage(ctx context.Context, startKey string, limit int) (Page, error) {
	out, err := r.table.Scan(ctx, kv.ScanInput{Limit: limit, ExclusiveStartKey: startKey})
	if err != nil {
		return Page{}, err
	}
	return Page{Books: out.Items, LastKey: out.LastEvaluatedKey}, nil
}

func (r *BadgerRepo) Get(ctx context.Context, id string) (Book, error) {
	b, err := r.table.Get(ctx, kv.Key{Partition: id})
	if err != nil {
		return Book{}, mapErr(err)
	}
	return *b, nil
}

func (r *BadgerRepo) Put(ctx context.Context, b *Book) error {
	return r.table.Put(ctx, b)
}

func (r *BadgerRepo) Delete(ctx context.Context, id string) (Book, error) {
	b, err := r.table.Delete(ctx, kv.Key{Partition: id})
	if err != nil {
		return Book{}, mapErr(err)
	}
	return *b, nil
}
