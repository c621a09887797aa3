package readinglist

import (
	"context"
	"errors"

	"libraryapi/internal/kv"
)

const idIndex = "id-index"

// BadgerRepo keeps lists under (userId, id) with an id-index entry per list.
type BadgerRepo struct {
	table *kv.Table[ReadingList]
}

func NewBadgerRepo(db *kv.DB, tableName string) *BadgerRepo {
	table := kv.NewTable(db, tableName, func(l *ReadingList) kv.Key {
		return kv.Key{Partition: l.UserID, Sort: l.ID}
	}).WithIndex(idIndex, func(l *ReadingList) string { return l.ID })
	return &BadgerRepo{table: table}
}

func mapErr(err error) error {
	if errors.Is(err, kv.ErrNotFound) {
		return ErrNotFound
	}
	return err
}

func (r *BadgerRepo) Create(ctx context.Context, l *ReadingList) error {
	return r.table.Put(ctx, l)
}

func (r *BadgerRepo) Get(ctx context.Context, userID, id string) (ReadingList, error) {
	l, err := r.table.Get(ctx, kv.Key{Partition: userID, Sort: id})
	if err != nil {
		return ReadingList{}, mapErr(err)
	}
	return *l, nil
}

func (r *BadgerRepo) GetByID(ctx context.Context, id string) (ReadingList, error) {
	l, err := r.table.GetByIndex(ctx, idIndex, id)
	if err != nil {
		return ReadingList{}, mapErr(err)
	}
	return *l, nil
}

func (r *BadgerRepo) ListByUser(ctx context.Context, userID string) ([]ReadingList, error) {
	return r.table.Query(ctx, userID)
}

func (r *BadgerRepo) Update(ctx context.Context, userID, id string, fn func(*ReadingList) error) (ReadingList, error) {
	l, err := r.table.Update(ctx, kv.Key{Partition: userID, Sort: id}, fn)
	if err != nil {
		return ReadingList{}, mapErr(err)
	}
	return *l, nil
}

func (r *BadgerRepo) Delete(ctx context.Context, userID, id string) (ReadingList, error) {
	l, err := r.table.Delete(ctx, kv.Key{Partition: userID, Sort: id})
	if err != nil {
		return ReadingList{}, mapErr(err)
	}
	return *l, nil
}
