package state

import (
	"context"

	"libraryapi/internal/readinglist"
)

//go:generate mockgen -source=ports.go -destination=mock_ports.go -package=state

// ListsAPI is the remote side of the reading lists container.
// *client.Client implements it.
type ListsAPI interface {
	ListUserLists(ctx context.Context) ([]readinglist.ReadingList, error)
	CreateList(ctx context.Context, in readinglist.NewList) (readinglist.ReadingList, error)
	UpdateList(ctx context.Context, id string, patch readinglist.Patch) (readinglist.ReadingList, error)
	DeleteList(ctx context.Context, id string) error
}

// Storage is the durable key/value store behind the favorites container.
// *localstore.Store implements it.
type Storage interface {
	GetItem(ctx context.Context, key string) ([]byte, error)
	SetItem(ctx context.Context, key string, value []byte) error
}
