package readinglist

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=readinglist

// Repository stores reading lists keyed by (userID, id) with a secondary
// lookup on id alone.
type Repository interface {
	Create(ctx context.Context, l *ReadingList) error
	Get(ctx context.Context, userID, id string) (ReadingList, error)
	GetByID(ctx context.Context, id string) (ReadingList, error)
	ListByUser(ctx context.Context, userID string) ([]ReadingList, error)
	// Update loads the list, applies fn and stores the result atomically.
	Update(ctx context.Context, userID, id string, fn func(*ReadingList) error) (ReadingList, error)
	// Delete removes the list and returns it as it was.
	Delete(ctx context.Context, userID, id string) (ReadingList, error)
}
