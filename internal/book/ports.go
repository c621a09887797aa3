package book

import (
	"context"
)

//go:generate mockgen -source=ports.go -destination=mock_repository.go -package=book

// Repository defines the contract for book data storage.
type Repository interface {
	// ScanPage returns up to limit books following startKey.
	ScanPage(ctx context.Context, startKey string, limit int) (Page, error)
	Get(ctx context.Context, id string) (Book, error)
	Put(ctx context.Context, b *Book) error
	Delete(ctx context.Context, id string) (Book, error)
}
