package state

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/goccy/go-json"

	"libraryapi/internal/book"
	"libraryapi/internal/localstore"
	"libraryapi/internal/logging"
)

// FavoritesKey is the local store key holding the favorites as a JSON array.
const FavoritesKey = "library-favorites"

// Favorites is a locally persisted, ordered set of books keyed by id.
type Favorites struct {
	store Storage

	mu    sync.Mutex
	books []book.Book
}

// NewFavorites rehydrates the favorites from store. Missing or unreadable
// data starts an empty set.
func NewFavorites(ctx context.Context, store Storage) *Favorites {
	f := &Favorites{store: store, books: []book.Book{}}

	data, err := store.GetItem(ctx, FavoritesKey)
	switch {
	case errors.Is(err, localstore.ErrNotFound):
		return f
	case err != nil:
		logging.Warn().Err(err).Msg("error loading favorites")
		return f
	}

	var books []book.Book
	if err := json.Unmarshal(data, &books); err != nil {
		logging.Warn().Err(err).Msg("discarding corrupt favorites")
		return f
	}
	if books != nil {
		f.books = books
	}
	return f
}

// Favorites returns a copy of the favorite books in insertion order.
func (f *Favorites) Favorites() []book.Book {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]book.Book{}, f.books...)
}

func (f *Favorites) IsFavorite(bookID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.indexOf(bookID) >= 0
}

// AddToFavorites appends b unless a book with the same id is already there.
func (f *Favorites) AddToFavorites(ctx context.Context, b book.Book) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.indexOf(b.ID) >= 0 {
		return nil
	}
	f.books = append(f.books, b)
	return f.persist(ctx)
}

func (f *Favorites) RemoveFromFavorites(ctx context.Context, bookID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	i := f.indexOf(bookID)
	if i < 0 {
		return nil
	}
	f.books = append(f.books[:i], f.books[i+1:]...)
	return f.persist(ctx)
}

// ToggleFavorite flips the favorite state of b and returns the new state.
func (f *Favorites) ToggleFavorite(ctx context.Context, b book.Book) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if i := f.indexOf(b.ID); i >= 0 {
		f.books = append(f.books[:i], f.books[i+1:]...)
		return false, f.persist(ctx)
	}
	f.books = append(f.books, b)
	return true, f.persist(ctx)
}

// persist writes the whole set. The in-memory change stands even when the
// write fails. Callers hold f.mu.
func (f *Favorites) persist(ctx context.Context) error {
	data, err := json.Marshal(f.books)
	if err != nil {
		return fmt.Errorf("encode favorites: %w", err)
	}
	if err := f.store.SetItem(ctx, FavoritesKey, data); err != nil {
		return fmt.Errorf("persist favorites: %w", err)
	}
	return nil
}

func (f *Favorites) indexOf(bookID string) int {
	for i, b := range f.books {
		if b.ID == bookID {
			return i
		}
	}
	return -1
}
