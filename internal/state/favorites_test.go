package state

import (
	"context"
	"errors"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libraryapi/internal/book"
	"libraryapi/internal/localstore"
)

var (
	gatsby = book.Book{ID: "1", Title: "The Great Gatsby", Author: "F. Scott Fitzgerald"}
	dune   = book.Book{ID: "5", Title: "Dune", Author: "Frank Herbert"}
)

func newStore(t *testing.T) *localstore.Store {
	t.Helper()
	s, err := localstore.Open("")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestFavorites_AddRemove(t *testing.T) {
	ctx := context.Background()
	f := NewFavorites(ctx, newStore(t))
	assert.Empty(t, f.Favorites())

	require.NoError(t, f.AddToFavorites(ctx, gatsby))
	require.NoError(t, f.AddToFavorites(ctx, dune))
	require.NoError(t, f.AddToFavorites(ctx, book.Book{ID: "1", Title: "duplicate"}))

	assert.Equal(t, []book.Book{gatsby, dune}, f.Favorites())
	assert.True(t, f.IsFavorite("5"))

	require.NoError(t, f.RemoveFromFavorites(ctx, "1"))
	require.NoError(t, f.RemoveFromFavorites(ctx, "missing"))
	assert.Equal(t, []book.Book{dune}, f.Favorites())
	assert.False(t, f.IsFavorite("1"))
}

func TestFavorites_ToggleTwiceRestores(t *testing.T) {
	ctx := context.Background()
	f := NewFavorites(ctx, newStore(t))
	require.NoError(t, f.AddToFavorites(ctx, gatsby))
	before := f.Favorites()

	on, err := f.ToggleFavorite(ctx, dune)
	require.NoError(t, err)
	assert.True(t, on)

	on, err = f.ToggleFavorite(ctx, dune)
	require.NoError(t, err)
	assert.False(t, on)

	assert.Equal(t, before, f.Favorites())
}

func TestFavorites_RehydratesFromStore(t *testing.T) {
	ctx := context.Background()
	store := newStore(t)

	f := NewFavorites(ctx, store)
	require.NoError(t, f.AddToFavorites(ctx, dune))
	require.NoError(t, f.AddToFavorites(ctx, gatsby))

	again := NewFavorites(ctx, store)
	assert.Equal(t, []book.Book{dune, gatsby}, again.Favorites())
}

func TestFavorites_CorruptDataStartsEmpty(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStorage(ctrl)
	store.EXPECT().GetItem(gomock.Any(), FavoritesKey).Return([]byte(`{not json`), nil)

	f := NewFavorites(context.Background(), store)
	assert.Equal(t, []book.Book{}, f.Favorites())
}

func TestFavorites_PersistFailureKeepsChange(t *testing.T) {
	ctrl := gomock.NewController(t)
	store := NewMockStorage(ctrl)
	boom := errors.New("disk full")
	store.EXPECT().GetItem(gomock.Any(), FavoritesKey).Return(nil, localstore.ErrNotFound)
	store.EXPECT().SetItem(gomock.Any(), FavoritesKey, gomock.Any()).Return(boom)

	f := NewFavorites(context.Background(), store)
	err := f.AddToFavorites(context.Background(), gatsby)

	assert.ErrorIs(t, err, boom)
	assert.True(t, f.IsFavorite("1"))
}

func TestFavorites_ReturnsCopy(t *testing.T) {
	ctx := context.Background()
	f := NewFavorites(ctx, newStore(t))
	require.NoError(t, f.AddToFavorites(ctx, gatsby))

	got := f.Favorites()
	got[0].Title = "mutated"

	assert.Equal(t, "The Great Gatsby", f.Favorites()[0].Title)
}
