package book

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"libraryapi/internal/testutil"
)

func setupPostgresRepo(t *testing.T) (*PostgresRepo, string) {
	t.Helper()
	pool := testutil.OpenPostgres(t)
	prefix := "t-" + uuid.NewString()
	t.Cleanup(func() {
		_, _ = pool.Exec(context.Background(), `DELETE FROM books WHERE id LIKE $1`, prefix+"%")
	})
	return NewPostgresRepo(pool, 5*time.Second), prefix
}

func TestPostgresRepo_PutGetDelete(t *testing.T) {
	repo, prefix := setupPostgresRepo(t)
	ctx := context.Background()
	id := prefix + "-dune"

	_, err := repo.Get(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)

	b := &Book{ID: id, Title: "Dune", Author: "Frank Herbert", Genre: "Science Fiction",
		Rating: 4.5, PublishedYear: 1965, ISBN: "9780441172719"}
	require.NoError(t, repo.Put(ctx, b))

	got, err := repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, *b, got)

	b.Rating = 4.8
	require.NoError(t, repo.Put(ctx, b))
	got, err = repo.Get(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, 4.8, got.Rating)

	deleted, err := repo.Delete(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, "Dune", deleted.Title)

	_, err = repo.Delete(ctx, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPostgresRepo_ScanPages(t *testing.T) {
	repo, prefix := setupPostgresRepo(t)
	ctx := context.Background()
	for i := 0; i < 5; i++ {
		require.NoError(t, repo.Put(ctx, &Book{ID: fmt.Sprintf("%s-%02d", prefix, i), Title: fmt.Sprintf("Title %d", i), Author: "A"}))
	}

	first, err := repo.ScanPage(ctx, prefix, 2)
	require.NoError(t, err)
	require.Len(t, first.Books, 2)
	assert.Equal(t, prefix+"-00", first.Books[0].ID)
	assert.Equal(t, prefix+"-01", first.LastKey)

	second, err := repo.ScanPage(ctx, first.LastKey, 2)
	require.NoError(t, err)
	require.Len(t, second.Books, 2)
	assert.Equal(t, prefix+"-02", second.Books[0].ID)
	assert.Equal(t, prefix+"-03", second.LastKey)

	third, err := repo.ScanPage(ctx, second.LastKey, 2)
	require.NoError(t, err)
	require.NotEmpty(t, third.Books)
	assert.Equal(t, prefix+"-04", third.Books[0].ID)
}
