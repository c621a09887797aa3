package book

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepo struct {
	db      *pgxpool.Pool
	timeout time.Duration
}

func NewPostgresRepo(db *pgxpool.Pool, timeout time.Duration) *PostgresRepo {
	return &PostgresRepo{db: db, timeout: timeout}
}

func (r *PostgresRepo) withTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, r.timeout)
}

const bookColumns = `id, title, author, genre, description, cover_image, rating, published_year, isbn`

func scanBook(row pgx.Row) (Book, error) {
	var b Book
	err := row.Scan(&b.ID, &b.Title, &b.Author, &b.Genre, &b.Description,
		&b.CoverImage, &b.Rating, &b.PublishedYear, &b.ISBN)
	return b, err
}

// ScanPage pages by id. startKey is the last id of the previous page.
func (r *PostgresRepo) ScanPage(ctx context.Context, startKey string, limit int) (Page, error) {
	const q = `SELECT ` + bookColumns + ` FROM books WHERE id > $1 ORDER BY id LIMIT $2`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	rows, err := r.db.Query(ctx, q, startKey, limit+1)
	if err != nil {
		return Page{}, err
	}
	defer rows.Close()

	books := make([]Book, 0, limit)
	for rows.Next() {
		b, err := scanBook(rows)
		if err != nil {
			return Page{}, err
		}
		books = append(books, b)
	}
	if err := rows.Err(); err != nil {
		return Page{}, err
	}

	page := Page{Books: books}
	if len(books) > limit {
		page.Books = books[:limit]
		page.LastKey = books[limit-1].ID
	}
	return page, nil
}

func (r *PostgresRepo) Get(ctx context.Context, id string) (Book, error) {
	const q = `SELECT ` + bookColumns + ` FROM books WHERE id = $1`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	b, err := scanBook(r.db.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Book{}, ErrNotFound
	}
	return b, err
}

func (r *PostgresRepo) Put(ctx context.Context, b *Book) error {
	const q = `
		INSERT INTO books (` + bookColumns + `, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, NOW())
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			author = EXCLUDED.author,
			genre = EXCLUDED.genre,
			description = EXCLUDED.description,
			cover_image = EXCLUDED.cover_image,
			rating = EXCLUDED.rating,
			published_year = EXCLUDED.published_year,
			isbn = EXCLUDED.isbn,
			updated_at = NOW()
	`
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	_, err := r.db.Exec(ctx, q, b.ID, b.Title, b.Author, b.Genre, b.Description,
		b.CoverImage, b.Rating, b.PublishedYear, b.ISBN)
	return err
}

func (r *PostgresRepo) Delete(ctx context.Context, id string) (Book, error) {
	const q = `DELETE FROM books WHERE id = $1 RETURNING ` + bookColumns

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	b, err := scanBook(r.db.QueryRow(ctx, q, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return Book{}, ErrNotFound
	}
	return b, err
}
