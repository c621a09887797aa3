package readinglist

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

const listColumns = `id, user_id, name, description, book_ids, created_at, updated_at`

func scanList(row pgx.Row) (ReadingList, error) {
	var l ReadingList
	err := row.Scan(&l.ID, &l.UserID, &l.Name, &l.Description, &l.BookIDs, &l.CreatedAt, &l.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return ReadingList{}, ErrNotFound
	}
	if err != nil {
		return ReadingList{}, err
	}
	if l.BookIDs == nil {
		l.BookIDs = []string{}
	}
	l.CreatedAt = l.CreatedAt.UTC()
	l.UpdatedAt = l.UpdatedAt.UTC()
	return l, nil
}

func (r *PostgresRepo) Create(ctx context.Context, l *ReadingList) error {
	const q = `INSERT INTO reading_lists (` + listColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	_, err := r.db.Exec(ctx, q, l.ID, l.UserID, l.Name, l.Description, l.BookIDs, l.CreatedAt, l.UpdatedAt)
	return err
}

func (r *PostgresRepo) Get(ctx context.Context, userID, id string) (ReadingList, error) {
	const q = `SELECT ` + listColumns + ` FROM reading_lists WHERE user_id = $1 AND id = $2`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	return scanList(r.db.QueryRow(ctx, q, userID, id))
}

func (r *PostgresRepo) GetByID(ctx context.Context, id string) (ReadingList, error) {
	const q = `SELECT ` + listColumns + ` FROM reading_lists WHERE id = $1 LIMIT 1`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	return scanList(r.db.QueryRow(ctx, q, id))
}

func (r *PostgresRepo) ListByUser(ctx context.Context, userID string) ([]ReadingList, error) {
	const q = `SELECT ` + listColumns + ` FROM reading_lists WHERE user_id = $1 ORDER BY id`

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	rows, err := r.db.Query(ctx, q, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	lists := []ReadingList{}
	for rows.Next() {
		l, err := scanList(rows)
		if err != nil {
			return nil, err
		}
		lists = append(lists, l)
	}
	return lists, rows.Err()
}

func (r *PostgresRepo) Update(ctx context.Context, userID, id string, fn func(*ReadingList) error) (ReadingList, error) {
	ctx, cancel := r.withTimeout(ctx)
	defer cancel()

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return ReadingList{}, err
	}
	defer func() { _ = tx.Rollback(ctx) }()

	const sel = `SELECT ` + listColumns + ` FROM reading_lists WHERE user_id = $1 AND id = $2 FOR UPDATE`
	l, err := scanList(tx.QueryRow(ctx, sel, userID, id))
	if err != nil {
		return ReadingList{}, err
	}
	if err := fn(&l); err != nil {
		return ReadingList{}, err
	}

	const upd = `
		UPDATE reading_lists
		SET name = $3, description = $4, book_ids = $5, updated_at = $6
		WHERE user_id = $1 AND id = $2
	`
	if _, err := tx.Exec(ctx, upd, userID, id, l.Name, l.Description, l.BookIDs, l.UpdatedAt); err != nil {
		return ReadingList{}, err
	}
	if err := tx.Commit(ctx); err != nil {
		return ReadingList{}, err
	}
	return l, nil
}

func (r *PostgresRepo) Delete(ctx context.Context, userID, id string) (ReadingList, error) {
	const q = `DELETE FROM reading_lists WHERE user_id = $1 AND id = $2 RETURNING ` + listColumns

	ctx, cancel := r.withTimeout(ctx)
	defer cancel()
	return scanList(r.db.QueryRow(ctx, q, userID, id))
}
