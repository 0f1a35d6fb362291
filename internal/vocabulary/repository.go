package vocabulary

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var ErrEmpty = errors.New("word list is empty")

// DB is the subset of *pgxpool.Pool the repository needs.
type DB interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

type Repository struct {
	db DB
}

func NewRepository(db DB) *Repository {
	return &Repository{db: db}
}

// List returns every stored word in insertion order.
func (r *Repository) List(ctx context.Context) ([]string, error) {
	rows, err := r.db.Query(ctx, `SELECT word FROM vocabulary ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("query vocabulary: %w", err)
	}

	words, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("scan vocabulary: %w", err)
	}
	return words, nil
}

// Append adds words after the existing ones. Words already stored keep their
// position. It returns the number of rows inserted.
func (r *Repository) Append(ctx context.Context, words []string) (int64, error) {
	if len(words) == 0 {
		return 0, ErrEmpty
	}

	tag, err := r.db.Exec(ctx, `
		INSERT INTO vocabulary (word)
		SELECT w FROM unnest($1::text[]) WITH ORDINALITY AS t(w, ord)
		ORDER BY ord
		ON CONFLICT (word) DO NOTHING
	`, words)
	if err != nil {
		return 0, fmt.Errorf("insert vocabulary: %w", err)
	}
	return tag.RowsAffected(), nil
}
