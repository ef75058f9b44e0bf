package repositories

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrProductNotFound  = errors.New("product not found")
	// ErrNotSiblings is returned when a reorder payload mixes categories of different parents.
	ErrNotSiblings = errors.New("categories are not siblings")
	// ErrIncompleteReorder is returned when a reorder payload leaves out some of the siblings.
	ErrIncompleteReorder = errors.New("reorder must list every sibling")
	// ErrInvalidParent is returned when a parent would nest categories more than two levels deep.
	ErrInvalidParent = errors.New("invalid parent category")
)

// Database is satisfied by *pgxpool.Pool and by pgxmock pools.
type Database interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
}
