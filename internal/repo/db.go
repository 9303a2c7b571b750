// Package repo contains all database access for the Wayfarer backend.
// Each resource has its own file with an interface and a Postgres
// implementation. Only SQL and type mapping live here.
package repo

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// db is the minimal interface satisfied by *pgxpool.Pool, *pgx.Conn and
// pgx.Tx. Integration tests pass a transaction that is rolled back after
// each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// txBeginner is a db that can also open a transaction. Both *pgxpool.Pool
// and pgx.Tx (as a savepoint) satisfy it.
type txBeginner interface {
	db
	Begin(ctx context.Context) (pgx.Tx, error)
}

// scanner is satisfied by both pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

// orEmpty keeps nil slices out of NOT NULL array columns.
func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
