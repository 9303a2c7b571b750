package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/wayfarer/internal/domain"
)

// pgForeignKeyViolation is the Postgres SQLSTATE for a missing referenced row.
const pgForeignKeyViolation = "23503"

// VisitRepo defines the persistence operations for visits.
type VisitRepo interface {
	// Create records a visit. Returns domain.ErrNotFound if the place does
	// not exist.
	Create(ctx context.Context, visit domain.Visit) (domain.Visit, error)

	// ListPlaceIDsSince returns the distinct place ids visited at or after
	// since, ordered by id.
	ListPlaceIDsSince(ctx context.Context, since time.Time) ([]string, error)
}

// pgVisitRepo is the Postgres implementation of VisitRepo.
type pgVisitRepo struct {
	db db
}

// NewVisitRepo constructs a VisitRepo backed by the provided db connection.
func NewVisitRepo(db db) VisitRepo {
	return &pgVisitRepo{db: db}
}

// Create inserts a visit. A zero VisitedAt lets the database stamp it.
func (r *pgVisitRepo) Create(ctx context.Context, visit domain.Visit) (domain.Visit, error) {
	const q = `
		INSERT INTO visits (place_id, visited_at)
		VALUES (@place_id, COALESCE(@visited_at, now()))
		RETURNING id, place_id, visited_at`

	visitedAt := pgtype.Timestamptz{Time: visit.VisitedAt, Valid: !visit.VisitedAt.IsZero()}

	var (
		out domain.Visit
		id  pgtype.UUID
	)
	err := r.db.QueryRow(ctx, q, pgx.NamedArgs{"place_id": visit.PlaceID, "visited_at": visitedAt}).
		Scan(&id, &out.PlaceID, &out.VisitedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgForeignKeyViolation {
			return domain.Visit{}, fmt.Errorf("repo.VisitRepo.Create: place %q: %w", visit.PlaceID, domain.ErrNotFound)
		}
		return domain.Visit{}, fmt.Errorf("repo.VisitRepo.Create: %w", err)
	}
	out.ID = uuid.UUID(id.Bytes)
	return out, nil
}

// ListPlaceIDsSince returns the places visited inside the window.
func (r *pgVisitRepo) ListPlaceIDsSince(ctx context.Context, since time.Time) ([]string, error) {
	const q = `
		SELECT DISTINCT place_id
		FROM visits
		WHERE visited_at >= @since
		ORDER BY place_id`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"since": since})
	if err != nil {
		return nil, fmt.Errorf("repo.VisitRepo.ListPlaceIDsSince: %w", err)
	}
	ids, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("repo.VisitRepo.ListPlaceIDsSince: rows: %w", err)
	}
	return ids, nil
}
