package repo

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
)

// TagRepo reads the tag vocabulary attached to places. Tags are stored
// lowercase on each place; there is no separate tags table.
type TagRepo interface {
	// List returns the distinct tags starting with prefix, ordered
	// alphabetically. An empty prefix returns every tag.
	List(ctx context.Context, prefix string) ([]string, error)
}

// pgTagRepo is the Postgres implementation of TagRepo.
type pgTagRepo struct {
	db db
}

// NewTagRepo constructs a TagRepo backed by the provided db connection.
func NewTagRepo(db db) TagRepo {
	return &pgTagRepo{db: db}
}

// List unnests every place's tags and filters them by prefix.
func (r *pgTagRepo) List(ctx context.Context, prefix string) ([]string, error) {
	const q = `
		SELECT DISTINCT tag
		FROM places, unnest(tags) AS tag
		WHERE tag LIKE @prefix || '%'
		ORDER BY tag`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"prefix": prefix})
	if err != nil {
		return nil, fmt.Errorf("repo.TagRepo.List: %w", err)
	}
	tags, err := pgx.CollectRows(rows, pgx.RowTo[string])
	if err != nil {
		return nil, fmt.Errorf("repo.TagRepo.List: rows: %w", err)
	}
	return orEmpty(tags), nil
}
