package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/wayfarer/internal/domain"
)

// PlaceRepo defines the persistence operations for content places.
// The service layer depends on this interface so it can be unit-tested with
// a mock.
type PlaceRepo interface {
	// Upsert inserts a place or replaces the content of an existing one with
	// the same id.
	Upsert(ctx context.Context, place domain.Place) (domain.Place, error)

	// GetByID returns domain.ErrNotFound if no place has that id.
	GetByID(ctx context.Context, id string) (domain.Place, error)

	// ListByRegion returns every place in the region ordered by id. This is
	// the snapshot the planner runs against.
	ListByRegion(ctx context.Context, region string) ([]domain.Place, error)

	// ListPaged returns one page of places ordered by id and the total count.
	// An empty region lists all regions.
	ListPaged(ctx context.Context, region string, p domain.PaginationParams) ([]domain.Place, int64, error)
}

// pgPlaceRepo is the Postgres implementation of PlaceRepo.
type pgPlaceRepo struct {
	db db
}

// NewPlaceRepo constructs a PlaceRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx.
func NewPlaceRepo(db db) PlaceRepo {
	return &pgPlaceRepo{db: db}
}

const placeColumns = `id, name, category, lat, lon, weekly_hours, hours_text, hours_verified_at,
		       hours_exceptions, visit_min_minutes, visit_max_minutes, tags, best_times,
		       tourist_trap, region`

// Upsert writes the full content record.
func (r *pgPlaceRepo) Upsert(ctx context.Context, place domain.Place) (domain.Place, error) {
	const q = `
		INSERT INTO places (id, name, category, lat, lon, weekly_hours, hours_text, hours_verified_at,
		                    hours_exceptions, visit_min_minutes, visit_max_minutes, tags, best_times,
		                    tourist_trap, region)
		VALUES (@id, @name, @category, @lat, @lon, @weekly_hours, @hours_text, @hours_verified_at,
		        @hours_exceptions, @visit_min_minutes, @visit_max_minutes, @tags, @best_times,
		        @tourist_trap, @region)
		ON CONFLICT (id) DO UPDATE SET
		    name              = EXCLUDED.name,
		    category          = EXCLUDED.category,
		    lat               = EXCLUDED.lat,
		    lon               = EXCLUDED.lon,
		    weekly_hours      = EXCLUDED.weekly_hours,
		    hours_text        = EXCLUDED.hours_text,
		    hours_verified_at = EXCLUDED.hours_verified_at,
		    hours_exceptions  = EXCLUDED.hours_exceptions,
		    visit_min_minutes = EXCLUDED.visit_min_minutes,
		    visit_max_minutes = EXCLUDED.visit_max_minutes,
		    tags              = EXCLUDED.tags,
		    best_times        = EXCLUDED.best_times,
		    tourist_trap      = EXCLUDED.tourist_trap,
		    region            = EXCLUDED.region,
		    updated_at        = now()
		RETURNING ` + placeColumns

	var lat, lon *float64
	if place.Coordinate != nil {
		lat, lon = &place.Coordinate.Lat, &place.Coordinate.Lon
	}
	trap := place.TouristTrap
	if trap == "" {
		trap = domain.TrapLow
	}

	args := pgx.NamedArgs{
		"id":                place.ID,
		"name":              place.Name,
		"category":          place.Category,
		"lat":               lat,
		"lon":               lon,
		"weekly_hours":      orEmpty(place.WeeklyHours),
		"hours_text":        place.HoursText,
		"hours_verified_at": verifiedDate(place.HoursVerifiedAt),
		"hours_exceptions":  orEmpty(place.HoursExceptions),
		"visit_min_minutes": place.VisitMinMinutes,
		"visit_max_minutes": place.VisitMaxMinutes,
		"tags":              orEmpty(place.Tags),
		"best_times":        orEmpty(place.BestTimes),
		"tourist_trap":      string(trap),
		"region":            place.Region,
	}

	result, err := scanPlace(r.db.QueryRow(ctx, q, args))
	if err != nil {
		return domain.Place{}, fmt.Errorf("repo.PlaceRepo.Upsert: %w", err)
	}
	return result, nil
}

// GetByID retrieves a place by primary key.
func (r *pgPlaceRepo) GetByID(ctx context.Context, id string) (domain.Place, error) {
	q := `SELECT ` + placeColumns + ` FROM places WHERE id = @id`

	result, err := scanPlace(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.Place{}, fmt.Errorf("repo.PlaceRepo.GetByID: %w", err)
	}
	return result, nil
}

// ListByRegion returns the region's full snapshot.
func (r *pgPlaceRepo) ListByRegion(ctx context.Context, region string) ([]domain.Place, error) {
	q := `SELECT ` + placeColumns + ` FROM places WHERE region = @region ORDER BY id`

	places, err := r.list(ctx, q, pgx.NamedArgs{"region": region})
	if err != nil {
		return nil, fmt.Errorf("repo.PlaceRepo.ListByRegion: %w", err)
	}
	return places, nil
}

// ListPaged returns one page plus the total number of matching places.
func (r *pgPlaceRepo) ListPaged(ctx context.Context, region string, p domain.PaginationParams) ([]domain.Place, int64, error) {
	const countQ = `SELECT count(*) FROM places WHERE @region = '' OR region = @region`
	q := `SELECT ` + placeColumns + `
		FROM places
		WHERE @region = '' OR region = @region
		ORDER BY id
		LIMIT @limit OFFSET @offset`

	var total int64
	if err := r.db.QueryRow(ctx, countQ, pgx.NamedArgs{"region": region}).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("repo.PlaceRepo.ListPaged: count: %w", err)
	}

	places, err := r.list(ctx, q, pgx.NamedArgs{"region": region, "limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.PlaceRepo.ListPaged: %w", err)
	}
	return places, total, nil
}

func (r *pgPlaceRepo) list(ctx context.Context, q string, args pgx.NamedArgs) ([]domain.Place, error) {
	rows, err := r.db.Query(ctx, q, args)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	places := []domain.Place{}
	for rows.Next() {
		p, err := scanPlace(rows)
		if err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		places = append(places, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows: %w", err)
	}
	return places, nil
}

// verifiedDate maps the content "YYYY-MM-DD" string to a nullable date.
// Anything that does not parse is stored as NULL.
func verifiedDate(s string) pgtype.Date {
	if len(s) > len(time.DateOnly) {
		s = s[:len(time.DateOnly)]
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return pgtype.Date{}
	}
	return pgtype.Date{Time: t, Valid: true}
}

// scanPlace maps a single database row into a domain.Place.
func scanPlace(s scanner) (domain.Place, error) {
	var (
		p        domain.Place
		lat, lon pgtype.Float8
		verified pgtype.Date
		trap     string
	)

	err := s.Scan(&p.ID, &p.Name, &p.Category, &lat, &lon, &p.WeeklyHours, &p.HoursText, &verified,
		&p.HoursExceptions, &p.VisitMinMinutes, &p.VisitMaxMinutes, &p.Tags, &p.BestTimes,
		&trap, &p.Region)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Place{}, domain.ErrNotFound
		}
		return domain.Place{}, err
	}

	if lat.Valid && lon.Valid {
		p.Coordinate = &domain.Coordinate{Lat: lat.Float64, Lon: lon.Float64}
	}
	if verified.Valid {
		p.HoursVerifiedAt = verified.Time.Format(time.DateOnly)
	}
	p.TouristTrap = domain.TrapLevel(trap)
	return p, nil
}
