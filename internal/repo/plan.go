package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/wayfarer/internal/domain"
)

// PlanRepo defines the persistence operations for saved plans and their
// stops.
type PlanRepo interface {
	// Create inserts the plan and all of its stops in one transaction and
	// returns the persisted record with id and created_at populated.
	Create(ctx context.Context, plan domain.SavedPlan) (domain.SavedPlan, error)

	// GetByID returns the plan with its stops in itinerary order.
	// Returns domain.ErrNotFound if no plan with that id exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.SavedPlan, error)

	// Delete removes a plan and its stops.
	// Returns domain.ErrNotFound if no plan with that id exists.
	Delete(ctx context.Context, id uuid.UUID) error
}

// pgPlanRepo is the Postgres implementation of PlanRepo.
type pgPlanRepo struct {
	db txBeginner
}

// NewPlanRepo constructs a PlanRepo. Create needs a transaction, so db must
// be able to begin one; a pgx.Tx opens a savepoint.
func NewPlanRepo(db txBeginner) PlanRepo {
	return &pgPlanRepo{db: db}
}

const planColumns = `id, region, generated_at, available_minutes, pace, budget, interests,
		       total_minutes, cost_min, cost_max, warnings, created_at`

// Create writes the plan header, then each stop by position.
func (r *pgPlanRepo) Create(ctx context.Context, plan domain.SavedPlan) (domain.SavedPlan, error) {
	const insertPlan = `
		INSERT INTO plans (region, generated_at, available_minutes, pace, budget, interests,
		                   total_minutes, cost_min, cost_max, warnings)
		VALUES (@region, @generated_at, @available_minutes, @pace, @budget, @interests,
		        @total_minutes, @cost_min, @cost_max, @warnings)
		RETURNING ` + planColumns

	const insertStop = `
		INSERT INTO plan_stops (plan_id, position, place_id, arrival_at, departure_at,
		                        travel_minutes, visit_minutes)
		VALUES (@plan_id, @position, @place_id, @arrival_at, @departure_at,
		        @travel_minutes, @visit_minutes)`

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return domain.SavedPlan{}, fmt.Errorf("repo.PlanRepo.Create: begin: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	args := pgx.NamedArgs{
		"region":            plan.Region,
		"generated_at":      plan.GeneratedAt,
		"available_minutes": plan.AvailableMinutes,
		"pace":              plan.Pace,
		"budget":            plan.Budget,
		"interests":         orEmpty(plan.Interests),
		"total_minutes":     plan.TotalMinutes,
		"cost_min":          plan.Cost.Min,
		"cost_max":          plan.Cost.Max,
		"warnings":          orEmpty(plan.Warnings),
	}
	saved, err := scanPlan(tx.QueryRow(ctx, insertPlan, args))
	if err != nil {
		return domain.SavedPlan{}, fmt.Errorf("repo.PlanRepo.Create: %w", err)
	}

	batch := &pgx.Batch{}
	for i, s := range plan.Stops {
		batch.Queue(insertStop, pgx.NamedArgs{
			"plan_id":        saved.ID,
			"position":       i,
			"place_id":       s.PlaceID,
			"arrival_at":     s.ArrivalTime,
			"departure_at":   s.DepartureTime,
			"travel_minutes": s.TravelMinutesFromPrevious,
			"visit_minutes":  s.VisitMinutes,
		})
	}
	if batch.Len() > 0 {
		if err := tx.SendBatch(ctx, batch).Close(); err != nil {
			return domain.SavedPlan{}, fmt.Errorf("repo.PlanRepo.Create: stops: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return domain.SavedPlan{}, fmt.Errorf("repo.PlanRepo.Create: commit: %w", err)
	}
	saved.Stops = orEmpty(plan.Stops)
	return saved, nil
}

// GetByID loads the plan header and its stops.
func (r *pgPlanRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.SavedPlan, error) {
	q := `SELECT ` + planColumns + ` FROM plans WHERE id = @id`
	const stopsQ = `
		SELECT place_id, arrival_at, departure_at, travel_minutes, visit_minutes
		FROM plan_stops
		WHERE plan_id = @id
		ORDER BY position`

	plan, err := scanPlan(r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id}))
	if err != nil {
		return domain.SavedPlan{}, fmt.Errorf("repo.PlanRepo.GetByID: %w", err)
	}

	rows, err := r.db.Query(ctx, stopsQ, pgx.NamedArgs{"id": id})
	if err != nil {
		return domain.SavedPlan{}, fmt.Errorf("repo.PlanRepo.GetByID: stops: %w", err)
	}
	defer rows.Close()

	plan.Stops = []domain.PlanStop{}
	for rows.Next() {
		var s domain.PlanStop
		if err := rows.Scan(&s.PlaceID, &s.ArrivalTime, &s.DepartureTime, &s.TravelMinutesFromPrevious, &s.VisitMinutes); err != nil {
			return domain.SavedPlan{}, fmt.Errorf("repo.PlanRepo.GetByID: scan stop: %w", err)
		}
		plan.Stops = append(plan.Stops, s)
	}
	if err := rows.Err(); err != nil {
		return domain.SavedPlan{}, fmt.Errorf("repo.PlanRepo.GetByID: rows: %w", err)
	}
	return plan, nil
}

// Delete removes a plan by primary key; stops cascade.
func (r *pgPlanRepo) Delete(ctx context.Context, id uuid.UUID) error {
	const q = `DELETE FROM plans WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return fmt.Errorf("repo.PlanRepo.Delete: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("repo.PlanRepo.Delete: %w", domain.ErrNotFound)
	}
	return nil
}

// scanPlan maps a plans row into a domain.SavedPlan without stops.
func scanPlan(s scanner) (domain.SavedPlan, error) {
	var (
		p  domain.SavedPlan
		id pgtype.UUID
	)
	err := s.Scan(&id, &p.Region, &p.GeneratedAt, &p.AvailableMinutes, &p.Pace, &p.Budget, &p.Interests,
		&p.TotalMinutes, &p.Cost.Min, &p.Cost.Max, &p.Warnings, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.SavedPlan{}, domain.ErrNotFound
		}
		return domain.SavedPlan{}, err
	}
	p.ID = uuid.UUID(id.Bytes)
	return p, nil
}
