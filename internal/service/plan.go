package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/wayfarer/internal/domain"
	"github.com/pkordes/wayfarer/internal/plan"
	"github.com/pkordes/wayfarer/internal/repo"
)

// maxPlanMinutes bounds a single request to one week.
const maxPlanMinutes = 7 * 24 * 60

// PlanService generates itineraries from the stored content and keeps the
// results.
type PlanService struct {
	places       repo.PlaceRepo
	visits       repo.VisitRepo
	plans        repo.PlanRepo
	engine       *plan.Engine
	recorder     Recorder
	recentWindow time.Duration
	now          Clock
}

// PlanServiceConfig carries the collaborators PlanService needs beyond its
// repos.
type PlanServiceConfig struct {
	Engine *plan.Engine
	// RecentWindow is how far back a visit excludes a place from plans.
	RecentWindow time.Duration
	Recorder     Recorder
	Now          Clock
}

// NewPlanService constructs a PlanService.
func NewPlanService(places repo.PlaceRepo, visits repo.VisitRepo, plans repo.PlanRepo, cfg PlanServiceConfig) *PlanService {
	return &PlanService{
		places:       places,
		visits:       visits,
		plans:        plans,
		engine:       cfg.Engine,
		recorder:     recorderOrNoop(cfg.Recorder),
		recentWindow: cfg.RecentWindow,
		now:          clockOrNow(cfg.Now),
	}
}

// Generate validates the request, runs the planner over the region's
// places minus recent visits, and persists the result. An infeasible
// request is not an error: the saved plan has no stops and carries the
// planner's warnings.
func (s *PlanService) Generate(ctx context.Context, req domain.PlanRequest) (domain.SavedPlan, error) {
	in, err := s.input(req)
	if err != nil {
		return domain.SavedPlan{}, err
	}

	in.Candidates, err = s.places.ListByRegion(ctx, strings.TrimSpace(req.Region))
	if err != nil {
		return domain.SavedPlan{}, fmt.Errorf("service.PlanService.Generate: places: %w", err)
	}

	visited, err := s.visits.ListPlaceIDsSince(ctx, in.Now.Add(-s.recentWindow))
	if err != nil {
		return domain.SavedPlan{}, fmt.Errorf("service.PlanService.Generate: visits: %w", err)
	}
	in.RecentlyVisited = make(map[string]bool, len(visited))
	for _, id := range visited {
		in.RecentlyVisited[id] = true
	}

	out := s.engine.Generate(in)
	s.recorder.ObservePlan(len(out.Stops), len(out.Warnings))

	saved, err := s.plans.Create(ctx, domain.SavedPlan{
		Region:           strings.TrimSpace(req.Region),
		GeneratedAt:      in.Now,
		AvailableMinutes: in.AvailableMinutes,
		Pace:             string(in.Pace),
		Budget:           string(in.Budget),
		Interests:        in.Interests,
		Stops:            out.Stops,
		TotalMinutes:     out.TotalMinutes,
		Cost:             out.Cost,
		Warnings:         out.Warnings,
	})
	if err != nil {
		return domain.SavedPlan{}, fmt.Errorf("service.PlanService.Generate: save: %w", err)
	}
	return saved, nil
}

// input validates req and converts it into engine input without candidates.
func (s *PlanService) input(req domain.PlanRequest) (plan.Input, error) {
	if strings.TrimSpace(req.Region) == "" {
		return plan.Input{}, fmt.Errorf("%w: region is required", domain.ErrValidation)
	}
	if req.AvailableMinutes > maxPlanMinutes {
		return plan.Input{}, fmt.Errorf("%w: available_minutes must be at most %d", domain.ErrValidation, maxPlanMinutes)
	}
	if c := req.Start; c != nil && (c.Lat < -90 || c.Lat > 90 || c.Lon < -180 || c.Lon > 180) {
		return plan.Input{}, fmt.Errorf("%w: start coordinate out of range", domain.ErrValidation)
	}
	pace, err := plan.ParsePace(req.Pace)
	if err != nil {
		return plan.Input{}, err
	}
	budget, err := plan.ParseBudgetTier(req.Budget)
	if err != nil {
		return plan.Input{}, err
	}

	now := s.now()
	if req.At != nil {
		now = *req.At
	}
	return plan.Input{
		AvailableMinutes: max(req.AvailableMinutes, 0),
		Start:            req.Start,
		Interests:        slugifyAll(req.Interests),
		Pace:             pace,
		Budget:           budget,
		Now:              now,
	}, nil
}

// GetByID returns a saved plan.
// Returns domain.ErrNotFound if no plan with that id exists.
func (s *PlanService) GetByID(ctx context.Context, id uuid.UUID) (domain.SavedPlan, error) {
	p, err := s.plans.GetByID(ctx, id)
	if err != nil {
		return domain.SavedPlan{}, fmt.Errorf("service.PlanService.GetByID: %w", err)
	}
	return p, nil
}

// Delete removes a saved plan.
// Returns domain.ErrNotFound if no plan with that id exists.
func (s *PlanService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.plans.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.PlanService.Delete: %w", err)
	}
	return nil
}
