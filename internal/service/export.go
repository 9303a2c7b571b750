package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/pkordes/wayfarer/internal/domain"
	"github.com/pkordes/wayfarer/internal/repo"
)

// ExportService flattens a saved plan into one row per stop.
type ExportService struct {
	plans  repo.PlanRepo
	places repo.PlaceRepo
}

// NewExportService constructs an ExportService backed by the provided repos.
func NewExportService(plans repo.PlanRepo, places repo.PlaceRepo) *ExportService {
	return &ExportService{plans: plans, places: places}
}

// Export returns one row per stop, joined with the place name and category.
// A plan with no stops yields a single row with empty stop fields. Places
// removed from the content since the plan was saved export with blank names.
func (s *ExportService) Export(ctx context.Context, planID uuid.UUID) ([]domain.PlanExportRow, error) {
	p, err := s.plans.GetByID(ctx, planID)
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Export: %w", err)
	}

	base := domain.PlanExportRow{
		PlanID:      p.ID.String(),
		Region:      p.Region,
		GeneratedAt: p.GeneratedAt,
	}
	if len(p.Stops) == 0 {
		return []domain.PlanExportRow{base}, nil
	}

	names := make(map[string]domain.Place, len(p.Stops))
	rows := make([]domain.PlanExportRow, 0, len(p.Stops))
	for i, stop := range p.Stops {
		place, ok := names[stop.PlaceID]
		if !ok {
			place, err = s.places.GetByID(ctx, stop.PlaceID)
			if err != nil && !errors.Is(err, domain.ErrNotFound) {
				return nil, fmt.Errorf("service.ExportService.Export: place %s: %w", stop.PlaceID, err)
			}
			names[stop.PlaceID] = place
		}

		arrival, departure := stop.ArrivalTime, stop.DepartureTime
		row := base
		row.Position = i + 1
		row.PlaceID = stop.PlaceID
		row.PlaceName = place.Name
		row.Category = place.Category
		row.ArrivalTime = &arrival
		row.DepartureTime = &departure
		row.TravelMinutes = stop.TravelMinutesFromPrevious
		row.VisitMinutes = stop.VisitMinutes
		rows = append(rows, row)
	}
	return rows, nil
}
