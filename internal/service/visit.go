package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkordes/wayfarer/internal/domain"
	"github.com/pkordes/wayfarer/internal/repo"
)

// VisitService records visits so recently seen places drop out of plans.
type VisitService struct {
	visits repo.VisitRepo
	now    Clock
}

// NewVisitService constructs a VisitService. A nil clock means time.Now.
func NewVisitService(visits repo.VisitRepo, now Clock) *VisitService {
	return &VisitService{visits: visits, now: clockOrNow(now)}
}

// Record stores a visit to placeID at the given instant, or now when at is
// nil. Visits in the future are rejected.
// Returns domain.ErrNotFound if the place does not exist.
func (s *VisitService) Record(ctx context.Context, placeID string, at *time.Time) (domain.Visit, error) {
	placeID = strings.TrimSpace(placeID)
	if placeID == "" {
		return domain.Visit{}, fmt.Errorf("%w: place id is required", domain.ErrValidation)
	}

	now := s.now()
	visitedAt := now
	if at != nil {
		if at.After(now.Add(time.Minute)) {
			return domain.Visit{}, fmt.Errorf("%w: visited_at is in the future", domain.ErrValidation)
		}
		visitedAt = *at
	}

	v, err := s.visits.Create(ctx, domain.Visit{PlaceID: placeID, VisitedAt: visitedAt})
	if err != nil {
		return domain.Visit{}, fmt.Errorf("service.VisitService.Record: %w", err)
	}
	return v, nil
}
