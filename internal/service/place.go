package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/pkordes/wayfarer/internal/domain"
	"github.com/pkordes/wayfarer/internal/hours"
	"github.com/pkordes/wayfarer/internal/repo"
)

// HoursReport is the hours engine's view of one place at one instant.
// Next is nil when the status implies no known transition.
type HoursReport struct {
	PlaceID string
	At      time.Time
	Status  hours.Status
	Next    *hours.Change
	Display string
	Stale   bool
}

// PlaceService implements the read side of content places and the content
// import used by the CLI.
type PlaceService struct {
	places   repo.PlaceRepo
	recorder Recorder
	now      Clock
}

// NewPlaceService constructs a PlaceService. A nil recorder or clock falls
// back to a no-op recorder and time.Now.
func NewPlaceService(places repo.PlaceRepo, recorder Recorder, now Clock) *PlaceService {
	return &PlaceService{places: places, recorder: recorderOrNoop(recorder), now: clockOrNow(now)}
}

// GetByID returns a single place.
// Returns domain.ErrNotFound if no place has that id.
func (s *PlaceService) GetByID(ctx context.Context, id string) (domain.Place, error) {
	p, err := s.places.GetByID(ctx, id)
	if err != nil {
		return domain.Place{}, fmt.Errorf("service.PlaceService.GetByID: %w", err)
	}
	return p, nil
}

// ListPaged returns one page of places, optionally restricted to a region.
// Always returns a non-nil slice.
func (s *PlaceService) ListPaged(ctx context.Context, region string, p domain.PaginationParams) ([]domain.Place, int64, error) {
	places, total, err := s.places.ListPaged(ctx, strings.TrimSpace(region), p)
	if err != nil {
		return nil, 0, fmt.Errorf("service.PlaceService.ListPaged: %w", err)
	}
	if places == nil {
		places = []domain.Place{}
	}
	return places, total, nil
}

// Hours evaluates the place's schedule at at, or now when at is nil.
func (s *PlaceService) Hours(ctx context.Context, id string, at *time.Time) (HoursReport, error) {
	p, err := s.places.GetByID(ctx, id)
	if err != nil {
		return HoursReport{}, fmt.Errorf("service.PlaceService.Hours: %w", err)
	}

	instant := s.now()
	if at != nil {
		instant = *at
	}
	report := EvaluateHours(p, instant)
	s.recorder.ObserveHoursLookup(report.Status.Kind())
	return report, nil
}

// EvaluateHours runs the hours engine for p at the instant at.
func EvaluateHours(p domain.Place, at time.Time) HoursReport {
	st := hours.IsOpen(p.WeeklyHours, p.HoursText, at, p.HoursExceptions)
	report := HoursReport{
		PlaceID: p.ID,
		At:      at,
		Status:  st,
		Display: hours.FormatForDisplay(p.WeeklyHours, p.HoursText, p.HoursVerifiedAt, at, p.HoursExceptions),
		Stale:   hours.IsStale(p.HoursVerifiedAt, at),
	}
	if change, ok := hours.ChangeFor(st); ok {
		report.Next = &change
	}
	return report
}

// Import validates and upserts content places. Tags are slugged on the way
// in. It stops at the first invalid or failing place and reports how many
// were written before it.
func (s *PlaceService) Import(ctx context.Context, places []domain.Place) (int, error) {
	for i, p := range places {
		if err := validatePlace(p); err != nil {
			return i, fmt.Errorf("service.PlaceService.Import: place %d: %w", i, err)
		}
		p.Tags = slugifyAll(p.Tags)
		if _, err := s.places.Upsert(ctx, p); err != nil {
			return i, fmt.Errorf("service.PlaceService.Import: %s: %w", p.ID, err)
		}
	}
	return len(places), nil
}

func validatePlace(p domain.Place) error {
	switch {
	case strings.TrimSpace(p.ID) == "":
		return fmt.Errorf("%w: id is required", domain.ErrValidation)
	case strings.TrimSpace(p.Name) == "":
		return fmt.Errorf("%w: name is required for %s", domain.ErrValidation, p.ID)
	case strings.TrimSpace(p.Region) == "":
		return fmt.Errorf("%w: region is required for %s", domain.ErrValidation, p.ID)
	case p.VisitMinMinutes < 0 || p.VisitMaxMinutes < 0:
		return fmt.Errorf("%w: visit minutes must not be negative for %s", domain.ErrValidation, p.ID)
	}
	switch p.TouristTrap {
	case "", domain.TrapLow, domain.TrapMixed, domain.TrapHigh:
	default:
		return fmt.Errorf("%w: unknown tourist_trap %q for %s", domain.ErrValidation, p.TouristTrap, p.ID)
	}
	if c := p.Coordinate; c != nil && (c.Lat < -90 || c.Lat > 90 || c.Lon < -180 || c.Lon > 180) {
		return fmt.Errorf("%w: coordinate out of range for %s", domain.ErrValidation, p.ID)
	}
	return nil
}
