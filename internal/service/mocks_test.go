package service_test

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/wayfarer/internal/domain"
	"github.com/pkordes/wayfarer/internal/repo"
)

// ---- PlaceRepo -------------------------------------------------------------

type mockPlaceRepo struct {
	upsert       func(ctx context.Context, place domain.Place) (domain.Place, error)
	getByID      func(ctx context.Context, id string) (domain.Place, error)
	listByRegion func(ctx context.Context, region string) ([]domain.Place, error)
	listPaged    func(ctx context.Context, region string, p domain.PaginationParams) ([]domain.Place, int64, error)
}

func (m *mockPlaceRepo) Upsert(ctx context.Context, place domain.Place) (domain.Place, error) {
	return m.upsert(ctx, place)
}
func (m *mockPlaceRepo) GetByID(ctx context.Context, id string) (domain.Place, error) {
	return m.getByID(ctx, id)
}
func (m *mockPlaceRepo) ListByRegion(ctx context.Context, region string) ([]domain.Place, error) {
	return m.listByRegion(ctx, region)
}
func (m *mockPlaceRepo) ListPaged(ctx context.Context, region string, p domain.PaginationParams) ([]domain.Place, int64, error) {
	return m.listPaged(ctx, region, p)
}

// ---- VisitRepo -------------------------------------------------------------

type mockVisitRepo struct {
	create            func(ctx context.Context, visit domain.Visit) (domain.Visit, error)
	listPlaceIDsSince func(ctx context.Context, since time.Time) ([]string, error)
}

func (m *mockVisitRepo) Create(ctx context.Context, visit domain.Visit) (domain.Visit, error) {
	return m.create(ctx, visit)
}
func (m *mockVisitRepo) ListPlaceIDsSince(ctx context.Context, since time.Time) ([]string, error) {
	return m.listPlaceIDsSince(ctx, since)
}

// ---- PlanRepo --------------------------------------------------------------

type mockPlanRepo struct {
	create  func(ctx context.Context, plan domain.SavedPlan) (domain.SavedPlan, error)
	getByID func(ctx context.Context, id uuid.UUID) (domain.SavedPlan, error)
	delete  func(ctx context.Context, id uuid.UUID) error
}

func (m *mockPlanRepo) Create(ctx context.Context, plan domain.SavedPlan) (domain.SavedPlan, error) {
	return m.create(ctx, plan)
}
func (m *mockPlanRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.SavedPlan, error) {
	return m.getByID(ctx, id)
}
func (m *mockPlanRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

// ---- TagRepo ---------------------------------------------------------------

type mockTagRepo struct {
	list func(ctx context.Context, prefix string) ([]string, error)
}

func (m *mockTagRepo) List(ctx context.Context, prefix string) ([]string, error) {
	return m.list(ctx, prefix)
}

// compile-time checks
var (
	_ repo.PlaceRepo = (*mockPlaceRepo)(nil)
	_ repo.VisitRepo = (*mockVisitRepo)(nil)
	_ repo.PlanRepo  = (*mockPlanRepo)(nil)
	_ repo.TagRepo   = (*mockTagRepo)(nil)
)

// ---- Recorder --------------------------------------------------------------

type fakeRecorder struct {
	plans   [][2]int
	lookups []string
}

func (r *fakeRecorder) ObservePlan(stops, warnings int) {
	r.plans = append(r.plans, [2]int{stops, warnings})
}
func (r *fakeRecorder) ObserveHoursLookup(status string) {
	r.lookups = append(r.lookups, status)
}

// fixedClock pins "now" for services that read the clock.
func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}
