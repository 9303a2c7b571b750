package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/wayfarer/internal/domain"
	"github.com/pkordes/wayfarer/internal/service"
)

func savedPlanFixture(stops ...domain.PlanStop) domain.SavedPlan {
	return domain.SavedPlan{
		ID:          uuid.New(),
		Region:      "marrakech",
		GeneratedAt: wednesday(15, 0),
		Stops:       stops,
	}
}

func TestExportService_Export_RowPerStop(t *testing.T) {
	first := domain.PlanStop{
		PlaceID:       "bahia-palace",
		ArrivalTime:   wednesday(15, 0),
		DepartureTime: wednesday(16, 15),
		VisitMinutes:  75,
	}
	second := domain.PlanStop{
		PlaceID:                   "gone",
		ArrivalTime:               wednesday(16, 27),
		DepartureTime:             wednesday(17, 0),
		TravelMinutesFromPrevious: 12,
		VisitMinutes:              33,
	}
	p := savedPlanFixture(first, second)

	svc := service.NewExportService(
		&mockPlanRepo{getByID: func(context.Context, uuid.UUID) (domain.SavedPlan, error) { return p, nil }},
		&mockPlaceRepo{getByID: func(_ context.Context, id string) (domain.Place, error) {
			if id == "bahia-palace" {
				return domain.Place{ID: id, Name: "Bahia Palace", Category: "palace"}, nil
			}
			return domain.Place{}, domain.ErrNotFound
		}},
	)

	rows, err := svc.Export(context.Background(), p.ID)

	require.NoError(t, err)
	require.Len(t, rows, 2)

	assert.Equal(t, p.ID.String(), rows[0].PlanID)
	assert.Equal(t, 1, rows[0].Position)
	assert.Equal(t, "Bahia Palace", rows[0].PlaceName)
	assert.Equal(t, "palace", rows[0].Category)
	require.NotNil(t, rows[0].ArrivalTime)
	assert.True(t, rows[0].ArrivalTime.Equal(first.ArrivalTime))

	assert.Equal(t, 2, rows[1].Position)
	assert.Equal(t, "gone", rows[1].PlaceID)
	assert.Empty(t, rows[1].PlaceName, "missing place exports with a blank name")
	assert.Equal(t, 12, rows[1].TravelMinutes)
	assert.Equal(t, 33, rows[1].VisitMinutes)
}

func TestExportService_Export_EmptyPlanYieldsOneRow(t *testing.T) {
	p := savedPlanFixture()
	svc := service.NewExportService(
		&mockPlanRepo{getByID: func(context.Context, uuid.UUID) (domain.SavedPlan, error) { return p, nil }},
		&mockPlaceRepo{},
	)

	rows, err := svc.Export(context.Background(), p.ID)

	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "marrakech", rows[0].Region)
	assert.Zero(t, rows[0].Position)
	assert.Nil(t, rows[0].ArrivalTime)
}

func TestExportService_Export_PlanNotFound(t *testing.T) {
	svc := service.NewExportService(
		&mockPlanRepo{getByID: func(context.Context, uuid.UUID) (domain.SavedPlan, error) {
			return domain.SavedPlan{}, domain.ErrNotFound
		}},
		&mockPlaceRepo{},
	)

	_, err := svc.Export(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestExportService_Export_LooksUpEachPlaceOnce(t *testing.T) {
	stop := domain.PlanStop{PlaceID: "cafe", ArrivalTime: wednesday(9, 0), DepartureTime: wednesday(9, 30), VisitMinutes: 30}
	p := savedPlanFixture(stop, stop)
	calls := 0
	svc := service.NewExportService(
		&mockPlanRepo{getByID: func(context.Context, uuid.UUID) (domain.SavedPlan, error) { return p, nil }},
		&mockPlaceRepo{getByID: func(_ context.Context, id string) (domain.Place, error) {
			calls++
			return domain.Place{ID: id, Name: "Cafe"}, nil
		}},
	)

	rows, err := svc.Export(context.Background(), p.ID)

	require.NoError(t, err)
	assert.Len(t, rows, 2)
	assert.Equal(t, 1, calls)
}
