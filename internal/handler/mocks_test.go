package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/wayfarer/internal/domain"
	"github.com/pkordes/wayfarer/internal/handler"
	"github.com/pkordes/wayfarer/internal/hours"
	"github.com/pkordes/wayfarer/internal/service"
)

// Set only the method fields your test needs.

type mockPlaceServicer struct {
	getByID   func(ctx context.Context, id string) (domain.Place, error)
	listPaged func(ctx context.Context, region string, p domain.PaginationParams) ([]domain.Place, int64, error)
	hours     func(ctx context.Context, id string, at *time.Time) (service.HoursReport, error)
}

func (m *mockPlaceServicer) GetByID(ctx context.Context, id string) (domain.Place, error) {
	return m.getByID(ctx, id)
}
func (m *mockPlaceServicer) ListPaged(ctx context.Context, region string, p domain.PaginationParams) ([]domain.Place, int64, error) {
	return m.listPaged(ctx, region, p)
}
func (m *mockPlaceServicer) Hours(ctx context.Context, id string, at *time.Time) (service.HoursReport, error) {
	return m.hours(ctx, id, at)
}

type mockVisitServicer struct {
	record func(ctx context.Context, placeID string, at *time.Time) (domain.Visit, error)
}

func (m *mockVisitServicer) Record(ctx context.Context, placeID string, at *time.Time) (domain.Visit, error) {
	return m.record(ctx, placeID, at)
}

type mockPlanServicer struct {
	generate func(ctx context.Context, req domain.PlanRequest) (domain.SavedPlan, error)
	getByID  func(ctx context.Context, id uuid.UUID) (domain.SavedPlan, error)
	delete   func(ctx context.Context, id uuid.UUID) error
}

func (m *mockPlanServicer) Generate(ctx context.Context, req domain.PlanRequest) (domain.SavedPlan, error) {
	return m.generate(ctx, req)
}
func (m *mockPlanServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.SavedPlan, error) {
	return m.getByID(ctx, id)
}
func (m *mockPlanServicer) Delete(ctx context.Context, id uuid.UUID) error {
	return m.delete(ctx, id)
}

type mockTagServicer struct {
	list func(ctx context.Context, prefix string) ([]string, error)
}

func (m *mockTagServicer) List(ctx context.Context, prefix string) ([]string, error) {
	return m.list(ctx, prefix)
}

type mockExportServicer struct {
	export func(ctx context.Context, planID uuid.UUID) ([]domain.PlanExportRow, error)
}

func (m *mockExportServicer) Export(ctx context.Context, planID uuid.UUID) ([]domain.PlanExportRow, error) {
	return m.export(ctx, planID)
}

// compile-time checks
var (
	_ handler.PlaceServicer  = (*mockPlaceServicer)(nil)
	_ handler.VisitServicer  = (*mockVisitServicer)(nil)
	_ handler.PlanServicer   = (*mockPlanServicer)(nil)
	_ handler.TagServicer    = (*mockTagServicer)(nil)
	_ handler.ExportServicer = (*mockExportServicer)(nil)
)

// ---- helpers ---------------------------------------------------------------

// newHTTPHandler wires a Server with the given mocks into a chi router the
// same way main.go registers it.
func newHTTPHandler(svcs handler.Services) http.Handler {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return handler.NewServer(svcs, logger).Handler()
}

func serve(h http.Handler, method, target string, body io.Reader) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, body)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func jsonBody(t *testing.T, v any) *bytes.Buffer {
	t.Helper()
	b, err := json.Marshal(v)
	require.NoError(t, err)
	return bytes.NewBuffer(b)
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) handler.ErrorDetail {
	t.Helper()
	var body handler.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	return body.Error
}

// wednesday is 2026-06-03 in the engine's zone.
func wednesday(hour, minute int) time.Time {
	return time.Date(2026, time.June, 3, hour, minute, 0, 0, hours.Location)
}
