// Package handler implements the HTTP handlers for the Wayfarer API.
// All handlers are methods on Server and are registered on a chi router by
// Register. Methods are split into domain-specific files (health.go,
// place.go, plan.go, etc.) but share the same Server struct so they can
// access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/wayfarer/internal/domain"
	"github.com/pkordes/wayfarer/internal/service"
)

// PlaceServicer defines the place operations the handlers depend on.
// Defining the interfaces here (in the consumer package) lets handler tests
// inject mocks without touching the database or service layer.
type PlaceServicer interface {
	GetByID(ctx context.Context, id string) (domain.Place, error)
	ListPaged(ctx context.Context, region string, p domain.PaginationParams) ([]domain.Place, int64, error)
	Hours(ctx context.Context, id string, at *time.Time) (service.HoursReport, error)
}

// VisitServicer records visits.
type VisitServicer interface {
	Record(ctx context.Context, placeID string, at *time.Time) (domain.Visit, error)
}

// PlanServicer generates and manages saved plans.
type PlanServicer interface {
	Generate(ctx context.Context, req domain.PlanRequest) (domain.SavedPlan, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.SavedPlan, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

// TagServicer lists the tag vocabulary.
type TagServicer interface {
	List(ctx context.Context, prefix string) ([]string, error)
}

// ExportServicer flattens a saved plan into export rows.
type ExportServicer interface {
	Export(ctx context.Context, planID uuid.UUID) ([]domain.PlanExportRow, error)
}

// Services groups the handler dependencies. Tests set only the fields the
// routes under test use.
type Services struct {
	Places PlaceServicer
	Visits VisitServicer
	Plans  PlanServicer
	Tags   TagServicer
	Export ExportServicer
}

// Server serves every API endpoint.
type Server struct {
	places PlaceServicer
	visits VisitServicer
	plans  PlanServicer
	tags   TagServicer
	export ExportServicer
	logger *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
// A nil logger falls back to slog.Default().
func NewServer(svcs Services, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	return &Server{
		places: svcs.Places,
		visits: svcs.Visits,
		plans:  svcs.Plans,
		tags:   svcs.Tags,
		export: svcs.Export,
		logger: logger.With("component", "handler"),
	}
}

// Register mounts every API route on r.
func (s *Server) Register(r chi.Router) {
	r.Get("/healthz", s.GetHealth)
	r.Get("/openapi.yaml", s.GetOpenAPI)

	r.Route("/places", func(r chi.Router) {
		r.Get("/", s.ListPlaces)
		r.Get("/{placeId}", s.GetPlace)
		r.Get("/{placeId}/hours", s.GetPlaceHours)
		r.Post("/{placeId}/visits", s.RecordVisit)
	})

	r.Get("/tags", s.ListTags)

	r.Route("/plans", func(r chi.Router) {
		r.Post("/", s.CreatePlan)
		r.Get("/{planId}", s.GetPlan)
		r.Delete("/{planId}", s.DeletePlan)
		r.Get("/{planId}/export", s.ExportPlan)
	})
}

// Handler returns a bare chi router with every API route registered.
// Production wiring in main.go adds middleware around Register instead.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	s.Register(r)
	return r
}
