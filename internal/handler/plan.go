package handler

import (
	"encoding/json"
	"net/http"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/wayfarer/internal/domain"
	"github.com/pkordes/wayfarer/internal/hours"
)

// CreatePlanRequest is the body of POST /plans.
type CreatePlanRequest struct {
	Region           string             `json:"region"`
	AvailableMinutes int                `json:"available_minutes"`
	Start            *domain.Coordinate `json:"start,omitempty"`
	Interests        []string           `json:"interests,omitempty"`
	Pace             string             `json:"pace,omitempty"`
	Budget           string             `json:"budget,omitempty"`
	At               *time.Time         `json:"at,omitempty"`
}

// PlanStop is one stop in a plan response.
type PlanStop struct {
	Position                  int       `json:"position"`
	PlaceID                   string    `json:"place_id"`
	ArrivalTime               time.Time `json:"arrival_time"`
	DepartureTime             time.Time `json:"departure_time"`
	TravelMinutesFromPrevious int       `json:"travel_minutes_from_previous"`
	VisitMinutes              int       `json:"visit_minutes"`
}

// Plan is the body returned for a saved plan.
type Plan struct {
	ID               openapi_types.UUID `json:"id"`
	Region           string             `json:"region"`
	GeneratedAt      time.Time          `json:"generated_at"`
	AvailableMinutes int                `json:"available_minutes"`
	Pace             string             `json:"pace"`
	Budget           string             `json:"budget"`
	Interests        []string           `json:"interests"`
	Stops            []PlanStop         `json:"stops"`
	TotalMinutes     int                `json:"total_minutes"`
	Cost             domain.CostRange   `json:"cost"`
	Warnings         []string           `json:"warnings"`
	CreatedAt        time.Time          `json:"created_at"`
}

// CreatePlan handles POST /plans.
// An infeasible request still answers 201: the plan has no stops and its
// warnings say why.
func (s *Server) CreatePlan(w http.ResponseWriter, r *http.Request) {
	var body CreatePlanRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		badRequest(w, "invalid request body: "+err.Error())
		return
	}

	saved, err := s.plans.Generate(r.Context(), domain.PlanRequest{
		Region:           body.Region,
		AvailableMinutes: body.AvailableMinutes,
		Start:            body.Start,
		Interests:        body.Interests,
		Pace:             body.Pace,
		Budget:           body.Budget,
		At:               body.At,
	})
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusCreated, planToResponse(saved))
}

// GetPlan handles GET /plans/{planId}.
func (s *Server) GetPlan(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "planId")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	p, err := s.plans.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "plan not found")
		return
	}
	writeJSON(w, http.StatusOK, planToResponse(p))
}

// DeletePlan handles DELETE /plans/{planId}.
func (s *Server) DeletePlan(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "planId")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	if err := s.plans.Delete(r.Context(), id); err != nil {
		s.writeError(w, r, err, "plan not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// planToResponse converts a domain.SavedPlan into the response type.
// Times are rendered in the engine's fixed zone; slices are never null.
func planToResponse(p domain.SavedPlan) Plan {
	stops := make([]PlanStop, len(p.Stops))
	for i, st := range p.Stops {
		stops[i] = PlanStop{
			Position:                  i + 1,
			PlaceID:                   st.PlaceID,
			ArrivalTime:               st.ArrivalTime.In(hours.Location),
			DepartureTime:             st.DepartureTime.In(hours.Location),
			TravelMinutesFromPrevious: st.TravelMinutesFromPrevious,
			VisitMinutes:              st.VisitMinutes,
		}
	}
	return Plan{
		ID:               p.ID,
		Region:           p.Region,
		GeneratedAt:      p.GeneratedAt.In(hours.Location),
		AvailableMinutes: p.AvailableMinutes,
		Pace:             p.Pace,
		Budget:           p.Budget,
		Interests:        nonNil(p.Interests),
		Stops:            stops,
		TotalMinutes:     p.TotalMinutes,
		Cost:             p.Cost,
		Warnings:         nonNil(p.Warnings),
		CreatedAt:        p.CreatedAt,
	}
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
