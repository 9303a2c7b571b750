package handler

import (
	"net/http"
	"time"

	"github.com/pkordes/wayfarer/internal/domain"
	"github.com/pkordes/wayfarer/internal/hours"
	"github.com/pkordes/wayfarer/internal/service"
)

// Pagination is the page metadata returned with list responses.
type Pagination struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
	Total int `json:"total"`
}

// PlaceList is the body of GET /places.
type PlaceList struct {
	Data       []domain.Place `json:"data"`
	Pagination Pagination     `json:"pagination"`
}

// NextChange is the upcoming open/close transition in an hours response.
type NextChange struct {
	Type string    `json:"type"`
	At   time.Time `json:"at"`
}

// HoursResponse is the body of GET /places/{placeId}/hours.
type HoursResponse struct {
	PlaceID    string      `json:"place_id"`
	At         time.Time   `json:"at"`
	Status     string      `json:"status"`
	ClosesAt   *time.Time  `json:"closes_at,omitempty"`
	OpensAt    *time.Time  `json:"opens_at,omitempty"`
	NextChange *NextChange `json:"next_change,omitempty"`
	Display    string      `json:"display"`
	Stale      bool        `json:"stale"`
}

// ListPlaces handles GET /places.
// Supports ?region= plus ?page= and ?limit= (defaults: page=1, limit=20, max=100).
func (s *Server) ListPlaces(w http.ResponseWriter, r *http.Request) {
	region, err := queryString(r, "region")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	page, err := queryInt(r, "page")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	limit, err := queryInt(r, "limit")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	params := domain.NewPaginationParams(page, limit)
	places, total, err := s.places.ListPaged(r.Context(), derefString(region), params)
	if err != nil {
		s.writeError(w, r, err, "")
		return
	}

	writeJSON(w, http.StatusOK, PlaceList{
		Data: places,
		Pagination: Pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: int(total),
		},
	})
}

// GetPlace handles GET /places/{placeId}.
func (s *Server) GetPlace(w http.ResponseWriter, r *http.Request) {
	id, err := pathString(r, "placeId")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	place, err := s.places.GetByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "place not found")
		return
	}
	writeJSON(w, http.StatusOK, place)
}

// GetPlaceHours handles GET /places/{placeId}/hours.
// The optional ?at= (RFC 3339) evaluates the schedule at another instant.
func (s *Server) GetPlaceHours(w http.ResponseWriter, r *http.Request) {
	id, err := pathString(r, "placeId")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	at, err := queryTime(r, "at")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	report, err := s.places.Hours(r.Context(), id, at)
	if err != nil {
		s.writeError(w, r, err, "place not found")
		return
	}
	writeJSON(w, http.StatusOK, hoursToResponse(report))
}

// hoursToResponse flattens the Status sum type into optional fields.
func hoursToResponse(rep service.HoursReport) HoursResponse {
	resp := HoursResponse{
		PlaceID: rep.PlaceID,
		At:      rep.At.In(hours.Location),
		Status:  rep.Status.Kind(),
		Display: rep.Display,
		Stale:   rep.Stale,
	}
	switch st := rep.Status.(type) {
	case hours.Open:
		closes := st.ClosesAt.In(hours.Location)
		resp.ClosesAt = &closes
	case hours.Closed:
		if st.OpensAt != nil {
			opens := st.OpensAt.In(hours.Location)
			resp.OpensAt = &opens
		}
	}
	if rep.Next != nil {
		resp.NextChange = &NextChange{Type: rep.Next.Type.String(), At: rep.Next.Time.In(hours.Location)}
	}
	return resp
}
