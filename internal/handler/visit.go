package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	openapi_types "github.com/oapi-codegen/runtime/types"
)

// RecordVisitRequest is the optional body of POST /places/{placeId}/visits.
type RecordVisitRequest struct {
	VisitedAt *time.Time `json:"visited_at,omitempty"`
}

// VisitResponse is the body returned for a recorded visit.
type VisitResponse struct {
	ID        openapi_types.UUID `json:"id"`
	PlaceID   string             `json:"place_id"`
	VisitedAt time.Time          `json:"visited_at"`
}

// RecordVisit handles POST /places/{placeId}/visits.
// An empty body records the visit at the current time.
func (s *Server) RecordVisit(w http.ResponseWriter, r *http.Request) {
	placeID, err := pathString(r, "placeId")
	if err != nil {
		badRequest(w, err.Error())
		return
	}

	var body RecordVisitRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
		badRequest(w, "invalid request body: "+err.Error())
		return
	}

	v, err := s.visits.Record(r.Context(), placeID, body.VisitedAt)
	if err != nil {
		s.writeError(w, r, err, "place not found")
		return
	}
	writeJSON(w, http.StatusCreated, VisitResponse{ID: v.ID, PlaceID: v.PlaceID, VisitedAt: v.VisitedAt})
}
