package handler

import (
	"bytes"
	"encoding/csv"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/wayfarer/internal/domain"
	"github.com/pkordes/wayfarer/internal/hours"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"plan_id", "region", "generated_on", "position",
	"place_id", "place_name", "category",
	"arrival_time", "departure_time", "travel_minutes", "visit_minutes",
}

// ExportRow is one row of the JSON export.
type ExportRow struct {
	PlanID        openapi_types.UUID `json:"plan_id"`
	Region        string             `json:"region"`
	GeneratedOn   openapi_types.Date `json:"generated_on"`
	Position      *int               `json:"position,omitempty"`
	PlaceID       *string            `json:"place_id,omitempty"`
	PlaceName     *string            `json:"place_name,omitempty"`
	Category      *string            `json:"category,omitempty"`
	ArrivalTime   *time.Time         `json:"arrival_time,omitempty"`
	DepartureTime *time.Time         `json:"departure_time,omitempty"`
	TravelMinutes *int               `json:"travel_minutes,omitempty"`
	VisitMinutes  *int               `json:"visit_minutes,omitempty"`
}

// ExportPlan handles GET /plans/{planId}/export.
// Use ?format=csv to receive CSV; default is JSON.
func (s *Server) ExportPlan(w http.ResponseWriter, r *http.Request) {
	id, err := pathUUID(r, "planId")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	format, err := queryString(r, "format")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	switch derefString(format) {
	case "", "json", "csv":
	default:
		badRequest(w, "format must be json or csv")
		return
	}

	rows, err := s.export.Export(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err, "plan not found")
		return
	}

	if derefString(format) == "csv" {
		writeCSV(w, id, rows)
		return
	}
	out := make([]ExportRow, 0, len(rows))
	for _, row := range rows {
		out = append(out, domainRowToExportRow(row))
	}
	writeJSON(w, http.StatusOK, out)
}

// writeCSV encodes rows as an attachment named after the plan.
func writeCSV(w http.ResponseWriter, id uuid.UUID, rows []domain.PlanExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, row := range rows {
		//nolint:errcheck
		cw.Write(domainRowToCSVRecord(row))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="plan-`+id.String()+`.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// domainRowToExportRow maps a domain row to the JSON row. Stop fields are
// omitted for the single row of a plan with no stops.
func domainRowToExportRow(r domain.PlanExportRow) ExportRow {
	planID, _ := uuid.Parse(r.PlanID)
	row := ExportRow{
		PlanID:      planID,
		Region:      r.Region,
		GeneratedOn: localDate(r.GeneratedAt),
	}
	if r.Position == 0 {
		return row
	}
	row.Position = &r.Position
	row.PlaceID = &r.PlaceID
	row.PlaceName = &r.PlaceName
	row.Category = &r.Category
	row.ArrivalTime = localTime(r.ArrivalTime)
	row.DepartureTime = localTime(r.DepartureTime)
	row.TravelMinutes = &r.TravelMinutes
	row.VisitMinutes = &r.VisitMinutes
	return row
}

// domainRowToCSVRecord encodes a domain row as a flat string slice.
// Stop fields are empty strings for the row of a plan with no stops.
func domainRowToCSVRecord(r domain.PlanExportRow) []string {
	record := []string{
		r.PlanID,
		r.Region,
		localDate(r.GeneratedAt).Time.Format(openapi_types.DateFormat),
		"", "", "", "", "", "", "", "",
	}
	if r.Position == 0 {
		return record
	}
	record[3] = strconv.Itoa(r.Position)
	record[4] = r.PlaceID
	record[5] = r.PlaceName
	record[6] = r.Category
	record[7] = formatOptionalTime(r.ArrivalTime)
	record[8] = formatOptionalTime(r.DepartureTime)
	record[9] = strconv.Itoa(r.TravelMinutes)
	record[10] = strconv.Itoa(r.VisitMinutes)
	return record
}

// localDate returns the civil date of t in the fixed zone.
func localDate(t time.Time) openapi_types.Date {
	l := t.In(hours.Location)
	return openapi_types.Date{Time: time.Date(l.Year(), l.Month(), l.Day(), 0, 0, 0, 0, time.UTC)}
}

func localTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	l := t.In(hours.Location)
	return &l
}

// formatOptionalTime returns the RFC3339 representation of t in the fixed
// zone, or "" if t is nil.
func formatOptionalTime(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.In(hours.Location).Format(time.RFC3339)
}
