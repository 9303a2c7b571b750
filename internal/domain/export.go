package domain

import "time"

// PlanExportRow is a single row in a plan export: one row per scheduled stop,
// with plan fields repeated and the place name and category joined in.
// A plan with no stops yields one row with zero values for all stop fields.
type PlanExportRow struct {
	// Plan fields, repeated for every stop.
	PlanID      string
	Region      string
	GeneratedAt time.Time

	// Stop fields, zero values when the plan has no stops.
	Position      int
	PlaceID       string
	PlaceName     string
	Category      string
	ArrivalTime   *time.Time
	DepartureTime *time.Time
	TravelMinutes int
	VisitMinutes  int
}
