package domain

import (
	"time"

	"github.com/google/uuid"
)

// PlanRequest is what a caller asks for when generating a day plan.
// Pace and Budget are the raw strings supplied by the client; the service
// layer validates them. At is nil when the caller wants "now".
type PlanRequest struct {
	Region           string
	AvailableMinutes int
	Start            *Coordinate
	Interests        []string
	Pace             string
	Budget           string
	At               *time.Time
}

// SavedPlan is a generated itinerary persisted for later retrieval.
// It echoes the request parameters so the plan can be re-rendered without
// regenerating it.
type SavedPlan struct {
	ID               uuid.UUID
	Region           string
	GeneratedAt      time.Time
	AvailableMinutes int
	Pace             string
	Budget           string
	Interests        []string
	Stops            []PlanStop
	TotalMinutes     int
	Cost             CostRange
	Warnings         []string
	CreatedAt        time.Time
}
