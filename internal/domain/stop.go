package domain

import "time"

// PlanStop is one scheduled visit in an itinerary.
// DepartureTime is always ArrivalTime plus VisitMinutes.
type PlanStop struct {
	PlaceID                   string    `json:"place_id"`
	ArrivalTime               time.Time `json:"arrival_time"`
	DepartureTime             time.Time `json:"departure_time"`
	TravelMinutesFromPrevious int       `json:"travel_minutes_from_previous"`
	VisitMinutes              int       `json:"visit_minutes"`
}

// CostRange is an estimated spend in local currency units (MAD).
type CostRange struct {
	Min int `json:"min"`
	Max int `json:"max"`
}
