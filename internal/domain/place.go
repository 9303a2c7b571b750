// Package domain contains the core data types for the Wayfarer backend.
// This package has zero external dependencies and is imported by every other
// internal package (hours, plan, repo, service, handler).
package domain

import "strings"

// Coordinate is a WGS84 position in decimal degrees.
type Coordinate struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
}

// TrapLevel is the content-authored tourist-trap signal for a place.
// The zero value behaves like TrapLow.
type TrapLevel string

const (
	TrapLow   TrapLevel = "low"
	TrapMixed TrapLevel = "mixed"
	TrapHigh  TrapLevel = "high"
)

// ExceptionRule overrides the weekly schedule for a single date or a named
// period. Exactly one of Date ("2006-01-02") or Period should be set.
// Open and Close are "HH:MM" and are ignored when Closed is true.
type ExceptionRule struct {
	Date   string `json:"date,omitempty" yaml:"date,omitempty"`
	Period string `json:"period,omitempty" yaml:"period,omitempty"`
	Open   string `json:"open,omitempty" yaml:"open,omitempty"`
	Close  string `json:"close,omitempty" yaml:"close,omitempty"`
	Closed bool   `json:"closed,omitempty" yaml:"closed,omitempty"`
}

// Place is a read-only content record: something a traveller can visit.
// Coordinate is nil when the place has not been geolocated.
// WeeklyHours holds free-text rule lines ("Mon-Fri 09:00-18:00"); HoursText is
// the free-text fallback used when no weekly line parses.
type Place struct {
	ID              string          `json:"id" yaml:"id"`
	Name            string          `json:"name" yaml:"name"`
	Category        string          `json:"category" yaml:"category"`
	Coordinate      *Coordinate     `json:"coordinate,omitempty" yaml:"coordinate,omitempty"`
	WeeklyHours     []string        `json:"weekly_hours,omitempty" yaml:"weekly_hours,omitempty"`
	HoursText       string          `json:"hours_text,omitempty" yaml:"hours_text,omitempty"`
	HoursVerifiedAt string          `json:"hours_verified_at,omitempty" yaml:"hours_verified_at,omitempty"`
	HoursExceptions []ExceptionRule `json:"hours_exceptions,omitempty" yaml:"hours_exceptions,omitempty"`
	VisitMinMinutes int             `json:"visit_min_minutes" yaml:"visit_min_minutes"`
	VisitMaxMinutes int             `json:"visit_max_minutes" yaml:"visit_max_minutes"`
	Tags            []string        `json:"tags,omitempty" yaml:"tags,omitempty"`
	BestTimes       []string        `json:"best_times,omitempty" yaml:"best_times,omitempty"`
	TouristTrap     TrapLevel       `json:"tourist_trap,omitempty" yaml:"tourist_trap,omitempty"`
	Region          string          `json:"region" yaml:"region"`
}

// HasTag reports whether tag is attached to the place, ignoring case.
func (p Place) HasTag(tag string) bool {
	for _, t := range p.Tags {
		if strings.EqualFold(t, tag) {
			return true
		}
	}
	return false
}
