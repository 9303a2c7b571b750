// Package vectors loads and runs the shared engine test vectors.
//
// A vector file is a JSON (or YAML) document with an "hours" list, a "plans"
// list, or both. Each case carries its inputs and the exact expected output;
// instants in expectations are compared at minute precision in the fixed
// civil zone, formatted "2006-01-02 15:04".
package vectors

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/pkordes/wayfarer/internal/domain"
	"github.com/pkordes/wayfarer/internal/hours"
)

// MinuteLayout is the format expected instants are written in.
const MinuteLayout = "2006-01-02 15:04"

// File is one vector document.
type File struct {
	Hours []HoursCase `yaml:"hours"`
	Plans []PlanCase  `yaml:"plans"`
}

// HoursCase exercises the hours engine at one instant.
type HoursCase struct {
	Name       string                 `yaml:"name"`
	At         string                 `yaml:"at"`
	Weekly     []string               `yaml:"weekly"`
	HoursText  string                 `yaml:"hours_text"`
	VerifiedAt string                 `yaml:"verified_at"`
	Exceptions []domain.ExceptionRule `yaml:"exceptions"`
	Expected   HoursExpected          `yaml:"expected"`
}

// HoursExpected is the expected status. ClosesAt and OpensAt are empty when
// not applicable; Display is only checked when set.
type HoursExpected struct {
	Status   string `yaml:"status"`
	ClosesAt string `yaml:"closes_at"`
	OpensAt  string `yaml:"opens_at"`
	Display  string `yaml:"display"`
}

// PlanCase exercises the plan engine once.
type PlanCase struct {
	Name     string       `yaml:"name"`
	Input    PlanInput    `yaml:"input"`
	Expected PlanExpected `yaml:"expected"`
}

// PlanInput mirrors plan.Input with string-typed enums and instants.
type PlanInput struct {
	Now              string             `yaml:"now"`
	AvailableMinutes int                `yaml:"available_minutes"`
	Start            *domain.Coordinate `yaml:"start"`
	Interests        []string           `yaml:"interests"`
	Pace             string             `yaml:"pace"`
	Budget           string             `yaml:"budget"`
	RecentlyVisited  []string           `yaml:"recently_visited"`
	Candidates       []domain.Place     `yaml:"candidates"`
}

// PlanExpected is the exact expected itinerary.
type PlanExpected struct {
	Stops        []ExpectedStop   `yaml:"stops"`
	TotalMinutes int              `yaml:"total_minutes"`
	Cost         domain.CostRange `yaml:"cost"`
	Warnings     []string         `yaml:"warnings"`
}

// ExpectedStop is one stop with minute-precision instants.
type ExpectedStop struct {
	PlaceID       string `yaml:"place_id"`
	Arrival       string `yaml:"arrival"`
	Departure     string `yaml:"departure"`
	TravelMinutes int    `yaml:"travel_minutes"`
	VisitMinutes  int    `yaml:"visit_minutes"`
}

// Load reads and decodes a vector file.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("vectors.Load: %w", err)
	}
	return Parse(data)
}

// Parse decodes a vector document. JSON is valid YAML, so both work.
func Parse(data []byte) (File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return File{}, fmt.Errorf("vectors.Parse: %w", err)
	}
	return f, nil
}

// Minute formats t at minute precision in the fixed zone.
func Minute(t time.Time) string {
	return t.In(hours.Location).Format(MinuteLayout)
}

// ParseInstant reads an RFC 3339 timestamp.
func ParseInstant(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: instant %q: %v", domain.ErrValidation, s, err)
	}
	return t, nil
}
