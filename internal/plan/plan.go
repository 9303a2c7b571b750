// Package plan builds a day itinerary from a snapshot of candidate places.
//
// Generate is pure and total: the same Input always yields the same Output,
// nothing is read from the clock, and infeasible requests come back as an
// empty itinerary with warnings rather than an error. Selection is a greedy
// scored pass followed by a nearest-neighbour reordering of the same set;
// whichever schedule fits better is returned.
package plan

import (
	"fmt"
	"strings"
	"time"

	"github.com/pkordes/wayfarer/internal/domain"
)

// Geo is the geometry the planner needs. geo.Calculator satisfies it.
type Geo interface {
	DistanceMeters(a, b domain.Coordinate) float64
	BearingDegrees(a, b domain.Coordinate) float64
	EstimateWalkMinutes(meters float64, region string) int
}

// Pace controls visit length and how many stops are attempted.
type Pace string

const (
	PaceRelaxed  Pace = "relaxed"
	PaceStandard Pace = "standard"
	PaceActive   Pace = "active"
)

// BudgetTier filters and scores candidates by price-related tags.
type BudgetTier string

const (
	BudgetLow     BudgetTier = "budget"
	BudgetMid     BudgetTier = "mid"
	BudgetSplurge BudgetTier = "splurge"
)

// ParsePace accepts "relaxed", "standard" or "active" in any case.
// An empty string means standard.
func ParsePace(s string) (Pace, error) {
	switch p := Pace(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return PaceStandard, nil
	case PaceRelaxed, PaceStandard, PaceActive:
		return p, nil
	default:
		return "", fmt.Errorf("%w: unknown pace %q", domain.ErrValidation, s)
	}
}

// ParseBudgetTier accepts "budget", "mid" or "splurge" in any case.
// An empty string means mid.
func ParseBudgetTier(s string) (BudgetTier, error) {
	switch b := BudgetTier(strings.ToLower(strings.TrimSpace(s))); b {
	case "":
		return BudgetMid, nil
	case BudgetLow, BudgetMid, BudgetSplurge:
		return b, nil
	default:
		return "", fmt.Errorf("%w: unknown budget tier %q", domain.ErrValidation, s)
	}
}

// Input is everything one call to Generate looks at.
// Start is nil when the traveller's position is unknown.
type Input struct {
	AvailableMinutes int
	Start            *domain.Coordinate
	Interests        []string
	Pace             Pace
	Budget           BudgetTier
	Now              time.Time
	Candidates       []domain.Place
	RecentlyVisited  map[string]bool
}

// Output is an ordered itinerary. Stops is never nil.
type Output struct {
	Stops        []domain.PlanStop
	TotalMinutes int
	Cost         domain.CostRange
	Warnings     []string
}

// paceProfile holds the per-pace tuning constants.
type paceProfile struct {
	// minStopMinutes is the least remaining time worth another stop.
	minStopMinutes int
	// visitFloor is the shortest visit the pace allows.
	visitFloor int
	// maxStops caps the itinerary regardless of time.
	maxStops int
	// minutesPerStop derives a time-based cap: one stop per this many
	// available minutes, rounded up.
	minutesPerStop int
}

var paceProfiles = map[Pace]paceProfile{
	PaceRelaxed:  {minStopMinutes: 45, visitFloor: 30, maxStops: 4, minutesPerStop: 120},
	PaceStandard: {minStopMinutes: 30, visitFloor: 25, maxStops: 6, minutesPerStop: 90},
	PaceActive:   {minStopMinutes: 20, visitFloor: 20, maxStops: 8, minutesPerStop: 60},
}

func profileFor(p Pace) paceProfile {
	if prof, ok := paceProfiles[p]; ok {
		return prof
	}
	return paceProfiles[PaceStandard]
}

func (p paceProfile) stopCap(availableMinutes int) int {
	byTime := (availableMinutes + p.minutesPerStop - 1) / p.minutesPerStop
	return max(1, min(p.maxStops, byTime))
}

// Visit bounds used when content leaves both unset.
const (
	defaultVisitMin = 45
	defaultVisitMax = 90
)

// visitMinutes picks the visit length for the pace: the upper bound when
// relaxed, the lower bound when active, the rounded midpoint otherwise.
func visitMinutes(p domain.Place, pace Pace, prof paceProfile) int {
	lo, hi := p.VisitMinMinutes, p.VisitMaxMinutes
	if lo <= 0 && hi <= 0 {
		lo, hi = defaultVisitMin, defaultVisitMax
	}
	if lo <= 0 {
		lo = hi
	}
	if hi <= 0 {
		hi = lo
	}
	if lo > hi {
		lo, hi = hi, lo
	}

	var v int
	switch pace {
	case PaceRelaxed:
		v = hi
	case PaceActive:
		v = lo
	default:
		v = (lo + hi + 1) / 2
	}
	return max(v, prof.visitFloor)
}
