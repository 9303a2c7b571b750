package plan

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/pkordes/wayfarer/internal/domain"
	"github.com/pkordes/wayfarer/internal/hours"
)

// Warning texts.
const (
	warnNoTime       = "No time available: add some minutes to build a plan."
	warnNoCandidates = "No places match your interests and budget."
	warnEmptyPlan    = "No plan could fit the constraints of your remaining time."
	warnClosedFmt    = "%d place(s) skipped because they would be closed on arrival."
	warnDroppedFmt   = "%d stop(s) dropped because they no longer fit the schedule."
	warnMealsFmt     = "No stop covers %s."
)

// Travel tuning.
const (
	unlocatableMinutes = 10
	samePlaceMeters    = 20.0
)

// Engine generates itineraries. It holds no mutable state and is safe for
// concurrent use.
type Engine struct {
	geo Geo
}

// New returns an Engine that measures distances with g.
func New(g Geo) *Engine {
	return &Engine{geo: g}
}

// candidate is a filtered place with everything that does not depend on
// position precomputed.
type candidate struct {
	place    domain.Place
	schedule hours.Schedule
	matched  int
	meals    mealSet
	visit    int
}

func (c *candidate) closedAt(t time.Time) bool {
	_, closed := hours.Evaluate(c.schedule, t, c.place.HoursExceptions).(hours.Closed)
	return closed
}

// schedule is the outcome of one feasibility pass over an ordering.
type schedule struct {
	stops   []domain.PlanStop
	places  []*candidate
	meals   mealSet
	dropped []string
	total   int
}

// Generate builds a plan for in. It never fails; infeasible requests yield
// an empty Stops list and warnings explaining why.
func (e *Engine) Generate(in Input) Output {
	in.AvailableMinutes = max(in.AvailableMinutes, 0)
	if in.AvailableMinutes == 0 {
		return emptyOutput(warnNoTime)
	}

	prof := profileFor(in.Pace)
	interests := normalizeInterests(in.Interests)
	cands := e.filter(in, interests, prof)
	if len(cands) == 0 {
		return emptyOutput(warnNoCandidates)
	}

	required := requiredMeals(in.Now, in.AvailableMinutes)
	if containsFold(interests, "food") && in.AvailableMinutes >= fullDayMinutes {
		for _, c := range cands {
			required |= c.meals
		}
	}

	selected, closedSkipped := e.selectGreedy(in, cands, interests, prof, required)

	greedy := e.buildSchedule(in, selected)
	alt := e.buildSchedule(in, e.nearestNeighbour(in.Start, selected))
	chosen := greedy
	if preferred(alt, greedy, required) {
		chosen = alt
	}

	out := Output{
		Stops:        chosen.stops,
		TotalMinutes: chosen.total,
		Cost:         estimateCost(chosen.places, in.Budget),
		Warnings:     []string{},
	}
	if out.Stops == nil {
		out.Stops = []domain.PlanStop{}
	}
	if closedSkipped > 0 {
		out.Warnings = append(out.Warnings, fmt.Sprintf(warnClosedFmt, closedSkipped))
	}
	if dropped := distinctCount(greedy.dropped, alt.dropped); dropped > 0 {
		out.Warnings = append(out.Warnings, fmt.Sprintf(warnDroppedFmt, dropped))
	}
	if len(out.Stops) == 0 {
		out.Warnings = append(out.Warnings, warnEmptyPlan)
	}
	if missing := required &^ chosen.meals; missing != 0 {
		out.Warnings = append(out.Warnings, fmt.Sprintf(warnMealsFmt, strings.Join(missing.names(), ", ")))
	}
	return out
}

// distinctCount counts the distinct ids across both passes, so a place
// dropped by either ordering is reported once.
func distinctCount(a, b []string) int {
	seen := make(map[string]bool, len(a)+len(b))
	for _, id := range append(append([]string(nil), a...), b...) {
		seen[id] = true
	}
	return len(seen)
}

func emptyOutput(warning string) Output {
	return Output{Stops: []domain.PlanStop{}, Warnings: []string{warning}}
}

// filter drops recently visited places, places matching none of the
// interests and places the budget tier rules out. The result is ordered by
// id; duplicate ids keep the first occurrence.
func (e *Engine) filter(in Input, interests []string, prof paceProfile) []*candidate {
	seen := make(map[string]bool, len(in.Candidates))
	out := make([]*candidate, 0, len(in.Candidates))
	for _, p := range in.Candidates {
		if seen[p.ID] || in.RecentlyVisited[p.ID] {
			continue
		}
		seen[p.ID] = true

		matched := matchedInterests(p, interests)
		if len(interests) > 0 && matched == 0 {
			continue
		}
		if excludedByBudget(p, in.Budget) {
			continue
		}
		out = append(out, &candidate{
			place:    p,
			schedule: hours.ParseWeekly(p.WeeklyHours, p.HoursText),
			matched:  matched,
			meals:    servedMeals(p),
			visit:    visitMinutes(p, in.Pace, prof),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].place.ID < out[j].place.ID })
	return out
}

// travelMinutes is the walk from anchor to p. Unlocatable places cost a
// flat penalty; an unknown anchor costs nothing.
func (e *Engine) travelMinutes(anchor *domain.Coordinate, p domain.Place) int {
	if p.Coordinate == nil {
		return unlocatableMinutes
	}
	if anchor == nil {
		return 0
	}
	meters := e.geo.DistanceMeters(*anchor, *p.Coordinate)
	if meters < samePlaceMeters {
		return 0
	}
	return e.geo.EstimateWalkMinutes(meters, p.Region)
}

func minutesAfter(t time.Time, minutes int) time.Time {
	return t.Add(time.Duration(minutes) * time.Minute)
}

// selectGreedy repeatedly takes the best-scoring feasible candidate from
// the current anchor. It returns the chosen candidates in order and the
// number of distinct candidates rejected only because they were closed.
func (e *Engine) selectGreedy(in Input, cands []*candidate, interests []string, prof paceProfile, required mealSet) ([]*candidate, int) {
	var (
		selected   []*candidate
		taken      = make(map[*candidate]bool)
		closed     = make(map[string]bool)
		categories = make(map[string]bool)
		covered    mealSet
		anchor     = in.Start
		elapsed    int
		remaining  = in.AvailableMinutes
		stopCap    = prof.stopCap(in.AvailableMinutes)
	)

	for remaining >= prof.minStopMinutes && len(selected) < stopCap {
		var (
			best      *candidate
			bestScore float64
			bestNeed  int
		)
		for _, c := range cands {
			if taken[c] {
				continue
			}
			travel := e.travelMinutes(anchor, c.place)
			need := travel + c.visit
			if need > remaining {
				continue
			}
			arrival := minutesAfter(in.Now, elapsed+travel)
			if c.closedAt(arrival) {
				closed[c.place.ID] = true
				continue
			}

			s := score(c, scoreContext{
				interests:  len(interests),
				arrival:    arrival,
				budget:     in.Budget,
				categories: categories,
				unmet:      required &^ covered,
				travel:     travel,
			})
			if best == nil || s > bestScore ||
				(s == bestScore && need < bestNeed) ||
				(s == bestScore && need == bestNeed && c.place.ID < best.place.ID) {
				best, bestScore, bestNeed = c, s, need
			}
		}
		if best == nil {
			break
		}

		selected = append(selected, best)
		taken[best] = true
		categories[strings.ToLower(best.place.Category)] = true
		covered |= best.meals
		if best.place.Coordinate != nil {
			anchor = best.place.Coordinate
		}
		elapsed += bestNeed
		remaining -= bestNeed
	}

	skipped := 0
	for id := range closed {
		if !containsID(selected, id) {
			skipped++
		}
	}
	return selected, skipped
}

func containsID(cs []*candidate, id string) bool {
	for _, c := range cs {
		if c.place.ID == id {
			return true
		}
	}
	return false
}

// buildSchedule walks order from the start, re-deriving travel and arrival,
// and keeps each stop that still fits the budget and is not closed on
// arrival.
func (e *Engine) buildSchedule(in Input, order []*candidate) schedule {
	var (
		out     schedule
		anchor  = in.Start
		elapsed int
	)
	for _, c := range order {
		travel := e.travelMinutes(anchor, c.place)
		if elapsed+travel+c.visit > in.AvailableMinutes {
			out.dropped = append(out.dropped, c.place.ID)
			continue
		}
		arrival := minutesAfter(in.Now, elapsed+travel)
		if c.closedAt(arrival) {
			out.dropped = append(out.dropped, c.place.ID)
			continue
		}

		out.stops = append(out.stops, domain.PlanStop{
			PlaceID:                   c.place.ID,
			ArrivalTime:               arrival,
			DepartureTime:             minutesAfter(arrival, c.visit),
			TravelMinutesFromPrevious: travel,
			VisitMinutes:              c.visit,
		})
		out.places = append(out.places, c)
		out.meals |= c.meals
		elapsed += travel + c.visit
		if c.place.Coordinate != nil {
			anchor = c.place.Coordinate
		}
	}
	out.total = elapsed
	return out
}

// nearestNeighbour reorders selected by repeatedly hopping to the closest
// remaining place. Unlocatable places sort last; ties go to the smaller id.
func (e *Engine) nearestNeighbour(start *domain.Coordinate, selected []*candidate) []*candidate {
	rest := append([]*candidate(nil), selected...)
	out := make([]*candidate, 0, len(selected))
	anchor := start
	for len(rest) > 0 {
		bestIdx, bestDist := -1, 0.0
		for i, c := range rest {
			d := e.hopDistance(anchor, c.place)
			if bestIdx < 0 || d < bestDist || (d == bestDist && c.place.ID < rest[bestIdx].place.ID) {
				bestIdx, bestDist = i, d
			}
		}
		next := rest[bestIdx]
		out = append(out, next)
		rest = append(rest[:bestIdx], rest[bestIdx+1:]...)
		if next.place.Coordinate != nil {
			anchor = next.place.Coordinate
		}
	}
	return out
}

func (e *Engine) hopDistance(anchor *domain.Coordinate, p domain.Place) float64 {
	switch {
	case p.Coordinate == nil:
		return math.Inf(1)
	case anchor == nil:
		return 0
	default:
		return e.geo.DistanceMeters(*anchor, *p.Coordinate)
	}
}

// preferred reports whether alt beats base: more required meals covered,
// then more stops, then fewer minutes. Equal schedules keep base.
func preferred(alt, base schedule, required mealSet) bool {
	if a, b := (alt.meals & required).count(), (base.meals & required).count(); a != b {
		return a > b
	}
	if len(alt.stops) != len(base.stops) {
		return len(alt.stops) > len(base.stops)
	}
	return alt.total < base.total
}
