package vectors

import (
	"fmt"
	"slices"

	"github.com/pkordes/wayfarer/internal/hours"
	"github.com/pkordes/wayfarer/internal/plan"
)

// Result is the outcome of one case. Failures is empty when it passed.
type Result struct {
	Kind     string
	Name     string
	Failures []string
}

// Passed reports whether the case matched its expectation.
func (r Result) Passed() bool { return len(r.Failures) == 0 }

// Run checks every case in f, hours first, in file order.
func (f File) Run(g plan.Geo) []Result {
	results := make([]Result, 0, len(f.Hours)+len(f.Plans))
	for _, c := range f.Hours {
		results = append(results, Result{Kind: "hours", Name: c.Name, Failures: c.Check()})
	}
	engine := plan.New(g)
	for _, c := range f.Plans {
		results = append(results, Result{Kind: "plan", Name: c.Name, Failures: c.Check(engine)})
	}
	return results
}

type mismatches []string

func (m *mismatches) compare(field string, got, want any) {
	if got != want {
		*m = append(*m, fmt.Sprintf("%s: got %v, want %v", field, got, want))
	}
}

// Check evaluates the case and lists every mismatch.
func (c HoursCase) Check() []string {
	at, err := ParseInstant(c.At)
	if err != nil {
		return []string{err.Error()}
	}

	var m mismatches
	st := hours.IsOpen(c.Weekly, c.HoursText, at, c.Exceptions)
	m.compare("status", st.Kind(), c.Expected.Status)

	var closesAt, opensAt string
	switch st := st.(type) {
	case hours.Open:
		closesAt = Minute(st.ClosesAt)
	case hours.Closed:
		if st.OpensAt != nil {
			opensAt = Minute(*st.OpensAt)
		}
	}
	m.compare("closes_at", closesAt, c.Expected.ClosesAt)
	m.compare("opens_at", opensAt, c.Expected.OpensAt)

	if c.Expected.Display != "" {
		got := hours.FormatForDisplay(c.Weekly, c.HoursText, c.VerifiedAt, at, c.Exceptions)
		m.compare("display", got, c.Expected.Display)
	}
	return m
}

// Input converts the case into engine input.
func (in PlanInput) Input() (plan.Input, error) {
	now, err := ParseInstant(in.Now)
	if err != nil {
		return plan.Input{}, err
	}
	pace, err := plan.ParsePace(in.Pace)
	if err != nil {
		return plan.Input{}, err
	}
	budget, err := plan.ParseBudgetTier(in.Budget)
	if err != nil {
		return plan.Input{}, err
	}
	visited := make(map[string]bool, len(in.RecentlyVisited))
	for _, id := range in.RecentlyVisited {
		visited[id] = true
	}
	return plan.Input{
		AvailableMinutes: in.AvailableMinutes,
		Start:            in.Start,
		Interests:        in.Interests,
		Pace:             pace,
		Budget:           budget,
		Now:              now,
		Candidates:       in.Candidates,
		RecentlyVisited:  visited,
	}, nil
}

// Check runs the engine on the case and lists every mismatch.
func (c PlanCase) Check(engine *plan.Engine) []string {
	in, err := c.Input.Input()
	if err != nil {
		return []string{err.Error()}
	}
	out := engine.Generate(in)

	var m mismatches
	m.compare("stops", len(out.Stops), len(c.Expected.Stops))
	for i := range min(len(out.Stops), len(c.Expected.Stops)) {
		got, want := out.Stops[i], c.Expected.Stops[i]
		prefix := fmt.Sprintf("stops[%d].", i)
		m.compare(prefix+"place_id", got.PlaceID, want.PlaceID)
		m.compare(prefix+"arrival", Minute(got.ArrivalTime), want.Arrival)
		m.compare(prefix+"departure", Minute(got.DepartureTime), want.Departure)
		m.compare(prefix+"travel_minutes", got.TravelMinutesFromPrevious, want.TravelMinutes)
		m.compare(prefix+"visit_minutes", got.VisitMinutes, want.VisitMinutes)
	}
	m.compare("total_minutes", out.TotalMinutes, c.Expected.TotalMinutes)
	m.compare("cost", out.Cost, c.Expected.Cost)
	if !slices.Equal(out.Warnings, c.Expected.Warnings) {
		m = append(m, fmt.Sprintf("warnings: got %q, want %q", out.Warnings, c.Expected.Warnings))
	}
	return m
}
