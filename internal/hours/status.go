package hours

import (
	"time"

	"github.com/pkordes/wayfarer/internal/domain"
)

// Status is the open/closed state of a place at an instant. It is one of
// Open, Closed or Unknown; switch on the concrete type.
type Status interface {
	// Kind returns "open", "closed" or "unknown".
	Kind() string
	status()
}

// Open means the place is open and will close at ClosesAt.
type Open struct {
	ClosesAt time.Time
}

// Closed means the place is closed. OpensAt is nil when no opening was found
// within the search horizon.
type Closed struct {
	OpensAt *time.Time
}

// Unknown means there is no usable schedule data at all.
type Unknown struct{}

func (Open) Kind() string    { return "open" }
func (Closed) Kind() string  { return "closed" }
func (Unknown) Kind() string { return "unknown" }

func (Open) status()    {}
func (Closed) status()  {}
func (Unknown) status() {}

// ChangeType distinguishes an upcoming opening from an upcoming closing.
type ChangeType int

const (
	Opens ChangeType = iota + 1
	Closes
)

func (t ChangeType) String() string {
	switch t {
	case Opens:
		return "opens"
	case Closes:
		return "closes"
	default:
		return "unknown"
	}
}

// Change is the next state transition after a reference instant.
type Change struct {
	Time time.Time
	Type ChangeType
}

// IsOpen parses the schedule text and evaluates it at the instant at.
func IsOpen(weekly []string, fallback string, at time.Time, exceptions []domain.ExceptionRule) Status {
	return Evaluate(ParseWeekly(weekly, fallback), at, exceptions)
}

// NextChange reports the transition implied by the status at from: the
// closing time when open, the opening time when closed with a known opening.
func NextChange(weekly []string, fallback string, from time.Time, exceptions []domain.ExceptionRule) (Change, bool) {
	return ChangeFor(IsOpen(weekly, fallback, from, exceptions))
}

// ChangeFor derives the next transition from an already computed status.
func ChangeFor(st Status) (Change, bool) {
	switch st := st.(type) {
	case Open:
		return Change{Time: st.ClosesAt, Type: Closes}, true
	case Closed:
		if st.OpensAt != nil {
			return Change{Time: *st.OpensAt, Type: Opens}, true
		}
	}
	return Change{}, false
}

// Evaluate resolves the status of a parsed schedule at the instant at.
// Callers evaluating the same place repeatedly can parse once and reuse s.
func Evaluate(s Schedule, at time.Time, exceptions []domain.ExceptionRule) Status {
	if s.Empty() && len(exceptions) == 0 {
		return Unknown{}
	}

	local := at.In(Location)
	now := local.Hour()*60 + local.Minute()
	today := startOfDay(local, 0)

	// An overnight window belongs to the day it started, so yesterday's rule
	// is checked before today's.
	if r, ok := resolve(s, startOfDay(local, -1), exceptions); ok && r.IsOvernight() && now < r.Close {
		return Open{ClosesAt: atMinutes(today, r.Close, 0)}
	}

	if r, ok := resolve(s, today, exceptions); ok && !r.Closed {
		if r.IsOvernight() {
			if now >= r.Open {
				return Open{ClosesAt: atMinutes(today, r.Close, 1)}
			}
		} else if now >= r.Open && now < r.Close {
			return Open{ClosesAt: atMinutes(today, r.Close, 0)}
		}
	}

	for offset := 0; offset < searchHorizonDays; offset++ {
		day := startOfDay(local, offset)
		r, ok := resolve(s, day, exceptions)
		if !ok || r.Closed {
			continue
		}
		if offset == 0 && r.Open <= now {
			continue
		}
		opensAt := atMinutes(day, r.Open, 0)
		return Closed{OpensAt: &opensAt}
	}
	return Closed{}
}
