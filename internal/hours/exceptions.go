package hours

import (
	"strings"
	"time"

	"github.com/pkordes/wayfarer/internal/domain"
)

// resolve returns the effective rule for the civil day starting at day.
// Precedence: an exception for that exact date, then an active period
// exception, then the weekly rule for the weekday. An exception whose
// times do not parse is skipped rather than treated as closed.
func resolve(s Schedule, day time.Time, exceptions []domain.ExceptionRule) (WeeklyRule, bool) {
	weekday := weekdayNumber(day)

	if len(exceptions) > 0 {
		date := day.Format("2006-01-02")
		for _, ex := range exceptions {
			if strings.TrimSpace(ex.Date) != date {
				continue
			}
			if r, ok := exceptionRule(ex, weekday); ok {
				return r, true
			}
		}

		for _, ex := range exceptions {
			if strings.TrimSpace(ex.Date) != "" || !periodActive(ex.Period, day) {
				continue
			}
			if r, ok := exceptionRule(ex, weekday); ok {
				return r, true
			}
		}
	}

	return s.Rule(weekday)
}

func periodActive(period string, day time.Time) bool {
	switch strings.ToLower(strings.TrimSpace(period)) {
	case periodRamadan:
		return inRamadan(day)
	default:
		return false
	}
}

func exceptionRule(ex domain.ExceptionRule, weekday int) (WeeklyRule, bool) {
	if ex.Closed {
		return WeeklyRule{Weekday: weekday, Closed: true}, true
	}
	open, ok := parseClock(ex.Open)
	if !ok {
		return WeeklyRule{}, false
	}
	closeAt, ok := parseClock(ex.Close)
	if !ok {
		return WeeklyRule{}, false
	}
	return WeeklyRule{Weekday: weekday, Open: open, Close: closeAt}, true
}
