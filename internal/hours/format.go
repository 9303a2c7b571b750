package hours

import (
	"strings"
	"time"

	"github.com/pkordes/wayfarer/internal/domain"
)

const (
	displaySeparator = " · "
	staleSuffix      = displaySeparator + "Hours may be outdated"
	noHoursText      = "Hours not available"
)

// FormatForDisplay renders the status at the instant at as a single line,
// e.g. "Open now · Closes 18:00" or "Closed · Opens tomorrow 09:00".
// Unknown schedules fall back to the sanitized free text. A staleness
// suffix is appended when verifiedAt is more than six months old.
func FormatForDisplay(weekly []string, fallback, verifiedAt string, at time.Time, exceptions []domain.ExceptionRule) string {
	text := Describe(IsOpen(weekly, fallback, at, exceptions), fallback, at)
	if IsStale(verifiedAt, at) {
		text += staleSuffix
	}
	return text
}

// Describe renders an already computed status without the staleness suffix.
func Describe(st Status, fallback string, at time.Time) string {
	switch st := st.(type) {
	case Open:
		return "Open now" + displaySeparator + "Closes " + clockText(st.ClosesAt)
	case Closed:
		if st.OpensAt == nil {
			return "Closed" + displaySeparator + "Opening time unavailable"
		}
		return "Closed" + displaySeparator + "Opens " + relativeDay(at, *st.OpensAt) + " " + clockText(*st.OpensAt)
	default:
		if s := sanitize(fallback); s != "" {
			return s
		}
		return noHoursText
	}
}

// IsStale reports whether verifiedAt ("2006-01-02", optionally followed by a
// time) is more than six calendar months before the civil date of at.
// An empty or unparseable value is never stale.
func IsStale(verifiedAt string, at time.Time) bool {
	s := strings.TrimSpace(verifiedAt)
	if len(s) > len(time.DateOnly) {
		s = s[:len(time.DateOnly)]
	}
	verified, err := time.ParseInLocation(time.DateOnly, s, Location)
	if err != nil {
		return false
	}
	return verified.Before(monthsBefore(at, staleAfterMonths))
}

// monthsBefore returns local midnight of the civil date n months before at,
// clamped to the end of a shorter month (Aug 31 minus six months is Feb 28).
func monthsBefore(at time.Time, n int) time.Time {
	y, m, d := at.In(Location).Date()
	first := time.Date(y, m-time.Month(n), 1, 0, 0, 0, 0, Location)
	last := first.AddDate(0, 1, -1).Day()
	return time.Date(first.Year(), first.Month(), min(d, last), 0, 0, 0, 0, Location)
}

func clockText(t time.Time) string {
	return t.In(Location).Format("15:04")
}

func relativeDay(from, to time.Time) string {
	switch dayNumber(to) - dayNumber(from) {
	case 0:
		return "today"
	case 1:
		return "tomorrow"
	default:
		return to.In(Location).Weekday().String()
	}
}

// sanitize folds dash and space variants and collapses whitespace while
// keeping the author's casing.
func sanitize(s string) string {
	s = punctuationReplacer.Replace(s)
	return strings.TrimSpace(whitespaceRun.ReplaceAllString(s, " "))
}
