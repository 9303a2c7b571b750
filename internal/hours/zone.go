// Package hours resolves whether a place is open at a given instant.
//
// Schedules arrive as free-text weekly lines ("Mon-Fri 09:00-18:00"), an
// optional free-text fallback, and date or period exceptions. Everything is
// evaluated in one fixed civil time zone; callers pass absolute instants and
// never pre-converted local times. Nothing in this package returns an error:
// input that cannot be understood contributes no rule, and a place with no
// usable data is reported as Unknown.
package hours

import (
	"time"
	_ "time/tzdata" // Location must resolve on hosts without a zoneinfo database.
)

const zoneName = "Africa/Casablanca"

// Location is the civil time zone every schedule is evaluated in.
var Location = loadLocation()

func loadLocation() *time.Location {
	loc, err := time.LoadLocation(zoneName)
	if err != nil {
		return time.FixedZone(zoneName, 60*60)
	}
	return loc
}

const (
	// searchHorizonDays bounds the forward search for the next opening,
	// today included.
	searchHorizonDays = 8

	// staleAfterMonths is how old hours_verified_at may be before the
	// display string carries a warning.
	staleAfterMonths = 6

	periodRamadan = "ramadan"

	// Ramadan 1447, inclusive, as yyyymmdd keys.
	ramadanFirstDay = 20260218
	ramadanLastDay  = 20260319
)

// dateKey packs a civil date into yyyymmdd for cheap range comparisons.
func dateKey(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}

func inRamadan(day time.Time) bool {
	k := dateKey(day)
	return k >= ramadanFirstDay && k <= ramadanLastDay
}

// startOfDay returns local midnight of the civil day containing t, shifted by
// offset days.
func startOfDay(t time.Time, offset int) time.Time {
	y, m, d := t.In(Location).Date()
	return time.Date(y, m, d+offset, 0, 0, 0, 0, Location)
}

// atMinutes returns the instant minutes after midnight on day (a local
// midnight), shifted by offset days.
func atMinutes(day time.Time, minutes, offset int) time.Time {
	y, m, d := day.Date()
	return time.Date(y, m, d+offset, minutes/60, minutes%60, 0, 0, Location)
}

// weekdayNumber maps Go's Sunday=0 numbering onto the 1=Sunday..7=Saturday
// numbering used by WeeklyRule.
func weekdayNumber(t time.Time) int {
	return int(t.Weekday()) + 1
}

// dayNumber counts civil days since the epoch, ignoring offsets, so that two
// local dates can be differenced across DST changes.
func dayNumber(t time.Time) int {
	y, m, d := t.In(Location).Date()
	return int(time.Date(y, m, d, 0, 0, 0, 0, time.UTC).Unix() / 86400)
}
