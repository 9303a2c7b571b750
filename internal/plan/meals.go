package plan

import (
	"math/bits"
	"strings"
	"time"

	"github.com/pkordes/wayfarer/internal/domain"
	"github.com/pkordes/wayfarer/internal/hours"
)

// mealSet is a bitmask over mealSlots.
type mealSet uint8

type mealSlot struct {
	name       string
	start, end int // minutes since local midnight
	bestTime   string
}

var mealSlots = [...]mealSlot{
	{name: "breakfast", start: 7 * 60, end: 11 * 60, bestTime: "morning"},
	{name: "lunch", start: 12 * 60, end: 15 * 60, bestTime: "afternoon"},
	{name: "dinner", start: 19 * 60, end: 22 * 60, bestTime: "evening"},
}

func (m mealSet) count() int { return bits.OnesCount8(uint8(m)) }

func (m mealSet) names() []string {
	var out []string
	for i, slot := range mealSlots {
		if m&(1<<i) != 0 {
			out = append(out, slot.name)
		}
	}
	return out
}

// Minimum window for which a food interest asks for every servable meal.
const fullDayMinutes = 360

// requiredMeals returns the slots overlapping [now, now+minutes) in the
// fixed zone, across as many days as the window spans.
func requiredMeals(now time.Time, minutes int) mealSet {
	local := now.In(hours.Location)
	end := local.Add(time.Duration(minutes) * time.Minute)

	var set mealSet
	day := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, hours.Location)
	for ; day.Before(end); day = day.AddDate(0, 0, 1) {
		for i, slot := range mealSlots {
			from := day.Add(time.Duration(slot.start) * time.Minute)
			to := day.Add(time.Duration(slot.end) * time.Minute)
			if from.Before(end) && to.After(local) {
				set |= 1 << i
			}
		}
	}
	return set
}

var foodCategories = []string{"restaurant", "cafe", "street_food", "bakery"}

func isFoodPlace(p domain.Place) bool {
	return containsFold(foodCategories, p.Category) || p.HasTag("food")
}

// servedMeals returns the slots a place serves: tagged with the slot name,
// listing it as a best time, or a food place whose best time falls in it.
func servedMeals(p domain.Place) mealSet {
	food := isFoodPlace(p)
	var set mealSet
	for i, slot := range mealSlots {
		if p.HasTag(slot.name) || containsFold(p.BestTimes, slot.name) {
			set |= 1 << i
			continue
		}
		if food && containsFold(p.BestTimes, slot.bestTime) {
			set |= 1 << i
		}
	}
	return set
}

// timeBucket names the part of day t falls in.
func timeBucket(t time.Time) string {
	switch h := t.In(hours.Location).Hour(); {
	case h >= 5 && h < 12:
		return "morning"
	case h >= 12 && h < 17:
		return "afternoon"
	case h >= 17 && h < 21:
		return "evening"
	default:
		return "night"
	}
}

func matchesBestTime(p domain.Place, arrival time.Time) bool {
	bucket := timeBucket(arrival)
	for _, bt := range p.BestTimes {
		if strings.EqualFold(strings.TrimSpace(bt), bucket) {
			return true
		}
	}
	return false
}
