package plan

import (
	"strings"
	"time"

	"github.com/pkordes/wayfarer/internal/domain"
)

// Scoring weights.
const (
	interestWeight   = 10.0
	trapHighPenalty  = -5.0
	trapMixedPenalty = -2.0
	bestTimeBonus    = 5.0
	diversityBonus   = 3.0
	mealBonus        = 12.0
	travelWeight     = 0.35

	budgetPriceyPenalty = -4.0
	budgetCheapBonus    = 2.0
	splurgePriceyBonus  = 3.0
)

type scoreContext struct {
	interests  int
	arrival    time.Time
	budget     BudgetTier
	categories map[string]bool
	unmet      mealSet
	travel     int
}

func score(c *candidate, sc scoreContext) float64 {
	matched := c.matched
	if sc.interests == 0 {
		matched = 1
	}
	s := interestWeight * float64(matched)

	switch c.place.TouristTrap {
	case domain.TrapHigh:
		s += trapHighPenalty
	case domain.TrapMixed:
		s += trapMixedPenalty
	}
	if matchesBestTime(c.place, sc.arrival) {
		s += bestTimeBonus
	}
	s += budgetFit(c.place, sc.budget)
	if !sc.categories[strings.ToLower(c.place.Category)] {
		s += diversityBonus
	}
	s += mealBonus * float64((c.meals & sc.unmet).count())
	s -= travelWeight * float64(sc.travel)
	return s
}

func budgetFit(p domain.Place, tier BudgetTier) float64 {
	switch tier {
	case BudgetLow:
		var s float64
		if hasAnyTag(p, priceyTags) {
			s += budgetPriceyPenalty
		}
		if hasAnyTag(p, cheapTags) {
			s += budgetCheapBonus
		}
		return s
	case BudgetSplurge:
		if hasAnyTag(p, priceyTags) {
			return splurgePriceyBonus
		}
	}
	return 0
}
