package plan

import (
	"math"
	"strings"

	"github.com/pkordes/wayfarer/internal/domain"
)

var (
	categoryCosts = map[string]domain.CostRange{
		"restaurant":  {Min: 80, Max: 180},
		"cafe":        {Min: 20, Max: 60},
		"museum":      {Min: 70, Max: 120},
		"market":      {Min: 0, Max: 40},
		"souk":        {Min: 0, Max: 40},
		"street_food": {Min: 20, Max: 60},
		"hammam":      {Min: 150, Max: 400},
		"palace":      {Min: 70, Max: 100},
		"garden":      {Min: 0, Max: 70},
		"viewpoint":   {Min: 0, Max: 20},
	}
	defaultCost = domain.CostRange{Min: 20, Max: 80}

	budgetMultipliers = map[BudgetTier]float64{
		BudgetLow:     0.80,
		BudgetMid:     1.00,
		BudgetSplurge: 1.25,
	}
)

// estimateCost sums the category cost of each stop, scaled by the tier.
func estimateCost(stops []*candidate, tier BudgetTier) domain.CostRange {
	var lo, hi int
	for _, c := range stops {
		r, ok := categoryCosts[strings.ToLower(c.place.Category)]
		if !ok {
			r = defaultCost
		}
		lo += r.Min
		hi += r.Max
	}
	mult, ok := budgetMultipliers[tier]
	if !ok {
		mult = 1
	}
	return domain.CostRange{
		Min: max(0, int(math.Round(float64(lo)*mult))),
		Max: max(0, int(math.Round(float64(hi)*mult))),
	}
}
