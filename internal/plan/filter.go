package plan

import (
	"regexp"
	"strings"

	"github.com/pkordes/wayfarer/internal/domain"
)

// interestGeneral matches every place.
const interestGeneral = "general"

// interestMatch lists the categories and tag or name tokens an interest
// accepts.
type interestMatch struct {
	categories []string
	tokens     []string
}

var interestTable = map[string]interestMatch{
	"food": {
		categories: []string{"restaurant", "cafe", "street_food", "bakery", "market"},
		tokens:     []string{"food", "restaurant", "cafe", "street-food", "tagine", "bakery", "breakfast", "lunch", "dinner"},
	},
	"history": {
		categories: []string{"monument", "museum", "palace", "mosque", "medersa", "kasbah", "ruins"},
		tokens:     []string{"history", "historic", "heritage", "monument", "palace", "kasbah", "medersa", "tomb", "ruins"},
	},
	"culture": {
		categories: []string{"museum", "mosque", "medersa", "gallery", "theatre"},
		tokens:     []string{"culture", "cultural", "tradition", "music", "crafts", "museum"},
	},
	"shopping": {
		categories: []string{"market", "souk", "shop", "boutique"},
		tokens:     []string{"shopping", "souk", "market", "crafts", "boutique", "bazaar"},
	},
	"nature": {
		categories: []string{"garden", "park", "beach", "viewpoint"},
		tokens:     []string{"nature", "garden", "park", "beach", "view", "viewpoint", "outdoors"},
	},
	"art": {
		categories: []string{"gallery", "museum"},
		tokens:     []string{"art", "gallery", "design", "photography", "architecture"},
	},
	"nightlife": {
		categories: []string{"bar", "club", "rooftop"},
		tokens:     []string{"nightlife", "bar", "rooftop", "live-music", "club"},
	},
	"relaxation": {
		categories: []string{"hammam", "spa", "garden"},
		tokens:     []string{"relaxation", "hammam", "spa", "quiet", "rooftop"},
	},
}

var nameToken = regexp.MustCompile(`[a-z0-9]+`)

// normalizeInterests lowercases, trims and de-duplicates, keeping order.
func normalizeInterests(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// matchesInterest reports whether p satisfies one interest. An interest
// missing from the table matches its own name as a category or token.
func matchesInterest(p domain.Place, interest string) bool {
	if interest == interestGeneral {
		return true
	}
	m, ok := interestTable[interest]
	if !ok {
		m = interestMatch{categories: []string{interest}, tokens: []string{interest}}
	}

	category := strings.ToLower(p.Category)
	for _, c := range m.categories {
		if category == c {
			return true
		}
	}
	for _, tag := range p.Tags {
		if containsFold(m.tokens, tag) {
			return true
		}
	}
	for _, w := range nameToken.FindAllString(strings.ToLower(p.Name), -1) {
		if containsFold(m.tokens, w) {
			return true
		}
	}
	return false
}

// matchedInterests counts the interests p satisfies.
func matchedInterests(p domain.Place, interests []string) int {
	n := 0
	for _, in := range interests {
		if matchesInterest(p, in) {
			n++
		}
	}
	return n
}

// Price-related tags.
var (
	budgetExcluded = map[BudgetTier][]string{
		BudgetLow: {"luxury", "fine-dining", "upscale", "ultra-luxury"},
		BudgetMid: {"ultra-luxury"},
	}
	priceyTags = []string{"luxury", "fine-dining", "upscale", "ultra-luxury", "premium", "high-end"}
	cheapTags  = []string{"free", "cheap", "budget-friendly", "street-food"}
)

// excludedByBudget reports whether any of p's tags rule it out for tier.
func excludedByBudget(p domain.Place, tier BudgetTier) bool {
	for _, tag := range p.Tags {
		if containsFold(budgetExcluded[tier], tag) {
			return true
		}
	}
	return false
}

func hasAnyTag(p domain.Place, tags []string) bool {
	for _, tag := range p.Tags {
		if containsFold(tags, tag) {
			return true
		}
	}
	return false
}

func containsFold(list []string, s string) bool {
	s = strings.TrimSpace(s)
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}
