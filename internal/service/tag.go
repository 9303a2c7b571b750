package service

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/pkordes/wayfarer/internal/repo"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify lowercases s and collapses every run of characters outside
// [a-z0-9] into a single hyphen, trimming hyphens at either end.
// "Street Food!" becomes "street-food".
func Slugify(s string) string {
	return strings.Trim(nonSlugChars.ReplaceAllString(strings.ToLower(s), "-"), "-")
}

// slugifyAll slugs every value, dropping empties and duplicates while
// keeping first-seen order.
func slugifyAll(values []string) []string {
	out := make([]string, 0, len(values))
	seen := make(map[string]bool, len(values))
	for _, v := range values {
		slug := Slugify(v)
		if slug == "" || seen[slug] {
			continue
		}
		seen[slug] = true
		out = append(out, slug)
	}
	return out
}

// TagService serves the place tag vocabulary used by the interest picker.
type TagService struct {
	tags repo.TagRepo
}

// NewTagService constructs a TagService backed by the provided TagRepo.
func NewTagService(tags repo.TagRepo) *TagService {
	return &TagService{tags: tags}
}

// List returns the distinct tags starting with prefix. The prefix is
// lowercased and trimmed to match how tags are stored.
func (s *TagService) List(ctx context.Context, prefix string) ([]string, error) {
	tags, err := s.tags.List(ctx, strings.ToLower(strings.TrimSpace(prefix)))
	if err != nil {
		return nil, fmt.Errorf("service.TagService.List: %w", err)
	}
	if tags == nil {
		tags = []string{}
	}
	return tags, nil
}
