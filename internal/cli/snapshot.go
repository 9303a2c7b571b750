package cli

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/pkordes/wayfarer/internal/domain"
)

// snapshot is a YAML document of place content.
type snapshot struct {
	Places []domain.Place `yaml:"places"`
}

func loadSnapshot(path string) (snapshot, error) {
	var s snapshot
	if err := decodeYAMLFile(path, &s); err != nil {
		return snapshot{}, fmt.Errorf("snapshot: %w", err)
	}
	return s, nil
}

// find returns the place with id.
func (s snapshot) find(id string) (domain.Place, bool) {
	for _, p := range s.Places {
		if p.ID == id {
			return p, true
		}
	}
	return domain.Place{}, false
}

// region returns the places in region, or every place when region is
// empty.
func (s snapshot) region(region string) []domain.Place {
	if region == "" {
		return s.Places
	}
	var out []domain.Place
	for _, p := range s.Places {
		if p.Region == region {
			out = append(out, p)
		}
	}
	return out
}

func decodeYAMLFile(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	if err := yaml.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%s: %w", path, err)
	}
	return nil
}
