package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/wayfarer/internal/service"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Street Food":      "street-food",
		"  HISTORY ":       "history",
		"rock & roll!!":    "rock-roll",
		"already-slugged":  "already-slugged",
		"--":               "",
		"Café Culture":     "caf-culture",
		"Art/Design 2026.": "art-design-2026",
	}
	for in, want := range cases {
		assert.Equal(t, want, service.Slugify(in), in)
	}
}

func TestTagService_List_NormalizesPrefix(t *testing.T) {
	var captured string
	svc := service.NewTagService(&mockTagRepo{
		list: func(_ context.Context, prefix string) ([]string, error) {
			captured = prefix
			return []string{"food", "food-tour"}, nil
		},
	})

	got, err := svc.List(context.Background(), "  FOO ")

	require.NoError(t, err)
	assert.Equal(t, "foo", captured)
	assert.Equal(t, []string{"food", "food-tour"}, got)
}

func TestTagService_List_EmptyIsNonNil(t *testing.T) {
	svc := service.NewTagService(&mockTagRepo{
		list: func(context.Context, string) ([]string, error) { return nil, nil },
	})

	got, err := svc.List(context.Background(), "")

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestTagService_List_RepoError(t *testing.T) {
	boom := errors.New("db down")
	svc := service.NewTagService(&mockTagRepo{
		list: func(context.Context, string) ([]string, error) { return nil, boom },
	})

	_, err := svc.List(context.Background(), "a")

	assert.ErrorIs(t, err, boom)
}
