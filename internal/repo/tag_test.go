package repo_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/wayfarer/internal/repo"
	"github.com/pkordes/wayfarer/testutil"
)

func TestTagRepo_List(t *testing.T) {
	tx := testutil.NewTx(t)
	places, tags := repo.NewPlaceRepo(tx), repo.NewTagRepo(tx)
	ctx := context.Background()

	a := placeFixture("tag-a", "tag-test")
	a.Tags = []string{"history", "hammam"}
	b := placeFixture("tag-b", "tag-test")
	b.Tags = []string{"history", "food"}
	_, err := places.Upsert(ctx, a)
	require.NoError(t, err)
	_, err = places.Upsert(ctx, b)
	require.NoError(t, err)

	got, err := tags.List(ctx, "h")
	require.NoError(t, err)
	assert.Contains(t, got, "history")
	assert.Contains(t, got, "hammam")
	assert.NotContains(t, got, "food")

	all, err := tags.List(ctx, "")
	require.NoError(t, err)
	assert.Subset(t, all, []string{"food", "hammam", "history"})

	none, err := tags.List(ctx, "zzz-no-such-tag")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}
