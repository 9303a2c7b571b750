package repo_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/wayfarer/internal/domain"
	"github.com/pkordes/wayfarer/internal/repo"
)

// ---- mocks -----------------------------------------------------------------

type mockPlaceRepo struct {
	upsertFn       func(ctx context.Context, p domain.Place) (domain.Place, error)
	getByIDFn      func(ctx context.Context, id string) (domain.Place, error)
	listByRegionFn func(ctx context.Context, region string) ([]domain.Place, error)
	listPagedFn    func(ctx context.Context, region string, p domain.PaginationParams) ([]domain.Place, int64, error)
}

var _ repo.PlaceRepo = (*mockPlaceRepo)(nil)

func (m *mockPlaceRepo) Upsert(ctx context.Context, p domain.Place) (domain.Place, error) {
	return m.upsertFn(ctx, p)
}
func (m *mockPlaceRepo) GetByID(ctx context.Context, id string) (domain.Place, error) {
	if m.getByIDFn == nil {
		return domain.Place{}, domain.ErrNotFound
	}
	return m.getByIDFn(ctx, id)
}
func (m *mockPlaceRepo) ListByRegion(ctx context.Context, region string) ([]domain.Place, error) {
	return m.listByRegionFn(ctx, region)
}
func (m *mockPlaceRepo) ListPaged(ctx context.Context, region string, p domain.PaginationParams) ([]domain.Place, int64, error) {
	return m.listPagedFn(ctx, region, p)
}

// memStore is an in-memory repo.Store. failing makes every call error.
type memStore struct {
	data    map[string][]byte
	ttls    map[string]time.Duration
	failing bool
}

var _ repo.Store = (*memStore)(nil)

func newMemStore() *memStore {
	return &memStore{data: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

var errStoreDown = errors.New("store down")

func (s *memStore) Get(_ context.Context, key string) ([]byte, error) {
	if s.failing {
		return nil, errStoreDown
	}
	return s.data[key], nil
}

func (s *memStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	if s.failing {
		return errStoreDown
	}
	s.data[key] = value
	s.ttls[key] = ttl
	return nil
}

func (s *memStore) Delete(_ context.Context, key string) error {
	if s.failing {
		return errStoreDown
	}
	delete(s.data, key)
	return nil
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// ---- cachedPlaceRepo ---------------------------------------------------------

func TestCachedPlaceRepo_ReadThrough(t *testing.T) {
	calls := 0
	inner := &mockPlaceRepo{
		listByRegionFn: func(_ context.Context, region string) ([]domain.Place, error) {
			calls++
			return []domain.Place{{ID: "bahia", Region: region, Coordinate: &domain.Coordinate{Lat: 31.62, Lon: -7.98}}}, nil
		},
	}
	store := newMemStore()
	r := repo.NewCachedPlaceRepo(inner, store, 10*time.Minute, discardLogger())
	ctx := context.Background()

	first, err := r.ListByRegion(ctx, "medina")
	require.NoError(t, err)
	second, err := r.ListByRegion(ctx, "medina")
	require.NoError(t, err)

	assert.Equal(t, 1, calls, "second read is served from the cache")
	assert.Equal(t, first, second)
	assert.Equal(t, 10*time.Minute, store.ttls["places:region:medina"])
}

func TestCachedPlaceRepo_UpsertInvalidates(t *testing.T) {
	calls := 0
	inner := &mockPlaceRepo{
		listByRegionFn: func(context.Context, string) ([]domain.Place, error) {
			calls++
			return []domain.Place{}, nil
		},
		upsertFn: func(_ context.Context, p domain.Place) (domain.Place, error) { return p, nil },
	}
	r := repo.NewCachedPlaceRepo(inner, newMemStore(), time.Minute, discardLogger())
	ctx := context.Background()

	_, err := r.ListByRegion(ctx, "medina")
	require.NoError(t, err)
	_, err = r.Upsert(ctx, domain.Place{ID: "new", Region: "medina"})
	require.NoError(t, err)
	_, err = r.ListByRegion(ctx, "medina")
	require.NoError(t, err)

	assert.Equal(t, 2, calls)
}

func TestCachedPlaceRepo_UpsertInvalidatesPreviousRegion(t *testing.T) {
	calls := map[string]int{}
	inner := &mockPlaceRepo{
		listByRegionFn: func(_ context.Context, region string) ([]domain.Place, error) {
			calls[region]++
			return []domain.Place{}, nil
		},
		getByIDFn: func(_ context.Context, id string) (domain.Place, error) {
			return domain.Place{ID: id, Region: "medina"}, nil
		},
		upsertFn: func(_ context.Context, p domain.Place) (domain.Place, error) { return p, nil },
	}
	store := newMemStore()
	r := repo.NewCachedPlaceRepo(inner, store, time.Minute, discardLogger())
	ctx := context.Background()

	for _, region := range []string{"medina", "gueliz"} {
		_, err := r.ListByRegion(ctx, region)
		require.NoError(t, err)
	}
	_, err := r.Upsert(ctx, domain.Place{ID: "bahia", Region: "gueliz"})
	require.NoError(t, err)

	assert.Empty(t, store.data, "both the old and the new region are invalidated")
	for _, region := range []string{"medina", "gueliz"} {
		_, err := r.ListByRegion(ctx, region)
		require.NoError(t, err)
	}
	assert.Equal(t, map[string]int{"medina": 2, "gueliz": 2}, calls)
}

func TestCachedPlaceRepo_UpsertSurvivesLookupFailure(t *testing.T) {
	inner := &mockPlaceRepo{
		getByIDFn: func(context.Context, string) (domain.Place, error) {
			return domain.Place{}, errors.New("db hiccup")
		},
		upsertFn: func(_ context.Context, p domain.Place) (domain.Place, error) { return p, nil },
	}
	store := newMemStore()
	store.data["places:region:medina"] = []byte("[]")
	r := repo.NewCachedPlaceRepo(inner, store, time.Minute, discardLogger())

	got, err := r.Upsert(context.Background(), domain.Place{ID: "bahia", Region: "medina"})
	require.NoError(t, err)
	assert.Equal(t, "bahia", got.ID)
	assert.Empty(t, store.data)
}

func TestCachedPlaceRepo_StoreFailureFallsThrough(t *testing.T) {
	inner := &mockPlaceRepo{
		listByRegionFn: func(context.Context, string) ([]domain.Place, error) {
			return []domain.Place{{ID: "bahia"}}, nil
		},
		upsertFn: func(_ context.Context, p domain.Place) (domain.Place, error) { return p, nil },
	}
	store := newMemStore()
	store.failing = true
	r := repo.NewCachedPlaceRepo(inner, store, time.Minute, discardLogger())

	got, err := r.ListByRegion(context.Background(), "medina")
	require.NoError(t, err)
	assert.Len(t, got, 1)

	_, err = r.Upsert(context.Background(), domain.Place{ID: "x"})
	assert.NoError(t, err)
}

func TestCachedPlaceRepo_InnerErrorNotCached(t *testing.T) {
	inner := &mockPlaceRepo{
		listByRegionFn: func(context.Context, string) ([]domain.Place, error) {
			return nil, errors.New("db down")
		},
	}
	store := newMemStore()
	r := repo.NewCachedPlaceRepo(inner, store, time.Minute, discardLogger())

	_, err := r.ListByRegion(context.Background(), "medina")
	assert.Error(t, err)
	assert.Empty(t, store.data)
}

func TestCachedPlaceRepo_DelegatesOtherReads(t *testing.T) {
	inner := &mockPlaceRepo{
		getByIDFn: func(context.Context, string) (domain.Place, error) {
			return domain.Place{}, domain.ErrNotFound
		},
	}
	r := repo.NewCachedPlaceRepo(inner, newMemStore(), time.Minute, discardLogger())

	_, err := r.GetByID(context.Background(), "nowhere")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ---- RedisStore --------------------------------------------------------------

// TestRedisStore runs against a real server when TEST_REDIS_ADDR is set.
func TestRedisStore(t *testing.T) {
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set; skipping redis integration test")
	}
	client := redis.NewClient(&redis.Options{Addr: addr})
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, client.Ping(context.Background()).Err())

	s := repo.NewRedisStore(client, discardLogger())
	ctx := context.Background()
	key := "test:" + t.Name()

	got, err := s.Get(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, got, "miss is not an error")

	require.NoError(t, s.Set(ctx, key, []byte("hello"), time.Minute))
	got, err = s.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, []byte("hello"), got)

	require.NoError(t, s.Delete(ctx, key))
	got, err = s.Get(ctx, key)
	require.NoError(t, err)
	assert.Nil(t, got)
}
