package repo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/pkordes/wayfarer/internal/domain"
)

// Store is a byte-oriented cache. Get returns nil data and no error on a
// miss.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// RedisStore is a Store on a go-redis client. Keys are namespaced with
// "wayfarer:".
type RedisStore struct {
	client *redis.Client
	prefix string
	logger *slog.Logger
}

var _ Store = (*RedisStore)(nil)

// NewRedisStore wraps an already connected client.
func NewRedisStore(client *redis.Client, logger *slog.Logger) *RedisStore {
	return &RedisStore{
		client: client,
		prefix: "wayfarer:",
		logger: logger.With("component", "redis_store"),
	}
}

func (s *RedisStore) key(k string) string { return s.prefix + k }

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, error) {
	val, err := s.client.Get(ctx, s.key(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		s.logger.Debug("cache miss", "key", key)
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("repo.RedisStore.Get: %w", err)
	}
	s.logger.Debug("cache hit", "key", key, "size_bytes", len(val))
	return val, nil
}

func (s *RedisStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if err := s.client.Set(ctx, s.key(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("repo.RedisStore.Set: %w", err)
	}
	return nil
}

func (s *RedisStore) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return fmt.Errorf("repo.RedisStore.Delete: %w", err)
	}
	return nil
}

// cachedPlaceRepo serves region snapshots from a Store and falls through
// to the inner repo on a miss or a cache error.
type cachedPlaceRepo struct {
	PlaceRepo
	store  Store
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedPlaceRepo wraps inner with a read-through cache of ListByRegion.
// Upsert invalidates the regions it touches. Cache failures are logged and
// never fail the call.
func NewCachedPlaceRepo(inner PlaceRepo, store Store, ttl time.Duration, logger *slog.Logger) PlaceRepo {
	return &cachedPlaceRepo{
		PlaceRepo: inner,
		store:     store,
		ttl:       ttl,
		logger:    logger.With("component", "place_cache"),
	}
}

func regionKey(region string) string { return "places:region:" + region }

func (r *cachedPlaceRepo) ListByRegion(ctx context.Context, region string) ([]domain.Place, error) {
	key := regionKey(region)

	data, err := r.store.Get(ctx, key)
	if err != nil {
		r.logger.Warn("cache read failed", "key", key, "error", err)
	} else if data != nil {
		var places []domain.Place
		if err := json.Unmarshal(data, &places); err == nil {
			return places, nil
		}
		r.logger.Warn("cache entry unreadable", "key", key)
	}

	places, err := r.PlaceRepo.ListByRegion(ctx, region)
	if err != nil {
		return nil, err
	}

	if data, err := json.Marshal(places); err == nil {
		if err := r.store.Set(ctx, key, data, r.ttl); err != nil {
			r.logger.Warn("cache write failed", "key", key, "error", err)
		}
	}
	return places, nil
}

// Upsert invalidates the region the place is written to and, when the place
// moved, the region it left.
func (r *cachedPlaceRepo) Upsert(ctx context.Context, place domain.Place) (domain.Place, error) {
	regions := []string{}
	prev, err := r.PlaceRepo.GetByID(ctx, place.ID)
	switch {
	case err == nil:
		regions = append(regions, prev.Region)
	case !errors.Is(err, domain.ErrNotFound):
		r.logger.Warn("previous region lookup failed", "place_id", place.ID, "error", err)
	}

	out, err := r.PlaceRepo.Upsert(ctx, place)
	if err != nil {
		return domain.Place{}, err
	}
	if len(regions) == 0 || regions[0] != out.Region {
		regions = append(regions, out.Region)
	}
	for _, region := range regions {
		if err := r.store.Delete(ctx, regionKey(region)); err != nil {
			r.logger.Warn("cache invalidation failed", "region", region, "error", err)
		}
	}
	return out, nil
}
