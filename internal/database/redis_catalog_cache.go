package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Gaaaybe/Aetherium/internal/domain"
	"github.com/Gaaaybe/Aetherium/internal/interfaces"
	"github.com/Gaaaybe/Aetherium/internal/metrics"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const (
	catalogEffects       = "effects"
	catalogModifications = "modifications"

	cacheHit   = "hit"
	cacheMiss  = "miss"
	cacheError = "error"
)

// catalogCache - общий read-through кэш каталога в Redis.
// Ошибки Redis не ломают чтение: запрос уходит в базовый репозиторий.
type catalogCache struct {
	client  redis.Cmdable
	ttl     time.Duration
	catalog string
	logger  *zap.Logger
}

func (c *catalogCache) key(parts ...string) string {
	key := "catalog:" + c.catalog
	for _, p := range parts {
		key += ":" + p
	}
	return key
}

// listsKey - множество закэшированных списков, сбрасывается при Create.
func (c *catalogCache) listsKey() string { return c.key("lists") }

func readThrough[T any](ctx context.Context, c *catalogCache, key string, isList bool, load func() (T, error)) (T, error) {
	var zero T
	raw, err := c.client.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var cached T
		if err := json.Unmarshal(raw, &cached); err == nil {
			metrics.CatalogCacheRequestsTotal.WithLabelValues(c.catalog, cacheHit).Inc()
			return cached, nil
		}
		c.logger.Warn("Corrupted catalog cache entry, reloading", zap.String("key", key))
	case errors.Is(err, redis.Nil):
	default:
		metrics.CatalogCacheRequestsTotal.WithLabelValues(c.catalog, cacheError).Inc()
		c.logger.Warn("Catalog cache read failed", zap.String("key", key), zap.Error(err))
	}
	metrics.CatalogCacheRequestsTotal.WithLabelValues(c.catalog, cacheMiss).Inc()

	value, err := load()
	if err != nil {
		return zero, err
	}

	data, err := json.Marshal(value)
	if err != nil {
		c.logger.Warn("Failed to encode catalog cache entry", zap.String("key", key), zap.Error(err))
		return value, nil
	}
	pipe := c.client.TxPipeline()
	pipe.Set(ctx, key, data, c.ttl)
	if isList {
		pipe.SAdd(ctx, c.listsKey(), key)
		pipe.Expire(ctx, c.listsKey(), c.ttl)
	}
	if _, err := pipe.Exec(ctx); err != nil {
		c.logger.Warn("Catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
	return value, nil
}

// invalidateLists удаляет все закэшированные списки каталога.
func (c *catalogCache) invalidateLists(ctx context.Context) {
	keys, err := c.client.SMembers(ctx, c.listsKey()).Result()
	if err != nil {
		c.logger.Warn("Failed to read cached catalog lists", zap.Error(err))
		return
	}
	keys = append(keys, c.listsKey())
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.Warn("Failed to invalidate catalog lists", zap.Error(err))
		return
	}
	c.logger.Debug("Catalog lists invalidated", zap.Int("keys", len(keys)))
}

// errCacheSkip: отсутствующая запись не кэшируется.
var errCacheSkip = errors.New("skip cache")

func findByIDCached[T any](ctx context.Context, c *catalogCache, id string, find func() (*T, error)) (*T, error) {
	item, err := readThrough(ctx, c, c.key("id", id), false, func() (*T, error) {
		item, err := find()
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, errCacheSkip
		}
		return item, nil
	})
	if errors.Is(err, errCacheSkip) {
		return nil, nil
	}
	return item, err
}

var _ interfaces.EffectRepository = (*CachedEffectRepository)(nil)

// CachedEffectRepository - EffectRepository с кэшем Redis поверх базового.
type CachedEffectRepository struct {
	next  interfaces.EffectRepository
	cache *catalogCache
}

func NewCachedEffectRepository(next interfaces.EffectRepository, client redis.Cmdable, ttl time.Duration, logger *zap.Logger) *CachedEffectRepository {
	return &CachedEffectRepository{
		next:  next,
		cache: &catalogCache{client: client, ttl: ttl, catalog: catalogEffects, logger: logger.Named("RedisEffectCache")},
	}
}

func (r *CachedEffectRepository) FindByID(ctx context.Context, id string) (*domain.EffectBase, error) {
	return findByIDCached(ctx, r.cache, id, func() (*domain.EffectBase, error) { return r.next.FindByID(ctx, id) })
}

func (r *CachedEffectRepository) FindAll(ctx context.Context) ([]*domain.EffectBase, error) {
	return readThrough(ctx, r.cache, r.cache.key("all"), true, func() ([]*domain.EffectBase, error) {
		return r.next.FindAll(ctx)
	})
}

func (r *CachedEffectRepository) FindByCategory(ctx context.Context, categoria string) ([]*domain.EffectBase, error) {
	return readThrough(ctx, r.cache, r.cache.key("category", categoria), true, func() ([]*domain.EffectBase, error) {
		return r.next.FindByCategory(ctx, categoria)
	})
}

func (r *CachedEffectRepository) FindCustom(ctx context.Context) ([]*domain.EffectBase, error) {
	return readThrough(ctx, r.cache, r.cache.key("custom"), true, func() ([]*domain.EffectBase, error) {
		return r.next.FindCustom(ctx)
	})
}

func (r *CachedEffectRepository) Create(ctx context.Context, effect *domain.EffectBase) error {
	if err := r.next.Create(ctx, effect); err != nil {
		return err
	}
	r.cache.invalidateLists(ctx)
	return nil
}

var _ interfaces.ModificationRepository = (*CachedModificationRepository)(nil)

// CachedModificationRepository - ModificationRepository с кэшем Redis.
type CachedModificationRepository struct {
	next  interfaces.ModificationRepository
	cache *catalogCache
}

func NewCachedModificationRepository(next interfaces.ModificationRepository, client redis.Cmdable, ttl time.Duration, logger *zap.Logger) *CachedModificationRepository {
	return &CachedModificationRepository{
		next:  next,
		cache: &catalogCache{client: client, ttl: ttl, catalog: catalogModifications, logger: logger.Named("RedisModificationCache")},
	}
}

func (r *CachedModificationRepository) FindByID(ctx context.Context, id string) (*domain.ModificationBase, error) {
	return findByIDCached(ctx, r.cache, id, func() (*domain.ModificationBase, error) { return r.next.FindByID(ctx, id) })
}

func (r *CachedModificationRepository) FindAll(ctx context.Context) ([]*domain.ModificationBase, error) {
	return readThrough(ctx, r.cache, r.cache.key("all"), true, func() ([]*domain.ModificationBase, error) {
		return r.next.FindAll(ctx)
	})
}

func (r *CachedModificationRepository) FindByType(ctx context.Context, tipo domain.ModificationType) ([]*domain.ModificationBase, error) {
	return readThrough(ctx, r.cache, r.cache.key("type", string(tipo)), true, func() ([]*domain.ModificationBase, error) {
		return r.next.FindByType(ctx, tipo)
	})
}

func (r *CachedModificationRepository) FindByCategory(ctx context.Context, categoria string) ([]*domain.ModificationBase, error) {
	return readThrough(ctx, r.cache, r.cache.key("category", categoria), true, func() ([]*domain.ModificationBase, error) {
		return r.next.FindByCategory(ctx, categoria)
	})
}

func (r *CachedModificationRepository) FindCustom(ctx context.Context) ([]*domain.ModificationBase, error) {
	return readThrough(ctx, r.cache, r.cache.key("custom"), true, func() ([]*domain.ModificationBase, error) {
		return r.next.FindCustom(ctx)
	})
}

func (r *CachedModificationRepository) Create(ctx context.Context, modification *domain.ModificationBase) error {
	if err := r.next.Create(ctx, modification); err != nil {
		return err
	}
	r.cache.invalidateLists(ctx)
	return nil
}

// WarmCatalog загружает полный каталог в кэш. Ошибка не фатальна для старта.
func WarmCatalog(ctx context.Context, effects *CachedEffectRepository, modifications *CachedModificationRepository) error {
	if _, err := effects.FindAll(ctx); err != nil {
		return fmt.Errorf("failed to warm effect catalog: %w", err)
	}
	if _, err := modifications.FindAll(ctx); err != nil {
		return fmt.Errorf("failed to warm modification catalog: %w", err)
	}
	return nil
}
