package database

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ctrlmarket/ctrlmarket/internal/application/port/outbound"
	"github.com/ctrlmarket/ctrlmarket/internal/domain/entity"
	"github.com/ctrlmarket/ctrlmarket/internal/infra/storage"
	"github.com/ctrlmarket/ctrlmarket/pkg/logger"
	"github.com/ctrlmarket/ctrlmarket/pkg/metrics"
)

const productCacheTTL = 5 * time.Minute

// RedisProductCache is a cache-aside decorator over the product repository.
// It serves the catalog read endpoints only; order creation always reads the
// store so price snapshots stay transactional. Catalog writes pass through
// and drop the cached entry.
type RedisProductCache struct {
	next    outbound.ProductRepository
	cache   *storage.RedisAdapter
	logger  logger.Logger
	metrics metrics.Metrics
}

func NewRedisProductCache(next outbound.ProductRepository, cache *storage.RedisAdapter, log logger.Logger, m metrics.Metrics) *RedisProductCache {
	return &RedisProductCache{next: next, cache: cache, logger: log, metrics: m}
}

func productKey(id int64) string {
	return fmt.Sprintf("product:%d", id)
}

func (c *RedisProductCache) FindByID(ctx context.Context, id int64) (*entity.Product, error) {
	cached, err := c.cache.GetBytes(ctx, productKey(id))
	if err == nil {
		var p entity.Product
		if err := json.Unmarshal(cached, &p); err == nil {
			c.metrics.IncCacheHit("product")
			return &p, nil
		}
	} else if !errors.Is(err, storage.ErrKeyMissing) {
		// Cache trouble is not a reason to fail a read; fall through to
		// the store.
		c.logger.Warn(ctx, "product cache read failed", logger.WithError(err))
	}
	c.metrics.IncCacheMiss("product")

	product, err := c.next.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(product); err == nil {
		if err := c.cache.SetBytes(ctx, productKey(id), payload, productCacheTTL); err != nil {
			c.logger.Warn(ctx, "product cache write failed", logger.WithError(err))
		}
	}
	return product, nil
}

func (c *RedisProductCache) List(ctx context.Context, category, search string) ([]*entity.Product, error) {
	return c.next.List(ctx, category, search)
}

func (c *RedisProductCache) ListCategories(ctx context.Context) ([]string, error) {
	return c.next.ListCategories(ctx)
}

func (c *RedisProductCache) Save(ctx context.Context, product *entity.Product) error {
	return c.next.Save(ctx, product)
}

func (c *RedisProductCache) Update(ctx context.Context, product *entity.Product) error {
	if err := c.next.Update(ctx, product); err != nil {
		return err
	}
	c.invalidate(ctx, product.ID)
	return nil
}

func (c *RedisProductCache) Delete(ctx context.Context, id int64) error {
	if err := c.next.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx, id)
	return nil
}

func (c *RedisProductCache) invalidate(ctx context.Context, id int64) {
	if err := c.cache.Del(ctx, productKey(id)); err != nil {
		// Worst case the stale entry lives until the TTL expires.
		c.logger.Warn(ctx, "product cache invalidation failed",
			logger.Int64("product_id", id),
			logger.WithError(err))
	}
}
