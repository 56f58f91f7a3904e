// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"plant_backend/internal/feature/plant/domain/entity"
	"plant_backend/internal/feature/plant/usecase"
)

// CachingPlantRepository decorates a PlantRepository with Redis caching.
// Plant reads dominate the workload (every watering and every list call hits
// a lookup), so reads go through the cache and writes invalidate it.
type CachingPlantRepository struct {
	inner     usecase.PlantRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// NewCachingPlantRepository decorates a PlantRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses
// "plants". A nil client disables caching entirely.
func NewCachingPlantRepository(rdb *redis.Client, ttl time.Duration, inner usecase.PlantRepository, namespace string) *CachingPlantRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "plants"
	}
	return &CachingPlantRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Create inserts a plant through the underlying repository. A fresh plant
// cannot be cached yet, so no invalidation is needed.
func (c *CachingPlantRepository) Create(ctx context.Context, p *entity.Plant) error {
	return c.inner.Create(ctx, p)
}

// FindByID retrieves a plant, checking cache first then falling back to the
// database.
func (c *CachingPlantRepository) FindByID(ctx context.Context, id uint) (*entity.Plant, error) {
	return c.lookup(ctx, c.idKey(id), func() (*entity.Plant, error) {
		return c.inner.FindByID(ctx, id)
	})
}

// FindByCode retrieves a plant by code, checking cache first then falling
// back to the database.
func (c *CachingPlantRepository) FindByCode(ctx context.Context, code string) (*entity.Plant, error) {
	return c.lookup(ctx, c.codeKey(code), func() (*entity.Plant, error) {
		return c.inner.FindByCode(ctx, code)
	})
}

// Save writes a plant through and invalidates its cache entries.
func (c *CachingPlantRepository) Save(ctx context.Context, p *entity.Plant) error {
	if err := c.inner.Save(ctx, p); err != nil {
		return err
	}
	if c.rdb == nil {
		return nil
	}
	// Best effort: a failed invalidation only means a stale read until TTL.
	_ = c.rdb.Del(ctx, c.idKey(p.ID), c.codeKey(p.Code)).Err()
	return nil
}

// lookup implements the read-through path shared by FindByID and FindByCode.
func (c *CachingPlantRepository) lookup(ctx context.Context, key string, fetch func() (*entity.Plant, error)) (*entity.Plant, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return fetch()
	}

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out entity.Plant
		if err := json.Unmarshal(b, &out); err == nil {
			return &out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := fetch()
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

func (c *CachingPlantRepository) idKey(id uint) string {
	return fmt.Sprintf("%s:id:%d", c.namespace, id)
}

func (c *CachingPlantRepository) codeKey(code string) string {
	return fmt.Sprintf("%s:code:%s", c.namespace, code)
}
