package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/nassimidr/Emall/models"
	"go.uber.org/zap"
)

const (
	ProductCachePrefix     = "product:detail:"
	ProductListCachePrefix = "products:v:"
	CacheVersionKey        = "products:version"

	DefaultCacheTTL = 5 * time.Minute
)

// CacheManager handles the Redis cache for product reads. A nil manager
// (Redis not configured) behaves as a permanent miss, so callers never
// have to care whether caching is on.
type CacheManager struct {
	redis *redis.Client
	ttl   time.Duration
}

func NewCacheManager(redisClient *redis.Client) *CacheManager {
	if redisClient == nil {
		return nil
	}
	return &CacheManager{redis: redisClient, ttl: DefaultCacheTTL}
}

// GetProductList retrieves a cached product list for the given scope
// ("all" or "shop:<id>").
func (cm *CacheManager) GetProductList(ctx context.Context, scope string) ([]models.Product, bool) {
	if cm == nil {
		return nil, false
	}
	version, err := cm.getCacheVersion(ctx)
	if err != nil || version == 0 {
		return nil, false
	}

	cachedData, err := cm.redis.Get(ctx, cm.listCacheKey(version, scope)).Result()
	if err != nil {
		return nil, false
	}

	var products []models.Product
	if err := json.Unmarshal([]byte(cachedData), &products); err != nil {
		zap.L().Warn("Failed to unmarshal cached product list", zap.Error(err))
		return nil, false
	}
	return products, true
}

// SetProductListAsync caches a product list asynchronously.
func (cm *CacheManager) SetProductListAsync(scope string, products []models.Product) {
	if cm == nil {
		return
	}
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		version, err := cm.getCacheVersion(bgCtx)
		if err != nil || version == 0 {
			return
		}

		jsonBytes, err := json.Marshal(products)
		if err != nil {
			zap.L().Warn("Failed to marshal product list for cache", zap.Error(err))
			return
		}

		if err := cm.redis.Set(bgCtx, cm.listCacheKey(version, scope), jsonBytes, cm.ttl).Err(); err != nil {
			zap.L().Warn("Failed to cache product list", zap.Error(err))
		}
	}()
}

// GetProduct retrieves a cached product by ID.
func (cm *CacheManager) GetProduct(ctx context.Context, productID string) (*models.Product, bool) {
	if cm == nil {
		return nil, false
	}
	cachedData, err := cm.redis.Get(ctx, ProductCachePrefix+productID).Result()
	if err != nil {
		return nil, false
	}

	var product models.Product
	if err := json.Unmarshal([]byte(cachedData), &product); err != nil {
		zap.L().Warn("Failed to unmarshal cached product", zap.Error(err))
		return nil, false
	}
	return &product, true
}

// SetProductAsync caches a single product asynchronously.
func (cm *CacheManager) SetProductAsync(productID string, product *models.Product) {
	if cm == nil {
		return
	}
	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		productJSON, err := json.Marshal(product)
		if err != nil {
			zap.L().Warn("Failed to marshal product for cache", zap.Error(err), zap.String("product_id", productID))
			return
		}

		if err := cm.redis.Set(bgCtx, ProductCachePrefix+productID, productJSON, cm.ttl).Err(); err != nil {
			zap.L().Warn("Failed to cache product", zap.Error(err), zap.String("product_id", productID))
		}
	}()
}

// InvalidateProduct invalidates the list caches by bumping the version and
// drops the product's own cache entry.
func (cm *CacheManager) InvalidateProduct(ctx context.Context, productID string) {
	if cm == nil {
		return
	}
	if err := cm.redis.Incr(ctx, CacheVersionKey).Err(); err != nil {
		zap.L().Error("Failed to invalidate product list cache", zap.Error(err), zap.String("product_id", productID))
	}

	go func() {
		bgCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := cm.redis.Del(bgCtx, ProductCachePrefix+productID).Err(); err != nil {
			zap.L().Warn("Failed to delete product cache", zap.Error(err), zap.String("product_id", productID))
		}
	}()
}

// getCacheVersion retrieves the current cache version, initializing the
// key on first use.
func (cm *CacheManager) getCacheVersion(ctx context.Context) (int64, error) {
	ver, err := cm.redis.Get(ctx, CacheVersionKey).Int64()
	if err == nil && ver > 0 {
		return ver, nil
	}
	if err == redis.Nil {
		if err := cm.redis.Set(ctx, CacheVersionKey, 1, 0).Err(); err == nil {
			return 1, nil
		}
	}
	return 0, fmt.Errorf("failed to get cache version: %w", err)
}

func (cm *CacheManager) listCacheKey(version int64, scope string) string {
	return fmt.Sprintf("%s%d:%s", ProductListCachePrefix, version, scope)
}
