package redissvc

import (
	"context"
	"encoding/json"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rogerio-castellano/greenmarket/internal/models"
)

const (
	catalogCacheKey = "catalog"
	catalogCacheTTL = 30 * time.Second
)

type RedisService struct {
	rdb *redis.Client
	ctx context.Context
}

func NewRedisService(rdb *redis.Client, ctx context.Context) *RedisService {
	return &RedisService{
		rdb: rdb,
		ctx: ctx,
	}
}

func (a *RedisService) Rdb() *redis.Client {
	return a.rdb
}

func (a *RedisService) Ctx() context.Context {
	return a.ctx
}

// CachedCatalog returns the cached product list, if any. A cache miss or a
// redis error both report ok=false; callers fall through to the repository.
func (a *RedisService) CachedCatalog() ([]models.Product, bool) {
	data, err := a.rdb.Get(a.ctx, catalogCacheKey).Bytes()
	if err != nil {
		return nil, false
	}
	var products []models.Product
	if err := json.Unmarshal(data, &products); err != nil {
		return nil, false
	}
	return products, true
}

// StoreCatalog caches the product list with a short TTL.
func (a *RedisService) StoreCatalog(products []models.Product) {
	data, err := json.Marshal(products)
	if err != nil {
		return
	}
	a.rdb.Set(a.ctx, catalogCacheKey, data, catalogCacheTTL)
}

// InvalidateCatalog drops the cached product list. Called after any stock
// mutation so the catalog never serves stale stock for long.
func (a *RedisService) InvalidateCatalog() {
	a.rdb.Del(a.ctx, catalogCacheKey)
}
