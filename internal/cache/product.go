package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"storefront/internal/model"
	"storefront/internal/repository"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix  = "catalog:products"
	versionKey = keyPrefix + ":version"
)

// ProductCache holds product listings per filter. Invalidate drops every cached listing at once.
type ProductCache interface {
	GetProducts(ctx context.Context, filter repository.ProductFilter) ([]*model.Product, bool, error)
	SetProducts(ctx context.Context, filter repository.ProductFilter, products []*model.Product) error
	Invalidate(ctx context.Context) error
}

type redisProductCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisProductCache(rdb *redis.Client, ttl time.Duration) ProductCache {
	return &redisProductCache{
		rdb: rdb,
		ttl: ttl,
	}
}

func (c *redisProductCache) GetProducts(ctx context.Context, filter repository.ProductFilter) ([]*model.Product, bool, error) {
	key, err := c.key(ctx, filter)
	if err != nil {
		return nil, false, err
	}

	raw, err := c.rdb.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("get cached products: %w", err)
	}

	var products []*model.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, false, fmt.Errorf("decode cached products: %w", err)
	}

	return products, true, nil
}

func (c *redisProductCache) SetProducts(ctx context.Context, filter repository.ProductFilter, products []*model.Product) error {
	key, err := c.key(ctx, filter)
	if err != nil {
		return err
	}

	raw, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("encode products: %w", err)
	}

	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("set cached products: %w", err)
	}
	return nil
}

// Invalidate bumps the catalog version so old keys are never read again and expire on their own.
func (c *redisProductCache) Invalidate(ctx context.Context) error {
	if err := c.rdb.Incr(ctx, versionKey).Err(); err != nil {
		return fmt.Errorf("bump catalog version: %w", err)
	}
	return nil
}

func (c *redisProductCache) key(ctx context.Context, filter repository.ProductFilter) (string, error) {
	version, err := c.rdb.Get(ctx, versionKey).Int64()
	if err != nil && !errors.Is(err, redis.Nil) {
		return "", fmt.Errorf("get catalog version: %w", err)
	}

	store := "*"
	if filter.StoreID != nil {
		store = strconv.FormatUint(uint64(*filter.StoreID), 10)
	}

	return fmt.Sprintf("%s:v%d:store=%s:category=%s", keyPrefix, version, store, filter.Category), nil
}

type nopProductCache struct{}

func NewNopProductCache() ProductCache {
	return nopProductCache{}
}

func (nopProductCache) GetProducts(context.Context, repository.ProductFilter) ([]*model.Product, bool, error) {
	return nil, false, nil
}

func (nopProductCache) SetProducts(context.Context, repository.ProductFilter, []*model.Product) error {
	return nil
}

func (nopProductCache) Invalidate(context.Context) error {
	return nil
}
