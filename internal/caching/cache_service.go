package caching

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"toyshop/internal/models"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const keyPrefix = "toyshop:"

// Cache keys. Every list is cached whole; the catalog engine filters in memory.
const (
	KeyActiveCategories = keyPrefix + "categories:active"
	KeyAllCategories    = keyPrefix + "categories:all"
	KeyVisibleProducts  = keyPrefix + "products:visible"
	KeyAllProducts      = keyPrefix + "products:all"
)

type CacheService interface {
	// Category lists. A miss returns (nil, nil).
	GetCategories(ctx context.Context, includeInactive bool) ([]models.Category, error)
	SetCategories(ctx context.Context, includeInactive bool, categories []models.Category, ttl time.Duration) error
	InvalidateCategories(ctx context.Context) error

	// Product lists. A miss returns (nil, nil).
	GetProducts(ctx context.Context, includeHidden bool) ([]models.Product, error)
	SetProducts(ctx context.Context, includeHidden bool, products []models.Product, ttl time.Duration) error
	InvalidateProducts(ctx context.Context) error

	Ping(ctx context.Context) error
	Close() error
}

type redisCacheService struct {
	client redis.UniversalClient
}

// ParseAddr strips a redis:// or rediss:// scheme so the address can be passed to redis.Options.
func ParseAddr(addr string) string {
	for _, scheme := range []string{"redis://", "rediss://"} {
		if strings.HasPrefix(addr, scheme) {
			return strings.TrimSuffix(strings.TrimPrefix(addr, scheme), "/")
		}
	}
	return addr
}

func NewRedisCacheService(addr, password string, db int, logger *zap.Logger) CacheService {
	parsedAddr := ParseAddr(addr)
	client := redis.NewClient(&redis.Options{
		Addr:     parsedAddr,
		Password: password,
		DB:       db,
	})

	// Redis being down at startup is not fatal; lookups degrade to misses.
	if err := client.Ping(context.Background()).Err(); err != nil {
		logger.Warn("redis ping failed on initialization", zap.String("addr", parsedAddr), zap.Error(err))
	} else {
		logger.Info("redis connected", zap.String("addr", parsedAddr))
	}
	return NewCacheService(client)
}

// NewCacheService wraps an existing client.
func NewCacheService(client redis.UniversalClient) CacheService {
	return &redisCacheService{client: client}
}

func categoriesKey(includeInactive bool) string {
	if includeInactive {
		return KeyAllCategories
	}
	return KeyActiveCategories
}

func productsKey(includeHidden bool) string {
	if includeHidden {
		return KeyAllProducts
	}
	return KeyVisibleProducts
}

func (r *redisCacheService) GetCategories(ctx context.Context, includeInactive bool) ([]models.Category, error) {
	var categories []models.Category
	hit, err := r.getJSON(ctx, categoriesKey(includeInactive), &categories)
	if err != nil || !hit {
		return nil, err
	}
	if categories == nil {
		categories = []models.Category{}
	}
	return categories, nil
}

func (r *redisCacheService) SetCategories(ctx context.Context, includeInactive bool, categories []models.Category, ttl time.Duration) error {
	return r.setJSON(ctx, categoriesKey(includeInactive), categories, ttl)
}

// InvalidateCategories also drops product lists, which embed category names.
func (r *redisCacheService) InvalidateCategories(ctx context.Context) error {
	return r.client.Del(ctx, KeyActiveCategories, KeyAllCategories, KeyVisibleProducts, KeyAllProducts).Err()
}

func (r *redisCacheService) GetProducts(ctx context.Context, includeHidden bool) ([]models.Product, error) {
	var products []models.Product
	hit, err := r.getJSON(ctx, productsKey(includeHidden), &products)
	if err != nil || !hit {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

func (r *redisCacheService) SetProducts(ctx context.Context, includeHidden bool, products []models.Product, ttl time.Duration) error {
	return r.setJSON(ctx, productsKey(includeHidden), products, ttl)
}

func (r *redisCacheService) InvalidateProducts(ctx context.Context) error {
	return r.client.Del(ctx, KeyVisibleProducts, KeyAllProducts).Err()
}

func (r *redisCacheService) Ping(ctx context.Context) error {
	return r.client.Ping(ctx).Err()
}

func (r *redisCacheService) Close() error {
	return r.client.Close()
}

func (r *redisCacheService) getJSON(ctx context.Context, key string, dst any) (bool, error) {
	data, err := r.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil // cache miss
		}
		return false, err
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, err
	}
	return true, nil
}

func (r *redisCacheService) setJSON(ctx context.Context, key string, v any, ttl time.Duration) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, key, data, ttl).Err()
}
