package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"sokoni/internal/models"
)

// CacheService wraps the redis client with JSON marshalling and key
// conventions. Balances that feed business decisions are never served from
// here; the cache holds read-only catalog rows and display data only.
type CacheService struct {
	client *redis.Client
	ttl    time.Duration
}

func NewCacheService(client *redis.Client, defaultTTL time.Duration) *CacheService {
	return &CacheService{
		client: client,
		ttl:    defaultTTL,
	}
}

// Base operations
func (s *CacheService) Set(ctx context.Context, key string, value interface{}) error {
	return s.SetWithTTL(ctx, key, value, s.ttl)
}

func (s *CacheService) SetWithTTL(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal cache value: %w", err)
	}
	return s.client.Set(ctx, key, data, ttl).Err()
}

func (s *CacheService) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	data, err := s.client.Get(ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			return false, nil
		}
		return false, fmt.Errorf("failed to get cache value: %w", err)
	}

	if err := json.Unmarshal(data, dest); err != nil {
		return false, fmt.Errorf("failed to unmarshal cache value: %w", err)
	}
	return true, nil
}

func (s *CacheService) Delete(ctx context.Context, keys ...string) error {
	return s.client.Del(ctx, keys...).Err()
}

// Key generation
func (s *CacheService) GenerateKey(entityType, keyType string, value interface{}) string {
	return fmt.Sprintf("%s:%s:%v", entityType, keyType, value)
}

// Package catalog caching
func (s *CacheService) CachePackages(ctx context.Context, activeOnly bool, packages []models.PointPackage) error {
	return s.Set(ctx, s.packagesKey(activeOnly), packages)
}

func (s *CacheService) GetPackages(ctx context.Context, activeOnly bool) ([]models.PointPackage, bool) {
	var packages []models.PointPackage
	found, err := s.Get(ctx, s.packagesKey(activeOnly), &packages)
	if err != nil || !found {
		return nil, false
	}
	return packages, true
}

func (s *CacheService) InvalidatePackages(ctx context.Context) error {
	return s.Delete(ctx, s.packagesKey(true), s.packagesKey(false))
}

func (s *CacheService) packagesKey(activeOnly bool) string {
	return s.GenerateKey("packages", "active", activeOnly)
}

// HealthCheck pings redis.
func (s *CacheService) HealthCheck(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("redis connection failed: %w", err)
	}
	return nil
}

func (s *CacheService) FlushAll(ctx context.Context) error {
	return s.client.FlushAll(ctx).Err()
}

func (s *CacheService) Close() error {
	return s.client.Close()
}
