package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/metrics"
)

// ErrCacheUnavailable возвращается при сбое обращения к Redis
var ErrCacheUnavailable = errors.New("slot cache: redis unavailable")

type cachedInterval struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// Cache кеш слотов на Redis с ограниченным TTL
type Cache struct {
	client  *goredis.Client
	metrics *metrics.Metrics
}

// New создает кеш поверх готового клиента Redis. metrics может быть nil.
func New(client *goredis.Client, m *metrics.Metrics) *Cache {
	return &Cache{client: client, metrics: m}
}

// GetSlots возвращает закешированный список слотов по ключу
func (c *Cache) GetSlots(ctx context.Context, key string) ([]domain.TimeInterval, bool, error) {
	payload, err := c.client.Get(ctx, key).Bytes()
	if err == goredis.Nil {
		if c.metrics != nil {
			c.metrics.CacheMissesTotal.WithLabelValues("redis").Inc()
		}
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: get %s: %v", ErrCacheUnavailable, key, err)
	}

	var cached []cachedInterval
	if err := json.Unmarshal(payload, &cached); err != nil {
		// Повреждённая запись равнозначна промаху
		return nil, false, nil
	}

	if c.metrics != nil {
		c.metrics.CacheHitsTotal.WithLabelValues("redis").Inc()
	}

	slots := make([]domain.TimeInterval, len(cached))
	for i, ci := range cached {
		slots[i] = domain.TimeInterval{Start: ci.Start, End: ci.End}
	}
	return slots, true, nil
}

// SetSlots сохраняет список слотов с ограниченным TTL
func (c *Cache) SetSlots(ctx context.Context, key string, slots []domain.TimeInterval, ttl time.Duration) error {
	cached := make([]cachedInterval, len(slots))
	for i, s := range slots {
		cached[i] = cachedInterval{Start: s.Start, End: s.End}
	}

	payload, err := json.Marshal(cached)
	if err != nil {
		return fmt.Errorf("%w: marshal %s: %v", ErrCacheUnavailable, key, err)
	}

	if err := c.client.Set(ctx, key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("%w: set %s: %v", ErrCacheUnavailable, key, err)
	}

	return nil
}

// DeleteByPrefix инвалидирует все ключи с данным префиксом через SCAN
func (c *Cache) DeleteByPrefix(ctx context.Context, prefix string) error {
	iter := c.client.Scan(ctx, 0, prefix+"*", 100).Iterator()

	keys := make([]string, 0)
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("%w: scan %s*: %v", ErrCacheUnavailable, prefix, err)
	}

	if len(keys) == 0 {
		return nil
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("%w: delete %d keys: %v", ErrCacheUnavailable, len(keys), err)
	}

	return nil
}
