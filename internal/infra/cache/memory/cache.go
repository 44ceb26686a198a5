package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/m04kA/SMC-SchedulingService/internal/domain"
	"github.com/m04kA/SMC-SchedulingService/pkg/metrics"
)

type entry struct {
	slots     []domain.TimeInterval
	expiresAt time.Time
}

// Cache потокобезопасный in-memory кеш слотов с TTL
// Используется в тестах и в конфигурациях без Redis
type Cache struct {
	mu      sync.RWMutex
	entries map[string]entry
	metrics *metrics.Metrics
}

// New создает пустой кеш. metrics может быть nil.
func New(m *metrics.Metrics) *Cache {
	return &Cache{
		entries: make(map[string]entry),
		metrics: m,
	}
}

// GetSlots возвращает закешированный список слотов по ключу
func (c *Cache) GetSlots(_ context.Context, key string) ([]domain.TimeInterval, bool, error) {
	c.mu.RLock()
	e, ok := c.entries[key]
	c.mu.RUnlock()

	if !ok || time.Now().After(e.expiresAt) {
		if c.metrics != nil {
			c.metrics.CacheMissesTotal.WithLabelValues("memory").Inc()
		}
		return nil, false, nil
	}

	if c.metrics != nil {
		c.metrics.CacheHitsTotal.WithLabelValues("memory").Inc()
	}

	slots := make([]domain.TimeInterval, len(e.slots))
	copy(slots, e.slots)
	return slots, true, nil
}

// SetSlots сохраняет список слотов с ограниченным TTL
func (c *Cache) SetSlots(_ context.Context, key string, slots []domain.TimeInterval, ttl time.Duration) error {
	stored := make([]domain.TimeInterval, len(slots))
	copy(stored, slots)

	c.mu.Lock()
	c.entries[key] = entry{slots: stored, expiresAt: time.Now().Add(ttl)}
	c.mu.Unlock()

	return nil
}

// DeleteByPrefix инвалидирует все ключи с данным префиксом
func (c *Cache) DeleteByPrefix(_ context.Context, prefix string) error {
	c.mu.Lock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
	c.mu.Unlock()

	return nil
}
