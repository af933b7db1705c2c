package memory

import (
	"context"
	"sync"
	"time"

	"github.com/Gunvolt24/wb_cart/internal/domain"
	"github.com/Gunvolt24/wb_cart/pkg/metrics"
)

// ProductCache — LRU-кэш атрибутов товара с TTL. Потокобезопасен.
// Остатки сюда не попадают: кэшируется только каталог.
type ProductCache struct {
	mu  sync.Mutex
	lru *lru[int, domain.Product]
}

// NewProductCache — конструктор; capacity <= 0 → 1, ttl <= 0 → без истечения.
func NewProductCache(capacity int, ttl time.Duration) *ProductCache {
	return &ProductCache{lru: newLRU[int, domain.Product](capacity, ttl)}
}

// Get — (product, true) при попадании, (zero, false) при промахе или истечении.
func (c *ProductCache) Get(_ context.Context, id int) (domain.Product, bool) {
	c.mu.Lock()
	p, hit, expired := c.lru.get(id)
	size := c.lru.len()
	c.mu.Unlock()

	switch {
	case hit:
		metrics.CacheOps.WithLabelValues("hit").Inc()
	case expired:
		metrics.CacheOps.WithLabelValues(string(reasonExpired)).Inc()
		metrics.CacheSize.Set(float64(size))
	default:
		metrics.CacheOps.WithLabelValues("miss").Inc()
	}
	return p, hit
}

// Set — сохранить или обновить товар. Товар без положительного ID не кэшируется.
func (c *ProductCache) Set(_ context.Context, product domain.Product) {
	if product.ID <= 0 {
		return
	}

	c.mu.Lock()
	dropped := c.lru.put(product.ID, product)
	size := c.lru.len()
	c.mu.Unlock()

	for _, r := range dropped {
		metrics.CacheOps.WithLabelValues(string(r)).Inc()
	}
	metrics.CacheSize.Set(float64(size))
}

// Len — текущее число записей.
func (c *ProductCache) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lru.len()
}
