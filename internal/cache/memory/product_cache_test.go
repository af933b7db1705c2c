package memory

import (
	"context"
	"testing"
	"time"

	"github.com/Gunvolt24/wb_cart/internal/domain"
)

func newProduct(id int) domain.Product {
	return domain.Product{ID: id, Title: "x", Price: 10}
}

// fakeClock — управляемое время для TTL.
type fakeClock struct{ t time.Time }

func (f *fakeClock) now() time.Time          { return f.t }
func (f *fakeClock) advance(d time.Duration) { f.t = f.t.Add(d) }

func newTestCache(capacity int, ttl time.Duration) (*ProductCache, *fakeClock) {
	clk := &fakeClock{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := NewProductCache(capacity, ttl)
	c.lru.now = clk.now
	return c, clk
}

func TestSetGet_HitMiss(t *testing.T) {
	c, _ := newTestCache(2, 5*time.Minute)
	ctx := context.Background()

	if _, ok := c.Get(ctx, 1); ok {
		t.Fatalf("expected miss before Set")
	}

	c.Set(ctx, newProduct(1))
	got, ok := c.Get(ctx, 1)
	if !ok || got.ID != 1 {
		t.Fatalf("expected hit for id=1")
	}
}

func TestSet_UpdatesExisting(t *testing.T) {
	c, _ := newTestCache(2, 0)
	ctx := context.Background()

	c.Set(ctx, newProduct(1))
	c.Set(ctx, domain.Product{ID: 1, Title: "renamed", Price: 12})

	got, _ := c.Get(ctx, 1)
	if got.Title != "renamed" || c.Len() != 1 {
		t.Fatalf("update must replace value in place: %+v len=%d", got, c.Len())
	}
}

func TestTTL_Expiry(t *testing.T) {
	c, clk := newTestCache(2, time.Minute)
	ctx := context.Background()

	c.Set(ctx, newProduct(7))
	clk.advance(59 * time.Second)
	if _, ok := c.Get(ctx, 7); !ok {
		t.Fatalf("expected hit before TTL")
	}
	clk.advance(2 * time.Second)
	if _, ok := c.Get(ctx, 7); ok {
		t.Fatalf("expected miss after TTL expires")
	}
	if c.Len() != 0 {
		t.Fatalf("expired entry must be removed, len=%d", c.Len())
	}
}

func TestSet_PrunesExpiredTail(t *testing.T) {
	c, clk := newTestCache(3, time.Minute)
	ctx := context.Background()

	c.Set(ctx, newProduct(1))
	c.Set(ctx, newProduct(2))
	clk.advance(2 * time.Minute)
	c.Set(ctx, newProduct(3))

	if c.Len() != 1 {
		t.Fatalf("expired entries must be pruned on Set, len=%d", c.Len())
	}
}

func TestLRUEviction(t *testing.T) {
	c, _ := newTestCache(2, 0) // 0 = без TTL
	ctx := context.Background()

	c.Set(ctx, newProduct(1))
	c.Set(ctx, newProduct(2))
	// 1 сделать «свежим»
	if _, ok := c.Get(ctx, 1); !ok {
		t.Fatalf("expected hit for 1")
	}
	c.Set(ctx, newProduct(3))

	if _, ok := c.Get(ctx, 2); ok {
		t.Fatalf("expected 2 to be evicted")
	}
	if _, ok := c.Get(ctx, 1); !ok || c.Len() != 2 {
		t.Fatalf("expected 1 & 3 to stay in cache")
	}
}

func TestSet_IgnoresInvalidID(t *testing.T) {
	c := NewProductCache(0, 0)
	c.Set(context.Background(), domain.Product{})
	if c.Len() != 0 {
		t.Fatalf("product without id must not be cached")
	}
}
