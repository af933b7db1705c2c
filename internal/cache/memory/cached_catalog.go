package memory

import (
	"context"
	"strconv"

	"github.com/Gunvolt24/wb_cart/internal/domain"
	"github.com/Gunvolt24/wb_cart/internal/ports"
	"golang.org/x/sync/singleflight"
)

// Проверка, что CachedCatalog удовлетворяет интерфейсу ProductCatalog.
var _ ports.ProductCatalog = (*CachedCatalog)(nil)

// CachedCatalog — каталог с кэшем: при промахе идём в next и кладём ответ в кэш.
// Ошибки next не кэшируются. Одновременные промахи по одному товару схлопываются в один запрос.
type CachedCatalog struct {
	next  ports.ProductCatalog
	cache *ProductCache
	sf    singleflight.Group
}

// NewCachedCatalog — декоратор next с кэшем cache.
func NewCachedCatalog(next ports.ProductCatalog, cache *ProductCache) *CachedCatalog {
	return &CachedCatalog{next: next, cache: cache}
}

// GetProduct — товар из кэша; при промахе один запрос в next на все одновременные вызовы.
func (c *CachedCatalog) GetProduct(ctx context.Context, productID int) (domain.Product, error) {
	if p, ok := c.cache.Get(ctx, productID); ok {
		return p, nil
	}

	v, err, _ := c.sf.Do("product:"+strconv.Itoa(productID), func() (interface{}, error) {
		p, err := c.next.GetProduct(ctx, productID)
		if err != nil {
			return nil, err
		}
		c.cache.Set(ctx, p)
		return p, nil
	})
	if err != nil {
		return domain.Product{}, err
	}
	return v.(domain.Product), nil
}
