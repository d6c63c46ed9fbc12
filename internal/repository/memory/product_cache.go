package memory

import (
	"time"

	"fashion-chatbot-be/internal/entity"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// ProductCache keeps recently resolved catalog products. A cached nil marks
// an id known to be absent.
type ProductCache struct {
	cache *cache.Cache
}

func NewProductCache(ttl time.Duration) *ProductCache {
	return &ProductCache{
		cache: cache.New(ttl, 2*ttl),
	}
}

func (c *ProductCache) Get(id uuid.UUID) (*entity.Product, bool) {
	if x, found := c.cache.Get(id.String()); found {
		return x.(*entity.Product), true
	}
	return nil, false
}

func (c *ProductCache) Set(id uuid.UUID, product *entity.Product) {
	c.cache.Set(id.String(), product, cache.DefaultExpiration)
}

func (c *ProductCache) Invalidate(id uuid.UUID) {
	c.cache.Delete(id.String())
}
