package cache

import (
	"fmt"

	"github.com/coreledger/erp-backend/internal/core/domain"
	"github.com/dgraph-io/ristretto"
)

// CurrencyCache is a read-through cache in front of the currency registry,
// keyed by tenant id and uppercase currency code. Rate resolutions are never
// cached here: their as-of date dimension makes invalidation unsound.
type CurrencyCache struct {
	cache *ristretto.Cache
}

// NewCurrencyCache creates a cache sized for maxItems currency entries.
func NewCurrencyCache(maxItems int64) (*CurrencyCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10 * maxItems,
		MaxCost:     maxItems,
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("create currency cache failed: %w", err)
	}
	return &CurrencyCache{cache: c}, nil
}

// Get returns the cached currency for the tenant/code pair, if present.
func (c *CurrencyCache) Get(tenantID, code string) (domain.Currency, bool) {
	if v, ok := c.cache.Get(toKey(tenantID, code)); ok {
		curr, ok := v.(domain.Currency)
		return curr, ok
	}
	return domain.Currency{}, false
}

// Set stores a currency under its tenant/code pair.
func (c *CurrencyCache) Set(tenantID, code string, currency domain.Currency) {
	c.cache.Set(toKey(tenantID, code), currency, 1)
}

// Invalidate drops the cached entry for the tenant/code pair. Called on
// every registry write touching that code.
func (c *CurrencyCache) Invalidate(tenantID, code string) {
	c.cache.Del(toKey(tenantID, code))
}

// Close releases the underlying cache resources.
func (c *CurrencyCache) Close() { c.cache.Close() }

func toKey(tenantID, code string) string { return tenantID + ":" + code }
