// internal/store/catalog.go
package store

import (
	"context"

	"credit-pipeline/internal/common/logger"
	"credit-pipeline/internal/models"
)

// CachedCatalog serves lender criteria cache-aside: Redis first, then
// PostgreSQL with a best-effort refill.
type CachedCatalog struct {
	cache  *LenderCache
	store  *LenderStore
	logger logger.Logger
}

func NewCachedCatalog(cache *LenderCache, store *LenderStore, log logger.Logger) *CachedCatalog {
	return &CachedCatalog{
		cache:  cache,
		store:  store,
		logger: log.WithFields(map[string]interface{}{"component": "lender-catalog"}),
	}
}

func (c *CachedCatalog) ListCriteria(ctx context.Context) ([]models.LenderCriteria, error) {
	if criteria, ok := c.cache.Get(ctx); ok {
		return criteria, nil
	}

	criteria, err := c.store.ListCriteria(ctx)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Set(ctx, criteria); err != nil {
		c.logger.Warn("lender cache refill failed", map[string]interface{}{
			"error": err.Error(),
		})
	}
	return criteria, nil
}
