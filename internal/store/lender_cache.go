// internal/store/lender_cache.go
package store

import (
	"context"
	"encoding/json"
	"time"

	"credit-pipeline/internal/common/logger"
	"credit-pipeline/internal/models"

	"github.com/redis/go-redis/v9"
)

const lenderCacheKey = "lenders:criteria"

// LenderCache keeps the lender catalog in Redis with an explicit TTL so
// catalog edits show up without a restart. Cache problems degrade to the
// database, never fail a lookup.
type LenderCache struct {
	client *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewLenderCache(client *redis.Client, ttl time.Duration, log logger.Logger) *LenderCache {
	return &LenderCache{
		client: client,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "lender-cache"}),
	}
}

// Get returns the cached catalog, or false on miss or any cache error.
func (c *LenderCache) Get(ctx context.Context) ([]models.LenderCriteria, bool) {
	val, err := c.client.Get(ctx, lenderCacheKey).Result()
	if err != nil {
		if err != redis.Nil {
			c.logger.Warn("lender cache read failed", map[string]interface{}{
				"error": err.Error(),
			})
		}
		return nil, false
	}

	var criteria []models.LenderCriteria
	if err := json.Unmarshal([]byte(val), &criteria); err != nil {
		c.logger.Warn("lender cache corrupt, ignoring", map[string]interface{}{
			"error": err.Error(),
		})
		return nil, false
	}
	return criteria, true
}

// Set stores the catalog with the configured TTL.
func (c *LenderCache) Set(ctx context.Context, criteria []models.LenderCriteria) error {
	data, err := json.Marshal(criteria)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, lenderCacheKey, data, c.ttl).Err()
}
