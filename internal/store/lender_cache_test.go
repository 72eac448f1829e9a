// internal/store/lender_cache_test.go
package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"credit-pipeline/internal/common/logger"
	"credit-pipeline/internal/models"

	miniredis "github.com/alicebob/miniredis/v2"
	redismock "github.com/go-redis/redismock/v9"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newCacheForTest(t *testing.T, ttl time.Duration) (*LenderCache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	return NewLenderCache(client, ttl, logger.NewTestLogger(t)), mr
}

func TestLenderCacheRoundTrip(t *testing.T) {
	cache, _ := newCacheForTest(t, time.Minute)
	ctx := context.Background()

	_, ok := cache.Get(ctx)
	assert.False(t, ok)

	criteria := []models.LenderCriteria{
		{
			ID:               "fin-001",
			Nombre:           "Financiera Uno",
			TipoPersona:      "moral",
			MontoMinimo:      100000,
			MontoMaximo:      5000000,
			DepositosMinimos: 50000,
			SaldosPromediosM: 20000,
			ScoreBuroMinimo:  600,
		},
	}
	require.NoError(t, cache.Set(ctx, criteria))

	got, ok := cache.Get(ctx)
	require.True(t, ok)
	assert.Equal(t, criteria, got)
}

func TestLenderCacheExpires(t *testing.T) {
	cache, mr := newCacheForTest(t, 30*time.Second)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, []models.LenderCriteria{{ID: "fin-001"}}))

	mr.FastForward(31 * time.Second)

	_, ok := cache.Get(ctx)
	assert.False(t, ok)
}

func TestLenderCacheReadErrorIsMiss(t *testing.T) {
	client, mock := redismock.NewClientMock()
	mock.ExpectGet("lenders:criteria").SetErr(errors.New("connection refused"))

	cache := NewLenderCache(client, time.Minute, logger.NewTestLogger(t))
	_, ok := cache.Get(context.Background())
	assert.False(t, ok)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLenderCacheCorruptValueIsMiss(t *testing.T) {
	cache, mr := newCacheForTest(t, time.Minute)

	require.NoError(t, mr.Set("lenders:criteria", "{not json"))

	_, ok := cache.Get(context.Background())
	assert.False(t, ok)
}
