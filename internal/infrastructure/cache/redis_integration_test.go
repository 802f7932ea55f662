//go:build integration

package cache_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"

	"github.com/jhoicas/techinventory-api/internal/domain/entity"
	"github.com/jhoicas/techinventory-api/internal/infrastructure/cache"
)

func newRedisCache(t *testing.T, ctx context.Context) *cache.RedisSnapshotCache {
	t.Helper()
	rdC, err := tcRedis.RunContainer(ctx, testcontainers.WithImage("redis:7-alpine"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	url, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)
	rdb, err := cache.NewRedisClient(ctx, url)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdb.Close() })

	return cache.NewRedisSnapshotCache(rdb, time.Minute)
}

func TestRedisSnapshotCache_CicloCompleto(t *testing.T) {
	ctx := context.Background()
	c := newRedisCache(t, ctx)

	_, gen, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "sin entrada inicial")
	assert.Zero(t, gen)

	snapshot := []entity.Product{{
		SKU: "LAP-1", Name: "ThinkPad", Category: "Laptops",
		PurchasePrice: decimal.RequireFromString("1200.50"), SalePrice: decimal.NewFromInt(1500),
		Stock: 3, ReorderThreshold: 5,
	}}
	require.NoError(t, c.Set(ctx, gen, snapshot))

	got, _, ok, err := c.Get(ctx)
	require.NoError(t, err)
	require.True(t, ok)
	require.Len(t, got, 1)
	assert.Equal(t, "LAP-1", got[0].SKU)
	assert.True(t, got[0].PurchasePrice.Equal(decimal.RequireFromString("1200.50")))

	require.NoError(t, c.Invalidate(ctx))
	_, next, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, gen+1, next)
}

func TestRedisSnapshotCache_SetConGeneracionVencidaNoPublica(t *testing.T) {
	ctx := context.Background()
	c := newRedisCache(t, ctx)

	_, gen, _, err := c.Get(ctx)
	require.NoError(t, err)
	// un movimiento confirma e invalida entre la lectura del almacén y el Set
	require.NoError(t, c.Invalidate(ctx))
	require.NoError(t, c.Set(ctx, gen, []entity.Product{{SKU: "A", Name: "Mouse", Stock: 10}}))

	_, _, ok, err := c.Get(ctx)
	require.NoError(t, err)
	assert.False(t, ok, "el snapshot viejo no se sirve")
}
