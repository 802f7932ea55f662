// Package cache implementa la caché del snapshot del catálogo.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/jhoicas/techinventory-api/internal/application/catalog"
	"github.com/jhoicas/techinventory-api/internal/domain/entity"
)

const (
	// GenerationKey contador que Invalidate incrementa.
	GenerationKey = "techinventory:catalog:generation"
	// SnapshotKeyPrefix prefijo de las claves de snapshot; el sufijo es la generación.
	SnapshotKeyPrefix = "techinventory:catalog:snapshot"
)

// SnapshotKey clave del snapshot de la generación gen.
func SnapshotKey(gen int64) string {
	return fmt.Sprintf("%s:%d", SnapshotKeyPrefix, gen)
}

var _ catalog.SnapshotCache = (*RedisSnapshotCache)(nil)

// NewRedisClient crea y valida la conexión a partir de REDIS_URL.
func NewRedisClient(ctx context.Context, redisURL string) (*redis.Client, error) {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("parse REDIS_URL: %w", err)
	}
	rdb := redis.NewClient(opts)
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}
	return rdb, nil
}

// RedisSnapshotCache guarda el snapshot serializado en JSON con TTL, bajo una clave por generación.
// Las claves de generaciones viejas no se vuelven a leer y expiran solas.
type RedisSnapshotCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisSnapshotCache construye la caché.
func NewRedisSnapshotCache(rdb *redis.Client, ttl time.Duration) *RedisSnapshotCache {
	return &RedisSnapshotCache{rdb: rdb, ttl: ttl}
}

// Get ok=false si no hay snapshot para la generación vigente; gen se devuelve igual.
func (c *RedisSnapshotCache) Get(ctx context.Context) ([]entity.Product, int64, bool, error) {
	gen, err := generation(ctx, c.rdb)
	if err != nil {
		return nil, 0, false, err
	}
	raw, err := c.rdb.Get(ctx, SnapshotKey(gen)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, gen, false, nil
		}
		return nil, 0, false, fmt.Errorf("redis get snapshot: %w", err)
	}
	var products []entity.Product
	if err := json.Unmarshal(raw, &products); err != nil {
		return nil, 0, false, fmt.Errorf("decode snapshot: %w", err)
	}
	return products, gen, true, nil
}

// Set guarda el snapshot solo si gen sigue siendo la generación vigente (WATCH/MULTI).
func (c *RedisSnapshotCache) Set(ctx context.Context, gen int64, products []entity.Product) error {
	raw, err := json.Marshal(products)
	if err != nil {
		return fmt.Errorf("encode snapshot: %w", err)
	}
	err = c.rdb.Watch(ctx, func(tx *redis.Tx) error {
		current, err := generation(ctx, tx)
		if err != nil {
			return err
		}
		if current != gen {
			return nil
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, SnapshotKey(gen), raw, c.ttl)
			return nil
		})
		return err
	}, GenerationKey)
	if errors.Is(err, redis.TxFailedErr) {
		// hubo una invalidación entre la lectura y el EXEC
		return nil
	}
	if err != nil {
		return fmt.Errorf("redis set snapshot: %w", err)
	}
	return nil
}

func (c *RedisSnapshotCache) Invalidate(ctx context.Context) error {
	if err := c.rdb.Incr(ctx, GenerationKey).Err(); err != nil {
		return fmt.Errorf("redis incr generation: %w", err)
	}
	return nil
}

// getter lo cumplen *redis.Client y *redis.Tx.
type getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// generation lee el contador; 0 si nunca se invalidó.
func generation(ctx context.Context, cmd getter) (int64, error) {
	gen, err := cmd.Get(ctx, GenerationKey).Int64()
	if errors.Is(err, redis.Nil) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("redis get generation: %w", err)
	}
	return gen, nil
}

// Ping estado de la conexión para /health.
func (c *RedisSnapshotCache) Ping(ctx context.Context) error {
	return c.rdb.Ping(ctx).Err()
}
