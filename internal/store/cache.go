package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	apperrors "internship-assistant/internal/common/errors"
	"internship-assistant/internal/common/logger"
	"internship-assistant/internal/models"

	"github.com/redis/go-redis/v9"
)

// CachedStore caches FindByID hits in Redis. Cache failures are logged and never surface.
type CachedStore[T any] struct {
	inner  Store[T]
	rdb    redis.Cmdable
	kind   models.EntityKind
	ttl    time.Duration
	logger logger.Logger
}

func NewCachedStore[T any](inner Store[T], rdb redis.Cmdable, kind models.EntityKind, ttl time.Duration, log logger.Logger) *CachedStore[T] {
	return &CachedStore[T]{
		inner:  inner,
		rdb:    rdb,
		kind:   kind,
		ttl:    ttl,
		logger: log.WithFields(map[string]interface{}{"component": "record-cache", "kind": string(kind)}),
	}
}

// CacheKey is the Redis key for one record.
func CacheKey(kind models.EntityKind, id int64) string {
	return fmt.Sprintf("assistant:record:%s:%d", kind, id)
}

// FindAll always reads through to the wrapped store.
func (c *CachedStore[T]) FindAll(ctx context.Context) ([]T, error) {
	return c.inner.FindAll(ctx)
}

func (c *CachedStore[T]) FindByID(ctx context.Context, id int64) (T, bool, error) {
	key := CacheKey(c.kind, id)

	raw, err := c.rdb.Get(ctx, key).Bytes()
	switch {
	case err == nil:
		var rec T
		jsonErr := json.Unmarshal(raw, &rec)
		if jsonErr == nil {
			return rec, true, nil
		}
		c.logger.Warn("discarding corrupt cache entry", map[string]interface{}{"key": key, "error": jsonErr})
	case errors.Is(err, redis.Nil):
		// miss
	default:
		c.logger.WithError(apperrors.NewCacheUnavailableError(err)).Warn("record cache unavailable", map[string]interface{}{"key": key})
	}

	rec, found, err := c.inner.FindByID(ctx, id)
	if err != nil || !found {
		return rec, found, err
	}

	if payload, jsonErr := json.Marshal(rec); jsonErr == nil {
		if setErr := c.rdb.Set(ctx, key, payload, c.ttl).Err(); setErr != nil {
			c.logger.Warn("record cache write failed", map[string]interface{}{"key": key, "error": setErr})
		}
	}
	return rec, true, nil
}
