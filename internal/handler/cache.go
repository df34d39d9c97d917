package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/marcusball/class-scheduler/internal/catalog"
	"github.com/marcusball/class-scheduler/internal/domain"
	"github.com/redis/go-redis/v9"
)

func (h *Handler) cacheKey(options *domain.ScheduleOptions, maxResults int) (string, error) {
	digest, err := catalog.Digest(options)
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("schedules_%s_%d", digest, maxResults), nil
}

// cachedGeneration returns nil without an error on a cache miss. Redis failures
// are logged and treated as misses, the search can always be redone.
func (h *Handler) cachedGeneration(ctx context.Context, key string) *generation {
	if h.redisClient == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(h.config.Redis.OperationTimeout)*time.Second)
	defer cancel()

	data, err := h.redisClient.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			slog.Warn("cannot read cached schedules", "key", key, "error", err)
		}
		return nil
	}

	g := &generation{}
	if err := json.Unmarshal(data, g); err != nil {
		slog.Warn("cannot decode cached schedules", "key", key, "error", err)
		return nil
	}

	return g
}

func (h *Handler) cacheGeneration(ctx context.Context, key string, g *generation) {
	if h.redisClient == nil {
		return
	}

	data, err := json.Marshal(g)
	if err != nil {
		slog.Warn("cannot encode schedules for the cache", "error", err)
		return
	}

	ctx, cancel := context.WithTimeout(ctx, time.Duration(h.config.Redis.OperationTimeout)*time.Second)
	defer cancel()

	expiration := time.Duration(h.config.Scheduler.CacheExpiration) * time.Second
	if err := h.redisClient.Set(ctx, key, data, expiration).Err(); err != nil {
		slog.Warn("cannot cache schedules", "key", key, "error", err)
	}
}
