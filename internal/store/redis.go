package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/estately-app/estately-backend/pkg/config"
	"github.com/redis/go-redis/v9"
)

type redisCmdable interface {
	Ping(context.Context) *redis.StatusCmd
	Get(context.Context, string) *redis.StringCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
	Del(context.Context, ...string) *redis.IntCmd
}

// Redis binds the session keys to a shared Redis instance so multiple
// frontend instances can serve the same persisted session.
type Redis struct {
	store     redisCmdable
	namespace string
	raw       *redis.Client
}

// NewRedis bootstraps a Redis-backed store and verifies connectivity.
func NewRedis(ctx context.Context, cfg config.RedisConfig, namespace string) (*Redis, error) {
	opts, err := optionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		return nil, unavailable("ping", opts.Addr, err)
	}
	if namespace == "" {
		namespace = "estately"
	}
	return &Redis{store: raw, namespace: namespace, raw: raw}, nil
}

func optionsFromConfig(cfg config.RedisConfig) (*redis.Options, error) {
	if cfg.URL == "" && cfg.Address == "" {
		return nil, errors.New("store: redis url or address is required")
	}
	var opts *redis.Options
	if cfg.URL != "" {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("store: parsing redis url: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{
			Addr:     cfg.Address,
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	}
	if opts.PoolSize == 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if opts.MinIdleConns == 0 {
		opts.MinIdleConns = cfg.MinIdleConns
	}
	if opts.DialTimeout == 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	if opts.ReadTimeout == 0 {
		opts.ReadTimeout = cfg.ReadTimeout
	}
	if opts.WriteTimeout == 0 {
		opts.WriteTimeout = cfg.WriteTimeout
	}
	return opts, nil
}

func (r *Redis) key(key string) string {
	return strings.Join([]string{r.namespace, "session", key}, ":")
}

func (r *Redis) Get(ctx context.Context, key string) (string, error) {
	value, err := r.store.Get(ctx, r.key(key)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrNotFound
		}
		return "", unavailable("get", key, err)
	}
	return value, nil
}

func (r *Redis) Set(ctx context.Context, key, value string) error {
	if err := r.store.Set(ctx, r.key(key), value, 0).Err(); err != nil {
		return unavailable("set", key, err)
	}
	return nil
}

func (r *Redis) Remove(ctx context.Context, key string) error {
	if err := r.store.Del(ctx, r.key(key)).Err(); err != nil {
		return unavailable("remove", key, err)
	}
	return nil
}

// Ping reports whether the Redis connection is healthy.
func (r *Redis) Ping(ctx context.Context) error {
	if err := r.store.Ping(ctx).Err(); err != nil {
		return unavailable("ping", "", err)
	}
	return nil
}

// Close shuts down the underlying connection pool.
func (r *Redis) Close() error {
	if r.raw == nil {
		return nil
	}
	return r.raw.Close()
}
