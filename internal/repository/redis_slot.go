package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nikolayk812/storefront-cart/internal/config"
	"github.com/nikolayk812/storefront-cart/internal/port"
	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "cart:slot:"

type cmdable interface {
	Ping(context.Context) *redis.StatusCmd
	Get(context.Context, string) *redis.StringCmd
	Set(context.Context, string, any, time.Duration) *redis.StatusCmd
}

type RedisSlot struct {
	store cmdable
	raw   *redis.Client
	ttl   time.Duration
}

// NewRedisSlot connects using cfg and verifies the connection with a ping.
func NewRedisSlot(ctx context.Context, cfg config.RedisConfig) (*RedisSlot, error) {
	opts, err := redisOptions(cfg)
	if err != nil {
		return nil, err
	}

	raw := redis.NewClient(opts)
	if err := raw.Ping(ctx).Err(); err != nil {
		_ = raw.Close()
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	return &RedisSlot{store: raw, raw: raw, ttl: cfg.TTL}, nil
}

func redisOptions(cfg config.RedisConfig) (*redis.Options, error) {
	if cfg.URL == "" && cfg.Addr == "" {
		return nil, errors.New("redis url or address is required")
	}

	var opts *redis.Options
	if cfg.URL != "" {
		parsed, err := redis.ParseURL(cfg.URL)
		if err != nil {
			return nil, fmt.Errorf("parsing redis url: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{
			Addr:     cfg.Addr,
			Password: cfg.Password,
			DB:       cfg.DB,
		}
	}

	if opts.PoolSize == 0 {
		opts.PoolSize = cfg.PoolSize
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

func (r *RedisSlot) Read(ctx context.Context, key string) ([]byte, error) {
	data, err := r.store.Get(ctx, RedisKey(key)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, port.ErrSlotEmpty
		}
		return nil, fmt.Errorf("redis.Get: %w", err)
	}
	return data, nil
}

func (r *RedisSlot) Write(ctx context.Context, key string, data []byte) error {
	if err := r.store.Set(ctx, RedisKey(key), data, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis.Set: %w", err)
	}
	return nil
}

func (r *RedisSlot) Ping(ctx context.Context) error {
	return r.store.Ping(ctx).Err()
}

func (r *RedisSlot) Close() error {
	if r.raw == nil {
		return nil
	}
	return r.raw.Close()
}

func RedisKey(key string) string {
	return redisKeyPrefix + key
}
