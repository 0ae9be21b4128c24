package redisclient

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/eduzap/eduzap/cmd/config"
	"github.com/redis/go-redis/v9"
)

// ErrDisabled is returned by Ping when no Redis host is configured.
var ErrDisabled = errors.New("redis not configured")

var (
	mu     sync.RWMutex
	client *redis.Client
)

// New connects the shared client and pings it. An empty host leaves the
// client unset, which turns Redis-backed stores into no-ops.
func New(cfg *config.Config) error {
	if cfg == nil {
		return fmt.Errorf("nil config provided")
	}
	if cfg.Redis.Host == "" {
		Set(nil)
		return nil
	}

	addr := fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
	c := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    cfg.Redis.Password,
		DB:          cfg.Redis.DB,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := c.Ping(ctx).Err(); err != nil {
		_ = c.Close()
		return fmt.Errorf("unable to ping redis at %s: %w", addr, err)
	}

	Set(c)
	return nil
}

func Get() *redis.Client {
	mu.RLock()
	defer mu.RUnlock()
	return client
}

// Set installs c as the shared client; tests use it to point at a fake or
// to clear the client.
func Set(c *redis.Client) {
	mu.Lock()
	client = c
	mu.Unlock()
}

// Ping checks the shared client.
func Ping(ctx context.Context) error {
	c := Get()
	if c == nil {
		return ErrDisabled
	}
	return c.Ping(ctx).Err()
}

func Close() error {
	mu.Lock()
	c := client
	client = nil
	mu.Unlock()
	if c == nil {
		return nil
	}
	return c.Close()
}
