// Package cache builds the Redis client used by the snapshot backend.
package cache

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"minisocial/internal/middleware"

	"github.com/redis/go-redis/v9"
	"github.com/redis/go-redis/v9/maintnotifications"
)

const defaultAddr = "localhost:6379"

type metricsHook struct{}

func (h metricsHook) DialHook(next redis.DialHook) redis.DialHook {
	return next
}

func (h metricsHook) ProcessHook(next redis.ProcessHook) redis.ProcessHook {
	return func(ctx context.Context, cmd redis.Cmder) error {
		err := next(ctx, cmd)
		if err != nil && !errors.Is(err, redis.Nil) {
			middleware.RedisErrors.WithLabelValues(cmd.Name()).Inc()
		}
		return err
	}
}

func (h metricsHook) ProcessPipelineHook(next redis.ProcessPipelineHook) redis.ProcessPipelineHook {
	return func(ctx context.Context, cmds []redis.Cmder) error {
		err := next(ctx, cmds)
		if err != nil && !errors.Is(err, redis.Nil) {
			middleware.RedisErrors.WithLabelValues("pipeline").Inc()
		}
		return err
	}
}

// ParseRedisURL splits a REDIS_URL-like string into its parts. It accepts a
// plain `host:port` or a `redis://` / `rediss://` URL; an empty string maps
// to the local default.
func ParseRedisURL(raw string) (addr, password string, db int, useTLS bool) {
	if raw == "" {
		return defaultAddr, "", 0, false
	}
	if !strings.HasPrefix(raw, "redis://") && !strings.HasPrefix(raw, "rediss://") {
		return raw, "", 0, false
	}

	u, err := url.Parse(raw)
	if err != nil {
		return raw, "", 0, false
	}
	addr = u.Host
	useTLS = u.Scheme == "rediss"
	if u.User != nil {
		if pw, ok := u.User.Password(); ok {
			password = pw
		}
	}
	if p := strings.Trim(u.Path, "/"); p != "" {
		if n, err := strconv.Atoi(p); err == nil {
			db = n
		}
	}
	return addr, password, db, useTLS
}

// NewClient builds a redis client from raw and verifies it with a ping.
// Maintenance notifications are disabled to avoid handshake attempts on
// servers that don't implement the subcommand.
func NewClient(ctx context.Context, raw string) (*redis.Client, error) {
	var opts *redis.Options
	addr, password, db, useTLS := ParseRedisURL(raw)
	if useTLS {
		parsed, err := redis.ParseURL(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid REDIS_URL: %w", err)
		}
		opts = parsed
	} else {
		opts = &redis.Options{Addr: addr, Password: password, DB: db}
	}
	opts.MaintNotificationsConfig = &maintnotifications.Config{Mode: maintnotifications.ModeDisabled}

	client := redis.NewClient(opts)
	client.AddHook(metricsHook{})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping %s: %w", opts.Addr, err)
	}

	middleware.Logger.Info("Redis connected successfully")
	return client, nil
}
