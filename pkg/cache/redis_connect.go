package cache

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// ConnOption configures OpenRedis.
type ConnOption func(*connOptions)

type connOptions struct {
	poolSize      int
	retryAttempts int
	retryInterval time.Duration
	timeout       time.Duration
}

// WithPoolSize sets the maximum number of connections. Default: 10.
func WithPoolSize(n int) ConnOption {
	return func(o *connOptions) {
		o.poolSize = n
	}
}

// WithRetry configures connection attempts with linear backoff.
// Default: 3 attempts, 2 second base interval.
func WithRetry(attempts int, interval time.Duration) ConnOption {
	return func(o *connOptions) {
		o.retryAttempts = attempts
		o.retryInterval = interval
	}
}

// WithTimeout sets the dial, read and write timeouts. Default: 3 seconds.
func WithTimeout(d time.Duration) ConnOption {
	return func(o *connOptions) {
		o.timeout = d
	}
}

// OpenRedis connects to Redis and verifies the connection with PING.
// Supports redis:// and rediss:// (TLS) URLs.
func OpenRedis(ctx context.Context, url string, opts ...ConnOption) (redis.UniversalClient, error) {
	if url == "" {
		return nil, ErrEmptyConnectionURL
	}
	if !strings.HasPrefix(url, "redis://") && !strings.HasPrefix(url, "rediss://") {
		return nil, ErrFailedToParseURL
	}

	o := &connOptions{
		poolSize:      10,
		retryAttempts: 3,
		retryInterval: 2 * time.Second,
		timeout:       3 * time.Second,
	}
	for _, opt := range opts {
		opt(o)
	}

	redisOpts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseURL, err)
	}
	redisOpts.PoolSize = o.poolSize
	redisOpts.DialTimeout = o.timeout
	redisOpts.ReadTimeout = o.timeout
	redisOpts.WriteTimeout = o.timeout

	var lastErr error
	for i := range max(o.retryAttempts, 1) {
		client := redis.NewClient(redisOpts)
		if lastErr = client.Ping(ctx).Err(); lastErr == nil {
			return client, nil
		}
		_ = client.Close()

		select {
		case <-ctx.Done():
			return nil, errors.Join(ErrConnectionFailed, ctx.Err())
		case <-time.After(time.Duration(i+1) * o.retryInterval):
		}
	}

	return nil, errors.Join(ErrConnectionFailed, lastErr)
}

// Healthcheck returns a readiness check that pings Redis.
func Healthcheck(client redis.UniversalClient) func(context.Context) error {
	return func(ctx context.Context) error {
		if client == nil {
			return ErrHealthcheckFailed
		}
		if err := client.Ping(ctx).Err(); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
