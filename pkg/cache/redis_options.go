package cache

import "time"

// RedisOption configures the Redis cache.
type RedisOption func(*redisOptions)

type redisOptions struct {
	codec      Codec
	prefix     string
	defaultTTL time.Duration
}

func defaultRedisOptions() *redisOptions {
	return &redisOptions{
		codec:      JSONCodec{},
		prefix:     "translations",
		defaultTTL: time.Hour,
	}
}

// WithRedisDefaultTTL sets the expiration used when Set is called with a zero TTL.
// Default: 1 hour.
func WithRedisDefaultTTL(d time.Duration) RedisOption {
	return func(o *redisOptions) {
		o.defaultTTL = d
	}
}

// WithPrefix sets the key prefix. Keys are stored as "{prefix}:{locale}/{namespace}".
// Default: "translations". An empty prefix makes Clear flush the database.
func WithPrefix(prefix string) RedisOption {
	return func(o *redisOptions) {
		o.prefix = prefix
	}
}

// WithCodec replaces the JSON codec.
func WithCodec(c Codec) RedisOption {
	return func(o *redisOptions) {
		if c != nil {
			o.codec = c
		}
	}
}
