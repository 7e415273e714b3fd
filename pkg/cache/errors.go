package cache

import "errors"

// Sentinel errors for cache operations.
var (
	// ErrNotFound is returned when a namespace is not cached or has expired.
	ErrNotFound = errors.New("cache: entry not found")

	// ErrClosed is returned when an operation is attempted on a closed cache.
	ErrClosed = errors.New("cache: closed")

	// ErrMarshal is returned when a record cannot be serialized.
	ErrMarshal = errors.New("cache: failed to marshal record")

	// ErrUnmarshal is returned when stored bytes cannot be decoded.
	ErrUnmarshal = errors.New("cache: failed to unmarshal record")

	ErrEmptyConnectionURL = errors.New("cache: empty redis connection URL")
	ErrFailedToParseURL   = errors.New("cache: failed to parse redis connection URL")
	ErrConnectionFailed   = errors.New("cache: failed to connect to redis")
	ErrHealthcheckFailed  = errors.New("cache: redis healthcheck failed")
)
