// Package cache stores translation namespaces per locale, in process or in Redis.
//
// Both backends implement [Cache], keyed by locale and namespace:
//
//   - Get(ctx, locale, namespace) (Record, error)
//   - Set(ctx, locale, namespace, record, ttl) error
//   - Delete, Has, Clear, Close
//
// TTL semantics for Set:
//   - Positive duration: entry expires after this duration
//   - Zero: use the cache's configured default TTL
//   - Negative: entry never expires
//
// # In-Memory Cache
//
// [NewMemory] keeps records as they are, function translations included, with
// TTL expiration and optional LRU eviction:
//
//	c := cache.NewMemory(cache.WithMaxEntries(500))
//	defer c.Close()
//
// # Redis Cache
//
// [NewRedis] shares namespaces between processes. Records are stored as JSON,
// so function translations are dropped:
//
//	client, err := cache.OpenRedis(ctx, os.Getenv("REDIS_URL"))
//	if err != nil {
//	    return err
//	}
//	c := cache.NewRedis(client, cache.WithPrefix("translations"))
//
// # Stampede Protection
//
// [GetOrSet] loads a namespace on a miss; concurrent misses for the same
// locale and namespace share one load. Each Memory or Redis value keeps its
// own in-flight set, so independent caches never share results.
// pkg/loaders.Cached builds a loader on top of it.
package cache
