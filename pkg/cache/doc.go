// Package cache provides a generic TTL key-value cache with in-memory
// and Redis backends, used by the resolver's optional lookup cache.
//
// Both backends implement the [Cache] interface. [GetOrSet] wraps any
// Cache with compute-on-miss semantics and singleflight stampede
// protection.
//
//	c := cache.NewMemory[string](cache.WithDefaultTTL(10 * time.Minute))
//	defer c.Close()
//
//	v, err := cache.GetOrSet(ctx, c, "key", func(ctx context.Context) (string, time.Duration, error) {
//	    return expensiveLookup(ctx)
//	})
package cache
