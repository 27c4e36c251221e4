// Package redis opens go-redis clients with pooling and startup retry
// defaults suited to long-running services.
//
// The returned client plugs directly into the cache package's Redis
// backend, which the resolver uses to share resolved identifiers across
// processes:
//
//	client, err := redis.Open(ctx, os.Getenv("REDIS_URL"))
//	if err != nil {
//	    return err
//	}
//	defer client.Close()
//
//	c := cache.NewRedis[string](client, nil, cache.WithPrefix("slugs"))
//	resolver := slugging.NewResolver(registry, store,
//	    slugging.WithCache(c, 10*time.Minute),
//	)
//
// Open pings the server before returning, retrying a configurable number
// of times with a growing wait between attempts, so a service starting
// alongside Redis does not fail on the first refused connection.
package redis
