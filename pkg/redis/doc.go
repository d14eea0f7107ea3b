// Package redis connects to Redis with github.com/redis/go-redis/v9 for the
// session store.
//
//	cfg, err := config.Load[redis.Config]()
//	client, err := redis.Connect(ctx, cfg)
//	defer client.Close()
//
//	store := session.NewRedisStore(client)
//
// Connect retries the first ping so the application can start before the
// Redis container is ready. Errors are joined with the sentinels in
// errors.go.
package redis
