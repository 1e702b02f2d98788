package cache

import (
	"context"
	"time"

	"hotel-booking/pkg/utils"

	"github.com/redis/go-redis/v9"
)

// InitRedis instantiates a Redis client from config. If the server cannot be
// reached at startup the function returns nil and callers degrade gracefully
// by disabling the availability cache.
func InitRedis(config utils.RedisConfig) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr:     config.Addr,
		Password: config.Password,
		DB:       config.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}

	return client
}
