package database

import (
	"context"
	"fmt"
	"homevisit-service/internal/app/config"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

const redisPingTimeout = 5 * time.Second

func NewRedisClient(driverConfig *config.DriverConfig) *redis.Client {
	redisConfig := driverConfig.Redis
	client := redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%s", redisConfig.Host, redisConfig.Port),
		Password: redisConfig.Password,
		DB:       redisConfig.DB,
		PoolSize: redisConfig.PoolSize,
	})

	ctx, cancel := context.WithTimeout(context.Background(), redisPingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Fatalf("Could not connect to Redis at %s: %v", client.Options().Addr, err)
	}
	log.Println("Successfully connected to redis")

	return client
}
