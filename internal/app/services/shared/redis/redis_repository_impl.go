package redis

import (
	"context"
	"errors"
	"homevisit-service/internal/app/contracts"
	"homevisit-service/internal/pkg/exceptions"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

// Values are stored JSON encoded, so the scripts compare against the encoded form.
var (
	compareAndDeleteScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

	compareAndExpireScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("PEXPIRE", KEYS[1], ARGV[2])
end
return 0`)
)

type redisRepository struct {
	client *redis.Client
}

func NewRedisRepository(client *redis.Client) contracts.RedisRepository {
	return &redisRepository{client: client}
}

func (r *redisRepository) Delete(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	if err := r.client.Del(ctx, keys...).Err(); err != nil {
		return exceptions.ErrRedisDelete(err)
	}
	return nil
}

func (r *redisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	encoded, err := json.Marshal(value)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}
	if err := r.client.Set(ctx, key, encoded, exp).Err(); err != nil {
		return exceptions.ErrRedisSet(err)
	}
	return nil
}

// Get returns an empty string without error when the key does not exist.
func (r *redisRepository) Get(ctx context.Context, key string) (string, error) {
	data, err := r.client.Get(ctx, key).Result()
	switch {
	case errors.Is(err, redis.Nil):
		return "", nil
	case err != nil:
		return "", exceptions.ErrRedisGet(err, key)
	}
	return data, nil
}

func (r *redisRepository) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	encoded, err := json.Marshal(value)
	if err != nil {
		return false, exceptions.ErrCannotMarshalJSON(err)
	}
	acquired, err := r.client.SetNX(ctx, key, encoded, exp).Result()
	if err != nil {
		return false, exceptions.ErrRedisSet(err)
	}
	return acquired, nil
}

func (r *redisRepository) CompareAndDelete(ctx context.Context, key string, expected interface{}) (bool, error) {
	encoded, err := json.Marshal(expected)
	if err != nil {
		return false, exceptions.ErrCannotMarshalJSON(err)
	}
	deleted, err := compareAndDeleteScript.Run(ctx, r.client, []string{key}, string(encoded)).Int()
	if err != nil {
		return false, exceptions.ErrRedisDelete(err)
	}
	return deleted == 1, nil
}

func (r *redisRepository) CompareAndExpire(ctx context.Context, key string, expected interface{}, exp time.Duration) (bool, error) {
	encoded, err := json.Marshal(expected)
	if err != nil {
		return false, exceptions.ErrCannotMarshalJSON(err)
	}
	extended, err := compareAndExpireScript.Run(ctx, r.client, []string{key}, string(encoded), exp.Milliseconds()).Int()
	if err != nil {
		return false, exceptions.ErrRedisSet(err)
	}
	return extended == 1, nil
}
