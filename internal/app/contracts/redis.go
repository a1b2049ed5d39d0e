package contracts

import (
	"context"
	"time"
)

// RedisRepository stores JSON encoded values.
type RedisRepository interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value interface{}, exp time.Duration) error
	Delete(ctx context.Context, keys ...string) error
	TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error)
	// CompareAndDelete and CompareAndExpire act only while key still holds expected.
	CompareAndDelete(ctx context.Context, key string, expected interface{}) (bool, error)
	CompareAndExpire(ctx context.Context, key string, expected interface{}, exp time.Duration) (bool, error)
}
