package contracts

import (
	"context"
	"time"
)

// LockerService hands out expiring locks. TryLock returns the owner token that
// Unlock and Refresh must present.
type LockerService interface {
	TryLock(ctx context.Context, key string, expiration time.Duration) (acquired bool, token string, err error)
	Unlock(ctx context.Context, key, token string) error
	Refresh(ctx context.Context, key, token string, expiration time.Duration) error
}
