package locker

import (
	"context"
	"fmt"
	"homevisit-service/internal/app/contracts"
	"homevisit-service/internal/pkg/exceptions"
	"sync"
	"time"

	"github.com/google/uuid"
)

type heldLock struct {
	value     string
	expiresAt time.Time
}

type memoryLockService struct {
	mu    sync.Mutex
	locks map[string]heldLock
	now   func() time.Time
}

// NewMemoryLockService keeps locks inside the process. It is used with the
// memory store, where a single instance serves every request.
func NewMemoryLockService() contracts.LockerService {
	return &memoryLockService{
		locks: make(map[string]heldLock),
		now:   time.Now,
	}
}

func (s *memoryLockService) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if held, ok := s.locks[key]; ok && now.Before(held.expiresAt) {
		return false, "", nil
	}
	value := uuid.NewString()
	s.locks[key] = heldLock{value: value, expiresAt: now.Add(expiration)}
	return true, value, nil
}

func (s *memoryLockService) Unlock(ctx context.Context, key, lockValue string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	held, ok := s.locks[key]
	if !ok {
		return nil
	}
	if held.value != lockValue {
		return exceptions.ErrRedisUnlock(fmt.Errorf("lock not owned by this client"))
	}
	delete(s.locks, key)
	return nil
}

func (s *memoryLockService) Refresh(ctx context.Context, key, lockValue string, expiration time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	held, ok := s.locks[key]
	if !ok || held.value != lockValue || !s.now().Before(held.expiresAt) {
		return exceptions.ErrRedisUnlock(fmt.Errorf("lock %s expired before refresh", key))
	}
	held.expiresAt = s.now().Add(expiration)
	s.locks[key] = held
	return nil
}
