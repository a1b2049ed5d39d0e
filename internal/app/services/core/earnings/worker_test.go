package earnings

import (
	"context"
	"homevisit-service/internal/app/config"
	"homevisit-service/internal/app/models"
	"homevisit-service/internal/app/services/shared/locker"
	"homevisit-service/internal/pkg/constvars"
	"homevisit-service/internal/pkg/dto/responses"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mockEarningsUsecase struct {
	mock.Mock
}

func (m *mockEarningsUsecase) GetEarnings(ctx context.Context, principal *models.Principal) (*responses.Earnings, error) {
	args := m.Called(ctx, principal)
	result, _ := args.Get(0).(*responses.Earnings)
	return result, args.Error(1)
}

func (m *mockEarningsUsecase) Reconcile(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func TestWorker_RunOnce(t *testing.T) {
	ctx := context.Background()
	cfg := &config.InternalConfig{Earnings: config.AppEarnings{ReconcileCronSpec: "@hourly"}}

	t.Run("leader runs a pass and releases the lock", func(t *testing.T) {
		lockSvc := locker.NewMemoryLockService()
		usecase := &mockEarningsUsecase{}
		usecase.On("Reconcile", mock.Anything).Return(2, nil).Once()

		worker := NewWorker(zap.NewNop(), cfg, lockSvc, usecase)
		worker.runOnce(ctx)
		usecase.AssertExpectations(t)

		acquired, _, err := lockSvc.TryLock(ctx, constvars.RedisKeyEarningsReconcileLock, time.Minute)
		require.NoError(t, err)
		assert.True(t, acquired)
	})

	t.Run("follower skips the pass", func(t *testing.T) {
		lockSvc := locker.NewMemoryLockService()
		acquired, _, err := lockSvc.TryLock(ctx, constvars.RedisKeyEarningsReconcileLock, time.Minute)
		require.NoError(t, err)
		require.True(t, acquired)

		usecase := &mockEarningsUsecase{}
		worker := NewWorker(zap.NewNop(), cfg, lockSvc, usecase)
		worker.runOnce(ctx)
		usecase.AssertNotCalled(t, "Reconcile", mock.Anything)
	})

	t.Run("start and stop with an invalid spec", func(t *testing.T) {
		usecase := &mockEarningsUsecase{}
		worker := NewWorker(zap.NewNop(), &config.InternalConfig{Earnings: config.AppEarnings{ReconcileCronSpec: "not a spec"}}, locker.NewMemoryLockService(), usecase)
		worker.Start(ctx)
		worker.Stop()
		usecase.AssertNotCalled(t, "Reconcile", mock.Anything)
	})
}
