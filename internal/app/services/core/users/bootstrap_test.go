package users

import (
	"context"
	"homevisit-service/internal/app/drivers/database"
	"homevisit-service/internal/app/models"
	"homevisit-service/internal/pkg/constvars"
	"homevisit-service/internal/pkg/exceptions"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBootstrapSuperadmin(t *testing.T) {
	ctx := context.Background()

	t.Run("creates the first superadmin", func(t *testing.T) {
		provider := new(mockIdentityProvider)
		provider.On("LookupByEmail", mock.Anything, "root@example.com").Return(nil, nil)
		provider.On("CreateUser", mock.Anything, mock.Anything).Return("root-1", nil)
		repo := NewUserMemoryRepository(database.NewMemoryDB())

		created, err := BootstrapSuperadmin(ctx, provider, NewUserUsecase(repo, provider, zap.NewNop()), "root@example.com", "Secret#123")
		require.NoError(t, err)
		assert.True(t, created)

		stored, err := repo.FindByID(ctx, "root-1")
		require.NoError(t, err)
		require.NotNil(t, stored)
		assert.Equal(t, constvars.RoleSuperadmin, stored.Role)
	})

	t.Run("existing email is left alone", func(t *testing.T) {
		provider := new(mockIdentityProvider)
		provider.On("LookupByEmail", mock.Anything, "root@example.com").Return(&models.Identity{ID: "root-1"}, nil)

		created, err := BootstrapSuperadmin(ctx, provider, NewUserUsecase(NewUserMemoryRepository(database.NewMemoryDB()), provider, zap.NewNop()), "root@example.com", "Secret#123")
		require.NoError(t, err)
		assert.False(t, created)
		provider.AssertNotCalled(t, "CreateUser", mock.Anything, mock.Anything)
	})

	t.Run("weak password is rejected", func(t *testing.T) {
		provider := new(mockIdentityProvider)

		_, err := BootstrapSuperadmin(ctx, provider, NewUserUsecase(NewUserMemoryRepository(database.NewMemoryDB()), provider, zap.NewNop()), "root@example.com", "short")
		assert.Equal(t, constvars.StatusBadRequest, exceptions.StatusCodeOf(err))
		provider.AssertNotCalled(t, "LookupByEmail", mock.Anything, mock.Anything)
	})
}
