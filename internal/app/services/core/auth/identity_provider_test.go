package auth

import (
	"context"
	"homevisit-service/internal/app/config"
	"homevisit-service/internal/app/contracts"
	"homevisit-service/internal/app/drivers/database"
	"homevisit-service/internal/app/services/shared/jwtmanager"
	"homevisit-service/internal/pkg/constvars"
	"homevisit-service/internal/pkg/exceptions"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestProvider(t *testing.T) contracts.IdentityProvider {
	cfg := &config.InternalConfig{JWT: config.AppJWT{Secret: "test-secret", Issuer: "homevisit", ExpTimeInHour: 1}}
	manager, err := jwtmanager.NewJWTManager(cfg, zap.NewNop())
	require.NoError(t, err)
	return NewLocalIdentityProvider(NewIdentityMemoryRepository(database.NewMemoryDB()), manager, zap.NewNop())
}

func statusOf(err error) int {
	return exceptions.StatusCodeOf(err)
}

func TestLocalIdentityProvider(t *testing.T) {
	ctx := context.Background()

	t.Run("sign in and resolve", func(t *testing.T) {
		provider := newTestProvider(t)
		subjectID, err := provider.CreateUser(ctx, &contracts.CreateIdentityInput{Email: " Doc@Example.com", Password: "Secret#123", Role: constvars.RoleDoctor})
		require.NoError(t, err)

		out, err := provider.SignIn(ctx, "doc@example.com", "Secret#123")
		require.NoError(t, err)
		assert.Equal(t, constvars.RoleDoctor, out.Role)

		principal, err := NewIdentityGate(provider).Resolve(ctx, out.Token)
		require.NoError(t, err)
		assert.Equal(t, subjectID, principal.SubjectID)
		assert.Equal(t, constvars.RoleDoctor, principal.Role)
	})

	t.Run("wrong password and unknown email", func(t *testing.T) {
		provider := newTestProvider(t)
		_, err := provider.CreateUser(ctx, &contracts.CreateIdentityInput{Email: "p@example.com", Password: "Secret#123", Role: constvars.RolePatient})
		require.NoError(t, err)

		_, err = provider.SignIn(ctx, "p@example.com", "wrong")
		assert.Equal(t, constvars.StatusUnauthorized, statusOf(err))
		_, err = provider.SignIn(ctx, "nobody@example.com", "Secret#123")
		assert.Equal(t, constvars.StatusUnauthorized, statusOf(err))
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		provider := newTestProvider(t)
		_, err := provider.CreateUser(ctx, &contracts.CreateIdentityInput{Email: "p@example.com", Password: "Secret#123", Role: constvars.RolePatient})
		require.NoError(t, err)
		_, err = provider.CreateUser(ctx, &contracts.CreateIdentityInput{Email: "P@example.com", Password: "Secret#123", Role: constvars.RolePatient})
		assert.Equal(t, constvars.StatusBadRequest, statusOf(err))
	})

	t.Run("role change revokes earlier tokens", func(t *testing.T) {
		provider := newTestProvider(t)
		subjectID, err := provider.CreateUser(ctx, &contracts.CreateIdentityInput{Email: "u@example.com", Password: "Secret#123", Role: constvars.RolePatient})
		require.NoError(t, err)
		out, err := provider.SignIn(ctx, "u@example.com", "Secret#123")
		require.NoError(t, err)

		require.NoError(t, provider.SetRoleClaim(ctx, subjectID, constvars.RoleDoctor))

		_, err = provider.VerifyAssertion(ctx, out.Token)
		assert.Equal(t, constvars.StatusUnauthorized, statusOf(err))

		fresh, err := provider.SignIn(ctx, "u@example.com", "Secret#123")
		require.NoError(t, err)
		claims, err := provider.VerifyAssertion(ctx, fresh.Token)
		require.NoError(t, err)
		assert.Equal(t, constvars.RoleDoctor, claims.Role)
	})

	t.Run("disabled identity cannot authenticate", func(t *testing.T) {
		provider := newTestProvider(t)
		subjectID, err := provider.CreateUser(ctx, &contracts.CreateIdentityInput{Email: "u@example.com", Password: "Secret#123", Role: constvars.RolePatient})
		require.NoError(t, err)
		out, err := provider.SignIn(ctx, "u@example.com", "Secret#123")
		require.NoError(t, err)

		require.NoError(t, provider.SetDisabled(ctx, subjectID, true))
		_, err = provider.VerifyAssertion(ctx, out.Token)
		assert.Equal(t, constvars.StatusUnauthorized, statusOf(err))
		_, err = provider.SignIn(ctx, "u@example.com", "Secret#123")
		assert.Equal(t, constvars.StatusUnauthorized, statusOf(err))

		require.NoError(t, provider.SetDisabled(ctx, subjectID, false))
		_, err = provider.SignIn(ctx, "u@example.com", "Secret#123")
		assert.NoError(t, err)
	})

	t.Run("deleted identity is rejected", func(t *testing.T) {
		provider := newTestProvider(t)
		subjectID, err := provider.CreateUser(ctx, &contracts.CreateIdentityInput{Email: "u@example.com", Password: "Secret#123", Role: constvars.RolePatient})
		require.NoError(t, err)
		out, err := provider.SignIn(ctx, "u@example.com", "Secret#123")
		require.NoError(t, err)

		require.NoError(t, provider.DeleteUser(ctx, subjectID))
		_, err = provider.VerifyAssertion(ctx, out.Token)
		assert.Equal(t, constvars.StatusUnauthorized, statusOf(err))
	})

	t.Run("missing or garbage assertion", func(t *testing.T) {
		gate := NewIdentityGate(newTestProvider(t))
		_, err := gate.Resolve(ctx, "")
		assert.Equal(t, constvars.StatusUnauthorized, statusOf(err))
		_, err = gate.Resolve(ctx, "not-a-token")
		assert.Equal(t, constvars.StatusUnauthorized, statusOf(err))
	})
}
