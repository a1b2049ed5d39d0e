package jwtmanager

import (
	"context"
	"homevisit-service/internal/app/config"
	"homevisit-service/internal/app/models"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestManager(t *testing.T, secret string) *JWTManager {
	cfg := &config.InternalConfig{JWT: config.AppJWT{Secret: secret, Issuer: "homevisit", ExpTimeInHour: 1}}
	manager, err := NewJWTManager(cfg, zap.NewNop())
	require.NoError(t, err)
	return manager
}

func TestJWTManager(t *testing.T) {
	ctx := context.Background()
	claims := &models.IdentityClaims{SubjectID: "user-1", Role: "doctor", Email: "d@example.com", TokenVersion: 3}

	t.Run("round trip keeps claims", func(t *testing.T) {
		manager := newTestManager(t, "secret")
		out, err := manager.CreateToken(ctx, claims)
		require.NoError(t, err)

		verified, err := manager.VerifyToken(ctx, out.Token)
		require.NoError(t, err)
		assert.Equal(t, claims, verified)
	})

	t.Run("other secret is rejected", func(t *testing.T) {
		out, err := newTestManager(t, "secret").CreateToken(ctx, claims)
		require.NoError(t, err)

		_, err = newTestManager(t, "other").VerifyToken(ctx, out.Token)
		assert.Error(t, err)
	})

	t.Run("expired token is rejected", func(t *testing.T) {
		manager := newTestManager(t, "secret")
		manager.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
		out, err := manager.CreateToken(ctx, claims)
		require.NoError(t, err)

		_, err = manager.VerifyToken(ctx, out.Token)
		assert.Error(t, err)
	})

	t.Run("empty secret fails construction", func(t *testing.T) {
		_, err := NewJWTManager(&config.InternalConfig{}, zap.NewNop())
		assert.Error(t, err)
	})
}
