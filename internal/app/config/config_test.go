package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInternalConfig_Validate(t *testing.T) {
	newConfig := func() *InternalConfig {
		return &InternalConfig{
			App: App{StoreDriver: "memory"},
			JWT: AppJWT{Secret: "secret"},
			Fee: AppFee{PlatformPercent: 0.15, DoctorPercent: 0.70, AdminPercent: 0.15},
		}
	}

	t.Run("default split is valid", func(t *testing.T) {
		assert.NoError(t, newConfig().Validate())
	})

	t.Run("split not summing to one", func(t *testing.T) {
		cfg := newConfig()
		cfg.Fee.DoctorPercent = 0.80
		assert.Error(t, cfg.Validate())
	})

	t.Run("negative share", func(t *testing.T) {
		cfg := newConfig()
		cfg.Fee.PlatformPercent = -0.05
		cfg.Fee.DoctorPercent = 0.90
		assert.Error(t, cfg.Validate())
	})

	t.Run("unknown store driver", func(t *testing.T) {
		cfg := newConfig()
		cfg.App.StoreDriver = "postgres"
		assert.Error(t, cfg.Validate())
	})

	t.Run("empty jwt secret", func(t *testing.T) {
		cfg := newConfig()
		cfg.JWT.Secret = ""
		assert.Error(t, cfg.Validate())
	})
}
