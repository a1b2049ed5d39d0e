package middlewares

import (
	"homevisit-service/internal/app/config"
	"homevisit-service/internal/app/contracts"
	"homevisit-service/internal/app/services/core/roles"

	"go.uber.org/zap"
)

type Middlewares struct {
	Log            *zap.Logger
	IdentityGate   contracts.IdentityGate
	RoleUsecase    *roles.CasbinRoleUsecase
	InternalConfig *config.InternalConfig
}

func NewMiddlewares(logger *zap.Logger, identityGate contracts.IdentityGate, roleUsecase *roles.CasbinRoleUsecase, internalConfig *config.InternalConfig) *Middlewares {
	return &Middlewares{
		Log:            logger,
		IdentityGate:   identityGate,
		RoleUsecase:    roleUsecase,
		InternalConfig: internalConfig,
	}
}
