package auth

import (
	"context"
	"homevisit-service/internal/app/contracts"
	"homevisit-service/internal/pkg/constvars"

	"go.uber.org/zap"
)

type authUsecase struct {
	IdentityProvider contracts.IdentityProvider
	Log              *zap.Logger
}

func NewAuthUsecase(identityProvider contracts.IdentityProvider, logger *zap.Logger) contracts.AuthUsecase {
	return &authUsecase{
		IdentityProvider: identityProvider,
		Log:              logger,
	}
}

func (uc *authUsecase) Login(ctx context.Context, email, password string) (*contracts.SignInOutput, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("authUsecase.Login called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	output, err := uc.IdentityProvider.SignIn(ctx, email, password)
	if err != nil {
		uc.Log.Error("authUsecase.Login error signing in",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("authUsecase.Login succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRoleKey, output.Role),
	)
	return output, nil
}
