package controllers

import (
	"homevisit-service/internal/app/contracts"
	"homevisit-service/internal/pkg/constvars"
	"homevisit-service/internal/pkg/dto/requests"
	"homevisit-service/internal/pkg/dto/responses"
	"homevisit-service/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
)

type AuthController struct {
	Log         *zap.Logger
	AuthUsecase contracts.AuthUsecase
}

func NewAuthController(logger *zap.Logger, authUsecase contracts.AuthUsecase) *AuthController {
	return &AuthController{
		Log:         logger,
		AuthUsecase: authUsecase,
	}
}

func (ctrl *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	requestID, ok := publicRequestID(ctrl.Log, w, r)
	if !ok {
		return
	}

	request := new(requests.Login)
	if err := utils.DecodeAndValidate(r, request); err != nil {
		ctrl.Log.Info("AuthController.Login invalid request body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	output, err := ctrl.AuthUsecase.Login(r.Context(), request.Email, request.Password)
	if err != nil {
		ctrl.Log.Info("AuthController.Login rejected",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.LoginSuccessMessage, responses.Login{
		Token:     output.Token,
		ExpiresAt: output.ExpiresAt,
		Role:      output.Role,
	})
}
