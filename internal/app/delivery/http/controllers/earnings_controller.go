package controllers

import (
	"homevisit-service/internal/app/contracts"
	"homevisit-service/internal/pkg/constvars"
	"homevisit-service/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
)

type EarningsController struct {
	Log             *zap.Logger
	EarningsUsecase contracts.EarningsUsecase
}

func NewEarningsController(logger *zap.Logger, earningsUsecase contracts.EarningsUsecase) *EarningsController {
	return &EarningsController{
		Log:             logger,
		EarningsUsecase: earningsUsecase,
	}
}

func (ctrl *EarningsController) GetEarnings(w http.ResponseWriter, r *http.Request) {
	requestID, principal, ok := requestScope(ctrl.Log, w, r)
	if !ok {
		return
	}

	earnings, err := ctrl.EarningsUsecase.GetEarnings(r.Context(), principal)
	if err != nil {
		ctrl.Log.Error("EarningsController.GetEarnings error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetEarningsSuccessMessage, earnings)
}
