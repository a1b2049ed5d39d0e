package controllers

import (
	"homevisit-service/internal/app/contracts"
	"homevisit-service/internal/pkg/constvars"
	"homevisit-service/internal/pkg/dto/requests"
	"homevisit-service/internal/pkg/utils"
	"net/http"
	"time"

	"go.uber.org/zap"
)

type PaymentController struct {
	Log            *zap.Logger
	PaymentUsecase contracts.PaymentUsecase
}

func NewPaymentController(logger *zap.Logger, paymentUsecase contracts.PaymentUsecase) *PaymentController {
	return &PaymentController{
		Log:            logger,
		PaymentUsecase: paymentUsecase,
	}
}

func (ctrl *PaymentController) Settle(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	requestID, principal, ok := requestScope(ctrl.Log, w, r)
	if !ok {
		return
	}

	appointmentID, err := utils.ValidateUrlParamID(r, constvars.URLParamAppointmentID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.SettlePayment)
	if err := utils.DecodeAndValidate(r, request); err != nil {
		ctrl.Log.Info("PaymentController.Settle invalid request body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	result, err := ctrl.PaymentUsecase.Settle(r.Context(), principal, appointmentID, request)
	if err != nil {
		ctrl.Log.Error("PaymentController.Settle error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
			zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
			zap.Error(err),
		)
		buildUsecaseError(ctrl.Log, w, err)
		return
	}

	ctrl.Log.Info("PaymentController.Settle processed",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPaymentIDKey, result.PaymentID),
		zap.String(constvars.LoggingPaymentStatusKey, result.PaymentStatus),
		zap.Duration(constvars.LoggingDurationKey, time.Since(start)),
	)
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SettlePaymentSuccessMessage, result)
}

func (ctrl *PaymentController) ListPayments(w http.ResponseWriter, r *http.Request) {
	requestID, principal, ok := requestScope(ctrl.Log, w, r)
	if !ok {
		return
	}

	payments, err := ctrl.PaymentUsecase.ListPayments(r.Context(), principal)
	if err != nil {
		ctrl.Log.Error("PaymentController.ListPayments error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ListPaymentsSuccessMessage, payments)
}

func (ctrl *PaymentController) GetReceipt(w http.ResponseWriter, r *http.Request) {
	requestID, principal, ok := requestScope(ctrl.Log, w, r)
	if !ok {
		return
	}

	paymentID, err := utils.ValidateUrlParamID(r, constvars.URLParamPaymentID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	receipt, err := ctrl.PaymentUsecase.GetReceipt(r.Context(), principal, paymentID)
	if err != nil {
		ctrl.Log.Error("PaymentController.GetReceipt error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingPaymentIDKey, paymentID),
			zap.Error(err),
		)
		buildUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetReceiptSuccessMessage, receipt)
}
