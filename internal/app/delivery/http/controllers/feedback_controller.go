package controllers

import (
	"homevisit-service/internal/app/contracts"
	"homevisit-service/internal/pkg/constvars"
	"homevisit-service/internal/pkg/dto/requests"
	"homevisit-service/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
)

type FeedbackController struct {
	Log             *zap.Logger
	FeedbackUsecase contracts.FeedbackUsecase
}

func NewFeedbackController(logger *zap.Logger, feedbackUsecase contracts.FeedbackUsecase) *FeedbackController {
	return &FeedbackController{
		Log:             logger,
		FeedbackUsecase: feedbackUsecase,
	}
}

func (ctrl *FeedbackController) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	requestID, principal, ok := requestScope(ctrl.Log, w, r)
	if !ok {
		return
	}

	appointmentID, err := utils.ValidateUrlParamID(r, constvars.URLParamAppointmentID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.SubmitFeedback)
	if err := utils.DecodeAndValidate(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	feedback, err := ctrl.FeedbackUsecase.SubmitFeedback(r.Context(), principal, appointmentID, request)
	if err != nil {
		ctrl.Log.Error("FeedbackController.SubmitFeedback error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
			zap.Error(err),
		)
		buildUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.SubmitFeedbackSuccessMessage, feedback)
}

func (ctrl *FeedbackController) ListPatientFeedback(w http.ResponseWriter, r *http.Request) {
	requestID, principal, ok := requestScope(ctrl.Log, w, r)
	if !ok {
		return
	}

	feedbacks, err := ctrl.FeedbackUsecase.ListPatientFeedback(r.Context(), principal)
	if err != nil {
		ctrl.Log.Error("FeedbackController.ListPatientFeedback error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ListFeedbackSuccessMessage, feedbacks)
}

func (ctrl *FeedbackController) ListDoctorFeedback(w http.ResponseWriter, r *http.Request) {
	requestID, principal, ok := requestScope(ctrl.Log, w, r)
	if !ok {
		return
	}

	feedbacks, err := ctrl.FeedbackUsecase.ListDoctorFeedback(r.Context(), principal)
	if err != nil {
		ctrl.Log.Error("FeedbackController.ListDoctorFeedback error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ListFeedbackSuccessMessage, feedbacks)
}
