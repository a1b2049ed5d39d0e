package controllers

import (
	"homevisit-service/internal/app/contracts"
	"homevisit-service/internal/pkg/constvars"
	"homevisit-service/internal/pkg/dto/requests"
	"homevisit-service/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
)

type AssignmentController struct {
	Log               *zap.Logger
	AssignmentUsecase contracts.AssignmentUsecase
}

func NewAssignmentController(logger *zap.Logger, assignmentUsecase contracts.AssignmentUsecase) *AssignmentController {
	return &AssignmentController{
		Log:               logger,
		AssignmentUsecase: assignmentUsecase,
	}
}

func (ctrl *AssignmentController) ListAvailable(w http.ResponseWriter, r *http.Request) {
	requestID, principal, ok := requestScope(ctrl.Log, w, r)
	if !ok {
		return
	}

	available, err := ctrl.AssignmentUsecase.ListAvailable(r.Context(), principal)
	if err != nil {
		ctrl.Log.Error("AssignmentController.ListAvailable error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ListAvailableRequestsSuccessMessage, available)
}

func (ctrl *AssignmentController) Accept(w http.ResponseWriter, r *http.Request) {
	requestID, principal, ok := requestScope(ctrl.Log, w, r)
	if !ok {
		return
	}

	appointmentID, err := utils.ValidateUrlParamID(r, constvars.URLParamAppointmentID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	appointment, err := ctrl.AssignmentUsecase.Accept(r.Context(), principal, appointmentID)
	if err != nil {
		ctrl.Log.Info("AssignmentController.Accept rejected",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
			zap.Error(err),
		)
		buildUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AcceptRequestSuccessMessage, appointment)
}

func (ctrl *AssignmentController) Decline(w http.ResponseWriter, r *http.Request) {
	requestID, principal, ok := requestScope(ctrl.Log, w, r)
	if !ok {
		return
	}

	appointmentID, err := utils.ValidateUrlParamID(r, constvars.URLParamAppointmentID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.DeclineAppointment)
	if err := decodeOptional(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	appointment, err := ctrl.AssignmentUsecase.Decline(r.Context(), principal, appointmentID, request)
	if err != nil {
		ctrl.Log.Info("AssignmentController.Decline rejected",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
			zap.Error(err),
		)
		buildUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DeclineRequestSuccessMessage, appointment)
}
