package controllers

import (
	"homevisit-service/internal/app/contracts"
	"homevisit-service/internal/app/models"
	"homevisit-service/internal/pkg/constvars"
	"homevisit-service/internal/pkg/dto/requests"
	"homevisit-service/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
)

type AppointmentController struct {
	Log                *zap.Logger
	AppointmentUsecase contracts.AppointmentUsecase
}

func NewAppointmentController(logger *zap.Logger, appointmentUsecase contracts.AppointmentUsecase) *AppointmentController {
	return &AppointmentController{
		Log:                logger,
		AppointmentUsecase: appointmentUsecase,
	}
}

func (ctrl *AppointmentController) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	requestID, principal, ok := requestScope(ctrl.Log, w, r)
	if !ok {
		return
	}

	request := new(requests.CreateAppointment)
	if err := utils.DecodeAndValidate(r, request); err != nil {
		ctrl.Log.Info("AppointmentController.CreateAppointment invalid request body",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	appointment, err := ctrl.AppointmentUsecase.CreateAppointment(r.Context(), principal, request)
	if err != nil {
		ctrl.Log.Error("AppointmentController.CreateAppointment error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateAppointmentSuccessMessage, appointment)
}

func (ctrl *AppointmentController) ListPatientAppointments(w http.ResponseWriter, r *http.Request) {
	requestID, principal, ok := requestScope(ctrl.Log, w, r)
	if !ok {
		return
	}

	appointments, err := ctrl.AppointmentUsecase.ListPatientAppointments(r.Context(), principal)
	if err != nil {
		ctrl.Log.Error("AppointmentController.ListPatientAppointments error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ListAppointmentsSuccessMessage, appointments)
}

func (ctrl *AppointmentController) GetPatientAppointment(w http.ResponseWriter, r *http.Request) {
	requestID, principal, ok := requestScope(ctrl.Log, w, r)
	if !ok {
		return
	}

	appointmentID, err := utils.ValidateUrlParamID(r, constvars.URLParamAppointmentID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	appointment, err := ctrl.AppointmentUsecase.FindPatientAppointment(r.Context(), principal, appointmentID)
	if err != nil {
		ctrl.Log.Error("AppointmentController.GetPatientAppointment error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
			zap.Error(err),
		)
		buildUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAppointmentSuccessMessage, appointment)
}

func (ctrl *AppointmentController) RescheduleAppointment(w http.ResponseWriter, r *http.Request) {
	requestID, principal, ok := requestScope(ctrl.Log, w, r)
	if !ok {
		return
	}

	appointmentID, err := utils.ValidateUrlParamID(r, constvars.URLParamAppointmentID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.RescheduleAppointment)
	if err := utils.DecodeAndValidate(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	appointment, err := ctrl.AppointmentUsecase.RescheduleAppointment(r.Context(), principal, appointmentID, request)
	if err != nil {
		ctrl.Log.Error("AppointmentController.RescheduleAppointment error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
			zap.Error(err),
		)
		buildUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.RescheduleAppointmentSuccessMessage, appointment)
}

func (ctrl *AppointmentController) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	requestID, principal, ok := requestScope(ctrl.Log, w, r)
	if !ok {
		return
	}

	appointmentID, err := utils.ValidateUrlParamID(r, constvars.URLParamAppointmentID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.CancelAppointment)
	if err := decodeOptional(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	appointment, err := ctrl.AppointmentUsecase.CancelAppointment(r.Context(), principal, appointmentID, request)
	if err != nil {
		ctrl.Log.Error("AppointmentController.CancelAppointment error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
			zap.Error(err),
		)
		buildUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.CancelAppointmentSuccessMessage, appointment)
}

func (ctrl *AppointmentController) ListDoctorAppointments(w http.ResponseWriter, r *http.Request) {
	requestID, principal, ok := requestScope(ctrl.Log, w, r)
	if !ok {
		return
	}

	appointments, err := ctrl.AppointmentUsecase.ListDoctorAppointments(r.Context(), principal)
	if err != nil {
		ctrl.Log.Error("AppointmentController.ListDoctorAppointments error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ListAppointmentsSuccessMessage, appointments)
}

func (ctrl *AppointmentController) GetDoctorAppointment(w http.ResponseWriter, r *http.Request) {
	requestID, principal, ok := requestScope(ctrl.Log, w, r)
	if !ok {
		return
	}

	appointmentID, err := utils.ValidateUrlParamID(r, constvars.URLParamAppointmentID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	appointment, err := ctrl.AppointmentUsecase.FindDoctorAppointment(r.Context(), principal, appointmentID)
	if err != nil {
		ctrl.Log.Error("AppointmentController.GetDoctorAppointment error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
			zap.Error(err),
		)
		buildUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAppointmentSuccessMessage, appointment)
}

func (ctrl *AppointmentController) AdvanceStatus(w http.ResponseWriter, r *http.Request) {
	requestID, principal, ok := requestScope(ctrl.Log, w, r)
	if !ok {
		return
	}

	appointmentID, err := utils.ValidateUrlParamID(r, constvars.URLParamAppointmentID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.AdvanceAppointmentStatus)
	if err := utils.DecodeAndValidate(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	appointment, err := ctrl.AppointmentUsecase.AdvanceStatus(r.Context(), principal, appointmentID, request)
	if err != nil {
		ctrl.Log.Error("AppointmentController.AdvanceStatus error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
			zap.String(constvars.LoggingTargetStatusKey, request.Status),
			zap.Error(err),
		)
		buildUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.AdvanceAppointmentSuccessMessage, appointment)
}

func (ctrl *AppointmentController) ListAllAppointments(w http.ResponseWriter, r *http.Request) {
	requestID, principal, ok := requestScope(ctrl.Log, w, r)
	if !ok {
		return
	}

	filter := &models.AppointmentFilter{
		Status: r.URL.Query().Get(constvars.QueryParamStatus),
	}

	appointments, err := ctrl.AppointmentUsecase.ListAllAppointments(r.Context(), principal, filter)
	if err != nil {
		ctrl.Log.Error("AppointmentController.ListAllAppointments error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAppointmentStatusKey, filter.Status),
			zap.Error(err),
		)
		buildUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ListAppointmentsSuccessMessage, appointments)
}
