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

type UserController struct {
	Log         *zap.Logger
	UserUsecase contracts.UserUsecase
}

func NewUserController(logger *zap.Logger, userUsecase contracts.UserUsecase) *UserController {
	return &UserController{
		Log:         logger,
		UserUsecase: userUsecase,
	}
}

func (ctrl *UserController) GetProfile(w http.ResponseWriter, r *http.Request) {
	requestID, principal, ok := requestScope(ctrl.Log, w, r)
	if !ok {
		return
	}

	user, err := ctrl.UserUsecase.GetProfile(r.Context(), principal)
	if err != nil {
		ctrl.Log.Error("UserController.GetProfile error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetProfileSuccessMessage, user)
}

func (ctrl *UserController) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	requestID, principal, ok := requestScope(ctrl.Log, w, r)
	if !ok {
		return
	}

	request := new(requests.UpdateProfile)
	if err := utils.DecodeAndValidate(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	user, err := ctrl.UserUsecase.UpdateProfile(r.Context(), principal, request)
	if err != nil {
		ctrl.Log.Error("UserController.UpdateProfile error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateProfileSuccessMessage, user)
}

func (ctrl *UserController) SetAvailability(w http.ResponseWriter, r *http.Request) {
	requestID, principal, ok := requestScope(ctrl.Log, w, r)
	if !ok {
		return
	}

	request := new(requests.SetAvailability)
	if err := utils.DecodeAndValidate(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	user, err := ctrl.UserUsecase.SetAvailability(r.Context(), principal, request)
	if err != nil {
		ctrl.Log.Error("UserController.SetAvailability error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SetAvailabilitySuccessMsg, user)
}

func (ctrl *UserController) CreateUser(w http.ResponseWriter, r *http.Request) {
	requestID, principal, ok := requestScope(ctrl.Log, w, r)
	if !ok {
		return
	}

	request := new(requests.CreateUser)
	if err := utils.DecodeAndValidate(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	user, err := ctrl.UserUsecase.CreateUser(r.Context(), principal, request)
	if err != nil {
		ctrl.Log.Error("UserController.CreateUser error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingRoleKey, request.Role),
			zap.Error(err),
		)
		buildUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateUserSuccessMessage, user)
}

func (ctrl *UserController) ListUsers(w http.ResponseWriter, r *http.Request) {
	requestID, principal, ok := requestScope(ctrl.Log, w, r)
	if !ok {
		return
	}

	filter := &models.UserFilter{
		Role:   r.URL.Query().Get(constvars.QueryParamRole),
		Status: r.URL.Query().Get(constvars.QueryParamStatus),
	}

	users, err := ctrl.UserUsecase.ListUsers(r.Context(), principal, filter)
	if err != nil {
		ctrl.Log.Error("UserController.ListUsers error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ListUsersSuccessMessage, users)
}

func (ctrl *UserController) GetUser(w http.ResponseWriter, r *http.Request) {
	requestID, principal, ok := requestScope(ctrl.Log, w, r)
	if !ok {
		return
	}

	userID, err := utils.ValidateUrlParamID(r, constvars.URLParamUserID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	user, err := ctrl.UserUsecase.FindUser(r.Context(), principal, userID)
	if err != nil {
		ctrl.Log.Error("UserController.GetUser error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingUserIDKey, userID),
			zap.Error(err),
		)
		buildUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetUserSuccessMessage, user)
}

func (ctrl *UserController) UpdateUser(w http.ResponseWriter, r *http.Request) {
	requestID, principal, ok := requestScope(ctrl.Log, w, r)
	if !ok {
		return
	}

	userID, err := utils.ValidateUrlParamID(r, constvars.URLParamUserID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.UpdateUser)
	if err := utils.DecodeAndValidate(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	user, err := ctrl.UserUsecase.UpdateUser(r.Context(), principal, userID, request)
	if err != nil {
		ctrl.Log.Error("UserController.UpdateUser error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingUserIDKey, userID),
			zap.Error(err),
		)
		buildUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateUserSuccessMessage, user)
}

func (ctrl *UserController) DeleteUser(w http.ResponseWriter, r *http.Request) {
	requestID, principal, ok := requestScope(ctrl.Log, w, r)
	if !ok {
		return
	}

	userID, err := utils.ValidateUrlParamID(r, constvars.URLParamUserID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	if err := ctrl.UserUsecase.DeleteUser(r.Context(), principal, userID); err != nil {
		ctrl.Log.Error("UserController.DeleteUser error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingUserIDKey, userID),
			zap.Error(err),
		)
		buildUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DeleteUserSuccessMessage, nil)
}
