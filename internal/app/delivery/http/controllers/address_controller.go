package controllers

import (
	"homevisit-service/internal/app/contracts"
	"homevisit-service/internal/pkg/constvars"
	"homevisit-service/internal/pkg/dto/requests"
	"homevisit-service/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
)

type AddressController struct {
	Log            *zap.Logger
	AddressUsecase contracts.AddressUsecase
}

func NewAddressController(logger *zap.Logger, addressUsecase contracts.AddressUsecase) *AddressController {
	return &AddressController{
		Log:            logger,
		AddressUsecase: addressUsecase,
	}
}

func (ctrl *AddressController) ListAddresses(w http.ResponseWriter, r *http.Request) {
	requestID, principal, ok := requestScope(ctrl.Log, w, r)
	if !ok {
		return
	}

	addresses, err := ctrl.AddressUsecase.ListAddresses(r.Context(), principal)
	if err != nil {
		ctrl.Log.Error("AddressController.ListAddresses error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ListAddressesSuccessMessage, addresses)
}

func (ctrl *AddressController) CreateAddress(w http.ResponseWriter, r *http.Request) {
	requestID, principal, ok := requestScope(ctrl.Log, w, r)
	if !ok {
		return
	}

	request := new(requests.CreateAddress)
	if err := utils.DecodeAndValidate(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	address, err := ctrl.AddressUsecase.CreateAddress(r.Context(), principal, request)
	if err != nil {
		ctrl.Log.Error("AddressController.CreateAddress error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateAddressSuccessMessage, address)
}

func (ctrl *AddressController) UpdateAddress(w http.ResponseWriter, r *http.Request) {
	requestID, principal, ok := requestScope(ctrl.Log, w, r)
	if !ok {
		return
	}

	addressID, err := utils.ValidateUrlParamID(r, constvars.URLParamAddressID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.UpdateAddress)
	if err := utils.DecodeAndValidate(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	address, err := ctrl.AddressUsecase.UpdateAddress(r.Context(), principal, addressID, request)
	if err != nil {
		ctrl.Log.Error("AddressController.UpdateAddress error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAddressIDKey, addressID),
			zap.Error(err),
		)
		buildUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateAddressSuccessMessage, address)
}

func (ctrl *AddressController) DeleteAddress(w http.ResponseWriter, r *http.Request) {
	requestID, principal, ok := requestScope(ctrl.Log, w, r)
	if !ok {
		return
	}

	addressID, err := utils.ValidateUrlParamID(r, constvars.URLParamAddressID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	if err := ctrl.AddressUsecase.DeleteAddress(r.Context(), principal, addressID); err != nil {
		ctrl.Log.Error("AddressController.DeleteAddress error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingAddressIDKey, addressID),
			zap.Error(err),
		)
		buildUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DeleteAddressSuccessMessage, nil)
}
