package controllers

import (
	"homevisit-service/internal/app/contracts"
	"homevisit-service/internal/pkg/constvars"
	"homevisit-service/internal/pkg/dto/requests"
	"homevisit-service/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
)

type CatalogController struct {
	Log            *zap.Logger
	CatalogUsecase contracts.CatalogUsecase
}

func NewCatalogController(logger *zap.Logger, catalogUsecase contracts.CatalogUsecase) *CatalogController {
	return &CatalogController{
		Log:            logger,
		CatalogUsecase: catalogUsecase,
	}
}

func (ctrl *CatalogController) ListServices(w http.ResponseWriter, r *http.Request) {
	requestID, ok := publicRequestID(ctrl.Log, w, r)
	if !ok {
		return
	}

	services, err := ctrl.CatalogUsecase.ListServices(r.Context())
	if err != nil {
		ctrl.Log.Error("CatalogController.ListServices error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ListServicesSuccessMessage, services)
}

func (ctrl *CatalogController) GetService(w http.ResponseWriter, r *http.Request) {
	requestID, ok := publicRequestID(ctrl.Log, w, r)
	if !ok {
		return
	}

	serviceID, err := utils.ValidateUrlParamID(r, constvars.URLParamServiceID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	service, err := ctrl.CatalogUsecase.FindService(r.Context(), serviceID)
	if err != nil {
		ctrl.Log.Error("CatalogController.GetService error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingServiceIDKey, serviceID),
			zap.Error(err),
		)
		buildUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetServiceSuccessMessage, service)
}

func (ctrl *CatalogController) ListOffers(w http.ResponseWriter, r *http.Request) {
	requestID, ok := publicRequestID(ctrl.Log, w, r)
	if !ok {
		return
	}

	offers, err := ctrl.CatalogUsecase.ListOffers(r.Context())
	if err != nil {
		ctrl.Log.Error("CatalogController.ListOffers error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.ListOffersSuccessMessage, offers)
}

func (ctrl *CatalogController) CreateService(w http.ResponseWriter, r *http.Request) {
	requestID, _, ok := requestScope(ctrl.Log, w, r)
	if !ok {
		return
	}

	request := new(requests.CreateService)
	if err := utils.DecodeAndValidate(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	service, err := ctrl.CatalogUsecase.CreateService(r.Context(), request)
	if err != nil {
		ctrl.Log.Error("CatalogController.CreateService error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateServiceSuccessMessage, service)
}

func (ctrl *CatalogController) UpdateService(w http.ResponseWriter, r *http.Request) {
	requestID, _, ok := requestScope(ctrl.Log, w, r)
	if !ok {
		return
	}

	serviceID, err := utils.ValidateUrlParamID(r, constvars.URLParamServiceID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.UpdateService)
	if err := utils.DecodeAndValidate(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	service, err := ctrl.CatalogUsecase.UpdateService(r.Context(), serviceID, request)
	if err != nil {
		ctrl.Log.Error("CatalogController.UpdateService error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingServiceIDKey, serviceID),
			zap.Error(err),
		)
		buildUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateServiceSuccessMessage, service)
}

func (ctrl *CatalogController) DeleteService(w http.ResponseWriter, r *http.Request) {
	requestID, _, ok := requestScope(ctrl.Log, w, r)
	if !ok {
		return
	}

	serviceID, err := utils.ValidateUrlParamID(r, constvars.URLParamServiceID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	if err := ctrl.CatalogUsecase.DeleteService(r.Context(), serviceID); err != nil {
		ctrl.Log.Error("CatalogController.DeleteService error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingServiceIDKey, serviceID),
			zap.Error(err),
		)
		buildUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DeleteServiceSuccessMessage, nil)
}

func (ctrl *CatalogController) CreateOffer(w http.ResponseWriter, r *http.Request) {
	requestID, _, ok := requestScope(ctrl.Log, w, r)
	if !ok {
		return
	}

	request := new(requests.CreateOffer)
	if err := utils.DecodeAndValidate(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	offer, err := ctrl.CatalogUsecase.CreateOffer(r.Context(), request)
	if err != nil {
		ctrl.Log.Error("CatalogController.CreateOffer error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		buildUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.CreateOfferSuccessMessage, offer)
}

func (ctrl *CatalogController) UpdateOffer(w http.ResponseWriter, r *http.Request) {
	requestID, _, ok := requestScope(ctrl.Log, w, r)
	if !ok {
		return
	}

	offerID, err := utils.ValidateUrlParamID(r, constvars.URLParamOfferID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	request := new(requests.UpdateOffer)
	if err := utils.DecodeAndValidate(r, request); err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	offer, err := ctrl.CatalogUsecase.UpdateOffer(r.Context(), offerID, request)
	if err != nil {
		ctrl.Log.Error("CatalogController.UpdateOffer error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOfferIDKey, offerID),
			zap.Error(err),
		)
		buildUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.UpdateOfferSuccessMessage, offer)
}

func (ctrl *CatalogController) DeleteOffer(w http.ResponseWriter, r *http.Request) {
	requestID, _, ok := requestScope(ctrl.Log, w, r)
	if !ok {
		return
	}

	offerID, err := utils.ValidateUrlParamID(r, constvars.URLParamOfferID)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	if err := ctrl.CatalogUsecase.DeleteOffer(r.Context(), offerID); err != nil {
		ctrl.Log.Error("CatalogController.DeleteOffer error from usecase",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOfferIDKey, offerID),
			zap.Error(err),
		)
		buildUsecaseError(ctrl.Log, w, err)
		return
	}

	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.DeleteOfferSuccessMessage, nil)
}
