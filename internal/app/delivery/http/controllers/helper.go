package controllers

import (
	"context"
	"errors"
	"homevisit-service/internal/app/models"
	"homevisit-service/internal/pkg/constvars"
	"homevisit-service/internal/pkg/exceptions"
	"homevisit-service/internal/pkg/utils"
	"net/http"

	"go.uber.org/zap"
)

// requestScope reads the request id and the authenticated principal. When
// either is missing the error response is already written.
func requestScope(log *zap.Logger, w http.ResponseWriter, r *http.Request) (string, *models.Principal, bool) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		log.Error("Request ID missing from context",
			zap.String(constvars.LoggingEndpointKey, r.URL.Path),
			zap.String(constvars.LoggingMethodKey, r.Method),
			zap.String(constvars.LoggingRemoteAddrKey, r.RemoteAddr),
		)
		utils.BuildErrorResponse(log, w, exceptions.ErrMissingRequestID(nil))
		return "", nil, false
	}

	principal, err := utils.PrincipalFromContext(r.Context())
	if err != nil {
		utils.BuildErrorResponse(log, w, err)
		return "", nil, false
	}
	return requestID, principal, true
}

func publicRequestID(log *zap.Logger, w http.ResponseWriter, r *http.Request) (string, bool) {
	requestID, ok := r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	if !ok || requestID == "" {
		utils.BuildErrorResponse(log, w, exceptions.ErrMissingRequestID(nil))
		return "", false
	}
	return requestID, true
}

func buildUsecaseError(log *zap.Logger, w http.ResponseWriter, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		utils.BuildErrorResponse(log, w, exceptions.ErrServerDeadlineExceeded(err))
		return
	}
	utils.BuildErrorResponse(log, w, err)
}

// decodeOptional accepts an empty body for endpoints whose payload is optional.
func decodeOptional(r *http.Request, dst interface{}) error {
	if r.Body == nil || r.ContentLength == 0 {
		if err := utils.ValidateStruct(dst); err != nil {
			return exceptions.ErrInputValidation(err)
		}
		return nil
	}
	return utils.DecodeAndValidate(r, dst)
}
