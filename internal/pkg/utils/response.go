package utils

import (
	"errors"
	"homevisit-service/internal/pkg/constvars"
	"homevisit-service/internal/pkg/dto/responses"
	"homevisit-service/internal/pkg/exceptions"
	"net/http"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

func BuildSuccessResponse(w http.ResponseWriter, code int, message string, data interface{}) {
	writeJSON(w, code, responses.ResponseDTO{
		Success: true,
		Message: message,
		Data:    data,
	})
}

// BuildErrorResponse logs err with the call sites recorded on it and writes
// the client-facing envelope. Dev messages are withheld in production.
func BuildErrorResponse(log *zap.Logger, w http.ResponseWriter, err error) {
	response := exceptions.CustomError{
		StatusCode:    constvars.StatusInternalServerError,
		ClientMessage: constvars.ErrClientSomethingWrongWithApplication,
	}

	var customErr *exceptions.CustomError
	switch {
	case errors.As(err, &customErr):
		response.StatusCode = customErr.StatusCode
		response.ClientMessage = customErr.ClientMessage
		if exposeDevMessages() {
			response.DevMessage = customErr.DevMessage
		}
		log.Error(customErr.DevMessage,
			zap.Int(constvars.LoggingStatusCodeKey, customErr.StatusCode),
			zap.Any("locations", customErr.Locations),
		)
	case err != nil:
		log.Error(err.Error(), zap.Int(constvars.LoggingStatusCodeKey, response.StatusCode))
	}

	writeJSON(w, response.StatusCode, response)
}

func exposeDevMessages() bool {
	return GetEnvString("APP_ENV", constvars.AppEnvDevelopment) != constvars.AppEnvProduction
}

func writeJSON(w http.ResponseWriter, code int, body interface{}) {
	payload, err := json.Marshal(body)
	if err != nil {
		code = constvars.StatusInternalServerError
		payload = []byte(`{"success":false,"message":"` + constvars.ErrClientSomethingWrongWithApplication + `"}`)
	}
	w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	w.WriteHeader(code)
	w.Write(payload)
}
