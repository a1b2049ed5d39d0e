package utils

import (
	"context"
	"errors"
	"homevisit-service/internal/app/models"
	"homevisit-service/internal/pkg/constvars"
	"homevisit-service/internal/pkg/exceptions"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
)

func ValidateUrlParamID(r *http.Request, paramName string) (string, error) {
	value := chi.URLParam(r, paramName)
	if _, err := uuid.Parse(value); err != nil {
		return "", exceptions.ErrURLParamIDValidation(err, paramName)
	}
	return value, nil
}

// DecodeAndValidate decodes a JSON body into dst and runs struct validation.
func DecodeAndValidate(r *http.Request, dst interface{}) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			return exceptions.ErrRequestBodyTooLarge(err)
		}
		return exceptions.ErrCannotParseJSON(err)
	}
	if err := ValidateStruct(dst); err != nil {
		return exceptions.ErrInputValidation(err)
	}
	return nil
}

func GetRequestID(ctx context.Context) string {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	return requestID
}

func ContextWithPrincipal(ctx context.Context, principal *models.Principal) context.Context {
	return context.WithValue(ctx, constvars.CONTEXT_PRINCIPAL_KEY, principal)
}

func PrincipalFromContext(ctx context.Context) (*models.Principal, error) {
	principal, ok := ctx.Value(constvars.CONTEXT_PRINCIPAL_KEY).(*models.Principal)
	if !ok || principal == nil {
		return nil, exceptions.ErrPrincipalMissing(nil)
	}
	return principal, nil
}
