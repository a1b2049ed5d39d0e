package middlewares

import (
	"homevisit-service/internal/pkg/constvars"
	"homevisit-service/internal/pkg/exceptions"
	"homevisit-service/internal/pkg/utils"
	"net/http"
	"strings"

	"go.uber.org/zap"
)

// Authenticate resolves the bearer token into a principal and stores it on
// the request context.
func (m *Middlewares) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get(constvars.HeaderAuthorization)
		if authHeader == "" {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenMissing(nil))
			return
		}
		if !strings.HasPrefix(authHeader, constvars.HeaderBearerPrefix) {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrTokenInvalidOrExpired(nil))
			return
		}

		token := strings.TrimPrefix(authHeader, constvars.HeaderBearerPrefix)
		principal, err := m.IdentityGate.Resolve(r.Context(), token)
		if err != nil {
			m.Log.Info("Middlewares.Authenticate rejected request",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
				zap.String(constvars.LoggingEndpointKey, r.URL.Path),
				zap.Error(err),
			)
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		ctx := utils.ContextWithPrincipal(r.Context(), principal)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequirePermission checks the principal's role against the RBAC policy for
// the request method and path. It must run after Authenticate.
func (m *Middlewares) RequirePermission(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		principal, err := utils.PrincipalFromContext(r.Context())
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, err)
			return
		}

		allowed, err := m.RoleUsecase.Authorize(r.Context(), principal.Role, r.Method, r.URL.Path)
		if err != nil {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrEnforcer(err))
			return
		}
		if !allowed {
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrRoleNotPermitted(nil, principal.Role, r.Method, r.URL.Path))
			return
		}

		next.ServeHTTP(w, r)
	})
}
