package middlewares

import (
	"errors"
	"fmt"
	"homevisit-service/internal/pkg/constvars"
	"homevisit-service/internal/pkg/exceptions"
	"homevisit-service/internal/pkg/utils"
	"net/http"
	"runtime/debug"

	"go.uber.org/zap"
)

// ErrorHandler turns a panic into a 500 response. http.ErrAbortHandler is
// re-raised so net/http can abort the connection.
func (m *Middlewares) ErrorHandler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}

			var err error
			switch x := rec.(type) {
			case error:
				err = x
			case string:
				err = errors.New(x)
			default:
				err = fmt.Errorf("panic: %v", x)
			}

			m.Log.Error("Recovered from panic",
				zap.String(constvars.LoggingRequestIDKey, utils.GetRequestID(r.Context())),
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Error(err),
				zap.ByteString("stack", debug.Stack()),
			)
			utils.BuildErrorResponse(m.Log, w, exceptions.ErrServerProcess(err))
		}()
		next.ServeHTTP(w, r)
	})
}
