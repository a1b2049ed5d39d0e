package routers

import (
	"homevisit-service/internal/app/delivery/http/controllers"
	"homevisit-service/internal/app/delivery/http/middlewares"

	"github.com/go-chi/chi/v5"
)

func attachAuthRoutes(router chi.Router, loginLimiter *middlewares.RateLimiter, authController *controllers.AuthController) {
	router.With(loginLimiter.Limit).Post("/login", authController.Login)
}
