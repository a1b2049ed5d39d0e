package routers

import (
	"fmt"
	"homevisit-service/internal/app/config"
	"homevisit-service/internal/app/delivery/http/controllers"
	"homevisit-service/internal/app/delivery/http/middlewares"
	"homevisit-service/internal/pkg/constvars"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

type Controllers struct {
	Auth        *controllers.AuthController
	Catalog     *controllers.CatalogController
	User        *controllers.UserController
	Address     *controllers.AddressController
	Appointment *controllers.AppointmentController
	Assignment  *controllers.AssignmentController
	Payment     *controllers.PaymentController
	Feedback    *controllers.FeedbackController
	Earnings    *controllers.EarningsController
	Superadmin  *controllers.SuperadminController
}

// BasePath is the prefix every route is mounted under, e.g. "/api/v1".
func BasePath(internalConfig *config.InternalConfig) string {
	return fmt.Sprintf("/%s/%s", internalConfig.App.EndpointPrefix, internalConfig.App.Version)
}

func allowedOrigins(origins []string) []string {
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

func SetupRoutes(
	router *chi.Mux,
	internalConfig *config.InternalConfig,
	middlewares *middlewares.Middlewares,
	ctrl *Controllers,
) {
	corsOptions := cors.Options{
		AllowedOrigins:   allowedOrigins(internalConfig.App.CorsAllowedOrigins),
		AllowedMethods:   []string{constvars.MethodGet, constvars.MethodPost, constvars.MethodPut, constvars.MethodDelete, constvars.MethodOptions},
		AllowedHeaders:   []string{"Accept", constvars.HeaderAuthorization, constvars.HeaderContentType, constvars.HeaderXRequestID},
		ExposedHeaders:   []string{constvars.HeaderXRequestID},
		AllowCredentials: false,
		MaxAge:           300,
	}
	router.Use(cors.Handler(corsOptions))

	if internalConfig.App.MaxRequests > 0 {
		router.Use(httprate.LimitByIP(internalConfig.App.MaxRequests, time.Second))
	}

	router.Use(middlewares.RequestIDMiddleware)
	router.Use(middlewares.Logging)
	router.Use(middlewares.ErrorHandler)
	router.Use(middlewares.BodyLimit)
	router.Use(middlewares.RequestTimeout)

	loginLimiter := middlewares.LoginRateLimiter()

	router.Route(BasePath(internalConfig), func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			attachAuthRoutes(r, loginLimiter, ctrl.Auth)
		})

		attachCatalogRoutes(r, ctrl.Catalog)

		r.Group(func(r chi.Router) {
			r.Use(middlewares.Authenticate)
			r.Use(middlewares.RequirePermission)

			r.Route("/users", func(r chi.Router) {
				attachUserRoutes(r, ctrl.User)
			})

			r.Route("/patient", func(r chi.Router) {
				attachPatientRoutes(r, ctrl)
			})

			r.Route("/doctor", func(r chi.Router) {
				attachDoctorRoutes(r, ctrl)
			})

			r.Route("/admin", func(r chi.Router) {
				attachAdminRoutes(r, ctrl)
			})

			r.Route("/superadmin", func(r chi.Router) {
				r.Get("/overview", ctrl.Superadmin.Overview)
			})
		})
	})
}
