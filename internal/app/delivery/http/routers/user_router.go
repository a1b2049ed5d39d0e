package routers

import (
	"homevisit-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachUserRoutes(router chi.Router, userController *controllers.UserController) {
	router.Get("/me", userController.GetProfile)
	router.Put("/me", userController.UpdateProfile)
}
