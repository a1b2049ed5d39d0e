package routers

import (
	"github.com/go-chi/chi/v5"
)

func attachAdminRoutes(router chi.Router, ctrl *Controllers) {
	router.Get("/users", ctrl.User.ListUsers)
	router.Post("/users", ctrl.User.CreateUser)
	router.Get("/users/{userID}", ctrl.User.GetUser)
	router.Put("/users/{userID}", ctrl.User.UpdateUser)
	router.Delete("/users/{userID}", ctrl.User.DeleteUser)

	router.Post("/services", ctrl.Catalog.CreateService)
	router.Put("/services/{serviceID}", ctrl.Catalog.UpdateService)
	router.Delete("/services/{serviceID}", ctrl.Catalog.DeleteService)
	router.Post("/offers", ctrl.Catalog.CreateOffer)
	router.Put("/offers/{offerID}", ctrl.Catalog.UpdateOffer)
	router.Delete("/offers/{offerID}", ctrl.Catalog.DeleteOffer)

	router.Get("/appointments", ctrl.Appointment.ListAllAppointments)
}
