package routers

import (
	"homevisit-service/internal/app/delivery/http/controllers"

	"github.com/go-chi/chi/v5"
)

func attachCatalogRoutes(router chi.Router, catalogController *controllers.CatalogController) {
	router.Get("/services", catalogController.ListServices)
	router.Get("/services/{serviceID}", catalogController.GetService)
	router.Get("/offers", catalogController.ListOffers)
}
