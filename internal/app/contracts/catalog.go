package contracts

import (
	"context"
	"homevisit-service/internal/app/models"
	"homevisit-service/internal/pkg/dto/requests"
)

type CatalogRepository interface {
	CreateService(ctx context.Context, service *models.Service) error
	FindServiceByID(ctx context.Context, id string) (*models.Service, error)
	FindServices(ctx context.Context, activeOnly bool) ([]models.Service, error)
	UpdateService(ctx context.Context, service *models.Service) error
	DeleteService(ctx context.Context, id string) error
	UpsertServiceByExternalID(ctx context.Context, service *models.Service) error

	CreateOffer(ctx context.Context, offer *models.Offer) error
	FindOfferByID(ctx context.Context, id string) (*models.Offer, error)
	FindOffers(ctx context.Context, activeOnly bool) ([]models.Offer, error)
	UpdateOffer(ctx context.Context, offer *models.Offer) error
	DeleteOffer(ctx context.Context, id string) error
	UpsertOfferByExternalID(ctx context.Context, offer *models.Offer) error
}

type CatalogUsecase interface {
	ListServices(ctx context.Context) ([]models.Service, error)
	FindService(ctx context.Context, serviceID string) (*models.Service, error)
	ListOffers(ctx context.Context) ([]models.Offer, error)
	CreateService(ctx context.Context, request *requests.CreateService) (*models.Service, error)
	UpdateService(ctx context.Context, serviceID string, request *requests.UpdateService) (*models.Service, error)
	DeleteService(ctx context.Context, serviceID string) error
	CreateOffer(ctx context.Context, request *requests.CreateOffer) (*models.Offer, error)
	UpdateOffer(ctx context.Context, offerID string, request *requests.UpdateOffer) (*models.Offer, error)
	DeleteOffer(ctx context.Context, offerID string) error
	// Seed upserts the built-in catalog keyed by external id.
	Seed(ctx context.Context) (int, error)
}
