package catalog

import (
	"context"
	"fmt"
	"homevisit-service/internal/app/contracts"
	"homevisit-service/internal/app/drivers/database"
	"homevisit-service/internal/app/models"
	"homevisit-service/internal/pkg/constvars"
	"homevisit-service/internal/pkg/exceptions"
	"sort"
)

type CatalogMemoryRepository struct {
	DB *database.MemoryDB
}

func NewCatalogMemoryRepository(db *database.MemoryDB) contracts.CatalogRepository {
	return &CatalogMemoryRepository{DB: db}
}

func (r *CatalogMemoryRepository) CreateService(ctx context.Context, service *models.Service) error {
	if !r.DB.Insert(ctx, constvars.MongoCollectionServices, service.ID, *service) {
		return exceptions.ErrMongoDBInsertDocument(fmt.Errorf("service %s already exists", service.ID))
	}
	return nil
}

func (r *CatalogMemoryRepository) FindServiceByID(ctx context.Context, id string) (*models.Service, error) {
	doc, ok := r.DB.Get(ctx, constvars.MongoCollectionServices, id)
	if !ok {
		return nil, nil
	}
	service := doc.(models.Service)
	return &service, nil
}

func (r *CatalogMemoryRepository) FindServices(ctx context.Context, activeOnly bool) ([]models.Service, error) {
	docs := r.DB.Scan(ctx, constvars.MongoCollectionServices, func(doc interface{}) bool {
		return !activeOnly || doc.(models.Service).IsActive
	})
	services := make([]models.Service, 0, len(docs))
	for _, doc := range docs {
		services = append(services, doc.(models.Service))
	}
	sort.Slice(services, func(i, j int) bool { return services[i].Name < services[j].Name })
	return services, nil
}

func (r *CatalogMemoryRepository) UpdateService(ctx context.Context, service *models.Service) error {
	if _, ok := r.DB.Get(ctx, constvars.MongoCollectionServices, service.ID); ok {
		r.DB.Put(ctx, constvars.MongoCollectionServices, service.ID, *service)
	}
	return nil
}

func (r *CatalogMemoryRepository) DeleteService(ctx context.Context, id string) error {
	r.DB.Delete(ctx, constvars.MongoCollectionServices, id)
	return nil
}

func (r *CatalogMemoryRepository) UpsertServiceByExternalID(ctx context.Context, service *models.Service) error {
	return r.DB.RunInTransaction(ctx, func(ctx context.Context) error {
		upsert := *service
		existing := r.DB.Scan(ctx, constvars.MongoCollectionServices, func(doc interface{}) bool {
			return doc.(models.Service).ExternalID == service.ExternalID
		})
		if len(existing) > 0 {
			current := existing[0].(models.Service)
			upsert.ID = current.ID
			upsert.CreatedAt = current.CreatedAt
		}
		r.DB.Put(ctx, constvars.MongoCollectionServices, upsert.ID, upsert)
		return nil
	})
}

func (r *CatalogMemoryRepository) CreateOffer(ctx context.Context, offer *models.Offer) error {
	if !r.DB.Insert(ctx, constvars.MongoCollectionOffers, offer.ID, *offer) {
		return exceptions.ErrMongoDBInsertDocument(fmt.Errorf("offer %s already exists", offer.ID))
	}
	return nil
}

func (r *CatalogMemoryRepository) FindOfferByID(ctx context.Context, id string) (*models.Offer, error) {
	doc, ok := r.DB.Get(ctx, constvars.MongoCollectionOffers, id)
	if !ok {
		return nil, nil
	}
	offer := doc.(models.Offer)
	return &offer, nil
}

func (r *CatalogMemoryRepository) FindOffers(ctx context.Context, activeOnly bool) ([]models.Offer, error) {
	docs := r.DB.Scan(ctx, constvars.MongoCollectionOffers, func(doc interface{}) bool {
		return !activeOnly || doc.(models.Offer).IsActive
	})
	offers := make([]models.Offer, 0, len(docs))
	for _, doc := range docs {
		offers = append(offers, doc.(models.Offer))
	}
	sort.Slice(offers, func(i, j int) bool { return offers[i].Title < offers[j].Title })
	return offers, nil
}

func (r *CatalogMemoryRepository) UpdateOffer(ctx context.Context, offer *models.Offer) error {
	if _, ok := r.DB.Get(ctx, constvars.MongoCollectionOffers, offer.ID); ok {
		r.DB.Put(ctx, constvars.MongoCollectionOffers, offer.ID, *offer)
	}
	return nil
}

func (r *CatalogMemoryRepository) DeleteOffer(ctx context.Context, id string) error {
	r.DB.Delete(ctx, constvars.MongoCollectionOffers, id)
	return nil
}

func (r *CatalogMemoryRepository) UpsertOfferByExternalID(ctx context.Context, offer *models.Offer) error {
	return r.DB.RunInTransaction(ctx, func(ctx context.Context) error {
		upsert := *offer
		existing := r.DB.Scan(ctx, constvars.MongoCollectionOffers, func(doc interface{}) bool {
			return doc.(models.Offer).ExternalID == offer.ExternalID
		})
		if len(existing) > 0 {
			current := existing[0].(models.Offer)
			upsert.ID = current.ID
			upsert.CreatedAt = current.CreatedAt
		}
		r.DB.Put(ctx, constvars.MongoCollectionOffers, upsert.ID, upsert)
		return nil
	})
}
