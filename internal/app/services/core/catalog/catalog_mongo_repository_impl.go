package catalog

import (
	"context"
	"homevisit-service/internal/app/contracts"
	"homevisit-service/internal/app/models"
	"homevisit-service/internal/pkg/constvars"
	"homevisit-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CatalogMongoRepository struct {
	Services *mongo.Collection
	Offers   *mongo.Collection
}

func NewCatalogMongoRepository(db *mongo.Client, dbName string) contracts.CatalogRepository {
	database := db.Database(dbName)
	return &CatalogMongoRepository{
		Services: database.Collection(constvars.MongoCollectionServices),
		Offers:   database.Collection(constvars.MongoCollectionOffers),
	}
}

func (r *CatalogMongoRepository) CreateService(ctx context.Context, service *models.Service) error {
	_, err := r.Services.InsertOne(ctx, service)
	if err != nil {
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

func (r *CatalogMongoRepository) FindServiceByID(ctx context.Context, id string) (*models.Service, error) {
	var service models.Service
	err := r.Services.FindOne(ctx, bson.M{"_id": id}).Decode(&service)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &service, nil
}

func (r *CatalogMongoRepository) FindServices(ctx context.Context, activeOnly bool) ([]models.Service, error) {
	filter := bson.M{}
	if activeOnly {
		filter["isActive"] = true
	}
	cursor, err := r.Services.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "name", Value: 1}}))
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	services := make([]models.Service, 0)
	if err := cursor.All(ctx, &services); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return services, nil
}

func (r *CatalogMongoRepository) UpdateService(ctx context.Context, service *models.Service) error {
	_, err := r.Services.ReplaceOne(ctx, bson.M{"_id": service.ID}, service)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *CatalogMongoRepository) DeleteService(ctx context.Context, id string) error {
	_, err := r.Services.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return exceptions.ErrMongoDBDeleteDocument(err)
	}
	return nil
}

func (r *CatalogMongoRepository) UpsertServiceByExternalID(ctx context.Context, service *models.Service) error {
	update := bson.M{
		"$set": bson.M{
			"name":            service.Name,
			"description":     service.Description,
			"category":        service.Category,
			"basePrice":       service.BasePrice,
			"currency":        service.Currency,
			"durationMinutes": service.DurationMinutes,
			"isActive":        service.IsActive,
			"updatedAt":       service.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"_id":       service.ID,
			"createdAt": service.CreatedAt,
		},
	}
	_, err := r.Services.UpdateOne(ctx, bson.M{"externalId": service.ExternalID}, update, options.Update().SetUpsert(true))
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *CatalogMongoRepository) CreateOffer(ctx context.Context, offer *models.Offer) error {
	_, err := r.Offers.InsertOne(ctx, offer)
	if err != nil {
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

func (r *CatalogMongoRepository) FindOfferByID(ctx context.Context, id string) (*models.Offer, error) {
	var offer models.Offer
	err := r.Offers.FindOne(ctx, bson.M{"_id": id}).Decode(&offer)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &offer, nil
}

func (r *CatalogMongoRepository) FindOffers(ctx context.Context, activeOnly bool) ([]models.Offer, error) {
	filter := bson.M{}
	if activeOnly {
		filter["isActive"] = true
	}
	cursor, err := r.Offers.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "title", Value: 1}}))
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	offers := make([]models.Offer, 0)
	if err := cursor.All(ctx, &offers); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return offers, nil
}

func (r *CatalogMongoRepository) UpdateOffer(ctx context.Context, offer *models.Offer) error {
	_, err := r.Offers.ReplaceOne(ctx, bson.M{"_id": offer.ID}, offer)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *CatalogMongoRepository) DeleteOffer(ctx context.Context, id string) error {
	_, err := r.Offers.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return exceptions.ErrMongoDBDeleteDocument(err)
	}
	return nil
}

func (r *CatalogMongoRepository) UpsertOfferByExternalID(ctx context.Context, offer *models.Offer) error {
	update := bson.M{
		"$set": bson.M{
			"title":           offer.Title,
			"description":     offer.Description,
			"discountPercent": offer.DiscountPercent,
			"serviceIds":      offer.ServiceIDs,
			"validFrom":       offer.ValidFrom,
			"validUntil":      offer.ValidUntil,
			"isActive":        offer.IsActive,
			"updatedAt":       offer.UpdatedAt,
		},
		"$setOnInsert": bson.M{
			"_id":       offer.ID,
			"createdAt": offer.CreatedAt,
		},
	}
	_, err := r.Offers.UpdateOne(ctx, bson.M{"externalId": offer.ExternalID}, update, options.Update().SetUpsert(true))
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}
