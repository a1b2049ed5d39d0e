package auth

import (
	"context"
	"homevisit-service/internal/app/contracts"
	"homevisit-service/internal/app/models"
	"homevisit-service/internal/pkg/constvars"
	"homevisit-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type IdentityMongoRepository struct {
	Collection *mongo.Collection
}

func NewIdentityMongoRepository(db *mongo.Client, dbName string) contracts.IdentityRepository {
	return &IdentityMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionIdentities),
	}
}

func (r *IdentityMongoRepository) Create(ctx context.Context, identity *models.Identity) error {
	_, err := r.Collection.InsertOne(ctx, identity)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return exceptions.ErrEmailAlreadyExist(err)
		}
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

func (r *IdentityMongoRepository) FindByID(ctx context.Context, id string) (*models.Identity, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *IdentityMongoRepository) FindByEmail(ctx context.Context, email string) (*models.Identity, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *IdentityMongoRepository) Update(ctx context.Context, identity *models.Identity) error {
	_, err := r.Collection.ReplaceOne(ctx, bson.M{"_id": identity.ID}, identity)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return exceptions.ErrEmailAlreadyExist(err)
		}
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *IdentityMongoRepository) Delete(ctx context.Context, id string) error {
	_, err := r.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return exceptions.ErrMongoDBDeleteDocument(err)
	}
	return nil
}

func (r *IdentityMongoRepository) findOne(ctx context.Context, filter bson.M) (*models.Identity, error) {
	var identity models.Identity
	err := r.Collection.FindOne(ctx, filter).Decode(&identity)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &identity, nil
}
