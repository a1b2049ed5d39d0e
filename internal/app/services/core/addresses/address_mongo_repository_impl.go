package addresses

import (
	"context"
	"homevisit-service/internal/app/contracts"
	"homevisit-service/internal/app/models"
	"homevisit-service/internal/pkg/constvars"
	"homevisit-service/internal/pkg/exceptions"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type AddressMongoRepository struct {
	Collection       *mongo.Collection
	OwnersCollection *mongo.Collection
}

func NewAddressMongoRepository(db *mongo.Client, dbName string) contracts.AddressRepository {
	database := db.Database(dbName)
	return &AddressMongoRepository{
		Collection:       database.Collection(constvars.MongoCollectionAddresses),
		OwnersCollection: database.Collection(constvars.MongoCollectionAddressOwners),
	}
}

func (r *AddressMongoRepository) Create(ctx context.Context, address *models.Address) error {
	_, err := r.Collection.InsertOne(ctx, address)
	if err != nil {
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

func (r *AddressMongoRepository) FindByID(ctx context.Context, id string) (*models.Address, error) {
	var address models.Address
	err := r.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&address)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &address, nil
}

func (r *AddressMongoRepository) FindByOwner(ctx context.Context, ownerID string) ([]models.Address, error) {
	cursor, err := r.Collection.Find(ctx,
		bson.M{"ownerId": ownerID},
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}}),
	)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	addresses := make([]models.Address, 0)
	if err := cursor.All(ctx, &addresses); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return addresses, nil
}

func (r *AddressMongoRepository) Update(ctx context.Context, address *models.Address) error {
	_, err := r.Collection.ReplaceOne(ctx, bson.M{"_id": address.ID}, address)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *AddressMongoRepository) Delete(ctx context.Context, id string) error {
	_, err := r.Collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return exceptions.ErrMongoDBDeleteDocument(err)
	}
	return nil
}

func (r *AddressMongoRepository) ClearDefaultExcept(ctx context.Context, ownerID, exceptID string) error {
	filter := bson.M{
		"ownerId":   ownerID,
		"isDefault": true,
		"_id":       bson.M{"$ne": exceptID},
	}
	update := bson.M{"$set": bson.M{"isDefault": false, "updatedAt": time.Now()}}

	_, err := r.Collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *AddressMongoRepository) EnsureOwnerGuard(ctx context.Context, ownerID string) error {
	_, err := r.OwnersCollection.UpdateOne(ctx,
		bson.M{"_id": ownerID},
		bson.M{"$setOnInsert": bson.M{"version": 0}},
		options.Update().SetUpsert(true),
	)
	if err != nil && !mongo.IsDuplicateKeyError(err) {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

// LockOwner bumps the guard document. Two transactions that both bump it
// write-conflict, and the driver retries the loser against fresh state.
func (r *AddressMongoRepository) LockOwner(ctx context.Context, ownerID string) error {
	_, err := r.OwnersCollection.UpdateOne(ctx,
		bson.M{"_id": ownerID},
		bson.M{"$inc": bson.M{"version": 1}},
	)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}
