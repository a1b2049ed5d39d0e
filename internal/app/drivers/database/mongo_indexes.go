package database

import (
	"context"
	"homevisit-service/internal/pkg/constvars"
	"homevisit-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var mongoIndexes = map[string][]mongo.IndexModel{
	constvars.MongoCollectionIdentities: {
		{Keys: bson.D{{Key: "email", Value: 1}}, Options: options.Index().SetUnique(true)},
	},
	constvars.MongoCollectionUsers: {
		{Keys: bson.D{{Key: "role", Value: 1}, {Key: "createdAt", Value: -1}}},
	},
	constvars.MongoCollectionAddresses: {
		{Keys: bson.D{{Key: "ownerId", Value: 1}, {Key: "createdAt", Value: 1}}},
	},
	constvars.MongoCollectionAppointments: {
		{Keys: bson.D{{Key: "patientId", Value: 1}, {Key: "createdAt", Value: -1}}},
		{Keys: bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: 1}}},
		{Keys: bson.D{{Key: "doctorId", Value: 1}, {Key: "paymentStatus", Value: 1}}},
	},
	constvars.MongoCollectionPayments: {
		{Keys: bson.D{{Key: "appointmentId", Value: 1}, {Key: "transactionDate", Value: -1}}},
		{Keys: bson.D{{Key: "patientId", Value: 1}, {Key: "transactionDate", Value: -1}}},
		// One successful payment per appointment.
		{
			Keys: bson.D{{Key: "appointmentId", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetPartialFilterExpression(bson.M{"status": constvars.PaymentRecordStatusSuccessful}),
		},
	},
	constvars.MongoCollectionFeedbacks: {
		{Keys: bson.D{{Key: "appointmentId", Value: 1}}, Options: options.Index().SetUnique(true)},
		{Keys: bson.D{{Key: "doctorId", Value: 1}, {Key: "createdAt", Value: -1}}},
	},
	constvars.MongoCollectionServices: {
		{Keys: bson.D{{Key: "externalId", Value: 1}}, Options: options.Index().SetUnique(true)},
	},
	constvars.MongoCollectionOffers: {
		{Keys: bson.D{{Key: "externalId", Value: 1}}, Options: options.Index().SetUnique(true)},
	},
}

// EnsureMongoIndexes creates the indexes the repositories rely on. Creating
// an index that already exists is a no-op.
func EnsureMongoIndexes(ctx context.Context, client *mongo.Client, dbName string) error {
	db := client.Database(dbName)
	for collection, indexes := range mongoIndexes {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, indexes); err != nil {
			return exceptions.ErrMongoDBCreateIndexes(err)
		}
	}
	return nil
}
