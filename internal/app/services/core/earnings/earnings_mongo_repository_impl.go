package earnings

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

type EarningsMongoRepository struct {
	Collection *mongo.Collection
}

func NewEarningsMongoRepository(db *mongo.Client, dbName string) contracts.EarningsRepository {
	return &EarningsMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionEarningsSummaries),
	}
}

func (r *EarningsMongoRepository) FindByDoctor(ctx context.Context, doctorID string) (*models.EarningsSummary, error) {
	var summary models.EarningsSummary
	err := r.Collection.FindOne(ctx, bson.M{"_id": doctorID}).Decode(&summary)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &summary, nil
}

func (r *EarningsMongoRepository) FindAll(ctx context.Context) ([]models.EarningsSummary, error) {
	cursor, err := r.Collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	summaries := make([]models.EarningsSummary, 0)
	if err := cursor.All(ctx, &summaries); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return summaries, nil
}

// Increment upserts the summary so the first settlement creates it.
func (r *EarningsMongoRepository) Increment(ctx context.Context, doctorID string, doctorFee float64, settledAt time.Time) error {
	update := bson.M{
		"$inc": bson.M{
			"totalDoctorFee":      doctorFee,
			"settledAppointments": 1,
		},
		"$max": bson.M{"lastSettledAt": settledAt},
		"$set": bson.M{"updatedAt": time.Now()},
	}
	_, err := r.Collection.UpdateOne(ctx, bson.M{"_id": doctorID}, update, options.Update().SetUpsert(true))
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}

func (r *EarningsMongoRepository) Replace(ctx context.Context, summary *models.EarningsSummary) error {
	_, err := r.Collection.ReplaceOne(ctx, bson.M{"_id": summary.DoctorID}, summary, options.Replace().SetUpsert(true))
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	return nil
}
