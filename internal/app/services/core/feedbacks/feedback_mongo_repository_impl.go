package feedbacks

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

type FeedbackMongoRepository struct {
	Collection *mongo.Collection
}

func NewFeedbackMongoRepository(db *mongo.Client, dbName string) contracts.FeedbackRepository {
	return &FeedbackMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionFeedbacks),
	}
}

func (r *FeedbackMongoRepository) Create(ctx context.Context, feedback *models.Feedback) error {
	_, err := r.Collection.InsertOne(ctx, feedback)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return exceptions.ErrFeedbackAlreadySubmitted(err, feedback.AppointmentID)
		}
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

func (r *FeedbackMongoRepository) FindByAppointment(ctx context.Context, appointmentID string) (*models.Feedback, error) {
	var feedback models.Feedback
	err := r.Collection.FindOne(ctx, bson.M{"appointmentId": appointmentID}).Decode(&feedback)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &feedback, nil
}

func (r *FeedbackMongoRepository) FindByPatient(ctx context.Context, patientID string) ([]models.Feedback, error) {
	return r.find(ctx, bson.M{"patientId": patientID})
}

func (r *FeedbackMongoRepository) FindByDoctor(ctx context.Context, doctorID string) ([]models.Feedback, error) {
	return r.find(ctx, bson.M{"doctorId": doctorID})
}

func (r *FeedbackMongoRepository) find(ctx context.Context, filter bson.M) ([]models.Feedback, error) {
	cursor, err := r.Collection.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}}),
	)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	feedbacks := make([]models.Feedback, 0)
	if err := cursor.All(ctx, &feedbacks); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return feedbacks, nil
}
