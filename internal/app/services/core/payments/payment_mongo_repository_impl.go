package payments

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

type PaymentMongoRepository struct {
	Collection *mongo.Collection
}

func NewPaymentMongoRepository(db *mongo.Client, dbName string) contracts.PaymentRepository {
	return &PaymentMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionPayments),
	}
}

func (r *PaymentMongoRepository) Create(ctx context.Context, payment *models.Payment) error {
	_, err := r.Collection.InsertOne(ctx, payment)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return exceptions.ErrAlreadySettled(err, payment.AppointmentID)
		}
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

func (r *PaymentMongoRepository) FindByID(ctx context.Context, id string) (*models.Payment, error) {
	var payment models.Payment
	err := r.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&payment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &payment, nil
}

func (r *PaymentMongoRepository) FindByPatient(ctx context.Context, patientID string) ([]models.Payment, error) {
	return r.find(ctx, bson.M{"patientId": patientID})
}

func (r *PaymentMongoRepository) FindSuccessfulByAppointment(ctx context.Context, appointmentID string) ([]models.Payment, error) {
	return r.find(ctx, bson.M{
		"appointmentId": appointmentID,
		"status":        constvars.PaymentRecordStatusSuccessful,
	})
}

func (r *PaymentMongoRepository) find(ctx context.Context, filter bson.M) ([]models.Payment, error) {
	cursor, err := r.Collection.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "transactionDate", Value: -1}}),
	)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	payments := make([]models.Payment, 0)
	if err := cursor.All(ctx, &payments); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return payments, nil
}
