package appointments

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

type AppointmentMongoRepository struct {
	Collection *mongo.Collection
}

func NewAppointmentMongoRepository(db *mongo.Client, dbName string) contracts.AppointmentRepository {
	return &AppointmentMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionAppointments),
	}
}

func (r *AppointmentMongoRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	_, err := r.Collection.InsertOne(ctx, appointment)
	if err != nil {
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

func (r *AppointmentMongoRepository) FindByID(ctx context.Context, id string) (*models.Appointment, error) {
	var appointment models.Appointment
	err := r.Collection.FindOne(ctx, bson.M{"_id": id}).Decode(&appointment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &appointment, nil
}

func (r *AppointmentMongoRepository) FindByPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	return r.find(ctx, bson.M{"patientId": patientID}, -1)
}

func (r *AppointmentMongoRepository) FindByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	return r.find(ctx, bson.M{"doctorId": doctorID}, -1)
}

// FindByStatus returns the oldest appointments first.
func (r *AppointmentMongoRepository) FindByStatus(ctx context.Context, status string) ([]models.Appointment, error) {
	return r.find(ctx, bson.M{"status": status}, 1)
}

func (r *AppointmentMongoRepository) FindAll(ctx context.Context, filter *models.AppointmentFilter) ([]models.Appointment, error) {
	query := bson.M{}
	if filter != nil && filter.Status != "" {
		query["status"] = filter.Status
	}
	return r.find(ctx, query, -1)
}

func (r *AppointmentMongoRepository) FindPaidByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	return r.find(ctx, bson.M{
		"doctorId":      doctorID,
		"paymentStatus": constvars.PaymentStatusPaid,
	}, -1)
}

func (r *AppointmentMongoRepository) UpdateIfStatus(ctx context.Context, appointment *models.Appointment, expectedStatus string) (bool, error) {
	result, err := r.Collection.ReplaceOne(ctx,
		bson.M{"_id": appointment.ID, "status": expectedStatus},
		appointment,
	)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.MatchedCount == 1, nil
}

func (r *AppointmentMongoRepository) find(ctx context.Context, filter bson.M, createdAtOrder int) ([]models.Appointment, error) {
	cursor, err := r.Collection.Find(ctx, filter,
		options.Find().SetSort(bson.D{{Key: "createdAt", Value: createdAtOrder}}),
	)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	appointments := make([]models.Appointment, 0)
	if err := cursor.All(ctx, &appointments); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return appointments, nil
}
