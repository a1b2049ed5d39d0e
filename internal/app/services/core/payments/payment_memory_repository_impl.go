package payments

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

type PaymentMemoryRepository struct {
	DB *database.MemoryDB
}

func NewPaymentMemoryRepository(db *database.MemoryDB) contracts.PaymentRepository {
	return &PaymentMemoryRepository{DB: db}
}

func (r *PaymentMemoryRepository) Create(ctx context.Context, payment *models.Payment) error {
	return r.DB.RunInTransaction(ctx, func(ctx context.Context) error {
		if payment.Status == constvars.PaymentRecordStatusSuccessful {
			existing, _ := r.FindSuccessfulByAppointment(ctx, payment.AppointmentID)
			if len(existing) > 0 {
				return exceptions.ErrAlreadySettled(nil, payment.AppointmentID)
			}
		}
		if !r.DB.Insert(ctx, constvars.MongoCollectionPayments, payment.ID, *payment) {
			return exceptions.ErrMongoDBInsertDocument(fmt.Errorf("payment %s already exists", payment.ID))
		}
		return nil
	})
}

func (r *PaymentMemoryRepository) FindByID(ctx context.Context, id string) (*models.Payment, error) {
	doc, ok := r.DB.Get(ctx, constvars.MongoCollectionPayments, id)
	if !ok {
		return nil, nil
	}
	payment := doc.(models.Payment)
	return &payment, nil
}

func (r *PaymentMemoryRepository) FindByPatient(ctx context.Context, patientID string) ([]models.Payment, error) {
	return r.scan(ctx, func(p models.Payment) bool { return p.PatientID == patientID }), nil
}

func (r *PaymentMemoryRepository) FindSuccessfulByAppointment(ctx context.Context, appointmentID string) ([]models.Payment, error) {
	return r.scan(ctx, func(p models.Payment) bool {
		return p.AppointmentID == appointmentID && p.Status == constvars.PaymentRecordStatusSuccessful
	}), nil
}

func (r *PaymentMemoryRepository) scan(ctx context.Context, match func(models.Payment) bool) []models.Payment {
	docs := r.DB.Scan(ctx, constvars.MongoCollectionPayments, func(doc interface{}) bool {
		return match(doc.(models.Payment))
	})
	payments := make([]models.Payment, 0, len(docs))
	for _, doc := range docs {
		payments = append(payments, doc.(models.Payment))
	}
	sort.Slice(payments, func(i, j int) bool { return payments[i].TransactionDate.After(payments[j].TransactionDate) })
	return payments
}
