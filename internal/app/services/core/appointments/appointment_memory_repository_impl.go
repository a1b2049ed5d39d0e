package appointments

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

type AppointmentMemoryRepository struct {
	DB *database.MemoryDB
}

func NewAppointmentMemoryRepository(db *database.MemoryDB) contracts.AppointmentRepository {
	return &AppointmentMemoryRepository{DB: db}
}

func (r *AppointmentMemoryRepository) Create(ctx context.Context, appointment *models.Appointment) error {
	if !r.DB.Insert(ctx, constvars.MongoCollectionAppointments, appointment.ID, *appointment) {
		return exceptions.ErrMongoDBInsertDocument(fmt.Errorf("appointment %s already exists", appointment.ID))
	}
	return nil
}

func (r *AppointmentMemoryRepository) FindByID(ctx context.Context, id string) (*models.Appointment, error) {
	doc, ok := r.DB.Get(ctx, constvars.MongoCollectionAppointments, id)
	if !ok {
		return nil, nil
	}
	appointment := doc.(models.Appointment)
	return &appointment, nil
}

func (r *AppointmentMemoryRepository) FindByPatient(ctx context.Context, patientID string) ([]models.Appointment, error) {
	return r.scan(ctx, func(a models.Appointment) bool { return a.PatientID == patientID }, false), nil
}

func (r *AppointmentMemoryRepository) FindByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	return r.scan(ctx, func(a models.Appointment) bool { return a.IsAssignedTo(doctorID) }, false), nil
}

func (r *AppointmentMemoryRepository) FindByStatus(ctx context.Context, status string) ([]models.Appointment, error) {
	return r.scan(ctx, func(a models.Appointment) bool { return a.Status == status }, true), nil
}

func (r *AppointmentMemoryRepository) FindAll(ctx context.Context, filter *models.AppointmentFilter) ([]models.Appointment, error) {
	return r.scan(ctx, func(a models.Appointment) bool {
		return filter == nil || filter.Status == "" || a.Status == filter.Status
	}, false), nil
}

func (r *AppointmentMemoryRepository) FindPaidByDoctor(ctx context.Context, doctorID string) ([]models.Appointment, error) {
	return r.scan(ctx, func(a models.Appointment) bool {
		return a.IsAssignedTo(doctorID) && a.PaymentStatus == constvars.PaymentStatusPaid
	}, false), nil
}

func (r *AppointmentMemoryRepository) UpdateIfStatus(ctx context.Context, appointment *models.Appointment, expectedStatus string) (bool, error) {
	updated := false
	err := r.DB.RunInTransaction(ctx, func(ctx context.Context) error {
		doc, ok := r.DB.Get(ctx, constvars.MongoCollectionAppointments, appointment.ID)
		if !ok || doc.(models.Appointment).Status != expectedStatus {
			return nil
		}
		r.DB.Put(ctx, constvars.MongoCollectionAppointments, appointment.ID, *appointment)
		updated = true
		return nil
	})
	return updated, err
}

func (r *AppointmentMemoryRepository) scan(ctx context.Context, match func(models.Appointment) bool, oldestFirst bool) []models.Appointment {
	docs := r.DB.Scan(ctx, constvars.MongoCollectionAppointments, func(doc interface{}) bool {
		return match(doc.(models.Appointment))
	})
	appointments := make([]models.Appointment, 0, len(docs))
	for _, doc := range docs {
		appointments = append(appointments, doc.(models.Appointment))
	}
	sort.Slice(appointments, func(i, j int) bool {
		if oldestFirst {
			return appointments[i].CreatedAt.Before(appointments[j].CreatedAt)
		}
		return appointments[i].CreatedAt.After(appointments[j].CreatedAt)
	})
	return appointments
}
