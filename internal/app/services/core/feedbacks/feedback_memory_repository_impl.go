package feedbacks

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

type FeedbackMemoryRepository struct {
	DB *database.MemoryDB
}

func NewFeedbackMemoryRepository(db *database.MemoryDB) contracts.FeedbackRepository {
	return &FeedbackMemoryRepository{DB: db}
}

func (r *FeedbackMemoryRepository) Create(ctx context.Context, feedback *models.Feedback) error {
	return r.DB.RunInTransaction(ctx, func(ctx context.Context) error {
		existing, _ := r.FindByAppointment(ctx, feedback.AppointmentID)
		if existing != nil {
			return exceptions.ErrFeedbackAlreadySubmitted(nil, feedback.AppointmentID)
		}
		if !r.DB.Insert(ctx, constvars.MongoCollectionFeedbacks, feedback.ID, *feedback) {
			return exceptions.ErrMongoDBInsertDocument(fmt.Errorf("feedback %s already exists", feedback.ID))
		}
		return nil
	})
}

func (r *FeedbackMemoryRepository) FindByAppointment(ctx context.Context, appointmentID string) (*models.Feedback, error) {
	found := r.scan(ctx, func(f models.Feedback) bool { return f.AppointmentID == appointmentID })
	if len(found) == 0 {
		return nil, nil
	}
	return &found[0], nil
}

func (r *FeedbackMemoryRepository) FindByPatient(ctx context.Context, patientID string) ([]models.Feedback, error) {
	return r.scan(ctx, func(f models.Feedback) bool { return f.PatientID == patientID }), nil
}

func (r *FeedbackMemoryRepository) FindByDoctor(ctx context.Context, doctorID string) ([]models.Feedback, error) {
	return r.scan(ctx, func(f models.Feedback) bool { return f.DoctorID != nil && *f.DoctorID == doctorID }), nil
}

func (r *FeedbackMemoryRepository) scan(ctx context.Context, match func(models.Feedback) bool) []models.Feedback {
	docs := r.DB.Scan(ctx, constvars.MongoCollectionFeedbacks, func(doc interface{}) bool {
		return match(doc.(models.Feedback))
	})
	feedbacks := make([]models.Feedback, 0, len(docs))
	for _, doc := range docs {
		feedbacks = append(feedbacks, doc.(models.Feedback))
	}
	sort.Slice(feedbacks, func(i, j int) bool { return feedbacks[i].CreatedAt.After(feedbacks[j].CreatedAt) })
	return feedbacks
}
