package contracts

import (
	"context"
	"homevisit-service/internal/app/models"
	"homevisit-service/internal/pkg/dto/requests"
)

type FeedbackRepository interface {
	// Create fails with ErrFeedbackAlreadySubmitted when the appointment already has feedback.
	Create(ctx context.Context, feedback *models.Feedback) error
	FindByAppointment(ctx context.Context, appointmentID string) (*models.Feedback, error)
	FindByPatient(ctx context.Context, patientID string) ([]models.Feedback, error)
	FindByDoctor(ctx context.Context, doctorID string) ([]models.Feedback, error)
}

type FeedbackUsecase interface {
	SubmitFeedback(ctx context.Context, principal *models.Principal, appointmentID string, request *requests.SubmitFeedback) (*models.Feedback, error)
	ListPatientFeedback(ctx context.Context, principal *models.Principal) ([]models.Feedback, error)
	ListDoctorFeedback(ctx context.Context, principal *models.Principal) ([]models.Feedback, error)
}
