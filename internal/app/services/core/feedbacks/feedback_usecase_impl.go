package feedbacks

import (
	"context"
	"fmt"
	"homevisit-service/internal/app/contracts"
	"homevisit-service/internal/app/models"
	"homevisit-service/internal/app/services/core/appointments"
	"homevisit-service/internal/app/services/shared/events"
	"homevisit-service/internal/pkg/constvars"
	"homevisit-service/internal/pkg/dto/requests"
	"homevisit-service/internal/pkg/exceptions"
	"homevisit-service/internal/pkg/utils"

	"go.uber.org/zap"
)

type feedbackUsecase struct {
	Transactor            contracts.Transactor
	AppointmentRepository contracts.AppointmentRepository
	FeedbackRepository    contracts.FeedbackRepository
	EventPublisher        contracts.EventPublisher
	Log                   *zap.Logger
}

func NewFeedbackUsecase(
	transactor contracts.Transactor,
	appointmentRepository contracts.AppointmentRepository,
	feedbackRepository contracts.FeedbackRepository,
	eventPublisher contracts.EventPublisher,
	logger *zap.Logger,
) contracts.FeedbackUsecase {
	return &feedbackUsecase{
		Transactor:            transactor,
		AppointmentRepository: appointmentRepository,
		FeedbackRepository:    feedbackRepository,
		EventPublisher:        eventPublisher,
		Log:                   logger,
	}
}

// SubmitFeedback accepts one rating per appointment once the visit is
// completed or paid.
func (uc *feedbackUsecase) SubmitFeedback(ctx context.Context, principal *models.Principal, appointmentID string, request *requests.SubmitFeedback) (*models.Feedback, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("feedbackUsecase.SubmitFeedback called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, principal.SubjectID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.Int("rating", request.Rating),
	)

	if request.Rating < constvars.FeedbackMinRating || request.Rating > constvars.FeedbackMaxRating {
		return nil, exceptions.ErrInputValidationMessage(fmt.Sprintf(constvars.ErrClientFeedbackRatingOutOfRange, constvars.FeedbackMinRating, constvars.FeedbackMaxRating))
	}

	var appointment *models.Appointment
	feedback := &models.Feedback{
		ID:            utils.NewID(),
		PatientID:     principal.SubjectID,
		AppointmentID: appointmentID,
		Rating:        request.Rating,
		Comments:      request.Comments,
	}
	feedback.SetCreatedAtUpdatedAt()

	err := uc.Transactor.WithinTransaction(ctx, func(txCtx context.Context) error {
		var err error
		appointment, err = uc.AppointmentRepository.FindByID(txCtx, appointmentID)
		if err != nil {
			return err
		}
		if appointment == nil || appointment.PatientID != principal.SubjectID {
			return exceptions.ErrNotFound(nil, constvars.ResourceAppointment, appointmentID)
		}
		if !appointments.CanReceiveFeedback(appointment) {
			return exceptions.ErrInvalidTransition(nil, constvars.ErrClientFeedbackNotAllowed, appointment.Status, constvars.TransitionFeedback)
		}

		existing, err := uc.FeedbackRepository.FindByAppointment(txCtx, appointmentID)
		if err != nil {
			return err
		}
		if existing != nil {
			return exceptions.ErrFeedbackAlreadySubmitted(nil, appointmentID)
		}

		feedback.DoctorID = appointment.DoctorID
		return uc.FeedbackRepository.Create(txCtx, feedback)
	})
	if err != nil {
		uc.Log.Error("feedbackUsecase.SubmitFeedback error submitting feedback",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	events.PublishBestEffort(ctx, uc.EventPublisher, uc.Log,
		events.NewAppointmentEvent(constvars.EventFeedbackSubmitted, appointment, principal.SubjectID, map[string]interface{}{
			"feedback_id": feedback.ID,
			"rating":      feedback.Rating,
		}),
	)

	uc.Log.Info("feedbackUsecase.SubmitFeedback succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingFeedbackIDKey, feedback.ID),
	)
	return feedback, nil
}

func (uc *feedbackUsecase) ListPatientFeedback(ctx context.Context, principal *models.Principal) ([]models.Feedback, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("feedbackUsecase.ListPatientFeedback called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPatientIDKey, principal.SubjectID),
	)
	return uc.FeedbackRepository.FindByPatient(ctx, principal.SubjectID)
}

func (uc *feedbackUsecase) ListDoctorFeedback(ctx context.Context, principal *models.Principal) ([]models.Feedback, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("feedbackUsecase.ListDoctorFeedback called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingDoctorIDKey, principal.SubjectID),
	)
	return uc.FeedbackRepository.FindByDoctor(ctx, principal.SubjectID)
}
