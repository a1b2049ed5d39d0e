package events

import (
	"context"
	"homevisit-service/internal/app/contracts"
	"homevisit-service/internal/app/models"
	"homevisit-service/internal/pkg/constvars"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// NewAppointmentEvent builds an event for an appointment mutation.
func NewAppointmentEvent(eventType string, appointment *models.Appointment, actorID string, payload map[string]interface{}) *models.DomainEvent {
	if payload == nil {
		payload = map[string]interface{}{}
	}
	payload["status"] = appointment.Status
	payload["payment_status"] = appointment.PaymentStatus
	if appointment.DoctorID != nil {
		payload["doctor_id"] = *appointment.DoctorID
	}
	return &models.DomainEvent{
		ID:            uuid.NewString(),
		Type:          eventType,
		AppointmentID: appointment.ID,
		ActorID:       actorID,
		OccurredAt:    time.Now().UTC(),
		Payload:       payload,
	}
}

// PublishBestEffort publishes after a commit. Failures are logged and never
// surface to the caller because the state change is already durable.
func PublishBestEffort(ctx context.Context, publisher contracts.EventPublisher, log *zap.Logger, event *models.DomainEvent) {
	if publisher == nil || event == nil {
		return
	}
	if err := publisher.Publish(ctx, event); err != nil {
		requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
		log.Warn("event publish failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingEventTypeKey, event.Type),
			zap.String(constvars.LoggingAppointmentIDKey, event.AppointmentID),
			zap.Error(err),
		)
	}
}
