package events

import (
	"context"
	"homevisit-service/internal/app/contracts"
	"homevisit-service/internal/app/models"
	"homevisit-service/internal/pkg/constvars"

	"go.uber.org/zap"
)

type loggingPublisher struct {
	log *zap.Logger
}

// NewLoggingPublisher is used when RabbitMQ is disabled.
func NewLoggingPublisher(log *zap.Logger) contracts.EventPublisher {
	return &loggingPublisher{log: log}
}

func (p *loggingPublisher) Publish(ctx context.Context, event *models.DomainEvent) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	p.log.Info("domain event",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingEventTypeKey, event.Type),
		zap.String(constvars.LoggingAppointmentIDKey, event.AppointmentID),
		zap.Any("payload", event.Payload),
	)
	return nil
}
