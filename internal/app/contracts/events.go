package contracts

import (
	"context"
	"homevisit-service/internal/app/models"
)

type EventPublisher interface {
	Publish(ctx context.Context, event *models.DomainEvent) error
}
