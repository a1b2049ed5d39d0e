package contracts

import (
	"context"
	"homevisit-service/internal/app/models"
	"time"
)

type ReceiptArchive interface {
	Store(ctx context.Context, payment *models.Payment) error
	Exists(ctx context.Context, objectKey string) (bool, error)
	PresignedURL(ctx context.Context, objectKey string, expiry time.Duration) (string, error)
}
