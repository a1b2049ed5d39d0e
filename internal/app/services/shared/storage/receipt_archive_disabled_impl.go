package storage

import (
	"context"
	"homevisit-service/internal/app/contracts"
	"homevisit-service/internal/app/models"
	"homevisit-service/internal/pkg/exceptions"
	"time"
)

type disabledReceiptArchive struct{}

// NewDisabledReceiptArchive is used when MinIO is off. Uploads are skipped and
// download links are reported as unavailable.
func NewDisabledReceiptArchive() contracts.ReceiptArchive {
	return disabledReceiptArchive{}
}

func (disabledReceiptArchive) Store(ctx context.Context, payment *models.Payment) error {
	return nil
}

func (disabledReceiptArchive) Exists(ctx context.Context, objectKey string) (bool, error) {
	return false, nil
}

func (disabledReceiptArchive) PresignedURL(ctx context.Context, objectKey string, expiry time.Duration) (string, error) {
	return "", exceptions.ErrReceiptArchiveDisabled(nil)
}
