package storage

import (
	"bytes"
	"context"
	"homevisit-service/internal/app/contracts"
	"homevisit-service/internal/app/models"
	"homevisit-service/internal/pkg/constvars"
	"homevisit-service/internal/pkg/exceptions"
	"time"

	"github.com/goccy/go-json"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

type minioReceiptArchive struct {
	MinioClient *minio.Client
	BucketName  string
	Log         *zap.Logger
}

func NewMinioReceiptArchive(minioClient *minio.Client, bucketName string, logger *zap.Logger) contracts.ReceiptArchive {
	return &minioReceiptArchive{
		MinioClient: minioClient,
		BucketName:  bucketName,
		Log:         logger,
	}
}

// Store writes the payment as a JSON document under its receipt object key.
func (m *minioReceiptArchive) Store(ctx context.Context, payment *models.Payment) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	body, err := json.Marshal(payment)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	_, err = m.MinioClient.PutObject(
		ctx,
		m.BucketName,
		payment.ReceiptObjectKey,
		bytes.NewReader(body),
		int64(len(body)),
		minio.PutObjectOptions{
			ContentType: constvars.MIMEApplicationJSON,
		},
	)
	if err != nil {
		return exceptions.ErrMinioCreateObject(err, m.BucketName)
	}

	m.Log.Info("minioReceiptArchive.Store succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingBucketKey, m.BucketName),
		zap.String(constvars.LoggingObjectKey, payment.ReceiptObjectKey),
	)
	return nil
}

func (m *minioReceiptArchive) Exists(ctx context.Context, objectKey string) (bool, error) {
	_, err := m.MinioClient.StatObject(ctx, m.BucketName, objectKey, minio.StatObjectOptions{})
	if err != nil {
		if minio.ToErrorResponse(err).Code == "NoSuchKey" {
			return false, nil
		}
		return false, exceptions.ErrMinioStatObject(err, m.BucketName)
	}
	return true, nil
}

func (m *minioReceiptArchive) PresignedURL(ctx context.Context, objectKey string, expiry time.Duration) (string, error) {
	presigned, err := m.MinioClient.PresignedGetObject(ctx, m.BucketName, objectKey, expiry, nil)
	if err != nil {
		return "", exceptions.ErrMinioPresignObject(err, m.BucketName)
	}
	return presigned.String(), nil
}
