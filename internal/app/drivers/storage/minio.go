package storage

import (
	"context"
	"fmt"
	"homevisit-service/internal/app/config"
	"log"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// NewMinio connects and makes sure the receipt bucket exists.
func NewMinio(driverConfig *config.DriverConfig, internalConfig *config.InternalConfig) *minio.Client {
	endPoint := fmt.Sprintf("%s:%s", driverConfig.Minio.Host, driverConfig.Minio.Port)
	minioClient, err := minio.New(endPoint, &minio.Options{
		Creds:  credentials.NewStaticV4(driverConfig.Minio.Username, driverConfig.Minio.Password, ""),
		Secure: driverConfig.Minio.UseSSL,
	})
	if err != nil {
		log.Fatalf("Failed to initialize Minio Client: %s", err.Error())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	bucket := internalConfig.Minio.ReceiptBucket
	exists, err := minioClient.BucketExists(ctx, bucket)
	if err != nil {
		log.Fatalf("Failed to check minio bucket %s: %s", bucket, err.Error())
	}
	if !exists {
		if err := minioClient.MakeBucket(ctx, bucket, minio.MakeBucketOptions{}); err != nil {
			log.Fatalf("Failed to create minio bucket %s: %s", bucket, err.Error())
		}
	}

	log.Println("Successfully connected to minio")
	return minioClient
}
