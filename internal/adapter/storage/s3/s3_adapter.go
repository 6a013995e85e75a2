package s3

import (
	"bytes"
	"context"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"go.uber.org/zap"
)

// ImageStorage stores uploaded item images in a MinIO bucket and returns
// the public path under which they can be fetched.
type ImageStorage struct {
	client *minio.Client
	bucket string
	logger *zap.Logger
}

func NewImageStorage(endpoint, accessKey, secretKey, bucketName string, useSSL bool, log *zap.Logger) (*ImageStorage, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create minio client for endpoint %s: %w", endpoint, err)
	}

	err = client.MakeBucket(context.Background(), bucketName, minio.MakeBucketOptions{})
	if err != nil {
		exists, errBucketExists := client.BucketExists(context.Background(), bucketName)
		if errBucketExists != nil || !exists {
			return nil, fmt.Errorf("failed to make/verify bucket %s: (make: %v / exists_check: %v)", bucketName, err, errBucketExists)
		}
		log.Info("image bucket already exists", zap.String("bucket", bucketName))
	} else {
		log.Info("image bucket created", zap.String("bucket", bucketName))
	}

	return &ImageStorage{
		client: client,
		bucket: bucketName,
		logger: log,
	}, nil
}

// Upload stores the image bytes under a fresh object key, keeping the
// original file extension, and returns the object's URL.
func (s *ImageStorage) Upload(ctx context.Context, originalFileName string, data []byte) (string, error) {
	ext := filepath.Ext(originalFileName)
	objectKey := fmt.Sprintf("images/%s%s", uuid.New().String(), ext)

	s.logger.Info("uploading item image",
		zap.String("bucket", s.bucket),
		zap.String("object_key", objectKey),
		zap.String("original_filename", originalFileName),
		zap.Int("size_bytes", len(data)))

	_, err := s.client.PutObject(ctx, s.bucket, objectKey, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{})
	if err != nil {
		return "", fmt.Errorf("failed to upload object %s to bucket %s: %w", objectKey, s.bucket, err)
	}

	return fmt.Sprintf("%s/%s/%s", s.client.EndpointURL().String(), s.bucket, objectKey), nil
}
