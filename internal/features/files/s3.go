package files

import (
	"context"
	"fmt"
	"io"

	"taskhive-backend/internal/config"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// S3FileStorage keeps attachments in an S3-compatible bucket.
type S3FileStorage struct {
	client *minio.Client
	bucket string
}

func NewS3FileStorage() (*S3FileStorage, error) {
	env := config.GetEnv()

	client, err := minio.New(env.S3Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(env.S3AccessKey, env.S3SecretKey, ""),
		Secure: env.S3UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create S3 client: %w", err)
	}

	return &S3FileStorage{
		client: client,
		bucket: env.S3Bucket,
	}, nil
}

func (s *S3FileStorage) SaveFile(
	ctx context.Context,
	fileID uuid.UUID,
	file io.Reader,
	size int64,
	contentType string,
) error {
	_, err := s.client.PutObject(
		ctx,
		s.bucket,
		fileID.String(),
		file,
		size,
		minio.PutObjectOptions{ContentType: contentType},
	)
	if err != nil {
		return fmt.Errorf("failed to upload file to S3: %w", err)
	}

	return nil
}

func (s *S3FileStorage) GetFile(
	ctx context.Context,
	fileID uuid.UUID,
) (io.ReadCloser, error) {
	object, err := s.client.GetObject(
		ctx,
		s.bucket,
		fileID.String(),
		minio.GetObjectOptions{},
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get file from S3: %w", err)
	}

	// GetObject is lazy: stat to surface missing objects now
	if _, err := object.Stat(); err != nil {
		_ = object.Close()
		return nil, fmt.Errorf("file not found: %s", fileID.String())
	}

	return object, nil
}

func (s *S3FileStorage) DeleteFile(ctx context.Context, fileID uuid.UUID) error {
	err := s.client.RemoveObject(ctx, s.bucket, fileID.String(), minio.RemoveObjectOptions{})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %w", err)
	}

	return nil
}
