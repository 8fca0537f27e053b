package service

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"os"
	"path"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/recipeshare/backend/config"
)

// ImageStorage persists uploaded recipe images and returns the public path
// or URL under which the image is served.
type ImageStorage interface {
	Save(ctx context.Context, fileName string, data []byte, contentType string) (string, error)
}

// NewImageStorage selects the storage backend from configuration.
func NewImageStorage(ctx context.Context, cfg *config.Config) (ImageStorage, error) {
	switch cfg.StorageBackend {
	case "s3":
		s3Cfg, err := config.NewS3Config(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to initialize S3 storage: %w", err)
		}
		return &S3ImageStorage{s3Config: s3Cfg}, nil
	default:
		return &LocalImageStorage{Dir: cfg.UploadDir}, nil
	}
}

// LocalImageStorage writes images to a directory served under /uploads.
type LocalImageStorage struct {
	Dir string
}

func (s *LocalImageStorage) Save(ctx context.Context, fileName string, data []byte, contentType string) (string, error) {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	fileName = filepath.Base(fileName)
	if err := os.WriteFile(filepath.Join(s.Dir, fileName), data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write upload: %w", err)
	}

	return path.Join("/uploads", fileName), nil
}

// S3ImageStorage uploads images to an S3 bucket with public-read objects.
type S3ImageStorage struct {
	s3Config *config.S3Config
}

func (s *S3ImageStorage) Save(ctx context.Context, fileName string, data []byte, contentType string) (string, error) {
	key := path.Join("recipe-images", filepath.Base(fileName))

	_, err := s.s3Config.Client.PutObject(ctx, &s3.PutObjectInput{
		Bucket:      aws.String(s.s3Config.BucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload to S3: %w", err)
	}

	publicURL := fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.s3Config.BucketName, key)
	log.Printf("[ImageStorage] Uploaded image to S3: %s", publicURL)

	return publicURL, nil
}
