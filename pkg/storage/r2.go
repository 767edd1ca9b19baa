package storage

import (
	"bytes"
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/google/uuid"
)

// R2Storage stores public images in a Cloudflare R2 bucket through the S3 API.
type R2Storage struct {
	client        *s3.Client
	bucketName    string
	publicURL     string
	folder        string
	uploadTimeout time.Duration
}

type R2Options struct {
	AccountID     string
	AccessKey     string
	SecretKey     string
	BucketName    string
	PublicURL     string
	UploadTimeout time.Duration
}

func NewR2Storage(ctx context.Context, opts R2Options) (*R2Storage, error) {
	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(opts.AccessKey, opts.SecretKey, "")),
		config.WithRegion("auto"),
	)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(fmt.Sprintf("https://%s.r2.cloudflarestorage.com", opts.AccountID))
		o.UsePathStyle = true
	})

	return &R2Storage{
		client:        client,
		bucketName:    opts.BucketName,
		publicURL:     strings.TrimSuffix(opts.PublicURL, "/"),
		folder:        "uploads",
		uploadTimeout: opts.UploadTimeout,
	}, nil
}

// InFolder returns a copy of the store that writes under folder.
func (s *R2Storage) InFolder(folder string) *R2Storage {
	c := *s
	c.folder = strings.Trim(folder, "/")
	return &c
}

// UploadBuffer uploads processed image bytes and returns the public URL.
func (s *R2Storage) UploadBuffer(ctx context.Context, data []byte, contentType string) (string, error) {
	key := ObjectKey(s.folder, contentType)

	uploadCtx, cancel := context.WithTimeout(ctx, s.uploadTimeout)
	defer cancel()

	_, err := s.client.PutObject(uploadCtx, &s3.PutObjectInput{
		Bucket:      aws.String(s.bucketName),
		Key:         aws.String(key),
		Body:        bytes.NewReader(data),
		ContentType: aws.String(contentType),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload buffer to R2: %w", err)
	}

	return fmt.Sprintf("%s/%s", s.publicURL, key), nil
}

// DeleteFile deletes an object by its public URL. URLs outside the bucket's
// public host are rejected.
func (s *R2Storage) DeleteFile(ctx context.Context, fileURL string) error {
	key, err := s.keyFromURL(fileURL)
	if err != nil {
		return err
	}

	_, err = s.client.DeleteObject(ctx, &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucketName),
		Key:    aws.String(key),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from R2: %w", err)
	}
	return nil
}

func (s *R2Storage) keyFromURL(fileURL string) (string, error) {
	if s.publicURL == "" || !strings.HasPrefix(fileURL, s.publicURL+"/") {
		return "", fmt.Errorf("invalid file URL: domain mismatch")
	}
	key := strings.TrimPrefix(fileURL, s.publicURL+"/")
	if key == "" {
		return "", fmt.Errorf("invalid file key derived from URL")
	}
	return key, nil
}

// ObjectKey builds a unique key under folder with an extension matching contentType.
func ObjectKey(folder, contentType string) string {
	ext := ".bin"
	switch contentType {
	case "image/webp":
		ext = ".webp"
	case "image/jpeg":
		ext = ".jpg"
	case "image/png":
		ext = ".png"
	}
	return fmt.Sprintf("%s/%s%s", folder, uuid.NewString(), ext)
}
