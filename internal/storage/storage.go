package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"

	"github.com/Siddique-web/EchoPlay/internal/config"
)

// Storage defines the interface for media file storage providers.
type Storage interface {
	Upload(reader io.Reader, filename string) (string, error)
	UploadBytes(data []byte, filename string) (string, error)
	Download(path string) (io.ReadCloser, error)
	Delete(path string) error
	GetPublicURL(path string) string
}

// NewStorage creates the provider selected by configuration.
func NewStorage(cfg *config.Config) (Storage, error) {
	switch cfg.Storage.Provider {
	case "s3":
		return NewS3Storage(cfg.Storage.S3)
	case "local":
		return NewLocalStorage(cfg.Storage.Path, cfg.Storage.PublicURL), nil
	default:
		return nil, fmt.Errorf("unsupported storage provider: %s", cfg.Storage.Provider)
	}
}

// LocalStorage implements the Storage interface on the local filesystem.
type LocalStorage struct {
	basePath  string
	publicURL string
}

// NewLocalStorage returns a provider rooted at basePath.
func NewLocalStorage(basePath, publicURL string) *LocalStorage {
	return &LocalStorage{basePath: basePath, publicURL: publicURL}
}

// Upload stores a file under the base path.
func (l *LocalStorage) Upload(reader io.Reader, filename string) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %v", err)
	}
	return l.UploadBytes(data, filename)
}

// UploadBytes stores raw bytes under the base path.
func (l *LocalStorage) UploadBytes(data []byte, filename string) (string, error) {
	key := filepath.Clean(filename)
	path := filepath.Join(l.basePath, key)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("failed to create storage dir: %v", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("failed to write file: %v", err)
	}
	return key, nil
}

// Download opens a stored file.
func (l *LocalStorage) Download(path string) (io.ReadCloser, error) {
	f, err := os.Open(filepath.Join(l.basePath, filepath.Clean(path)))
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %v", err)
	}
	return f, nil
}

// Delete removes a stored file.
func (l *LocalStorage) Delete(path string) error {
	if err := os.Remove(filepath.Join(l.basePath, filepath.Clean(path))); err != nil {
		return fmt.Errorf("failed to delete file: %v", err)
	}
	return nil
}

// GetPublicURL returns the URL a client fetches the file from.
func (l *LocalStorage) GetPublicURL(path string) string {
	return fmt.Sprintf("%s/%s", l.publicURL, path)
}

// S3Storage implements the Storage interface for AWS S3.
type S3Storage struct {
	client    *s3.Client
	bucket    string
	publicURL string
}

// NewS3Storage creates a new S3 storage instance.
func NewS3Storage(s3cfg config.S3Config) (*S3Storage, error) {
	cfg := aws.Config{
		Region: s3cfg.Region,
		Credentials: credentials.NewStaticCredentialsProvider(
			s3cfg.AccessKeyID,
			s3cfg.SecretAccessKey,
			"",
		),
	}

	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		if s3cfg.Endpoint != "" {
			o.BaseEndpoint = aws.String(s3cfg.Endpoint)
		}
		o.UsePathStyle = s3cfg.ForcePathStyle
	})

	return &S3Storage{
		client:    client,
		bucket:    s3cfg.BucketName,
		publicURL: s3cfg.PublicURL,
	}, nil
}

// Upload uploads a file to S3.
func (s *S3Storage) Upload(reader io.Reader, filename string) (string, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %v", err)
	}
	return s.UploadBytes(data, filename)
}

// UploadBytes uploads bytes to S3.
func (s *S3Storage) UploadBytes(data []byte, filename string) (string, error) {
	key := filepath.Clean(filename)
	_, err := s.client.PutObject(context.Background(), &s3.PutObjectInput{
		Body:   bytes.NewReader(data),
		Bucket: aws.String(s.bucket),
		Key:    aws.String(key),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file to S3: %v", err)
	}
	return key, nil
}

// Download downloads a file from S3.
func (s *S3Storage) Download(path string) (io.ReadCloser, error) {
	result, err := s.client.GetObject(context.Background(), &s3.GetObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to download file from S3: %v", err)
	}
	return result.Body, nil
}

// Delete deletes a file from S3.
func (s *S3Storage) Delete(path string) error {
	_, err := s.client.DeleteObject(context.Background(), &s3.DeleteObjectInput{
		Bucket: aws.String(s.bucket),
		Key:    aws.String(path),
	})
	if err != nil {
		return fmt.Errorf("failed to delete file from S3: %v", err)
	}
	return nil
}

// GetPublicURL returns the public URL for a file in S3.
func (s *S3Storage) GetPublicURL(path string) string {
	if s.publicURL != "" {
		return fmt.Sprintf("%s/%s", s.publicURL, path)
	}
	return fmt.Sprintf("https://%s.s3.amazonaws.com/%s", s.bucket, path)
}
