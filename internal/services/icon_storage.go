package services

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"toyshop/internal/catalog"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

var (
	ErrIconNotFound    = errors.New("icon not found")
	ErrUnsupportedIcon = errors.New("unsupported icon type")
)

// iconContentTypes maps the accepted upload extensions to their content type.
var iconContentTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".gif":  "image/gif",
	".webp": "image/webp",
	".svg":  "image/svg+xml",
}

// IconObject is an uploaded icon opened for reading.
type IconObject struct {
	Body        io.ReadCloser
	Size        int64
	ContentType string
	ModTime     time.Time
}

type IconStorage interface {
	// Upload stores an icon under a generated name and returns that name.
	Upload(ctx context.Context, filename string, reader io.Reader, size int64) (string, error)
	Open(ctx context.Context, name string) (*IconObject, error)
	Delete(ctx context.Context, name string) error
	EnsureBucket(ctx context.Context) error
	Ready(ctx context.Context) error
}

type minioIconStorage struct {
	client *minio.Client
	bucket string
	now    func() time.Time
}

func NewIconStorage(endpoint, accessKey, secretKey string, useSSL bool, bucket string) (IconStorage, error) {
	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(accessKey, secretKey, ""),
		Secure: useSSL,
	})
	if err != nil {
		return nil, err
	}
	return &minioIconStorage{client: client, bucket: bucket, now: time.Now}, nil
}

// NewIconName returns "<unix millis>-<uuid><ext>", the name shape the catalog recognises as an
// upload. Only image extensions are accepted.
func NewIconName(filename string, now time.Time) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	if _, ok := iconContentTypes[ext]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnsupportedIcon, ext)
	}
	return fmt.Sprintf("%d-%s%s", now.UnixMilli(), uuid.NewString(), ext), nil
}

// ValidIconName reports whether name can be served from the uploads path.
func ValidIconName(name string) bool {
	if name == "" || strings.ContainsAny(name, `/\`) || strings.Contains(name, "..") {
		return false
	}
	return catalog.IsUploadedName(name)
}

func (m *minioIconStorage) Upload(ctx context.Context, filename string, reader io.Reader, size int64) (string, error) {
	name, err := NewIconName(filename, m.now())
	if err != nil {
		return "", err
	}
	_, err = m.client.PutObject(ctx, m.bucket, name, reader, size, minio.PutObjectOptions{
		ContentType: iconContentTypes[filepath.Ext(name)],
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload icon: %w", err)
	}
	return name, nil
}

func (m *minioIconStorage) Open(ctx context.Context, name string) (*IconObject, error) {
	if !ValidIconName(name) {
		return nil, ErrIconNotFound
	}
	obj, err := m.client.GetObject(ctx, m.bucket, name, minio.GetObjectOptions{})
	if err != nil {
		return nil, mapMinioError(err)
	}
	info, err := obj.Stat()
	if err != nil {
		_ = obj.Close()
		return nil, mapMinioError(err)
	}
	return &IconObject{
		Body:        obj,
		Size:        info.Size,
		ContentType: info.ContentType,
		ModTime:     info.LastModified,
	}, nil
}

func (m *minioIconStorage) Delete(ctx context.Context, name string) error {
	if !ValidIconName(name) {
		return nil
	}
	return m.client.RemoveObject(ctx, m.bucket, name, minio.RemoveObjectOptions{})
}

func (m *minioIconStorage) EnsureBucket(ctx context.Context) error {
	found, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return err
	}
	if !found {
		return m.client.MakeBucket(ctx, m.bucket, minio.MakeBucketOptions{})
	}
	return nil
}

func (m *minioIconStorage) Ready(ctx context.Context) error {
	found, err := m.client.BucketExists(ctx, m.bucket)
	if err != nil {
		return err
	}
	if !found {
		return fmt.Errorf("bucket %q does not exist", m.bucket)
	}
	return nil
}

func mapMinioError(err error) error {
	switch minio.ToErrorResponse(err).Code {
	case "NoSuchKey", "NoSuchBucket":
		return ErrIconNotFound
	}
	return err
}
