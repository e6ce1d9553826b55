package media

import (
	"context"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
)

// ObjectClient is the part of *minio.Client the S3 backend needs.
type ObjectClient interface {
	PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, objectSize int64, opts minio.PutObjectOptions) (minio.UploadInfo, error)
	StatObject(ctx context.Context, bucketName, objectName string, opts minio.StatObjectOptions) (minio.ObjectInfo, error)
	RemoveObject(ctx context.Context, bucketName, objectName string, opts minio.RemoveObjectOptions) error
	GetObject(ctx context.Context, bucketName, objectName string, opts minio.GetObjectOptions) (*minio.Object, error)
}

// S3Backend keeps images in one bucket; the key is the object name.
type S3Backend struct {
	client ObjectClient
	bucket string
}

func NewS3Backend(client ObjectClient, bucket string) *S3Backend {
	return &S3Backend{client: client, bucket: bucket}
}

func (b *S3Backend) Write(ctx context.Context, key string, r io.Reader, size int64, contentType string) error {
	clean, ok := CleanKey(key)
	if !ok {
		return fmt.Errorf("invalid image key %q", key)
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	_, err := b.client.PutObject(ctx, b.bucket, clean, r, size, minio.PutObjectOptions{ContentType: contentType})
	if err != nil {
		return fmt.Errorf("put object %s: %w", clean, err)
	}
	return nil
}

// Remove reports ErrObjectNotFound for missing keys; RemoveObject alone
// succeeds silently on them.
func (b *S3Backend) Remove(ctx context.Context, key string) error {
	clean, ok := CleanKey(key)
	if !ok {
		return fmt.Errorf("invalid image key %q", key)
	}
	if _, err := b.client.StatObject(ctx, b.bucket, clean, minio.StatObjectOptions{}); err != nil {
		if isNoSuchKey(err) {
			return ErrObjectNotFound
		}
		return fmt.Errorf("stat object %s: %w", clean, err)
	}
	if err := b.client.RemoveObject(ctx, b.bucket, clean, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("remove object %s: %w", clean, err)
	}
	return nil
}

func (b *S3Backend) Open(ctx context.Context, key string) (*Object, error) {
	clean, ok := CleanKey(key)
	if !ok {
		return nil, ErrObjectNotFound
	}
	info, err := b.client.StatObject(ctx, b.bucket, clean, minio.StatObjectOptions{})
	if err != nil {
		if isNoSuchKey(err) {
			return nil, ErrObjectNotFound
		}
		return nil, err
	}
	obj, err := b.client.GetObject(ctx, b.bucket, clean, minio.GetObjectOptions{})
	if err != nil {
		return nil, err
	}
	return &Object{Body: obj, Size: info.Size, ContentType: info.ContentType}, nil
}

func isNoSuchKey(err error) bool {
	code := minio.ToErrorResponse(err).Code
	return code == "NoSuchKey" || code == "NotFound"
}
