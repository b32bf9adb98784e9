// Package storage persists exported documents to S3-compatible object
// storage so users can re-download them later.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"net/url"
	"sort"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// File describes one stored document.
type File struct {
	Name      string    `json:"name"`
	URL       string    `json:"url"`
	Size      int64     `json:"size"`
	CreatedAt time.Time `json:"createdAt"`
}

// Config holds object storage connection settings.
type Config struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

// Store is a MinIO-backed document store. Objects are laid out as
// documents/<ownerID>/<fileName> so listing stays per-user.
type Store struct {
	client *minio.Client
	bucket string
}

// linkTTL is how long presigned download links stay valid.
const linkTTL = 24 * time.Hour

// NewStore connects to object storage and ensures the bucket exists.
func NewStore(ctx context.Context, cfg Config) (*Store, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKey, cfg.SecretKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("connect to object storage: %w", err)
	}

	exists, err := client.BucketExists(ctx, cfg.Bucket)
	if err != nil {
		return nil, fmt.Errorf("check bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.Bucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("create bucket: %w", err)
		}
	}

	return &Store{client: client, bucket: cfg.Bucket}, nil
}

func objectKey(ownerID, fileName string) string {
	return "documents/" + ownerID + "/" + fileName
}

// Upload stores a document and returns a presigned download URL.
func (s *Store) Upload(ctx context.Context, ownerID, fileName string, data []byte, contentType string) (string, error) {
	key := objectKey(ownerID, fileName)

	_, err := s.client.PutObject(ctx, s.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: contentType,
	})
	if err != nil {
		return "", fmt.Errorf("upload document: %w", err)
	}

	return s.presign(ctx, key, fileName)
}

// List returns the user's stored documents, newest first.
func (s *Store) List(ctx context.Context, ownerID string) ([]File, error) {
	prefix := "documents/" + ownerID + "/"

	var files []File
	for obj := range s.client.ListObjects(ctx, s.bucket, minio.ListObjectsOptions{
		Prefix:    prefix,
		Recursive: true,
	}) {
		if obj.Err != nil {
			return nil, fmt.Errorf("list documents: %w", obj.Err)
		}
		name := obj.Key[len(prefix):]
		link, err := s.presign(ctx, obj.Key, name)
		if err != nil {
			return nil, err
		}
		files = append(files, File{
			Name:      name,
			URL:       link,
			Size:      obj.Size,
			CreatedAt: obj.LastModified,
		})
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].CreatedAt.After(files[j].CreatedAt)
	})
	return files, nil
}

// Delete removes a stored document.
func (s *Store) Delete(ctx context.Context, ownerID, fileName string) error {
	key := objectKey(ownerID, fileName)
	if err := s.client.RemoveObject(ctx, s.bucket, key, minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	return nil
}

func (s *Store) presign(ctx context.Context, key, fileName string) (string, error) {
	params := url.Values{}
	params.Set("response-content-disposition", fmt.Sprintf("attachment; filename=%q", fileName))

	link, err := s.client.PresignedGetObject(ctx, s.bucket, key, linkTTL, params)
	if err != nil {
		return "", fmt.Errorf("presign document url: %w", err)
	}
	return link.String(), nil
}
