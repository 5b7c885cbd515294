// Package storage handles object storage for user-uploaded media.
package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"socialconnect/internal/config"
	"socialconnect/internal/models"

	"github.com/disintegration/imaging"
	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
)

// AvatarSize is the square edge length avatars are normalized to.
const AvatarSize = 256

// AvatarStore persists processed avatar images and returns their public URLs.
type AvatarStore interface {
	Upload(ctx context.Context, userID uint, r io.Reader) (string, error)
	Delete(ctx context.Context, userID uint) error
}

type minioAvatarStore struct {
	client    *minio.Client
	bucket    string
	publicURL string
}

// NewAvatarStore connects to the object storage backend and verifies the
// avatar bucket exists, creating it when missing.
func NewAvatarStore(cfg *config.Config) (AvatarStore, error) {
	client, err := minio.New(cfg.StorageEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.StorageAccess, cfg.StorageSecret, ""),
		Secure: cfg.StorageUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize storage client: %w", err)
	}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.StorageBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check storage bucket: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.StorageBucket, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create storage bucket: %w", err)
		}
	}

	return &minioAvatarStore{
		client:    client,
		bucket:    cfg.StorageBucket,
		publicURL: cfg.StoragePublicURL,
	}, nil
}

// Upload decodes the image, center-crops it to a square, resizes to
// AvatarSize and stores it as JPEG under a per-user object name. Re-uploading
// overwrites the previous avatar.
func (s *minioAvatarStore) Upload(ctx context.Context, userID uint, r io.Reader) (string, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return "", models.NewValidationError("Unsupported or corrupt image file")
	}

	resized := imaging.Fill(img, AvatarSize, AvatarSize, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.JPEG, imaging.JPEGQuality(85)); err != nil {
		return "", models.NewInternalError(err)
	}

	objectName := s.objectName(userID)
	_, err = s.client.PutObject(ctx, s.bucket, objectName, &buf, int64(buf.Len()), minio.PutObjectOptions{
		ContentType: "image/jpeg",
	})
	if err != nil {
		return "", models.NewInternalError(fmt.Errorf("failed to upload avatar: %w", err))
	}

	return fmt.Sprintf("%s/%s/%s", s.publicURL, s.bucket, objectName), nil
}

func (s *minioAvatarStore) Delete(ctx context.Context, userID uint) error {
	err := s.client.RemoveObject(ctx, s.bucket, s.objectName(userID), minio.RemoveObjectOptions{})
	if err != nil {
		return models.NewInternalError(fmt.Errorf("failed to delete avatar: %w", err))
	}
	return nil
}

func (s *minioAvatarStore) objectName(userID uint) string {
	return fmt.Sprintf("avatars/%d.jpg", userID)
}
