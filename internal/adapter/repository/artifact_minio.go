package repository

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"io"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"

	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
	"github.com/johnquangdev/meeting-scribe/internal/domain/repositories"
	"github.com/johnquangdev/meeting-scribe/pkg/config"
)

// MinIOArtifactRepository stores artifact records as JSON objects in a MinIO
// bucket. Same contract as the filesystem backend, for deployments that want
// durable shared storage.
type MinIOArtifactRepository struct {
	client *minio.Client
	bucket string
}

// NewMinIOArtifactRepository creates a MinIO-backed repository and ensures the
// bucket exists
func NewMinIOArtifactRepository(cfg *config.StorageConfig) (*MinIOArtifactRepository, error) {
	client, err := minio.New(cfg.Endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.AccessKeyID, cfg.SecretAccessKey, ""),
		Secure: cfg.UseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	repo := &MinIOArtifactRepository{client: client, bucket: cfg.BucketName}

	ctx := context.Background()
	exists, err := client.BucketExists(ctx, cfg.BucketName)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}
	if !exists {
		if err := client.MakeBucket(ctx, cfg.BucketName, minio.MakeBucketOptions{}); err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	return repo, nil
}

// Put writes the artifact record for id, replacing any existing object
func (r *MinIOArtifactRepository) Put(ctx context.Context, id string, artifact *entities.MeetingArtifact) error {
	if !entities.ValidateArtifactID(id) {
		return repositories.ErrInvalidID
	}

	data, err := json.Marshal(artifact)
	if err != nil {
		return fmt.Errorf("marshal artifact: %w", err)
	}
	return r.putObject(ctx, r.recordKey(id), data)
}

// Get reads the artifact record for id
func (r *MinIOArtifactRepository) Get(ctx context.Context, id string) (*entities.MeetingArtifact, error) {
	if !entities.ValidateArtifactID(id) {
		return nil, repositories.ErrInvalidID
	}

	obj, err := r.client.GetObject(ctx, r.bucket, r.recordKey(id), minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("get record: %w", err)
	}
	defer obj.Close()

	data, err := io.ReadAll(obj)
	if err != nil {
		if isNoSuchKey(err) {
			return nil, repositories.ErrNotFound
		}
		return nil, fmt.Errorf("read record: %w", err)
	}

	var artifact entities.MeetingArtifact
	if err := json.Unmarshal(data, &artifact); err != nil {
		return nil, fmt.Errorf("decode record: %w", err)
	}
	return &artifact, nil
}

// Delete removes the artifact record for id. RemoveObject on a missing key is
// a no-op, which matches the idempotent delete contract.
func (r *MinIOArtifactRepository) Delete(ctx context.Context, id string) error {
	if !entities.ValidateArtifactID(id) {
		return repositories.ErrInvalidID
	}
	if err := r.client.RemoveObject(ctx, r.bucket, r.recordKey(id), minio.RemoveObjectOptions{}); err != nil {
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}

// PutMemo writes the raw memo sidecar object
func (r *MinIOArtifactRepository) PutMemo(ctx context.Context, id string, memo *entities.Memo) error {
	if !entities.ValidateArtifactID(id) {
		return repositories.ErrInvalidID
	}

	data, err := json.Marshal(memo)
	if err != nil {
		return fmt.Errorf("marshal memo: %w", err)
	}
	return r.putObject(ctx, r.memoKey(id), data)
}

func (r *MinIOArtifactRepository) putObject(ctx context.Context, key string, data []byte) error {
	_, err := r.client.PutObject(ctx, r.bucket, key, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("put object %s: %w", key, err)
	}
	return nil
}

func (r *MinIOArtifactRepository) recordKey(id string) string {
	return id + ".json"
}

func (r *MinIOArtifactRepository) memoKey(id string) string {
	return id + ".memo.json"
}

func isNoSuchKey(err error) bool {
	var resp minio.ErrorResponse
	if stderrors.As(err, &resp) {
		return resp.Code == "NoSuchKey"
	}
	return false
}
