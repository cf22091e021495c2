package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
	"github.com/johnquangdev/meeting-scribe/internal/domain/repositories"
)

// FilesystemArtifactRepository stores one JSON document per meeting id under a
// directory. There is no locking: concurrent writes to distinct ids are safe,
// and each Put replaces the record wholesale via a temp-file rename.
type FilesystemArtifactRepository struct {
	dir string
}

// NewFilesystemArtifactRepository creates the repository and its directory
func NewFilesystemArtifactRepository(dir string) (*FilesystemArtifactRepository, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create artifact dir: %w", err)
	}
	return &FilesystemArtifactRepository{dir: dir}, nil
}

// Put writes the artifact record for id, replacing any existing record
func (r *FilesystemArtifactRepository) Put(ctx context.Context, id string, artifact *entities.MeetingArtifact) error {
	if !entities.ValidateArtifactID(id) {
		return repositories.ErrInvalidID
	}

	data, err := json.MarshalIndent(artifact, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal artifact: %w", err)
	}

	// Write to a temp file first so readers only ever see complete records.
	final := r.recordPath(id)
	tmp, err := os.CreateTemp(r.dir, id+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp record: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("write record: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("close record: %w", err)
	}
	if err := os.Rename(tmp.Name(), final); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("rename record: %w", err)
	}
	return nil
}

// Get reads the artifact record for id
func (r *FilesystemArtifactRepository) Get(ctx context.Context, id string) (*entities.MeetingArtifact, error) {
	if !entities.ValidateArtifactID(id) {
		return nil, repositories.ErrInvalidID
	}

	data, err := os.ReadFile(r.recordPath(id))
	if err != nil {
		if os.IsNotExist(err) {
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

// Delete removes the artifact record for id. Deleting a record that does not
// exist is not an error, and sidecar data is left untouched.
func (r *FilesystemArtifactRepository) Delete(ctx context.Context, id string) error {
	if !entities.ValidateArtifactID(id) {
		return repositories.ErrInvalidID
	}

	if err := os.Remove(r.recordPath(id)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("delete record: %w", err)
	}
	return nil
}

// PutMemo writes the raw memo sidecar next to the record
func (r *FilesystemArtifactRepository) PutMemo(ctx context.Context, id string, memo *entities.Memo) error {
	if !entities.ValidateArtifactID(id) {
		return repositories.ErrInvalidID
	}

	data, err := json.MarshalIndent(memo, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal memo: %w", err)
	}
	if err := os.WriteFile(r.memoPath(id), data, 0o644); err != nil {
		return fmt.Errorf("write memo sidecar: %w", err)
	}
	return nil
}

func (r *FilesystemArtifactRepository) recordPath(id string) string {
	return filepath.Join(r.dir, id+".json")
}

func (r *FilesystemArtifactRepository) memoPath(id string) string {
	return filepath.Join(r.dir, id+".memo.json")
}
