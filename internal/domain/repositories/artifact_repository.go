package repositories

import (
	"context"
	"errors"

	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
)

// Store errors. ErrInvalidID means the id itself is malformed; ErrNotFound
// means the id is well-formed but no record backs it. Callers must keep the
// two distinct.
var (
	ErrInvalidID = errors.New("malformed artifact id")
	ErrNotFound  = errors.New("artifact not found")
)

// ArtifactRepository is the minimal key-value capability backing the pipeline.
// Implementations validate ids before touching the backend, replace records
// wholesale on Put, and treat Delete of a missing record as success.
type ArtifactRepository interface {
	Put(ctx context.Context, id string, artifact *entities.MeetingArtifact) error
	Get(ctx context.Context, id string) (*entities.MeetingArtifact, error)
	Delete(ctx context.Context, id string) error

	// PutMemo stores the raw structured memo as a sidecar for inspection.
	// Sidecars are best-effort and never removed by Delete.
	PutMemo(ctx context.Context, id string, memo *entities.Memo) error
}
