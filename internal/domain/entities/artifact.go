package entities

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MeetingArtifact is the canonical persisted record of one processed meeting.
// Once written it is replaced wholesale or deleted, never partially mutated.
type MeetingArtifact struct {
	ID               string    `json:"id"`
	CreatedAt        time.Time `json:"created_at"`
	SourceFilename   string    `json:"source_filename,omitempty"`
	OriginalLanguage string    `json:"original_language,omitempty"`
	WasTranslated    bool      `json:"was_translated"`
	Transcript       string    `json:"transcript"`
	Summary          string    `json:"summary"`
	ActionItems      []string  `json:"action_items"`
}

// NewMeetingArtifact creates a new MeetingArtifact with a fresh id
func NewMeetingArtifact(sourceFilename string) *MeetingArtifact {
	return &MeetingArtifact{
		ID:             NewArtifactID(),
		CreatedAt:      time.Now().UTC(),
		SourceFilename: sourceFilename,
		ActionItems:    []string{},
	}
}

// Artifact ids: charset [A-Za-z0-9_-], length 6-80.
var artifactIDPattern = regexp.MustCompile(`^[A-Za-z0-9_-]{6,80}$`)

// ValidateArtifactID reports whether id is a well-formed artifact id.
// Every store and retrieval path must check this before touching the backend.
func ValidateArtifactID(id string) bool {
	return artifactIDPattern.MatchString(id)
}

// NewArtifactID generates a collision-resistant artifact id: a readable
// timestamp prefix plus a random suffix. The suffix makes concurrent requests
// in the same second safe, which a bare timestamp id would not be.
func NewArtifactID() string {
	ts := time.Now().UTC().Format("20060102_150405")
	suffix := strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
	return ts + "_" + suffix
}
