package meeting

import "time"

// ProcessMeetingResponse is the in-band result of one pipeline run. It is
// returned even when the artifact could not be persisted; Stored tells the
// client whether the record can be fetched again later.
type ProcessMeetingResponse struct {
	ArtifactID       string   `json:"artifact_id"`
	Transcript       string   `json:"transcript"`
	Summary          string   `json:"summary"`
	ActionItems      []string `json:"action_items"`
	DetectedLanguage string   `json:"detected_language,omitempty"`
	WasTranslated    bool     `json:"was_translated"`
	TranscriptFile   string   `json:"transcript_file,omitempty"`
	Stored           bool     `json:"stored"`
}

// ArtifactResponse is a stored meeting artifact
type ArtifactResponse struct {
	ID               string    `json:"id"`
	CreatedAt        time.Time `json:"created_at"`
	SourceFilename   string    `json:"source_filename,omitempty"`
	OriginalLanguage string    `json:"original_language,omitempty"`
	WasTranslated    bool      `json:"was_translated"`
	Transcript       string    `json:"transcript"`
	Summary          string    `json:"summary"`
	ActionItems      []string  `json:"action_items"`
}
