package meeting

// ProcessMeetingRequest carries the non-file fields of the multipart upload.
// The audio itself arrives as the "audio_file" part.
type ProcessMeetingRequest struct {
	Agenda string `form:"agenda" json:"agenda"`
}

// RevealTranscriptRequest asks the server to reveal a saved transcript file
// in the local file manager
type RevealTranscriptRequest struct {
	Filename string `json:"filename" validate:"required"`
}
