package ai

import (
	"context"
	"fmt"
	"io"
	"os"

	aai "github.com/AssemblyAI/assemblyai-go-sdk"

	"github.com/johnquangdev/meeting-scribe/pkg/config"
)

// TranscriptResult is the outcome of one transcription call. LanguageHint is
// best-effort: it may be empty or wrong and callers must not rely on it.
type TranscriptResult struct {
	Text         string
	LanguageHint string
}

// AssemblyAIClient wraps the official AssemblyAI SDK for synchronous
// audio-to-text transcription
type AssemblyAIClient struct {
	client *aai.Client
}

// NewAssemblyAIClient creates an AssemblyAI client using the provided config.
// If cfg is nil, falls back to environment variables.
func NewAssemblyAIClient(cfg *config.AssemblyAIConfig) *AssemblyAIClient {
	var apiKey string
	if cfg != nil {
		apiKey = cfg.APIKey
	}
	if apiKey == "" {
		apiKey = os.Getenv("ASSEMBLYAI_API_KEY")
	}
	return &AssemblyAIClient{
		client: aai.NewClient(apiKey),
	}
}

// Transcribe uploads the audio stream and blocks until AssemblyAI finishes
// processing it. Returns the transcript text and a detected-language hint.
func (c *AssemblyAIClient) Transcribe(ctx context.Context, audio io.Reader) (*TranscriptResult, error) {
	params := &aai.TranscriptOptionalParams{
		LanguageDetection: aai.Bool(true),
	}

	transcript, err := c.client.Transcripts.TranscribeFromReader(ctx, audio, params)
	if err != nil {
		return nil, fmt.Errorf("assemblyai transcription: %w", err)
	}

	if transcript.Status == aai.TranscriptStatusError {
		msg := "transcription failed"
		if transcript.Error != nil {
			msg = *transcript.Error
		}
		return nil, fmt.Errorf("assemblyai: %s", msg)
	}

	result := &TranscriptResult{}
	if transcript.Text != nil {
		result.Text = *transcript.Text
	}
	if transcript.LanguageCode != "" {
		result.LanguageHint = string(transcript.LanguageCode)
	}

	if result.Text == "" {
		return nil, fmt.Errorf("assemblyai returned an empty transcript")
	}

	return result, nil
}
