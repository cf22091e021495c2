package pipeline

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	apperrors "github.com/johnquangdev/meeting-scribe/errors"
	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
	"github.com/johnquangdev/meeting-scribe/internal/domain/repositories"
	"github.com/johnquangdev/meeting-scribe/internal/usecase/extract"
	"github.com/johnquangdev/meeting-scribe/internal/usecase/language"
	"github.com/johnquangdev/meeting-scribe/pkg/ai"
	"github.com/johnquangdev/meeting-scribe/pkg/retry"
)

// Transcriber is the speech-to-text capability. Any failure is fatal to the
// request: without a transcript no other stage can proceed.
type Transcriber interface {
	Transcribe(ctx context.Context, audio io.Reader) (*ai.TranscriptResult, error)
}

// Normalizer is the language detection/translation capability
type Normalizer interface {
	Normalize(ctx context.Context, text, hint string) language.Result
}

// Extractor is the memo extraction capability
type Extractor interface {
	Extract(ctx context.Context, transcript, agenda string) extract.Result
}

// Sweeper is the retention housekeeping capability
type Sweeper interface {
	Sweep() int
}

// ProcessInput is one inbound meeting recording
type ProcessInput struct {
	SourceFilename string
	Audio          io.Reader
	Agenda         string
}

// ProcessResult is everything the caller gets back in-band. It is populated
// even when persistence failed, so the user always receives the computed
// output; Stored reports whether the artifact is retrievable later.
type ProcessResult struct {
	ArtifactID       string
	Transcript       string
	Summary          string
	ActionItems      []string
	DetectedLanguage string
	WasTranslated    bool
	TranscriptFile   string
	Stored           bool
}

// Service runs the meeting-processing pipeline
type Service interface {
	ProcessMeeting(ctx context.Context, input ProcessInput) (*ProcessResult, error)
}

type pipelineService struct {
	transcriber   Transcriber
	normalizer    Normalizer
	extractor     Extractor
	artifactRepo  repositories.ArtifactRepository
	sweeper       Sweeper
	policy        retry.Policy
	transcriptDir string
	logger        *zap.Logger
}

// NewService constructs the pipeline service
func NewService(
	transcriber Transcriber,
	normalizer Normalizer,
	extractor Extractor,
	artifactRepo repositories.ArtifactRepository,
	sweeper Sweeper,
	policy retry.Policy,
	transcriptDir string,
	logger *zap.Logger,
) Service {
	return &pipelineService{
		transcriber:   transcriber,
		normalizer:    normalizer,
		extractor:     extractor,
		artifactRepo:  artifactRepo,
		sweeper:       sweeper,
		policy:        policy,
		transcriptDir: transcriptDir,
		logger:        logger,
	}
}

// ProcessMeeting executes one synchronous pipeline run: retention sweep,
// transcription, language normalization, memo extraction, persistence. Only
// transcription failure aborts the run; every later stage degrades.
func (s *pipelineService) ProcessMeeting(ctx context.Context, input ProcessInput) (*ProcessResult, error) {
	if s.sweeper != nil {
		removed := s.sweeper.Sweep()
		if removed > 0 && s.logger != nil {
			s.logger.Info("retention sweep finished", zap.Int("files_removed", removed))
		}
	}

	var transcribed *ai.TranscriptResult
	err := s.policy.Do(ctx, func() error {
		var callErr error
		transcribed, callErr = s.transcriber.Transcribe(ctx, input.Audio)
		return callErr
	})
	if err != nil {
		if s.logger != nil {
			s.logger.Error("transcription failed",
				zap.String("source_filename", input.SourceFilename),
				zap.Error(err),
			)
		}
		return nil, apperrors.ErrTranscriptionFailed(err)
	}

	if s.logger != nil {
		s.logger.Info("transcription complete",
			zap.String("source_filename", input.SourceFilename),
			zap.Int("text_length", len(transcribed.Text)),
			zap.String("language_hint", transcribed.LanguageHint),
		)
	}

	transcriptFile := s.saveTranscript(input.SourceFilename, transcribed.Text)

	normalized := s.normalizer.Normalize(ctx, transcribed.Text, transcribed.LanguageHint)
	if normalized.WasTranslated && s.logger != nil {
		s.logger.Info("transcript translated to working language",
			zap.String("detected_language", normalized.DetectedLanguage),
		)
	}

	extracted := s.extractor.Extract(ctx, normalized.WorkingText, input.Agenda)

	artifact := entities.NewMeetingArtifact(input.SourceFilename)
	artifact.OriginalLanguage = normalized.DetectedLanguage
	artifact.WasTranslated = normalized.WasTranslated
	artifact.Transcript = transcribed.Text
	artifact.Summary = extracted.Summary
	artifact.ActionItems = extracted.ActionItems

	stored := true
	if err := s.artifactRepo.Put(ctx, artifact.ID, artifact); err != nil {
		// The user still receives the computed result in-band; the record is
		// just not retrievable later.
		stored = false
		if s.logger != nil {
			s.logger.Error("failed to persist meeting artifact",
				zap.String("artifact_id", artifact.ID),
				zap.Error(err),
			)
		}
	} else if extracted.Memo != nil {
		if err := s.artifactRepo.PutMemo(ctx, artifact.ID, extracted.Memo); err != nil && s.logger != nil {
			s.logger.Warn("failed to persist memo sidecar",
				zap.String("artifact_id", artifact.ID),
				zap.Error(err),
			)
		}
	}

	return &ProcessResult{
		ArtifactID:       artifact.ID,
		Transcript:       artifact.Transcript,
		Summary:          artifact.Summary,
		ActionItems:      artifact.ActionItems,
		DetectedLanguage: artifact.OriginalLanguage,
		WasTranslated:    artifact.WasTranslated,
		TranscriptFile:   transcriptFile,
		Stored:           stored,
	}, nil
}

// saveTranscript writes the raw transcript next to the intake files. Failure
// is not fatal: the user still sees the text in the response.
func (s *pipelineService) saveTranscript(sourceFilename, text string) string {
	if s.transcriptDir == "" {
		return ""
	}

	base := strings.TrimSuffix(filepath.Base(sourceFilename), filepath.Ext(sourceFilename))
	if base == "" || base == "." {
		base = "transcript"
	}
	name := base + ".txt"

	if err := os.MkdirAll(s.transcriptDir, 0o755); err != nil {
		if s.logger != nil {
			s.logger.Warn("cannot create transcript dir", zap.Error(err))
		}
		return ""
	}
	if err := os.WriteFile(filepath.Join(s.transcriptDir, name), []byte(text), 0o644); err != nil {
		if s.logger != nil {
			s.logger.Warn("cannot save transcript file",
				zap.String("filename", name),
				zap.Error(err),
			)
		}
		return ""
	}
	return name
}
