package handler

import (
	stdErrors "errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-scribe/errors"
	"github.com/johnquangdev/meeting-scribe/internal/adapter/dto/meeting"
	"github.com/johnquangdev/meeting-scribe/internal/domain/repositories"
	"github.com/johnquangdev/meeting-scribe/internal/usecase/pipeline"
	"github.com/johnquangdev/meeting-scribe/internal/usecase/report"
	"github.com/johnquangdev/meeting-scribe/pkg/config"
)

const (
	docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"
	xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

// Meeting handles meeting processing and artifact endpoints
type Meeting struct {
	pipeline     pipeline.Service
	artifactRepo repositories.ArtifactRepository
	renderer     *report.Renderer
	cfg          *config.Config
	logger       *zap.Logger
}

// NewMeeting creates a new meeting handler
func NewMeeting(
	pipelineService pipeline.Service,
	artifactRepo repositories.ArtifactRepository,
	renderer *report.Renderer,
	cfg *config.Config,
	logger *zap.Logger,
) *Meeting {
	return &Meeting{
		pipeline:     pipelineService,
		artifactRepo: artifactRepo,
		renderer:     renderer,
		cfg:          cfg,
		logger:       logger,
	}
}

// ProcessMeeting accepts an uploaded audio file, runs the processing pipeline
// synchronously, and returns the result in-band
func (h *Meeting) ProcessMeeting(c echo.Context) error {
	ctx := c.Request().Context()

	fileHeader, err := c.FormFile("audio_file")
	if err != nil {
		return HandleError(h.logger, c, errors.ErrMissingUpload())
	}
	if fileHeader.Size == 0 {
		return HandleError(h.logger, c, errors.ErrEmptyUpload(fileHeader.Filename))
	}
	if fileHeader.Size > h.cfg.Upload.MaxBytes {
		return HandleError(h.logger, c, errors.ErrUploadTooLarge(h.cfg.Upload.MaxBytes))
	}

	agenda := c.FormValue("agenda")

	uploadPath, err := h.saveUpload(fileHeader)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}
	defer h.removeUpload(uploadPath)

	audio, err := os.Open(uploadPath)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}
	defer audio.Close()

	result, err := h.pipeline.ProcessMeeting(ctx, pipeline.ProcessInput{
		SourceFilename: fileHeader.Filename,
		Audio:          audio,
		Agenda:         agenda,
	})
	if err != nil {
		return HandleError(h.logger, c, err)
	}

	return HandleSuccess(h.logger, c, meeting.ProcessMeetingResponse{
		ArtifactID:       result.ArtifactID,
		Transcript:       result.Transcript,
		Summary:          result.Summary,
		ActionItems:      result.ActionItems,
		DetectedLanguage: result.DetectedLanguage,
		WasTranslated:    result.WasTranslated,
		TranscriptFile:   result.TranscriptFile,
		Stored:           result.Stored,
	})
}

// GetArtifact returns a stored meeting artifact by id
func (h *Meeting) GetArtifact(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	artifact, err := h.artifactRepo.Get(ctx, id)
	if err != nil {
		return HandleError(h.logger, c, h.mapRepoError(id, err))
	}

	return HandleSuccess(h.logger, c, meeting.ArtifactResponse{
		ID:               artifact.ID,
		CreatedAt:        artifact.CreatedAt,
		SourceFilename:   artifact.SourceFilename,
		OriginalLanguage: artifact.OriginalLanguage,
		WasTranslated:    artifact.WasTranslated,
		Transcript:       artifact.Transcript,
		Summary:          artifact.Summary,
		ActionItems:      artifact.ActionItems,
	})
}

// GetReport renders a stored artifact as a .docx report and streams it
func (h *Meeting) GetReport(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	artifact, err := h.artifactRepo.Get(ctx, id)
	if err != nil {
		return HandleError(h.logger, c, h.mapRepoError(id, err))
	}

	data, err := h.renderer.RenderDocx(artifact)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrReportExportFailed("docx", err))
	}

	filename := fmt.Sprintf("meeting_report_%s.docx", artifact.ID)
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK, docxContentType, data)
}

// GetActionWorkbook renders a stored artifact's action items as an .xlsx
// workbook and streams it
func (h *Meeting) GetActionWorkbook(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	artifact, err := h.artifactRepo.Get(ctx, id)
	if err != nil {
		return HandleError(h.logger, c, h.mapRepoError(id, err))
	}

	data, err := h.renderer.RenderActionWorkbook(artifact)
	if err != nil {
		return HandleError(h.logger, c, errors.ErrReportExportFailed("xlsx", err))
	}

	filename := fmt.Sprintf("action_items_%s.xlsx", artifact.ID)
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Blob(http.StatusOK, xlsxContentType, data)
}

// DeleteArtifact removes a stored artifact. Deleting an absent artifact
// succeeds.
func (h *Meeting) DeleteArtifact(c echo.Context) error {
	ctx := c.Request().Context()
	id := c.Param("id")

	if err := h.artifactRepo.Delete(ctx, id); err != nil {
		return HandleError(h.logger, c, h.mapRepoError(id, err))
	}

	return HandleSuccess(h.logger, c, map[string]interface{}{
		"deleted": id,
	})
}

// RevealTranscript opens the local file manager at a saved transcript file.
// Only useful when the server runs on the user's own machine.
func (h *Meeting) RevealTranscript(c echo.Context) error {
	var req meeting.RevealTranscriptRequest
	if err := c.Bind(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("Invalid request body"))
	}
	if err := c.Validate(&req); err != nil {
		return HandleError(h.logger, c, errors.ErrInvalidArgument("filename is required"))
	}

	// Strip any path components so the request cannot escape the
	// transcript directory.
	name := filepath.Base(req.Filename)
	path := filepath.Join(h.cfg.Folders.TranscriptDir, name)

	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return HandleError(h.logger, c, errors.ErrArtifactNotFound(name))
		}
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}

	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("open", "-R", path)
	default:
		cmd = exec.Command("xdg-open", filepath.Dir(path))
	}
	if err := cmd.Start(); err != nil {
		return HandleError(h.logger, c, errors.ErrInternal(err))
	}

	return HandleSuccess(h.logger, c, map[string]interface{}{
		"revealed": name,
	})
}

// saveUpload stages the multipart file in the upload directory under a
// timestamped name
func (h *Meeting) saveUpload(fileHeader *multipart.FileHeader) (string, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	if err := os.MkdirAll(h.cfg.Folders.UploadDir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := time.Now().UTC().Format("20060102_150405") + "_" + filepath.Base(fileHeader.Filename)
	path := filepath.Join(h.cfg.Folders.UploadDir, name)

	dst, err := os.Create(path)
	if err != nil {
		return "", fmt.Errorf("stage upload: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("write upload: %w", err)
	}
	return path, nil
}

// removeUpload deletes the staged audio file once processing is done
func (h *Meeting) removeUpload(path string) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		if h.logger != nil {
			h.logger.Warn("cannot remove staged upload",
				zap.String("path", path),
				zap.Error(err),
			)
		}
	}
}

// mapRepoError converts repository sentinels to API errors
func (h *Meeting) mapRepoError(id string, err error) error {
	switch {
	case stdErrors.Is(err, repositories.ErrInvalidID):
		return errors.ErrInvalidArtifactID(id)
	case stdErrors.Is(err, repositories.ErrNotFound):
		return errors.ErrArtifactNotFound(id)
	default:
		return errors.ErrInternal(err)
	}
}
