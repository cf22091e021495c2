package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
	"github.com/johnquangdev/meeting-scribe/internal/domain/repositories"
	"github.com/johnquangdev/meeting-scribe/internal/usecase/pipeline"
	"github.com/johnquangdev/meeting-scribe/internal/usecase/report"
	"github.com/johnquangdev/meeting-scribe/pkg/config"
	pkgvalidator "github.com/johnquangdev/meeting-scribe/pkg/validator"
)

type fakePipeline struct {
	result *pipeline.ProcessResult
	err    error
	input  pipeline.ProcessInput
}

func (f *fakePipeline) ProcessMeeting(ctx context.Context, input pipeline.ProcessInput) (*pipeline.ProcessResult, error) {
	f.input = input
	return f.result, f.err
}

type fakeArtifactRepo struct {
	artifacts map[string]*entities.MeetingArtifact
	deleted   []string
}

func newFakeArtifactRepo() *fakeArtifactRepo {
	return &fakeArtifactRepo{artifacts: make(map[string]*entities.MeetingArtifact)}
}

func (f *fakeArtifactRepo) Put(ctx context.Context, id string, artifact *entities.MeetingArtifact) error {
	f.artifacts[id] = artifact
	return nil
}

func (f *fakeArtifactRepo) Get(ctx context.Context, id string) (*entities.MeetingArtifact, error) {
	if !entities.ValidateArtifactID(id) {
		return nil, repositories.ErrInvalidID
	}
	artifact, ok := f.artifacts[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return artifact, nil
}

func (f *fakeArtifactRepo) Delete(ctx context.Context, id string) error {
	if !entities.ValidateArtifactID(id) {
		return repositories.ErrInvalidID
	}
	delete(f.artifacts, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakeArtifactRepo) PutMemo(ctx context.Context, id string, memo *entities.Memo) error {
	return nil
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Folders: config.FoldersConfig{
			UploadDir:     t.TempDir(),
			TranscriptDir: t.TempDir(),
			ArtifactDir:   t.TempDir(),
		},
		Upload: config.UploadConfig{MaxBytes: 25 * 1024 * 1024},
	}
}

func newTestHandler(t *testing.T, p pipeline.Service, repo repositories.ArtifactRepository) (*Meeting, *echo.Echo) {
	t.Helper()
	e := echo.New()
	e.Validator = pkgvalidator.New()
	h := NewMeeting(p, repo, report.NewRenderer(), testConfig(t), nil)
	return h, e
}

func multipartAudio(t *testing.T, filename, content, agenda string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("audio_file", filename)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte(content)); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if agenda != "" {
		if err := writer.WriteField("agenda", agenda); err != nil {
			t.Fatalf("write agenda field: %v", err)
		}
	}
	writer.Close()
	return body, writer.FormDataContentType()
}

func TestProcessMeetingMissingFile(t *testing.T) {
	h, e := newTestHandler(t, &fakePipeline{}, newFakeArtifactRepo())

	req := httptest.NewRequest(http.MethodPost, "/v1/meetings/process", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ProcessMeeting(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestProcessMeetingSuccess(t *testing.T) {
	p := &fakePipeline{
		result: &pipeline.ProcessResult{
			ArtifactID:  "20260109_104455_abc123",
			Transcript:  "hello",
			Summary:     "Short meeting.",
			ActionItems: []string{"Do the thing"},
			Stored:      true,
		},
	}
	h, e := newTestHandler(t, p, newFakeArtifactRepo())

	body, contentType := multipartAudio(t, "sync.mp3", "audio-bytes", "1. Budget")
	req := httptest.NewRequest(http.MethodPost, "/v1/meetings/process", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ProcessMeeting(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	if p.input.SourceFilename != "sync.mp3" {
		t.Fatalf("unexpected source filename %q", p.input.SourceFilename)
	}
	if p.input.Agenda != "1. Budget" {
		t.Fatalf("agenda not forwarded, got %q", p.input.Agenda)
	}

	var resp struct {
		Data struct {
			ArtifactID string `json:"artifact_id"`
			Stored     bool   `json:"stored"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Data.ArtifactID != "20260109_104455_abc123" || !resp.Data.Stored {
		t.Fatalf("unexpected response: %+v", resp.Data)
	}
}

func TestProcessMeetingEmptyFile(t *testing.T) {
	h, e := newTestHandler(t, &fakePipeline{}, newFakeArtifactRepo())

	body, contentType := multipartAudio(t, "empty.mp3", "", "")
	req := httptest.NewRequest(http.MethodPost, "/v1/meetings/process", body)
	req.Header.Set(echo.HeaderContentType, contentType)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.ProcessMeeting(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestGetArtifactNotFound(t *testing.T) {
	h, e := newTestHandler(t, &fakePipeline{}, newFakeArtifactRepo())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/meetings/:id")
	c.SetParamNames("id")
	c.SetParamValues("20260109_104455_nothere")

	if err := h.GetArtifact(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestGetArtifactInvalidID(t *testing.T) {
	h, e := newTestHandler(t, &fakePipeline{}, newFakeArtifactRepo())

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/meetings/:id")
	c.SetParamNames("id")
	c.SetParamValues("..%2F..%2Fetc")

	if err := h.GetArtifact(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestGetArtifactSuccess(t *testing.T) {
	repo := newFakeArtifactRepo()
	artifact := entities.NewMeetingArtifact("sync.mp3")
	artifact.Summary = "All good."
	repo.artifacts[artifact.ID] = artifact

	h, e := newTestHandler(t, &fakePipeline{}, repo)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/meetings/:id")
	c.SetParamNames("id")
	c.SetParamValues(artifact.ID)

	if err := h.GetArtifact(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "All good.") {
		t.Fatalf("response missing summary: %s", rec.Body.String())
	}
}

func TestGetReportStreamsDocx(t *testing.T) {
	repo := newFakeArtifactRepo()
	artifact := entities.NewMeetingArtifact("sync.mp3")
	artifact.Summary = "Summary text."
	artifact.Transcript = "Transcript text."
	repo.artifacts[artifact.ID] = artifact

	h, e := newTestHandler(t, &fakePipeline{}, repo)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/meetings/:id/report")
	c.SetParamNames("id")
	c.SetParamValues(artifact.ID)

	if err := h.GetReport(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get(echo.HeaderContentType); !strings.HasPrefix(got, docxContentType) {
		t.Fatalf("unexpected content type %q", got)
	}
	if !strings.Contains(rec.Header().Get(echo.HeaderContentDisposition), artifact.ID) {
		t.Fatal("attachment filename should carry the meeting id")
	}
	if rec.Body.Len() == 0 {
		t.Fatal("expected document bytes")
	}
}

func TestGetActionWorkbookStreamsXlsx(t *testing.T) {
	repo := newFakeArtifactRepo()
	artifact := entities.NewMeetingArtifact("sync.mp3")
	artifact.ActionItems = []string{"Tag the release"}
	repo.artifacts[artifact.ID] = artifact

	h, e := newTestHandler(t, &fakePipeline{}, repo)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath("/v1/meetings/:id/actions")
	c.SetParamNames("id")
	c.SetParamValues(artifact.ID)

	if err := h.GetActionWorkbook(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get(echo.HeaderContentType); !strings.HasPrefix(got, xlsxContentType) {
		t.Fatalf("unexpected content type %q", got)
	}
}

func TestDeleteArtifactIdempotent(t *testing.T) {
	repo := newFakeArtifactRepo()
	artifact := entities.NewMeetingArtifact("sync.mp3")
	repo.artifacts[artifact.ID] = artifact

	h, e := newTestHandler(t, &fakePipeline{}, repo)

	del := func() int {
		req := httptest.NewRequest(http.MethodDelete, "/", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)
		c.SetPath("/v1/meetings/:id")
		c.SetParamNames("id")
		c.SetParamValues(artifact.ID)
		if err := h.DeleteArtifact(c); err != nil {
			t.Fatalf("handler returned error: %v", err)
		}
		return rec.Code
	}

	if code := del(); code != http.StatusOK {
		t.Fatalf("first delete: expected 200, got %d", code)
	}
	if code := del(); code != http.StatusOK {
		t.Fatalf("second delete: expected 200, got %d", code)
	}
}

func TestRevealTranscriptMissingFilename(t *testing.T) {
	h, e := newTestHandler(t, &fakePipeline{}, newFakeArtifactRepo())

	req := httptest.NewRequest(http.MethodPost, "/v1/transcripts/reveal", strings.NewReader(`{}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.RevealTranscript(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRevealTranscriptUnknownFile(t *testing.T) {
	h, e := newTestHandler(t, &fakePipeline{}, newFakeArtifactRepo())

	req := httptest.NewRequest(http.MethodPost, "/v1/transcripts/reveal",
		strings.NewReader(`{"filename": "missing.txt"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if err := h.RevealTranscript(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d: %s", rec.Code, rec.Body.String())
	}
}
