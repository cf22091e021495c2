package report

import (
	"bytes"
	"testing"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
)

func testArtifact() *entities.MeetingArtifact {
	return &entities.MeetingArtifact{
		ID:               "20260109_104455_abc123",
		CreatedAt:        time.Date(2026, 1, 9, 10, 44, 55, 0, time.UTC),
		SourceFilename:   "sync.mp3",
		OriginalLanguage: "Spanish",
		WasTranslated:    true,
		Transcript:       "line one\nline two",
		Summary:          "Short summary.",
		ActionItems:      []string{"Tag the release", "Email the notes"},
	}
}

func TestRenderDocx(t *testing.T) {
	r := NewRenderer()

	data, err := r.RenderDocx(testArtifact())
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected document bytes")
	}
	// .docx is a zip container
	if !bytes.HasPrefix(data, []byte("PK")) {
		t.Fatal("output does not look like a docx file")
	}
}

func TestRenderDocxEmptyActionItems(t *testing.T) {
	r := NewRenderer()
	artifact := testArtifact()
	artifact.ActionItems = nil

	data, err := r.RenderDocx(artifact)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected document bytes")
	}
}

func TestRenderActionWorkbook(t *testing.T) {
	r := NewRenderer()
	artifact := testArtifact()

	data, err := r.RenderActionWorkbook(artifact)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a readable workbook: %v", err)
	}
	defer f.Close()

	item, err := f.GetCellValue(actionSheet, "B2")
	if err != nil {
		t.Fatalf("read cell: %v", err)
	}
	if item != "Tag the release" {
		t.Fatalf("unexpected B2 value %q", item)
	}

	id, err := f.GetCellValue(actionSheet, "C3")
	if err != nil {
		t.Fatalf("read cell: %v", err)
	}
	if id != artifact.ID {
		t.Fatalf("unexpected C3 value %q", id)
	}
}

func TestRenderActionWorkbookEmpty(t *testing.T) {
	r := NewRenderer()
	artifact := testArtifact()
	artifact.ActionItems = nil

	data, err := r.RenderActionWorkbook(artifact)
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("output is not a readable workbook: %v", err)
	}
	defer f.Close()

	placeholder, err := f.GetCellValue(actionSheet, "A2")
	if err != nil {
		t.Fatalf("read cell: %v", err)
	}
	if placeholder != "No action items found" {
		t.Fatalf("unexpected placeholder %q", placeholder)
	}
}
