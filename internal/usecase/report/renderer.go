package report

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/gomutex/godocx"
	"github.com/gomutex/godocx/docx"

	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
)

const (
	fontName      = "Calibri"
	fontSize      = 11
	titleSize     = 16
	headingSize   = 13
	noActionItems = "No action items found"
)

// Renderer turns a stored meeting artifact into an exportable document.
// Rendering is deterministic and performed on demand; nothing is cached.
type Renderer struct{}

// NewRenderer constructs a Renderer
func NewRenderer() *Renderer {
	return &Renderer{}
}

// RenderDocx renders the artifact as a .docx document and returns its bytes.
// Section order is fixed: title, meeting id, created at, source filename (when
// present), Summary, Action Items, Transcript.
func (r *Renderer) RenderDocx(artifact *entities.MeetingArtifact) ([]byte, error) {
	doc, err := godocx.NewDocument()
	if err != nil {
		return nil, fmt.Errorf("create document: %w", err)
	}

	addHeading(doc, "Meeting Report", titleSize)
	addLine(doc, "Meeting ID: "+artifact.ID)
	addLine(doc, "Created: "+artifact.CreatedAt.Format("2006-01-02 15:04:05 MST"))
	if artifact.SourceFilename != "" {
		addLine(doc, "Source file: "+artifact.SourceFilename)
	}
	if artifact.OriginalLanguage != "" {
		language := artifact.OriginalLanguage
		if artifact.WasTranslated {
			language += " (translated to English)"
		}
		addLine(doc, "Language: "+language)
	}
	doc.AddParagraph("")

	addHeading(doc, "Summary", headingSize)
	addFreeText(doc, artifact.Summary)
	doc.AddParagraph("")

	addHeading(doc, "Action Items", headingSize)
	if len(artifact.ActionItems) == 0 {
		addLine(doc, noActionItems)
	} else {
		for i, item := range artifact.ActionItems {
			addLine(doc, fmt.Sprintf("%d. %s", i+1, item))
		}
	}
	doc.AddParagraph("")

	addHeading(doc, "Transcript", headingSize)
	addFreeText(doc, artifact.Transcript)

	return saveToBytes(doc, artifact.ID)
}

// addFreeText emits free text with line breaks as paragraph breaks
func addFreeText(doc *docx.RootDoc, text string) {
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimRight(line, "\r")
		if strings.TrimSpace(line) == "" {
			continue
		}
		addLine(doc, line)
	}
}

func addHeading(doc *docx.RootDoc, text string, size uint64) {
	p := doc.AddParagraph("")
	p.AddText(text).Font(fontName).Size(size).Color("000000").Bold(true)
}

func addLine(doc *docx.RootDoc, text string) {
	p := doc.AddParagraph("")
	p.AddText(text).Font(fontName).Size(fontSize).Color("000000")
}

// saveToBytes writes the document to a scratch file and reads it back. The
// docx library only serializes to a path.
func saveToBytes(doc *docx.RootDoc, id string) ([]byte, error) {
	tmp, err := os.CreateTemp("", "report-"+id+"-*.docx")
	if err != nil {
		return nil, fmt.Errorf("create scratch file: %w", err)
	}
	path := tmp.Name()
	tmp.Close()
	defer os.Remove(path)

	if err := doc.SaveTo(path); err != nil {
		return nil, fmt.Errorf("save document: %w", err)
	}

	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return nil, fmt.Errorf("read document: %w", err)
	}
	return data, nil
}
