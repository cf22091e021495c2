package report

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
)

const actionSheet = "Action Items"

// RenderActionWorkbook renders the artifact's action items as an .xlsx
// workbook, one row per normalized item, and returns its bytes.
func (r *Renderer) RenderActionWorkbook(artifact *entities.MeetingArtifact) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", actionSheet); err != nil {
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	headers := map[string]interface{}{
		"A1": "#",
		"B1": "Action Item",
		"C1": "Meeting ID",
		"D1": "Created",
	}
	for cell, value := range headers {
		if err := f.SetCellValue(actionSheet, cell, value); err != nil {
			return nil, fmt.Errorf("write header: %w", err)
		}
	}

	created := artifact.CreatedAt.Format("2006-01-02 15:04:05")
	for i, item := range artifact.ActionItems {
		row := i + 2
		if err := f.SetCellValue(actionSheet, fmt.Sprintf("A%d", row), i+1); err != nil {
			return nil, fmt.Errorf("write row %d: %w", row, err)
		}
		if err := f.SetCellValue(actionSheet, fmt.Sprintf("B%d", row), item); err != nil {
			return nil, fmt.Errorf("write row %d: %w", row, err)
		}
		if err := f.SetCellValue(actionSheet, fmt.Sprintf("C%d", row), artifact.ID); err != nil {
			return nil, fmt.Errorf("write row %d: %w", row, err)
		}
		if err := f.SetCellValue(actionSheet, fmt.Sprintf("D%d", row), created); err != nil {
			return nil, fmt.Errorf("write row %d: %w", row, err)
		}
	}

	if len(artifact.ActionItems) == 0 {
		if err := f.SetCellValue(actionSheet, "A2", noActionItems); err != nil {
			return nil, fmt.Errorf("write placeholder: %w", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("serialize workbook: %w", err)
	}
	return buf.Bytes(), nil
}
