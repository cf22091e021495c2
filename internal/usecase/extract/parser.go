package extract

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
	"github.com/johnquangdev/meeting-scribe/pkg/ai"
)

// Parser handles parsing and validation of completion responses
type Parser struct{}

// NewParser creates a new Parser instance
func NewParser() *Parser {
	return &Parser{}
}

// ParseMemoResponse parses a structured completion response into a Memo.
// The response is expected, but not guaranteed, to be JSON; markdown fences
// are stripped before decoding.
func (p *Parser) ParseMemoResponse(raw string) (*entities.Memo, error) {
	cleaned := ai.ExtractJSON(raw)

	var memo entities.Memo
	if err := json.Unmarshal([]byte(cleaned), &memo); err != nil {
		return nil, fmt.Errorf("failed to parse memo response: %w", err)
	}

	if memo.IsEmpty() {
		return nil, fmt.Errorf("memo response carried no content")
	}

	if memo.MeetingType == "" {
		memo.MeetingType = entities.MeetingTypeOther
	}

	// Absent arrays decode as nil; keep them as empty slices so "not
	// discussed" is represented uniformly.
	if memo.SummaryBullets == nil {
		memo.SummaryBullets = []string{}
	}
	if memo.KeyTopics == nil {
		memo.KeyTopics = []string{}
	}
	if memo.Decisions == nil {
		memo.Decisions = []string{}
	}
	if memo.RisksBlockers == nil {
		memo.RisksBlockers = []string{}
	}
	if memo.OpenQuestions == nil {
		memo.OpenQuestions = []string{}
	}
	if memo.ActionItems == nil {
		memo.ActionItems = []entities.MemoActionItem{}
	}
	if memo.NotesBySection == nil {
		memo.NotesBySection = []entities.NotesSection{}
	}

	return &memo, nil
}

// ParseFallbackResponse parses the unstructured fallback output: free-text
// summary lines plus action items formatted as lines beginning with "- ".
func (p *Parser) ParseFallbackResponse(raw string) (string, []string) {
	var summaryLines []string
	var actionItems []string

	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}

		if strings.HasPrefix(trimmed, "- ") {
			item := strings.TrimSpace(strings.TrimPrefix(trimmed, "- "))
			if item != "" {
				actionItems = append(actionItems, item)
			}
			continue
		}

		// Skip the header the prompt asks for between summary and items.
		if strings.EqualFold(strings.TrimSuffix(trimmed, ":"), "action items") {
			continue
		}

		summaryLines = append(summaryLines, trimmed)
	}

	return strings.Join(summaryLines, "\n"), actionItems
}

// NormalizeActionItems renders memo action items to their canonical one-line
// form, dropping items that are empty after trimming. Insertion order is
// extraction order.
func (p *Parser) NormalizeActionItems(items []entities.MemoActionItem) []string {
	normalized := make([]string, 0, len(items))
	for _, item := range items {
		if line := item.Normalize(); line != "" {
			normalized = append(normalized, line)
		}
	}
	return normalized
}
