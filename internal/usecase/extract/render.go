package extract

import (
	"strings"

	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
)

// untitledFallback is the rendered title when extraction produced none
const untitledFallback = "Meeting Notes"

// RenderMemo renders a memo to plain text. The output is a pure function of
// the memo's fields: title line, type line, blank line, then the fixed
// section order Summary, Key Topics, Decisions, Risks/Blockers, Open
// Questions, Details. Empty sections are omitted entirely.
func RenderMemo(m *entities.Memo) string {
	if m == nil {
		return ""
	}

	title := strings.TrimSpace(m.Title)
	if title == "" {
		title = untitledFallback
	}
	meetingType := m.MeetingType
	if meetingType == "" {
		meetingType = entities.MeetingTypeOther
	}

	var lines []string
	lines = append(lines, title)
	lines = append(lines, "Type: "+string(meetingType))
	lines = append(lines, "")

	sections := []struct {
		header  string
		bullets []string
	}{
		{"Summary", m.SummaryBullets},
		{"Key Topics", m.KeyTopics},
		{"Decisions", m.Decisions},
		{"Risks/Blockers", m.RisksBlockers},
		{"Open Questions", m.OpenQuestions},
	}
	for _, section := range sections {
		if len(section.bullets) == 0 {
			continue
		}
		lines = append(lines, section.header)
		for _, bullet := range section.bullets {
			lines = append(lines, "- "+bullet)
		}
		lines = append(lines, "")
	}

	if len(m.NotesBySection) > 0 {
		lines = append(lines, "Details")
		lines = append(lines, "")
		for _, section := range m.NotesBySection {
			lines = append(lines, section.Heading)
			lines = append(lines, "")
			for _, bullet := range section.Bullets {
				lines = append(lines, "- "+bullet)
			}
			lines = append(lines, "")
		}
	}

	// Trim trailing blank lines.
	for len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}

	return strings.Join(lines, "\n")
}
