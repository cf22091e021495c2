package extract

import (
	"strings"
	"testing"

	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
)

func TestRenderMemoFull(t *testing.T) {
	memo := &entities.Memo{
		MeetingType:    entities.MeetingTypePlanning,
		Title:          "Q3 Planning",
		SummaryBullets: []string{"Agreed on three workstreams"},
		KeyTopics:      []string{"hiring", "roadmap"},
		Decisions:      []string{"Ship beta in July"},
		RisksBlockers:  []string{"Vendor contract unsigned"},
		OpenQuestions:  []string{"Who owns onboarding?"},
		NotesBySection: []entities.NotesSection{
			{Heading: "Roadmap", Bullets: []string{"Two milestones", "Beta first"}},
		},
	}

	want := strings.Join([]string{
		"Q3 Planning",
		"Type: planning",
		"",
		"Summary",
		"- Agreed on three workstreams",
		"",
		"Key Topics",
		"- hiring",
		"- roadmap",
		"",
		"Decisions",
		"- Ship beta in July",
		"",
		"Risks/Blockers",
		"- Vendor contract unsigned",
		"",
		"Open Questions",
		"- Who owns onboarding?",
		"",
		"Details",
		"",
		"Roadmap",
		"",
		"- Two milestones",
		"- Beta first",
	}, "\n")

	if got := RenderMemo(memo); got != want {
		t.Fatalf("rendered memo mismatch:\ngot:\n%s\n\nwant:\n%s", got, want)
	}
}

func TestRenderMemoOmitsEmptySections(t *testing.T) {
	memo := &entities.Memo{
		MeetingType:    entities.MeetingTypeStandup,
		Title:          "Daily standup",
		SummaryBullets: []string{"All on track"},
	}

	got := RenderMemo(memo)
	for _, header := range []string{"Key Topics", "Decisions", "Risks/Blockers", "Open Questions", "Details"} {
		if strings.Contains(got, header) {
			t.Errorf("empty section %q should be omitted, output:\n%s", header, got)
		}
	}
	if strings.HasSuffix(got, "\n") {
		t.Errorf("output should not end with a blank line:\n%q", got)
	}
}

func TestRenderMemoFallbackTitleAndType(t *testing.T) {
	memo := &entities.Memo{
		SummaryBullets: []string{"One topic"},
	}

	got := RenderMemo(memo)
	lines := strings.Split(got, "\n")
	if lines[0] != "Meeting Notes" {
		t.Fatalf("expected fallback title, got %q", lines[0])
	}
	if lines[1] != "Type: other" {
		t.Fatalf("expected fallback type line, got %q", lines[1])
	}
}

func TestRenderMemoDeterministic(t *testing.T) {
	memo := &entities.Memo{
		MeetingType: entities.MeetingTypeSales,
		Title:       "Renewal call",
		KeyTopics:   []string{"pricing", "term length"},
	}

	first := RenderMemo(memo)
	for i := 0; i < 5; i++ {
		if got := RenderMemo(memo); got != first {
			t.Fatalf("render %d differs from first render", i)
		}
	}
}

func TestRenderMemoNil(t *testing.T) {
	if got := RenderMemo(nil); got != "" {
		t.Fatalf("expected empty output for nil memo, got %q", got)
	}
}
