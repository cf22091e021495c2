package extract

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-scribe/internal/domain/entities"
	"github.com/johnquangdev/meeting-scribe/pkg/retry"
)

const memoSystemPrompt = "You are a precise and structured meeting assistant. You only record what was explicitly said."

const memoPromptHeader = `Extract a structured meeting memo from the transcript below.

Return your answer strictly as JSON with this shape:
{
  "meeting_type": "one of: recruiting, interview, sales, customer_discovery, planning, status_update, standup, technical_review, support, 1on1, other",
  "title": "short descriptive title",
  "summary_bullets": ["..."],
  "key_topics": ["..."],
  "decisions": ["..."],
  "risks_blockers": ["..."],
  "open_questions": ["..."],
  "action_items": [{"item": "...", "owner": "...", "due": "..."}],
  "notes_by_section": [{"heading": "...", "bullets": ["..."]}]
}

Rules:
- Use only content explicitly stated in the transcript. Do not infer or invent.
- Leave an array empty if nothing was said about it. Never add filler.
- Preserve numbers, dates, and commitments verbatim.
- Omit "owner" or "due" on an action item when the transcript does not state them.`

const memoAgendaConstraint = `- The meeting agenda is listed below. Make "notes_by_section" headings mirror the agenda items, in order. Route discussion unrelated to any agenda item into an "Opening Conversation" or "Other" section.

Agenda:
%s`

const fallbackSystemPrompt = "You are a precise and structured meeting assistant."

const fallbackPrompt = `Given the meeting transcript below, produce:
1) A concise summary (3-6 sentences).
2) A list of concrete action items.

Write the summary first. Then write a line "Action Items:" followed by one
action item per line, each beginning with "- ". List only items that were
explicitly stated.

Transcript:
"""%s"""`

// CompletionClient is the completion capability the extractor needs
type CompletionClient interface {
	Complete(ctx context.Context, system, user string, jsonMode bool) (string, error)
}

// Result is the outcome of one extraction. Memo is nil when only the
// unstructured fallback (or nothing) succeeded.
type Result struct {
	Summary     string
	ActionItems []string
	Memo        *entities.Memo
}

// Extractor turns a working-language transcript into a summary, normalized
// action items, and (when the structured call succeeds) a Memo. Extraction
// never fails the pipeline: if both the structured and fallback paths fail,
// it returns an empty result.
type Extractor struct {
	completions CompletionClient
	parser      *Parser
	policy      retry.Policy
	logger      *zap.Logger
}

// NewExtractor constructs an Extractor
func NewExtractor(completions CompletionClient, policy retry.Policy, logger *zap.Logger) *Extractor {
	return &Extractor{
		completions: completions,
		parser:      NewParser(),
		policy:      policy,
		logger:      logger,
	}
}

// Extract runs the structured path and degrades to the unstructured fallback
// on any call or parse failure
func (e *Extractor) Extract(ctx context.Context, transcript, agenda string) Result {
	memo, err := e.extractMemo(ctx, transcript, agenda)
	if err == nil {
		return Result{
			Summary:     RenderMemo(memo),
			ActionItems: e.parser.NormalizeActionItems(memo.ActionItems),
			Memo:        memo,
		}
	}

	if e.logger != nil {
		e.logger.Warn("structured memo extraction failed, falling back to unstructured summary",
			zap.Error(err),
		)
	}

	summary, items, err := e.extractFallback(ctx, transcript)
	if err != nil {
		// Recoverable degrade: the caller still gets a usable (empty) result.
		if e.logger != nil {
			e.logger.Error("fallback summarization failed", zap.Error(err))
		}
		return Result{ActionItems: []string{}}
	}

	return Result{Summary: summary, ActionItems: items}
}

func (e *Extractor) extractMemo(ctx context.Context, transcript, agenda string) (*entities.Memo, error) {
	var sb strings.Builder
	sb.WriteString(memoPromptHeader)
	if strings.TrimSpace(agenda) != "" {
		sb.WriteString("\n")
		sb.WriteString(fmt.Sprintf(memoAgendaConstraint, strings.TrimSpace(agenda)))
	}
	sb.WriteString("\n\nTranscript:\n\"\"\"")
	sb.WriteString(transcript)
	sb.WriteString("\"\"\"")

	var raw string
	err := e.policy.Do(ctx, func() error {
		var callErr error
		raw, callErr = e.completions.Complete(ctx, memoSystemPrompt, sb.String(), true)
		return callErr
	})
	if err != nil {
		return nil, err
	}

	return e.parser.ParseMemoResponse(raw)
}

func (e *Extractor) extractFallback(ctx context.Context, transcript string) (string, []string, error) {
	prompt := fmt.Sprintf(fallbackPrompt, transcript)

	var raw string
	err := e.policy.Do(ctx, func() error {
		var callErr error
		raw, callErr = e.completions.Complete(ctx, fallbackSystemPrompt, prompt, false)
		return callErr
	})
	if err != nil {
		return "", nil, err
	}

	summary, items := e.parser.ParseFallbackResponse(raw)
	if items == nil {
		items = []string{}
	}
	return summary, items, nil
}
