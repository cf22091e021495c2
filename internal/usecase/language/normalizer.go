package language

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/johnquangdev/meeting-scribe/pkg/ai"
	"github.com/johnquangdev/meeting-scribe/pkg/retry"
)

const classifySystemPrompt = "You are a precise language identification service. Respond only with JSON."

const classifyUserPrompt = `Identify the language of the text below.

Return your answer strictly as JSON with this shape:
{
  "detected_language": "English",
  "language_code": "en",
  "is_english": true
}

Text:
"""%s"""`

const translateSystemPrompt = "You are a professional translator. Return only the translated text, with no commentary."

// Result is the outcome of one normalization pass. The caller keeps both the
// original text and WorkingText so the user can be shown either.
type Result struct {
	WorkingText      string
	DetectedLanguage string
	WasTranslated    bool
}

// CompletionClient is the completion capability the normalizer needs
type CompletionClient interface {
	Complete(ctx context.Context, system, user string, jsonMode bool) (string, error)
}

// classification is the fixed JSON shape requested from the classifier
type classification struct {
	DetectedLanguage string `json:"detected_language"`
	LanguageCode     string `json:"language_code"`
	IsEnglish        bool   `json:"is_english"`
}

// Normalizer detects the language of a transcript and translates it to
// English when needed. Every failure degrades silently: the pipeline is never
// blocked on detection or translation.
type Normalizer struct {
	completions CompletionClient
	policy      retry.Policy
	logger      *zap.Logger
}

// NewNormalizer constructs a Normalizer
func NewNormalizer(completions CompletionClient, policy retry.Policy, logger *zap.Logger) *Normalizer {
	return &Normalizer{
		completions: completions,
		policy:      policy,
		logger:      logger,
	}
}

// Normalize classifies text and translates non-English transcripts. The hint
// is best-effort input from transcription; it is passed to the classifier but
// never trusted on its own.
func (n *Normalizer) Normalize(ctx context.Context, text, hint string) Result {
	cls, err := n.classify(ctx, text)
	if err != nil {
		// Safe default: assume English and do not translate.
		if n.logger != nil {
			n.logger.Warn("language classification failed, assuming English",
				zap.String("hint", hint),
				zap.Error(err),
			)
		}
		return Result{WorkingText: text, DetectedLanguage: "English"}
	}

	detected := strings.TrimSpace(cls.DetectedLanguage)
	if detected == "" {
		detected = "English"
	}

	if cls.IsEnglish {
		return Result{WorkingText: text, DetectedLanguage: detected}
	}

	translated, err := n.translate(ctx, text, detected)
	if err != nil || strings.TrimSpace(translated) == "" {
		// Silent degrade: keep the original text but keep the detected label.
		if n.logger != nil {
			n.logger.Warn("translation failed, keeping original text",
				zap.String("detected_language", detected),
				zap.Error(err),
			)
		}
		return Result{WorkingText: text, DetectedLanguage: detected}
	}

	return Result{
		WorkingText:      translated,
		DetectedLanguage: detected,
		WasTranslated:    true,
	}
}

func (n *Normalizer) classify(ctx context.Context, text string) (*classification, error) {
	prompt := fmt.Sprintf(classifyUserPrompt, sample(text, 2000))

	var raw string
	err := n.policy.Do(ctx, func() error {
		var callErr error
		raw, callErr = n.completions.Complete(ctx, classifySystemPrompt, prompt, true)
		return callErr
	})
	if err != nil {
		return nil, err
	}

	var cls classification
	if err := json.Unmarshal([]byte(ai.ExtractJSON(raw)), &cls); err != nil {
		return nil, err
	}
	return &cls, nil
}

func (n *Normalizer) translate(ctx context.Context, text, sourceLanguage string) (string, error) {
	prompt := "Translate the following " + sourceLanguage + " text into English. Return only the translated text.\n\n" + text

	var translated string
	err := n.policy.Do(ctx, func() error {
		var callErr error
		translated, callErr = n.completions.Complete(ctx, translateSystemPrompt, prompt, false)
		return callErr
	})
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(translated), nil
}

// sample caps classifier input; a prefix is enough to identify a language
func sample(text string, max int) string {
	if len(text) <= max {
		return text
	}
	return text[:max]
}
