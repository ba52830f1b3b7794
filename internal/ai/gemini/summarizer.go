package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode/utf8"

	_ "embed"

	"github.com/mkuzmin/toolpick/internal/logger"
	"github.com/mkuzmin/toolpick/internal/recommender"

	"go.uber.org/zap"
)

type contentGenerator interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

//go:embed prompt.md
var promptTemplate string

const defaultMaxLogLength = 200

// Summarizer turns a ranked recommendation into a short prose summary via a
// content generator.
type Summarizer struct {
	generator contentGenerator
	logger    *zap.Logger
	maxLogLen int
}

func NewSummarizer(generator contentGenerator, maxLogLength int, log *zap.Logger) *Summarizer {
	if maxLogLength <= 0 {
		maxLogLength = defaultMaxLogLength
	}
	if log == nil {
		log = zap.NewNop()
	}

	return &Summarizer{
		generator: generator,
		logger:    log,
		maxLogLen: maxLogLength,
	}
}

// Summarize builds the prompt from the embedded template and returns the
// generator's cleaned response.
func (s *Summarizer) Summarize(ctx context.Context, task string, results []*recommender.Candidate) (string, error) {
	if len(results) == 0 {
		return "", fmt.Errorf("at least one candidate is required")
	}

	payload := make([]map[string]any, 0, len(results))
	for _, candidate := range results {
		payload = append(payload, map[string]any{
			"name":           candidate.Tool.Name,
			"description":    candidate.Tool.Description,
			"category":       candidate.Tool.Category,
			"score":          candidate.Score,
			"match_reasons":  candidate.MatchReasons,
			"has_free_tier":  candidate.HasFreeTier(),
			"min_paid_price": candidate.MinPaidPrice(),
		})
	}

	toolsJSON, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal candidates payload: %w", err)
	}

	prompt := buildPrompt(task, string(toolsJSON))

	s.logger.Debug("gemini summary request",
		zap.Int("candidates", len(results)),
		zap.Int("prompt_length", utf8.RuneCountInString(prompt)),
		zap.String("prompt_preview", logger.TruncateForLog(prompt, s.maxLogLen)),
	)

	raw, err := s.generator.GenerateContent(ctx, prompt)
	if err != nil {
		return "", err
	}

	s.logger.Debug("gemini summary response",
		zap.Int("response_length", utf8.RuneCountInString(raw)),
		zap.String("response_preview", logger.TruncateForLog(raw, s.maxLogLen)),
	)

	return cleanResponse(raw), nil
}

func buildPrompt(task, toolsJSON string) string {
	template := promptTemplate
	if strings.TrimSpace(template) == "" {
		template = "Task:\n{{TASK}}\n\nTools:\n{{TOOLS_JSON}}\n\nSummary:"
	}
	prompt := strings.ReplaceAll(template, "{{TASK}}", task)
	prompt = strings.ReplaceAll(prompt, "{{TOOLS_JSON}}", toolsJSON)
	return prompt
}

// cleanResponse strips code fences some models wrap plain text in.
func cleanResponse(raw string) string {
	cleaned := strings.TrimSpace(raw)
	if strings.HasPrefix(cleaned, "```") {
		cleaned = strings.TrimPrefix(cleaned, "```markdown")
		cleaned = strings.TrimPrefix(cleaned, "```")
		cleaned = strings.TrimSpace(cleaned)
		if idx := strings.LastIndex(cleaned, "```"); idx != -1 {
			cleaned = cleaned[:idx]
		}
	}
	return strings.TrimSpace(cleaned)
}
