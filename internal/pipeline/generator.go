package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"talentgate/assess/internal/config"
	"talentgate/assess/internal/fallback"
	"talentgate/assess/internal/llm"
	"talentgate/assess/internal/metrics"
	"talentgate/assess/internal/models"
	"talentgate/assess/internal/parser"
	"talentgate/assess/internal/prompts"
)

// generationTemperature leaves room for item variety; the parser absorbs
// the resulting format drift.
const generationTemperature float32 = 0.7

// Generator produces a complete AssessmentDefinition from inferred
// parameters. Questions and tasks are two independent batches; each batch
// is best-effort with the fallback library covering any shortfall, so a
// usable assessment is always returned.
type Generator struct {
	provider llm.Provider
	prompts  prompts.PromptProvider
	parser   *parser.Parser
	fallback *fallback.Library
	retry    RetryPolicy
	config   *config.Config
	logger   *zap.Logger
}

func NewGenerator(provider llm.Provider, promptManager prompts.PromptProvider, cfg *config.Config, logger *zap.Logger) *Generator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{
		provider: provider,
		prompts:  promptManager,
		parser:   parser.NewParser(logger),
		fallback: fallback.NewLibrary(),
		retry:    RetryPolicy{MaxAttempts: cfg.GenerationAttempts, Backoff: cfg.RetryBackoff},
		config:   cfg,
		logger:   logger,
	}
}

func (g *Generator) Generate(ctx context.Context, params models.GenerationParameters) models.AssessmentDefinition {
	questions := g.generateQuestions(ctx, params)
	tasks := g.generateTasks(ctx, params)

	if missing := params.QuestionCount - len(questions); missing > 0 {
		fill := g.fallback.Questions(missing, params.Difficulty, params.Language)
		metrics.ObserveFallbackItems("questions", len(fill))
		g.logger.Info("filling questions from fallback library",
			zap.Int("missing", missing), zap.Int("filled", len(fill)))
		questions = append(questions, fill...)
	}
	if missing := params.TaskCount - len(tasks); missing > 0 {
		fill := g.fallback.Tasks(missing, params.Difficulty, params.Language)
		metrics.ObserveFallbackItems("tasks", len(fill))
		g.logger.Info("filling tasks from fallback library",
			zap.Int("missing", missing), zap.Int("filled", len(fill)))
		tasks = append(tasks, fill...)
	}

	return models.AssessmentDefinition{
		ID:         uuid.New().String(),
		Title:      fmt.Sprintf("%s %s assessment", titleCase(params.Difficulty), titleCase(params.Language)),
		Description: fmt.Sprintf("Auto-generated %s assessment in %s: %d questions and %d coding tasks.",
			params.Difficulty, params.Language, len(questions), len(tasks)),
		Difficulty:  params.Difficulty,
		Language:    params.Language,
		TotalPoints: models.TotalPointsOf(questions, tasks),
		Questions:   questions,
		Tasks:       tasks,
		CreatedAt:   time.Now().UTC(),
	}
}

func (g *Generator) generateQuestions(ctx context.Context, params models.GenerationParameters) []models.QuestionItem {
	acceptable := config.AcceptableItemCount(params.QuestionCount)

	var best []models.QuestionItem
	g.retry.Do(ctx, func(attempt int) bool {
		raw, err := g.callService(ctx, "questions", params, params.QuestionCount)
		if err != nil {
			g.logger.Warn("question generation attempt failed",
				zap.Int("attempt", attempt), zap.Error(err))
			return false
		}
		items := g.parser.ParseQuestions(raw, params.Difficulty, params.Language)
		if len(items) > len(best) {
			best = items
		}
		return len(items) >= acceptable
	})

	metrics.ObserveGenerationBatch("questions", batchOutcome(len(best), acceptable))
	return best
}

func (g *Generator) generateTasks(ctx context.Context, params models.GenerationParameters) []models.TaskItem {
	acceptable := config.AcceptableItemCount(params.TaskCount)

	var best []models.TaskItem
	g.retry.Do(ctx, func(attempt int) bool {
		raw, err := g.callService(ctx, "tasks", params, params.TaskCount)
		if err != nil {
			g.logger.Warn("task generation attempt failed",
				zap.Int("attempt", attempt), zap.Error(err))
			return false
		}
		items := g.parser.ParseTasks(raw, params.Difficulty, params.Language)
		if len(items) > len(best) {
			best = items
		}
		return len(items) >= acceptable
	})

	metrics.ObserveGenerationBatch("tasks", batchOutcome(len(best), acceptable))
	return best
}

func (g *Generator) callService(ctx context.Context, mode string, params models.GenerationParameters, count int) (string, error) {
	prompt, err := g.prompts.BuildPrompt(mode, "default", map[string]interface{}{
		"Count":       count,
		"Language":    params.Language,
		"Difficulty":  params.Difficulty,
		"FocusSkills": strings.Join(params.FocusSkills, ", "),
	})
	if err != nil {
		return "", err
	}

	callCtx, cancel := context.WithTimeout(ctx, g.config.CallTimeout)
	defer cancel()

	result, err := g.provider.GenerateText(callCtx, prompt, models.GenerationOptions{
		Temperature: generationTemperature,
	})
	if err != nil {
		return "", err
	}
	return result.Text, nil
}

func batchOutcome(produced, acceptable int) string {
	switch {
	case produced >= acceptable && produced > 0:
		return "accepted"
	case produced > 0:
		return "partial"
	default:
		return "failed"
	}
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
