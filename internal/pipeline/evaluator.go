package pipeline

import (
	"context"
	"fmt"
	"math"
	"strings"
	"sync"

	"go.uber.org/zap"

	"talentgate/assess/internal/config"
	"talentgate/assess/internal/llm"
	"talentgate/assess/internal/metrics"
	"talentgate/assess/internal/models"
	"talentgate/assess/internal/parser"
	"talentgate/assess/internal/prompts"
)

// evaluationTemperature keeps grading consistent across submissions.
const evaluationTemperature float32 = 0.3

// Evaluator grades code submissions against their task's rubric. Every path
// returns a fully-formed EvaluationResult; failures degrade to a zero score
// with diagnostic feedback instead of propagating an error.
type Evaluator struct {
	provider llm.Provider
	prompts  prompts.PromptProvider
	parser   *parser.Parser
	filter   *AuthenticityFilter
	retry    RetryPolicy
	config   *config.Config
	logger   *zap.Logger
}

func NewEvaluator(provider llm.Provider, promptManager prompts.PromptProvider, cfg *config.Config, logger *zap.Logger) *Evaluator {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Evaluator{
		provider: provider,
		prompts:  promptManager,
		parser:   parser.NewParser(logger),
		filter:   NewAuthenticityFilter(cfg.MinCodeLength),
		retry:    RetryPolicy{MaxAttempts: cfg.GenerationAttempts, Backoff: cfg.RetryBackoff},
		config:   cfg,
		logger:   logger,
	}
}

// Evaluate grades one submission. The authenticity filter runs first so
// non-attempts never cost a service call.
func (e *Evaluator) Evaluate(ctx context.Context, task models.TaskItem, submission models.CodeSubmission) models.EvaluationResult {
	if ok, reason := e.filter.Check(submission.Code); !ok {
		metrics.ObserveRejectedSubmission()
		e.logger.Info("submission rejected before evaluation",
			zap.String("task_id", task.ID), zap.String("reason", reason))
		return e.degradedResult(task.ID, reason)
	}

	prompt, err := e.prompts.BuildPrompt("evaluate", "default", map[string]interface{}{
		"Title":       task.Title,
		"Description": task.Description,
		"Language":    task.Language,
		"Solution":    task.ModelSolution,
		"Rubric":      formatRubric(task.Rubric),
		"Code":        submission.Code,
	})
	if err != nil {
		e.logger.Error("building evaluation prompt failed", zap.Error(err))
		metrics.ObserveEvaluation("degraded")
		return e.degradedResult(task.ID, "The submission could not be evaluated automatically. A reviewer will look at it.")
	}

	var raw string
	e.retry.Do(ctx, func(attempt int) bool {
		callCtx, cancel := context.WithTimeout(ctx, e.config.CallTimeout)
		defer cancel()

		result, err := e.provider.GenerateText(callCtx, prompt, models.GenerationOptions{
			Temperature: evaluationTemperature,
		})
		if err != nil {
			e.logger.Warn("evaluation attempt failed",
				zap.String("task_id", task.ID), zap.Int("attempt", attempt), zap.Error(err))
			return false
		}
		raw = result.Text
		return true
	})
	if raw == "" {
		metrics.ObserveEvaluation("degraded")
		return e.degradedResult(task.ID, "The evaluation service was unavailable. The submission was recorded but could not be scored.")
	}

	payload, err := e.parser.ParseEvaluation(raw)
	if err != nil {
		e.logger.Warn("evaluation response unparseable",
			zap.String("task_id", task.ID), zap.Error(err))
		metrics.ObserveEvaluation("degraded")
		return e.degradedResult(task.ID, "The evaluation response could not be interpreted. The submission was recorded but scored zero.")
	}

	score := models.ClampScore(int(math.Round(payload.Score)))
	feedback := strings.TrimSpace(payload.Feedback)
	if feedback == "" {
		feedback = "No detailed feedback was produced for this submission."
	}

	metrics.ObserveEvaluation("scored")
	return models.EvaluationResult{
		TaskID:     task.ID,
		Score:      score,
		Feedback:   feedback,
		Strengths:  payload.Strengths,
		Weaknesses: payload.Weaknesses,
		Passed:     score >= e.config.TaskPassThreshold,
	}
}

// EvaluateAll grades every submission with a bounded worker pool. Each
// worker writes into its own pre-sized slot; a failed or timed-out call
// degrades that slot only, never the batch.
func (e *Evaluator) EvaluateAll(ctx context.Context, tasks []models.TaskItem, submissions []models.CodeSubmission) []models.EvaluationResult {
	taskByID := make(map[string]models.TaskItem, len(tasks))
	for _, t := range tasks {
		taskByID[t.ID] = t
	}

	// One evaluation per task; repeated task IDs keep the first submission
	// so a duplicated entry never costs a second service call.
	unique := make([]models.CodeSubmission, 0, len(submissions))
	seen := make(map[string]bool, len(submissions))
	for _, sub := range submissions {
		if seen[sub.TaskID] {
			e.logger.Info("dropping duplicate submission", zap.String("task_id", sub.TaskID))
			continue
		}
		seen[sub.TaskID] = true
		unique = append(unique, sub)
	}

	results := make([]models.EvaluationResult, len(unique))
	sem := make(chan struct{}, e.config.EvalWorkers)
	var wg sync.WaitGroup
	for i, sub := range unique {
		wg.Add(1)
		go func(i int, sub models.CodeSubmission) {
			defer wg.Done()
			sem <- struct{}{}
			defer func() { <-sem }()

			task, ok := taskByID[sub.TaskID]
			if !ok {
				results[i] = e.degradedResult(sub.TaskID, "The submission references a task that is not part of this assessment.")
				return
			}
			results[i] = e.Evaluate(ctx, task, sub)
		}(i, sub)
	}
	wg.Wait()
	return results
}

func (e *Evaluator) degradedResult(taskID, feedback string) models.EvaluationResult {
	return models.EvaluationResult{
		TaskID:     taskID,
		Score:      0,
		Feedback:   feedback,
		Strengths:  []string{},
		Weaknesses: []string{},
		Passed:     false,
	}
}

func formatRubric(rubric []models.RubricCriterion) string {
	if len(rubric) == 0 {
		rubric = models.GenericRubric()
	}
	lines := make([]string, 0, len(rubric))
	for _, c := range rubric {
		lines = append(lines, fmt.Sprintf("- %s: %d", c.Name, c.Weight))
	}
	return strings.Join(lines, "\n")
}
