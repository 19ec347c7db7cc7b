package pipeline

import (
	"context"

	"go.uber.org/zap"

	"talentgate/assess/internal/config"
	"talentgate/assess/internal/llm"
	"talentgate/assess/internal/models"
	"talentgate/assess/internal/prompts"
)

// Service is the caller-facing pipeline facade. Both operations are total:
// expected failure modes (service unreachable, malformed output, inauthentic
// submission) surface through the returned values, never through errors.
type Service struct {
	params     *ParameterEngine
	generator  *Generator
	evaluator  *Evaluator
	aggregator *Aggregator
	logger     *zap.Logger
}

func NewService(provider llm.Provider, promptManager prompts.PromptProvider, cfg *config.Config, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		params:     NewParameterEngine(provider, promptManager, cfg, logger),
		generator:  NewGenerator(provider, promptManager, cfg, logger),
		evaluator:  NewEvaluator(provider, promptManager, cfg, logger),
		aggregator: NewAggregator(cfg),
		logger:     logger,
	}
}

// Generate infers parameters from the profile and produces an assessment.
// The result may be partly generic when generation degrades; it is never
// empty.
func (s *Service) Generate(ctx context.Context, profile models.CandidateProfile) models.AssessmentDefinition {
	params := s.params.InferParameters(ctx, profile)
	s.logger.Info("generation parameters inferred",
		zap.String("difficulty", params.Difficulty),
		zap.String("language", params.Language),
		zap.Int("questions", params.QuestionCount),
		zap.Int("tasks", params.TaskCount))

	assessment := s.generator.Generate(ctx, params)
	s.logger.Info("assessment generated",
		zap.String("assessment_id", assessment.ID),
		zap.Int("questions", len(assessment.Questions)),
		zap.Int("tasks", len(assessment.Tasks)),
		zap.Int("total_points", assessment.TotalPoints))
	return assessment
}

// Evaluate grades a full submission against an assessment. Per-task results
// are returned alongside the aggregate so callers can report both.
func (s *Service) Evaluate(
	ctx context.Context,
	assessment models.AssessmentDefinition,
	answers []models.SubmissionAnswer,
	submissions []models.CodeSubmission,
) (models.AggregateScore, []models.EvaluationResult) {
	results := s.evaluator.EvaluateAll(ctx, assessment.Tasks, submissions)
	score := s.aggregator.Aggregate(assessment, answers, results)

	s.logger.Info("submission evaluated",
		zap.String("assessment_id", assessment.ID),
		zap.Float64("percentage", score.Percentage),
		zap.Bool("passed", score.Passed))
	return score, results
}
