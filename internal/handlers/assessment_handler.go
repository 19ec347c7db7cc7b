package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"talentgate/assess/internal/llm"
	"talentgate/assess/internal/middleware"
	"talentgate/assess/internal/models"
	"talentgate/assess/internal/store"
	"talentgate/assess/internal/utils"
)

// AssessmentPipeline is the slice of the pipeline the handlers need.
// Both operations are total; failures surface in the returned values.
type AssessmentPipeline interface {
	Generate(ctx context.Context, profile models.CandidateProfile) models.AssessmentDefinition
	Evaluate(ctx context.Context, assessment models.AssessmentDefinition, answers []models.SubmissionAnswer, submissions []models.CodeSubmission) (models.AggregateScore, []models.EvaluationResult)
}

type AssessmentHandler struct {
	pipeline AssessmentPipeline
	store    *store.ResultStore
	provider llm.Provider
	logger   *zap.Logger
}

func NewAssessmentHandler(pipeline AssessmentPipeline, resultStore *store.ResultStore, provider llm.Provider, logger *zap.Logger) *AssessmentHandler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AssessmentHandler{
		pipeline: pipeline,
		store:    resultStore,
		provider: provider,
		logger:   logger,
	}
}

func (h *AssessmentHandler) GenerateHandler(w http.ResponseWriter, r *http.Request) {
	req := middleware.GetValidatedRequest[*models.GenerateAssessmentRequest](r)
	req.RequestID = ensureRequestID(req.RequestID)

	start := time.Now()
	assessment := h.pipeline.Generate(r.Context(), req.Profile)

	// Storage failure degrades durability, not the response: the assessment
	// stays usable through the cache for its TTL.
	if err := h.store.SaveAssessment(&assessment); err != nil {
		h.logger.Warn("failed to persist assessment",
			zap.Error(err), zap.String("assessment_id", assessment.ID))
	}

	h.logger.Info("assessment request served",
		zap.String("request_id", req.RequestID),
		zap.String("assessment_id", assessment.ID),
		zap.Int("processing_time_ms", int(time.Since(start).Milliseconds())))

	utils.JSON(w, http.StatusOK, models.GenerateAssessmentResponse{
		Assessment: &assessment,
		RequestID:  req.RequestID,
		Metadata: models.AssessmentMetadata{
			ProcessingTime: int(time.Since(start).Milliseconds()),
			Provider:       h.provider.GetProviderName(),
		},
	})
}

func (h *AssessmentHandler) EvaluateHandler(w http.ResponseWriter, r *http.Request) {
	assessmentID := chi.URLParam(r, "id")
	assessment, err := h.store.GetAssessment(assessmentID)
	if err != nil {
		utils.JSON(w, http.StatusNotFound, models.ErrorResponse{
			Code:    "assessment_not_found",
			Message: "No assessment with that ID; it may have expired",
		})
		return
	}

	req := middleware.GetValidatedRequest[*models.EvaluateAssessmentRequest](r)
	req.RequestID = ensureRequestID(req.RequestID)

	start := time.Now()
	score, results := h.pipeline.Evaluate(r.Context(), *assessment, req.Answers, req.Submissions)

	if err := h.store.SaveEvaluation(assessment.ID, score, results); err != nil {
		h.logger.Warn("failed to persist evaluation",
			zap.Error(err), zap.String("assessment_id", assessment.ID))
	}

	h.logger.Info("evaluation request served",
		zap.String("request_id", req.RequestID),
		zap.String("assessment_id", assessment.ID),
		zap.Float64("percentage", score.Percentage),
		zap.Bool("passed", score.Passed))

	utils.JSON(w, http.StatusOK, models.EvaluateAssessmentResponse{
		AssessmentID: assessment.ID,
		Score:        score,
		Results:      results,
		RequestID:    req.RequestID,
		Metadata: models.AssessmentMetadata{
			ProcessingTime: int(time.Since(start).Milliseconds()),
			Provider:       h.provider.GetProviderName(),
		},
	})
}

// StatsHandler reports storage counts for operational dashboards.
func (h *AssessmentHandler) StatsHandler(w http.ResponseWriter, r *http.Request) {
	stats, err := h.store.Stats()
	if err != nil {
		h.logger.Error("failed to collect stats", zap.Error(err))
		utils.JSON(w, http.StatusInternalServerError, models.ErrorResponse{
			Code:    "stats_error",
			Message: "Failed to collect storage statistics",
		})
		return
	}
	utils.JSON(w, http.StatusOK, stats)
}

func ensureRequestID(requestID string) string {
	if requestID == "" {
		return uuid.New().String()
	}
	return requestID
}
