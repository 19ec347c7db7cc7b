package handlers

import (
	"context"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"talentgate/assess/internal/middleware"
	"talentgate/assess/internal/models"
	"talentgate/assess/internal/store"
)

type mockPipeline struct {
	generateFn func(ctx context.Context, profile models.CandidateProfile) models.AssessmentDefinition
	evaluateFn func(ctx context.Context, assessment models.AssessmentDefinition, answers []models.SubmissionAnswer, submissions []models.CodeSubmission) (models.AggregateScore, []models.EvaluationResult)
}

func (m *mockPipeline) Generate(ctx context.Context, profile models.CandidateProfile) models.AssessmentDefinition {
	if m.generateFn != nil {
		return m.generateFn(ctx, profile)
	}
	return models.AssessmentDefinition{ID: "generated"}
}

func (m *mockPipeline) Evaluate(ctx context.Context, assessment models.AssessmentDefinition, answers []models.SubmissionAnswer, submissions []models.CodeSubmission) (models.AggregateScore, []models.EvaluationResult) {
	if m.evaluateFn != nil {
		return m.evaluateFn(ctx, assessment, answers, submissions)
	}
	return models.AggregateScore{}, nil
}

type mockProvider struct{}

func (m *mockProvider) GenerateText(ctx context.Context, prompt string, opts models.GenerationOptions) (*models.GenerationResult, error) {
	return &models.GenerationResult{Text: "{}", Provider: "mock"}, nil
}

func (m *mockProvider) GetProviderName() string { return "mock" }

func sampleAssessment(id string) models.AssessmentDefinition {
	q, _ := models.NewQuestionItem("q1", "pick one", []string{"A) a", "B) b", "C) c", "D) d"}, "A) a", "medium", "python", 10, 60)
	task, _ := models.NewTaskItem("t1", "Task", "Do it.", []models.SampleCase{{Input: "x", Output: "y"}}, "", nil, "medium", "python", 20, 900)
	return models.AssessmentDefinition{
		ID:          id,
		Title:       "Sample",
		Difficulty:  "medium",
		Language:    "python",
		TotalPoints: 30,
		Questions:   []models.QuestionItem{q},
		Tasks:       []models.TaskItem{task},
		CreatedAt:   time.Now().UTC(),
	}
}

// testRouter mirrors the production route shape so the validation middleware
// and URL parameters behave as they do in the live service.
func testRouter(t *testing.T, pipeline AssessmentPipeline) (*chi.Mux, *store.ResultStore) {
	t.Helper()

	resultStore := store.NewResultStore(nil, time.Minute, nil)
	handler := NewAssessmentHandler(pipeline, resultStore, &mockProvider{}, nil)

	router := chi.NewRouter()
	router.With(middleware.ValidateRequest[*models.GenerateAssessmentRequest]()).
		Post("/api/v1/assessments/generate", handler.GenerateHandler)
	router.With(middleware.ValidateRequest[*models.EvaluateAssessmentRequest]()).
		Post("/api/v1/assessments/{id}/evaluate", handler.EvaluateHandler)
	router.Get("/api/v1/assessments/stats", handler.StatsHandler)
	return router, resultStore
}
