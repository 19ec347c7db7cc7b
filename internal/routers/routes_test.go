package routers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"text/template"
	"time"

	"github.com/go-chi/chi/v5"

	"talentgate/assess/internal/config"
	"talentgate/assess/internal/handlers"
	"talentgate/assess/internal/llm"
	"talentgate/assess/internal/models"
	"talentgate/assess/internal/prompts"
	"talentgate/assess/internal/store"
)

type stubProvider struct{}

func (stubProvider) GenerateText(context.Context, string, models.GenerationOptions) (*models.GenerationResult, error) {
	return &models.GenerationResult{Text: "{}"}, nil
}

func (stubProvider) GetProviderName() string { return "stub" }

type stubPromptManager struct{}

func (stubPromptManager) BuildPrompt(string, string, interface{}) (string, error) {
	return "prompt", nil
}

func (stubPromptManager) GetTemplates() map[string]map[string]*template.Template {
	return map[string]map[string]*template.Template{}
}

type stubPipeline struct{}

func (stubPipeline) Generate(context.Context, models.CandidateProfile) models.AssessmentDefinition {
	return models.AssessmentDefinition{ID: "stub"}
}

func (stubPipeline) Evaluate(context.Context, models.AssessmentDefinition, []models.SubmissionAnswer, []models.CodeSubmission) (models.AggregateScore, []models.EvaluationResult) {
	return models.AggregateScore{}, nil
}

var (
	_ llm.Provider                = (*stubProvider)(nil)
	_ prompts.PromptProvider      = (*stubPromptManager)(nil)
	_ handlers.AssessmentPipeline = (*stubPipeline)(nil)
)

func TestHealthRoutes(t *testing.T) {
	router := chi.NewRouter()
	handler := handlers.NewHealthHandler(nil, nil, &config.Config{Provider: "gemini"})

	HealthRoutes(router, handler)

	req, _ := http.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("/healthz route not registered correctly, got status %d", rec.Code)
	}
}

func TestAssessmentRoutesRegistersEndpoints(t *testing.T) {
	router := chi.NewRouter()
	resultStore := store.NewResultStore(nil, time.Minute, nil)
	handler := handlers.NewAssessmentHandler(stubPipeline{}, resultStore, stubProvider{}, nil)

	AssessmentRoutes(router, handler)

	paths := map[string]bool{}
	if err := chi.Walk(router, func(method string, route string, _ http.Handler, _ ...func(http.Handler) http.Handler) error {
		paths[method+" "+route] = true
		return nil
	}); err != nil {
		t.Fatalf("failed walking routes: %v", err)
	}

	expected := []string{
		"POST /api/v1/assessments/generate",
		"POST /api/v1/assessments/{id}/evaluate",
		"GET /api/v1/assessments/stats",
	}

	for _, route := range expected {
		if !paths[route] {
			t.Fatalf("expected route %s to be registered", route)
		}
	}
}
