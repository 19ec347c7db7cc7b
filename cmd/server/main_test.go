package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"talentgate/assess/internal/config"
	"talentgate/assess/internal/handlers"
	"talentgate/assess/internal/models"
	"talentgate/assess/internal/store"
)

func TestGetEnv(t *testing.T) {
	t.Setenv("MAIN_TEST_KEY", "value")
	if got := getEnv("MAIN_TEST_KEY", "fallback"); got != "value" {
		t.Fatalf("expected value, got %s", got)
	}
	if got := getEnv("MAIN_TEST_MISSING", "fallback"); got != "fallback" {
		t.Fatalf("expected fallback, got %s", got)
	}
}

type stubPipeline struct{}

func (stubPipeline) Generate(context.Context, models.CandidateProfile) models.AssessmentDefinition {
	return models.AssessmentDefinition{ID: "stub"}
}

func (stubPipeline) Evaluate(context.Context, models.AssessmentDefinition, []models.SubmissionAnswer, []models.CodeSubmission) (models.AggregateScore, []models.EvaluationResult) {
	return models.AggregateScore{}, nil
}

type stubProvider struct{}

func (stubProvider) GenerateText(context.Context, string, models.GenerationOptions) (*models.GenerationResult, error) {
	return &models.GenerationResult{Text: "{}"}, nil
}

func (stubProvider) GetProviderName() string { return "stub" }

func TestRegisterRoutes(t *testing.T) {
	router := chi.NewRouter()
	resultStore := store.NewResultStore(nil, time.Minute, nil)
	assessmentHandler := handlers.NewAssessmentHandler(stubPipeline{}, resultStore, stubProvider{}, nil)
	healthHandler := handlers.NewHealthHandler(stubProvider{}, nil, &config.Config{Provider: "gemini"})

	registerRoutes(router, assessmentHandler, healthHandler)

	for _, path := range []string{"/healthz", "/metrics"} {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected %s to be registered, got %d", path, rec.Code)
		}
	}
}
