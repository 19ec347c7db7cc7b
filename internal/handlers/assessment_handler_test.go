package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"talentgate/assess/internal/models"
)

func TestGenerateHandlerSuccess(t *testing.T) {
	pipeline := &mockPipeline{
		generateFn: func(_ context.Context, profile models.CandidateProfile) models.AssessmentDefinition {
			if profile.Role != "backend engineer" {
				t.Fatalf("expected normalized profile forwarded, got %+v", profile)
			}
			return sampleAssessment("a1")
		},
	}
	router, resultStore := testRouter(t, pipeline)

	body := `{"profile": {"resume_text": "Python work.", "role": " backend engineer ", "skills": ["python"]}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/assessments/generate", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp models.GenerateAssessmentResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.Assessment == nil || resp.Assessment.ID != "a1" {
		t.Fatalf("unexpected assessment in response: %+v", resp.Assessment)
	}
	if resp.RequestID == "" || resp.Metadata.Provider != "mock" {
		t.Fatalf("unexpected metadata: %+v", resp)
	}

	// Generated assessments must be retrievable for later evaluation.
	if _, err := resultStore.GetAssessment("a1"); err != nil {
		t.Fatalf("expected assessment stored, got %v", err)
	}
}

func TestGenerateHandlerRejectsEmptyProfile(t *testing.T) {
	router, _ := testRouter(t, &mockPipeline{})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/assessments/generate",
		bytes.NewBufferString(`{"profile": {}}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty profile, got %d", rec.Code)
	}
}

func TestEvaluateHandlerSuccess(t *testing.T) {
	pipeline := &mockPipeline{
		evaluateFn: func(_ context.Context, assessment models.AssessmentDefinition, answers []models.SubmissionAnswer, submissions []models.CodeSubmission) (models.AggregateScore, []models.EvaluationResult) {
			if assessment.ID != "a1" || len(answers) != 1 || len(submissions) != 1 {
				t.Fatalf("unexpected evaluate inputs: %s %d %d", assessment.ID, len(answers), len(submissions))
			}
			return models.AggregateScore{TotalScore: 26, MaxScore: 40, Percentage: 65, Passed: true},
				[]models.EvaluationResult{{TaskID: "t1", Score: 80, Passed: true}}
		},
	}
	router, resultStore := testRouter(t, pipeline)

	assessment := sampleAssessment("a1")
	if err := resultStore.SaveAssessment(&assessment); err != nil {
		t.Fatalf("SaveAssessment returned error: %v", err)
	}

	body := `{"answers": [{"question_id": "q1", "selected": "A) a"}],
		"submissions": [{"task_id": "t1", "code": "def solve(): return 1", "language": "python"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/assessments/a1/evaluate", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp models.EvaluateAssessmentResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if resp.AssessmentID != "a1" || !resp.Score.Passed || resp.Score.Percentage != 65 {
		t.Fatalf("unexpected score: %+v", resp.Score)
	}
	if len(resp.Results) != 1 || resp.Results[0].Score != 80 {
		t.Fatalf("unexpected results: %+v", resp.Results)
	}
}

func TestEvaluateHandlerUnknownAssessment(t *testing.T) {
	router, _ := testRouter(t, &mockPipeline{})

	body := `{"answers": [{"question_id": "q1", "selected": "A) a"}]}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/assessments/ghost/evaluate", bytes.NewBufferString(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown assessment, got %d", rec.Code)
	}
}

func TestEvaluateHandlerRejectsEmptySubmission(t *testing.T) {
	router, resultStore := testRouter(t, &mockPipeline{})

	assessment := sampleAssessment("a1")
	if err := resultStore.SaveAssessment(&assessment); err != nil {
		t.Fatalf("SaveAssessment returned error: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/assessments/a1/evaluate",
		bytes.NewBufferString(`{"answers": [], "submissions": []}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for empty submission, got %d", rec.Code)
	}
}

func TestStatsHandler(t *testing.T) {
	router, resultStore := testRouter(t, &mockPipeline{})

	assessment := sampleAssessment("a1")
	if err := resultStore.SaveAssessment(&assessment); err != nil {
		t.Fatalf("SaveAssessment returned error: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/api/v1/assessments/stats", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var stats map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decoding stats: %v", err)
	}
	if stats["cached_assessments"].(float64) != 1 {
		t.Fatalf("unexpected stats: %v", stats)
	}
}
