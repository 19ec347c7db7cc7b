package store

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"talentgate/assess/internal/models"
)

func newTestStore(t *testing.T) *ResultStore {
	t.Helper()

	dsn := fmt.Sprintf("file:%d?mode=memory&cache=shared", time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}

	if err := db.AutoMigrate(&models.AssessmentRecord{}, &models.EvaluationRecord{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}

	return NewResultStore(db, time.Minute, nil)
}

func testAssessment(id string) *models.AssessmentDefinition {
	q, _ := models.NewQuestionItem("q1", "pick one", []string{"A) a", "B) b", "C) c", "D) d"}, "A) a", "medium", "python", 10, 60)
	task, _ := models.NewTaskItem("t1", "Task", "Do it.", []models.SampleCase{{Input: "x", Output: "y"}}, "", nil, "medium", "python", 20, 900)
	return &models.AssessmentDefinition{
		ID:          id,
		Title:       "Medium Python assessment",
		Difficulty:  "medium",
		Language:    "python",
		TotalPoints: 30,
		Questions:   []models.QuestionItem{q},
		Tasks:       []models.TaskItem{task},
		CreatedAt:   time.Now().UTC(),
	}
}

func TestSaveAndGetAssessment(t *testing.T) {
	s := newTestStore(t)

	if err := s.SaveAssessment(testAssessment("a1")); err != nil {
		t.Fatalf("SaveAssessment returned error: %v", err)
	}

	got, err := s.GetAssessment("a1")
	if err != nil {
		t.Fatalf("GetAssessment returned error: %v", err)
	}
	if got.ID != "a1" || len(got.Questions) != 1 || len(got.Tasks) != 1 {
		t.Fatalf("unexpected assessment: %+v", got)
	}
}

func TestGetAssessmentSurvivesCacheEviction(t *testing.T) {
	s := newTestStore(t)

	if err := s.SaveAssessment(testAssessment("a1")); err != nil {
		t.Fatalf("SaveAssessment returned error: %v", err)
	}
	s.cache.Delete("a1")

	got, err := s.GetAssessment("a1")
	if err != nil {
		t.Fatalf("expected database fallback, got error: %v", err)
	}
	if got.Questions[0].CorrectAnswer != "A) a" {
		t.Fatalf("expected full payload round-trip, got %+v", got.Questions[0])
	}
	if s.cache.Size() != 1 {
		t.Fatalf("expected database hit to refresh the cache")
	}
}

func TestGetAssessmentUnknownID(t *testing.T) {
	s := newTestStore(t)

	if _, err := s.GetAssessment("ghost"); err == nil {
		t.Fatalf("expected error for unknown assessment")
	}
}

func TestSaveEvaluationAndExportFlow(t *testing.T) {
	s := newTestStore(t)

	score := models.AggregateScore{TotalScore: 26, MaxScore: 40, Percentage: 65, Passed: true}
	results := []models.EvaluationResult{{TaskID: "t1", Score: 80, Feedback: "ok", Passed: true}}
	if err := s.SaveEvaluation("a1", score, results); err != nil {
		t.Fatalf("SaveEvaluation returned error: %v", err)
	}

	records, err := s.GetUnexportedEvaluations(0)
	if err != nil {
		t.Fatalf("GetUnexportedEvaluations returned error: %v", err)
	}
	if len(records) != 1 || records[0].Percentage != 65 {
		t.Fatalf("unexpected records: %+v", records)
	}

	jsonl, err := s.ExportToJSONL(records)
	if err != nil {
		t.Fatalf("ExportToJSONL returned error: %v", err)
	}
	line := string(jsonl)
	if !strings.Contains(line, `"assessment_id":"a1"`) || !strings.Contains(line, `"passed":true`) {
		t.Fatalf("unexpected JSONL line: %s", line)
	}
	if strings.Contains(line, "\n") {
		t.Fatalf("single record must not produce a trailing newline: %q", line)
	}

	if err := s.MarkExported([]uint{records[0].ID}); err != nil {
		t.Fatalf("MarkExported returned error: %v", err)
	}
	remaining, err := s.GetUnexportedEvaluations(0)
	if err != nil {
		t.Fatalf("GetUnexportedEvaluations returned error: %v", err)
	}
	if len(remaining) != 0 {
		t.Fatalf("expected no unexported records, got %d", len(remaining))
	}
}

func TestExportToJSONLMultipleLines(t *testing.T) {
	s := newTestStore(t)

	for i := 0; i < 3; i++ {
		score := models.AggregateScore{TotalScore: float64(10 * i), MaxScore: 40}
		if err := s.SaveEvaluation(fmt.Sprintf("a%d", i), score, nil); err != nil {
			t.Fatalf("SaveEvaluation returned error: %v", err)
		}
	}

	records, err := s.GetUnexportedEvaluations(0)
	if err != nil {
		t.Fatalf("GetUnexportedEvaluations returned error: %v", err)
	}
	jsonl, err := s.ExportToJSONL(records)
	if err != nil {
		t.Fatalf("ExportToJSONL returned error: %v", err)
	}
	if got := len(strings.Split(string(jsonl), "\n")); got != 3 {
		t.Fatalf("expected 3 JSONL lines, got %d", got)
	}
}

func TestStats(t *testing.T) {
	s := newTestStore(t)

	if err := s.SaveAssessment(testAssessment("a1")); err != nil {
		t.Fatalf("SaveAssessment returned error: %v", err)
	}
	if err := s.SaveEvaluation("a1", models.AggregateScore{Percentage: 80, Passed: true}, nil); err != nil {
		t.Fatalf("SaveEvaluation returned error: %v", err)
	}
	if err := s.SaveEvaluation("a1", models.AggregateScore{Percentage: 20}, nil); err != nil {
		t.Fatalf("SaveEvaluation returned error: %v", err)
	}

	stats, err := s.Stats()
	if err != nil {
		t.Fatalf("Stats returned error: %v", err)
	}
	if stats["assessment_count"].(int64) != 1 {
		t.Fatalf("expected 1 assessment, got %v", stats["assessment_count"])
	}
	if stats["evaluation_count"].(int64) != 2 || stats["passed_count"].(int64) != 1 {
		t.Fatalf("unexpected evaluation stats: %v", stats)
	}
	if stats["cached_assessments"].(int) != 1 {
		t.Fatalf("expected 1 cached assessment, got %v", stats["cached_assessments"])
	}
}

func TestNilDatabaseDegradesToCacheOnly(t *testing.T) {
	s := NewResultStore(nil, time.Minute, nil)

	if err := s.SaveAssessment(testAssessment("a1")); err != nil {
		t.Fatalf("SaveAssessment returned error: %v", err)
	}
	if _, err := s.GetAssessment("a1"); err != nil {
		t.Fatalf("expected cache hit, got error: %v", err)
	}
	if err := s.SaveEvaluation("a1", models.AggregateScore{}, nil); err != nil {
		t.Fatalf("expected nil-db SaveEvaluation to be a no-op, got %v", err)
	}
	records, err := s.GetUnexportedEvaluations(0)
	if err != nil || records != nil {
		t.Fatalf("expected no records without a database, got %v / %v", records, err)
	}
}

func TestAssessmentCacheExpiry(t *testing.T) {
	c := NewAssessmentCache(10 * time.Millisecond)

	c.Set(testAssessment("a1"))
	if _, ok := c.Get("a1"); !ok {
		t.Fatalf("expected fresh entry to be readable")
	}

	time.Sleep(20 * time.Millisecond)
	if _, ok := c.Get("a1"); ok {
		t.Fatalf("expected entry to expire")
	}
}
