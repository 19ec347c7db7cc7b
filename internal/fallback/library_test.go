package fallback

import "testing"

func TestQuestionsStampsParametersAndIDs(t *testing.T) {
	lib := NewLibrary()

	items := lib.Questions(3, "hard", "go")
	if len(items) != 3 {
		t.Fatalf("expected 3 questions, got %d", len(items))
	}
	seen := map[string]bool{}
	for _, q := range items {
		if q.Difficulty != "hard" || q.Language != "go" {
			t.Fatalf("expected stamped difficulty/language, got %s/%s", q.Difficulty, q.Language)
		}
		if len(q.Options) != 4 {
			t.Fatalf("expected 4 options, got %d", len(q.Options))
		}
		if q.ID == "" || seen[q.ID] {
			t.Fatalf("expected unique non-empty IDs")
		}
		seen[q.ID] = true
	}
}

func TestQuestionsTruncatesAtPoolSize(t *testing.T) {
	lib := NewLibrary()

	items := lib.Questions(lib.QuestionPoolSize()+3, "medium", "python")
	if len(items) != lib.QuestionPoolSize() {
		t.Fatalf("expected pool-size truncation to %d, got %d", lib.QuestionPoolSize(), len(items))
	}
}

func TestTasksCarryGenericRubric(t *testing.T) {
	lib := NewLibrary()

	items := lib.Tasks(2, "easy", "javascript")
	if len(items) != 2 {
		t.Fatalf("expected 2 tasks, got %d", len(items))
	}
	for _, task := range items {
		total := 0
		for _, c := range task.Rubric {
			total += c.Weight
		}
		if total != 100 {
			t.Fatalf("expected rubric summing to 100, got %d", total)
		}
		if len(task.SampleCases) == 0 || task.ModelSolution == "" {
			t.Fatalf("expected sample cases and a model solution")
		}
	}
}

func TestTasksTruncatesAtPoolSize(t *testing.T) {
	lib := NewLibrary()

	items := lib.Tasks(lib.TaskPoolSize()+5, "medium", "python")
	if len(items) != lib.TaskPoolSize() {
		t.Fatalf("expected pool-size truncation to %d, got %d", lib.TaskPoolSize(), len(items))
	}
}

func TestFreshIDsPerCall(t *testing.T) {
	lib := NewLibrary()

	first := lib.Questions(2, "medium", "python")
	second := lib.Questions(2, "medium", "python")
	if first[0].ID == second[0].ID {
		t.Fatalf("expected fresh IDs per call")
	}
}
