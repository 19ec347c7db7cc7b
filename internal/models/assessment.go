package models

import (
	"errors"
	"strings"
	"time"
)

var (
	ErrOptionCount      = errors.New("question must have exactly 4 options")
	ErrDuplicateOption  = errors.New("question options must be unique")
	ErrAnswerNotOption  = errors.New("correct answer must equal one of the options")
	ErrEmptyPrompt      = errors.New("question prompt must not be empty")
	ErrEmptyDescription = errors.New("task description must not be empty")
)

// QuestionItem is a validated multiple-choice question. Construct through
// NewQuestionItem; instances are never mutated after creation.
type QuestionItem struct {
	ID               string   `json:"id"`
	Prompt           string   `json:"prompt"`
	Options          []string `json:"options"`
	CorrectAnswer    string   `json:"correct_answer"`
	Difficulty       string   `json:"difficulty"`
	Points           int      `json:"points"`
	TimeLimitSeconds int      `json:"time_limit_seconds"`
	Language         string   `json:"language"`
}

// NewQuestionItem validates the multiple-choice invariants: exactly four
// unique options and a correct answer that equals one of them verbatim.
func NewQuestionItem(id, prompt string, options []string, answer, difficulty, language string, points, timeLimit int) (QuestionItem, error) {
	if strings.TrimSpace(prompt) == "" {
		return QuestionItem{}, ErrEmptyPrompt
	}
	if len(options) != QuestionOptionCount {
		return QuestionItem{}, ErrOptionCount
	}
	seen := make(map[string]bool, QuestionOptionCount)
	answerFound := false
	for _, opt := range options {
		if seen[opt] {
			return QuestionItem{}, ErrDuplicateOption
		}
		seen[opt] = true
		if opt == answer {
			answerFound = true
		}
	}
	if !answerFound {
		return QuestionItem{}, ErrAnswerNotOption
	}
	if points <= 0 {
		points = DefaultQuestionPoints
	}
	if timeLimit <= 0 {
		timeLimit = DefaultQuestionTimeSeconds
	}
	return QuestionItem{
		ID:               id,
		Prompt:           prompt,
		Options:          append([]string(nil), options...),
		CorrectAnswer:    answer,
		Difficulty:       difficulty,
		Points:           points,
		TimeLimitSeconds: timeLimit,
		Language:         language,
	}, nil
}

// SampleCase is one input/output pair illustrating a coding task.
type SampleCase struct {
	Input  string `json:"input"`
	Output string `json:"output"`
}

// RubricCriterion is one named, weighted grading criterion.
type RubricCriterion struct {
	Name   string `json:"name"`
	Weight int    `json:"weight"`
}

// GenericRubric is used when a task arrives without a usable rubric.
func GenericRubric() []RubricCriterion {
	return []RubricCriterion{
		{Name: "correctness", Weight: 50},
		{Name: "efficiency", Weight: 25},
		{Name: "code quality", Weight: 25},
	}
}

// TaskItem is a validated coding task. Construct through NewTaskItem.
type TaskItem struct {
	ID               string            `json:"id"`
	Title            string            `json:"title"`
	Description      string            `json:"description"`
	SampleCases      []SampleCase      `json:"sample_cases"`
	ModelSolution    string            `json:"model_solution"`
	Difficulty       string            `json:"difficulty"`
	Points           int               `json:"points"`
	TimeLimitSeconds int               `json:"time_limit_seconds"`
	Rubric           []RubricCriterion `json:"rubric"`
	Language         string            `json:"language"`
}

// NewTaskItem validates a coding task. A missing or inconsistent rubric is
// replaced with the generic one; weights are normalized to sum to 100.
func NewTaskItem(id, title, description string, cases []SampleCase, solution string, rubric []RubricCriterion, difficulty, language string, points, timeLimit int) (TaskItem, error) {
	if strings.TrimSpace(description) == "" {
		return TaskItem{}, ErrEmptyDescription
	}
	if strings.TrimSpace(title) == "" {
		title = "Coding Task"
	}
	if points <= 0 {
		points = DefaultTaskPoints
	}
	if timeLimit <= 0 {
		timeLimit = DefaultTaskTimeSeconds
	}
	return TaskItem{
		ID:               id,
		Title:            title,
		Description:      description,
		SampleCases:      append([]SampleCase(nil), cases...),
		ModelSolution:    solution,
		Difficulty:       difficulty,
		Points:           points,
		TimeLimitSeconds: timeLimit,
		Rubric:           NormalizeRubric(rubric),
		Language:         language,
	}, nil
}

// NormalizeRubric forces rubric weights to sum to RubricWeightTotal. Criteria
// with empty names or non-positive weights are dropped; if nothing usable
// remains the generic rubric is returned. Rounding remainder goes to the
// first criterion.
func NormalizeRubric(rubric []RubricCriterion) []RubricCriterion {
	kept := make([]RubricCriterion, 0, len(rubric))
	total := 0
	for _, c := range rubric {
		if strings.TrimSpace(c.Name) == "" || c.Weight <= 0 {
			continue
		}
		kept = append(kept, c)
		total += c.Weight
	}
	if len(kept) == 0 || total <= 0 {
		return GenericRubric()
	}
	if total == RubricWeightTotal {
		return kept
	}
	scaled := 0
	for i := range kept {
		kept[i].Weight = kept[i].Weight * RubricWeightTotal / total
		scaled += kept[i].Weight
	}
	kept[0].Weight += RubricWeightTotal - scaled
	return kept
}

// AssessmentDefinition is the full generated assessment. Created once per
// request; ownership transfers to the caller for persistence.
type AssessmentDefinition struct {
	ID          string         `json:"id"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Difficulty  string         `json:"difficulty"`
	Language    string         `json:"language"`
	TotalPoints int            `json:"total_points"`
	Questions   []QuestionItem `json:"questions"`
	Tasks       []TaskItem     `json:"tasks"`
	CreatedAt   time.Time      `json:"created_at"`
}

// TotalPointsOf sums item points; used to populate TotalPoints at compose time.
func TotalPointsOf(questions []QuestionItem, tasks []TaskItem) int {
	total := 0
	for _, q := range questions {
		total += q.Points
	}
	for _, t := range tasks {
		total += t.Points
	}
	return total
}
