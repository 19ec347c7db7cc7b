package models

// SubmissionAnswer is a candidate's chosen option for one question.
type SubmissionAnswer struct {
	QuestionID string `json:"question_id"`
	Selected   string `json:"selected"`
}

// CodeSubmission is a candidate's code for one task.
type CodeSubmission struct {
	TaskID   string `json:"task_id"`
	Code     string `json:"code"`
	Language string `json:"language"`
}

// EvaluationResult is the rubric-based verdict for one task submission.
// Score is the raw 0-100 value before point weighting; never mutated after
// creation.
type EvaluationResult struct {
	TaskID     string   `json:"task_id"`
	Score      int      `json:"score"`
	Feedback   string   `json:"feedback"`
	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`
	Passed     bool     `json:"passed"`
}

// AggregateScore is the final combined result for a whole submission.
// Computed once at finalize time; immutable.
type AggregateScore struct {
	TotalScore         float64 `json:"total_score"`
	MaxScore           float64 `json:"max_score"`
	Percentage         float64 `json:"percentage"`
	Passed             bool    `json:"passed"`
	QuizAccuracy       float64 `json:"quiz_accuracy"`
	TaskCompletionRate float64 `json:"task_completion_rate"`
	CorrectAnswers     int     `json:"correct_answers"`
	TotalQuestions     int     `json:"total_questions"`
	TasksCompleted     int     `json:"tasks_completed"`
	TasksAttempted     int     `json:"tasks_attempted"`
}

// ClampScore forces a raw evaluator score into [0,100].
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
