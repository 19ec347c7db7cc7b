package pipeline

import (
	"talentgate/assess/internal/config"
	"talentgate/assess/internal/models"
)

// Aggregator combines quiz answers and task evaluations into one
// AggregateScore. Pure computation; each aggregation reads its inputs and
// produces a value, nothing is retained between calls.
type Aggregator struct {
	taskPassThreshold    int
	overallPassThreshold int
}

func NewAggregator(cfg *config.Config) *Aggregator {
	return &Aggregator{
		taskPassThreshold:    cfg.TaskPassThreshold,
		overallPassThreshold: cfg.OverallPassThreshold,
	}
}

func (a *Aggregator) Aggregate(
	assessment models.AssessmentDefinition,
	answers []models.SubmissionAnswer,
	evaluations []models.EvaluationResult,
) models.AggregateScore {
	questionByID := make(map[string]models.QuestionItem, len(assessment.Questions))
	maxQuiz := 0.0
	for _, q := range assessment.Questions {
		questionByID[q.ID] = q
		maxQuiz += float64(q.Points)
	}
	taskByID := make(map[string]models.TaskItem, len(assessment.Tasks))
	for _, t := range assessment.Tasks {
		taskByID[t.ID] = t
	}

	// One answer per question; repeated question IDs keep the first answer
	// so duplicates cannot push totalScore past maxScore.
	total := 0.0
	correct := 0
	answered := make(map[string]bool, len(answers))
	for _, answer := range answers {
		q, ok := questionByID[answer.QuestionID]
		if !ok || answered[answer.QuestionID] {
			continue
		}
		answered[answer.QuestionID] = true
		if answer.Selected == q.CorrectAnswer {
			total += float64(q.Points)
			correct++
		}
	}

	// Same rule for tasks: the first evaluation per task ID counts.
	maxScore := maxQuiz
	attempted := 0
	completed := 0
	graded := make(map[string]bool, len(evaluations))
	for _, eval := range evaluations {
		task, ok := taskByID[eval.TaskID]
		if !ok || graded[eval.TaskID] {
			continue
		}
		graded[eval.TaskID] = true
		attempted++
		maxScore += float64(task.Points)
		total += float64(eval.Score) / 100 * float64(task.Points)
		if eval.Score >= a.taskPassThreshold {
			completed++
		}
	}

	percentage := 0.0
	if maxScore > 0 {
		percentage = total / maxScore * 100
	}

	quizAccuracy := 0.0
	if len(assessment.Questions) > 0 {
		quizAccuracy = float64(correct) / float64(len(assessment.Questions))
	}
	completionRate := 0.0
	if attempted > 0 {
		completionRate = float64(completed) / float64(attempted)
	}

	return models.AggregateScore{
		TotalScore:         total,
		MaxScore:           maxScore,
		Percentage:         percentage,
		Passed:             percentage >= float64(a.overallPassThreshold),
		QuizAccuracy:       quizAccuracy,
		TaskCompletionRate: completionRate,
		CorrectAnswers:     correct,
		TotalQuestions:     len(assessment.Questions),
		TasksCompleted:     completed,
		TasksAttempted:     attempted,
	}
}
