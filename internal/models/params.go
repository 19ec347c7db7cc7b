package models

// GenerationParameters drive a single generation run. Derived once from a
// candidate profile and never mutated afterwards.
type GenerationParameters struct {
	Difficulty    string   `json:"difficulty"`
	Language      string   `json:"language"`
	QuestionCount int      `json:"question_count"`
	TaskCount     int      `json:"task_count"`
	PointBudget   int      `json:"point_budget"`
	FocusSkills   []string `json:"focus_skills"`
}

// DefaultParameters is the fixed fallback when parameter inference fails.
func DefaultParameters() GenerationParameters {
	return GenerationParameters{
		Difficulty:    "medium",
		Language:      "python",
		QuestionCount: 5,
		TaskCount:     3,
		PointBudget:   100,
	}
}

// Clamped returns a copy with every field forced into its valid range.
// Out-of-range or missing values are silently corrected, never rejected.
func (p GenerationParameters) Clamped() GenerationParameters {
	out := p
	if !ValidDifficulties[out.Difficulty] {
		out.Difficulty = "medium"
	}
	if !SupportedLanguages[out.Language] {
		out.Language = "python"
	}
	out.QuestionCount = clampInt(out.QuestionCount, MinQuestionCount, MaxQuestionCount)
	out.TaskCount = clampInt(out.TaskCount, MinTaskCount, MaxTaskCount)
	out.PointBudget = clampInt(out.PointBudget, MinPointBudget, MaxPointBudget)
	return out
}

func clampInt(v, min, max int) int {
	if v < min {
		return min
	}
	if v > max {
		return max
	}
	return v
}
