package models

// contains all valid assessment difficulties (in lowercase)
var ValidDifficulties = map[string]bool{
	"easy":   true,
	"medium": true,
	"hard":   true,
}

// contains all supported programming languages (in lowercase)
var SupportedLanguages = map[string]bool{
	"python":     true,
	"java":       true,
	"cpp":        true,
	"javascript": true,
	"go":         true,
}

func ValidDifficultiesList() []string {
	return []string{"easy", "medium", "hard"}
}

func SupportedLanguagesList() []string {
	return []string{"python", "java", "cpp", "javascript", "go"}
}

// Bounds for generation parameters. Values outside these ranges are
// clamped, never rejected.
const (
	MinQuestionCount = 3
	MaxQuestionCount = 8
	MinTaskCount     = 2
	MaxTaskCount     = 5
	MinPointBudget   = 50
	MaxPointBudget   = 200
)

// Defaults applied when a generated item omits scoring fields.
const (
	DefaultQuestionPoints      = 10
	DefaultTaskPoints          = 20
	DefaultQuestionTimeSeconds = 90
	DefaultTaskTimeSeconds     = 1800
)

// QuestionOptionCount is the exact number of options every multiple-choice
// question carries.
const QuestionOptionCount = 4

// RubricWeightTotal is what a task rubric's weights must sum to.
const RubricWeightTotal = 100
