package parser

import (
	"encoding/json"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"talentgate/assess/internal/models"
	"talentgate/assess/internal/utils"
)

// Parser turns raw generated text into schema-valid assessment items.
// Malformed payloads and invalid elements are dropped, never surfaced as
// errors: a batch that cannot be parsed simply yields fewer items.
type Parser struct {
	logger *zap.Logger
}

func NewParser(logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{logger: logger}
}

// ExtractJSON isolates the JSON payload inside raw generated text. The text
// may wrap the payload in prose, markdown fences, or both; the first fenced
// block is preferred, then the widest bracketed span.
func ExtractJSON(raw string) string {
	text := strings.TrimSpace(raw)
	if block, ok := fencedBlock(text); ok {
		if payload, ok := bracketSpan(block); ok {
			return payload
		}
	}
	if payload, ok := bracketSpan(text); ok {
		return payload
	}
	return text
}

// fencedBlock locates the first markdown fence and hands the remainder to
// StripFences, which drops the fence markers and the language tag.
func fencedBlock(text string) (string, bool) {
	start := strings.Index(text, "```")
	if start < 0 {
		return "", false
	}
	return utils.StripFences(text[start:]), true
}

// bracketSpan carves from the earliest opening bracket to the last matching
// closing bracket of the same kind.
func bracketSpan(text string) (string, bool) {
	objStart := strings.IndexByte(text, '{')
	arrStart := strings.IndexByte(text, '[')
	switch {
	case arrStart >= 0 && (objStart < 0 || arrStart < objStart):
		if end := strings.LastIndexByte(text, ']'); end > arrStart {
			return text[arrStart : end+1], true
		}
	case objStart >= 0:
		if end := strings.LastIndexByte(text, '}'); end > objStart {
			return text[objStart : end+1], true
		}
	}
	return "", false
}

type rawQuestion struct {
	Question         string   `json:"question"`
	Options          []string `json:"options"`
	Answer           string   `json:"answer"`
	Points           int      `json:"points"`
	TimeLimitSeconds int      `json:"time_limit_seconds"`
}

// ParseQuestions extracts validated multiple-choice questions from raw text.
// Elements missing required fields, carrying the wrong option count, or with
// an unrepairable answer are dropped.
func (p *Parser) ParseQuestions(raw, difficulty, language string) []models.QuestionItem {
	payload := ExtractJSON(raw)

	var decoded []rawQuestion
	if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
		p.logger.Warn("question batch is not a JSON list", zap.Error(err))
		return nil
	}

	items := make([]models.QuestionItem, 0, len(decoded))
	for i, rq := range decoded {
		if strings.TrimSpace(rq.Question) == "" || len(rq.Options) == 0 || strings.TrimSpace(rq.Answer) == "" {
			p.logger.Debug("dropping question with missing fields", zap.Int("index", i))
			continue
		}

		repaired, ok := RepairAnswer(rq.Answer, rq.Options)
		if !ok {
			p.logger.Debug("dropping question with unrepairable answer",
				zap.Int("index", i), zap.String("answer", rq.Answer))
			continue
		}

		item, err := models.NewQuestionItem(
			uuid.New().String(), rq.Question, rq.Options, repaired,
			difficulty, language, rq.Points, rq.TimeLimitSeconds,
		)
		if err != nil {
			p.logger.Debug("dropping invalid question", zap.Int("index", i), zap.Error(err))
			continue
		}
		items = append(items, item)
	}
	return items
}

type rawTask struct {
	Title            string                   `json:"title"`
	Description      string                   `json:"description"`
	SampleCases      []models.SampleCase      `json:"sample_cases"`
	Solution         string                   `json:"solution"`
	Rubric           []models.RubricCriterion `json:"rubric"`
	Points           int                      `json:"points"`
	TimeLimitSeconds int                      `json:"time_limit_seconds"`
}

// ParseTasks extracts validated coding tasks from raw text. A task needs a
// description and at least one sample case; rubrics are normalized, with the
// generic rubric standing in for unusable ones.
func (p *Parser) ParseTasks(raw, difficulty, language string) []models.TaskItem {
	payload := ExtractJSON(raw)

	var decoded []rawTask
	if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
		p.logger.Warn("task batch is not a JSON list", zap.Error(err))
		return nil
	}

	items := make([]models.TaskItem, 0, len(decoded))
	for i, rt := range decoded {
		if strings.TrimSpace(rt.Description) == "" || len(rt.SampleCases) == 0 {
			p.logger.Debug("dropping task with missing fields", zap.Int("index", i))
			continue
		}

		item, err := models.NewTaskItem(
			uuid.New().String(), rt.Title, rt.Description, rt.SampleCases,
			rt.Solution, rt.Rubric, difficulty, language, rt.Points, rt.TimeLimitSeconds,
		)
		if err != nil {
			p.logger.Debug("dropping invalid task", zap.Int("index", i), zap.Error(err))
			continue
		}
		items = append(items, item)
	}
	return items
}

// EvaluationPayload is the strict score object an evaluation response must
// decode to.
type EvaluationPayload struct {
	Score      float64  `json:"score"`
	Feedback   string   `json:"feedback"`
	Strengths  []string `json:"strengths"`
	Weaknesses []string `json:"weaknesses"`
}

// ParseEvaluation decodes a single evaluation object from raw text. Unlike
// the batch parsers this one reports failure: the evaluator needs to know so
// it can substitute a degraded zero-score result.
func (p *Parser) ParseEvaluation(raw string) (*EvaluationPayload, error) {
	payload := ExtractJSON(raw)

	var decoded EvaluationPayload
	if err := json.Unmarshal([]byte(payload), &decoded); err != nil {
		return nil, err
	}
	return &decoded, nil
}
