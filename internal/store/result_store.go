package store

import (
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"talentgate/assess/internal/models"
)

// ResultStore persists issued assessments and finalized evaluations. The
// pipeline itself performs no storage I/O; handlers hand it plain values and
// the store owns serialization and the cache/database split.
type ResultStore struct {
	db     *gorm.DB
	cache  *AssessmentCache
	logger *zap.Logger
}

// NewResultStore wires the store. db may be nil; the store then degrades to
// cache-only operation (assessments expire with the TTL and evaluations are
// not retained).
func NewResultStore(db *gorm.DB, cacheTTL time.Duration, logger *zap.Logger) *ResultStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ResultStore{
		db:     db,
		cache:  NewAssessmentCache(cacheTTL),
		logger: logger,
	}
}

// SaveAssessment caches the assessment and writes its durable record.
func (s *ResultStore) SaveAssessment(assessment *models.AssessmentDefinition) error {
	s.cache.Set(assessment)

	if s.db == nil {
		return nil
	}

	payload, err := json.Marshal(assessment)
	if err != nil {
		return fmt.Errorf("failed to encode assessment: %w", err)
	}
	record := &models.AssessmentRecord{
		AssessmentID: assessment.ID,
		Difficulty:   assessment.Difficulty,
		Language:     assessment.Language,
		TotalPoints:  assessment.TotalPoints,
		Payload:      payload,
	}
	if err := s.db.Create(record).Error; err != nil {
		return fmt.Errorf("failed to store assessment: %w", err)
	}

	s.logger.Info("assessment stored",
		zap.String("assessment_id", assessment.ID),
		zap.Int("total_points", assessment.TotalPoints))
	return nil
}

// GetAssessment looks the assessment up in the cache first, then falls back
// to the database record. A database hit refreshes the cache.
func (s *ResultStore) GetAssessment(assessmentID string) (*models.AssessmentDefinition, error) {
	if assessment, ok := s.cache.Get(assessmentID); ok {
		return assessment, nil
	}

	if s.db == nil {
		return nil, fmt.Errorf("assessment not found or expired: %s", assessmentID)
	}

	var record models.AssessmentRecord
	if err := s.db.Where("assessment_id = ?", assessmentID).First(&record).Error; err != nil {
		return nil, fmt.Errorf("assessment not found: %s", assessmentID)
	}

	var assessment models.AssessmentDefinition
	if err := json.Unmarshal(record.Payload, &assessment); err != nil {
		return nil, fmt.Errorf("failed to decode stored assessment %s: %w", assessmentID, err)
	}

	s.cache.Set(&assessment)
	return &assessment, nil
}

// SaveEvaluation writes a finalized aggregate score with its per-task
// results.
func (s *ResultStore) SaveEvaluation(assessmentID string, score models.AggregateScore, results []models.EvaluationResult) error {
	if s.db == nil {
		return nil
	}

	payload, err := json.Marshal(results)
	if err != nil {
		return fmt.Errorf("failed to encode evaluation results: %w", err)
	}
	record := &models.EvaluationRecord{
		AssessmentID: assessmentID,
		TotalScore:   score.TotalScore,
		MaxScore:     score.MaxScore,
		Percentage:   score.Percentage,
		Passed:       score.Passed,
		Payload:      payload,
		EvaluatedAt:  time.Now().UTC(),
		Exported:     false,
	}
	if err := s.db.Create(record).Error; err != nil {
		return fmt.Errorf("failed to store evaluation: %w", err)
	}

	s.logger.Info("evaluation stored",
		zap.String("assessment_id", assessmentID),
		zap.Float64("percentage", score.Percentage),
		zap.Bool("passed", score.Passed))
	return nil
}

// GetUnexportedEvaluations retrieves evaluations that haven't been exported
// yet, oldest first.
func (s *ResultStore) GetUnexportedEvaluations(limit int) ([]models.EvaluationRecord, error) {
	if s.db == nil {
		return nil, nil
	}

	var records []models.EvaluationRecord
	query := s.db.Where("exported = ?", false).Order("evaluated_at ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&records).Error; err != nil {
		return nil, fmt.Errorf("failed to get unexported evaluations: %w", err)
	}
	return records, nil
}

// MarkExported marks evaluation records as exported.
func (s *ResultStore) MarkExported(recordIDs []uint) error {
	if s.db == nil || len(recordIDs) == 0 {
		return nil
	}

	now := time.Now()
	result := s.db.Model(&models.EvaluationRecord{}).
		Where("id IN ?", recordIDs).
		Updates(map[string]interface{}{
			"exported":    true,
			"exported_at": now,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to mark evaluations as exported: %w", result.Error)
	}

	s.logger.Info("evaluations marked exported", zap.Int64("count", result.RowsAffected))
	return nil
}

// ExportToJSONL renders evaluation records as JSONL report lines.
func (s *ResultStore) ExportToJSONL(records []models.EvaluationRecord) ([]byte, error) {
	lines := make([][]byte, 0, len(records))
	for _, record := range records {
		var results []models.EvaluationResult
		if len(record.Payload) > 0 {
			if err := json.Unmarshal(record.Payload, &results); err != nil {
				return nil, fmt.Errorf("failed to decode results for record %d: %w", record.ID, err)
			}
		}
		line := models.ReportLine{
			AssessmentID: record.AssessmentID,
			TotalScore:   record.TotalScore,
			MaxScore:     record.MaxScore,
			Percentage:   record.Percentage,
			Passed:       record.Passed,
			EvaluatedAt:  record.EvaluatedAt,
			Results:      results,
		}
		encoded, err := json.Marshal(line)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal report line: %w", err)
		}
		lines = append(lines, encoded)
	}

	var out []byte
	for i, line := range lines {
		out = append(out, line...)
		if i < len(lines)-1 {
			out = append(out, '\n')
		}
	}
	return out, nil
}

// Stats returns counts about stored assessments and evaluations.
func (s *ResultStore) Stats() (map[string]interface{}, error) {
	stats := map[string]interface{}{
		"cached_assessments": s.cache.Size(),
	}
	if s.db == nil {
		return stats, nil
	}

	var assessmentCount int64
	if err := s.db.Model(&models.AssessmentRecord{}).Count(&assessmentCount).Error; err != nil {
		return nil, err
	}
	stats["assessment_count"] = assessmentCount

	var evaluationCount int64
	if err := s.db.Model(&models.EvaluationRecord{}).Count(&evaluationCount).Error; err != nil {
		return nil, err
	}
	stats["evaluation_count"] = evaluationCount

	var passedCount int64
	if err := s.db.Model(&models.EvaluationRecord{}).Where("passed = ?", true).Count(&passedCount).Error; err != nil {
		return nil, err
	}
	stats["passed_count"] = passedCount

	var unexportedCount int64
	if err := s.db.Model(&models.EvaluationRecord{}).Where("exported = ?", false).Count(&unexportedCount).Error; err != nil {
		return nil, err
	}
	stats["unexported_count"] = unexportedCount

	return stats, nil
}
