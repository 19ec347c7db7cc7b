package models

import (
	"time"

	"gorm.io/gorm"
)

// AssessmentRecord persists an issued assessment so evaluation can outlive
// the in-memory cache. Payload is the JSON-encoded AssessmentDefinition,
// answer keys included; this table is never exposed to candidates.
type AssessmentRecord struct {
	gorm.Model
	AssessmentID string `gorm:"uniqueIndex;not null" json:"assessment_id"`
	Difficulty   string `gorm:"not null" json:"difficulty"`
	Language     string `gorm:"not null" json:"language"`
	TotalPoints  int    `gorm:"not null" json:"total_points"`
	Payload      []byte `gorm:"type:text;not null" json:"payload"`
}

// EvaluationRecord persists one finalized aggregate score for reporting.
// Note: candidate identity is intentionally excluded; linking submissions to
// people is the caller's concern.
type EvaluationRecord struct {
	gorm.Model
	AssessmentID string     `gorm:"index;not null" json:"assessment_id"`
	TotalScore   float64    `gorm:"not null" json:"total_score"`
	MaxScore     float64    `gorm:"not null" json:"max_score"`
	Percentage   float64    `gorm:"not null" json:"percentage"`
	Passed       bool       `gorm:"not null" json:"passed"`
	Payload      []byte     `gorm:"type:text;not null" json:"payload"` // JSON-encoded per-task results
	EvaluatedAt  time.Time  `gorm:"not null" json:"evaluated_at"`
	Exported     bool       `gorm:"not null;default:false;index" json:"exported"`
	ExportedAt   *time.Time `json:"exported_at"`
}

// ReportLine is one JSONL line in an exported evaluation report.
type ReportLine struct {
	AssessmentID string             `json:"assessment_id"`
	TotalScore   float64            `json:"total_score"`
	MaxScore     float64            `json:"max_score"`
	Percentage   float64            `json:"percentage"`
	Passed       bool               `json:"passed"`
	EvaluatedAt  time.Time          `json:"evaluated_at"`
	Results      []EvaluationResult `json:"results,omitempty"`
}
