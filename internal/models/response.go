package models

// uniform error responses
type ErrorResponse struct {
	Code    string                  `json:"code"`
	Message string                  `json:"message"`
	Details []ValidationErrorDetail `json:"details,omitempty"`
}

func (e *ErrorResponse) Error() string {
	return e.Code + ": " + e.Message
}

// single field validation error
type ValidationErrorDetail struct {
	Field  string `json:"field"`
	Reason string `json:"reason"`
}

// additional information about a generation run
type AssessmentMetadata struct {
	ProcessingTime int    `json:"processing_time_ms"`
	Provider       string `json:"provider"`
}

type GenerateAssessmentResponse struct {
	Assessment *AssessmentDefinition `json:"assessment"`
	RequestID  string                `json:"request_id"`
	Metadata   AssessmentMetadata    `json:"metadata"`
}

type EvaluateAssessmentResponse struct {
	AssessmentID string             `json:"assessment_id"`
	Score        AggregateScore     `json:"score"`
	Results      []EvaluationResult `json:"results"`
	RequestID    string             `json:"request_id"`
	Metadata     AssessmentMetadata `json:"metadata"`
}
