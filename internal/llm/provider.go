package llm

import (
	"context"

	"talentgate/assess/internal/models"
)

// Provider is the single seam between the pipeline and a generative model
// backend. Implementations register themselves through RegisterProvider.
type Provider interface {
	GenerateText(ctx context.Context, prompt string, opts models.GenerationOptions) (*models.GenerationResult, error)
	GetProviderName() string
}

// ProviderError carries a stable error code so callers can branch on the
// failure class without parsing backend messages.
type ProviderError struct {
	Provider string
	Code     string
	Message  string
	Err      error
}

func (e *ProviderError) Error() string {
	if e.Err != nil {
		return e.Provider + " error: " + e.Message + " (" + e.Err.Error() + ")"
	}
	return e.Provider + " error: " + e.Message
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}

// Error codes shared across provider implementations.
const (
	ErrCodeAPIKey       = "invalid_api_key"
	ErrCodeRateLimit    = "rate_limit_exceeded"
	ErrCodeServiceDown  = "service_unavailable"
	ErrCodeInvalidInput = "invalid_input"
	ErrCodeTimeout      = "timeout"
)
