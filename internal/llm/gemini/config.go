package gemini

import (
	"errors"
	"os"
)

type Config struct {
	APIKey string
	Model  string
}

// NewConfig reads Gemini settings from the environment. The API key is
// mandatory, the model falls back to a flash-tier default.
func NewConfig() (*Config, error) {
	apiKey := os.Getenv("GEMINI_API_KEY")
	if apiKey == "" {
		return nil, errors.New("GEMINI_API_KEY environment variable is required")
	}

	model := os.Getenv("GEMINI_MODEL")
	if model == "" {
		model = "gemini-2.5-flash"
	}

	return &Config{
		APIKey: apiKey,
		Model:  model,
	}, nil
}
