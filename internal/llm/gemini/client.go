package gemini

import (
	"context"
	"strings"
	"time"

	"google.golang.org/genai"

	"talentgate/assess/internal/llm"
	"talentgate/assess/internal/models"
)

// Client represents a Gemini text-generation client

type Client struct {
	client *genai.Client
	config *Config
}

func NewClient(config *Config) (*Client, error) {
	ctx := context.Background()

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  config.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeAPIKey,
			Message:  "Failed to create Gemini client",
			Err:      err,
		}
	}

	return &Client{
		client: client,
		config: config,
	}, nil
}

// GenerateText runs one generation round trip against the Gemini API.
func (c *Client) GenerateText(ctx context.Context, prompt string, opts models.GenerationOptions) (*models.GenerationResult, error) {
	startTime := time.Now()

	genConfig := &genai.GenerateContentConfig{}
	if opts.Temperature > 0 {
		genConfig.Temperature = genai.Ptr(float64(opts.Temperature))
	}
	if opts.MaxOutputTokens > 0 {
		genConfig.MaxOutputTokens = genai.Ptr(int64(opts.MaxOutputTokens))
	}

	result, err := c.client.Models.GenerateContent(
		ctx,
		c.config.Model,
		genai.Text(prompt),
		genConfig,
	)
	if err != nil {
		code := llm.ErrCodeServiceDown
		switch {
		case ctx.Err() != nil:
			code = llm.ErrCodeTimeout
		case isRateLimitError(err):
			code = llm.ErrCodeRateLimit
		}
		return nil, &llm.ProviderError{
			Provider: "gemini",
			Code:     code,
			Message:  "Failed to generate content",
			Err:      err,
		}
	}

	// Extract the response text
	if result == nil {
		return nil, &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeInvalidInput,
			Message:  "No response generated",
		}
	}

	text, err := result.Text()
	if err != nil {
		return nil, &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeInvalidInput,
			Message:  "Failed to extract response text",
			Err:      err,
		}
	}
	if text == "" {
		return nil, &llm.ProviderError{
			Provider: "gemini",
			Code:     llm.ErrCodeInvalidInput,
			Message:  "Empty response generated",
		}
	}

	processingTime := time.Since(startTime).Milliseconds()

	return &models.GenerationResult{
		Text:           text,
		Provider:       "gemini",
		Model:          c.config.Model,
		ProcessingTime: int(processingTime),
	}, nil
}

func (c *Client) GetProviderName() string {
	return "gemini"
}

func isRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "rate limit") ||
		strings.Contains(msg, "resource_exhausted") ||
		strings.Contains(msg, "quota")
}
