package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"
)

// app config. The numeric fields are the empirically-chosen pipeline
// thresholds; they live here as named values so no call site re-derives
// them.
type Config struct {
	Provider string

	// generation policy
	GenerationAttempts  int           // attempts per batch before accepting a partial result
	RetryBackoff        time.Duration // pause between attempts
	CallTimeout         time.Duration // per generative-service call
	ProfileExcerptLimit int           // max resume characters forwarded into prompts

	// evaluation policy
	EvalWorkers          int // bounded worker pool size for per-task evaluation
	TaskPassThreshold    int // raw score a task needs to count as completed
	OverallPassThreshold int // percentage the whole submission needs to pass
	MinCodeLength        int // authenticity filter length floor

	// assessment cache
	AssessmentTTL time.Duration
}

// loads configuration from environment variables
func LoadConfig() (*Config, error) {
	config := &Config{
		Provider:             getEnvOrDefault("AI_PROVIDER", "gemini"),
		GenerationAttempts:   getEnvIntOrDefault("GENERATION_ATTEMPTS", 2),
		RetryBackoff:         getEnvDurationOrDefault("RETRY_BACKOFF", 500*time.Millisecond),
		CallTimeout:          getEnvDurationOrDefault("LLM_CALL_TIMEOUT", 30*time.Second),
		ProfileExcerptLimit:  getEnvIntOrDefault("PROFILE_EXCERPT_LIMIT", 1800),
		EvalWorkers:          getEnvIntOrDefault("EVAL_WORKERS", 4),
		TaskPassThreshold:    getEnvIntOrDefault("TASK_PASS_THRESHOLD", 70),
		OverallPassThreshold: getEnvIntOrDefault("OVERALL_PASS_THRESHOLD", 60),
		MinCodeLength:        getEnvIntOrDefault("MIN_CODE_LENGTH", 10),
		AssessmentTTL:        getEnvDurationOrDefault("ASSESSMENT_TTL", 4*time.Hour),
	}
	if err := validateConfig(config); err != nil {
		return nil, err
	}
	return config, nil
}

func validateConfig(config *Config) error {
	if config.Provider != "gemini" {
		return errors.New("unsupported AI provider: " + config.Provider + ". Currently supported: gemini")
	}
	if config.GenerationAttempts < 1 {
		return errors.New("GENERATION_ATTEMPTS must be at least 1")
	}
	if config.EvalWorkers < 1 {
		return errors.New("EVAL_WORKERS must be at least 1")
	}
	if config.TaskPassThreshold < 0 || config.TaskPassThreshold > 100 {
		return fmt.Errorf("TASK_PASS_THRESHOLD must be within [0,100], got %d", config.TaskPassThreshold)
	}
	if config.OverallPassThreshold < 0 || config.OverallPassThreshold > 100 {
		return fmt.Errorf("OVERALL_PASS_THRESHOLD must be within [0,100], got %d", config.OverallPassThreshold)
	}
	if config.MinCodeLength < 0 {
		return errors.New("MIN_CODE_LENGTH must not be negative")
	}
	return nil
}

// AcceptableItemCount is the partial-success floor: a generation batch is
// accepted once it yields at least half of the requested items, rounded up.
func AcceptableItemCount(requested int) int {
	if requested <= 0 {
		return 0
	}
	return (requested + 1) / 2
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.Atoi(value); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
