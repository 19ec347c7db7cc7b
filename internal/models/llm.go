package models

// GenerationOptions tune a single generative-service call.
type GenerationOptions struct {
	Temperature     float32
	MaxOutputTokens int32
}

// GenerationResult is the raw outcome of a generative-service call. Text is
// unstructured and may wrap its JSON payload in prose or code fences; the
// parser package deals with that.
type GenerationResult struct {
	Text           string
	Provider       string
	Model          string
	ProcessingTime int // milliseconds
}
